package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/invoicehub/invoicehub.go/db/models"
	qrcode "github.com/skip2/go-qrcode"
)

// Renderer produces the downloadable invoice document. It expects the
// post-derivation record: the total on the model, not whatever the client
// submitted.
type Renderer struct {
	// PublicURL is the base for the payment link encoded in the QR code.
	PublicURL string
}

func NewRenderer(publicURL string) *Renderer {
	return &Renderer{PublicURL: publicURL}
}

func (r *Renderer) RenderInvoiceDocument(invoice *models.Invoice) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// header
	pdf.SetFont("Helvetica", "", 26)
	pdf.SetTextColor(30, 70, 200)
	pdf.Text(15, 20, "E-INVOICE")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFontSize(12)
	pdf.Text(15, 30, fmt.Sprintf("Invoice #%d", invoice.InvoiceNumber))
	pdf.Text(15, 36, fmt.Sprintf("Status: %s", invoice.Status))

	// from / bill to
	pdf.SetFontSize(14)
	pdf.SetTextColor(30, 30, 30)
	pdf.Text(15, 50, "From:")

	pdf.SetFontSize(12)
	pdf.SetTextColor(80, 80, 80)
	pdf.Text(15, 56, invoice.FromName)
	pdf.Text(15, 62, invoice.FromEmail)
	pdf.Text(15, 68, invoice.FromAddress)

	pdf.SetFontSize(14)
	pdf.SetTextColor(30, 30, 30)
	pdf.Text(120, 50, "Bill To:")

	pdf.SetFontSize(12)
	pdf.SetTextColor(80, 80, 80)
	pdf.Text(120, 56, invoice.ClientName)
	pdf.Text(120, 62, invoice.ClientEmail)
	pdf.Text(120, 68, invoice.ClientAddress)

	// dates
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(15, 85, fmt.Sprintf("Invoice Date: %s", invoice.Date.Format("January 2, 2006")))
	pdf.Text(15, 91, fmt.Sprintf("Due in: %d days", invoice.DueDate))

	// item table
	pdf.SetFontSize(14)
	pdf.Text(15, 110, "Item Details")
	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(15, 112, 195, 112)

	pdf.SetFillColor(230, 230, 230)
	pdf.Rect(15, 115, 180, 10, "F")

	pdf.SetFontSize(12)
	pdf.Text(18, 122, "Description")
	pdf.Text(120, 122, "Qty")
	pdf.Text(140, 122, "Rate")
	pdf.Text(170, 122, "Amount")

	pdf.Text(18, 135, invoice.Description)
	pdf.Text(120, 135, formatNumber(invoice.Quantity))
	pdf.Text(140, 135, formatNumber(invoice.Rate))
	pdf.Text(170, 135, formatNumber(invoice.Quantity*invoice.Rate))

	// total
	pdf.SetFontSize(16)
	pdf.SetTextColor(200, 0, 0)
	pdf.Text(15, 160, fmt.Sprintf("Total: %s %s", invoice.Currency, formatNumber(invoice.Total)))

	// notes
	if invoice.Note != "" {
		pdf.SetFontSize(12)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(15, 180, "Notes:")
		pdf.SetTextColor(70, 70, 70)
		pdf.SetXY(15, 184)
		pdf.MultiCell(180, 6, invoice.Note, "", "L", false)
	}

	if r.PublicURL != "" {
		if err := r.addPaymentQR(pdf, invoice); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) addPaymentQR(pdf *fpdf.Fpdf, invoice *models.Invoice) error {
	link := fmt.Sprintf("%s/invoices/%d", r.PublicURL, invoice.ID)
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return err
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("payment-qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("payment-qr", 160, 245, 30, 30, false, opts, 0, "")
	pdf.SetFontSize(8)
	pdf.SetTextColor(120, 120, 120)
	pdf.Text(160, 278, "Scan to view invoice")
	return nil
}

func formatNumber(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	return s
}
