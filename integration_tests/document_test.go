package integration_tests

import (
	"log"
	"net/http"
	"strings"
	"testing"

	"github.com/invoicehub/invoicehub.go/controllers"
	"github.com/invoicehub/invoicehub.go/lib/service"
	"github.com/invoicehub/invoicehub.go/lib/tokens"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type DocumentTestSuite struct {
	TestSuite
	service    *service.InvoicehubService
	aliceToken string
	bobToken   string
}

func (suite *DocumentTestSuite) SetupSuite() {
	svc, err := InvoicehubTestServiceInit(nil)
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
	_, userTokens, err := createUsers(svc, 2)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.aliceToken = userTokens[0]
	suite.bobToken = userTokens[1]

	e := newTestEcho()
	suite.echo = e
	authMw := tokens.Middleware(svc.Config.JWTSecret)
	suite.echo.POST("/v2/invoices", controllers.NewInvoiceController(svc).AddInvoice, authMw)
	suite.echo.GET("/v2/invoices/:id/document", controllers.NewDocumentController(svc).GetInvoiceDocument, authMw)
}

func (suite *DocumentTestSuite) TearDownTest() {
	clearTable(suite.service, "invoices")
}

func (suite *DocumentTestSuite) TearDownSuite() {
	clearTable(suite.service, "users")
}

func (suite *DocumentTestSuite) TestDownloadDocument() {
	invoice := suite.createInvoiceReq(invoiceFixture(9001), suite.aliceToken)

	rec := suite.request(http.MethodGet, "/v2/invoices/"+itoa(invoice.ID)+"/document", nil, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(suite.T(), rec.Header().Get(echo.HeaderContentDisposition), "invoice-9001.pdf")
	assert.True(suite.T(), strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func (suite *DocumentTestSuite) TestDocumentForForeignInvoice() {
	invoice := suite.createInvoiceReq(invoiceFixture(9002), suite.aliceToken)

	rec := suite.request(http.MethodGet, "/v2/invoices/"+itoa(invoice.ID)+"/document", nil, suite.bobToken)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func TestDocumentSuite(t *testing.T) {
	suite.Run(t, new(DocumentTestSuite))
}
