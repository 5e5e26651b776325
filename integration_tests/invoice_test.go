package integration_tests

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"testing"

	"github.com/invoicehub/invoicehub.go/controllers"
	"github.com/invoicehub/invoicehub.go/lib/responses"
	"github.com/invoicehub/invoicehub.go/lib/service"
	"github.com/invoicehub/invoicehub.go/lib/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type InvoiceTestSuite struct {
	TestSuite
	service    *service.InvoicehubService
	mailer     *mockMailer
	aliceLogin ExpectedCreateUserResponseBody
	aliceToken string
	bobToken   string
}

func (suite *InvoiceTestSuite) SetupSuite() {
	suite.mailer = newMockMailer()
	svc, err := InvoicehubTestServiceInit(suite.mailer)
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
	users, userTokens, err := createUsers(svc, 2)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.aliceLogin = users[0]
	suite.aliceToken = userTokens[0]
	suite.bobToken = userTokens[1]

	e := newTestEcho()
	suite.echo = e
	authMw := tokens.Middleware(svc.Config.JWTSecret)
	invoiceCtrl := controllers.NewInvoiceController(svc)
	suite.echo.POST("/v2/invoices", invoiceCtrl.AddInvoice, authMw)
	suite.echo.GET("/v2/invoices", invoiceCtrl.GetInvoices, authMw)
	suite.echo.GET("/v2/invoices/:id", invoiceCtrl.GetInvoice, authMw)
	suite.echo.PUT("/v2/invoices/:id", invoiceCtrl.UpdateInvoice, authMw)
}

func (suite *InvoiceTestSuite) TearDownTest() {
	clearTable(suite.service, "invoices")
	suite.mailer.reset()
}

func (suite *InvoiceTestSuite) TearDownSuite() {
	clearTable(suite.service, "users")
}

func (suite *InvoiceTestSuite) TestCreateDerivesTotal() {
	body := invoiceFixture(1001)
	// whatever the client claims the total is gets ignored
	body.Total = 999999

	invoice := suite.createInvoiceReq(body, suite.aliceToken)
	assert.Equal(suite.T(), 46.5, invoice.Total)
	assert.Equal(suite.T(), 3.0, invoice.Quantity)
	assert.Equal(suite.T(), 15.5, invoice.Rate)
	assert.Equal(suite.T(), "PENDING", invoice.Status)
	assert.Nil(suite.T(), invoice.PaidAt)
}

func (suite *InvoiceTestSuite) TestCreateWithNonNumericQuantity() {
	body := invoiceFixture(1002)
	body.Quantity = "three"

	invoice := suite.createInvoiceReq(body, suite.aliceToken)
	assert.Equal(suite.T(), 0.0, invoice.Total)
	assert.Equal(suite.T(), 0.0, invoice.Quantity)
}

func (suite *InvoiceTestSuite) TestValidationFailuresListFields() {
	body := invoiceFixture(1003)
	body.ClientEmail = "not-an-email"
	body.Description = ""

	errorResponse := suite.createInvoiceReqError(body, suite.aliceToken, http.StatusBadRequest)
	assert.Contains(suite.T(), errorResponse.Fields, "clientEmail")
	assert.Contains(suite.T(), errorResponse.Fields, "description")
}

func (suite *InvoiceTestSuite) TestBadDateRejected() {
	body := invoiceFixture(1004)
	body.Date = "01/08/2026"

	errorResponse := suite.createInvoiceReqError(body, suite.aliceToken, http.StatusBadRequest)
	assert.Contains(suite.T(), errorResponse.Fields, "date")
}

func (suite *InvoiceTestSuite) TestDuplicateInvoiceNumber() {
	suite.createInvoiceReq(invoiceFixture(2001), suite.aliceToken)

	errorResponse := suite.createInvoiceReqError(invoiceFixture(2001), suite.aliceToken, http.StatusConflict)
	assert.Equal(suite.T(), responses.InvoiceNumberTakenError.Code, errorResponse.Code)
	assert.Contains(suite.T(), errorResponse.Fields, "invoiceNumber")

	// the same number is fine for a different user
	suite.createInvoiceReq(invoiceFixture(2001), suite.bobToken)
}

func (suite *InvoiceTestSuite) TestListNewestFirst() {
	first := suite.createInvoiceReq(invoiceFixture(3001), suite.aliceToken)
	second := suite.createInvoiceReq(invoiceFixture(3002), suite.aliceToken)

	rec := suite.request(http.MethodGet, "/v2/invoices", nil, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	response := &controllers.GetInvoicesResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(response))
	assert.Equal(suite.T(), 2, len(response.Invoices))
	assert.Equal(suite.T(), second.ID, response.Invoices[0].ID)
	assert.Equal(suite.T(), first.ID, response.Invoices[1].ID)
}

func (suite *InvoiceTestSuite) TestUpdateRecomputesTotal() {
	invoice := suite.createInvoiceReq(invoiceFixture(4001), suite.aliceToken)

	body := invoiceFixture(4001)
	body.Quantity = "10"
	body.Rate = "2"
	rec := suite.request(http.MethodPut, "/v2/invoices/"+itoa(invoice.ID), body, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	updated := &controllers.Invoice{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(updated))
	assert.Equal(suite.T(), 20.0, updated.Total)
	assert.Equal(suite.T(), invoice.Status, updated.Status)
}

func (suite *InvoiceTestSuite) TestCreationNotificationSent() {
	body := invoiceFixture(5001)
	suite.createInvoiceReq(body, suite.aliceToken)

	sent := suite.mailer.sentMessages()
	assert.Equal(suite.T(), 1, len(sent))
	assert.Equal(suite.T(), body.ClientEmail, sent[0].To)
	assert.Contains(suite.T(), sent[0].Subject, "5001")
}

func (suite *InvoiceTestSuite) TestCreationNotificationFailure() {
	suite.mailer.failWith = errors.New("smtp: connection refused")

	errorResponse := suite.createInvoiceReqError(invoiceFixture(5002), suite.aliceToken, http.StatusInternalServerError)
	assert.Equal(suite.T(), responses.DeliveryFailedError.Code, errorResponse.Code)

	// the invoice row was committed before the send was attempted
	userId := getUserIdFromToken(suite.aliceToken)
	invoices, err := suite.service.InvoicesFor(context.Background(), userId)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, len(invoices))
}

func TestInvoiceSuite(t *testing.T) {
	suite.Run(t, new(InvoiceTestSuite))
}
