package integration_tests

import (
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/invoicehub/invoicehub.go/common"
	"github.com/invoicehub/invoicehub.go/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type NotificationTestSuite struct {
	suite.Suite
	service *service.InvoicehubService
	mailer  *mockMailer
	userId  int64
	cancel  context.CancelFunc
}

func (suite *NotificationTestSuite) SetupSuite() {
	suite.mailer = newMockMailer()
	svc, err := InvoicehubTestServiceInit(suite.mailer)
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	svc.Config.InvoiceNotification = common.NotificationPolicyAsync
	suite.service = svc

	_, userTokens, err := createUsers(svc, 1)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.userId = getUserIdFromToken(userTokens[0])

	ctx, cancel := context.WithCancel(context.Background())
	suite.cancel = cancel
	go svc.StartNotificationRoutine(ctx)
}

func (suite *NotificationTestSuite) TearDownSuite() {
	suite.cancel()
	clearTable(suite.service, "invoices")
	clearTable(suite.service, "users")
}

func (suite *NotificationTestSuite) TestAsyncCreationNotice() {
	params := &service.InvoiceParams{
		InvoiceName:   "Monthly retainer",
		InvoiceNumber: 11001,
		Currency:      "EUR",
		FromName:      "Alice Doe",
		FromEmail:     "alice@example.com",
		FromAddress:   "1 Main St",
		ClientName:    "Acme Corp",
		ClientEmail:   "billing@acme.example.com",
		ClientAddress: "2 Market St",
		Date:          time.Now(),
		DueDate:       14,
		Description:   "August retainer",
		Quantity:      "1",
		Rate:          "1200",
	}

	invoice, err := suite.service.CreateInvoice(context.Background(), suite.userId, params)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1200.0, invoice.Total)

	// the send happens on the background routine, not in the request path
	assert.Eventually(suite.T(), func() bool {
		return len(suite.mailer.sentMessages()) == 1
	}, 5*time.Second, 50*time.Millisecond)
	sent := suite.mailer.sentMessages()
	assert.Equal(suite.T(), "billing@acme.example.com", sent[0].To)
}

func (suite *NotificationTestSuite) TestRetryingDeliveryDoesNotBlockCreates() {
	suite.mailer.failWith = errors.New("smtp: connection refused")

	params := func(number int64) *service.InvoiceParams {
		return &service.InvoiceParams{
			InvoiceName:   "Monthly retainer",
			InvoiceNumber: number,
			Currency:      "EUR",
			FromName:      "Alice Doe",
			FromEmail:     "alice@example.com",
			FromAddress:   "1 Main St",
			ClientName:    "Acme Corp",
			ClientEmail:   "billing@acme.example.com",
			ClientAddress: "2 Market St",
			Date:          time.Now(),
			DueDate:       14,
			Description:   "August retainer",
			Quantity:      "1",
			Rate:          "1200",
		}
	}

	// while the first notice is stuck in retries, later creates must still
	// get through the pubsub
	done := make(chan struct{})
	go func() {
		_, err := suite.service.CreateInvoice(context.Background(), suite.userId, params(11002))
		assert.NoError(suite.T(), err)
		_, err = suite.service.CreateInvoice(context.Background(), suite.userId, params(11003))
		assert.NoError(suite.T(), err)
		close(done)
	}()

	assert.Eventually(suite.T(), func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)
}

func TestNotificationSuite(t *testing.T) {
	suite.Run(t, new(NotificationTestSuite))
}
