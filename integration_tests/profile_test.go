package integration_tests

import (
	"encoding/json"
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

type ProfileTestSuite struct {
	TestSuite
	service    *service.InvoicehubService
	aliceLogin ExpectedCreateUserResponseBody
	aliceToken string
}

func (suite *ProfileTestSuite) SetupSuite() {
	svc, err := InvoicehubTestServiceInit(nil)
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
	users, userTokens, err := createUsers(svc, 1)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.aliceLogin = users[0]
	suite.aliceToken = userTokens[0]

	e := newTestEcho()
	suite.echo = e
	authMw := tokens.Middleware(svc.Config.JWTSecret)
	profileCtrl := controllers.NewProfileController(svc)
	suite.echo.GET("/v2/profile", profileCtrl.GetProfile, authMw)
	suite.echo.PUT("/v2/profile", profileCtrl.UpdateProfile, authMw)
}

func (suite *ProfileTestSuite) TearDownSuite() {
	clearTable(suite.service, "users")
}

func (suite *ProfileTestSuite) TestProfileRoundTrip() {
	rec := suite.request(http.MethodGet, "/v2/profile", nil, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	profile := &controllers.ProfileResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(profile))
	assert.Equal(suite.T(), suite.aliceLogin.Login, profile.Login)
	assert.Empty(suite.T(), profile.FirstName)

	rec = suite.request(http.MethodPut, "/v2/profile", &controllers.UpdateProfileRequestBody{
		FirstName: "Alice",
		LastName:  "Doe",
		Address:   "1 Main St, Springfield",
	}, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	rec = suite.request(http.MethodGet, "/v2/profile", nil, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(profile))
	assert.Equal(suite.T(), "Alice", profile.FirstName)
	assert.Equal(suite.T(), "Doe", profile.LastName)
	assert.Equal(suite.T(), "1 Main St, Springfield", profile.Address)
}

func (suite *ProfileTestSuite) TestProfileValidation() {
	rec := suite.request(http.MethodPut, "/v2/profile", &controllers.UpdateProfileRequestBody{
		FirstName: "Alice",
	}, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	errorResponse := &responses.ValidationErrorResponse{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(errorResponse))
	assert.Contains(suite.T(), errorResponse.Fields, "lastName")
	assert.Contains(suite.T(), errorResponse.Fields, "address")
}

func TestProfileSuite(t *testing.T) {
	suite.Run(t, new(ProfileTestSuite))
}
