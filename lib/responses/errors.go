package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

// ValidationErrorResponse carries field-level failures next to the generic
// message so forms can highlight individual inputs.
type ValidationErrorResponse struct {
	ErrorResponse
	Fields map[string]string `json:"fields,omitempty"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

// NotFoundError is returned both when the invoice does not exist and when it
// belongs to another user. Not distinguishing the two avoids leaking which
// invoice ids exist.
var NotFoundError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "Invoice not found",
	HttpStatusCode: 404,
}

var LoginTakenError = ErrorResponse{
	Error:          true,
	Code:           3,
	Message:        "login already exists",
	HttpStatusCode: 400,
}

var InvoiceNumberTakenError = ValidationErrorResponse{
	ErrorResponse: ErrorResponse{
		Error:          true,
		Code:           4,
		Message:        "Invoice number already exists",
		HttpStatusCode: 409,
	},
	Fields: map[string]string{"invoiceNumber": "Invoice number must be unique"},
}

var DeliveryFailedError = ErrorResponse{
	Error:          true,
	Code:           5,
	Message:        "Failed to send reminder email",
	HttpStatusCode: 500,
}

func ValidationError(fields map[string]string) ValidationErrorResponse {
	return ValidationErrorResponse{
		ErrorResponse: ErrorResponse{
			Error:          true,
			Code:           7,
			Message:        "Validation failed",
			HttpStatusCode: 400,
		},
		Fields: fields,
	}
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("UserID", c.Get("UserID"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
	} else {
		c.JSON(http.StatusInternalServerError, GeneralServerError)
	}
}
