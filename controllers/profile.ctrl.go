package controllers

import (
	"net/http"

	"github.com/invoicehub/invoicehub.go/lib"
	"github.com/invoicehub/invoicehub.go/lib/responses"
	"github.com/invoicehub/invoicehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// ProfileController : Onboarding profile controller struct
type ProfileController struct {
	svc *service.InvoicehubService
}

func NewProfileController(svc *service.InvoicehubService) *ProfileController {
	return &ProfileController{svc: svc}
}

type ProfileResponseBody struct {
	Login     string `json:"login"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
}

type UpdateProfileRequestBody struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Address   string `json:"address" validate:"required,max=200"`
}

// GetProfile : Profile fields used to prefill the "from" section of a new invoice
func (controller *ProfileController) GetProfile(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	user, err := controller.svc.FindUser(c.Request().Context(), userId)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &ProfileResponseBody{
		Login:     user.Login,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Address:   user.Address,
	})
}

// UpdateProfile : Store the onboarding fields
func (controller *ProfileController) UpdateProfile(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	var body UpdateProfileRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load profile request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationError(lib.FieldErrors(err)))
	}

	user, err := controller.svc.UpdateUserProfile(c.Request().Context(), userId, body.FirstName, body.LastName, body.Address)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &ProfileResponseBody{
		Login:     user.Login,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Address:   user.Address,
	})
}
