package controllers

import (
	"net/http"

	"github.com/invoicehub/invoicehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// InfoController : Service branding info controller struct
type InfoController struct {
	svc *service.InvoicehubService
}

func NewInfoController(svc *service.InvoicehubService) *InfoController {
	return &InfoController{svc: svc}
}

type InfoResponseBody struct {
	Title string `json:"title"`
	Desc  string `json:"description"`
	Url   string `json:"url"`
}

// GetInfo : Branding info, identical for every caller
func (controller *InfoController) GetInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, &InfoResponseBody{
		Title: controller.svc.Config.Branding.Title,
		Desc:  controller.svc.Config.Branding.Desc,
		Url:   controller.svc.Config.Branding.Url,
	})
}
