package controller

import (
	"freight-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	api := handler.Group("/api")
	newDiagnosticRoutesHandler(api, services)
	newLoadRoutesHandler(api, services, validate)
	newBidRoutesHandler(api, services, validate)
	newTripRoutesHandler(api, services, validate)
	newDisputeRoutesHandler(api, services, validate)
	newInvitationRoutesHandler(api, services, validate)
}
