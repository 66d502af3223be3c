package controller

import (
	"net/http"

	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type invitationRoutesHandler struct {
	invitationService service.Invitation
	validate          *validator.Validate
}

func newInvitationRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *invitationRoutesHandler {
	h := &invitationRoutesHandler{invitationService: services.Invitation, validate: v}

	outer.POST("/loads/:loadId/invitations", h.PostInvitation)
	outer.GET("/loads/:loadId/invitations", h.GetLoadInvitations)
	outer.GET("/invitations/my", h.GetMyInvitations)
	outer.POST("/invitations/:invitationId/viewed", h.MarkViewed)

	return h
}

type postInvitationInput struct {
	CarrierId string `json:"carrierId" validate:"required,uuid"`
}

// /loads/:loadId/invitations
func (h *invitationRoutesHandler) PostInvitation(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	var input postInvitationInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	invitation, err := h.invitationService.Invite(c.Request().Context(), c.Param("loadId"), requester, input.CarrierId)
	if err == nil {
		return c.JSON(http.StatusCreated, invitation)
	}

	switch err {
	case service.ErrLoadNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no load with given id"}); e != nil {
			return e
		}
	case service.ErrNotLoadOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the shipper who posted the load can invite carriers"}); e != nil {
			return e
		}
	case service.ErrLoadNotOpenForBids:
		if e := c.JSON(http.StatusConflict, errorResponse{"Load is not open for bidding"}); e != nil {
			return e
		}
	case service.ErrInvitationAlreadyExists:
		if e := c.JSON(http.StatusConflict, errorResponse{"Carrier has already been invited to this load"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type listInvitationsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=50"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /loads/:loadId/invitations
func (h *invitationRoutesHandler) GetLoadInvitations(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	var input = listInvitationsInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	invitations, err := h.invitationService.GetLoadInvitations(c.Request().Context(), c.Param("loadId"), requester, pg)
	if err == nil {
		return c.JSON(http.StatusOK, invitations)
	}

	switch err {
	case service.ErrLoadNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no load with given id"}); e != nil {
			return e
		}
	case service.ErrNotLoadOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the shipper who posted the load can list its invitations"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /invitations/my
func (h *invitationRoutesHandler) GetMyInvitations(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	var input = listInvitationsInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	invitations, err := h.invitationService.GetCarrierInvitations(c.Request().Context(), requester, pg)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, invitations)
}

// /invitations/:invitationId/viewed
func (h *invitationRoutesHandler) MarkViewed(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	invitation, err := h.invitationService.MarkViewed(c.Request().Context(), c.Param("invitationId"), requester)
	if err == nil {
		return c.JSON(http.StatusOK, invitation)
	}

	switch err {
	case service.ErrInvitationNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no invitation with given id"}); e != nil {
			return e
		}
	case service.ErrNotInvitedCarrier:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the invited carrier can mark the invitation viewed"}); e != nil {
			return e
		}
	case service.ErrInvitationNotPending:
		if e := c.JSON(http.StatusConflict, errorResponse{"Invitation is no longer pending"}); e != nil {
			return e
		}
	case service.ErrConcurrentConflict:
		if e := c.JSON(http.StatusConflict, errorResponse{"Invitation changed concurrently, retry"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
