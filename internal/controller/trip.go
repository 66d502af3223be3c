package controller

import (
	"net/http"

	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type tripRoutesHandler struct {
	tripService service.Trip
	validate    *validator.Validate
}

func newTripRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *tripRoutesHandler {
	h := &tripRoutesHandler{tripService: services.Trip, validate: v}

	outer.GET("/trips/my", h.GetMyTrips)
	outer.GET("/trips/:tripId", h.GetTrip)
	outer.PUT("/trips/:tripId/status", h.UpdateTripStatus)
	outer.POST("/trips/:tripId/confirm", h.ConfirmDelivery)
	outer.GET("/trips/:tripId/events", h.GetTrackingEvents)

	return h
}

type getMyTripsInput struct {
	Limit  int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset int32  `query:"offset" validate:"gte=0"`
	Role   string `query:"role" validate:"omitempty,oneof=carrier shipper"`
}

func newGetMyTripsInput() getMyTripsInput {
	return getMyTripsInput{Limit: defaultLimit, Offset: defaultOffset, Role: "carrier"}
}

// /trips/my
func (h *tripRoutesHandler) GetMyTrips(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	var input = newGetMyTripsInput()
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
	var trips []entity.TripOutputModel
	var err error
	if input.Role == "shipper" {
		trips, err = h.tripService.GetShipperTrips(c.Request().Context(), requester, pg)
	} else {
		trips, err = h.tripService.GetCarrierTrips(c.Request().Context(), requester, pg)
	}
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, trips)
}

// /trips/:tripId
func (h *tripRoutesHandler) GetTrip(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	trip, err := h.tripService.GetTripById(c.Request().Context(), c.Param("tripId"), requester)
	if err == nil {
		return c.JSON(http.StatusOK, trip)
	}

	switch err {
	case service.ErrTripNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no trip with given id"}); e != nil {
			return e
		}
	case service.ErrNotTripParticipant:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the trip's shipper or carrier can see it"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type updateTripStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pickup in_transit delivered confirmed"`
}

// /trips/:tripId/status
func (h *tripRoutesHandler) UpdateTripStatus(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	var input updateTripStatusInput
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

	trip, err := h.tripService.AdvanceStatus(c.Request().Context(), c.Param("tripId"), requester, input.Status)
	if err == nil {
		return c.JSON(http.StatusOK, trip)
	}

	switch err {
	case service.ErrTripNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no trip with given id"}); e != nil {
			return e
		}
	case service.ErrNotTripParticipant, service.ErrNotAssignedCarrier:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the assigned carrier can advance the trip"}); e != nil {
			return e
		}
	case service.ErrInvalidTripTransition:
		if e := c.JSON(http.StatusConflict, errorResponse{"Requested status is not the next step from the current one"}); e != nil {
			return e
		}
	case service.ErrConcurrentConflict:
		if e := c.JSON(http.StatusConflict, errorResponse{"Trip changed concurrently, retry"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /trips/:tripId/confirm
func (h *tripRoutesHandler) ConfirmDelivery(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	trip, err := h.tripService.ConfirmDelivery(c.Request().Context(), c.Param("tripId"), requester)
	if err == nil {
		return c.JSON(http.StatusOK, trip)
	}

	switch err {
	case service.ErrTripNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no trip with given id"}); e != nil {
			return e
		}
	case service.ErrNotTripParticipant, service.ErrNotLoadOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the load's shipper can confirm the delivery"}); e != nil {
			return e
		}
	case service.ErrTripNotConfirmable:
		if e := c.JSON(http.StatusConflict, errorResponse{"Trip is not awaiting confirmation"}); e != nil {
			return e
		}
	case service.ErrConcurrentConflict:
		if e := c.JSON(http.StatusConflict, errorResponse{"Trip changed concurrently, retry"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type getTrackingEventsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=100"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /trips/:tripId/events
func (h *tripRoutesHandler) GetTrackingEvents(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	var input = getTrackingEventsInput{Limit: defaultLimit, Offset: defaultOffset}
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
	events, err := h.tripService.GetTrackingEvents(c.Request().Context(), c.Param("tripId"), requester, pg)
	if err == nil {
		return c.JSON(http.StatusOK, events)
	}

	switch err {
	case service.ErrTripNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no trip with given id"}); e != nil {
			return e
		}
	case service.ErrNotTripParticipant:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the trip's shipper or carrier can see its events"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
