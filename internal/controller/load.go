package controller

import (
	"net/http"

	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type loadRoutesHandler struct {
	loadService service.Load
	validate    *validator.Validate
}

func newLoadRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *loadRoutesHandler {
	h := &loadRoutesHandler{loadService: services.Load, validate: v}

	outer.POST("/loads", h.PostLoad)
	outer.GET("/loads", h.GetLoads)
	outer.GET("/loads/:loadId", h.GetLoad)
	outer.PATCH("/loads/:loadId", h.PatchLoad)
	outer.POST("/loads/:loadId/cancel", h.CancelLoad)

	return h
}

type postLoadInput struct {
	OriginText    string `json:"originText" validate:"required,max=300"`
	OriginCity    string `json:"originCity" validate:"required,max=100"`
	OriginState   string `json:"originState" validate:"required,max=100"`
	DestText      string `json:"destText" validate:"required,max=300"`
	DestCity      string `json:"destCity" validate:"required,max=100"`
	DestState     string `json:"destState" validate:"required,max=100"`
	CargoType     string `json:"cargoType" validate:"required,max=100"`
	CargoWeightKg int    `json:"cargoWeightKg" validate:"required,gte=1"`
	BudgetAmount  int64  `json:"budgetAmount" validate:"gte=0"`
	Negotiable    bool   `json:"negotiable"`
	PickupDate    string `json:"pickupDate" validate:"required"`
	DeliveryDate  string `json:"deliveryDate" validate:"required"`
}

// /loads
func (h *loadRoutesHandler) PostLoad(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	var input postLoadInput
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

	model := &entity.CreateLoadInput{
		ShipperId:  requester,
		OriginText: input.OriginText, OriginCity: input.OriginCity, OriginState: input.OriginState,
		DestText: input.DestText, DestCity: input.DestCity, DestState: input.DestState,
		CargoType: input.CargoType, CargoWeightKg: input.CargoWeightKg,
		BudgetAmount: input.BudgetAmount, Negotiable: input.Negotiable,
		PickupDate: input.PickupDate, DeliveryDate: input.DeliveryDate,
	}

	load, err := h.loadService.CreateLoad(c.Request().Context(), model)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusCreated, load)
}

type getLoadsInput struct {
	Limit      int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset     int32  `query:"offset" validate:"gte=0"`
	Status     string `query:"status" validate:"omitempty,oneof=posted bidding accepted in_transit delivered completed cancelled"`
	ShipperId  string `query:"shipperId" validate:"omitempty,uuid"`
	OriginCity string `query:"originCity" validate:"max=100"`
	DestCity   string `query:"destCity" validate:"max=100"`
	CargoType  string `query:"cargoType" validate:"max=100"`
}

func newGetLoadsInput() getLoadsInput {
	return getLoadsInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /loads
func (h *loadRoutesHandler) GetLoads(c echo.Context) error {
	var input = newGetLoadsInput()
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

	filter := &entity.LoadFilter{
		Status:     input.Status,
		ShipperId:  input.ShipperId,
		OriginCity: input.OriginCity,
		DestCity:   input.DestCity,
		CargoType:  input.CargoType,
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	page, err := h.loadService.ListLoads(c.Request().Context(), filter, pg)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, page)
}

// /loads/:loadId
func (h *loadRoutesHandler) GetLoad(c echo.Context) error {
	load, err := h.loadService.GetLoadById(c.Request().Context(), c.Param("loadId"))
	if err == nil {
		return c.JSON(http.StatusOK, load)
	}

	switch err {
	case service.ErrLoadNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no load with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type patchLoadInput struct {
	OriginText   string `json:"originText" validate:"max=300"`
	DestText     string `json:"destText" validate:"max=300"`
	CargoType    string `json:"cargoType" validate:"max=100"`
	BudgetAmount int64  `json:"budgetAmount" validate:"gte=0"`
	PickupDate   string `json:"pickupDate"`
	DeliveryDate string `json:"deliveryDate"`
}

// /loads/:loadId
func (h *loadRoutesHandler) PatchLoad(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	var input patchLoadInput
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

	patch := &entity.UpdateLoadInput{
		OriginText: input.OriginText, DestText: input.DestText, CargoType: input.CargoType,
		BudgetAmount: input.BudgetAmount, PickupDate: input.PickupDate, DeliveryDate: input.DeliveryDate,
	}

	load, err := h.loadService.UpdateLoad(c.Request().Context(), c.Param("loadId"), requester, patch)
	if err == nil {
		return c.JSON(http.StatusOK, load)
	}

	switch err {
	case service.ErrLoadNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no load with given id"}); e != nil {
			return e
		}
	case service.ErrNotLoadOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the shipper who posted the load can edit it"}); e != nil {
			return e
		}
	case service.ErrNoNewChanges:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"No fields to update were passed"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /loads/:loadId/cancel
func (h *loadRoutesHandler) CancelLoad(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	load, err := h.loadService.CancelLoad(c.Request().Context(), c.Param("loadId"), requester)
	if err == nil {
		return c.JSON(http.StatusOK, load)
	}

	switch err {
	case service.ErrLoadNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no load with given id"}); e != nil {
			return e
		}
	case service.ErrNotLoadOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the shipper who posted the load can cancel it"}); e != nil {
			return e
		}
	case service.ErrLoadNotCancellable:
		if e := c.JSON(http.StatusConflict, errorResponse{"Load can no longer be cancelled in its current status"}); e != nil {
			return e
		}
	case service.ErrConcurrentConflict:
		if e := c.JSON(http.StatusConflict, errorResponse{"Load changed concurrently, retry"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
