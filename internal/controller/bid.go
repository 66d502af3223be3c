package controller

import (
	"net/http"

	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type bidRoutesHandler struct {
	bidService service.Bid
	validate   *validator.Validate
}

func newBidRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *bidRoutesHandler {
	h := &bidRoutesHandler{bidService: services.Bid, validate: v}

	outer.POST("/loads/:loadId/bids", h.PostBid)
	outer.GET("/loads/:loadId/bids", h.GetLoadBids)
	outer.GET("/bids/my", h.GetMyBids)
	outer.POST("/bids/:bidId/withdraw", h.WithdrawBid)
	outer.POST("/bids/:bidId/decide", h.DecideBid)

	return h
}

type postBidInput struct {
	VehicleId      string `json:"vehicleId" validate:"omitempty,uuid"`
	Amount         int64  `json:"amount" validate:"required,gte=1"`
	EstimatedHours int    `json:"estimatedHours" validate:"gte=0"`
	Message        string `json:"message" validate:"max=500"`
}

// /loads/:loadId/bids
func (h *bidRoutesHandler) PostBid(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	var input postBidInput
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

	model := &entity.PlaceBidInput{
		LoadId:         c.Param("loadId"),
		CarrierId:      requester,
		VehicleId:      input.VehicleId,
		Amount:         input.Amount,
		EstimatedHours: input.EstimatedHours,
		Message:        input.Message,
	}

	bid, err := h.bidService.PlaceBid(c.Request().Context(), model)
	if err == nil {
		return c.JSON(http.StatusCreated, bid)
	}

	switch err {
	case service.ErrLoadNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no load with given id"}); e != nil {
			return e
		}
	case service.ErrShipperCannotBid:
		if e := c.JSON(http.StatusForbidden, errorResponse{"You can't bid on your own load"}); e != nil {
			return e
		}
	case service.ErrLoadNotOpenForBids:
		if e := c.JSON(http.StatusConflict, errorResponse{"Load is not open for bidding"}); e != nil {
			return e
		}
	case service.ErrActiveBidExists:
		if e := c.JSON(http.StatusConflict, errorResponse{"You already have an active bid on this load"}); e != nil {
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

type listBidsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=50"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

func newListBidsInput() listBidsInput {
	return listBidsInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /loads/:loadId/bids
func (h *bidRoutesHandler) GetLoadBids(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	var input = newListBidsInput()
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
	bids, err := h.bidService.GetLoadBids(c.Request().Context(), c.Param("loadId"), requester, pg)
	if err == nil {
		return c.JSON(http.StatusOK, bids)
	}

	switch err {
	case service.ErrLoadNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no load with given id"}); e != nil {
			return e
		}
	case service.ErrNotLoadOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the shipper who posted the load can list its bids"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /bids/my
func (h *bidRoutesHandler) GetMyBids(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	var input = newListBidsInput()
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
	bids, err := h.bidService.GetCarrierBids(c.Request().Context(), requester, pg)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, bids)
}

// /bids/:bidId/withdraw
func (h *bidRoutesHandler) WithdrawBid(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	bid, err := h.bidService.WithdrawBid(c.Request().Context(), c.Param("bidId"), requester)
	if err == nil {
		return c.JSON(http.StatusOK, bid)
	}

	switch err {
	case service.ErrBidNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid with given id"}); e != nil {
			return e
		}
	case service.ErrNotBidOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the carrier who placed the bid can withdraw it"}); e != nil {
			return e
		}
	case service.ErrBidNotPending:
		if e := c.JSON(http.StatusConflict, errorResponse{"Only pending bids can be withdrawn"}); e != nil {
			return e
		}
	case service.ErrConcurrentConflict:
		if e := c.JSON(http.StatusConflict, errorResponse{"Bid changed concurrently, retry"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type decideBidInput struct {
	Decision string `json:"decision" validate:"required,oneof=accepted rejected"`
}

type decideBidResponse struct {
	Bid  *entity.BidOutputModel  `json:"bid"`
	Trip *entity.TripOutputModel `json:"trip,omitempty"`
}

// /bids/:bidId/decide
func (h *bidRoutesHandler) DecideBid(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	var input decideBidInput
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

	bid, trip, err := h.bidService.DecideBid(c.Request().Context(), c.Param("bidId"), requester, input.Decision)
	if err == nil {
		return c.JSON(http.StatusOK, decideBidResponse{Bid: bid, Trip: trip})
	}

	switch err {
	case service.ErrBidNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid with given id"}); e != nil {
			return e
		}
	case service.ErrNotLoadOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the shipper who posted the load can decide its bids"}); e != nil {
			return e
		}
	case service.ErrBidNotPending:
		if e := c.JSON(http.StatusConflict, errorResponse{"Bid has already been decided or withdrawn"}); e != nil {
			return e
		}
	case service.ErrLoadNotOpenForBids:
		if e := c.JSON(http.StatusConflict, errorResponse{"Load already has an accepted bid"}); e != nil {
			return e
		}
	case service.ErrConcurrentConflict:
		if e := c.JSON(http.StatusConflict, errorResponse{"Another decision won the race, retry"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
