package controller

import (
	"net/http"
	"strings"

	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type disputeRoutesHandler struct {
	disputeService service.Dispute
	validate       *validator.Validate
}

func newDisputeRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *disputeRoutesHandler {
	h := &disputeRoutesHandler{disputeService: services.Dispute, validate: v}

	outer.POST("/disputes", h.PostDispute)
	outer.GET("/disputes/:disputeId", h.GetDispute)
	outer.POST("/disputes/:disputeId/respond", h.RespondDispute)
	outer.POST("/disputes/:disputeId/resolve", h.ResolveDispute)
	outer.POST("/disputes/:disputeId/escalate", h.EscalateDispute)

	return h
}

type postDisputeInput struct {
	TripId       string   `json:"tripId" validate:"required,uuid"`
	IssueType    string   `json:"issueType" validate:"required,oneof=damage delay missing_items payment other"`
	Description  string   `json:"description" validate:"required,max=2000"`
	EvidenceUrls []string `json:"evidenceUrls" validate:"dive,max=500"`
}

// /disputes
func (h *disputeRoutesHandler) PostDispute(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	var input postDisputeInput
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

	model := &entity.FileDisputeInput{
		TripId:       input.TripId,
		ShipperId:    requester,
		IssueType:    input.IssueType,
		Description:  input.Description,
		EvidenceUrls: input.EvidenceUrls,
	}

	dispute, err := h.disputeService.FileDispute(c.Request().Context(), model)
	if err == nil {
		return c.JSON(http.StatusCreated, dispute)
	}

	switch err {
	case service.ErrTripNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no trip with given id"}); e != nil {
			return e
		}
	case service.ErrNotLoadOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the load's shipper can file a dispute"}); e != nil {
			return e
		}
	case service.ErrTripNotDisputable:
		if e := c.JSON(http.StatusConflict, errorResponse{"Disputes can only be filed after delivery"}); e != nil {
			return e
		}
	case service.ErrDisputeAlreadyExists:
		if e := c.JSON(http.StatusConflict, errorResponse{"A dispute already exists for this trip"}); e != nil {
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

// /disputes/:disputeId
func (h *disputeRoutesHandler) GetDispute(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	dispute, err := h.disputeService.GetDisputeById(c.Request().Context(), c.Param("disputeId"), requester)
	if err == nil {
		return c.JSON(http.StatusOK, dispute)
	}

	switch err {
	case service.ErrDisputeNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no dispute with given id"}); e != nil {
			return e
		}
	case service.ErrNotTripParticipant:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the dispute's parties can see it"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type respondDisputeInput struct {
	Response string `json:"response" validate:"required,max=2000"`
}

// /disputes/:disputeId/respond
func (h *disputeRoutesHandler) RespondDispute(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	var input respondDisputeInput
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

	dispute, err := h.disputeService.Respond(c.Request().Context(), c.Param("disputeId"), requester, input.Response)
	if err == nil {
		return c.JSON(http.StatusOK, dispute)
	}

	switch err {
	case service.ErrDisputeNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no dispute with given id"}); e != nil {
			return e
		}
	case service.ErrNotAssignedCarrier:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the assigned carrier can respond to the dispute"}); e != nil {
			return e
		}
	case service.ErrDisputeNotOpen:
		if e := c.JSON(http.StatusConflict, errorResponse{"Dispute is not open for a response"}); e != nil {
			return e
		}
	case service.ErrConcurrentConflict:
		if e := c.JSON(http.StatusConflict, errorResponse{"Dispute changed concurrently, retry"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type resolveDisputeInput struct {
	Note string `json:"note" validate:"max=2000"`
}

// /disputes/:disputeId/resolve
func (h *disputeRoutesHandler) ResolveDispute(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	var input resolveDisputeInput
	if err := c.Bind(&input); err != nil {
		msg := err.Error()
		if !strings.Contains(msg, "Request body can't be empty") {
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
				return e
			}

			return err
		}
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	dispute, err := h.disputeService.Resolve(c.Request().Context(), c.Param("disputeId"), requester, input.Note)
	if err == nil {
		return c.JSON(http.StatusOK, dispute)
	}

	switch err {
	case service.ErrDisputeNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no dispute with given id"}); e != nil {
			return e
		}
	case service.ErrNotDisputeFiler:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the shipper who filed the dispute can resolve it"}); e != nil {
			return e
		}
	case service.ErrDisputeClosed:
		if e := c.JSON(http.StatusConflict, errorResponse{"Dispute has already been closed"}); e != nil {
			return e
		}
	case service.ErrConcurrentConflict:
		if e := c.JSON(http.StatusConflict, errorResponse{"Dispute changed concurrently, retry"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /disputes/:disputeId/escalate
func (h *disputeRoutesHandler) EscalateDispute(c echo.Context) error {
	requester, ok := requesterId(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{"Pass a valid X-User-Id header"})
	}

	dispute, err := h.disputeService.Escalate(c.Request().Context(), c.Param("disputeId"), requester)
	if err == nil {
		return c.JSON(http.StatusOK, dispute)
	}

	switch err {
	case service.ErrDisputeNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no dispute with given id"}); e != nil {
			return e
		}
	case service.ErrNotDisputeFiler:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the shipper who filed the dispute can escalate it"}); e != nil {
			return e
		}
	case service.ErrDisputeClosed:
		if e := c.JSON(http.StatusConflict, errorResponse{"Dispute has already been closed"}); e != nil {
			return e
		}
	case service.ErrConcurrentConflict:
		if e := c.JSON(http.StatusConflict, errorResponse{"Dispute changed concurrently, retry"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
