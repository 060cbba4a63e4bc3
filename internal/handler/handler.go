package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/handler/dto"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/timeutil"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
)

type ReservationSvc interface {
	PlaceHold(ctx context.Context, input domain.HoldInput) (*domain.Reservation, error)
	Promote(ctx context.Context, id string, input domain.PromoteInput) (*domain.Reservation, error)
	Cancel(ctx context.Context, id string) (*domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
}

type AvailabilitySvc interface {
	Check(ctx context.Context, businessID, skuID string, start, end time.Time) (int, error)
}

type CatalogSvc interface {
	CreateBusiness(ctx context.Context, input domain.CreateBusinessInput) (*domain.Business, error)
	GetBusiness(ctx context.Context, id string) (*domain.Business, error)
	CreateSKU(ctx context.Context, input domain.CreateSKUInput) (*domain.InventorySKU, error)
	ListSKUs(ctx context.Context, businessID string) ([]*domain.InventorySKU, error)
}

type Handler struct {
	reservationService  ReservationSvc
	availabilityService AvailabilitySvc
	catalogService      CatalogSvc
}

func NewHandler(reservationService ReservationSvc, availabilityService AvailabilitySvc, catalogService CatalogSvc) *Handler {
	return &Handler{
		reservationService:  reservationService,
		availabilityService: availabilityService,
		catalogService:      catalogService,
	}
}

// Reservations

func (h *Handler) PlaceHold(c *ginext.Context) {
	businessID := c.Param("id")
	if _, err := uuid.Parse(businessID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid business id"})
		return
	}

	var req dto.PlaceHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	business, err := h.catalogService.GetBusiness(c.Request.Context(), businessID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	zone := req.TimeZone
	if zone == "" {
		zone = business.TimeZone
	}

	start, end, err := resolveWindow(req.Date, req.EndDate, req.StartTime, req.EndTime, zone)
	if err != nil {
		h.handleError(c, err)
		return
	}

	input := domain.HoldInput{
		ReservationID: req.ReservationID,
		BusinessID:    businessID,
	}
	for _, item := range req.Items {
		input.Lines = append(input.Lines, domain.LineInput{
			SKUID:    item.SKUID,
			Quantity: item.Quantity,
			StartsAt: start,
			EndsAt:   end,
		})
	}

	res, err := h.reservationService.PlaceHold(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReservationResponse(res))
}

func (h *Handler) Promote(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid reservation id"})
		return
	}

	var req dto.PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	input := domain.PromoteInput{
		Status:        domain.ReservationStatus(req.Status),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
	}

	for _, item := range req.Items {
		ln := domain.LineInput{SKUID: item.SKUID, Quantity: item.Quantity}

		if item.Date != "" || item.StartTime != "" || item.EndTime != "" {
			zone := req.TimeZone
			if zone == "" {
				business, err := h.businessOfReservation(c.Request.Context(), id)
				if err != nil {
					h.handleError(c, err)
					return
				}
				zone = business.TimeZone
			}

			start, end, err := resolveWindow(item.Date, item.EndDate, item.StartTime, item.EndTime, zone)
			if err != nil {
				h.handleError(c, err)
				return
			}
			ln.StartsAt, ln.EndsAt = start, end
		}

		input.Lines = append(input.Lines, ln)
	}

	res, err := h.reservationService.Promote(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationResponse(res))
}

func (h *Handler) CancelReservation(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid reservation id"})
		return
	}

	res, err := h.reservationService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationResponse(res))
}

func (h *Handler) GetReservation(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid reservation id"})
		return
	}

	res, err := h.reservationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationResponse(res))
}

// Availability

func (h *Handler) CheckAvailability(c *ginext.Context) {
	businessID := c.Param("id")
	if _, err := uuid.Parse(businessID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid business id"})
		return
	}

	skuID := c.Query("sku_id")
	if _, err := uuid.Parse(skuID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid sku_id"})
		return
	}

	zone := c.Query("time_zone")
	if zone == "" {
		business, err := h.catalogService.GetBusiness(c.Request.Context(), businessID)
		if err != nil {
			h.handleError(c, err)
			return
		}
		zone = business.TimeZone
	}

	start, end, err := resolveWindow(
		c.Query("date"), c.Query("end_date"),
		c.Query("start_time"), c.Query("end_time"),
		zone,
	)
	if err != nil {
		h.handleError(c, err)
		return
	}

	units, err := h.availabilityService.Check(c.Request.Context(), businessID, skuID, start, end)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AvailabilityResponse{
		SKUID:          skuID,
		StartsAt:       start.Format(time.RFC3339),
		EndsAt:         end.Format(time.RFC3339),
		AvailableUnits: units,
	})
}

// Catalog

func (h *Handler) CreateBusiness(c *ginext.Context) {
	var req dto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	input := domain.CreateBusinessInput{
		Name:           req.Name,
		TimeZone:       req.TimeZone,
		BufferBefore:   time.Duration(req.BufferBeforeMinutes) * time.Minute,
		BufferAfter:    time.Duration(req.BufferAfterMinutes) * time.Minute,
		TelegramChatID: req.TelegramChatID,
	}

	business, err := h.catalogService.CreateBusiness(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBusinessResponse(business))
}

func (h *Handler) GetBusiness(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid business id"})
		return
	}

	business, err := h.catalogService.GetBusiness(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

func (h *Handler) CreateSKU(c *ginext.Context) {
	businessID := c.Param("id")
	if _, err := uuid.Parse(businessID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid business id"})
		return
	}

	var req dto.CreateSKURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	sku, err := h.catalogService.CreateSKU(c.Request.Context(), domain.CreateSKUInput{
		BusinessID:    businessID,
		Name:          req.Name,
		TotalQuantity: req.TotalQuantity,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSKUResponse(sku))
}

func (h *Handler) ListSKUs(c *ginext.Context) {
	businessID := c.Param("id")
	if _, err := uuid.Parse(businessID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid business id"})
		return
	}

	skus, err := h.catalogService.ListSKUs(c.Request.Context(), businessID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.SKUResponse, 0, len(skus))
	for _, s := range skus {
		resp = append(resp, dto.ToSKUResponse(s))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) businessOfReservation(ctx context.Context, reservationID string) (*domain.Business, error) {
	res, err := h.reservationService.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	return h.catalogService.GetBusiness(ctx, res.BusinessID)
}

// resolveWindow turns a wall-clock window in an IANA zone into UTC instants.
// An empty endDate means the window ends on its start date.
func resolveWindow(date, endDate, startTime, endTime, zone string) (time.Time, time.Time, error) {
	if endDate == "" {
		endDate = date
	}

	start, err := timeutil.Normalize(date, startTime, zone)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := timeutil.Normalize(endDate, endTime, zone)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, end, nil
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())

	switch {
	case errors.Is(err, domain.ErrBusinessNotFound),
		errors.Is(err, domain.ErrSKUNotFound),
		errors.Is(err, domain.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrReservationConflict),
		errors.Is(err, domain.ErrReservationExpired),
		errors.Is(err, domain.ErrReservationClosed):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTimeZone),
		errors.Is(err, domain.ErrInvalidDateTime):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrTemporarilyUnavailable):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
