package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/handler/dto"
	hmocks "github.com/Fresh-Industries/InflateMate-sub005/internal/handler/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/ginext"
)

func setupRouter(t *testing.T) (*hmocks.MockReservationSvc, *hmocks.MockAvailabilitySvc, *hmocks.MockCatalogSvc, http.Handler) {
	t.Helper()
	reservationSvc := hmocks.NewMockReservationSvc(t)
	availabilitySvc := hmocks.NewMockAvailabilitySvc(t)
	catalogSvc := hmocks.NewMockCatalogSvc(t)

	h := NewHandler(reservationSvc, availabilitySvc, catalogSvc)

	r := ginext.New("test")
	api := r.Group("/api")
	{
		api.POST("/businesses", h.CreateBusiness)
		api.GET("/businesses/:id", h.GetBusiness)
		api.POST("/businesses/:id/skus", h.CreateSKU)
		api.GET("/businesses/:id/skus", h.ListSKUs)
		api.GET("/businesses/:id/availability", h.CheckAvailability)
		api.POST("/businesses/:id/holds", h.PlaceHold)
		api.POST("/reservations/:id/promote", h.Promote)
		api.POST("/reservations/:id/cancel", h.CancelReservation)
		api.GET("/reservations/:id", h.GetReservation)
	}

	return reservationSvc, availabilitySvc, catalogSvc, r
}

func testBusiness(id string) *domain.Business {
	return &domain.Business{
		ID:           id,
		Name:         "Bounce Co",
		TimeZone:     "America/New_York",
		BufferBefore: time.Hour,
		BufferAfter:  time.Hour,
		CreatedAt:    time.Now(),
	}
}

func testReservation(id, businessID string, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:         id,
		BusinessID: businessID,
		Status:     status,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
		Lines: []domain.ReservationLine{
			{
				ID:            uuid.New().String(),
				ReservationID: id,
				SKUID:         uuid.New().String(),
				Quantity:      2,
				StartsAt:      time.Date(2026, 6, 5, 18, 0, 0, 0, time.UTC),
				EndsAt:        time.Date(2026, 6, 5, 22, 0, 0, 0, time.UTC),
				Status:        status,
			},
		},
	}
}

// --- Holds ---

func TestHandler_PlaceHold_Success(t *testing.T) {
	reservationSvc, _, catalogSvc, r := setupRouter(t)

	businessID := uuid.New().String()
	skuID := uuid.New().String()
	reservation := testReservation(uuid.New().String(), businessID, domain.ReservationStatusHold)

	catalogSvc.EXPECT().GetBusiness(mock.Anything, businessID).Return(testBusiness(businessID), nil)
	// 14:00 local in New York during DST is 18:00 UTC.
	reservationSvc.EXPECT().PlaceHold(mock.Anything, mock.MatchedBy(func(input domain.HoldInput) bool {
		return input.BusinessID == businessID &&
			len(input.Lines) == 1 &&
			input.Lines[0].StartsAt.Equal(time.Date(2026, 6, 5, 18, 0, 0, 0, time.UTC)) &&
			input.Lines[0].EndsAt.Equal(time.Date(2026, 6, 5, 22, 0, 0, 0, time.UTC))
	})).Return(reservation, nil)

	body, _ := json.Marshal(dto.PlaceHoldRequest{
		Date:      "2026-06-05",
		StartTime: "14:00",
		EndTime:   "18:00",
		Items:     []dto.HoldItem{{SKUID: skuID, Quantity: 2}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/businesses/"+businessID+"/holds", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.ReservationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "hold", resp.Status)
}

func TestHandler_PlaceHold_ZoneOverride(t *testing.T) {
	reservationSvc, _, catalogSvc, r := setupRouter(t)

	businessID := uuid.New().String()
	skuID := uuid.New().String()
	reservation := testReservation(uuid.New().String(), businessID, domain.ReservationStatusHold)

	catalogSvc.EXPECT().GetBusiness(mock.Anything, businessID).Return(testBusiness(businessID), nil)
	// The request's explicit UTC zone wins over the business's New York zone.
	reservationSvc.EXPECT().PlaceHold(mock.Anything, mock.MatchedBy(func(input domain.HoldInput) bool {
		return input.Lines[0].StartsAt.Equal(time.Date(2026, 6, 5, 14, 0, 0, 0, time.UTC))
	})).Return(reservation, nil)

	body, _ := json.Marshal(dto.PlaceHoldRequest{
		Date:      "2026-06-05",
		StartTime: "14:00",
		EndTime:   "18:00",
		TimeZone:  "UTC",
		Items:     []dto.HoldItem{{SKUID: skuID, Quantity: 1}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/businesses/"+businessID+"/holds", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_PlaceHold_InvalidBusinessID(t *testing.T) {
	_, _, _, r := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/businesses/bad-id/holds", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_PlaceHold_InvalidDate(t *testing.T) {
	_, _, catalogSvc, r := setupRouter(t)

	businessID := uuid.New().String()
	catalogSvc.EXPECT().GetBusiness(mock.Anything, businessID).Return(testBusiness(businessID), nil)

	body, _ := json.Marshal(dto.PlaceHoldRequest{
		Date:      "06/05/2026",
		StartTime: "14:00",
		EndTime:   "18:00",
		Items:     []dto.HoldItem{{SKUID: uuid.New().String(), Quantity: 1}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/businesses/"+businessID+"/holds", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_PlaceHold_BusinessNotFound(t *testing.T) {
	_, _, catalogSvc, r := setupRouter(t)

	businessID := uuid.New().String()
	catalogSvc.EXPECT().GetBusiness(mock.Anything, businessID).Return(nil, domain.ErrBusinessNotFound)

	body, _ := json.Marshal(dto.PlaceHoldRequest{
		Date:      "2026-06-05",
		StartTime: "14:00",
		EndTime:   "18:00",
		Items:     []dto.HoldItem{{SKUID: uuid.New().String(), Quantity: 1}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/businesses/"+businessID+"/holds", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_PlaceHold_Conflict(t *testing.T) {
	reservationSvc, _, catalogSvc, r := setupRouter(t)

	businessID := uuid.New().String()
	catalogSvc.EXPECT().GetBusiness(mock.Anything, businessID).Return(testBusiness(businessID), nil)
	reservationSvc.EXPECT().PlaceHold(mock.Anything, mock.Anything).Return(nil, domain.ErrReservationConflict)

	body, _ := json.Marshal(dto.PlaceHoldRequest{
		Date:      "2026-06-05",
		StartTime: "14:00",
		EndTime:   "18:00",
		Items:     []dto.HoldItem{{SKUID: uuid.New().String(), Quantity: 5}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/businesses/"+businessID+"/holds", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_PlaceHold_TemporarilyUnavailable(t *testing.T) {
	reservationSvc, _, catalogSvc, r := setupRouter(t)

	businessID := uuid.New().String()
	catalogSvc.EXPECT().GetBusiness(mock.Anything, businessID).Return(testBusiness(businessID), nil)
	reservationSvc.EXPECT().PlaceHold(mock.Anything, mock.Anything).Return(nil, domain.ErrTemporarilyUnavailable)

	body, _ := json.Marshal(dto.PlaceHoldRequest{
		Date:      "2026-06-05",
		StartTime: "14:00",
		EndTime:   "18:00",
		Items:     []dto.HoldItem{{SKUID: uuid.New().String(), Quantity: 1}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/businesses/"+businessID+"/holds", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// --- Promote / cancel ---

func TestHandler_Promote_Success(t *testing.T) {
	reservationSvc, _, _, r := setupRouter(t)

	id := uuid.New().String()
	promoted := testReservation(id, uuid.New().String(), domain.ReservationStatusConfirmed)

	reservationSvc.EXPECT().Promote(mock.Anything, id, mock.MatchedBy(func(input domain.PromoteInput) bool {
		return input.Status == domain.ReservationStatusConfirmed && input.CustomerName == "Dana"
	})).Return(promoted, nil)

	body, _ := json.Marshal(dto.PromoteRequest{
		Status:       "confirmed",
		CustomerName: "Dana",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations/"+id+"/promote", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ReservationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "confirmed", resp.Status)
	assert.Nil(t, resp.ExpiresAt)
}

func TestHandler_Promote_AmendedWindow(t *testing.T) {
	reservationSvc, _, _, r := setupRouter(t)

	id := uuid.New().String()
	skuID := uuid.New().String()
	promoted := testReservation(id, uuid.New().String(), domain.ReservationStatusConfirmed)

	reservationSvc.EXPECT().Promote(mock.Anything, id, mock.MatchedBy(func(input domain.PromoteInput) bool {
		return len(input.Lines) == 1 &&
			input.Lines[0].SKUID == skuID &&
			input.Lines[0].StartsAt.Equal(time.Date(2026, 6, 6, 9, 0, 0, 0, time.UTC))
	})).Return(promoted, nil)

	body, _ := json.Marshal(dto.PromoteRequest{
		Status:   "confirmed",
		TimeZone: "UTC",
		Items: []dto.PromoteItem{
			{SKUID: skuID, Quantity: 3, Date: "2026-06-06", StartTime: "09:00", EndTime: "12:00"},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations/"+id+"/promote", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_Promote_InvalidStatus(t *testing.T) {
	_, _, _, r := setupRouter(t)

	body := []byte(`{"status":"archived"}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations/"+uuid.New().String()+"/promote", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Promote_Expired(t *testing.T) {
	reservationSvc, _, _, r := setupRouter(t)

	id := uuid.New().String()
	reservationSvc.EXPECT().Promote(mock.Anything, id, mock.Anything).Return(nil, domain.ErrReservationExpired)

	body, _ := json.Marshal(dto.PromoteRequest{Status: "confirmed"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations/"+id+"/promote", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_Cancel_Success(t *testing.T) {
	reservationSvc, _, _, r := setupRouter(t)

	id := uuid.New().String()
	cancelled := testReservation(id, uuid.New().String(), domain.ReservationStatusCancelled)
	reservationSvc.EXPECT().Cancel(mock.Anything, id).Return(cancelled, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations/"+id+"/cancel", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ReservationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Status)
}

func TestHandler_Cancel_Closed(t *testing.T) {
	reservationSvc, _, _, r := setupRouter(t)

	id := uuid.New().String()
	reservationSvc.EXPECT().Cancel(mock.Anything, id).Return(nil, domain.ErrReservationClosed)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations/"+id+"/cancel", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_GetReservation_Success(t *testing.T) {
	reservationSvc, _, _, r := setupRouter(t)

	id := uuid.New().String()
	reservationSvc.EXPECT().GetByID(mock.Anything, id).
		Return(testReservation(id, uuid.New().String(), domain.ReservationStatusPending), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reservations/"+id, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_GetReservation_NotFound(t *testing.T) {
	reservationSvc, _, _, r := setupRouter(t)

	id := uuid.New().String()
	reservationSvc.EXPECT().GetByID(mock.Anything, id).Return(nil, domain.ErrReservationNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reservations/"+id, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_GetReservation_InvalidID(t *testing.T) {
	_, _, _, r := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reservations/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Availability ---

func TestHandler_CheckAvailability_Success(t *testing.T) {
	_, availabilitySvc, _, r := setupRouter(t)

	businessID := uuid.New().String()
	skuID := uuid.New().String()
	start := time.Date(2026, 6, 5, 14, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 5, 18, 0, 0, 0, time.UTC)

	availabilitySvc.EXPECT().Check(mock.Anything, businessID, skuID, start, end).Return(3, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/businesses/"+businessID+"/availability?sku_id="+skuID+
			"&date=2026-06-05&start_time=14:00&end_time=18:00&time_zone=UTC", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.AvailabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.AvailableUnits)
	assert.Equal(t, skuID, resp.SKUID)
}

func TestHandler_CheckAvailability_DefaultsToBusinessZone(t *testing.T) {
	_, availabilitySvc, catalogSvc, r := setupRouter(t)

	businessID := uuid.New().String()
	skuID := uuid.New().String()
	// 14:00 New York summer time is 18:00 UTC.
	start := time.Date(2026, 6, 5, 18, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 5, 22, 0, 0, 0, time.UTC)

	catalogSvc.EXPECT().GetBusiness(mock.Anything, businessID).Return(testBusiness(businessID), nil)
	availabilitySvc.EXPECT().Check(mock.Anything, businessID, skuID, start, end).Return(1, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/businesses/"+businessID+"/availability?sku_id="+skuID+
			"&date=2026-06-05&start_time=14:00&end_time=18:00", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_CheckAvailability_MissingSKU(t *testing.T) {
	_, _, _, r := setupRouter(t)

	businessID := uuid.New().String()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/businesses/"+businessID+"/availability?date=2026-06-05&start_time=14:00&end_time=18:00", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Catalog ---

func TestHandler_CreateBusiness_Success(t *testing.T) {
	_, _, catalogSvc, r := setupRouter(t)

	business := testBusiness(uuid.New().String())
	catalogSvc.EXPECT().CreateBusiness(mock.Anything, mock.MatchedBy(func(input domain.CreateBusinessInput) bool {
		return input.Name == "Bounce Co" && input.BufferBefore == 90*time.Minute
	})).Return(business, nil)

	body, _ := json.Marshal(dto.CreateBusinessRequest{
		Name:                "Bounce Co",
		TimeZone:            "America/New_York",
		BufferBeforeMinutes: 90,
		BufferAfterMinutes:  60,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/businesses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.BusinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "America/New_York", resp.TimeZone)
}

func TestHandler_CreateBusiness_InvalidZone(t *testing.T) {
	_, _, catalogSvc, r := setupRouter(t)

	catalogSvc.EXPECT().CreateBusiness(mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidTimeZone)

	body, _ := json.Marshal(dto.CreateBusinessRequest{Name: "X", TimeZone: "Not/AZone"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/businesses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreateSKU_Success(t *testing.T) {
	_, _, catalogSvc, r := setupRouter(t)

	businessID := uuid.New().String()
	sku := &domain.InventorySKU{
		ID:            uuid.New().String(),
		BusinessID:    businessID,
		Name:          "12-ft bounce castle",
		TotalQuantity: 4,
		CreatedAt:     time.Now(),
	}
	catalogSvc.EXPECT().CreateSKU(mock.Anything, mock.Anything).Return(sku, nil)

	body, _ := json.Marshal(dto.CreateSKURequest{Name: "12-ft bounce castle", TotalQuantity: 4})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/businesses/"+businessID+"/skus", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.SKUResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.TotalQuantity)
}

func TestHandler_ListSKUs_Success(t *testing.T) {
	_, _, catalogSvc, r := setupRouter(t)

	businessID := uuid.New().String()
	skus := []*domain.InventorySKU{
		{ID: "s1", BusinessID: businessID, Name: "castle", TotalQuantity: 4},
		{ID: "s2", BusinessID: businessID, Name: "slide", TotalQuantity: 2},
	}
	catalogSvc.EXPECT().ListSKUs(mock.Anything, businessID).Return(skus, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/businesses/"+businessID+"/skus", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []dto.SKUResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestHandler_HandleError_InternalError(t *testing.T) {
	reservationSvc, _, _, r := setupRouter(t)

	id := uuid.New().String()
	reservationSvc.EXPECT().GetByID(mock.Anything, id).Return(nil, assert.AnError)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reservations/"+id, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
