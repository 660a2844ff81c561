package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/spinacademy/lessons-api/internal/middleware"
)

func TestOpenSlotsHandler(t *testing.T) {
	repo := &repoStub{}
	svc := newTestService(repo, mondayWindow("09:00", "12:00"))
	handler := NewHandler(svc)

	req := httptest.NewRequest(http.MethodGet,
		"/slots?instructor_id="+uuid.New().String()+"&date=2026-09-07", nil)
	rec := httptest.NewRecorder()

	handler.OpenSlots(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool          `json:"success"`
		Data    SlotsResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Fatal("expected success envelope")
	}
	if len(body.Data.Slots) != 3 {
		t.Fatalf("expected 3 slots, got %v", body.Data.Slots)
	}
}

func TestOpenSlotsHandlerBadDate(t *testing.T) {
	handler := NewHandler(newTestService(&repoStub{}, nil))

	req := httptest.NewRequest(http.MethodGet,
		"/slots?instructor_id="+uuid.New().String()+"&date=tomorrow", nil)
	rec := httptest.NewRecorder()

	handler.OpenSlots(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReserveHandlerSlotConflict(t *testing.T) {
	repo := &repoStub{createErr: ErrSlotUnavailable}
	handler := NewHandler(newTestService(repo, mondayWindow("09:00", "12:00")))

	payload := `{
		"instructor_id": "` + uuid.New().String() + `",
		"category": "dj",
		"start_time": "2026-09-07T09:00:00Z",
		"hours": 1
	}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, uuid.New()))
	rec := httptest.NewRecorder()

	handler.Reserve(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "SLOT_UNAVAILABLE") {
		t.Fatalf("expected SLOT_UNAVAILABLE code, got %s", rec.Body.String())
	}
}
