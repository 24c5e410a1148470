package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/timecard-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ShiftHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService: shiftService,
	}
}

func shiftFilter(r *http.Request) (shift.MonthFilter, error) {
	year, month, err := monthQuery(r, time.Now())
	if err != nil {
		return shift.MonthFilter{}, err
	}
	return shift.MonthFilter{Year: year, Month: month}, nil
}

// List handles GET /shifts
func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := shiftFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	shifts, err := h.shiftService.GetShifts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, shifts)
}

// ListAll handles GET /shifts/all
func (h *shiftHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	filter, err := shiftFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	shifts, err := h.shiftService.GetAllShifts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, shifts)
}

// Upsert handles PUT /shifts
func (h *shiftHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req shift.UpsertShiftRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Upsert shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	saved, err := h.shiftService.AddShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift saved successfully", saved)
}

// Delete handles DELETE /shifts/{id}
func (h *shiftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	req := shift.DeleteShiftRequest{ID: chi.URLParam(r, "id")}

	if err := h.shiftService.DeleteShift(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift deleted successfully", nil)
}
