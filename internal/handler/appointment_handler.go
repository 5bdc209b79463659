package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"salon-booking-api/internal/booking"
	"salon-booking-api/internal/lib/logger/sl"
	"salon-booking-api/internal/logging"
)

const (
	maxBodyBytes = 1 << 16

	msgBooked      = "appointment booked"
	msgBadBody     = "invalid request body"
	msgServerError = "server error"
)

type bookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.FromContext(ctx, h.log)

	var req booking.Request
	// an empty body is treated like {} and fails validation
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: msgBadBody})
		return
	}

	_, err := h.booking.Book(ctx, req)
	switch {
	case err == nil:
		h.writeJSON(ctx, w, http.StatusOK, bookResponse{Success: true, Message: msgBooked})
	case errors.Is(err, booking.ErrShopClosed):
		h.writeJSON(ctx, w, http.StatusForbidden, errorResponse{Error: booking.ErrShopClosed.Error()})
	case errors.Is(err, booking.ErrMissingData):
		h.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: booking.ErrMissingData.Error()})
	case errors.Is(err, booking.ErrInvalidDateTime):
		h.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: booking.ErrInvalidDateTime.Error()})
	case errors.Is(err, booking.ErrSlotTaken):
		h.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: booking.ErrSlotTaken.Error()})
	default:
		log.ErrorContext(ctx, "booking failed", sl.Err(err))
		h.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: msgServerError})
	}
}
