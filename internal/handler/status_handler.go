package handler

import (
	"net/http"

	"salon-booking-api/internal/lib/logger/sl"
	"salon-booking-api/internal/logging"
)

type statusResponse struct {
	IsOpen bool   `json:"is_open"`
	Error  string `json:"error,omitempty"`
}

// Status answers 500 when the flag cannot be read but still reports the
// fallback value, so clients keep the same view as the booking gate.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	open, err := h.booking.Status(ctx)
	if err != nil {
		logging.FromContext(ctx, h.log).ErrorContext(ctx, "failed to read shop status", sl.Err(err))
		h.writeJSON(ctx, w, http.StatusInternalServerError, statusResponse{IsOpen: open, Error: msgServerError})
		return
	}
	h.writeJSON(ctx, w, http.StatusOK, statusResponse{IsOpen: open})
}
