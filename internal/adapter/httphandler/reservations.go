package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dsmarket/product-service/internal/core/domain"
	"github.com/dsmarket/product-service/internal/core/port"
)

// ReservationsHandler serves the internal endpoints the order service calls
// to hold, confirm and release stock.
type ReservationsHandler struct {
	reserver port.StockReserver
}

func RegisterReservations(mux *http.ServeMux, reserver port.StockReserver) {
	h := ReservationsHandler{reserver}

	mux.HandleFunc(
		"POST /api/v1/products/internal/reserve", h.PostReserve)
	mux.HandleFunc(
		"POST /api/v1/products/internal/confirm-reservation/{reservationId}",
		h.PostConfirm)
	mux.HandleFunc(
		"DELETE /api/v1/products/internal/reservation/{reservationId}",
		h.DeleteReservation)
}

func (h ReservationsHandler) PostReserve(
	w http.ResponseWriter, r *http.Request,
) {
	items, ok := decodeLineItems(w, r)
	if !ok {
		return
	}

	reservationID, err := h.reserver.Reserve(r.Context(), items)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reservationResponse{
		Message:       "Products reserved successfully",
		ReservationID: reservationID,
	})
}

func (h ReservationsHandler) PostConfirm(
	w http.ResponseWriter, r *http.Request,
) {
	items, ok := decodeLineItems(w, r)
	if !ok {
		return
	}

	err := h.reserver.Confirm(r.Context(), r.PathValue("reservationId"), items)
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Products purchase confirmed")
}

func (h ReservationsHandler) DeleteReservation(
	w http.ResponseWriter, r *http.Request,
) {
	items, ok := decodeLineItems(w, r)
	if !ok {
		return
	}

	err := h.reserver.Cancel(r.Context(), r.PathValue("reservationId"), items)
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Reservation cancelled, stock restored")
}

func decodeLineItems(
	w http.ResponseWriter, r *http.Request,
) ([]domain.LineItem, bool) {
	const op = "httphandler.decodeLineItems"
	log := slog.With("op", op)

	var req reservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return nil, false
	}

	if len(req.Items) == 0 {
		writeMessage(w, http.StatusBadRequest, "items are required")
		return nil, false
	}
	for _, it := range req.Items {
		if it.Product == "" || it.Quantity <= 0 {
			writeMessage(w, http.StatusBadRequest,
				"every item needs a product and a positive quantity")
			return nil, false
		}
	}

	return req.toDomain(), true
}
