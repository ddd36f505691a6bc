package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dsmarket/product-service/internal/core/domain"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "err", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{msg})
}

// badRequestErrors are the domain failures surfaced as 400 with their own
// message. Missing records map to 400, not 404, matching the service's
// established contract with its consumers.
var badRequestErrors = map[error]string{
	domain.ErrProductNotFound:     "Product not found",
	domain.ErrCategoryNotFound:    "Category not found",
	domain.ErrSubCategoryNotFound: "Subcategory not found",
	domain.ErrInsufficientStock:   "Insufficient stock",
	domain.ErrDuplicateCode:       "Product code already exists",
	domain.ErrDuplicateCategory:   "Category already exists",
}

func writeError(w http.ResponseWriter, err error) {
	for sentinel, msg := range badRequestErrors {
		if errors.Is(err, sentinel) {
			writeMessage(w, http.StatusBadRequest, msg)
			return
		}
	}

	if errors.Is(err, domain.ErrNotOwner) {
		writeMessage(w, http.StatusForbidden,
			"You can only modify your own products")
		return
	}

	slog.Error("unexpected failure", "err", err)
	writeMessage(w, http.StatusInternalServerError, "internal server error")
}
