package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Details []entity.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps use-case errors onto HTTP statuses.
func writeError(w http.ResponseWriter, log *logrus.Entry, err error) {
	var (
		verr *usecase.ValidationError
		derr *usecase.DomainError
		terr *usecase.TechnicalError
	)

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR", Message: verr.Error(), Details: verr.Errors})
	case errors.Is(err, entity.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "NOT_FOUND", Message: err.Error()})
	case errors.As(err, &derr):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: derr.Code, Message: derr.Message})
	case errors.As(err, &terr):
		log.WithError(err).Error("upstream failure")
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: terr.Code, Message: terr.Message})
	default:
		log.WithError(err).Error("unexpected error")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL_ERROR", Message: "internal server error"})
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return entity.NewValidationError("body", fmt.Sprintf("invalid JSON: %v", err))
	}
	return nil
}
