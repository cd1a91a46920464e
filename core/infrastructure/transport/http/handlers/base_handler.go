package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/hyperterse/reportdeck/core/infrastructure/logging"
	"github.com/hyperterse/reportdeck/core/infrastructure/transport/http/dto"
	apperrors "github.com/hyperterse/reportdeck/core/shared/errors"
)

// BaseHandler carries the response helpers shared by the API handlers.
type BaseHandler struct {
	logger logging.Logger
}

// NewBaseHandler creates a base handler logging under tag.
func NewBaseHandler(tag string) *BaseHandler {
	return &BaseHandler{logger: logging.New(tag)}
}

// WriteJSON encodes body with the given status.
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Errorf("Encoding %T response: %v", body, err)
	}
}

// WriteSuccess writes body with 200.
func (h *BaseHandler) WriteSuccess(w http.ResponseWriter, body any) {
	h.WriteJSON(w, http.StatusOK, body)
}

// WriteError maps err to a status and code. Errors without an AppError in
// their chain are a 500 INTERNAL_ERROR.
func (h *BaseHandler) WriteError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewAppError(apperrors.ErrCodeInternalError, err.Error(), err)
	}

	if appErr.Status >= http.StatusInternalServerError {
		h.logger.Errorf("Request failed: %v", err)
	} else {
		h.logger.Warnf("Request rejected: %v", err)
	}

	h.WriteJSON(w, appErr.Status, dto.ErrorResponse{
		Success: false,
		Code:    string(appErr.Code),
		Error:   appErr.Message,
	})
}

// WriteValidationError writes a 400 listing fields (name → rule) in name
// order.
func (h *BaseHandler) WriteValidationError(w http.ResponseWriter, fields map[string]string) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	details := make([]dto.ErrorDetail, len(names))
	for i, name := range names {
		details[i] = dto.ErrorDetail{Field: name, Tag: fields[name], Message: "Validation failed"}
	}

	h.WriteJSON(w, http.StatusBadRequest, dto.ValidationErrorResponse{
		Success: false,
		Error:   "Validation failed",
		Details: details,
	})
}
