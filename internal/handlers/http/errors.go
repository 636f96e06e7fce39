package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/KirkDiggler/fairdice/internal/common/fault"
	"go.uber.org/zap"
)

// HandlerError is a custom error type for router configuration errors
type HandlerError string

// Error implements the error interface
func (e HandlerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig      HandlerError = "config cannot be nil"
	ErrNilRollService HandlerError = "roll service cannot be nil"
)

// Transport-level codes outside the domain enumeration
const (
	codeInvalidRequest  = "INVALID_REQUEST"
	codeUnauthenticated = "UNAUTHENTICATED"
	codeInternal        = "INTERNAL"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusFor maps an error to its HTTP status
func statusFor(err error) int {
	switch fault.KindOf(err) {
	case fault.KindInvalidInput:
		return http.StatusBadRequest
	case fault.KindResourceState:
		if fault.CodeOf(err) == fault.CodeAccountNotFound {
			return http.StatusNotFound
		}
		return http.StatusConflict
	case fault.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports err to the client. Internal details stay in the log.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	var fe *fault.Error
	if !errors.As(err, &fe) || fe.Kind() == fault.KindInternal {
		h.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, status, errorResponse{Error: "internal error", Code: codeInternal})
		return
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}

	writeJSON(w, status, errorResponse{Error: fe.Message, Code: string(fe.Code)})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
