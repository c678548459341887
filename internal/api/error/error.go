// Package error defines the JSON error body returned by the API.
package error

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type Error struct {
	Status  int       `json:"status"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	ErrorID string    `json:"error_id"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// EncodeError writes an error body with the status mapped from code.
func EncodeError(w http.ResponseWriter, code ErrorCode, message, errorID string) error {
	status := code.StatusCode()
	if status == 0 {
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Error{
		Status:  status,
		Code:    code,
		Message: message,
		ErrorID: errorID,
	}); err != nil {
		return fmt.Errorf("encoding error body: %w", err)
	}
	return nil
}

func EncodeInternalError(w http.ResponseWriter, errorID string) error {
	return EncodeError(w, InternalServerError, "internal server error", errorID)
}
