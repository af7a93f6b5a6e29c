package common

import (
	"encoding/json"
	"net/http"
	"predictions-api/logger"
	"time"

	"github.com/sirupsen/logrus"
)

// AppError is the single error envelope every failure is translated into at the
// HTTP boundary. Err carries the internal cause and is logged, never serialized.
type AppError struct {
	Code      int       `json:"status"`
	Reason    string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Err       error     `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:      code,
		Reason:    http.StatusText(code),
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(e)
}
