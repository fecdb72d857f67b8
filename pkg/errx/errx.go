package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// PersistenceErrorMessage is shown when the storage layer rejects a write.
	PersistenceErrorMessage = "could not save, please try again"
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

func (e *AppError) Error() string {
	if e.Err == nil || e.Err.Error() == e.Message {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// Persistence marks a failed write to the storage collaborator.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, PersistenceErrorMessage)
}

// Validation reports operator input that failed checks; the message is the
// underlying error's, which is safe to show.
func Validation(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadRequest, err.Error())
}

func BadRequest(err error, message string) error {
	return New(err, http.StatusBadRequest, message)
}

func NotFound(err error, message string) error {
	return New(err, http.StatusNotFound, message)
}

func Conflict(err error, message string) error {
	return New(err, http.StatusConflict, message)
}

// IsPersistence reports whether err was produced by Persistence.
func IsPersistence(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Message == PersistenceErrorMessage
}

// StatusAndMessage resolves the response status and message for err.
func StatusAndMessage(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}
	return http.StatusInternalServerError, SystemErrorMessage
}
