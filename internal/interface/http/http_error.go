package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/linjia/ai-closet/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

// domainError translates a service error into an HTTPError using the
// application error code carried by the error chain.
func domainError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case "invalid_input":
		status = http.StatusBadRequest
	case "not_found":
		status = http.StatusNotFound
	case "conflict":
		status = http.StatusConflict
	case "unauthorized":
		status = http.StatusUnauthorized
	case "llm_error":
		status = http.StatusBadGateway
	case "":
		code = "internal_error"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
