package handlers

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// ErrorBody is the JSON shape of every error response: {"error": "..."}.
type ErrorBody struct {
	status  int
	Message string `doc:"Human readable error" example:"URL not found" json:"error"`
}

func (e *ErrorBody) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *ErrorBody) GetStatus() int {
	return e.status
}

// NewErrorBody builds an error response. Details from errs, such as huma's
// validation failures, are appended to msg.
func NewErrorBody(status int, msg string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))

	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}

	if len(details) > 0 {
		msg += ": " + strings.Join(details, "; ")
	}

	return &ErrorBody{status: status, Message: msg}
}

func init() {
	huma.NewError = NewErrorBody
}
