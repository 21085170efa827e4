// Package response is the JSON envelope shared by the HTTP handlers.
package response

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

func Ok(data any) Response {
	return Response{Status: StatusOK, Data: data}
}

func Error(msg string) Response {
	return Response{Status: StatusError, Error: msg}
}

// ValidationError renders validator failures as one readable message.
func ValidationError(err error) Response {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return Error(err.Error())
	}

	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := strings.ToLower(fe.Field())
		switch fe.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", field))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s exceeds %s characters", field, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of: %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", field))
		}
	}
	return Error(strings.Join(msgs, ", "))
}
