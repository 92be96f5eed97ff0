package handler

import (
	"fmt"
	"net/http"

	"github.com/sh3r4rd/upload_url/internal/model"
)

// Outcome classifies how a request ended.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeClientError
	OutcomeServerError
	OutcomePreflight
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeClientError:
		return "client_error"
	case OutcomeServerError:
		return "server_error"
	case OutcomePreflight:
		return "preflight"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result is the typed outcome of one invocation. Grant is set on success,
// Failure on client and server errors. Err keeps the cause of a server
// error for logging and inspection.
type Result struct {
	Outcome Outcome
	Grant   model.UploadResponse
	Failure model.ErrorResponse
	Err     error
}

func success(grant model.UploadResponse) Result {
	return Result{Outcome: OutcomeSuccess, Grant: grant}
}

func clientError(msg, detail string) Result {
	return Result{
		Outcome: OutcomeClientError,
		Failure: model.ErrorResponse{Error: msg, Message: detail},
	}
}

// serverError always carries a non-empty detail; the cause's type name
// stands in when its text is empty.
func serverError(msg, detail string, err error) Result {
	if detail == "" {
		detail = fmt.Sprintf("%T", err)
	}
	return Result{
		Outcome: OutcomeServerError,
		Failure: model.ErrorResponse{Error: msg, Message: detail},
		Err:     err,
	}
}

// StatusCode maps the outcome to an HTTP status.
func (r Result) StatusCode() int {
	switch r.Outcome {
	case OutcomeSuccess, OutcomePreflight:
		return http.StatusOK
	case OutcomeClientError:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
