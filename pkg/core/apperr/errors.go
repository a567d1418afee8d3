// Package apperr defines the error taxonomy shared by the extraction and chat
// pipelines. Handlers classify failures with errors.As and map each kind to an
// HTTP status code.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// InputValidationError means client-supplied data was rejected.
type InputValidationError struct {
	Msg string
}

func (e *InputValidationError) Error() string { return e.Msg }

// ExtractionError means the uploaded PDF could not be read.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return "unreadable PDF"
	}
	return e.Err.Error()
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ModelUnavailableError means no model client is configured or it failed to initialize.
type ModelUnavailableError struct {
	Provider string
	Err      error
}

func (e *ModelUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model provider %q unavailable: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("model provider %q unavailable", e.Provider)
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }

// ModelCallError means the remote model call failed or returned nothing.
type ModelCallError struct {
	Provider string
	Err      error
}

func (e *ModelCallError) Error() string {
	return fmt.Sprintf("%s call failed: %v", e.Provider, e.Err)
}

func (e *ModelCallError) Unwrap() error { return e.Err }

// MalformedResponseError means the model output could not be parsed as JSON.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("Invalid JSON format: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// SchemaError means parsed model output did not have the expected shape.
// Path names the offending section, e.g. "income_statement" or
// "balance_sheet.assets.current".
type SchemaError struct {
	Path string
	Msg  string
}

func (e *SchemaError) Error() string { return e.Msg }

// ErrEmptyResponse is wrapped in a ModelCallError when the model returns no text.
var ErrEmptyResponse = errors.New("empty response from model")

// StatusCode maps an error to the HTTP status used at the upload endpoint.
func StatusCode(err error) int {
	var (
		inputErr   *InputValidationError
		extractErr *ExtractionError
		unavailErr *ModelUnavailableError
		callErr    *ModelCallError
		malformed  *MalformedResponseError
		schemaErr  *SchemaError
	)
	switch {
	case errors.As(err, &inputErr), errors.As(err, &extractErr),
		errors.As(err, &malformed), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &unavailErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &callErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
