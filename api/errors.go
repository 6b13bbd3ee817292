package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-product-compare/catalog"
	"github.com/goliatone/go-product-compare/comparison"
	slogcontext "github.com/veqryn/slog-context"
)

// Text codes produced by the transport layer.
const (
	TextCodeBadRequest      = "BAD_REQUEST"
	TextCodeInvalidArgument = "INVALID_ARGUMENT"
	TextCodeInternal        = "INTERNAL_SERVER_ERROR"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Timestamp        time.Time         `json:"timestamp"`
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Message          string            `json:"message"`
	Details          string            `json:"details,omitempty"`
	Path             string            `json:"path"`
	ValidationErrors []ValidationError `json:"validationErrors,omitempty"`
}

// ValidationError describes one rejected input value.
type ValidationError struct {
	Field         string `json:"field"`
	RejectedValue any    `json:"rejectedValue,omitempty"`
	Message       string `json:"message"`
}

func newMissingParameterError(name string) *goerrors.Error {
	return goerrors.New("Required parameter '"+name+"' is missing", goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(TextCodeBadRequest)
}

func newInvalidArgumentError(err error) *goerrors.Error {
	rich := goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid ids parameter").
		WithCode(http.StatusBadRequest).
		WithTextCode(TextCodeInvalidArgument)
	rich.Message = err.Error()

	var invalid *catalog.InvalidIDError
	if errors.As(err, &invalid) {
		rich.ValidationErrors = []goerrors.FieldError{{
			Field:   "ids",
			Message: err.Error(),
			Value:   invalid.Token,
		}}
	}
	return rich
}

// buildErrorResponse maps err to a status code and body. Errors without a 4xx code
// are reported as a generic 500 so internals never reach the client.
func (s *Server) buildErrorResponse(r *http.Request, err error) ErrorResponse {
	resp := ErrorResponse{
		Timestamp: s.now().UTC(),
		Path:      r.URL.Path,
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.Code < 400 || rich.Code >= 500 {
		resp.Status = http.StatusInternalServerError
		resp.Error = TextCodeInternal
		resp.Message = "An unexpected error occurred"
		resp.Details = "Please contact support if the problem persists"
		return resp
	}

	resp.Status = rich.Code
	resp.Error = rich.TextCode

	switch rich.TextCode {
	case comparison.TextCodeNotFound:
		missing, _ := comparison.MissingIDs(rich)
		resp.Message = "One or more products were not found"
		resp.Details = "The following product ID(s) do not exist: " + catalog.FormatIDs(missing)
	case comparison.TextCodeInvalidRequest:
		resp.Message = "Invalid request"
		resp.Details = rich.Message
	case TextCodeInvalidArgument:
		resp.Message = "Invalid argument provided"
		resp.Details = rich.Message
	default:
		resp.Message = rich.Message
	}

	for _, fe := range rich.ValidationErrors {
		resp.ValidationErrors = append(resp.ValidationErrors, ValidationError{
			Field:         fe.Field,
			RejectedValue: fe.Value,
			Message:       fe.Message,
		})
	}
	return resp
}

func (s *Server) sendError(w http.ResponseWriter, r *http.Request, err error) {
	resp := s.buildErrorResponse(r, err)
	logger := slogcontext.FromCtx(r.Context())

	if resp.Status >= http.StatusInternalServerError {
		attrs := goerrors.ToSlogAttributes(err)
		logger.LogAttrs(r.Context(), slog.LevelError, "unexpected error", attrs...)
	} else {
		logger.Warn("request rejected", "status", resp.Status, "error", resp.Error, "details", resp.Details)
	}

	s.sendJSONResponse(w, r, resp.Status, resp)
}
