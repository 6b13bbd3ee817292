package comparison

import (
	"fmt"
	"net/http"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-product-compare/catalog"
)

// Text codes attached to resolver errors.
const (
	TextCodeInvalidRequest     = "INVALID_REQUEST"
	TextCodeNotFound           = "NOT_FOUND"
	TextCodeInvariantViolation = "INVARIANT_VIOLATION"
)

// MetadataMissingIDs is the metadata key holding the []int64 of unresolved ids.
const MetadataMissingIDs = "missing_ids"

// NewInvalidRequestError reports a request that cannot be resolved as given.
func NewInvalidRequestError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryValidation).
		WithCode(http.StatusUnprocessableEntity).
		WithTextCode(TextCodeInvalidRequest)
}

// NewNotFoundError reports every id that neither the cache nor the store could resolve.
func NewNotFoundError(missing []int64) *goerrors.Error {
	ids := append([]int64(nil), missing...)

	fieldErrors := make([]goerrors.FieldError, 0, len(ids))
	for _, id := range ids {
		fieldErrors = append(fieldErrors, goerrors.FieldError{
			Field:   "ids",
			Message: "Product not found: " + strconv.FormatInt(id, 10),
			Value:   id,
		})
	}

	err := goerrors.New(
		fmt.Sprintf("Products not found: %s", catalog.FormatIDs(ids)),
		goerrors.CategoryNotFound,
	).
		WithCode(goerrors.CodeNotFound).
		WithTextCode(TextCodeNotFound).
		WithMetadata(map[string]any{MetadataMissingIDs: ids})
	err.ValidationErrors = fieldErrors
	return err
}

func newInvariantError(id int64) *goerrors.Error {
	return goerrors.New(
		fmt.Sprintf("item %d missing after resolution", id),
		goerrors.CategoryInternal,
	).
		WithCode(goerrors.CodeInternal).
		WithTextCode(TextCodeInvariantViolation).
		WithSeverity(goerrors.SeverityError)
}

// IsInvalidRequest reports whether err was produced by request validation.
func IsInvalidRequest(err error) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.Category == goerrors.CategoryValidation && rich.TextCode == TextCodeInvalidRequest
}

// IsNotFound reports whether err carries a not-found condition.
func IsNotFound(err error) bool {
	return goerrors.IsNotFound(err)
}

// MissingIDs extracts the unresolved ids from a NotFound error.
func MissingIDs(err error) ([]int64, bool) {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.Category != goerrors.CategoryNotFound {
		return nil, false
	}
	ids, ok := rich.Metadata[MetadataMissingIDs].([]int64)
	return ids, ok
}
