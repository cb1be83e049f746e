// internal/api/validators/body.go
package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"creator-wallet/internal/util"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// DecodeJSONBody decodes the request body into dest and runs struct validation.
// Fields ending in "_minor" that are not whole numbers yield util.ErrInvalidAmount;
// every other failure wraps util.ErrInvalidInput.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && strings.HasSuffix(typeErr.Field, "_minor") {
			return fmt.Errorf("%s: %w", typeErr.Field, util.ErrInvalidAmount)
		}
		return fmt.Errorf("%w: invalid request body", util.ErrInvalidInput)
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("%w: validation failed", util.ErrInvalidInput)
	}
	details := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		details = append(details, fieldErr.Field()+" "+validationMessage(fieldErr))
	}
	sort.Strings(details)
	return fmt.Errorf("%w: %s", util.ErrInvalidInput, strings.Join(details, "; "))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	}
	return "is invalid"
}
