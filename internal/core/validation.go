// AngelaMos | 2026
// validation.go

package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var emailPattern = regexp.MustCompile(
	`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`,
)

func IsEmailPattern(s string) bool {
	return emailPattern.MatchString(s)
}

// NewValidator returns a validator that reports json field names and knows
// the "email_pattern" tag used for account emails.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	//nolint:errcheck // tag name is static and valid
	_ = v.RegisterValidation("email_pattern", func(fl validator.FieldLevel) bool {
		return IsEmailPattern(fl.Field().String())
	})

	return v
}

func ValidateStruct(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		return ValidationError(FormatValidationError(err))
	}
	return nil
}

// FormatValidationError renders the first violated constraint.
func FormatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}

	fe := verrs[0]
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "email", "email_pattern":
		return fmt.Sprintf("%q must be a valid email", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf(
				"%q length must be at least %s characters long",
				field,
				fe.Param(),
			)
		}
		return fmt.Sprintf("%q must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf(
				"%q length must be at most %s characters long",
				field,
				fe.Param(),
			)
		}
		return fmt.Sprintf("%q must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf(
			"%q must be one of [%s]",
			field,
			strings.ReplaceAll(fe.Param(), " ", ", "),
		)
	}

	return fmt.Sprintf("%q is invalid", field)
}

// DecodeJSON strictly decodes a request body into dst. Empty bodies and
// empty objects are rejected, as are unknown fields and type mismatches.
func DecodeJSON(r *http.Request, dst any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return ValidationError("invalid request body")
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return ValidationError("missing required fields")
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return ValidationError("invalid request body")
	}
	if len(probe) == 0 {
		return ValidationError("missing required fields")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return ValidationError(formatDecodeError(err))
	}

	return nil
}

func formatDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%q must be a %s", typeErr.Field, jsonKind(typeErr.Type))
	}

	const unknownPrefix = "json: unknown field "
	if msg := err.Error(); strings.HasPrefix(msg, unknownPrefix) {
		return fmt.Sprintf("%s is not allowed", strings.TrimPrefix(msg, unknownPrefix))
	}

	return "invalid request body"
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	}

	return t.Kind().String()
}
