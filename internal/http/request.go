package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/davidbz/gamehost/internal/domain"
)

const maxBodyBytes = 16 << 10

// configurationBody is the accepted request shape. Only configuration fields
// are decoded; any amount or price a client sends is dropped here.
// ram and storage are accepted as older spellings of ramGb and storageGb.
type configurationBody struct {
	Players   *int   `json:"players"   validate:"required"`
	RAMGB     *int   `json:"ramGb"     validate:"required"`
	StorageGB *int   `json:"storageGb" validate:"required"`
	Support   string `json:"support"   validate:"required"`
	Region    string `json:"region"    validate:"required"`

	RAM     *int `json:"ram"     validate:"-"`
	Storage *int `json:"storage" validate:"-"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeConfiguration reads the request body into a ConfigurationInput.
// Shape problems come back as a malformed_request rejection; bound and enum
// checks are left to the domain.
func decodeConfiguration(r *http.Request, v *validator.Validate) (domain.ConfigurationInput, error) {
	var body configurationBody

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(&body); err != nil {
		return domain.ConfigurationInput{}, malformed(decodeMessage(err), decodeField(err), err)
	}

	if body.RAMGB == nil {
		body.RAMGB = body.RAM
	}
	if body.StorageGB == nil {
		body.StorageGB = body.Storage
	}

	if err := v.Struct(&body); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			field := fieldErrs[0].Field()
			return domain.ConfigurationInput{}, malformed(field+" is required", field, err)
		}
		return domain.ConfigurationInput{}, malformed("invalid request body", "", err)
	}

	return domain.ConfigurationInput{
		Players:   *body.Players,
		RAMGB:     *body.RAMGB,
		StorageGB: *body.StorageGB,
		Support:   domain.SupportTier(body.Support),
		Region:    domain.Region(body.Region),
	}, nil
}

func malformed(message, field string, err error) *domain.RejectionError {
	return &domain.RejectionError{
		Code:    domain.RejectionMalformedRequest,
		Message: message,
		Field:   field,
		Err:     err,
	}
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.String())
	}
	if errors.Is(err, io.EOF) {
		return "request body is empty"
	}
	return "request body is not valid JSON"
}

func decodeField(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Field
	}
	return ""
}
