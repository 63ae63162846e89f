package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/redaction/internal/apperrors"
	"github.com/lshigami/redaction/internal/dto"
	"github.com/rs/zerolog/log"
)

const invalidDataMessage = "The given data was invalid."

var (
	numericType    = reflect.TypeOf(dto.Numeric(""))
	jsonNumberType = reflect.TypeOf(json.Number(""))
)

// respondError writes the HTTP response for an error returned by a service.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *apperrors.ValidationError
		notFoundErr   *apperrors.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: invalidDataMessage, Errors: validationErr.Fields})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: notFoundErr.Error()})
	case errors.Is(err, apperrors.ErrStorage):
		log.Error().Err(err).Str("path", c.FullPath()).Msg("File storage failure")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "File storage failure"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
	}
}

// bind decodes the request by its content type. It writes a 400 response and
// returns false when binding fails.
func bind(c *gin.Context, obj any) bool {
	err := c.ShouldBind(obj)
	if errors.Is(err, io.EOF) {
		// Empty JSON body: report the missing fields instead of a decode error.
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return true
	}
	log.Warn().Err(err).Str("path", c.FullPath()).Msg("Failed to bind request")
	respondError(c, bindingError(err))
	return false
}

// bindingError turns decoder and validator failures into field messages.
func bindingError(err error) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}

	var (
		fieldErrs validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), ruleMessage(fe))
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		verr.Add(field, typeMessage(field, typeErr.Type))
	case errors.As(err, &syntaxErr):
		verr.Add("body", "The request body must be valid JSON.")
	default:
		verr.Add("body", "The request body could not be read.")
	}
	return verr
}

func ruleMessage(fe validator.FieldError) string {
	attr := apperrors.Attribute(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", attr)
	case "numeric":
		return fmt.Sprintf("The %s must be a number.", attr)
	case "min":
		return fmt.Sprintf("The %s must not be empty.", attr)
	default:
		return fmt.Sprintf("The %s is invalid.", attr)
	}
}

func typeMessage(field string, t reflect.Type) string {
	attr := apperrors.Attribute(field)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return fmt.Sprintf("The %s is invalid.", attr)
	}
	if t == numericType || t == jsonNumberType {
		return fmt.Sprintf("The %s must be a number.", attr)
	}
	switch t.Kind() {
	case reflect.String:
		return fmt.Sprintf("The %s must be a string.", attr)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprintf("The %s must be a number.", attr)
	default:
		return fmt.Sprintf("The %s is invalid.", attr)
	}
}

var tagNamesOnce sync.Once

// registerValidatorTagNames makes validator report request field names
// (json, then form tag) instead of Go struct field names.
func registerValidatorTagNames() {
	tagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	})
}
