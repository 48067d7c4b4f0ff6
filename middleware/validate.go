package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/Anthony-dorcas/konze-backend/utils"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var rePhone = regexp.MustCompile(`^\+?[\d\s\-\(\)]+$`)

func init() {
	// Report json tag names in field errors so clients see wire names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return rePhone.MatchString(fl.Field().String())
	})

	// At least one lowercase, one uppercase, one digit and one special char.
	_ = validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var lower, upper, digit, special bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLower(r):
				lower = true
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsDigit(r):
				digit = true
			case strings.ContainsRune("@$!%*?&", r):
				special = true
			}
		}
		return lower && upper && digit && special
	})
}

// ValidateJSON decodes the JSON payload into dst and validates it, writing
// the field-level error list on failure. It expects Content-Type:
// application/json and enforces a short parsing timeout.
func ValidateJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "application/json; charset=utf-8" {
		utils.WriteJSON(w, http.StatusUnsupportedMediaType, utils.APIResponse{Success: false, Message: "Content-Type must be application/json"})
		return http.ErrNotSupported
	}
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	r = r.WithContext(ctx)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return err
	}
	return ValidateStruct(w, dst)
}

// ValidateStruct runs the validator on dst, writing field errors on failure.
// Exposed separately for multipart handlers that bind forms by hand.
func ValidateStruct(w http.ResponseWriter, dst interface{}) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Validation failed"})
		return err
	}
	fieldErrs := make([]utils.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrs = append(fieldErrs, utils.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	utils.WriteFieldErrors(w, fieldErrs)
	return err
}

// messageFor maps a failed rule to the message the API contract promises.
func messageFor(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please enter a valid email"
	case "phone":
		return "Please enter a valid phone number"
	case "password":
		return "Password must contain at least one uppercase letter, one lowercase letter, one number and one special character"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	case "oneof":
		return "Invalid " + strings.ToLower(label)
	case "len":
		return fmt.Sprintf("%s must be %s digits", label, fe.Param())
	case "numeric":
		return label + " must contain only numbers"
	default:
		return label + " is invalid"
	}
}

// fieldLabel turns a json field name like "confirm_password" into
// "Confirm password" for human-readable messages.
func fieldLabel(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
