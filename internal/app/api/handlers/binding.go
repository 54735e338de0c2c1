package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const msgInvalidRequest = "request contains an invalid value"

var (
	registerOnce sync.Once
	maxMoney     = decimal.RequireFromString("99999999.99")
)

// RegisterValidators installs the custom tags on gin's validator engine.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("money", validateMoney)
	})
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// validateMoney accepts positive amounts with at most 2 fractional digits.
func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.IsPositive() && d.Equal(d.Round(2)) && d.LessThanOrEqual(maxMoney)
}

func parseMoney(n json.Number) decimal.Decimal {
	d, _ := decimal.NewFromString(n.String())
	return d.Round(2)
}

// bindingMessage renders binding failures in client-facing form.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &syntaxErr):
			return "request body is not valid JSON"
		case errors.As(err, &typeErr):
			return fmt.Sprintf("%q must be a %s", typeErr.Field, typeErr.Type.Kind())
		}
		return msgInvalidRequest
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "gt":
		return fmt.Sprintf("%q must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%q must be less than or equal to %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "money":
		return fmt.Sprintf("%q must be a positive amount with at most 2 decimal places", field)
	}
	return fmt.Sprintf("%q failed %s validation", field, fe.Tag())
}
