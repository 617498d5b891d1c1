package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// Operations - допустимые значения тега operation
var Operations = []string{"route", "isochrone", "isodistance", "trace_route", "trace_attributes"}

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("operation", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		for _, op := range Operations {
			if op == v {
				return true
			}
		}
		return false
	})
}

// Validate - валидация структуры
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		return describe(err)
	}
	return nil
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

// describe превращает ошибки validator в одну строку вида "Field: tag=param"
func describe(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(parts, "; "))
}
