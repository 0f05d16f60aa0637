package validator

import (
	stderrors "errors"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/provider-discovery/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate - валидация структуры. Ошибки валидации переводятся в AppError
// с кодом INVALID_REQUEST и списком полей, чтобы транспортный слой отвечал
// 400, а не 500
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	details := make(map[string]interface{})
	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
	}

	return apperrors.ErrInvalidRequest.WithDetails(details)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
