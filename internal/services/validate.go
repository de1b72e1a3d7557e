package services

import (
	"errors"
	"reflect"
	"strings"

	"cmsarticle/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// В ошибках - имена полей из JSON, как их видит клиент
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct превращает ошибки validator в *models.ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := models.NewValidationError()
	for _, fe := range verrs {
		ve.Add(fieldPath(fe.Namespace()), fieldMessage(fe))
	}
	return ve
}

// "SaveArticleRequest.extLinks[1]" -> "extLinks[1]"
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "обязательное поле"
	case "url":
		return "некорректный URL"
	case "max":
		return "слишком длинное значение (максимум " + fe.Param() + ")"
	case "oneof":
		return "допустимые значения: " + fe.Param()
	default:
		return "некорректное значение"
	}
}
