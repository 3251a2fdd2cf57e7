package controller

import (
	"errors"
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lshigami/storeaudit/internal/model"
)

// DefaultValidator replaces gin's binding validator so request DTOs can use
// the answer_type tag and get readable messages.
type DefaultValidator struct {
	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator
}

var _ binding.StructValidator = &DefaultValidator{}

// RegisterValidators installs DefaultValidator as gin's binding validator.
func RegisterValidators() {
	binding.Validator = new(DefaultValidator)
}

func (v *DefaultValidator) ValidateStruct(obj any) error {
	if kindOfData(obj) == reflect.Struct {
		v.lazyinit()
		if err := v.validate.Struct(obj); err != nil {
			return err
		}
	}
	return nil
}

func (v *DefaultValidator) Engine() any {
	v.lazyinit()
	return v.validate
}

func (v *DefaultValidator) Translator() ut.Translator {
	v.lazyinit()
	return v.translator
}

func (v *DefaultValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = validator.New(validator.WithRequiredStructEnabled())
		v.validate.SetTagName("binding")
		_ = v.validate.RegisterValidation("answer_type", validateAnswerType)

		english := en.New()
		uni := ut.New(english, english)
		v.translator, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v.validate, v.translator)

		_ = v.validate.RegisterTranslation("answer_type", v.translator, func(ut ut.Translator) error {
			return ut.Add("answer_type", "{0} must be one of binary, score, text or photo", true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("answer_type", fe.Field())
			return t
		})
	})
}

func validateAnswerType(fl validator.FieldLevel) bool {
	return model.AnswerType(fl.Field().String()).Valid()
}

func kindOfData(data any) reflect.Kind {
	value := reflect.ValueOf(data)
	kind := value.Kind()
	if kind == reflect.Ptr {
		kind = value.Elem().Kind()
	}
	return kind
}

// TranslateValidationErrors turns binding errors into one message per field.
func TranslateValidationErrors(err error) []string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []string{err.Error()}
	}
	v, ok := binding.Validator.(*DefaultValidator)
	if !ok {
		return []string{err.Error()}
	}
	trans := v.Translator()
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, e.Translate(trans))
	}
	return messages
}
