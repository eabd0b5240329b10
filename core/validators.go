package core

import (
	"reflect"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/syllabio/backend/core/phone"
	"github.com/syllabio/backend/core/syllabus"
)

var (
	// custom validation tags & texts
	phoneTag  = "phone"
	phoneText = "enter a valid phone number (10 to 15 digits)"

	studentClassTag  = "studentclass"
	studentClassText = `student class must be either "11" or "12"`

	requiredTag  = "required"
	requiredText = "this field is required"
)

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(phoneTag, phoneValidation)
	RegisterCustomTranslation(validate, translator, phoneTag, phoneText)

	_ = validate.RegisterValidation(studentClassTag, studentClassValidation)
	RegisterCustomTranslation(validate, translator, studentClassTag, studentClassText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// phoneValidation passes when the value normalizes to 10-15 digits.
func phoneValidation(fl validator.FieldLevel) bool {
	return phone.IsValid(fl.Field().String())
}

// studentClassValidation only allows supported academic classes.
func studentClassValidation(fl validator.FieldLevel) bool {
	_, ok := syllabus.ParseClass(fl.Field().String())
	return ok
}
