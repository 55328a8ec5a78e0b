// Package validator wraps the go-playground validator with English
// translations, so validation failures read as plain sentences.
package validator

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslation "github.com/go-playground/validator/v10/translations/en"

	"github.com/flowmesh/flowmesh/internal/pkg/utils/errors"
)

// Rule is a custom validation rule.
type Rule struct {
	Tag  string
	Func validator.Func
}

type Validator interface {
	// Validate a struct according to its "validate" tags.
	Validate(ctx context.Context, value any) error
}

type wrapper struct {
	validate   *validator.Validate
	translator ut.Translator
}

func New(rules ...Rule) Validator {
	validate := validator.New()

	enLocale := en.New()
	translator, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		panic(errors.New("en translator was not found"))
	}
	if err := enTranslation.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(errors.Errorf("translator was not registered: %w", err))
	}

	for _, rule := range rules {
		if err := validate.RegisterValidation(rule.Tag, rule.Func); err != nil {
			panic(err)
		}
	}

	// Use JSON field names in error messages.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &wrapper{validate: validate, translator: translator}
}

func (w *wrapper) Validate(ctx context.Context, value any) error {
	err := w.validate.StructCtx(ctx, value)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		// An invalid value, not a validation failure.
		panic(err)
	}

	parts := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		parts = append(parts, e.Translate(w.translator))
	}
	return errors.New(strings.Join(parts, "; "))
}
