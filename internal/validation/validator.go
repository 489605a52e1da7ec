// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/hybridrec/internal/recommend/algorithms"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed rule on a configuration field.
type FieldError struct {
	Path    string // dotted koanf path, e.g. "cache.keep"
	Tag     string // failed rule, e.g. "gte"
	Param   string // rule parameter, e.g. "1"
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Errors lists every failed rule of one validation pass.
type Errors struct {
	fields []FieldError
}

// Fields returns the failed rules in struct order.
func (ve *Errors) Fields() []FieldError {
	return ve.fields
}

func (ve *Errors) Error() string {
	if len(ve.fields) == 0 {
		return "invalid configuration"
	}
	var b strings.Builder
	for i := range ve.fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ve.fields[i].Message)
	}
	return b.String()
}

// GetValidator returns the shared validator, registering the koanf tag
// names and the stopwords rule on first use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("koanf"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		//nolint:errcheck // tag name and func are static
		validate.RegisterValidation("stopwords", func(fl validator.FieldLevel) bool {
			_, ok := algorithms.StopWordSet(fl.Field().String())
			return ok
		})
	})

	return validate
}

// ValidateStruct checks s against its validate tags and returns *Errors
// describing every failed rule.
func ValidateStruct(s any) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var failed validator.ValidationErrors
	if !errors.As(err, &failed) {
		return &Errors{fields: []FieldError{{Path: "config", Tag: "invalid", Message: err.Error()}}}
	}

	out := &Errors{fields: make([]FieldError, 0, len(failed))}
	for _, fe := range failed {
		path := fieldPath(fe.Namespace())
		out.fields = append(out.fields, FieldError{
			Path:    path,
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translateError(fe, path),
		})
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required":  "%s is required",
	"stopwords": "%s must name a supported stop-word list (english or none)",
	"dir":       "%s must be an existing directory",
	"file":      "%s must be an existing file",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof":       "%s must be one of: %s",
	"gte":         "%s must be greater than or equal to %s",
	"lte":         "%s must be less than or equal to %s",
	"gt":          "%s must be greater than %s",
	"lt":          "%s must be less than %s",
	"required_if": "%s is required when %s",
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError, path string) string {
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, path)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, path, param)
	}
	return translateMinMax(fe, path, tag, param)
}

// translateMinMax handles min/max validation with type-specific messages.
func translateMinMax(fe validator.FieldError, field, tag, param string) string {
	var unit string
	switch fe.Kind() {
	case reflect.String:
		unit = " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = " entries"
	}

	switch tag {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
