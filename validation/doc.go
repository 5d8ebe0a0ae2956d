// Package validation validates reqkit configuration and request specs.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Both report failures as an
// INVALID_INPUT *errors.AppError listing every offending field.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    BaseURL string `validate:"omitempty,url"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("url", spec.URL).HTTPURL("url", spec.URL)
//	err := v.Validate()
package validation
