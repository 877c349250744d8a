package config

import (
	"strings"

	"github.com/cirrusops/contentdiff/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		level := strings.ToLower(fl.Field().String())
		if level == "" {
			return true
		}
		_, err := zerolog.ParseLevel(level)
		return err == nil
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "json", "console", "text":
			return true
		}
		return false
	})

	_ = validate.RegisterValidation("granularity", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "word", "line":
			return true
		}
		return false
	})

	if err := validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			first := validationErrors[0]
			return common.NewValidationError(first.Field(), first.Value(), "failed '"+first.Tag()+"' validation")
		}
		return common.WrapError(err, "config validation")
	}

	return nil
}
