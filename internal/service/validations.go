package service

import (
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/error_values"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/pkg/entity"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("alphanum_underscore", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			for i, char := range value {
				// Cannot be started with a digit or underscore
				if i == 0 && (unicode.IsDigit(char) || char == '_') {
					return false
				}
				// Digits, letters or underscore
				if !unicode.IsLetter(char) && !unicode.IsDigit(char) && char != '_' {
					return false
				}
			}
			return true
		})
	})
}

// validateFrequency rejects frequency data the schedule package would have to
// silently default. Storage may still hold legacy malformed data, which the
// schedule package degrades safely; new writes are kept clean here
func validateFrequency(ft entity.FrequencyType, data []int) error {
	switch ft {
	case entity.FrequencyWeekly:
		if len(data) == 0 {
			return errorvalues.ErrInvalidFrequency
		}
		for _, d := range data {
			if d < 0 || d > 6 {
				return errorvalues.ErrInvalidFrequency
			}
		}
	case entity.FrequencyCustom:
		if len(data) != 1 || data[0] < 1 {
			return errorvalues.ErrInvalidFrequency
		}
	default:
		if len(data) != 0 {
			return errorvalues.ErrInvalidFrequency
		}
	}
	return nil
}
