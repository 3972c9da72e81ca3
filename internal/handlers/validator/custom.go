package validator

import (
	"github.com/findajob/job-triage/internal/store/model"
	"github.com/go-playground/validator/v10"
)

func jobStatusValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := model.ParseJobStatus(val)
	return err == nil
}
