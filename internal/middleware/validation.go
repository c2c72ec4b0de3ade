package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ykaya/deptportal/internal/app/models"
)

// RegisterCustomValidators installs the enum validators used by the binding
// tags on request DTOs. Must run once before the router starts serving.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("approvalstatus", validApprovalStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("accountrole", validAccountRole); err != nil {
		return err
	}
	return nil
}

func validApprovalStatus(fl validator.FieldLevel) bool {
	return models.ApprovalStatus(fl.Field().String()).IsValid()
}

func validAccountRole(fl validator.FieldLevel) bool {
	return models.Role(fl.Field().String()).IsValid()
}
