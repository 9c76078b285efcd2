package dtos

import (
	"errors"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/hiringdekho/hiring-dekho/internal/models"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the custom binding tags on gin's validator.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("unexpected validator engine")
			return
		}
		for tag, fn := range map[string]validator.Func{
			"appstatus": validApplicationStatus,
			"leadkind":  validLeadKind,
			"notblank":  notBlank,
		} {
			if err := v.RegisterValidation(tag, fn); err != nil {
				registerErr = err
				return
			}
		}
	})
	return registerErr
}

func validApplicationStatus(fl validator.FieldLevel) bool {
	return models.IsValidStatus(fl.Field().String())
}

func validLeadKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case LeadKindJobSeeker, LeadKindEmployer:
		return true
	}
	return false
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
