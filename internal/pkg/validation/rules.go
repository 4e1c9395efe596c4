package validation

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/institute/internal/app/models"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterRules installs the custom binding tags on gin's validator engine:
//
//	role: ADMIN, TEACHER or STUDENT in any case
//
// It must run before any request binds a struct using these tags.
func RegisterRules() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding engine is not a validator.Validate")
			return
		}
		registerErr = v.RegisterValidation("role", validateRole)
	})
	return registerErr
}

func validateRole(fl validator.FieldLevel) bool {
	_, ok := models.ParseRole(fl.Field().String())
	return ok
}
