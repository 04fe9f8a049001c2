package validator

import (
	"ctchen222/Themed-Tic-Tac-Toe/internal/game"
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("cell", validateCell); err != nil {
		panic(err)
	}
}

// validateCell accepts board indices 0 through 8.
func validateCell(fl validator.FieldLevel) bool {
	idx := fl.Field().Int()
	return idx >= game.BorderMin && idx <= game.BorderMax
}

func GetValidator() *validator.Validate {
	return validate
}

// RegisterBindings adds the custom tags to gin's request binding validator.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator is not go-playground/validator")
	}
	return v.RegisterValidation("cell", validateCell)
}
