package generator

import (
	stderrors "errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/davidleathers/placeholder-numbers/internal/domain/errors"
	"github.com/davidleathers/placeholder-numbers/internal/domain/values"
)

// Batch size bounds
const (
	MinQuantity = 1
	MaxQuantity = 50
)

// GenerationConfig describes one batch request
type GenerationConfig struct {
	Quantity int                 `validate:"min=1,max=50"`
	AreaCode string              `validate:"omitempty,areacode"`
	Format   values.NumberFormat `validate:"-"`
}

// Validator checks GenerationConfig values before any synthesis happens
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the areacode rule registered
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("areacode", validateAreaCode)

	return &Validator{validate: v}
}

// Validate returns a validation AppError describing the first violation
func (v *Validator) Validate(cfg GenerationConfig) error {
	err := v.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return errors.NewInternalError("failed to validate generation config").WithCause(err)
	}

	fe := validationErrors[0]
	switch fe.Field() {
	case "Quantity":
		return errors.NewValidationError(errors.CodeInvalidQuantity,
			fmt.Sprintf("Please select between %d and %d numbers", MinQuantity, MaxQuantity)).
			WithDetails(map[string]interface{}{"quantity": cfg.Quantity})
	case "AreaCode":
		return errors.NewValidationError(errors.CodeInvalidAreaCode,
			"Invalid area code. Must be 3 digits, not starting with 0 or 1.").
			WithDetails(map[string]interface{}{"area_code": cfg.AreaCode})
	default:
		return errors.NewValidationError("INVALID_INPUT",
			fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
	}
}

func validateAreaCode(fl validator.FieldLevel) bool {
	return values.IsValidAreaCode(fl.Field().String())
}
