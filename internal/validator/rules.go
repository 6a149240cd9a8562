package validator

import (
	"log"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules registers all custom validation functions.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup misconfiguration.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-contact-action': accept/reject responses to contact requests
	mustRegister("is-contact-action", validateContactAction)
}

func validateContactAction(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empty values
	}
	switch value {
	case "accept", "reject":
		return true
	default:
		return false
	}
}
