package avm

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/avm-dev/avm-sdk/domain/entities"
)

// validate is a package-level singleton for better performance.
// Creating a new validator on each call is expensive; reusing is recommended.
var validate = validator.New()

// ValidateParams checks invocation parameters before they are handed to
// Invoke. Invoke itself accepts anything (the engine reports its own
// errors for bad peer ids); this is for hosts that want to reject
// obviously broken input before paying for an engine round trip.
func ValidateParams(params entities.InvocationParams) error {
	if err := validate.Struct(params); err != nil {
		return fmt.Errorf("invocation params validation failed: %w", err)
	}
	return nil
}
