// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/hex"

	validation "github.com/jellydator/validation"
)

// Hex validates that a string is valid lowercase/uppercase hexadecimal data.
var Hex = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_hex_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	_, err := hex.DecodeString(s)
	if err != nil {
		return validation.NewError("validation_hex", "must be valid hex-encoded data")
	}
	return nil
})
