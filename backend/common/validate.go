package common

import "github.com/go-playground/validator/v10"

// Validate is the shared validator instance for request payloads.
var Validate *validator.Validate

func init() {
	Validate = validator.New()
}
