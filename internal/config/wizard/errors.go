package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errNameRequired     = errors.New("name is required")
	errNameInvalid      = errors.New("name must be lowercase alphanumeric characters or hyphens, starting with a letter")
	errIdentityRequired = errors.New("administrator identity ARN is required")
	errVersionInvalid   = errors.New("version must look like 1.21")
)
