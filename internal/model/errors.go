package model

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of the data validation error family.
//
// Every field/tag format error wraps ErrValidation, so callers can match
// either the whole family or a specific rule:
//
//	errors.Is(err, model.ErrValidation)          // any format violation
//	errors.Is(err, model.ErrInvalidPhoneFormat)  // specifically a bad phone
//
// Validation errors are always recoverable: the entity under construction is
// discarded and existing state is never left partially mutated.
var ErrValidation = errors.New("data validation failed")

// Validation error kinds, one per field format rule.
var (
	ErrInvalidNameFormat     = fmt.Errorf("%w: invalid name format", ErrValidation)
	ErrInvalidPhoneFormat    = fmt.Errorf("%w: invalid phone format", ErrValidation)
	ErrInvalidEmailFormat    = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrInvalidBirthdayFormat = fmt.Errorf("%w: invalid birthday format", ErrValidation)
	ErrInvalidTagFormat      = fmt.Errorf("%w: invalid tag format", ErrValidation)
	ErrEmptyNoteTitle        = fmt.Errorf("%w: note title cannot be empty", ErrValidation)
)

// Lookup errors, returned when an operation targets a key that does not
// exist. Never fatal; the calling layer decides how to present them.
var (
	ErrContactNotFound = errors.New("contact not found")
	ErrPhoneNotFound   = errors.New("phone not found")
	ErrNoteNotFound    = errors.New("note not found")
)
