package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                   = errors.New("not found")
	ErrDuplicateName              = errors.New("duplicate name")
	ErrDuplicatePhone             = errors.New("duplicate phone")
	ErrReferentialConflict        = errors.New("referential conflict")
	ErrMissingMandatoryComplement = errors.New("missing mandatory complement")
	ErrInvalidQuantityOrPrice     = errors.New("invalid quantity or price")
	ErrInvalidStatusTransition    = errors.New("invalid status transition")
	ErrInvalidInput               = errors.New("invalid input")
	ErrReceiptNotDispatched       = errors.New("receipt not dispatched")
)

// DuplicateNameError names the entity and value that collided.
type DuplicateNameError struct {
	Entity string
	Name   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s named %q already exists", e.Entity, e.Name)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

// MissingMandatoryComplementError is returned by finalize when a line lacks a mandatory complement.
// The caller is expected to ask for the selection and retry.
type MissingMandatoryComplementError struct {
	ItemID     uint
	Complement ComplementRef
	Name       string
}

func (e *MissingMandatoryComplementError) Error() string {
	return fmt.Sprintf("item %d requires complement %s (%s)", e.ItemID, e.Complement, e.Name)
}

func (e *MissingMandatoryComplementError) Is(target error) bool {
	return target == ErrMissingMandatoryComplement
}

// NotFoundf wraps ErrNotFound with a description of what was looked up.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// InvalidQuantityOrPricef wraps ErrInvalidQuantityOrPrice.
func InvalidQuantityOrPricef(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidQuantityOrPrice)
}

// InvalidInputf wraps ErrInvalidInput.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}
