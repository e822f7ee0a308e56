package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ComplementSource records where a resolved complement came from.
type ComplementSource string

const (
	SourceCategory  ComplementSource = "category"
	SourceItem      ComplementSource = "item"
	SourceExclusive ComplementSource = "exclusive"
)

// ComplementRef identifies a complement: a global addition or an item-exclusive one.
// Exactly one of the ids is set.
type ComplementRef struct {
	AdditionID  uint `json:"addition_id,omitempty"`
	ExclusiveID uint `json:"exclusive_id,omitempty"`
}

// Key is the identity used to de-duplicate complements.
func (r ComplementRef) Key() string {
	if r.ExclusiveID != 0 {
		return fmt.Sprintf("exclusive:%d", r.ExclusiveID)
	}
	return fmt.Sprintf("addition:%d", r.AdditionID)
}

// Valid reports whether exactly one id is set.
func (r ComplementRef) Valid() bool {
	return (r.AdditionID == 0) != (r.ExclusiveID == 0)
}

func (r ComplementRef) String() string { return r.Key() }

// ResolvedComplement is one entry of the merged complement list of an item.
type ResolvedComplement struct {
	AdditionID  uint             `json:"addition_id,omitempty"`
	ExclusiveID uint             `json:"exclusive_id,omitempty"`
	Name        string           `json:"name"`
	Price       decimal.Decimal  `json:"price"`
	Mandatory   bool             `json:"mandatory"`
	Source      ComplementSource `json:"source"`
}

// Ref returns the identity of the resolved complement.
func (c ResolvedComplement) Ref() ComplementRef {
	return ComplementRef{AdditionID: c.AdditionID, ExclusiveID: c.ExclusiveID}
}

// SelectedComplement is a complement chosen for an order line.
type SelectedComplement struct {
	ComplementRef
	Quantity int `json:"quantity"`
}
