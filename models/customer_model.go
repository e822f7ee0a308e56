package models

import "time"

// Customer places orders. Phone is the upsert key and may be absent.
type Customer struct {
	ID             uint          `json:"id" gorm:"primaryKey"`
	Name           string        `json:"name" gorm:"size:160;index;not null"`
	Phone          *string       `json:"phone,omitempty" gorm:"size:32;uniqueIndex"`
	Street         string        `json:"street" gorm:"size:200"`
	Number         string        `json:"number" gorm:"size:20"`
	NeighborhoodID *uint         `json:"neighborhood_id,omitempty" gorm:"index"`
	Neighborhood   *Neighborhood `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	Reference      string        `json:"reference" gorm:"size:300"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// CustomerIdentity is whatever the operator typed to identify the customer.
type CustomerIdentity struct {
	ID    uint   `json:"id,omitempty"`
	Phone string `json:"phone,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Address carries the delivery address fields of a customer.
type Address struct {
	Street         string `json:"street"`
	Number         string `json:"number"`
	NeighborhoodID *uint  `json:"neighborhood_id,omitempty"`
	Reference      string `json:"reference"`
}

// Apply copies the address onto c.
func (a Address) Apply(c *Customer) {
	c.Street = a.Street
	c.Number = a.Number
	c.NeighborhoodID = a.NeighborhoodID
	c.Reference = a.Reference
}
