package domain

import (
	"errors"
	"strings"
)

// MaxDiscount is the upper bound of a destination discount percentage.
const MaxDiscount = 100

var (
	ErrDestinationNotFound = errors.New("destination not found")
	ErrDestinationInUse    = errors.New("destination has reservations")
	ErrNoAvailability      = errors.New("no available destinations for the specified interval")
)

// Destination is a bookable travel offer.
type Destination struct {
	ID          int64   `json:"id"          bson:"_id"         db:"id"`
	Title       string  `json:"title"       bson:"title"       db:"title"`
	Location    string  `json:"location"    bson:"location"    db:"location"`
	Description string  `json:"description" bson:"description" db:"description"`
	Price       float64 `json:"price"       bson:"price"       db:"price"`
	Discount    int     `json:"discount"    bson:"discount"    db:"discount"`
}

// Validate checks required fields and value ranges.
func (d *Destination) Validate() error {
	switch {
	case strings.TrimSpace(d.Title) == "":
		return InvalidInput("title is required")
	case strings.TrimSpace(d.Location) == "":
		return InvalidInput("location is required")
	case d.Price < 0:
		return InvalidInput("price must not be negative")
	case d.Discount < 0 || d.Discount > MaxDiscount:
		return InvalidInput("discount must be between 0 and 100")
	}
	return nil
}

// DestinationPatch holds the mutable fields of a destination. Nil pointers
// keep the current value.
type DestinationPatch struct {
	Title       string
	Location    *string
	Description *string
	Price       float64
	Discount    int
}

// Apply overwrites d with the patch fields.
func (d *Destination) Apply(p DestinationPatch) {
	d.Title = p.Title
	d.Price = p.Price
	d.Discount = p.Discount
	if p.Location != nil {
		d.Location = *p.Location
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
}
