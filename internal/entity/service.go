package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category identifies one of the fixed service verticals on the platform.
type Category string

// Supported categories. Declaration order matters: the chat router checks
// keyword lists in this order and the first match wins.
const (
	CategoryPersonalTrainers Category = "personal_trainers"
	CategoryYachtRentals     Category = "yacht_rentals"
	CategoryApartments       Category = "apartments"
	CategoryBeautyClinics    Category = "beauty_clinics"
	CategoryKidsServices     Category = "kids_services"
	CategoryHousekeeping     Category = "housekeeping"

	// CategoryNone means no keyword from any category matched.
	CategoryNone Category = "none"
)

// Categories lists the supported verticals in routing order.
var Categories = []Category{
	CategoryPersonalTrainers,
	CategoryYachtRentals,
	CategoryApartments,
	CategoryBeautyClinics,
	CategoryKidsServices,
	CategoryHousekeeping,
}

// Valid reports whether the category is one of the supported verticals.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Service represents a provider listing in the marketplace catalogue.
type Service struct {
	ID           uuid.UUID  `json:"id"`
	Category     Category   `json:"category"`
	ProviderName string     `json:"provider_name"`
	Name         string     `json:"name"`
	Description  *string    `json:"description,omitempty"`
	Price        *float64   `json:"price,omitempty"`
	Rating       *float64   `json:"rating,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	WhatsApp     *string    `json:"whatsapp,omitempty"`
	Website      *string    `json:"website,omitempty"`
	Instagram    *string    `json:"instagram,omitempty"`
	ImageURL     *string    `json:"image_url,omitempty"`
	Location     *string    `json:"location,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// StripContacts removes contact fields from the listing. Used when the
// caller's plan does not include contact access.
func (s *Service) StripContacts() {
	s.Phone = nil
	s.WhatsApp = nil
	s.Website = nil
	s.Instagram = nil
}
