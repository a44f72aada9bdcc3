package dto

import "github.com/adpulse/opensea-api/internal/entity"

// ServiceFilter contains query parameters for catalogue listing endpoints.
type ServiceFilter struct {
	Category  entity.Category
	Q         string
	MinRating *float64
	Limit     int
	Page      int
	PerPage   int
}

// UpsertServiceRequest is the provider entry form payload.
type UpsertServiceRequest struct {
	Category     string   `json:"category"`
	ProviderName string   `json:"provider_name"`
	Name         string   `json:"name"`
	Description  *string  `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	WhatsApp     *string  `json:"whatsapp,omitempty"`
	Website      *string  `json:"website,omitempty"`
	Instagram    *string  `json:"instagram,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty"`
	Location     *string  `json:"location,omitempty"`
}
