package model

import "time"

// BusinessSettings is stored as a JSON document alongside the business.
type BusinessSettings struct {
	Currency        string `json:"currency"`
	TaxRateBps      int    `json:"tax_rate_bps"`
	AcceptingOrders bool   `json:"accepting_orders"`
	ContactEmail    string `json:"contact_email,omitempty"`
}

// DefaultBusinessSettings are applied to new businesses.
func DefaultBusinessSettings() BusinessSettings {
	return BusinessSettings{Currency: "USD", AcceptingOrders: true}
}

// SettingsPatch changes the settings fields that are present.
type SettingsPatch struct {
	Currency        *string `json:"currency"`
	TaxRateBps      *int    `json:"tax_rate_bps"`
	AcceptingOrders *bool   `json:"accepting_orders"`
	ContactEmail    *string `json:"contact_email"`
}

// Apply returns s with the fields of p copied over it.
func (p *SettingsPatch) Apply(s BusinessSettings) BusinessSettings {
	if p == nil {
		return s
	}
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.TaxRateBps != nil {
		s.TaxRateBps = *p.TaxRateBps
	}
	if p.AcceptingOrders != nil {
		s.AcceptingOrders = *p.AcceptingOrders
	}
	if p.ContactEmail != nil {
		s.ContactEmail = *p.ContactEmail
	}
	return s
}

// Business is a tenant: a restaurant or food court operating one or more stalls.
type Business struct {
	ID          string           `json:"id"`
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	OwnerID     string           `json:"owner_id"`
	Active      bool             `json:"active"`
	Settings    BusinessSettings `json:"settings"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Stall is a vendor counter belonging to a business.
type Stall struct {
	ID          string    `json:"id"`
	BusinessID  string    `json:"business_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product is a menu item sold by a stall. Prices are in minor currency units.
type Product struct {
	ID          string    `json:"id"`
	BusinessID  string    `json:"business_id"`
	StallID     string    `json:"stall_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	PriceCents  int64     `json:"price_cents"`
	Available   bool      `json:"available"`
	ImageKey    string    `json:"-"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
