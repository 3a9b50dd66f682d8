package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// DefaultParcelImage is shown when a parcel has no media reference.
const DefaultParcelImage = "/static/img/parcel-default.jpg"

var parcelIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// Parcel is a unit of land inventory.
type Parcel struct {
	ID              string       `json:"id"`
	SiteCode        string       `json:"site_code"`
	Category        string       `json:"category"`
	Area            float64      `json:"area"`
	PricePerM2      int64        `json:"price_per_m2"`
	TotalPrice      int64        `json:"total_price"`
	SubscriptionFee int64        `json:"subscription_fee"`
	Description     string       `json:"description"`
	ImageURL        string       `json:"image_url"`
	Status          ParcelStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// Normalize applies defaults before persisting. Parcel IDs are stored
// uppercase; a missing image falls back to the stock picture.
func (p *Parcel) Normalize() {
	p.ID = strings.ToUpper(strings.TrimSpace(p.ID))
	p.SiteCode = strings.TrimSpace(p.SiteCode)
	p.Category = strings.TrimSpace(p.Category)
	if p.ImageURL == "" {
		p.ImageURL = DefaultParcelImage
	}
	if p.Status == "" {
		p.Status = ParcelAvailable
	}
}

// Validate checks the fields required on create/update. Total price is
// deliberately not checked against area x price-per-m2: the admin may record
// a negotiated total.
func (p *Parcel) Validate() error {
	if p.ID == "" {
		return errors.New("parcel id is required")
	}
	if !parcelIDPattern.MatchString(p.ID) {
		return errors.New("parcel id may only contain letters, digits and hyphens")
	}
	if p.SiteCode == "" {
		return errors.New("site code is required")
	}
	if p.Category == "" {
		return errors.New("category is required")
	}
	if !p.Status.Valid() {
		return errors.New("unknown parcel status: " + string(p.Status))
	}
	return nil
}

// Selectable reports whether an applicant may pick this parcel.
func (p *Parcel) Selectable() bool {
	return p.Status == ParcelAvailable
}
