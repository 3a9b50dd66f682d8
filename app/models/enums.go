package models

// ParcelStatus defines the availability states of a parcel.
type ParcelStatus string

const (
	ParcelAvailable ParcelStatus = "AVAILABLE"
	ParcelReserved  ParcelStatus = "RESERVED"
	ParcelSold      ParcelStatus = "SOLD"
)

// Valid reports whether the status is one of the known parcel states.
func (s ParcelStatus) Valid() bool {
	switch s {
	case ParcelAvailable, ParcelReserved, ParcelSold:
		return true
	}
	return false
}

// SubscriptionStatus defines the review states of a subscription.
type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "PENDING"
	SubscriptionValidated SubscriptionStatus = "VALIDATED"
	SubscriptionRejected  SubscriptionStatus = "REJECTED"
)

// Valid reports whether the status is one of the known subscription states.
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionPending, SubscriptionValidated, SubscriptionRejected:
		return true
	}
	return false
}

// Actor identifies who recorded a status-history entry.
type Actor string

const (
	ActorSystem Actor = "SYSTEM"
	ActorAdmin  Actor = "ADMIN"
	ActorUser   Actor = "USER"
)

// Gender values offered on the identification form.
type Gender string

const (
	GenderMale   Gender = "Homme"
	GenderFemale Gender = "Femme"
	GenderOther  Gender = "Autre"
)

// IDDocumentType values accepted for applicant identification.
type IDDocumentType string

const (
	IDTypeCNIB     IDDocumentType = "CNIB"
	IDTypePassport IDDocumentType = "Passeport"
)

// Payment method codes for the mobile-money providers.
const (
	PaymentOrangeMoney = "ORANGE_MONEY"
	PaymentMoovMoney   = "MOOV_MONEY"
)
