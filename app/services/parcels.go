package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/apextradecapital/SONATUR/app/database"
	"github.com/apextradecapital/SONATUR/app/models"
)

// ErrDuplicateParcelID signals a create against an ID already in inventory.
var ErrDuplicateParcelID = errors.New("parcel id already exists")

// ParcelStore is the slice of the repository the admin inventory surface
// needs.
type ParcelStore interface {
	GetParcel(id string) (*models.Parcel, error)
	InsertParcel(*models.Parcel) error
	UpdateParcel(*models.Parcel) error
	DeleteParcel(id string) error
	CountSubscriptionsForParcel(id string) (int, error)
}

// CreateParcel validates and inserts a new parcel. Duplicate IDs are
// rejected before any insert reaches the repository.
func CreateParcel(store ParcelStore, p *models.Parcel) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}

	existing, err := store.GetParcel(p.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if existing != nil {
		return ErrDuplicateParcelID
	}

	// the pre-check can still race a concurrent create; the store surfaces
	// the unique violation
	if err := store.InsertParcel(p); err != nil {
		if errors.Is(err, database.ErrDuplicateID) {
			return ErrDuplicateParcelID
		}
		return err
	}
	return nil
}

// UpdateParcel overwrites an existing parcel. Any status reassignment is
// permitted here: unlike subscriptions, parcels carry no audit trail.
func UpdateParcel(store ParcelStore, p *models.Parcel) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	return store.UpdateParcel(p)
}

// DeleteParcel removes a parcel. Dangling subscription references are not
// prevented; when any exist the returned warning tells the admin what was
// left behind.
func DeleteParcel(store ParcelStore, id string) (warning string, err error) {
	refs, err := store.CountSubscriptionsForParcel(id)
	if err != nil {
		return "", err
	}

	if err := store.DeleteParcel(id); err != nil {
		return "", err
	}

	if refs > 0 {
		warning = fmt.Sprintf("%d souscription(s) référencent encore la parcelle %s", refs, id)
	}
	return warning, nil
}
