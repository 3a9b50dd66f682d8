package database

import (
	"database/sql"

	"github.com/apextradecapital/SONATUR/app/models"
)

// Store adapts the query functions to the narrow interfaces the services
// package consumes, so the commit/review/admin logic can be exercised
// against fakes.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetParcel(id string) (*models.Parcel, error) {
	return GetParcelByID(s.db, id)
}

func (s *Store) InsertParcel(p *models.Parcel) error {
	return InsertParcel(s.db, p)
}

func (s *Store) UpdateParcel(p *models.Parcel) error {
	return UpdateParcel(s.db, p)
}

func (s *Store) UpdateParcelStatus(id string, status models.ParcelStatus) error {
	return UpdateParcelStatus(s.db, id, status)
}

func (s *Store) DeleteParcel(id string) error {
	return DeleteParcel(s.db, id)
}

func (s *Store) CountSubscriptionsForParcel(id string) (int, error) {
	return CountSubscriptionsForParcel(s.db, id)
}

func (s *Store) InsertSubscription(sub *models.SubscriptionRecord) error {
	return InsertSubscription(s.db, sub)
}

func (s *Store) GetSubscription(id string) (*models.SubscriptionRecord, error) {
	return GetSubscriptionByID(s.db, id)
}

func (s *Store) UpdateSubscriptionStatus(id string, status models.SubscriptionStatus, history []models.StatusHistoryEntry) error {
	return UpdateSubscriptionStatus(s.db, id, status, history)
}
