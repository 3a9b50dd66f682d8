package models

import (
	"fmt"
	"time"
)

// UserData is the applicant snapshot embedded in every subscription. It is
// copied, not referenced: later edits to anything must never rewrite a
// submitted application.
type UserData struct {
	FullName     string         `json:"full_name"`
	Phone        string         `json:"phone"`
	Email        string         `json:"email,omitempty"`
	BirthDate    string         `json:"birth_date"`
	BirthPlace   string         `json:"birth_place"`
	Profession   string         `json:"profession"`
	Gender       Gender         `json:"gender"`
	Country      string         `json:"country"`
	IDType       IDDocumentType `json:"id_type"`
	IDNumber     string         `json:"id_number"`
	IDIssueDate  string         `json:"id_issue_date"`
	IDIssuePlace string         `json:"id_issue_place"`
	City         string         `json:"city"`
	Address      string         `json:"address"`
}

// Complete reports whether every required field is filled. Email is the only
// optional field.
func (u *UserData) Complete() bool {
	required := []string{
		u.FullName, u.Phone, u.BirthDate, u.BirthPlace, u.Profession,
		string(u.Gender), u.Country, string(u.IDType), u.IDNumber,
		u.IDIssueDate, u.IDIssuePlace, u.City, u.Address,
	}
	for _, v := range required {
		if v == "" {
			return false
		}
	}
	return true
}

// StatusHistoryEntry is one immutable line of a subscription's audit trail.
type StatusHistoryEntry struct {
	Status    SubscriptionStatus `json:"status"`
	Date      time.Time          `json:"date"`
	UpdatedBy Actor              `json:"updated_by"`
	Comment   string             `json:"comment,omitempty"`
}

// SubscriptionRecord is an applicant's formal request to reserve a parcel.
type SubscriptionRecord struct {
	ID             string               `json:"id"`
	Date           time.Time            `json:"date"`
	UserData       UserData             `json:"user_data"`
	ParcelID       string               `json:"parcel_id"`
	PaymentMethod  string               `json:"payment_method"`
	TransactionRef string               `json:"transaction_ref,omitempty"`
	Status         SubscriptionStatus   `json:"status"`
	History        []StatusHistoryEntry `json:"history"`
}

// NewSubscriptionID derives a human-readable reference from the creation
// time, e.g. SUB-171468.
func NewSubscriptionID(t time.Time) string {
	return fmt.Sprintf("SUB-%06d", t.UnixMilli()%1000000)
}

// NewSubscription builds a PENDING record with its initial SYSTEM history
// entry.
func NewSubscription(user UserData, parcelID, method, txRef string, now time.Time) *SubscriptionRecord {
	return &SubscriptionRecord{
		ID:             NewSubscriptionID(now),
		Date:           now,
		UserData:       user,
		ParcelID:       parcelID,
		PaymentMethod:  method,
		TransactionRef: txRef,
		Status:         SubscriptionPending,
		History: []StatusHistoryEntry{{
			Status:    SubscriptionPending,
			Date:      now,
			UpdatedBy: ActorSystem,
			Comment:   "Souscription initiale",
		}},
	}
}

// AppendStatus records a status change. The top-level status and the history
// tail are updated together; history is append-only.
func (s *SubscriptionRecord) AppendStatus(status SubscriptionStatus, actor Actor, comment string, now time.Time) {
	s.History = append(s.History, StatusHistoryEntry{
		Status:    status,
		Date:      now,
		UpdatedBy: actor,
		Comment:   comment,
	})
	s.Status = status
}
