package services

import (
	"fmt"
	"log"
	"time"

	"github.com/apextradecapital/SONATUR/app/models"
)

// CommitStore is the slice of the inventory repository the committer needs.
type CommitStore interface {
	InsertSubscription(*models.SubscriptionRecord) error
	UpdateParcelStatus(id string, status models.ParcelStatus) error
}

// CommitSubscription creates the subscription record and flips the parcel to
// RESERVED.
//
// The two writes are not transactional: if the insert fails nothing else
// happens and the caller must not advance; if the insert succeeds but the
// status update fails, the inconsistency is logged and the commit still
// counts — an admin reconciles it later (see the reconciler sweep). No
// conditional "only if still AVAILABLE" guard is applied, so two sessions
// that both saw the parcel as available can both commit; the last status
// write wins.
func CommitSubscription(store CommitStore, applicant models.UserData, parcel *models.Parcel, method, txRef string, now time.Time) (*models.SubscriptionRecord, error) {
	if parcel == nil {
		return nil, fmt.Errorf("no parcel selected")
	}
	if !parcel.Selectable() {
		return nil, fmt.Errorf("parcel %s is not available", parcel.ID)
	}

	sub := models.NewSubscription(applicant, parcel.ID, method, txRef, now)

	if err := store.InsertSubscription(sub); err != nil {
		return nil, fmt.Errorf("insert subscription: %w", err)
	}

	if err := store.UpdateParcelStatus(parcel.ID, models.ParcelReserved); err != nil {
		log.Printf("Subscription %s saved but parcel %s could not be marked RESERVED: %v",
			sub.ID, parcel.ID, err)
	}

	return sub, nil
}
