package services

import (
	"fmt"
	"time"

	"github.com/apextradecapital/SONATUR/app/models"
)

// ReviewStore is the slice of the repository the admin review needs.
type ReviewStore interface {
	GetSubscription(id string) (*models.SubscriptionRecord, error)
	UpdateSubscriptionStatus(id string, status models.SubscriptionStatus, history []models.StatusHistoryEntry) error
}

// ReviewSubscription records an admin decision: one history entry is
// appended and the top-level status follows it, persisted together. History
// is append-only; earlier entries are never touched.
func ReviewSubscription(store ReviewStore, id string, decision models.SubscriptionStatus, comment string, now time.Time) (*models.SubscriptionRecord, error) {
	if decision != models.SubscriptionValidated && decision != models.SubscriptionRejected {
		return nil, fmt.Errorf("decision must be VALIDATED or REJECTED, got %q", decision)
	}

	sub, err := store.GetSubscription(id)
	if err != nil {
		return nil, err
	}

	if comment == "" {
		if decision == models.SubscriptionValidated {
			comment = "Dossier validé"
		} else {
			comment = "Dossier rejeté"
		}
	}

	sub.AppendStatus(decision, models.ActorAdmin, comment, now)

	if err := store.UpdateSubscriptionStatus(sub.ID, sub.Status, sub.History); err != nil {
		return nil, fmt.Errorf("persist review of %s: %w", id, err)
	}
	return sub, nil
}
