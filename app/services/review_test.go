package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/apextradecapital/SONATUR/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewStore struct {
	subs    map[string]*models.SubscriptionRecord
	updated int
}

func newFakeReviewStore(subs ...*models.SubscriptionRecord) *fakeReviewStore {
	f := &fakeReviewStore{subs: make(map[string]*models.SubscriptionRecord)}
	for _, s := range subs {
		f.subs[s.ID] = s
	}
	return f
}

func (f *fakeReviewStore) GetSubscription(id string) (*models.SubscriptionRecord, error) {
	s, ok := f.subs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *s
	copied.History = append([]models.StatusHistoryEntry(nil), s.History...)
	return &copied, nil
}

func (f *fakeReviewStore) UpdateSubscriptionStatus(id string, status models.SubscriptionStatus, history []models.StatusHistoryEntry) error {
	s, ok := f.subs[id]
	if !ok {
		return sql.ErrNoRows
	}
	s.Status = status
	s.History = history
	f.updated++
	return nil
}

func pendingSubscription(now time.Time) *models.SubscriptionRecord {
	return models.NewSubscription(testApplicant(), "PARCEL-TEST-001", models.PaymentOrangeMoney, "", now)
}

func TestReviewSubscriptionValidate(t *testing.T) {
	now := commitNow
	sub := pendingSubscription(now)
	store := newFakeReviewStore(sub)

	reviewed, err := ReviewSubscription(store, sub.ID, models.SubscriptionValidated, "", now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, models.SubscriptionValidated, reviewed.Status)
	require.Len(t, reviewed.History, 2)

	// the initial entry is untouched, the tail mirrors the new status
	assert.Equal(t, models.SubscriptionPending, reviewed.History[0].Status)
	assert.Equal(t, "Souscription initiale", reviewed.History[0].Comment)
	last := reviewed.History[1]
	assert.Equal(t, models.SubscriptionValidated, last.Status)
	assert.Equal(t, models.ActorAdmin, last.UpdatedBy)
	assert.Equal(t, "Dossier validé", last.Comment)

	assert.Equal(t, 1, store.updated)
	assert.Equal(t, models.SubscriptionValidated, store.subs[sub.ID].Status)
}

func TestReviewSubscriptionReject(t *testing.T) {
	sub := pendingSubscription(commitNow)
	store := newFakeReviewStore(sub)

	reviewed, err := ReviewSubscription(store, sub.ID, models.SubscriptionRejected, "Pièce illisible", commitNow.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, models.SubscriptionRejected, reviewed.Status)
	assert.Equal(t, "Pièce illisible", reviewed.History[len(reviewed.History)-1].Comment)
}

func TestReviewSubscriptionDefaultRejectComment(t *testing.T) {
	sub := pendingSubscription(commitNow)
	store := newFakeReviewStore(sub)

	reviewed, err := ReviewSubscription(store, sub.ID, models.SubscriptionRejected, "", commitNow)
	require.NoError(t, err)
	assert.Equal(t, "Dossier rejeté", reviewed.History[len(reviewed.History)-1].Comment)
}

func TestReviewSubscriptionInvalidDecision(t *testing.T) {
	sub := pendingSubscription(commitNow)
	store := newFakeReviewStore(sub)

	_, err := ReviewSubscription(store, sub.ID, models.SubscriptionPending, "", commitNow)
	assert.Error(t, err)
	_, err = ReviewSubscription(store, sub.ID, "ARCHIVED", "", commitNow)
	assert.Error(t, err)
	assert.Equal(t, 0, store.updated)
}

func TestReviewSubscriptionUnknownID(t *testing.T) {
	store := newFakeReviewStore()
	_, err := ReviewSubscription(store, "SUB-404404", models.SubscriptionValidated, "", commitNow)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

// Re-reviewing an already decided dossier appends again; the trail keeps
// every decision.
func TestReviewSubscriptionRepeatedDecisions(t *testing.T) {
	sub := pendingSubscription(commitNow)
	store := newFakeReviewStore(sub)

	_, err := ReviewSubscription(store, sub.ID, models.SubscriptionRejected, "", commitNow)
	require.NoError(t, err)
	reviewed, err := ReviewSubscription(store, sub.ID, models.SubscriptionValidated, "Réexamen", commitNow.Add(time.Hour))
	require.NoError(t, err)

	require.Len(t, reviewed.History, 3)
	assert.Equal(t, models.SubscriptionPending, reviewed.History[0].Status)
	assert.Equal(t, models.SubscriptionRejected, reviewed.History[1].Status)
	assert.Equal(t, models.SubscriptionValidated, reviewed.History[2].Status)
	assert.Equal(t, models.SubscriptionValidated, reviewed.Status)
}
