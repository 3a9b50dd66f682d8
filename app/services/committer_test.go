package services

import (
	"errors"
	"testing"
	"time"

	"github.com/apextradecapital/SONATUR/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commitNow = time.Date(2025, 9, 7, 10, 0, 0, 0, time.UTC)

// fakeCommitStore records writes in memory and can fail either one on demand.
type fakeCommitStore struct {
	insertErr error
	statusErr error

	inserted []*models.SubscriptionRecord
	statuses map[string]models.ParcelStatus
}

func newFakeCommitStore() *fakeCommitStore {
	return &fakeCommitStore{statuses: make(map[string]models.ParcelStatus)}
}

func (f *fakeCommitStore) InsertSubscription(sub *models.SubscriptionRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, sub)
	return nil
}

func (f *fakeCommitStore) UpdateParcelStatus(id string, status models.ParcelStatus) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statuses[id] = status
	return nil
}

func testApplicant() models.UserData {
	return models.UserData{FullName: "Awa Ouédraogo", Phone: "70010203"}
}

func testParcel() *models.Parcel {
	return &models.Parcel{
		ID:              "PARCEL-TEST-001",
		SiteCode:        "ZINIARE_SILMIOUGOU",
		Category:        "Habitation Ordinaire",
		TotalPrice:      2000000,
		SubscriptionFee: 50000,
		Status:          models.ParcelAvailable,
	}
}

func TestCommitSubscription(t *testing.T) {
	store := newFakeCommitStore()

	sub, err := CommitSubscription(store, testApplicant(), testParcel(), models.PaymentOrangeMoney, "OM123", commitNow)
	require.NoError(t, err)

	require.Len(t, store.inserted, 1)
	assert.Equal(t, sub, store.inserted[0])
	assert.Equal(t, models.SubscriptionPending, sub.Status)
	assert.Equal(t, "PARCEL-TEST-001", sub.ParcelID)
	assert.Equal(t, "OM123", sub.TransactionRef)

	require.Len(t, sub.History, 1)
	assert.Equal(t, models.ActorSystem, sub.History[0].UpdatedBy)
	assert.Equal(t, "Souscription initiale", sub.History[0].Comment)

	assert.Equal(t, models.ParcelReserved, store.statuses["PARCEL-TEST-001"])
}

func TestCommitSubscriptionInsertFailureAborts(t *testing.T) {
	store := newFakeCommitStore()
	store.insertErr = errors.New("connection reset")

	_, err := CommitSubscription(store, testApplicant(), testParcel(), models.PaymentOrangeMoney, "", commitNow)
	require.Error(t, err)

	// nothing was reserved: the failed insert must not touch the parcel
	assert.Empty(t, store.statuses)
}

func TestCommitSubscriptionStatusFailureStillCounts(t *testing.T) {
	store := newFakeCommitStore()
	store.statusErr = errors.New("connection reset")

	sub, err := CommitSubscription(store, testApplicant(), testParcel(), models.PaymentMoovMoney, "", commitNow)
	require.NoError(t, err)
	require.NotNil(t, sub)
	require.Len(t, store.inserted, 1)
}

func TestCommitSubscriptionRejectsUnavailableParcel(t *testing.T) {
	store := newFakeCommitStore()

	p := testParcel()
	p.Status = models.ParcelSold
	_, err := CommitSubscription(store, testApplicant(), p, models.PaymentOrangeMoney, "", commitNow)
	assert.Error(t, err)

	_, err = CommitSubscription(store, testApplicant(), nil, models.PaymentOrangeMoney, "", commitNow)
	assert.Error(t, err)

	assert.Empty(t, store.inserted)
}

// Two sessions that both saw the parcel as AVAILABLE both commit; there is no
// conditional guard and the second status write simply wins.
func TestCommitSubscriptionConcurrentDoubleCommit(t *testing.T) {
	store := newFakeCommitStore()
	parcel := testParcel()

	first, err := CommitSubscription(store, testApplicant(), parcel, models.PaymentOrangeMoney, "", commitNow)
	require.NoError(t, err)

	second, err := CommitSubscription(store, testApplicant(), parcel, models.PaymentMoovMoney, "", commitNow.Add(time.Second))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	require.Len(t, store.inserted, 2)
	assert.Equal(t, models.ParcelReserved, store.statuses["PARCEL-TEST-001"])
}
