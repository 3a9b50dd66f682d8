package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeUser() UserData {
	return UserData{
		FullName:     "Awa Ouédraogo",
		Phone:        "70010203",
		BirthDate:    "1990-04-12",
		BirthPlace:   "Ouagadougou",
		Profession:   "Commerçante",
		Gender:       GenderFemale,
		Country:      "Burkina Faso",
		IDType:       IDTypeCNIB,
		IDNumber:     "B1234567",
		IDIssueDate:  "2018-01-15",
		IDIssuePlace: "Ouagadougou",
		City:         "Ouagadougou",
		Address:      "Secteur 15",
	}
}

func TestUserDataComplete(t *testing.T) {
	u := completeUser()
	assert.True(t, u.Complete())

	// email is the only optional field
	u.Email = ""
	assert.True(t, u.Complete())

	u.Phone = ""
	assert.False(t, u.Complete())

	empty := UserData{}
	assert.False(t, empty.Complete())
}

func TestNewSubscriptionID(t *testing.T) {
	ts := time.UnixMilli(1757171468136)
	id := NewSubscriptionID(ts)

	assert.Regexp(t, `^SUB-\d{6}$`, id)
	assert.Equal(t, id, NewSubscriptionID(ts))
	assert.NotEqual(t, id, NewSubscriptionID(ts.Add(time.Millisecond)))
}

func TestNewSubscription(t *testing.T) {
	now := time.Date(2025, 9, 7, 10, 0, 0, 0, time.UTC)
	sub := NewSubscription(completeUser(), "PARCEL-001", PaymentOrangeMoney, "OM123", now)

	assert.Equal(t, SubscriptionPending, sub.Status)
	assert.Equal(t, now, sub.Date)
	assert.Equal(t, "PARCEL-001", sub.ParcelID)
	assert.Equal(t, "OM123", sub.TransactionRef)

	require.Len(t, sub.History, 1)
	entry := sub.History[0]
	assert.Equal(t, SubscriptionPending, entry.Status)
	assert.Equal(t, ActorSystem, entry.UpdatedBy)
	assert.Equal(t, "Souscription initiale", entry.Comment)
}

func TestAppendStatusKeepsStatusAndHistoryInStep(t *testing.T) {
	now := time.Date(2025, 9, 7, 10, 0, 0, 0, time.UTC)
	sub := NewSubscription(completeUser(), "PARCEL-001", PaymentOrangeMoney, "", now)

	sub.AppendStatus(SubscriptionValidated, ActorAdmin, "Dossier validé", now.Add(time.Hour))

	require.Len(t, sub.History, 2)
	assert.Equal(t, SubscriptionValidated, sub.Status)
	assert.Equal(t, sub.Status, sub.History[len(sub.History)-1].Status)
	assert.Equal(t, SubscriptionPending, sub.History[0].Status)
}

func TestParcelNormalizeAndValidate(t *testing.T) {
	p := Parcel{ID: " parcel-lot01 ", SiteCode: "ZINIARE_SILMIOUGOU", Category: "Habitation Ordinaire"}
	p.Normalize()

	assert.Equal(t, "PARCEL-LOT01", p.ID)
	assert.Equal(t, ParcelAvailable, p.Status)
	assert.Equal(t, DefaultParcelImage, p.ImageURL)
	assert.NoError(t, p.Validate())

	p.ID = "PARCEL LOT01"
	assert.Error(t, p.Validate())
}

func TestParcelSelectable(t *testing.T) {
	p := Parcel{Status: ParcelAvailable}
	assert.True(t, p.Selectable())
	p.Status = ParcelReserved
	assert.False(t, p.Selectable())
	p.Status = ParcelSold
	assert.False(t, p.Selectable())
}
