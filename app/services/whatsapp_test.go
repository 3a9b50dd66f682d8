package services

import (
	"net/url"
	"strings"
	"testing"

	"github.com/apextradecapital/SONATUR/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHandoffMessage(t *testing.T) {
	sub := models.NewSubscription(testApplicant(), "PARCEL-TEST-001", models.PaymentOrangeMoney, "", commitNow)
	parcel := testParcel()

	msg := BuildHandoffMessage(sub, parcel)

	assert.Contains(t, msg, sub.ID)
	assert.Contains(t, msg, "Awa Ouédraogo")
	assert.Contains(t, msg, "70010203")
	assert.Contains(t, msg, "ZINIARE_SILMIOUGOU")
	assert.Contains(t, msg, "PARCEL-TEST-001")
	assert.Contains(t, msg, "50 000 FCFA")
}

func TestHandoffLink(t *testing.T) {
	link := HandoffLink("22644386852", "Nouvelle souscription SUB-000001\nNom : Awa")

	require.True(t, strings.HasPrefix(link, "https://wa.me/22644386852?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Nouvelle souscription SUB-000001\nNom : Awa", parsed.Query().Get("text"))
}
