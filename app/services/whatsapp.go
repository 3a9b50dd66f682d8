package services

import (
	"fmt"
	"net/url"

	"github.com/apextradecapital/SONATUR/app/models"
)

// BuildHandoffMessage renders the human-readable summary sent to the SONATUR
// operator for manual reconciliation.
func BuildHandoffMessage(sub *models.SubscriptionRecord, parcel *models.Parcel) string {
	return fmt.Sprintf(
		"Nouvelle souscription %s\n"+
			"Nom : %s\n"+
			"Téléphone : %s\n"+
			"Site : %s\n"+
			"Parcelle : %s\n"+
			"Moyen de paiement : %s\n"+
			"Montant payé : %s FCFA",
		sub.ID,
		sub.UserData.FullName,
		sub.UserData.Phone,
		parcel.SiteCode,
		parcel.ID,
		sub.PaymentMethod,
		models.FormatFCFA(parcel.SubscriptionFee),
	)
}

// HandoffLink builds the pre-filled WhatsApp compose URL. Opening it is the
// client's job; the server never waits on the channel.
func HandoffLink(number, message string) string {
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}
