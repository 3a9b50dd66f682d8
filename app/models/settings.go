package models

import "strings"

// SettingsRowID keys the singleton settings row.
const SettingsRowID = "system"

// AmountPlaceholder is substituted with the formatted fee in provider
// instruction steps.
const AmountPlaceholder = "{AMOUNT}"

// PaymentProvider holds the mobile-money instructions shown at the payment
// step.
type PaymentProvider struct {
	Code         string   `json:"code"`
	Label        string   `json:"label"`
	USSDCode     string   `json:"ussd_code"`
	MerchantCode string   `json:"merchant_code"`
	Steps        []string `json:"steps"`
}

// Instructions renders the step list with the amount filled in.
func (p *PaymentProvider) Instructions(amount int64) []string {
	out := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		out[i] = strings.ReplaceAll(s, AmountPlaceholder, FormatFCFA(amount))
	}
	return out
}

// Site is a named development zone grouping parcels.
type Site struct {
	Code        string `json:"code"`
	Label       string `json:"label"`
	Locality    string `json:"locality"`
	Description string `json:"description"`
}

// SystemSettings is the singleton configuration object. It is loaded once at
// startup and only the admin surface mutates it.
type SystemSettings struct {
	WhatsAppNumber       string            `json:"whatsapp_number"`
	TimerMinutes         int               `json:"timer_minutes"`
	HousingDepositPct    float64           `json:"housing_deposit_pct"`
	CommercialDepositPct float64           `json:"commercial_deposit_pct"`
	CommercialMarker     string            `json:"commercial_marker"`
	ConditionsText       string            `json:"conditions_text"`
	ContactPhone         string            `json:"contact_phone"`
	ContactEmail         string            `json:"contact_email"`
	ContactAddress       string            `json:"contact_address"`
	AdminPINHash         string            `json:"admin_pin_hash,omitempty"`
	Providers            []PaymentProvider `json:"providers"`
	Sites                []Site            `json:"sites"`
}

// DepositPct selects the deposit percentage for a parcel category: the
// commercial rate when the label contains the commercial marker, the housing
// rate otherwise.
func (s *SystemSettings) DepositPct(category string) float64 {
	if s.CommercialMarker != "" && strings.Contains(category, s.CommercialMarker) {
		return s.CommercialDepositPct
	}
	return s.HousingDepositPct
}

// Provider looks up a payment provider by code.
func (s *SystemSettings) Provider(code string) *PaymentProvider {
	for i := range s.Providers {
		if s.Providers[i].Code == code {
			return &s.Providers[i]
		}
	}
	return nil
}

// DefaultSettings is the compiled-in fallback used when the remote load
// fails or returns nothing. It is a complete object, never a partial merge.
func DefaultSettings() *SystemSettings {
	return &SystemSettings{
		WhatsAppNumber:       "22644386852",
		TimerMinutes:         20,
		HousingDepositPct:    10,
		CommercialDepositPct: 15,
		CommercialMarker:     "Commerce",
		ConditionsText: "La SONATUR met à disposition des parcelles dans le cadre " +
			"d'opérations foncières planifiées. Toute souscription en ligne implique " +
			"l'acceptation des conditions suivantes : le souscripteur certifie " +
			"l'exactitude des informations transmises ; les paiements doivent être " +
			"effectués uniquement par les canaux officiels ; la SONATUR se réserve le " +
			"droit de valider ou de rejeter toute demande de souscription ; aucun " +
			"remboursement n'est effectué après validation du paiement sauf cas de " +
			"force majeure avéré ; la confirmation de souscription se fait par un " +
			"message WhatsApp officiel au numéro SONATUR.",
		ContactPhone:   "(+226) 25 30 17 73",
		ContactEmail:   "info@sonatur.bf",
		ContactAddress: "03 BP 7026 Ouagadougou 03",
		Providers: []PaymentProvider{
			{
				Code:         PaymentOrangeMoney,
				Label:        "Orange Money",
				USSDCode:     "*144*10#",
				MerchantCode: "056732",
				Steps: []string{
					"Composez le *144*10# sur votre téléphone.",
					"Entrez le code marchand : 056732",
					"Entrez le montant exact : " + AmountPlaceholder,
					"Validez avec votre code PIN.",
					"Vous recevrez un SMS avec l'ID de transaction.",
				},
			},
			{
				Code:         PaymentMoovMoney,
				Label:        "Moov Money",
				USSDCode:     "*555*6#",
				MerchantCode: "041209",
				Steps: []string{
					"Composez le *555*6# sur votre téléphone.",
					"Entrez le code marchand : 041209",
					"Entrez le montant exact : " + AmountPlaceholder,
					"Validez avec votre code secret.",
					"Vous recevrez un SMS avec l'ID de transaction.",
				},
			},
		},
		Sites: []Site{
			{
				Code:        "ZINIARE_SILMIOUGOU",
				Label:       "Vente de parcelles - Ziniaré",
				Locality:    "Silmiougou",
				Description: "Zone à fort potentiel d'aménagement. Idéal pour habitation et commerce.",
			},
		},
	}
}

// FormatFCFA renders an amount with space-separated thousands, the way the
// portal displays prices (e.g. 2 357 649).
func FormatFCFA(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := []byte{}
	n := 0
	for {
		d := byte('0' + amount%10)
		if n > 0 && n%3 == 0 {
			s = append([]byte{' '}, s...)
		}
		s = append([]byte{d}, s...)
		amount /= 10
		n++
		if amount == 0 {
			break
		}
	}
	if neg {
		return "-" + string(s)
	}
	return string(s)
}
