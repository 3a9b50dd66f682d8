package wizard

import (
	"testing"
	"time"

	"github.com/apextradecapital/SONATUR/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 9, 7, 10, 0, 0, 0, time.UTC)

func testSettings() *models.SystemSettings {
	return models.DefaultSettings()
}

func completeApplicant() models.UserData {
	return models.UserData{
		FullName:     "Awa Ouédraogo",
		Phone:        "70010203",
		BirthDate:    "1990-04-12",
		BirthPlace:   "Ouagadougou",
		Profession:   "Commerçante",
		Gender:       models.GenderFemale,
		Country:      "Burkina Faso",
		IDType:       models.IDTypeCNIB,
		IDNumber:     "B1234567",
		IDIssueDate:  "2018-01-15",
		IDIssuePlace: "Ouagadougou",
		City:         "Ouagadougou",
		Address:      "Secteur 15",
	}
}

func availableParcel() models.Parcel {
	return models.Parcel{
		ID:              "PARCEL-TEST-001",
		SiteCode:        "ZINIARE_SILMIOUGOU",
		Category:        "Habitation Ordinaire",
		Area:            400,
		PricePerM2:      5000,
		TotalPrice:      2000000,
		SubscriptionFee: 50000,
		Status:          models.ParcelAvailable,
	}
}

func mustApply(t *testing.T, s State, ev Event) State {
	t.Helper()
	next, err := Apply(s, ev, testSettings(), testNow)
	require.NoError(t, err)
	return next
}

func TestAdvanceGating(t *testing.T) {
	tests := []struct {
		name    string
		setup   func() State
		wantErr string
	}{
		{
			name:    "conditions not accepted",
			setup:   func() State { return State{Step: StepConditions} },
			wantErr: "conditions must be accepted",
		},
		{
			name: "identification incomplete",
			setup: func() State {
				return State{Step: StepIdentification, ConditionsAccepted: true}
			},
			wantErr: "identification is incomplete",
		},
		{
			name: "no site selected",
			setup: func() State {
				return State{Step: StepSiteSelection, ConditionsAccepted: true, Applicant: completeApplicant()}
			},
			wantErr: "select at least one site",
		},
		{
			name: "no parcel selected",
			setup: func() State {
				return State{
					Step:               StepParcelList,
					ConditionsAccepted: true,
					Applicant:          completeApplicant(),
					SelectedSites:      []string{"ZINIARE_SILMIOUGOU"},
				}
			},
			wantErr: "select a parcel",
		},
		{
			name: "selected parcel no longer available",
			setup: func() State {
				p := availableParcel()
				p.Status = models.ParcelReserved
				return State{
					Step:               StepParcelList,
					ConditionsAccepted: true,
					Applicant:          completeApplicant(),
					SelectedSites:      []string{"ZINIARE_SILMIOUGOU"},
					SelectedParcel:     &p,
				}
			},
			wantErr: "no longer available",
		},
		{
			name: "payment without method",
			setup: func() State {
				p := availableParcel()
				return State{Step: StepPayment, SelectedParcel: &p}
			},
			wantErr: "choose a payment method",
		},
		{
			name: "payment not affirmed",
			setup: func() State {
				p := availableParcel()
				return State{Step: StepPayment, SelectedParcel: &p, PaymentMethod: models.PaymentOrangeMoney}
			},
			wantErr: "payment must be affirmed",
		},
		{
			name: "payment not committed",
			setup: func() State {
				p := availableParcel()
				return State{
					Step:            StepPayment,
					SelectedParcel:  &p,
					PaymentMethod:   models.PaymentOrangeMoney,
					PaymentAffirmed: true,
				}
			},
			wantErr: "reservation has not been recorded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.setup()
			after, err := Apply(before, Advance{}, testSettings(), testNow)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, before, after, "failed advance must not change the state")
		})
	}
}

func TestFullFlow(t *testing.T) {
	s := State{Step: StepConditions}

	s = mustApply(t, s, AcceptConditions{Accepted: true})
	s = mustApply(t, s, Advance{})
	require.Equal(t, StepIdentification, s.Step)

	s = mustApply(t, s, SetApplicant{Data: completeApplicant()})
	s = mustApply(t, s, Advance{})
	require.Equal(t, StepSiteSelection, s.Step)

	s = mustApply(t, s, ToggleSite{Code: "ZINIARE_SILMIOUGOU"})
	s = mustApply(t, s, Advance{})
	require.Equal(t, StepParcelList, s.Step)

	s = mustApply(t, s, SelectParcel{Parcel: availableParcel()})
	s = mustApply(t, s, Advance{})
	require.Equal(t, StepRecap, s.Step)

	// entering PAYMENT arms the countdown
	s = mustApply(t, s, Advance{})
	require.Equal(t, StepPayment, s.Step)
	assert.Equal(t, testNow.Add(20*time.Minute), s.PaymentDeadline)

	s = mustApply(t, s, ChooseProvider{Code: models.PaymentOrangeMoney})
	s = mustApply(t, s, SetTransactionRef{Ref: "OM123456"})
	s = mustApply(t, s, AffirmPayment{})
	s = mustApply(t, s, MarkCommitted{SubscriptionID: "SUB-000123"})
	s = mustApply(t, s, Advance{})

	assert.Equal(t, StepConfirmation, s.Step)
	assert.True(t, s.Committed())

	_, err := Apply(s, Advance{}, testSettings(), testNow)
	assert.ErrorIs(t, err, ErrTerminalStep)
	_, err = Apply(s, Retreat{}, testSettings(), testNow)
	assert.ErrorIs(t, err, ErrTerminalStep)
}

func TestRetreatKeepsData(t *testing.T) {
	s := State{Step: StepConditions}
	s = mustApply(t, s, AcceptConditions{Accepted: true})
	s = mustApply(t, s, Advance{})
	s = mustApply(t, s, SetApplicant{Data: completeApplicant()})
	s = mustApply(t, s, Advance{})
	s = mustApply(t, s, ToggleSite{Code: "ZINIARE_SILMIOUGOU"})

	s = mustApply(t, s, Retreat{})
	require.Equal(t, StepIdentification, s.Step)

	assert.True(t, s.ConditionsAccepted)
	assert.Equal(t, "Awa Ouédraogo", s.Applicant.FullName)
	assert.Equal(t, []string{"ZINIARE_SILMIOUGOU"}, s.SelectedSites)

	_, err := Apply(State{Step: StepConditions}, Retreat{}, testSettings(), testNow)
	assert.ErrorIs(t, err, ErrFirstStep)
}

func TestToggleSite(t *testing.T) {
	s := State{Step: StepSiteSelection}

	s = mustApply(t, s, ToggleSite{Code: "A"})
	s = mustApply(t, s, ToggleSite{Code: "B"})
	assert.Equal(t, []string{"A", "B"}, s.SelectedSites)

	s = mustApply(t, s, ToggleSite{Code: "A"})
	assert.Equal(t, []string{"B"}, s.SelectedSites)

	_, err := Apply(s, ToggleSite{}, testSettings(), testNow)
	assert.Error(t, err)
}

func TestDataEventsRequireTheirStep(t *testing.T) {
	s := State{Step: StepConditions}

	_, err := Apply(s, SetApplicant{Data: completeApplicant()}, testSettings(), testNow)
	assert.Error(t, err)

	_, err = Apply(s, AffirmPayment{}, testSettings(), testNow)
	assert.Error(t, err)

	_, err = Apply(s, MarkCommitted{SubscriptionID: "SUB-1"}, testSettings(), testNow)
	assert.Error(t, err)
}

func TestSelectParcelChecksAvailabilityAndSite(t *testing.T) {
	base := State{Step: StepParcelList, SelectedSites: []string{"ZINIARE_SILMIOUGOU"}}

	reserved := availableParcel()
	reserved.Status = models.ParcelReserved
	_, err := Apply(base, SelectParcel{Parcel: reserved}, testSettings(), testNow)
	assert.Error(t, err)

	elsewhere := availableParcel()
	elsewhere.SiteCode = "OUAGA_2000"
	_, err = Apply(base, SelectParcel{Parcel: elsewhere}, testSettings(), testNow)
	assert.Error(t, err)

	s := mustApply(t, base, SelectParcel{Parcel: availableParcel()})
	require.NotNil(t, s.SelectedParcel)
	assert.Equal(t, "PARCEL-TEST-001", s.SelectedParcel.ID)
}

func TestChooseProviderRejectsUnknownCode(t *testing.T) {
	s := State{Step: StepPayment}
	_, err := Apply(s, ChooseProvider{Code: "WAVE"}, testSettings(), testNow)
	assert.Error(t, err)
}

func TestBuildRecap(t *testing.T) {
	cfg := testSettings()

	tests := []struct {
		name          string
		category      string
		totalPrice    int64
		wantPct       float64
		wantDeposit   int64
		wantRemaining int64
	}{
		{"housing rate", "Habitation Ordinaire", 2000000, 10, 200000, 1800000},
		{"commercial rate", "Commerce Voie Bitumée", 6750000, 15, 1012500, 5737500},
		{"zero price", "Habitation Ordinaire", 0, 10, 0, 0},
		{"rounding", "Habitation Ordinaire", 2357649, 10, 235765, 2121884},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := availableParcel()
			p.Category = tt.category
			p.TotalPrice = tt.totalPrice

			r := BuildRecap(&p, cfg)
			assert.Equal(t, tt.wantPct, r.DepositPct)
			assert.Equal(t, tt.wantDeposit, r.DepositAmount)
			assert.Equal(t, tt.wantRemaining, r.RemainingBalance)
			assert.Equal(t, tt.totalPrice, r.TotalPrice)
			assert.Equal(t, int64(50000), r.SubscriptionFee)
		})
	}
}

func TestBuildRecapExtremePercentages(t *testing.T) {
	cfg := testSettings()
	p := availableParcel()

	cfg.HousingDepositPct = 0
	r := BuildRecap(&p, cfg)
	assert.Equal(t, int64(0), r.DepositAmount)
	assert.Equal(t, p.TotalPrice, r.RemainingBalance)

	cfg.HousingDepositPct = 100
	r = BuildRecap(&p, cfg)
	assert.Equal(t, p.TotalPrice, r.DepositAmount)
	assert.Equal(t, int64(0), r.RemainingBalance)
}
