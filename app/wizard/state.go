// Package wizard drives an applicant through the ordered subscription steps.
// The whole machine is a pure reducer over a serializable State so the step
// gating and derived figures can be tested without any HTTP surface.
package wizard

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/apextradecapital/SONATUR/app/models"
)

// Step is one stage of the subscription flow. The sequence is strictly
// linear; CONFIRMATION is terminal.
type Step int

const (
	StepConditions Step = iota
	StepIdentification
	StepSiteSelection
	StepParcelList
	StepRecap
	StepPayment
	StepConfirmation
)

var stepNames = map[Step]string{
	StepConditions:     "CONDITIONS",
	StepIdentification: "IDENTIFICATION",
	StepSiteSelection:  "SITE_SELECTION",
	StepParcelList:     "PARCEL_LIST",
	StepRecap:          "RECAP",
	StepPayment:        "PAYMENT",
	StepConfirmation:   "CONFIRMATION",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STEP(%d)", int(s))
}

var (
	ErrTerminalStep = errors.New("confirmation is terminal; start a new session instead")
	ErrFirstStep    = errors.New("already at the first step")
)

// State is the full in-progress session. Retreating never clears data, so
// every field survives backward navigation for edit-in-place.
type State struct {
	Step               Step            `json:"step"`
	ConditionsAccepted bool            `json:"conditions_accepted"`
	Applicant          models.UserData `json:"applicant"`
	SelectedSites      []string        `json:"selected_sites"`
	SelectedParcel     *models.Parcel  `json:"selected_parcel,omitempty"`
	PaymentMethod      string          `json:"payment_method,omitempty"`
	TransactionRef     string          `json:"transaction_ref,omitempty"`
	PaymentAffirmed    bool            `json:"payment_affirmed"`
	PaymentDeadline    time.Time       `json:"payment_deadline,omitempty"`
	SubscriptionID     string          `json:"subscription_id,omitempty"`
}

// Committed reports whether the reservation has been persisted.
func (s *State) Committed() bool {
	return s.SubscriptionID != ""
}

// SiteSelected reports whether the given site is in the selection set.
func (s *State) SiteSelected(code string) bool {
	for _, c := range s.SelectedSites {
		if c == code {
			return true
		}
	}
	return false
}

func (s State) clone() State {
	out := s
	out.SelectedSites = append([]string(nil), s.SelectedSites...)
	if s.SelectedParcel != nil {
		p := *s.SelectedParcel
		out.SelectedParcel = &p
	}
	return out
}

// Event is a wizard input. Data events only apply while their step is the
// current one; Advance and Retreat move between steps.
type Event interface{ isEvent() }

type AcceptConditions struct{ Accepted bool }

type SetApplicant struct{ Data models.UserData }

type ToggleSite struct{ Code string }

type SelectParcel struct{ Parcel models.Parcel }

type ChooseProvider struct{ Code string }

type SetTransactionRef struct{ Ref string }

type AffirmPayment struct{}

// MarkCommitted records the persisted reservation; it is what unlocks the
// PAYMENT to CONFIRMATION transition.
type MarkCommitted struct{ SubscriptionID string }

type Advance struct{}

type Retreat struct{}

func (AcceptConditions) isEvent()  {}
func (SetApplicant) isEvent()      {}
func (ToggleSite) isEvent()        {}
func (SelectParcel) isEvent()      {}
func (ChooseProvider) isEvent()    {}
func (SetTransactionRef) isEvent() {}
func (AffirmPayment) isEvent()     {}
func (MarkCommitted) isEvent()     {}
func (Advance) isEvent()           {}
func (Retreat) isEvent()           {}

// CanAdvance is the per-step completeness predicate. A nil return means the
// current step may advance.
func (s *State) CanAdvance() error {
	switch s.Step {
	case StepConditions:
		if !s.ConditionsAccepted {
			return errors.New("conditions must be accepted")
		}
	case StepIdentification:
		if !s.Applicant.Complete() {
			return errors.New("identification is incomplete")
		}
	case StepSiteSelection:
		if len(s.SelectedSites) == 0 {
			return errors.New("select at least one site")
		}
	case StepParcelList:
		if s.SelectedParcel == nil {
			return errors.New("select a parcel")
		}
		if !s.SelectedParcel.Selectable() {
			return fmt.Errorf("parcel %s is no longer available", s.SelectedParcel.ID)
		}
	case StepRecap:
		// read-only review, always advances
	case StepPayment:
		if s.PaymentMethod == "" {
			return errors.New("choose a payment method")
		}
		if !s.PaymentAffirmed {
			return errors.New("payment must be affirmed")
		}
		if !s.Committed() {
			return errors.New("reservation has not been recorded")
		}
	case StepConfirmation:
		return ErrTerminalStep
	}
	return nil
}

// Apply maps (state, event) to a new state. The input state is never
// mutated; a failed gate returns it unchanged alongside the error. now feeds
// the advisory countdown deadline when the payment step is entered.
func Apply(s State, ev Event, cfg *models.SystemSettings, now time.Time) (State, error) {
	next := s.clone()

	switch e := ev.(type) {
	case AcceptConditions:
		if err := requireStep(s, StepConditions); err != nil {
			return s, err
		}
		next.ConditionsAccepted = e.Accepted

	case SetApplicant:
		if err := requireStep(s, StepIdentification); err != nil {
			return s, err
		}
		next.Applicant = e.Data

	case ToggleSite:
		if err := requireStep(s, StepSiteSelection); err != nil {
			return s, err
		}
		if e.Code == "" {
			return s, errors.New("site code is required")
		}
		if s.SiteSelected(e.Code) {
			kept := next.SelectedSites[:0]
			for _, c := range next.SelectedSites {
				if c != e.Code {
					kept = append(kept, c)
				}
			}
			next.SelectedSites = kept
		} else {
			next.SelectedSites = append(next.SelectedSites, e.Code)
		}

	case SelectParcel:
		if err := requireStep(s, StepParcelList); err != nil {
			return s, err
		}
		if !e.Parcel.Selectable() {
			return s, fmt.Errorf("parcel %s is not available", e.Parcel.ID)
		}
		if len(s.SelectedSites) > 0 && !s.SiteSelected(e.Parcel.SiteCode) {
			return s, fmt.Errorf("parcel %s is outside the selected sites", e.Parcel.ID)
		}
		p := e.Parcel
		next.SelectedParcel = &p

	case ChooseProvider:
		if err := requireStep(s, StepPayment); err != nil {
			return s, err
		}
		if cfg.Provider(e.Code) == nil {
			return s, fmt.Errorf("unknown payment provider %q", e.Code)
		}
		next.PaymentMethod = e.Code

	case SetTransactionRef:
		if err := requireStep(s, StepPayment); err != nil {
			return s, err
		}
		next.TransactionRef = e.Ref

	case AffirmPayment:
		if err := requireStep(s, StepPayment); err != nil {
			return s, err
		}
		if s.PaymentMethod == "" {
			return s, errors.New("choose a payment method first")
		}
		next.PaymentAffirmed = true

	case MarkCommitted:
		if err := requireStep(s, StepPayment); err != nil {
			return s, err
		}
		if e.SubscriptionID == "" {
			return s, errors.New("subscription id is required")
		}
		next.SubscriptionID = e.SubscriptionID

	case Advance:
		if err := s.CanAdvance(); err != nil {
			return s, err
		}
		next.Step = s.Step + 1
		if next.Step == StepPayment {
			next.PaymentDeadline = now.Add(time.Duration(cfg.TimerMinutes) * time.Minute)
		}

	case Retreat:
		if s.Step == StepConditions {
			return s, ErrFirstStep
		}
		if s.Step == StepConfirmation {
			return s, ErrTerminalStep
		}
		next.Step = s.Step - 1

	default:
		return s, fmt.Errorf("unknown event %T", ev)
	}

	return next, nil
}

func requireStep(s State, want Step) error {
	if s.Step != want {
		return fmt.Errorf("event not valid at step %s", s.Step)
	}
	return nil
}

// Recap holds the derived figures shown before commit. Deposit and remaining
// balance are informational; the amount actually collected is the flat
// subscription fee.
type Recap struct {
	TotalPrice       int64   `json:"total_price"`
	DepositPct       float64 `json:"deposit_pct"`
	DepositAmount    int64   `json:"deposit_amount"`
	RemainingBalance int64   `json:"remaining_balance"`
	SubscriptionFee  int64   `json:"subscription_fee"`
}

// BuildRecap computes the deposit figures for a parcel under the configured
// percentages.
func BuildRecap(p *models.Parcel, cfg *models.SystemSettings) Recap {
	pct := cfg.DepositPct(p.Category)
	deposit := int64(math.Round(float64(p.TotalPrice) * pct / 100))
	return Recap{
		TotalPrice:       p.TotalPrice,
		DepositPct:       pct,
		DepositAmount:    deposit,
		RemainingBalance: p.TotalPrice - deposit,
		SubscriptionFee:  p.SubscriptionFee,
	}
}
