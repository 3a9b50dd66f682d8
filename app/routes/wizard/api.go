package wizard

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/apextradecapital/SONATUR/app/config"
	"github.com/apextradecapital/SONATUR/app/database"
	"github.com/apextradecapital/SONATUR/app/models"
	"github.com/apextradecapital/SONATUR/app/services"
	wiz "github.com/apextradecapital/SONATUR/app/wizard"

	"github.com/gofiber/fiber/v2"
)

func CreateSessionAPI(c *fiber.Ctx, mgr *wiz.Manager) error {
	s := mgr.Create(time.Now())
	return c.Status(201).JSON(fiber.Map{
		"token": s.Token,
		"state": renderState(s.State, time.Now()),
	})
}

func GetSessionAPI(c *fiber.Ctx, mgr *wiz.Manager) error {
	state, err := mgr.Get(c.Params("token"), time.Now())
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Session introuvable"})
	}
	return c.JSON(fiber.Map{"state": renderState(state, time.Now())})
}

// eventRequest is the wire form of a wizard event. Type selects the event;
// the other fields feed it.
type eventRequest struct {
	Type           string          `json:"type"`
	Accepted       bool            `json:"accepted"`
	Applicant      models.UserData `json:"applicant"`
	SiteCode       string          `json:"site_code"`
	ParcelID       string          `json:"parcel_id"`
	Provider       string          `json:"provider"`
	TransactionRef string          `json:"transaction_ref"`
}

func DispatchEventAPI(c *fiber.Ctx, mgr *wiz.Manager) error {
	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	ev, err := buildEvent(&req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	state, err := mgr.Dispatch(c.Params("token"), ev, config.GetSettings(), time.Now())
	if err != nil {
		if errors.Is(err, wiz.ErrSessionNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Session introuvable"})
		}
		// gate failures return the unchanged state alongside the message
		return c.Status(422).JSON(fiber.Map{
			"error": err.Error(),
			"state": renderState(state, time.Now()),
		})
	}

	return c.JSON(fiber.Map{"state": renderState(state, time.Now())})
}

func buildEvent(req *eventRequest) (wiz.Event, error) {
	switch req.Type {
	case "accept_conditions":
		return wiz.AcceptConditions{Accepted: req.Accepted}, nil
	case "set_applicant":
		return wiz.SetApplicant{Data: req.Applicant}, nil
	case "toggle_site":
		return wiz.ToggleSite{Code: req.SiteCode}, nil
	case "select_parcel":
		// availability is checked against the repository at selection time
		parcel, err := database.GetParcelByID(config.GetDB(), req.ParcelID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("parcelle %s introuvable", req.ParcelID)
			}
			return nil, errors.New("Problème de connexion, veuillez réessayer")
		}
		return wiz.SelectParcel{Parcel: *parcel}, nil
	case "choose_provider":
		return wiz.ChooseProvider{Code: req.Provider}, nil
	case "set_transaction_ref":
		return wiz.SetTransactionRef{Ref: req.TransactionRef}, nil
	case "affirm_payment":
		return wiz.AffirmPayment{}, nil
	case "advance":
		return wiz.Advance{}, nil
	case "retreat":
		return wiz.Retreat{}, nil
	}
	return nil, fmt.Errorf("unknown event type %q", req.Type)
}

// CommitAPI is the PAYMENT to CONFIRMATION transition: it persists the
// subscription, reserves the parcel and only then advances the wizard.
func CommitAPI(c *fiber.Ctx, mgr *wiz.Manager) error {
	token := c.Params("token")
	now := time.Now()
	settings := config.GetSettings()

	state, err := mgr.Get(token, now)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Session introuvable"})
	}

	if state.Step != wiz.StepPayment {
		return c.Status(422).JSON(fiber.Map{"error": "Le paiement n'est pas en cours"})
	}
	if state.PaymentMethod == "" || !state.PaymentAffirmed {
		return c.Status(422).JSON(fiber.Map{"error": "Confirmez d'abord le paiement"})
	}
	if state.Committed() {
		return c.Status(409).JSON(fiber.Map{"error": "Souscription déjà enregistrée"})
	}

	store := database.NewStore(config.GetDB())
	sub, err := services.CommitSubscription(store, state.Applicant, state.SelectedParcel,
		state.PaymentMethod, state.TransactionRef, now)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Problème de connexion, veuillez réessayer"})
	}

	if _, err := mgr.Dispatch(token, wiz.MarkCommitted{SubscriptionID: sub.ID}, settings, now); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	state, err = mgr.Dispatch(token, wiz.Advance{}, settings, now)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	message := services.BuildHandoffMessage(sub, state.SelectedParcel)
	return c.JSON(fiber.Map{
		"subscription":  sub,
		"state":         renderState(state, now),
		"whatsapp_link": services.HandoffLink(settings.WhatsAppNumber, message),
	})
}

// renderState decorates the raw state with the step name, the recap figures
// once a parcel is chosen, and the payment instructions while paying.
func renderState(state wiz.State, now time.Time) fiber.Map {
	settings := config.GetSettings()

	view := fiber.Map{
		"step":  state.Step.String(),
		"state": state,
	}

	if state.SelectedParcel != nil && state.Step >= wiz.StepRecap {
		recap := wiz.BuildRecap(state.SelectedParcel, settings)
		view["recap"] = recap
	}

	if state.Step == wiz.StepPayment {
		payment := fiber.Map{
			"providers":    settings.Providers,
			"seconds_left": secondsLeft(state.PaymentDeadline, now),
		}
		if p := settings.Provider(state.PaymentMethod); p != nil && state.SelectedParcel != nil {
			payment["instructions"] = p.Instructions(state.SelectedParcel.SubscriptionFee)
			payment["amount"] = state.SelectedParcel.SubscriptionFee
		}
		view["payment"] = payment
	}

	return view
}

// secondsLeft never goes below zero; the countdown is advisory and expiry
// blocks nothing.
func secondsLeft(deadline time.Time, now time.Time) int {
	if deadline.IsZero() {
		return 0
	}
	left := int(deadline.Sub(now).Seconds())
	if left < 0 {
		return 0
	}
	return left
}
