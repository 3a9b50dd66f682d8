package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/apextradecapital/SONATUR/app/models"
)

// SubscriptionFilters represents filtering options for the admin list.
type SubscriptionFilters struct {
	Search   string // matches applicant name, phone, parcel ID or record ID
	DateFrom string // inclusive, YYYY-MM-DD
	DateTo   string // inclusive, YYYY-MM-DD
	Status   string
}

func scanSubscription(row interface{ Scan(...interface{}) error }) (*models.SubscriptionRecord, error) {
	s := &models.SubscriptionRecord{}
	var userData, history []byte
	err := row.Scan(&s.ID, &s.Date, &userData, &s.ParcelID, &s.PaymentMethod,
		&s.TransactionRef, &s.Status, &history)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(userData, &s.UserData); err != nil {
		return nil, fmt.Errorf("decode user_data for %s: %w", s.ID, err)
	}
	if err := json.Unmarshal(history, &s.History); err != nil {
		return nil, fmt.Errorf("decode history for %s: %w", s.ID, err)
	}
	return s, nil
}

const subscriptionColumns = `id, date, user_data, parcel_id, payment_method, transaction_ref, status, history`

// ListSubscriptions returns records newest first.
func ListSubscriptions(db *sql.DB, filters SubscriptionFilters) ([]*models.SubscriptionRecord, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE 1=1`
	var args []interface{}
	argIndex := 1

	if filters.Search != "" {
		query += fmt.Sprintf(` AND (user_data->>'full_name' ILIKE $%d
			OR user_data->>'phone' ILIKE $%d
			OR parcel_id ILIKE $%d
			OR id ILIKE $%d)`, argIndex, argIndex, argIndex, argIndex)
		args = append(args, "%"+filters.Search+"%")
		argIndex++
	}
	if filters.DateFrom != "" {
		query += fmt.Sprintf(" AND date >= $%d::date", argIndex)
		args = append(args, filters.DateFrom)
		argIndex++
	}
	if filters.DateTo != "" {
		query += fmt.Sprintf(" AND date < $%d::date + INTERVAL '1 day'", argIndex)
		args = append(args, filters.DateTo)
		argIndex++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, filters.Status)
		argIndex++
	}

	query += " ORDER BY date DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.SubscriptionRecord
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func GetSubscriptionByID(db *sql.DB, id string) (*models.SubscriptionRecord, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`
	return scanSubscription(db.QueryRow(query, id))
}

func InsertSubscription(db *sql.DB, s *models.SubscriptionRecord) error {
	userData, err := json.Marshal(s.UserData)
	if err != nil {
		return fmt.Errorf("encode user_data: %w", err)
	}
	history, err := json.Marshal(s.History)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	query := `INSERT INTO subscriptions (id, date, user_data, parcel_id,
			  payment_method, transaction_ref, status, history)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = db.Exec(query, s.ID, s.Date, userData, s.ParcelID,
		s.PaymentMethod, s.TransactionRef, s.Status, history)
	return err
}

// UpdateSubscriptionStatus persists the current status and the full history
// array together. The two columns are never written independently.
func UpdateSubscriptionStatus(db *sql.DB, id string, status models.SubscriptionStatus, history []models.StatusHistoryEntry) error {
	encoded, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	query := `UPDATE subscriptions SET status = $2, history = $3 WHERE id = $1`
	res, err := db.Exec(query, id, status, encoded)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
