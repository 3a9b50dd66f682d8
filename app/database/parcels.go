package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/apextradecapital/SONATUR/app/models"

	"github.com/lib/pq"
)

// ErrDuplicateID maps the unique_violation a concurrent create can hit even
// after the existence pre-check passed.
var ErrDuplicateID = errors.New("parcel id already exists")

// ParcelFilters represents filtering options for parcel listings.
type ParcelFilters struct {
	Sites    []string
	Category string
	Status   string
	Sort     string // "price_asc" (default) or "price_desc"
}

const parcelColumns = `id, site_code, category, area, price_per_m2, total_price,
	subscription_fee, description, image_url, status, created_at, updated_at`

func scanParcel(row interface{ Scan(...interface{}) error }) (*models.Parcel, error) {
	p := &models.Parcel{}
	err := row.Scan(
		&p.ID, &p.SiteCode, &p.Category, &p.Area, &p.PricePerM2, &p.TotalPrice,
		&p.SubscriptionFee, &p.Description, &p.ImageURL, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func ListParcels(db *sql.DB, filters ParcelFilters) ([]*models.Parcel, error) {
	query := `SELECT ` + parcelColumns + ` FROM parcels WHERE 1=1`
	var args []interface{}
	argIndex := 1

	if len(filters.Sites) > 0 {
		query += fmt.Sprintf(" AND site_code = ANY($%d)", argIndex)
		args = append(args, pq.Array(filters.Sites))
		argIndex++
	}
	if filters.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, filters.Category)
		argIndex++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, filters.Status)
		argIndex++
	}

	if filters.Sort == "price_desc" {
		query += " ORDER BY total_price DESC, id"
	} else {
		query += " ORDER BY total_price ASC, id"
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parcels []*models.Parcel
	for rows.Next() {
		p, err := scanParcel(rows)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}
	return parcels, rows.Err()
}

func GetParcelByID(db *sql.DB, id string) (*models.Parcel, error) {
	query := `SELECT ` + parcelColumns + ` FROM parcels WHERE id = $1`
	return scanParcel(db.QueryRow(query, id))
}

func InsertParcel(db *sql.DB, p *models.Parcel) error {
	query := `INSERT INTO parcels (id, site_code, category, area, price_per_m2,
			  total_price, subscription_fee, description, image_url, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := db.Exec(query, p.ID, p.SiteCode, p.Category, p.Area, p.PricePerM2,
		p.TotalPrice, p.SubscriptionFee, p.Description, p.ImageURL, p.Status)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return ErrDuplicateID
	}
	return err
}

func UpdateParcel(db *sql.DB, p *models.Parcel) error {
	query := `UPDATE parcels SET site_code = $2, category = $3, area = $4,
			  price_per_m2 = $5, total_price = $6, subscription_fee = $7,
			  description = $8, image_url = $9, status = $10, updated_at = NOW()
			  WHERE id = $1`
	res, err := db.Exec(query, p.ID, p.SiteCode, p.Category, p.Area, p.PricePerM2,
		p.TotalPrice, p.SubscriptionFee, p.Description, p.ImageURL, p.Status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateParcelStatus is an unconditional overwrite: the portal keeps the
// original last-write-wins semantics on parcel status.
func UpdateParcelStatus(db *sql.DB, id string, status models.ParcelStatus) error {
	query := `UPDATE parcels SET status = $2, updated_at = NOW() WHERE id = $1`
	res, err := db.Exec(query, id, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func DeleteParcel(db *sql.DB, id string) error {
	query := `DELETE FROM parcels WHERE id = $1`
	_, err := db.Exec(query, id)
	return err
}

func CountSubscriptionsForParcel(db *sql.DB, parcelID string) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM subscriptions WHERE parcel_id = $1`, parcelID).Scan(&count)
	return count, err
}

// ListSiteCodes returns the distinct site codes present in inventory.
func ListSiteCodes(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT DISTINCT site_code FROM parcels ORDER BY site_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// ListUnreconciledParcels finds parcels still marked AVAILABLE that carry
// open subscriptions: the footprint left when a commit persisted the
// subscription but the status update failed.
func ListUnreconciledParcels(db *sql.DB) ([]string, error) {
	query := `
		SELECT DISTINCT p.id
		FROM parcels p
		JOIN subscriptions s ON s.parcel_id = p.id
		WHERE p.status = 'AVAILABLE' AND s.status IN ('PENDING', 'VALIDATED')
		ORDER BY p.id
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
