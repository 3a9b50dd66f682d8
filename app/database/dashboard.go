package database

import (
	"database/sql"

	"github.com/apextradecapital/SONATUR/app/models"
)

// GetDashboardStats returns statistics for the admin overview.
func GetDashboardStats(db *sql.DB) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	// 1. Collected application fees (validated subscriptions only)
	err := db.QueryRow(`
		SELECT COALESCE(SUM(p.subscription_fee), 0)
		FROM subscriptions s
		JOIN parcels p ON p.id = s.parcel_id
		WHERE s.status = 'VALIDATED'
	`).Scan(&stats.CollectedFees)
	if err != nil {
		return nil, err
	}

	// 2. Parcel availability
	err = db.QueryRow(`
		SELECT COUNT(*) FILTER (WHERE status = 'AVAILABLE'), COUNT(*)
		FROM parcels
	`).Scan(&stats.AvailableParcels, &stats.TotalParcels)
	if err != nil {
		return nil, err
	}

	// 3. Pending reviews
	err = db.QueryRow(`SELECT COUNT(*) FROM subscriptions WHERE status = 'PENDING'`).
		Scan(&stats.PendingSubscriptions)
	if err != nil {
		return nil, err
	}

	// 4. Subscriptions per month
	rows, err := db.Query(`
		SELECT to_char(date, 'YYYY-MM') AS month, COUNT(*)
		FROM subscriptions
		GROUP BY month
		ORDER BY month
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var mc models.MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, err
		}
		stats.SubscriptionsByMonth = append(stats.SubscriptionsByMonth, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 5. Parcels per category
	catRows, err := db.Query(`
		SELECT category, COUNT(*)
		FROM parcels
		GROUP BY category
		ORDER BY COUNT(*) DESC, category
	`)
	if err != nil {
		return nil, err
	}
	defer catRows.Close()
	for catRows.Next() {
		var cc models.CategoryCount
		if err := catRows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, err
		}
		stats.ParcelsByCategory = append(stats.ParcelsByCategory, cc)
	}
	return stats, catRows.Err()
}
