package models

// DashboardStats aggregates the figures shown on the admin overview.
type DashboardStats struct {
	CollectedFees        int64           `json:"collected_fees"`
	AvailableParcels     int             `json:"available_parcels"`
	TotalParcels         int             `json:"total_parcels"`
	PendingSubscriptions int             `json:"pending_subscriptions"`
	SubscriptionsByMonth []MonthCount    `json:"subscriptions_by_month"`
	ParcelsByCategory    []CategoryCount `json:"parcels_by_category"`
	LastNotification     string          `json:"last_notification"`
}

// MonthCount is one bar of the subscriptions-per-month series.
type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

// CategoryCount is one slice of the parcels-by-category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
