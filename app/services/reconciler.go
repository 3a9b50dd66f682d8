package services

import (
	"database/sql"
	"log"
	"time"

	"github.com/apextradecapital/SONATUR/app/database"
)

// StartReconciler runs the background sweep that surfaces commit leftovers:
// parcels still AVAILABLE although a subscription references them. The sweep
// only logs; fixing the status stays an admin decision.
func StartReconciler(db *sql.DB, interval time.Duration) {
	go func() {
		log.Println("Reconciliation sweep started...")
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			ids, err := database.ListUnreconciledParcels(db)
			if err != nil {
				log.Printf("Reconciliation sweep failed: %v", err)
				continue
			}
			for _, id := range ids {
				log.Printf("Reconciliation: parcel %s is AVAILABLE but has open subscriptions", id)
			}
		}
	}()
}
