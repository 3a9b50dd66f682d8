package database

import (
	"log"
	"time"

	"github.com/lib/pq"
)

// ParcelChangesChannel is the pg_notify channel fed by the parcels trigger.
const ParcelChangesChannel = "parcel_changes"

// WatchParcelChanges opens a dedicated LISTEN connection and forwards each
// notification payload (JSON: op, id, status) to handler. The listener
// reconnects on its own; a periodic ping keeps dead connections from going
// unnoticed.
func WatchParcelChanges(dsn string, handler func(payload string)) {
	listener := pq.NewListener(dsn, 10*time.Second, time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Printf("Parcel listener event %d: %v", ev, err)
			}
		})

	if err := listener.Listen(ParcelChangesChannel); err != nil {
		log.Printf("Failed to LISTEN on %s: %v", ParcelChangesChannel, err)
		return
	}

	go func() {
		log.Printf("Listening for parcel changes on %q", ParcelChangesChannel)
		for {
			select {
			case n := <-listener.Notify:
				if n == nil {
					// nil signals a reconnect; clients resync on next read
					continue
				}
				handler(n.Extra)
			case <-time.After(90 * time.Second):
				go func() {
					if err := listener.Ping(); err != nil {
						log.Printf("Parcel listener ping failed: %v", err)
					}
				}()
			}
		}
	}()
}
