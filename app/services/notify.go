package services

import "sync"

var (
	notifyMu         sync.Mutex
	lastNotification string
)

// SetLastNotification records the most recent applicant notification note
// shown on the admin dashboard.
func SetLastNotification(note string) {
	notifyMu.Lock()
	lastNotification = note
	notifyMu.Unlock()
}

func LastNotification() string {
	notifyMu.Lock()
	defer notifyMu.Unlock()
	return lastNotification
}
