package property

import (
	"time"

	"unilodge-backend/internal/models"
)

// IncrementViews applies the rolling-window view policy to a snapshot: when
// the last reset is more than one calendar month in the past the counter
// restarts at zero, then the view is counted. Persisting the change is the
// caller's step. Concurrent views of the same record can lose counts; the
// counter is informational and that is an accepted tradeoff.
func IncrementViews(p *models.Property, now time.Time) {
	if p.LastViewedReset.Before(now.AddDate(0, -1, 0)) {
		p.Views = 0
		p.LastViewedReset = now
	}
	p.Views++
}
