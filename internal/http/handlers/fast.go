package handlers

import (
	"net/http"
	"time"
)

// isoMillis matches JavaScript's Date.prototype.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type fastEndResponse struct {
	FastEnd          string `json:"fastEnd"`
	ExtraMinutes     string `json:"extraMinutes"`
	MaxExtraMinutes  string `json:"maxExtraMinutes"`
	Capped           bool   `json:"capped"`
	Ended            bool   `json:"ended"`
	RemainingSeconds int64  `json:"remainingSeconds"`
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

func (a *App) FastEnd(w http.ResponseWriter, r *http.Request) {
	status, err := a.Deadline.Status(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("load fast end failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load fast end")
		return
	}
	a.json(w, http.StatusOK, fastEndResponse{
		FastEnd:          formatInstant(status.FastEnd),
		ExtraMinutes:     status.ExtraMinutes.String(),
		MaxExtraMinutes:  status.MaxExtraMinutes.String(),
		Capped:           status.Capped,
		Ended:            status.Ended,
		RemainingSeconds: status.RemainingSeconds,
	})
}
