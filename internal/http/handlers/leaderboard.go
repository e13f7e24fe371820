package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"fastcountdown/internal/domain"
	"fastcountdown/internal/middleware"
	"fastcountdown/internal/money"
)

const maxLeaderboardLimit = 1000

type leaderboardEntry struct {
	Rank          int         `json:"rank"`
	DonorName     string      `json:"donorName"`
	TotalDonation json.Number `json:"totalDonation"`
	Display       string      `json:"display"`
}

// legacyLeaderboardEntry is the row shape the original polling page reads.
type legacyLeaderboardEntry struct {
	DonorName     string      `json:"donor_name"`
	TotalDonation json.Number `json:"total_donation"`
}

func (a *App) loadRanking(w http.ResponseWriter, r *http.Request) ([]domain.DonorRecord, bool) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLeaderboardLimit {
			a.error(w, http.StatusBadRequest, "bad_request", "limit must be between 1 and 1000")
			return nil, false
		}
		limit = n
	}
	items, err := a.Leaderboard.Top(r.Context(), limit)
	if err != nil {
		a.Logger.Error().Err(err).Msg("load leaderboard failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load leaderboard")
		return nil, false
	}
	return items, true
}

func (a *App) LeaderboardList(w http.ResponseWriter, r *http.Request) {
	items, ok := a.loadRanking(w, r)
	if !ok {
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	out := make([]leaderboardEntry, 0, len(items))
	for i, item := range items {
		entry := leaderboardEntry{
			Rank:          i + 1,
			DonorName:     item.DonorName,
			TotalDonation: json.Number(money.Fixed(item.TotalDonation)),
		}
		if a.Money != nil {
			entry.Display = a.Money.Display(item.TotalDonation, locale)
		}
		out = append(out, entry)
	}
	a.json(w, http.StatusOK, out)
}

func (a *App) LegacyLeaderboard(w http.ResponseWriter, r *http.Request) {
	items, ok := a.loadRanking(w, r)
	if !ok {
		return
	}
	out := make([]legacyLeaderboardEntry, 0, len(items))
	for _, item := range items {
		out = append(out, legacyLeaderboardEntry{
			DonorName:     item.DonorName,
			TotalDonation: json.Number(money.Fixed(item.TotalDonation)),
		})
	}
	a.json(w, http.StatusOK, out)
}
