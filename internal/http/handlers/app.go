package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"fastcountdown/internal/deadline"
	"fastcountdown/internal/donation"
	"fastcountdown/internal/leaderboard"
	"fastcountdown/internal/money"
)

type App struct {
	Deadline    *deadline.Engine
	Leaderboard *leaderboard.Aggregator
	Donations   *donation.Processor
	Money       *money.Formatter
	Logger      zerolog.Logger
}

func NewApp(engine *deadline.Engine, board *leaderboard.Aggregator, donations *donation.Processor, formatter *money.Formatter, logger zerolog.Logger) *App {
	return &App{
		Deadline:    engine,
		Leaderboard: board,
		Donations:   donations,
		Money:       formatter,
		Logger:      logger,
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorBody{Error: errorDetail{Code: errCode, Message: message}})
}
