package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/nrowgame/internal/api/apierr"
	"github.com/mcoot/nrowgame/internal/api/handler"
	"github.com/mcoot/nrowgame/internal/api/response"
	"github.com/mcoot/nrowgame/internal/middleware"
	"github.com/mcoot/nrowgame/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.GameController)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, apiPanicHandler))
	api.Use(middleware.Logging(cfg.Logger))
	api.NotFoundHandler = http.HandlerFunc(notFoundHandler)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	games := api.PathPrefix("/games").Subrouter()
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("", gameHandler.List).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/turns", gameHandler.PlayTurn).Methods(http.MethodPost)
	games.HandleFunc("/{id}/bot-turn", gameHandler.PlayBotTurn).Methods(http.MethodPost)
	games.HandleFunc("/{id}/suggestion", gameHandler.Suggest).Methods(http.MethodGet)
	games.HandleFunc("/{id}/cells/{row}/{col}", gameHandler.GetCell).Methods(http.MethodGet)
	games.HandleFunc("/{id}/cells/{row}/{col}/run", gameHandler.GetRun).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.OK(w, response.Health{Status: "ok"})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	apierr.WriteError(w, apierr.NewInvalidRequestError("Unknown endpoint"))
}

// apiPanicHandler turns panics into JSON INTERNAL_ERROR responses
func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
