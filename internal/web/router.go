// Package web serves the browser interface for playing games.
package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	rootmw "github.com/mcoot/nrowgame/internal/middleware"
	"github.com/mcoot/nrowgame/internal/services/game"
	"github.com/mcoot/nrowgame/internal/web/handler"
	"github.com/mcoot/nrowgame/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
}

// NewRouter creates the web router with all page routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(rootmw.Logging(cfg.Logger))

	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.Logger)

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Flash())
	pages.HandleFunc("/", gameHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	pages.HandleFunc("/games/{id}", gameHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/games/{id}/turns", gameHandler.PlayTurn).Methods(http.MethodPost)
	pages.HandleFunc("/games/{id}/bot-turn", gameHandler.PlayBotTurn).Methods(http.MethodPost)

	return r
}
