// Package handler serves the HTML pages of the web interface.
package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/mcoot/nrowgame/internal/model"
	"github.com/mcoot/nrowgame/internal/services/game"
	"github.com/mcoot/nrowgame/internal/web/middleware"
	"github.com/mcoot/nrowgame/internal/web/templates/layout"
	"github.com/mcoot/nrowgame/internal/web/templates/pages"
)

// GameHandler handles the game list, game page and move forms
type GameHandler struct {
	gameController *game.Controller
	logger         *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameController *game.Controller, logger *slog.Logger) *GameHandler {
	return &GameHandler{gameController: gameController, logger: logger}
}

// Home renders the list of games
func (h *GameHandler) Home(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameController.ListGames(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, pages.Home(pages.HomeData{
		PageData: layout.PageData{Title: "Games", Flash: middleware.GetFlash(r.Context())},
		Games:    games,
	}))
}

// Create starts a game from the new game form and redirects to it
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	width, errW := strconv.Atoi(r.FormValue("width"))
	height, errH := strconv.Atoi(r.FormValue("height"))
	winLength, errL := strconv.Atoi(r.FormValue("win_length"))
	if err := errors.Join(errW, errH, errL); err != nil {
		middleware.SetFlash(w, "error", "Width, height and win length must be numbers")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	var players []model.Player
	for id := range strings.SplitSeq(r.FormValue("players"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			players = append(players, model.NewPlayer(id))
		}
	}

	g, err := h.gameController.CreateGame(r.Context(), game.CreateGameParams{
		Width:     width,
		Height:    height,
		WinLength: winLength,
		Players:   players,
	})
	if err != nil {
		middleware.SetFlash(w, "error", createErrorMessage(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, gamePath(g.ID), http.StatusSeeOther)
}

// View renders a single game
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if errors.Is(err, model.ErrGameNotFound) {
		h.render(w, r, http.StatusNotFound, pages.NotFound(layout.PageData{Title: "Not found"}))
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, pages.Game(pages.GameData{
		PageData: layout.PageData{Title: "Game " + string(g.ID), Flash: middleware.GetFlash(r.Context())},
		Game:     g,
	}))
}

// PlayTurn plays the submitted row and col and redirects back with the outcome
func (h *GameHandler) PlayTurn(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, gamePath(id), http.StatusSeeOther)
		return
	}

	row, errR := strconv.Atoi(r.FormValue("row"))
	col, errC := strconv.Atoi(r.FormValue("col"))
	if errR != nil || errC != nil {
		middleware.SetFlash(w, "error", "Row and col must be numbers")
		http.Redirect(w, r, gamePath(id), http.StatusSeeOther)
		return
	}

	outcome, _, err := h.gameController.PlayTurn(r.Context(), id, model.Position{Row: row, Col: col})
	h.afterTurn(w, r, id, outcome, err)
}

// PlayBotTurn lets the configured strategy move for the current player
func (h *GameHandler) PlayBotTurn(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	outcome, _, err := h.gameController.PlayBotTurn(r.Context(), id)
	h.afterTurn(w, r, id, outcome, err)
}

func (h *GameHandler) afterTurn(w http.ResponseWriter, r *http.Request, id model.GameID, outcome model.Outcome, err error) {
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		middleware.SetFlash(w, "error", "Game not found")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case err != nil:
		h.serverError(w, r, err)
		return
	}

	flashType := "info"
	if outcome.Kind == model.OutcomeInvalid || outcome.Kind == model.OutcomeGameOver {
		flashType = "error"
	}
	middleware.SetFlash(w, flashType, outcome.String())
	http.Redirect(w, r, gamePath(id), http.StatusSeeOther)
}

func (h *GameHandler) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
}

func (h *GameHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	h.render(w, r, http.StatusInternalServerError,
		pages.Error(layout.PageData{Title: "Error"}, "Something went wrong. Please try again later."))
}

func createErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidDimension):
		return "Width and height must be at least 1"
	case errors.Is(err, model.ErrBoardTooLarge):
		return "That board is too large"
	case errors.Is(err, model.ErrInvalidWinLength):
		return "Win length must be between 1 and the longest side"
	case errors.Is(err, model.ErrEmptyPlayerList):
		return "At least one player is required"
	default:
		return "Could not create game"
	}
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

func gamePath(id model.GameID) string {
	return fmt.Sprintf("/games/%s", id)
}
