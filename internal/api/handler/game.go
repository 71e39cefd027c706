package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/nrowgame/internal/api/apierr"
	"github.com/mcoot/nrowgame/internal/api/request"
	"github.com/mcoot/nrowgame/internal/api/response"
	"github.com/mcoot/nrowgame/internal/model"
	"github.com/mcoot/nrowgame/internal/services/game"
)

// GameHandler handles game endpoints
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{gameController: gameController}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}

	players := make([]model.Player, 0, len(req.Players))
	for _, id := range req.Players {
		id = strings.TrimSpace(id)
		if id == "" {
			apierr.WriteError(w, apierr.NewInvalidRequestError("Player IDs cannot be blank"))
			return
		}
		players = append(players, model.NewPlayer(id))
	}

	g, err := h.gameController.CreateGame(r.Context(), game.CreateGameParams{
		Width:     req.Width,
		Height:    req.Height,
		WinLength: req.WinLength,
		Players:   players,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.Created(w, response.GameFromModel(g))
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameController.ListGames(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.OK(w, response.GameListFromModel(games))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.OK(w, response.GameFromModel(g))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.gameController.DeleteGame(r.Context(), gameID(r)); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// PlayTurn handles POST /api/v1/games/{id}/turns.
// Rejected moves are still 200; the outcome kind says what happened.
func (h *GameHandler) PlayTurn(w http.ResponseWriter, r *http.Request) {
	var req request.PlayTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}
	if req.Row == nil || req.Col == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Both row and col are required"))
		return
	}

	outcome, g, err := h.gameController.PlayTurn(r.Context(), gameID(r), model.Position{Row: *req.Row, Col: *req.Col})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.OK(w, response.TurnResponse{
		Outcome: response.OutcomeFromModel(outcome),
		Game:    response.GameFromModel(g),
	})
}

// PlayBotTurn handles POST /api/v1/games/{id}/bot-turn
func (h *GameHandler) PlayBotTurn(w http.ResponseWriter, r *http.Request) {
	outcome, g, err := h.gameController.PlayBotTurn(r.Context(), gameID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.OK(w, response.TurnResponse{
		Outcome: response.OutcomeFromModel(outcome),
		Game:    response.GameFromModel(g),
	})
}

// Suggest handles GET /api/v1/games/{id}/suggestion
func (h *GameHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	pos, ok, err := h.gameController.SuggestMove(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	if !ok {
		apierr.WriteError(w, apierr.NewGameOverError())
		return
	}

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.OK(w, response.Suggestion{
		Player:   g.CurrentPlayer().String(),
		Position: response.PositionFromModel(pos),
	})
}

// GetCell handles GET /api/v1/games/{id}/cells/{row}/{col}
func (h *GameHandler) GetCell(w http.ResponseWriter, r *http.Request) {
	pos, err := cellPosition(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	cell, err := h.gameController.GetCell(r.Context(), gameID(r), pos)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.OK(w, response.CellFromModel(pos, cell))
}

// GetRun handles GET /api/v1/games/{id}/cells/{row}/{col}/run
func (h *GameHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	pos, err := cellPosition(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	run, err := h.gameController.WinningRun(r.Context(), gameID(r), pos)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.OK(w, response.RunFromModel(pos, run))
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

func cellPosition(r *http.Request) (model.Position, error) {
	vars := mux.Vars(r)
	row, err := strconv.Atoi(vars["row"])
	if err != nil {
		return model.Position{}, apierr.NewInvalidRequestError("row must be an integer")
	}
	col, err := strconv.Atoi(vars["col"])
	if err != nil {
		return model.Position{}, apierr.NewInvalidRequestError("col must be an integer")
	}
	return model.Position{Row: row, Col: col}, nil
}
