package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/nrowgame/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidDimension = "INVALID_DIMENSION"
	CodeInvalidWinLength = "INVALID_WIN_LENGTH"
	CodeBoardTooLarge    = "BOARD_TOO_LARGE"
	CodeEmptyPlayerList  = "EMPTY_PLAYER_LIST"
	CodeOutOfBound       = "OUT_OF_BOUND"
	CodeEmptySquare      = "EMPTY_SQUARE"
	CodeGameNotFound     = "GAME_NOT_FOUND"
	CodeGameOver         = "GAME_OVER"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status WriteError would use for err
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Construction and precondition errors carry their detail in the message
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrInvalidDimension):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDimension, err.Error()}}
	case errors.Is(err, model.ErrBoardTooLarge):
		return &httpError{http.StatusBadRequest, APIError{CodeBoardTooLarge, err.Error()}}
	case errors.Is(err, model.ErrInvalidWinLength):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidWinLength, err.Error()}}
	case errors.Is(err, model.ErrEmptyPlayerList):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyPlayerList, err.Error()}}
	case errors.Is(err, model.ErrOutOfBound):
		return &httpError{http.StatusBadRequest, APIError{CodeOutOfBound, err.Error()}}
	case errors.Is(err, model.ErrEmptySquare):
		return &httpError{http.StatusConflict, APIError{CodeEmptySquare, err.Error()}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewGameOverError reports an action that needs a game still in progress
func NewGameOverError() error {
	return &httpError{http.StatusConflict, APIError{CodeGameOver, "Game is already over"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
