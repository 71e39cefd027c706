package request

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	WinLength int      `json:"win_length"`
	Players   []string `json:"players"`
}

// PlayTurnRequest is the request body for playing a turn. Both coordinates
// are required; pointers distinguish a missing field from zero.
type PlayTurnRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}
