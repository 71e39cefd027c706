package model

// PlayerID uniquely identifies a player within a game
type PlayerID string

// Player is an opaque participant identity. Two players are equal iff
// their IDs are equal, so Player can be compared with == and used as a map key.
type Player struct {
	ID PlayerID `json:"id"`
}

// NewPlayer creates a player with the given identifier
func NewPlayer(id string) Player {
	return Player{ID: PlayerID(id)}
}

// String returns the player's identifier
func (p Player) String() string {
	return string(p.ID)
}

// NewPlayers builds an ordered player list from raw identifiers
func NewPlayers(ids ...string) []Player {
	players := make([]Player, len(ids))
	for i, id := range ids {
		players[i] = NewPlayer(id)
	}
	return players
}
