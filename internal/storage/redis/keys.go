package redis

import (
	"fmt"

	"github.com/mcoot/nrowgame/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "nrow"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the ZSET of game IDs scored by creation time
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}
