package model

import "slices"

// Bot strategy names
const (
	BotStrategyGreedy = "greedy" // Win if possible, else block, else random
	BotStrategyRandom = "random"
)

// ValidBotStrategies returns all valid bot strategy names
func ValidBotStrategies() []string {
	return []string{BotStrategyGreedy, BotStrategyRandom}
}

// IsValidBotStrategy reports whether name is a known strategy
func IsValidBotStrategy(name string) bool {
	return slices.Contains(ValidBotStrategies(), name)
}
