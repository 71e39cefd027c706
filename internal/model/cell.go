package model

import "maps"

// Metadata is an arbitrary annotation attached to a marked cell (colour, move number, ...)
type Metadata map[string]any

// Cell records that a square is occupied by a player. Cells are never
// modified after placement.
type Cell struct {
	Player Player   `json:"player"`
	Data   Metadata `json:"data,omitempty"`
}

// newCell copies metadata so later changes by the caller cannot leak into the board
func newCell(player Player, data Metadata) *Cell {
	return &Cell{Player: player, Data: maps.Clone(data)}
}

// ToMap returns a generic view of the cell for presentation layers
func (c *Cell) ToMap() map[string]any {
	return map[string]any{
		"player": c.Player,
		"data":   c.Data,
	}
}
