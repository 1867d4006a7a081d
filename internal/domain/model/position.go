package model

import "strings"

// Position is the collapsed playing position. Left/right wings share Wing and
// left/right defense share Defenseman.
type Position int

// Positions.
const (
	PositionUnknown Position = iota
	Center
	Wing
	Defenseman
	Goalie
)

var positionNames = map[Position]string{ //nolint:gochecknoglobals // lookup table
	PositionUnknown: "UNKNOWN",
	Center:          "C",
	Wing:            "W",
	Defenseman:      "D",
	Goalie:          "G",
}

// String returns the short position code.
func (p Position) String() string {
	if n, ok := positionNames[p]; ok {
		return n
	}
	return positionNames[PositionUnknown]
}

// IsSkater reports whether the position is a skater position.
func (p Position) IsSkater() bool {
	return p == Center || p == Wing || p == Defenseman
}

// ParsePosition maps the many spellings found in stat feeds onto a Position.
// Unrecognized input yields PositionUnknown.
func ParsePosition(s string) Position {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "C", "CENTER", "CENTRE":
		return Center
	case "W", "L", "R", "LW", "RW", "WING", "WINGER", "LEFT WING", "RIGHT WING":
		return Wing
	case "D", "LD", "RD", "DEFENSE", "DEFENCE", "DEFENSEMAN", "DEFENCEMAN":
		return Defenseman
	case "G", "GOALIE", "GOALTENDER", "GK":
		return Goalie
	default:
		return PositionUnknown
	}
}
