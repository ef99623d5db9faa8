package model

import "strconv"

// PositionKind tells how a Position must be read.
type PositionKind int

const (
	// PositionUnspecified behaves as index 0.
	PositionUnspecified PositionKind = iota
	// PositionIndex is an explicit integer index.
	PositionIndex
	// PositionFirst anchors the stage at the start of its category range.
	PositionFirst
	// PositionLast anchors the stage at the end of its category range.
	PositionLast
)

// Position is the position specifier of a stage configuration entry.
type Position struct {
	Kind  PositionKind
	Index int
}

// Unspecified returns an unspecified position.
func Unspecified() Position { return Position{Kind: PositionUnspecified} }

// AtIndex returns an explicit index position.
func AtIndex(index int) Position { return Position{Kind: PositionIndex, Index: index} }

// First returns the FIRST anchor.
func First() Position { return Position{Kind: PositionFirst} }

// Last returns the LAST anchor.
func Last() Position { return Position{Kind: PositionLast} }

func (p Position) String() string {
	switch p.Kind {
	case PositionIndex:
		return strconv.Itoa(p.Index)
	case PositionFirst:
		return "FIRST"
	case PositionLast:
		return "LAST"
	default:
		return "unspecified"
	}
}
