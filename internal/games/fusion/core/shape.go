package core

import "strings"

// Shape is the kind of a movable piece. Two pieces match when their shapes are equal.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeSquare
	ShapeTriangle
	ShapeStar
	ShapeDiamond
	ShapeSpade
	ShapeCount // Sentinel value for iteration
)

// String returns the name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeSquare:
		return "square"
	case ShapeTriangle:
		return "triangle"
	case ShapeStar:
		return "star"
	case ShapeDiamond:
		return "diamond"
	case ShapeSpade:
		return "spade"
	default:
		return "unknown"
	}
}

// Symbol returns the glyph used for the shape in level files and rendering.
func (s Shape) Symbol() rune {
	switch s {
	case ShapeCircle:
		return '●'
	case ShapeSquare:
		return '■'
	case ShapeTriangle:
		return '▲'
	case ShapeStar:
		return '★'
	case ShapeDiamond:
		return '♦'
	case ShapeSpade:
		return '♠'
	default:
		return '?'
	}
}

// ParseShape converts a symbol, name or single-letter alias to a Shape.
func ParseShape(s string) (Shape, bool) {
	switch strings.ToLower(s) {
	case "●", "circle", "o":
		return ShapeCircle, true
	case "■", "square", "s":
		return ShapeSquare, true
	case "▲", "triangle", "t":
		return ShapeTriangle, true
	case "★", "star", "*":
		return ShapeStar, true
	case "♦", "diamond", "d":
		return ShapeDiamond, true
	case "♠", "spade", "p":
		return ShapeSpade, true
	default:
		return ShapeCircle, false
	}
}

// AllShapes returns the full palette in declaration order.
func AllShapes() []Shape {
	return []Shape{ShapeCircle, ShapeSquare, ShapeTriangle, ShapeStar, ShapeDiamond, ShapeSpade}
}
