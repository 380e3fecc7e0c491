package compositor

// Corner enumerates the four fixed anchor positions for the overlay.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// ParseCorner maps a config token to a Corner. Unknown tokens return TopLeft.
func ParseCorner(s string) Corner {
	switch s {
	case "top-right":
		return TopRight
	case "bottom-left":
		return BottomLeft
	case "bottom-right":
		return BottomRight
	default:
		return TopLeft
	}
}

// Corners lists all anchor positions, useful for exhaustive iteration in tests
// and UI pickers.
func Corners() []Corner {
	return []Corner{TopLeft, TopRight, BottomLeft, BottomRight}
}
