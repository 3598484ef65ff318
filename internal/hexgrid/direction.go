package hexgrid

// Direction is one of the six hex neighbor directions.
type Direction int

const (
	NE Direction = iota
	E
	SE
	SW
	W
	NW
)

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	if d < SW {
		return d + 3
	}
	return d - 3
}

// Next returns the next direction clockwise.
func (d Direction) Next() Direction {
	if d == NW {
		return NE
	}
	return d + 1
}

// Previous returns the next direction counter-clockwise.
func (d Direction) Previous() Direction {
	if d == NE {
		return NW
	}
	return d - 1
}

func (d Direction) String() string {
	switch d {
	case NE:
		return "NE"
	case E:
		return "E"
	case SE:
		return "SE"
	case SW:
		return "SW"
	case W:
		return "W"
	case NW:
		return "NW"
	default:
		return "unknown"
	}
}
