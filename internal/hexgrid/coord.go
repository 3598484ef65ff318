// Package hexgrid implements cube/axial coordinates for a hexagonal grid
// with optional cylindrical wrapping along the x axis. Coordinates store
// only x and z; the third cube axis y is derived from the x+y+z=0
// constraint and can never go out of sync.
package hexgrid

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Coord is a cell position in cube coordinates. The zero value is the
// origin. Coords are plain values: copy them freely.
type Coord struct {
	x, z int32
}

// Vec3 is a point in world space.
type Vec3 struct {
	X, Y, Z float64
}

// New constructs a coordinate from axial x, z. When m.Wrapping is set, x is
// renormalized once so the offset column x + z/2 lands in [0, WrapSize);
// inputs more than one WrapSize out of range must be renormalized by the
// caller before construction.
func New(m Metrics, x, z int32) Coord {
	if m.Wrapping {
		offsetX := x + z/2
		if offsetX < 0 {
			x += m.WrapSize
		} else if offsetX >= m.WrapSize {
			x -= m.WrapSize
		}
	}
	return Coord{x: x, z: z}
}

// FromOffset constructs a coordinate from rectangular array offset
// coordinates (column, row).
func FromOffset(m Metrics, offsetX, offsetZ int32) Coord {
	return New(m, offsetX-offsetZ/2, offsetZ)
}

// FromWorldPosition converts a world-space point to the coordinate of the
// cell containing it. The point is assumed to lie within the mapped
// region; out-of-range input yields an out-of-range coordinate.
func FromWorldPosition(m Metrics, pos Vec3) Coord {
	fx := pos.X / m.InnerDiameter()
	fy := -fx

	offset := pos.Z / (m.OuterRadius * 3)
	fx -= offset
	fy -= offset

	iX := int32(math.Round(fx))
	iY := int32(math.Round(fy))
	iZ := int32(math.Round(-fx - fy))

	if iX+iY+iZ != 0 {
		// Independent rounding broke the cube constraint. Rebuild the
		// axis with the largest rounding error from the other two.
		dX := math.Abs(fx - float64(iX))
		dY := math.Abs(fy - float64(iY))
		dZ := math.Abs(-fx - fy - float64(iZ))

		if dX > dY && dX > dZ {
			iX = -iY - iZ
		} else if dZ > dY {
			iZ = -iX - iY
		}
		// Fixing y needs no work: it is derived from x and z.
	}

	return New(m, iX, iZ)
}

// X returns the first stored cube coordinate.
func (c Coord) X() int32 { return c.x }

// Z returns the second stored cube coordinate.
func (c Coord) Z() int32 { return c.z }

// Y returns the derived third cube coordinate, -x-z.
func (c Coord) Y() int32 { return -c.x - c.z }

// OffsetX returns the rectangular array column, x + z/2.
func (c Coord) OffsetX() int32 { return c.x + c.z/2 }

// OffsetZ returns the rectangular array row.
func (c Coord) OffsetZ() int32 { return c.z }

// WorldX projects the coordinate onto the world x axis, with east-west
// neighbor spacing of exactly one unit and odd rows shifted half a unit.
func (c Coord) WorldX() float64 {
	w := float64(c.x + c.z/2)
	if c.z%2 != 0 {
		w += 0.5
	}
	return w
}

// WorldZ converts the row index to world-space depth so row spacing
// matches hexagon packing.
func (c Coord) WorldZ(m Metrics) float64 {
	return float64(c.z) * m.OuterToInner
}

// ColumnIndex returns which fixed-width chunk the cell's column falls
// into.
func (c Coord) ColumnIndex(m Metrics) int32 {
	return c.OffsetX() / m.ChunkSizeX
}

// DistanceTo returns the number of single-cell steps between c and o.
// With wrapping enabled the shorter way around the cylinder is taken.
func (c Coord) DistanceTo(m Metrics, o Coord) int {
	dz := abs32(c.z - o.z)

	xy := c.xyPartial(o.x, o.z)
	if m.Wrapping {
		// The wrap affects only the x/y cube plane. Trying the other
		// coordinate shifted by ±WrapSize covers both directions around
		// the cylinder.
		if wrapped := c.xyPartial(o.x+m.WrapSize, o.z); wrapped < xy {
			xy = wrapped
		}
		if wrapped := c.xyPartial(o.x-m.WrapSize, o.z); wrapped < xy {
			xy = wrapped
		}
	}

	return int(xy+dz) / 2
}

// xyPartial computes |dx|+|dy| against a coordinate at (ox, oz). The y of
// the other cell is derived from ox so shifting ox shifts its y too.
func (c Coord) xyPartial(ox, oz int32) int32 {
	return abs32(c.x-ox) + abs32(c.Y()-(-ox-oz))
}

// Step returns the adjacent coordinate in the given direction, wrap
// normalization included.
func (c Coord) Step(m Metrics, d Direction) Coord {
	switch d {
	case NE:
		return New(m, c.x, c.z+1)
	case E:
		return New(m, c.x+1, c.z)
	case SE:
		return New(m, c.x+1, c.z-1)
	case SW:
		return New(m, c.x, c.z-1)
	case W:
		return New(m, c.x-1, c.z)
	default: // NW
		return New(m, c.x-1, c.z+1)
	}
}

// String formats the coordinate as "(X, Y, Z)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.x, c.Y(), c.z)
}

// MultilineString formats the three cube coordinates on separate lines.
func (c Coord) MultilineString() string {
	return fmt.Sprintf("%d\n%d\n%d", c.x, c.Y(), c.z)
}

// Save writes the coordinate as two little-endian int32s, x then z, with
// no framing.
func (c Coord) Save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, c.x); err != nil {
		return fmt.Errorf("writing coordinate x: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, c.z); err != nil {
		return fmt.Errorf("writing coordinate z: %w", err)
	}
	return nil
}

// Load reads a coordinate previously written by Save. The fields are
// restored as stored: persisted coordinates are trusted to be normalized
// already, so no wrap renormalization is applied.
func Load(r io.Reader) (Coord, error) {
	var c Coord
	if err := binary.Read(r, binary.LittleEndian, &c.x); err != nil {
		return Coord{}, fmt.Errorf("reading coordinate x: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &c.z); err != nil {
		return Coord{}, fmt.Errorf("reading coordinate z: %w", err)
	}
	return c, nil
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
