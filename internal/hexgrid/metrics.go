package hexgrid

// OuterToInner is the ratio between a hexagon's outer (corner) radius and
// its inner (edge midpoint) radius: sqrt(3)/2.
const OuterToInner = 0.866025404

// InnerToOuter is the inverse of OuterToInner.
const InnerToOuter = 1.0 / OuterToInner

// Metrics holds the grid-wide sizing and topology constants consumed by
// coordinate construction and conversion. It is passed explicitly to every
// operation that needs it so the same process can work with maps of
// different shapes.
type Metrics struct {
	// Wrapping enables cylindrical topology along the map's x axis.
	Wrapping bool

	// WrapSize is the width of the wrap band in columns. Only meaningful
	// when Wrapping is set.
	WrapSize int32

	// ChunkSizeX is the width of a storage/render chunk in columns.
	ChunkSizeX int32

	// OuterRadius is the distance from a hexagon's center to a corner,
	// in world units.
	OuterRadius float64

	// OuterToInner is the outer-radius/inner-radius ratio used to space
	// rows in world-space depth.
	OuterToInner float64
}

// NewMetrics returns Metrics for hexagons of the given outer radius with
// the canonical outer-to-inner ratio.
func NewMetrics(outerRadius float64) Metrics {
	return Metrics{
		OuterRadius:  outerRadius,
		OuterToInner: OuterToInner,
	}
}

// InnerRadius returns the distance from a hexagon's center to an edge
// midpoint.
func (m Metrics) InnerRadius() float64 {
	return m.OuterRadius * m.OuterToInner
}

// InnerDiameter returns twice the inner radius: the east-west distance
// between adjacent cell centers.
func (m Metrics) InnerDiameter() float64 {
	return m.InnerRadius() * 2
}
