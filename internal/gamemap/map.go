// Package gamemap holds the shared world map: a rectangle of hex cells
// addressed by offset coordinates, partitioned into fixed-size chunks,
// with procedural terrain and a binary save format.
package gamemap

import (
	"log"

	"github.com/gravitas-games/hexmap/internal/hexgrid"
)

// Map is the shared world map: a width x height rectangle of hex cells
// addressed by offset coordinates, optionally wrapping around its x axis.
type Map struct {
	Width  int32
	Height int32
	Seed   int64

	// ChunkSizeZ is the row height of a render/storage chunk; the column
	// width comes from the metrics.
	ChunkSizeZ int32

	metrics  hexgrid.Metrics
	cells    []Cell
	features []Feature
}

// Cell is one hex tile of the map.
type Cell struct {
	Coord     hexgrid.Coord
	Terrain   Terrain
	Elevation uint8
}

// FeatureKind labels a point of interest placed on the map.
type FeatureKind uint8

const (
	FeatureSpawn FeatureKind = iota
	FeatureLandmark
	FeatureResource

	featureKindCount
)

// Valid reports whether k is one of the defined feature kinds.
func (k FeatureKind) Valid() bool {
	return k < featureKindCount
}

// Feature is a labeled point of interest at a cell.
type Feature struct {
	Coord hexgrid.Coord
	Kind  FeatureKind
}

// New creates a map of the given dimensions and generates its terrain
// from the seed. When m.Wrapping is set, m.WrapSize must equal width.
func New(width, height, chunkSizeZ int32, m hexgrid.Metrics, seed int64) *Map {
	log.Printf("Generating %dx%d map (wrapping=%v, seed=%d)", width, height, m.Wrapping, seed)

	gm := &Map{
		Width:      width,
		Height:     height,
		Seed:       seed,
		ChunkSizeZ: chunkSizeZ,
		metrics:    m,
		cells:      make([]Cell, int(width)*int(height)),
	}

	for z := int32(0); z < height; z++ {
		for x := int32(0); x < width; x++ {
			gm.cells[z*width+x].Coord = hexgrid.FromOffset(m, x, z)
		}
	}
	gm.generateTerrain()

	log.Printf("Map generated with %d cells", len(gm.cells))
	return gm
}

// Metrics returns the grid metrics the map was built with.
func (gm *Map) Metrics() hexgrid.Metrics {
	return gm.metrics
}

// Cell returns the cell at the given offset coordinates, or nil when the
// position is outside the map.
func (gm *Map) Cell(offsetX, offsetZ int32) *Cell {
	if offsetZ < 0 || offsetZ >= gm.Height {
		return nil
	}
	if offsetX < 0 || offsetX >= gm.Width {
		return nil
	}
	return &gm.cells[offsetZ*gm.Width+offsetX]
}

// CellAt returns the cell holding the given coordinate, or nil when the
// coordinate is outside the map. On a wrapped map every normalized
// coordinate within the row range has a cell.
func (gm *Map) CellAt(c hexgrid.Coord) *Cell {
	return gm.Cell(c.OffsetX(), c.OffsetZ())
}

// Neighbor returns the cell one step in the given direction, or nil at a
// map edge.
func (gm *Map) Neighbor(c hexgrid.Coord, d hexgrid.Direction) *Cell {
	return gm.CellAt(c.Step(gm.metrics, d))
}

// ChunkOf returns the chunk grid position of a coordinate.
func (gm *Map) ChunkOf(c hexgrid.Coord) (chunkX, chunkZ int32) {
	return c.ColumnIndex(gm.metrics), c.OffsetZ() / gm.ChunkSizeZ
}

// CellsInChunk returns the cells of one chunk rectangle in row-major
// order. The rightmost and topmost chunks may be partial.
func (gm *Map) CellsInChunk(chunkX, chunkZ int32) []*Cell {
	x0 := chunkX * gm.metrics.ChunkSizeX
	z0 := chunkZ * gm.ChunkSizeZ
	if x0 < 0 || x0 >= gm.Width || z0 < 0 || z0 >= gm.Height {
		return nil
	}

	cells := make([]*Cell, 0, int(gm.metrics.ChunkSizeX)*int(gm.ChunkSizeZ))
	for z := z0; z < z0+gm.ChunkSizeZ && z < gm.Height; z++ {
		for x := x0; x < x0+gm.metrics.ChunkSizeX && x < gm.Width; x++ {
			cells = append(cells, &gm.cells[z*gm.Width+x])
		}
	}
	return cells
}

// AddFeature places a point of interest on the map. Returns false when
// the coordinate falls outside the map.
func (gm *Map) AddFeature(f Feature) bool {
	if gm.CellAt(f.Coord) == nil {
		return false
	}
	gm.features = append(gm.features, f)
	return true
}

// Features returns the placed points of interest.
func (gm *Map) Features() []Feature {
	return gm.features
}

// CellCount returns the number of cells in the map.
func (gm *Map) CellCount() int {
	return len(gm.cells)
}
