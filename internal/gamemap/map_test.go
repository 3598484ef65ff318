package gamemap

import (
	"testing"

	"github.com/gravitas-games/hexmap/internal/hexgrid"
)

func testMetrics(width int32, wrapping bool) hexgrid.Metrics {
	m := hexgrid.NewMetrics(10)
	m.ChunkSizeX = 5
	m.Wrapping = wrapping
	if wrapping {
		m.WrapSize = width
	}
	return m
}

func TestNewGeneratesAllCells(t *testing.T) {
	gm := New(20, 15, 5, testMetrics(20, false), 42)

	if gm.CellCount() != 300 {
		t.Fatalf("CellCount = %d, want 300", gm.CellCount())
	}
	for z := int32(0); z < gm.Height; z++ {
		for x := int32(0); x < gm.Width; x++ {
			cell := gm.Cell(x, z)
			if cell == nil {
				t.Fatalf("Cell(%d, %d) = nil", x, z)
			}
			if cell.Coord.OffsetX() != x || cell.Coord.OffsetZ() != z {
				t.Errorf("Cell(%d, %d) has coord %v (offset %d, %d)",
					x, z, cell.Coord, cell.Coord.OffsetX(), cell.Coord.OffsetZ())
			}
		}
	}
}

func TestCellOutOfRange(t *testing.T) {
	gm := New(10, 10, 5, testMetrics(10, false), 1)

	positions := [][2]int32{
		{-1, 0}, {10, 0}, {0, -1}, {0, 10},
	}
	for _, p := range positions {
		if cell := gm.Cell(p[0], p[1]); cell != nil {
			t.Errorf("Cell(%d, %d) = %v, want nil", p[0], p[1], cell)
		}
	}
}

func TestNeighborAcrossSeam(t *testing.T) {
	m := testMetrics(10, true)
	gm := New(10, 10, 5, m, 7)

	east := gm.Cell(9, 0)
	if east == nil {
		t.Fatal("missing east edge cell")
	}
	n := gm.Neighbor(east.Coord, hexgrid.E)
	if n == nil {
		t.Fatal("Neighbor(E) across the seam = nil")
	}
	if n.Coord.OffsetX() != 0 || n.Coord.OffsetZ() != 0 {
		t.Errorf("Neighbor(E) = %v, want column 0", n.Coord)
	}
}

func TestNeighborAtFlatEdge(t *testing.T) {
	gm := New(10, 10, 5, testMetrics(10, false), 7)

	east := gm.Cell(9, 0)
	if n := gm.Neighbor(east.Coord, hexgrid.E); n != nil {
		t.Errorf("Neighbor(E) at flat map edge = %v, want nil", n.Coord)
	}
	if n := gm.Neighbor(east.Coord, hexgrid.W); n == nil {
		t.Error("Neighbor(W) inside the map = nil")
	}
}

func TestChunkPartition(t *testing.T) {
	m := testMetrics(20, false)
	gm := New(20, 12, 4, m, 3)

	tests := []struct {
		offsetX, offsetZ int32
		chunkX, chunkZ   int32
	}{
		{0, 0, 0, 0},
		{4, 3, 0, 0},
		{5, 0, 1, 0},
		{19, 11, 3, 2},
	}
	for _, tt := range tests {
		c := hexgrid.FromOffset(m, tt.offsetX, tt.offsetZ)
		cx, cz := gm.ChunkOf(c)
		if cx != tt.chunkX || cz != tt.chunkZ {
			t.Errorf("ChunkOf(offset %d, %d) = (%d, %d), want (%d, %d)",
				tt.offsetX, tt.offsetZ, cx, cz, tt.chunkX, tt.chunkZ)
		}
	}

	cells := gm.CellsInChunk(1, 1)
	if len(cells) != 20 {
		t.Fatalf("CellsInChunk(1, 1) has %d cells, want 20", len(cells))
	}
	for _, cell := range cells {
		cx, cz := gm.ChunkOf(cell.Coord)
		if cx != 1 || cz != 1 {
			t.Errorf("cell %v listed in chunk (1, 1) but belongs to (%d, %d)",
				cell.Coord, cx, cz)
		}
	}

	if cells := gm.CellsInChunk(4, 0); cells != nil {
		t.Errorf("CellsInChunk past the map edge returned %d cells", len(cells))
	}
}

func TestGenerationIsDeterministic(t *testing.T) {
	m := testMetrics(16, true)
	a := New(16, 8, 4, m, 99)
	b := New(16, 8, 4, m, 99)

	for z := int32(0); z < a.Height; z++ {
		for x := int32(0); x < a.Width; x++ {
			ca, cb := a.Cell(x, z), b.Cell(x, z)
			if ca.Terrain != cb.Terrain || ca.Elevation != cb.Elevation {
				t.Fatalf("cell (%d, %d) differs between identical seeds", x, z)
			}
		}
	}
}

func TestAddFeature(t *testing.T) {
	m := testMetrics(10, false)
	gm := New(10, 10, 5, m, 5)

	inside := Feature{Coord: hexgrid.FromOffset(m, 3, 3), Kind: FeatureSpawn}
	if !gm.AddFeature(inside) {
		t.Error("AddFeature inside the map = false")
	}
	outside := Feature{Coord: hexgrid.FromOffset(m, 3, 20), Kind: FeatureLandmark}
	if gm.AddFeature(outside) {
		t.Error("AddFeature outside the map = true")
	}
	if got := len(gm.Features()); got != 1 {
		t.Errorf("Features() has %d entries, want 1", got)
	}
}
