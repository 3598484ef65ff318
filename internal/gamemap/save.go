package gamemap

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gravitas-games/hexmap/internal/hexgrid"
)

// Binary save format, little-endian throughout:
//
//	magic "HXMP", version byte
//	width int32, height int32, chunkSizeZ int32
//	wrapping byte, seed int64
//	per cell (row-major): terrain byte, elevation byte
//	feature count int32, per feature: coordinate (x, z int32), kind byte
var saveMagic = [4]byte{'H', 'X', 'M', 'P'}

const saveVersion uint8 = 1

// Save writes the map to w in the binary save format.
func (gm *Map) Save(w io.Writer) error {
	if _, err := w.Write(saveMagic[:]); err != nil {
		return fmt.Errorf("writing magic: %w", err)
	}
	header := []any{
		saveVersion,
		gm.Width,
		gm.Height,
		gm.ChunkSizeZ,
		gm.metrics.Wrapping,
		gm.Seed,
	}
	for _, v := range header {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	cellData := make([]byte, 0, len(gm.cells)*2)
	for i := range gm.cells {
		cellData = append(cellData, byte(gm.cells[i].Terrain), gm.cells[i].Elevation)
	}
	if _, err := w.Write(cellData); err != nil {
		return fmt.Errorf("writing cells: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, int32(len(gm.features))); err != nil {
		return fmt.Errorf("writing feature count: %w", err)
	}
	for _, f := range gm.features {
		if err := f.Coord.Save(w); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, f.Kind); err != nil {
			return fmt.Errorf("writing feature kind: %w", err)
		}
	}
	return nil
}

// Load reads a map previously written by Save. The sizing metrics come
// from m; topology (wrapping, wrap size, dimensions) comes from the file.
func Load(r io.Reader, m hexgrid.Metrics) (*Map, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if magic != saveMagic {
		return nil, fmt.Errorf("not a map file (magic %q)", magic[:])
	}

	var version uint8
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if version != saveVersion {
		return nil, fmt.Errorf("unsupported map version %d", version)
	}

	gm := &Map{}
	var wrapping bool
	header := []any{
		&gm.Width,
		&gm.Height,
		&gm.ChunkSizeZ,
		&wrapping,
		&gm.Seed,
	}
	for _, v := range header {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
	}
	if gm.Width <= 0 || gm.Height <= 0 || gm.ChunkSizeZ <= 0 {
		return nil, fmt.Errorf("invalid map dimensions %dx%d", gm.Width, gm.Height)
	}

	m.Wrapping = wrapping
	if wrapping {
		m.WrapSize = gm.Width
	}
	gm.metrics = m

	cellData := make([]byte, int(gm.Width)*int(gm.Height)*2)
	if _, err := io.ReadFull(r, cellData); err != nil {
		return nil, fmt.Errorf("reading cells: %w", err)
	}
	gm.cells = make([]Cell, int(gm.Width)*int(gm.Height))
	for i := range gm.cells {
		t := Terrain(cellData[i*2])
		if !t.Valid() {
			return nil, fmt.Errorf("invalid terrain %d at cell %d", t, i)
		}
		gm.cells[i].Terrain = t
		gm.cells[i].Elevation = cellData[i*2+1]
		z := int32(i) / gm.Width
		x := int32(i) % gm.Width
		gm.cells[i].Coord = hexgrid.FromOffset(m, x, z)
	}

	var featureCount int32
	if err := binary.Read(r, binary.LittleEndian, &featureCount); err != nil {
		return nil, fmt.Errorf("reading feature count: %w", err)
	}
	if featureCount < 0 {
		return nil, fmt.Errorf("invalid feature count %d", featureCount)
	}
	// The count is untrusted input; cap the pre-allocation and let
	// append grow past it on honest files.
	gm.features = make([]Feature, 0, min(featureCount, 4096))
	for i := int32(0); i < featureCount; i++ {
		// Persisted coordinates are already normalized; hexgrid.Load
		// restores the raw fields without renormalizing.
		coord, err := hexgrid.Load(r)
		if err != nil {
			return nil, err
		}
		var kind FeatureKind
		if err := binary.Read(r, binary.LittleEndian, &kind); err != nil {
			return nil, fmt.Errorf("reading feature kind: %w", err)
		}
		if !kind.Valid() {
			return nil, fmt.Errorf("invalid feature kind %d at feature %d", kind, i)
		}
		gm.features = append(gm.features, Feature{Coord: coord, Kind: kind})
	}

	return gm, nil
}
