package gamemap

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gravitas-games/hexmap/internal/hexgrid"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	m := testMetrics(16, true)
	gm := New(16, 8, 4, m, 1234)
	gm.AddFeature(Feature{Coord: hexgrid.FromOffset(m, 2, 3), Kind: FeatureSpawn})
	gm.AddFeature(Feature{Coord: hexgrid.FromOffset(m, 15, 7), Kind: FeatureResource})

	var buf bytes.Buffer
	if err := gm.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(&buf, testMetrics(16, false))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.Width != gm.Width || loaded.Height != gm.Height {
		t.Fatalf("loaded dimensions %dx%d, want %dx%d",
			loaded.Width, loaded.Height, gm.Width, gm.Height)
	}
	if loaded.Seed != gm.Seed || loaded.ChunkSizeZ != gm.ChunkSizeZ {
		t.Errorf("loaded seed/chunk %d/%d, want %d/%d",
			loaded.Seed, loaded.ChunkSizeZ, gm.Seed, gm.ChunkSizeZ)
	}
	if !loaded.Metrics().Wrapping || loaded.Metrics().WrapSize != 16 {
		t.Errorf("loaded metrics lost wrap topology: %+v", loaded.Metrics())
	}

	for z := int32(0); z < gm.Height; z++ {
		for x := int32(0); x < gm.Width; x++ {
			want, got := gm.Cell(x, z), loaded.Cell(x, z)
			if got.Terrain != want.Terrain || got.Elevation != want.Elevation || got.Coord != want.Coord {
				t.Fatalf("cell (%d, %d) = %+v, want %+v", x, z, got, want)
			}
		}
	}

	if len(loaded.Features()) != 2 {
		t.Fatalf("loaded %d features, want 2", len(loaded.Features()))
	}
	for i, f := range loaded.Features() {
		if f != gm.Features()[i] {
			t.Errorf("feature %d = %+v, want %+v", i, f, gm.Features()[i])
		}
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBufferString("not a map file at all")
	if _, err := Load(buf, testMetrics(10, false)); err == nil {
		t.Error("Load on garbage: expected error, got nil")
	}
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	gm := New(10, 10, 5, testMetrics(10, false), 8)

	var buf bytes.Buffer
	if err := gm.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	for _, n := range []int{3, 8, 20, buf.Len() - 2} {
		truncated := bytes.NewReader(buf.Bytes()[:n])
		if _, err := Load(truncated, testMetrics(10, false)); err == nil {
			t.Errorf("Load on %d-byte prefix: expected error, got nil", n)
		}
	}
}

func TestLoadRejectsInvalidFeatureKind(t *testing.T) {
	m := testMetrics(10, false)
	gm := New(10, 10, 5, m, 8)
	gm.AddFeature(Feature{Coord: hexgrid.FromOffset(m, 4, 4), Kind: FeatureLandmark})

	var buf bytes.Buffer
	if err := gm.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data := buf.Bytes()
	data[len(data)-1] = 200 // kind byte of the last feature

	if _, err := Load(bytes.NewReader(data), testMetrics(10, false)); err == nil {
		t.Error("Load with out-of-range feature kind: expected error, got nil")
	}
}

func TestLoadRejectsLyingFeatureCount(t *testing.T) {
	gm := New(10, 10, 5, testMetrics(10, false), 8)

	var buf bytes.Buffer
	if err := gm.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data := buf.Bytes()
	// With no features the file ends with the count; claim the maximum.
	binary.LittleEndian.PutUint32(data[len(data)-4:], 0x7fffffff)

	if _, err := Load(bytes.NewReader(data), testMetrics(10, false)); err == nil {
		t.Error("Load with absurd feature count: expected error, got nil")
	}
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	gm := New(10, 10, 5, testMetrics(10, false), 8)

	var buf bytes.Buffer
	if err := gm.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data := buf.Bytes()
	data[4] = 99 // version byte follows the magic

	if _, err := Load(bytes.NewReader(data), testMetrics(10, false)); err == nil {
		t.Error("Load with unknown version: expected error, got nil")
	}
}
