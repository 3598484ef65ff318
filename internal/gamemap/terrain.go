package gamemap

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Terrain classifies a cell's surface.
type Terrain uint8

const (
	TerrainWater Terrain = iota
	TerrainSand
	TerrainGrass
	TerrainForest
	TerrainMountain
	TerrainSnow
)

const terrainCount = 6

// Valid reports whether t is one of the defined terrain classes.
func (t Terrain) Valid() bool {
	return t < terrainCount
}

func (t Terrain) String() string {
	switch t {
	case TerrainWater:
		return "water"
	case TerrainSand:
		return "sand"
	case TerrainGrass:
		return "grass"
	case TerrainForest:
		return "forest"
	case TerrainMountain:
		return "mountain"
	case TerrainSnow:
		return "snow"
	default:
		return "unknown"
	}
}

// Noise frequency in cells; moisture varies faster than elevation.
const (
	elevationScale = 0.08
	moistureScale  = 0.15
)

// generateTerrain fills every cell from two noise layers. Wrapped maps
// sample the fields on a cylinder of circumference Width so column 0
// continues smoothly from column Width-1.
func (gm *Map) generateTerrain() {
	elevNoise := opensimplex.NewNormalized(gm.Seed)
	moistNoise := opensimplex.NewNormalized(gm.Seed + 1)

	for i := range gm.cells {
		cell := &gm.cells[i]
		x := float64(cell.Coord.OffsetX())
		z := float64(cell.Coord.OffsetZ())

		elev := gm.sample(elevNoise, x, z, elevationScale)
		moist := gm.sample(moistNoise, x, z, moistureScale)

		cell.Elevation = uint8(elev * 255)
		cell.Terrain = classify(elev, moist)
	}
}

func (gm *Map) sample(noise opensimplex.Noise, x, z, scale float64) float64 {
	if !gm.metrics.Wrapping {
		return noise.Eval2(x*scale, z*scale)
	}
	theta := 2 * math.Pi * x / float64(gm.Width)
	r := float64(gm.Width) * scale / (2 * math.Pi)
	return noise.Eval3(r*math.Cos(theta), r*math.Sin(theta), z*scale)
}

func classify(elev, moist float64) Terrain {
	switch {
	case elev < 0.30:
		return TerrainWater
	case elev < 0.35:
		return TerrainSand
	case elev < 0.70:
		if moist > 0.55 {
			return TerrainForest
		}
		return TerrainGrass
	case elev < 0.85:
		return TerrainMountain
	default:
		return TerrainSnow
	}
}
