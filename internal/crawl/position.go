package crawl

import (
	"math"
	"math/rand"

	"github.com/mesh-intelligence/voidgraph/pkg/types"
)

// Placement bounds for discovered nodes, relative to their source.
const (
	minPlacementDistance = 8.0
	maxPlacementDistance = 20.0
)

// nearbyPosition picks a random point near the source node: a radial
// distance in [8, 20), a uniform azimuth, and an elevation within ±45° of
// the horizontal plane, converted to a Cartesian offset.
func nearbyPosition(source types.Node) (x, y, z float64) {
	distance := minPlacementDistance + rand.Float64()*(maxPlacementDistance-minPlacementDistance)
	theta := rand.Float64() * 2 * math.Pi
	phi := (rand.Float64() - 0.5) * math.Pi / 2

	x = source.PositionX + distance*math.Cos(theta)*math.Cos(phi)
	y = source.PositionY + distance*math.Sin(phi)
	z = source.PositionZ + distance*math.Sin(theta)*math.Cos(phi)
	return x, y, z
}

// RandomPosition picks a free-floating position for a user-added node.
func RandomPosition() (x, y, z float64) {
	x = -20 + rand.Float64()*40
	y = -15 + rand.Float64()*30
	z = -20 + rand.Float64()*40
	return x, y, z
}
