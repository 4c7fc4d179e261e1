// Unit tests for node placement geometry.
package crawl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/voidgraph/pkg/types"
)

func TestNearbyPosition_DistanceBounds(t *testing.T) {
	source := types.Node{PositionX: 5, PositionY: -3, PositionZ: 12}

	for i := 0; i < 1000; i++ {
		x, y, z := nearbyPosition(source)
		dx, dy, dz := x-source.PositionX, y-source.PositionY, z-source.PositionZ
		dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
		assert.GreaterOrEqual(t, dist, minPlacementDistance-1e-9)
		assert.Less(t, dist, maxPlacementDistance)
	}
}

func TestNearbyPosition_ElevationBounded(t *testing.T) {
	// Elevation stays within ±45°, so the vertical offset can never exceed
	// distance * sin(45°).
	source := types.Node{}
	limit := maxPlacementDistance * math.Sin(math.Pi/4)

	for i := 0; i < 1000; i++ {
		_, y, _ := nearbyPosition(source)
		assert.LessOrEqual(t, math.Abs(y), limit+1e-9)
	}
}

func TestRandomPosition_Bounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		x, y, z := RandomPosition()
		assert.GreaterOrEqual(t, x, -20.0)
		assert.Less(t, x, 20.0)
		assert.GreaterOrEqual(t, y, -15.0)
		assert.Less(t, y, 15.0)
		assert.GreaterOrEqual(t, z, -20.0)
		assert.Less(t, z, 20.0)
	}
}
