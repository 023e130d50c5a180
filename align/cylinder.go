package align

import (
	"math"

	"github.com/golang/geo/r3"
	"go.viam.com/icp/pointcloud"
)

// Cylinder matches each alignee point to its analytic projection onto an
// implicit cylinder (axis Z, centered at the origin, closed by a top disk
// at z = 0): points whose mantle distance is less than their depth below
// the top disk project onto the mantle, everything else projects onto the
// top disk. The radius self-adapts: after every pass it is nudged by the
// mean mantle distance of the mantle-matched points, so it converges toward the alignee cloud's true radius as ICP
// iterates. Target is not used — the cylinder is implicit, not sampled
// from a point cloud.
type Cylinder struct {
	Radius float64
}

// NewCylinder builds a Cylinder estimator with the given starting radius.
func NewCylinder(initialRadius float64) *Cylinder {
	return &Cylinder{Radius: initialRadius}
}

type cylinderHit struct {
	pos    r3.Vector
	norm   r3.Vector
	signed float64
}

func (c *Cylinder) intersect(p r3.Vector) cylinderHit {
	rho := math.Hypot(p.X, p.Y)
	mantleDistance := rho - c.Radius
	if mantleDistance < -p.Z {
		return cylinderHit{
			pos:    r3.Vector{X: p.X * c.Radius / rho, Y: p.Y * c.Radius / rho, Z: p.Z},
			norm:   r3.Vector{X: p.X / rho, Y: p.Y / rho, Z: 1},
			signed: mantleDistance,
		}
	}
	return cylinderHit{
		pos:    r3.Vector{X: p.X, Y: p.Y, Z: 0},
		norm:   r3.Vector{X: 0, Y: 0, Z: 1},
		signed: p.Z,
	}
}

// FindCorrespondences implements CorrespondenceEstimator.
func (c *Cylinder) FindCorrespondences(alignee, target *pointcloud.View) (*Correspondences, error) {
	n := alignee.Len()
	targetPoints := make(pointcloud.Cloud, n)
	distances := make([]float64, n)

	var mantleSum float64
	var mantleCount int
	for k := 0; k < n; k++ {
		p := alignee.At(k).Pos
		hit := c.intersect(p)
		targetPoints[k] = pointcloud.NewPointWithNormal(hit.pos, hit.norm)
		distances[k] = math.Abs(hit.signed)

		rho := math.Hypot(p.X, p.Y)
		if mantle := rho - c.Radius; mantle < -p.Z {
			mantleSum += mantle
			mantleCount++
		}
	}
	if mantleCount > 0 {
		c.Radius += mantleSum / float64(mantleCount)
	}

	correspondingTarget := pointcloud.NewView(targetPoints)
	return FromSimpleOneWayCorrespondences(alignee, correspondingTarget, distances, targetPoints), nil
}
