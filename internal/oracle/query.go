package oracle

import "drivesim/internal/vecmath"

// staticCollider pairs a static body's handle with the SDF narrow-phase
// shape used to ray-cast it, so a QueryPipeline can honor an exclusion
// filter even though today nothing excludes a static collider in practice
// (only the dynamic chassis handle is ever excluded from ray casts; the
// chassis's own bounding-sphere collider, attached via
// AttachDynamicCollider, is checked against these same static fields
// separately in Step, not through QueryPipeline).
type staticCollider struct {
	handle Handle
	field  SignedDistanceField
}

// AddStaticField attaches a SignedDistanceField to a previously inserted
// static handle, making it participate in ray-cast queries.
func (o *Oracle) AddStaticField(h Handle, field SignedDistanceField) {
	o.resolve(h) // validates the handle; panics on stale/out-of-range
	o.statics = append(o.statics, staticCollider{handle: h, field: field})
}

// QueryPipeline is a transient snapshot of broad/narrow-phase state bound
// for ray-cast queries with a per-query exclusion filter, matching the
// "build a query pipeline" step of the Physics Oracle contract. Rebuilding
// it per call is cheap: broad phase here is nothing more than a slice scan
// over a handful of static colliders.
type QueryPipeline struct {
	colliders []staticCollider
	excluded  map[Handle]bool
}

// QueryPipeline builds a pipeline excluding the given handles from
// consideration; exclude is typically just the dynamic chassis handle.
func (o *Oracle) QueryPipeline(exclude ...Handle) *QueryPipeline {
	excluded := make(map[Handle]bool, len(exclude))
	for _, h := range exclude {
		excluded[h] = true
	}
	return &QueryPipeline{colliders: o.statics, excluded: excluded}
}

// QueryRayHit describes the result of a QueryPipeline ray-cast: the collider's
// owning handle plus the geometric hit.
type QueryRayHit struct {
	Handle Handle
	RayHit
}

// Raycast casts a ray against every non-excluded static collider, returning
// the nearest hit within maxDistance, observing geometry as it stood when
// the pipeline was built (pre-step, per the Physics Oracle contract).
func (p *QueryPipeline) Raycast(origin, direction vecmath.Vec3, maxDistance float64) (bool, QueryRayHit) {
	var (
		found   bool
		nearest QueryRayHit
	)
	for _, c := range p.colliders {
		if p.excluded[c.handle] {
			continue
		}
		hit, rayHit := Raycast(c.field, origin, direction, maxDistance)
		if !hit {
			continue
		}
		if !found || rayHit.Distance < nearest.Distance {
			found = true
			nearest = QueryRayHit{Handle: c.handle, RayHit: rayHit}
		}
	}
	return found, nearest
}
