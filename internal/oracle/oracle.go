// Package oracle is the in-tree reference engine satisfying the Physics
// Oracle contract: an opaque rigid-body world exposing handle-based body
// access, impulse accumulation, ray-casting, and a single fixed-gravity
// integration step. No third-party rigid-body crate is vendored in this
// retrieval pack, so this package is the "legitimate minimal conforming
// implementation" the design notes call for rather than a thin wrapper
// around an external physics library.
package oracle

import (
	"fmt"

	"drivesim/internal/vecmath"
)

// Handle is an opaque generational reference to a body. Reusing a stale
// handle (one whose generation no longer matches the live body at that
// slot) is a programmer error and panics, matching the "abort, no
// recoverable errors" failure mode for out-of-bounds handles.
type Handle struct {
	index      int
	generation uint32
}

type body struct {
	alive      bool
	generation uint32
	dynamic    bool

	pose    vecmath.Isometry
	linVel  vecmath.Vec3
	angVel  vecmath.Vec3
	mass    float64
	invMass float64
	// angularInertia approximates a single scalar moment of inertia; the
	// chassis compound hull does not need a full tensor for the force
	// model this oracle exists to serve (suspension/tire impulses are the
	// only torque sources, and they are already tuned against a scalar).
	angularInertia    float64
	invAngularInertia float64

	pendingImpulse  vecmath.Vec3
	pendingTorque   vecmath.Vec3

	// colliderRadius is the bounding-sphere collider attached via
	// AttachDynamicCollider. Zero means the body carries no collider and
	// never participates in narrow-phase contact (true of every body
	// until a caller opts in).
	colliderRadius float64
}

// Oracle owns every body in the world. The Orchestrator and camera hold only
// Handles; nothing outside this package ever sees a live *body.
type Oracle struct {
	gravity vecmath.Vec3
	bodies  []body
	statics []staticCollider
}

// DefaultGravity is the world gravity vector used unless overridden.
var DefaultGravity = vecmath.Vec3{Y: -9.81}

// New constructs an Oracle with the given gravity vector.
func New(gravity vecmath.Vec3) *Oracle {
	return &Oracle{gravity: gravity}
}

// InsertDynamic adds a dynamic body with the given pose, mass, and scalar
// angular inertia, returning its handle.
func (o *Oracle) InsertDynamic(pose vecmath.Isometry, mass, angularInertia float64) Handle {
	b := body{
		alive:             true,
		dynamic:           true,
		pose:              pose,
		mass:              mass,
		angularInertia:    angularInertia,
	}
	if mass > 0 {
		b.invMass = 1 / mass
	}
	if angularInertia > 0 {
		b.invAngularInertia = 1 / angularInertia
	}
	return o.insert(b)
}

// InsertStatic adds a fixed (infinite mass) body, used for collider anchors
// that participate in handle-exclusion filters without ever moving.
func (o *Oracle) InsertStatic(pose vecmath.Isometry) Handle {
	return o.insert(body{alive: true, dynamic: false, pose: pose})
}

// AttachDynamicCollider gives a dynamic body a bounding-sphere collider of
// the given radius, centered on the body's pose, so it participates in
// narrow-phase contact against static SignedDistanceFields at every Step.
// A body with no attached collider (the default) only ever touches the
// world through whatever ray casts its owner performs against a
// QueryPipeline; this is what lets a compound hull too irregular for an
// exact convex narrow-phase still get real contact response against walls
// and slopes that no wheel probe ray happens to cross.
func (o *Oracle) AttachDynamicCollider(h Handle, radius float64) {
	o.resolve(h).colliderRadius = radius
}

func (o *Oracle) insert(b body) Handle {
	for i := range o.bodies {
		if !o.bodies[i].alive {
			b.generation = o.bodies[i].generation + 1
			o.bodies[i] = b
			return Handle{index: i, generation: b.generation}
		}
	}
	b.generation = 1
	o.bodies = append(o.bodies, b)
	return Handle{index: len(o.bodies) - 1, generation: b.generation}
}

// Remove retires a body, invalidating its handle. Unused by the driving
// simulation today (the spec's lifecycle never destroys entities after
// startup) but kept as a complete slab operation.
func (o *Oracle) Remove(h Handle) {
	b := o.resolve(h)
	b.alive = false
	b.generation++
}

func (o *Oracle) resolve(h Handle) *body {
	if h.index < 0 || h.index >= len(o.bodies) {
		panic(fmt.Sprintf("oracle: handle index %d out of range", h.index))
	}
	b := &o.bodies[h.index]
	if !b.alive || b.generation != h.generation {
		panic(fmt.Sprintf("oracle: stale handle %+v", h))
	}
	return b
}

// Position returns the body's current isometry.
func (o *Oracle) Position(h Handle) vecmath.Isometry { return o.resolve(h).pose }

// SetPosition overwrites the body's isometry, used only for the explicit
// reset path the spec's lifecycle allows (not exercised by normal play).
func (o *Oracle) SetPosition(h Handle, pose vecmath.Isometry) { o.resolve(h).pose = pose }

// LinearVelocity returns the body's linear velocity.
func (o *Oracle) LinearVelocity(h Handle) vecmath.Vec3 { return o.resolve(h).linVel }

// AngularVelocity returns the body's angular velocity (rad/s about each
// world axis).
func (o *Oracle) AngularVelocity(h Handle) vecmath.Vec3 { return o.resolve(h).angVel }

// SetLinearVelocity overwrites linear velocity directly, bypassing impulse
// accumulation; used by tests that need to seed a moving body.
func (o *Oracle) SetLinearVelocity(h Handle, v vecmath.Vec3) { o.resolve(h).linVel = v }

// SetAngularVelocity overwrites angular velocity directly.
func (o *Oracle) SetAngularVelocity(h Handle, v vecmath.Vec3) { o.resolve(h).angVel = v }

// VelocityAtPoint returns the velocity of the material point of the body
// currently coincident with worldPoint: v + ω × r.
func (o *Oracle) VelocityAtPoint(h Handle, worldPoint vecmath.Vec3) vecmath.Vec3 {
	b := o.resolve(h)
	r := worldPoint.Sub(b.pose.Translation)
	return b.linVel.Add(b.angVel.Cross(r))
}

// ApplyImpulse accumulates a linear impulse (no torque) to be consumed at
// the next Step. No-wake-disabled: the chassis never sleeps, so there is no
// wake flag to manage.
func (o *Oracle) ApplyImpulse(h Handle, impulse vecmath.Vec3) {
	b := o.resolve(h)
	b.pendingImpulse = b.pendingImpulse.Add(impulse)
}

// ApplyImpulseAtPoint accumulates a linear impulse applied at worldPoint,
// contributing both to linear velocity and, via Δp, ΔL = r × Δp, angular
// velocity at the next Step.
func (o *Oracle) ApplyImpulseAtPoint(h Handle, impulse, worldPoint vecmath.Vec3) {
	b := o.resolve(h)
	b.pendingImpulse = b.pendingImpulse.Add(impulse)
	r := worldPoint.Sub(b.pose.Translation)
	b.pendingTorque = b.pendingTorque.Add(r.Cross(impulse))
}

// Step advances every dynamic body one semi-implicit Euler integration step:
// gravity and any impulses accumulated since the last Step are folded into
// velocity first, then position/orientation are advanced by the resulting
// velocity. Impulses are cleared after being consumed, matching the "applied
// between steps, consumed at next step" contract.
func (o *Oracle) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for i := range o.bodies {
		b := &o.bodies[i]
		if !b.alive || !b.dynamic {
			continue
		}
		if b.invMass > 0 {
			b.linVel = b.linVel.Add(o.gravity.Scale(dt))
			b.linVel = b.linVel.Add(b.pendingImpulse.Scale(b.invMass))
		}
		if b.invAngularInertia > 0 {
			b.angVel = b.angVel.Add(b.pendingTorque.Scale(b.invAngularInertia))
		}
		b.pendingImpulse = vecmath.Zero
		b.pendingTorque = vecmath.Zero

		b.pose.Translation = b.pose.Translation.Add(b.linVel.Scale(dt))
		b.pose.Rotation = integrateRotation(b.pose.Rotation, b.angVel, dt)

		if b.colliderRadius > 0 {
			o.resolveStaticContacts(b)
		}
	}
}

// resolveStaticContacts pushes b out of, and kills inward velocity into,
// every static collider its bounding sphere currently penetrates. This is
// the narrow-phase contact response for the chassis compound hull
// (approximated as its enclosing bounding sphere, see
// gameplay.TunableSet.ChassisColliderRadius): a zero-restitution positional
// correction plus a velocity projection, the minimal contact solver the
// broad/narrow-phase split calls for without a full polytope solver.
func (o *Oracle) resolveStaticContacts(b *body) {
	for _, c := range o.statics {
		penetrating, separation := SphereIntersection(c.field, b.pose.Translation, b.colliderRadius)
		if !penetrating {
			continue
		}
		normal := estimateNormal(c.field, b.pose.Translation)
		if normal == vecmath.Zero {
			continue
		}
		b.pose.Translation = b.pose.Translation.Add(normal.Scale(-separation))
		if vn := b.linVel.Dot(normal); vn < 0 {
			b.linVel = b.linVel.Sub(normal.Scale(vn))
		}
	}
}

// integrateRotation advances a unit quaternion by angular velocity omega
// over dt using the standard first-order quaternion derivative, then
// renormalizes to counter drift.
func integrateRotation(rotation vecmath.Quat, omega vecmath.Vec3, dt float64) vecmath.Quat {
	if omega == vecmath.Zero {
		return rotation
	}
	deltaAngle := omega.Length() * dt
	if deltaAngle < 1e-12 {
		return rotation
	}
	delta := vecmath.FromAxisAngle(omega, deltaAngle)
	return delta.Mul(rotation).Normalize()
}
