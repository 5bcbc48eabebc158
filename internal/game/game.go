// Package game owns the single Game value a host constructs once: the
// Physics Oracle, car orchestrator, follow camera, and input state. No
// other global state is required; the host holds one Game and calls OnFrame
// from its redraw-requested callback.
package game

import (
	"time"

	"drivesim/internal/camera"
	"drivesim/internal/car"
	"drivesim/internal/gameplay"
	"drivesim/internal/input"
	"drivesim/internal/oracle"
	"drivesim/internal/simulation"
	"drivesim/internal/snapshot"
	"drivesim/internal/vecmath"
)

// WorldBuilder constructs the static world geometry (ground, decor, kill
// plane) attached to static bodies in o. Supplied by the host so Game stays
// agnostic of the concrete arena layout.
type WorldBuilder func(o *oracle.Oracle)

// targetFrameBudget is the redraw cadence OnFrame is expected to fit
// within; TickMonitor uses it to flag frames a host's render loop would
// have dropped.
const targetFrameBudget = 16 * time.Millisecond

// Game is the synchronous, single-threaded owner of the simulation. The
// host drives it through Input, OnFrame, Pause/Resume, and TickMetrics;
// OnFrame returns the frame's render snapshot.
type Game struct {
	Oracle       *oracle.Oracle
	Orchestrator *car.Orchestrator
	Camera       camera.Camera
	Input        input.State

	tunables gameplay.TunableSet
	builder  snapshot.Builder
	monitor  *simulation.TickMonitor
	loop     *simulation.FrameLoop

	paused bool
}

// New constructs a Game: a gravity-driven world, a dynamic chassis at
// spawnPose, and static geometry from buildWorld.
func New(tunables gameplay.TunableSet, spawnPose vecmath.Isometry, buildWorld WorldBuilder, opts ...car.Option) *Game {
	o := oracle.New(vecmath.Vec3{Y: -tunables.GravityMps2})
	if buildWorld != nil {
		buildWorld(o)
	}
	chassis := o.InsertDynamic(spawnPose, tunables.ChassisMassKg, tunables.ChassisAngularInertia)
	o.AttachDynamicCollider(chassis, tunables.ChassisColliderRadius())
	orch := car.NewOrchestrator(o, chassis, tunables, opts...)

	cam := camera.NewCamera(
		spawnPose.Translation.Add(vecmath.Vec3{Y: 5}),
		spawnPose.Translation,
		16.0/9.0,
		0.6,
	)

	return &Game{
		Oracle:       o,
		Orchestrator: orch,
		Camera:       cam,
		tunables:     tunables,
		monitor:      simulation.NewTickMonitor(targetFrameBudget),
		loop:         simulation.NewFrameLoop(nil),
	}
}

// Pause suspends the frame loop; the next OnFrame call after Resume uses a
// fresh delta.
func (g *Game) Pause() { g.loop.Pause(); g.paused = true }

// Resume un-suspends the frame loop.
func (g *Game) Resume() { g.loop.Resume(); g.paused = false }

// Paused reports whether the game is currently suspended.
func (g *Game) Paused() bool { return g.paused }

// TickMetrics exposes the accumulated frame-timing statistics for a host
// FPS readout.
func (g *Game) TickMetrics() simulation.TickMetricsSnapshot { return g.monitor.Snapshot() }

// OnFrame runs exactly one pass of the per-frame sequence: advance the
// physics oracle by the previous frame's impulses, probe wheels, resolve
// input into throttle/steer, apply suspension/tire/aero, update the follow
// camera, and assemble a snapshot. It is a no-op returning the zero
// snapshot while paused.
func (g *Game) OnFrame() snapshot.RenderSnapshot {
	start := time.Now()
	dt, adjustedDt := g.loop.Tick()
	if dt == 0 && adjustedDt == 0 {
		return snapshot.RenderSnapshot{}
	}

	g.Oracle.Step(dt)
	result := g.Orchestrator.Step(g.Input, dt, adjustedDt)

	pipeline := g.Oracle.QueryPipeline()
	g.Camera.Update(pipeline, result.ChassisPose, g.Oracle.LinearVelocity(g.chassisHandle()), result.State.WheelsGrounded, adjustedDt)

	var wheels [4]snapshot.WheelInput
	for i, w := range result.Wheels {
		wheels[i] = snapshot.WheelInput{Transform: w.Transform, HasSkid: w.HasSkid, SkidPoint: w.SkidPoint}
	}
	snap := g.builder.Build(result.ChassisPose, wheels)

	g.monitor.Observe(time.Since(start))
	return snap
}

func (g *Game) chassisHandle() oracle.Handle {
	// The orchestrator owns the chassis handle; Game only needs its
	// velocity for the camera, so it asks the orchestrator for the handle
	// rather than duplicating the handle field.
	return g.Orchestrator.ChassisHandle()
}
