// Package drone implements the physical model of a single drone:
// thrust commands, Newtonian integration, and world-bounds enforcement.
package drone

import (
	"github.com/skyfield/swarmlink-simulations/pkg/geo"
	"github.com/skyfield/swarmlink-simulations/pkg/world"
)

// Params holds the physical and performance limits of a drone.
//
//   - Mass is used for Newtonian integration (F = m*a) and must be
//     positive; a non-positive mass is a caller-contract violation and is
//     not guarded here.
//   - MaxThrust is the maximum force the drone can apply in any direction.
//   - MaxSpeed caps the velocity magnitude; 0 disables the cap.
type Params struct {
	Mass      float64 // kg
	MaxThrust float64 // N
	MaxSpeed  float64 // m/s, 0 = unlimited
}

// Drone is a single physical drone in the 2D simulation. It tracks
// position, velocity, and the currently applied thrust force. The
// simulator owns Drone instances and advances them each step.
type Drone struct {
	id     int
	params Params

	position geo.Vec2
	velocity geo.Vec2
	thrust   geo.Vec2
}

// New creates a drone at startPos with zero velocity and zero thrust.
func New(id int, params Params, startPos geo.Vec2) *Drone {
	return &Drone{
		id:       id,
		params:   params,
		position: startPos,
	}
}

// SetThrustDirection sets thrust from a direction vector only. The
// direction is normalized and scaled to MaxThrust, replacing any previous
// thrust. A zero direction clears thrust entirely.
func (d *Drone) SetThrustDirection(direction geo.Vec2) {
	d.thrust = direction.Normalized().Scale(d.params.MaxThrust)
}

// SetThrustForce applies a full thrust force vector. Forces within
// MaxThrust (including zero) are used as-is; anything larger is rescaled
// to exactly MaxThrust with direction preserved.
func (d *Drone) SetThrustForce(force geo.Vec2) {
	mag := force.Length()
	if mag == 0 || mag <= d.params.MaxThrust {
		d.thrust = force
		return
	}
	d.thrust = force.Scale(d.params.MaxThrust / mag)
}

// ClearThrust removes all thrust, leaving gravity as the only force.
func (d *Drone) ClearThrust() {
	d.thrust = geo.Vec2{}
}

// Update advances the drone's physics by dt seconds using semi-implicit
// Euler integration:
//
//	totalForce = thrust + gravity*mass
//	v += (totalForce/mass) * dt, clamped to MaxSpeed when enabled
//	x += v * dt
//
// then clamps each axis independently to [0, Width] x [0, Height],
// zeroing that axis's velocity when a clamp fires. A corner hit can zero
// both components. There is no restitution.
func (d *Drone) Update(dt float64, w world.World) {
	gravityForce := w.Gravity.Scale(d.params.Mass)
	totalForce := d.thrust.Add(gravityForce)

	acceleration := totalForce.Scale(1.0 / d.params.Mass)
	d.velocity = d.velocity.Add(acceleration.Scale(dt))

	if speed := d.velocity.Length(); d.params.MaxSpeed > 0 && speed > d.params.MaxSpeed {
		d.velocity = d.velocity.Scale(d.params.MaxSpeed / speed)
	}

	d.position = d.position.Add(d.velocity.Scale(dt))

	if d.position.X < 0 {
		d.position.X = 0
		d.velocity.X = 0
	}
	if d.position.Y < 0 {
		d.position.Y = 0
		d.velocity.Y = 0
	}
	if d.position.X > w.Width {
		d.position.X = w.Width
		d.velocity.X = 0
	}
	if d.position.Y > w.Height {
		d.position.Y = w.Height
		d.velocity.Y = 0
	}
}

// ID returns the drone's unique identifier.
func (d *Drone) ID() int { return d.id }

// Position returns the current world-space position.
func (d *Drone) Position() geo.Vec2 { return d.position }

// Velocity returns the current velocity.
func (d *Drone) Velocity() geo.Vec2 { return d.velocity }

// Thrust returns the currently applied thrust force.
func (d *Drone) Thrust() geo.Vec2 { return d.thrust }
