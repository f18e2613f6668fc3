// Package world holds the global environment settings shared by all
// physics bodies: the gravity vector and the bounding box of the
// simulated area. It stores values only; boundary enforcement happens in
// the drone physics update.
package world

import "github.com/skyfield/swarmlink-simulations/pkg/geo"

// World defines gravity and the extent of the simulation area in meters.
type World struct {
	Gravity geo.Vec2
	Width   float64
	Height  float64
}

// Default returns Earth gravity (0, -9.8) and a 100m x 100m area.
func Default() World {
	return World{
		Gravity: geo.Vec2{X: 0, Y: -9.8},
		Width:   100,
		Height:  100,
	}
}
