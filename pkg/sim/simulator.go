// Package sim contains the simulation orchestrator: it owns the world
// settings, the drone collection, the comms network, and the simulation
// clock, and advances all of them through Step.
package sim

import (
	"fmt"

	"github.com/skyfield/swarmlink-simulations/pkg/comms"
	"github.com/skyfield/swarmlink-simulations/pkg/drone"
	"github.com/skyfield/swarmlink-simulations/pkg/geo"
	"github.com/skyfield/swarmlink-simulations/pkg/world"
)

const (
	// DefaultReportInterval is how often drones report telemetry, in
	// simulation seconds.
	DefaultReportInterval = 0.5
	// DefaultCollector is the node that receives all drone reports.
	DefaultCollector = "HQ"
)

// Config assembles a Simulator.
type Config struct {
	World   world.World
	Network comms.Params

	// ReportInterval overrides DefaultReportInterval when > 0.
	ReportInterval float64
	// Collector overrides DefaultCollector when non-empty.
	Collector string
}

// Simulator coordinates drone physics, simulation time, and telemetry
// reporting over the comms network. It is driven entirely by Step calls
// from an external caller; there is no background activity.
type Simulator struct {
	world  world.World
	drones []*drone.Drone
	net    *comms.Network

	collector      string
	simTime        float64
	nextReportTime float64
	reportInterval float64
}

// New constructs a simulator, its comms network, and the collector node.
// The caller must Close the simulator to release the comms audit log.
func New(cfg Config) (*Simulator, error) {
	net, err := comms.New(cfg.Network)
	if err != nil {
		return nil, fmt.Errorf("failed to create comms network: %w", err)
	}

	interval := cfg.ReportInterval
	if interval <= 0 {
		interval = DefaultReportInterval
	}
	collector := cfg.Collector
	if collector == "" {
		collector = DefaultCollector
	}
	net.RegisterNode(collector)

	return &Simulator{
		world:          cfg.World,
		net:            net,
		collector:      collector,
		nextReportTime: interval,
		reportInterval: interval,
	}, nil
}

// AddDrone creates a drone at startPos and registers its comms node.
// Drone ids are sequential and zero-based (id = index), and the node name
// is derived from the id ("Drone0", "Drone1", ...).
func (s *Simulator) AddDrone(params drone.Params, startPos geo.Vec2) int {
	id := len(s.drones)
	s.drones = append(s.drones, drone.New(id, params, startPos))
	s.net.RegisterNode(NodeName(id))
	return id
}

// NodeName returns the comms node name for a drone id.
func NodeName(id int) string {
	return fmt.Sprintf("Drone%d", id)
}

// SetDroneThrustDirection forwards a thrust direction command to a drone.
// An out-of-range id is a silent no-op.
func (s *Simulator) SetDroneThrustDirection(id int, direction geo.Vec2) {
	if id >= 0 && id < len(s.drones) {
		s.drones[id].SetThrustDirection(direction)
	}
}

// SetDroneThrustForce forwards a full thrust force command to a drone.
// An out-of-range id is a silent no-op.
func (s *Simulator) SetDroneThrustForce(id int, force geo.Vec2) {
	if id >= 0 && id < len(s.drones) {
		s.drones[id].SetThrustForce(force)
	}
}

// ClearDroneThrust removes all thrust from a drone. An out-of-range id is
// a silent no-op.
func (s *Simulator) ClearDroneThrust(id int) {
	if id >= 0 && id < len(s.drones) {
		s.drones[id].ClearThrust()
	}
}

// Step advances the simulation by dt seconds:
//
//  1. the clock advances,
//  2. every drone's physics updates against the current world,
//  3. if the clock has reached the next report time, one telemetry
//     message per drone is sent to the collector and the report time
//     advances by exactly one interval — a large dt that skips several
//     intervals still produces a single report batch (no catch-up),
//  4. the network advances, delivering due messages.
//
// Telemetry sent in step N is eligible for delivery during step N's own
// network advance; with zero configured latency a report arrives in the
// same Step call that produced it.
func (s *Simulator) Step(dt float64) {
	s.simTime += dt

	for _, d := range s.drones {
		d.Update(dt, s.world)
	}

	if s.simTime >= s.nextReportTime {
		for _, d := range s.drones {
			s.sendDroneStatus(d)
		}
		s.nextReportTime += s.reportInterval
	}

	s.net.Advance(s.simTime)
}

// sendDroneStatus builds and sends one telemetry payload for a drone:
// position and velocity at fixed 2-decimal precision.
func (s *Simulator) sendDroneStatus(d *drone.Drone) {
	pos := d.Position()
	vel := d.Velocity()
	payload := fmt.Sprintf("STATUS pos=(%.2f,%.2f) vel=(%.2f,%.2f)", pos.X, pos.Y, vel.X, vel.Y)
	s.net.Send(NodeName(d.ID()), s.collector, payload, s.simTime)
}

// Drones returns the drones in id order. The slice is shared; callers
// must treat it as read-only.
func (s *Simulator) Drones() []*drone.Drone { return s.drones }

// Time returns the current simulation clock.
func (s *Simulator) Time() float64 { return s.simTime }

// Network exposes the underlying comms network, e.g. for mailbox
// inspection.
func (s *Simulator) Network() *comms.Network { return s.net }

// PrintCommsSummary prints the comms statistics and mailbox dump at the
// current simulation time.
func (s *Simulator) PrintCommsSummary() {
	s.net.Summary(s.simTime)
}

// Close releases the comms network's log resources.
func (s *Simulator) Close() error {
	return s.net.Close()
}
