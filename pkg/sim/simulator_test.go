package sim

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"testing"

	"github.com/skyfield/swarmlink-simulations/pkg/comms"
	"github.com/skyfield/swarmlink-simulations/pkg/drone"
	"github.com/skyfield/swarmlink-simulations/pkg/geo"
	"github.com/skyfield/swarmlink-simulations/pkg/world"
)

func newTestSimulator(t *testing.T, cfg Config) *Simulator {
	t.Helper()
	if cfg.World == (world.World{}) {
		cfg.World = world.Default()
	}
	if cfg.Network.LogPath == "" {
		cfg.Network.LogPath = filepath.Join(t.TempDir(), "comms_log.csv")
	}
	if cfg.Network.Trace == nil {
		cfg.Network.Trace = io.Discard
	}
	if cfg.Network.Seed == 0 {
		cfg.Network.Seed = 1
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func collectorMailbox(t *testing.T, s *Simulator) []comms.ReceivedMessage {
	t.Helper()
	node, ok := s.Network().Node(DefaultCollector)
	if !ok {
		t.Fatal("collector node not registered")
	}
	return node.Mailbox()
}

func TestAddDroneAssignsSequentialIDsAndNodes(t *testing.T) {
	s := newTestSimulator(t, Config{})
	p := drone.Params{Mass: 1, MaxThrust: 10}

	for want := 0; want < 3; want++ {
		id := s.AddDrone(p, geo.Vec2{X: 10, Y: 10})
		if id != want {
			t.Errorf("drone id = %d, want %d", id, want)
		}
		if _, ok := s.Network().Node(fmt.Sprintf("Drone%d", want)); !ok {
			t.Errorf("node Drone%d not registered", want)
		}
	}
	if len(s.Drones()) != 3 {
		t.Errorf("drone count = %d, want 3", len(s.Drones()))
	}
}

func TestThrustCommandsOutOfRangeAreNoOps(t *testing.T) {
	s := newTestSimulator(t, Config{})
	s.AddDrone(drone.Params{Mass: 1, MaxThrust: 10}, geo.Vec2{X: 50, Y: 50})

	// None of these may panic or disturb drone 0.
	s.SetDroneThrustDirection(-1, geo.Vec2{X: 1, Y: 0})
	s.SetDroneThrustDirection(1, geo.Vec2{X: 1, Y: 0})
	s.SetDroneThrustForce(7, geo.Vec2{X: 5, Y: 0})
	s.ClearDroneThrust(99)

	if th := s.Drones()[0].Thrust(); th != (geo.Vec2{}) {
		t.Errorf("drone 0 thrust = %v, want untouched zero", th)
	}
}

func TestThrustCommandsForwardToDrone(t *testing.T) {
	s := newTestSimulator(t, Config{})
	id := s.AddDrone(drone.Params{Mass: 1, MaxThrust: 10}, geo.Vec2{X: 50, Y: 50})

	s.SetDroneThrustDirection(id, geo.Vec2{X: 1, Y: 0})
	if th := s.Drones()[id].Thrust(); th != (geo.Vec2{X: 10, Y: 0}) {
		t.Errorf("thrust = %v, want {10 0}", th)
	}

	s.SetDroneThrustForce(id, geo.Vec2{X: 0, Y: 3})
	if th := s.Drones()[id].Thrust(); th != (geo.Vec2{X: 0, Y: 3}) {
		t.Errorf("thrust = %v, want {0 3}", th)
	}

	s.ClearDroneThrust(id)
	if th := s.Drones()[id].Thrust(); th != (geo.Vec2{}) {
		t.Errorf("thrust = %v, want zero", th)
	}
}

// With zero network latency, a report batch is sent and delivered inside
// the same Step call, and the payload reflects the physics state updated
// earlier in that same step.
func TestStepReportsAfterPhysicsUpdate(t *testing.T) {
	s := newTestSimulator(t, Config{})
	s.AddDrone(drone.Params{Mass: 1, MaxThrust: 10}, geo.Vec2{X: 50, Y: 50})

	s.Step(0.5)

	mb := collectorMailbox(t, s)
	if len(mb) != 1 {
		t.Fatalf("collector has %d messages, want 1", len(mb))
	}
	// After 0.5s of freefall: v.Y = -4.9, pos.Y = 50 - 4.9*0.5 = 47.55.
	want := "STATUS pos=(50.00,47.55) vel=(0.00,-4.90)"
	if mb[0].Payload != want {
		t.Errorf("payload = %q, want %q", mb[0].Payload, want)
	}
	if mb[0].From != "Drone0" {
		t.Errorf("sender = %q, want Drone0", mb[0].From)
	}
}

func TestStepReportCadence(t *testing.T) {
	s := newTestSimulator(t, Config{ReportInterval: 1})
	s.AddDrone(drone.Params{Mass: 1, MaxThrust: 10}, geo.Vec2{X: 50, Y: 50})

	s.Step(0.4)
	if got := len(collectorMailbox(t, s)); got != 0 {
		t.Fatalf("report sent before interval: %d messages", got)
	}
	s.Step(0.4)
	if got := len(collectorMailbox(t, s)); got != 0 {
		t.Fatalf("report sent at t=0.8 with interval 1: %d messages", got)
	}
	s.Step(0.4)
	if got := len(collectorMailbox(t, s)); got != 1 {
		t.Fatalf("collector has %d messages at t=1.2, want 1", got)
	}
}

// A step that jumps past several report intervals emits exactly one
// batch; missed intervals are not back-filled.
func TestStepNoReportCatchUp(t *testing.T) {
	s := newTestSimulator(t, Config{ReportInterval: 0.5})
	s.AddDrone(drone.Params{Mass: 1, MaxThrust: 10}, geo.Vec2{X: 50, Y: 50})

	s.Step(5)
	if got := len(collectorMailbox(t, s)); got != 1 {
		t.Fatalf("collector has %d messages after one large step, want 1", got)
	}

	// The next report time advanced by a single interval, so the very
	// next step reports again.
	s.Step(0.01)
	if got := len(collectorMailbox(t, s)); got != 2 {
		t.Fatalf("collector has %d messages, want 2", got)
	}
}

func TestStepReportsAllDronesPerBatch(t *testing.T) {
	s := newTestSimulator(t, Config{})
	p := drone.Params{Mass: 1, MaxThrust: 10}
	for i := 0; i < 3; i++ {
		s.AddDrone(p, geo.Vec2{X: float64(10 * (i + 1)), Y: 50})
	}

	s.Step(0.5)

	mb := collectorMailbox(t, s)
	if len(mb) != 3 {
		t.Fatalf("collector has %d messages, want one per drone", len(mb))
	}
	for i, rm := range mb {
		if want := fmt.Sprintf("Drone%d", i); rm.From != want {
			t.Errorf("message %d from %q, want %q", i, rm.From, want)
		}
	}
}

func TestStepDeliversWithLatencyOnLaterStep(t *testing.T) {
	s := newTestSimulator(t, Config{Network: comms.Params{BaseLatency: 0.4}})
	s.AddDrone(drone.Params{Mass: 1, MaxThrust: 10}, geo.Vec2{X: 50, Y: 50})

	s.Step(0.5) // batch sent at t=0.5, due t=0.9
	if got := len(collectorMailbox(t, s)); got != 0 {
		t.Fatalf("message arrived before its latency elapsed: %d", got)
	}
	s.Step(0.5) // t=1.0, due message delivered, next batch due t=1.4
	mb := collectorMailbox(t, s)
	if len(mb) != 1 {
		t.Fatalf("collector has %d messages, want 1", len(mb))
	}
	if math.Abs(mb[0].Latency-0.4) > 1e-9 {
		t.Errorf("latency = %v, want 0.4", mb[0].Latency)
	}
}

func TestTimeAdvances(t *testing.T) {
	s := newTestSimulator(t, Config{})
	for i := 0; i < 4; i++ {
		s.Step(0.25)
	}
	if math.Abs(s.Time()-1.0) > 1e-9 {
		t.Errorf("time = %v, want 1.0", s.Time())
	}
}

func TestCustomCollectorName(t *testing.T) {
	s := newTestSimulator(t, Config{Collector: "GroundStation"})
	s.AddDrone(drone.Params{Mass: 1, MaxThrust: 10}, geo.Vec2{X: 50, Y: 50})

	s.Step(0.5)

	node, ok := s.Network().Node("GroundStation")
	if !ok {
		t.Fatal("custom collector not registered")
	}
	if len(node.Mailbox()) != 1 {
		t.Errorf("custom collector has %d messages, want 1", len(node.Mailbox()))
	}
}

func TestNodeName(t *testing.T) {
	if got := NodeName(7); got != "Drone7" {
		t.Errorf("NodeName(7) = %q, want Drone7", got)
	}
}
