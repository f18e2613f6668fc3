// Package patrol flies a wing of speed-limited drones on sweeping
// circular headings while their status reports cross a lossy radio
// link. This is the scenario to reach for when exercising latency
// jitter and packet loss under realistic flight dynamics.
package patrol

import (
	"context"
	"fmt"
	"math"

	"github.com/skyfield/swarmlink-simulations/pkg/comms"
	"github.com/skyfield/swarmlink-simulations/pkg/drone"
	"github.com/skyfield/swarmlink-simulations/pkg/geo"
	"github.com/skyfield/swarmlink-simulations/pkg/logger"
	"github.com/skyfield/swarmlink-simulations/pkg/scenario"
	"github.com/skyfield/swarmlink-simulations/pkg/sim"
	"github.com/skyfield/swarmlink-simulations/pkg/world"
)

const reportDir = "reports"

// Scenario implements the patrol sweep scenario.
type Scenario struct {
	config   *Config
	stopChan chan struct{}
}

// New creates a new instance of the patrol scenario
func New() scenario.Scenario {
	return &Scenario{stopChan: make(chan struct{})}
}

// Name returns the scenario name
func (s *Scenario) Name() string {
	return "Patrol Sweep"
}

// Description returns the scenario description
func (s *Scenario) Description() string {
	return "Speed-limited drones sweeping the area while reporting over a lossy link"
}

// Configure sets up the scenario with provided parameters
func (s *Scenario) Configure(params map[string]interface{}) error {
	config, err := ValidateAndParse(params)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	s.config = config
	return nil
}

// Run executes the scenario
func (s *Scenario) Run(ctx context.Context) error {
	logger.Infof("Starting %s with %d drones", s.Name(), s.config.NumDrones)

	w := world.Default()
	simulator, err := sim.New(sim.Config{
		World: w,
		Network: comms.Params{
			BaseLatency:     s.config.BaseLatency,
			Jitter:          s.config.Jitter,
			DropProbability: s.config.DropProbability,
			LogPath:         s.config.LogPath,
		},
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := simulator.Close(); err != nil {
			logger.Errorf("Failed to close comms log: %v", err)
		}
	}()

	params := drone.Params{Mass: 1.2, MaxThrust: 20.0, MaxSpeed: s.config.MaxSpeed}
	ids := make([]int, s.config.NumDrones)
	for i := range ids {
		angle := 2 * math.Pi * float64(i) / float64(s.config.NumDrones)
		start := geo.Vec2{
			X: w.Width/2 + (w.Width/4)*math.Cos(angle),
			Y: w.Height/2 + (w.Height/4)*math.Sin(angle),
		}
		ids[i] = simulator.AddDrone(params, start)
	}

	for simulator.Time() < s.config.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopChan:
			logger.Info("Scenario stopped by user")
			return s.finish(simulator)
		default:
		}

		// Each drone sweeps its heading at the turn rate, staggered so
		// the wing fans out instead of flying in lockstep.
		for i, id := range ids {
			phase := 2 * math.Pi * float64(i) / float64(len(ids))
			heading := phase + s.config.TurnRate*simulator.Time()
			dir := geo.Vec2{X: math.Cos(heading), Y: math.Sin(heading)}
			simulator.SetDroneThrustDirection(id, dir)
		}

		simulator.Step(s.config.Dt)
	}

	return s.finish(simulator)
}

func (s *Scenario) finish(simulator *sim.Simulator) error {
	simulator.PrintCommsSummary()

	report := sim.NewRunReport(s.Name(), simulator)
	path, err := report.Write(reportDir)
	if err != nil {
		return fmt.Errorf("failed to write run report: %w", err)
	}
	logger.Successf("Run report written to %s", path)
	return nil
}

// Stop gracefully shuts down the scenario
func (s *Scenario) Stop() error {
	close(s.stopChan)
	return nil
}

// init registers the scenario
func init() {
	if err := scenario.DefaultRegistry.Register("Patrol Sweep", New); err != nil {
		logger.Errorf("Failed to register scenario: %v", err)
	}
}
