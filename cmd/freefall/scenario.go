// Package freefall is the simplest runnable scenario: a handful of
// drones released with no thrust, falling under gravity until they rest
// on the world floor, reporting telemetry over a lossless network. It
// doubles as a sanity check of the physics and comms plumbing.
package freefall

import (
	"context"
	"fmt"

	"github.com/skyfield/swarmlink-simulations/pkg/comms"
	"github.com/skyfield/swarmlink-simulations/pkg/drone"
	"github.com/skyfield/swarmlink-simulations/pkg/geo"
	"github.com/skyfield/swarmlink-simulations/pkg/logger"
	"github.com/skyfield/swarmlink-simulations/pkg/scenario"
	"github.com/skyfield/swarmlink-simulations/pkg/sim"
	"github.com/skyfield/swarmlink-simulations/pkg/world"
)

const reportDir = "reports"

// Scenario implements the freefall drop scenario.
type Scenario struct {
	config   *Config
	stopChan chan struct{}
}

// New creates a new instance of the freefall scenario
func New() scenario.Scenario {
	return &Scenario{stopChan: make(chan struct{})}
}

// Name returns the scenario name
func (s *Scenario) Name() string {
	return "Freefall Drop"
}

// Description returns the scenario description
func (s *Scenario) Description() string {
	return "Unpowered drones falling under gravity, telemetry over a lossless link"
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

	params := drone.Params{Mass: 1.0, MaxThrust: 10.0}
	spacing := w.Width / float64(s.config.NumDrones+1)
	for i := 0; i < s.config.NumDrones; i++ {
		start := geo.Vec2{X: spacing * float64(i+1), Y: w.Height * 0.8}
		id := simulator.AddDrone(params, start)
		simulator.ClearDroneThrust(id)
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
	if err := scenario.DefaultRegistry.Register("Freefall Drop", New); err != nil {
		logger.Errorf("Failed to register scenario: %v", err)
	}
}
