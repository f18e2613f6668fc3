package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RunReport is the machine-readable record of a completed scenario run:
// final drone state plus comms traffic statistics.
type RunReport struct {
	RunID       string    `json:"run_id"`
	Scenario    string    `json:"scenario"`
	GeneratedAt time.Time `json:"generated_at"`
	SimTime     float64   `json:"sim_time"`

	Drones []DroneReport `json:"drones"`
	Comms  CommsReport   `json:"comms"`
}

// DroneReport captures a drone's final state.
type DroneReport struct {
	ID        int     `json:"id"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
	VelocityX float64 `json:"velocity_x"`
	VelocityY float64 `json:"velocity_y"`
}

// CommsReport captures the network traffic counters.
type CommsReport struct {
	Sent          int     `json:"sent"`
	Delivered     int     `json:"delivered"`
	Dropped       int     `json:"dropped"`
	AvgLatencySec float64 `json:"avg_latency_sec,omitempty"`
}

// NewRunReport snapshots the simulator's final state under a fresh run id.
func NewRunReport(scenarioName string, s *Simulator) RunReport {
	report := RunReport{
		RunID:       uuid.NewString(),
		Scenario:    scenarioName,
		GeneratedAt: time.Now(),
		SimTime:     s.Time(),
	}

	for _, d := range s.Drones() {
		pos, vel := d.Position(), d.Velocity()
		report.Drones = append(report.Drones, DroneReport{
			ID:        d.ID(),
			PositionX: pos.X,
			PositionY: pos.Y,
			VelocityX: vel.X,
			VelocityY: vel.Y,
		})
	}

	stats := s.Network().Stats()
	report.Comms = CommsReport{
		Sent:          stats.Sent,
		Delivered:     stats.Delivered,
		Dropped:       stats.Dropped,
		AvgLatencySec: stats.AvgLatency,
	}
	return report
}

// Write saves the report as JSON under dir and returns the file path.
func (r RunReport) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	slug := strings.ReplaceAll(strings.ToLower(r.Scenario), " ", "-")
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.json", slug, r.RunID[:8]))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
