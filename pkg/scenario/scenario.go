// Package scenario defines the pluggable scenario framework: the
// Scenario interface, a registry populated by scenario packages at init
// time, scenario.yaml discovery, and interactive parameter prompting.
package scenario

import "context"

// Scenario is implemented by every runnable simulation scenario.
type Scenario interface {
	// Name returns the scenario name, matching its scenario.yaml.
	Name() string

	// Description returns a brief description of what the scenario does.
	Description() string

	// Configure sets up the scenario with the provided parameters.
	Configure(params map[string]interface{}) error

	// Run executes the scenario until it completes or ctx is canceled.
	Run(ctx context.Context) error

	// Stop requests a graceful shutdown of a running scenario.
	Stop() error
}
