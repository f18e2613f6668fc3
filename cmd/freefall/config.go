package freefall

import "fmt"

// Config holds the configuration for the freefall scenario
type Config struct {
	NumDrones       int
	Duration        float64 // simulation seconds
	Dt              float64 // step size, seconds
	DropProbability float64
	BaseLatency     float64
	Jitter          float64
	LogPath         string
}

// ValidateAndParse validates and parses the raw parameters into a Config
func ValidateAndParse(params map[string]interface{}) (*Config, error) {
	config := &Config{}

	if v, ok := params["num_drones"]; ok {
		switch val := v.(type) {
		case int:
			config.NumDrones = val
		case float64:
			config.NumDrones = int(val)
		default:
			return nil, fmt.Errorf("num_drones must be an integer")
		}
	}
	if config.NumDrones < 1 || config.NumDrones > 50 {
		return nil, fmt.Errorf("num_drones must be between 1 and 50")
	}

	config.Duration = floatParam(params, "duration", 10)
	if config.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	config.Dt = floatParam(params, "dt", 0.1)
	if config.Dt <= 0 {
		return nil, fmt.Errorf("dt must be positive")
	}

	config.DropProbability = floatParam(params, "drop_probability", 0)
	if config.DropProbability < 0 || config.DropProbability > 1 {
		return nil, fmt.Errorf("drop_probability must be between 0.0 and 1.0")
	}

	config.BaseLatency = floatParam(params, "base_latency", 0.5)
	config.Jitter = floatParam(params, "jitter", 0)

	config.LogPath = "comms_log.csv"
	if v, ok := params["log_path"]; ok {
		if s := fmt.Sprintf("%v", v); s != "" {
			config.LogPath = s
		}
	}

	return config, nil
}

func floatParam(params map[string]interface{}, name string, fallback float64) float64 {
	v, ok := params[name]
	if !ok {
		return fallback
	}
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	default:
		return fallback
	}
}
