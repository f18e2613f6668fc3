package patrol

import "fmt"

// Config holds the configuration for the patrol scenario
type Config struct {
	NumDrones       int
	Duration        float64 // simulation seconds
	Dt              float64 // step size, seconds
	MaxSpeed        float64 // speed cap, m/s
	TurnRate        float64 // heading sweep rate, rad/s
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
	if config.NumDrones < 1 || config.NumDrones > 100 {
		return nil, fmt.Errorf("num_drones must be between 1 and 100")
	}

	config.Duration = floatParam(params, "duration", 30)
	if config.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	config.Dt = floatParam(params, "dt", 0.1)
	if config.Dt <= 0 {
		return nil, fmt.Errorf("dt must be positive")
	}

	config.MaxSpeed = floatParam(params, "max_speed", 12)
	if config.MaxSpeed < 0 {
		return nil, fmt.Errorf("max_speed must not be negative")
	}

	config.TurnRate = floatParam(params, "turn_rate", 0.5)

	config.DropProbability = floatParam(params, "drop_probability", 0.15)
	if config.DropProbability < 0 || config.DropProbability > 1 {
		return nil, fmt.Errorf("drop_probability must be between 0.0 and 1.0")
	}

	config.BaseLatency = floatParam(params, "base_latency", 0.5)
	if config.BaseLatency < 0 {
		return nil, fmt.Errorf("base_latency must not be negative")
	}

	config.Jitter = floatParam(params, "jitter", 0.2)
	if config.Jitter < 0 {
		return nil, fmt.Errorf("jitter must not be negative")
	}

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
