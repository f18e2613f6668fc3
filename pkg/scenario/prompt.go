package scenario

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// PromptForParameters collects values for every declared parameter,
// interactively via survey. SWARMLINK_<NAME> environment variables
// override defaults, and SWARMLINK_SKIP_PROMPTS=true suppresses all
// prompting for CI runs, taking env values or declared defaults instead.
func PromptForParameters(params []Parameter) (map[string]interface{}, error) {
	result := make(map[string]interface{})
	skip := os.Getenv("SWARMLINK_SKIP_PROMPTS") == "true"

	for _, param := range params {
		if env := os.Getenv("SWARMLINK_" + strings.ToUpper(param.Name)); env != "" {
			parsed, err := parseValue(env, param.Type)
			if err != nil {
				return nil, fmt.Errorf("invalid env override for %s: %w", param.Name, err)
			}
			if skip {
				result[param.Name] = parsed
				continue
			}
			param.Default = parsed
		} else if skip {
			if param.Default == nil && param.Required {
				return nil, fmt.Errorf("required parameter %s not provided and no default available", param.Name)
			}
			result[param.Name] = param.Default
			continue
		}

		value, err := promptValue(param)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s: %w", param.Name, err)
		}
		result[param.Name] = value
	}

	return result, nil
}

func promptValue(param Parameter) (interface{}, error) {
	if param.Type == "boolean" {
		defaultBool, _ := param.Default.(bool)
		prompt := &survey.Confirm{Message: param.Description, Default: defaultBool}
		var result bool
		if err := survey.AskOne(prompt, &result); err != nil {
			return nil, err
		}
		return result, nil
	}

	defaultStr := ""
	if param.Default != nil {
		defaultStr = fmt.Sprintf("%v", param.Default)
	}

	if param.Type == "string" && len(param.Options) > 0 {
		prompt := &survey.Select{
			Message: param.Description,
			Options: param.Options,
			Default: defaultStr,
		}
		var result string
		if err := survey.AskOne(prompt, &result); err != nil {
			return nil, err
		}
		return result, nil
	}

	prompt := &survey.Input{Message: param.Description, Default: defaultStr}
	var raw string
	if err := survey.AskOne(prompt, &raw, survey.WithValidator(survey.Required)); err != nil {
		return nil, err
	}

	value, err := parseValue(raw, param.Type)
	if err != nil {
		return nil, err
	}
	return value, checkRange(value, param)
}

func parseValue(raw, typ string) (interface{}, error) {
	switch typ {
	case "integer":
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer: %w", err)
		}
		return v, nil
	case "float":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number: %w", err)
		}
		return v, nil
	case "string":
		return raw, nil
	case "boolean":
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean: %w", err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported parameter type: %s", typ)
	}
}

func checkRange(value interface{}, param Parameter) error {
	v, ok := toFloat(value)
	if !ok {
		return nil
	}
	if param.Min != nil {
		if minVal, ok := toFloat(param.Min); ok && v < minVal {
			return fmt.Errorf("value must be at least %g", minVal)
		}
	}
	if param.Max != nil {
		if maxVal, ok := toFloat(param.Max); ok && v > maxVal {
			return fmt.Errorf("value must be at most %g", maxVal)
		}
	}
	return nil
}

func toFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case float64:
		return val, true
	default:
		return 0, false
	}
}
