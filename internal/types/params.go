package types

import "fmt"

// Parameter extraction helpers shared by all providers. Params arrive as
// map[string]interface{} decoded from JSON, YAML, or a script runtime, so
// numbers may be float64, int, or int64 depending on the decoder.

// GetString extracts a string parameter.
func GetString(params map[string]interface{}, key string, required bool) (string, error) {
	val, ok := params[key]
	if !ok || val == nil {
		if required {
			return "", fmt.Errorf("%s parameter required", key)
		}
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be string", key)
	}

	if required && str == "" {
		return "", fmt.Errorf("%s cannot be empty", key)
	}

	return str, nil
}

// GetBool extracts a bool parameter with a default.
func GetBool(params map[string]interface{}, key string, defaultVal bool) bool {
	val, ok := params[key].(bool)
	if !ok {
		return defaultVal
	}
	return val
}

// GetNumber extracts a numeric parameter.
func GetNumber(params map[string]interface{}, key string, required bool) (float64, error) {
	val, ok := params[key]
	if !ok || val == nil {
		if required {
			return 0, fmt.Errorf("%s parameter required", key)
		}
		return 0, nil
	}

	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%s must be number", key)
	}
}

// GetStringSlice extracts a string slice parameter.
func GetStringSlice(params map[string]interface{}, key string) ([]string, bool) {
	switch val := params[key].(type) {
	case []string:
		return val, true
	case []interface{}:
		result := make([]string, 0, len(val))
		for _, v := range val {
			if s, ok := v.(string); ok {
				result = append(result, s)
			}
		}
		return result, true
	default:
		return nil, false
	}
}

// GetMap extracts a nested map parameter.
func GetMap(params map[string]interface{}, key string) map[string]interface{} {
	m, ok := params[key].(map[string]interface{})
	if !ok {
		return nil
	}
	return m
}
