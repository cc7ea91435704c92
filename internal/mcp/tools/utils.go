package tools

import (
	"encoding/json"
	"fmt"
)

func parseIntArgument(value any, field string) (int, error) {
	switch v := value.(type) {
	case float64:
		if v <= 0 {
			return 0, fmt.Errorf("%s must be positive", field)
		}
		return int(v), nil
	case int:
		if v <= 0 {
			return 0, fmt.Errorf("%s must be positive", field)
		}
		return v, nil
	default:
		return 0, fmt.Errorf("%s must be provided", field)
	}
}

func mustMarshal(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
