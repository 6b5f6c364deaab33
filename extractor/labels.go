package extractor

import "fmt"

var scenarioLabels = map[int]string{
	1: "Otimista",
	2: "Pessimista",
}

// ScenarioLabel returns the display label for a scenario code
func ScenarioLabel(code int) string {
	if label, ok := scenarioLabels[code]; ok {
		return label
	}
	return fmt.Sprintf("scenario %d", code)
}
