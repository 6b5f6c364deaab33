package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/adaptabrasil/adapta-metadata/util"
)

// Indicator is one node of the AdaptaBrasil indicator hierarchy as served by
// the catalog API
type Indicator struct {
	ID                  int             `json:"id"`
	ParentID            *int            `json:"-"`
	Level               int             `json:"level"`
	Name                string          `json:"name"`
	Title               string          `json:"title"`
	Years               Years           `json:"years"`
	Scenarios           []Scenario      `json:"scenarios"`
	CompleteDescription string          `json:"complete_description"`
	SimpleDescription   string          `json:"simple_description"`
	ImageURL            string          `json:"imageurl"`
	MenuStructure       json.RawMessage `json:"menu_structure,omitempty"`
}

// UnmarshalJSON accepts indicator_id_master as a number, a numeric string,
// null, or absent. A zero or non-integer parent is treated as no parent, and
// a scenario without a usable value is dropped; both are logged.
func (ind *Indicator) UnmarshalJSON(data []byte) error {
	type plain Indicator
	aux := struct {
		*plain
		Master    json.RawMessage   `json:"indicator_id_master"`
		Scenarios []json.RawMessage `json:"scenarios"`
	}{plain: (*plain)(ind)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	master, err := parseOptionalInt(aux.Master)
	if err != nil {
		util.LogAlert(&util.BasicLogContext{}, fmt.Sprintf("Indicator %d: ignoring indicator_id_master: %v", ind.ID, err))
		master = nil
	}
	if master != nil && *master == 0 {
		master = nil
	}
	ind.ParentID = master

	ind.Scenarios = nil
	for i, raw := range aux.Scenarios {
		var scenario Scenario
		if err := json.Unmarshal(raw, &scenario); err != nil {
			util.LogAlert(&util.BasicLogContext{}, fmt.Sprintf("Indicator %d: skipping scenario #%d: %v", ind.ID, i, err))
			continue
		}
		ind.Scenarios = append(ind.Scenarios, scenario)
	}
	return nil
}

// DisplayTitle returns the title, falling back to the name
func (ind Indicator) DisplayTitle() string {
	if ind.Title != "" {
		return ind.Title
	}
	return ind.Name
}

type menuStructure struct {
	DefaultClippingResolution *struct {
		ResolutionID json.RawMessage `json:"resolution_id"`
	} `json:"defaultclippingresolution"`
}

// DefaultResolution returns menu_structure.defaultclippingresolution.resolution_id.
// The menu structure may also arrive as a JSON-encoded string. Any missing or
// malformed level yields false.
func (ind Indicator) DefaultResolution() (string, bool) {
	raw := bytes.TrimSpace(ind.MenuStructure)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return "", false
		}
		raw = []byte(encoded)
	}

	var menu menuStructure
	if err := json.Unmarshal(raw, &menu); err != nil || menu.DefaultClippingResolution == nil {
		return "", false
	}
	value, ok := scalarString(menu.DefaultClippingResolution.ResolutionID)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// Scenario is a future-projection assumption offered for an indicator
type Scenario struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// UnmarshalJSON accepts the scenario value as a number or numeric string
func (s *Scenario) UnmarshalJSON(data []byte) error {
	var aux struct {
		Value json.RawMessage `json:"value"`
		Label string          `json:"label"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	value, err := parseOptionalInt(aux.Value)
	if err != nil {
		return fmt.Errorf("scenario value: %w", err)
	}
	if value == nil {
		return fmt.Errorf("scenario %q has no value", aux.Label)
	}
	s.Value = *value
	s.Label = aux.Label
	return nil
}

// scalarString renders a JSON string or number as a Go string
func scalarString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return strings.TrimSpace(s), true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", false
	}
	return n.String(), true
}

func parseOptionalInt(raw json.RawMessage) (*int, error) {
	value, ok := scalarString(raw)
	if !ok || value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		f, ferr := strconv.ParseFloat(value, 64)
		if ferr != nil || f != float64(int(f)) {
			return nil, fmt.Errorf("not an integer: %s", value)
		}
		n = int(f)
	}
	return &n, nil
}
