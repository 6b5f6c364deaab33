package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// YearsKind tags the shape the years field arrived in
type YearsKind int

// Shapes of the years field
const (
	YearsAbsent YearsKind = iota
	YearsSingle
	YearsList
)

// Years is the years field of an indicator: absent (null or missing), a
// single comma-separated string, or a list of year tokens
type Years struct {
	Kind   YearsKind
	Single string
	List   []string
}

// UnmarshalJSON implements json.Unmarshaler
func (y *Years) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*y = Years{Kind: YearsAbsent}
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Years{Kind: YearsSingle, Single: s}
	case data[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		list := make([]string, 0, len(items))
		for _, item := range items {
			token, ok := scalarString(item)
			if !ok {
				continue
			}
			list = append(list, token)
		}
		*y = Years{Kind: YearsList, List: list}
	default:
		// a bare number is a single year
		token, ok := scalarString(data)
		if !ok {
			return fmt.Errorf("unsupported years value: %s", string(data))
		}
		*y = Years{Kind: YearsSingle, Single: token}
	}
	return nil
}

// MarshalJSON renders the years back in the shape they arrived in
func (y Years) MarshalJSON() ([]byte, error) {
	switch y.Kind {
	case YearsSingle:
		return json.Marshal(y.Single)
	case YearsList:
		return json.Marshal(y.List)
	default:
		return []byte("null"), nil
	}
}

// Tokens normalizes the field into trimmed, non-empty, de-duplicated year
// tokens in source order. An absent or empty field yields [NoYear].
func (y Years) Tokens() []string {
	var raw []string
	switch y.Kind {
	case YearsSingle:
		raw = strings.Split(y.Single, ",")
	case YearsList:
		for _, item := range y.List {
			raw = append(raw, strings.Split(item, ",")...)
		}
	}

	seen := make(map[string]bool, len(raw))
	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		token = strings.TrimSpace(token)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		return []string{NoYear}
	}
	return tokens
}
