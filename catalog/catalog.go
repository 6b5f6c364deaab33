// Copyright 2024, The AdaptaBrasil Metadata Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/adaptabrasil/adapta-metadata/model"
	"github.com/adaptabrasil/adapta-metadata/util"
)

var httpRequestKnownJSONWithObject = util.ReqByObjJSON

// Fetch retrieves the full indicator catalog. Transport failures, non-2xx
// responses and a body that is not a JSON array are errors; a single
// malformed indicator is logged and skipped.
func Fetch(ctx util.LogContext, catalogURL string) ([]model.Indicator, error) {
	var raw []json.RawMessage
	start := time.Now()

	util.LogAudit(ctx, util.LogAuditInput{Actor: "catalog/Fetch", Action: "GET", Actee: catalogURL, Message: "Requesting indicator catalog", Severity: util.INFO})
	if _, err := httpRequestKnownJSONWithObject(util.HTTPClient(), "GET", catalogURL, nil, &raw); err != nil {
		return nil, util.LogSimpleErr(ctx, fmt.Sprintf("Failed to retrieve indicator catalog from %v.", catalogURL), err)
	}

	indicators := make([]model.Indicator, 0, len(raw))
	for i, item := range raw {
		var indicator model.Indicator
		if err := json.Unmarshal(item, &indicator); err != nil {
			util.LogAlert(ctx, fmt.Sprintf("Skipping malformed catalog entry #%d: %v", i, err))
			continue
		}
		indicators = append(indicators, indicator)
	}

	util.LogAudit(ctx, util.LogAuditInput{
		Actor: catalogURL, Action: "GET response", Actee: "catalog/Fetch",
		Message:  fmt.Sprintf("Received %d indicators; duration: %fs", len(indicators), time.Since(start).Seconds()),
		Severity: util.INFO,
	})
	return indicators, nil
}

// Catalog is an immutable id -> indicator lookup built once per run
type Catalog struct {
	indicators []model.Indicator
	byID       map[int]int
}

// New builds the lookup. When an id repeats, the first occurrence wins.
func New(indicators []model.Indicator) *Catalog {
	c := &Catalog{
		indicators: make([]model.Indicator, 0, len(indicators)),
		byID:       make(map[int]int, len(indicators)),
	}
	for _, indicator := range indicators {
		if _, exists := c.byID[indicator.ID]; exists {
			util.LogAlert(&util.BasicLogContext{}, fmt.Sprintf("Ignoring duplicate indicator id %d", indicator.ID))
			continue
		}
		c.byID[indicator.ID] = len(c.indicators)
		c.indicators = append(c.indicators, indicator)
	}
	return c
}

// Lookup returns the indicator with the given id
func (c *Catalog) Lookup(id int) (model.Indicator, bool) {
	if c == nil {
		return model.Indicator{}, false
	}
	inx, ok := c.byID[id]
	if !ok {
		return model.Indicator{}, false
	}
	return c.indicators[inx], true
}

// Indicators returns the indicators in catalog order
func (c *Catalog) Indicators() []model.Indicator {
	if c == nil {
		return nil
	}
	return append([]model.Indicator(nil), c.indicators...)
}

// Len returns the number of distinct indicators
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.indicators)
}
