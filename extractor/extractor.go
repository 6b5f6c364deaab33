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

// Package extractor derives metadata records from catalog indicators
package extractor

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/adaptabrasil/adapta-metadata/hierarchy"
	"github.com/adaptabrasil/adapta-metadata/model"
	"github.com/adaptabrasil/adapta-metadata/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// Link names and descriptions written into the records
const (
	DownloadLinkName       = "Download do arquivo SHP dos dados"
	DataAPILinkName        = "Exibir a tela de um determinado indicador"
	DataAPILinkDescription = "Obtem os dados de um indicador associados a um recorte e uma resolução."
)

var lineBreaks = regexp.MustCompile(`(?i)<br\s*/?>`)

// Extractor turns indicators into metadata records. Resolver and Prober are
// required; the remaining fields fall back to the platform defaults.
type Extractor struct {
	Resolver    *hierarchy.Resolver
	Prober      model.LocationProber
	CurrentYear int
	BaseURL     string
	Region      string
	Schema      string
	Extent      geojson.BoundingBox
	Context     util.LogContext
}

// Extract derives the metadata record for ind. It never fails: unavailable
// downloads are logged and left out of the link list.
func (e *Extractor) Extract(ind model.Indicator) model.MetadataRecord {
	region, schema := e.region(), e.schema()
	record := model.MetadataRecord{
		IndicatorID:    ind.ID,
		FileIdentifier: schema + strconv.Itoa(ind.ID),
		Title:          e.Resolver.HierarchyTitle(ind.ID),
		Abstract:       NormalizeAbstract(ind.CompleteDescription),
		OverviewURL:    e.Resolver.OverviewImage(ind.ID),
		Extent:         e.Extent,
	}
	if ind.ParentID != nil {
		record.ParentIdentifier = schema + strconv.Itoa(*ind.ParentID)
	}

	resolution := e.Resolver.DefaultResolution(ind.ID)
	present, future := ClassifyYears(ind.Years.Tokens(), e.CurrentYear)
	representative := RepresentativeYear(present)

	record.Links = append(record.Links, model.Link{
		URL:         fmt.Sprintf("%s/%d/1/%s/null/%s/%s", e.BaseURL, ind.ID, representative, region, resolution),
		Protocol:    model.PlatformLinkProtocol,
		Name:        ind.DisplayTitle(),
		Description: ind.SimpleDescription,
	})

	index := 0
	addDownload := func(req model.DownloadRequest, description string) {
		location := e.Prober.Location(req)
		if !isAbsoluteHTTPURL(location) {
			if location != "" {
				util.LogAlert(e.context(), fmt.Sprintf("Ignoring download location %q for indicator %d: not an absolute http(s) URL", location, ind.ID))
			}
			return
		}
		index++
		record.Links = append(record.Links, model.Link{
			URL:         location,
			Protocol:    model.DownloadProtocol(index),
			Name:        DownloadLinkName,
			Description: description,
		})
	}

	for _, year := range present {
		addDownload(model.DownloadRequest{IndicatorID: ind.ID, Region: region, Year: year, Resolution: resolution},
			presentDescription(year))
	}
	for _, year := range future {
		for _, scenario := range ind.Scenarios {
			code := scenario.Value
			addDownload(model.DownloadRequest{IndicatorID: ind.ID, Region: region, Scenario: &code, Year: year, Resolution: resolution},
				fmt.Sprintf("Ano %s, cenário %s", year, ScenarioLabel(code)))
		}
	}

	record.Links = append(record.Links, model.Link{
		URL:         fmt.Sprintf("%s/api/mapa-dados/%s/%s/%d/%s/null/%s", e.BaseURL, region, resolution, ind.ID, representative, schema),
		Protocol:    model.DataAPILinkProtocol,
		Name:        DataAPILinkName,
		Description: DataAPILinkDescription,
	})

	util.LogInfo(e.context(), fmt.Sprintf("Derived record for indicator %d with %d download links", ind.ID, index))
	return record
}

// NormalizeAbstract replaces HTML line breaks with spaces and collapses runs
// of whitespace
func NormalizeAbstract(description string) string {
	return strings.Join(strings.Fields(lineBreaks.ReplaceAllString(description, " ")), " ")
}

func presentDescription(year string) string {
	if year == model.NoYear {
		return "Dados atuais"
	}
	return "Ano " + year
}

func isAbsoluteHTTPURL(location string) bool {
	if location == "" {
		return false
	}
	parsed, err := url.Parse(location)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func (e *Extractor) region() string {
	if e.Region == "" {
		return model.DefaultRegion
	}
	return e.Region
}

func (e *Extractor) schema() string {
	if e.Schema == "" {
		return model.DefaultSchema
	}
	return e.Schema
}

func (e *Extractor) context() util.LogContext {
	if e.Context == nil {
		e.Context = &util.BasicLogContext{}
	}
	return e.Context
}
