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

package extractor

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/adaptabrasil/adapta-metadata/catalog"
	"github.com/adaptabrasil/adapta-metadata/hierarchy"
	"github.com/adaptabrasil/adapta-metadata/model"
	"github.com/stretchr/testify/assert"
)

const testBaseURL = "https://example.localdomain"

// mockProber answers from a fixed table keyed by "year/scenario"
type mockProber struct {
	locations map[string]string
	requests  []model.DownloadRequest
}

func (p *mockProber) Location(req model.DownloadRequest) string {
	p.requests = append(p.requests, req)
	scenario := model.NoYear
	if req.Scenario != nil {
		scenario = fmt.Sprint(*req.Scenario)
	}
	return p.locations[req.Year+"/"+scenario]
}

func parent(id int) *int {
	return &id
}

func sampleIndicators() []model.Indicator {
	var years model.Years
	json.Unmarshal([]byte(`"2015,2020,2030,2050"`), &years)
	return []model.Indicator{
		{ID: 1, Level: 1, Name: "Recursos Hídricos", ImageURL: "https://example.localdomain/rh.png",
			MenuStructure: json.RawMessage(`{"defaultclippingresolution": {"resolution_id": "microrregiao"}}`)},
		{ID: 2, ParentID: parent(1), Level: 2, Name: "Seca"},
		{ID: 3, ParentID: parent(2), Level: 3, Name: "Índice de seca", Years: years,
			Scenarios:           []model.Scenario{{Value: 1, Label: "Otimista"}, {Value: 2, Label: "Pessimista"}},
			CompleteDescription: "Linha 1<br>Linha 2<BR/>  Linha 3<br />fim",
			SimpleDescription:   "Resumo"},
		{ID: 4, ParentID: parent(99), Level: 3, Name: "Órfão"},
	}
}

func newTestExtractor(prober model.LocationProber) (*Extractor, *catalog.Catalog) {
	cat := catalog.New(sampleIndicators())
	return &Extractor{
		Resolver:    hierarchy.New(cat),
		Prober:      prober,
		CurrentYear: 2024,
		BaseURL:     testBaseURL,
		Region:      "BR",
		Schema:      "adaptabrasil",
	}, cat
}

func TestExtract_FullRecord(t *testing.T) {
	// Mock
	prober := &mockProber{locations: map[string]string{
		"2015/null": "https://files.example.localdomain/3_2015.zip",
		"2020/null": "https://files.example.localdomain/3_2020.zip",
		"2030/1":    "https://files.example.localdomain/3_2030_1.zip",
		"2030/2":    "",
		"2050/1":    "not a url",
		"2050/2":    "https://files.example.localdomain/3_2050_2.zip",
	}}
	extractor, cat := newTestExtractor(prober)
	indicator, _ := cat.Lookup(3)

	// Tested code
	record := extractor.Extract(indicator)

	// Asserts
	assert.Equal(t, 3, record.IndicatorID)
	assert.Equal(t, "adaptabrasil3", record.FileIdentifier)
	assert.Equal(t, "adaptabrasil2", record.ParentIdentifier)
	assert.Equal(t, "AdaptaBrasil: Recursos Hídricos - Seca - Índice de seca", record.Title)
	assert.Equal(t, "Linha 1 Linha 2 Linha 3 fim", record.Abstract)
	assert.Equal(t, "https://example.localdomain/rh.png", record.OverviewURL)

	expected := []model.Link{
		{URL: testBaseURL + "/3/1/2020/null/BR/microrregiao", Protocol: model.PlatformLinkProtocol, Name: "Índice de seca", Description: "Resumo"},
		{URL: "https://files.example.localdomain/3_2015.zip", Protocol: model.DownloadProtocol(1), Name: DownloadLinkName, Description: "Ano 2015"},
		{URL: "https://files.example.localdomain/3_2020.zip", Protocol: model.DownloadProtocol(2), Name: DownloadLinkName, Description: "Ano 2020"},
		{URL: "https://files.example.localdomain/3_2030_1.zip", Protocol: model.DownloadProtocol(3), Name: DownloadLinkName, Description: "Ano 2030, cenário Otimista"},
		{URL: "https://files.example.localdomain/3_2050_2.zip", Protocol: model.DownloadProtocol(4), Name: DownloadLinkName, Description: "Ano 2050, cenário Pessimista"},
		{URL: testBaseURL + "/api/mapa-dados/BR/microrregiao/3/2020/null/adaptabrasil", Protocol: model.DataAPILinkProtocol, Name: DataAPILinkName, Description: DataAPILinkDescription},
	}
	assert.Equal(t, expected, record.Links)
	assert.Len(t, prober.requests, 6)
}

func TestExtract_ProbeRequests(t *testing.T) {
	prober := &mockProber{}
	extractor, cat := newTestExtractor(prober)
	indicator, _ := cat.Lookup(3)

	extractor.Extract(indicator)

	if assert.Len(t, prober.requests, 6) {
		assert.Nil(t, prober.requests[0].Scenario)
		assert.Equal(t, "2015", prober.requests[0].Year)
		assert.Equal(t, "microrregiao", prober.requests[0].Resolution)
		assert.Equal(t, "BR", prober.requests[0].Region)
		if assert.NotNil(t, prober.requests[3].Scenario) {
			assert.Equal(t, 2, *prober.requests[3].Scenario)
			assert.Equal(t, "2030", prober.requests[3].Year)
		}
	}
}

func TestExtract_IndexContinuesAcrossPhases(t *testing.T) {
	prober := &mockProber{locations: map[string]string{
		"2020/null": "https://files.example.localdomain/present.zip",
		"2050/1":    "https://files.example.localdomain/future.zip",
	}}
	extractor, cat := newTestExtractor(prober)
	indicator, _ := cat.Lookup(3)

	record := extractor.Extract(indicator)

	present, ok := record.LinkByProtocol(model.DownloadProtocol(1))
	assert.True(t, ok)
	assert.Equal(t, "https://files.example.localdomain/present.zip", present.URL)
	future, ok := record.LinkByProtocol(model.DownloadProtocol(2))
	assert.True(t, ok)
	assert.Equal(t, "https://files.example.localdomain/future.zip", future.URL)
	_, ok = record.LinkByProtocol(model.DownloadProtocol(3))
	assert.False(t, ok)
}

func TestExtract_NoDownloads(t *testing.T) {
	extractor, cat := newTestExtractor(&mockProber{})
	indicator, _ := cat.Lookup(3)

	record := extractor.Extract(indicator)

	if assert.Len(t, record.Links, 2) {
		assert.Equal(t, model.PlatformLinkProtocol, record.Links[0].Protocol)
		assert.Equal(t, model.DataAPILinkProtocol, record.Links[1].Protocol)
	}
}

func TestExtract_NoYearsAndMissingAncestors(t *testing.T) {
	prober := &mockProber{locations: map[string]string{
		"null/null": "http://files.example.localdomain/4.zip",
	}}
	extractor, cat := newTestExtractor(prober)
	indicator, _ := cat.Lookup(4)

	record := extractor.Extract(indicator)

	assert.Equal(t, "AdaptaBrasil: Órfão", record.Title)
	assert.Equal(t, "", record.OverviewURL)
	assert.Equal(t, "adaptabrasil99", record.ParentIdentifier)
	assert.Equal(t, testBaseURL+"/4/1/null/null/BR/municipio", record.Links[0].URL)
	download, ok := record.LinkByProtocol(model.DownloadProtocol(1))
	if assert.True(t, ok) {
		assert.Equal(t, "http://files.example.localdomain/4.zip", download.URL)
		assert.Equal(t, "Dados atuais", download.Description)
	}
	assert.Equal(t, testBaseURL+"/api/mapa-dados/BR/municipio/4/null/null/adaptabrasil", record.Links[2].URL)
}

func TestExtract_RootHasNoParentIdentifier(t *testing.T) {
	extractor, cat := newTestExtractor(&mockProber{})
	indicator, _ := cat.Lookup(1)

	record := extractor.Extract(indicator)

	assert.Equal(t, "adaptabrasil1", record.FileIdentifier)
	assert.Equal(t, "", record.ParentIdentifier)
}

func TestExtract_Defaults(t *testing.T) {
	cat := catalog.New(sampleIndicators())
	extractor := &Extractor{Resolver: hierarchy.New(cat), Prober: &mockProber{}, BaseURL: testBaseURL}
	indicator, _ := cat.Lookup(2)

	record := extractor.Extract(indicator)

	assert.Equal(t, model.DefaultSchema+"2", record.FileIdentifier)
	assert.Contains(t, record.Links[0].URL, "/"+model.DefaultRegion+"/")
}

func TestNormalizeAbstract(t *testing.T) {
	assert.Equal(t, "a b", NormalizeAbstract("a<br>b"))
	assert.Equal(t, "a b c", NormalizeAbstract("  a <Br/> b\n\tc "))
	assert.Equal(t, "", NormalizeAbstract(""))
}

func TestIsAbsoluteHTTPURL(t *testing.T) {
	assert.True(t, isAbsoluteHTTPURL("https://a.localdomain/x.zip"))
	assert.True(t, isAbsoluteHTTPURL("http://a.localdomain"))
	assert.False(t, isAbsoluteHTTPURL(""))
	assert.False(t, isAbsoluteHTTPURL("/relative/path"))
	assert.False(t, isAbsoluteHTTPURL("ftp://a.localdomain/x.zip"))
	assert.False(t, isAbsoluteHTTPURL("https://"))
	assert.False(t, isAbsoluteHTTPURL("Chave 'location' não encontrada no JSON."))
}
