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

// Package service wires the catalog, extractor and template merge into the
// generation pipeline and the HTTP handlers that expose it
package service

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adaptabrasil/adapta-metadata/catalog"
	"github.com/adaptabrasil/adapta-metadata/download"
	"github.com/adaptabrasil/adapta-metadata/extractor"
	"github.com/adaptabrasil/adapta-metadata/hierarchy"
	"github.com/adaptabrasil/adapta-metadata/iso19139"
	"github.com/adaptabrasil/adapta-metadata/model"
	"github.com/adaptabrasil/adapta-metadata/util"
	"github.com/beevik/etree"
	"github.com/venicegeo/geojson-go/geojson"
)

var fetchCatalog = catalog.Fetch

// Options configure a pipeline
type Options struct {
	TemplatePath string
	SchemaPath   string
	BaseURL      string
	HierarchyURL string
	Region       string
	Schema       string
	RegionBbox   string
	CurrentYear  int
}

// OptionsFromEnv returns options populated from the environment
func OptionsFromEnv(templatePath, schemaPath string) Options {
	return Options{
		TemplatePath: templatePath,
		SchemaPath:   schemaPath,
		BaseURL:      util.GetBaseURL(),
		HierarchyURL: util.GetHierarchyURL(),
		Region:       util.GetRegion(),
		Schema:       util.GetSchema(),
		RegionBbox:   util.GetRegionBbox(),
		CurrentYear:  time.Now().Year(),
	}
}

// Pipeline turns catalog indicators into filled metadata documents
type Pipeline struct {
	Catalog   *catalog.Catalog
	Extractor *extractor.Extractor
	Template  *iso19139.Template
	Validator *iso19139.Validator
	Context   util.LogContext
}

// NewPipeline loads the template (and schema, when given) and fetches the
// indicator catalog. Any failure here is fatal to the run.
func NewPipeline(ctx util.LogContext, opts Options) (*Pipeline, error) {
	template, err := iso19139.LoadTemplate(opts.TemplatePath)
	if err != nil {
		return nil, util.LogSimpleErr(ctx, fmt.Sprintf("Failed to load template %v.", opts.TemplatePath), err)
	}
	template.Context = ctx

	var validator *iso19139.Validator
	if opts.SchemaPath != "" {
		if validator, err = iso19139.LoadValidator(opts.SchemaPath); err != nil {
			return nil, util.LogSimpleErr(ctx, fmt.Sprintf("Failed to load schema %v.", opts.SchemaPath), err)
		}
	}

	indicators, err := fetchCatalog(ctx, opts.HierarchyURL)
	if err != nil {
		return nil, err
	}
	cat := catalog.New(indicators)
	util.LogInfo(ctx, fmt.Sprintf("Catalog holds %d indicators", cat.Len()))

	var extent geojson.BoundingBox
	if opts.RegionBbox != "" {
		if extent, err = geojson.NewBoundingBox(opts.RegionBbox); err != nil {
			util.LogAlert(ctx, fmt.Sprintf("Ignoring invalid region bounding box %q: %v", opts.RegionBbox, err))
			extent = nil
		}
	}

	return &Pipeline{
		Catalog: cat,
		Extractor: &extractor.Extractor{
			Resolver:    hierarchy.New(cat),
			Prober:      download.NewClient(opts.BaseURL, ctx),
			CurrentYear: opts.CurrentYear,
			BaseURL:     opts.BaseURL,
			Region:      opts.Region,
			Schema:      opts.Schema,
			Extent:      extent,
			Context:     ctx,
		},
		Template:  template,
		Validator: validator,
		Context:   ctx,
	}, nil
}

// Build derives the record for ind and merges it into a fresh template copy
func (p *Pipeline) Build(ind model.Indicator) (model.MetadataRecord, *etree.Document, error) {
	record := p.Extractor.Extract(ind)
	doc, err := p.Template.Fill(record)
	if err != nil {
		return record, nil, err
	}
	return record, doc, nil
}

// Summary counts the outcome of a generation run
type Summary struct {
	Generated int
	Skipped   int
	Failed    int
	Invalid   int
	OutputDir string
}

// Generate writes one {id}.xml file per indicator with level >= minLevel to
// outputDir, in catalog order. A positive limit stops after that many files.
func (p *Pipeline) Generate(outputDir string, minLevel, limit int) (Summary, error) {
	summary := Summary{OutputDir: outputDir}
	for _, ind := range p.Catalog.Indicators() {
		if ind.Level < minLevel {
			summary.Skipped++
			continue
		}

		_, doc, err := p.Build(ind)
		if err != nil {
			util.LogAlert(p.Context, fmt.Sprintf("Skipping indicator %d: %v", ind.ID, err))
			summary.Failed++
			continue
		}

		if p.Validator != nil {
			if err = p.Validator.Validate(doc); err != nil {
				summary.Invalid++
				util.LogAlert(p.Context, fmt.Sprintf("Metadata for indicator %d is not schema-valid: %v", ind.ID, err))
				for _, violation := range iso19139.Violations(err) {
					util.LogInfo(p.Context, violation)
				}
			}
		}

		path := filepath.Join(outputDir, strconv.Itoa(ind.ID)+".xml")
		if err = iso19139.WriteFile(doc, path); err != nil {
			return summary, util.LogSimpleErr(p.Context, fmt.Sprintf("Failed to write %v.", path), err)
		}
		summary.Generated++

		if limit > 0 && summary.Generated >= limit {
			util.LogInfo(p.Context, fmt.Sprintf("Reached the limit of %d files", limit))
			break
		}
	}

	util.LogAudit(p.Context, util.LogAuditInput{
		Actor: "service/Generate", Action: "write", Actee: outputDir,
		Message:  fmt.Sprintf("Generated %d, skipped %d, failed %d, invalid %d", summary.Generated, summary.Skipped, summary.Failed, summary.Invalid),
		Severity: util.INFO,
	})
	return summary, nil
}
