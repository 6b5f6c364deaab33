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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/adaptabrasil/adapta-metadata/model"
	"github.com/adaptabrasil/adapta-metadata/service"
	"github.com/fatih/color"
	cli "gopkg.in/urfave/cli.v1"
)

var newPipelineFunc = service.NewPipeline

var stdout io.Writer = os.Stdout

// consoleProber reports every download probe on the console
type consoleProber struct {
	prober model.LocationProber
	out    io.Writer
}

func (p consoleProber) Location(req model.DownloadRequest) string {
	location := p.prober.Location(req)
	scenario := model.NoYear
	if req.Scenario != nil {
		scenario = fmt.Sprint(*req.Scenario)
	}
	if location == "" {
		fmt.Fprintf(p.out, "%s %d ano %s cenário %s: sem download\n", color.RedString("✗"), req.IndicatorID, req.Year, scenario)
	} else {
		fmt.Fprintf(p.out, "%s %d ano %s cenário %s: %s\n", color.GreenString("✓"), req.IndicatorID, req.Year, scenario, location)
	}
	return location
}

func generateAction(c *cli.Context) error {
	ctx := &service.Context{}
	opts := service.OptionsFromEnv(c.String("template"), c.String("schema"))

	pipeline, err := newPipelineFunc(ctx, opts)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	pipeline.Extractor.Prober = consoleProber{prober: pipeline.Extractor.Prober, out: stdout}

	summary, err := pipeline.Generate(c.String("output"), c.Int("min-level"), c.Int("limit"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if summary.Invalid > 0 {
		fmt.Fprintf(stdout, "%s %d arquivos não validaram contra o schema\n", color.YellowString("!"), summary.Invalid)
	}
	fmt.Fprintf(stdout, "%d arquivos XML foram gerados em %s\n", summary.Generated, summary.OutputDir)
	return nil
}

func versionAction(*cli.Context) {
	fmt.Fprintln(stdout, version)
}
