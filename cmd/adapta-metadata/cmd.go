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
	cli "gopkg.in/urfave/cli.v1"
)

var version = "1.0.0"

var templateFlag = cli.StringFlag{
	Name:  "template, t",
	Value: "input.xml",
	Usage: "ISO 19139 XML template to fill",
}

var commands = cli.Commands{
	cli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   "Generate one metadata XML file per indicator",
		Action:  generateAction,
		Flags: []cli.Flag{
			templateFlag,
			cli.StringFlag{
				Name:  "output, o",
				Value: "output_xml_files",
				Usage: "Directory the XML files are written to",
			},
			cli.IntFlag{
				Name:  "min-level",
				Value: 2,
				Usage: "Skip indicators below this hierarchy level",
			},
			cli.IntFlag{
				Name:  "limit",
				Value: 0,
				Usage: "Stop after this many files (0 means no limit)",
			},
			cli.StringFlag{
				Name:  "schema",
				Usage: "XSD used to validate every generated file",
			},
		},
	},
	cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Launch the metadata webserver",
		Action:  serveAction,
		Flags:   []cli.Flag{templateFlag},
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the metadata CLI",
		Action:  versionAction,
	},
}

func createCliApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = "adapta-metadata"
	app.Usage = "Populate ISO 19115/19139 metadata for AdaptaBrasil indicators"
	app.Version = version
	app.Commands = commands
	return
}
