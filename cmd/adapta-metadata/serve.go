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
	"log"
	"net/http"

	"github.com/adaptabrasil/adapta-metadata/service"
	"github.com/adaptabrasil/adapta-metadata/util"
	"github.com/gorilla/mux"
	cli "gopkg.in/urfave/cli.v1"
)

func serveAction(c *cli.Context) error {
	ctx := &service.Context{}
	portStr := util.GetPortStr()

	pipeline, err := newPipelineFunc(ctx, service.OptionsFromEnv(c.String("template"), ""))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	util.LogInfo(ctx, fmt.Sprintf("Serving metadata for %d indicators on %s", pipeline.Catalog.Len(), portStr))
	launchServerFunc(portStr, service.NewRouter(pipeline))
	return nil
}

var launchServerFunc = launchServer

func launchServer(portStr string, router *mux.Router) {
	server := http.Server{
		Addr:    portStr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}
