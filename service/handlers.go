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

package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/adaptabrasil/adapta-metadata/iso19139"
	"github.com/adaptabrasil/adapta-metadata/model"
	"github.com/adaptabrasil/adapta-metadata/util"
	"github.com/gorilla/mux"
)

// NewRouter routes the metadata endpoints of p
func NewRouter(p *Pipeline) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte("OK"))
	})
	router.Handle("/indicators/{id}", NewRecordHandler(p)).Methods("GET")
	router.Handle("/indicators/{id}/metadata.xml", NewMetadataHandler(p)).Methods("GET")
	return router
}

func lookupIndicator(p *Pipeline, ctx util.LogContext, w http.ResponseWriter, r *http.Request) (model.Indicator, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		util.HTTPError(r, w, ctx, fmt.Sprintf("Indicator id %v is not a number.", vars["id"]), http.StatusBadRequest)
		return model.Indicator{}, false
	}
	indicator, ok := p.Catalog.Lookup(id)
	if !ok {
		util.HTTPError(r, w, ctx, fmt.Sprintf("Indicator %d was not found.", id), http.StatusNotFound)
		return model.Indicator{}, false
	}
	return indicator, true
}

// RecordHandler is a handler for /indicators/{id}
// @Title recordHandler
// @Description returns the metadata record derived for an indicator
// @Param   id   path   int   true   "The indicator id"
// @Success 200 {object}  model.MetadataRecord
// @Failure 404 {object}  string
// @Router /indicators/{id} [get]
type RecordHandler struct {
	Pipeline *Pipeline
	Context  Context
}

// NewRecordHandler creates a new handler serving records from p
func NewRecordHandler(p *Pipeline) *RecordHandler {
	return &RecordHandler{Pipeline: p}
}

// ServeHTTP implements the http.Handler interface for the RecordHandler type
func (h RecordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	indicator, ok := lookupIndicator(h.Pipeline, &h.Context, w, r)
	if !ok {
		return
	}

	record := h.Pipeline.Extractor.Extract(indicator)
	body, err := json.Marshal(record)
	if err != nil {
		message := fmt.Sprintf("Failed to marshal record for indicator %d", indicator.ID)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// MetadataHandler is a handler for /indicators/{id}/metadata.xml
// @Title metadataHandler
// @Description returns the filled ISO 19139 document for an indicator
// @Param   id   path   int   true   "The indicator id"
// @Success 200 {object}  string
// @Failure 404 {object}  string
// @Router /indicators/{id}/metadata.xml [get]
type MetadataHandler struct {
	Pipeline *Pipeline
	Context  Context
}

// NewMetadataHandler creates a new handler serving documents from p
func NewMetadataHandler(p *Pipeline) *MetadataHandler {
	return &MetadataHandler{Pipeline: p}
}

// ServeHTTP implements the http.Handler interface for the MetadataHandler type
func (h MetadataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	indicator, ok := lookupIndicator(h.Pipeline, &h.Context, w, r)
	if !ok {
		return
	}

	_, doc, err := h.Pipeline.Build(indicator)
	if err != nil {
		message := fmt.Sprintf("Failed to fill metadata for indicator %d", indicator.ID)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	body, err := iso19139.Marshal(doc)
	if err != nil {
		message := fmt.Sprintf("Failed to serialize metadata for indicator %d", indicator.ID)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(body)
}
