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

package download

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/adaptabrasil/adapta-metadata/model"
	"github.com/adaptabrasil/adapta-metadata/util"
)

// DefaultFormat is the archive format requested from the geometry API
const DefaultFormat = "SHPz"

var httpRequestKnownJSONWithObject = util.ReqByObjJSON

// Client asks the geometry API where the data file for an indicator slice
// can be downloaded
type Client struct {
	BaseURL string
	Format  string
	HTTP    *http.Client
	Context util.LogContext
}

// NewClient creates a client for the platform at baseURL
func NewClient(baseURL string, ctx util.LogContext) *Client {
	if ctx == nil {
		ctx = &util.BasicLogContext{}
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Format:  DefaultFormat,
		HTTP:    util.HTTPClient(),
		Context: ctx,
	}
}

type locationResponse struct {
	Location interface{} `json:"location"`
}

// URL returns the probe URL for req
func (c *Client) URL(req model.DownloadRequest) string {
	scenario := model.NoYear
	if req.Scenario != nil {
		scenario = strconv.Itoa(*req.Scenario)
	}
	year := req.Year
	if year == "" {
		year = model.NoYear
	}
	format := c.Format
	if format == "" {
		format = DefaultFormat
	}
	return fmt.Sprintf("%s/api/geometria/data/%d/%s/%s/%s/%s/%s",
		c.BaseURL, req.IndicatorID, req.Region, scenario, year, req.Resolution, format)
}

// Location returns the download location reported for req, or an empty
// string when the slice is unavailable or the answer is unusable
func (c *Client) Location(req model.DownloadRequest) string {
	probeURL := c.URL(req)
	client := c.HTTP
	if client == nil {
		client = util.HTTPClient()
	}

	var response locationResponse
	if _, err := httpRequestKnownJSONWithObject(client, "GET", probeURL, nil, &response); err != nil {
		util.LogAlert(c.Context, fmt.Sprintf("No download for indicator %d at %s: %v", req.IndicatorID, probeURL, err))
		return ""
	}

	location, ok := response.Location.(string)
	if !ok || strings.TrimSpace(location) == "" {
		util.LogAlert(c.Context, fmt.Sprintf("Download probe %s answered without a location", probeURL))
		return ""
	}
	util.LogInfo(c.Context, fmt.Sprintf("Download for indicator %d found at %s", req.IndicatorID, location))
	return strings.TrimSpace(location)
}
