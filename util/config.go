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

package util

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment variables
const (
	ADAPTA_BASE_URL      = "ADAPTA_BASE_URL"
	ADAPTA_HIERARCHY_URL = "ADAPTA_HIERARCHY_URL"
	ADAPTA_REGION        = "ADAPTA_REGION"
	ADAPTA_REGION_BBOX   = "ADAPTA_REGION_BBOX"
	ADAPTA_SCHEMA        = "ADAPTA_SCHEMA"
	ADAPTA_HTTP_TIMEOUT  = "ADAPTA_HTTP_TIMEOUT"
	LOG_LEVEL            = "LOG_LEVEL"
	LOG_FORMAT           = "LOG_FORMAT"
	PORT                 = "PORT"
)

const (
	defaultBaseURL     = "https://sistema.adaptabrasil.mcti.gov.br"
	hierarchyPath      = "/api/hierarquia/adaptabrasil"
	defaultRegion      = "BR"
	defaultRegionBbox  = "-73.99,-33.75,-34.79,5.27"
	defaultSchema      = "adaptabrasil"
	defaultHTTPTimeout = 60 * time.Second
	defaultPort        = "8080"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
)

var config = newConfig()

func newConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault(ADAPTA_BASE_URL, defaultBaseURL)
	v.SetDefault(ADAPTA_REGION, defaultRegion)
	v.SetDefault(ADAPTA_REGION_BBOX, defaultRegionBbox)
	v.SetDefault(ADAPTA_SCHEMA, defaultSchema)
	v.SetDefault(ADAPTA_HTTP_TIMEOUT, defaultHTTPTimeout)
	v.SetDefault(LOG_LEVEL, defaultLogLevel)
	v.SetDefault(LOG_FORMAT, defaultLogFormat)
	v.SetDefault(PORT, defaultPort)
	return v
}

// GetBaseURL returns the AdaptaBrasil platform root, without a trailing slash
func GetBaseURL() string {
	return strings.TrimRight(config.GetString(ADAPTA_BASE_URL), "/")
}

// GetHierarchyURL returns the indicator catalog URL. When ADAPTA_HIERARCHY_URL
// is not set it is derived from the base URL.
func GetHierarchyURL() string {
	if hierarchyURL := config.GetString(ADAPTA_HIERARCHY_URL); hierarchyURL != "" {
		return hierarchyURL
	}
	LogInfo(&BasicLogContext{}, "Did not get explicit hierarchy URL from the environment. Using implied URL based on base URL.")
	return GetBaseURL() + hierarchyPath
}

// GetRegion returns the region ("recorte") used for pages and downloads
func GetRegion() string {
	return config.GetString(ADAPTA_REGION)
}

// GetRegionBbox returns the region bounding box as "west,south,east,north";
// an empty string disables the geographic extent
func GetRegionBbox() string {
	return config.GetString(ADAPTA_REGION_BBOX)
}

// GetSchema returns the identifier namespace prefixed to indicator ids
func GetSchema() string {
	return config.GetString(ADAPTA_SCHEMA)
}

// GetHTTPTimeout returns the timeout for every remote request
func GetHTTPTimeout() time.Duration {
	timeout := config.GetDuration(ADAPTA_HTTP_TIMEOUT)
	if timeout <= 0 {
		LogAlert(&BasicLogContext{}, "Invalid ADAPTA_HTTP_TIMEOUT; using default of "+defaultHTTPTimeout.String())
		return defaultHTTPTimeout
	}
	return timeout
}

// GetLogLevel returns the LOG_LEVEL environment setting
func GetLogLevel() string {
	return config.GetString(LOG_LEVEL)
}

// GetLogFormat returns the LOG_FORMAT environment setting
func GetLogFormat() string {
	return config.GetString(LOG_FORMAT)
}

// GetPortStr returns the listen address for the metadata server
func GetPortStr() string {
	return ":" + config.GetString(PORT)
}
