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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

var (
	httpClient     *http.Client
	httpClientOnce sync.Once
)

// HTTPClient returns the process-wide HTTP client, configured from the environment
func HTTPClient() *http.Client {
	httpClientOnce.Do(func() {
		httpClient = &http.Client{Timeout: GetHTTPTimeout()}
	})
	return httpClient
}

// ReqByObjJSON performs a request using client, marshaling input (if non-nil)
// as the JSON request body and unmarshaling the JSON response into output.
// A non-2xx status is returned as an HTTPErr; the response is returned
// whenever one was received.
func ReqByObjJSON(client *http.Client, method, url string, input interface{}, output interface{}) (*http.Response, error) {
	var body io.Reader
	if input != nil {
		data, err := json.Marshal(input)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	request, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", url, err)
	}
	if input != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return response, fmt.Errorf("read response from %s: %w", url, err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return response, HTTPErr{Status: response.StatusCode, Message: fmt.Sprintf("%s %s returned %s", method, url, response.Status)}
	}
	if output == nil {
		return response, nil
	}
	if err = json.Unmarshal(responseBody, output); err != nil {
		return response, Error{
			LogMsg:     "Failed to unmarshal response: " + err.Error(),
			SimpleMsg:  fmt.Sprintf("%s returned an unexpected response", url),
			Response:   string(responseBody),
			URL:        url,
			HTTPStatus: response.StatusCode,
			cause:      err,
		}
	}
	return response, nil
}
