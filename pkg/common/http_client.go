package common

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// Gateway calls must not hang a checkout forever; an expired timeout is
// treated by callers as a communication failure.
var httpClient = &http.Client{Timeout: 15 * time.Second}

// SetHTTPTimeout overrides the shared client timeout. Used by tests and by
// main when GATEWAY_TIMEOUT_SECONDS is set.
func SetHTTPTimeout(d time.Duration) {
	httpClient.Timeout = d
}

// Post sends a JSON POST request to the given URL. The raw response body and
// status code are always returned; when out is non-nil the body is also
// decoded into it. A decode failure on a non-empty body is reported so
// callers never act on a half-read gateway response.
func Post(url string, payload interface{}, headers map[string]string, out interface{}) (int, []byte, error) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return do(req, out)
}

// Get sends a GET request to the given URL with the given headers.
func Get(url string, headers map[string]string, out interface{}) (int, []byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return do(req, out)
}

func do(req *http.Request, out interface{}) (int, []byte, error) {
	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, body, err
		}
	}

	return resp.StatusCode, body, nil
}
