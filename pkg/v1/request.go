package v1

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"time"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// TryRequest sends a GET request and returns transport errors instead of failing the stage.
// It is meant for polling endpoints that may not be up yet.
func TryRequest(url string) (Response, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read body from %s: %w", url, err)
	}

	header := make(map[string]string)
	for k, v := range resp.Header {
		if len(v) > 0 {
			header[k] = v[0]
		}
	}
	return Response{
		StatusCode: resp.StatusCode,
		Body:       string(body),
		Header:     header,
	}, nil
}

// SendRequest sends a HTTP GET request to the specified URL.
// We use a different name than "Request" because "Request" is already a type.
func SendRequest(url string) Response {
	RecordAction(fmt.Sprintf("Request: %s", url), func() { SendRequest(url) })
	if IsDryRun() {
		return Response{Header: map[string]string{}}
	}
	Logf(LogTypeRequest, "Sending GET request to: %s", url)
	resp, err := TryRequest(url)
	if err != nil {
		Fail("Request to %s failed: %v", url, err)
	}
	Log(LogTypeRequest, fmt.Sprintf("Received status %d from %s", resp.StatusCode, url), fmt.Sprintf("Body: %s\nHeaders: %v", resp.Body, resp.Header))
	return resp
}

// ExpectStatusCode asserts the response status.
func ExpectStatusCode(resp Response, code int) {
	if resp.StatusCode != code {
		Fail("ExpectStatusCode failed: expected %d, got %d", code, resp.StatusCode)
	}
	Logf(LogTypeExpect, "Status %d - PASSED", code)
}

// ExpectHeader asserts that the response has the expected header.
func ExpectHeader(resp Response, key, value string) {
	if got, ok := resp.Header[key]; !ok || got != value {
		Fail("ExpectHeader failed: expected %s=%s, got %s", key, value, got)
	}
	Logf(LogTypeExpect, "Header '%s' == '%s' - PASSED", key, value)
}

// ExpectJsonBody asserts that the response body matches the expected JSON.
// Both sides are unmarshaled before comparison.
func ExpectJsonBody(resp Response, expectedJson interface{}) {
	var got interface{}
	if err := json.Unmarshal([]byte(resp.Body), &got); err != nil {
		Fail("ExpectJsonBody failed: response body is not valid JSON: %v. Body: %s", err, resp.Body)
	}

	var expected interface{}
	if s, ok := expectedJson.(string); ok {
		if err := json.Unmarshal([]byte(s), &expected); err != nil {
			Fail("ExpectJsonBody failed: expectedJson string is not valid JSON: %v", err)
		}
	} else {
		expected = expectedJson
	}

	if !reflect.DeepEqual(got, expected) {
		Fail("ExpectJsonBody failed:\nExpected: %v\nGot:      %v", expected, got)
	}
	Log(LogTypeExpect, "JSON body matches expected value - PASSED", "")
}
