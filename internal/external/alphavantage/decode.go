package alphavantage

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// decodeJSONBody reads and decodes a response body, rejecting non-JSON
// content types (HTML error pages from the free tier).
func decodeJSONBody(resp *http.Response, out interface{}) error {
	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "json") {
		return fmt.Errorf("non-JSON response (content-type %q)", contentType)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
