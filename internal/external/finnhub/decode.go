package finnhub

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// decodeJSONBody reads and decodes a response body, rejecting non-JSON
// content types. Free-tier providers serve HTML error pages under a
// 200 when overloaded.
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
