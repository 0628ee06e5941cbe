// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package newsfetch

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// uddgPattern captures the percent-encoded target URL inside the
// provider's redirect wrapper.
var uddgPattern = regexp.MustCompile(`uddg=(https?%3A%2F%2F[^&]+)`)

// DecodeRedirect unwraps the provider's redirect link and returns the
// real article URL. The wrapped link carries the target percent-encoded
// in a uddg query parameter.
func DecodeRedirect(wrapped string) (string, error) {
	m := uddgPattern.FindStringSubmatch(wrapped)
	if m == nil {
		return "", fmt.Errorf("no uddg parameter in link %q", wrapped)
	}

	decoded, err := url.QueryUnescape(m[1])
	if err != nil {
		return "", fmt.Errorf("decoding wrapped link: %w", err)
	}
	if !strings.HasPrefix(decoded, "http://") && !strings.HasPrefix(decoded, "https://") {
		return "", fmt.Errorf("decoded link %q is not an HTTP URL", decoded)
	}
	return decoded, nil
}
