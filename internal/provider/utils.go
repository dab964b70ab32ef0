package provider

import (
	"fmt"
	"strings"
)

// containsAny reports whether s contains any of the needles, ignoring case
func containsAny(s string, needles ...string) bool {
	s = strings.ToLower(s)
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

func httpStatusMessage(code int) string {
	return fmt.Sprintf("IP provider returned HTTP %d", code)
}

func isRedirect(code int) bool {
	return code >= 300 && code < 400
}

func redirectMessage(code int) string {
	return fmt.Sprintf("IP provider answered with a redirect (HTTP %d)", code)
}
