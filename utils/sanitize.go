package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textSanitizer = bluemonday.StrictPolicy()

// policyEntities decodes the entities the policy emits for plain text.
// Angle brackets stay escaped so decoded output never carries markup.
var policyEntities = strings.NewReplacer("&amp;", "&", "&#39;", "'", "&#34;", `"`, "&#13;", "\r")

// SanitizeText strips every HTML tag from input and returns trimmed plain text.
func SanitizeText(input string) string {
	return strings.TrimSpace(policyEntities.Replace(textSanitizer.Sanitize(input)))
}
