package dataset

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// containsMarkup reports whether the strict policy would alter raw, meaning raw
// carries something that parses as an HTML tag or comment.
func containsMarkup(raw string) bool {
	return html.UnescapeString(markupSanitizer().Sanitize(raw)) != raw
}

func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		markupPolicy = bluemonday.StrictPolicy()
	})
	return markupPolicy
}
