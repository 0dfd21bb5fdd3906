package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Cleaner strips markup from free-text ledger fields.
type Cleaner struct {
	policy *bluemonday.Policy
}

func New() *Cleaner {
	return &Cleaner{policy: bluemonday.StrictPolicy()}
}

// Line cleans a single-line value and collapses whitespace.
func (c *Cleaner) Line(value string) string {
	return strings.Join(strings.Fields(c.text(value)), " ")
}

// Text cleans a multi-line value, keeping line breaks.
func (c *Cleaner) Text(value string) string {
	value = strings.ReplaceAll(value, "<br>", "\n")
	value = strings.ReplaceAll(value, "</p>", "\n")
	return strings.TrimSpace(c.text(value))
}

// OptionalLine is Line for nullable columns: blank results become nil.
func (c *Cleaner) OptionalLine(value string) *string {
	return nonBlank(c.Line(value))
}

func (c *Cleaner) OptionalText(value string) *string {
	return nonBlank(c.Text(value))
}

func (c *Cleaner) text(value string) string {
	return html.UnescapeString(c.policy.Sanitize(value))
}

func nonBlank(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
