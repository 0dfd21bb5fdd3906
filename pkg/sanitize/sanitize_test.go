package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineStripsMarkupAndKeepsApostrophes(t *testing.T) {
	c := New()

	assert.Equal(t, "O'Brien Jr.", c.Line("  <b>O'Brien</b>   Jr. "))
	assert.Equal(t, "bold text", c.Line("<em>bold</em> text"))
	assert.Equal(t, "Tom & Jerry", c.Line("Tom &amp; Jerry"))
}

func TestTextKeepsLineBreaks(t *testing.T) {
	c := New()

	assert.Equal(t, "first\nsecond", c.Text("<p>first</p>second"))
}

func TestOptionalBlankIsNil(t *testing.T) {
	c := New()

	assert.Nil(t, c.OptionalLine("   "))
	assert.Nil(t, c.OptionalText("<i></i>"))
	if v := c.OptionalLine("3A"); assert.NotNil(t, v) {
		assert.Equal(t, "3A", *v)
	}
}
