package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Namsan Seoul Tower", CleanText("  Namsan \n\t Seoul   Tower \n"))
	assert.Equal(t, "", CleanText("   \n\t  "))
	assert.Equal(t, "already clean", CleanText("already clean"))
}

func TestParseCoordinate(t *testing.T) {
	v := ParseCoordinate("37.5512")
	require.NotNil(t, v)
	assert.InDelta(t, 37.5512, *v, 1e-9)

	assert.Nil(t, ParseCoordinate(""))
	assert.Nil(t, ParseCoordinate("  "))
	assert.Nil(t, ParseCoordinate("not-a-number"))

	neg := ParseCoordinate(" -122.419 ")
	require.NotNil(t, neg)
	assert.InDelta(t, -122.419, *neg, 1e-9)
}

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "fan@example.com", SanitizeEmail("  Fan@Example.COM "))
}

func TestStripHTMLTags(t *testing.T) {
	in := "N Seoul Tower<br/>was featured in <b>multiple</b> dramas."
	assert.Equal(t, "N Seoul Tower was featured in multiple dramas.", StripHTMLTags(in))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "a ve...", Truncate("a very long name", 7))
	assert.Equal(t, "한국", Truncate("한국", 5))
}
