package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" sports ")
	assert.NoError(t, err)
	assert.Equal(t, CategorySports, c)

	c, err = ParseCategory("Music")
	assert.NoError(t, err)
	assert.Equal(t, CategoryMusic, c)
}

func TestParseCategory_Unknown(t *testing.T) {
	_, err := ParseCategory("knitting")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = ParseCategory("")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
