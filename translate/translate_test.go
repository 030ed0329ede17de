package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLocales(DefaultLocale)

	assert.Equal("register 7 out of range", From("register %v out of range", 7))
	assert.Equal("plain", From("plain"))
}

func TestSetLocales_Empty(t *testing.T) {
	assert := assert.New(t)

	SetLocales()
	assert.NotNil(printer)
	assert.Equal("ip 3", From("ip %v", 3))
}
