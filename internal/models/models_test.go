package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDType(t *testing.T) {
	d, err := ParseDType("float32")
	require.NoError(t, err)
	assert.Equal(t, Float32, d)

	d, err = ParseDType(" Float64 ")
	require.NoError(t, err)
	assert.Equal(t, Float64, d)

	d, err = ParseDType("")
	require.NoError(t, err)
	assert.Equal(t, Float64, d)

	_, err = ParseDType("int8")
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
}

func TestDTypeCast(t *testing.T) {
	assert.Equal(t, float64(float32(0.1)), Float32.Cast(0.1))
	assert.Equal(t, 0.1, Float64.Cast(0.1))
	// The zero value behaves as float64.
	assert.Equal(t, 0.1, DType("").Cast(0.1))
	assert.Equal(t, "float64", DType("").String())
}

func TestMetaWithDefaults(t *testing.T) {
	m := Meta{Name: "000"}.WithDefaults()
	assert.Equal(t, DefaultUnit, m.Unit)

	m = Meta{Unit: "nm"}.WithDefaults()
	assert.Equal(t, "nm", m.Unit)
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, (&ConfigError{Key: "dtype", Reason: "bad"}).Error(), "dtype")
	assert.Contains(t, (&FormatError{Ext: ".bmp"}).Error(), ".bmp")

	dec := &DecodeError{Path: "/data/a.txt", Attempts: 4, Err: errors.New("no numeric rows")}
	assert.Contains(t, dec.Error(), "/data/a.txt")
	assert.Contains(t, dec.Error(), "4 header-skip attempts")
	assert.ErrorContains(t, dec, "no numeric rows")

	tok := &TokenError{Path: "/data/odd.tif", Position: 3, Tokens: 1}
	assert.Contains(t, tok.Error(), "odd.tif")
}
