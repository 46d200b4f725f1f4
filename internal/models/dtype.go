package models

import (
	"fmt"
	"strings"
)

// DType names the numeric precision of imported pixel values. One DType is
// configured per import call and applies to every file of that call.
type DType string

const (
	Float32 DType = "float32"
	Float64 DType = "float64"
)

// ParseDType maps a configuration string to a precision tag. The empty
// string means Float64.
func ParseDType(s string) (DType, error) {
	switch DType(strings.ToLower(strings.TrimSpace(s))) {
	case Float32:
		return Float32, nil
	case Float64, "":
		return Float64, nil
	}
	return "", &ConfigError{Key: "dtype", Reason: fmt.Sprintf("unknown precision %q (want float32 or float64)", s)}
}

// Cast quantizes v to the tagged precision. Payloads are stored in float64
// backing arrays either way; Float32 round-trips the value through float32
// so the stored number is exactly representable at the requested precision.
func (d DType) Cast(v float64) float64 {
	if d == Float32 {
		return float64(float32(v))
	}
	return v
}

func (d DType) String() string {
	if d == "" {
		return string(Float64)
	}
	return string(d)
}
