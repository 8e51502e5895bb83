package oracle

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sijms/go-ora/v2/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ormkit/adapters/adapter"
)

func TestMapErrorKnownCodes(t *testing.T) {
	d := &driver{}

	tests := []struct {
		name     string
		code     int
		expected string
	}{
		{"unique violation", 1, "unique-constraint-violation"},
		{"missing table", 942, "table-does-not-exist"},
		{"not null violation", 1400, "null-constraint-violation"},
		{"foreign key violation", 2291, "foreign-key-constraint-violation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := d.MapError(&network.OracleError{ErrCode: tt.code})
			assert.Equal(t, tt.expected, mapped.Kind())
		})
	}
}

func TestMapErrorUnmappedCodePassesThrough(t *testing.T) {
	d := &driver{}

	mapped := d.MapError(&network.OracleError{ErrCode: 54, ErrMsg: "resource busy and acquire with NOWAIT specified"})
	oraErr, ok := mapped.(*adapter.OracleError)
	require.True(t, ok)
	assert.Equal(t, 54, oraErr.Code)
	assert.Equal(t, "resource busy and acquire with NOWAIT specified", oraErr.Message)
}

func TestMapErrorWrappedOracleError(t *testing.T) {
	d := &driver{}
	native := fmt.Errorf("exec failed: %w", &network.OracleError{ErrCode: 942})

	assert.Equal(t, "table-does-not-exist", d.MapError(native).Kind())
}

func TestMapErrorGenericFallback(t *testing.T) {
	d := &driver{}

	mapped := d.MapError(errors.New("tcp dial timeout"))
	generic, ok := mapped.(*adapter.GenericError)
	require.True(t, ok)
	assert.NotEmpty(t, generic.ID)
	assert.Equal(t, "tcp dial timeout", generic.Message)
}
