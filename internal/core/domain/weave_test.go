package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDiagnostic(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"first||  second", "first\nsecond"},
		{"a||b||c", "a b c"},
		{"Foo.cs:10||  RPC method||must end with ServerRpc", "Foo.cs:10\nRPC method must end with ServerRpc"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDiagnostic(tt.in))
	}
}

func TestWeaveFailure(t *testing.T) {
	err := NewWeaveFailure("bad||  rpc")

	assert.Equal(t, "bad\nrpc", err.Error())
	assert.True(t, errors.Is(err, ErrWeaveFailed))
	assert.True(t, IsWeaveError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsWeaveError(errors.New("exit status 1")))

	assert.True(t, WeaveResult{Err: err}.Failed())
	assert.False(t, WeaveResult{Warnings: []string{"w"}}.Failed())
}
