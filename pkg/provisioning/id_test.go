package provisioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	id, err := Parse("  42 ")
	require.NoError(t, err)
	assert.Equal(t, ID("42"), id)
	assert.Equal(t, "42", id.String())

	_, err = Parse("   ")
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestID_Value(t *testing.T) {
	tests := []struct {
		id   ID
		want any
	}{
		{id: "42", want: int64(42)},
		{id: "-7", want: int64(-7)},
		{id: "A-42", want: "A-42"},
		{id: "99999999999999999999", want: "99999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.id.Value())
		})
	}
}
