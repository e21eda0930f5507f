package helpers_test

import (
	"testing"

	"github.com/convox/ftprelay/pkg/helpers"
	"github.com/stretchr/testify/require"
)

func TestCoalesceString(t *testing.T) {
	tests := []struct {
		values []string
		want   string
	}{
		{[]string{"memory", "disk"}, "memory"},
		{[]string{"", "disk"}, "disk"},
		{[]string{"", "", "/tmp"}, "/tmp"},
		{[]string{"", ""}, ""},
		{nil, ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, helpers.CoalesceString(tt.values...))
	}
}
