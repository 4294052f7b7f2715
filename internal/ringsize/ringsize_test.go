package ringsize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextExp2(t *testing.T) {
	cases := []struct {
		x, want int
	}{
		{1, 2},
		{2, 4},
		{3, 4},
		{4, 8},
		{63, 64},
		{64, 128},
	}
	for _, c := range cases {
		require.Equal(t, c.want, NextExp2(c.x), "x=%d", c.x)
	}
}
