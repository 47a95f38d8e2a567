package helper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDef(t *testing.T) {
	require.Equal(t, uint(256), AtoiDef("256", uint(0)))
	require.Equal(t, 10, AtoiDef("x", 10))
	require.True(t, ParseBoolDef("true", false))
	require.True(t, ParseBoolDef("", true))
}
