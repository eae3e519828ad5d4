package l1

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestControllerRef(t *testing.T) {
	ref := ControllerRef{Type: "jrk", ID: "abc"}
	require.Equal(t, "jrk/abc", ref.Name())
	require.True(t, ref.IsValid())
	require.False(t, ControllerRef{Type: "jrk"}.IsValid())
	require.False(t, ControllerRef{ID: "abc"}.IsValid())
}
