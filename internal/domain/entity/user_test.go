package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser_DefaultNavigation(t *testing.T) {
	u := NewUser(1, 10)
	require.Equal(t, TabHome, u.Navigation.ActiveTab)
	require.Empty(t, u.Navigation.SelectedFeature)
	require.Equal(t, OverlayNone, u.Navigation.Overlay)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, int64(10), u.ChatID)
}
