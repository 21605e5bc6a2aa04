package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"brandcam-bot/internal/domain/entity"
)

func TestViewStateController_SelectTabThenBack(t *testing.T) {
	for _, tab := range entity.Tabs() {
		t.Run(string(tab), func(t *testing.T) {
			c := NewViewStateController(entity.NewNavigationState())
			c.SelectTab(tab)
			active := c.State().ActiveTab

			c.GoBack()
			require.Equal(t, active, c.State().ActiveTab)
			require.Empty(t, c.State().SelectedFeature)
			require.Equal(t, entity.OverlayNone, c.State().Overlay)
		})
	}
}

func TestViewStateController_ShootOpensMenuWithoutChangingTab(t *testing.T) {
	c := NewViewStateController(entity.NavigationState{ActiveTab: entity.TabRetouch})

	require.True(t, c.SelectTab(entity.TabShoot))
	require.Equal(t, entity.TabRetouch, c.State().ActiveTab)
	require.Equal(t, entity.OverlayShootMenu, c.State().Overlay)
}

func TestViewStateController_SelectTabClearsFeature(t *testing.T) {
	c := NewViewStateController(entity.NavigationState{ActiveTab: entity.TabRetouch})
	require.True(t, c.NavigateToFeature(entity.FeatureOutfitMatch))
	require.Equal(t, "Outfit Match", c.Title())

	require.True(t, c.SelectTab(entity.TabHome))
	require.Empty(t, c.State().SelectedFeature)
	require.Equal(t, "BrandCam", c.Title())
}

func TestViewStateController_FeatureRules(t *testing.T) {
	c := NewViewStateController(entity.NewNavigationState())

	// С чужой вкладки функция не открывается
	require.False(t, c.NavigateToFeature(entity.FeatureOutfitMatch))
	require.False(t, c.NavigateToFeature("no-such-feature"))

	require.True(t, c.NavigateToFeature(entity.FeaturePoseControl))
	require.Equal(t, entity.FeaturePoseControl, c.State().SelectedFeature)
	require.Equal(t, entity.TabHome, c.State().ActiveTab)

	c.SelectTab(entity.TabAssets)
	require.False(t, c.NavigateToFeature(entity.FeaturePoseControl))
}

func TestViewStateController_GroupShotKeepsTabAndFeature(t *testing.T) {
	c := NewViewStateController(entity.NewNavigationState())
	require.True(t, c.NavigateToFeature(entity.FeatureModelStudio))
	c.GoBack()

	require.True(t, c.NavigateToFeature(entity.FeatureGroupShot))
	st := c.State()
	require.Equal(t, entity.OverlayGroupShot, st.Overlay)
	require.Equal(t, entity.TabHome, st.ActiveTab)
	require.Empty(t, st.SelectedFeature)

	require.True(t, c.CloseFlow())
	require.Equal(t, entity.OverlayNone, c.State().Overlay)
}

func TestViewStateController_ChooseShootMode(t *testing.T) {
	c := NewViewStateController(entity.NewNavigationState())

	require.False(t, c.ChooseShootMode(entity.ShootModeModel), "menu is not open")

	c.SelectTab(entity.TabShoot)
	require.False(t, c.ChooseShootMode("panorama"))
	require.True(t, c.ChooseShootMode(entity.ShootModeOutfit))

	st := c.State()
	require.Equal(t, entity.OverlayCamera, st.Overlay)
	require.Equal(t, entity.ShootModeOutfit, st.ShootMode)
	require.True(t, c.ShowBack())
}

func TestViewStateController_TabsIgnoredDuringFlow(t *testing.T) {
	c := NewViewStateController(entity.NewNavigationState())
	c.SelectTab(entity.TabShoot)
	c.ChooseShootMode(entity.ShootModeProduct)

	before := c.State()
	for _, tab := range entity.Tabs() {
		require.False(t, c.SelectTab(tab))
	}
	require.Equal(t, before, c.State())

	require.True(t, c.GoBack())
	require.Equal(t, entity.OverlayNone, c.State().Overlay)
	require.Empty(t, c.State().ShootMode)
}

func TestViewStateController_UnknownTabIsNoop(t *testing.T) {
	c := NewViewStateController(entity.NewNavigationState())
	require.False(t, c.SelectTab("settings"))
	require.Equal(t, entity.NewNavigationState(), c.State())
	require.False(t, c.GoBack())
}

func TestViewStateController_RetouchTitle(t *testing.T) {
	c := NewViewStateController(entity.NavigationState{ActiveTab: entity.TabShoot})
	require.Equal(t, entity.TabHome, c.State().ActiveTab)

	c.SelectTab(entity.TabRetouch)
	require.Equal(t, "AI Toolbox", c.Title())
	require.False(t, c.ShowBack())
}
