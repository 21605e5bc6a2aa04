package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTab(t *testing.T) {
	tab, ok := ParseTab(" Retouch ")
	require.True(t, ok)
	require.Equal(t, TabRetouch, tab)

	tab, ok = ParseTab("profile")
	require.True(t, ok)
	require.Equal(t, TabGallery, tab)

	_, ok = ParseTab("settings")
	require.False(t, ok)
}

func TestParseCategory_ByKeyAndLabel(t *testing.T) {
	c, ok := ParseCategory("pants")
	require.True(t, ok)
	require.Equal(t, CategoryPants, c)

	c, ok = ParseCategory("обувь")
	require.True(t, ok)
	require.Equal(t, CategoryShoes, c)

	_, ok = ParseCategory("gloves")
	require.False(t, ok)
}

func TestFeaturesFor_HostTabs(t *testing.T) {
	for _, f := range FeaturesFor(TabRetouch) {
		require.Equal(t, TabRetouch, f.Host)
	}
	require.Len(t, FeaturesFor(TabRetouch), 3)
	require.Empty(t, FeaturesFor(TabAssets))

	info, ok := LookupFeature(FeatureGroupShot)
	require.True(t, ok)
	require.True(t, info.ID.IsOverlay())
}

func TestShootSessionClone_IsDeep(t *testing.T) {
	s := NewShootSession("id", ShootModeOutfit)
	ref := ImageRef("a")
	s.Captured = &ref
	s.Outfit[CategoryOuter] = ref

	c := s.Clone()
	c.Outfit[CategoryHat] = "b"
	*c.Captured = "changed"

	require.Len(t, s.Outfit, 1)
	require.Equal(t, ImageRef("a"), *s.Captured)
}

func TestOutfitComplete(t *testing.T) {
	o := Outfit{}
	for _, c := range Categories() {
		require.False(t, o.Complete())
		o[c] = ImageRef(c)
	}
	require.True(t, o.Complete())
}

func TestFlowError_Unwrap(t *testing.T) {
	err := &FlowError{Reason: ReasonGenerationFailed, Err: ErrGenerationFailed}
	require.True(t, errors.Is(err, ErrGenerationFailed))
	require.Contains(t, err.Error(), "generation_failed")
}
