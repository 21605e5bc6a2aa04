package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"brandcam-bot/internal/domain/entity"
)

func TestMemoryUserRepository_GetCreatesAndSaves(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.TabHome, u.Navigation.ActiveTab)

	u.Navigation.ActiveTab = entity.TabRetouch
	require.NoError(t, repo.Save(ctx, u))

	again, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.TabRetouch, again.Navigation.ActiveTab)
}

func TestMemoryUserRepository_GetReturnsCopy(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	u.Navigation.ActiveTab = entity.TabAssets

	again, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.TabHome, again.Navigation.ActiveTab)
}

func TestMemoryUserRepository_UpdateNavigation(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, 2, 20)
	require.NoError(t, err)

	nav := entity.NavigationState{ActiveTab: entity.TabGallery}
	require.NoError(t, repo.UpdateNavigation(ctx, 2, nav))
	require.NoError(t, repo.UpdateNavigation(ctx, 99, nav))

	u, err := repo.Get(ctx, 2, 20)
	require.NoError(t, err)
	require.Equal(t, entity.TabGallery, u.Navigation.ActiveTab)
}
