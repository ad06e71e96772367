package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librasys/librasys-server/internal/domain"
	domainerrors "github.com/librasys/librasys-server/internal/errors"
	"github.com/librasys/librasys-server/internal/service"
	"github.com/librasys/librasys-server/internal/store"
)

func bookRequest(title, author string, pages int) service.MediaRequest {
	return service.MediaRequest{
		Title: title,
		Kind:  domain.KindBook,
		Book:  &domain.BookDetails{Author: author, PageCount: pages},
	}
}

func TestCatalogAdd_RequiresManagementRights(t *testing.T) {
	s := setupStore(t)
	svc := setupCatalogService(t, s)

	_, err := svc.Add(context.Background(), asClient("alice"), bookRequest("Dune", "Frank Herbert", 412))
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	media, err := svc.Add(context.Background(), asAdmin("admin"), bookRequest("Dune", "Frank Herbert", 412))
	require.NoError(t, err)
	assert.Equal(t, int64(1), media.ID)
	assert.True(t, media.Available)
}

func TestCatalogAdd_RejectsMismatchedPayload(t *testing.T) {
	s := setupStore(t)
	svc := setupCatalogService(t, s)

	req := service.MediaRequest{
		Title: "Inception",
		Kind:  domain.KindVideo,
		Book:  &domain.BookDetails{Author: "Nobody", PageCount: 1},
	}

	_, err := svc.Add(context.Background(), asAdmin("admin"), req)
	assert.Error(t, err, "video with a book payload must be rejected")
}

func TestCatalogUpdate_KindIsImmutable(t *testing.T) {
	s := setupStore(t)
	svc := setupCatalogService(t, s)

	ctx := context.Background()
	media, err := svc.Add(ctx, asAdmin("admin"), bookRequest("Dune", "F. Herbert", 400))
	require.NoError(t, err)

	_, err = svc.Update(ctx, asAdmin("admin"), media.ID, service.MediaRequest{
		Title: "Dune",
		Kind:  domain.KindVideo,
		Video: &domain.VideoDetails{DurationMinutes: 155, Quality: "4K"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// Same-kind updates replace the record.
	updated, err := svc.Update(ctx, asAdmin("admin"), media.ID, bookRequest("Dune", "Frank Herbert", 412))
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", updated.Book.Author)
	assert.Equal(t, media.CreatedAt, updated.CreatedAt)
}

func TestCatalogUpdate_NotFound(t *testing.T) {
	s := setupStore(t)
	svc := setupCatalogService(t, s)

	_, err := svc.Update(context.Background(), asAdmin("admin"), 99, bookRequest("Ghost", "Nobody", 1))
	assert.ErrorIs(t, err, store.ErrMediaNotFound)
}

func TestCatalogSearch_CaseInsensitiveSubstring(t *testing.T) {
	s := setupStore(t)
	svc := setupCatalogService(t, s)

	ctx := context.Background()
	admin := asAdmin("admin")
	for _, title := range []string{"The Great Gatsby", "Great Expectations", "Dune"} {
		_, err := svc.Add(ctx, admin, bookRequest(title, "Author", 100))
		require.NoError(t, err)
	}

	results, err := svc.Search(ctx, "gReAt")
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Blank queries return everything.
	results, err = svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = svc.Search(ctx, "zebra")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCatalogToggle_AnyRoleCanBorrow(t *testing.T) {
	s := setupStore(t)
	svc := setupCatalogService(t, s)

	ctx := context.Background()
	media, err := svc.Add(ctx, asAdmin("admin"), bookRequest("Dune", "Frank Herbert", 412))
	require.NoError(t, err)

	toggled, err := svc.ToggleAvailability(ctx, asClient("alice"), media.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Available)

	toggled, err = svc.ToggleAvailability(ctx, asClient("alice"), media.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Available)
}

func TestCatalogDelete(t *testing.T) {
	s := setupStore(t)
	svc := setupCatalogService(t, s)

	ctx := context.Background()
	media, err := svc.Add(ctx, asAdmin("admin"), bookRequest("Dune", "Frank Herbert", 412))
	require.NoError(t, err)

	err = svc.Delete(ctx, asClient("alice"), media.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, asAdmin("admin"), media.ID))
	require.NoError(t, svc.Delete(ctx, asAdmin("admin"), media.ID)) // idempotent

	_, err = svc.Get(ctx, media.ID)
	assert.ErrorIs(t, err, store.ErrMediaNotFound)
}
