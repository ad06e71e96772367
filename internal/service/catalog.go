package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/librasys/librasys-server/internal/domain"
	domainerrors "github.com/librasys/librasys-server/internal/errors"
	"github.com/librasys/librasys-server/internal/store"
	"github.com/librasys/librasys-server/internal/validation"
)

// CatalogService manages the media catalog.
type CatalogService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// MediaRequest contains a catalog item's editable fields. The payload
// matching Kind must be set; the others must be absent.
type MediaRequest struct {
	Title string      `json:"title" validate:"required,min=1"`
	Kind  domain.Kind `json:"kind" validate:"required,oneof=book video audio ebook audiobook"`

	Book      *domain.BookDetails      `json:"book,omitempty"`
	Video     *domain.VideoDetails     `json:"video,omitempty"`
	Audio     *domain.AudioDetails     `json:"audio,omitempty"`
	Ebook     *domain.EbookDetails     `json:"ebook,omitempty"`
	Audiobook *domain.AudiobookDetails `json:"audiobook,omitempty"`
}

func (r MediaRequest) toMedia() *domain.Media {
	return &domain.Media{
		Title:     r.Title,
		Kind:      r.Kind,
		Available: true,
		Book:      r.Book,
		Video:     r.Video,
		Audio:     r.Audio,
		Ebook:     r.Ebook,
		Audiobook: r.Audiobook,
	}
}

// List returns the full catalog in ID order.
func (s *CatalogService) List(ctx context.Context) ([]*domain.Media, error) {
	items := make([]*domain.Media, 0)
	for media, err := range s.store.ListMedia(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list media: %w", err)
		}
		items = append(items, media)
	}
	return items, nil
}

// Search returns catalog items whose title contains the query,
// case-insensitively. An empty query returns the full catalog.
func (s *CatalogService) Search(ctx context.Context, query string) ([]*domain.Media, error) {
	needle := strings.ToLower(strings.TrimSpace(query))

	items := make([]*domain.Media, 0)
	for media, err := range s.store.ListMedia(ctx) {
		if err != nil {
			return nil, fmt.Errorf("search media: %w", err)
		}
		if needle == "" || strings.Contains(strings.ToLower(media.Title), needle) {
			items = append(items, media)
		}
	}
	return items, nil
}

// Get returns a single catalog item.
func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Media, error) {
	return s.store.GetMedia(ctx, id)
}

// Add creates a new catalog item. Requires catalog management rights.
func (s *CatalogService) Add(ctx context.Context, actor Actor, req MediaRequest) (*domain.Media, error) {
	if err := actor.require(domain.CapabilityManageCatalog); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	media := req.toMedia()
	if err := media.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.AddMedia(ctx, media); err != nil {
		return nil, fmt.Errorf("add media: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Catalog item added",
			"id", media.ID,
			"title", media.Title,
			"kind", media.Kind,
			"by", actor.Username,
		)
	}

	return media, nil
}

// Update replaces an item's editable fields. The kind is fixed at creation;
// changing it would silently orphan the old variant payload.
func (s *CatalogService) Update(ctx context.Context, actor Actor, id int64, req MediaRequest) (*domain.Media, error) {
	if err := actor.require(domain.CapabilityManageCatalog); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.store.GetMedia(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Kind != existing.Kind {
		return nil, domainerrors.Validationf("kind cannot be changed from %s to %s", existing.Kind, req.Kind)
	}

	media := req.toMedia()
	media.ID = existing.ID
	media.Available = existing.Available
	media.CreatedAt = existing.CreatedAt

	if err := media.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.UpdateMedia(ctx, media); err != nil {
		return nil, fmt.Errorf("update media: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Catalog item updated", "id", media.ID, "by", actor.Username)
	}

	return media, nil
}

// Delete removes a catalog item. Deleting a missing item succeeds.
func (s *CatalogService) Delete(ctx context.Context, actor Actor, id int64) error {
	if err := actor.require(domain.CapabilityManageCatalog); err != nil {
		return err
	}

	if err := s.store.DeleteMedia(ctx, id); err != nil {
		return fmt.Errorf("delete media: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Catalog item deleted", "id", id, "by", actor.Username)
	}

	return nil
}

// ToggleAvailability flips an item between available and borrowed.
// Any authenticated account may borrow or return.
func (s *CatalogService) ToggleAvailability(ctx context.Context, actor Actor, id int64) (*domain.Media, error) {
	if err := actor.require(domain.CapabilityBorrow); err != nil {
		return nil, err
	}

	media, err := s.store.ToggleMediaAvailability(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("Catalog item availability toggled",
			"id", media.ID,
			"available", media.Available,
			"by", actor.Username,
		)
	}

	return media, nil
}
