package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/librasys/librasys-server/internal/domain"
	"github.com/librasys/librasys-server/internal/service"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listMedia",
		Method:      http.MethodGet,
		Path:        "/api/v1/media",
		Summary:     "List catalog",
		Description: "Returns catalog items, optionally filtered by a case-insensitive title substring",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListMedia)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMedia",
		Method:      http.MethodGet,
		Path:        "/api/v1/media/{id}",
		Summary:     "Get catalog item",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetMedia)

	huma.Register(s.api, huma.Operation{
		OperationID: "addMedia",
		Method:      http.MethodPost,
		Path:        "/api/v1/media",
		Summary:     "Add catalog item",
		Description: "Creates a catalog item. Requires admin rights.",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddMedia)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateMedia",
		Method:      http.MethodPut,
		Path:        "/api/v1/media/{id}",
		Summary:     "Update catalog item",
		Description: "Replaces a catalog item's editable fields. The kind cannot change. Requires admin rights.",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateMedia)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteMedia",
		Method:      http.MethodDelete,
		Path:        "/api/v1/media/{id}",
		Summary:     "Delete catalog item",
		Description: "Removes a catalog item. Requires admin rights.",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteMedia)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleMediaAvailability",
		Method:      http.MethodPost,
		Path:        "/api/v1/media/{id}/toggle",
		Summary:     "Borrow or return an item",
		Description: "Flips an item between available and borrowed",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleToggleMedia)
}

// === DTOs ===

// MediaRequest is the request body for creating or updating a catalog item.
// Exactly one of the variant payloads must be set, matching kind.
type MediaRequest struct {
	Title string `json:"title" doc:"Item title"`
	Kind  string `json:"kind" doc:"Media kind: book, video, audio, ebook, or audiobook"`

	Book      *domain.BookDetails      `json:"book,omitempty" doc:"Book fields (kind=book)"`
	Video     *domain.VideoDetails     `json:"video,omitempty" doc:"Video fields (kind=video)"`
	Audio     *domain.AudioDetails     `json:"audio,omitempty" doc:"Audio fields (kind=audio)"`
	Ebook     *domain.EbookDetails     `json:"ebook,omitempty" doc:"Ebook fields (kind=ebook)"`
	Audiobook *domain.AudiobookDetails `json:"audiobook,omitempty" doc:"Audiobook fields (kind=audiobook)"`
}

// MediaResponse contains a catalog item in API responses.
type MediaResponse struct {
	ID        int64     `json:"id" doc:"Item ID"`
	Title     string    `json:"title" doc:"Item title"`
	Kind      string    `json:"kind" doc:"Media kind"`
	Available bool      `json:"available" doc:"True when on the shelf, false when borrowed"`
	CreatedAt time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update timestamp"`

	Book      *domain.BookDetails      `json:"book,omitempty"`
	Video     *domain.VideoDetails     `json:"video,omitempty"`
	Audio     *domain.AudioDetails     `json:"audio,omitempty"`
	Ebook     *domain.EbookDetails     `json:"ebook,omitempty"`
	Audiobook *domain.AudiobookDetails `json:"audiobook,omitempty"`
}

// MediaInput wraps a media request for Huma.
type MediaInput struct {
	AuthenticatedInput
	Body MediaRequest
}

// MediaIDInput identifies a catalog item by path parameter.
type MediaIDInput struct {
	AuthenticatedInput
	ID int64 `path:"id" doc:"Item ID"`
}

// MediaUpdateInput combines a path ID with a media request.
type MediaUpdateInput struct {
	AuthenticatedInput
	ID   int64 `path:"id" doc:"Item ID"`
	Body MediaRequest
}

// ListMediaInput carries the optional search query.
type ListMediaInput struct {
	AuthenticatedInput
	Query string `query:"q" doc:"Case-insensitive title substring filter"`
}

// MediaOutput wraps a single catalog item for Huma.
type MediaOutput struct {
	Body MediaResponse
}

// MediaListOutput wraps a list of catalog items for Huma.
type MediaListOutput struct {
	Body struct {
		Items []MediaResponse `json:"items" doc:"Catalog items"`
		Total int             `json:"total" doc:"Number of items returned"`
	}
}

// === Handlers ===

func (s *Server) handleListMedia(ctx context.Context, input *ListMediaInput) (*MediaListOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	items, err := s.services.Catalog.Search(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	out := &MediaListOutput{}
	out.Body.Items = make([]MediaResponse, 0, len(items))
	for _, media := range items {
		out.Body.Items = append(out.Body.Items, mapMediaResponse(media))
	}
	out.Body.Total = len(out.Body.Items)
	return out, nil
}

func (s *Server) handleGetMedia(ctx context.Context, input *MediaIDInput) (*MediaOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	media, err := s.services.Catalog.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &MediaOutput{Body: mapMediaResponse(media)}, nil
}

func (s *Server) handleAddMedia(ctx context.Context, input *MediaInput) (*MediaOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	media, err := s.services.Catalog.Add(ctx, actor, mapMediaRequest(input.Body))
	if err != nil {
		return nil, err
	}

	return &MediaOutput{Body: mapMediaResponse(media)}, nil
}

func (s *Server) handleUpdateMedia(ctx context.Context, input *MediaUpdateInput) (*MediaOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	media, err := s.services.Catalog.Update(ctx, actor, input.ID, mapMediaRequest(input.Body))
	if err != nil {
		return nil, err
	}

	return &MediaOutput{Body: mapMediaResponse(media)}, nil
}

func (s *Server) handleDeleteMedia(ctx context.Context, input *MediaIDInput) (*MessageOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Catalog.Delete(ctx, actor, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Deleted"}}, nil
}

func (s *Server) handleToggleMedia(ctx context.Context, input *MediaIDInput) (*MediaOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	media, err := s.services.Catalog.ToggleAvailability(ctx, actor, input.ID)
	if err != nil {
		return nil, err
	}

	return &MediaOutput{Body: mapMediaResponse(media)}, nil
}

func mapMediaRequest(req MediaRequest) service.MediaRequest {
	return service.MediaRequest{
		Title:     req.Title,
		Kind:      domain.Kind(req.Kind),
		Book:      req.Book,
		Video:     req.Video,
		Audio:     req.Audio,
		Ebook:     req.Ebook,
		Audiobook: req.Audiobook,
	}
}

func mapMediaResponse(media *domain.Media) MediaResponse {
	return MediaResponse{
		ID:        media.ID,
		Title:     media.Title,
		Kind:      string(media.Kind),
		Available: media.Available,
		CreatedAt: media.CreatedAt,
		UpdatedAt: media.UpdatedAt,
		Book:      media.Book,
		Video:     media.Video,
		Audio:     media.Audio,
		Ebook:     media.Ebook,
		Audiobook: media.Audiobook,
	}
}
