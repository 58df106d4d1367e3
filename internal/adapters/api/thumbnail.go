package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/thumlify/thumlify-cli/internal/domain"
	"github.com/thumlify/thumlify-cli/internal/ports"
)

type ThumbnailClient struct {
	Client *Client
}

var _ ports.ThumbnailAPI = (*ThumbnailClient)(nil)

type thumbnailPayload struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Style       string    `json:"style"`
	AspectRatio string    `json:"aspect_ratio"`
	ColorScheme string    `json:"color_scheme"`
	UserPrompt  string    `json:"user_prompt"`
	PromptUsed  string    `json:"prompt_used"`
	Model       string    `json:"model"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p thumbnailPayload) toThumbnail() domain.Thumbnail {
	return domain.Thumbnail{
		ID:          domain.ThumbnailID(p.ID),
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Style:       p.Style,
		AspectRatio: p.AspectRatio,
		ColorScheme: p.ColorScheme,
		UserPrompt:  p.UserPrompt,
		PromptUsed:  p.PromptUsed,
		Model:       domain.GenerationModel(p.Model),
		CreatedAt:   p.CreatedAt,
	}
}

type generateResponse struct {
	Thumbnail *thumbnailPayload `json:"thumbnail"`
}

// getThumbnailResponse tolerates both wrapped and bare payloads; the server
// has shipped both shapes.
type getThumbnailResponse struct {
	Data *thumbnailPayload `json:"data"`
	thumbnailPayload
}

type listThumbnailsResponse struct {
	Thumbnails []thumbnailPayload `json:"thumbnails"`
}

type optimizeResponse struct {
	Optimized string `json:"optimized"`
}

func (c *ThumbnailClient) Generate(ctx context.Context, spec domain.GenerationSpec) (domain.Thumbnail, error) {
	body := map[string]string{
		"title":        spec.Title,
		"style":        spec.Style,
		"aspect_ratio": spec.AspectRatio,
		"color_scheme": spec.ColorScheme,
		"user_prompt":  spec.UserPrompt,
		"prompt_used":  spec.PromptUsed,
		"priceModel":   string(spec.Model),
	}

	var payload generateResponse
	if err := c.Client.do(ctx, http.MethodPost, "/api/thumbnail/generate", body, &payload); err != nil {
		return domain.Thumbnail{}, err
	}
	if payload.Thumbnail == nil || payload.Thumbnail.ID == "" {
		return domain.Thumbnail{}, errors.New("generate response missing thumbnail")
	}
	return payload.Thumbnail.toThumbnail(), nil
}

func (c *ThumbnailClient) GetByID(ctx context.Context, id domain.ThumbnailID) (domain.Thumbnail, error) {
	var payload getThumbnailResponse
	if err := c.Client.do(ctx, http.MethodGet, "/api/thumbnail/generate/"+string(id), nil, &payload); err != nil {
		if apiErr, ok := IsAPIError(err); ok && apiErr.Status == http.StatusNotFound {
			return domain.Thumbnail{}, domain.ErrNotFound
		}
		return domain.Thumbnail{}, err
	}

	result := payload.thumbnailPayload
	if payload.Data != nil {
		result = *payload.Data
	}
	if result.ID == "" {
		return domain.Thumbnail{}, domain.ErrNotFound
	}
	return result.toThumbnail(), nil
}

func (c *ThumbnailClient) OptimizePrompt(ctx context.Context, title, description, style string) (string, error) {
	body := map[string]string{
		"title":       title,
		"description": description,
		"style":       style,
	}

	var payload optimizeResponse
	if err := c.Client.do(ctx, http.MethodPost, "/api/thumbnail/optimize-prompt", body, &payload); err != nil {
		return "", err
	}
	if payload.Optimized == "" {
		return "", errors.New("optimize response missing prompt")
	}
	return payload.Optimized, nil
}

func (c *ThumbnailClient) ListMine(ctx context.Context) ([]domain.Thumbnail, error) {
	var payload listThumbnailsResponse
	if err := c.Client.do(ctx, http.MethodGet, "/api/thumbnail/mine", nil, &payload); err != nil {
		return nil, err
	}

	thumbnails := make([]domain.Thumbnail, 0, len(payload.Thumbnails))
	for _, p := range payload.Thumbnails {
		thumbnails = append(thumbnails, p.toThumbnail())
	}
	return thumbnails, nil
}
