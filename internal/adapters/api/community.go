package api

import (
	"context"
	"net/http"

	"github.com/thumlify/thumlify-cli/internal/domain"
	"github.com/thumlify/thumlify-cli/internal/ports"
)

type CommunityClient struct {
	Client *Client
}

var _ ports.CommunityAPI = (*CommunityClient)(nil)

type listingPayload struct {
	ID              string  `json:"_id"`
	UserID          string  `json:"userId"`
	ThumbnailID     string  `json:"thumbnailId"`
	Valuation       float64 `json:"valuationByLLM"`
	TotalPrice      float64 `json:"totalPrice"`
	CreatorEarnings float64 `json:"creatorEarnings"`
	PlatformFee     float64 `json:"platformFee"`
	DownloadCount   int     `json:"downloadCount"`
	Status          string  `json:"status"`
	Reasoning       string  `json:"reasoning"`
}

func (c *CommunityClient) GetListing(ctx context.Context, id domain.ListingID) (domain.CommunityListing, error) {
	var payload listingPayload
	if err := c.Client.do(ctx, http.MethodGet, "/api/community/rank/"+string(id), nil, &payload); err != nil {
		if apiErr, ok := IsAPIError(err); ok && apiErr.Status == http.StatusNotFound {
			return domain.CommunityListing{}, domain.ErrNotFound
		}
		return domain.CommunityListing{}, err
	}

	// A 2xx with no listing id is a malformed payload; the caller treats it
	// the same as a missing listing.
	if payload.ID == "" || payload.ThumbnailID == "" {
		return domain.CommunityListing{}, domain.ErrNotFound
	}

	return domain.CommunityListing{
		ID:              domain.ListingID(payload.ID),
		UserID:          domain.UserID(payload.UserID),
		ThumbnailID:     domain.ThumbnailID(payload.ThumbnailID),
		Valuation:       payload.Valuation,
		TotalPrice:      payload.TotalPrice,
		CreatorEarnings: payload.CreatorEarnings,
		PlatformFee:     payload.PlatformFee,
		DownloadCount:   payload.DownloadCount,
		Status:          payload.Status,
		Reasoning:       payload.Reasoning,
	}, nil
}
