package domain

import "time"

type ThumbnailID string

type Thumbnail struct {
	ID          ThumbnailID
	Title       string
	Description string
	ImageURL    string
	Style       string
	AspectRatio string
	ColorScheme string
	UserPrompt  string
	PromptUsed  string
	Model       GenerationModel
	CreatedAt   time.Time
}

// GenerationSpec is everything the generation endpoint needs to render a
// thumbnail. PromptUsed carries the enhanced prompt when one was produced,
// otherwise the raw user prompt.
type GenerationSpec struct {
	Title       string
	Style       string
	AspectRatio string
	ColorScheme string
	UserPrompt  string
	PromptUsed  string
	Model       GenerationModel
}

type ListingID string

// CommunityListing is a marketplace entry pointing at a published render.
type CommunityListing struct {
	ID              ListingID
	UserID          UserID
	ThumbnailID     ThumbnailID
	Valuation       float64
	TotalPrice      float64
	CreatorEarnings float64
	PlatformFee     float64
	DownloadCount   int
	Status          string
	Reasoning       string
}
