package ports

import (
	"context"

	"github.com/thumlify/thumlify-cli/internal/domain"
)

// AuthAPI covers the session and registration endpoints. All calls ride the
// session cookie; the server is the only authority on auth state.
type AuthAPI interface {
	CurrentUser(ctx context.Context) (domain.UserIdentity, error)
	// Login authenticates with an email-or-username identifier. The second
	// return value is the server's human-readable message.
	Login(ctx context.Context, userID, password string) (domain.UserIdentity, string, error)
	Logout(ctx context.Context) error
	// RequestRegistrationOTP returns the server-advised resend cooldown in
	// seconds, or 0 when the server does not advise one.
	RequestRegistrationOTP(ctx context.Context, form domain.RegistrationForm) (int, error)
	VerifyRegistrationOTP(ctx context.Context, form domain.RegistrationForm, otp string) (domain.UserIdentity, error)
	ResendRegistrationOTP(ctx context.Context, email string) (int, error)
}

type CreditsAPI interface {
	FetchBalance(ctx context.Context) (domain.CreditBalance, error)
	// Deduct settles a fixed cost against the ledger. The server enforces
	// sufficiency; a rejection surfaces as domain.ErrInsufficientCredits.
	Deduct(ctx context.Context, amount int) error
}

type ThumbnailAPI interface {
	Generate(ctx context.Context, spec domain.GenerationSpec) (domain.Thumbnail, error)
	GetByID(ctx context.Context, id domain.ThumbnailID) (domain.Thumbnail, error)
	OptimizePrompt(ctx context.Context, title, description, style string) (string, error)
	ListMine(ctx context.Context) ([]domain.Thumbnail, error)
}

type CommunityAPI interface {
	GetListing(ctx context.Context, id domain.ListingID) (domain.CommunityListing, error)
}

// AccountAPI covers the manage-account surface, including the password
// reset OTP round trip.
type AccountAPI interface {
	UpdateProfile(ctx context.Context, username, email string) error
	RequestPasswordOTP(ctx context.Context) (int, error)
	ResendPasswordOTP(ctx context.Context) (int, error)
	VerifyPasswordOTP(ctx context.Context, otp, newPassword string) error
	DeleteAccount(ctx context.Context) error
}

// AssetFetcher pulls raw asset bytes from an absolute URL (the rendered
// image host, not the API).
type AssetFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// AssetSink persists a fetched asset and returns where it landed.
type AssetSink interface {
	Save(name string, data []byte) (string, error)
}
