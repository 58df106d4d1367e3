package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/thumlify/thumlify-cli/internal/domain"
	"github.com/thumlify/thumlify-cli/internal/ports"
)

// Step tags where in the billable sequence a failure happened, so a failed
// pre-check is never confused with a failed settlement.
type Step string

const (
	StepPrecheck Step = "precheck"
	StepPerform  Step = "perform"
	StepSettle   Step = "settle"
	StepRefresh  Step = "refresh"
)

type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("%s: %v", e.Step, e.Err) }
func (e *StepError) Unwrap() error { return e.Err }

// Executor runs credit-gated actions against the authoritative ledger.
//
// The two action kinds deliberately order perform and settle differently:
// generation is pay-for-success (render first, then deduct), while a paid
// export is a non-refundable trigger (deduct first, fetch after). Both end
// by re-pulling the balance so the UI never shows a number the server
// disagrees with.
type Executor struct {
	cache      *CreditCache
	creditsAPI ports.CreditsAPI
	thumbs     ports.ThumbnailAPI
	fetcher    ports.AssetFetcher
	sink       ports.AssetSink
	notifier   ports.Notifier
	nav        ports.Navigator
	log        zerolog.Logger
}

func NewExecutor(
	cache *CreditCache,
	creditsAPI ports.CreditsAPI,
	thumbs ports.ThumbnailAPI,
	fetcher ports.AssetFetcher,
	sink ports.AssetSink,
	notifier ports.Notifier,
	nav ports.Navigator,
	log zerolog.Logger,
) *Executor {
	return &Executor{
		cache:      cache,
		creditsAPI: creditsAPI,
		thumbs:     thumbs,
		fetcher:    fetcher,
		sink:       sink,
		notifier:   notifier,
		nav:        nav,
		log:        log,
	}
}

type GenerateOutcome struct {
	Thumbnail domain.Thumbnail
	Status    domain.ActionStatus
	// SettleErr is set when the render succeeded but the deduction call
	// failed. The render is kept; the ledger catches up server-side.
	SettleErr error
}

// Generate runs pre-check → perform → settle → refresh. The pre-check is a
// fresh balance pull and fails closed: without a confirmed positive balance
// no generate request is sent and the user is routed to pricing.
func (e *Executor) Generate(ctx context.Context, spec domain.GenerationSpec) (GenerateOutcome, error) {
	if !e.cache.ConfirmFunds(ctx) {
		if err := e.cache.Refresh(ctx); err != nil {
			e.log.Debug().Err(err).Msg("balance refresh after failed pre-check")
		}
		e.notifier.Error("Insufficient balance")
		e.nav.GoToPricing()
		return GenerateOutcome{Status: domain.ActionInsufficientFunds},
			&StepError{Step: StepPrecheck, Err: domain.ErrInsufficientCredits}
	}

	thumbnail, err := e.thumbs.Generate(ctx, spec)
	if err != nil {
		e.notifyActionFailure(err, "Generation failed")
		return GenerateOutcome{Status: domain.ActionFailed}, &StepError{Step: StepPerform, Err: err}
	}
	e.notifier.Success("Thumbnail generated successfully!")

	settleErr := e.creditsAPI.Deduct(ctx, spec.Model.Cost())
	if settleErr != nil {
		// Accepted non-atomic window: the render exists, the deduction
		// did not land. Surfaced, not rolled back, not retried.
		e.log.Warn().Err(settleErr).Str("thumbnail", string(thumbnail.ID)).Msg("settlement failed after successful generation")
		e.notifier.Warning("Generated, but the credit deduction did not go through")
	}

	if err := e.cache.Refresh(ctx); err != nil {
		e.log.Debug().Err(err).Msg("balance refresh after generation")
	}

	e.nav.GoToResult(thumbnail.ID)
	return GenerateOutcome{Thumbnail: thumbnail, Status: domain.ActionDone, SettleErr: settleErr}, nil
}

type ExportOutcome struct {
	Path   string
	Status domain.ActionStatus
}

// Export settles first for paid formats and aborts before a single asset
// byte moves when the ledger rejects. Free formats go straight to the file
// fetch with no deduction call at all.
func (e *Executor) Export(ctx context.Context, thumbnail domain.Thumbnail, format domain.ExportFormat) (ExportOutcome, error) {
	cost := format.Cost()
	settled := false

	if cost > 0 {
		if err := e.creditsAPI.Deduct(ctx, cost); err != nil {
			if refreshErr := e.cache.Refresh(ctx); refreshErr != nil {
				e.log.Debug().Err(refreshErr).Msg("balance refresh after rejected export settlement")
			}
			if errors.Is(err, domain.ErrInsufficientCredits) {
				e.notifier.Error("Insufficient credits.")
				return ExportOutcome{Status: domain.ActionInsufficientFunds}, &StepError{Step: StepSettle, Err: err}
			}
			e.notifyActionFailure(err, "Export failed")
			return ExportOutcome{Status: domain.ActionFailed}, &StepError{Step: StepSettle, Err: err}
		}
		settled = true
	}

	data, err := e.fetcher.Fetch(ctx, thumbnail.ImageURL)
	if err != nil {
		e.notifier.Error("Download failed.")
		if settled {
			if refreshErr := e.cache.Refresh(ctx); refreshErr != nil {
				e.log.Debug().Err(refreshErr).Msg("balance refresh after failed export download")
			}
		}
		return ExportOutcome{Status: domain.ActionFailed}, &StepError{Step: StepPerform, Err: err}
	}

	path, err := e.sink.Save(exportFileName(thumbnail.Title, format), data)
	if err != nil {
		e.notifier.Error("Download failed.")
		if settled {
			if refreshErr := e.cache.Refresh(ctx); refreshErr != nil {
				e.log.Debug().Err(refreshErr).Msg("balance refresh after failed export write")
			}
		}
		return ExportOutcome{Status: domain.ActionFailed}, &StepError{Step: StepPerform, Err: err}
	}

	if settled {
		if err := e.cache.Refresh(ctx); err != nil {
			e.log.Debug().Err(err).Msg("balance refresh after export")
		}
	}

	e.notifier.Success(fmt.Sprintf("%s exported!", format))
	return ExportOutcome{Path: path, Status: domain.ActionDone}, nil
}

func (e *Executor) notifyActionFailure(err error, fallback string) {
	if msg := serverMessage(err); msg != "" {
		e.notifier.Error(msg)
		return
	}
	if isServerError(err) {
		e.notifier.Error(fallback)
		return
	}
	e.notifier.Error(connectionFailedMsg)
}

func exportFileName(title string, format domain.ExportFormat) string {
	name := strings.Join(strings.Fields(title), "_")
	if name == "" {
		name = "thumbnail"
	}
	return name + "." + strings.ToLower(string(format))
}
