package application

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/thumlify/thumlify-cli/internal/domain"
	"github.com/thumlify/thumlify-cli/internal/ports"
)

// DetailResult is everything a detail view renders: the marketplace listing
// and the render it points at.
type DetailResult struct {
	Listing   domain.CommunityListing
	Thumbnail domain.Thumbnail
}

// DetailEvent is the single outcome of a load. Err is domain.ErrNotFound
// when the listing is missing or malformed, which tells the caller to close
// the view.
type DetailEvent struct {
	Result *DetailResult
	Err    error
}

// DetailLoader runs at most one live detail fetch. Re-invoking Load cancels
// the in-flight request; a superseded or closed load publishes nothing at
// all — no data, no error.
type DetailLoader struct {
	community ports.CommunityAPI
	thumbs    ports.ThumbnailAPI
	log       zerolog.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func NewDetailLoader(community ports.CommunityAPI, thumbs ports.ThumbnailAPI, log zerolog.Logger) *DetailLoader {
	return &DetailLoader{community: community, thumbs: thumbs, log: log}
}

// Load starts fetching the listing and its thumbnail, delivering one event
// to publish unless superseded first.
func (l *DetailLoader) Load(ctx context.Context, id domain.ListingID, publish func(DetailEvent)) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.seq++
	seq := l.seq
	l.mu.Unlock()

	go l.run(loadCtx, seq, id, publish)
}

// LoadAndWait is the blocking form used by one-shot command surfaces.
func (l *DetailLoader) LoadAndWait(ctx context.Context, id domain.ListingID) (DetailResult, error) {
	events := make(chan DetailEvent, 1)
	l.Load(ctx, id, func(ev DetailEvent) { events <- ev })

	select {
	case ev := <-events:
		if ev.Err != nil {
			return DetailResult{}, ev.Err
		}
		return *ev.Result, nil
	case <-ctx.Done():
		return DetailResult{}, ctx.Err()
	}
}

// Close abandons any in-flight load. Its event is swallowed.
func (l *DetailLoader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.seq++
}

func (l *DetailLoader) run(ctx context.Context, seq uint64, id domain.ListingID, publish func(DetailEvent)) {
	listing, err := l.community.GetListing(ctx, id)
	if err != nil {
		l.log.Debug().Err(err).Str("listing", string(id)).Msg("detail load failed")
		l.publish(ctx, seq, publish, DetailEvent{Err: classifyDetailErr(err)})
		return
	}

	thumbnail, err := l.thumbs.GetByID(ctx, listing.ThumbnailID)
	if err != nil {
		l.publish(ctx, seq, publish, DetailEvent{Err: classifyDetailErr(err)})
		return
	}

	l.publish(ctx, seq, publish, DetailEvent{Result: &DetailResult{Listing: listing, Thumbnail: thumbnail}})
}

// publish delivers the event only if this load is still the current one and
// was not cancelled. Superseded loads must leave no observable trace.
func (l *DetailLoader) publish(ctx context.Context, seq uint64, publish func(DetailEvent), ev DetailEvent) {
	if ctx.Err() != nil {
		return
	}

	l.mu.Lock()
	current := l.seq == seq
	l.mu.Unlock()
	if !current {
		return
	}

	publish(ev)
}

func classifyDetailErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	return err
}
