// Package registry holds the active campaign set as a versioned, immutable
// snapshot. Updates build a new snapshot and swap a single pointer, so an
// in-flight evaluation always completes against a consistent view.
package registry

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"promo-engine/internal/domain/campaign"
	"promo-engine/internal/domain/condition"
	"promo-engine/internal/pkg/clock"
	"promo-engine/internal/pkg/errs"
)

var ErrLoadFailed = errs.New("failed to load campaign registry")

// Source supplies campaign definitions, typically the store behind the
// memoizing cache.
type Source interface {
	ListAll(ctx context.Context) ([]*campaign.Campaign, error)
}

type Candidate struct {
	Campaign *campaign.Campaign
	Matched  bool
}

type Snapshot struct {
	version   uint64
	loadedAt  time.Time
	campaigns []*campaign.Campaign
}

func (s *Snapshot) Version() uint64 {
	return s.version
}

func (s *Snapshot) Campaigns() []*campaign.Campaign {
	return s.campaigns
}

// Candidates filters by status and time window first, then evaluates the
// compiled predicates. A predicate fault is isolated: the campaign is
// logged and skipped, never aborting the evaluation of its siblings.
func (s *Snapshot) Candidates(cctx *condition.Context) []Candidate {
	out := make([]Candidate, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		if !c.EvaluableAt(cctx.Now) {
			continue
		}
		matched, err := c.Predicate().Eval(cctx)
		if err != nil {
			slog.Warn("campaign predicate evaluation failed, skipping campaign",
				"campaign_id", c.ID().String(),
				"error", err.Error())
			continue
		}
		out = append(out, Candidate{Campaign: c, Matched: matched})
	}
	return out
}

type Registry struct {
	source Source
	clock  clock.Clock
	ttl    time.Duration

	mu      sync.Mutex // serializes refreshes
	snap    atomic.Pointer[Snapshot]
	version atomic.Uint64
}

func New(source Source, clk clock.Clock, ttl time.Duration) *Registry {
	return &Registry{source: source, clock: clk, ttl: ttl}
}

// Current returns the latest snapshot, refreshing when none exists or the
// held one is older than the registry TTL.
func (r *Registry) Current(ctx context.Context) (*Snapshot, error) {
	if s := r.snap.Load(); s != nil && r.clock.Now().Sub(s.loadedAt) < r.ttl {
		return s, nil
	}
	return r.Refresh(ctx)
}

// Refresh rebuilds the snapshot from the source and publishes it with a new
// version. Concurrent readers keep whatever snapshot they already hold.
func (r *Registry) Refresh(ctx context.Context) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	campaigns, err := r.source.ListAll(ctx)
	if err != nil {
		// Serve the previous snapshot if one exists; listing is read-only
		// and stale data is acceptable within the TTL discipline.
		if s := r.snap.Load(); s != nil {
			slog.Warn("campaign refresh failed, serving previous snapshot",
				"version", s.version,
				"error", err.Error())
			return s, nil
		}
		return nil, errs.Mark(err, ErrLoadFailed)
	}

	sortCampaigns(campaigns)

	s := &Snapshot{
		version:   r.version.Add(1),
		loadedAt:  r.clock.Now(),
		campaigns: campaigns,
	}
	r.snap.Store(s)
	return s, nil
}

// Invalidate drops the held snapshot so the next read refreshes. Called
// after campaign upserts and expirations.
func (r *Registry) Invalidate() {
	r.snap.Store(nil)
}

// Priority descending, then earliest start, then id: a stable, deterministic
// order shared by every evaluation against the same snapshot.
func sortCampaigns(campaigns []*campaign.Campaign) {
	slices.SortStableFunc(campaigns, func(a, b *campaign.Campaign) int {
		if a.Priority() != b.Priority() {
			if a.Priority() > b.Priority() {
				return -1
			}
			return 1
		}
		if !a.StartsAt().Equal(b.StartsAt()) {
			if a.StartsAt().Before(b.StartsAt()) {
				return -1
			}
			return 1
		}
		aID, bID := a.ID(), b.ID()
		return bytes.Compare(aID[:], bID[:])
	})
}
