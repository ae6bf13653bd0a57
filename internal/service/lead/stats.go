package lead

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/leadflow/leadflow-backend/internal/access"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

const scopeAll = "all"

// Stats returns dashboard aggregates over the leads caller may read.
// Results are cached per scope until the next lead mutation.
func (s *Service) Stats(ctx context.Context, caller domain.Caller) (*domain.LeadStats, error) {
	scope := statsScope(caller)

	var (
		gen      int64
		genKnown bool
	)
	if s.cache != nil {
		cached, g, err := s.cache.Get(ctx, scope)
		switch {
		case err != nil:
			s.log.WarnContext(ctx, "stats cache read failed",
				slog.String("scope", scope), slog.String("error", err.Error()))
		case cached != nil:
			return cached, nil
		default:
			gen, genKnown = g, true
		}
	}

	stats, err := s.computeStats(ctx, access.ScopeFilter(caller, domain.LeadFilter{}))
	if err != nil {
		return nil, fmt.Errorf("lead.Stats: %w", err)
	}

	// Only store when the generation was read; otherwise a stale result
	// could be written under a newer generation.
	if genKnown {
		if err := s.cache.Set(ctx, scope, gen, stats); err != nil {
			s.log.WarnContext(ctx, "stats cache write failed",
				slog.String("scope", scope), slog.String("error", err.Error()))
		}
	}
	return stats, nil
}

func (s *Service) computeStats(ctx context.Context, f domain.LeadFilter) (*domain.LeadStats, error) {
	limit := s.cfg.RecentLimit
	if limit <= 0 {
		limit = 5
	}

	var (
		statuses []domain.StatusCount
		agents   []domain.AgentCount
		recent   []domain.RecentLead
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		statuses, err = s.leads.StatusCounts(gctx, f)
		if err != nil {
			return fmt.Errorf("status counts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		agents, err = s.leads.AgentCounts(gctx, f)
		if err != nil {
			return fmt.Errorf("agent counts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		recent, err = s.leads.Recent(gctx, f, limit)
		if err != nil {
			return fmt.Errorf("recent leads: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildStats(statuses, agents, recent), nil
}

// buildStats lists every status in pipeline order, zero-filled, so the
// dashboard always gets the same buckets.
func buildStats(statuses []domain.StatusCount, agents []domain.AgentCount, recent []domain.RecentLead) *domain.LeadStats {
	counts := make(map[domain.LeadStatus]int, len(statuses))
	for _, sc := range statuses {
		counts[sc.Status] += sc.Count
	}

	stats := &domain.LeadStats{
		StatusDistribution: make([]domain.StatusCount, 0, len(domain.LeadStatuses)),
		AgentPerformance:   agents,
		RecentLeads:        recent,
	}
	for _, st := range domain.LeadStatuses {
		stats.StatusDistribution = append(stats.StatusDistribution, domain.StatusCount{Status: st, Count: counts[st]})
		stats.TotalLeads += counts[st]
	}
	if stats.AgentPerformance == nil {
		stats.AgentPerformance = []domain.AgentCount{}
	}
	if stats.RecentLeads == nil {
		stats.RecentLeads = []domain.RecentLead{}
	}
	return stats
}

func statsScope(caller domain.Caller) string {
	if caller.Role.Can(domain.CapViewAllLeads) {
		return scopeAll
	}
	return "agent:" + caller.ID.String()
}
