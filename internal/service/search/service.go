package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/seu-repo/callguard/internal/domain"
	"github.com/seu-repo/callguard/internal/observability/telemetry"
	"github.com/seu-repo/callguard/internal/ports"
)

const resultCacheTTL = 5 * time.Minute

// resolvedResult is the cached, requester-independent form of a search hit.
// The subject's identity travels alongside the public fields so the privacy
// gate can be applied per requester after a cache read; the email itself is
// only copied into the public result when the gate passes.
type resolvedResult struct {
	domain.SearchResult
	SubjectUserID string `json:"subject_user_id,omitempty"`
	SubjectEmail  string `json:"subject_email,omitempty"`
}

// resolver is one search-kind strategy.
type resolver interface {
	Resolve(ctx context.Context, query string, requester *domain.User) ([]resolvedResult, error)
}

// Service resolves free-text searches against registered users and personal
// contacts, deduplicated by phone number and scored by the score engine.
type Service struct {
	contacts  ports.ContactRepository
	scores    ports.ScoreService
	cache     ports.Cache
	ttl       time.Duration
	log       *zap.Logger
	resolvers map[domain.SearchKind]resolver
}

func NewService(users ports.UserRepository, contacts ports.ContactRepository, scores ports.ScoreService, cache ports.Cache, log *zap.Logger) ports.SearchService {
	return NewServiceWithTTL(users, contacts, scores, cache, resultCacheTTL, log)
}

// NewServiceWithTTL overrides the result cache lifetime, for deployments that
// tune it via config.
func NewServiceWithTTL(users ports.UserRepository, contacts ports.ContactRepository, scores ports.ScoreService, cache ports.Cache, ttl time.Duration, log *zap.Logger) ports.SearchService {
	if ttl <= 0 {
		ttl = resultCacheTTL
	}
	return &Service{
		contacts: contacts,
		scores:   scores,
		cache:    cache,
		ttl:      ttl,
		log:      log,
		resolvers: map[domain.SearchKind]resolver{
			domain.SearchKindPhone: &phoneResolver{users: users, contacts: contacts, scores: scores},
			domain.SearchKindName:  &nameResolver{users: users, contacts: contacts, scores: scores},
		},
	}
}

func (s *Service) Search(ctx context.Context, kind domain.SearchKind, query string, requester *domain.User, page, pageSize int) (*domain.SearchPage, error) {
	timer := prometheus.NewTimer(telemetry.SearchLatency)
	defer timer.ObserveDuration()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidQuery)
	}
	res, ok := s.resolvers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported search kind %q", domain.ErrInvalidQuery, kind)
	}

	normalized := normalizeQuery(kind, query)
	key := fmt.Sprintf("search_results_%s_%s", kind, normalized)

	results, cached := s.fromCache(ctx, key)
	if !cached {
		var err error
		results, err = res.Resolve(ctx, normalized, requester)
		if err != nil {
			telemetry.SearchRequestsTotal.WithLabelValues(string(kind), "error").Inc()
			return nil, err
		}
		// Concurrent searches may race to populate this key; last writer
		// wins and both compute the same value, so no locking.
		if data, err := json.Marshal(results); err == nil {
			if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
				s.log.Warn("Failed to cache search results", zap.String("key", key), zap.Error(err))
			}
		}
	}

	gated, err := s.applyPrivacyGate(ctx, results, requester)
	if err != nil {
		telemetry.SearchRequestsTotal.WithLabelValues(string(kind), "error").Inc()
		return nil, err
	}

	telemetry.SearchRequestsTotal.WithLabelValues(string(kind), "ok").Inc()
	return Paginate(gated, page, pageSize), nil
}

func (s *Service) fromCache(ctx context.Context, key string) ([]resolvedResult, bool) {
	cached, err := s.cache.Get(ctx, key)
	if err != nil || cached == "" {
		telemetry.CacheMissesTotal.WithLabelValues("search").Inc()
		return nil, false
	}
	var results []resolvedResult
	if err := json.Unmarshal([]byte(cached), &results); err != nil {
		s.log.Warn("Discarding undecodable cached search results", zap.String("key", key), zap.Error(err))
		telemetry.CacheMissesTotal.WithLabelValues("search").Inc()
		return nil, false
	}
	telemetry.CacheHitsTotal.WithLabelValues("search").Inc()
	return results, true
}

// applyPrivacyGate copies a subject's email into the public result only when
// the subject's own contact list holds the requester's number. A failed gate
// is an omitted field, never an error; a failed lookup fails the search.
func (s *Service) applyPrivacyGate(ctx context.Context, results []resolvedResult, requester *domain.User) ([]domain.SearchResult, error) {
	out := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		public := r.SearchResult
		public.Email = nil
		if r.SubjectUserID != "" && r.SubjectEmail != "" && requester != nil {
			known, err := s.contacts.Exists(ctx, r.SubjectUserID, domain.NormalizePhone(requester.PhoneNumber))
			if err != nil {
				return nil, fmt.Errorf("%w: checking contact visibility: %v", domain.ErrDataUnavailable, err)
			}
			if known {
				email := r.SubjectEmail
				public.Email = &email
			}
		}
		out = append(out, public)
	}
	return out, nil
}

func normalizeQuery(kind domain.SearchKind, query string) string {
	if kind == domain.SearchKindPhone {
		return domain.NormalizePhone(query)
	}
	return strings.ToLower(query)
}
