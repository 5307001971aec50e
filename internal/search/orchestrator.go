// Package search orchestrates the query pipeline: extraction, planning,
// provider fetches with caching and retry, ranking and pagination over
// per-session threads.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"playdex/searchservice/internal/domain"
	"playdex/searchservice/internal/extract"
	"playdex/searchservice/internal/links"
	"playdex/searchservice/internal/metrics"
	"playdex/searchservice/internal/plan"
)

const (
	defaultLimit   = 10
	maxLimit       = 50
	defaultTimeout = 120 * time.Second

	// maxConcurrentProviderCalls bounds simultaneous outbound calls across
	// every in-flight search, not per thread.
	maxConcurrentProviderCalls = 8
)

// StatsProvider is the upstream play and video source.
type StatsProvider interface {
	Name() string
	Plays(ctx context.Context, filter domain.ProviderFilter) ([]domain.Clip, error)
	VideoMeta(ctx context.Context, gameID string, eventID int) (*domain.VideoMetadata, error)
}

type Config struct {
	Provider  StatsProvider
	Extractor *extract.Extractor
	Cache     *PlayCache
	Threads   *Threads
	Logger    *slog.Logger

	// Timeout is the overall per-request deadline.
	Timeout time.Duration
	// RateLimit is the shared outbound budget toward the provider.
	RateLimit rate.Limit
	RateBurst int
	Retry     RetryConfig
}

// Service is the search orchestrator. Safe for concurrent use; all mutable
// state lives in the cache and the thread registry.
type Service struct {
	provider  StatsProvider
	extractor *extract.Extractor
	cache     *PlayCache
	threads   *Threads
	logger    *slog.Logger
	timeout   time.Duration
	retryCfg  RetryConfig
	sem       *semaphore.Weighted
	limiter   *rate.Limiter
	now       func() time.Time
}

func New(cfg Config) *Service {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rateLimit := cfg.RateLimit
	if rateLimit <= 0 {
		rateLimit = rate.Limit(4)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 8
	}
	retryCfg := cfg.Retry
	if retryCfg.MaxAttempts <= 0 {
		retryCfg = DefaultRetryConfig()
	}
	cache := cfg.Cache
	if cache == nil {
		cache = NewPlayCache(PlayCacheConfig{})
	}
	threads := cfg.Threads
	if threads == nil {
		threads = NewThreads(ThreadsConfig{})
	}
	return &Service{
		provider:  cfg.Provider,
		extractor: cfg.Extractor,
		cache:     cache,
		threads:   threads,
		logger:    logger,
		timeout:   timeout,
		retryCfg:  retryCfg,
		sem:       semaphore.NewWeighted(maxConcurrentProviderCalls),
		limiter:   rate.NewLimiter(rateLimit, burst),
		now:       time.Now,
	}
}

// Search starts a new thread for the query and returns its first page.
func (s *Service) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResponse, error) {
	startedAt := s.now()

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return domain.SearchResponse{}, fmt.Errorf("%w: empty query", domain.ErrBadRequest)
	}
	limit, offset, err := normalizePage(req.Limit, req.Offset)
	if err != nil {
		return domain.SearchResponse{}, err
	}

	normalized := extract.Normalize(query)
	ents := s.extractor.Extract(normalized)
	s.recordExtraction(ents)

	filter := plan.Build(normalized, ents)
	if filter.Season == "" {
		filter.Season = extract.CurrentSeasonCode(s.now())
	}

	thread := s.threads.Create(normalized, ents, filter)
	return s.runFetch(ctx, thread, limit, offset, startedAt)
}

// LoadMore extends an existing thread by one page.
func (s *Service) LoadMore(ctx context.Context, threadID string, limit int) (domain.SearchResponse, error) {
	startedAt := s.now()

	thread, err := s.threads.Get(threadID)
	if err != nil {
		return domain.SearchResponse{}, err
	}

	limit, _, err = normalizePage(limit, 0)
	if err != nil {
		return domain.SearchResponse{}, err
	}

	offset := thread.served()
	return s.runFetch(ctx, thread, limit, offset, startedAt)
}

// ThreadState reports a thread's lifecycle status for polling clients.
func (s *Service) ThreadState(threadID string) (domain.ThreadStatus, error) {
	thread, err := s.threads.Get(threadID)
	if err != nil {
		return "", err
	}
	return thread.Status(), nil
}

func (s *Service) runFetch(ctx context.Context, thread *Thread, limit, offset int, startedAt time.Time) (domain.SearchResponse, error) {
	runCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	token := thread.beginFetch(s.now())

	clips, fetchErr := s.fetchClips(runCtx, thread.Filter)
	if fetchErr != nil && len(clips) == 0 {
		_ = thread.failFetch(token, fetchErr)
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return domain.SearchResponse{}, fmt.Errorf("fetch plays: %w", fetchErr)
	}

	clips = applyPostFilters(clips, thread.Filter)
	if thread.Filter.FreeText != "" {
		clips = filterByFreeText(clips, thread.Filter.FreeText)
	}
	clips = dedupeClips(clips)
	ranked := rankClips(clips, thread.Filter, thread.Entities.Leftover, s.now())

	ordered := make([]domain.Clip, len(ranked))
	for i, sc := range ranked {
		ordered[i] = sc.clip
	}

	start := offset
	if start > len(ordered) {
		start = len(ordered)
	}
	end := start + limit
	if end > len(ordered) {
		end = len(ordered)
	}
	pageClips := ranked[start:end]

	// The provider reports no authoritative total, so a full page means
	// "probably more". A final page of exactly limit items reads as
	// hasMore once too often; that is accepted behavior.
	hasMore := len(pageClips) == limit

	if err := thread.commitFetch(token, ordered, end, !hasMore); err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return domain.SearchResponse{}, err
	}

	results, degraded := s.buildResults(runCtx, pageClips, thread.Filter)

	outcome := "ok"
	if degraded {
		outcome = "degraded"
	}
	metrics.SearchesTotal.WithLabelValues(outcome).Inc()
	metrics.SearchDuration.Observe(s.now().Sub(startedAt).Seconds())

	return domain.SearchResponse{
		ThreadID:  thread.ID,
		Results:   results,
		Entities:  thread.Entities,
		AISummary: buildSummary(thread.Query, thread.Entities, thread.Filter, results),
		HasMore:   hasMore,
		Offset:    offset,
		Limit:     limit,
		ElapsedMS: s.now().Sub(startedAt).Milliseconds(),
		Degraded:  degraded,
	}, nil
}

// fetchClips returns the play batch for a filter, consulting the cache
// first. A provider call that outlives the caller's deadline keeps running
// in the background so its result can still warm the cache.
func (s *Service) fetchClips(ctx context.Context, filter domain.ProviderFilter) ([]domain.Clip, error) {
	key := CacheKey(filter)
	if clips, ok := s.cache.Get(ctx, key); ok {
		return clips, nil
	}

	type outcome struct {
		clips []domain.Clip
		err   error
	}
	done := make(chan outcome, 1)

	fetchCtx, cancelFetch := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	go func() {
		defer cancelFetch()

		if err := s.sem.Acquire(fetchCtx, 1); err != nil {
			done <- outcome{err: err}
			return
		}
		defer s.sem.Release(1)

		if err := s.limiter.Wait(fetchCtx); err != nil {
			done <- outcome{err: err}
			return
		}

		startedAt := s.now()
		var clips []domain.Clip
		err := RetryWithBackoff(fetchCtx, s.retryCfg, func() error {
			var callErr error
			clips, callErr = s.provider.Plays(fetchCtx, filter)
			return callErr
		})
		s.observeProviderCall("plays", err, s.now().Sub(startedAt))

		if err == nil {
			s.cache.Set(fetchCtx, key, clips)
		}
		done <- outcome{clips: clips, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-done:
		return result.clips, result.err
	}
}

// buildResults enriches a page with video metadata and watch links. Missing
// metadata is fetched per event with bounded concurrency; a failed
// enrichment degrades that item to link-only rather than failing the page.
func (s *Service) buildResults(ctx context.Context, page []scoredClip, filter domain.ProviderFilter) ([]domain.SearchResult, bool) {
	results := make([]domain.SearchResult, len(page))
	missing := make([]bool, len(page))

	var wg sync.WaitGroup
	for i, sc := range page {
		wg.Add(1)
		go func(i int, sc scoredClip) {
			defer wg.Done()

			video := sc.clip.Video
			if video == nil {
				video = s.lookupVideoMeta(ctx, sc.clip.Play)
				missing[i] = video == nil
			}

			play := sc.clip.Play
			results[i] = domain.SearchResult{
				Play:         play,
				ThumbnailURL: links.Thumbnail(video),
				WatchLinks:   links.Synthesize(play, filter.Season, video),
				Description:  play.Description,
				MatchScore:   sc.score,
			}
		}(i, sc)
	}
	wg.Wait()

	degraded := false
	for _, m := range missing {
		if m {
			degraded = true
			break
		}
	}
	return results, degraded
}

func (s *Service) lookupVideoMeta(ctx context.Context, play domain.PlayRecord) *domain.VideoMetadata {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil
	}
	defer s.sem.Release(1)

	if err := s.limiter.Wait(ctx); err != nil {
		return nil
	}

	startedAt := s.now()
	var meta *domain.VideoMetadata
	err := RetryWithBackoff(ctx, s.retryCfg, func() error {
		var callErr error
		meta, callErr = s.provider.VideoMeta(ctx, play.GameID, play.EventID)
		return callErr
	})
	s.observeProviderCall("videometa", err, s.now().Sub(startedAt))
	if err != nil {
		s.logger.Warn("video metadata lookup failed",
			"game_id", play.GameID, "event_id", play.EventID, "error", err)
		return nil
	}
	return meta
}

func (s *Service) observeProviderCall(endpoint string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.ProviderRequestsTotal.WithLabelValues(endpoint, status).Inc()
	metrics.ProviderRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (s *Service) recordExtraction(ents domain.ExtractedEntities) {
	switch {
	case ents.Ambiguous:
		metrics.ExtractionResolutions.WithLabelValues("ambiguous").Inc()
	case ents.Player != nil:
		metrics.ExtractionResolutions.WithLabelValues("player").Inc()
	case ents.Team != nil:
		metrics.ExtractionResolutions.WithLabelValues("team").Inc()
	default:
		metrics.ExtractionResolutions.WithLabelValues("freetext").Inc()
	}
}

func normalizePage(limit, offset int) (int, int, error) {
	if limit < 0 || offset < 0 {
		return 0, 0, fmt.Errorf("%w: negative limit or offset", domain.ErrBadRequest)
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, offset, nil
}

// filterByFreeText keeps clips whose description mentions any leftover
// query term. A free-text plan over an unrelated description set legally
// yields zero results.
func filterByFreeText(clips []domain.Clip, freeText string) []domain.Clip {
	terms := strings.Fields(strings.ToLower(freeText))
	if len(terms) == 0 {
		return clips
	}
	return filterClips(clips, func(c domain.Clip) bool {
		desc := strings.ToLower(c.Play.Description)
		for _, term := range terms {
			if strings.Contains(desc, term) {
				return true
			}
		}
		return false
	})
}
