package search

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"playdex/searchservice/internal/domain"
	"playdex/searchservice/internal/metrics"
)

const (
	defaultThreadTTL        = 30 * time.Minute
	defaultThreadMaxEntries = 512
)

// Thread is one conversational search session: the interpreted query plus
// every play fetched for it so far. Pagination windows over the accumulated
// clips; LoadMore extends them.
type Thread struct {
	ID       string
	Query    domain.Query
	Entities domain.ExtractedEntities
	Filter   domain.ProviderFilter

	mu        sync.Mutex
	status    domain.ThreadStatus
	clips     []domain.Clip
	servedTo  int
	exhausted bool
	lastErr   error
	fetchSeq  uint64
	touchedAt time.Time
}

func (t *Thread) Status() domain.ThreadStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Snapshot returns the accumulated clips with the thread state.
func (t *Thread) Snapshot() ([]domain.Clip, domain.ThreadStatus, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneClips(t.clips), t.status, t.exhausted
}

// beginFetch transitions to fetching and hands out a sequence token. A fetch
// whose token no longer matches at commit time was superseded and must not
// write its results.
func (t *Thread) beginFetch(now time.Time) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fetchSeq++
	t.status = domain.ThreadFetching
	t.touchedAt = now
	return t.fetchSeq
}

// served reports how far pagination has advanced; LoadMore resumes there.
func (t *Thread) served() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.servedTo
}

func (t *Thread) commitFetch(token uint64, clips []domain.Clip, servedTo int, exhausted bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if token != t.fetchSeq {
		return domain.ErrStaleFetch
	}
	t.clips = clips
	t.servedTo = servedTo
	t.exhausted = exhausted
	t.lastErr = nil
	if exhausted {
		t.status = domain.ThreadComplete
	} else {
		t.status = domain.ThreadPartial
	}
	return nil
}

func (t *Thread) failFetch(token uint64, err error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if token != t.fetchSeq {
		return domain.ErrStaleFetch
	}
	t.lastErr = err
	// A thread that already holds results degrades instead of erroring.
	if len(t.clips) > 0 {
		t.status = domain.ThreadPartial
	} else {
		t.status = domain.ThreadError
	}
	return nil
}

func (t *Thread) LastError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

// Threads is the in-memory thread registry. Threads expire after a period
// of inactivity; the registry caps total live threads by dropping the
// stalest.
type Threads struct {
	mu         sync.Mutex
	byID       map[string]*Thread
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

type ThreadsConfig struct {
	TTL        time.Duration
	MaxEntries int
}

func NewThreads(cfg ThreadsConfig) *Threads {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultThreadTTL
	}
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultThreadMaxEntries
	}
	return &Threads{
		byID:       make(map[string]*Thread),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (r *Threads) Create(query domain.Query, ents domain.ExtractedEntities, filter domain.ProviderFilter) *Thread {
	thread := &Thread{
		ID:        uuid.NewString(),
		Query:     query,
		Entities:  ents,
		Filter:    filter,
		status:    domain.ThreadIdle,
		touchedAt: r.now(),
	}

	r.mu.Lock()
	r.byID[thread.ID] = thread
	r.evictLocked(r.now())
	metrics.ActiveThreads.Set(float64(len(r.byID)))
	r.mu.Unlock()

	return thread
}

func (r *Threads) Get(id string) (*Thread, error) {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	thread, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrThreadNotFound
	}

	thread.mu.Lock()
	expired := now.Sub(thread.touchedAt) > r.ttl
	if !expired {
		thread.touchedAt = now
	}
	thread.mu.Unlock()

	if expired {
		delete(r.byID, id)
		metrics.ActiveThreads.Set(float64(len(r.byID)))
		return nil, domain.ErrThreadNotFound
	}
	return thread, nil
}

func (r *Threads) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func (r *Threads) evictLocked(now time.Time) {
	for id, thread := range r.byID {
		thread.mu.Lock()
		expired := now.Sub(thread.touchedAt) > r.ttl
		thread.mu.Unlock()
		if expired {
			delete(r.byID, id)
		}
	}
	if len(r.byID) <= r.maxEntries {
		return
	}

	for len(r.byID) > r.maxEntries {
		var (
			stalestID string
			stalestAt time.Time
		)
		for id, thread := range r.byID {
			thread.mu.Lock()
			touched := thread.touchedAt
			thread.mu.Unlock()
			if stalestID == "" || touched.Before(stalestAt) {
				stalestID = id
				stalestAt = touched
			}
		}
		delete(r.byID, stalestID)
	}
}
