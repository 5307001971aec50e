package search

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"playdex/searchservice/internal/domain"
)

func newTestThread(t *testing.T) (*Threads, *Thread) {
	t.Helper()
	registry := NewThreads(ThreadsConfig{})
	thread := registry.Create(domain.Query{Raw: "lebron blocks"}, domain.ExtractedEntities{}, domain.ProviderFilter{PlayerID: "2544"})
	return registry, thread
}

func TestThreadLifecycle(t *testing.T) {
	_, thread := newTestThread(t)
	if thread.Status() != domain.ThreadIdle {
		t.Fatalf("new thread status = %s, want idle", thread.Status())
	}

	token := thread.beginFetch(time.Now())
	if thread.Status() != domain.ThreadFetching {
		t.Fatalf("status after beginFetch = %s", thread.Status())
	}

	clips := []domain.Clip{clip("001", 1), clip("001", 2)}
	if err := thread.commitFetch(token, clips, 2, false); err != nil {
		t.Fatalf("commitFetch: %v", err)
	}
	if thread.Status() != domain.ThreadPartial {
		t.Errorf("status after partial commit = %s", thread.Status())
	}
	if thread.served() != 2 {
		t.Errorf("served = %d, want 2", thread.served())
	}

	token = thread.beginFetch(time.Now())
	if err := thread.commitFetch(token, clips, 2, true); err != nil {
		t.Fatalf("commitFetch: %v", err)
	}
	if thread.Status() != domain.ThreadComplete {
		t.Errorf("status after exhausted commit = %s", thread.Status())
	}

	got, status, exhausted := thread.Snapshot()
	if len(got) != 2 || status != domain.ThreadComplete || !exhausted {
		t.Errorf("Snapshot = %d clips, %s, exhausted=%v", len(got), status, exhausted)
	}
}

func TestThreadStaleTokenDiscarded(t *testing.T) {
	_, thread := newTestThread(t)

	first := thread.beginFetch(time.Now())
	second := thread.beginFetch(time.Now())

	stale := []domain.Clip{clip("001", 1)}
	if err := thread.commitFetch(first, stale, 1, false); !errors.Is(err, domain.ErrStaleFetch) {
		t.Fatalf("superseded commit error = %v, want ErrStaleFetch", err)
	}

	fresh := []domain.Clip{clip("001", 2), clip("001", 3)}
	if err := thread.commitFetch(second, fresh, 2, false); err != nil {
		t.Fatalf("current commit: %v", err)
	}

	got, _, _ := thread.Snapshot()
	if len(got) != 2 || got[0].Play.EventID != 2 {
		t.Errorf("thread holds %d clips starting at event %d, want the fresh batch", len(got), got[0].Play.EventID)
	}

	if err := thread.failFetch(first, errors.New("late failure")); !errors.Is(err, domain.ErrStaleFetch) {
		t.Errorf("superseded failure error = %v, want ErrStaleFetch", err)
	}
	if thread.LastError() != nil {
		t.Error("stale failure must not taint the thread")
	}
}

func TestThreadConcurrentCommitsApplyOnce(t *testing.T) {
	_, thread := newTestThread(t)

	const workers = 8
	tokens := make([]uint64, workers)
	for i := range tokens {
		tokens[i] = thread.beginFetch(time.Now())
	}

	var wg sync.WaitGroup
	applied := make(chan int, workers)
	for i, token := range tokens {
		wg.Add(1)
		go func(i int, token uint64) {
			defer wg.Done()
			clips := []domain.Clip{clip("001", i)}
			if err := thread.commitFetch(token, clips, 1, false); err == nil {
				applied <- i
			}
		}(i, token)
	}
	wg.Wait()
	close(applied)

	var winners []int
	for i := range applied {
		winners = append(winners, i)
	}
	if len(winners) != 1 {
		t.Fatalf("%d commits applied, want exactly 1", len(winners))
	}
	// Only the holder of the latest token may win.
	if winners[0] != workers-1 {
		t.Errorf("commit %d applied, want the latest fetch", winners[0])
	}
}

func TestThreadFailureStates(t *testing.T) {
	_, thread := newTestThread(t)

	token := thread.beginFetch(time.Now())
	if err := thread.failFetch(token, errors.New("upstream down")); err != nil {
		t.Fatalf("failFetch: %v", err)
	}
	if thread.Status() != domain.ThreadError {
		t.Errorf("empty thread failure status = %s, want error", thread.Status())
	}

	token = thread.beginFetch(time.Now())
	if err := thread.commitFetch(token, []domain.Clip{clip("001", 1)}, 1, false); err != nil {
		t.Fatalf("commitFetch: %v", err)
	}
	token = thread.beginFetch(time.Now())
	if err := thread.failFetch(token, errors.New("upstream down again")); err != nil {
		t.Fatalf("failFetch: %v", err)
	}
	if thread.Status() != domain.ThreadPartial {
		t.Errorf("thread with results degrades to %s, want partial", thread.Status())
	}
	if thread.LastError() == nil {
		t.Error("failure should be recorded")
	}
}

func TestThreadsRegistryExpiry(t *testing.T) {
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	registry := NewThreads(ThreadsConfig{TTL: 10 * time.Minute})
	registry.now = func() time.Time { return now }

	thread := registry.Create(domain.Query{Raw: "q"}, domain.ExtractedEntities{}, domain.ProviderFilter{})

	now = now.Add(9 * time.Minute)
	if _, err := registry.Get(thread.ID); err != nil {
		t.Fatalf("live thread lookup: %v", err)
	}

	// The lookup above refreshed the thread.
	now = now.Add(9 * time.Minute)
	if _, err := registry.Get(thread.ID); err != nil {
		t.Fatalf("refreshed thread lookup: %v", err)
	}

	now = now.Add(11 * time.Minute)
	if _, err := registry.Get(thread.ID); !errors.Is(err, domain.ErrThreadNotFound) {
		t.Fatalf("expired thread lookup error = %v, want ErrThreadNotFound", err)
	}
	if registry.Len() != 0 {
		t.Errorf("registry holds %d threads after expiry", registry.Len())
	}
}

func TestThreadsRegistryCap(t *testing.T) {
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	registry := NewThreads(ThreadsConfig{MaxEntries: 2})
	registry.now = func() time.Time { return now }

	var ids []string
	for i := 0; i < 3; i++ {
		thread := registry.Create(domain.Query{Raw: fmt.Sprintf("q%d", i)}, domain.ExtractedEntities{}, domain.ProviderFilter{})
		ids = append(ids, thread.ID)
		now = now.Add(time.Second)
	}

	if registry.Len() != 2 {
		t.Fatalf("registry holds %d threads, want 2", registry.Len())
	}
	if _, err := registry.Get(ids[0]); !errors.Is(err, domain.ErrThreadNotFound) {
		t.Error("stalest thread should have been evicted")
	}
	if _, err := registry.Get(ids[2]); err != nil {
		t.Errorf("newest thread lookup: %v", err)
	}
}

func TestThreadsUnknownID(t *testing.T) {
	registry := NewThreads(ThreadsConfig{})
	if _, err := registry.Get("no-such-thread"); !errors.Is(err, domain.ErrThreadNotFound) {
		t.Fatalf("unknown id error = %v, want ErrThreadNotFound", err)
	}
}
