package vendors

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront/internal/snapshots"
)

const testKey = "storefront_vendors_db"

var testStart = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func openTestRemote(t *testing.T, store snapshots.Store, clock clockwork.Clock) *RemoteStore {
	t.Helper()
	if clock == nil {
		clock = clockwork.NewFakeClockAt(testStart)
	}
	remote, err := OpenRemoteStore(context.Background(), RemoteParams{
		Store: store,
		Key:   testKey,
		Clock: clock,
	})
	require.NoError(t, err)
	return remote
}

func float64Ptr(v float64) *float64 { return &v }

func int64Ptr(v int64) *int64 { return &v }

// flakyStore fails every Save while failing is set.
type flakyStore struct {
	*snapshots.MemoryStore
	mu      sync.Mutex
	failing bool
}

func (f *flakyStore) setFailing(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = v
}

func (f *flakyStore) Save(ctx context.Context, key string, payload []byte) error {
	f.mu.Lock()
	failing := f.failing
	f.mu.Unlock()
	if failing {
		return errors.New("disk full")
	}
	return f.MemoryStore.Save(ctx, key, payload)
}

type fetchResult struct {
	vendors []Vendor
	err     error
}

// stubRemote lets tests control when and how each call resolves.
type stubRemote struct {
	mu       sync.Mutex
	fetches  []chan fetchResult
	calls    int
	lookup   func(mobile string) (Vendor, bool, error)
	update   func(UpdateVendorInput) (Vendor, error)
	register func(RegisterVendorInput) (Vendor, error)
}

func (s *stubRemote) FetchAll(ctx context.Context) ([]Vendor, error) {
	s.mu.Lock()
	s.calls++
	ch := make(chan fetchResult, 1)
	s.fetches = append(s.fetches, ch)
	s.mu.Unlock()

	select {
	case res := <-ch:
		return res.vendors, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *stubRemote) resolve(t *testing.T, i int, res fetchResult) {
	t.Helper()
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return len(s.fetches) > i
	}, time.Second, time.Millisecond)
	s.mu.Lock()
	ch := s.fetches[i]
	s.mu.Unlock()
	ch <- res
}

func (s *stubRemote) FindByMobile(_ context.Context, mobile string) (Vendor, bool, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.lookup == nil {
		return Vendor{}, false, nil
	}
	return s.lookup(mobile)
}

func (s *stubRemote) Update(_ context.Context, in UpdateVendorInput) (Vendor, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.update(in)
}

func (s *stubRemote) Register(_ context.Context, in RegisterVendorInput) (Vendor, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.register(in)
}

func (s *stubRemote) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

