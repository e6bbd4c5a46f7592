package vendors

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/angelmondragon/storefront/internal/snapshots"
	"github.com/angelmondragon/storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

const (
	opFetchAll = "fetch_all"
	opLookup   = "find_by_mobile"
	opUpdate   = "update"
	opRegister = "register"
	opOpen     = "open"

	vendorIDPrefix = "ret"
)

// Remote is the record store the replica talks to.
type Remote interface {
	FetchAll(ctx context.Context) ([]Vendor, error)
	FindByMobile(ctx context.Context, mobile string) (Vendor, bool, error)
	Update(ctx context.Context, input UpdateVendorInput) (Vendor, error)
	Register(ctx context.Context, input RegisterVendorInput) (Vendor, error)
}

// RemoteParams configures OpenRemoteStore.
type RemoteParams struct {
	Store   snapshots.Store
	Key     string
	Clock   clockwork.Clock
	Latency config.DirectoryConfig
	Logger  *logger.Logger
	Metrics *metrics.DirectoryMetrics
}

// RemoteStore simulates the remote vendor sheet. Every call waits out a
// fixed latency. Mutations rewrite the whole record set, flush it to the
// snapshot store and only then replace the in-memory copy, so a failed
// flush leaves both sides unchanged.
type RemoteStore struct {
	store   snapshots.Store
	key     string
	clock   clockwork.Clock
	latency config.DirectoryConfig
	logg    *logger.Logger
	metrics *metrics.DirectoryMetrics

	mu      sync.Mutex
	records []Vendor
	lastID  int64
}

var _ Remote = (*RemoteStore)(nil)

// OpenRemoteStore loads the persisted record set, seeding and flushing the
// default catalog when nothing has been stored yet.
func OpenRemoteStore(ctx context.Context, params RemoteParams) (*RemoteStore, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("snapshot store is required")
	}
	if params.Key == "" {
		return nil, fmt.Errorf("snapshot key is required")
	}
	r := &RemoteStore{
		store:   params.Store,
		key:     params.Key,
		clock:   params.Clock,
		latency: params.Latency,
		logg:    params.Logger,
		metrics: params.Metrics,
	}
	if r.clock == nil {
		r.clock = clockwork.NewRealClock()
	}
	if r.logg == nil {
		r.logg = logger.Nop()
	}

	ctx = r.logg.WithField(ctx, "snapshot_key", r.key)
	blob, err := r.store.Load(ctx, r.key)
	switch {
	case errors.Is(err, snapshots.ErrNotFound):
		seed := SeedVendors()
		if err := r.flush(ctx, seed); err != nil {
			r.metrics.IncFailure(opOpen)
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to seed vendor directory")
		}
		r.records = seed
		r.logg.Info(ctx, "vendor directory seeded")
	case err != nil:
		r.metrics.IncFailure(opOpen)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load vendor directory")
	default:
		records, err := decodeVendors(blob)
		if err != nil {
			r.metrics.IncFailure(opOpen)
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stored vendor directory is unreadable")
		}
		r.records = records
		r.logg.Info(r.logg.WithField(ctx, "vendors", len(records)), "vendor directory loaded")
	}
	r.lastID = highestGeneratedID(r.records)
	return r, nil
}

// FetchAll returns copies of every record.
func (r *RemoteStore) FetchAll(ctx context.Context) (vendors []Vendor, err error) {
	defer r.observe(opFetchAll, r.clock.Now(), &err)
	if err := r.wait(ctx, r.latency.FetchLatency); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneAll(r.records), nil
}

// FindByMobile returns the first record registered with the mobile number.
func (r *RemoteStore) FindByMobile(ctx context.Context, mobile string) (vendor Vendor, found bool, err error) {
	defer r.observe(opLookup, r.clock.Now(), &err)
	if err := r.wait(ctx, r.latency.LookupLatency); err != nil {
		return Vendor{}, false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.records {
		if v.MobileNo == mobile {
			return v.Clone(), true, nil
		}
	}
	return Vendor{}, false, nil
}

// Update merges the non-nil input fields into the stored record.
func (r *RemoteStore) Update(ctx context.Context, input UpdateVendorInput) (vendor Vendor, err error) {
	defer r.observe(opUpdate, r.clock.Now(), &err)
	if err := r.wait(ctx, r.latency.WriteLatency); err != nil {
		return Vendor{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := indexOf(r.records, input.ID)
	if idx < 0 {
		return Vendor{}, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}
	current := r.records[idx]
	if input.ExpectedVersion != nil && *input.ExpectedVersion != current.Version {
		return Vendor{}, pkgerrors.New(pkgerrors.CodeConflict, "vendor was modified concurrently").
			WithDetails(map[string]any{"expected_version": *input.ExpectedVersion, "current_version": current.Version})
	}

	merged := input.apply(current)
	merged.ID = current.ID
	merged.Version = current.Version + 1
	if err := checkPayout(merged); err != nil {
		return Vendor{}, err
	}

	next := cloneAll(r.records)
	next[idx] = merged
	if err := r.flush(ctx, next); err != nil {
		return Vendor{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to persist vendor update")
	}
	r.records = next
	r.logg.Info(r.logg.WithVendorID(ctx, merged.ID), "vendor updated")
	return merged.Clone(), nil
}

// Register appends a new pending vendor.
func (r *RemoteStore) Register(ctx context.Context, input RegisterVendorInput) (vendor Vendor, err error) {
	defer r.observe(opRegister, r.clock.Now(), &err)
	if err := r.wait(ctx, r.latency.WriteLatency); err != nil {
		return Vendor{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextIDLocked()
	created := input.build(id)
	next := append(cloneAll(r.records), created)
	if err := r.flush(ctx, next); err != nil {
		return Vendor{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to persist vendor registration")
	}
	r.records = next
	r.logg.Info(r.logg.WithVendorID(ctx, id), "vendor registered")
	return created.Clone(), nil
}

func (r *RemoteStore) flush(ctx context.Context, records []Vendor) error {
	blob, err := encodeVendors(records)
	if err != nil {
		return fmt.Errorf("encoding vendors: %w", err)
	}
	if err := r.store.Save(ctx, r.key, blob); err != nil {
		return err
	}
	r.metrics.IncFlush()
	return nil
}

func (r *RemoteStore) wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "request cancelled")
	}
	if d <= 0 {
		return nil
	}
	timer := r.clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return pkgerrors.Wrap(pkgerrors.CodeDependency, ctx.Err(), "request cancelled")
	case <-timer.Chan():
		return nil
	}
}

func (r *RemoteStore) observe(op string, started time.Time, err *error) {
	r.metrics.ObserveDuration(op, r.clock.Since(started))
	if *err != nil {
		r.metrics.IncFailure(op)
	}
}

func (r *RemoteStore) nextIDLocked() string {
	millis := r.clock.Now().UnixMilli()
	if millis <= r.lastID {
		millis = r.lastID + 1
	}
	r.lastID = millis
	return vendorIDPrefix + strconv.FormatInt(millis, 10)
}

// highestGeneratedID finds the largest ret<millis> id so restarts never
// hand out an id twice.
func highestGeneratedID(records []Vendor) int64 {
	var highest int64
	for _, v := range records {
		suffix, ok := strings.CutPrefix(v.ID, vendorIDPrefix)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(suffix, 10, 64)
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return highest
}
