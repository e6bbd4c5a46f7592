package vendors

import (
	"context"
	"sync"

	"github.com/angelmondragon/storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// Replica is the storefront's local copy of the vendor directory.
//
// Overlapping FetchAll calls are allowed; whichever response resolves last
// decides which vendors are listed, but no entry moves to a lower version. A failed fetch records the error and keeps the
// previous contents. Inputs are validated before any remote call.
type Replica struct {
	remote Remote
	logg   *logger.Logger

	mu       sync.Mutex
	vendors  []Vendor
	inflight int
	err      error
}

func NewReplica(remote Remote, logg *logger.Logger) *Replica {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Replica{remote: remote, logg: logg, vendors: []Vendor{}}
}

// Loading reports whether any fetch is in flight.
func (r *Replica) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inflight > 0
}

// Err returns the error of the most recently resolved fetch, if it failed.
func (r *Replica) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Replica) Vendors() []Vendor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneAll(r.vendors)
}

func (r *Replica) Vendor(id string) (Vendor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx := indexOf(r.vendors, id); idx >= 0 {
		return r.vendors[idx].Clone(), true
	}
	return Vendor{}, false
}

// Item resolves a product listed by a vendor.
func (r *Replica) Item(vendorID, itemID string) (catalog.Item, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := indexOf(r.vendors, vendorID)
	if idx < 0 {
		return catalog.Item{}, false
	}
	return r.vendors[idx].Item(itemID)
}

// FetchAll refreshes the replica from the remote store.
func (r *Replica) FetchAll(ctx context.Context) error {
	r.mu.Lock()
	r.inflight++
	r.mu.Unlock()

	vendors, err := r.remote.FetchAll(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inflight--
	if err != nil {
		r.err = err
		r.logg.Warn(r.logg.WithFields(ctx, map[string]any{
			"error":     err.Error(),
			"retryable": pkgerrors.IsRetryable(err),
		}), "vendor fetch failed, keeping previous directory")
		return err
	}
	r.vendors = r.newestOf(vendors)
	r.err = nil
	return nil
}

// newestOf keeps the local copy of a fetched vendor when it carries a
// higher version, so a fetch that read the store before an update cannot
// roll that update back. Membership follows the fetched list.
func (r *Replica) newestOf(fetched []Vendor) []Vendor {
	out := make([]Vendor, len(fetched))
	for i, v := range fetched {
		out[i] = v
		if idx := indexOf(r.vendors, v.ID); idx >= 0 && r.vendors[idx].Version > v.Version {
			out[i] = r.vendors[idx]
		}
	}
	return out
}

// FindByContact looks a vendor up by mobile number. A malformed number is
// rejected without contacting the remote store.
func (r *Replica) FindByContact(ctx context.Context, mobile string) (Vendor, bool, error) {
	if err := validateMobile(mobile); err != nil {
		return Vendor{}, false, err
	}
	return r.remote.FindByMobile(ctx, mobile)
}

// Update applies a partial update remotely, then replaces the replica entry
// with the returned record unless the replica already holds a newer version.
func (r *Replica) Update(ctx context.Context, input UpdateVendorInput) (Vendor, error) {
	if err := validateUpdate(input); err != nil {
		return Vendor{}, err
	}
	updated, err := r.remote.Update(ctx, input)
	if err != nil {
		return Vendor{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if idx := indexOf(r.vendors, updated.ID); idx >= 0 && updated.Version >= r.vendors[idx].Version {
		r.vendors[idx] = updated.Clone()
	}
	return updated, nil
}

// Register creates a new pending vendor and adds it to the replica.
func (r *Replica) Register(ctx context.Context, input RegisterVendorInput) (Vendor, error) {
	if err := validateRegister(input); err != nil {
		return Vendor{}, err
	}
	created, err := r.remote.Register(ctx, input)
	if err != nil {
		return Vendor{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if indexOf(r.vendors, created.ID) < 0 {
		r.vendors = append(r.vendors, created.Clone())
	}
	return created, nil
}
