package vendors

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront/internal/snapshots"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

func newLoadedReplica(t *testing.T) (*Replica, *snapshots.MemoryStore) {
	t.Helper()
	store := snapshots.NewMemoryStore()
	replica := NewReplica(openTestRemote(t, store, nil), nil)
	require.NoError(t, replica.FetchAll(context.Background()))
	return replica, store
}

func TestReplicaUpdateRatingIsVisibleLocallyAndAfterRestart(t *testing.T) {
	ctx := context.Background()
	replica, store := newLoadedReplica(t)

	before, ok := replica.Vendor("ret1")
	require.True(t, ok)
	require.Equal(t, 4.5, before.Rating)

	updated, err := replica.Update(ctx, UpdateVendorInput{ID: "ret1", Rating: float64Ptr(4.9)})
	require.NoError(t, err)
	require.Equal(t, 4.9, updated.Rating)

	local, ok := replica.Vendor("ret1")
	require.True(t, ok)
	require.Equal(t, 4.9, local.Rating)
	require.Equal(t, before.Name, local.Name)
	require.Equal(t, before.Email, local.Email)

	restarted := NewReplica(openTestRemote(t, store, nil), nil)
	require.NoError(t, restarted.FetchAll(ctx))
	persisted, ok := restarted.Vendor("ret1")
	require.True(t, ok)
	require.Equal(t, 4.9, persisted.Rating)
}

func TestReplicaUpdateUnknownVendorLeavesReplicaUntouched(t *testing.T) {
	replica, _ := newLoadedReplica(t)
	before := replica.Vendors()

	_, err := replica.Update(context.Background(), UpdateVendorInput{ID: "ret404", Rating: float64Ptr(3)})
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound), "unexpected error %v", err)
	require.Equal(t, before, replica.Vendors())
}

func TestReplicaUpdateMergesOnlyProvidedFields(t *testing.T) {
	replica, _ := newLoadedReplica(t)
	before, _ := replica.Vendor("ret2")

	_, err := replica.Update(context.Background(), UpdateVendorInput{
		ID:             "ret2",
		OperatingHours: StringPtr("7 AM - 11 PM"),
	})
	require.NoError(t, err)

	after, _ := replica.Vendor("ret2")
	require.Equal(t, "7 AM - 11 PM", after.OperatingHours)
	require.Equal(t, before.Name, after.Name)
	require.Equal(t, before.Rating, after.Rating)
	require.Equal(t, before.AccountNo, after.AccountNo)
	require.Len(t, after.Products, len(before.Products))
	require.Equal(t, before.Version+1, after.Version)
}

func TestReplicaUpdateNeverMovesToAnOlderVersion(t *testing.T) {
	ctx := context.Background()
	responses := map[string]Vendor{
		"B": {ID: "ret1", Name: "B", Version: 2},
		"A": {ID: "ret1", Name: "A", Version: 1},
	}
	remote := &stubRemote{update: func(in UpdateVendorInput) (Vendor, error) {
		return responses[*in.Name], nil
	}}
	replica := NewReplica(remote, nil)

	done := make(chan error, 1)
	go func() { done <- replica.FetchAll(ctx) }()
	remote.resolve(t, 0, fetchResult{vendors: []Vendor{{ID: "ret1", Name: "Seed"}}})
	require.NoError(t, <-done)

	// B was applied remotely after A but its response arrives first.
	_, err := replica.Update(ctx, UpdateVendorInput{ID: "ret1", Name: StringPtr("B")})
	require.NoError(t, err)
	_, err = replica.Update(ctx, UpdateVendorInput{ID: "ret1", Name: StringPtr("A")})
	require.NoError(t, err)

	local, ok := replica.Vendor("ret1")
	require.True(t, ok)
	require.Equal(t, "B", local.Name)
	require.Equal(t, int64(2), local.Version)
}

func TestReplicaStaleFetchKeepsNewerUpdate(t *testing.T) {
	ctx := context.Background()
	remote := &stubRemote{update: func(in UpdateVendorInput) (Vendor, error) {
		return Vendor{ID: in.ID, Name: *in.Name, Version: 1}, nil
	}}
	replica := NewReplica(remote, nil)

	done := make(chan error, 1)
	go func() { done <- replica.FetchAll(ctx) }()
	remote.resolve(t, 0, fetchResult{vendors: []Vendor{{ID: "ret1", Name: "Seed"}}})
	require.NoError(t, <-done)

	// This fetch read the store before the update below.
	go func() { done <- replica.FetchAll(ctx) }()
	require.Eventually(t, func() bool { return remote.callCount() == 2 }, time.Second, time.Millisecond)

	_, err := replica.Update(ctx, UpdateVendorInput{ID: "ret1", Name: StringPtr("Renamed")})
	require.NoError(t, err)

	remote.resolve(t, 1, fetchResult{vendors: []Vendor{{ID: "ret1", Name: "Seed"}, {ID: "ret9", Name: "Fresh"}}})
	require.NoError(t, <-done)

	local, ok := replica.Vendor("ret1")
	require.True(t, ok)
	require.Equal(t, "Renamed", local.Name)
	_, ok = replica.Vendor("ret9")
	require.True(t, ok)
}

func TestReplicaRejectsPartialPayout(t *testing.T) {
	replica, store := newLoadedReplica(t)
	before, _ := replica.Vendor("ret1")
	require.True(t, before.HasPayout())
	saves := store.Saves()

	_, err := replica.Update(context.Background(), UpdateVendorInput{ID: "ret1", BankName: StringPtr("")})
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "unexpected error %v", err)

	after, _ := replica.Vendor("ret1")
	require.True(t, after.HasPayout())
	require.Equal(t, before, after)
	require.Equal(t, saves, store.Saves())
}

func TestReplicaRejectsInvalidInputWithoutRemoteCalls(t *testing.T) {
	ctx := context.Background()
	remote := &stubRemote{}
	replica := NewReplica(remote, nil)

	_, _, err := replica.FindByContact(ctx, "12345")
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "unexpected error %v", err)

	_, err = replica.Update(ctx, UpdateVendorInput{ID: "ret1", Email: StringPtr("not-an-email")})
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "unexpected error %v", err)

	_, err = replica.Update(ctx, UpdateVendorInput{Name: StringPtr("No id")})
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "unexpected error %v", err)

	_, err = replica.Register(ctx, RegisterVendorInput{MobileNo: "9000000001", Email: "a@example.com"})
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "unexpected error %v", err)

	require.Zero(t, remote.callCount())
}

func TestReplicaFindByContact(t *testing.T) {
	ctx := context.Background()
	replica, _ := newLoadedReplica(t)

	vendor, ok, err := replica.FindByContact(ctx, "9876543212")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "ret3", vendor.ID)

	_, ok, err = replica.FindByContact(ctx, "9000000009")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReplicaLastResolvedFetchWins(t *testing.T) {
	ctx := context.Background()
	remote := &stubRemote{}
	replica := NewReplica(remote, nil)

	first := make(chan error, 1)
	second := make(chan error, 1)
	go func() { first <- replica.FetchAll(ctx) }()
	require.Eventually(t, func() bool { return remote.callCount() == 1 }, time.Second, time.Millisecond)
	go func() { second <- replica.FetchAll(ctx) }()
	require.Eventually(t, func() bool { return remote.callCount() == 2 }, time.Second, time.Millisecond)
	require.True(t, replica.Loading())

	remote.resolve(t, 1, fetchResult{vendors: []Vendor{{ID: "newer"}}})
	require.NoError(t, <-second)
	require.True(t, replica.Loading(), "first fetch is still in flight")

	remote.resolve(t, 0, fetchResult{vendors: []Vendor{{ID: "older"}}})
	require.NoError(t, <-first)
	require.False(t, replica.Loading())

	vendors := replica.Vendors()
	require.Len(t, vendors, 1)
	require.Equal(t, "older", vendors[0].ID)
}

func TestReplicaFetchFailureKeepsPreviousContents(t *testing.T) {
	ctx := context.Background()
	remote := &stubRemote{}
	replica := NewReplica(remote, nil)

	done := make(chan error, 1)
	go func() { done <- replica.FetchAll(ctx) }()
	remote.resolve(t, 0, fetchResult{vendors: []Vendor{{ID: "ret1", Name: "Kept"}}})
	require.NoError(t, <-done)

	go func() { done <- replica.FetchAll(ctx) }()
	remote.resolve(t, 1, fetchResult{err: errors.New("network down")})
	require.Error(t, <-done)

	require.Error(t, replica.Err())
	require.False(t, replica.Loading())
	kept, ok := replica.Vendor("ret1")
	require.True(t, ok)
	require.Equal(t, "Kept", kept.Name)

	go func() { done <- replica.FetchAll(ctx) }()
	remote.resolve(t, 2, fetchResult{vendors: []Vendor{{ID: "ret1", Name: "Fresh"}}})
	require.NoError(t, <-done)
	require.NoError(t, replica.Err())
}

func TestReplicaRegisterFoldsNewVendorIn(t *testing.T) {
	ctx := context.Background()
	replica, _ := newLoadedReplica(t)

	created, err := replica.Register(ctx, RegisterVendorInput{
		Name:      "Corner Shop",
		MobileNo:  "9000000001",
		Email:     "corner@example.com",
		AccountNo: "123456789",
		IFSCCode:  "KKBK0001234",
		BankName:  "Kotak",
	})
	require.NoError(t, err)
	require.Equal(t, enums.VendorStatusPending, created.Status)

	local, ok := replica.Vendor(created.ID)
	require.True(t, ok)
	require.Equal(t, "Corner Shop", local.Name)
	require.True(t, local.HasPayout())
	require.Len(t, replica.Vendors(), 4)
}

func TestReplicaItemLookup(t *testing.T) {
	replica, _ := newLoadedReplica(t)

	item, ok := replica.Item("ret1", "prod4")
	require.True(t, ok)
	require.Equal(t, "Milk", item.Name)

	_, ok = replica.Item("ret1", "prod7")
	require.False(t, ok, "ret1 does not list snacks")
	_, ok = replica.Item("ret404", "prod1")
	require.False(t, ok)
}

func TestReplicaHandsOutCopies(t *testing.T) {
	replica, _ := newLoadedReplica(t)

	vendor, _ := replica.Vendor("ret1")
	vendor.Products[0].Name = "Mutated"
	list := replica.Vendors()
	list[0].Name = "Mutated"

	again, _ := replica.Vendor("ret1")
	require.Equal(t, "Apple", again.Products[0].Name)
	require.Equal(t, "Shyam Super Bazzar", again.Name)
}
