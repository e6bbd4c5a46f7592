package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/angelmondragon/storefront/internal/basket"
	"github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/internal/session"
	"github.com/angelmondragon/storefront/internal/snapshots"
	"github.com/angelmondragon/storefront/internal/vendors"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/types"
)

type storefront struct {
	clock    *clockwork.FakeClock
	replica  *vendors.Replica
	session  *session.Manager
	basket   *basket.Basket
	orders   *orders.Service
	checkout checkout.Service
}

func newStorefront(t *testing.T) *storefront {
	t.Helper()
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	remote, err := vendors.OpenRemoteStore(ctx, vendors.RemoteParams{
		Store: snapshots.NewMemoryStore(),
		Key:   "storefront_vendors_db",
		Clock: clock,
	})
	if err != nil {
		t.Fatalf("open remote: %v", err)
	}
	replica := vendors.NewReplica(remote, nil)
	if err := replica.FetchAll(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	orderSvc, err := orders.NewService(orders.ServiceParams{Clock: clock, Config: config.DefaultOrdersConfig()})
	if err != nil {
		t.Fatalf("orders: %v", err)
	}
	t.Cleanup(orderSvc.Close)

	b := basket.New()
	co, err := checkout.NewService(b, orderSvc, checkout.InstantPayments{Clock: clock}, config.DefaultBillingConfig(), nil)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	return &storefront{
		clock:    clock,
		replica:  replica,
		session:  session.NewManager(replica, nil),
		basket:   b,
		orders:   orderSvc,
		checkout: co,
	}
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch v := body.(type) {
		case string:
			reader = bytes.NewBufferString(v)
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				t.Fatalf("marshal body: %v", err)
			}
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return envelope.Error
}
