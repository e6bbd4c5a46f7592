package enums

import "testing"

func TestOrderStatusSequence(t *testing.T) {
	want := []OrderStatus{
		OrderStatusPlaced,
		OrderStatusProcessing,
		OrderStatusOutForDelivery,
		OrderStatusDelivered,
	}
	got := OrderStatuses()
	if len(got) != len(want) {
		t.Fatalf("expected %d statuses, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s got %s", i, want[i], got[i])
		}
		if got[i].Rank() != i {
			t.Fatalf("expected rank %d for %s, got %d", i, got[i], got[i].Rank())
		}
	}

	next, ok := OrderStatusPlaced.Next()
	if !ok || next != OrderStatusProcessing {
		t.Fatalf("expected placed -> processing, got %s %v", next, ok)
	}
	if _, ok := OrderStatusDelivered.Next(); ok {
		t.Fatal("delivered must be terminal")
	}
	if !OrderStatusDelivered.IsTerminal() || OrderStatusPlaced.IsTerminal() {
		t.Fatal("unexpected terminal flags")
	}
	if OrderStatus("shipped").IsValid() {
		t.Fatal("unknown status should be invalid")
	}
}

func TestOrderStatusesReturnsCopy(t *testing.T) {
	got := OrderStatuses()
	got[0] = OrderStatusDelivered
	if OrderStatuses()[0] != OrderStatusPlaced {
		t.Fatal("mutating the returned slice must not affect the lifecycle")
	}
}

func TestParseHelpers(t *testing.T) {
	if _, err := ParseOrderStatus("out_for_delivery"); err != nil {
		t.Fatalf("parse order status: %v", err)
	}
	if _, err := ParseOrderStatus("lost"); err == nil {
		t.Fatal("expected error for unknown order status")
	}
	if _, err := ParseVendorStatus("pending"); err != nil {
		t.Fatalf("parse vendor status: %v", err)
	}
	if _, err := ParseVendorStatus("banned"); err == nil {
		t.Fatal("expected error for unknown vendor status")
	}
	if kind, err := ParseIdentityKind("vendor"); err != nil || kind != IdentityKindVendor {
		t.Fatalf("parse identity kind: %v %v", kind, err)
	}
	if driver, err := ParseStorageDriver(" SQLite "); err != nil || driver != StorageDriverSQLite || !driver.IsSQL() {
		t.Fatalf("parse storage driver: %v %v", driver, err)
	}
	if StorageDriverRedis.IsSQL() {
		t.Fatal("redis is not a sql driver")
	}
	if method, err := ParsePaymentMethod("UPI"); err != nil || method != PaymentMethodUPI {
		t.Fatalf("parse payment method: %v %v", method, err)
	}
	if _, err := ParsePaymentMethod("cash"); err == nil {
		t.Fatal("expected error for unsupported payment method")
	}
}
