package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/marketledger-backend/internal/marketerr"
)

func TestAddProductAssignsIncreasingIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.newFundedUser(t, 0)

	var prev uint64
	for i := 0; i < 3; i++ {
		product, err := env.catalog.AddProduct(ctx, seller, "widget", 500, 10)
		if err != nil {
			t.Fatalf("AddProduct: %v", err)
		}
		if product.ID <= prev {
			t.Fatalf("product ids must be strictly increasing: prev=%d got=%d", prev, product.ID)
		}
		prev = product.ID
	}
	if prev != 3 {
		t.Fatalf("expected ids to start at 1 and reach 3: got=%d", prev)
	}
}

func TestAddProductRejectsNonPositiveInputs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := uuid.New()

	cases := []struct {
		name  string
		price int64
		stock int64
	}{
		{"zero price", 0, 5},
		{"negative price", -100, 5},
		{"zero stock", 500, 0},
		{"negative stock", 500, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := env.catalog.AddProduct(ctx, seller, "widget", tc.price, tc.stock); !errors.Is(err, marketerr.ErrInvalidArgument) {
				t.Fatalf("want=ErrInvalidArgument got=%v", err)
			}
		})
	}
}

func TestGetProductMissing(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.catalog.GetProduct(context.Background(), 42); !errors.Is(err, marketerr.ErrNotFound) {
		t.Fatalf("want=ErrNotFound got=%v", err)
	}
}

func TestGetProductReturnsDelistedRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.newFundedUser(t, 0)

	product, err := env.catalog.AddProduct(ctx, seller, "widget", 500, 10)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if _, err := env.catalog.Delist(ctx, product.ID, seller); err != nil {
		t.Fatalf("Delist: %v", err)
	}

	// The record is still readable; only mutation and purchase treat a
	// delisted product as missing.
	got, err := env.catalog.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct after delist: %v", err)
	}
	if got.Listed {
		t.Fatalf("expected listed=false after delist")
	}
}

func TestSetStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.newFundedUser(t, 0)

	product, err := env.catalog.AddProduct(ctx, seller, "widget", 500, 10)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	updated, err := env.catalog.SetStock(ctx, product.ID, seller, 3)
	if err != nil {
		t.Fatalf("SetStock: %v", err)
	}
	if updated.Stock != 3 {
		t.Fatalf("stock: want=3 got=%d", updated.Stock)
	}

	// Zero is a valid overwrite; negative is not.
	if _, err := env.catalog.SetStock(ctx, product.ID, seller, 0); err != nil {
		t.Fatalf("SetStock to zero: %v", err)
	}
	if _, err := env.catalog.SetStock(ctx, product.ID, seller, -1); !errors.Is(err, marketerr.ErrInvalidArgument) {
		t.Fatalf("negative stock: want=ErrInvalidArgument got=%v", err)
	}
}

func TestSetStockUnauthorizedLeavesRecordUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.newFundedUser(t, 0)
	stranger := uuid.New()

	product, err := env.catalog.AddProduct(ctx, seller, "widget", 500, 10)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	if _, err := env.catalog.SetStock(ctx, product.ID, stranger, 99); !errors.Is(err, marketerr.ErrUnauthorized) {
		t.Fatalf("want=ErrUnauthorized got=%v", err)
	}
	if _, err := env.catalog.Delist(ctx, product.ID, stranger); !errors.Is(err, marketerr.ErrUnauthorized) {
		t.Fatalf("want=ErrUnauthorized got=%v", err)
	}

	got, err := env.catalog.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Stock != 10 || !got.Listed {
		t.Fatalf("record mutated by unauthorized caller: stock=%d listed=%v", got.Stock, got.Listed)
	}
}

func TestDelistedProductRejectsMutation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.newFundedUser(t, 0)

	product, err := env.catalog.AddProduct(ctx, seller, "widget", 500, 10)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if _, err := env.catalog.Delist(ctx, product.ID, seller); err != nil {
		t.Fatalf("Delist: %v", err)
	}

	// A delisted product answers like a missing one, even to its seller.
	if _, err := env.catalog.SetStock(ctx, product.ID, seller, 5); !errors.Is(err, marketerr.ErrNotFound) {
		t.Fatalf("SetStock on delisted: want=ErrNotFound got=%v", err)
	}
	if _, err := env.catalog.Delist(ctx, product.ID, seller); !errors.Is(err, marketerr.ErrNotFound) {
		t.Fatalf("second Delist: want=ErrNotFound got=%v", err)
	}
}

func TestDelistDoesNotRecycleIdentifiers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.newFundedUser(t, 0)

	first, err := env.catalog.AddProduct(ctx, seller, "widget", 500, 10)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if _, err := env.catalog.Delist(ctx, first.ID, seller); err != nil {
		t.Fatalf("Delist: %v", err)
	}

	second, err := env.catalog.AddProduct(ctx, seller, "gadget", 700, 4)
	if err != nil {
		t.Fatalf("AddProduct after delist: %v", err)
	}
	if second.ID <= first.ID {
		t.Fatalf("delisted id reused: first=%d second=%d", first.ID, second.ID)
	}
}
