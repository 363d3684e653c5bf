package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/storefrontlabs/storefront-api/internal/api/report"
	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

type stubCartService struct {
	listFn   func(ctx context.Context, userID int64) ([]*domain.CartEntry, error)
	addFn    func(ctx context.Context, userID, productID int64, quantity int) (*domain.CartEntry, error)
	updateFn func(ctx context.Context, userID, entryID int64, quantity int) (*domain.CartEntry, error)
	removeFn func(ctx context.Context, userID, entryID int64) error
}

func (s *stubCartService) List(ctx context.Context, userID int64) ([]*domain.CartEntry, error) {
	return s.listFn(ctx, userID)
}

func (s *stubCartService) Add(ctx context.Context, userID, productID int64, quantity int) (*domain.CartEntry, error) {
	return s.addFn(ctx, userID, productID, quantity)
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, userID, entryID int64, quantity int) (*domain.CartEntry, error) {
	return s.updateFn(ctx, userID, entryID, quantity)
}

func (s *stubCartService) Remove(ctx context.Context, userID, entryID int64) error {
	return s.removeFn(ctx, userID, entryID)
}

func withClaims(c echo.Context, userID int64, role domain.Role) {
	c.Set("user_id", userID)
	c.Set("role", string(role))
}

func TestCartHandler_Add(t *testing.T) {
	stub := &stubCartService{
		addFn: func(_ context.Context, userID, productID int64, quantity int) (*domain.CartEntry, error) {
			if userID != 5 {
				t.Fatalf("expected claims user id 5, got %d", userID)
			}
			return &domain.CartEntry{ID: 1, UserID: userID, ProductID: productID, Quantity: quantity}, nil
		},
	}
	h := NewCartHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/cart",
		`{"product_id":7,"quantity":2}`)
	withClaims(c, 5, domain.RoleUser)

	out := h.Add(c)
	if out.Failed() {
		t.Fatalf("unexpected failure: %+v", out)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

// The user id always comes from the validated claims; a request arriving
// without them is rejected before the service runs.
func TestCartHandler_MissingClaims(t *testing.T) {
	h := NewCartHandler(&stubCartService{
		listFn: func(context.Context, int64) ([]*domain.CartEntry, error) {
			t.Fatal("service must not run without claims")
			return nil, nil
		},
	})

	c, rec := newTestContext(t, http.MethodGet, "/api/cart", "")

	out := h.List(c)
	if !out.Failed() {
		t.Fatal("expected failure outcome")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCartHandler_AddRejectsZeroQuantity(t *testing.T) {
	h := NewCartHandler(&stubCartService{
		addFn: func(context.Context, int64, int64, int) (*domain.CartEntry, error) {
			t.Fatal("service must not run on validation failure")
			return nil, nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/api/cart",
		`{"product_id":7,"quantity":0}`)
	withClaims(c, 5, domain.RoleUser)

	out := h.Add(c)
	if out.Kind != report.KindValidation {
		t.Fatalf("expected validation classification, got %q", out.Kind)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCartHandler_PatchNotFound(t *testing.T) {
	h := NewCartHandler(&stubCartService{
		updateFn: func(context.Context, int64, int64, int) (*domain.CartEntry, error) {
			return nil, domain.ErrCartEntryNotFound
		},
	})

	c, rec := newTestContext(t, http.MethodPatch, "/api/cart/9", `{"quantity":3}`)
	c.SetParamNames("id")
	c.SetParamValues("9")
	withClaims(c, 5, domain.RoleUser)

	out := h.Patch(c)
	if out.Kind != report.KindValidation {
		t.Fatalf("expected validation classification, got %q", out.Kind)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCartHandler_Remove(t *testing.T) {
	removed := false
	h := NewCartHandler(&stubCartService{
		removeFn: func(_ context.Context, userID, entryID int64) error {
			removed = true
			if userID != 5 || entryID != 9 {
				t.Fatalf("unexpected args: %d %d", userID, entryID)
			}
			return nil
		},
	})

	c, rec := newTestContext(t, http.MethodDelete, "/api/cart/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")
	withClaims(c, 5, domain.RoleUser)

	out := h.Remove(c)
	if out.Failed() {
		t.Fatalf("unexpected failure: %+v", out)
	}
	if !removed {
		t.Fatal("service not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
