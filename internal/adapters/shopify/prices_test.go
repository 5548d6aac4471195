package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopify-price-sync/internal/adapters/shopify/dto"
)

func TestUpdateVariantPrice(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody dto.VariantUpdateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"variant":{"id":42,"price":"105"}}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), srv.Client(), nil)
	if err := client.UpdateVariantPrice(context.Background(), 42, "105"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Fatalf("expected PUT, got %s", gotMethod)
	}
	if gotPath != "/admin/api/2024-01/variants/42.json" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if gotBody.Variant.ID != 42 || gotBody.Variant.Price != "105" {
		t.Fatalf("unexpected body variant=%d price=%s", gotBody.Variant.ID, gotBody.Variant.Price)
	}
}

func TestUpdateVariantPriceRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":{"price":["is invalid"]}}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), srv.Client(), nil)
	err := client.UpdateVariantPrice(context.Background(), 42, "abc")
	if err == nil {
		t.Fatalf("expected error on 422")
	}
	if !strings.Contains(err.Error(), "variant 42 price update") {
		t.Fatalf("expected wrapped update error, got %v", err)
	}
}

func TestUpdateVariantPriceValidation(t *testing.T) {
	client := NewClient(testConfig("https://example.test"), nil, nil)
	if err := client.UpdateVariantPrice(context.Background(), 0, "105"); err == nil {
		t.Fatalf("expected error for missing variant id")
	}
	if err := client.UpdateVariantPrice(context.Background(), 42, "  "); err == nil {
		t.Fatalf("expected error for empty price")
	}
}
