package datasource

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"catalog-viewer/internal/domain"

	"go.uber.org/zap"
)

const catalogFixture = `{"products": [
	{"deleted": false, "price": "$123.45", "brand_name": "Wonderful Widgets", "id": 1001, "hidden": false, "product_name": "Most Wonderful Widget"},
	{"deleted": true, "price": "$10.00", "brand_name": "Acme", "id": 2003, "hidden": false, "product_name": "Anvil - Two Pack"},
	{"deleted": false, "price": "$123.45", "brand_name": "Acme", "id": 2000, "hidden": false, "product_name": "Anvil"},
	{"deleted": false, "price": "$123.45", "brand_name": "Wonderful Widgets", "id": 1000, "hidden": false, "product_name": "Widget 3000"},
	{"deleted": false, "price": "$123.45", "brand_name": "Wonderful Widgets", "id": 1001, "hidden": false, "product_name": "Most Wonderful Widget"},
	{"deleted": false, "price": "$123.45", "brand_name": "Hooli", "id": 2004, "hidden": false, "product_name": "Nucleus"},
	{"deleted": false, "price": "$123.45", "brand_name": "Hooli", "id": 2004, "hidden": false, "product_name": "Nucleus"},
	{"deleted": false, "price": "$10.00", "brand_name": "Acme", "id": 2001, "hidden": false, "product_name": "Giant Anvil"},
	{"deleted": false, "price": "$10.00", "brand_name": "Acme", "id": 2002, "hidden": false, "product_name": "Mini Anvil"}
]}`

// fixtureProducts returns the normalized catalog fixture, duplicates included
func fixtureProducts(t *testing.T) []domain.Product {
	t.Helper()

	raw, err := decodeProductList(strings.NewReader(catalogFixture))
	if err != nil {
		t.Fatalf("Failed to decode fixture: %v", err)
	}

	products, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Failed to normalize fixture: %v", err)
	}
	return products
}

// newCatalogServer serves body with status and counts the requests it receives
func newCatalogServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, &hits
}

func newTestSource(url string) *RestDataSource {
	return NewRestDataSource(url, nil, 0, zap.NewNop())
}
