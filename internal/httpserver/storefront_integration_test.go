package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"shopfront/internal/domain"
	"shopfront/internal/rest"
	analyticsrepo "shopfront/internal/repository/analytics"
	cartrepo "shopfront/internal/repository/cart"
	categoryrepo "shopfront/internal/repository/category"
	orderrepo "shopfront/internal/repository/order"
	productrepo "shopfront/internal/repository/product"
	userrepo "shopfront/internal/repository/user"
	"shopfront/internal/session"
	"shopfront/internal/shop"
)

// fakeStore is an in-memory stand-in for the remote JSON store. It speaks
// the same resource-per-collection dialect: GET with query filters, POST
// assigns ids, PATCH merges fields.
type fakeStore struct {
	mu     sync.Mutex
	nextID int
	data   map[string][]map[string]interface{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]map[string]interface{}{
		"products":   {},
		"categories": {},
		"users":      {},
		"orders":     {},
		"carts":      {},
	}}
}

func (f *fakeStore) seed(collection string, record map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[collection] = append(f.data[collection], record)
}

func (f *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	collection := parts[0]
	records, ok := f.data[collection]
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			matched := []map[string]interface{}{}
			for _, rec := range records {
				if matchesQuery(rec, r.URL.Query()) {
					matched = append(matched, rec)
				}
			}
			json.NewEncoder(w).Encode(matched)
		case http.MethodPost:
			var rec map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			f.nextID++
			rec["id"] = fmt.Sprintf("%s-%d", collection, f.nextID)
			f.data[collection] = append(records, rec)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(rec)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := parts[1]
	for i, rec := range records {
		if rec["id"] != id {
			continue
		}
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(rec)
		case http.MethodPatch:
			var patch map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			for k, v := range patch {
				rec[k] = v
			}
			json.NewEncoder(w).Encode(rec)
		case http.MethodDelete:
			f.data[collection] = append(records[:i], records[i+1:]...)
			json.NewEncoder(w).Encode(map[string]interface{}{})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}
	http.NotFound(w, r)
}

func matchesQuery(rec map[string]interface{}, query url.Values) bool {
	for key, vals := range query {
		if len(vals) == 0 {
			continue
		}
		if fmt.Sprintf("%v", rec[key]) != vals[0] {
			return false
		}
	}
	return true
}

type integrationEnv struct {
	store  *fakeStore
	router *gin.Engine
}

func newIntegrationEnv(t *testing.T) *integrationEnv {
	t.Helper()

	store := newFakeStore()
	store.seed("products", map[string]interface{}{
		"id": "p1", "name": "Trail Runner", "category": "Sneakers",
		"priceCents": float64(5000), "stock": float64(12),
	})
	store.seed("products", map[string]interface{}{
		"id": "p2", "name": "Wool Beanie", "category": "Hats",
		"priceCents": float64(1500), "stock": float64(3),
	})
	store.seed("categories", map[string]interface{}{"id": "c1", "name": "Sneakers"})
	store.seed("categories", map[string]interface{}{"id": "c2", "name": "Hats"})

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	store.seed("users", map[string]interface{}{
		"id": "u-admin", "name": "Admin", "email": "admin@example.com",
		"password": string(hash), "role": domain.RoleAdmin,
	})

	srv := httptest.NewServer(store)
	t.Cleanup(srv.Close)

	logger := discardLogger()
	client := rest.New(srv.URL, 2*time.Second, logger)

	sessions, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open session store: %v", err)
	}
	t.Cleanup(func() { sessions.Close() })

	manager := shop.New(shop.Deps{
		Products:   productrepo.NewHTTP(client, logger),
		Categories: categoryrepo.NewHTTP(client),
		Users:      userrepo.NewHTTP(client, logger),
		Orders:     orderrepo.NewHTTP(client, logger),
		Carts:      cartrepo.NewHTTP(client, logger),
		Analytics:  analyticsrepo.NewHTTP(client),
		Sessions:   sessions,
	}, logger)
	manager.Initialize(context.Background())

	router, err := buildRouter(logger, Deps{Manager: manager, Pinger: client})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return &integrationEnv{store: store, router: router}
}

func (e *integrationEnv) do(t *testing.T, method, path string, body interface{}, wantStatus int) map[string]interface{} {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("%s %s: expected %d, got %d (body %s)", method, path, wantStatus, rec.Code, rec.Body.String())
	}
	if rec.Body.Len() == 0 {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		return nil
	}
	return out
}

func TestStorefrontFlow_Integration(t *testing.T) {
	env := newIntegrationEnv(t)

	env.do(t, http.MethodPost, "/auth/register", map[string]string{
		"name": "Casey", "email": "casey@example.com", "password": "hunter22",
	}, http.StatusCreated)
	me := env.do(t, http.MethodGet, "/me", nil, http.StatusOK)
	if me["user"].(map[string]interface{})["email"] != "casey@example.com" {
		t.Fatalf("unexpected current user: %v", me)
	}

	env.do(t, http.MethodPost, "/cart/items", map[string]string{"productId": "p1"}, http.StatusNoContent)
	env.do(t, http.MethodPost, "/cart/items", map[string]string{"productId": "p1"}, http.StatusNoContent)
	env.do(t, http.MethodPost, "/cart/items", map[string]string{"productId": "p2"}, http.StatusNoContent)

	cart := env.do(t, http.MethodGet, "/cart", nil, http.StatusOK)
	if cart["totalCents"].(float64) != 11500 {
		t.Fatalf("expected cart total 11500, got %v", cart["totalCents"])
	}
	if cart["itemCount"].(float64) != 3 {
		t.Fatalf("expected 3 items, got %v", cart["itemCount"])
	}

	checkout := env.do(t, http.MethodPost, "/checkout", map[string]string{
		"shippingAddress": "12 Main St", "paymentMethod": "card",
	}, http.StatusCreated)
	// subtotal 11500 + shipping 1000 + 8% tax 920
	if checkout["totalCents"].(float64) != 13420 {
		t.Fatalf("expected order total 13420, got %v", checkout["totalCents"])
	}
	orderID, _ := checkout["orderId"].(string)
	if orderID == "" {
		t.Fatalf("expected order id in checkout response")
	}

	cart = env.do(t, http.MethodGet, "/cart", nil, http.StatusOK)
	if cart["itemCount"].(float64) != 0 {
		t.Fatalf("expected cart emptied after checkout, got %v", cart["itemCount"])
	}

	env.store.mu.Lock()
	if len(env.store.data["orders"]) != 1 {
		t.Fatalf("expected 1 persisted order, got %d", len(env.store.data["orders"]))
	}
	if len(env.store.data["carts"]) != 1 {
		t.Fatalf("expected 1 cart record, got %d", len(env.store.data["carts"]))
	}
	remoteItems := env.store.data["carts"][0]["items"].([]interface{})
	env.store.mu.Unlock()
	if len(remoteItems) != 0 {
		t.Fatalf("expected remote cart emptied, got %d items", len(remoteItems))
	}

	cancelled := env.do(t, http.MethodPost, "/orders/"+orderID+"/cancel", nil, http.StatusOK)
	if cancelled["status"] != domain.OrderCancelled {
		t.Fatalf("expected cancelled status, got %v", cancelled["status"])
	}
	env.do(t, http.MethodPost, "/orders/"+orderID+"/cancel", nil, http.StatusInternalServerError)
}

func TestAdminFlow_Integration(t *testing.T) {
	env := newIntegrationEnv(t)

	env.do(t, http.MethodPost, "/auth/admin-login", map[string]string{
		"email": "admin@example.com", "password": "admin-secret",
	}, http.StatusOK)

	stats := env.do(t, http.MethodGet, "/admin/stats", nil, http.StatusOK)
	if stats["totalProducts"].(float64) != 2 {
		t.Fatalf("expected 2 products in stats, got %v", stats["totalProducts"])
	}

	created := env.do(t, http.MethodPost, "/admin/products", map[string]interface{}{
		"name": "Canvas Tote", "category": "Bags", "priceCents": 2200, "stock": 40,
	}, http.StatusCreated)
	if id, _ := created["id"].(string); id == "" {
		t.Fatalf("expected created product id, got %v", created["id"])
	}

	products := httptest.NewRecorder()
	env.router.ServeHTTP(products, httptest.NewRequest(http.MethodGet, "/products?category=Bags", nil))
	if products.Code != http.StatusOK {
		t.Fatalf("list products: got %d", products.Code)
	}
	var listed []domain.Product
	if err := json.Unmarshal(products.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Canvas Tote" {
		t.Fatalf("expected the new product in catalog, got %+v", listed)
	}
}

func TestStorefrontRejectsNonAdmin_Integration(t *testing.T) {
	env := newIntegrationEnv(t)

	env.do(t, http.MethodPost, "/auth/register", map[string]string{
		"name": "Casey", "email": "casey@example.com", "password": "hunter22",
	}, http.StatusCreated)
	env.do(t, http.MethodGet, "/admin/stats", nil, http.StatusForbidden)
	env.do(t, http.MethodPost, "/auth/admin-login", map[string]string{
		"email": "casey@example.com", "password": "hunter22",
	}, http.StatusUnauthorized)
}
