// Package testutil provides a canned marketplace API server for tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// APIServer is an in-memory stand-in for the marketplace backend. It serves
// a small fixture set and records mutations so tests can assert against
// them.
type APIServer struct {
	mu sync.Mutex

	server *httptest.Server

	orders       map[int64]map[string]any
	nextOrderID  int64
	subscription map[string]any
	loginToken   string
	requestCount map[string]int
}

// NewAPIServer starts a mock server with the default fixtures.
func NewAPIServer() *APIServer {
	s := &APIServer{
		orders:       make(map[int64]map[string]any),
		nextOrderID:  100,
		loginToken:   "test-token",
		requestCount: make(map[string]int),
	}

	s.orders[42] = map[string]any{
		"id":          int64(42),
		"title":       "Fix sink",
		"client_id":   int64(7),
		"category_id": int64(3),
		"status":      "open",
		"created_at":  time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC).Format(time.RFC3339),
	}

	r := mux.NewRouter()
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/orders", s.handleListOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders", s.handleCreateOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id:[0-9]+}", s.handleGetOrder).Methods(http.MethodGet)
	r.HandleFunc("/subscription-plans", s.handleListPlans).Methods(http.MethodGet)
	r.HandleFunc("/me/subscription", s.handleMySubscription).Methods(http.MethodGet)
	r.HandleFunc("/subscriptions", s.handlePurchase).Methods(http.MethodPost)
	r.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	})

	s.server = httptest.NewServer(s.countRequests(r))
	return s
}

// URL returns the server's base URL.
func (s *APIServer) URL() string {
	return s.server.URL
}

// Token returns the bearer token the server's login endpoint issues.
func (s *APIServer) Token() string {
	return s.loginToken
}

// Close shuts the server down.
func (s *APIServer) Close() {
	s.server.Close()
}

// RequestCount returns how many requests hit the given path.
func (s *APIServer) RequestCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestCount[path]
}

func (s *APIServer) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.mu.Lock()
		s.requestCount[req.URL.Path]++
		s.mu.Unlock()
		next.ServeHTTP(w, req)
	})
}

func (s *APIServer) handleLogin(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "email and password are required"})
		return
	}
	if body.Password == "wrong" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": s.loginToken,
		"token_type":   "bearer",
		"user":         map[string]any{"id": 7, "name": "Test Client", "role": "client", "created_at": time.Now().UTC().Format(time.RFC3339)},
	})
}

func (s *APIServer) handleListOrders(w http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]map[string]any, 0, len(s.orders))
	for _, order := range s.orders {
		items = append(items, order)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"meta":  map[string]int{"page": 1, "per_page": 20, "total": len(items), "total_pages": 1},
	})
}

func (s *APIServer) handleGetOrder(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(req)["id"], 10, 64)

	s.mu.Lock()
	order, ok := s.orders[id]
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "order not found"})
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *APIServer) handleCreateOrder(w http.ResponseWriter, req *http.Request) {
	if !authed(req) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
		return
	}

	var body map[string]any
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	s.nextOrderID++
	id := s.nextOrderID
	order := map[string]any{
		"id":          id,
		"title":       body["title"],
		"client_id":   int64(7),
		"category_id": body["category_id"],
		"status":      "open",
		"created_at":  time.Now().UTC().Format(time.RFC3339),
	}
	s.orders[id] = order
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, order)
}

func (s *APIServer) handleListPlans(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, []map[string]any{
		{"id": 1, "name": "Basic", "price": 490, "duration_days": 30},
		{"id": 3, "name": "Pro", "price": 990, "duration_days": 30},
	})
}

func (s *APIServer) handleMySubscription(w http.ResponseWriter, req *http.Request) {
	if !authed(req) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
		return
	}

	s.mu.Lock()
	sub := s.subscription
	s.mu.Unlock()

	if sub == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "no active subscription"})
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *APIServer) handlePurchase(w http.ResponseWriter, req *http.Request) {
	if !authed(req) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
		return
	}

	var body struct {
		PlanID int64 `json:"plan_id"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.PlanID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "plan_id is required"})
		return
	}

	now := time.Now().UTC()
	sub := map[string]any{
		"id":         int64(900),
		"plan_id":    body.PlanID,
		"user_id":    int64(7),
		"status":     "active",
		"started_at": now.Format(time.RFC3339),
		"expires_at": now.AddDate(0, 1, 0).Format(time.RFC3339),
	}

	s.mu.Lock()
	s.subscription = sub
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, sub)
}

func (s *APIServer) handleStats(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"specialists":      1200,
		"orders_completed": 5400,
		"markets":          37,
		"categories":       24,
		"generated_at":     time.Now().UTC().Format(time.RFC3339),
	})
}

func authed(req *http.Request) bool {
	return req.Header.Get("Authorization") != ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
