package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/specwork/specwork-go/tokenstore"
)

func newTestClient(t *testing.T, baseURL string, token string) *Client {
	t.Helper()

	tokens := tokenstore.NewMemoryStore()
	if token != "" {
		tokens = tokenstore.NewMemoryStoreWithToken(token)
	}

	c, err := New(Config{BaseURL: baseURL, Tokens: tokens})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() should fail without a base URL")
	}
}

func TestDo_RequireAuthRejectsBeforeNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the network without a token")
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "")

	err := c.do(context.Background(), requestOptions{
		method:      http.MethodGet,
		path:        "/me",
		requireAuth: true,
	})
	if !errors.Is(err, ErrAuthRequired) {
		t.Errorf("error = %v, want ErrAuthRequired", err)
	}
}

func TestDo_AuthorizationHeaderCannotBeOverridden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer stored-token" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer stored-token")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "stored-token")

	headers := map[string]string{
		"authorization": "Bearer attacker-token",
		"X-Custom":      "kept",
	}
	if err := c.Do(context.Background(), http.MethodGet, "/orders", nil, headers, nil); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
}

func TestDo_CallerHeadersAreMerged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Custom"); got != "value" {
			t.Errorf("X-Custom = %q, want value", got)
		}
		if got := r.Header.Get("X-Request-ID"); got == "" {
			t.Error("X-Request-ID should be set")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "")
	err := c.Do(context.Background(), http.MethodGet, "/orders", nil, map[string]string{"X-Custom": "value"}, nil)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
}

func TestDo_ErrorBodyMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "X"})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "")
	err := c.Do(context.Background(), http.MethodGet, "/orders", nil, nil, nil)

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if apiErr.Message != "X" {
		t.Errorf("Message = %q, want X", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode = %d, want 422", apiErr.StatusCode)
	}

	var raw map[string]string
	if err := json.Unmarshal(apiErr.Raw, &raw); err != nil {
		t.Fatalf("Raw is not valid JSON: %v", err)
	}
	if raw["message"] != "X" {
		t.Errorf("Raw message = %q, want X", raw["message"])
	}
}

func TestDo_ErrorBodyFallbacks(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		wantMsg  string
		wantCode string
	}{
		{"error field", http.StatusBadRequest, `{"error":"bad input"}`, "bad input", ""},
		{"code only", http.StatusPaymentRequired, `{"code":"insufficient_credits"}`, "insufficient_credits", "insufficient_credits"},
		{"plain text", http.StatusBadGateway, "upstream down", "upstream down", ""},
		{"empty body", http.StatusInternalServerError, "", "request failed", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			c := newTestClient(t, server.URL, "")
			err := c.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if apiErr.Message != tc.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tc.wantMsg)
			}
			if apiErr.Code != tc.wantCode {
				t.Errorf("Code = %q, want %q", apiErr.Code, tc.wantCode)
			}
		})
	}
}

func TestDo_EmptyBodyResolvesToZeroValue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "")

	var out Order
	if err := c.Do(context.Background(), http.MethodGet, "/orders/1", nil, nil, &out); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if out.ID != 0 {
		t.Errorf("out.ID = %d, want zero value", out.ID)
	}
}

func TestDo_NonJSONBodyDoesNotFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "")

	var out Order
	if err := c.Do(context.Background(), http.MethodGet, "/orders/1", nil, nil, &out); err != nil {
		t.Fatalf("Do() error = %v, want nil for unparseable 2xx body", err)
	}
	if out.ID != 0 {
		t.Errorf("out.ID = %d, want zero value", out.ID)
	}
}

func TestIsStatusAndIsCode(t *testing.T) {
	err := &Error{StatusCode: 402, Code: "insufficient_credits", Message: "top up"}

	if !IsStatus(err, 402) {
		t.Error("IsStatus(402) = false, want true")
	}
	if IsStatus(err, 404) {
		t.Error("IsStatus(404) = true, want false")
	}
	if !IsCode(err, "insufficient_credits") {
		t.Error("IsCode(insufficient_credits) = false, want true")
	}
	if IsCode(errors.New("plain"), "insufficient_credits") {
		t.Error("IsCode on a plain error = true, want false")
	}
}

func TestResourceLabel(t *testing.T) {
	cases := map[string]string{
		"/orders/42":          "orders",
		"/orders":             "orders",
		"/me/subscription":    "me",
		"/":                   "root",
		"/subscription-plans": "subscription-plans",
	}
	for path, want := range cases {
		if got := resourceLabel(path); got != want {
			t.Errorf("resourceLabel(%q) = %q, want %q", path, got, want)
		}
	}
}
