package offer

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := newTestService(t, NewMemoryRepository(), nil)
	r := chi.NewRouter()
	r.Mount("/api/marketplace/offers", NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Routes())
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestHandlerCreateListDelete(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/marketplace/offers"

	resp, err := http.Post(base, "application/json", strings.NewReader(
		`{"user":"maria","offer":"coffee for a logo","preset":"Coffee Cart (Singapore)","tokenAmount":5,"cap":810}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	var created Offer
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	resp, err = http.Get(base)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var offers []Offer
	if err := json.NewDecoder(resp.Body).Decode(&offers); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(offers) != 1 || offers[0].ID != created.ID {
		t.Fatalf("unexpected list: %+v", offers)
	}

	req, _ := http.NewRequest(http.MethodDelete, base+"/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	defer resp.Body.Close()
	var del DeleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&del); err != nil {
		t.Fatalf("decode delete: %v", err)
	}
	if resp.StatusCode != http.StatusOK || !del.Success {
		t.Fatalf("delete = %d %+v", resp.StatusCode, del)
	}

	req, _ = http.NewRequest(http.MethodDelete, base+"/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE again: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestHandlerRejectsBadOffers(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/marketplace/offers"

	for _, body := range []string{
		`{"user":"maria","offer":"x","preset":"p","tokenAmount":0,"cap":10}`,
		`{"user":"maria","offer":"x","preset":"p","tokenAmount":11,"cap":10}`,
		`{"user":"maria","offer":"x","preset":"p","cap":10}`,
		`not json`,
	} {
		resp, err := http.Post(base, "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, resp.StatusCode)
		}
	}
}
