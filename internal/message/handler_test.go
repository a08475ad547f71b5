package message

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := NewHandler(newTestService(NewMemoryRepository()), nil)
	r := chi.NewRouter()
	r.Mount("/api/marketplace/message", h.Routes())
	r.Mount("/api/contacts", h.ContactRoutes())
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHandlerMessaging(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/marketplace/message", "application/json",
		strings.NewReader(`{"from":"alice","to":"bob","offerId":"o1","text":"hello"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("send status = %d, want 201", resp.StatusCode)
	}

	var byOffer []MessageResponse
	if status := getJSON(t, srv.URL+"/api/marketplace/message/o1", &byOffer); status != http.StatusOK {
		t.Fatalf("list status = %d", status)
	}
	if len(byOffer) != 1 || byOffer[0].Text != "hello" || byOffer[0].From != "alice" {
		t.Fatalf("unexpected messages: %+v", byOffer)
	}

	var thread []MessageResponse
	getJSON(t, srv.URL+"/api/contacts/bob/messages?with=alice", &thread)
	if len(thread) != 1 {
		t.Fatalf("thread = %+v", thread)
	}

	var contacts ContactsResponse
	getJSON(t, srv.URL+"/api/contacts/bob", &contacts)
	if len(contacts.Contacts) != 1 || contacts.Contacts[0] != "alice" {
		t.Fatalf("contacts = %+v", contacts)
	}

	if status := getJSON(t, srv.URL+"/api/contacts/bob/messages", nil); status != http.StatusBadRequest {
		t.Errorf("thread without with= status = %d, want 400", status)
	}
}

func TestHandlerSendMissingField(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/marketplace/message", "application/json",
		strings.NewReader(`{"from":"alice","to":"bob","text":"hello"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
