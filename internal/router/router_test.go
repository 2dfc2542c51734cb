package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-adoption-hub/internal/adapters/storage/memory"
	"pet-adoption-hub/internal/bootstrap"
	"pet-adoption-hub/internal/catalogsim"
	"pet-adoption-hub/internal/config"
	"pet-adoption-hub/internal/router"
)

const apiKey = "test-key"

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	sim, err := catalogsim.New(context.Background(), catalogsim.Options{APIKey: apiKey, Seed: true})
	if err != nil {
		t.Fatalf("catalogsim: %v", err)
	}
	remote := httptest.NewServer(sim.Handler())
	t.Cleanup(remote.Close)

	eng, err := bootstrap.New(context.Background(), bootstrap.Options{
		Config: config.Config{
			CatalogBaseURL:   remote.URL,
			CatalogAPIKey:    apiKey,
			CatalogTimeout:   5 * time.Second,
			CatalogRPS:       100,
			StorageDriver:    config.DriverMemory,
			StorageNamespace: "router-test",
		},
		KV: memory.NewKV(),
	})
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() { _ = eng.Close() })

	ts := httptest.NewServer(router.NewRouter(router.Options{Service: eng.Service}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_AdoptionFlow(t *testing.T) {
	ts := newServer(t)

	// 1) Health
	{
		st, body := doReq(t, ts.URL, "GET", "/health", nil)
		if st != http.StatusOK || string(body) != "ok" {
			t.Fatalf("expected 200 ok, got %d body=%s", st, string(body))
		}
	}

	// 2) Refresh trae el catálogo sembrado
	{
		st, body := doReq(t, ts.URL, "POST", "/pets/refresh", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 refresh, got %d body=%s", st, string(body))
		}
		var resp struct {
			Count int `json:"count"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Count != 6 {
			t.Fatalf("expected 6 seeded pets, got %d", resp.Count)
		}
	}

	// 3) Sin sesión no se puede publicar
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets", map[string]any{"name": "Rex", "species": "Dog"})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 create pet logged out, got %d", st)
		}
	}

	register(t, ts.URL, "alice")
	register(t, ts.URL, "bob")

	// 4) Alice publica
	login(t, ts.URL, "alice")
	petID := createPet(t, ts.URL, map[string]any{
		"name":    "Rex",
		"species": "Dog",
		"breed":   "Labrador",
		"age":     3,
	})

	// 5) Alice no puede adoptar su propia mascota
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/adoption-requests", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 self adoption, got %d", st)
		}
	}

	// 6) Bob pide adoptar; la segunda vez es duplicada
	logout(t, ts.URL)
	login(t, ts.URL, "bob")
	{
		st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/adoption-requests", map[string]any{"message": "I have a garden"})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 adoption request, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/adoption-requests", nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate request, got %d", st)
		}
	}
	if n := alerts(t, ts.URL); n != 0 {
		t.Fatalf("requester alerts while pending: got %d", n)
	}

	// 7) Alice ve la alerta y aprueba
	logout(t, ts.URL)
	login(t, ts.URL, "alice")
	if n := alerts(t, ts.URL); n != 1 {
		t.Fatalf("owner alerts: got %d", n)
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/adoption-requests/bob/approve", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 approve, got %d body=%s", st, string(body))
		}
	}
	if n := alerts(t, ts.URL); n != 0 {
		t.Fatalf("owner alerts after approve: got %d", n)
	}

	// 8) La mascota queda adoptada, también en el remoto
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 detail, got %d body=%s", st, string(body))
		}
		var d struct {
			Pet struct {
				AdoptionStatus string `json:"adoptionStatus"`
			} `json:"pet"`
			AdoptedBy string `json:"adoptedBy"`
			IsOwner   bool   `json:"isOwner"`
		}
		_ = json.Unmarshal(body, &d)
		if d.Pet.AdoptionStatus != "Adopted" || d.AdoptedBy != "bob" || !d.IsOwner {
			t.Fatalf("unexpected detail: %s", string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/pets/refresh", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 refresh, got %d body=%s", st, string(body))
		}
	}

	// 9) Bob ve la resolución una vez
	logout(t, ts.URL)
	login(t, ts.URL, "bob")
	if n := alerts(t, ts.URL); n != 1 {
		t.Fatalf("requester alerts after approve: got %d", n)
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/me/adoption-requests/seen", map[string]any{"role": "requester"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 mark seen, got %d body=%s", st, string(body))
		}
	}
	if n := alerts(t, ts.URL); n != 0 {
		t.Fatalf("requester alerts after seen: got %d", n)
	}
}

func TestHTTP_BrowseFiltersResetPage(t *testing.T) {
	ts := newServer(t)

	if st, body := doReq(t, ts.URL, "POST", "/pets/refresh", nil); st != http.StatusOK {
		t.Fatalf("expected 200 refresh, got %d body=%s", st, string(body))
	}

	st, body := doReq(t, ts.URL, "PATCH", "/browse", map[string]any{"viewMode": "EXCLUDE", "excludedSpecies": []string{"dog"}})
	if st != http.StatusOK {
		t.Fatalf("expected 200 patch browse, got %d body=%s", st, string(body))
	}

	var res struct {
		Page struct {
			Page  int `json:"page"`
			Total int `json:"total"`
			Items []struct {
				Species string `json:"species"`
			} `json:"items"`
		} `json:"page"`
		Filters struct {
			ViewMode string `json:"viewMode"`
		} `json:"filters"`
	}
	_ = json.Unmarshal(body, &res)
	if res.Filters.ViewMode != "exclude" || res.Page.Page != 1 {
		t.Fatalf("unexpected filters: %s", string(body))
	}
	for _, it := range res.Page.Items {
		if it.Species == "Dog" {
			t.Fatalf("dog not excluded: %s", string(body))
		}
	}

	st, _ = doReq(t, ts.URL, "PATCH", "/browse", map[string]any{"viewMode": "sideways"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 unknown view mode, got %d", st)
	}

	// la exclusión quedó en preferencias
	st, body = doReq(t, ts.URL, "GET", "/preferences", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 preferences, got %d", st)
	}
	var prefs struct {
		ExcludedSpecies []string `json:"excludedSpecies"`
	}
	_ = json.Unmarshal(body, &prefs)
	if len(prefs.ExcludedSpecies) != 1 || prefs.ExcludedSpecies[0] != "dog" {
		t.Fatalf("unexpected preferences: %s", string(body))
	}
}

func TestHTTP_RemoteErrorsPassThrough(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "POST", "/auth/login", map[string]any{"email": "ghost@x.io", "password": "password123"})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 bad credentials, got %d body=%s", st, string(body))
	}

	var resp struct {
		Reasons []string `json:"reasons"`
	}
	_ = json.Unmarshal(body, &resp)
	if len(resp.Reasons) != 1 || resp.Reasons[0] != "Invalid email or password" {
		t.Fatalf("unexpected reasons: %s", string(body))
	}
}

func register(t *testing.T, baseURL, name string) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auth/register", map[string]any{
		"name":     name,
		"email":    name + "@stud.noroff.no",
		"password": "password123",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register %s, got %d body=%s", name, st, string(body))
	}
}

func login(t *testing.T, baseURL, name string) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auth/login", map[string]any{
		"email":    name + "@stud.noroff.no",
		"password": "password123",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login %s, got %d body=%s", name, st, string(body))
	}
}

func logout(t *testing.T, baseURL string) {
	t.Helper()

	if st, _ := doReq(t, baseURL, "POST", "/auth/logout", nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 logout, got %d", st)
	}
}

func alerts(t *testing.T, baseURL string) int {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/me/alerts", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 alerts, got %d body=%s", st, string(body))
	}
	var resp struct {
		Count int `json:"count"`
	}
	_ = json.Unmarshal(body, &resp)
	return resp.Count
}

func createPet(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
