package catalogsim_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption-hub/internal/catalogsim"
)

func newSim(t *testing.T) *httptest.Server {
	t.Helper()

	sim, err := catalogsim.New(context.Background(), catalogsim.Options{APIKey: "k", Seed: true})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	ts := httptest.NewServer(sim.Handler())
	t.Cleanup(ts.Close)
	return ts
}

type errorBody struct {
	Errors []struct {
		Message string   `json:"message"`
		Path    []string `json:"path"`
	} `json:"errors"`
	StatusCode int `json:"statusCode"`
}

func doReq(t *testing.T, method, url string, headers map[string]string, body any) (int, []byte) {
	t.Helper()

	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(res.Body)
	return res.StatusCode, buf.Bytes()
}

func TestHandler_ListIsEnveloped(t *testing.T) {
	ts := newSim(t)

	st, body := doReq(t, "GET", ts.URL+"/pets", nil, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}

	var resp struct {
		Data []struct {
			ID    string `json:"id"`
			Owner struct {
				Name string `json:"name"`
			} `json:"owner"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 6 || resp.Data[0].Owner.Name != "shelter" {
		t.Fatalf("unexpected list: %s", string(body))
	}
}

func TestHandler_ErrorShape(t *testing.T) {
	ts := newSim(t)

	cases := []struct {
		name    string
		method  string
		path    string
		headers map[string]string
		body    any
		status  int
		message string
	}{
		{"unknown pet", "GET", "/pets/nope", nil, nil, http.StatusNotFound, "No pet with such ID"},
		{"missing api key", "POST", "/pets", nil, map[string]any{"name": "Rex"}, http.StatusUnauthorized, "No API key header was found"},
		{"missing bearer", "POST", "/pets", map[string]string{"X-Noroff-API-Key": "k"}, map[string]any{"name": "Rex"}, http.StatusUnauthorized, "No authorization header provided"},
		{"bad login", "POST", "/auth/login", map[string]string{"X-Noroff-API-Key": "k"}, map[string]any{"email": "a@x.io", "password": "password123"}, http.StatusUnauthorized, "Invalid email or password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, body := doReq(t, tc.method, ts.URL+tc.path, tc.headers, tc.body)
			if st != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, st, string(body))
			}

			var eb errorBody
			if err := json.Unmarshal(body, &eb); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(eb.Errors) != 1 || eb.Errors[0].Message != tc.message || eb.StatusCode != tc.status {
				t.Fatalf("unexpected error body: %s", string(body))
			}
		})
	}
}

func TestHandler_CreateRequiresNameAndSpecies(t *testing.T) {
	ts := newSim(t)
	key := map[string]string{"X-Noroff-API-Key": "k"}

	if st, body := doReq(t, "POST", ts.URL+"/auth/register", key, map[string]any{"name": "alice", "email": "alice@x.io", "password": "password123"}); st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
	}

	st, body := doReq(t, "POST", ts.URL+"/auth/login", key, map[string]any{"email": "alice@x.io", "password": "password123"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
	}
	var login struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	_ = json.Unmarshal(body, &login)

	headers := map[string]string{"X-Noroff-API-Key": "k", "Authorization": "Bearer " + login.Data.AccessToken}
	st, body = doReq(t, "POST", ts.URL+"/pets", headers, map[string]any{"name": "Rex"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", st, string(body))
	}

	var eb errorBody
	_ = json.Unmarshal(body, &eb)
	if len(eb.Errors) != 1 || len(eb.Errors[0].Path) != 2 {
		t.Fatalf("expected field paths, got %s", string(body))
	}
}
