// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/mdhender/calc"
	"github.com/mdhender/calc/batch"
	"github.com/mdhender/calc/metrics"
	"github.com/mdhender/calc/model"
	store "github.com/mdhender/calc/stores/sqlite"
	"github.com/mdhender/calc/web/handlers"
)

func newServer(t *testing.T) (*httptest.Server, *store.SQLiteStore) {
	t.Helper()
	sqlStore, err := store.NewSQLiteStore()
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { sqlStore.Close() })

	svc := batch.NewService(sqlStore, metrics.NewCollector("test"), nil)
	h := handlers.New(sqlStore, svc, nil)
	mux := http.NewServeMux()
	h.Routes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, sqlStore
}

func postJSON(t *testing.T, srv *httptest.Server, body string) (*http.Response, handlers.ParseResponse) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/parse", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	var pr handlers.ParseResponse
	if resp.StatusCode != http.StatusBadRequest {
		if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return resp, pr
}

func TestAPIParse_Accepted(t *testing.T) {
	srv, _ := newServer(t)
	resp, pr := postJSON(t, srv, `{"input":"10+foo+20-30"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if pr.Run == nil || !pr.OK || pr.ID == "" {
		t.Fatalf("response = %+v, want an accepted, journaled run", pr)
	}
	if pr.Infix != "10+foo+20-30" || pr.Depth != 3 {
		t.Errorf("infix %q depth %d", pr.Infix, pr.Depth)
	}
	if pr.AST == nil || pr.AST.Kind != "operation" || pr.AST.Op != "Add" {
		t.Errorf("ast = %+v, want an Add operation", pr.AST)
	}
	if pr.AST.Right == nil || pr.AST.Right.Left == nil || pr.AST.Right.Left.Name != "foo" {
		t.Errorf("ast is not right nested: %+v", pr.AST)
	}
}

func TestAPIParse_Rejected(t *testing.T) {
	srv, _ := newServer(t)
	resp, pr := postJSON(t, srv, `{"input":"1 + 2"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	if pr.OK || pr.ErrorCode != calc.ErrCodeTokenizer || pr.Column != 2 {
		t.Errorf("run = ok %v code %q col %d", pr.OK, pr.ErrorCode, pr.Column)
	}
	if pr.AST != nil {
		t.Errorf("ast = %+v, want nil", pr.AST)
	}
	if !strings.Contains(pr.Diagnostic, "whitespace is not allowed") {
		t.Errorf("diagnostic = %q", pr.Diagnostic)
	}
}

func TestAPIParse_BadRequest(t *testing.T) {
	srv, _ := newServer(t)
	for _, body := range []string{`not json`, `{"expr":"a"}`} {
		resp, _ := postJSON(t, srv, body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, resp.StatusCode)
		}
	}
}

func TestAPIRuns(t *testing.T) {
	srv, _ := newServer(t)
	_, first := postJSON(t, srv, `{"input":"a"}`)
	postJSON(t, srv, `{"input":"b-"}`)
	postJSON(t, srv, `{"input":"c"}`)

	resp, err := http.Get(srv.URL + "/api/runs?limit=2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var runs []*model.Run
	if err := json.NewDecoder(resp.Body).Decode(&runs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}

	resp, err = http.Get(srv.URL + "/api/runs/" + first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var run model.Run
	if err := json.NewDecoder(resp.Body).Decode(&run); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if run.Input != "a" || run.Source != "api" {
		t.Errorf("run = %q from %q, want \"a\" from api", run.Input, run.Source)
	}

	for _, path := range []string{"/api/runs/no-such-run", "/api/runs?limit=0", "/api/runs?limit=x"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		resp.Body.Close()
		want := http.StatusBadRequest
		if strings.HasPrefix(path, "/api/runs/") {
			want = http.StatusNotFound
		}
		if resp.StatusCode != want {
			t.Errorf("%s: status = %d, want %d", path, resp.StatusCode, want)
		}
	}
}

func TestIndexAndParseForm(t *testing.T) {
	srv, sqlStore := newServer(t)

	resp, err := http.PostForm(srv.URL+"/parse", url.Values{"expr": {"x+<y>"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
	if strings.Contains(body, "<y>") {
		t.Errorf("input was not escaped:\n%s", body)
	}
	if !strings.Contains(body, "Rejected: TOKENIZER") {
		t.Errorf("missing rejection:\n%s", body)
	}

	resp, err = http.PostForm(srv.URL+"/parse", url.Values{"expr": {"1-2"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	body = readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(body, "Accepted") || !strings.Contains(body, "`-- Number(2)") {
		t.Errorf("missing accepted tree:\n%s", body)
	}

	resp, err = http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body = readBody(t, resp)
	if !strings.Contains(body, "2 runs, 1 accepted, 1 rejected") {
		t.Errorf("missing stats:\n%s", body)
	}
	if !strings.Contains(body, "TOKENIZER: 1") {
		t.Errorf("missing error counts:\n%s", body)
	}

	stats, err := sqlStore.Stats(t.Context())
	if err != nil || stats.Runs != 2 {
		t.Errorf("stats = %+v, %v; want 2 runs", stats, err)
	}

	resp, err = http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("/nope status = %d, want 404", resp.StatusCode)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(data)
}
