package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubSource struct {
	items []Item
	err   error
}

func (s stubSource) Fetch(context.Context) ([]Item, error) {
	return s.items, s.err
}

func TestFileSource_Formats(t *testing.T) {
	cases := []struct {
		path string
		want []int64
	}{
		{"testdata/items.yaml", []int64{1, 3}},
		{"testdata/items.toml", []int64{2, 3}},
	}
	for _, tc := range cases {
		t.Run(filepath.Ext(tc.path), func(t *testing.T) {
			items, err := NewFileSource(tc.path).Fetch(context.Background())
			if err != nil {
				t.Fatalf("Fetch returned error: %v", err)
			}
			var ids []int64
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			if diff := cmp.Diff(tc.want, ids); diff != "" {
				t.Fatalf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFileSource_JSONBareAndWrapped(t *testing.T) {
	dir := t.TempDir()
	bare := filepath.Join(dir, "bare.json")
	wrapped := filepath.Join(dir, "wrapped.json")
	if err := os.WriteFile(bare, []byte(` [{"id":1,"name":"Apple","category":"Fruit","price":1.5,"rating":4.2}]`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(wrapped, []byte(`{"items":[{"id":2,"name":"Banana","category":"Fruit","price":0.5,"rating":3.8}]}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := NewFileSource(bare).Fetch(context.Background())
	if err != nil || len(got) != 1 || got[0].Name != "Apple" {
		t.Fatalf("bare Fetch = %v, %v", got, err)
	}
	got, err = NewFileSource(wrapped).Fetch(context.Background())
	if err != nil || len(got) != 1 || got[0].Name != "Banana" {
		t.Fatalf("wrapped Fetch = %v, %v", got, err)
	}
}

func TestFileSource_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewFileSource(filepath.Join(dir, "missing.json")).Fetch(context.Background()); err == nil {
		t.Fatalf("missing file returned nil error")
	}

	csv := filepath.Join(dir, "items.csv")
	if err := os.WriteFile(csv, []byte("id,name\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := NewFileSource(csv).Fetch(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unsupported item format") {
		t.Fatalf("csv error = %v, want unsupported format", err)
	}
}

func TestEmbeddedSource(t *testing.T) {
	items, err := EmbeddedSource{}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(items) < 10 {
		t.Fatalf("sample has %d items, want at least 10", len(items))
	}
	for _, it := range items {
		if err := Validate(it); err != nil {
			t.Fatalf("sample item %d invalid: %v", it.ID, err)
		}
	}
}

func TestHTTPSource_Fetch(t *testing.T) {
	var gotAccept, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path != "/items.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"items":[{"id":3,"name":"Carrot","category":"Veg","price":0.8,"rating":4.5}]}`))
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL + "/items.json")
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}
	items, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	want := []Item{{ID: 3, Name: "Carrot", Category: "Veg", Price: 0.8, Rating: 4.5}}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
	if gotUA != defaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUA, defaultUserAgent)
	}
}

func TestHTTPSource_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL)
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}
	_, err = src.Fetch(context.Background())
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Fatalf("Fetch error = %v, want status 503", err)
	}
}

func TestParseURL(t *testing.T) {
	u, err := parseURL(" example.com:8080/items ")
	if err != nil {
		t.Fatalf("parseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "example.com:8080" || u.Path != "/items" {
		t.Fatalf("parseURL = %s, want http://example.com:8080/items", u)
	}
	if _, err := parseURL("  "); err == nil {
		t.Fatalf("parseURL(empty) returned nil error")
	}
}

func TestLoad_DropsInvalidAndDuplicateItems(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	src := stubSource{items: []Item{
		{ID: 1, Name: "Apple", Category: "Fruit", Price: 1.5, Rating: 4.2},
		{ID: 2, Name: "", Category: "Fruit", Price: 0.5, Rating: 3.8},
		{ID: 3, Name: "Carrot", Category: "Veg", Price: -1, Rating: 4.5},
		{ID: 4, Name: "Kale", Category: "Veg", Price: 2, Rating: 7},
		{ID: 1, Name: "Apple again", Category: "Fruit", Price: 1, Rating: 1},
		{ID: 5, Name: "Leek", Category: "Veg", Price: 0, Rating: 0},
	}}

	items, err := Load(context.Background(), src, zap.New(core))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	if diff := cmp.Diff([]string{"Apple", "Leek"}, names); diff != "" {
		t.Fatalf("kept items mismatch (-want +got):\n%s", diff)
	}
	if n := logs.FilterMessage("dropping invalid item").Len(); n != 3 {
		t.Fatalf("invalid warnings = %d, want 3", n)
	}
	if n := logs.FilterMessage("dropping duplicate item id").Len(); n != 1 {
		t.Fatalf("duplicate warnings = %d, want 1", n)
	}
}

func TestLoad_FetchFailureYieldsEmptyList(t *testing.T) {
	boom := errors.New("network down")
	items, err := Load(context.Background(), stubSource{err: boom}, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("Load error = %v, want wrapped %v", err, boom)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("items = %#v, want empty non-nil list", items)
	}
}

func TestValidate(t *testing.T) {
	err := Validate(Item{ID: 0, Name: "x", Category: "y"})
	if !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("Validate error = %v, want ErrInvalidItem", err)
	}
	if !strings.Contains(err.Error(), "ID") {
		t.Fatalf("Validate error = %q, want it to name ID", err.Error())
	}
	if err := Validate(Item{ID: 1, Name: "x", Category: "y", Price: 0, Rating: 5}); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}
}
