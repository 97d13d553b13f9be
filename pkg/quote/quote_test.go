package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/lyfocus/pkg/store"
)

var now = time.Date(2026, time.October, 18, 8, 0, 0, 0, time.Local)

func TestDailyFetchesOnceAndCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"q":"Stay hungry.","a":"Someone","h":"<b>"}]`))
	}))
	defer srv.Close()

	ctx := context.Background()
	p := store.NewMemory()
	f := New(srv.URL, time.Second, p, "lyfocus", nil)

	q := f.Daily(ctx, now)
	assert.Equal(t, Quote{Text: "Stay hungry.", Author: "Someone"}, q)
	assert.Equal(t, q, f.Daily(ctx, now.Add(time.Hour)))
	assert.Equal(t, int32(1), hits.Load())

	day, err := p.Read(ctx, "lyfocus_quoteDate")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-18", day)

	f.Daily(ctx, now.AddDate(0, 0, 1))
	assert.Equal(t, int32(2), hits.Load(), "a new day fetches again")
}

func TestDailyFallsBack(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusTooManyRequests)
		},
		"empty list": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		},
		"garbage": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			f := New(srv.URL, time.Second, store.NewMemory(), "lyfocus", nil)
			assert.Equal(t, FallbackFor(now), f.Daily(context.Background(), now))
		})
	}
}

func TestDailyWithoutStoreOrService(t *testing.T) {
	f := &Fetcher{}
	assert.Equal(t, FallbackFor(now), f.Daily(context.Background(), now))
}

func TestFallbackFor(t *testing.T) {
	jan1 := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.Local)
	assert.Equal(t, Fallback[1], FallbackFor(jan1))
	assert.Equal(t, Fallback[0], FallbackFor(jan1.AddDate(0, 0, 14)))
	assert.Equal(t, `"Dream big and dare to fail." - Norman Vaughan`, Fallback[9].String())
}
