// Package quote provides the quote of the day. It never fails: when the
// quote service is unreachable a local quote is used instead.
package quote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"tableflip.dev/lyfocus/pkg/store"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

// Cache keys, relative to the namespace.
const (
	FieldQuote = "dailyQuote"
	FieldDate  = "quoteDate"
)

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

func (q Quote) String() string {
	return fmt.Sprintf("%q - %s", q.Text, q.Author)
}

// Fallback is used when the service cannot be reached.
var Fallback = []Quote{
	{"The secret of getting ahead is getting started.", "Mark Twain"},
	{"Believe you can and you're halfway there.", "Theodore Roosevelt"},
	{"The only way to do great work is to love what you do.", "Steve Jobs"},
	{"Success is not final, failure is not fatal: it is the courage to continue that counts.", "Winston Churchill"},
	{"Don't watch the clock; do what it does. Keep going.", "Sam Levenson"},
	{"The future depends on what you do today.", "Mahatma Gandhi"},
	{"You are never too old to set another goal or to dream a new dream.", "C.S. Lewis"},
	{"It does not matter how slowly you go as long as you do not stop.", "Confucius"},
	{"Everything you've ever wanted is on the other side of fear.", "George Addair"},
	{"Dream big and dare to fail.", "Norman Vaughan"},
	{"The best time to plant a tree was 20 years ago. The second best time is now.", "Chinese Proverb"},
	{"Your limitation, it's only your imagination.", "Unknown"},
	{"Great things never come from comfort zones.", "Unknown"},
	{"Success doesn't just find you. You have to go out and get it.", "Unknown"},
	{"The harder you work for something, the greater you'll feel when you achieve it.", "Unknown"},
}

// FallbackFor picks the local quote for now's day of year.
func FallbackFor(now time.Time) Quote {
	return Fallback[now.Local().YearDay()%len(Fallback)]
}

// Fetcher fetches and caches the quote of the day.
type Fetcher struct {
	URL       string
	Client    *http.Client
	Store     store.Persistence
	Namespace string
	Logger    *slog.Logger
}

// New returns a Fetcher that gives up on the service after timeout.
func New(url string, timeout time.Duration, p store.Persistence, namespace string, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		URL:       url,
		Client:    &http.Client{Timeout: timeout},
		Store:     p,
		Namespace: namespace,
		Logger:    logger,
	}
}

func (f *Fetcher) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.Default()
	}
	return f.Logger
}

// Daily returns today's cached quote, else a fresh one from the service,
// else the local fallback. Whatever is returned is cached for the day.
func (f *Fetcher) Daily(ctx context.Context, now time.Time) Quote {
	today := timeutil.Day(now)
	if q, ok := f.cached(ctx, today); ok {
		return q
	}
	q, err := f.Fetch(ctx)
	if err != nil {
		f.logger().WarnContext(ctx, "quote service unavailable, using fallback", slog.Any("error", err))
		q = FallbackFor(now)
	}
	f.cache(ctx, today, q)
	return q
}

// zenQuote is one element of the service response.
type zenQuote struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Fetch asks the service for a random quote.
func (f *Fetcher) Fetch(ctx context.Context) (Quote, error) {
	if f.URL == "" {
		return Quote{}, errors.New("quote: no service url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("quote: %w", err)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("quote: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("quote: %s returned %s", f.URL, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return Quote{}, fmt.Errorf("quote: read body: %w", err)
	}
	var out []zenQuote
	if err := sonic.ConfigStd.Unmarshal(body, &out); err != nil {
		return Quote{}, fmt.Errorf("quote: decode: %w", err)
	}
	if len(out) == 0 || out[0].Q == "" {
		return Quote{}, errors.New("quote: empty response")
	}
	return Quote{Text: out[0].Q, Author: out[0].A}, nil
}

func (f *Fetcher) cached(ctx context.Context, today string) (Quote, bool) {
	if f.Store == nil {
		return Quote{}, false
	}
	day, err := f.Store.Read(ctx, store.Key(f.Namespace, FieldDate))
	if err != nil || day != today {
		return Quote{}, false
	}
	raw, err := f.Store.Read(ctx, store.Key(f.Namespace, FieldQuote))
	if err != nil {
		return Quote{}, false
	}
	var q Quote
	if err := sonic.ConfigStd.UnmarshalFromString(raw, &q); err != nil || q.Text == "" {
		return Quote{}, false
	}
	return q, true
}

func (f *Fetcher) cache(ctx context.Context, today string, q Quote) {
	if f.Store == nil {
		return
	}
	raw, err := sonic.ConfigStd.MarshalToString(q)
	if err == nil {
		err = f.Store.Write(ctx, store.Key(f.Namespace, FieldQuote), raw)
	}
	if err == nil {
		err = f.Store.Write(ctx, store.Key(f.Namespace, FieldDate), today)
	}
	if err != nil {
		f.logger().WarnContext(ctx, "quote not cached", slog.Any("error", err))
	}
}
