package onboardsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// draftServer records PUT bodies and can be switched into failure mode.
type draftServer struct {
	mu       sync.Mutex
	saves    int
	lastBody map[string]any
	fail     bool
}

func (s *draftServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.fail {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
			return
		}
		var body struct {
			Data map[string]any `json:"data"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.saves++
		s.lastBody = body.Data
		_ = json.NewEncoder(w).Encode(draftEnvelope{Draft: &Draft{Data: body.Data}})
	})
}

func (s *draftServer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *draftServer) setFail(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = v
}

// manualSaver returns an autosaver whose debounce never fires on its own;
// the returned func plays the timer expiring.
func manualSaver(client *Client) (*autosaver, func()) {
	a := newAutosaver(client, time.Hour)
	var mu sync.Mutex
	var pending func()
	a.afterFunc = func(_ time.Duration, fn func()) *time.Timer {
		mu.Lock()
		pending = fn
		mu.Unlock()
		t := time.NewTimer(time.Hour)
		t.Stop()
		return t
	}
	fire := func() {
		mu.Lock()
		fn := pending
		pending = nil
		mu.Unlock()
		if fn != nil {
			fn()
		}
	}
	return a, fire
}

func TestAutosaveDebounceCoalesces(t *testing.T) {
	srv := &draftServer{}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	a, fire := manualSaver(NewClient(ts.URL, "token"))
	a.Schedule(map[string]any{"property": map[string]any{"city": "A"}})
	a.Schedule(map[string]any{"property": map[string]any{"city": "An"}})
	a.Schedule(map[string]any{"property": map[string]any{"city": "Annecy"}})
	fire()

	require.Equal(t, 1, srv.count(), "three edits inside the window make one write")
	require.Equal(t, map[string]any{"property": map[string]any{"city": "Annecy"}}, srv.lastBody)
}

func TestAutosaveDedupsIdenticalPayloads(t *testing.T) {
	srv := &draftServer{}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	a, _ := manualSaver(NewClient(ts.URL, "token"))
	data := map[string]any{"pricing": map[string]any{"monthlyRent": 900.0}}

	a.Schedule(data)
	require.NoError(t, a.Flush(context.Background()))
	a.Schedule(data)
	require.NoError(t, a.Flush(context.Background()))

	require.Equal(t, 1, srv.count(), "identical payload is not re-sent")

	a.Schedule(map[string]any{"pricing": map[string]any{"monthlyRent": 950.0}})
	require.NoError(t, a.Flush(context.Background()))
	require.Equal(t, 2, srv.count())
}

func TestAutosaveRetriesAfterFailure(t *testing.T) {
	srv := &draftServer{}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	a, _ := manualSaver(NewClient(ts.URL, "token"))
	first := map[string]any{"profile": map[string]any{"displayName": "Marc"}}
	edited := map[string]any{"profile": map[string]any{"displayName": "Marcel"}}

	a.Schedule(first)
	require.NoError(t, a.Flush(context.Background()))
	require.Equal(t, 1, srv.count())

	srv.setFail(true)
	a.Schedule(edited)
	require.Error(t, a.Flush(context.Background()))

	// The failed write cleared the dedup state, so undoing the edit back to
	// the already-saved payload still triggers a write.
	srv.setFail(false)
	a.Schedule(first)
	require.NoError(t, a.Flush(context.Background()))
	require.Equal(t, 2, srv.count(), "failure clears the dedup state")
}

func TestAutosaveSanitizesBeforeSending(t *testing.T) {
	srv := &draftServer{}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	a, _ := manualSaver(NewClient(ts.URL, "token"))
	a.Schedule(map[string]any{
		"property": map[string]any{"city": "Lyon", "address": ""},
		"season":   map[string]any{},
	})
	require.NoError(t, a.Flush(context.Background()))

	require.Equal(t, map[string]any{"property": map[string]any{"city": "Lyon"}}, srv.lastBody)
}

func TestAutosaveDropsTypeInvalidSnapshots(t *testing.T) {
	srv := &draftServer{}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	a, _ := manualSaver(NewClient(ts.URL, "token"))

	// A mid-edit snapshot with a string where a number belongs never leaves
	// the client; the server would only answer it with a 400.
	a.Schedule(map[string]any{"pricing": map[string]any{"monthlyRent": "2400"}})
	require.NoError(t, a.Flush(context.Background()))
	require.Zero(t, srv.count(), "invalid snapshot is discarded, not sent")

	a.Schedule(map[string]any{"photos": map[string]any{"images": []any{
		map[string]any{"url": "https://img.example/1.jpg", "isHero": "yes"},
	}}})
	require.NoError(t, a.Flush(context.Background()))
	require.Zero(t, srv.count())

	// The next coherent edit goes through as usual.
	a.Schedule(map[string]any{"pricing": map[string]any{"monthlyRent": 2400.0}})
	require.NoError(t, a.Flush(context.Background()))
	require.Equal(t, 1, srv.count())
	require.Equal(t, map[string]any{"pricing": map[string]any{"monthlyRent": 2400.0}}, srv.lastBody)
}

func TestAutosaveFlushWithoutPendingIsNoop(t *testing.T) {
	srv := &draftServer{}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	a, _ := manualSaver(NewClient(ts.URL, "token"))
	require.NoError(t, a.Flush(context.Background()))
	require.Zero(t, srv.count())
}
