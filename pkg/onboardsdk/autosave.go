package onboardsdk

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// defaultAutosaveDelay is how long the wizard waits after the last edit
// before writing the draft. Typing inside the window keeps pushing the
// timer back.
const defaultAutosaveDelay = 800 * time.Millisecond

// autosaver debounces draft writes. Identical consecutive payloads are
// deduplicated by comparing their serialized form; after a failed save the
// dedup state is cleared so the same payload is retried on the next edit.
type autosaver struct {
	client *Client
	delay  time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	pending   map[string]any
	lastSaved string

	// afterFunc is swappable in tests to fire the debounce synchronously.
	afterFunc func(time.Duration, func()) *time.Timer
}

func newAutosaver(client *Client, delay time.Duration) *autosaver {
	return &autosaver{
		client:    client,
		delay:     delay,
		afterFunc: time.AfterFunc,
	}
}

// Schedule queues data to be saved once the debounce window closes. The
// payload is sanitized first; empty leaves are noise the server would strip
// anyway. Type-invalid snapshots are dropped silently — the server would
// reject them with a 400, and the next coherent edit supersedes them.
func (a *autosaver) Schedule(data map[string]any) {
	snap := sanitize(data)
	if !validSnapshot(snap) {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = snap
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = a.afterFunc(a.delay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = a.save(ctx)
	})
}

// Flush saves any pending payload immediately. Tests use it instead of
// waiting out the debounce window.
func (a *autosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	return a.save(ctx)
}

// Stop cancels any pending save without executing it.
func (a *autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = nil
}

func (a *autosaver) save(ctx context.Context) error {
	a.mu.Lock()
	data := a.pending
	a.pending = nil
	a.mu.Unlock()
	if data == nil {
		return nil
	}

	serialized, err := json.Marshal(data)
	if err != nil {
		return err
	}
	key := string(serialized)

	a.mu.Lock()
	if key == a.lastSaved {
		a.mu.Unlock()
		return nil
	}
	a.mu.Unlock()

	if _, err := a.client.SaveDraft(ctx, data); err != nil {
		// Forget the last success so the next identical edit retries.
		a.mu.Lock()
		a.lastSaved = ""
		a.mu.Unlock()
		return err
	}
	a.mu.Lock()
	a.lastSaved = key
	a.mu.Unlock()
	return nil
}

// sanitize drops empty strings, empty objects and empty arrays recursively.
// Zero numbers and false booleans are kept; absence of a value and an
// explicit zero mean different things.
func sanitize(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if cleaned, keep := sanitizeValue(v); keep {
			out[k] = cleaned
		}
	}
	return out
}

func sanitizeValue(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case string:
		if t == "" {
			return nil, false
		}
		return t, true
	case map[string]any:
		m := sanitize(t)
		if len(m) == 0 {
			return nil, false
		}
		return m, true
	case []any:
		var arr []any
		for _, item := range t {
			if cleaned, keep := sanitizeValue(item); keep {
				arr = append(arr, cleaned)
			}
		}
		if len(arr) == 0 {
			return nil, false
		}
		return arr, true
	default:
		return v, true
	}
}
