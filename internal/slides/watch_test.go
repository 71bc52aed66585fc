package slides

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestWatchReloadsOnWrite(t *testing.T) {
	path := writeDeck(t, "deck.json", `[{"slide_name": "a", "text": "one"}]`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan Deck, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, NewLoader(), path, 20*time.Millisecond, func(d Deck, err error) {
			if err == nil {
				reloaded <- d
			}
		})
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case d := <-reloaded:
			if d.Len() != 2 {
				t.Fatalf("expected reloaded deck with 2 slides, got %d", d.Len())
			}
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("watch returned %v", err)
			}
			return
		case <-tick.C:
			// The watcher may not be registered yet; keep rewriting.
			if err := os.WriteFile(path, []byte(`[{"slide_name": "a", "text": "one"}, {"slide_name": "b", "text": "two"}]`), 0o644); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatalf("timed out waiting for reload")
		}
	}
}
