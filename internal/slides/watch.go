package slides

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 250 * time.Millisecond

// ReloadFunc receives the reloaded deck, or the load/watch error.
type ReloadFunc func(deck Deck, err error)

// Watch reloads the deck at path whenever the file is written, created or
// renamed into place. Bursts of events within debounce collapse into one
// reload. The directory is watched so editors that replace the file on save
// are still seen. Watch blocks until ctx is done.
func Watch(ctx context.Context, loader Loader, path string, debounce time.Duration, onReload ReloadFunc) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !relevant(ev.Op) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Stop()
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			onReload(Deck{}, err)
		case <-fire:
			fire = nil
			deck, err := loader.LoadDeck(ctx, path)
			onReload(deck, err)
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}
