package slides

import "context"

type Loader interface {
	LoadDeck(ctx context.Context, path string) (Deck, error)
}
