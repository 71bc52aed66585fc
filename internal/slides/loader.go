package slides

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type FSLoader struct{}

func NewLoader() *FSLoader { return &FSLoader{} }

// LoadDeck reads a deck from a .json, .yaml or .yml file. JSON decks may be
// a bare array of slides or an object with a "slides" key.
func (l *FSLoader) LoadDeck(ctx context.Context, path string) (Deck, error) {
	if err := ctx.Err(); err != nil {
		return Deck{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Deck{}, err
	}

	var deck Deck
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		deck, err = decodeJSON(b)
	case ".yaml", ".yml":
		deck, err = decodeYAML(b)
	default:
		return Deck{}, fmt.Errorf("load deck %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return Deck{}, fmt.Errorf("load deck %s: %w", path, err)
	}
	if len(deck.Slides) == 0 {
		return Deck{}, fmt.Errorf("load deck %s: %w", path, ErrNoSlides)
	}
	deck.Path = path
	return deck, nil
}

func decodeJSON(b []byte) (Deck, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []Slide
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return Deck{}, err
		}
		return Deck{Slides: list}, nil
	}
	var deck Deck
	if err := json.Unmarshal(trimmed, &deck); err != nil {
		return Deck{}, err
	}
	return deck, nil
}

func decodeYAML(b []byte) (Deck, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(b, &node); err != nil {
		return Deck{}, err
	}
	if len(node.Content) == 0 {
		return Deck{}, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var list []Slide
		if err := root.Decode(&list); err != nil {
			return Deck{}, err
		}
		return Deck{Slides: list}, nil
	}
	var deck Deck
	if err := root.Decode(&deck); err != nil {
		return Deck{}, err
	}
	return deck, nil
}
