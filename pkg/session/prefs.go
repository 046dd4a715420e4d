package session

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/bookfair/pkg/cache"
)

// Genres are the genre names a vendor can mark as preferred on the
// dashboard.
var Genres = []string{
	"Fiction", "Non-Fiction", "Science Fiction", "Fantasy",
	"Mystery", "Thriller", "Romance", "Historical",
	"Biography", "Self-Help", "Children's", "Young Adult",
	"Comics/Graphic Novels", "Poetry", "Academic/Textbooks",
}

// Preferences reads and writes a user's preferred genres.
type Preferences struct {
	kv   cache.Cache
	keys cache.Keyer
}

// NewPreferences creates a preference store over kv.
func NewPreferences(kv cache.Cache, keys cache.Keyer) *Preferences {
	if keys == nil {
		keys = cache.NewDefaultKeyer()
	}
	return &Preferences{kv: kv, keys: keys}
}

// Genres returns the saved genres of userID. Missing or unreadable entries
// yield an empty list.
func (p *Preferences) Genres(ctx context.Context, userID string) ([]string, error) {
	var genres []string
	ok, err := cache.GetJSON(ctx, p.kv, p.keys.GenresKey(userID), &genres)
	if errors.Is(err, cache.ErrCorrupt) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if !ok || genres == nil {
		return []string{}, nil
	}
	return genres, nil
}

// SaveGenres replaces the saved genres of userID. Names outside [Genres] are
// rejected.
func (p *Preferences) SaveGenres(ctx context.Context, userID string, genres []string) error {
	if userID == "" {
		return fmt.Errorf("save genres: no user")
	}
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		if !slices.Contains(Genres, g) {
			return fmt.Errorf("unknown genre %q", g)
		}
		if !slices.Contains(out, g) {
			out = append(out, g)
		}
	}
	return cache.SetJSON(ctx, p.kv, p.keys.GenresKey(userID), out, 0)
}

// Toggle adds genre to the saved list of userID, or removes it when present,
// and returns the new list.
func (p *Preferences) Toggle(ctx context.Context, userID, genre string) ([]string, error) {
	current, err := p.Genres(ctx, userID)
	if err != nil {
		return nil, err
	}
	if i := slices.Index(current, genre); i >= 0 {
		current = slices.Delete(current, i, i+1)
	} else {
		current = append(current, genre)
	}
	if err := p.SaveGenres(ctx, userID, current); err != nil {
		return nil, err
	}
	return current, nil
}
