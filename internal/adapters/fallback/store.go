package fallback

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/ceylontrails/travelmatch/internal/domain/entities"
	"github.com/ceylontrails/travelmatch/internal/domain/repositories"
)

// AccommodationStore serves the synthetic lodging pool loaded once at startup.
type AccommodationStore struct {
	items []entities.Accommodation
}

// GuideStore serves the synthetic guide pool loaded once at startup.
type GuideStore struct {
	items []entities.Guide
}

var (
	_ repositories.AccommodationRepository = (*AccommodationStore)(nil)
	_ repositories.GuideRepository         = (*GuideStore)(nil)
)

// LoadAccommodations reads a JSON array of accommodations. A missing file
// yields an empty store so the service can run on live data alone.
func LoadAccommodations(path string) (*AccommodationStore, error) {
	var items []entities.Accommodation
	if err := readJSON(path, &items); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Origin = entities.OriginSynthetic
	}
	return &AccommodationStore{items: items}, nil
}

// LoadGuides reads a JSON array of guides.
func LoadGuides(path string) (*GuideStore, error) {
	var items []entities.Guide
	if err := readJSON(path, &items); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Origin = entities.OriginSynthetic
	}
	return &GuideStore{items: items}, nil
}

func NewAccommodationStore(items []entities.Accommodation) *AccommodationStore {
	cp := make([]entities.Accommodation, len(items))
	copy(cp, items)
	for i := range cp {
		cp[i].Origin = entities.OriginSynthetic
	}
	return &AccommodationStore{items: cp}
}

func NewGuideStore(items []entities.Guide) *GuideStore {
	cp := make([]entities.Guide, len(items))
	copy(cp, items)
	for i := range cp {
		cp[i].Origin = entities.OriginSynthetic
	}
	return &GuideStore{items: cp}
}

func (s *AccommodationStore) Len() int { return len(s.items) }

func (s *GuideStore) Len() int { return len(s.items) }

// ListCandidates returns a fresh copy of the whole pool; the filter is ignored
// because the pipeline applies every rule itself.
func (s *AccommodationStore) ListCandidates(_ context.Context, _ repositories.CandidateFilter) ([]*entities.Accommodation, error) {
	out := make([]*entities.Accommodation, len(s.items))
	for i := range s.items {
		item := s.items[i]
		out[i] = &item
	}
	return out, nil
}

func (s *GuideStore) ListCandidates(_ context.Context, _ repositories.CandidateFilter) ([]*entities.Guide, error) {
	out := make([]*entities.Guide, len(s.items))
	for i := range s.items {
		item := s.items[i]
		out[i] = &item
	}
	return out, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", path).Msg("fallback pool file not found, starting with an empty pool")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read fallback pool %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode fallback pool %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes items as an indented JSON array, creating or truncating path.
func WriteJSON(path string, items any) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
