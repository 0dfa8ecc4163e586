package store

import (
	"cblls_server/lib"
	"cblls_server/storage"
	"cblls_server/structs"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MonkyMars/gecho"
)

// MaxHeaderSlides bounds the hero carousel. Enforced at the mutation
// boundary, not in the data model.
const MaxHeaderSlides = 4

var (
	ErrNoCategories  = errors.New("at least one category is required")
	ErrNoSlides      = errors.New("at least one header slide is required")
	ErrTooManySlides = errors.New("at most four header slides are allowed")
	ErrUnknownIcon   = errors.New("unknown category icon")
)

// DefaultConfig returns the hardcoded configuration seed used before
// the first admin save and as the fallback for missing sub-collections.
func DefaultConfig() structs.AppConfig {
	return structs.AppConfig{
		WhatsappNumber: "5493364180739",
		InstagramURL:   "https://instagram.com/cblls",
		FacebookURL:    "https://facebook.com/cblls",
		TwitterURL:     "https://twitter.com/cblls",
		LinkedinURL:    "https://linkedin.com",
		Email:          "ventas@cbllstech.com",
		Address:        "San Nicolas de los Arroyos, Buenos Aires, Argentina",
		PhoneDisplay:   "+54 9 336 418-0739",
		GeneralInfo:    "Líderes en tecnología premium.",
		FooterText:     "© 2026 CBLLS. Todos los derechos reservados.",
		HeaderSlides: []structs.HeaderSlide{
			{
				ID:       "slide1",
				Image:    "https://images.unsplash.com/photo-1550745165-9bc0b252726f?q=80&w=2670&auto=format&fit=crop",
				Title:    "Innovación CBLLS",
				Subtitle: "La mejor tecnología en tus manos.",
				CTAText:  "Ver Catálogo",
				CTALink:  "#productos",
			},
		},
		Categories: []structs.Category{
			{ID: "mobile", Name: "Móviles", Icon: structs.IconSmartphone},
			{ID: "kitchen", Name: "Cocina", Icon: structs.IconCoffee},
			{ID: "tv", Name: "TV & Audio", Icon: structs.IconTV},
			{ID: "computing", Name: "Cómputo", Icon: structs.IconLaptop},
		},
	}
}

// Config returns the durable snapshot merged over the defaults. Each
// empty sub-collection falls back independently, so the result always
// carries at least one category and one header slide.
func (s *Store) Config() structs.AppConfig {
	data, found, err := s.backend.Get(context.Background(), storage.KeyConfig)
	if err != nil {
		s.logger.Warn("Failed to read config document", gecho.Field("error", err))
		return DefaultConfig()
	}
	if !found {
		return DefaultConfig()
	}

	var cfg structs.AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		s.logger.Warn("Discarding corrupt config document", gecho.Field("error", err))
		return DefaultConfig()
	}

	defaults := DefaultConfig()
	if len(cfg.Categories) == 0 {
		cfg.Categories = defaults.Categories
	}
	if len(cfg.HeaderSlides) == 0 {
		cfg.HeaderSlides = defaults.HeaderSlides
	}
	return cfg
}

// SaveConfig persists the whole configuration document and notifies
// config subscribers. Slide and category bounds are checked here, at
// the mutation boundary, before anything touches storage.
func (s *Store) SaveConfig(ctx context.Context, cfg structs.AppConfig) (structs.AppConfig, error) {
	if len(cfg.Categories) == 0 {
		return structs.AppConfig{}, ErrNoCategories
	}
	if len(cfg.HeaderSlides) == 0 {
		return structs.AppConfig{}, ErrNoSlides
	}
	if len(cfg.HeaderSlides) > MaxHeaderSlides {
		return structs.AppConfig{}, ErrTooManySlides
	}
	for _, category := range cfg.Categories {
		if !category.Icon.Valid() {
			return structs.AppConfig{}, fmt.Errorf("%w: %q", ErrUnknownIcon, category.Icon)
		}
	}

	for i := range cfg.HeaderSlides {
		if cfg.HeaderSlides[i].ID == "" {
			cfg.HeaderSlides[i].ID = lib.GenerateSlideID()
		}
	}

	s.mu.Lock()

	data, err := json.Marshal(cfg)
	if err != nil {
		s.mu.Unlock()
		return structs.AppConfig{}, err
	}

	if err := s.backend.Set(ctx, storage.KeyConfig, data); err != nil {
		s.mu.Unlock()
		s.logger.Warn("Config write rejected", gecho.Field("error", err))
		return structs.AppConfig{}, err
	}

	s.mu.Unlock()

	s.configListeners.notify(cfg)
	return cfg, nil
}
