// Package data holds the boss and shop catalogs.
//
// A Registry is filled during startup (built-ins, then mods) and sealed
// with Close before the first round. After Close it is read-only and the
// slices it hands out must not be modified.
package data

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/udisondev/numberwarrior/internal/model"
)

var (
	ErrRegistryClosed = errors.New("catalog registry is closed")
	ErrDuplicateItem  = errors.New("duplicate shop item")
	ErrUnknownEffect  = errors.New("unknown effect")
	ErrEmptyCatalog   = errors.New("catalog has no bosses")
	ErrInvalidEntry   = errors.New("invalid catalog entry")
)

// Registry is the append-only catalog of bosses and shop items.
type Registry struct {
	bosses []model.BossDefinition
	items  []model.ShopItem
	byName map[string]int
	mods   []ModInfo
	closed bool
}

// NewRegistry returns an empty, open registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// NewBuiltinRegistry returns an open registry holding the built-in catalog.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, b := range builtinBosses {
		// built-ins are valid by construction
		_ = r.RegisterBoss(b)
	}
	for _, it := range builtinItems {
		_ = r.RegisterItem(it)
	}
	return r
}

// RegisterBoss appends a boss definition.
func (r *Registry) RegisterBoss(b model.BossDefinition) error {
	if r.closed {
		return ErrRegistryClosed
	}
	if err := validateBoss(b); err != nil {
		return err
	}
	r.bosses = append(r.bosses, b)
	return nil
}

// RegisterItem appends a shop item. Names are unique across the shop.
func (r *Registry) RegisterItem(it model.ShopItem) error {
	if r.closed {
		return ErrRegistryClosed
	}
	if err := validateItem(it); err != nil {
		return err
	}
	if _, ok := r.byName[it.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateItem, it.Name)
	}
	r.byName[it.Name] = len(r.items)
	r.items = append(r.items, it)
	return nil
}

// Close seals the registry. It fails if there is no boss to pick from.
func (r *Registry) Close() error {
	if r.closed {
		return nil
	}
	if len(r.bosses) == 0 {
		return ErrEmptyCatalog
	}
	r.closed = true
	slog.Info("catalog sealed",
		"bosses", len(r.bosses),
		"items", len(r.items),
		"mods", len(r.mods))
	return nil
}

// Closed reports whether the registry is sealed.
func (r *Registry) Closed() bool { return r.closed }

// Bosses returns the boss roster.
func (r *Registry) Bosses() []model.BossDefinition { return r.bosses }

// Items returns the shop items in display order.
func (r *Registry) Items() []model.ShopItem { return r.items }

// Item returns the shop item at index.
func (r *Registry) Item(index int) (model.ShopItem, bool) {
	if index < 0 || index >= len(r.items) {
		return model.ShopItem{}, false
	}
	return r.items[index], true
}

// ItemByName looks up a shop item by its identity key.
func (r *Registry) ItemByName(name string) (model.ShopItem, int, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return model.ShopItem{}, -1, false
	}
	return r.items[idx], idx, true
}

// Mods returns the mod files seen during loading, enabled or not.
func (r *Registry) Mods() []ModInfo { return r.mods }

func validateBoss(b model.BossDefinition) error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("%w: boss name is required", ErrInvalidEntry)
	}
	if b.Effect == model.BossEffectNone || b.Effect.String() == "unknown" {
		return fmt.Errorf("boss %q: %w %d", b.Name, ErrUnknownEffect, b.Effect)
	}
	if b.RewardMultiplier < 1 {
		return fmt.Errorf("%w: boss %q reward multiplier %.2f < 1", ErrInvalidEntry, b.Name, b.RewardMultiplier)
	}
	return nil
}

func validateItem(it model.ShopItem) error {
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("%w: item name is required", ErrInvalidEntry)
	}
	if it.Cost < 0 {
		return fmt.Errorf("%w: item %q cost %d < 0", ErrInvalidEntry, it.Name, it.Cost)
	}
	if it.Effect == model.EffectNone || it.Effect.String() == "unknown" {
		return fmt.Errorf("item %q: %w %d", it.Name, ErrUnknownEffect, it.Effect)
	}
	return nil
}
