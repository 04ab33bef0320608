// Package shop sells catalog items and applies their effects.
//
// Purchase flow:
//  1. Item lookup by display index
//  2. Consumable already owned -> ErrAlreadyOwned
//  3. Coins below cost -> ErrInsufficientFunds
//  4. Effect applied; an effect may refuse (ErrInvalidSacrifice) and then
//     nothing is charged
//  5. Coins debited, consumable recorded as owned
package shop

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/numberwarrior/internal/model"
	"github.com/udisondev/numberwarrior/internal/rng"
)

var (
	ErrUnknownItem       = errors.New("unknown shop item")
	ErrAlreadyOwned      = errors.New("consumable item already bought")
	ErrInsufficientFunds = errors.New("insufficient coins")
	ErrInvalidSacrifice  = errors.New("not enough health to sacrifice")
)

// Catalog supplies the shop items. *data.Registry implements it.
type Catalog interface {
	Items() []model.ShopItem
	Item(index int) (model.ShopItem, bool)
}

// RoundAdvancer starts the next round. *encounter.Generator implements it.
type RoundAdvancer interface {
	NextRound(p *model.Player) model.Encounter
}

// Note is a message key plus parameters for the presentation layer.
type Note struct {
	Key    string
	Params map[string]any
}

// Receipt describes a completed purchase.
type Receipt struct {
	Index int
	Item  model.ShopItem
	Note  Note
}

// Offer is one shop line as the player sees it.
type Offer struct {
	Index      int
	Item       model.ShopItem
	Affordable bool
}

// Engine sells items from a catalog.
type Engine struct {
	catalog Catalog
	rounds  RoundAdvancer
	rng     rng.Source
}

// NewEngine creates a shop engine.
func NewEngine(catalog Catalog, rounds RoundAdvancer, src rng.Source) *Engine {
	return &Engine{catalog: catalog, rounds: rounds, rng: src}
}

// Offers lists the items p can still buy, hiding owned consumables.
func (e *Engine) Offers(p *model.Player) []Offer {
	items := e.catalog.Items()
	out := make([]Offer, 0, len(items))
	for i, it := range items {
		if it.Consumable && p.Owns(it.Name) {
			continue
		}
		out = append(out, Offer{Index: i, Item: it, Affordable: p.Coins() >= it.Cost})
	}
	return out
}

// Buy purchases the item at index for p. On error neither p nor enc changes.
func (e *Engine) Buy(p *model.Player, enc *model.Encounter, index int) (Receipt, error) {
	item, ok := e.catalog.Item(index)
	if !ok {
		return Receipt{}, fmt.Errorf("%w: index %d", ErrUnknownItem, index)
	}
	if item.Consumable && p.Owns(item.Name) {
		return Receipt{}, fmt.Errorf("%w: %q", ErrAlreadyOwned, item.Name)
	}
	if p.Coins() < item.Cost {
		return Receipt{}, fmt.Errorf("%w: %q costs %d, have %d", ErrInsufficientFunds, item.Name, item.Cost, p.Coins())
	}

	apply, ok := effects[item.Effect]
	if !ok {
		return Receipt{}, fmt.Errorf("%w: %q has effect %s", ErrUnknownItem, item.Name, item.Effect)
	}
	note, err := apply(e, p, enc, item)
	if err != nil {
		return Receipt{}, fmt.Errorf("buying %q: %w", item.Name, err)
	}

	p.Spend(item.Cost)
	if item.Consumable {
		p.MarkOwned(item.Name)
	}

	slog.Debug("item bought",
		"item", item.Name,
		"effect", item.Effect,
		"cost", item.Cost,
		"coins", p.Coins(),
		"power", p.Power(),
		"health", p.Health())

	return Receipt{Index: index, Item: item, Note: note}, nil
}
