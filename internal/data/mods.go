package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/numberwarrior/internal/model"
)

// ModInfo describes one mod file for the mods manager view.
type ModInfo struct {
	Name    string
	File    string
	Enabled bool
	Boss    string // registered boss name, empty if none
	Item    string // registered item name, empty if none
}

// modFile is the on-disk mod format, shared by JSON and YAML mods.
type modFile struct {
	Name     string       `yaml:"name" json:"name"`
	Enabled  bool         `yaml:"enabled" json:"enabled"`
	Boss     *modBoss     `yaml:"boss" json:"boss"`
	ShopItem *modShopItem `yaml:"shop_item" json:"shop_item"`
}

type modBoss struct {
	Name             string  `yaml:"name" json:"name"`
	Effect           string  `yaml:"effect" json:"effect"`
	Message          string  `yaml:"message" json:"message"`
	RewardMultiplier float64 `yaml:"reward_multiplier" json:"reward_multiplier"`
	Color            string  `yaml:"color" json:"color"`
}

type modShopItem struct {
	Name       string  `yaml:"name" json:"name"`
	Cost       int     `yaml:"cost" json:"cost"`
	Effect     string  `yaml:"effect" json:"effect"`
	Amount     float64 `yaml:"amount" json:"amount"`
	Consumable bool    `yaml:"consumable" json:"consumable"`
}

// LoadMods registers every enabled mod found in dir (*.json, *.yaml, *.yml).
// A missing directory is not an error. Files that fail to parse or register
// are logged and skipped; the returned count is the number of mods applied.
func (r *Registry) LoadMods(dir string) (int, error) {
	if r.closed {
		return 0, ErrRegistryClosed
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading mods dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, e.Name())
		}
	}
	slices.Sort(files)

	applied := 0
	for _, name := range files {
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("skipping mod", "file", path, "error", err)
			continue
		}
		info, err := r.ApplyMod(name, raw)
		if err != nil {
			slog.Warn("skipping mod", "file", path, "error", err)
			continue
		}
		if info.Enabled {
			applied++
		}
	}

	slog.Info("mods loaded", "dir", dir, "files", len(files), "applied", applied)
	return applied, nil
}

// ApplyMod parses one mod document and registers its boss and shop item.
// Disabled mods are recorded but not registered.
func (r *Registry) ApplyMod(file string, raw []byte) (ModInfo, error) {
	if r.closed {
		return ModInfo{}, ErrRegistryClosed
	}
	var mf modFile
	if err := decodeMod(file, raw, &mf); err != nil {
		return ModInfo{}, fmt.Errorf("parsing mod %s: %w", file, err)
	}

	info := ModInfo{Name: mf.Name, File: file, Enabled: mf.Enabled}
	if info.Name == "" {
		info.Name = "Unnamed Mod"
	}
	if !mf.Enabled {
		r.mods = append(r.mods, info)
		return info, nil
	}

	// Validate both parts before registering either.
	var boss *model.BossDefinition
	if mf.Boss != nil {
		b, err := mf.Boss.definition()
		if err != nil {
			return ModInfo{}, fmt.Errorf("mod %s: %w", file, err)
		}
		if err := validateBoss(b); err != nil {
			return ModInfo{}, fmt.Errorf("mod %s: %w", file, err)
		}
		boss = &b
	}
	var item *model.ShopItem
	if mf.ShopItem != nil {
		it, err := mf.ShopItem.definition()
		if err != nil {
			return ModInfo{}, fmt.Errorf("mod %s: %w", file, err)
		}
		if err := validateItem(it); err != nil {
			return ModInfo{}, fmt.Errorf("mod %s: %w", file, err)
		}
		if _, _, dup := r.ItemByName(it.Name); dup {
			return ModInfo{}, fmt.Errorf("mod %s: %w: %q", file, ErrDuplicateItem, it.Name)
		}
		item = &it
	}

	if boss != nil {
		if err := r.RegisterBoss(*boss); err != nil {
			return ModInfo{}, fmt.Errorf("mod %s: %w", file, err)
		}
		info.Boss = boss.Name
	}
	if item != nil {
		if err := r.RegisterItem(*item); err != nil {
			return ModInfo{}, fmt.Errorf("mod %s: %w", file, err)
		}
		info.Item = item.Name
	}

	r.mods = append(r.mods, info)
	slog.Debug("mod applied", "mod", info.Name, "boss", info.Boss, "item", info.Item)
	return info, nil
}

func (b modBoss) definition() (model.BossDefinition, error) {
	effect, ok := model.ParseBossEffect(b.Effect)
	if !ok || effect == model.BossEffectNone {
		return model.BossDefinition{}, fmt.Errorf("boss %q: %w %q", b.Name, ErrUnknownEffect, b.Effect)
	}
	mult := b.RewardMultiplier
	if mult == 0 {
		mult = 1
	}
	return model.BossDefinition{
		Name:             b.Name,
		Effect:           effect,
		MessageKey:       b.Message,
		RewardMultiplier: mult,
		Color:            b.Color,
	}, nil
}

func (s modShopItem) definition() (model.ShopItem, error) {
	effect, ok := model.ParseItemEffect(s.Effect)
	if !ok || effect == model.EffectNone {
		return model.ShopItem{}, fmt.Errorf("item %q: %w %q", s.Name, ErrUnknownEffect, s.Effect)
	}
	return model.ShopItem{
		Name:       s.Name,
		Cost:       s.Cost,
		Effect:     effect,
		Amount:     s.Amount,
		Consumable: s.Consumable,
	}, nil
}

func decodeMod(file string, raw []byte, mf *modFile) error {
	if strings.EqualFold(filepath.Ext(file), ".json") {
		return json.Unmarshal(raw, mf)
	}
	return yaml.Unmarshal(raw, mf)
}
