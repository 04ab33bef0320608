package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/udisondev/numberwarrior/internal/data"
	"github.com/udisondev/numberwarrior/internal/game/combat"
	"github.com/udisondev/numberwarrior/internal/game/session"
	"github.com/udisondev/numberwarrior/internal/game/shop"
	"github.com/udisondev/numberwarrior/internal/i18n"
	"github.com/udisondev/numberwarrior/internal/model"
)

const historyShown = 5

type modLister interface {
	Mods() []data.ModInfo
}

type scoreboard interface {
	Best(ctx context.Context, limit int) ([]model.RunRecord, error)
}

// console is the line-oriented front end. It renders session snapshots
// and turns commands into session calls.
type console struct {
	out        io.Writer
	tr         *i18n.Translator
	mods       modLister
	board      scoreboard // nil when history is off
	newSession func(lang string) (*session.Session, error)
	sess       *session.Session
}

func newConsole(out io.Writer, tr *i18n.Translator, mods modLister, board scoreboard,
	newSession func(lang string) (*session.Session, error), lang string,
) (*console, error) {
	c := &console{out: out, tr: tr, mods: mods, board: board, newSession: newSession}
	sess, err := newSession(lang)
	if err != nil {
		return nil, fmt.Errorf("starting run: %w", err)
	}
	c.sess = sess
	return c, nil
}

// Run processes commands until quit, end of input or ctx cancellation.
func (c *console) Run(ctx context.Context, lines <-chan string) error {
	c.say("title", nil)
	c.say("help", nil)
	c.status()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := c.handle(ctx, line); quit {
				return nil
			}
		}
	}
}

func (c *console) handle(ctx context.Context, line string) (quit bool) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "attack", "a":
		c.attack(ctx)
	case "shop", "s":
		c.shop()
	case "buy", "b":
		if len(fields) < 2 {
			c.say("unknown_item", nil)
			return false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			c.say("unknown_item", nil)
			return false
		}
		c.buy(ctx, n-1)
	case "lang", "l":
		if len(fields) < 2 {
			c.say("languages", map[string]any{"list": strings.Join(c.tr.Languages(), ", ")})
			return false
		}
		c.sess.SelectLanguage(c.tr.Resolve(fields[1]))
		c.say("title", nil)
	case "mods", "m":
		c.listMods()
	case "history", "h":
		c.history(ctx)
	case "stats":
		c.status()
	case "new", "n":
		c.restart()
	case "help", "?":
		c.say("help", nil)
	case "quit", "q", "exit":
		return true
	default:
		c.say("unknown_command", nil)
	}
	return false
}

func (c *console) attack(ctx context.Context) {
	before := c.sess.Encounter()
	res, err := c.sess.Attack(ctx)
	if err != nil {
		c.sayErr(err)
		return
	}

	if res.Critical {
		c.say("crit_hit", nil)
		c.say("crit_message", nil)
	}
	switch res.Outcome {
	case combat.OutcomeVictory:
		c.say("victory_message", map[string]any{"reward": res.Reward})
	case combat.OutcomeBossVictory:
		c.say("boss_defeated", map[string]any{"reward": res.Reward})
	case combat.OutcomeDefeat:
		c.say("defeat_message", map[string]any{"lives": res.LivesLeft})
	case combat.OutcomeGameOver:
		c.say("game_over", nil)
		c.say("game_over_message", nil)
		return
	}
	c.announceBoss(before)
	c.status()
}

func (c *console) buy(ctx context.Context, index int) {
	before := c.sess.Encounter()
	receipt, err := c.sess.Buy(ctx, index)
	if err != nil {
		c.sayErr(err)
		return
	}

	c.say("buy_success", nil)
	if receipt.Note.Key != "" && receipt.Note.Key != "buy_success" {
		c.say(receipt.Note.Key, receipt.Note.Params)
	}
	if c.sess.State() == session.StateTerminal {
		c.say("game_over", nil)
		c.say("game_over_message", nil)
		return
	}
	c.announceBoss(before)
	c.status()
}

// announceBoss prints the boss effect message when a new boss round began.
func (c *console) announceBoss(before model.Encounter) {
	enc := c.sess.Encounter()
	if enc.IsBossRound() && enc.Round != before.Round {
		c.say(enc.Boss.MessageKey, nil)
	}
}

func (c *console) shop() {
	c.say("shop_title", nil)
	for _, o := range c.sess.Offers() {
		line := c.text("shop_entry", map[string]any{
			"index": o.Index + 1,
			"name":  o.Item.Name,
			"cost":  o.Item.Cost,
		})
		if !o.Affordable {
			line += " *"
		}
		fmt.Fprintln(c.out, line)
	}
}

func (c *console) listMods() {
	c.say("mods_title", nil)
	for _, m := range c.mods.Mods() {
		status := c.text("mod_disabled", nil)
		if m.Enabled {
			status = c.text("mod_enabled", nil)
		}
		c.say("mod_entry", map[string]any{"name": m.Name, "file": m.File, "status": status})
	}
}

func (c *console) history(ctx context.Context) {
	if c.board == nil {
		c.say("history_empty", nil)
		return
	}
	runs, err := c.board.Best(ctx, historyShown)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	if len(runs) == 0 {
		c.say("history_empty", nil)
		return
	}
	c.say("history_title", nil)
	for _, r := range runs {
		c.say("history_entry", map[string]any{"round": r.Rounds, "coins": r.Coins, "bosses": r.BossesDefeated})
	}
}

func (c *console) restart() {
	sess, err := c.newSession(c.sess.Language())
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	c.sess = sess
	c.say("new_game", nil)
	c.status()
}

func (c *console) status() {
	snap := c.sess.Snapshot()
	c.say("stats", map[string]any{
		"round":  snap.Player.Round,
		"power":  snap.Player.Power,
		"bonus":  snap.Player.TempBonus,
		"coins":  snap.Player.Coins,
		"health": snap.Player.Health,
		"crit":   snap.Player.CritChance,
	})
	if snap.Encounter.IsBossRound {
		c.say("boss_template", map[string]any{"name": snap.Encounter.BossName, "power": snap.Encounter.EnemyPower})
		return
	}
	c.say("enemy_template", map[string]any{"power": snap.Encounter.EnemyPower})
}

func (c *console) sayErr(err error) {
	switch {
	case errors.Is(err, session.ErrAlreadyTerminated):
		c.say("already_terminated", nil)
	case errors.Is(err, shop.ErrAlreadyOwned):
		c.say("already_owned", nil)
	case errors.Is(err, shop.ErrInsufficientFunds):
		c.say("insufficient_funds", nil)
	case errors.Is(err, shop.ErrInvalidSacrifice):
		c.say("sacrifice_error", nil)
	case errors.Is(err, shop.ErrUnknownItem):
		c.say("unknown_item", nil)
	default:
		fmt.Fprintln(c.out, err)
	}
}

func (c *console) text(key string, params map[string]any) string {
	return c.tr.Translate(c.sess.Language(), key, params)
}

func (c *console) say(key string, params map[string]any) {
	fmt.Fprintln(c.out, c.text(key, params))
}
