package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/numberwarrior/internal/data"
	"github.com/udisondev/numberwarrior/internal/game/combat"
	"github.com/udisondev/numberwarrior/internal/game/shop"
	"github.com/udisondev/numberwarrior/internal/model"
	"github.com/udisondev/numberwarrior/internal/testutil"
)

const luckyDuelIndex = 6

type mockRecorder struct {
	records []model.RunRecord
	err     error
}

func (m *mockRecorder) Record(_ context.Context, rec model.RunRecord) error {
	m.records = append(m.records, rec)
	return m.err
}

func sealedRegistry(t *testing.T) *data.Registry {
	t.Helper()
	reg := data.NewBuiltinRegistry()
	require.NoError(t, reg.Close())
	return reg
}

func TestNew_RequiresSealedCatalog(t *testing.T) {
	t.Parallel()

	_, err := New(data.NewBuiltinRegistry(), testutil.NewScriptedRNG(t), model.DefaultStats())
	require.ErrorIs(t, err, ErrCatalogNotSealed)
}

func TestNew_StartsFirstRound(t *testing.T) {
	t.Parallel()

	src := testutil.NewScriptedRNG(t, 0)
	s, err := New(sealedRegistry(t), src, model.DefaultStats())
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, StateRoundActive, snap.State)
	assert.Equal(t, "en", snap.Language)
	assert.Equal(t, 1, snap.Player.Round)
	assert.Equal(t, 15, snap.Encounter.EnemyPower)
	assert.False(t, snap.Encounter.IsBossRound)
	assert.Nil(t, snap.LastOutcome)
	assert.Zero(t, src.Remaining())
}

func TestAttack_VictoryAdvances(t *testing.T) {
	t.Parallel()

	// variance 0; crit miss, reward 25, next variance 0
	src := testutil.NewScriptedRNG(t, 0, 100, 25, 0)
	s, err := New(sealedRegistry(t), src, model.DefaultStats())
	require.NoError(t, err)

	res, err := s.Attack(context.Background())
	require.NoError(t, err)

	assert.Equal(t, combat.OutcomeVictory, res.Outcome)
	assert.Equal(t, 31, res.Reward)

	snap := s.Snapshot()
	assert.Equal(t, StateRoundActive, snap.State)
	assert.Equal(t, 2, snap.Player.Round)
	assert.Equal(t, 31, snap.Player.Coins)
	assert.Equal(t, 34, snap.Encounter.EnemyPower)
	require.NotNil(t, snap.LastOutcome)
	assert.Equal(t, combat.OutcomeVictory, *snap.LastOutcome)
}

func TestAttack_CountsBossVictories(t *testing.T) {
	t.Parallel()

	src := testutil.NewScriptedRNG(t,
		0,             // round 1 variance
		100, 25, 0,    // win, round 2 variance
		100, 25, 0, 0, // win, round 3 variance, boss pick (Vampire)
		100, 25, 0,    // boss win, round 4 variance
	)
	s, err := New(sealedRegistry(t), src, model.Stats{Power: 1000, Health: 3})
	require.NoError(t, err)

	ctx := context.Background()
	for range 2 {
		_, err := s.Attack(ctx)
		require.NoError(t, err)
	}

	enc := s.Encounter()
	require.True(t, enc.IsBossRound())
	assert.Equal(t, "Vampire", enc.Boss.Name)
	assert.Equal(t, 700, s.Snapshot().Player.Power, "vampire drains power on arrival")

	res, err := s.Attack(ctx)
	require.NoError(t, err)
	assert.Equal(t, combat.OutcomeBossVictory, res.Outcome)
	assert.Equal(t, 86, res.Reward)

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.BossesDefeated)
	assert.Equal(t, 31+37+86, snap.Player.Coins)
	assert.Equal(t, 4, snap.Player.Round)
	assert.Zero(t, src.Remaining())
}

func TestAttack_GameOverTerminates(t *testing.T) {
	t.Parallel()

	rec := &mockRecorder{}
	// variance 0 (enemy 15); crit miss, defeat on last life
	src := testutil.NewScriptedRNG(t, 0, 100)
	s, err := New(sealedRegistry(t), src, model.Stats{Power: 10, Health: 1, CritChance: 15},
		WithRecorder(rec), WithLanguage("ru"))
	require.NoError(t, err)

	ctx := context.Background()
	res, err := s.Attack(ctx)
	require.NoError(t, err)
	assert.Equal(t, combat.OutcomeGameOver, res.Outcome)
	assert.Equal(t, 0, res.LivesLeft)

	snap := s.Snapshot()
	assert.Equal(t, StateTerminal, snap.State)
	assert.Equal(t, 1, snap.Encounter.Round, "no next round after game over")
	assert.Equal(t, 10, snap.Player.Power, "no defeat penalty on game over")

	require.Len(t, rec.records, 1)
	assert.Equal(t, 1, rec.records[0].Rounds)
	assert.Equal(t, "ru", rec.records[0].Language)
	assert.False(t, rec.records[0].EndedAt.IsZero())

	// Terminal: nothing moves any more.
	_, err = s.Attack(ctx)
	require.ErrorIs(t, err, ErrAlreadyTerminated)
	_, err = s.Buy(ctx, 0)
	require.ErrorIs(t, err, ErrAlreadyTerminated)

	assert.Equal(t, snap, s.Snapshot())
	assert.Len(t, rec.records, 1, "recorded once")
	assert.Zero(t, src.Remaining())
}

func TestBuy_LostDuelOnLastLifeTerminates(t *testing.T) {
	t.Parallel()

	rec := &mockRecorder{}
	src := testutil.NewScriptedRNG(t, 0).WithFloats(0.5)
	s, err := New(sealedRegistry(t), src, model.Stats{Power: 100, Coins: 250, Health: 1},
		WithRecorder(rec))
	require.NoError(t, err)

	receipt, err := s.Buy(context.Background(), luckyDuelIndex)
	require.NoError(t, err)
	assert.Equal(t, "duel_lose", receipt.Note.Key)

	snap := s.Snapshot()
	assert.Equal(t, StateTerminal, snap.State)
	assert.Equal(t, 0, snap.Player.Coins)
	require.NotNil(t, snap.LastOutcome)
	assert.Equal(t, combat.OutcomeGameOver, *snap.LastOutcome)
	assert.Len(t, rec.records, 1)

	_, err = s.Attack(context.Background())
	require.ErrorIs(t, err, ErrAlreadyTerminated)
}

func TestBuy_ErrorsKeepRunActive(t *testing.T) {
	t.Parallel()

	s, err := New(sealedRegistry(t), testutil.NewScriptedRNG(t, 0), model.DefaultStats())
	require.NoError(t, err)

	before := s.Snapshot()
	_, err = s.Buy(context.Background(), 0)
	require.ErrorIs(t, err, shop.ErrInsufficientFunds)
	_, err = s.Buy(context.Background(), 99)
	require.ErrorIs(t, err, shop.ErrUnknownItem)

	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, StateRoundActive, s.State())
}

func TestRecorderFailureDoesNotFailAttack(t *testing.T) {
	t.Parallel()

	rec := &mockRecorder{err: testutil.ErrSimulated}
	s, err := New(sealedRegistry(t), testutil.NewScriptedRNG(t, 0, 100),
		model.Stats{Power: 1, Health: 1}, WithRecorder(rec))
	require.NoError(t, err)

	res, err := s.Attack(context.Background())
	require.NoError(t, err)
	assert.Equal(t, combat.OutcomeGameOver, res.Outcome)
	assert.Equal(t, StateTerminal, s.State())
	assert.Len(t, rec.records, 1)
}

func TestSelectLanguage_DoesNotTouchGameState(t *testing.T) {
	t.Parallel()

	s, err := New(sealedRegistry(t), testutil.NewScriptedRNG(t, 0), model.DefaultStats())
	require.NoError(t, err)

	before := s.Snapshot()
	s.SelectLanguage("ru")
	after := s.Snapshot()

	assert.Equal(t, "ru", after.Language)
	after.Language = before.Language
	assert.Equal(t, before, after)
}

func TestOffers(t *testing.T) {
	t.Parallel()

	s, err := New(sealedRegistry(t), testutil.NewScriptedRNG(t, 0),
		model.Stats{Power: 100, Coins: 100, Health: 3})
	require.NoError(t, err)

	offers := s.Offers()
	require.Len(t, offers, 12)
	assert.True(t, offers[0].Affordable)
	assert.False(t, offers[4].Affordable)
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "init", StateInit.String())
	assert.Equal(t, "round_active", StateRoundActive.String())
	assert.Equal(t, "terminal", StateTerminal.String())
	assert.Equal(t, "unknown", State(42).String())
}
