package rules

import (
	"math"
	"math/rand"
	"testing"

	"github.com/layer-3/zetafrog/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRoller int

func (f fixedRoller) Intn(n int) int { return int(f) }

func souvenirs(r core.Rarity, ids ...int) []core.Souvenir {
	out := make([]core.Souvenir, 0, len(ids))
	for _, id := range ids {
		out = append(out, core.Souvenir{ID: id, Rarity: r})
	}
	return out
}

func TestSynthesisTable(t *testing.T) {
	want := map[core.Rarity]struct {
		rate   int
		result core.Rarity
	}{
		core.RarityCommon:   {90, core.RarityUncommon},
		core.RarityUncommon: {75, core.RarityRare},
		core.RarityRare:     {50, core.RarityEpic},
		core.RarityEpic:     {25, core.RarityLegendary},
	}
	for rarity, w := range want {
		rule, ok := SynthesisRules[rarity]
		require.True(t, ok, rarity)
		assert.Equal(t, w.rate, rule.SuccessRate)
		assert.Equal(t, w.result, rule.Result)
		next, _ := rarity.Next()
		assert.Equal(t, next, rule.Result)
	}
	assert.False(t, Synthesizable(core.RarityLegendary))
}

func TestPreviewNotEvaluable(t *testing.T) {
	cases := []struct {
		name   string
		items  []core.Souvenir
		reason string
	}{
		{"empty", nil, ReasonEmpty},
		{"two", souvenirs(core.RarityRare, 1, 2), ReasonTooFew},
		{"four", souvenirs(core.RarityRare, 1, 2, 3, 4), ReasonTooMany},
		{"mixed", append(souvenirs(core.RarityRare, 1, 2), core.Souvenir{ID: 3, Rarity: core.RarityEpic}), ReasonMixed},
		{"duplicate", souvenirs(core.RarityRare, 1, 1, 2), ReasonDuplicate},
		{"legendary", souvenirs(core.RarityLegendary, 1, 2, 3), ReasonLegendary},
		{"unknown", souvenirs("Mythic", 1, 2, 3), ReasonUnknownTier},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Preview(tc.items)
			assert.False(t, p.Evaluable)
			assert.Equal(t, tc.reason, p.Reason)

			_, ok := Resolve(tc.items, fixedRoller(0))
			assert.False(t, ok)
		})
	}
	assert.Equal(t, 1, Preview(souvenirs(core.RarityRare, 1, 2)).Missing)
}

func TestResolveBoundary(t *testing.T) {
	items := souvenirs(core.RarityRare, 1, 2, 3)

	outcome, ok := Resolve(items, fixedRoller(49))
	require.True(t, ok)
	assert.Equal(t, 50, outcome.Roll)
	assert.True(t, outcome.Success)
	assert.Equal(t, core.RarityEpic, outcome.Result)
	assert.Equal(t, []int{1, 2, 3}, outcome.Consumed)

	outcome, ok = Resolve(items, fixedRoller(50))
	require.True(t, ok)
	assert.Equal(t, 51, outcome.Roll)
	assert.False(t, outcome.Success)
	assert.Empty(t, outcome.Result)
	assert.Equal(t, []int{1, 2, 3}, outcome.Consumed, "failed attempts still consume all inputs")
}

func TestResolveConvergesToRate(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const trials = 20000

	for rarity, rule := range SynthesisRules {
		items := souvenirs(rarity, 1, 2, 3)
		wins := 0
		for i := 0; i < trials; i++ {
			outcome, ok := Resolve(items, rng)
			require.True(t, ok)
			if outcome.Success {
				wins++
			}
		}
		rate := float64(wins) / trials * 100
		assert.LessOrEqual(t, math.Abs(rate-float64(rule.SuccessRate)), 1.5, "%s rate %.2f", rarity, rate)
	}
}

func TestSynthesisCandidates(t *testing.T) {
	items := []core.Souvenir{
		{ID: 1, Rarity: core.RarityCommon},
		{ID: 2, Rarity: core.RarityLegendary},
		{ID: 3, Rarity: core.RarityEpic},
	}
	got := SynthesisCandidates(items)
	require.Len(t, got, 2)
	for _, it := range got {
		assert.NotEqual(t, core.RarityLegendary, it.Rarity)
	}
}
