package rules

import "github.com/layer-3/zetafrog/core"

// SynthesisInputs is the number of same-rarity souvenirs consumed by one attempt
const SynthesisInputs = 3

// SynthesisRule describes the odds of upgrading one rarity tier
type SynthesisRule struct {
	From        core.Rarity `json:"from"`
	Result      core.Rarity `json:"result"`
	SuccessRate int         `json:"successRate"` // percent, 1..100
}

// SynthesisRules are keyed by input rarity; Legendary has no entry
var SynthesisRules = map[core.Rarity]SynthesisRule{
	core.RarityCommon:   {From: core.RarityCommon, Result: core.RarityUncommon, SuccessRate: 90},
	core.RarityUncommon: {From: core.RarityUncommon, Result: core.RarityRare, SuccessRate: 75},
	core.RarityRare:     {From: core.RarityRare, Result: core.RarityEpic, SuccessRate: 50},
	core.RarityEpic:     {From: core.RarityEpic, Result: core.RarityLegendary, SuccessRate: 25},
}

// Synthesizable reports whether rarity can be used as synthesis input
func Synthesizable(r core.Rarity) bool {
	_, ok := SynthesisRules[r]
	return ok
}

// Reasons a selection cannot be evaluated
const (
	ReasonEmpty       = "select 3 souvenirs of the same rarity"
	ReasonTooFew      = "not enough souvenirs selected"
	ReasonTooMany     = "too many souvenirs selected"
	ReasonMixed       = "selected souvenirs have different rarities"
	ReasonDuplicate   = "a souvenir is selected twice"
	ReasonLegendary   = "legendary souvenirs cannot be synthesized"
	ReasonUnknownTier = "unknown rarity"
)

// SynthesisPreview describes what an attempt would do
type SynthesisPreview struct {
	Evaluable bool          `json:"evaluable"`
	Reason    string        `json:"reason,omitempty"`
	Missing   int           `json:"missing,omitempty"`
	Rule      SynthesisRule `json:"rule"`
}

// Preview checks a selection without rolling
func Preview(items []core.Souvenir) SynthesisPreview {
	if len(items) == 0 {
		return SynthesisPreview{Reason: ReasonEmpty, Missing: SynthesisInputs}
	}

	rarity := items[0].Rarity
	seen := make(map[int]struct{}, len(items))
	for _, it := range items {
		if it.Rarity != rarity {
			return SynthesisPreview{Reason: ReasonMixed}
		}
		if _, dup := seen[it.ID]; dup {
			return SynthesisPreview{Reason: ReasonDuplicate}
		}
		seen[it.ID] = struct{}{}
	}

	if !rarity.Valid() {
		return SynthesisPreview{Reason: ReasonUnknownTier}
	}
	if len(items) < SynthesisInputs {
		return SynthesisPreview{Reason: ReasonTooFew, Missing: SynthesisInputs - len(items)}
	}
	if len(items) > SynthesisInputs {
		return SynthesisPreview{Reason: ReasonTooMany}
	}

	rule, ok := SynthesisRules[rarity]
	if !ok {
		return SynthesisPreview{Reason: ReasonLegendary}
	}
	return SynthesisPreview{Evaluable: true, Rule: rule}
}

// Roller draws uniform integers in [0, n). *rand.Rand satisfies it.
type Roller interface {
	Intn(n int) int
}

// SynthesisOutcome is the result of a resolved attempt.
// All inputs are consumed whether or not the attempt succeeds.
type SynthesisOutcome struct {
	Success  bool          `json:"success"`
	Roll     int           `json:"roll"`
	Rule     SynthesisRule `json:"rule"`
	Consumed []int         `json:"consumed"`
	Result   core.Rarity   `json:"result,omitempty"`
}

// Resolve rolls one attempt. ok is false when the selection is not evaluable.
func Resolve(items []core.Souvenir, roller Roller) (SynthesisOutcome, bool) {
	preview := Preview(items)
	if !preview.Evaluable {
		return SynthesisOutcome{}, false
	}

	roll := roller.Intn(100) + 1
	outcome := SynthesisOutcome{
		Success:  roll <= preview.Rule.SuccessRate,
		Roll:     roll,
		Rule:     preview.Rule,
		Consumed: make([]int, 0, len(items)),
	}
	for _, it := range items {
		outcome.Consumed = append(outcome.Consumed, it.ID)
	}
	if outcome.Success {
		outcome.Result = preview.Rule.Result
	}
	return outcome, true
}

// SynthesisCandidates returns the souvenirs that may be selected as input
func SynthesisCandidates(items []core.Souvenir) []core.Souvenir {
	out := make([]core.Souvenir, 0, len(items))
	for _, it := range items {
		if Synthesizable(it.Rarity) {
			out = append(out, it)
		}
	}
	return out
}
