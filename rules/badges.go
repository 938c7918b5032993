package rules

import "github.com/layer-3/zetafrog/core"

// Reward is granted when a badge set is completed
type Reward struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// BadgeSet is a named group of badges
type BadgeSet struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	BadgeCodes  []string `json:"badgeCodes"`
	Reward      Reward   `json:"reward"`
}

// BadgeSets are the collections offered by the game
var BadgeSets = []BadgeSet{
	{
		ID:          "travel_master",
		Name:        "Travel Master",
		Description: "Complete every travel milestone badge",
		BadgeCodes:  []string{"FIRST_TRIP", "TRAVELER_5", "TRAVELER_15"},
		Reward:      Reward{Type: "title", Name: "Globetrotter"},
	},
	{
		ID:          "chain_explorer",
		Name:        "Chain Explorer",
		Description: "Visit every supported chain",
		BadgeCodes:  []string{"BSC_VISITOR", "ETH_VISITOR", "ZETA_VISITOR", "CROSS_CHAIN"},
		Reward:      Reward{Type: "effect", Name: "Rainbow Halo"},
	},
	{
		ID:          "lucky_finder",
		Name:        "Lucky Finder",
		Description: "Unlock every discovery badge",
		BadgeCodes:  []string{"LUCKY_FIND", "WHALE_WATCHER", "COLLECTOR_10"},
		Reward:      Reward{Type: "bonus", Name: "Luck +5%"},
	},
	{
		ID:          "social_star",
		Name:        "Social Star",
		Description: "Become an active community member",
		BadgeCodes:  []string{"FIRST_FRIEND", "POPULAR_5", "HELPER_10"},
		Reward:      Reward{Type: "title", Name: "Crowd Favourite"},
	},
}

// SetProgress is the completion state of one badge set
type SetProgress struct {
	Set       BadgeSet `json:"set"`
	Current   int      `json:"current"`
	Total     int      `json:"total"`
	Completed bool     `json:"completed"`
	Missing   []string `json:"missing"`
}

// Ratio returns current/total, 0 for an empty set
func (p SetProgress) Ratio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Current) / float64(p.Total)
}

// BadgeSummary aggregates the progress of all sets
type BadgeSummary struct {
	Sets      []SetProgress `json:"sets"`
	Completed int           `json:"completed"`
	Total     int           `json:"total"`
}

// UnlockedCodes collects the codes of unlocked badges
func UnlockedCodes(badges []core.Badge) map[string]struct{} {
	codes := make(map[string]struct{}, len(badges))
	for _, b := range badges {
		if b.Unlocked {
			codes[b.Code] = struct{}{}
		}
	}
	return codes
}

// Progress evaluates a single set against the unlocked codes
func Progress(set BadgeSet, unlocked map[string]struct{}) SetProgress {
	p := SetProgress{Set: set, Total: len(set.BadgeCodes), Missing: []string{}}
	for _, code := range set.BadgeCodes {
		if _, ok := unlocked[code]; ok {
			p.Current++
		} else {
			p.Missing = append(p.Missing, code)
		}
	}
	p.Completed = p.Current == p.Total
	return p
}

// EvaluateSets evaluates every set against the user's badges
func EvaluateSets(sets []BadgeSet, badges []core.Badge) BadgeSummary {
	unlocked := UnlockedCodes(badges)
	summary := BadgeSummary{Sets: make([]SetProgress, 0, len(sets)), Total: len(sets)}
	for _, set := range sets {
		p := Progress(set, unlocked)
		if p.Completed {
			summary.Completed++
		}
		summary.Sets = append(summary.Sets, p)
	}
	return summary
}
