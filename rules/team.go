package rules

import (
	"github.com/layer-3/zetafrog/core"
	"github.com/shopspring/decimal"
)

// Team size limits, leader included
const (
	MinTeamSize    = 1
	MaxTeamSize    = 4
	MaxInvitations = MaxTeamSize - 1
)

// TeamBonus is the reward boost granted to a travelling team
type TeamBonus struct {
	Size          int    `json:"size"`
	Name          string `json:"name"`
	XPPercent     int    `json:"xpPercent"`
	RarityPercent int    `json:"rarityPercent"`
}

// TeamBonuses are keyed by team size
var TeamBonuses = map[int]TeamBonus{
	1: {Size: 1, Name: "solo", XPPercent: 0, RarityPercent: 0},
	2: {Size: 2, Name: "duo", XPPercent: 20, RarityPercent: 10},
	3: {Size: 3, Name: "trio", XPPercent: 35, RarityPercent: 20},
	4: {Size: 4, Name: "full squad", XPPercent: 50, RarityPercent: 30},
}

// BonusForSize looks up the bonus for a team size in [1, 4]
func BonusForSize(size int) (TeamBonus, bool) {
	b, ok := TeamBonuses[size]
	return b, ok
}

// ApplyXPBonus projects the XP a travel yields with bonus applied
func ApplyXPBonus(baseXP int64, bonus TeamBonus) decimal.Decimal {
	multiplier := decimal.NewFromInt(100 + int64(bonus.XPPercent)).Div(decimal.NewFromInt(100))
	return decimal.NewFromInt(baseXP).Mul(multiplier).Round(2)
}

// EligibleFriends returns the friends that can be invited
func EligibleFriends(friends []core.Friend) []core.Friend {
	out := make([]core.Friend, 0, len(friends))
	for _, f := range friends {
		if f.Idle() {
			out = append(out, f)
		}
	}
	return out
}

// Team is a travel party led by the active frog
type Team struct {
	Leader  core.Frog     `json:"leader"`
	Members []core.Friend `json:"members"`
}

// NewTeam starts a solo team
func NewTeam(leader core.Frog) *Team {
	return &Team{Leader: leader, Members: []core.Friend{}}
}

// Size counts the leader and members
func (t *Team) Size() int {
	return 1 + len(t.Members)
}

// Invite adds an idle friend to the team
func (t *Team) Invite(friend core.Friend) error {
	if !friend.Idle() {
		return core.ErrFriendBusy
	}
	for _, m := range t.Members {
		if m.TokenID == friend.TokenID {
			return core.ErrAlreadyInvited
		}
	}
	if len(t.Members) >= MaxInvitations {
		return core.ErrTeamFull
	}
	t.Members = append(t.Members, friend)
	return nil
}

// Remove drops a member by token id
func (t *Team) Remove(tokenID int) {
	kept := t.Members[:0]
	for _, m := range t.Members {
		if m.TokenID != tokenID {
			kept = append(kept, m)
		}
	}
	t.Members = kept
}

// Bonus returns the bonus for the current size
func (t *Team) Bonus() TeamBonus {
	b, _ := BonusForSize(t.Size())
	return b
}
