package rules

import (
	"testing"

	"github.com/layer-3/zetafrog/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func friend(tokenID int, status core.FrogStatus) core.Friend {
	return core.Friend{Frog: core.Frog{TokenID: tokenID, Status: status}}
}

func TestBonusForSize(t *testing.T) {
	want := map[int][2]int{1: {0, 0}, 2: {20, 10}, 3: {35, 20}, 4: {50, 30}}
	for size, pair := range want {
		b, ok := BonusForSize(size)
		require.True(t, ok)
		assert.Equal(t, pair[0], b.XPPercent, "size %d", size)
		assert.Equal(t, pair[1], b.RarityPercent, "size %d", size)
	}

	_, ok := BonusForSize(0)
	assert.False(t, ok)
	_, ok = BonusForSize(5)
	assert.False(t, ok)
}

func TestApplyXPBonus(t *testing.T) {
	trio, _ := BonusForSize(3)
	assert.Equal(t, "135", ApplyXPBonus(100, trio).String())
	solo, _ := BonusForSize(1)
	assert.Equal(t, "7", ApplyXPBonus(7, solo).String())
	duo, _ := BonusForSize(2)
	assert.Equal(t, "8.4", ApplyXPBonus(7, duo).String())
}

func TestEligibleFriends(t *testing.T) {
	friends := []core.Friend{
		friend(1, core.FrogIdle),
		friend(2, core.FrogTraveling),
		friend(3, core.FrogReturning),
		friend(4, core.FrogIdle),
	}
	got := EligibleFriends(friends)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].TokenID)
	assert.Equal(t, 4, got[1].TokenID)
}

func TestTeamInvite(t *testing.T) {
	team := NewTeam(core.Frog{TokenID: 100})
	assert.Equal(t, 1, team.Size())
	assert.Zero(t, team.Bonus().XPPercent)

	assert.ErrorIs(t, team.Invite(friend(9, core.FrogTraveling)), core.ErrFriendBusy)
	require.NoError(t, team.Invite(friend(1, core.FrogIdle)))
	assert.ErrorIs(t, team.Invite(friend(1, core.FrogIdle)), core.ErrAlreadyInvited)
	require.NoError(t, team.Invite(friend(2, core.FrogIdle)))
	require.NoError(t, team.Invite(friend(3, core.FrogIdle)))
	assert.ErrorIs(t, team.Invite(friend(4, core.FrogIdle)), core.ErrTeamFull)

	assert.Equal(t, 4, team.Size())
	assert.Equal(t, 50, team.Bonus().XPPercent)
	assert.Equal(t, 30, team.Bonus().RarityPercent)

	team.Remove(2)
	assert.Equal(t, 3, team.Size())
	assert.Equal(t, 35, team.Bonus().XPPercent)
}
