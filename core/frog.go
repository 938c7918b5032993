package core

import (
	"strings"
	"time"
)

// FrogStatus is the remote lifecycle status of a frog
type FrogStatus string

const (
	FrogIdle      FrogStatus = "Idle"
	FrogTraveling FrogStatus = "Traveling"
	FrogReturning FrogStatus = "Returning"
)

// Frog is a cached snapshot of a frog owned by the game backend
type Frog struct {
	ID           int        `json:"id"`
	TokenID      int        `json:"tokenId"`
	Name         string     `json:"name"`
	OwnerAddress string     `json:"ownerAddress"`
	Status       FrogStatus `json:"status"`
	TotalTravels int        `json:"totalTravels"`
	XP           int        `json:"xp"`
	Level        int        `json:"level"`
}

// Friend is a frog on the friend list
type Friend struct {
	Frog
	FriendshipID int  `json:"friendshipId"`
	IsOnline     bool `json:"isOnline"`
}

// Idle reports whether the friend can be invited to a team travel
func (f Friend) Idle() bool {
	return f.Status == FrogIdle || f.Status == ""
}

// FriendRequest is a pending friendship
type FriendRequest struct {
	ID        int    `json:"id"`
	Status    string `json:"status"`
	Requester Frog   `json:"requester"`
}

// Travel is a single journey of a frog
type Travel struct {
	ID          int        `json:"id"`
	FrogID      int        `json:"frogId"`
	TravelType  TravelType `json:"travelType,omitempty"`
	TargetChain string     `json:"targetChain,omitempty"`
	ChainID     int64      `json:"chainId"`
	Status      string     `json:"status"`
	Duration    int        `json:"duration,omitempty"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	EndTime     *time.Time `json:"endTime,omitempty"`
}

// TravelRequest describes a travel to start
type TravelRequest struct {
	FrogID        int        `json:"frogId"`
	TravelType    TravelType `json:"travelType"`
	TargetChain   string     `json:"targetChain"`
	Duration      int        `json:"duration"`
	TargetAddress string     `json:"targetAddress,omitempty"`
}

// Badge is an achievement badge
type Badge struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Unlocked bool   `json:"unlocked"`
}

// Souvenir is a collectible picked up on a travel
type Souvenir struct {
	ID      int    `json:"id"`
	TokenID int    `json:"tokenId"`
	Name    string `json:"name"`
	Rarity  Rarity `json:"rarity"`
	FrogID  int    `json:"frogId"`
}

// TravelType selects how a travel target is chosen
type TravelType string

const (
	TravelRandom TravelType = "RANDOM"
	TravelVisit  TravelType = "VISIT"
	TravelTeam   TravelType = "TEAM"
)

// Travel duration bounds in seconds
const (
	MinTravelDuration = 60
	MaxTravelDuration = 3600
)

// ActionType is a friend interaction
type ActionType string

const (
	ActionWave    ActionType = "wave"
	ActionFeed    ActionType = "feed"
	ActionGift    ActionType = "gift"
	ActionMessage ActionType = "message"
	ActionVisit   ActionType = "visit"
)

// Valid reports whether the action is known to the backend
func (a ActionType) Valid() bool {
	switch a {
	case ActionWave, ActionFeed, ActionGift, ActionMessage, ActionVisit:
		return true
	}
	return false
}

// Chain is a travel destination chain
type Chain struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Key is the lowercase name the backend expects as targetChain
func (c Chain) Key() string {
	return strings.ToLower(c.Name)
}

// TravelChains are the chains a frog can travel to
var TravelChains = []Chain{
	{ID: 7001, Name: "ZetaChain"},
	{ID: 97, Name: "BSC"},
	{ID: 11155111, Name: "Ethereum"},
}

// ChainByKey finds a travel chain by its lowercase name
func ChainByKey(key string) (Chain, bool) {
	key = strings.ToLower(strings.ReplaceAll(key, " ", ""))
	for _, c := range TravelChains {
		if c.Key() == key {
			return c, true
		}
	}
	return Chain{}, false
}
