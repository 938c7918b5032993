package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/layer-3/zetafrog/adapters/gameapi"
	"github.com/layer-3/zetafrog/core"
	"github.com/layer-3/zetafrog/ports"
	"github.com/layer-3/zetafrog/rules"
	"github.com/shopspring/decimal"
)

// TravelEvent is published when a travel is accepted by the backend
type TravelEvent struct {
	FrogID     int             `json:"frogId"`
	TravelType core.TravelType `json:"travelType"`
	Chain      string          `json:"chain"`
	Duration   int             `json:"duration"`
	TeamSize   int             `json:"teamSize"`
}

// SynthesisEvent is published after a synthesis attempt is rolled
type SynthesisEvent struct {
	FrogID  int                    `json:"frogId"`
	Outcome rules.SynthesisOutcome `json:"outcome"`
}

// TeamTravelResult is the outcome of a team travel submission
type TeamTravelResult struct {
	Envelope gameapi.Envelope `json:"envelope"`
	Team     *rules.Team      `json:"team"`
	Bonus    rules.TeamBonus  `json:"bonus"`
	// Skipped lists invited friends that could not join
	Skipped []int `json:"skipped"`
}

// BonusPreview projects a team bonus onto a base XP amount
type BonusPreview struct {
	Bonus rules.TeamBonus `json:"bonus"`
	XP    decimal.Decimal `json:"xp"`
}

type globalRoller struct{}

func (globalRoller) Intn(n int) int { return rand.Intn(n) }

// PetService drives the pet's game features on top of the remote client
type PetService struct {
	client    *gameapi.Client
	wallet    *WalletSession
	snapshots ports.SnapshotStore
	eventPub  ports.EventPublisher
	roller    rules.Roller
	logger    watermill.LoggerAdapter
}

// NewPetService creates a pet service. A nil roller uses math/rand.
func NewPetService(
	client *gameapi.Client,
	wallet *WalletSession,
	snapshots ports.SnapshotStore,
	eventPub ports.EventPublisher,
	roller rules.Roller,
	logger watermill.LoggerAdapter,
) *PetService {
	if roller == nil {
		roller = globalRoller{}
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &PetService{
		client:    client,
		wallet:    wallet,
		snapshots: snapshots,
		eventPub:  eventPub,
		roller:    roller,
		logger:    logger,
	}
}

// MyFrogs lists the connected wallet's frogs and stores their snapshots
func (s *PetService) MyFrogs(ctx context.Context) ([]core.Frog, error) {
	address := s.wallet.Address()
	if address == "" {
		return nil, core.ErrNotConnected
	}

	frogs := s.client.FrogsByOwner(ctx, address)
	for _, f := range frogs {
		s.saveSnapshot(ctx, f)
	}
	return frogs, nil
}

// RefreshFrog fetches a frog as seen by the connected wallet
func (s *PetService) RefreshFrog(ctx context.Context, tokenID int) (core.Frog, core.PetState, error) {
	frog := s.client.FrogDetail(ctx, tokenID, s.wallet.Address())
	if frog == nil {
		return core.Frog{}, core.PetIdle, fmt.Errorf("%w: frog %d unavailable", core.ErrUpstream, tokenID)
	}

	s.saveSnapshot(ctx, *frog)
	return *frog, core.StateForStatus(frog.Status), nil
}

// Snapshot returns the last stored copy of a frog
func (s *PetService) Snapshot(ctx context.Context, tokenID int) (core.Frog, error) {
	return s.snapshots.Frog(ctx, tokenID)
}

// SyncFrog asks the backend to re-read a frog from chain
func (s *PetService) SyncFrog(ctx context.Context, tokenID int) error {
	if !s.client.SyncFrog(ctx, tokenID) {
		return fmt.Errorf("%w: sync of frog %d failed", core.ErrUpstream, tokenID)
	}
	return nil
}

// StartTravel validates and submits a solo travel
func (s *PetService) StartTravel(ctx context.Context, req core.TravelRequest) (gameapi.Envelope, error) {
	if req.TravelType != core.TravelRandom && req.TravelType != core.TravelVisit {
		return gameapi.Envelope{}, core.ErrInvalidTravelType
	}

	chain, err := validateTravel(req.TargetChain, req.Duration)
	if err != nil {
		return gameapi.Envelope{}, err
	}
	req.TargetChain = chain.Key()

	if req.TravelType == core.TravelVisit {
		if req.TargetAddress == "" {
			req.TargetAddress = s.client.LuckyAddress(ctx, req.TargetChain)
		} else if !IsValidAddress(req.TargetAddress) {
			return gameapi.Envelope{}, core.ErrInvalidAddress
		}
	}

	env := s.client.StartTravel(ctx, req)
	if !env.Success {
		return env, upstreamError(env)
	}

	s.publish(ctx, ports.TopicTravelStarted, TravelEvent{
		FrogID:     req.FrogID,
		TravelType: req.TravelType,
		Chain:      req.TargetChain,
		Duration:   req.Duration,
		TeamSize:   1,
	})
	return env, nil
}

// StartTeamTravel builds a team from the leader's idle friends and submits a TEAM travel
func (s *PetService) StartTeamTravel(ctx context.Context, leader core.Frog, invited []int, targetChain string, duration int) (TeamTravelResult, error) {
	chain, err := validateTravel(targetChain, duration)
	if err != nil {
		return TeamTravelResult{}, err
	}

	team, skipped := s.buildTeam(ctx, leader, invited)
	result := TeamTravelResult{Team: team, Bonus: team.Bonus(), Skipped: skipped}

	req := core.TravelRequest{
		FrogID:      leader.TokenID,
		TravelType:  core.TravelTeam,
		TargetChain: chain.Key(),
		Duration:    duration,
	}

	result.Envelope = s.client.StartTravel(ctx, req)
	if !result.Envelope.Success {
		return result, upstreamError(result.Envelope)
	}

	s.logger.Info("Team travel started", watermill.LogFields{
		"frog":      leader.TokenID,
		"team_size": team.Size(),
		"bonus":     result.Bonus.Name,
	})
	s.publish(ctx, ports.TopicTravelStarted, TravelEvent{
		FrogID:     leader.TokenID,
		TravelType: core.TravelTeam,
		Chain:      req.TargetChain,
		Duration:   duration,
		TeamSize:   team.Size(),
	})
	return result, nil
}

func (s *PetService) buildTeam(ctx context.Context, leader core.Frog, invited []int) (*rules.Team, []int) {
	team := rules.NewTeam(leader)
	skipped := []int{}
	if len(invited) == 0 {
		return team, skipped
	}

	byToken := map[int]core.Friend{}
	for _, f := range s.client.Friends(ctx, leader.TokenID) {
		byToken[f.TokenID] = f
	}

	for _, id := range invited {
		friend, ok := byToken[id]
		if !ok {
			skipped = append(skipped, id)
			continue
		}
		if err := team.Invite(friend); err != nil {
			if errors.Is(err, core.ErrAlreadyInvited) {
				continue
			}
			s.logger.Debug("Friend skipped", watermill.LogFields{"friend": id, "reason": err.Error()})
			skipped = append(skipped, id)
		}
	}
	return team, skipped
}

// TeamBonus projects the bonus of a team of size onto baseXP
func (s *PetService) TeamBonus(size int, baseXP int64) (BonusPreview, error) {
	bonus, ok := rules.BonusForSize(size)
	if !ok {
		return BonusPreview{}, core.ErrTeamFull
	}
	return BonusPreview{Bonus: bonus, XP: rules.ApplyXPBonus(baseXP, bonus)}, nil
}

// TravelHistory returns the connected wallet's history, optionally for one frog
func (s *PetService) TravelHistory(ctx context.Context, frogID int) (map[string]any, error) {
	address := s.wallet.Address()
	if address == "" {
		return nil, core.ErrNotConnected
	}
	return s.client.TravelHistory(ctx, address, frogID), nil
}

// FrogTravels lists the travels of a frog
func (s *PetService) FrogTravels(ctx context.Context, frogID int) []core.Travel {
	return s.client.FrogTravels(ctx, frogID)
}

// BadgeSets evaluates the frog's badges against every badge set
func (s *PetService) BadgeSets(ctx context.Context, frogID int) rules.BadgeSummary {
	badges := s.client.Badges(ctx, frogID, "")
	return rules.EvaluateSets(rules.BadgeSets, badges)
}

// Souvenirs lists the frog's souvenirs
func (s *PetService) Souvenirs(ctx context.Context, frogID int) []core.Souvenir {
	return s.client.Souvenirs(ctx, frogID, "")
}

// PreviewSynthesis evaluates a selection of the frog's souvenirs
func (s *PetService) PreviewSynthesis(ctx context.Context, frogID int, souvenirIDs []int) (rules.SynthesisPreview, error) {
	items, err := s.selectSouvenirs(ctx, frogID, souvenirIDs)
	if err != nil {
		return rules.SynthesisPreview{}, err
	}
	return rules.Preview(items), nil
}

// Synthesize rolls one attempt on a selection of the frog's souvenirs
func (s *PetService) Synthesize(ctx context.Context, frogID int, souvenirIDs []int) (rules.SynthesisOutcome, error) {
	items, err := s.selectSouvenirs(ctx, frogID, souvenirIDs)
	if err != nil {
		return rules.SynthesisOutcome{}, err
	}

	outcome, ok := rules.Resolve(items, s.roller)
	if !ok {
		return rules.SynthesisOutcome{}, fmt.Errorf("%w: %s", core.ErrNotEvaluable, rules.Preview(items).Reason)
	}

	s.logger.Info("Synthesis resolved", watermill.LogFields{
		"frog":    frogID,
		"from":    outcome.Rule.From,
		"roll":    outcome.Roll,
		"success": outcome.Success,
	})
	s.publish(ctx, ports.TopicSynthesisResolved, SynthesisEvent{FrogID: frogID, Outcome: outcome})
	return outcome, nil
}

// selectSouvenirs resolves ids against the frog's souvenirs, keeping selection order
func (s *PetService) selectSouvenirs(ctx context.Context, frogID int, ids []int) ([]core.Souvenir, error) {
	owned := map[int]core.Souvenir{}
	for _, it := range s.client.Souvenirs(ctx, frogID, "") {
		owned[it.ID] = it
	}

	items := make([]core.Souvenir, 0, len(ids))
	for _, id := range ids {
		it, ok := owned[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", core.ErrUnknownSouvenir, id)
		}
		items = append(items, it)
	}
	return items, nil
}

// GiftSouvenir transfers a souvenir to another frog
func (s *PetService) GiftSouvenir(ctx context.Context, souvenirID, toFrogID int) (gameapi.Envelope, error) {
	env := s.client.GiftSouvenir(ctx, souvenirID, toFrogID)
	if !env.Success {
		return env, upstreamError(env)
	}
	return env, nil
}

// SendInteraction sends a friend interaction after validating the action
func (s *PetService) SendInteraction(ctx context.Context, fromFrogID, toFrogID int, action core.ActionType) (gameapi.Envelope, error) {
	if !action.Valid() {
		return gameapi.Envelope{}, core.ErrInvalidAction
	}
	env := s.client.SendInteraction(ctx, fromFrogID, toFrogID, action)
	if !env.Success {
		return env, upstreamError(env)
	}
	return env, nil
}

// Friends lists the frog's friends
func (s *PetService) Friends(ctx context.Context, frogID int) []core.Friend {
	return s.client.Friends(ctx, frogID)
}

// FriendRequests lists pending friend requests of the frog
func (s *PetService) FriendRequests(ctx context.Context, frogID int) []core.FriendRequest {
	return s.client.FriendRequests(ctx, frogID)
}

// WorldOnline lists frogs currently online, excluding frogID
func (s *PetService) WorldOnline(ctx context.Context, frogID int) []core.Frog {
	return s.client.WorldOnline(ctx, frogID)
}

// AddFriend sends a friend request
func (s *PetService) AddFriend(ctx context.Context, fromFrogID, toFrogID int) (gameapi.Envelope, error) {
	env := s.client.AddFriend(ctx, fromFrogID, toFrogID)
	if !env.Success {
		return env, upstreamError(env)
	}
	return env, nil
}

// AcceptFriend accepts a pending friend request
func (s *PetService) AcceptFriend(ctx context.Context, friendshipID int) (gameapi.Envelope, error) {
	env := s.client.AcceptFriend(ctx, friendshipID)
	if !env.Success {
		return env, upstreamError(env)
	}
	return env, nil
}

func (s *PetService) saveSnapshot(ctx context.Context, frog core.Frog) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.SaveFrog(ctx, frog); err != nil {
		s.logger.Error("Failed to save frog snapshot", err, watermill.LogFields{"frog": frog.TokenID})
	}
}

func (s *PetService) publish(ctx context.Context, topic string, event any) {
	if s.eventPub == nil {
		return
	}
	if err := s.eventPub.Publish(ctx, topic, event); err != nil {
		s.logger.Error("Failed to publish event", err, watermill.LogFields{"topic": topic})
	}
}

func validateTravel(targetChain string, duration int) (core.Chain, error) {
	chain, ok := core.ChainByKey(targetChain)
	if !ok {
		return core.Chain{}, core.ErrInvalidChain
	}
	if duration < core.MinTravelDuration || duration > core.MaxTravelDuration {
		return core.Chain{}, core.ErrInvalidDuration
	}
	return chain, nil
}

func upstreamError(env gameapi.Envelope) error {
	if env.Error == "" {
		return core.ErrUpstream
	}
	return fmt.Errorf("%w: %s", core.ErrUpstream, env.Error)
}
