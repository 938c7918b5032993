package gameapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/layer-3/zetafrog/core"
)

// Friends lists the accepted friends of a frog
func (c *Client) Friends(ctx context.Context, frogID int) []core.Friend {
	return decodeList[core.Friend](c, c.Get(ctx, fmt.Sprintf("/friends/list/%d", frogID), nil))
}

// FriendRequests lists pending requests received by a frog
func (c *Client) FriendRequests(ctx context.Context, frogID int) []core.FriendRequest {
	return decodeList[core.FriendRequest](c, c.Get(ctx, fmt.Sprintf("/friends/requests/%d", frogID), nil))
}

// WorldOnline lists frogs currently online, excluding frogID
func (c *Client) WorldOnline(ctx context.Context, frogID int) []core.Frog {
	query := url.Values{"currentFrogId": {strconv.Itoa(frogID)}}
	return decodeList[core.Frog](c, c.Get(ctx, "/friends/world-online", query))
}

// AddFriend sends a friend request
func (c *Client) AddFriend(ctx context.Context, fromFrogID, toFrogID int) Envelope {
	return c.Post(ctx, "/friends/request", map[string]any{
		"requesterId": fromFrogID,
		"addresseeId": toFrogID,
	})
}

// AcceptFriend accepts a pending friend request
func (c *Client) AcceptFriend(ctx context.Context, friendshipID int) Envelope {
	return c.Put(ctx, fmt.Sprintf("/friends/request/%d/respond", friendshipID), map[string]any{
		"status": "Accepted",
	})
}

// SendInteraction sends a friend interaction such as a wave
func (c *Client) SendInteraction(ctx context.Context, fromFrogID, toFrogID int, action core.ActionType) Envelope {
	return c.Post(ctx, "/friends/interact", map[string]any{
		"fromFrogId": fromFrogID,
		"toFrogId":   toFrogID,
		"actionType": action,
	})
}
