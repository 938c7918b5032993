package gameapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/layer-3/zetafrog/core"
	"github.com/tidwall/gjson"
)

// FrogsByOwner lists the frogs owned by address
func (c *Client) FrogsByOwner(ctx context.Context, address string) []core.Frog {
	env := c.Get(ctx, fmt.Sprintf("/frogs/owner/%s", strings.ToLower(address)), nil)
	return decodeList[core.Frog](c, env)
}

// FrogDetail fetches a single frog, optionally as seen by viewer
func (c *Client) FrogDetail(ctx context.Context, tokenID int, viewer string) *core.Frog {
	var query url.Values
	if viewer != "" {
		query = url.Values{"viewerAddress": {strings.ToLower(viewer)}}
	}
	env := c.Get(ctx, fmt.Sprintf("/frogs/%d", tokenID), query)
	return decodeOne[core.Frog](c, env)
}

// SyncFrog asks the backend to refresh a frog from chain
func (c *Client) SyncFrog(ctx context.Context, tokenID int) bool {
	return c.Post(ctx, "/frogs/sync", map[string]any{"tokenId": tokenID}).Success
}

// TravelHistory returns the travel history of address, optionally for one frog
func (c *Client) TravelHistory(ctx context.Context, address string, frogID int) map[string]any {
	query := url.Values{"address": {address}}
	if frogID > 0 {
		query.Set("frogId", strconv.Itoa(frogID))
	}
	history := decodeOne[map[string]any](c, c.Get(ctx, "/travels/history", query))
	if history == nil {
		return map[string]any{}
	}
	return *history
}

// FrogTravels lists the travels of a frog
func (c *Client) FrogTravels(ctx context.Context, frogID int) []core.Travel {
	return decodeList[core.Travel](c, c.Get(ctx, fmt.Sprintf("/travels/%d", frogID), nil))
}

// LuckyAddress returns an interesting address to visit on chain
func (c *Client) LuckyAddress(ctx context.Context, chain string) string {
	env := c.Get(ctx, "/travels/lucky-address", url.Values{"chain": {chain}})
	if !env.Success || len(env.Data) == 0 {
		return ""
	}
	data := gjson.ParseBytes(env.Data)
	if data.IsObject() {
		return data.Get("address").String()
	}
	if data.Type == gjson.String {
		return data.String()
	}
	return ""
}

// StartTravel submits a travel request
func (c *Client) StartTravel(ctx context.Context, req core.TravelRequest) Envelope {
	return c.Post(ctx, "/travels/start", req)
}
