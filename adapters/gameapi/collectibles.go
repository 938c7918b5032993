package gameapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/layer-3/zetafrog/core"
)

// Badges lists badges by frog, or by owner when frogID is zero
func (c *Client) Badges(ctx context.Context, frogID int, owner string) []core.Badge {
	switch {
	case frogID > 0:
		return decodeList[core.Badge](c, c.Get(ctx, fmt.Sprintf("/badges/%d", frogID), nil))
	case owner != "":
		return decodeList[core.Badge](c, c.Get(ctx, "/badges", url.Values{"ownerAddress": {owner}}))
	}
	return []core.Badge{}
}

// Souvenirs lists souvenirs by frog, or by owner when frogID is zero
func (c *Client) Souvenirs(ctx context.Context, frogID int, owner string) []core.Souvenir {
	switch {
	case frogID > 0:
		return decodeList[core.Souvenir](c, c.Get(ctx, fmt.Sprintf("/souvenirs/%d", frogID), nil))
	case owner != "":
		return decodeList[core.Souvenir](c, c.Get(ctx, "/souvenirs", url.Values{"ownerAddress": {owner}}))
	}
	return []core.Souvenir{}
}

// SouvenirImageStatus reports the NFT image generation status of a souvenir
func (c *Client) SouvenirImageStatus(ctx context.Context, souvenirID string) Envelope {
	return c.Get(ctx, fmt.Sprintf("/nft-image/status/%s", url.PathEscape(souvenirID)), nil)
}

// GiftSouvenir transfers a souvenir to a friend's frog
func (c *Client) GiftSouvenir(ctx context.Context, souvenirID, toFrogID int) Envelope {
	return c.Post(ctx, "/souvenirs/gift", map[string]any{
		"souvenirId": souvenirID,
		"toFrogId":   toFrogID,
	})
}
