package ports

import "context"

// Event topics
const (
	TopicWalletConnected    = "zetafrog.wallet.connected"
	TopicWalletDisconnected = "zetafrog.wallet.disconnected"
	TopicTravelStarted      = "zetafrog.travel.started"
	TopicSynthesisResolved  = "zetafrog.synthesis.resolved"
	TopicFrogMinted         = "zetafrog.frog.minted"
)

// EventPublisher publishes domain events to interested listeners
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event any) error
}
