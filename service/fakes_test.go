package service

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/layer-3/zetafrog/core"
	"github.com/layer-3/zetafrog/ports"
)

type fakeKeyBackend struct {
	signed        any
	signErr       error
	mnemonicCalls int
}

func (b *fakeKeyBackend) FromPrivateKey(hexKey string) (ports.SigningHandle, error) {
	return &fakeHandle{backend: b}, nil
}

func (b *fakeKeyBackend) FromMnemonic(mnemonic, path string) (ports.SigningHandle, error) {
	b.mnemonicCalls++
	return &fakeHandle{backend: b}, nil
}

type fakeHandle struct {
	backend *fakeKeyBackend
}

func (h *fakeHandle) Address() common.Address {
	return common.HexToAddress(testAddress)
}

func (h *fakeHandle) SignText(message []byte) ([]byte, error) {
	if h.backend.signErr != nil {
		return nil, h.backend.signErr
	}
	return make([]byte, 65), nil
}

func (h *fakeHandle) SignTransaction(fields core.TxFields) (any, error) {
	if h.backend.signErr != nil {
		return nil, h.backend.signErr
	}
	return h.backend.signed, nil
}

type rawAccessor []byte

func (r rawAccessor) RawTransaction() []byte {
	return r
}

type publishedEvent struct {
	topic string
	event any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{topic: topic, event: event})
	return nil
}

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	topics := []string{}
	for _, e := range p.events {
		topics = append(topics, e.topic)
	}
	return topics
}

func (p *recordingPublisher) last(topic string) (any, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.events) - 1; i >= 0; i-- {
		if p.events[i].topic == topic {
			return p.events[i].event, true
		}
	}
	return nil, false
}
