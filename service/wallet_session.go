package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/layer-3/zetafrog/core"
	"github.com/layer-3/zetafrog/ports"
)

// WalletEvent is published when the wallet connection changes
type WalletEvent struct {
	Address string    `json:"address"`
	Mode    core.Mode `json:"mode"`
}

// WalletSession holds at most one credential and is the only holder of key material
type WalletSession struct {
	keys     ports.KeyBackend
	eventPub ports.EventPublisher
	logger   watermill.LoggerAdapter

	mu      sync.RWMutex
	address string
	mode    core.Mode
	handle  ports.SigningHandle
}

// NewWalletSession creates a disconnected wallet session.
// keys may be nil, in which case only read-only connections succeed.
func NewWalletSession(keys ports.KeyBackend, eventPub ports.EventPublisher, logger watermill.LoggerAdapter) *WalletSession {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &WalletSession{
		keys:     keys,
		eventPub: eventPub,
		logger:   logger,
		mode:     core.ModeDisconnected,
	}
}

// Credential returns a snapshot of the current connection
func (w *WalletSession) Credential() core.Credential {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return core.Credential{Address: w.address, Mode: w.mode}
}

// Address returns the connected address, or an empty string
func (w *WalletSession) Address() string {
	return w.Credential().Address
}

// IsConnected reports whether an address is held
func (w *WalletSession) IsConnected() bool {
	return w.Credential().Connected()
}

// CanSign reports whether a signing handle is held
func (w *WalletSession) CanSign() bool {
	return w.Credential().CanSign()
}

// ConnectReadOnly replaces the credential with an address-only one
func (w *WalletSession) ConnectReadOnly(address string) error {
	if !IsValidAddress(address) {
		return core.ErrInvalidAddress
	}

	w.replace(strings.ToLower(address), core.ModeReadOnly, nil)
	return nil
}

// ConnectWithKey derives a signing credential from a hex private key
func (w *WalletSession) ConnectWithKey(secret string) (string, error) {
	if w.keys == nil {
		return "", core.ErrSignerUnavailable
	}

	secret = strings.TrimSpace(secret)
	if !strings.HasPrefix(secret, "0x") {
		secret = "0x" + secret
	}

	handle, err := w.keys.FromPrivateKey(secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrInvalidPrivateKey, err)
	}

	address := strings.ToLower(handle.Address().Hex())
	w.replace(address, core.ModeSigning, handle)
	return address, nil
}

// ConnectWithMnemonic derives the signing credential at account index from a 12 or 24 word phrase
func (w *WalletSession) ConnectWithMnemonic(phrase string, index uint32) (string, error) {
	words := strings.Fields(phrase)
	if len(words) != 12 && len(words) != 24 {
		return "", core.ErrMnemonicLength
	}

	if w.keys == nil {
		return "", core.ErrSignerUnavailable
	}

	handle, err := w.keys.FromMnemonic(strings.Join(words, " "), fmt.Sprintf(core.AccountPathTemplate, index))
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrInvalidMnemonic, err)
	}

	address := strings.ToLower(handle.Address().Hex())
	w.replace(address, core.ModeSigning, handle)
	return address, nil
}

// SignText signs message as a personal message and returns the 0x hex signature
func (w *WalletSession) SignText(message string) (string, error) {
	handle, err := w.signer()
	if err != nil {
		return "", err
	}

	sig, err := handle.SignText([]byte(message))
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrSigningFailed, err)
	}
	return hexutil.Encode(sig), nil
}

// SignTransaction signs fields and returns the raw transaction as 0x hex
func (w *WalletSession) SignTransaction(fields core.TxFields) (string, error) {
	handle, err := w.signer()
	if err != nil {
		return "", err
	}

	signed, err := handle.SignTransaction(fields)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrSigningFailed, err)
	}

	raw, err := rawTransaction(signed)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(raw), nil
}

// Disconnect clears the credential; calling it while disconnected is a no-op
func (w *WalletSession) Disconnect() {
	w.mu.Lock()
	previous := w.address
	w.address = ""
	w.mode = core.ModeDisconnected
	w.handle = nil
	w.mu.Unlock()

	if previous != "" {
		w.logger.Info("Wallet disconnected", watermill.LogFields{"address": previous})
		w.publish(ports.TopicWalletDisconnected, WalletEvent{Address: previous, Mode: core.ModeDisconnected})
	}
}

func (w *WalletSession) signer() (ports.SigningHandle, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.mode != core.ModeSigning || w.handle == nil {
		return nil, core.ErrReadOnly
	}
	return w.handle, nil
}

// replace swaps the whole credential in one step
func (w *WalletSession) replace(address string, mode core.Mode, handle ports.SigningHandle) {
	w.mu.Lock()
	w.address = address
	w.mode = mode
	w.handle = handle
	w.mu.Unlock()

	w.logger.Info("Wallet connected", watermill.LogFields{"address": address, "mode": mode})
	w.publish(ports.TopicWalletConnected, WalletEvent{Address: address, Mode: mode})
}

func (w *WalletSession) publish(topic string, event WalletEvent) {
	if w.eventPub == nil {
		return
	}
	if err := w.eventPub.Publish(context.Background(), topic, event); err != nil {
		w.logger.Error("Failed to publish wallet event", err, watermill.LogFields{"topic": topic})
	}
}

// IsValidAddress reports whether address is 0x followed by 40 hex digits
func IsValidAddress(address string) bool {
	if len(address) != 42 || !strings.HasPrefix(address, "0x") {
		return false
	}
	for _, c := range address[2:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
