package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/layer-3/zetafrog/adapters/gameapi"
	"github.com/layer-3/zetafrog/core"
	"github.com/layer-3/zetafrog/ports"
	"github.com/shopspring/decimal"
)

// MintStatus is the progress of a mint job
type MintStatus string

const (
	MintConnecting MintStatus = "connecting"
	MintPreparing  MintStatus = "preparing"
	MintSigning    MintStatus = "signing"
	MintSending    MintStatus = "sending"
	MintConfirming MintStatus = "confirming"
	MintSucceeded  MintStatus = "succeeded"
	MintFailed     MintStatus = "failed"
)

// Done reports whether the job reached a final status
func (s MintStatus) Done() bool {
	return s == MintSucceeded || s == MintFailed
}

// MintJob is a snapshot of a background mint
type MintJob struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Owner   string     `json:"owner"`
	Status  MintStatus `json:"status"`
	TxHash  string     `json:"txHash,omitempty"`
	TokenID string     `json:"tokenId,omitempty"`
	// GasCost is the fee paid in the native token
	GasCost   string    `json:"gasCost,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MintedEvent is published when a frog is minted
type MintedEvent struct {
	JobID   string `json:"jobId"`
	Owner   string `json:"owner"`
	Name    string `json:"name"`
	TxHash  string `json:"txHash"`
	TokenID string `json:"tokenId,omitempty"`
}

// MintConfig holds the chain parameters of a mint
type MintConfig struct {
	ChainID        int64
	Contract       common.Address
	GasLimit       uint64
	ReceiptTimeout time.Duration
	PollInterval   time.Duration
}

// DefaultMintConfig targets the frog contract on ZetaChain Athens
func DefaultMintConfig() MintConfig {
	return MintConfig{
		ChainID:        core.AthensTestnet.ChainID,
		Contract:       common.HexToAddress(core.FrogContractAddress),
		GasLimit:       300000,
		ReceiptTimeout: 120 * time.Second,
		PollInterval:   2 * time.Second,
	}
}

type mintEntry struct {
	job  MintJob
	done chan struct{}
}

// MintService mints frog NFTs with the wallet's signing credential
type MintService struct {
	chain    ports.ChainBackend
	wallet   *WalletSession
	client   *gameapi.Client
	eventPub ports.EventPublisher
	logger   watermill.LoggerAdapter
	cfg      MintConfig
	contract abi.ABI

	mu   sync.RWMutex
	jobs map[string]*mintEntry
}

// NewMintService creates a mint service. client may be nil, in which case minted frogs are not synced.
func NewMintService(
	chain ports.ChainBackend,
	wallet *WalletSession,
	client *gameapi.Client,
	eventPub ports.EventPublisher,
	cfg MintConfig,
	logger watermill.LoggerAdapter,
) (*MintService, error) {
	parsed, err := abi.JSON(strings.NewReader(core.FrogMintABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse frog ABI: %w", err)
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	return &MintService{
		chain:    chain,
		wallet:   wallet,
		client:   client,
		eventPub: eventPub,
		logger:   logger,
		cfg:      cfg,
		contract: parsed,
		jobs:     make(map[string]*mintEntry),
	}, nil
}

// Start validates the request and mints in the background, returning the job id
func (s *MintService) Start(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", core.ErrInvalidName
	}

	cred := s.wallet.Credential()
	if !cred.CanSign() {
		return "", core.ErrReadOnly
	}
	if s.chain == nil {
		return "", fmt.Errorf("%w: no chain backend configured", core.ErrUpstream)
	}

	now := time.Now()
	entry := &mintEntry{
		job: MintJob{
			ID:        uuid.New().String(),
			Name:      name,
			Owner:     cred.Address,
			Status:    MintConnecting,
			CreatedAt: now,
			UpdatedAt: now,
		},
		done: make(chan struct{}),
	}

	s.mu.Lock()
	s.jobs[entry.job.ID] = entry
	s.mu.Unlock()

	s.logger.Info("Mint started", watermill.LogFields{"job": entry.job.ID, "name": name, "owner": cred.Address})
	go s.run(entry.job.ID, name, common.HexToAddress(cred.Address))
	return entry.job.ID, nil
}

// Job returns the current state of a mint job
func (s *MintService) Job(id string) (MintJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.jobs[id]
	if !ok {
		return MintJob{}, core.ErrMintJobNotFound
	}
	return entry.job, nil
}

// Wait blocks until the job finishes or ctx is done
func (s *MintService) Wait(ctx context.Context, id string) (MintJob, error) {
	s.mu.RLock()
	entry, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok {
		return MintJob{}, core.ErrMintJobNotFound
	}

	select {
	case <-entry.done:
		return s.Job(id)
	case <-ctx.Done():
		return MintJob{}, ctx.Err()
	}
}

func (s *MintService) run(id, name string, owner common.Address) {
	ctx := context.Background()

	receipt, txHash, gasPrice, err := s.submit(ctx, id, name, owner)
	if err != nil {
		s.fail(id, err)
		return
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		s.fail(id, fmt.Errorf("%w: transaction reverted", core.ErrTransactionFailed))
		return
	}

	tokenID := mintedTokenID(receipt)
	if tokenID == "" {
		s.logger.Info("Minted token id not found in receipt logs", watermill.LogFields{"job": id, "tx": txHash})
	}

	price := receipt.EffectiveGasPrice
	if price == nil {
		price = gasPrice
	}
	cost := new(big.Int).Mul(new(big.Int).SetUint64(receipt.GasUsed), price)

	s.update(id, func(job *MintJob) {
		job.Status = MintSucceeded
		job.TokenID = tokenID
		job.GasCost = decimal.NewFromBigInt(cost, -18).String()
	})
	defer s.finish(id)

	s.logger.Info("Frog minted", watermill.LogFields{"job": id, "tx": txHash, "token_id": tokenID})

	if s.eventPub != nil {
		event := MintedEvent{JobID: id, Owner: strings.ToLower(owner.Hex()), Name: name, TxHash: txHash, TokenID: tokenID}
		if err := s.eventPub.Publish(ctx, ports.TopicFrogMinted, event); err != nil {
			s.logger.Error("Failed to publish mint event", err, watermill.LogFields{"job": id})
		}
	}

	if s.client != nil && tokenID != "" {
		if n, ok := new(big.Int).SetString(tokenID, 10); ok && n.IsInt64() {
			s.client.SyncFrog(ctx, int(n.Int64()))
		}
	}
}

// submit builds, signs and broadcasts the mint transaction, then waits for its receipt
func (s *MintService) submit(ctx context.Context, id, name string, owner common.Address) (*types.Receipt, string, *big.Int, error) {
	s.setStatus(id, MintPreparing)

	nonce, err := s.chain.PendingNonceAt(ctx, owner)
	if err != nil {
		return nil, "", nil, fmt.Errorf("%w: failed to get nonce: %v", core.ErrUpstream, err)
	}

	gasPrice, err := s.chain.SuggestGasPrice(ctx)
	if err != nil {
		return nil, "", nil, fmt.Errorf("%w: failed to get gas price: %v", core.ErrUpstream, err)
	}

	data, err := s.contract.Pack("mintFrog", name)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to encode mint call: %w", err)
	}

	s.setStatus(id, MintSigning)
	contract := s.cfg.Contract
	raw, err := s.wallet.SignTransaction(core.TxFields{
		Nonce:    nonce,
		To:       &contract,
		Value:    big.NewInt(0),
		Gas:      s.cfg.GasLimit,
		GasPrice: gasPrice,
		ChainID:  big.NewInt(s.cfg.ChainID),
		Data:     data,
	})
	if err != nil {
		return nil, "", nil, err
	}

	s.setStatus(id, MintSending)
	payload, err := hexutil.Decode(raw)
	if err != nil {
		return nil, "", nil, fmt.Errorf("%w: %v", core.ErrIncompatibleSigner, err)
	}
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(payload); err != nil {
		return nil, "", nil, fmt.Errorf("%w: %v", core.ErrIncompatibleSigner, err)
	}
	if err := s.chain.SendTransaction(ctx, tx); err != nil {
		return nil, "", nil, fmt.Errorf("%w: failed to send transaction: %v", core.ErrUpstream, err)
	}

	txHash := tx.Hash().Hex()
	s.update(id, func(job *MintJob) {
		job.Status = MintConfirming
		job.TxHash = txHash
	})

	receipt, err := s.waitReceipt(ctx, tx.Hash())
	if err != nil {
		return nil, txHash, gasPrice, err
	}
	return receipt, txHash, gasPrice, nil
}

// waitReceipt polls for the receipt until the receipt timeout elapses
func (s *MintService) waitReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ReceiptTimeout)
	defer cancel()

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		receipt, err := s.chain.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			s.logger.Debug("Receipt lookup failed", watermill.LogFields{"tx": hash.Hex(), "error": err.Error()})
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: no receipt for %s within %s", core.ErrTransactionFailed, hash.Hex(), s.cfg.ReceiptTimeout)
		case <-ticker.C:
		}
	}
}

// mintedTokenID reads the token id from the first log carrying an indexed Transfer tokenId
func mintedTokenID(receipt *types.Receipt) string {
	for _, l := range receipt.Logs {
		if len(l.Topics) >= 4 {
			return new(big.Int).SetBytes(l.Topics[3].Bytes()).String()
		}
	}
	return ""
}

func (s *MintService) setStatus(id string, status MintStatus) {
	s.update(id, func(job *MintJob) { job.Status = status })
}

func (s *MintService) update(id string, fn func(job *MintJob)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.jobs[id]; ok {
		fn(&entry.job)
		entry.job.UpdatedAt = time.Now()
	}
}

func (s *MintService) fail(id string, err error) {
	s.logger.Error("Mint failed", err, watermill.LogFields{"job": id})
	s.update(id, func(job *MintJob) {
		job.Status = MintFailed
		job.Error = err.Error()
	})
	s.finish(id)
}

func (s *MintService) finish(id string) {
	s.mu.RLock()
	entry, ok := s.jobs[id]
	s.mu.RUnlock()
	if ok {
		close(entry.done)
	}
}
