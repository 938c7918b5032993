package keys

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/layer-3/zetafrog/core"
	"github.com/layer-3/zetafrog/ports"
	"github.com/tyler-smith/go-bip39"
)

// EthBackend derives Ethereum accounts from private keys and BIP-39 mnemonics
type EthBackend struct{}

// NewEthBackend creates a new key backend
func NewEthBackend() ports.KeyBackend {
	return &EthBackend{}
}

// FromPrivateKey loads a hex encoded secp256k1 private key
func (b *EthBackend) FromPrivateKey(hexKey string) (ports.SigningHandle, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return newHandle(key), nil
}

// FromMnemonic derives the account at path from a BIP-39 mnemonic
func (b *EthBackend) FromMnemonic(mnemonic, path string) (ports.SigningHandle, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("mnemonic checksum or word list mismatch")
	}

	derivation, err := accounts.ParseDerivationPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse derivation path: %w", err)
	}

	seed := bip39.NewSeed(mnemonic, "")
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}

	for _, index := range derivation {
		key, err = key.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("failed to derive child key: %w", err)
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to extract private key: %w", err)
	}

	return newHandle(priv.ToECDSA()), nil
}

// ethHandle signs with an in-memory private key
type ethHandle struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func newHandle(key *ecdsa.PrivateKey) *ethHandle {
	return &ethHandle{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// Address returns the account address
func (h *ethHandle) Address() common.Address {
	return h.address
}

// SignText signs the EIP-191 hash of message, with v in {27, 28}
func (h *ethHandle) SignText(message []byte) ([]byte, error) {
	sig, err := crypto.Sign(accounts.TextHash(message), h.key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// SignTransaction signs fields and returns the signed *types.Transaction
func (h *ethHandle) SignTransaction(fields core.TxFields) (any, error) {
	if fields.ChainID == nil {
		return nil, errors.New("chain id is required")
	}

	tx := types.NewTx(txData(fields))
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(fields.ChainID), h.key)
	if err != nil {
		return nil, err
	}
	return signed, nil
}

func txData(f core.TxFields) types.TxData {
	if f.GasFeeCap != nil {
		tip := f.GasTipCap
		if tip == nil {
			tip = f.GasFeeCap
		}
		return &types.DynamicFeeTx{
			ChainID:   f.ChainID,
			Nonce:     f.Nonce,
			GasTipCap: tip,
			GasFeeCap: f.GasFeeCap,
			Gas:       f.Gas,
			To:        f.To,
			Value:     f.Value,
			Data:      f.Data,
		}
	}
	return &types.LegacyTx{
		Nonce:    f.Nonce,
		GasPrice: f.GasPrice,
		Gas:      f.Gas,
		To:       f.To,
		Value:    f.Value,
		Data:     f.Data,
	}
}

// VerifyTextSignature checks that signature over message was produced by address
func VerifyTextSignature(address string, message []byte, signature string) error {
	if !common.IsHexAddress(address) {
		return core.ErrInvalidAddress
	}

	sig, err := hexutil.Decode(signature)
	if err != nil {
		return fmt.Errorf("failed to decode signature: %w", core.ErrInvalidSignature)
	}
	if len(sig) != crypto.SignatureLength {
		return fmt.Errorf("signature must be 65 bytes: %w", core.ErrInvalidSignature)
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash(message), sig)
	if err != nil {
		return fmt.Errorf("failed to recover signer: %w", core.ErrInvalidSignature)
	}
	if crypto.PubkeyToAddress(*pub) != common.HexToAddress(address) {
		return core.ErrInvalidSignature
	}
	return nil
}
