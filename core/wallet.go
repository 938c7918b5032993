package core

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Mode represents how the wallet is connected
type Mode string

const (
	ModeDisconnected Mode = "disconnected"
	ModeReadOnly     Mode = "readonly"
	ModeSigning      Mode = "signing"
)

// AccountPathTemplate is the BIP-44 path used for mnemonic accounts
const AccountPathTemplate = "m/44'/60'/0'/0/%d"

// Credential is a snapshot of the connected wallet.
// The signing handle never leaves the wallet session.
type Credential struct {
	Address string `json:"address"`
	Mode    Mode   `json:"mode"`
}

// Connected reports whether the credential holds an address
func (c Credential) Connected() bool {
	return c.Mode != ModeDisconnected && c.Address != ""
}

// CanSign reports whether the credential can produce signatures
func (c Credential) CanSign() bool {
	return c.Mode == ModeSigning
}

// TxFields holds the fields of a transaction to be signed.
// A nil GasFeeCap selects a legacy (EIP-155) transaction priced by GasPrice.
type TxFields struct {
	Nonce     uint64          `json:"nonce"`
	To        *common.Address `json:"to,omitempty"`
	Value     *big.Int        `json:"value,omitempty"`
	Gas       uint64          `json:"gas"`
	GasPrice  *big.Int        `json:"gasPrice,omitempty"`
	GasFeeCap *big.Int        `json:"maxFeePerGas,omitempty"`
	GasTipCap *big.Int        `json:"maxPriorityFeePerGas,omitempty"`
	ChainID   *big.Int        `json:"chainId"`
	Data      []byte          `json:"data,omitempty"`
}
