package ports

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/layer-3/zetafrog/core"
)

// SigningHandle is derived key material able to produce signatures
type SigningHandle interface {
	Address() common.Address

	// SignText signs message with the personal message (EIP-191) encoding
	SignText(message []byte) ([]byte, error)

	// SignTransaction returns the backend specific signed result.
	// Callers extract the raw payload through an adapter.
	SignTransaction(fields core.TxFields) (any, error)
}

// KeyBackend derives signing handles from user secrets
type KeyBackend interface {
	FromPrivateKey(hexKey string) (SigningHandle, error)
	FromMnemonic(mnemonic, path string) (SigningHandle, error)
}
