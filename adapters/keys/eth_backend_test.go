package keys

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/layer-3/zetafrog/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey      = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress  = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	testMnemonic = "test test test test test test test test test test test junk"
)

func TestFromPrivateKey(t *testing.T) {
	backend := NewEthBackend()

	handle, err := backend.FromPrivateKey(testKey)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddress), handle.Address())

	_, err = backend.FromPrivateKey("0x1234")
	assert.Error(t, err)
}

func TestFromMnemonic(t *testing.T) {
	backend := NewEthBackend()

	first, err := backend.FromMnemonic(testMnemonic, fmt.Sprintf(core.AccountPathTemplate, 0))
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddress), first.Address())

	second, err := backend.FromMnemonic(testMnemonic, fmt.Sprintf(core.AccountPathTemplate, 1))
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), second.Address())

	_, err = backend.FromMnemonic("test test test test test test test test test test test ribbit", fmt.Sprintf(core.AccountPathTemplate, 0))
	assert.Error(t, err, "unknown words must be rejected")
}

func TestSignTextRoundTrip(t *testing.T) {
	handle, err := NewEthBackend().FromPrivateKey(testKey)
	require.NoError(t, err)

	sig, err := handle.SignText([]byte("hello frog"))
	require.NoError(t, err)
	require.Len(t, sig, 65)
	assert.Contains(t, []byte{27, 28}, sig[64])

	encoded := hexutil.Encode(sig)
	assert.NoError(t, VerifyTextSignature(testAddress, []byte("hello frog"), encoded))
	assert.ErrorIs(t, VerifyTextSignature(testAddress, []byte("other"), encoded), core.ErrInvalidSignature)
	assert.ErrorIs(t, VerifyTextSignature(testAddress, []byte("hello frog"), "0x1234"), core.ErrInvalidSignature)
	assert.ErrorIs(t, VerifyTextSignature("frog", []byte("hello frog"), encoded), core.ErrInvalidAddress)
}

func TestSignTransaction(t *testing.T) {
	handle, err := NewEthBackend().FromPrivateKey(testKey)
	require.NoError(t, err)

	to := common.HexToAddress(core.FrogContractAddress)
	fields := core.TxFields{
		Nonce:    7,
		To:       &to,
		Value:    big.NewInt(0),
		Gas:      300000,
		GasPrice: big.NewInt(10_000_000_000),
		ChainID:  big.NewInt(7001),
	}

	signed, err := handle.SignTransaction(fields)
	require.NoError(t, err)
	tx, ok := signed.(*types.Transaction)
	require.True(t, ok)

	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(7001)), tx)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddress), sender)
	assert.Equal(t, uint8(types.LegacyTxType), tx.Type())

	fields.GasFeeCap = big.NewInt(20_000_000_000)
	dynamic, err := handle.SignTransaction(fields)
	require.NoError(t, err)
	assert.Equal(t, uint8(types.DynamicFeeTxType), dynamic.(*types.Transaction).Type())

	fields.ChainID = nil
	_, err = handle.SignTransaction(fields)
	assert.Error(t, err)
}
