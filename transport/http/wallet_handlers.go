package http

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"github.com/layer-3/zetafrog/adapters/keys"
	"github.com/layer-3/zetafrog/core"
	"github.com/layer-3/zetafrog/service"
)

// WalletHandlers exposes the wallet session
type WalletHandlers struct {
	wallet *service.WalletSession
}

// NewWalletHandlers creates new wallet handlers
func NewWalletHandlers(wallet *service.WalletSession) *WalletHandlers {
	return &WalletHandlers{wallet: wallet}
}

// Status returns the current credential
func (h *WalletHandlers) Status(c *gin.Context) {
	cred := h.wallet.Credential()
	c.JSON(http.StatusOK, gin.H{
		"address":   cred.Address,
		"mode":      cred.Mode,
		"connected": cred.Connected(),
		"canSign":   cred.CanSign(),
	})
}

// ReadOnly connects an address without key material
func (h *WalletHandlers) ReadOnly(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	if err := h.wallet.ConnectReadOnly(req.Address); err != nil {
		respondError(c, err)
		return
	}
	h.Status(c)
}

// Key connects a signing credential from a private key
func (h *WalletHandlers) Key(c *gin.Context) {
	var req struct {
		PrivateKey string `json:"privateKey" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	if _, err := h.wallet.ConnectWithKey(req.PrivateKey); err != nil {
		respondError(c, err)
		return
	}
	h.Status(c)
}

// Mnemonic connects a signing credential from a recovery phrase
func (h *WalletHandlers) Mnemonic(c *gin.Context) {
	var req struct {
		Mnemonic string `json:"mnemonic" binding:"required"`
		Index    uint32 `json:"index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	if _, err := h.wallet.ConnectWithMnemonic(req.Mnemonic, req.Index); err != nil {
		respondError(c, err)
		return
	}
	h.Status(c)
}

// Disconnect drops the credential
func (h *WalletHandlers) Disconnect(c *gin.Context) {
	h.wallet.Disconnect()
	h.Status(c)
}

// SignText signs a personal message
func (h *WalletHandlers) SignText(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	sig, err := h.wallet.SignText(req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": h.wallet.Address(), "signature": sig})
}

type signTxRequest struct {
	Nonce                uint64 `json:"nonce"`
	To                   string `json:"to"`
	Value                string `json:"value"`
	Gas                  uint64 `json:"gas" binding:"required"`
	GasPrice             string `json:"gasPrice"`
	MaxFeePerGas         string `json:"maxFeePerGas"`
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas"`
	ChainID              string `json:"chainId" binding:"required"`
	Data                 string `json:"data"`
}

// fields converts the request, accepting decimal or 0x quantities
func (r signTxRequest) fields() (core.TxFields, bool) {
	fields := core.TxFields{Nonce: r.Nonce, Gas: r.Gas}

	if r.To != "" {
		if !common.IsHexAddress(r.To) {
			return core.TxFields{}, false
		}
		to := common.HexToAddress(r.To)
		fields.To = &to
	}

	quantities := []struct {
		raw string
		dst **big.Int
	}{
		{r.Value, &fields.Value},
		{r.GasPrice, &fields.GasPrice},
		{r.MaxFeePerGas, &fields.GasFeeCap},
		{r.MaxPriorityFeePerGas, &fields.GasTipCap},
		{r.ChainID, &fields.ChainID},
	}
	for _, q := range quantities {
		if q.raw == "" {
			continue
		}
		n, ok := new(big.Int).SetString(q.raw, 0)
		if !ok || n.Sign() < 0 {
			return core.TxFields{}, false
		}
		*q.dst = n
	}

	if r.Data != "" {
		data, err := hexutil.Decode(r.Data)
		if err != nil {
			return core.TxFields{}, false
		}
		fields.Data = data
	}
	return fields, true
}

// SignTransaction signs a transaction and returns its raw encoding
func (h *WalletHandlers) SignTransaction(c *gin.Context) {
	var req signTxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}
	fields, ok := req.fields()
	if !ok {
		invalidRequest(c)
		return
	}

	raw, err := h.wallet.SignTransaction(fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rawTransaction": raw})
}

// Verify checks a personal message signature against an address
func (h *WalletHandlers) Verify(c *gin.Context) {
	var req struct {
		Address   string `json:"address" binding:"required"`
		Message   string `json:"message" binding:"required"`
		Signature string `json:"signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	if err := keys.VerifyTextSignature(req.Address, []byte(req.Message), req.Signature); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}
