package core

import "errors"

var (
	// Wallet state errors
	ErrInvalidAddress     = errors.New("invalid wallet address")
	ErrInvalidPrivateKey  = errors.New("invalid private key")
	ErrMnemonicLength     = errors.New("mnemonic must have 12 or 24 words")
	ErrInvalidMnemonic    = errors.New("invalid mnemonic")
	ErrSignerUnavailable  = errors.New("signing backend unavailable")
	ErrReadOnly           = errors.New("wallet not connected or read-only, cannot sign")
	ErrNotConnected       = errors.New("wallet not connected")
	ErrSigningFailed      = errors.New("signing failed")
	ErrIncompatibleSigner = errors.New("incompatible signing backend: no raw transaction in signed result")

	// Game rule errors
	ErrNotEvaluable    = errors.New("selection is not evaluable")
	ErrFriendBusy      = errors.New("friend is not idle")
	ErrTeamFull        = errors.New("team already has 3 invited friends")
	ErrAlreadyInvited  = errors.New("friend already invited")
	ErrUnknownSouvenir = errors.New("souvenir not owned by frog")

	// Request validation errors
	ErrInvalidTravelType = errors.New("invalid travel type")
	ErrInvalidChain      = errors.New("unsupported chain")
	ErrInvalidDuration   = errors.New("travel duration out of range")
	ErrInvalidAction     = errors.New("invalid interaction type")
	ErrInvalidName       = errors.New("frog name is required")

	// Upstream and storage errors
	ErrUpstream          = errors.New("game backend request failed")
	ErrSnapshotNotFound  = errors.New("frog snapshot not found")
	ErrMintJobNotFound   = errors.New("mint job not found")
	ErrTransactionFailed = errors.New("transaction reverted")

	// Local API session errors
	ErrTokenExpired     = errors.New("token has expired")
	ErrTokenInvalidated = errors.New("token has been invalidated")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidSignature = errors.New("invalid signature")
)
