package core

// Deployed contracts on ZetaChain Athens testnet
const (
	FrogContractAddress     = "0x76e7baA23fce77DA7Edbea58D8B888128D47A1Ff"
	SouvenirContractAddress = "0x9eC88079939357EC5Efe59d1687AC8b85f65857b"
)

// ChainConfig describes an EVM network
type ChainConfig struct {
	ChainID  int64
	Name     string
	RPCURL   string
	Symbol   string
	Explorer string
}

// AthensTestnet is the network the frog contracts live on
var AthensTestnet = ChainConfig{
	ChainID:  7001,
	Name:     "ZetaChain Athens",
	RPCURL:   "https://zetachain-athens-evm.blockpi.network/v1/rpc/public",
	Symbol:   "ZETA",
	Explorer: "https://athens.explorer.zetachain.com",
}

// FrogMintABI holds the subset of the ZetaFrog NFT ABI used for minting
const FrogMintABI = `[
	{
		"inputs": [{"internalType": "string", "name": "name", "type": "string"}],
		"name": "mintFrog",
		"outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`
