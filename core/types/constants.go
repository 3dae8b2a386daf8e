package types

// ChainID is ID of the network (1 - mainnet, 2 - testnet)
type ChainID byte

const (
	// ChainMainnet is mainnet chain ID of the network
	ChainMainnet ChainID = 0x01
	// ChainTestnet is testnet chain ID of the network
	ChainTestnet ChainID = 0x02
)

// CurrentChainID is current ChainID of the network
var CurrentChainID = ChainMainnet

// Hard limits of the pot record. Fixed-capacity sets keep record size
// statically predictable; exceeding them is a terminal precondition failure,
// never a silent truncation.
const (
	// MaxPotNameLength is the longest allowed pot name, in bytes
	MaxPotNameLength = 32
	// MaxPotDescriptionLength is the longest allowed pot description, in bytes
	MaxPotDescriptionLength = 200
	// MaxPotContributors caps the approved contributors set of one pot
	MaxPotContributors = 20
	// MaxPotApprovals caps the release approvals set of one pot
	MaxPotApprovals = 10
)
