package chain

import "strings"

// Chain identifies the network an identifier lives on.
type Chain string

const (
	Unknown  Chain = "unknown"
	Ethereum Chain = "ethereum"
	Polygon  Chain = "polygon"
	Tron     Chain = "tron"
	// EVM is an ethereum-family identifier whose concrete chain has not been resolved yet.
	EVM Chain = "evm"
	// Auto asks the lookup layer to resolve the EVM chain by probing.
	Auto Chain = "auto"
)

// IsEVM reports whether c is one of the EVM-family chains, including the unresolved EVM and Auto values.
func (c Chain) IsEVM() bool {
	return c == Ethereum || c == Polygon || c == EVM || c == Auto
}

func (c Chain) String() string {
	return string(c)
}

// Parse maps user supplied chain names (and their common aliases) to a Chain.
// Empty input maps to Auto, unrecognised input to Unknown.
func Parse(s string) Chain {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto
	case "eth", "ethereum", "mainnet":
		return Ethereum
	case "polygon", "matic", "pol":
		return Polygon
	case "tron", "trx", "trc":
		return Tron
	default:
		return Unknown
	}
}

// Kind is the identifier category.
type Kind string

const (
	KindInvalid Kind = "invalid"
	KindTx      Kind = "tx"
	KindAddress Kind = "address"
	KindAuto    Kind = "auto"
)

// ParseKind maps the requested kind to a Kind. Anything unrecognised is treated as Auto.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tx", "transaction", "hash":
		return KindTx
	case "address", "wallet":
		return KindAddress
	default:
		return KindAuto
	}
}
