package classify

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/hedisam/chaininvestigator/internal/chain"
)

const (
	ReasonEmpty        = "empty input"
	ReasonUnrecognized = "unrecognized format"
	ReasonTooLong      = "input too long"
	ReasonTronDisabled = "tron support is disabled"
	ReasonKindMismatch = "identifier does not match the requested kind"
	ReasonChainClash   = "identifier format does not belong to the requested chain"

	// MaxInputLen caps identifier length; real hashes and addresses are far shorter.
	MaxInputLen = 120
)

// Classification is the deterministic verdict for a raw identifier.
// Reason is only set when Kind is chain.KindInvalid.
type Classification struct {
	Identifier string      `json:"identifier"`
	Kind       chain.Kind  `json:"kind"`
	Chain      chain.Chain `json:"chain"`
	Reason     string      `json:"reason,omitempty"`
}

// IsValid reports whether a recognized pattern matched.
func (c Classification) IsValid() bool {
	return c.Kind != chain.KindInvalid
}

type Classifier struct {
	tronEnabled bool
}

func New(tronEnabled bool) *Classifier {
	return &Classifier{tronEnabled: tronEnabled}
}

// Classify maps every string to exactly one Classification. Rules are applied in priority order:
// EVM tx hash, TRON tx hash, EVM address, TRON address.
func (c *Classifier) Classify(raw string) Classification {
	id := strings.TrimSpace(raw)
	switch {
	case id == "":
		return invalid(id, ReasonEmpty)
	case len(id) > MaxInputLen:
		return invalid(id, ReasonTooLong)
	case IsEVMTxHash(id):
		return Classification{Identifier: id, Kind: chain.KindTx, Chain: chain.EVM}
	case c.tronEnabled && IsTronTxHash(id):
		return Classification{Identifier: id, Kind: chain.KindTx, Chain: chain.Tron}
	case IsEVMAddress(id):
		return Classification{Identifier: id, Kind: chain.KindAddress, Chain: chain.EVM}
	case c.tronEnabled && IsTronAddress(id):
		return Classification{Identifier: id, Kind: chain.KindAddress, Chain: chain.Tron}
	default:
		return invalid(id, ReasonUnrecognized)
	}
}

// Resolve classifies raw and then applies the caller's requested kind and chain.
// A requested kind that contradicts the detected one, or a requested chain whose identifier
// format differs from the detected family, yields an invalid classification.
func (c *Classifier) Resolve(raw string, kind chain.Kind, requested chain.Chain) Classification {
	cl := c.Classify(raw)
	if !cl.IsValid() {
		return cl
	}

	if kind == chain.KindTx || kind == chain.KindAddress {
		if cl.Kind != kind {
			return invalid(cl.Identifier, ReasonKindMismatch)
		}
	}

	switch requested {
	case chain.Ethereum, chain.Polygon:
		if cl.Chain != chain.EVM {
			return invalid(cl.Identifier, ReasonChainClash)
		}
		cl.Chain = requested
	case chain.Tron:
		if !c.tronEnabled {
			return invalid(cl.Identifier, ReasonTronDisabled)
		}
		if cl.Chain != chain.Tron {
			return invalid(cl.Identifier, ReasonChainClash)
		}
	}

	return cl
}

func invalid(id, reason string) Classification {
	return Classification{Identifier: id, Kind: chain.KindInvalid, Chain: chain.Unknown, Reason: reason}
}

// IsEVMTxHash reports whether s is 0x followed by 64 hex characters.
func IsEVMTxHash(s string) bool {
	return strings.HasPrefix(s, "0x") && isHash(s)
}

// IsTronTxHash reports whether s is exactly 64 hex characters without a prefix.
func IsTronTxHash(s string) bool {
	return len(s) == 2*common.HashLength && isHash("0x"+s)
}

// IsEVMAddress reports whether s is 0x followed by 40 hex characters.
func IsEVMAddress(s string) bool {
	return strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}

// IsTronAddress reports whether s looks like a base58 TRON address: a leading 'T' and 34 to 36 characters.
func IsTronAddress(s string) bool {
	return strings.HasPrefix(s, "T") && len(s) >= 34 && len(s) <= 36
}

func isHash(s string) bool {
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == common.HashLength
}
