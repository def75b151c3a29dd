package explorer

import (
	"context"
	"slices"

	"github.com/hedisam/chaininvestigator/internal/chain"
)

// ReceiptFetcher fetches the receipt of hash on one concrete chain.
type ReceiptFetcher func(ctx context.Context, hash string, c chain.Chain) (*Receipt, error)

// ProbeOrder lists the chains tried for a receipt lookup. An explicit chain is used alone; anything else
// probes polygon first and falls back to ethereum. The order is a policy choice: a hash only exists on more
// than one EVM chain in contrived cases.
func ProbeOrder(hint chain.Chain) []chain.Chain {
	switch hint {
	case chain.Ethereum, chain.Polygon:
		return []chain.Chain{hint}
	default:
		return []chain.Chain{chain.Polygon, chain.Ethereum}
	}
}

// ResolveReceipt walks ProbeOrder(hint) and returns the first receipt that carries a block number together with
// the chain it was found on. When no chain has a mined receipt, the last chain tried is reported as resolved
// along with whatever its lookup returned.
func ResolveReceipt(ctx context.Context, hash string, hint chain.Chain, fetch ReceiptFetcher) (*Receipt, chain.Chain, error) {
	order := ProbeOrder(hint)

	var (
		receipt *Receipt
		err     error
	)
	for c := range slices.Values(order) {
		receipt, err = fetch(ctx, hash, c)
		if err == nil && receipt.HasBlock() {
			return receipt, c, nil
		}
	}

	return receipt, order[len(order)-1], err
}
