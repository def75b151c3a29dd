package explorer

import (
	"encoding/json"
	"math/big"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/hedisam/chaininvestigator/internal/facts"
)

// TransferEventSignature is keccak256("Transfer(address,address,uint256)"), topic0 of every ERC-20 transfer.
var TransferEventSignature = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

type receiptLog struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
}

// ParseTransfers decodes the ERC-20 Transfer events of a receipt. Logs with another topic0 are skipped and
// so are malformed ones; the result is never nil.
func ParseTransfers(receipt *Receipt) []facts.Transfer {
	transfers := []facts.Transfer{}
	if receipt == nil {
		return transfers
	}

	for raw := range slices.Values(receipt.Logs) {
		transfer, ok := parseTransferLog(raw)
		if ok {
			transfers = append(transfers, transfer)
		}
	}
	return transfers
}

func parseTransferLog(raw json.RawMessage) (facts.Transfer, bool) {
	var lg receiptLog
	err := json.Unmarshal(raw, &lg)
	if err != nil {
		return facts.Transfer{}, false
	}

	// ERC-721 transfers share the signature but index the token id as a 4th topic
	if len(lg.Topics) != 3 {
		return facts.Transfer{}, false
	}

	topic0, ok := decodeTopic(lg.Topics[0])
	if !ok || topic0 != TransferEventSignature {
		return facts.Transfer{}, false
	}
	fromTopic, ok := decodeTopic(lg.Topics[1])
	if !ok {
		return facts.Transfer{}, false
	}
	toTopic, ok := decodeTopic(lg.Topics[2])
	if !ok {
		return facts.Transfer{}, false
	}

	value := new(big.Int)
	if lg.Data != "" && lg.Data != "0x" {
		data, err := hexutil.Decode(lg.Data)
		if err != nil {
			return facts.Transfer{}, false
		}
		value.SetBytes(data)
	}

	return facts.Transfer{
		From:     strings.ToLower(common.BytesToAddress(fromTopic.Bytes()).Hex()),
		To:       strings.ToLower(common.BytesToAddress(toTopic.Bytes()).Hex()),
		ValueRaw: value,
		Contract: strings.ToLower(lg.Address),
	}, true
}

func decodeTopic(s string) (common.Hash, bool) {
	b, err := hexutil.Decode(s)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, false
	}
	return common.BytesToHash(b), true
}
