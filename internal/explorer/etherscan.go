package explorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"

	"github.com/hedisam/chaininvestigator/internal/chain"
	"github.com/hedisam/chaininvestigator/internal/facts"
)

const (
	DefaultEtherscanURL = "https://api.etherscan.io/v2/api"

	sourceEtherscan = "etherscan"

	actionReceipt = "eth_getTransactionReceipt"
	actionBlock   = "eth_getBlockByNumber"
	actionBalance = "eth_getBalance"
	actionTxCount = "eth_getTransactionCount"

	ethereumChainID = 1
	polygonChainID  = 137
)

// ChainID returns the Etherscan V2 multichain id for c. Anything that is not polygon is ethereum.
func ChainID(c chain.Chain) int {
	if c == chain.Polygon {
		return polygonChainID
	}
	return ethereumChainID
}

// Etherscan talks to the Etherscan V2 multichain proxy module, which mirrors the node JSON-RPC API for
// ethereum and polygon.
type Etherscan struct {
	logger     *logrus.Logger
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewEtherscan(logger *logrus.Logger, httpClient *http.Client, baseURL, apiKey string) *Etherscan {
	if baseURL == "" {
		baseURL = DefaultEtherscanURL
	}
	return &Etherscan{
		logger:     logger,
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Receipt is the subset of a transaction receipt the analyzer needs. Numeric fields are kept as the hex
// strings the node returned and decoded on access.
type Receipt struct {
	TxHash            string            `json:"transactionHash"`
	BlockNumber       string            `json:"blockNumber"`
	From              string            `json:"from"`
	To                string            `json:"to"`
	ContractAddress   string            `json:"contractAddress"`
	Status            string            `json:"status"`
	GasUsed           string            `json:"gasUsed"`
	EffectiveGasPrice string            `json:"effectiveGasPrice"`
	Logs              []json.RawMessage `json:"logs"`
}

// HasBlock reports whether the receipt belongs to a mined block.
func (r *Receipt) HasBlock() bool {
	return r != nil && r.BlockNumber != ""
}

// BlockNum decodes the receipt's block number.
func (r *Receipt) BlockNum() (uint64, bool) {
	if r == nil {
		return 0, false
	}
	return decodeUint64(r.BlockNumber)
}

// TxStatus maps the tri-state status code: 0x1 success, 0x0 failed, anything else unknown.
func (r *Receipt) TxStatus() facts.Status {
	if r == nil {
		return facts.StatusUnknown
	}
	switch v, ok := decodeUint64(r.Status); {
	case ok && v == 1:
		return facts.StatusSuccess
	case ok && v == 0:
		return facts.StatusFailed
	default:
		return facts.StatusUnknown
	}
}

// Fee returns gasUsed * effectiveGasPrice in wei when both are present.
func (r *Receipt) Fee() (*big.Int, bool) {
	if r == nil {
		return nil, false
	}
	gasUsed, err := hexutil.DecodeBig(r.GasUsed)
	if err != nil {
		return nil, false
	}
	price, err := hexutil.DecodeBig(r.EffectiveGasPrice)
	if err != nil {
		return nil, false
	}
	return new(big.Int).Mul(gasUsed, price), true
}

type Block struct {
	Number    string `json:"number"`
	Hash      string `json:"hash"`
	Timestamp string `json:"timestamp"`
}

// Time decodes the block timestamp (unix seconds).
func (b *Block) Time() (uint64, bool) {
	if b == nil {
		return 0, false
	}
	return decodeUint64(b.Timestamp)
}

// proxyResponse is the envelope of every proxy-module call. On API errors Etherscan replaces the JSON-RPC
// result with a plain string message, so result is decoded lazily.
type proxyResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// TxReceipt fetches the receipt of hash on c. It returns facts.ErrNotFound if the chain does not know it.
func (e *Etherscan) TxReceipt(ctx context.Context, hash string, c chain.Chain) (*Receipt, error) {
	var receipt Receipt
	err := e.proxy(ctx, c, actionReceipt, url.Values{"txhash": {hash}}, &receipt)
	if err != nil {
		return nil, fmt.Errorf("get receipt %s on %s: %w", hash, c, err)
	}
	return &receipt, nil
}

// BlockByNumber fetches the header fields of block number on c.
func (e *Etherscan) BlockByNumber(ctx context.Context, number uint64, c chain.Chain) (*Block, error) {
	var block Block
	params := url.Values{
		"tag":     {hexutil.EncodeUint64(number)},
		"boolean": {"false"},
	}
	err := e.proxy(ctx, c, actionBlock, params, &block)
	if err != nil {
		return nil, fmt.Errorf("get block %d on %s: %w", number, c, err)
	}
	return &block, nil
}

// Balance returns the latest native balance of addr in wei.
func (e *Etherscan) Balance(ctx context.Context, addr string, c chain.Chain) (*big.Int, error) {
	var hex string
	err := e.proxy(ctx, c, actionBalance, url.Values{"address": {addr}, "tag": {"latest"}}, &hex)
	if err != nil {
		return nil, fmt.Errorf("get balance of %s on %s: %w", addr, c, err)
	}
	balance, err := hexutil.DecodeBig(hex)
	if err != nil {
		return nil, fmt.Errorf("decode balance %q: %w", hex, err)
	}
	return balance, nil
}

// TxCount returns the nonce of addr, i.e. the number of confirmed outgoing transactions.
func (e *Etherscan) TxCount(ctx context.Context, addr string, c chain.Chain) (uint64, error) {
	var hex string
	err := e.proxy(ctx, c, actionTxCount, url.Values{"address": {addr}, "tag": {"latest"}}, &hex)
	if err != nil {
		return 0, fmt.Errorf("get tx count of %s on %s: %w", addr, c, err)
	}
	count, err := hexutil.DecodeUint64(hex)
	if err != nil {
		return 0, fmt.Errorf("decode tx count %q: %w", hex, err)
	}
	return count, nil
}

func (e *Etherscan) proxy(ctx context.Context, c chain.Chain, action string, params url.Values, out any) (err error) {
	defer func() { observe(sourceEtherscan, action, err) }()

	params.Set("chainid", strconv.Itoa(ChainID(c)))
	params.Set("module", "proxy")
	params.Set("action", action)
	if e.apiKey != "" {
		params.Set("apikey", e.apiKey)
	}

	var resp proxyResponse
	err = getJSON(ctx, e.httpClient, e.baseURL, params, &resp)
	if err != nil {
		return err
	}

	if resp.Error != nil {
		return fmt.Errorf("rpc error %d: %s", resp.Error.Code, resp.Error.Message)
	}

	result := bytes.TrimSpace(resp.Result)
	if len(result) == 0 || bytes.Equal(result, []byte("null")) {
		return facts.ErrNotFound
	}

	// a string result on an object-typed call is an API level error message
	if result[0] == '"' {
		if _, wantsString := out.(*string); !wantsString || resp.Status == "0" {
			var msg string
			_ = json.Unmarshal(result, &msg)
			return fmt.Errorf("etherscan error (%s): %s", resp.Message, msg)
		}
	}

	err = json.Unmarshal(result, out)
	if err != nil {
		return fmt.Errorf("decode %s result: %w", action, err)
	}
	return nil
}

func decodeUint64(hex string) (uint64, bool) {
	if hex == "" {
		return 0, false
	}
	v, err := hexutil.DecodeUint64(hex)
	if err != nil {
		return 0, false
	}
	return v, true
}
