package explorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/chaininvestigator/internal/facts"
)

const (
	DefaultTronScanURL = "https://apilist.tronscanapi.com/api"

	sourceTronScan = "tronscan"

	// SunPerTRX is the fixed divisor between the smallest TRON unit and TRX.
	SunPerTRX = 1_000_000
)

// TronScan is a keyless client for the public TronScan explorer API.
type TronScan struct {
	logger     *logrus.Logger
	httpClient *http.Client
	baseURL    string
}

func NewTronScan(logger *logrus.Logger, httpClient *http.Client, baseURL string) *TronScan {
	if baseURL == "" {
		baseURL = DefaultTronScanURL
	}
	return &TronScan{
		logger:     logger,
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// TronTx is a TRON transaction as reported by TronScan. Timestamp is in milliseconds and NetFee in SUN.
type TronTx struct {
	Hash         string `json:"hash"`
	Block        uint64 `json:"block"`
	Timestamp    int64  `json:"timestamp"`
	OwnerAddress string `json:"ownerAddress"`
	ToAddress    string `json:"toAddress"`
	ContractType int    `json:"contractType"`
	Confirmed    bool   `json:"confirmed"`
	Cost         struct {
		NetFee int64 `json:"net_fee"`
	} `json:"cost"`
}

// Transaction fetches a TRON transaction by its 64 hex character id.
func (t *TronScan) Transaction(ctx context.Context, hash string) (_ *TronTx, err error) {
	defer func() { observe(sourceTronScan, "transaction-info", err) }()

	var tx TronTx
	err = getJSON(ctx, t.httpClient, t.baseURL+"/transaction-info", url.Values{"hash": {hash}}, &tx)
	if err != nil {
		return nil, fmt.Errorf("get tron transaction %s: %w", hash, err)
	}
	if tx.Hash == "" {
		return nil, fmt.Errorf("tron transaction %s: %w", hash, facts.ErrNotFound)
	}
	return &tx, nil
}

type tronAccountFields struct {
	Balance               *flexNumber `json:"balance"`
	TotalTransactionCount *flexNumber `json:"totalTransactionCount"`
}

type tronAccountResponse struct {
	tronAccountFields
	WithPriceTokens []struct {
		TokenAbbr string      `json:"tokenAbbr"`
		Balance   *flexNumber `json:"balance"`
	} `json:"withPriceTokens"`
	// some deployments wrap the account in a data list
	Data []tronAccountFields `json:"data"`
}

// Account fetches the TRX balance and transaction count of a base58 address. The explorer is inconsistent
// about units: a TRX entry in withPriceTokens is already in TRX and takes precedence over the SUN balance.
func (t *TronScan) Account(ctx context.Context, address string) (_ facts.Account, err error) {
	defer func() { observe(sourceTronScan, "account", err) }()

	var resp tronAccountResponse
	err = getJSON(ctx, t.httpClient, t.baseURL+"/account", url.Values{"address": {address}}, &resp)
	if err != nil {
		return facts.Account{}, fmt.Errorf("get tron account %s: %w", address, err)
	}

	fields := resp.tronAccountFields
	if fields.Balance == nil && fields.TotalTransactionCount == nil && len(resp.Data) > 0 {
		fields = resp.Data[0]
	}

	account := facts.Account{Address: address}
	for token := range slices.Values(resp.WithPriceTokens) {
		if token.TokenAbbr != facts.SymbolTRX || token.Balance == nil {
			continue
		}
		trx, ok := token.Balance.Float()
		if ok {
			account.Balance.Set(facts.AmountFromDisplay(trx, facts.SunDecimals, facts.SymbolTRX))
			break
		}
	}
	if fields.Balance != nil {
		sun, ok := fields.Balance.Int()
		if ok {
			account.Balance.Set(facts.NewAmount(sun, facts.SunDecimals, facts.SymbolTRX))
		}
	}
	if fields.TotalTransactionCount != nil {
		count, ok := fields.TotalTransactionCount.Int()
		if ok && count.IsUint64() {
			account.TxCount.Set(count.Uint64())
		}
	}

	return account, nil
}

// flexNumber accepts both JSON numbers and numeric strings.
type flexNumber struct {
	raw string
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		err := json.Unmarshal(data, &s)
		if err != nil {
			return err
		}
		n.raw = strings.TrimSpace(s)
		return nil
	}
	n.raw = string(data)
	return nil
}

func (n *flexNumber) Float() (float64, bool) {
	if n == nil || n.raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (n *flexNumber) Int() (*big.Int, bool) {
	if n == nil || n.raw == "" {
		return nil, false
	}
	v, ok := new(big.Int).SetString(n.raw, 10)
	if ok {
		return v, true
	}
	// tolerate "1.0e7" or "10000000.0"
	f, _, err := big.ParseFloat(n.raw, 10, 256, big.ToNearestEven)
	if err != nil {
		return nil, false
	}
	v, _ = f.Int(nil)
	return v, true
}
