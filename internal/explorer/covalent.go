package explorer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/chaininvestigator/internal/chain"
	"github.com/hedisam/chaininvestigator/internal/facts"
)

const (
	DefaultCovalentURL = "https://api.covalenthq.com/v1"

	sourceCovalent = "covalent"
)

// Covalent lists the fungible token holdings of EVM addresses.
type Covalent struct {
	logger     *logrus.Logger
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewCovalent(logger *logrus.Logger, httpClient *http.Client, baseURL, apiKey string) *Covalent {
	if baseURL == "" {
		baseURL = DefaultCovalentURL
	}
	return &Covalent{
		logger:     logger,
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

type covalentBalancesResponse struct {
	Data *struct {
		Items []struct {
			ContractTickerSymbol string      `json:"contract_ticker_symbol"`
			ContractAddress      string      `json:"contract_address"`
			ContractDecimals     *int        `json:"contract_decimals"`
			Balance              *flexNumber `json:"balance"`
		} `json:"items"`
	} `json:"data"`
	Error        bool   `json:"error"`
	ErrorMessage string `json:"error_message"`
}

// TokenHoldings returns every token balance Covalent reports for addr on c, native coin included.
func (cv *Covalent) TokenHoldings(ctx context.Context, addr string, c chain.Chain) (_ []facts.TokenHolding, err error) {
	defer func() { observe(sourceCovalent, "balances_v2", err) }()

	endpoint := fmt.Sprintf("%s/%d/address/%s/balances_v2/", cv.baseURL, ChainID(c), url.PathEscape(addr))
	params := url.Values{}
	if cv.apiKey != "" {
		params.Set("key", cv.apiKey)
	}

	var resp covalentBalancesResponse
	err = getJSON(ctx, cv.httpClient, endpoint, params, &resp)
	if err != nil {
		return nil, fmt.Errorf("get token holdings of %s on %s: %w", addr, c, err)
	}
	if resp.Error {
		return nil, fmt.Errorf("covalent error: %s", resp.ErrorMessage)
	}

	holdings := []facts.TokenHolding{}
	if resp.Data == nil {
		return holdings, nil
	}
	for item := range slices.Values(resp.Data.Items) {
		decimals := 0
		if item.ContractDecimals != nil {
			decimals = *item.ContractDecimals
		}
		var balance float64
		if raw, ok := item.Balance.Int(); ok {
			balance = facts.NewAmount(raw, decimals, "").Float()
		}
		holdings = append(holdings, facts.TokenHolding{
			Symbol:   item.ContractTickerSymbol,
			Contract: strings.ToLower(item.ContractAddress),
			Balance:  balance,
		})
	}
	return holdings, nil
}
