package facts

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"
)

const (
	WeiDecimals = 18
	SunDecimals = 6

	SymbolETH = "ETH"
	SymbolPOL = "POL"
	SymbolTRX = "TRX"
)

// Amount is an integer quantity in a token's smallest unit together with the decimals needed to display it.
type Amount struct {
	Raw      *big.Int `json:"raw"`
	Decimals int      `json:"decimals"`
	Symbol   string   `json:"symbol"`
}

func NewAmount(raw *big.Int, decimals int, symbol string) Amount {
	if raw == nil {
		raw = new(big.Int)
	}
	return Amount{Raw: new(big.Int).Set(raw), Decimals: decimals, Symbol: symbol}
}

// AmountFromDisplay converts a value already expressed in display units back into smallest units.
func AmountFromDisplay(display float64, decimals int, symbol string) Amount {
	f := new(big.Float).SetFloat64(display)
	f.Mul(f, new(big.Float).SetFloat64(math.Pow10(decimals)))
	raw, _ := f.Int(nil)
	// big.Float.Int truncates; round to the nearest unit to avoid 9.999999 style artefacts
	rem := new(big.Float).Sub(f, new(big.Float).SetInt(raw))
	if half, _ := rem.Float64(); half >= 0.5 {
		raw.Add(raw, big.NewInt(1))
	}
	return Amount{Raw: raw, Decimals: decimals, Symbol: symbol}
}

// Display returns the amount in display units, e.g. wei / 1e18.
func (a Amount) Display() *big.Float {
	if a.Raw == nil {
		return new(big.Float)
	}
	f := new(big.Float).SetPrec(256).SetInt(a.Raw)
	if a.Decimals == 0 {
		return f
	}
	div := new(big.Float).SetPrec(256).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(a.Decimals)), nil))
	return f.Quo(f, div)
}

// Float returns Display as a float64; precision loss is acceptable for thresholds.
func (a Amount) Float() float64 {
	f, _ := a.Display().Float64()
	return f
}

func (a Amount) String() string {
	s := a.Display().Text('f', a.Decimals)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if a.Symbol == "" {
		return s
	}
	return s + " " + a.Symbol
}

func (a Amount) MarshalJSON() ([]byte, error) {
	raw := "0"
	if a.Raw != nil {
		raw = a.Raw.String()
	}
	return json.Marshal(struct {
		Raw     string `json:"raw"`
		Display string `json:"display"`
		Symbol  string `json:"symbol"`
	}{
		Raw:     raw,
		Display: a.String(),
		Symbol:  a.Symbol,
	})
}
