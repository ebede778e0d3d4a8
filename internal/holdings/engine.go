// Package holdings converts an append-only transaction ledger into current
// positions with cost basis and live valuation. The computation is pure: it
// keeps no state between calls and recomputes everything from the snapshot it
// is given.
package holdings

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/PShah260898/PRS-FinSight/internal/models"
)

// PriceLookup resolves latest prices for a batch of symbols. Symbols without
// a resolvable price are absent from the returned map. The engine issues
// exactly one call per Compute invocation; timeout and retry policy belong to
// the gateway behind the lookup, not here.
type PriceLookup func(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)

// Zero-basis policies for positions that have units but no recorded BUY cost
// (e.g. history migrated from another broker).
const (
	// ZeroBasisZero keeps the historical behavior: P/L is computed against a
	// zero cost baseline.
	ZeroBasisZero = "zero"
	// ZeroBasisFlag suppresses P/L for such positions instead of reporting
	// inflated profit against a zero baseline.
	ZeroBasisFlag = "flag"
)

type Options struct {
	ZeroBasisPolicy string
}

// Position is the derived holding in one (symbol, asset_type) pair. The same
// symbol under two asset type labels is tracked as two positions. Valuation
// fields are nil when no price could be resolved.
type Position struct {
	Symbol    string `json:"symbol"`
	AssetType string `json:"asset_type"`

	Units    decimal.Decimal `json:"units"`
	AvgCost  decimal.Decimal `json:"avg_cost"`
	Invested decimal.Decimal `json:"invested"`

	// NoCostBasis marks positions with non-zero units and no BUY history, so
	// callers can render "cost basis unknown" distinctly.
	NoCostBasis bool `json:"no_cost_basis,omitempty"`

	Last   *decimal.Decimal `json:"last,omitempty"`
	Value  *decimal.Decimal `json:"value,omitempty"`
	PnL    *decimal.Decimal `json:"pnl,omitempty"`
	PnLPct *decimal.Decimal `json:"pnl_pct,omitempty"`
}

type Summary struct {
	TotalValue    decimal.Decimal `json:"total_value"`
	TotalInvested decimal.Decimal `json:"total_invested"`
	TotalPnL      decimal.Decimal `json:"total_pnl"`
	PnLPct        decimal.Decimal `json:"pnl_pct"`
}

type group struct {
	symbol    string
	assetType string

	net      decimal.Decimal
	buyUnits decimal.Decimal
	cost     decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Compute aggregates the ledger into positions and joins the result against
// one batched price lookup. It never fails: an empty ledger yields an empty
// slice, unknown transaction kinds contribute nothing, and a lookup error
// degrades to absent valuation fields for every position.
func Compute(ctx context.Context, txs []models.Transaction, lookup PriceLookup, opts Options) []Position {
	if len(txs) == 0 {
		return []Position{}
	}

	groups := make(map[string]*group)
	for _, tx := range txs {
		symbol := strings.ToUpper(strings.TrimSpace(tx.Symbol))
		if symbol == "" {
			continue
		}
		key := symbol + "\x00" + tx.AssetType
		g, ok := groups[key]
		if !ok {
			g = &group{symbol: symbol, assetType: tx.AssetType}
			groups[key] = g
		}

		kind := strings.ToUpper(strings.TrimSpace(tx.TxnType))
		if kind == models.TxnSIP {
			kind = models.TxnBuy
		}
		switch kind {
		case models.TxnBuy:
			g.net = g.net.Add(tx.Units)
			g.buyUnits = g.buyUnits.Add(tx.Units)
			g.cost = g.cost.Add(tx.Units.Mul(tx.Price).Add(tx.Fees))
		case models.TxnSell:
			g.net = g.net.Sub(tx.Units)
		case models.TxnDiv:
			// Informational only: no unit or cost basis impact.
		default:
			// Unrecognized kind: zero signed units, never a failure.
		}
	}

	symbolSet := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		symbolSet[g.symbol] = struct{}{}
	}
	symbols := make([]string, 0, len(symbolSet))
	for s := range symbolSet {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	// One batched call for all distinct symbols. A failed lookup means no
	// prices, not a failed computation.
	var prices map[string]decimal.Decimal
	if lookup != nil {
		if got, err := lookup(ctx, symbols); err == nil {
			prices = got
		}
	}

	out := make([]Position, 0, len(groups))
	for _, g := range groups {
		pos := Position{
			Symbol:    g.symbol,
			AssetType: g.assetType,
			Units:     g.net,
			Invested:  g.cost,
		}
		if g.buyUnits.IsPositive() {
			pos.AvgCost = g.cost.Div(g.buyUnits)
		} else {
			pos.NoCostBasis = !g.net.IsZero()
		}

		if last, ok := prices[g.symbol]; ok {
			l := last
			pos.Last = &l
			value := g.net.Mul(last)
			pos.Value = &value
			pnl := last.Sub(pos.AvgCost).Mul(g.net)
			pos.PnL = &pnl
			if pos.AvgCost.IsPositive() {
				pct := last.Div(pos.AvgCost).Sub(decimal.NewFromInt(1)).Mul(hundred)
				pos.PnLPct = &pct
			}
			if opts.ZeroBasisPolicy == ZeroBasisFlag && pos.NoCostBasis {
				pos.PnL = nil
				pos.PnLPct = nil
			}
		}
		out = append(out, pos)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Symbol != out[j].Symbol {
			return out[i].Symbol < out[j].Symbol
		}
		return out[i].AssetType < out[j].AssetType
	})
	return out
}

// Summarize derives portfolio-level totals, treating absent valuation fields
// as zero. The overall return percentage is zero when nothing is invested.
func Summarize(positions []Position) Summary {
	var s Summary
	for _, p := range positions {
		s.TotalInvested = s.TotalInvested.Add(p.Invested)
		if p.Value != nil {
			s.TotalValue = s.TotalValue.Add(*p.Value)
		}
		if p.PnL != nil {
			s.TotalPnL = s.TotalPnL.Add(*p.PnL)
		}
	}
	if s.TotalInvested.IsPositive() {
		s.PnLPct = s.TotalValue.Div(s.TotalInvested).Sub(decimal.NewFromInt(1)).Mul(hundred)
	}
	return s
}
