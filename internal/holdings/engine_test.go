package holdings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/PShah260898/PRS-FinSight/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func tx(symbol, assetType, kind, units, price, fees string) models.Transaction {
	return models.Transaction{
		UserID:    1,
		Date:      "2026-01-02",
		Symbol:    symbol,
		AssetType: assetType,
		TxnType:   kind,
		Units:     dec(units),
		Price:     dec(price),
		Fees:      dec(fees),
	}
}

func fixedPrices(prices map[string]string) PriceLookup {
	return func(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
		out := make(map[string]decimal.Decimal, len(prices))
		for s, p := range prices {
			out[s] = dec(p)
		}
		return out, nil
	}
}

func TestCompute_EmptyLedger(t *testing.T) {
	got := Compute(context.Background(), nil, fixedPrices(nil), Options{})
	if len(got) != 0 {
		t.Fatalf("positions=%d want 0", len(got))
	}
}

func TestCompute_BuyOnlyAverageCost(t *testing.T) {
	txs := []models.Transaction{
		tx("AAPL", "stock", "BUY", "10", "100", "5"),
		tx("AAPL", "stock", "BUY", "30", "120", "0"),
	}
	got := Compute(context.Background(), txs, fixedPrices(nil), Options{})
	if len(got) != 1 {
		t.Fatalf("positions=%d want 1", len(got))
	}
	p := got[0]
	if !p.Units.Equal(dec("40")) {
		t.Fatalf("units=%s want 40", p.Units)
	}
	// (10*100+5 + 30*120) / 40 = 4605/40 = 115.125
	if !p.AvgCost.Equal(dec("115.125")) {
		t.Fatalf("avg_cost=%s want 115.125", p.AvgCost)
	}
	if !p.Invested.Equal(dec("4605")) {
		t.Fatalf("invested=%s want 4605", p.Invested)
	}
}

func TestCompute_BuyThenSell(t *testing.T) {
	txs := []models.Transaction{
		tx("MSFT", "stock", "BUY", "10", "100", "5"),
		tx("MSFT", "stock", "SELL", "4", "120", "0"),
	}
	got := Compute(context.Background(), txs, fixedPrices(map[string]string{"MSFT": "120"}), Options{})
	if len(got) != 1 {
		t.Fatalf("positions=%d want 1", len(got))
	}
	p := got[0]
	if !p.Units.Equal(dec("6")) {
		t.Fatalf("units=%s want 6", p.Units)
	}
	if !p.Invested.Equal(dec("1005")) {
		t.Fatalf("invested=%s want 1005", p.Invested)
	}
	if !p.AvgCost.Equal(dec("100.5")) {
		t.Fatalf("avg_cost=%s want 100.5", p.AvgCost)
	}
	if p.PnL == nil || !p.PnL.Equal(dec("117")) {
		t.Fatalf("pnl=%v want 117", p.PnL)
	}
}

func TestCompute_SIPIsBuy(t *testing.T) {
	txs := []models.Transaction{
		tx("NIFTYBEES", "etf", "SIP", "5", "200", "0"),
		tx("NIFTYBEES", "etf", "SIP", "5", "220", "0"),
	}
	got := Compute(context.Background(), txs, fixedPrices(nil), Options{})
	p := got[0]
	if !p.Units.Equal(dec("10")) {
		t.Fatalf("units=%s want 10", p.Units)
	}
	if !p.AvgCost.Equal(dec("210")) {
		t.Fatalf("avg_cost=%s want 210", p.AvgCost)
	}
	if !p.Invested.Equal(dec("2100")) {
		t.Fatalf("invested=%s want 2100", p.Invested)
	}
}

func TestCompute_DividendHasNoImpact(t *testing.T) {
	txs := []models.Transaction{
		tx("AAPL", "stock", "BUY", "10", "100", "0"),
		tx("AAPL", "stock", "DIV", "999", "50", "10"),
	}
	got := Compute(context.Background(), txs, fixedPrices(nil), Options{})
	p := got[0]
	if !p.Units.Equal(dec("10")) {
		t.Fatalf("units=%s want 10", p.Units)
	}
	if !p.Invested.Equal(dec("1000")) {
		t.Fatalf("invested=%s want 1000", p.Invested)
	}
}

func TestCompute_SellWithoutBuy(t *testing.T) {
	txs := []models.Transaction{
		tx("TCS.NS", "stock", "SELL", "3", "40", "0"),
	}
	got := Compute(context.Background(), txs, fixedPrices(map[string]string{"TCS.NS": "50"}), Options{})
	p := got[0]
	if !p.Units.Equal(dec("-3")) {
		t.Fatalf("units=%s want -3", p.Units)
	}
	if !p.AvgCost.IsZero() {
		t.Fatalf("avg_cost=%s want 0", p.AvgCost)
	}
	if !p.NoCostBasis {
		t.Fatalf("no_cost_basis=false want true")
	}
	// pnl_pct is undefined against a zero basis; pnl falls back to the zero
	// baseline under the default policy.
	if p.PnLPct != nil {
		t.Fatalf("pnl_pct=%v want nil", p.PnLPct)
	}
	if p.Value == nil || !p.Value.Equal(dec("-150")) {
		t.Fatalf("value=%v want -150", p.Value)
	}
	if p.PnL == nil || !p.PnL.Equal(dec("-150")) {
		t.Fatalf("pnl=%v want -150", p.PnL)
	}
}

func TestCompute_ZeroBasisFlagPolicy(t *testing.T) {
	txs := []models.Transaction{
		tx("TCS.NS", "stock", "SELL", "3", "40", "0"),
	}
	got := Compute(context.Background(), txs, fixedPrices(map[string]string{"TCS.NS": "50"}), Options{ZeroBasisPolicy: ZeroBasisFlag})
	p := got[0]
	if p.PnL != nil || p.PnLPct != nil {
		t.Fatalf("pnl=%v pnl_pct=%v want both nil under flag policy", p.PnL, p.PnLPct)
	}
	if p.Value == nil || !p.Value.Equal(dec("-150")) {
		t.Fatalf("value=%v want -150", p.Value)
	}
}

func TestCompute_MissingPrice(t *testing.T) {
	txs := []models.Transaction{
		tx("AAPL", "stock", "BUY", "10", "100", "0"),
		tx("DELISTED", "stock", "BUY", "5", "10", "0"),
	}
	got := Compute(context.Background(), txs, fixedPrices(map[string]string{"AAPL": "110"}), Options{})
	if len(got) != 2 {
		t.Fatalf("positions=%d want 2", len(got))
	}
	aapl, gone := got[0], got[1]
	if aapl.Last == nil || aapl.Value == nil || aapl.PnL == nil || aapl.PnLPct == nil {
		t.Fatalf("AAPL valuation incomplete: %+v", aapl)
	}
	if gone.Last != nil || gone.Value != nil || gone.PnL != nil || gone.PnLPct != nil {
		t.Fatalf("DELISTED valuation should be absent: %+v", gone)
	}
	if !gone.Units.Equal(dec("5")) || !gone.Invested.Equal(dec("50")) {
		t.Fatalf("DELISTED units/invested affected: %+v", gone)
	}
}

func TestCompute_LookupFailureDegrades(t *testing.T) {
	txs := []models.Transaction{
		tx("AAPL", "stock", "BUY", "10", "100", "0"),
	}
	failing := func(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
		return nil, errors.New("gateway unavailable")
	}
	got := Compute(context.Background(), txs, failing, Options{})
	p := got[0]
	if p.Last != nil || p.Value != nil || p.PnL != nil || p.PnLPct != nil {
		t.Fatalf("valuation should be absent on gateway failure: %+v", p)
	}
	if !p.Units.Equal(dec("10")) || !p.AvgCost.Equal(dec("100")) {
		t.Fatalf("units/avg_cost affected by gateway failure: %+v", p)
	}
}

func TestCompute_NilLookup(t *testing.T) {
	txs := []models.Transaction{tx("AAPL", "stock", "BUY", "1", "1", "0")}
	got := Compute(context.Background(), txs, nil, Options{})
	if len(got) != 1 || got[0].Last != nil {
		t.Fatalf("nil lookup should yield absent valuation: %+v", got)
	}
}

func TestCompute_UnknownKindIgnored(t *testing.T) {
	txs := []models.Transaction{
		tx("AAPL", "stock", "BUY", "10", "100", "0"),
		tx("AAPL", "stock", "BONUS", "100", "0", "0"),
	}
	got := Compute(context.Background(), txs, fixedPrices(nil), Options{})
	if !got[0].Units.Equal(dec("10")) {
		t.Fatalf("units=%s want 10", got[0].Units)
	}
}

func TestCompute_SymbolCaseFolding(t *testing.T) {
	txs := []models.Transaction{
		tx("aapl", "stock", "BUY", "5", "100", "0"),
		tx("AAPL", "stock", "BUY", "5", "100", "0"),
	}
	got := Compute(context.Background(), txs, fixedPrices(nil), Options{})
	if len(got) != 1 {
		t.Fatalf("positions=%d want 1 (case-folded)", len(got))
	}
	if got[0].Symbol != "AAPL" {
		t.Fatalf("symbol=%q want AAPL", got[0].Symbol)
	}
	if !got[0].Units.Equal(dec("10")) {
		t.Fatalf("units=%s want 10", got[0].Units)
	}
}

func TestCompute_AssetTypesTrackedSeparately(t *testing.T) {
	txs := []models.Transaction{
		tx("GOLD", "etf", "BUY", "5", "100", "0"),
		tx("GOLD", "crypto", "BUY", "2", "90", "0"),
	}
	got := Compute(context.Background(), txs, fixedPrices(map[string]string{"GOLD": "110"}), Options{})
	if len(got) != 2 {
		t.Fatalf("positions=%d want 2", len(got))
	}
	// Same symbol: both receive the same price.
	if got[0].Last == nil || got[1].Last == nil || !got[0].Last.Equal(*got[1].Last) {
		t.Fatalf("price merge by symbol failed: %+v", got)
	}
}

func TestCompute_SingleBatchedLookup(t *testing.T) {
	txs := []models.Transaction{
		tx("AAPL", "stock", "BUY", "1", "1", "0"),
		tx("MSFT", "stock", "BUY", "1", "1", "0"),
		tx("AAPL", "stock", "SELL", "1", "1", "0"),
	}
	calls := 0
	var seen []string
	lookup := func(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
		calls++
		seen = symbols
		return nil, nil
	}
	Compute(context.Background(), txs, lookup, Options{})
	if calls != 1 {
		t.Fatalf("lookup calls=%d want 1", calls)
	}
	if len(seen) != 2 || seen[0] != "AAPL" || seen[1] != "MSFT" {
		t.Fatalf("lookup symbols=%v want [AAPL MSFT]", seen)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	txs := []models.Transaction{
		tx("AAPL", "stock", "BUY", "10", "100.5", "1.25"),
		tx("msft", "stock", "SIP", "3", "310", "0"),
		tx("AAPL", "stock", "SELL", "4", "120", "0"),
		tx("BTC-USD", "crypto", "DIV", "1", "1", "0"),
	}
	lookup := fixedPrices(map[string]string{"AAPL": "111.11", "MSFT": "305"})
	a := Compute(context.Background(), txs, lookup, Options{})
	b := Compute(context.Background(), txs, lookup, Options{})
	ja, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	jb, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(ja) != string(jb) {
		t.Fatalf("outputs differ:\n%s\n%s", ja, jb)
	}
}

func TestSummarize(t *testing.T) {
	txs := []models.Transaction{
		tx("AAPL", "stock", "BUY", "10", "100", "0"),
		tx("DELISTED", "stock", "BUY", "5", "10", "0"),
	}
	positions := Compute(context.Background(), txs, fixedPrices(map[string]string{"AAPL": "110"}), Options{})
	s := Summarize(positions)
	if !s.TotalInvested.Equal(dec("1050")) {
		t.Fatalf("total_invested=%s want 1050", s.TotalInvested)
	}
	// Absent values count as zero in sums.
	if !s.TotalValue.Equal(dec("1100")) {
		t.Fatalf("total_value=%s want 1100", s.TotalValue)
	}
	if !s.TotalPnL.Equal(dec("100")) {
		t.Fatalf("total_pnl=%s want 100", s.TotalPnL)
	}
}

func TestSummarize_EmptyPortfolio(t *testing.T) {
	s := Summarize(nil)
	if !s.PnLPct.IsZero() {
		t.Fatalf("pnl_pct=%s want 0 when nothing invested", s.PnLPct)
	}
}
