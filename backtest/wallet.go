package backtest

import "time"

// Wallet holds the cash and per-ticker market value of a single run. It
// coordinates with the run's Ledger: the Wallet guards affordability and
// cash, the Ledger tracks lots.
//
// Invariant: cash never goes negative. A buy the cash cannot cover and a
// sell with nothing to sell are silent no-ops, not errors; cash-constrained
// behavior is part of what a backtest measures.
type Wallet struct {
	cash   float64
	ledger *Ledger
	values map[string]float64 // market value by ticker, set by MarkToMarket
}

func NewWallet(initialCash float64, ledger *Ledger) *Wallet {
	return &Wallet{
		cash:   initialCash,
		ledger: ledger,
		values: make(map[string]float64),
	}
}

// Cash returns the current cash balance.
func (w *Wallet) Cash() float64 { return w.cash }

// Quantity returns the ticker's current open quantity.
func (w *Wallet) Quantity(ticker string) int { return w.ledger.TotalQuantity(ticker) }

// MarketValue returns the ticker's last marked market value.
func (w *Wallet) MarketValue(ticker string) float64 { return w.values[ticker] }

// TryBuy opens one lot at price if cash covers it. Reports whether the buy
// happened; on false no state changes.
func (w *Wallet) TryBuy(ticker string, date time.Time, price float64) bool {
	if w.cash < price {
		return false
	}
	w.cash -= price
	w.ledger.OpenLot(ticker, date, price)
	return true
}

// TrySell closes one unit of the oldest lot at price. Reports whether the
// sell happened; a ticker with no open quantity is left untouched.
func (w *Wallet) TrySell(ticker string, price float64) bool {
	if w.ledger.TotalQuantity(ticker) == 0 {
		return false
	}
	freed := w.ledger.CloseOneLot(ticker)
	w.cash += float64(freed) * price
	return freed > 0
}

// ForceClose liquidates every matured lot at price, crediting cash exactly
// like a manual sell, and returns the freed quantity.
func (w *Wallet) ForceClose(ticker string, holdMax int, price float64) int {
	freed := w.ledger.ForceCloseMatured(ticker, holdMax)
	w.cash += float64(freed) * price
	return freed
}

// MarkToMarket revalues the ticker's open quantity at the day's close.
// Cash and quantity are untouched.
func (w *Wallet) MarkToMarket(ticker string, closePrice float64) {
	w.values[ticker] = float64(w.ledger.TotalQuantity(ticker)) * closePrice
}

// TotalEquity is cash plus the summed market value of every ticker.
func (w *Wallet) TotalEquity() float64 {
	total := w.cash
	for _, v := range w.values {
		total += v
	}
	return total
}
