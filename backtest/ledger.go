// Package backtest simulates rule-based trading strategies against a daily
// price table, producing an equity trajectory and trade records.
package backtest

import "time"

// Lot is one purchased unit of a ticker with its own holding-day clock.
// Each buy creates exactly one lot of quantity 1.
type Lot struct {
	Ticker      string
	OpenDate    time.Time
	OpenPrice   float64
	Quantity    int
	HoldingDays int

	seq int // insertion order, breaks holding-day ties
}

// Ledger tracks the open lots of a single run. It is owned by exactly one
// Engine; affordability is the Wallet's concern, quantity bookkeeping is
// the Ledger's.
type Ledger struct {
	lots    map[string][]*Lot
	nextSeq int
}

func NewLedger() *Ledger {
	return &Ledger{lots: make(map[string][]*Lot)}
}

// OpenLot records a new lot with a fresh holding-day clock. The caller has
// already checked affordability.
func (l *Ledger) OpenLot(ticker string, date time.Time, price float64) {
	l.lots[ticker] = append(l.lots[ticker], &Lot{
		Ticker:    ticker,
		OpenDate:  date,
		OpenPrice: price,
		Quantity:  1,
		seq:       l.nextSeq,
	})
	l.nextSeq++
}

// CloseOneLot releases one unit from the oldest open lot (maximum holding
// days; insertion order breaks ties) and returns the freed quantity.
// Returns 0 when nothing is open for the ticker.
func (l *Ledger) CloseOneLot(ticker string) int {
	lots := l.lots[ticker]
	if len(lots) == 0 {
		return 0
	}

	oldest := 0
	for i, lot := range lots[1:] {
		if lot.HoldingDays > lots[oldest].HoldingDays ||
			(lot.HoldingDays == lots[oldest].HoldingDays && lot.seq < lots[oldest].seq) {
			oldest = i + 1
		}
	}

	lots[oldest].Quantity--
	if lots[oldest].Quantity == 0 {
		l.lots[ticker] = append(lots[:oldest], lots[oldest+1:]...)
	}
	return 1
}

// ForceCloseMatured liquidates every lot whose holding-day clock has reached
// holdMax and returns the total freed quantity. It runs before the day's
// signal so a forced-out position can be re-bought the same day.
func (l *Ledger) ForceCloseMatured(ticker string, holdMax int) int {
	lots := l.lots[ticker]
	if len(lots) == 0 {
		return 0
	}

	freed := 0
	kept := lots[:0]
	for _, lot := range lots {
		if lot.HoldingDays >= holdMax {
			freed += lot.Quantity
			continue
		}
		kept = append(kept, lot)
	}
	l.lots[ticker] = kept
	return freed
}

// AdvanceDay ages every surviving lot by one day. Called once per trading
// day, after all of that day's transactions.
func (l *Ledger) AdvanceDay() {
	for _, lots := range l.lots {
		for _, lot := range lots {
			lot.HoldingDays++
		}
	}
}

// TotalQuantity returns the summed quantity of the ticker's open lots.
// It is never negative: a sell with no open lots is a no-op upstream.
func (l *Ledger) TotalQuantity(ticker string) int {
	total := 0
	for _, lot := range l.lots[ticker] {
		total += lot.Quantity
	}
	return total
}
