package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalletTryBuy(t *testing.T) {
	t.Parallel()

	w := NewWallet(25, NewLedger())

	assert.True(t, w.TryBuy("ACME", day, 10))
	assert.Equal(t, 15.0, w.Cash())
	assert.Equal(t, 1, w.Quantity("ACME"))

	assert.True(t, w.TryBuy("ACME", day, 10))
	assert.Equal(t, 5.0, w.Cash())

	// Cash 5 cannot cover a 10 buy: no lot, no debit.
	assert.False(t, w.TryBuy("ACME", day, 10))
	assert.Equal(t, 5.0, w.Cash())
	assert.Equal(t, 2, w.Quantity("ACME"))
}

func TestWalletTrySellNothingHeld(t *testing.T) {
	t.Parallel()

	w := NewWallet(100, NewLedger())

	assert.False(t, w.TrySell("ACME", 10))
	assert.Equal(t, 100.0, w.Cash())
	assert.Equal(t, 0, w.Quantity("ACME"))
}

func TestWalletSellCreditsOpenPrice(t *testing.T) {
	t.Parallel()

	w := NewWallet(100, NewLedger())
	assert.True(t, w.TryBuy("ACME", day, 10))
	assert.True(t, w.TrySell("ACME", 12))

	assert.Equal(t, 102.0, w.Cash())
	assert.Equal(t, 0, w.Quantity("ACME"))
}

func TestWalletMarkToMarket(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	w := NewWallet(100, ledger)
	w.TryBuy("ACME", day, 10)
	w.TryBuy("ACME", day, 10)

	w.MarkToMarket("ACME", 15)
	assert.Equal(t, 30.0, w.MarketValue("ACME"))
	// Mark-to-market never touches cash or quantity.
	assert.Equal(t, 80.0, w.Cash())
	assert.Equal(t, 2, w.Quantity("ACME"))

	assert.Equal(t, 110.0, w.TotalEquity())
}

func TestWalletForceClose(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	w := NewWallet(100, ledger)
	w.TryBuy("ACME", day, 10)
	w.TryBuy("ACME", day, 10)
	ledger.AdvanceDay()

	freed := w.ForceClose("ACME", 1, 11)
	assert.Equal(t, 2, freed)
	assert.Equal(t, 102.0, w.Cash())
	assert.Equal(t, 0, w.Quantity("ACME"))
}

func TestWalletEquityConservation(t *testing.T) {
	t.Parallel()

	w := NewWallet(100, NewLedger())
	w.TryBuy("A", day, 30)
	w.TryBuy("B", day, 20)
	w.MarkToMarket("A", 35)
	w.MarkToMarket("B", 18)

	assert.InDelta(t, w.Cash()+w.MarketValue("A")+w.MarketValue("B"), w.TotalEquity(), 1e-12)
	assert.InDelta(t, 50+35+18, w.TotalEquity(), 1e-12)
}
