package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cashflow/ledger"
)

func richLedger(cash float64) *ledger.Ledger {
	return ledger.New("Dee", "Engineer", 5000, cash, 2000)
}

func TestEnterprisePurchase(t *testing.T) {
	card := NewEnterpriseCard("ENT001", "Small Restaurant", "a neighbourhood restaurant", 50000, 10000, 1200, 4, true)

	t.Run("pays down, finances the rest at 10 percent", func(t *testing.T) {
		l := richLedger(10000)

		detail, err := card.Purchase(l, 0)
		assert.NoError(t, err)
		assert.Contains(t, detail, "Small Restaurant")

		assert.Equal(t, 0.0, l.Cash)
		assert.Equal(t, 1200.0, l.PassiveIncome)

		// 40000 financed: 40000 * 0.10 / 12
		assert.Len(t, l.Liabilities, 1)
		assert.InDelta(t, 333.33, l.Liabilities[0].Expense, 0.01)
		assert.InDelta(t, 2333.33, l.Expenses, 0.01)
	})

	t.Run("fails without mutation when the down payment is short", func(t *testing.T) {
		l := richLedger(9999)

		_, err := card.Purchase(l, 0)
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		assert.Equal(t, 9999.0, l.Cash)
		assert.Empty(t, l.Assets)
		assert.Empty(t, l.Liabilities)
	})
}

func TestOpportunityPurchase(t *testing.T) {
	card := NewOpportunityCard("OPP001", "Rental Flat", "a one bed flat", 80000, 16000, 800)
	l := richLedger(20000)

	_, err := card.Purchase(l, 0)
	assert.NoError(t, err)

	assert.Equal(t, 4000.0, l.Cash)
	assert.Equal(t, 800.0, l.PassiveIncome)

	// 64000 financed: 64000 * 0.08 / 12
	assert.Len(t, l.Liabilities, 1)
	assert.InDelta(t, 426.67, l.Liabilities[0].Expense, 0.01)
}

func TestFullyPaidInvestmentTakesNoLoan(t *testing.T) {
	card := NewOpportunityCard("OPP003", "Lock-up Garage", "a garage bought outright", 5000, 5000, 80)
	l := richLedger(6000)

	_, err := card.Purchase(l, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, l.Cash)
	assert.Empty(t, l.Liabilities)
}

func TestFinancialPurchase(t *testing.T) {
	card := NewFinancialCard("FIN001", "Tech Stock Fund", "a tech tracker", 100, 2, 10, 1000)

	t.Run("buys the requested share count", func(t *testing.T) {
		l := richLedger(5000)

		detail, err := card.Purchase(l, 10)
		assert.NoError(t, err)
		assert.Contains(t, detail, "10 shares")

		assert.Equal(t, 4000.0, l.Cash)
		assert.Equal(t, 20.0, l.PassiveIncome)
		assert.Equal(t, 10, l.Assets[0].Shares)
	})

	t.Run("zero shares means the minimum purchase", func(t *testing.T) {
		l := richLedger(5000)

		_, err := card.Purchase(l, 0)
		assert.NoError(t, err)
		assert.Equal(t, 10, l.Assets[0].Shares)
	})

	t.Run("rejects counts outside the card's bounds", func(t *testing.T) {
		l := richLedger(500000)

		_, err := card.Purchase(l, 5)
		assert.ErrorIs(t, err, ErrInvalidShareCount)

		_, err = card.Purchase(l, 1001)
		assert.ErrorIs(t, err, ErrInvalidShareCount)
		assert.Empty(t, l.Assets)
	})

	t.Run("rejects an unaffordable count without mutation", func(t *testing.T) {
		l := richLedger(900)

		_, err := card.Purchase(l, 50)
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		assert.Equal(t, 900.0, l.Cash)
	})

	t.Run("caps affordable shares at the card maximum", func(t *testing.T) {
		assert.Equal(t, 9, card.MaxAffordableShares(richLedger(950)))
		assert.Equal(t, 1000, card.MaxAffordableShares(richLedger(2000000)))
	})
}

func TestSideBusinessPurchase(t *testing.T) {
	card := NewSideBusinessCard("SIDE001", "Online Store", "a dropshipping storefront", 2000, 400, 10)

	t.Run("pays the full cost with no liability", func(t *testing.T) {
		l := richLedger(3000)

		_, err := card.Purchase(l, 0)
		assert.NoError(t, err)
		assert.Equal(t, 1000.0, l.Cash)
		assert.Equal(t, 400.0, l.PassiveIncome)
		assert.Empty(t, l.Liabilities)
	})

	t.Run("fails when cash is short", func(t *testing.T) {
		l := richLedger(1500)

		_, err := card.Purchase(l, 0)
		assert.ErrorIs(t, err, ErrInsufficientFunds)
	})

	t.Run("reports payback months", func(t *testing.T) {
		assert.Equal(t, 5.0, card.PaybackMonths())
	})
}

func TestParseCardType(t *testing.T) {
	got, err := ParseType("side_business")
	assert.NoError(t, err)
	assert.Equal(t, SideBusiness, got)

	_, err = ParseType("lottery")
	assert.Error(t, err)
}
