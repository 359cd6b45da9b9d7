package cards

import (
	"errors"
	"fmt"

	"cashflow/ledger"
)

// Type identifies which deck a card belongs to.
type Type int

const (
	Enterprise Type = iota
	Opportunity
	Financial
	SideBusiness
)

var typeNames = []string{"enterprise", "opportunity", "financial", "side_business"}

func (t Type) String() string {
	if t < Enterprise || t > SideBusiness {
		return "unknown"
	}
	return typeNames[t]
}

// ParseType converts a card type name from configuration.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if s == name {
			return Type(i), nil
		}
	}
	return Enterprise, fmt.Errorf("unknown card type %q", s)
}

// Annual loan rates for financed purchases, by category.
const (
	EnterpriseLoanRate  = 0.10
	OpportunityLoanRate = 0.08
)

var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidShareCount  = errors.New("share count outside allowed range")
	ErrSharesNotSupported = errors.New("card is not bought by shares")
)

// Card is an immutable investment template drawn from a typed deck.
// Purchasing never consumes the template; it creates fresh Asset and
// Liability values on the buyer's ledger. The shares argument is only
// meaningful for financial cards; other types ignore it.
type Card interface {
	ID() string
	Name() string
	Type() Type
	Description() string

	CanAfford(l *ledger.Ledger) bool
	RequiredCash() float64
	Purchase(l *ledger.Ledger, shares int) (string, error)
}

// investment carries the economics shared by enterprise and
// opportunity cards: a down payment now, a financed remainder, and a
// monthly cash flow.
type investment struct {
	id              string
	name            string
	description     string
	cost            float64
	downPayment     float64
	monthlyCashFlow float64
}

func (c investment) ID() string          { return c.id }
func (c investment) Name() string        { return c.name }
func (c investment) Description() string { return c.description }

func (c investment) CanAfford(l *ledger.Ledger) bool {
	return l.Cash >= c.downPayment
}

func (c investment) RequiredCash() float64 {
	return c.downPayment
}

func (c investment) loanAmount() float64 {
	if c.cost > c.downPayment {
		return c.cost - c.downPayment
	}
	return 0
}

// buy performs the shared purchase flow: pay the down payment, finance
// the remainder at the category rate, record the asset.
func (c investment) buy(l *ledger.Ledger, category string, annualRate float64) (string, error) {
	if l.Cash < c.downPayment {
		return "", fmt.Errorf("%w: need %.2f, have %.2f", ErrInsufficientFunds, c.downPayment, l.Cash)
	}

	l.Cash -= c.downPayment

	if loan := c.loanAmount(); loan > 0 {
		monthly := loan * annualRate / 12
		l.AddLiability(ledger.Liability{Name: c.name + " loan", Expense: monthly})
	}

	l.AddAsset(ledger.Asset{
		Name:          c.name,
		Category:      category,
		Cost:          c.cost,
		PassiveIncome: c.monthlyCashFlow,
	})

	return fmt.Sprintf("bought %s for %.2f down", c.name, c.downPayment), nil
}

// EnterpriseCard is a business investment: bigger outlay, bigger
// monthly cash flow, financed at 10% a year.
type EnterpriseCard struct {
	investment
	EmployeeCount      int
	ManagementRequired bool
}

// NewEnterpriseCard constructs an enterprise card template.
func NewEnterpriseCard(id, name, description string, cost, downPayment, monthlyCashFlow float64, employees int, managed bool) *EnterpriseCard {
	return &EnterpriseCard{
		investment:         investment{id, name, description, cost, downPayment, monthlyCashFlow},
		EmployeeCount:      employees,
		ManagementRequired: managed,
	}
}

func (c *EnterpriseCard) Type() Type { return Enterprise }

func (c *EnterpriseCard) Purchase(l *ledger.Ledger, shares int) (string, error) {
	return c.buy(l, "enterprise", EnterpriseLoanRate)
}

// OpportunityCard is a general investment (rental property, small
// commercial deals), financed at 8% a year.
type OpportunityCard struct {
	investment
}

// NewOpportunityCard constructs an opportunity card template.
func NewOpportunityCard(id, name, description string, cost, downPayment, monthlyCashFlow float64) *OpportunityCard {
	return &OpportunityCard{investment{id, name, description, cost, downPayment, monthlyCashFlow}}
}

func (c *OpportunityCard) Type() Type { return Opportunity }

func (c *OpportunityCard) Purchase(l *ledger.Ledger, shares int) (string, error) {
	return c.buy(l, "opportunity", OpportunityLoanRate)
}

// FinancialCard is a share-priced product (stocks, funds). The buyer
// chooses a share count within the card's bounds.
type FinancialCard struct {
	id               string
	name             string
	description      string
	PricePerShare    float64
	DividendPerShare float64
	MinShares        int
	MaxShares        int
}

// NewFinancialCard constructs a financial card template.
func NewFinancialCard(id, name, description string, pricePerShare, dividendPerShare float64, minShares, maxShares int) *FinancialCard {
	return &FinancialCard{
		id:               id,
		name:             name,
		description:      description,
		PricePerShare:    pricePerShare,
		DividendPerShare: dividendPerShare,
		MinShares:        minShares,
		MaxShares:        maxShares,
	}
}

func (c *FinancialCard) ID() string          { return c.id }
func (c *FinancialCard) Name() string        { return c.name }
func (c *FinancialCard) Type() Type          { return Financial }
func (c *FinancialCard) Description() string { return c.description }

func (c *FinancialCard) CanAfford(l *ledger.Ledger) bool {
	return l.Cash >= c.RequiredCash()
}

// RequiredCash is the cost of the minimum purchase.
func (c *FinancialCard) RequiredCash() float64 {
	return c.PricePerShare * float64(c.MinShares)
}

func (c *FinancialCard) Purchase(l *ledger.Ledger, shares int) (string, error) {
	if shares == 0 {
		shares = c.MinShares
	}
	if shares < c.MinShares || shares > c.MaxShares {
		return "", fmt.Errorf("%w: %d shares, allowed %d-%d", ErrInvalidShareCount, shares, c.MinShares, c.MaxShares)
	}

	total := c.PricePerShare * float64(shares)
	if l.Cash < total {
		return "", fmt.Errorf("%w: need %.2f, have %.2f", ErrInsufficientFunds, total, l.Cash)
	}

	l.Cash -= total
	l.AddAsset(ledger.NewFinancialAsset(c.name, shares, c.PricePerShare, c.DividendPerShare))

	return fmt.Sprintf("bought %d shares of %s for %.2f", shares, c.name, total), nil
}

// MaxAffordableShares is how many shares the player could buy right
// now, capped by the card's maximum.
func (c *FinancialCard) MaxAffordableShares(l *ledger.Ledger) int {
	if c.PricePerShare <= 0 {
		return 0
	}
	affordable := int(l.Cash / c.PricePerShare)
	if affordable > c.MaxShares {
		return c.MaxShares
	}
	return affordable
}

// SideBusinessCard is a small full-price venture. No financing path,
// no liability.
type SideBusinessCard struct {
	id              string
	name            string
	description     string
	Cost            float64
	MonthlyCashFlow float64
	TimeHours       int
}

// NewSideBusinessCard constructs a side-business card template.
func NewSideBusinessCard(id, name, description string, cost, monthlyCashFlow float64, timeHours int) *SideBusinessCard {
	return &SideBusinessCard{
		id:              id,
		name:            name,
		description:     description,
		Cost:            cost,
		MonthlyCashFlow: monthlyCashFlow,
		TimeHours:       timeHours,
	}
}

func (c *SideBusinessCard) ID() string          { return c.id }
func (c *SideBusinessCard) Name() string        { return c.name }
func (c *SideBusinessCard) Type() Type          { return SideBusiness }
func (c *SideBusinessCard) Description() string { return c.description }

func (c *SideBusinessCard) CanAfford(l *ledger.Ledger) bool {
	return l.Cash >= c.Cost
}

func (c *SideBusinessCard) RequiredCash() float64 {
	return c.Cost
}

func (c *SideBusinessCard) Purchase(l *ledger.Ledger, shares int) (string, error) {
	if l.Cash < c.Cost {
		return "", fmt.Errorf("%w: need %.2f, have %.2f", ErrInsufficientFunds, c.Cost, l.Cash)
	}

	l.Cash -= c.Cost
	l.AddAsset(ledger.Asset{
		Name:          c.name,
		Category:      "side_business",
		Cost:          c.Cost,
		PassiveIncome: c.MonthlyCashFlow,
	})

	return fmt.Sprintf("started side business %s for %.2f", c.name, c.Cost), nil
}

// PaybackMonths is how many months of cash flow recoup the cost.
// Returns 0 for a side business with no cash flow.
func (c *SideBusinessCard) PaybackMonths() float64 {
	if c.MonthlyCashFlow <= 0 {
		return 0
	}
	return c.Cost / c.MonthlyCashFlow
}
