package ledger

import (
	"errors"
	"fmt"

	"cashflow/board"
)

var (
	ErrUnknownAsset      = errors.New("player does not hold that asset")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Asset is something a player owns that produces passive income.
// Financial assets additionally carry their share breakdown.
type Asset struct {
	Name          string
	Category      string // enterprise, opportunity, financial, side_business
	Cost          float64
	PassiveIncome float64

	// financial assets only
	Shares           int
	PricePerShare    float64
	DividendPerShare float64
}

func (a Asset) String() string {
	return fmt.Sprintf("asset %s (%s): cost %.2f, passive income %.2f", a.Name, a.Category, a.Cost, a.PassiveIncome)
}

// NewFinancialAsset builds a share holding whose passive income is the
// total dividend across all shares.
func NewFinancialAsset(name string, shares int, pricePerShare, dividendPerShare float64) Asset {
	return Asset{
		Name:             name,
		Category:         "financial",
		Cost:             float64(shares) * pricePerShare,
		PassiveIncome:    float64(shares) * dividendPerShare,
		Shares:           shares,
		PricePerShare:    pricePerShare,
		DividendPerShare: dividendPerShare,
	}
}

// Liability is a recurring monthly obligation, usually the financed
// part of an asset purchase.
type Liability struct {
	Name    string
	Expense float64
}

func (l Liability) String() string {
	return fmt.Sprintf("liability %s: monthly expense %.2f", l.Name, l.Expense)
}

// Entry records a single cash flow event on the ledger.
type Entry struct {
	Kind   string
	Amount float64
}

// Ledger tracks a single player's finances and board state. It is
// mutated only by the engine and the square effects during that
// player's turn, one call at a time.
type Ledger struct {
	Name       string
	Profession string

	Salary        float64
	Cash          float64
	PassiveIncome float64
	Expenses      float64
	BaseExpenses  float64

	Assets      []Asset
	Liabilities []Liability

	Position  int
	Layer     board.Layer
	Direction board.Direction

	DownsizedTurns int
	Children       int

	History []Entry
}

// New creates a ledger from a profession template. Expenses start at
// the template's base expenses; passive income starts at zero.
func New(name, profession string, salary, cash, expenses float64) *Ledger {
	return &Ledger{
		Name:         name,
		Profession:   profession,
		Salary:       salary,
		Cash:         cash,
		Expenses:     expenses,
		BaseExpenses: expenses,
		Layer:        board.Middle,
		Direction:    board.Forward,
	}
}

// ReceiveSalary credits one pay period's salary.
func (l *Ledger) ReceiveSalary() {
	l.Cash += l.Salary
	l.History = append(l.History, Entry{"salary", l.Salary})
}

// ReceivePassiveIncome credits one period's passive income.
func (l *Ledger) ReceivePassiveIncome() {
	l.Cash += l.PassiveIncome
	l.History = append(l.History, Entry{"passive_income", l.PassiveIncome})
}

// PayExpenses debits one period's expenses. Cash may go negative.
func (l *Ledger) PayExpenses() {
	l.Cash -= l.Expenses
	l.History = append(l.History, Entry{"expenses", -l.Expenses})
}

// AddAsset appends an asset and folds its passive income in.
func (l *Ledger) AddAsset(a Asset) {
	l.Assets = append(l.Assets, a)
	l.PassiveIncome += a.PassiveIncome
}

// AddLiability appends a liability and folds its monthly expense in.
func (l *Ledger) AddLiability(li Liability) {
	l.Liabilities = append(l.Liabilities, li)
	l.Expenses += li.Expense
}

// RemoveAsset drops the asset at index, deducting its passive income.
// Used when selling.
func (l *Ledger) RemoveAsset(index int) (Asset, error) {
	if index < 0 || index >= len(l.Assets) {
		return Asset{}, ErrUnknownAsset
	}
	a := l.Assets[index]
	l.Assets = append(l.Assets[:index], l.Assets[index+1:]...)
	l.PassiveIncome -= a.PassiveIncome
	return a, nil
}

// BuyAsset pays the price and takes the asset, failing with no
// mutation if cash is short.
func (l *Ledger) BuyAsset(a Asset, price float64) error {
	if l.Cash < price {
		return fmt.Errorf("%w: need %.2f, have %.2f", ErrInsufficientFunds, price, l.Cash)
	}
	l.Cash -= price
	l.AddAsset(a)
	return nil
}

// TakeLoan credits the loan amount and records the repayment liability.
func (l *Ledger) TakeLoan(li Liability, amount float64) {
	l.Cash += amount
	l.AddLiability(li)
}

// IsFinanciallyFree reports the win condition: passive income covering
// expenses.
func (l *Ledger) IsFinanciallyFree() bool {
	return l.PassiveIncome >= l.Expenses
}

// TransferAssetTo sells the asset at index to the buyer at the given
// price. Both sides mutate in one call or not at all.
func (l *Ledger) TransferAssetTo(buyer *Ledger, index int, price float64) error {
	if index < 0 || index >= len(l.Assets) {
		return ErrUnknownAsset
	}
	if buyer.Cash < price {
		return fmt.Errorf("%w: buyer needs %.2f, has %.2f", ErrInsufficientFunds, price, buyer.Cash)
	}

	a, err := l.RemoveAsset(index)
	if err != nil {
		return err
	}
	l.Cash += price
	buyer.Cash -= price
	buyer.AddAsset(a)
	return nil
}

// AssetIncome recomputes passive income from holdings. PassiveIncome
// must always equal this sum.
func (l *Ledger) AssetIncome() float64 {
	var total float64
	for _, a := range l.Assets {
		total += a.PassiveIncome
	}
	return total
}

// LiabilityExpenses recomputes the liability share of monthly expenses.
func (l *Ledger) LiabilityExpenses() float64 {
	var total float64
	for _, li := range l.Liabilities {
		total += li.Expense
	}
	return total
}

func (l *Ledger) String() string {
	return fmt.Sprintf("%s (%s): cash %.2f, salary %.2f, passive income %.2f, expenses %.2f, %d assets, %d liabilities",
		l.Name, l.Profession, l.Cash, l.Salary, l.PassiveIncome, l.Expenses, len(l.Assets), len(l.Liabilities))
}
