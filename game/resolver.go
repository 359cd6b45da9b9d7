package game

import (
	"fmt"

	"cashflow/board"
	"cashflow/cards"
	"cashflow/ledger"
)

// Square effect constants.
const (
	charityPerChild  = 100
	childMonthlyCost = 300
	downsizedPenalty = 2
)

// intent tells the engine which phase a square effect leads to. Square
// handlers never reach back into the engine; they return what they want
// and the engine interprets it.
type intent int

const (
	intentNone intent = iota
	intentCard
	intentMarket
	intentTransition
)

type outcome struct {
	detail string
	intent intent
	card   cards.Card
}

// doodadEvent is an unexpected-expense template: a label and a cost
// range the actual amount is drawn from.
type doodadEvent struct {
	name string
	min  int
	max  int
}

var doodadEvents = []doodadEvent{
	{"car repairs", 800, 1500},
	{"medical bills", 500, 2000},
	{"appliance repairs", 300, 800},
	{"vet bills", 400, 1200},
	{"home repairs", 1000, 3000},
	{"a parking fine", 200, 600},
	{"a night out", 300, 800},
	{"impulse shopping", 500, 1200},
}

// resolveSquare applies the landed square's effect to the player and
// reports what the engine should do next.
func (e *Engine) resolveSquare(sq board.Square, p *ledger.Ledger) outcome {
	switch sq.Type {
	case board.Start:
		return outcome{detail: fmt.Sprintf("%s passed the starting point", p.Name)}

	case board.Paycheck:
		return resolvePaycheck(p)

	case board.Opportunity:
		card, ok := e.catalog.DrawWeighted(e.rng)
		if !ok {
			return outcome{detail: fmt.Sprintf("%s drew for an opportunity but the deck was empty", p.Name)}
		}
		return outcome{
			detail: fmt.Sprintf("%s drew an opportunity: %s (%s)", p.Name, card.Name(), card.Type()),
			intent: intentCard,
			card:   card,
		}

	case board.Doodad:
		event := doodadEvents[e.rng.Intn(len(doodadEvents))]
		cost := float64(event.min + e.rng.Intn(event.max-event.min+1))
		p.Cash -= cost
		return outcome{detail: fmt.Sprintf("%s paid %.0f for %s", p.Name, cost, event.name)}

	case board.Market:
		return outcome{
			detail: fmt.Sprintf("%s entered the market", p.Name),
			intent: intentMarket,
		}

	case board.Charity:
		if p.Children == 0 {
			return outcome{detail: fmt.Sprintf("%s gave to charity but has no children, no bonus", p.Name)}
		}
		bonus := float64(p.Children * charityPerChild)
		p.Cash += bonus
		return outcome{detail: fmt.Sprintf("%s gave to charity and received %.0f for %d children", p.Name, bonus, p.Children)}

	case board.Downsized:
		p.DownsizedTurns += downsizedPenalty
		return outcome{detail: fmt.Sprintf("%s was downsized and loses the next %d paychecks", p.Name, downsizedPenalty)}

	case board.Baby:
		p.Children++
		p.Expenses += childMonthlyCost
		return outcome{detail: fmt.Sprintf("%s had a baby! %d children now, monthly expenses up by %d", p.Name, p.Children, childMonthlyCost)}

	case board.Transition:
		return outcome{
			detail: fmt.Sprintf("%s reached a gateway and may change rings", p.Name),
			intent: intentTransition,
		}
	}

	return outcome{detail: fmt.Sprintf("%s landed on %s", p.Name, sq.Name)}
}

// resolvePaycheck runs the full salary / passive income / expenses
// cycle. The downsized skip is handled before this is reached.
func resolvePaycheck(p *ledger.Ledger) outcome {
	p.ReceiveSalary()
	p.ReceivePassiveIncome()
	p.PayExpenses()

	net := p.Salary + p.PassiveIncome - p.Expenses
	return outcome{detail: fmt.Sprintf(
		"%s settled the month: salary %.0f + passive income %.0f - expenses %.0f = %.0f",
		p.Name, p.Salary, p.PassiveIncome, p.Expenses, net)}
}
