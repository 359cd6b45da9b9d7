package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"cashflow/cards"
)

type cardFile struct {
	Cards []cardEntry `yaml:"cards"`
}

type cardEntry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`

	Cost            float64 `yaml:"cost"`
	DownPayment     float64 `yaml:"down_payment"`
	MonthlyCashFlow float64 `yaml:"monthly_cash_flow"`

	PricePerShare    float64 `yaml:"price_per_share"`
	DividendPerShare float64 `yaml:"dividend_per_share"`
	MinShares        int     `yaml:"min_shares"`
	MaxShares        int     `yaml:"max_shares"`

	EmployeeCount      int  `yaml:"employee_count"`
	ManagementRequired bool `yaml:"management_required"`

	TimeRequiredHours int `yaml:"time_required_hours"`
}

// LoadCards reads a card catalog from a YAML file. An empty path or a
// missing file falls back to the default catalog; malformed entries are
// skipped with a log line rather than aborting the load.
func LoadCards(path string) (*cards.Catalog, error) {
	if path == "" {
		return cards.DefaultCatalog(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("card file %s not found, using default cards", path)
			return cards.DefaultCatalog(), nil
		}
		return nil, err
	}

	var file cardFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}

	var all []cards.Card
	for _, entry := range file.Cards {
		card, ok := buildCard(entry)
		if !ok {
			continue
		}
		all = append(all, card)
	}

	if len(all) == 0 {
		log.Printf("card file %s contained no usable cards, using default cards", path)
		return cards.DefaultCatalog(), nil
	}

	return cards.NewCatalog(all), nil
}

func buildCard(entry cardEntry) (cards.Card, bool) {
	if entry.ID == "" || entry.Name == "" {
		log.Printf("skipping card with missing id or name: %+v", entry)
		return nil, false
	}

	t, err := cards.ParseType(entry.Type)
	if err != nil {
		log.Printf("skipping card %s: %v", entry.ID, err)
		return nil, false
	}

	switch t {
	case cards.Enterprise:
		return cards.NewEnterpriseCard(entry.ID, entry.Name, entry.Description,
			entry.Cost, entry.DownPayment, entry.MonthlyCashFlow,
			entry.EmployeeCount, entry.ManagementRequired), true
	case cards.Opportunity:
		return cards.NewOpportunityCard(entry.ID, entry.Name, entry.Description,
			entry.Cost, entry.DownPayment, entry.MonthlyCashFlow), true
	case cards.Financial:
		if entry.PricePerShare <= 0 {
			log.Printf("skipping financial card %s: non-positive share price", entry.ID)
			return nil, false
		}
		minShares, maxShares := entry.MinShares, entry.MaxShares
		if minShares <= 0 {
			minShares = 1
		}
		if maxShares <= 0 {
			maxShares = 1000
		}
		return cards.NewFinancialCard(entry.ID, entry.Name, entry.Description,
			entry.PricePerShare, entry.DividendPerShare, minShares, maxShares), true
	case cards.SideBusiness:
		return cards.NewSideBusinessCard(entry.ID, entry.Name, entry.Description,
			entry.Cost, entry.MonthlyCashFlow, entry.TimeRequiredHours), true
	}

	return nil, false
}
