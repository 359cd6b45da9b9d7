package cards

// DefaultCatalog returns the built-in card set used when no card file
// is supplied.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Card{
		NewEnterpriseCard("ENT001", "Small Restaurant", "Invest in a small restaurant",
			50000, 10000, 1200, 3, true),
		NewEnterpriseCard("ENT002", "Car Wash", "Open a self-service car wash",
			30000, 6000, 800, 1, false),

		NewOpportunityCard("OPP001", "Rental Flat", "Buy a flat and let it out",
			80000, 16000, 800),
		NewOpportunityCard("OPP002", "Shop Unit", "Invest in a small shop unit",
			120000, 24000, 1500),

		NewFinancialCard("FIN001", "Tech Stock Fund", "A technology sector stock fund",
			100, 2, 10, 1000),
		NewFinancialCard("FIN002", "Blue Chip Shares", "Steady large-cap shares",
			50, 1, 20, 2000),

		NewSideBusinessCard("SIDE001", "Online Store", "Sell goods online on the side",
			2000, 400, 10),
		NewSideBusinessCard("SIDE002", "Content Channel", "Run a small media channel",
			1000, 300, 15),
	})
}
