package ledger

// Profession is a starting template for a new player.
type Profession struct {
	Title        string
	Salary       float64
	StartingCash float64
	Expenses     float64
}

// Professions is the default set of starting templates.
var Professions = []Profession{
	{"Engineer", 5000, 10000, 2000},
	{"Doctor", 8000, 15000, 3000},
	{"Teacher", 3500, 8000, 1500},
	{"Manager", 6500, 12000, 2500},
	{"Nurse", 4000, 9000, 1800},
	{"Lawyer", 7500, 14000, 2800},
}

// FromProfession creates a ledger for a named player from a template.
func FromProfession(name string, p Profession) *Ledger {
	return New(name, p.Title, p.Salary, p.StartingCash, p.Expenses)
}
