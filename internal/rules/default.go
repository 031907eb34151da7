package rules

// DefaultConfig is the built-in starter configuration used when no
// configuration has been persisted yet. Category order matters: earlier
// categories win ties.
func DefaultConfig() Config {
	return Config{Categories: []Category{
		{Name: "Voedsel", Rules: []Rule{
			{"description": "ALBERT HEIJN"},
			{"description": "Albert Heijn"},
			{"description": "Jumbo"},
			{"description": "Lidl"},
			{"description": "^Plus"},
		}},
		{Name: "FastFood", Rules: []Rule{
			{"description": "Dominos"},
			{"name": "Thuisbezorgd.nl"},
			{"description": "^McD"},
		}},
		{Name: "Huur", Rules: []Rule{
			{"description": "Huur"},
		}},
		{Name: "Verzekeringen", Rules: []Rule{
			{"name": "DITZO ZORGVERZEKERING"},
			{"name": "SNS Verzekeren"},
		}},
		{Name: "Abonnementen", Rules: []Rule{
			{"name": "NETFLIX"},
			{"name": "TELE2"},
		}},
		{Name: "Transport", Rules: []Rule{
			{"description": "^NS"},
			{"name": "^NS"},
		}},
		{Name: "Loon", Rules: []Rule{
			{"description": "Salaris"},
		}},
		{Name: "Spaarrekening", Rules: []Rule{
			{"description": "Spaarrekening"},
		}},
	}}
}
