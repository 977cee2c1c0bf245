package domain

// Account is one row of the balances widget. Nil pointer fields render
// as JSON null, which the UI shows as "not connected".
type Account struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"` // current | investment | credit
	Balance       *float64 `json:"balance"`
	Cash          *float64 `json:"cash,omitempty"`
	InvestedValue *float64 `json:"investedValue,omitempty"`
	UnrealisedPnL *float64 `json:"unrealisedPnL,omitempty"`
	Currency      string   `json:"currency"`
	LastUpdated   *string  `json:"lastUpdated"`
	AutoSync      bool     `json:"autoSync"`
	Live          bool     `json:"live"`
}

// CreditCard is one of the manually-tracked cards. Balances for these
// arrive via the sync store, not a provider API.
type CreditCard struct {
	ID   string
	Name string
}

// CreditCards is the fixed manual card set, addressed by id inside the
// credit-card-balances blob.
var CreditCards = []CreditCard{
	{ID: "capital-one", Name: "Capital One"},
	{ID: "ms-bank", Name: "M&S"},
	{ID: "fluid", Name: "Fluid"},
	{ID: "vanquis", Name: "Vanquis"},
	{ID: "hsbc", Name: "HSBC"},
}

// Snapshot is the GET /api/accounts payload.
type Snapshot struct {
	Accounts  []Account `json:"accounts"`
	Timestamp string    `json:"timestamp"`
}
