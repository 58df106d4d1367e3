package domain

// CreditBalance mirrors the last successful read of the server-side ledger.
// It is never derived locally; the cache replaces it wholesale.
type CreditBalance struct {
	Credits    int
	TotalSpent int
	Username   string
}
