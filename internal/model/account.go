package model

// Account accumulates the signed effect of every transaction add and
// delete. A single default account exists from first startup.
type Account struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}
