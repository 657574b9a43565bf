package domain

// Customer is the party a document is billed to. Documents hold a weak reference to it by ID.
type Customer struct {
	CustomerID int64  `json:"customerID"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Address    string `json:"address"`
	Notes      string `json:"notes"`
	AuditFields
}
