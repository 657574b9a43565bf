package models

// Customer is a row of the customers table.
type Customer struct {
	CustomerID int64  `db:"customer_id"`
	Name       string `db:"name"`
	Email      string `db:"email"`
	Phone      string `db:"phone"`
	Company    string `db:"company"`
	Address    string `db:"address"`
	Notes      string `db:"notes"`
	AuditFields
}
