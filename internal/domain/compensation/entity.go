package compensation

import "time"

// PayBand is a named salary range for a tenant.
type PayBand struct {
	ID        string
	TenantID  string
	Name      string
	MinSalary float64
	MaxSalary float64
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether a salary falls inside the band.
func (b *PayBand) Contains(salary float64) bool {
	return salary >= b.MinSalary && salary <= b.MaxSalary
}

// Record is one compensation entry in an employee's salary history. The
// current compensation is the record with the latest effective date.
type Record struct {
	ID            string
	TenantID      string
	EmployeeID    string
	PayBandID     *string
	Salary        float64
	Currency      string
	EffectiveDate time.Time
	ChangeReason  string
	CreatedBy     string
	CreatedAt     time.Time
}
