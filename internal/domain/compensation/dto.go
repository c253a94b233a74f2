package compensation

import (
	"time"

	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/validator"
)

type CreatePayBandRequest struct {
	Name      string  `json:"name"`
	MinSalary float64 `json:"min_salary"`
	MaxSalary float64 `json:"max_salary"`
	Currency  string  `json:"currency"`
}

func (r *CreatePayBandRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if r.MinSalary < 0 {
		errs = append(errs, validator.ValidationError{Field: "min_salary", Message: "min_salary must not be negative"})
	}
	if r.MaxSalary < r.MinSalary {
		errs = append(errs, validator.ValidationError{Field: "max_salary", Message: "max_salary must not be below min_salary"})
	}
	if len(r.Currency) != 3 {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "currency must be a 3-letter code"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateRecordRequest struct {
	EmployeeID    string  `json:"employee_id"`
	PayBandID     *string `json:"pay_band_id,omitempty"`
	Salary        float64 `json:"salary"`
	Currency      string  `json:"currency"`
	EffectiveDate string  `json:"effective_date"`
	ChangeReason  string  `json:"change_reason"`
}

func (r *CreateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a UUID"})
	}
	if r.PayBandID != nil && !validator.IsValidUUID(*r.PayBandID) {
		errs = append(errs, validator.ValidationError{Field: "pay_band_id", Message: "pay_band_id must be a UUID"})
	}
	if r.Salary <= 0 {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "salary must be positive"})
	}
	if len(r.Currency) != 3 {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "currency must be a 3-letter code"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "effective_date must be a YYYY-MM-DD date"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PayBandResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	MinSalary float64 `json:"min_salary"`
	MaxSalary float64 `json:"max_salary"`
	Currency  string  `json:"currency"`
}

func ToPayBandResponse(b *PayBand) PayBandResponse {
	return PayBandResponse{
		ID:        b.ID,
		Name:      b.Name,
		MinSalary: b.MinSalary,
		MaxSalary: b.MaxSalary,
		Currency:  b.Currency,
	}
}

type RecordResponse struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	PayBandID     *string   `json:"pay_band_id,omitempty"`
	Salary        float64   `json:"salary"`
	Currency      string    `json:"currency"`
	EffectiveDate string    `json:"effective_date"`
	ChangeReason  string    `json:"change_reason"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToRecordResponse(r *Record) RecordResponse {
	return RecordResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		PayBandID:     r.PayBandID,
		Salary:        r.Salary,
		Currency:      r.Currency,
		EffectiveDate: r.EffectiveDate.Format("2006-01-02"),
		ChangeReason:  r.ChangeReason,
		CreatedAt:     r.CreatedAt,
	}
}
