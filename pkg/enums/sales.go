package enums

import "fmt"

// SalesPeriod selects the reporting window for sale listings.
type SalesPeriod string

const (
	SalesPeriodToday SalesPeriod = "today"
	SalesPeriodMonth SalesPeriod = "month"
	SalesPeriodYear  SalesPeriod = "year"
)

var validSalesPeriods = []SalesPeriod{
	SalesPeriodToday,
	SalesPeriodMonth,
	SalesPeriodYear,
}

// String implements fmt.Stringer.
func (p SalesPeriod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known SalesPeriod.
func (p SalesPeriod) IsValid() bool {
	for _, candidate := range validSalesPeriods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseSalesPeriod converts raw input into a SalesPeriod.
func ParseSalesPeriod(value string) (SalesPeriod, error) {
	for _, candidate := range validSalesPeriods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sales period %q", value)
}
