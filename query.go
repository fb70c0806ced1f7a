package verifactu

import "time"

// QueryPeriod bounds a chain query to a single fiscal year and month, per
// AEAT's FiltroConsulta/PeriodoImputacion (spec.md §4.4).
type QueryPeriod struct {
	Year  int
	Month int
}

func validateQueryPeriod(path string, p QueryPeriod) []FieldError {
	var errs []FieldError
	if p.Year < 2024 {
		errs = append(errs, FieldError{path + ".year", "must be 2024 or later"})
	}
	if p.Month < 1 || p.Month > 12 {
		errs = append(errs, FieldError{path + ".month", "must be between 1 and 12"})
	}
	return errs
}

// QueryFilter selects which chain records a Query call returns: a
// period, and optionally a single invoice identifier. IssuerID is
// checked by validateQueryFilter but EncodeQuery does not send it; the
// query header's ObligadoEmision comes from the submitter Party.
type QueryFilter struct {
	IssuerID  string
	Period    QueryPeriod
	InvoiceID *InvoiceIdentifier
}

func validateQueryFilter(path string, f QueryFilter) []FieldError {
	var errs []FieldError
	if !ValidNIF(f.IssuerID) {
		errs = append(errs, FieldError{path + ".issuer_id", "must be exactly 9 characters"})
	}
	errs = append(errs, validateQueryPeriod(path+".period", f.Period)...)
	if f.InvoiceID != nil {
		errs = append(errs, validateInvoiceIdentifier(path+".invoice_id", *f.InvoiceID)...)
	}
	return errs
}

// periodStart returns the first instant of the queried month, useful for
// client-side sanity checks before issuing a query.
func (p QueryPeriod) periodStart() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.Local)
}
