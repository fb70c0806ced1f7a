package verifactu

// TaxType identifies the tax applicable to a breakdown line (Impuesto).
type TaxType string

const (
	TaxIVA   TaxType = "01" // Impuesto sobre el Valor Añadido
	TaxIPSI  TaxType = "02" // IPSI (Ceuta y Melilla)
	TaxIGIC  TaxType = "03" // Impuesto General Indirecto Canario
	TaxOther TaxType = "05"
)

// IsValid reports whether t is one of the enumerated tax codes.
func (t TaxType) IsValid() bool {
	switch t {
	case TaxIVA, TaxIPSI, TaxIGIC, TaxOther:
		return true
	}
	return false
}

// InvoiceType identifies the kind of invoice a registration record reports
// (TipoFactura).
type InvoiceType string

const (
	InvoiceFactura      InvoiceType = "F1"
	InvoiceSimplificada InvoiceType = "F2"
	InvoiceSustitutiva  InvoiceType = "F3"
	InvoiceR1           InvoiceType = "R1"
	InvoiceR2           InvoiceType = "R2"
	InvoiceR3           InvoiceType = "R3"
	InvoiceR4           InvoiceType = "R4"
	InvoiceR5           InvoiceType = "R5"
)

func (t InvoiceType) IsValid() bool {
	switch t {
	case InvoiceFactura, InvoiceSimplificada, InvoiceSustitutiva,
		InvoiceR1, InvoiceR2, InvoiceR3, InvoiceR4, InvoiceR5:
		return true
	}
	return false
}

// IsCorrective reports whether t is one of the R1..R5 corrective types.
func (t InvoiceType) IsCorrective() bool {
	switch t {
	case InvoiceR1, InvoiceR2, InvoiceR3, InvoiceR4, InvoiceR5:
		return true
	}
	return false
}

// CorrectiveType identifies how a corrective invoice relates to the
// original it corrects (TipoRectificativa).
type CorrectiveType string

const (
	CorrectiveSubstitution CorrectiveType = "S"
	CorrectiveDifferences  CorrectiveType = "I"
)

func (t CorrectiveType) IsValid() bool {
	switch t {
	case CorrectiveSubstitution, CorrectiveDifferences:
		return true
	}
	return false
}

// RegimeType is the special-regime or additional-relevance code attached to
// a breakdown line (ClaveRegimen). Values are the AEAT codes 01-11, 14, 15,
// 17-20; the list is not a contiguous range.
type RegimeType string

const (
	Regime01 RegimeType = "01"
	Regime02 RegimeType = "02"
	Regime03 RegimeType = "03"
	Regime04 RegimeType = "04"
	Regime05 RegimeType = "05"
	Regime06 RegimeType = "06"
	Regime07 RegimeType = "07"
	Regime08 RegimeType = "08"
	Regime09 RegimeType = "09"
	Regime10 RegimeType = "10"
	Regime11 RegimeType = "11"
	Regime14 RegimeType = "14"
	Regime15 RegimeType = "15"
	Regime17 RegimeType = "17"
	Regime18 RegimeType = "18"
	Regime19 RegimeType = "19"
	Regime20 RegimeType = "20"
)

func (r RegimeType) IsValid() bool {
	switch r {
	case Regime01, Regime02, Regime03, Regime04, Regime05, Regime06, Regime07,
		Regime08, Regime09, Regime10, Regime11, Regime14, Regime15, Regime17,
		Regime18, Regime19, Regime20:
		return true
	}
	return false
}

// OperationType classifies a breakdown line's subjection to tax
// (CalificacionOperacion / OperacionExenta).
type OperationType string

const (
	OpSubject              OperationType = "S1" // sujeta, no exenta, sin inversión
	OpPassiveSubject       OperationType = "S2" // sujeta, no exenta, con inversión del sujeto pasivo
	OpNonSubject           OperationType = "N1"
	OpNonSubjectByLocation OperationType = "N2"
	OpExemptArt20          OperationType = "E1"
	OpExemptArt21          OperationType = "E2"
	OpExemptArt22          OperationType = "E3"
	OpExemptArt23And24     OperationType = "E4"
	OpExemptArt25          OperationType = "E5"
	OpExemptOther          OperationType = "E6"
)

func (o OperationType) IsValid() bool {
	switch o {
	case OpSubject, OpPassiveSubject, OpNonSubject, OpNonSubjectByLocation,
		OpExemptArt20, OpExemptArt21, OpExemptArt22, OpExemptArt23And24,
		OpExemptArt25, OpExemptOther:
		return true
	}
	return false
}

// IsSubject reports whether the operation is subject to and not exempt from
// tax (rate and tax amount are required on the breakdown line).
func (o OperationType) IsSubject() bool {
	return o == OpSubject || o == OpPassiveSubject
}

// IsNonSubject reports whether the operation falls outside the tax's scope.
func (o OperationType) IsNonSubject() bool {
	return o == OpNonSubject || o == OpNonSubjectByLocation
}

// IsExempt reports whether the operation is exempt under one of articles
// 20-25.
func (o OperationType) IsExempt() bool {
	switch o {
	case OpExemptArt20, OpExemptArt21, OpExemptArt22, OpExemptArt23And24,
		OpExemptArt25, OpExemptOther:
		return true
	}
	return false
}

// ForeignIdType identifies the kind of identification document a foreign
// recipient carries (IDOtro/IDType).
type ForeignIdType string

const (
	ForeignVAT          ForeignIdType = "02"
	ForeignPassport     ForeignIdType = "03"
	ForeignNationalID   ForeignIdType = "04"
	ForeignResidence    ForeignIdType = "05"
	ForeignOther        ForeignIdType = "06"
	ForeignUnregistered ForeignIdType = "07"
)

func (f ForeignIdType) IsValid() bool {
	switch f {
	case ForeignVAT, ForeignPassport, ForeignNationalID, ForeignResidence,
		ForeignOther, ForeignUnregistered:
		return true
	}
	return false
}

// ResponseStatus is the aggregate outcome of a submission (EstadoEnvio).
type ResponseStatus string

const (
	ResponseCorrect            ResponseStatus = "Correcto"
	ResponsePartiallyCorrect   ResponseStatus = "ParcialmenteCorrecto"
	ResponseIncorrect          ResponseStatus = "Incorrecto"
)

// ItemStatus is the per-record outcome of a submission (EstadoRegistro).
type ItemStatus string

const (
	ItemCorrect            ItemStatus = "Correcto"
	ItemAcceptedWithErrors ItemStatus = "AceptadoConErrores"
	ItemIncorrect          ItemStatus = "Incorrecto"
)

// RecordType distinguishes a registration from a cancellation in a
// submission response line (TipoOperacion).
type RecordType string

const (
	RecordTypeRegistration RecordType = "Alta"
	RecordTypeCancellation RecordType = "Anulacion"
)

// QueryResultType indicates whether a query returned any records
// (ResultadoConsulta).
type QueryResultType string

const (
	QueryWithData    QueryResultType = "ConDatos"
	QueryWithoutData QueryResultType = "SinDatos"
)

// QueryRecordStatus is a record's current status as reported by a query
// (EstadoRegistro within a query response item).
type QueryRecordStatus string

const (
	QueryRecordCorrect            QueryRecordStatus = "Correcto"
	QueryRecordAcceptedWithErrors QueryRecordStatus = "AceptadoConErrores"
	QueryRecordCancelled          QueryRecordStatus = "Anulado"
)
