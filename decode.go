package verifactu

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"
)

// SubmissionResponse is the decoded result of a Submit call.
type SubmissionResponse struct {
	CSV                   string
	PresentationTimestamp time.Time
	WaitSeconds           int
	Status                ResponseStatus
	Lines                 []ResponseLine
}

// ResponseLine is one per-record outcome within a SubmissionResponse.
type ResponseLine struct {
	Invoice               InvoiceIdentifier
	RecordType            RecordType
	Correction            Correction
	Status                ItemStatus
	ErrorCode             string
	ErrorDescription      string
}

// QueryResponse is the decoded result of a Query call.
type QueryResponse struct {
	Period        QueryPeriod
	HasData       bool
	HasMorePages  bool
	PaginationKey string
	Items         []QueryResponseItem
}

// QueryPreviousRecord is the chain-parent reference decoded from a
// query item's Encadenamiento (spec.md §8 scenario 6).
type QueryPreviousRecord struct {
	Invoice     InvoiceIdentifier
	Fingerprint string
}

// QueryResponseItem is one record as reported by a chain query.
type QueryResponseItem struct {
	Invoice             InvoiceIdentifier
	IssuerName          string
	InvoiceType         InvoiceType
	CorrectiveType      CorrectiveType
	Description         string
	TotalTaxAmount      string
	TotalAmount         string
	Fingerprint         string
	GeneratedAt         time.Time
	Recipients          []Recipient
	Breakdown           []BreakdownLine
	IsFirstRecord       bool
	PreviousRecord      *QueryPreviousRecord
	Status              QueryRecordStatus
	ErrorCode           string
	ErrorDescription    string
	LastModified        time.Time
	CSV                 string
	PresentationStamp   time.Time
}

// DecodeSubmissionResponse parses a Submit response body, returning an
// *AeatServerError if the envelope carries a SOAP fault or lacks the
// expected root element, or a *ParseError if a required element is
// malformed.
func DecodeSubmissionResponse(body []byte) (*SubmissionResponse, error) {
	var env xmlResponseEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, &ParseError{Message: "malformed submission response XML", Cause: err}
	}
	if env.Body.Fault != nil {
		return nil, &AeatServerError{FaultString: env.Body.Fault.FaultString}
	}
	wire := env.Body.RespuestaRegFactu
	if wire == nil {
		return nil, &AeatServerError{}
	}

	wait, err := strconv.Atoi(strings.TrimSpace(wire.TiempoEsperaEnvio))
	if err != nil {
		return nil, &ParseError{Message: "TiempoEsperaEnvio is not an integer", Cause: err}
	}

	var presentedAt time.Time
	if wire.DatosPresentacion.TimestampPresentacion != "" {
		presentedAt, err = parseISO8601(wire.DatosPresentacion.TimestampPresentacion)
		if err != nil {
			return nil, &ParseError{Message: "TimestampPresentacion is not a valid timestamp", Cause: err}
		}
	}

	resp := &SubmissionResponse{
		CSV:                   wire.CSV,
		PresentationTimestamp: presentedAt,
		WaitSeconds:           wait,
		Status:                ResponseStatus(wire.EstadoEnvio),
	}

	for _, line := range wire.RespuestaLinea {
		issueDate, err := parseDDMMYYYY(line.IDFactura.FechaExpedicionFactura)
		if err != nil {
			return nil, &ParseError{Message: "RespuestaLinea IDFactura date is malformed", Cause: err}
		}
		resp.Lines = append(resp.Lines, ResponseLine{
			Invoice: InvoiceIdentifier{
				IssuerID:      line.IDFactura.IDEmisorFactura,
				InvoiceNumber: line.IDFactura.NumSerieFactura,
				IssueDate:     issueDate,
			},
			RecordType:       RecordType(line.Operacion),
			Correction:       Correction(line.Subsanacion),
			Status:           ItemStatus(line.EstadoRegistro),
			ErrorCode:        line.CodigoErrorRegistro,
			ErrorDescription: line.DescripcionErrorRegistro,
		})
	}

	return resp, nil
}

// DecodeQueryResponse parses a Query response body.
func DecodeQueryResponse(body []byte) (*QueryResponse, error) {
	var env xmlResponseEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, &ParseError{Message: "malformed query response XML", Cause: err}
	}
	if env.Body.Fault != nil {
		return nil, &AeatServerError{FaultString: env.Body.Fault.FaultString}
	}
	wire := env.Body.RespuestaConsulta
	if wire == nil {
		return nil, &AeatServerError{}
	}

	year, err := strconv.Atoi(wire.PeriodoImputacion.Ejercicio)
	if err != nil {
		return nil, &ParseError{Message: "Ejercicio is not an integer", Cause: err}
	}
	month, err := strconv.Atoi(wire.PeriodoImputacion.Periodo)
	if err != nil {
		return nil, &ParseError{Message: "Periodo is not an integer", Cause: err}
	}

	resp := &QueryResponse{
		Period:        QueryPeriod{Year: year, Month: month},
		HasData:       QueryResultType(wire.ResultadoConsulta) == QueryWithData,
		HasMorePages:  wire.IndicadorPaginacion == "S",
		PaginationKey: wire.ClavePaginacion,
	}

	for _, item := range wire.Registros {
		decoded, err := decodeQueryItem(item)
		if err != nil {
			return nil, err
		}
		resp.Items = append(resp.Items, *decoded)
	}

	return resp, nil
}

func decodeQueryItem(item xmlRegistroRespuestaConsulta) (*QueryResponseItem, error) {
	issueDate, err := parseDDMMYYYY(item.IDFactura.FechaExpedicionFactura)
	if err != nil {
		return nil, &ParseError{Message: "IDFactura date is malformed", Cause: err}
	}

	generatedAt, err := parseISO8601(item.FechaHoraHusoGenRegistro)
	if err != nil {
		return nil, &ParseError{Message: "FechaHoraHusoGenRegistro is not a valid timestamp", Cause: err}
	}

	var lastModified time.Time
	if item.FechaUltimaModificacion != "" {
		lastModified, err = parseISO8601(item.FechaUltimaModificacion)
		if err != nil {
			return nil, &ParseError{Message: "FechaUltimaModificacion is not a valid timestamp", Cause: err}
		}
	}

	var presented time.Time
	if item.TimestampPresentacion != "" {
		presented, err = parseISO8601(item.TimestampPresentacion)
		if err != nil {
			return nil, &ParseError{Message: "TimestampPresentacion is not a valid timestamp", Cause: err}
		}
	}

	decoded := &QueryResponseItem{
		Invoice: InvoiceIdentifier{
			IssuerID:      item.IDFactura.IDEmisorFactura,
			InvoiceNumber: item.IDFactura.NumSerieFactura,
			IssueDate:     issueDate,
		},
		IssuerName:        item.NombreRazonEmisor,
		InvoiceType:       InvoiceType(item.TipoFactura),
		CorrectiveType:    CorrectiveType(item.TipoRectificativa),
		Description:       item.DescripcionOperacion,
		TotalTaxAmount:    item.CuotaTotal,
		TotalAmount:       item.ImporteTotal,
		Fingerprint:       item.Huella,
		GeneratedAt:       generatedAt,
		Status:            QueryRecordStatus(item.EstadoRegistro),
		ErrorCode:         item.CodigoErrorRegistro,
		ErrorDescription:  item.DescripcionErrorRegistro,
		LastModified:      lastModified,
		CSV:               item.CSV,
		PresentationStamp: presented,
	}

	for _, dest := range item.Destinatarios {
		decoded.Recipients = append(decoded.Recipients, decodeRecipient(dest))
	}
	for _, line := range item.Desglose {
		decoded.Breakdown = append(decoded.Breakdown, decodeBreakdownLine(line))
	}

	if item.Encadenamiento.PrimerRegistro == "S" {
		decoded.IsFirstRecord = true
	} else if ref := item.Encadenamiento.RegistroAnterior; ref != nil {
		prevDate, err := parseDDMMYYYY(ref.FechaExpedicionFactura)
		if err != nil {
			return nil, &ParseError{Message: "RegistroAnterior date is malformed", Cause: err}
		}
		decoded.PreviousRecord = &QueryPreviousRecord{
			Invoice: InvoiceIdentifier{
				IssuerID:      ref.IDEmisorFactura,
				InvoiceNumber: ref.NumSerieFactura,
				IssueDate:     prevDate,
			},
			Fingerprint: ref.Huella,
		}
	}

	return decoded, nil
}

func decodeRecipient(d xmlDestinatario) Recipient {
	if d.IDDestinatario.IDOtro != nil {
		return Recipient{Foreign: &ForeignFiscalIdentifier{
			Name:    d.IDDestinatario.NombreRazon,
			Country: d.IDDestinatario.IDOtro.CodigoPais,
			Type:    ForeignIdType(d.IDDestinatario.IDOtro.IDType),
			Value:   d.IDDestinatario.IDOtro.ID,
		}}
	}
	return Recipient{Domestic: &FiscalIdentifier{
		Name: d.IDDestinatario.NombreRazon,
		NIF:  d.IDDestinatario.NIF,
	}}
}

func decodeBreakdownLine(d xmlDetalleDesglose) BreakdownLine {
	op := d.CalificacionOperacion
	if op == "" {
		op = d.OperacionExenta
	}
	return BreakdownLine{
		Tax:       TaxType(d.Impuesto),
		Regime:    RegimeType(d.ClaveRegimen),
		Operation: OperationType(op),
		Base:      d.BaseImponibleOimporteNoSujeto,
		Rate:      d.TipoImpositivo,
		TaxAmount: d.CuotaRepercutida,
	}
}

// parseDDMMYYYY parses the DD-MM-YYYY date format used throughout the
// wire protocol for invoice dates.
func parseDDMMYYYY(s string) (time.Time, error) {
	return time.Parse("02-01-2006", s)
}

// parseISO8601 parses a presentation/modification timestamp, accepting
// a trailing "Z" as +00:00 per spec.md §6.
func parseISO8601(s string) (time.Time, error) {
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05-07:00",
		"2006-01-02T15:04:05.999999999-07:00",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Parse(time.RFC3339, s)
}
