package verifactu

import (
	"encoding/xml"
	"strconv"

	"github.com/beevik/etree"
)

// Party is the fiscal identity submitting or querying on AEAT's behalf:
// the obligated party, plus an optional representative (ObligadoEmision
// / Representante).
type Party struct {
	Name           string
	NIF            string
	Representative *FiscalIdentifier
}

// Batch is an ordered set of records to submit together, plus the
// header identity and an optional incident flag (spec.md §4.3).
type Batch struct {
	Submitter    Party
	System       ComputerSystem
	Records      []any // *RegistrationRecord or *CancellationRecord, in submission order
	IncidentFlag bool
}

// Encode serializes b into the submission SOAP envelope bytes.
func Encode(b Batch) ([]byte, error) {
	body := xmlRegFactu{
		Cabecera: xmlSubmitCabecera{
			ObligadoEmision: xmlFiscalParty{NombreRazon: b.Submitter.Name, NIF: b.Submitter.NIF},
		},
	}
	if b.Submitter.Representative != nil {
		body.Cabecera.Representante = &xmlFiscalParty{
			NombreRazon: b.Submitter.Representative.Name,
			NIF:         b.Submitter.Representative.NIF,
		}
	}
	if b.IncidentFlag {
		body.Cabecera.RemisionVoluntaria = &xmlRemisionVoluntaria{Incidencia: "S"}
	}

	for _, rec := range b.Records {
		var wire xmlRegistro
		switch v := rec.(type) {
		case *RegistrationRecord:
			wire.RegistroAlta = encodeRegistrationRecord(*v)
		case *CancellationRecord:
			wire.RegistroAnulacion = encodeCancellationRecord(*v)
		default:
			continue
		}
		body.Registros = append(body.Registros, wire)
	}

	env := xmlEnvelope{
		SoapEnv: nsSOAPEnv,
		Sum:     nsSUM,
		Sum1:    nsSUM1,
		Body:    xmlBodyItem{RegFactu: &body},
	}
	return xml.MarshalIndent(env, "", "  ")
}

// EncodeQuery serializes a QueryFilter into the query SOAP envelope
// bytes.
func EncodeQuery(submitter Party, filter QueryFilter, representative bool) ([]byte, error) {
	cabecera := xmlQueryCabecera{
		IDVersion:       "1.0",
		ObligadoEmision: xmlFiscalParty{NombreRazon: submitter.Name, NIF: submitter.NIF},
	}
	if representative {
		cabecera.IndicadorRepresentante = "S"
	}

	wireFilter := xmlFiltroConsulta{
		PeriodoImputacion: xmlPeriodoImputacion{
			Ejercicio: strconv.Itoa(filter.Period.Year),
			Periodo:   twoDigit(filter.Period.Month),
		},
		DatosAdicionalesRespuesta: xmlDatosAdicionales{
			MostrarNombreRazonEmisor:  "S",
			MostrarSistemaInformatico: "S",
		},
	}
	if filter.InvoiceID != nil {
		wireFilter.NumSerieFactura = filter.InvoiceID.InvoiceNumber
		wireFilter.Contraparte = &xmlContraparte{NIF: filter.InvoiceID.IssuerID}
	}

	env := xmlEnvelope{
		SoapEnv: nsSOAPEnv,
		Sum1:    nsSUM1,
		Con:     nsCON,
		Body: xmlBodyItem{
			Consulta: &xmlConsulta{Cabecera: cabecera, Filtro: wireFilter},
		},
	}
	return xml.MarshalIndent(env, "", "  ")
}

// EncodeRecord renders a single record as pretty-printed, namespace-
// qualified XML for debugging/inspection, without wrapping it in a SOAP
// envelope.
func EncodeRecord(rec any) (string, error) {
	var elementXML []byte
	var err error
	switch v := rec.(type) {
	case *RegistrationRecord:
		elementXML, err = xml.Marshal(encodeRegistrationRecord(*v))
	case *CancellationRecord:
		elementXML, err = xml.Marshal(encodeCancellationRecord(*v))
	default:
		return "", &ParseError{Message: "EncodeRecord: unsupported record type"}
	}
	if err != nil {
		return "", err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(elementXML); err != nil {
		return "", err
	}
	doc.Indent(2)
	return doc.WriteToString()
}

func encodeRegistrationRecord(r RegistrationRecord) *xmlRegistroAlta {
	wire := &xmlRegistroAlta{
		IDVersion: "1.0",
		IDFactura: xmlIDFactura{
			IDEmisorFactura:        r.Invoice.IssuerID,
			NumSerieFactura:        r.Invoice.InvoiceNumber,
			FechaExpedicionFactura: canonicalDate(r.Invoice.IssueDate),
		},
		NombreRazonEmisor:       r.IssuerName,
		TipoFactura:             string(r.InvoiceType),
		TipoRectificativa:       string(r.CorrectiveType),
		DescripcionOperacion:    r.Description,
		CuotaTotal:              r.TotalTaxAmount,
		ImporteTotal:            r.TotalAmount,
		Encadenamiento:          encodeChain(r.Record),
		SistemaInformatico:      encodeSystem(r.System),
		FechaHoraHusoGenRegistro: canonicalTimestamp(r.GeneratedAt),
		TipoHuella:              "01",
		Huella:                  r.Fingerprint,
		RechazoPrevio:           string(r.PreviousRejection),
		Subsanacion:             string(r.CorrectionMarker),
		RefExterna:              r.ExternalReference,
	}
	for _, rec := range r.Recipients {
		wire.Destinatarios = append(wire.Destinatarios, encodeRecipient(rec))
	}
	for _, line := range r.Breakdown {
		wire.Desglose = append(wire.Desglose, encodeBreakdownLine(line))
	}
	return wire
}

func encodeCancellationRecord(r CancellationRecord) *xmlRegistroAnulacion {
	return &xmlRegistroAnulacion{
		IDVersion: "1.0",
		IDFactura: xmlIDFactura{
			IDEmisorFactura:        r.Invoice.IssuerID,
			NumSerieFactura:        r.Invoice.InvoiceNumber,
			FechaExpedicionFactura: canonicalDate(r.Invoice.IssueDate),
		},
		NombreRazonEmisor:       r.IssuerName,
		Encadenamiento:          encodeChain(r.Record),
		SistemaInformatico:      encodeSystem(r.System),
		FechaHoraHusoGenRegistro: canonicalTimestamp(r.GeneratedAt),
		TipoHuella:              "01",
		Huella:                  r.Fingerprint,
		RechazoPrevio:           string(r.PreviousRejection),
		Subsanacion:             string(r.CorrectionMarker),
		RefExterna:              r.ExternalReference,
	}
}

func encodeChain(r Record) xmlEncadenamiento {
	if r.isChainHead() {
		return xmlEncadenamiento{PrimerRegistro: "S"}
	}
	return xmlEncadenamiento{
		RegistroAnterior: &xmlRegistroAnteriorRef{
			IDEmisorFactura:        r.PreviousInvoiceID.IssuerID,
			NumSerieFactura:        r.PreviousInvoiceID.InvoiceNumber,
			FechaExpedicionFactura: canonicalDate(r.PreviousInvoiceID.IssueDate),
			Huella:                 r.PreviousFingerprint,
		},
	}
}

func encodeSystem(s ComputerSystem) xmlSistemaInformatico {
	wire := xmlSistemaInformatico{
		NombreRazonProveedor: s.VendorName,
		NIFProveedor:         s.VendorID,
		NombreSistema:        s.Name,
		IDSistemaInformatico: s.SystemID,
		Version:              s.Version,
		NumeroInstalacion:    s.InstallationID,
	}
	if s.OnlyVerifactu {
		wire.TipoUsoPosibleSoloVerifactu = "S"
	} else {
		wire.TipoUsoPosibleSoloVerifactu = "N"
	}
	if s.MultipleVendors {
		wire.TipoUsoPosibleMultiOT = "S"
	} else {
		wire.TipoUsoPosibleMultiOT = "N"
	}
	if s.HasMultipleTaxpayers {
		wire.IndicadorMultiplesOT = "S"
	}
	return wire
}

func encodeRecipient(r Recipient) xmlDestinatario {
	if r.Domestic != nil {
		return xmlDestinatario{IDDestinatario: xmlIDDestinatario{
			NombreRazon: r.Domestic.Name,
			NIF:         r.Domestic.NIF,
		}}
	}
	return xmlDestinatario{IDDestinatario: xmlIDDestinatario{
		NombreRazon: r.Foreign.Name,
		IDOtro: &xmlIDOtro{
			CodigoPais: r.Foreign.Country,
			IDType:     string(r.Foreign.Type),
			ID:         r.Foreign.Value,
		},
	}}
}

func encodeBreakdownLine(l BreakdownLine) xmlDetalleDesglose {
	wire := xmlDetalleDesglose{
		Impuesto:                      string(l.Tax),
		ClaveRegimen:                  string(l.Regime),
		BaseImponibleOimporteNoSujeto: l.Base,
	}
	if l.Operation.IsSubject() {
		wire.CalificacionOperacion = string(l.Operation)
		wire.TipoImpositivo = l.Rate
		wire.CuotaRepercutida = l.TaxAmount
	} else if l.Operation.IsExempt() {
		wire.OperacionExenta = string(l.Operation)
	} else {
		wire.CalificacionOperacion = string(l.Operation)
	}
	return wire
}

func twoDigit(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}
