package verifactu

// SPDX-License-Identifier: MIT
// Copyright (c) 2024 L. D. T. d.o.o.
// Copyright (c) contributors for their respective contributions. See https://github.com/l-d-t/verifactu/graphs/contributors

import "encoding/xml"

// Namespace URIs fixed by spec.md §4.3. Prefixes below are advisory;
// these are the values AEAT's XSDs are actually keyed by.
const (
	nsSOAPEnv = "http://schemas.xmlsoap.org/soap/envelope/"
	nsSUM     = "https://www2.agenciatributaria.gob.es/static_files/common/internet/dep/aplicaciones/es/aeat/tikeC/cont/ws/SuministroLR.xsd"
	nsSUM1    = "https://www2.agenciatributaria.gob.es/static_files/common/internet/dep/aplicaciones/es/aeat/tikeC/cont/ws/SuministroInformacion.xsd"
	nsCON     = "https://www2.agenciatributaria.gob.es/static_files/common/internet/dep/aplicaciones/es/aeat/tikeC/cont/ws/ConsultaLR.xsd"
	nsTikR    = "https://www2.agenciatributaria.gob.es/static_files/common/internet/dep/aplicaciones/es/aeat/tikeC/cont/ws/RespuestaSuministro.xsd"
	nsTikLRRC = "https://www2.agenciatributaria.gob.es/static_files/common/internet/dep/aplicaciones/es/aeat/tikeC/cont/ws/RespuestaConsultaLR.xsd"
	nsTik     = nsSUM1
)

// --- submission request ---

type xmlEnvelope struct {
	XMLName xml.Name    `xml:"soapenv:Envelope"`
	SoapEnv string      `xml:"xmlns:soapenv,attr"`
	Sum     string      `xml:"xmlns:sum,attr,omitempty"`
	Sum1    string      `xml:"xmlns:sum1,attr,omitempty"`
	Con     string      `xml:"xmlns:con,attr,omitempty"`
	Body    xmlBodyItem `xml:"soapenv:Body"`
}

type xmlBodyItem struct {
	RegFactu  *xmlRegFactu  `xml:"sum:RegFactuSistemaFacturacion"`
	Consulta  *xmlConsulta  `xml:"con:ConsultaFactuSistemaFacturacion"`
}

type xmlRegFactu struct {
	Cabecera  xmlSubmitCabecera `xml:"sum:Cabecera"`
	Registros []xmlRegistro     `xml:"sum:RegistroFactura"`
}

type xmlSubmitCabecera struct {
	ObligadoEmision  xmlFiscalParty       `xml:"sum1:ObligadoEmision"`
	Representante    *xmlFiscalParty      `xml:"sum1:Representante,omitempty"`
	RemisionVoluntaria *xmlRemisionVoluntaria `xml:"sum1:RemisionVoluntaria,omitempty"`
}

type xmlRemisionVoluntaria struct {
	Incidencia string `xml:"sum1:Incidencia,omitempty"`
}

type xmlFiscalParty struct {
	NombreRazon string `xml:"sum1:NombreRazon"`
	NIF         string `xml:"sum1:NIF"`
}

type xmlRegistro struct {
	RegistroAlta      *xmlRegistroAlta      `xml:"sum1:RegistroAlta"`
	RegistroAnulacion *xmlRegistroAnulacion `xml:"sum1:RegistroAnulacion"`
}

type xmlIDFactura struct {
	IDEmisorFactura         string `xml:"sum1:IDEmisorFactura"`
	NumSerieFactura         string `xml:"sum1:NumSerieFactura"`
	FechaExpedicionFactura  string `xml:"sum1:FechaExpedicionFactura"`
}

type xmlEncadenamiento struct {
	PrimerRegistro  string                    `xml:"sum1:PrimerRegistro,omitempty"`
	RegistroAnterior *xmlRegistroAnteriorRef  `xml:"sum1:RegistroAnterior,omitempty"`
}

type xmlRegistroAnteriorRef struct {
	IDEmisorFactura        string `xml:"sum1:IDEmisorFactura"`
	NumSerieFactura        string `xml:"sum1:NumSerieFactura"`
	FechaExpedicionFactura string `xml:"sum1:FechaExpedicionFactura"`
	Huella                 string `xml:"sum1:Huella"`
}

type xmlSistemaInformatico struct {
	NombreRazonProveedor string `xml:"sum1:NombreRazon"`
	NIFProveedor         string `xml:"sum1:NIF"`
	NombreSistema        string `xml:"sum1:NombreSistemaInformatico"`
	IDSistemaInformatico string `xml:"sum1:IdSistemaInformatico"`
	Version              string `xml:"sum1:Version"`
	NumeroInstalacion    string `xml:"sum1:NumeroInstalacion"`
	TipoUsoPosibleSoloVerifactu   string `xml:"sum1:TipoUsoPosibleSoloVerifactu,omitempty"`
	TipoUsoPosibleMultiOT         string `xml:"sum1:TipoUsoPosibleMultiOT,omitempty"`
	IndicadorMultiplesOT          string `xml:"sum1:IndicadorMultiplesOT,omitempty"`
}

type xmlDestinatario struct {
	IDDestinatario xmlIDDestinatario `xml:"sum1:IDDestinatario"`
}

type xmlIDDestinatario struct {
	NombreRazon    string `xml:"sum1:NombreRazon"`
	NIF            string `xml:"sum1:NIF,omitempty"`
	IDOtro         *xmlIDOtro `xml:"sum1:IDOtro,omitempty"`
}

type xmlIDOtro struct {
	CodigoPais string `xml:"sum1:CodigoPais"`
	IDType     string `xml:"sum1:IDType"`
	ID         string `xml:"sum1:ID"`
}

type xmlDetalleDesglose struct {
	Impuesto                    string `xml:"sum1:Impuesto"`
	ClaveRegimen                string `xml:"sum1:ClaveRegimen"`
	CalificacionOperacion       string `xml:"sum1:CalificacionOperacion,omitempty"`
	OperacionExenta             string `xml:"sum1:OperacionExenta,omitempty"`
	TipoImpositivo              string `xml:"sum1:TipoImpositivo,omitempty"`
	BaseImponibleOimporteNoSujeto string `xml:"sum1:BaseImponibleOimporteNoSujeto"`
	CuotaRepercutida            string `xml:"sum1:CuotaRepercutida,omitempty"`
}

type xmlRegistroAlta struct {
	IDVersion              string                 `xml:"sum1:IDVersion"`
	IDFactura              xmlIDFactura           `xml:"sum1:IDFactura"`
	NombreRazonEmisor      string                 `xml:"sum1:NombreRazonEmisor"`
	TipoFactura            string                 `xml:"sum1:TipoFactura"`
	TipoRectificativa      string                 `xml:"sum1:TipoRectificativa,omitempty"`
	DescripcionOperacion   string                 `xml:"sum1:DescripcionOperacion,omitempty"`
	Destinatarios          []xmlDestinatario      `xml:"sum1:Destinatarios>sum1:IDDestinatario,omitempty"`
	Desglose               []xmlDetalleDesglose   `xml:"sum1:Desglose>sum1:DetalleDesglose"`
	CuotaTotal             string                 `xml:"sum1:CuotaTotal"`
	ImporteTotal           string                 `xml:"sum1:ImporteTotal"`
	Encadenamiento         xmlEncadenamiento      `xml:"sum1:Encadenamiento"`
	SistemaInformatico     xmlSistemaInformatico  `xml:"sum1:SistemaInformatico"`
	FechaHoraHusoGenRegistro string               `xml:"sum1:FechaHoraHusoGenRegistro"`
	TipoHuella             string                 `xml:"sum1:TipoHuella"`
	Huella                 string                 `xml:"sum1:Huella"`
	RechazoPrevio          string                 `xml:"sum1:RechazoPrevio,omitempty"`
	Subsanacion            string                 `xml:"sum1:Subsanacion,omitempty"`
	RefExterna             string                 `xml:"sum1:RefExterna,omitempty"`
}

type xmlRegistroAnulacion struct {
	IDVersion              string                `xml:"sum1:IDVersion"`
	IDFactura              xmlIDFactura          `xml:"sum1:IDFactura"`
	NombreRazonEmisor      string                `xml:"sum1:NombreRazonEmisor"`
	Encadenamiento         xmlEncadenamiento     `xml:"sum1:Encadenamiento"`
	SistemaInformatico     xmlSistemaInformatico `xml:"sum1:SistemaInformatico"`
	FechaHoraHusoGenRegistro string              `xml:"sum1:FechaHoraHusoGenRegistro"`
	TipoHuella             string                `xml:"sum1:TipoHuella"`
	Huella                 string                `xml:"sum1:Huella"`
	RechazoPrevio          string                `xml:"sum1:RechazoPrevio,omitempty"`
	Subsanacion            string                `xml:"sum1:Subsanacion,omitempty"`
	RefExterna             string                `xml:"sum1:RefExterna,omitempty"`
}

// --- query request ---

type xmlConsulta struct {
	Cabecera xmlQueryCabecera `xml:"con:Cabecera"`
	Filtro   xmlFiltroConsulta `xml:"con:FiltroConsulta"`
}

type xmlQueryCabecera struct {
	IDVersion            string `xml:"sum1:IDVersion"`
	ObligadoEmision      xmlFiscalParty `xml:"sum1:ObligadoEmision"`
	IndicadorRepresentante string `xml:"sum1:IndicadorRepresentante,omitempty"`
}

type xmlFiltroConsulta struct {
	PeriodoImputacion         xmlPeriodoImputacion `xml:"con:PeriodoImputacion"`
	NumSerieFactura           string               `xml:"con:NumSerieFactura,omitempty"`
	Contraparte               *xmlContraparte      `xml:"con:Contraparte,omitempty"`
	FechaExpedicionFactura    *xmlFechaRango       `xml:"con:FechaExpedicionFactura,omitempty"`
	RefExterna                string               `xml:"con:RefExterna,omitempty"`
	ClavePaginacion           string               `xml:"con:ClavePaginacion,omitempty"`
	DatosAdicionalesRespuesta xmlDatosAdicionales  `xml:"con:DatosAdicionalesRespuesta"`
}

type xmlPeriodoImputacion struct {
	Ejercicio string `xml:"sum1:Ejercicio"`
	Periodo   string `xml:"sum1:Periodo"`
}

type xmlContraparte struct {
	NIF string `xml:"sum1:NIF"`
}

type xmlFechaRango struct {
	Desde string `xml:"sum1:Desde"`
	Hasta string `xml:"sum1:Hasta"`
}

type xmlDatosAdicionales struct {
	MostrarNombreRazonEmisor string `xml:"con:MostrarNombreRazonEmisor"`
	MostrarSistemaInformatico string `xml:"con:MostrarSistemaInformatico"`
}

// --- responses ---

type xmlResponseEnvelope struct {
	XMLName xml.Name            `xml:"Envelope"`
	Body    xmlResponseBodyItem `xml:"Body"`
}

type xmlResponseBodyItem struct {
	Fault              *xmlFault                         `xml:"Fault"`
	RespuestaRegFactu   *xmlRespuestaRegFactu            `xml:"RespuestaRegFactuSistemaFacturacion"`
	RespuestaConsulta   *xmlRespuestaConsulta            `xml:"RespuestaConsultaFactuSistemaFacturacion"`
}

type xmlFault struct {
	FaultString string `xml:"faultstring"`
}

type xmlRespuestaRegFactu struct {
	CSV                 string               `xml:"CSV"`
	DatosPresentacion    xmlDatosPresentacion `xml:"DatosPresentacion"`
	TiempoEsperaEnvio    string               `xml:"TiempoEsperaEnvio"`
	EstadoEnvio          string               `xml:"EstadoEnvio"`
	RespuestaLinea       []xmlRespuestaLinea  `xml:"RespuestaLinea"`
}

type xmlDatosPresentacion struct {
	TimestampPresentacion string `xml:"TimestampPresentacion"`
}

type xmlRespuestaLinea struct {
	IDFactura         xmlIDFactura `xml:"IDFactura"`
	Operacion         string       `xml:"Operacion"`
	Subsanacion       string       `xml:"Subsanacion"`
	EstadoRegistro    string       `xml:"EstadoRegistro"`
	CodigoErrorRegistro string     `xml:"CodigoErrorRegistro"`
	DescripcionErrorRegistro string `xml:"DescripcionErrorRegistro"`
}

type xmlRespuestaConsulta struct {
	PeriodoImputacion  xmlPeriodoImputacion `xml:"PeriodoImputacion"`
	ResultadoConsulta  string               `xml:"ResultadoConsulta"`
	IndicadorPaginacion string              `xml:"IndicadorPaginacion"`
	ClavePaginacion    string               `xml:"ClavePaginacion"`
	Registros          []xmlRegistroRespuestaConsulta `xml:"RegistroRespuestaConsultaFactuSistemaFacturacion"`
}

type xmlRegistroRespuestaConsulta struct {
	IDFactura           xmlIDFactura `xml:"IDFactura"`
	NombreRazonEmisor   string       `xml:"NombreRazonEmisor"`
	TipoFactura         string       `xml:"TipoFactura"`
	TipoRectificativa   string       `xml:"TipoRectificativa"`
	DescripcionOperacion string      `xml:"DescripcionOperacion"`
	CuotaTotal          string       `xml:"CuotaTotal"`
	ImporteTotal        string       `xml:"ImporteTotal"`
	Huella              string       `xml:"Huella"`
	FechaHoraHusoGenRegistro string  `xml:"FechaHoraHusoGenRegistro"`
	Destinatarios       []xmlDestinatario `xml:"Destinatarios>IDDestinatario"`
	Desglose            []xmlDetalleDesglose `xml:"Desglose>DetalleDesglose"`
	Encadenamiento      xmlEncadenamiento `xml:"Encadenamiento"`
	EstadoRegistro      string       `xml:"EstadoRegistro"`
	CodigoErrorRegistro string       `xml:"CodigoErrorRegistro"`
	DescripcionErrorRegistro string  `xml:"DescripcionErrorRegistro"`
	FechaUltimaModificacion string   `xml:"FechaUltimaModificacion"`
	CSV                 string       `xml:"CSV"`
	TimestampPresentacion string     `xml:"TimestampPresentacion"`
}
