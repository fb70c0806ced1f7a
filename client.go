package verifactu

// SPDX-License-Identifier: MIT
// Copyright (c) 2024 L. D. T. d.o.o.
// Copyright (c) contributors for their respective contributions. See https://github.com/l-d-t/verifactu/graphs/contributors

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	prodHost    = "www1.agenciatributaria.gob.es"
	preprodHost = "prewww1.aeat.es"
	servicePath = "/wlpl/TIKE-CONT/ws/SistemaFacturacion/VerifactuSOAP"

	submitTimeout = 30 * time.Second
	queryTimeout  = 60 * time.Second
)

// Client submits and queries VERI*FACTU records over an mTLS-
// authenticated SOAP transport. A Client is safe for use from one
// caller at a time; the credential's temporary PEM (if any) is owned
// exclusively by this instance.
type Client struct {
	httpClient    *http.Client
	credential    *credential
	preproduction bool
	userAgent     string
	logger        Logger
	submitter     Party
	system        ComputerSystem
}

// Option configures a Client constructed by NewClient.
type Option func(*Client)

// WithHTTPClient overrides the transport used for requests. When the
// supplied client's Transport is nil or an *http.Transport, NewClient
// adds the credential to its TLS configuration; any other
// RoundTripper is used as given, without the credential.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent overrides the default
// "Mozilla/5.0 (compatible; <system>/<version>)" User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger attaches a Logger for correlation-ID request/response
// logging. The default is a no-op logger.
func WithLogger(l Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithPreproduction routes requests to AEAT's pre-production endpoint
// instead of production.
func WithPreproduction() Option {
	return func(c *Client) { c.preproduction = true }
}

// NewClient builds a Client authenticating as submitter/system with
// cred, applying any supplied options.
func NewClient(submitter Party, system ComputerSystem, cred *credential, opts ...Option) *Client {
	c := &Client{
		credential: cred,
		submitter:  submitter,
		system:     system,
		userAgent:  fmt.Sprintf("Mozilla/5.0 (compatible; %s/%s)", system.Name, system.Version),
		logger:     nopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok && transport != nil {
		transport.TLSClientConfig = tlsConfigWithCert(transport.TLSClientConfig, cred)
	} else if c.httpClient.Transport == nil {
		c.httpClient.Transport = &http.Transport{TLSClientConfig: tlsConfigWithCert(nil, cred)}
	}
	return c
}

func tlsConfigWithCert(base *tls.Config, cred *credential) *tls.Config {
	cfg := base.Clone()
	if cfg == nil {
		cfg = &tls.Config{}
	}
	if cred != nil {
		cfg.Certificates = []tls.Certificate{cred.cert}
	}
	return cfg
}

func (c *Client) baseURL() string {
	host := prodHost
	if c.preproduction {
		host = preprodHost
	}
	return "https://" + host + servicePath
}

// Submit posts a batch of records and returns the decoded per-record
// outcome. A transport failure or timeout yields a *TransportError; a
// malformed response yields a *ParseError; a SOAP fault yields an
// *AeatServerError. On a transport failure, whether any record in the
// batch was accepted is unknown — the caller should reconcile with
// Query.
func (c *Client) Submit(ctx context.Context, b Batch) (*SubmissionResponse, error) {
	if b.Submitter == (Party{}) {
		b.Submitter = c.submitter
	}
	if b.System == (ComputerSystem{}) {
		b.System = c.system
	}

	payload, err := Encode(b)
	if err != nil {
		return nil, &ParseError{Message: "could not encode submission batch", Cause: err}
	}

	body, err := c.post(ctx, payload, submitTimeout)
	if err != nil {
		return nil, err
	}

	return DecodeSubmissionResponse(body)
}

// Query retrieves the first page of chain records matching filter.
// QueryFilter carries no pagination key and no ClavePaginacion is
// sent, so later pages cannot be requested through Query; the
// response's HasMorePages and PaginationKey only report whether more
// records exist.
func (c *Client) Query(ctx context.Context, filter QueryFilter) (*QueryResponse, error) {
	payload, err := EncodeQuery(c.submitter, filter, false)
	if err != nil {
		return nil, &ParseError{Message: "could not encode query filter", Cause: err}
	}

	body, err := c.post(ctx, payload, queryTimeout)
	if err != nil {
		return nil, err
	}

	return DecodeQueryResponse(body)
}

func (c *Client) post(ctx context.Context, payload []byte, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	correlationID := uuid.New().String()
	c.logger.Debugf("verifactu[%s]: posting %d bytes to %s", correlationID, len(payload), c.baseURL())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Message: "could not build request", Cause: err}
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorf("verifactu[%s]: transport failure: %v", correlationID, err)
		return nil, &TransportError{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Message: "could not read response body", Cause: err}
	}

	c.logger.Debugf("verifactu[%s]: received %d bytes, status %d", correlationID, len(body), resp.StatusCode)
	return body, nil
}
