// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package netting

import (
	"encoding/json"
	"time"
)

// ConnectivityResult represents the outcome of a single HTTPS GET
// against the root of a domain.
type ConnectivityResult struct {
	// IsReachable reports whether an HTTP response was received.
	// Any status code counts, including 4xx and 5xx.
	IsReachable bool `json:"is_reachable" yaml:"is_reachable"`

	// ResponseTimeMs is the wall-clock time from request start to
	// response headers, in whole milliseconds. It is 0 when the
	// domain is unreachable.
	ResponseTimeMs uint64 `json:"response_time_ms" yaml:"response_time_ms"`

	// StatusCode is the HTTP status code. It is non-nil iff IsReachable.
	StatusCode *int `json:"status_code,omitempty" yaml:"status_code,omitempty"`

	// Error describes the transport failure. It is non-empty iff
	// IsReachable is false.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Cause is the typed error behind Error, suitable for [errors.Is]
	// and [KindOf]. It is not serialized.
	Cause error `json:"-" yaml:"-"`
}

// DNSResult holds the records found for a domain. Each slice is empty,
// never nil, when its query failed or returned nothing.
type DNSResult struct {
	// ARecords are the IPv4 addresses in resolver order.
	ARecords []string `json:"a_records" yaml:"a_records"`

	// AAAARecords are the IPv6 addresses in resolver order.
	AAAARecords []string `json:"aaaa_records" yaml:"aaaa_records"`

	// NSRecords are the nameserver host names.
	NSRecords []string `json:"ns_records" yaml:"ns_records"`

	// MXRecords are formatted as "<preference> <exchange>".
	MXRecords []string `json:"mx_records" yaml:"mx_records"`

	// TXTRecords hold the first character-string of each TXT record,
	// decoded as UTF-8 with invalid sequences replaced.
	TXTRecords []string `json:"txt_records" yaml:"txt_records"`
}

// CertificateInfo is the decoded leaf certificate presented by a TLS
// endpoint.
type CertificateInfo struct {
	// Subject is the subject distinguished name, e.g. "C=US, O=Example, CN=example.com".
	Subject string `json:"subject" yaml:"subject"`

	// Issuer is the issuer distinguished name.
	Issuer string `json:"issuer" yaml:"issuer"`

	// ValidFrom is notBefore, truncated to seconds, in UTC.
	ValidFrom time.Time `json:"valid_from" yaml:"valid_from"`

	// ValidUntil is notAfter, truncated to seconds, in UTC.
	ValidUntil time.Time `json:"valid_until" yaml:"valid_until"`

	// SerialNumber is the serial in uppercase hexadecimal without prefix or separators.
	SerialNumber string `json:"serial_number" yaml:"serial_number"`

	// Version is the human-readable X.509 version (3 for v3 certificates).
	Version int `json:"version" yaml:"version"`
}

// MarshalJSON encodes the validity window as Unix seconds.
func (c CertificateInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Subject      string `json:"subject"`
		Issuer       string `json:"issuer"`
		ValidFrom    int64  `json:"valid_from"`
		ValidUntil   int64  `json:"valid_until"`
		SerialNumber string `json:"serial_number"`
		Version      int    `json:"version"`
	}{
		Subject:      c.Subject,
		Issuer:       c.Issuer,
		ValidFrom:    c.ValidFrom.Unix(),
		ValidUntil:   c.ValidUntil.Unix(),
		SerialNumber: c.SerialNumber,
		Version:      c.Version,
	})
}
