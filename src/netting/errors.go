// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package netting

import (
	"errors"
	"fmt"
)

// Sentinel errors for the netting package.
var (
	// ErrResolverConfig is returned when the DNS resolver cannot be
	// constructed, e.g. the resolv.conf file is missing or lists no
	// nameservers.
	ErrResolverConfig = errors.New("netting: invalid resolver configuration")

	// ErrNXDOMAIN is returned when the DNS server responds with NXDOMAIN (domain does not exist).
	ErrNXDOMAIN = errors.New("netting: nxdomain")

	// ErrNoAnswer is returned when a query succeeds but carries no
	// record of the requested type.
	ErrNoAnswer = errors.New("netting: no answer for record type")

	// ErrAllAttemptsFailed is returned when every attempt against every
	// nameserver failed for a single query.
	ErrAllAttemptsFailed = errors.New("netting: all DNS attempts failed")

	// ErrCertificateUnavailable is returned when the TLS handshake
	// completed but the peer presented no certificate.
	ErrCertificateUnavailable = errors.New("netting: certificate not available")

	// ErrCertificateDecode is returned when the leaf certificate DER
	// cannot be decoded.
	ErrCertificateDecode = errors.New("netting: certificate decode failed")

	// ErrInvalidStartTime is returned when the notBefore timestamp is
	// outside the representable calendar range.
	ErrInvalidStartTime = errors.New("netting: invalid start time")

	// ErrInvalidEndTime is returned when the notAfter timestamp is
	// outside the representable calendar range.
	ErrInvalidEndTime = errors.New("netting: invalid end time")

	// ErrInternalPanic is returned when an internal panic is recovered during execution.
	ErrInternalPanic = errors.New("netting: internal panic recovered")
)

// Kind classifies where a failure occurred.
type Kind int

// Failure kinds.
const (
	// KindUnknown is reported by [KindOf] for errors not produced by this package.
	KindUnknown Kind = iota

	// KindDNSResolution covers resolver construction and query failures.
	KindDNSResolution

	// KindTransport covers TCP connect, TLS handshake and HTTP exchange failures.
	KindTransport

	// KindCertificateUnavailable means the handshake succeeded without a peer certificate.
	KindCertificateUnavailable

	// KindCertificateDecode means the DER/ASN.1 structure could not be decoded.
	KindCertificateDecode

	// KindTimeRange means a validity timestamp fell outside the calendar range.
	KindTimeRange
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDNSResolution:
		return "dns resolution failure"
	case KindTransport:
		return "transport failure"
	case KindCertificateUnavailable:
		return "certificate unavailable"
	case KindCertificateDecode:
		return "certificate decode failure"
	case KindTimeRange:
		return "time range failure"
	default:
		return "unknown failure"
	}
}

// Error is the typed error returned by the [Checker] operations.
// It records the failure [Kind], the step that failed and the domain
// being inspected, and wraps the underlying cause.
type Error struct {
	Kind   Kind
	Op     string
	Domain string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Domain == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Domain, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the [Kind] of the first [*Error] found in err's chain,
// or [KindUnknown] when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, op, domain string, err error) *Error {
	return &Error{Kind: kind, Op: op, Domain: domain, Err: err}
}
