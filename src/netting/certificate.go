// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package netting

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"
)

// InspectionTLSConfig returns the TLS client configuration used by
// [Checker.CertificateInfo].
//
// Chain and hostname verification are switched off on purpose: the
// inspector must report whatever the server presents, including
// self-signed, expired or mismatched certificates. Never use this
// configuration for a connection that carries application data.
func InspectionTLSConfig(serverName string) *tls.Config {
	return &tls.Config{
		ServerName:         serverName,
		InsecureSkipVerify: true, // #nosec G402 -- inspection only, nothing is trusted
	}
}

// CertificateInfo connects to <domain>:443, completes a TLS handshake
// without verifying the peer and decodes the leaf certificate.
//
// It stops at the first failing step and returns an [*Error] whose
// [Kind] tells which step failed: [KindTransport] for dial and
// handshake, [KindCertificateUnavailable] when no certificate was
// presented, [KindCertificateDecode] or [KindTimeRange] for decoding.
//
// No timeout is applied unless [WithCertificateTimeout] is set; ctx
// still bounds the call.
func (c *Checker) CertificateInfo(ctx context.Context, domain string) (CertificateInfo, error) {
	const op = "get certificate info"

	if c.certificateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.certificateTimeout)
		defer cancel()
	}

	log := c.logger.With(zap.String("domain", domain))
	addr := net.JoinHostPort(domain, c.tlsPort)

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return CertificateInfo{}, newError(KindTransport, op, domain, err)
	}
	defer conn.Close()
	log.Debug("connection established", zap.String("addr", addr))

	tlsConn := tls.Client(conn, InspectionTLSConfig(domain))
	log.Debug("handshake started")
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return CertificateInfo{}, newError(KindTransport, op, domain, err)
	}

	peers := tlsConn.ConnectionState().PeerCertificates
	if len(peers) == 0 {
		return CertificateInfo{}, newError(KindCertificateUnavailable, op, domain, ErrCertificateUnavailable)
	}
	log.Debug("certificate obtained", zap.Int("chain_length", len(peers)))

	info, err := ParseCertificate(peers[0].Raw)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Op = op
			e.Domain = domain
			return CertificateInfo{}, e
		}
		return CertificateInfo{}, newError(KindCertificateDecode, op, domain, err)
	}
	log.Debug("decode complete", zap.String("serial_number", info.SerialNumber))

	return info, nil
}

// ParseCertificate decodes a DER-encoded X.509 certificate.
//
// Subject and issuer keep the encoded RDN order, e.g.
// "C=US, O=Let's Encrypt, CN=R3". Validity is truncated to whole
// seconds in UTC. The serial is uppercase hexadecimal and Version is the
// human-readable version (wire value plus one).
//
// Errors are [*Error] values of kind [KindCertificateDecode] or
// [KindTimeRange].
func ParseCertificate(der []byte) (CertificateInfo, error) {
	const op = "decode certificate"

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return CertificateInfo{}, newError(KindCertificateDecode, op, "", fmt.Errorf("%w: %v", ErrCertificateDecode, err))
	}

	subject, err := formatDistinguishedName(cert.RawSubject)
	if err != nil {
		return CertificateInfo{}, newError(KindCertificateDecode, op, "", fmt.Errorf("%w: subject: %v", ErrCertificateDecode, err))
	}

	issuer, err := formatDistinguishedName(cert.RawIssuer)
	if err != nil {
		return CertificateInfo{}, newError(KindCertificateDecode, op, "", fmt.Errorf("%w: issuer: %v", ErrCertificateDecode, err))
	}

	validFrom, ok := validityTime(cert.NotBefore)
	if !ok {
		return CertificateInfo{}, newError(KindTimeRange, op, "", ErrInvalidStartTime)
	}

	validUntil, ok := validityTime(cert.NotAfter)
	if !ok {
		return CertificateInfo{}, newError(KindTimeRange, op, "", ErrInvalidEndTime)
	}

	return CertificateInfo{
		Subject:      subject,
		Issuer:       issuer,
		ValidFrom:    validFrom,
		ValidUntil:   validUntil,
		SerialNumber: strings.ToUpper(cert.SerialNumber.Text(16)),
		// crypto/x509 already reports the wire value plus one.
		Version: cert.Version,
	}, nil
}

// validityTime truncates t to whole seconds in UTC and reports whether
// it lies within years 1 to 9999.
func validityTime(t time.Time) (time.Time, bool) {
	t = time.Unix(t.Unix(), 0).UTC()
	if y := t.Year(); y < 1 || y > 9999 {
		return time.Time{}, false
	}
	return t, true
}

// attributeNames maps well-known attribute type OIDs to their short
// names. Unknown types are printed in dotted form.
var attributeNames = map[string]string{
	"2.5.4.3":                    "CN",
	"2.5.4.4":                    "SN",
	"2.5.4.5":                    "serialNumber",
	"2.5.4.6":                    "C",
	"2.5.4.7":                    "L",
	"2.5.4.8":                    "ST",
	"2.5.4.9":                    "STREET",
	"2.5.4.10":                   "O",
	"2.5.4.11":                   "OU",
	"2.5.4.12":                   "title",
	"2.5.4.17":                   "postalCode",
	"2.5.4.42":                   "GN",
	"2.5.4.97":                   "organizationIdentifier",
	"0.9.2342.19200300.100.1.1":  "UID",
	"0.9.2342.19200300.100.1.25": "DC",
	"1.2.840.113549.1.9.1":       "Email",
	"1.3.6.1.4.1.311.60.2.1.3":   "jurisdictionC",
	"2.5.4.15":                   "businessCategory",
}

// formatDistinguishedName renders a DER Name as "A=v, B=w" in encoded
// order. Attributes of a multi-valued RDN are joined with " + ".
func formatDistinguishedName(raw []byte) (string, error) {
	var rdns pkix.RDNSequence
	rest, err := asn1.Unmarshal(raw, &rdns)
	if err != nil {
		return "", err
	}
	if len(rest) > 0 {
		return "", errors.New("trailing data after distinguished name")
	}

	parts := make([]string, 0, len(rdns))
	for _, rdn := range rdns {
		attrs := make([]string, 0, len(rdn))
		for _, atv := range rdn {
			attrs = append(attrs, attributeName(atv.Type)+"="+attributeValue(atv.Value))
		}
		parts = append(parts, strings.Join(attrs, " + "))
	}

	return strings.Join(parts, ", "), nil
}

func attributeName(oid asn1.ObjectIdentifier) string {
	if name, ok := attributeNames[oid.String()]; ok {
		return name
	}
	return oid.String()
}

// attributeValue prints string values as-is and anything else as "#"
// followed by the hex DER encoding.
func attributeValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	der, err := asn1.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return "#" + hex.EncodeToString(der)
}
