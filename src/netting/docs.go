// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package netting provides network diagnostics for a single domain.
//
// A [Checker] answers three independent questions about a domain:
//
//   - Is the HTTPS endpoint reachable, and how fast? ([Checker.CheckConnectivity])
//   - Which A, AAAA, NS, MX and TXT records does it have? ([Checker.CheckDNS])
//   - What certificate does the TLS endpoint present? ([Checker.CertificateInfo])
//
// The three operations share no state and may run concurrently. Each
// call builds its own HTTP transport, DNS resolver or TCP connection and
// releases it before returning; nothing is pooled or cached.
//
// # Quick Start
//
//	c := netting.New()
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//
//	conn := c.CheckConnectivity(ctx, "example.com")
//	if conn.IsReachable {
//	    fmt.Printf("HTTP %d in %dms\n", *conn.StatusCode, conn.ResponseTimeMs)
//	} else {
//	    fmt.Println("unreachable:", conn.Error)
//	}
//
//	records, err := c.CheckDNS(ctx, "example.com")
//	if err != nil {
//	    log.Fatal(err) // resolver configuration problem
//	}
//	fmt.Println(records.ARecords, records.MXRecords)
//
//	cert, err := c.CertificateInfo(ctx, "example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cert.Subject, cert.ValidUntil)
//
// # Failure Semantics
//
// Each operation treats failure differently:
//
//   - CheckConnectivity never fails. A site that is down is an expected
//     outcome and is reported as IsReachable=false with a description in
//     Error and the typed error in Cause.
//   - CheckDNS absorbs per-record-type failures (NXDOMAIN, timeouts,
//     SERVFAIL, no answer) into empty lists. It only fails when the
//     resolver itself cannot be configured.
//   - CertificateInfo is all-or-nothing and stops at the first failing
//     step: dial, handshake, missing certificate or decoding.
//
// # Certificate Inspection
//
// The certificate inspector does not validate the chain or the host
// name. It is meant to show operators exactly what a server presents,
// including self-signed and expired certificates. The configuration is
// exposed as [InspectionTLSConfig] so the policy stays visible.
//
// # Configuration
//
// Use functional options to customize the checker:
//
//	c := netting.New(
//	    // Bound the HTTPS probe (default 10s).
//	    netting.WithConnectivityTimeout(5 * time.Second),
//
//	    // DNS: 2s per attempt, 3 attempts, fixed resolvers.
//	    netting.WithDNSTimeout(2 * time.Second),
//	    netting.WithDNSAttempts(3),
//	    netting.WithNameservers("1.1.1.1", "8.8.8.8"),
//
//	    // Put a ceiling on the certificate handshake (default none).
//	    netting.WithCertificateTimeout(15 * time.Second),
//
//	    // Receive diagnostic breadcrumbs.
//	    netting.WithLogger(logger),
//	)
//
// Available options:
//
//   - [WithConnectivityTimeout] — End-to-end HTTPS timeout (default: 10s)
//   - [WithDNSTimeout]          — Timeout per DNS attempt (default: 5s)
//   - [WithDNSAttempts]         — Attempts per DNS query (default: 2)
//   - [WithNameservers]         — Fixed nameservers instead of the system configuration
//   - [WithResolvConf]          — Resolver configuration file (default: /etc/resolv.conf)
//   - [WithDNSClient]           — Custom client for TCP, TLS, or custom dialer
//   - [WithEDNS0Size]           — EDNS0 UDP buffer size (default: 1232)
//   - [WithCertificateTimeout]  — Certificate inspection timeout (default: none)
//   - [WithTLSPort]             — Port dialed for certificate inspection (default: 443)
//   - [WithRootCAs]             — Trust roots for the connectivity probe
//   - [WithLogger]              — [zap.Logger] for diagnostics (default: no-op)
//
// # Errors
//
// Failures are reported as [*Error], which carries a [Kind]:
//
//	KindDNSResolution          // resolver construction or query
//	KindTransport              // TCP connect, TLS handshake, HTTP exchange
//	KindCertificateUnavailable // handshake succeeded without a certificate
//	KindCertificateDecode      // malformed DER/ASN.1
//	KindTimeRange              // validity outside the calendar range
//
// Use [KindOf] to classify an error and [errors.Is] with the sentinel
// errors ([ErrResolverConfig], [ErrCertificateUnavailable],
// [ErrCertificateDecode], [ErrInvalidStartTime], [ErrInvalidEndTime], ...)
// to match specific causes.
//
// # Examples
//
// Runnable examples are available in the [examples/] directory:
//
//   - [examples/basic]       — Run all three checks against one domain
//   - [examples/dns]         — Query fixed nameservers with custom limits
//   - [examples/certificate] — Inspect a certificate with debug logging
//   - [examples/report]      — Run every check and export an XLSX workbook
//
// [examples/basic]: https://github.com/H0llyW00dzZ/netting/blob/master/examples/basic/main.go
// [examples/dns]: https://github.com/H0llyW00dzZ/netting/blob/master/examples/dns/main.go
// [examples/certificate]: https://github.com/H0llyW00dzZ/netting/blob/master/examples/certificate/main.go
// [examples/report]: https://github.com/H0llyW00dzZ/netting/blob/master/examples/report/main.go
// [examples/]: https://github.com/H0llyW00dzZ/netting/blob/master/examples
// [zap.Logger]: https://pkg.go.dev/go.uber.org/zap#Logger
package netting
