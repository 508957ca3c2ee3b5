// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package netting

import (
	"crypto/x509"
	"time"

	"github.com/miekg/dns"
	"go.uber.org/zap"
)

// Option is a functional option for configuring a [Checker].
type Option func(*Checker)

// WithConnectivityTimeout sets the end-to-end timeout (connect, TLS and
// response headers) of [Checker.CheckConnectivity].
// The default is 10 seconds. Non-positive values are ignored.
func WithConnectivityTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.connectivityTimeout = d
		}
	}
}

// WithDNSTimeout sets the timeout of a single DNS query attempt.
// The default is 5 seconds. Non-positive values are ignored.
//
// It bounds every attempt, including those made through a client set
// with [WithDNSClient].
func WithDNSTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.dnsTimeout = d
		}
	}
}

// WithDNSAttempts sets how many times each DNS query walks the
// nameserver list before giving up. The default is 2.
func WithDNSAttempts(n int) Option {
	return func(c *Checker) {
		if n < 1 {
			n = defaultDNSAttempts // Use default on invalid input
		}
		c.dnsAttempts = n
	}
}

// WithNameservers pins the nameservers used by [Checker.CheckDNS],
// bypassing the system resolver configuration. Addresses without a
// port get ":53".
//
// Passing zero servers restores the system configuration.
func WithNameservers(servers ...string) Option {
	return func(c *Checker) {
		c.nameservers = append([]string(nil), servers...)
	}
}

// WithResolvConf sets the resolver configuration file read by
// [Checker.CheckDNS] when no nameservers are pinned.
// The default is /etc/resolv.conf.
func WithResolvConf(path string) Option {
	return func(c *Checker) {
		if path != "" {
			c.resolvConf = path
		}
	}
}

// WithDNSClient sets a custom [dns.Client] for all DNS queries,
// e.g. to force TCP (Net: "tcp") or DNS-over-TLS (Net: "tcp-tls").
//
// The client's own Timeout applies to its dial, read and write steps;
// [WithDNSTimeout] still bounds each attempt as a whole. Passing nil is
// a no-op and a fresh UDP client is built per call.
func WithDNSClient(client *dns.Client) Option {
	return func(c *Checker) {
		if client != nil {
			c.dnsClient = client
		}
	}
}

// WithEDNS0Size sets the EDNS0 UDP buffer size.
// The default is 1232 bytes, which is the recommended size to prevent
// IP fragmentation over UDP.
//
// See: https://dnsflagday.net/2020/
func WithEDNS0Size(size uint16) Option {
	return func(c *Checker) {
		if size > 0 {
			c.edns0Size = size
		}
	}
}

// WithCertificateTimeout bounds [Checker.CertificateInfo] (dial plus
// handshake). The default of 0 applies no timeout of its own and only
// the caller's context limits the call.
func WithCertificateTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d >= 0 {
			c.certificateTimeout = d
		}
	}
}

// WithTLSPort sets the port dialed by [Checker.CertificateInfo].
// The default is "443".
func WithTLSPort(port string) Option {
	return func(c *Checker) {
		if port != "" {
			c.tlsPort = port
		}
	}
}

// WithRootCAs sets the trust roots used by [Checker.CheckConnectivity].
// The default nil uses the host's root store. It does not affect
// [Checker.CertificateInfo], which never verifies the chain.
func WithRootCAs(pool *x509.CertPool) Option {
	return func(c *Checker) {
		c.rootCAs = pool
	}
}

// WithLogger sets the logger that receives diagnostic breadcrumbs.
// The default discards everything. Passing nil is a no-op.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}
