// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package netting

import (
	"context"
	"crypto/x509"
	"fmt"
	"sync"
	"time"

	"github.com/miekg/dns"
	"go.uber.org/zap"
)

// Default configuration values.
const (
	defaultConnectivityTimeout = 10 * time.Second
	defaultDNSTimeout          = 5 * time.Second
	defaultDNSAttempts         = 2
	defaultEDNS0Size           = 1232 // Recommended size to prevent IP fragmentation
	defaultResolvConf          = "/etc/resolv.conf"
	defaultTLSPort             = "443"
)

// Checker runs connectivity, DNS and certificate checks against a
// domain. It only holds immutable configuration, so one Checker may be
// shared by any number of goroutines. Every call builds its own
// transport and resolver and releases them before returning.
type Checker struct {
	connectivityTimeout time.Duration
	dnsTimeout          time.Duration
	dnsAttempts         int
	edns0Size           uint16
	nameservers         []string
	resolvConf          string
	dnsClient           *dns.Client
	certificateTimeout  time.Duration
	tlsPort             string
	rootCAs             *x509.CertPool
	logger              *zap.Logger
}

// New creates a new [Checker]. Use functional options to customize
// behavior.
//
//	// Default configuration:
//	c := netting.New()
//
//	// Custom configuration:
//	c := netting.New(
//	    netting.WithDNSTimeout(2 * time.Second),
//	    netting.WithNameservers("1.1.1.1", "8.8.8.8"),
//	)
func New(opts ...Option) *Checker {
	c := &Checker{
		connectivityTimeout: defaultConnectivityTimeout,
		dnsTimeout:          defaultDNSTimeout,
		dnsAttempts:         defaultDNSAttempts,
		edns0Size:           defaultEDNS0Size,
		resolvConf:          defaultResolvConf,
		tlsPort:             defaultTLSPort,
		logger:              zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CheckDNS looks up the A, AAAA, NS, MX and TXT records of domain.
//
// The address (A and AAAA), NS, MX and TXT queries run concurrently and
// the call returns once all of them have settled. A failed query, for
// whatever reason, leaves its list empty; it is logged at debug level
// and never returned. The only error is a [KindDNSResolution] [*Error]
// wrapping [ErrResolverConfig] when the resolver cannot be built.
func (c *Checker) CheckDNS(ctx context.Context, domain string) (DNSResult, error) {
	r, err := c.newResolver()
	if err != nil {
		return DNSResult{}, newError(KindDNSResolution, "check dns", domain, err)
	}

	var (
		wg                     sync.WaitGroup
		ipv4, ipv6, ns, mx, tx []string
	)

	// Each branch writes to its own variables; the WaitGroup publishes
	// them to this goroutine.
	branches := []struct {
		name string
		run  func() error
	}{
		{"address", func() (err error) { ipv4, ipv6, err = r.lookupIP(ctx, domain); return err }},
		{"ns", func() (err error) { ns, err = r.lookupNS(ctx, domain); return err }},
		{"mx", func() (err error) { mx, err = r.lookupMX(ctx, domain); return err }},
		{"txt", func() (err error) { tx, err = r.lookupTXT(ctx, domain); return err }},
	}

	for _, b := range branches {
		wg.Add(1)
		go func(name string, run func() error) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					c.logger.Warn("dns lookup panicked",
						zap.String("domain", domain),
						zap.String("query", name),
						zap.Error(fmt.Errorf("%w: %v", ErrInternalPanic, rec)),
					)
				}
			}()

			if err := run(); err != nil {
				c.logger.Debug("dns lookup failed",
					zap.String("domain", domain),
					zap.String("query", name),
					zap.Error(err),
				)
			}
		}(b.name, b.run)
	}

	wg.Wait()

	return DNSResult{
		ARecords:    orEmpty(ipv4),
		AAAARecords: orEmpty(ipv6),
		NSRecords:   orEmpty(ns),
		MXRecords:   orEmpty(mx),
		TXTRecords:  orEmpty(tx),
	}, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
