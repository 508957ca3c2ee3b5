// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package report runs the netting checks for a domain and renders the
// outcome as text, JSON, YAML or an XLSX workbook.
//
// Errors returned by the checks are flattened to strings here; the
// netting package itself keeps them typed.
package report

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/H0llyW00dzZ/netting/src/netting"
)

// Inspector is the subset of [netting.Checker] used by [Collect].
type Inspector interface {
	CheckConnectivity(ctx context.Context, domain string) netting.ConnectivityResult
	CheckDNS(ctx context.Context, domain string) (netting.DNSResult, error)
	CertificateInfo(ctx context.Context, domain string) (netting.CertificateInfo, error)
}

// Check selects which checks [Collect] runs.
type Check uint8

// Individual checks. Combine them with |.
const (
	CheckConnectivity Check = 1 << iota
	CheckDNS
	CheckCertificate

	CheckAll = CheckConnectivity | CheckDNS | CheckCertificate
)

// Has reports whether k is part of c.
func (c Check) Has(k Check) bool { return c&k != 0 }

// Report is the outcome of the selected checks for a single domain.
// A section is nil when its check was not selected or failed; a failure
// is described by the matching *Error field.
type Report struct {
	Domain string `json:"domain" yaml:"domain"`

	Connectivity *netting.ConnectivityResult `json:"connectivity,omitempty" yaml:"connectivity,omitempty"`

	DNS      *netting.DNSResult `json:"dns,omitempty" yaml:"dns,omitempty"`
	DNSError string             `json:"dns_error,omitempty" yaml:"dns_error,omitempty"`

	Certificate      *netting.CertificateInfo `json:"certificate,omitempty" yaml:"certificate,omitempty"`
	CertificateError string                   `json:"certificate_error,omitempty" yaml:"certificate_error,omitempty"`
}

// Failed reports whether any selected check ended in an error, or the
// domain was unreachable.
func (r Report) Failed() bool {
	if r.Connectivity != nil && !r.Connectivity.IsReachable {
		return true
	}
	return r.DNSError != "" || r.CertificateError != ""
}

// Collect runs the selected checks against domain concurrently and
// waits for all of them. One failing check never hides the others; a
// check that panics is reported as a failure of that check.
func Collect(ctx context.Context, insp Inspector, domain string, checks Check) Report {
	r := Report{Domain: domain}

	var g errgroup.Group

	if checks.Has(CheckConnectivity) {
		g.Go(guard(func() {
			res := insp.CheckConnectivity(ctx, domain)
			r.Connectivity = &res
		}, func(err error) {
			r.Connectivity = &netting.ConnectivityResult{Error: err.Error(), Cause: err}
		}))
	}

	if checks.Has(CheckDNS) {
		g.Go(guard(func() {
			res, err := insp.CheckDNS(ctx, domain)
			if err != nil {
				r.DNSError = err.Error()
				return
			}
			r.DNS = &res
		}, func(err error) {
			r.DNSError = err.Error()
		}))
	}

	if checks.Has(CheckCertificate) {
		g.Go(guard(func() {
			info, err := insp.CertificateInfo(ctx, domain)
			if err != nil {
				r.CertificateError = err.Error()
				return
			}
			r.Certificate = &info
		}, func(err error) {
			r.CertificateError = err.Error()
		}))
	}

	// Branches record their failures in r and never return an error.
	_ = g.Wait()

	return r
}

// guard adapts run for errgroup and hands a recovered panic to onPanic.
func guard(run func(), onPanic func(error)) func() error {
	return func() error {
		defer func() {
			if rec := recover(); rec != nil {
				onPanic(fmt.Errorf("%w: %v", netting.ErrInternalPanic, rec))
			}
		}()
		run()
		return nil
	}
}
