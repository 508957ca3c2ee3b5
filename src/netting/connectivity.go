// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package netting

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/http2"
)

// CheckConnectivity issues a single GET to https://<domain> and reports
// whether a response arrived and how long the headers took.
//
// The domain is used verbatim: no scheme, path or Punycode handling.
// Any HTTP status counts as reachable; only transport failures (DNS,
// connect, TLS, timeout) make the domain unreachable, in which case
// ResponseTimeMs is 0, StatusCode is nil and Error describes the failure.
// The call itself never fails.
func (c *Checker) CheckConnectivity(ctx context.Context, domain string) ConnectivityResult {
	client, transport, err := c.newHTTPClient()
	if err != nil {
		return c.unreachable(domain, err)
	}
	defer transport.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://"+domain, nil)
	if err != nil {
		return c.unreachable(domain, err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return c.unreachable(domain, err)
	}
	elapsed := time.Since(start)
	resp.Body.Close()

	status := resp.StatusCode
	c.logger.Debug("domain reachable",
		zap.String("domain", domain),
		zap.Int("status", status),
		zap.Duration("elapsed", elapsed),
	)

	return ConnectivityResult{
		IsReachable:    true,
		ResponseTimeMs: uint64(elapsed.Milliseconds()),
		StatusCode:     &status,
	}
}

func (c *Checker) unreachable(domain string, err error) ConnectivityResult {
	cause := newError(KindTransport, "check connectivity", domain, err)
	c.logger.Debug("domain unreachable", zap.String("domain", domain), zap.Error(err))

	return ConnectivityResult{
		IsReachable: false,
		Error:       cause.Error(),
		Cause:       cause,
	}
}

// newHTTPClient builds a single-use client. Keep-alives are disabled so
// nothing outlives the call.
func (c *Checker) newHTTPClient() (*http.Client, *http.Transport, error) {
	dialer := &net.Dialer{
		Timeout: c.connectivityTimeout,
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		TLSClientConfig:     &tls.Config{RootCAs: c.rootCAs},
		TLSHandshakeTimeout: c.connectivityTimeout,
		DisableKeepAlives:   true,
	}

	// A custom TLSClientConfig turns off the transport's automatic
	// HTTP/2 support.
	if err := http2.ConfigureTransport(transport); err != nil {
		return nil, nil, err
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   c.connectivityTimeout,
	}

	return client, transport, nil
}
