// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package netting

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/miekg/dns"
	"golang.org/x/text/encoding/unicode"
)

// resolver issues queries against an ordered list of nameservers with
// a bounded number of attempts. It is built per [Checker.CheckDNS]
// call and never shared.
type resolver struct {
	client    *dns.Client
	servers   []string
	attempts  int
	timeout   time.Duration
	edns0Size uint16
}

// newResolver builds the resolver for a single call, reading the system
// configuration unless nameservers were pinned with [WithNameservers].
func (c *Checker) newResolver() (*resolver, error) {
	servers := make([]string, 0, len(c.nameservers))
	for _, s := range c.nameservers {
		servers = append(servers, withPort(s, "53"))
	}

	if len(servers) == 0 {
		conf, err := dns.ClientConfigFromFile(c.resolvConf)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrResolverConfig, err)
		}
		for _, s := range conf.Servers {
			servers = append(servers, net.JoinHostPort(s, conf.Port))
		}
	}

	if len(servers) == 0 {
		return nil, fmt.Errorf("%w: no nameservers in %s", ErrResolverConfig, c.resolvConf)
	}

	client := c.dnsClient
	if client == nil {
		client = &dns.Client{
			Net:     "udp",
			Timeout: c.dnsTimeout,
		}
	}

	return &resolver{
		client:    client,
		servers:   servers,
		attempts:  c.dnsAttempts,
		timeout:   c.dnsTimeout,
		edns0Size: c.edns0Size,
	}, nil
}

// withPort appends defaultPort to server unless it already carries one.
func withPort(server, defaultPort string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	return net.JoinHostPort(strings.Trim(server, "[]"), defaultPort)
}

// query resolves a single record type. Every attempt walks the whole
// nameserver list; NXDOMAIN ends the query at once, other failures move
// on to the next server.
func (r *resolver) query(ctx context.Context, domain string, qtype uint16) ([]dns.RR, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), qtype)
	msg.RecursionDesired = true
	if r.edns0Size > 0 {
		msg.SetEdns0(r.edns0Size, false)
	}

	var lastErr error
	for attempt := 0; attempt < r.attempts; attempt++ {
		for _, server := range r.servers {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			resp, err := r.exchange(ctx, msg, server)
			if err != nil {
				lastErr = err
				continue
			}

			switch resp.Rcode {
			case dns.RcodeSuccess:
				answers := filterAnswers(resp.Answer, qtype)
				if len(answers) == 0 {
					return nil, fmt.Errorf("%w: %s %s", ErrNoAnswer, dns.TypeToString[qtype], domain)
				}
				return answers, nil
			case dns.RcodeNameError:
				return nil, fmt.Errorf("%w: %s", ErrNXDOMAIN, domain)
			default:
				lastErr = fmt.Errorf("%s: unexpected response code: %s", server, dns.RcodeToString[resp.Rcode])
			}
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrAllAttemptsFailed, lastErr)
}

// exchange sends msg to server within the per-attempt timeout. A
// FORMERR to an EDNS0 query is retried once without EDNS0, and a
// truncated UDP answer is retried over TCP against the same server.
func (r *resolver) exchange(ctx context.Context, msg *dns.Msg, server string) (*dns.Msg, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := exchangeContext(ctx, r.client, msg.Copy(), server)
	if err != nil {
		return nil, err
	}

	// Servers that do not understand EDNS0 answer FORMERR; ask once more
	// without the OPT record.
	if resp.Rcode == dns.RcodeFormatError && msg.IsEdns0() != nil {
		msg = withoutEDNS0(msg)
		resp, err = exchangeContext(ctx, r.client, msg.Copy(), server)
		if err != nil {
			return nil, err
		}
	}

	if resp.Truncated && (r.client.Net == "" || r.client.Net == "udp") {
		tcp := &dns.Client{
			Net:     "tcp",
			Timeout: r.client.Timeout,
			Dialer:  r.client.Dialer,
		}
		return exchangeContext(ctx, tcp, msg.Copy(), server)
	}

	return resp, nil
}

// withoutEDNS0 returns a copy of msg with its OPT record removed.
func withoutEDNS0(msg *dns.Msg) *dns.Msg {
	plain := msg.Copy()
	extra := plain.Extra[:0]
	for _, rr := range plain.Extra {
		if _, ok := rr.(*dns.OPT); !ok {
			extra = append(extra, rr)
		}
	}
	plain.Extra = extra
	return plain
}

// exchangeContext performs the exchange in its own goroutine so that a
// cancelled context returns immediately even if the client is blocked
// on a read without a deadline.
func exchangeContext(ctx context.Context, client *dns.Client, msg *dns.Msg, server string) (*dns.Msg, error) {
	type dnsResult struct {
		msg *dns.Msg
		err error
	}
	ch := make(chan dnsResult, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				ch <- dnsResult{err: fmt.Errorf("%w: %v", ErrInternalPanic, rec)}
			}
		}()
		resp, _, err := client.ExchangeContext(ctx, msg, server)
		ch <- dnsResult{msg: resp, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-ch:
		if result.err != nil {
			return nil, result.err
		}
		if result.msg == nil {
			return nil, errors.New("empty DNS response")
		}
		return result.msg, nil
	}
}

// filterAnswers keeps the records of the queried type, dropping the
// CNAME chain that may precede them.
func filterAnswers(answers []dns.RR, qtype uint16) []dns.RR {
	out := make([]dns.RR, 0, len(answers))
	for _, rr := range answers {
		if rr.Header().Rrtype == qtype {
			out = append(out, rr)
		}
	}
	return out
}

// safeQuery is query for goroutines of its own: a panic becomes an
// error wrapping [ErrInternalPanic].
func (r *resolver) safeQuery(ctx context.Context, domain string, qtype uint16) (answers []dns.RR, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrInternalPanic, rec)
		}
	}()
	return r.query(ctx, domain, qtype)
}

// lookupIP queries A and AAAA concurrently. It fails only when both
// families fail; each list keeps the resolver's order.
func (r *resolver) lookupIP(ctx context.Context, domain string) (ipv4, ipv6 []string, err error) {
	var (
		wg            sync.WaitGroup
		errA, errAAAA error
		answersA      []dns.RR
		answersAAAA   []dns.RR
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		answersA, errA = r.safeQuery(ctx, domain, dns.TypeA)
	}()
	go func() {
		defer wg.Done()
		answersAAAA, errAAAA = r.safeQuery(ctx, domain, dns.TypeAAAA)
	}()
	wg.Wait()

	if errA != nil && errAAAA != nil {
		return nil, nil, errors.Join(errA, errAAAA)
	}

	for _, rr := range answersA {
		if a, ok := rr.(*dns.A); ok {
			ipv4 = append(ipv4, a.A.String())
		}
	}
	for _, rr := range answersAAAA {
		if aaaa, ok := rr.(*dns.AAAA); ok {
			ipv6 = append(ipv6, aaaa.AAAA.String())
		}
	}

	return ipv4, ipv6, nil
}

func (r *resolver) lookupNS(ctx context.Context, domain string) ([]string, error) {
	answers, err := r.query(ctx, domain, dns.TypeNS)
	if err != nil {
		return nil, err
	}

	records := make([]string, 0, len(answers))
	for _, rr := range answers {
		if ns, ok := rr.(*dns.NS); ok {
			records = append(records, ns.Ns)
		}
	}
	return records, nil
}

func (r *resolver) lookupMX(ctx context.Context, domain string) ([]string, error) {
	answers, err := r.query(ctx, domain, dns.TypeMX)
	if err != nil {
		return nil, err
	}

	records := make([]string, 0, len(answers))
	for _, rr := range answers {
		if mx, ok := rr.(*dns.MX); ok {
			records = append(records, formatMX(mx.Preference, mx.Mx))
		}
	}
	return records, nil
}

func (r *resolver) lookupTXT(ctx context.Context, domain string) ([]string, error) {
	answers, err := r.query(ctx, domain, dns.TypeTXT)
	if err != nil {
		return nil, err
	}

	records := make([]string, 0, len(answers))
	for _, rr := range answers {
		txt, ok := rr.(*dns.TXT)
		if !ok || len(txt.Txt) == 0 {
			continue
		}
		records = append(records, decodeTXT(txt.Txt[0]))
	}
	return records, nil
}

// formatMX renders an MX record as "<preference> <exchange>". The
// exchange stays fully qualified, as the server returned it.
func formatMX(preference uint16, exchange string) string {
	return fmt.Sprintf("%d %s", preference, exchange)
}

// decodeTXT turns one character-string, as stored by the dns package in
// presentation form, back into text. Bytes that are not valid UTF-8
// become U+FFFD.
func decodeTXT(s string) string {
	raw := unescapeTXT(s)
	decoded, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "\uFFFD")
	}
	return string(decoded)
}

// unescapeTXT reverses the \DDD and \X escapes the dns package applies
// to TXT data when unpacking a message.
func unescapeTXT(s string) []byte {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b = append(b, c)
			continue
		}

		if i+3 < len(s) && isDigit(s[i+1]) && isDigit(s[i+2]) && isDigit(s[i+3]) {
			n := int(s[i+1]-'0')*100 + int(s[i+2]-'0')*10 + int(s[i+3]-'0')
			if n <= 0xFF {
				b = append(b, byte(n))
				i += 3
				continue
			}
		}

		i++
		b = append(b, s[i])
	}
	return b
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
