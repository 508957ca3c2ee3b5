// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/H0llyW00dzZ/netting/src/netting"
)

// Format is an output format accepted by [Write].
type Format string

// Supported output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("report: unknown output format")

// ParseFormat converts a user supplied name into a [Format].
// The empty string selects [FormatText].
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Write renders r to w in the given format.
func Write(w io.Writer, format Format, r Report) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	case FormatText, "":
		return writeText(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

func writeJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

var (
	colorOK    = color.New(color.FgGreen).SprintFunc()
	colorFail  = color.New(color.FgRed).SprintFunc()
	colorTitle = color.New(color.Bold).SprintFunc()
)

func writeText(w io.Writer, r Report) error {
	if _, err := fmt.Fprintln(w, colorTitle(r.Domain)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Check", "Field", "Value")
	for _, row := range textRows(r) {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// textRows flattens a report into check/field/value rows.
func textRows(r Report) [][]string {
	var rows [][]string
	add := func(check, field, value string) {
		rows = append(rows, []string{check, field, value})
	}

	if c := r.Connectivity; c != nil {
		if c.IsReachable {
			add("connectivity", "status", colorOK("reachable"))
			add("connectivity", "http status", fmt.Sprint(*c.StatusCode))
			add("connectivity", "response time", fmt.Sprintf("%d ms", c.ResponseTimeMs))
		} else {
			add("connectivity", "status", colorFail("unreachable"))
			add("connectivity", "error", c.Error)
		}
	}

	switch {
	case r.DNSError != "":
		add("dns", "error", colorFail(r.DNSError))
	case r.DNS != nil:
		for _, rec := range dnsSections(*r.DNS) {
			add("dns", rec.name, joinOrNone(rec.values))
		}
	}

	switch {
	case r.CertificateError != "":
		add("certificate", "error", colorFail(r.CertificateError))
	case r.Certificate != nil:
		cert := r.Certificate
		add("certificate", "subject", cert.Subject)
		add("certificate", "issuer", cert.Issuer)
		add("certificate", "valid from", cert.ValidFrom.Format(time.RFC3339))
		add("certificate", "valid until", cert.ValidUntil.Format(time.RFC3339))
		add("certificate", "serial number", cert.SerialNumber)
		add("certificate", "version", fmt.Sprint(cert.Version))
	}

	return rows
}

type dnsSection struct {
	name   string
	values []string
}

func dnsSections(d netting.DNSResult) []dnsSection {
	return []dnsSection{
		{"A", d.ARecords},
		{"AAAA", d.AAAARecords},
		{"NS", d.NSRecords},
		{"MX", d.MXRecords},
		{"TXT", d.TXTRecords},
	}
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, "\n")
}
