// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// Worksheet names of the XLSX export.
const (
	SheetConnectivity = "Connectivity"
	SheetDNS          = "DNS"
	SheetCertificates = "Certificates"
)

var (
	connectivityHeader = []any{"Domain", "Reachable", "Status Code", "Response Time (ms)", "Error"}
	dnsHeader          = []any{"Domain", "Type", "Value", "Error"}
	certificateHeader  = []any{"Domain", "Subject", "Issuer", "Valid From", "Valid Until", "Serial Number", "Version", "Error"}
)

// WriteXLSX writes r to w as a workbook with one sheet per check.
// DNS records get one row each.
func WriteXLSX(w io.Writer, r Report) error {
	f, err := buildWorkbook(r)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}

// SaveXLSX is like [WriteXLSX] but writes the workbook to path.
func SaveXLSX(path string, r Report) error {
	f, err := buildWorkbook(r)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.SaveAs(path)
}

func buildWorkbook(r Report) (*excelize.File, error) {
	f := excelize.NewFile()

	// NewFile starts with a single "Sheet1".
	if err := f.SetSheetName("Sheet1", SheetConnectivity); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetDNS, SheetCertificates} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	sheets := []struct {
		name   string
		header []any
		rows   [][]any
	}{
		{SheetConnectivity, connectivityHeader, connectivityRows(r)},
		{SheetDNS, dnsHeader, dnsRows(r)},
		{SheetCertificates, certificateHeader, certificateRows(r)},
	}

	for _, s := range sheets {
		if err := writeSheet(f, s.name, header, s.header, s.rows); err != nil {
			f.Close()
			return nil, fmt.Errorf("report: sheet %s: %w", s.name, err)
		}
	}

	return f, nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 24)
}

func connectivityRows(r Report) [][]any {
	c := r.Connectivity
	switch {
	case c == nil:
		return nil
	case c.IsReachable:
		return [][]any{{r.Domain, true, *c.StatusCode, c.ResponseTimeMs, ""}}
	default:
		return [][]any{{r.Domain, false, "", "", c.Error}}
	}
}

func dnsRows(r Report) [][]any {
	if r.DNSError != "" {
		return [][]any{{r.Domain, "", "", r.DNSError}}
	}
	if r.DNS == nil {
		return nil
	}

	var rows [][]any
	for _, s := range dnsSections(*r.DNS) {
		for _, v := range s.values {
			rows = append(rows, []any{r.Domain, s.name, v, ""})
		}
	}
	return rows
}

func certificateRows(r Report) [][]any {
	if r.CertificateError != "" {
		return [][]any{{r.Domain, "", "", "", "", "", "", r.CertificateError}}
	}
	cert := r.Certificate
	if cert == nil {
		return nil
	}
	return [][]any{{
		r.Domain,
		cert.Subject,
		cert.Issuer,
		cert.ValidFrom.Format(time.RFC3339),
		cert.ValidUntil.Format(time.RFC3339),
		cert.SerialNumber,
		cert.Version,
		"",
	}}
}
