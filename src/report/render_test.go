// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/H0llyW00dzZ/netting/src/netting"
	"github.com/H0llyW00dzZ/netting/src/report"
)

func okReport() report.Report {
	return report.Collect(context.Background(), sampleInspector(), "example.com", report.CheckAll)
}

func downReport() report.Report {
	return report.Report{
		Domain:           "down.example",
		Connectivity:     &netting.ConnectivityResult{Error: "check connectivity down.example: connection refused"},
		DNSError:         "check dns down.example: netting: invalid resolver configuration",
		CertificateError: "get certificate info down.example: connection refused",
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    report.Format
		wantErr bool
	}{
		{"", report.FormatText, false},
		{"text", report.FormatText, false},
		{"JSON", report.FormatJSON, false},
		{" yaml ", report.FormatYAML, false},
		{"yml", report.FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := report.ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, report.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.FormatJSON, okReport()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "example.com", got["domain"])

	conn := got["connectivity"].(map[string]any)
	assert.Equal(t, true, conn["is_reachable"])
	assert.EqualValues(t, 42, conn["response_time_ms"])
	assert.EqualValues(t, 200, conn["status_code"])
	assert.NotContains(t, conn, "error")

	dns := got["dns"].(map[string]any)
	assert.Equal(t, []any{"93.184.216.34"}, dns["a_records"])
	assert.Equal(t, []any{}, dns["aaaa_records"], "empty lists are arrays, not null")

	cert := got["certificate"].(map[string]any)
	assert.EqualValues(t, 1736899200, cert["valid_from"])
	assert.EqualValues(t, 3, cert["version"])
}

func TestWriteJSONFailures(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.FormatJSON, downReport()))

	var down map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &down))

	assert.Equal(t, "down.example", down["domain"])
	assert.NotContains(t, down, "dns")
	assert.NotContains(t, down, "certificate")
	assert.Contains(t, down["dns_error"], "invalid resolver configuration")
	assert.NotContains(t, down["connectivity"], "status_code")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.FormatYAML, okReport()))

	var got struct {
		Domain       string `yaml:"domain"`
		Connectivity struct {
			IsReachable bool `yaml:"is_reachable"`
			StatusCode  int  `yaml:"status_code"`
		} `yaml:"connectivity"`
		DNS struct {
			MXRecords []string `yaml:"mx_records"`
		} `yaml:"dns"`
		Certificate struct {
			SerialNumber string `yaml:"serial_number"`
		} `yaml:"certificate"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "example.com", got.Domain)
	assert.True(t, got.Connectivity.IsReachable)
	assert.Equal(t, 200, got.Connectivity.StatusCode)
	assert.Equal(t, []string{"0 ."}, got.DNS.MXRecords)
	assert.Equal(t, "0AD893BAFA68B0B7FB7A404F06ECAF9A", got.Certificate.SerialNumber)
}

func TestWriteText(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.FormatText, okReport()))

	out := buf.String()
	for _, want := range []string{
		"example.com",
		"reachable",
		"42 ms",
		"93.184.216.34",
		"a.iana-servers.net",
		"(none)",
		"C=US, O=Example, CN=example.com",
		"2026-01-15T23:59:59Z",
	} {
		assert.Contains(t, out, want)
	}

	buf.Reset()
	require.NoError(t, report.Write(&buf, report.FormatText, downReport()))

	out = buf.String()
	assert.Contains(t, out, "down.example")
	assert.Contains(t, out, "unreachable")
	assert.Contains(t, out, "invalid resolver configuration")
}

func TestWriteUnknownFormat(t *testing.T) {
	err := report.Write(&bytes.Buffer{}, report.Format("xml"), okReport())
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteXLSX(&buf, okReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{report.SheetConnectivity, report.SheetDNS, report.SheetCertificates}, f.GetSheetList())

	conn, err := f.GetRows(report.SheetConnectivity)
	require.NoError(t, err)
	require.Len(t, conn, 2)
	assert.Equal(t, []string{"Domain", "Reachable", "Status Code", "Response Time (ms)", "Error"}, conn[0])
	assert.Equal(t, "example.com", conn[1][0])
	assert.Equal(t, "200", conn[1][2])
	assert.Equal(t, "42", conn[1][3])

	dns, err := f.GetRows(report.SheetDNS)
	require.NoError(t, err)
	// Header plus one row per record.
	require.Len(t, dns, 5)
	assert.Equal(t, []string{"example.com", "A", "93.184.216.34"}, dns[1])
	assert.Equal(t, []string{"example.com", "TXT", "v=spf1 -all"}, dns[4])

	certs, err := f.GetRows(report.SheetCertificates)
	require.NoError(t, err)
	require.Len(t, certs, 2)
	assert.Equal(t, "0AD893BAFA68B0B7FB7A404F06ECAF9A", certs[1][5])
	assert.Equal(t, "2025-01-15T00:00:00Z", certs[1][3])
}

func TestWriteXLSXFailures(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteXLSX(&buf, downReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	conn, err := f.GetRows(report.SheetConnectivity)
	require.NoError(t, err)
	require.Len(t, conn, 2)
	assert.Contains(t, conn[1][4], "connection refused")

	dns, err := f.GetRows(report.SheetDNS)
	require.NoError(t, err)
	require.Len(t, dns, 2)
	assert.Contains(t, dns[1][3], "invalid resolver configuration")
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, report.SaveXLSX(path, okReport()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.SheetCertificates)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "C=US, O=Example, CN=example.com", rows[1][1])
}
