package report

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestWritePDFRendersMarkdown(t *testing.T) {
	t.Parallel()

	body := strings.Join([]string{
		"## Overview",
		"",
		"The airport handled **42** flights, *most* of them `on time`.",
		"",
		"| Airline | Flights |",
		"| --- | --- |",
		"| TAP | 20 |",
		"| RYR | 22 |",
		"",
		"- first point",
		"- second point",
		"",
		"1. ranked item",
		"2. another item",
		"",
		"> operational note",
		"",
		"---",
		"",
	}, "\n")

	path := filepath.Join(t.TempDir(), "airport_report_lppt.pdf")
	require.NoError(t, WritePDF(path, "lppt", body))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "expected a PDF header")
	assert.Greater(t, len(data), 1000)
}

func TestWritePDFEmbedsChart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "flight_distribution.png"))

	body := "## Traffic by Hour\n\n![Flight Distribution](flight_distribution.png)\n"
	path := filepath.Join(dir, "report.pdf")
	require.NoError(t, WritePDF(path, "lis", body))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestWritePDFMissingImageDegradesToAltText(t *testing.T) {
	t.Parallel()

	body := "![Flight Distribution](flight_distribution.png)\n"
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, WritePDF(path, "lis", body))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWritePDFLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, WritePDF(filepath.Join(dir, "report.pdf"), "lis", "plain paragraph\n"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report.pdf", entries[0].Name())
}
