package main

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonview/internal/config"
)

func TestRun_SimpleJSON(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	jsonData := `{"name": "John", "age": 30, "active": true}`

	tmpFile, err := os.CreateTemp("", "test_input_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	_, err = tmpFile.WriteString(jsonData)
	require.NoError(t, err)
	_ = tmpFile.Close()

	tmpOutput, err := os.CreateTemp("", "test_output_*.html")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpOutput.Name()) }()
	_ = tmpOutput.Close()

	CLI.Input = tmpFile.Name()
	CLI.Output = tmpOutput.Name()
	CLI.Format = "html"

	require.NoError(t, run())

	outputContent, err := os.ReadFile(tmpOutput.Name())
	require.NoError(t, err)

	outputStr := string(outputContent)
	assert.Contains(t, outputStr, "<!DOCTYPE html>")
	assert.Contains(t, outputStr, `<div id="json">`)
	assert.Contains(t, outputStr, `<span class="num">30</span>`)
	assert.Contains(t, outputStr, "&quot;John&quot;")
}

func TestRun_InvalidJSONStillRendersErrorView(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	tmpFile, err := os.CreateTemp("", "test_invalid_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	_, err = tmpFile.WriteString(`{"invalid": json}`)
	require.NoError(t, err)
	_ = tmpFile.Close()

	tmpOutput, err := os.CreateTemp("", "test_output_*.html")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpOutput.Name()) }()
	_ = tmpOutput.Close()

	CLI.Input = tmpFile.Name()
	CLI.Output = tmpOutput.Name()
	CLI.Format = "html"

	// The error view is a successful run for HTML output.
	require.NoError(t, run())

	outputContent, err := os.ReadFile(tmpOutput.Name())
	require.NoError(t, err)
	assert.Contains(t, string(outputContent), `<div id="error">`)
}

func TestRenderDocument_TermFormat(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Format = config.FormatTerm

	out, err := renderDocument(cfg, `{"a": 12345678901234567890}`, "")
	require.NoError(t, err)
	assert.Contains(t, out, "12345678901234567890")
	assert.NotContains(t, out, "<div")
}

func TestRenderDocument_TermFormatParseError(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Format = config.FormatTerm

	_, err := renderDocument(cfg, `{"a": `, "")
	assert.Error(t, err)
}

func TestRenderDocument_TitlePrecedence(t *testing.T) {
	cfg := config.NewConfig()

	t.Run("explicit title wins", func(t *testing.T) {
		cfg.Title = "explicit"
		out, err := renderDocument(cfg, `{}`, "/tmp/data.json")
		require.NoError(t, err)
		assert.Contains(t, out, "<title>explicit</title>")
	})

	t.Run("falls back to file name", func(t *testing.T) {
		cfg.Title = ""
		out, err := renderDocument(cfg, `{}`, "/tmp/data.json")
		require.NoError(t, err)
		assert.Contains(t, out, "<title>data.json</title>")
	})
}

func TestReadInput_FromFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	jsonData := `{"user": {"name": "Alice", "id": 42}}`

	tmpFile, err := os.CreateTemp("", "test_parse_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	_, err = tmpFile.WriteString(jsonData)
	require.NoError(t, err)
	_ = tmpFile.Close()

	CLI.Input = tmpFile.Name()

	raw, sourceName, err := readInput()
	require.NoError(t, err)
	assert.Equal(t, jsonData, raw)
	assert.Equal(t, tmpFile.Name(), sourceName)
}

func TestReadInput_FromStdin(t *testing.T) {
	originalCLI := CLI
	originalStdin := os.Stdin
	defer func() {
		CLI = originalCLI
		os.Stdin = originalStdin
	}()

	CLI.Input = ""

	jsonData := `[{"item": "apple"}, {"item": "banana"}]`
	r, w, err := os.Pipe()
	require.NoError(t, err)

	go func() {
		defer func() { _ = w.Close() }()
		_, _ = w.WriteString(jsonData)
	}()

	os.Stdin = r
	defer func() { _ = r.Close() }()

	raw, sourceName, err := readInput()
	require.NoError(t, err)
	assert.Equal(t, jsonData, raw)
	assert.Empty(t, sourceName)
}

func TestReadInput_EmptyFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	tmpFile, err := os.CreateTemp("", "test_empty_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()
	_ = tmpFile.Close()

	CLI.Input = tmpFile.Name()

	_, _, err = readInput()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestReadInput_NonExistentFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = "/non/existent/file.json"

	_, _, err := readInput()
	assert.Error(t, err)
}

func TestWriteOutput_ToFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	tmpFile, err := os.CreateTemp("", "test_write_*.html")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()
	_ = tmpFile.Close()

	CLI.Output = tmpFile.Name()

	doc := "<!DOCTYPE html>\n<html><body>test</body></html>\n"
	require.NoError(t, writeOutput(doc))

	content, err := os.ReadFile(tmpFile.Name())
	require.NoError(t, err)
	assert.Equal(t, doc, string(content))
}

func TestWriteOutput_FileError(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Output = "/non/existent/dir/output.html"

	err := writeOutput("test")
	assert.Error(t, err)
}

func TestFullPipeline_FileToFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	jsonData := `{
		"user": {
			"id": 9007199254740993,
			"name": "Integration Test User",
			"homepage": "https://example.com/user",
			"settings": {
				"theme": "dark",
				"notifications": true
			},
			"tags": []
		}
	}`

	tmpInput, err := os.CreateTemp("", "integration_input_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpInput.Name()) }()

	_, err = tmpInput.WriteString(jsonData)
	require.NoError(t, err)
	_ = tmpInput.Close()

	tmpOutput, err := os.CreateTemp("", "integration_output_*.html")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpOutput.Name()) }()
	_ = tmpOutput.Close()

	CLI.Input = tmpInput.Name()
	CLI.Output = tmpOutput.Name()
	CLI.Title = "integration"

	require.NoError(t, run())

	output, err := os.ReadFile(tmpOutput.Name())
	require.NoError(t, err)

	outputStr := string(output)
	assert.Contains(t, outputStr, "<title>integration</title>")
	// 2^53+1 survives with its exact digits.
	assert.Contains(t, outputStr, `<span class="num">9007199254740993</span>`)
	assert.Contains(t, outputStr, `<a href="https://example.com/user">`)
	assert.Contains(t, outputStr, `title="json.user.settings.theme"`)
	assert.Contains(t, outputStr, "[ ]")
	if !strings.Contains(outputStr, `<div id="json">`) {
		t.Fatalf("output missing json container:\n%s", outputStr)
	}
}
