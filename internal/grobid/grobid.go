// Package grobid calls the external document-conversion service that
// turns PDF bytes into TEI XML.
package grobid

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/docstream/ingest/internal/metrics"
)

// Feature flags sent with every conversion request.
var requestFlags = map[string]string{
	"consolidateFunders":     "1",
	"consolidateHeader":      "1",
	"consolidateCitations":   "1",
	"includeRawAffiliations": "1",
}

type Client struct {
	url    string
	delay  time.Duration
	xmlDir string
	httpc  *http.Client
	logger *zap.Logger
}

// New builds a conversion client. delay is the fixed pause applied after
// every call, success or not, to stay under the service's throughput
// ceiling. xmlDir, if non-empty, receives a copy of each converted
// document.
func New(url string, delay time.Duration, xmlDir string, httpc *http.Client, logger *zap.Logger) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{url: url, delay: delay, xmlDir: xmlDir, httpc: httpc, logger: logger}
}

// Convert posts the raw document to the conversion service and returns
// the TEI XML it produced. A non-success response is a soft failure:
// logged, nil markup, nil error, no retry. The post-call delay applies
// on every path.
func (c *Client) Convert(r io.Reader, name string) ([]byte, error) {
	defer time.Sleep(c.delay)

	body, contentType, err := buildRequestBody(r)
	if err != nil {
		return nil, fmt.Errorf("build conversion request: %w", err)
	}

	resp, err := c.httpc.Post(c.url, contentType, body)
	if err != nil {
		metrics.ConversionFailuresTotal.Inc()
		c.logger.Warn("conversion service unreachable",
			zap.String("file", name),
			zap.Error(err))
		return nil, nil
	}
	defer resp.Body.Close()

	metrics.ConversionCallsTotal.Inc()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read conversion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ConversionFailuresTotal.Inc()
		c.logger.Warn("conversion service rejected file",
			zap.String("file", name),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(text)))
		return nil, nil
	}

	if c.xmlDir != "" {
		if err := c.persist(name, text); err != nil {
			return nil, err
		}
	}

	return text, nil
}

// persist writes the converted markup as <name-minus-extension>.xml.
func (c *Client) persist(name string, text []byte) error {
	base := name
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	path := filepath.Join(c.xmlDir, base+".xml")
	if err := os.WriteFile(path, text, 0o644); err != nil {
		return fmt.Errorf("persist converted xml: %w", err)
	}
	return nil
}

func buildRequestBody(r io.Reader) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("input", "input")
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, "", err
	}

	for flag, value := range requestFlags {
		if err := writer.WriteField(flag, value); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}
