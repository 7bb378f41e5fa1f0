package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/grantpilot/cli/internal/client/models"
	"github.com/grantpilot/cli/internal/common"
)

const (
	uploadPath = "/api/stage1/upload"
	healthPath = "/health"

	// fileFieldName is the multipart field the backend expects for each file.
	fileFieldName = "files"
)

// HTTPClient talks to the backend over HTTP/JSON. One Upload call produces
// exactly one multipart POST carrying the whole batch.
type HTTPClient struct {
	baseURL string
	tokens  TokenProvider
	http    *http.Client
}

func NewHTTPClient(baseURL string, tokens TokenProvider, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Upload(ctx context.Context, files []*models.UploadCandidate) ([]models.UploadedFile, error) {
	if len(files) == 0 {
		return nil, common.ErrNothingToUpload
	}

	body, contentType, err := buildMultipartBody(files)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, body)
	if err != nil {
		return nil, fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// fall through to decode
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, resp.Status)
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %s: %s", ErrUnavailable, resp.Status, strings.TrimSpace(string(b)))
	}

	var payload models.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}

	return payload.UploadedFiles, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	}
	return nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) authorize(ctx context.Context, req *http.Request) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("obtaining access token: %w", err)
	}
	req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	return nil
}

// buildMultipartBody assembles the whole batch into one multipart form,
// streaming each file from disk into its "files" part. The body is fully
// buffered: batches are bounded by MaxFiles*MaxSizeMB, which keeps this
// well within reason for a CLI.
func buildMultipartBody(files []*models.UploadCandidate) (io.Reader, string, error) {
	b := &bytes.Buffer{}
	w := multipart.NewWriter(b)

	for _, f := range files {
		part, err := w.CreateFormFile(fileFieldName, f.Name)
		if err != nil {
			return nil, "", fmt.Errorf("creating form part for %s: %w", f.Name, err)
		}

		src, err := os.Open(f.Path)
		if err != nil {
			return nil, "", fmt.Errorf("opening %s: %w", f.Path, err)
		}
		_, err = io.Copy(part, src)
		src.Close()
		if err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", f.Path, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing multipart body: %w", err)
	}

	return b, w.FormDataContentType(), nil
}
