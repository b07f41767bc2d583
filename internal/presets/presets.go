// Package presets fetches named configuration documents from a remote
// repository. The repository publishes a JSON index of files, each with a
// name and a direct download URL.
package presets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "spotshell/1.0"

// maxDocumentSize bounds how much of a preset document is read.
const maxDocumentSize = 10 << 20 // 10 MiB

// PresetFile is one entry in the remote repository's index.
type PresetFile struct {
	Name        string `json:"name"`
	DownloadURL string `json:"downloadUrl"`
}

type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a preset repository client rooted at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// List enumerates the repository's preset files.
func (c *Client) List(ctx context.Context) ([]PresetFile, error) {
	body, err := c.get(ctx, c.baseURL+"/index.json")
	if err != nil {
		return nil, err
	}

	var files []PresetFile
	if err := json.Unmarshal(body, &files); err != nil {
		return nil, fmt.Errorf("failed to parse preset index: %w", err)
	}
	return files, nil
}

// Fetch downloads one preset document by its direct URL.
func (c *Client) Fetch(ctx context.Context, downloadURL string) ([]byte, error) {
	return c.get(ctx, downloadURL)
}

// FetchByName looks a preset up in the index and downloads it. Relative
// download URLs are resolved against the repository base.
func (c *Client) FetchByName(ctx context.Context, name string) ([]byte, error) {
	files, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if f.Name != name {
			continue
		}
		url := f.DownloadURL
		if !strings.Contains(url, "://") {
			url = c.baseURL + "/" + strings.TrimLeft(url, "/")
		}
		return c.get(ctx, url)
	}
	return nil, fmt.Errorf("preset %q not found in repository", name)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return body, nil
}
