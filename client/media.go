package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
)

// UploadMedia uploads an attachment as multipart form data. This is the one
// endpoint that bypasses the JSON body path of the request core; auth and
// error handling behave identically.
func (c *Client) UploadMedia(ctx context.Context, filename string, content io.Reader) (*MediaFile, error) {
	token, err := c.tokens.Token()
	if err != nil || token == "" {
		return nil, ErrAuthRequired
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/media", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseError(respBody, resp.StatusCode)
	}

	var file MediaFile
	decodeLenient(respBody, &file)
	return &file, nil
}

// DeleteMedia removes an uploaded attachment the caller owns.
func (c *Client) DeleteMedia(ctx context.Context, id int64) error {
	return c.do(ctx, requestOptions{
		method:      http.MethodDelete,
		path:        fmt.Sprintf("/media/%d", id),
		requireAuth: true,
	})
}
