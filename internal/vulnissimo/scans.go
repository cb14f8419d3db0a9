package vulnissimo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/theopenlane/httpsling"

	"github.com/vulnissimo/vulnissimo/internal/types"
)

// maxErrorBodySize bounds how much of an error response is read
const maxErrorBodySize = 64 * 1024

// scanCreateRequest is the request body for starting a scan
type scanCreateRequest struct {
	Target string `json:"target"`
}

// errorResponse is the error body returned by the API
type errorResponse struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

// validationIssue is one entry of a request validation error
type validationIssue struct {
	Msg string `json:"msg"`
}

// CreateScan starts a scan on target
func (c *Client) CreateScan(ctx context.Context, target string) (*types.ScanCreated, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, newAPIError(0, ErrEmptyTarget, "Could not start scan: %s.", ErrEmptyTarget)
	}

	requester := httpsling.MustNew(
		httpsling.URL(c.scansURL()),
		httpsling.Post(),
		httpsling.JSONBody(scanCreateRequest{Target: target}),
		httpsling.WithHTTPClient(c.httpClient),
	)

	var created types.ScanCreated
	if err := c.send(ctx, requester, "start scan", &created); err != nil {
		return nil, err
	}

	log.Debug().Str("scan_id", created.ID.String()).Str("target", target).Msg("scan created")

	return &created, nil
}

// FetchScanResult retrieves the current result of the scan identified by id
func (c *Client) FetchScanResult(ctx context.Context, id uuid.UUID) (*types.ScanResult, error) {
	requester := httpsling.MustNew(
		httpsling.URL(c.scanURL(id)),
		httpsling.Get(),
		httpsling.WithHTTPClient(c.httpClient),
	)

	var result types.ScanResult
	if err := c.send(ctx, requester, "fetch scan result", &result); err != nil {
		return nil, err
	}

	log.Debug().Str("scan_id", id.String()).Str("status", string(result.ScanInfo.Status)).Int("progress", result.ScanInfo.Progress).Msg("scan result fetched")

	return &result, nil
}

// send performs the request and decodes a successful response into into
func (c *Client) send(ctx context.Context, requester *httpsling.Requester, action string, into any) error {
	resp, err := requester.SendWithContext(ctx)
	if err != nil {
		return newAPIError(0, fmt.Errorf("%w: %v", ErrRequestFailed, err), "Could not %s: the Vulnissimo API is unreachable (%v).", action, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp.StatusCode, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode),
			"Could not %s: %s", action, errorMessage(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return newAPIError(resp.StatusCode, fmt.Errorf("%w: %v", ErrDecodeResponse, err), "Could not %s: the Vulnissimo API returned an unreadable response.", action)
	}

	return nil
}

// errorMessage extracts the service's explanation from an error response
func errorMessage(resp *http.Response) string {
	fallback := fmt.Sprintf("the Vulnissimo API responded with %s.", resp.Status)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil || len(body) == 0 {
		return fallback
	}

	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fallback
	}

	var detail string
	if err := json.Unmarshal(parsed.Detail, &detail); err == nil && detail != "" {
		return detail
	}

	var issues []validationIssue
	if err := json.Unmarshal(parsed.Detail, &issues); err == nil && len(issues) > 0 {
		msgs := make([]string, 0, len(issues))
		for _, issue := range issues {
			if issue.Msg != "" {
				msgs = append(msgs, issue.Msg)
			}
		}

		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	if parsed.Message != "" {
		return parsed.Message
	}

	return fallback
}
