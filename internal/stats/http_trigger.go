package stats

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/retry"
)

// HTTPTrigger calls the remote statistics function:
// POST <url>?tenant_id=<id> with an optional bearer key. Any 2xx counts as
// success; transient failures are retried.
type HTTPTrigger struct {
	url    string
	key    string
	http   *http.Client
	policy retry.Policy
}

func NewHTTPTrigger(rawURL, key string, policy retry.Policy) *HTTPTrigger {
	return &HTTPTrigger{
		url:    strings.TrimSpace(rawURL),
		key:    strings.TrimSpace(key),
		http:   &http.Client{Timeout: 5 * time.Second},
		policy: policy,
	}
}

func (t *HTTPTrigger) Refresh(ctx context.Context, tenantID uint) error {
	if t.url == "" {
		return errors.New("statistics function url not configured")
	}

	u, err := url.Parse(t.url)
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("tenant_id", strconv.FormatUint(uint64(tenantID), 10))
	u.RawQuery = q.Encode()
	target := u.String()

	return retry.Do(ctx, t.policy, func(ctx context.Context) error {
		return t.post(ctx, target)
	})
}

func (t *HTTPTrigger) post(ctx context.Context, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, nil)
	if err != nil {
		return err
	}
	if t.key != "" {
		req.Header.Set("Authorization", "Bearer "+t.key)
	}

	resp, err := t.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &retry.StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return nil
}
