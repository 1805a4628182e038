package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cast"
)

// HTTPClient implements Client against a PostgREST endpoint
// (GET/POST/PATCH/DELETE on /rest/v1/{table}?col=eq.value).
type HTTPClient struct {
	client *resty.Client
	apiKey string
	tokens TokenSource
}

// NewHTTPClient returns a client for baseURL. apiKey is sent as the apikey
// header and as the bearer token when tokens yields none.
func NewHTTPClient(baseURL, apiKey string, tokens TokenSource) *HTTPClient {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if tokens == nil {
		tokens = StaticToken("")
	}
	return &HTTPClient{client: c, apiKey: apiKey, tokens: tokens}
}

func (c *HTTPClient) Select(ctx context.Context, table string, f Filter) ([]Row, error) {
	q := query(f)
	q.Set("select", "*")

	resp, err := c.request(ctx, table, q).Get(path(table))
	if err != nil {
		return nil, unavailable("select", table, err)
	}
	if err := check(resp); err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}

	var rows []Row
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("select %s: %w: %w", table, ErrDecode, err)
	}
	return rows, nil
}

func (c *HTTPClient) Insert(ctx context.Context, table string, row Row) error {
	resp, err := c.request(ctx, table, nil).
		SetHeader("Prefer", "return=minimal").
		SetBody(row).
		Post(path(table))
	if err != nil {
		return unavailable("insert", table, err)
	}
	if err := check(resp); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (c *HTTPClient) Update(ctx context.Context, table string, row Row, f Filter) error {
	if len(f.Conds) == 0 {
		return fmt.Errorf("update %s: %w", table, ErrUnfiltered)
	}
	resp, err := c.request(ctx, table, query(f)).
		SetHeader("Prefer", "return=minimal").
		SetBody(row).
		Patch(path(table))
	if err != nil {
		return unavailable("update", table, err)
	}
	if err := check(resp); err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

func (c *HTTPClient) Delete(ctx context.Context, table string, f Filter) error {
	if len(f.Conds) == 0 {
		return fmt.Errorf("delete %s: %w", table, ErrUnfiltered)
	}
	resp, err := c.request(ctx, table, query(f)).Delete(path(table))
	if err != nil {
		return unavailable("delete", table, err)
	}
	if err := check(resp); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

func (c *HTTPClient) request(ctx context.Context, table string, q url.Values) *resty.Request {
	token := c.tokens.Token()
	if token == "" {
		token = c.apiKey
	}

	r := c.client.R().SetContext(ctx)
	if c.apiKey != "" {
		r.SetHeader("apikey", c.apiKey)
	}
	if token != "" {
		r.SetAuthToken(token)
	}
	if q != nil {
		r.SetQueryParamsFromValues(q)
	}
	return r
}

func path(table string) string {
	return "/rest/v1/" + url.PathEscape(table)
}

func query(f Filter) url.Values {
	q := url.Values{}
	for _, c := range f.Conds {
		q.Add(c.Column, "eq."+cast.ToString(c.Value))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// postgrestError is the PostgREST error body.
type postgrestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func check(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	var body postgrestError
	if err := json.Unmarshal(resp.Body(), &body); err != nil || body.Message == "" {
		body.Message = strings.TrimSpace(resp.String())
		if body.Message == "" {
			body.Message = http.StatusText(resp.StatusCode())
		}
	}
	return NewError(resp.StatusCode(), body.Code, body.Message)
}
