package tagparse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrHTTPStatus = errors.New("unexpected http status")

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36"

type Request struct {
	RequestHeader  http.Header
	ResponseHeader http.Header
	Data           []byte
	Payload        []byte
	Url            string
	Method         string
}

// WebClient downloads documents and parses them from memory, which gives the
// parser the seekable input it needs.
type WebClient struct {
	client    *http.Client
	jar       *ExtJar
	userAgent string
}

func NewClient() *WebClient {
	jar := NewJar()
	return &WebClient{
		client: &http.Client{
			Jar: jar,
		},
		jar:       jar,
		userAgent: defaultUserAgent,
	}
}

func (c *WebClient) SetUserAgent(agent string) {
	c.userAgent = agent
}

func (c *WebClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

func (c *WebClient) GetHttpClient() *http.Client {
	return c.client
}

func (c *WebClient) Jar() *ExtJar {
	return c.jar
}

func (c *WebClient) LoadCookies(filename string) error {
	return c.jar.Load(filename)
}

func (c *WebClient) PersistCookies(filename string) error {
	return c.jar.Save(filename)
}

func (c *WebClient) prepare(ctx context.Context, r *Request) (*http.Request, error) {
	method := r.Method

	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader

	if r.Payload != nil {
		body = bytes.NewReader(r.Payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.Url, body)

	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	mergeHeaderFields(r.RequestHeader, req.Header)

	return req, nil
}

func mergeHeaderFields(src http.Header, dst http.Header) {
	if src == nil || dst == nil {
		return
	}

	for key, values := range src {
		for _, v := range values {
			dst.Add(key, v)
		}
	}
}

// FetchSync performs the request and stores the body and response headers
// in it. A non-2xx status is reported as ErrHTTPStatus.
func (c *WebClient) FetchSync(ctx context.Context, request *Request) error {
	req, err := c.prepare(ctx, request)

	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	request.ResponseHeader = resp.Header

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s", ErrHTTPStatus, request.Url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return fmt.Errorf("read %s: %w", request.Url, err)
	}

	request.Data = data

	return nil
}

func (c *WebClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	request := &Request{Url: url}

	if err := c.FetchSync(ctx, request); err != nil {
		return nil, err
	}

	return request.Data, nil
}

func (c *WebClient) FetchParse(ctx context.Context, url string, opts ...Option) (*Parser, error) {
	data, err := c.Fetch(ctx, url)

	if err != nil {
		return nil, err
	}

	return ParseBytes(data, opts...)
}
