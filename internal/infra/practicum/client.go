// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// Config is the configuration for the homework status API client.
type Config struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// Client fetches homework statuses over HTTP.
type Client struct {
	cfg    Config
	client *http.Client
	logger logrus.FieldLogger
}

func NewClient(cfg Config, logger logrus.FieldLogger) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Fetch requests every homework updated since fromDate and returns the
// decoded, not yet validated, body. Numbers are kept as json.Number so the
// validator can tell integers from floats.
func (c *Client) Fetch(ctx context.Context, fromDate int64) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint, nil)
	if err != nil {
		return nil, homework.Wrap(homework.KindTransport, err, "unexpected request error")
	}
	q := req.URL.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "OAuth "+c.cfg.Token)

	c.logger.WithField("from_date", fromDate).Debug("Requesting info from API")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, homework.Wrap(homework.KindTransport, err, "unexpected request error")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, homework.Errorf(homework.KindEndpoint, "endpoint response returned wrong status: %d", resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, homework.Wrap(homework.KindDecode, err, "no valid json found in response")
	}
	if dec.More() {
		return nil, homework.Errorf(homework.KindDecode, "no valid json found in response: trailing data")
	}

	c.logger.Debug("API response has been received")
	return payload, nil
}
