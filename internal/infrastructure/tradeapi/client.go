package tradeapi

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/peter9889466/midori-view-sub000/internal/domain"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "MidoriView/1.0"

	resultCodeOK = "00"
)

// countryAliases maps request country codes to the codes the statistics API
// actually understands. Unmapped codes pass through unchanged.
var countryAliases = map[string]string{
	"UK": "GB",
}

type Config struct {
	BaseURL    string
	ServiceKey string
	Timeout    time.Duration
	UserAgent  string
}

// Client queries the government open-data trade statistics endpoint. One GET
// per (period, product, country) triple; the response is an XML envelope with
// a result header and per-item export/import dollar totals.
type Client struct {
	cfg    Config
	httpc  *http.Client
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("tradeapi: base url is required")
	}
	if strings.TrimSpace(cfg.ServiceKey) == "" {
		return nil, fmt.Errorf("tradeapi: service key is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return &Client{
		cfg:    cfg,
		httpc:  &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}, nil
}

type envelope struct {
	XMLName xml.Name `xml:"response"`
	Header  struct {
		ResultCode string `xml:"resultCode"`
		ResultMsg  string `xml:"resultMsg"`
	} `xml:"header"`
	Body struct {
		Items []item `xml:"items>item"`
	} `xml:"body"`
}

type item struct {
	CountryCode  string `xml:"cntyCd"`
	ExportDollar int64  `xml:"expDlr"`
	ImportDollar int64  `xml:"impDlr"`
	Year         string `xml:"year"`
}

// Fetch issues one query for the request triple. A transport failure, a
// non-"00" result code or a malformed envelope is a fetch failure for the
// pair; an empty item list is a successful zero outcome.
func (c *Client) Fetch(ctx context.Context, req domain.FetchRequest) (domain.FetchOutcome, error) {
	yymm := strings.ReplaceAll(req.Period, ".", "")

	params := url.Values{}
	params.Set("serviceKey", c.cfg.ServiceKey)
	// Year-month range of length one.
	params.Set("strtYymm", yymm)
	params.Set("endYymm", yymm)
	params.Set("hsSgn", req.ProductCode)
	params.Set("cntyCd", normalizeCountry(req.CountryCode))

	uri := c.cfg.BaseURL + "?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return domain.FetchOutcome{}, fmt.Errorf("tradeapi: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/xml")
	httpReq.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return domain.FetchOutcome{}, fmt.Errorf("tradeapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.FetchOutcome{}, fmt.Errorf("tradeapi: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.FetchOutcome{}, fmt.Errorf("tradeapi: unexpected status %s", resp.Status)
	}

	outcome, err := parseEnvelope(body)
	if err != nil {
		return domain.FetchOutcome{}, err
	}

	c.logger.Debug("trade pair fetched",
		zap.String("period", req.Period),
		zap.String("product", req.ProductCode),
		zap.String("country", req.CountryCode),
		zap.Int64("export", outcome.ExportValue),
		zap.Int64("import", outcome.ImportValue),
	)
	return outcome, nil
}

func parseEnvelope(body []byte) (domain.FetchOutcome, error) {
	var env envelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return domain.FetchOutcome{}, fmt.Errorf("tradeapi: decode envelope: %w", err)
	}
	if env.Header.ResultCode != resultCodeOK {
		return domain.FetchOutcome{}, fmt.Errorf("tradeapi: result %s: %s",
			env.Header.ResultCode, strings.TrimSpace(env.Header.ResultMsg))
	}
	if len(env.Body.Items) == 0 {
		return domain.FetchOutcome{}, nil
	}
	it := env.Body.Items[0]
	return domain.FetchOutcome{
		ExportValue: it.ExportDollar,
		ImportValue: it.ImportDollar,
	}, nil
}

func normalizeCountry(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if mapped, ok := countryAliases[code]; ok {
		return mapped
	}
	return code
}
