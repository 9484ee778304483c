package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ens-api/metrics"
	"ens-api/types"
	"ens-api/utils"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New().WithField("module", "subgraph")

const defaultTimeout = time.Second * 10

const domainsOwnedByQuery = `query domainsOwnedBy($owner: String!) {
  domains(where: {owner: $owner}) {
    id
    name
    labelName
    labelhash
    expiryDate
  }
}`

const domainInfoQuery = `query domainInfo($name: String!) {
  domains(where: {name: $name}) {
    id
    name
    labelName
    labelhash
    expiryDate
  }
}`

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   *types.SubgraphDomains `json:"data"`
	Errors []graphqlError         `json:"errors"`
}

// Client queries the ENS subgraph. Results are passed through as reported, nothing is cached.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(cfg *types.SubgraphConfig) (*Client, error) {
	if cfg.Url == "" {
		return nil, fmt.Errorf("no subgraph url configured")
	}
	timeout := defaultTimeout
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("error parsing subgraph timeout %q: %w", cfg.Timeout, err)
		}
		timeout = d
	}
	return &Client{
		url:        cfg.Url,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// DomainsOwnedBy lists the domains whose registry owner is owner
func (c *Client) DomainsOwnedBy(ctx context.Context, owner string) (*types.SubgraphDomains, error) {
	return c.query(ctx, "domainsOwnedBy", domainsOwnedByQuery, map[string]interface{}{
		"owner": strings.ToLower(owner),
	})
}

// DomainInfo returns the domain entity of name, with or without the .eth suffix
func (c *Client) DomainInfo(ctx context.Context, name string) (*types.SubgraphDomains, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !utils.IsValidEnsDomain(name) {
		name = utils.EnsFullName(name)
	}
	return c.query(ctx, "domainInfo", domainInfoQuery, map[string]interface{}{
		"name": name,
	})
}

func (c *Client) query(ctx context.Context, name, query string, variables map[string]interface{}) (result *types.SubgraphDomains, err error) {
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
			utils.LogError(err, "subgraph query failed", 0, map[string]interface{}{"query": name})
		}
		metrics.SubgraphQueriesTotal.WithLabelValues(name, status).Inc()
	}()

	body, err := json.Marshal(&graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("error encoding %v query: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating %v request: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error querying subgraph for %v: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("subgraph returned %v for %v: %s", resp.Status, name, msg)
	}

	res := &graphqlResponse{}
	if err := json.NewDecoder(resp.Body).Decode(res); err != nil {
		return nil, fmt.Errorf("error decoding %v response: %w", name, err)
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("subgraph error for %v: %v", name, res.Errors[0].Message)
	}
	if res.Data == nil {
		return nil, fmt.Errorf("subgraph returned no data for %v", name)
	}
	if res.Data.Domains == nil {
		res.Data.Domains = []types.SubgraphDomain{}
	}

	logger.WithFields(logrus.Fields{"query": name, "domains": len(res.Data.Domains), "duration": time.Since(start)}).Debug("subgraph query done")
	return res.Data, nil
}
