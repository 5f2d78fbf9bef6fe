package rpc

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to a Fuel node over its GraphQL HTTP API.
type Client struct {
	url    string
	client *http.Client
}

func NewClient(rawURL string, timeout time.Duration) *Client {
	return &Client{
		url: NormalizeURL(rawURL),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Dial opens a client and verifies the endpoint responds by fetching the
// chain name. A fresh connection is made per call; nothing is pooled
// across endpoints.
func Dial(ctx context.Context, rawURL string, timeout time.Duration) (Provider, error) {
	c := NewClient(rawURL, timeout)
	if _, err := c.ChainName(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// NormalizeURL accepts bare hosts like "mainnet.fuel.network" and fills in
// the https scheme and the /v1/graphql path when missing.
func NormalizeURL(raw string) string {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/v1/graphql"
	}
	return u.String()
}

// URL returns the normalized endpoint URL.
func (c *Client) URL() string {
	return c.url
}

func (c *Client) query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	reqBody := graphQLRequest{
		Query:     query,
		Variables: variables,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var gqlResp graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		return fmt.Errorf("graphql error: %s", gqlResp.Errors[0].Message)
	}

	if out != nil {
		if err := json.Unmarshal(gqlResp.Data, out); err != nil {
			return fmt.Errorf("unmarshal data: %w", err)
		}
	}

	return nil
}

func (c *Client) ChainName(ctx context.Context) (string, error) {
	var out struct {
		Chain struct {
			Name string `json:"name"`
		} `json:"chain"`
	}
	if err := c.query(ctx, `query { chain { name } }`, nil, &out); err != nil {
		return "", err
	}
	return out.Chain.Name, nil
}

func (c *Client) LatestBlockHeight(ctx context.Context) (uint64, error) {
	var out struct {
		Chain struct {
			LatestBlock struct {
				Height string `json:"height"`
			} `json:"latestBlock"`
		} `json:"chain"`
	}
	if err := c.query(ctx, `query { chain { latestBlock { height } } }`, nil, &out); err != nil {
		return 0, err
	}
	return parseU64(out.Chain.LatestBlock.Height)
}

func (c *Client) LatestGasPrice(ctx context.Context) (uint64, error) {
	var out struct {
		LatestGasPrice struct {
			GasPrice string `json:"gasPrice"`
		} `json:"latestGasPrice"`
	}
	if err := c.query(ctx, `query { latestGasPrice { gasPrice } }`, nil, &out); err != nil {
		return 0, err
	}
	return parseU64(out.LatestGasPrice.GasPrice)
}

const transactionsQuery = `
query Transactions($first: Int, $after: String, $last: Int, $before: String) {
  transactions(first: $first, after: $after, last: $last, before: $before) {
    edges {
      cursor
      node {
        id
        status { __typename }
      }
    }
  }
}`

func (c *Client) GetTransactions(ctx context.Context, req PaginationRequest) (*TransactionPage, error) {
	variables := map[string]interface{}{}
	switch req.Direction {
	case PageBackward:
		variables["last"] = req.Results
		if req.Cursor != nil {
			variables["before"] = *req.Cursor
		}
	default:
		variables["first"] = req.Results
		if req.Cursor != nil {
			variables["after"] = *req.Cursor
		}
	}

	var out struct {
		Transactions struct {
			Edges []struct {
				Cursor string `json:"cursor"`
				Node   struct {
					ID     string `json:"id"`
					Status struct {
						TypeName string `json:"__typename"`
					} `json:"status"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"transactions"`
	}
	if err := c.query(ctx, transactionsQuery, variables, &out); err != nil {
		return nil, err
	}

	page := &TransactionPage{}
	for _, edge := range out.Transactions.Edges {
		page.Results = append(page.Results, TransactionSummary{
			ID:     edge.Node.ID,
			Status: strings.TrimSuffix(edge.Node.Status.TypeName, "Status"),
		})
		cursor := edge.Cursor
		page.Cursor = &cursor
	}
	return page, nil
}

const contractSlotQuery = `
query ContractSlotValues($id: ContractId!, $slots: [Bytes32!]!) {
  contractSlotValues(contractId: $id, storageSlots: $slots) {
    key
    value
  }
}`

// ContractSlotValue reads a single storage slot of a deployed contract.
func (c *Client) ContractSlotValue(ctx context.Context, contractID, slot string) ([]byte, error) {
	variables := map[string]interface{}{
		"id":    contractID,
		"slots": []string{slot},
	}

	var out struct {
		ContractSlotValues []struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		} `json:"contractSlotValues"`
	}
	if err := c.query(ctx, contractSlotQuery, variables, &out); err != nil {
		return nil, err
	}

	if len(out.ContractSlotValues) == 0 {
		return nil, fmt.Errorf("slot %s not set on contract %s", slot, contractID)
	}

	raw := strings.TrimPrefix(out.ContractSlotValues[0].Value, "0x")
	value, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode slot value: %w", err)
	}
	return value, nil
}

func parseU64(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return v, nil
}
