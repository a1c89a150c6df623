// Package chain reads wallet balances: the native balance through an
// account-balance HTTP API, the token balance through an ERC-20 balanceOf
// call on a fixed contract. Balances are returned as display-truncated
// decimal strings.
package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/xanadu-labs/coinbot/pkg/config"
	"github.com/xanadu-labs/coinbot/pkg/errs"
)

const balanceRequestTimeout = 15 * time.Second

const erc20BalanceOfABI = `[
	{"name":"balanceOf","type":"function","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

type Client struct {
	httpClient *http.Client
	provider   *provider
	erc20      abi.ABI

	apiBase   string
	apiKey    string
	chainName string
	token     common.Address
}

func NewClient(cfg config.ChainConfig) (*Client, error) {
	if !common.IsHexAddress(cfg.TokenContract) {
		return nil, fmt.Errorf("invalid token contract address %q", cfg.TokenContract)
	}

	parsed, err := abi.JSON(strings.NewReader(erc20BalanceOfABI))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}

	return &Client{
		httpClient: &http.Client{Timeout: balanceRequestTimeout},
		provider:   newProvider(cfg.RPCURL),
		erc20:      parsed,
		apiBase:    cfg.BalanceAPIBase,
		apiKey:     cfg.BalanceAPIKey,
		chainName:  cfg.Name,
		token:      common.HexToAddress(cfg.TokenContract),
	}, nil
}

// Close releases the provider connection.
func (c *Client) Close() {
	c.provider.close()
}

// ValidateAddress reports a typed error for malformed wallet addresses.
func ValidateAddress(address string) error {
	if !common.IsHexAddress(address) {
		return errs.New(errs.KindInvalidAddress, fmt.Sprintf("malformed wallet address %q", address))
	}
	return nil
}

type nativeBalanceResponse struct {
	Balance string `json:"balance"`
}

// GetNativeBalance fetches the wallet's base-currency balance from the
// account-balance service and renders it as a truncated decimal string.
func (c *Client) GetNativeBalance(ctx context.Context, address string) (string, error) {
	if err := ValidateAddress(address); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/%s/balance?chain=%s", c.apiBase, address, c.chainName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", errs.Wrap(errs.KindUpstream, "build balance request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errs.Wrap(errs.KindUpstream, "balance service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errs.New(errs.KindUpstream, fmt.Sprintf("balance service returned status %d", resp.StatusCode))
	}

	var body nativeBalanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errs.Wrap(errs.KindUpstream, "decode balance response", err)
	}

	raw, ok := new(big.Int).SetString(body.Balance, 10)
	if !ok {
		return "", errs.New(errs.KindUpstream, fmt.Sprintf("balance service returned non-numeric balance %q", body.Balance))
	}

	return TruncateDisplay(FormatUnits(raw)), nil
}

// GetTokenBalance calls balanceOf(address) on the configured contract over
// the shared provider connection.
func (c *Client) GetTokenBalance(ctx context.Context, address string) (string, error) {
	if err := ValidateAddress(address); err != nil {
		return "", err
	}

	client, err := c.provider.acquire(ctx)
	if err != nil {
		return "", err
	}

	data, err := c.erc20.Pack("balanceOf", common.HexToAddress(address))
	if err != nil {
		return "", errs.Wrap(errs.KindUpstream, "encode balanceOf call", err)
	}

	msg := ethereum.CallMsg{To: &c.token, Data: data}
	output, err := client.CallContract(ctx, msg, nil)
	if err != nil {
		c.provider.invalidate()
		return "", errs.Wrap(errs.KindUpstream, "balanceOf call failed", err)
	}

	results, err := c.erc20.Unpack("balanceOf", output)
	if err != nil {
		return "", errs.Wrap(errs.KindUpstream, "decode balanceOf result", err)
	}
	if len(results) != 1 {
		return "", errs.New(errs.KindUpstream, "balanceOf returned unexpected output")
	}
	raw, ok := results[0].(*big.Int)
	if !ok {
		return "", errs.New(errs.KindUpstream, "balanceOf returned unexpected type")
	}

	return TruncateDisplay(FormatUnits(raw)), nil
}
