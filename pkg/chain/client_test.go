package chain

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xanadu-labs/coinbot/pkg/config"
	"github.com/xanadu-labs/coinbot/pkg/errs"
)

const testWallet = "0x1111111111111111111111111111111111111111"

func testConfig(apiBase string) config.ChainConfig {
	return config.ChainConfig{
		RPCURL:         "ws://127.0.0.1:0", // never dialed in these tests
		BalanceAPIBase: apiBase,
		BalanceAPIKey:  "test-key",
		Name:           "bsc",
		TokenContract:  "0x00e1656e45f18ec6747f5a8496fd39b50b38396d",
		NativeSymbol:   "BNB",
		TokenSymbol:    "BCOIN",
	}
}

func TestNewClientRejectsBadContract(t *testing.T) {
	cfg := testConfig("http://unused")
	cfg.TokenContract = "not-an-address"
	_, err := NewClient(cfg)
	require.Error(t, err)
}

func TestValidateAddress(t *testing.T) {
	require.NoError(t, ValidateAddress(testWallet))

	err := ValidateAddress("0xnope")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindInvalidAddress))
}

func TestGetNativeBalance(t *testing.T) {
	var gotPath, gotChain, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotChain = r.URL.Query().Get("chain")
		gotKey = r.Header.Get("X-API-Key")
		w.Write([]byte(`{"balance":"1234567000000000000"}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)
	defer client.Close()

	balance, err := client.GetNativeBalance(context.Background(), testWallet)
	require.NoError(t, err)

	assert.Equal(t, "1.2345", balance)
	assert.Equal(t, "/"+testWallet+"/balance", gotPath)
	assert.Equal(t, "bsc", gotChain)
	assert.Equal(t, "test-key", gotKey)
}

func TestGetNativeBalanceInvalidAddress(t *testing.T) {
	client, err := NewClient(testConfig("http://unused"))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.GetNativeBalance(context.Background(), "bogus")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindInvalidAddress))
}

func TestGetNativeBalanceUpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.GetNativeBalance(context.Background(), testWallet)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindUpstream))
}

func TestGetNativeBalanceGarbageBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"balance":"lots"}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.GetNativeBalance(context.Background(), testWallet)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindUpstream))
}

func TestGetTokenBalanceInvalidAddressSkipsDial(t *testing.T) {
	client, err := NewClient(testConfig("http://unused"))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.GetTokenBalance(context.Background(), "bogus")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindInvalidAddress))
}
