package chain

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/xanadu-labs/coinbot/pkg/errs"
	"github.com/xanadu-labs/coinbot/pkg/logger"
)

// provider owns the long-lived RPC connection. The websocket endpoint can
// die silently, so the connection is dialed lazily and dropped whenever a
// call through it fails; the next call redials.
type provider struct {
	mu     sync.Mutex
	rpcURL string
	client *ethclient.Client
}

func newProvider(rpcURL string) *provider {
	return &provider{rpcURL: rpcURL}
}

func (p *provider) acquire(ctx context.Context) (*ethclient.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	client, err := ethclient.DialContext(ctx, p.rpcURL)
	if err != nil {
		return nil, errs.Wrap(errs.KindUpstream, "dial chain provider", err)
	}
	logger.InfoCF("chain", "Connected to RPC provider", map[string]any{
		"endpoint": p.rpcURL,
	})
	p.client = client
	return client, nil
}

// invalidate drops the current connection after a call failure.
func (p *provider) invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		p.client.Close()
		p.client = nil
		logger.WarnC("chain", "RPC provider connection dropped, will redial on next call")
	}
}

func (p *provider) close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		p.client.Close()
		p.client = nil
	}
}
