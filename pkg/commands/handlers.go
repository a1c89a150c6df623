package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xanadu-labs/coinbot/pkg/chain"
	"github.com/xanadu-labs/coinbot/pkg/errs"
	"github.com/xanadu-labs/coinbot/pkg/format"
	"github.com/xanadu-labs/coinbot/pkg/logger"
	"github.com/xanadu-labs/coinbot/pkg/market"
	"github.com/xanadu-labs/coinbot/pkg/store"
)

type MarketClient interface {
	GetSnapshot(ctx context.Context, coinID string) (*market.Snapshot, error)
	DefaultCoinID() string
}

type ChainClient interface {
	GetNativeBalance(ctx context.Context, address string) (string, error)
	GetTokenBalance(ctx context.Context, address string) (string, error)
}

type AccountStore interface {
	Link(ctx context.Context, userID, address string) error
	FindByUser(ctx context.Context, userID string) (*store.Account, bool, error)
}

// Deps carries the collaborators the handlers run against.
type Deps struct {
	Market       MarketClient
	Chain        ChainClient
	Accounts     AccountStore
	NativeSymbol string
	TokenSymbol  string
}

// Table builds the bot's command table. The returned slice is the sole
// source of both startup registration and runtime dispatch.
func Table(deps Deps) []Command {
	return []Command{
		{
			Definition: Definition{
				Name:        "ping",
				Description: "Replies with Xanadu!",
			},
			Handler: pingHandler(),
		},
		{
			Definition: Definition{
				Name:        "bcoin",
				Description: "Replies with BCOIN token price.",
			},
			Handler: defaultCoinHandler(deps),
		},
		{
			Definition: Definition{
				Name:        "coin",
				Description: "Replies with selected token price.",
				Options: []Option{
					{Name: "input", Description: "Coin name input", Required: true},
				},
			},
			Handler: coinHandler(deps),
		},
		{
			Definition: Definition{
				Name:        "link",
				Description: "Links an user to an address.",
				Options: []Option{
					{Name: "address", Description: "Wallet address input", Required: true},
				},
			},
			Handler: linkHandler(deps),
		},
		{
			Definition: Definition{
				Name:        "wallet",
				Description: "Replies with your linked wallet balances.",
			},
			Handler: walletHandler(deps),
		},
	}
}

func pingHandler() Handler {
	return func(ctx context.Context, ic *Interaction) error {
		return ic.Reply("Xanadu!")
	}
}

func defaultCoinHandler(deps Deps) Handler {
	return func(ctx context.Context, ic *Interaction) error {
		snap, err := deps.Market.GetSnapshot(ctx, "")
		if err != nil {
			return err
		}
		if snap.Pct24h == nil || snap.Pct7d == nil {
			return ic.Reply(fmt.Sprintf("Market data for `%s` is unavailable right now, try again later.",
				deps.Market.DefaultCoinID()))
		}
		return ic.Reply(format.PriceLine(snap.PriceUSD, *snap.Pct24h, *snap.Pct7d))
	}
}

func coinHandler(deps Deps) Handler {
	return func(ctx context.Context, ic *Interaction) error {
		coinID := strings.ToLower(strings.TrimSpace(ic.Option("input")))
		if coinID == "" {
			return ic.ReplyEphemeral("Provide a coin id, e.g. `/coin input:bitcoin`.")
		}

		snap, err := deps.Market.GetSnapshot(ctx, coinID)
		if errs.IsKind(err, errs.KindUnknownCoin) {
			logger.WarnCF("commands", "Unknown coin requested", map[string]any{
				"coin_id": coinID,
				"user_id": ic.UserID,
			})
			return ic.Reply(fmt.Sprintf("Couldn't find a coin with id `%s`.", coinID))
		}
		if err != nil {
			return err
		}
		if snap.Pct24h == nil || snap.Pct7d == nil {
			return ic.Reply(fmt.Sprintf("Market data for `%s` is unavailable right now, try again later.", coinID))
		}

		return ic.Reply(format.CoinHeader(snap.Symbol, snap.Name) + ", " +
			format.PriceLine(snap.PriceUSD, *snap.Pct24h, *snap.Pct7d))
	}
}

func linkHandler(deps Deps) Handler {
	return func(ctx context.Context, ic *Interaction) error {
		address := strings.TrimSpace(ic.Option("address"))
		if err := chain.ValidateAddress(address); err != nil {
			logger.WarnCF("commands", "Rejected malformed wallet address", map[string]any{
				"user_id": ic.UserID,
			})
			return ic.ReplyEphemeral("That doesn't look like a valid wallet address.")
		}

		if err := deps.Accounts.Link(ctx, ic.UserID, address); err != nil {
			return err
		}

		return ic.Reply(fmt.Sprintf("Pupupu! Wallet address %s has been linked to your account!", address))
	}
}

// lookupWallet resolves the invoking user's linked account. Absence is
// reported as a KindNoLinkedWallet error so callers match on the taxonomy
// rather than a bare bool.
func lookupWallet(ctx context.Context, accounts AccountStore, userID string) (*store.Account, error) {
	account, found, err := accounts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.New(errs.KindNoLinkedWallet, fmt.Sprintf("no wallet linked for user %s", userID))
	}
	return account, nil
}

func walletHandler(deps Deps) Handler {
	return func(ctx context.Context, ic *Interaction) error {
		account, err := lookupWallet(ctx, deps.Accounts, ic.UserID)
		if errs.IsKind(err, errs.KindNoLinkedWallet) {
			logger.DebugCF("commands", "Wallet command without linked account", map[string]any{
				"user_id": ic.UserID,
			})
			return ic.ReplyEphemeral("No wallet linked yet. Use `/link` to register one.")
		}
		if err != nil {
			return err
		}

		snap, err := deps.Market.GetSnapshot(ctx, "")
		if err != nil {
			return err
		}

		native, err := deps.Chain.GetNativeBalance(ctx, account.WalletAddress)
		if err != nil {
			return walletChainError(ic, err)
		}
		token, err := deps.Chain.GetTokenBalance(ctx, account.WalletAddress)
		if err != nil {
			return walletChainError(ic, err)
		}

		// Truncated display strings parse fine; precision loss is bounded
		// by the 6-character display budget anyway.
		tokenAmount, parseErr := strconv.ParseFloat(token, 64)
		if parseErr != nil {
			return errs.Wrap(errs.KindUpstream, "unparseable token balance", parseErr)
		}

		return ic.Reply(format.WalletLine(native, deps.NativeSymbol, token, deps.TokenSymbol, tokenAmount*snap.PriceUSD))
	}
}

func walletChainError(ic *Interaction, err error) error {
	if errs.IsKind(err, errs.KindInvalidAddress) {
		logger.WarnCF("commands", "Linked wallet address is invalid", map[string]any{
			"user_id": ic.UserID,
		})
		return ic.ReplyEphemeral("Your linked wallet address is invalid. Re-link it with `/link`.")
	}
	return err
}
