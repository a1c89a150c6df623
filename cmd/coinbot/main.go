package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/xanadu-labs/coinbot/pkg/chain"
	"github.com/xanadu-labs/coinbot/pkg/commands"
	"github.com/xanadu-labs/coinbot/pkg/config"
	"github.com/xanadu-labs/coinbot/pkg/discord"
	"github.com/xanadu-labs/coinbot/pkg/logger"
	"github.com/xanadu-labs/coinbot/pkg/market"
	"github.com/xanadu-labs/coinbot/pkg/store"
)

var (
	version   = "dev"
	gitCommit string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:          "coinbot",
		Short:        "Discord bot for coin prices and linked wallet balances",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(envFile)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", "", "path to a .env file (./.env is loaded by default when present)")
	cmd.AddCommand(newVersionCommand())
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			v := version
			if gitCommit != "" {
				v += fmt.Sprintf(" (git: %s)", gitCommit)
			}
			fmt.Printf("coinbot %s\n", v)
		},
	}
}

func run(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		// Best effort: a missing ./.env is fine, real config may come from
		// the process environment.
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))
	if cfg.LogFile != "" {
		if err := logger.EnableFileLogging(cfg.LogFile); err != nil {
			return err
		}
	}

	accounts, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer accounts.Close()

	chainClient, err := chain.NewClient(cfg.Chain)
	if err != nil {
		return err
	}
	defer chainClient.Close()

	marketClient := market.NewClient(cfg.Market.BaseURL, cfg.Market.DefaultCoinID)

	dispatcher := commands.NewDispatcher(commands.Table(commands.Deps{
		Market:       marketClient,
		Chain:        chainClient,
		Accounts:     accounts,
		NativeSymbol: cfg.Chain.NativeSymbol,
		TokenSymbol:  cfg.Chain.TokenSymbol,
	}))

	bot, err := discord.NewBot(cfg.Discord, dispatcher)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := bot.Start(ctx); err != nil {
		return err
	}

	logger.InfoCF("main", "coinbot is serving", map[string]any{
		"version":      version,
		"default_coin": cfg.Market.DefaultCoinID,
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.InfoC("main", "Shutting down")
	cancel()
	return bot.Stop()
}
