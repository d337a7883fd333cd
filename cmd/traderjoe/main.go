package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"traderjoe/internal/3rdparty/openrouter"
	"traderjoe/internal/3rdparty/opentdb"
	"traderjoe/internal/3rdparty/reddit"
	"traderjoe/internal/bot"
	"traderjoe/internal/chat"
	"traderjoe/internal/config"
	"traderjoe/internal/discord"
	"traderjoe/internal/httpx"
	"traderjoe/internal/logx"
	"traderjoe/internal/media"
	"traderjoe/internal/metrics"
	"traderjoe/internal/roulette"
	"traderjoe/internal/server"
	"traderjoe/internal/storage"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var GitCommit = "dev"

func main() {
	var configPath, envFile string
	root := &cobra.Command{
		Use:          "traderjoe",
		Short:        "Discord bot with reddit roulette, trivia, hangman and an AI relay",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFile == "" {
				if _, err := os.Stat(".env"); err == nil {
					envFile = ".env"
				}
			}

			cfg, err := config.Load(configPath, envFile)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return run(ctx, cfg)
		},
	}

	root.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	root.Flags().StringVar(&envFile, "env-file", "", "path to dotenv file (defaults to .env when present)")
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(GitCommit)
		},
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := logx.Configure(cfg.Logging); err != nil {
		return err
	}

	log := logx.Get("main")
	log.Infof("starting traderjoe %s", GitCommit)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewBuildInfoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := metrics.NewPrometheus(registry)

	db, err := storage.Open(cfg.Storage)
	if err != nil {
		return err
	}

	defer func() {
		if err := storage.Close(db); err != nil {
			log.Warnf("close storage: %v", err)
		}
	}()

	deliveries := (*storage.SQL)(db)
	if err := deliveries.Init(ctx); err != nil {
		return errors.Wrap(err, "init storage")
	}

	router := newRouter(ctx, cfg, prom, deliveries)

	discordBot, err := discord.New(cfg.Discord.Token)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Run(ctx, cfg.Server.Port, server.Handler(prom.Handler()))
		cancel()
	}()

	if err := discordBot.Run(ctx, router); err != nil {
		return err
	}

	if err := <-serverErr; err != nil {
		return err
	}

	log.Info("stopped")
	return nil
}

func newRouter(ctx context.Context, cfg *config.Config, prom *metrics.Prometheus, deliveries storage.Log) *chat.Router {
	redditHTTP := cfg.HTTP
	redditHTTP.UserAgent = cfg.Reddit.UserAgent
	redditClient := reddit.NewClient(ctx, httpx.NewClient("reddit.http", redditHTTP), cfg.Reddit)

	mediaHTTP := cfg.HTTP
	mediaHTTP.UserAgent = cfg.Reddit.UserAgent
	resolver := &media.Resolver{
		Fetcher: &media.HTTPFetcher{
			Client:    httpx.NewClient("media.http", mediaHTTP),
			Timeout:   cfg.Roulette.FetchTimeout,
			ReadLimit: cfg.Roulette.MaxImageSize,
		},
		MaxSize: cfg.Roulette.MaxImageSize,
	}

	selector := &roulette.Selector{
		Feed: &roulette.RedditFeed{
			Client:     redditClient,
			Sort:       cfg.Roulette.Sort,
			TimeFilter: cfg.Roulette.TimeFilter,
		},
		Resolver:  resolver,
		Sources:   cfg.Roulette.Sources,
		BatchSize: cfg.Roulette.BatchSize,
		Budget:    cfg.Roulette.Budget,
		Metrics:   prom.WithPrefix("traderjoe"),
	}

	apiHTTP := httpx.NewClient("api.http", cfg.HTTP)
	commands := &bot.Bot{
		Selector:     selector,
		Sources:      cfg.Roulette.Sources,
		MaxImageSize: cfg.Roulette.MaxImageSize,
		AI:           openrouter.NewClient(apiHTTP, cfg.OpenRouter),
		Trivia:       opentdb.NewClient(apiHTTP, ""),
		Deliveries:   deliveries,
		Metrics:      prom.WithPrefix("traderjoe"),
	}

	commandRegistry := commands.Commands()
	return &chat.Router{
		Prefix:        cfg.Discord.Prefix,
		Commands:      commandRegistry,
		Conversations: commands.Conversations,
	}
}
