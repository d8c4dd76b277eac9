package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/XuaTheGrate/adventure-api/internal/handlers/discord"
	"github.com/XuaTheGrate/adventure-api/internal/mapgraph"
	"github.com/XuaTheGrate/adventure-api/internal/orchestrators/player"
	redisclient "github.com/XuaTheGrate/adventure-api/internal/redis"
	"github.com/XuaTheGrate/adventure-api/internal/repositories/activity"
	itemrepo "github.com/XuaTheGrate/adventure-api/internal/repositories/item"
	playerrepo "github.com/XuaTheGrate/adventure-api/internal/repositories/player"
)

var (
	redisAddr     string
	postgresDSN   string
	discordToken  string
	commandPrefix string
	mapsFile      string
	pollInterval  time.Duration
	adminOwnerIDs []string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the adventure server",
	Long:  `Start the reconciliation loop and the Discord command surface.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().StringVar(&redisAddr, "redis", "localhost:6379", "Redis endpoint for activity timers")
	serverCmd.Flags().StringVar(&postgresDSN, "postgres-dsn", "", "Postgres DSN for player records")
	serverCmd.Flags().StringVar(&discordToken, "discord-token", "", "Discord bot token (empty runs without the chat surface)")
	serverCmd.Flags().StringVar(&commandPrefix, "prefix", discord.DefaultPrefix, "chat command prefix")
	serverCmd.Flags().StringVar(&mapsFile, "maps", "", "JSON file of map definitions (built-in world when empty)")
	serverCmd.Flags().DurationVar(&pollInterval, "poll-interval", player.DefaultPollInterval, "reconciliation loop interval")
	serverCmd.Flags().StringSliceVar(&adminOwnerIDs, "admins", nil, "owner IDs granted the admin flag")
	_ = serverCmd.MarkFlagRequired("postgres-dsn")
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	slog.Info("starting adventure server", "boot_id", uuid.NewString())

	graphCfg := mapgraph.DefaultConfig()
	if mapsFile != "" {
		var err error
		graphCfg, err = mapgraph.LoadFile(mapsFile)
		if err != nil {
			return err
		}
	}
	graph, err := mapgraph.New(graphCfg)
	if err != nil {
		return err
	}
	slog.Info("loaded map graph", "maps", graph.Len())

	client, err := redisclient.NewClient(redisAddr, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err)
		}
	}()

	timers, err := activity.NewRedis(&activity.RedisConfig{Client: client})
	if err != nil {
		return err
	}

	db, err := gorm.Open(postgres.Open(postgresDSN), &gorm.Config{})
	if err != nil {
		return err
	}

	store, err := playerrepo.NewGorm(&playerrepo.GormConfig{DB: db})
	if err != nil {
		return err
	}
	items, err := itemrepo.NewGorm(&itemrepo.GormConfig{DB: db})
	if err != nil {
		return err
	}

	manager, err := player.NewManager(&player.Config{
		Graph:         graph,
		Timers:        timers,
		Store:         store,
		PollInterval:  pollInterval,
		AdminOwnerIDs: adminOwnerIDs,
	})
	if err != nil {
		return err
	}

	go manager.Run(ctx)

	if discordToken != "" {
		handler, err := discord.NewHandler(&discord.Config{
			Manager: manager,
			Graph:   graph,
			Items:   items,
			Prefix:  commandPrefix,
		})
		if err != nil {
			return err
		}

		session, err := discordgo.New("Bot " + discordToken)
		if err != nil {
			return err
		}
		session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent
		handler.Register(session)

		if err := session.Open(); err != nil {
			return err
		}
		defer func() {
			if err := session.Close(); err != nil {
				slog.Warn("failed to close discord session", "error", err)
			}
		}()
		slog.Info("discord gateway connected")
	} else {
		slog.Warn("no discord token provided, running without the chat surface")
	}

	<-ctx.Done()
	slog.Info("adventure server stopped")
	return nil
}
