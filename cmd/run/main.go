package run

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gurkult/gurkbot/pkg/bot"
	"github.com/gurkult/gurkbot/pkg/config"
	"github.com/gurkult/gurkbot/pkg/extension"
	"github.com/gurkult/gurkbot/pkg/handlers"
	"github.com/gurkult/gurkbot/pkg/store"
	"github.com/rs/zerolog/log"
	"github.com/skwair/harmony"
	"github.com/urfave/cli/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func run(ctx *cli.Context) error {
	guild, err := config.Load(ctx.String(flagConfigFile))
	if err != nil {
		return fmt.Errorf("load guild config: %w", err)
	}

	registry := bot.CompiledRegistry()
	if dir := ctx.String(flagExtensionsDir); dir != "" {
		registry, err = extension.Discover(dir)
		if err != nil {
			return fmt.Errorf("discover extensions: %w", err)
		}
	}

	discordClient, err := harmony.NewClient(ctx.String(flagBotToken))
	if err != nil {
		return fmt.Errorf("create discord client: %w", err)
	}

	botUser, err := discordClient.User("@me").Get(ctx.Context)
	if err != nil {
		return fmt.Errorf("get bot user: %w", err)
	}

	opts := options.Client().
		ApplyURI(ctx.String(flagMongoURI)).
		SetSocketTimeout(2 * time.Second).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.NewClient(opts)
	if err != nil {
		return fmt.Errorf("create MongoDB client: %w", err)
	}

	if err = client.Connect(ctx.Context); err != nil {
		return fmt.Errorf("connect db: %w", err)
	}

	defer func() { _ = client.Disconnect(ctx.Context) }()

	s := store.New(client, ctx.String(flagMongoDatabase))

	if err = s.Bootstrap(ctx.Context); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	d := bot.NewClient(discordClient)

	b := bot.New(bot.Config{Prefix: ctx.String(flagBotPrefix), Guild: guild}, d, s, registry)

	h := handlers.New(b.Router(), b.Reminders(), d, *botUser)

	discordClient.OnMessageCreate(h.MessageCreate)
	discordClient.OnMessageReactionAdd(h.ReactionAdd)

	b.Start()
	defer b.Stop()

	if err = discordClient.Connect(ctx.Context); err != nil {
		return fmt.Errorf("discord client connect: %w", err)
	}

	log.Info().Msg("Bot is now running. Press CTRL-C to exit.")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Info().Int64("dispatched", b.Router().Dispatched()).Msg("Shutting down")

	return nil
}
