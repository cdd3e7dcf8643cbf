package bot

import (
	"context"
	"math/rand"

	"github.com/gurkult/gurkbot/pkg/command"
	"github.com/gurkult/gurkbot/pkg/config"
	"github.com/gurkult/gurkbot/pkg/exts/backend"
	"github.com/gurkult/gurkbot/pkg/exts/fun"
	"github.com/gurkult/gurkbot/pkg/exts/utils"
	"github.com/gurkult/gurkbot/pkg/extension"
	"github.com/gurkult/gurkbot/pkg/reminder"
	"github.com/gurkult/gurkbot/pkg/store"
	"github.com/rs/zerolog/log"
	"github.com/skwair/harmony/discord"
)

// Identifiers of the compiled-in modules.
const (
	ModuleExtensionManager = backend.ExtensionManagerID
	ModuleReminder         = "exts.utils.reminder"
	ModuleCoinflip         = "exts.fun.coinflip"
	ModuleMagic8Ball       = "exts.fun.magic_8ball"
	ModuleOffTopic         = "exts.fun.off_topic"
)

// Config configures the bot.
type Config struct {
	Prefix string
	Guild  config.Guild
}

// Storer is capable of interacting with the store.
type Storer interface {
	CreateReminder(ctx context.Context, reminder store.Reminder) (store.Reminder, error)
	ListReminders(ctx context.Context) ([]store.Reminder, error)
	RemoveReminder(ctx context.Context, id int64) error

	ListOffTopicNames(ctx context.Context) ([]store.OffTopicName, error)
	AddOffTopicName(ctx context.Context, name string) error
	RemoveOffTopicName(ctx context.Context, name string) error
	IncrementOffTopicNameUses(ctx context.Context, name string) error
}

// Discord is capable of interacting with Discord.
type Discord interface {
	SendMessage(ctx context.Context, channelID, text string) (*discord.Message, error)
	ChannelName(ctx context.Context, channelID string) (string, error)
	RenameChannel(ctx context.Context, channelID, name string) error
}

// Bot represents the Discord bot.
type Bot struct {
	router    *command.Router
	manager   *extension.Manager
	reminders *reminder.Service
}

// New creates a bot able to load the modules of the given registry.
// Registry entries without a compiled-in module are dropped.
func New(cfg Config, d Discord, s Storer, registry extension.Registry) *Bot {
	b := &Bot{
		router:    command.NewRouter(cfg.Prefix, d),
		reminders: reminder.New(s, d),
	}

	for id, setup := range b.modules(cfg, d, s) {
		b.router.Register(id, setup)
	}

	registry, dropped := registry.Filter(b.router.Has)
	for _, id := range dropped {
		log.Warn().Str("module", id).Msg("No module compiled in for extension, skipping")
	}

	b.manager = extension.NewManager(registry, b.router, ModuleExtensionManager)

	return b
}

// CompiledRegistry returns the registry of every compiled-in module.
func CompiledRegistry() extension.Registry {
	return extension.NewRegistry(
		ModuleExtensionManager,
		ModuleReminder,
		ModuleCoinflip,
		ModuleMagic8Ball,
		ModuleOffTopic,
	)
}

func (b *Bot) modules(cfg Config, d Discord, s Storer) map[string]command.SetupFunc {
	return map[string]command.SetupFunc{
		// The manager only exists once every module is registered.
		ModuleExtensionManager: func(m *command.Module) error {
			return backend.ExtensionManager(b.manager, cfg.Guild.IsOwner)(m)
		},
		ModuleReminder:   utils.Reminder(b.reminders),
		ModuleCoinflip:   fun.Coinflip(rand.Intn),
		ModuleMagic8Ball: fun.Magic8Ball(rand.Intn),
		ModuleOffTopic: fun.OffTopic(s, d, fun.OffTopicConfig{
			ChannelID: cfg.Guild.OffTopic.ChannelID,
			Schedule:  cfg.Guild.OffTopic.Schedule,
			IsOwner:   cfg.Guild.IsOwner,
			Float64:   rand.Float64,
		}),
	}
}

// Start loads every extension of the registry.
func (b *Bot) Start() extension.Report {
	report := b.manager.BatchApply(extension.Load, b.manager.Registry().IDs())

	for id, detail := range report.Failures() {
		log.Error().Str("module", id).Str("detail", detail).Msg("Unable to load extension")
	}

	log.Info().
		Int("loaded", report.Succeeded()).
		Int("total", report.Total()).
		Msg("Extensions loaded")

	return report
}

// Stop unloads every loaded extension.
func (b *Bot) Stop() {
	for _, id := range b.router.Loaded() {
		if err := b.router.Unload(id); err != nil {
			log.Error().Err(err).Str("module", id).Msg("Unable to unload extension")
		}
	}
}

// Router returns the command router of the bot.
func (b *Bot) Router() *command.Router { return b.router }

// Reminders returns the reminder service of the bot.
func (b *Bot) Reminders() *reminder.Service { return b.reminders }
