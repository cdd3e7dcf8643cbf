package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
)

// Guild holds the constants of the guild the bot runs in.
type Guild struct {
	// Owners are the IDs of the users allowed to run administrative commands.
	Owners   []string `toml:"owners"`
	OffTopic OffTopic `toml:"off_topic"`
}

// OffTopic configures the off-topic channel rotation.
type OffTopic struct {
	ChannelID string `toml:"channel_id"`
	// Schedule is a cron expression evaluated in UTC.
	Schedule string `toml:"schedule"`
}

// DefaultOffTopicSchedule renames the off-topic channel at midnight and noon.
const DefaultOffTopicSchedule = "0 0,12 * * *"

// Load reads the guild configuration from the TOML file at path.
// A missing file yields the default configuration.
func Load(path string) (Guild, error) {
	guild := Guild{OffTopic: OffTopic{Schedule: DefaultOffTopicSchedule}}

	if path == "" {
		return guild, nil
	}

	meta, err := toml.DecodeFile(path, &guild)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("path", path).Msg("Guild config file not found, using defaults")
			return guild, nil
		}

		return Guild{}, fmt.Errorf("decode %q: %w", path, err)
	}

	for _, key := range meta.Undecoded() {
		log.Warn().Str("key", key.String()).Msg("Unknown guild config key")
	}

	if guild.OffTopic.Schedule == "" {
		guild.OffTopic.Schedule = DefaultOffTopicSchedule
	}

	return guild, nil
}

// IsOwner returns whether the given user is an owner of the guild.
func (g Guild) IsOwner(userID string) bool {
	for _, id := range g.Owners {
		if id == userID {
			return true
		}
	}

	return false
}

// Write encodes the configuration to the TOML file at path.
func (g Guild) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}

	if err = toml.NewEncoder(f).Encode(g); err != nil {
		_ = f.Close()

		return fmt.Errorf("encode %q: %w", path, err)
	}

	return f.Close()
}
