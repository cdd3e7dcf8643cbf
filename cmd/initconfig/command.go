package initconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ettle/strcase"
	"github.com/gurkult/gurkbot/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const (
	flagConfigFile      = "config-file"
	flagOwner           = "owner"
	flagOffTopicChannel = "off-topic-channel"
	flagForce           = "force"
)

// Command returns the init-config command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "init-config",
		Usage: "Write a guild configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfigFile,
				Usage:   "TOML file to write",
				EnvVars: []string{strcase.ToSNAKE(flagConfigFile)},
				Value:   "guild.toml",
			},
			&cli.StringSliceFlag{
				Name:  flagOwner,
				Usage: "ID of a user allowed to run administrative commands",
			},
			&cli.StringFlag{
				Name:  flagOffTopicChannel,
				Usage: "ID of the channel renamed by the off-topic rotation",
			},
			&cli.BoolFlag{
				Name:  flagForce,
				Usage: "Overwrite an existing file",
			},
		},
		Action: initConfig,
	}
}

func initConfig(ctx *cli.Context) error {
	path := ctx.String(flagConfigFile)

	if !ctx.Bool(flagForce) {
		_, err := os.Stat(path)
		if err == nil {
			return fmt.Errorf("%q already exists, use --%s to overwrite it", path, flagForce)
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %q: %w", path, err)
		}
	}

	guild := config.Guild{
		Owners: ctx.StringSlice(flagOwner),
		OffTopic: config.OffTopic{
			ChannelID: ctx.String(flagOffTopicChannel),
			Schedule:  config.DefaultOffTopicSchedule,
		},
	}

	if err := guild.Write(path); err != nil {
		return fmt.Errorf("write guild config: %w", err)
	}

	log.Info().Str("path", path).Int("owners", len(guild.Owners)).Msg("Guild configuration written")

	return nil
}
