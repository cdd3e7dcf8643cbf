package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/gurkult/gurkbot/cmd/initconfig"
	"github.com/gurkult/gurkbot/cmd/run"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded, using the environment")
	}

	rand.Seed(time.Now().UnixNano())

	app := &cli.App{
		Name:  "Gurkbot",
		Usage: "Discord bot of the Gurkult community",
		Commands: []*cli.Command{
			run.Command(),
			initconfig.Command(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("Error during execution")

		return
	}
}
