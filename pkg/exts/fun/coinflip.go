package fun

import (
	"context"
	"fmt"
	"strings"

	"github.com/gurkult/gurkbot/pkg/command"
)

var coinSides = [2]string{"heads", "tails"}

// Coinflip returns the setup function of the coin flip module. intn returns
// a random number in [0, n).
func Coinflip(intn func(n int) int) command.SetupFunc {
	return func(m *command.Module) error {
		m.AddCommand(&command.Command{
			Name:        "coinflip",
			Aliases:     []string{"flip", "cf"},
			Usage:       "[heads|tails]",
			Description: "Toss a coin, optionally predicting the outcome.",
			Handler: func(ctx context.Context, req *command.Request) error {
				var guess string

				if len(req.Args) > 0 {
					guess = strings.ToLower(req.Args[0])
					if guess != coinSides[0] && guess != coinSides[1] {
						return command.UserErrorf("Usage: `coinflip [heads|tails]`")
					}
				}

				result := coinSides[intn(len(coinSides))]

				var text string

				switch guess {
				case "":
					text = fmt.Sprintf(":coin: I flipped the coin to `%s`.", result)
				case result:
					text = fmt.Sprintf("You are good at predictions! Your guess was `%s` and I flipped the coin to `%s`.", guess, result)
				default:
					text = fmt.Sprintf("Better luck next time. Your guess was `%s` and I flipped the coin to `%s`.", guess, result)
				}

				_, err := req.Reply(ctx, text)

				return err
			},
		})

		return nil
	}
}
