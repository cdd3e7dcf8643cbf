package fun

import (
	"context"
	"fmt"

	"github.com/gurkult/gurkbot/pkg/command"
)

var ballReplies = []string{
	"It is certain.",
	"It is decidedly so.",
	"Without a doubt.",
	"Yes, definitely.",
	"You may rely on it.",
	"As I see it, yes.",
	"Most likely.",
	"Outlook good.",
	"Yes.",
	"Signs point to yes.",
	"Reply hazy, try again.",
	"Ask again later.",
	"Better not tell you now.",
	"Cannot predict now.",
	"Concentrate and ask again.",
	"Don't count on it.",
	"My reply is no.",
	"My sources say no.",
	"Outlook not so good.",
	"Very doubtful.",
}

// Magic8Ball returns the setup function of the magic 8 ball module.
func Magic8Ball(intn func(n int) int) command.SetupFunc {
	return func(m *command.Module) error {
		m.AddCommand(&command.Command{
			Name:        "8ball",
			Aliases:     []string{"8b"},
			Usage:       "<question>",
			Description: "Ask any question to the bot.",
			Handler: func(ctx context.Context, req *command.Request) error {
				if len(req.Args) == 0 {
					return command.UserErrorf("Usage: `8ball <question>`")
				}

				text := fmt.Sprintf(":8ball: **My answer:** %s\nYou asked: %s", ballReplies[intn(len(ballReplies))], req.Raw)

				_, err := req.Reply(ctx, text)

				return err
			},
		})

		return nil
	}
}
