package fun

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/gurkult/gurkbot/pkg/command"
	"github.com/gurkult/gurkbot/pkg/store"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/skwair/harmony/discord"
)

const (
	// OffTopicPrefix prefixes the name of the off-topic channel.
	OffTopicPrefix = "ot｜"

	minOffTopicNameLength = 2
	maxOffTopicNameLength = 96

	fuzzRatio      = 80
	maxSimilar     = 5
	maxReplyLength = 1900
	rotateTimeout  = 30 * time.Second
)

var (
	// ErrOffTopicNameLength is returned for names too short or too long.
	ErrOffTopicNameLength = errors.New("channel name must be between 2 and 96 chars long")
	// ErrOffTopicNameCharacters is returned for names with forbidden characters.
	ErrOffTopicNameCharacters = errors.New("channel name must only consist of alphanumeric characters, minus signs or apostrophes")

	errNoOffTopicNames = errors.New("no off-topic name to choose from")
)

// Discord channel names cannot hold these characters: use look-alikes.
var offTopicLookAlikes = strings.NewReplacer("!", "ǃ", "?", "？", "'", "’", "`", "’")

// OffTopicStore is capable of storing off-topic names.
type OffTopicStore interface {
	ListOffTopicNames(ctx context.Context) ([]store.OffTopicName, error)
	AddOffTopicName(ctx context.Context, name string) error
	RemoveOffTopicName(ctx context.Context, name string) error
	IncrementOffTopicNameUses(ctx context.Context, name string) error
}

// Channels is capable of reading, renaming and writing to channels.
type Channels interface {
	ChannelName(ctx context.Context, channelID string) (string, error)
	RenameChannel(ctx context.Context, channelID, name string) error
	SendMessage(ctx context.Context, channelID, text string) (*discord.Message, error)
}

// OffTopicConfig configures the off-topic module.
type OffTopicConfig struct {
	// ChannelID is the off-topic channel. The channel is never renamed when empty.
	ChannelID string
	// Schedule is the cron expression, in UTC, of the renames.
	Schedule string
	IsOwner  func(userID string) bool
	// Float64 returns a random number in [0.0, 1.0).
	Float64 func() float64
}

type offTopic struct {
	store    OffTopicStore
	channels Channels
	cfg      OffTopicConfig
}

// OffTopic returns the setup function of the module managing the off-topic
// channel names.
func OffTopic(s OffTopicStore, channels Channels, cfg OffTopicConfig) command.SetupFunc {
	o := &offTopic{store: s, channels: channels, cfg: cfg}

	return func(m *command.Module) error {
		if cfg.ChannelID != "" {
			c := cron.New(cron.WithLocation(time.UTC))

			if _, err := c.AddFunc(cfg.Schedule, o.scheduledRotate); err != nil {
				return fmt.Errorf("schedule off-topic rotation %q: %w", cfg.Schedule, err)
			}

			c.Start()
			m.OnUnload(func() { <-c.Stop().Done() })
		} else {
			log.Warn().Msg("No off-topic channel configured, its name will not rotate")
		}

		check := command.Restrict(cfg.IsOwner)

		m.AddCommand(&command.Command{
			Name:        "otn",
			Aliases:     []string{"offtopicnames"},
			Description: "Manage the off-topic channel names.",
			Subcommands: []*command.Command{
				{
					Name:        "add",
					Aliases:     []string{"a"},
					Usage:       "<name>",
					Description: "Add an off-topic channel name.",
					Check:       check,
					Handler:     o.add,
				},
				{
					Name:        "delete",
					Aliases:     []string{"d", "r", "remove"},
					Usage:       "<name>",
					Description: "Delete an off-topic channel name.",
					Check:       check,
					Handler:     o.delete,
				},
				{
					Name:        "find",
					Aliases:     []string{"f", "s", "search"},
					Usage:       "<name>",
					Description: "Find similar off-topic channel names.",
					Check:       check,
					Handler:     o.find,
				},
				{
					Name:        "list",
					Aliases:     []string{"l"},
					Description: "List all off-topic channel names.",
					Check:       check,
					Handler:     o.list,
				},
			},
		})

		return nil
	}
}

func (o *offTopic) add(ctx context.Context, req *command.Request) error {
	name, err := NormalizeOffTopicName(req.Raw)
	if err != nil {
		return command.UserErrorf(":x: Invalid name: %v.", err)
	}

	names, err := o.names(ctx)
	if err != nil {
		return err
	}

	if err = o.store.AddOffTopicName(ctx, name); err != nil {
		if errors.As(err, &store.AlreadyExistsError{}) {
			return command.UserErrorf(":x: `%s` already exists!", name)
		}

		return fmt.Errorf("add off-topic name: %w", err)
	}

	text := fmt.Sprintf("`%s` has been added :ok_hand:", name)

	if similar := findSimilar(names, name); len(similar) > 0 {
		if len(similar) > maxSimilar {
			similar = similar[:maxSimilar]
		}

		text += "\n" + numbered("Similar existing names :name_badge:", similar)
	}

	_, err = req.Reply(ctx, text)

	return err
}

func (o *offTopic) delete(ctx context.Context, req *command.Request) error {
	name, err := NormalizeOffTopicName(req.Raw)
	if err != nil {
		return command.UserErrorf(":x: Invalid name: %v.", err)
	}

	if err = o.store.RemoveOffTopicName(ctx, name); err != nil {
		if !errors.As(err, &store.NotFoundError{}) {
			return fmt.Errorf("remove off-topic name: %w", err)
		}

		text := fmt.Sprintf(":x: `%s` not found!", name)

		names, listErr := o.names(ctx)
		if listErr != nil {
			return listErr
		}

		if similar := findSimilar(names, name); len(similar) > 0 {
			text += "\n" + numbered("Did you mean one of the following?", similar)
		}

		return &command.UserError{Message: text}
	}

	_, err = req.Reply(ctx, fmt.Sprintf("`%s` has been deleted :white_check_mark:", name))

	return err
}

func (o *offTopic) find(ctx context.Context, req *command.Request) error {
	name, err := NormalizeOffTopicName(req.Raw)
	if err != nil {
		return command.UserErrorf(":x: Invalid name: %v.", err)
	}

	names, err := o.names(ctx)
	if err != nil {
		return err
	}

	text := numbered(fmt.Sprintf(":mag_right: Search result: %s", name), findSimilar(names, name))

	_, err = req.Reply(ctx, text)

	return err
}

func (o *offTopic) list(ctx context.Context, req *command.Request) error {
	names, err := o.names(ctx)
	if err != nil {
		return err
	}

	_, err = req.Reply(ctx, numbered("Off Topic Names", names))

	return err
}

func (o *offTopic) names(ctx context.Context) ([]string, error) {
	otNames, err := o.store.ListOffTopicNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list off-topic names: %w", err)
	}

	names := make([]string, 0, len(otNames))
	for _, n := range otNames {
		names = append(names, n.Name)
	}

	return names, nil
}

func (o *offTopic) scheduledRotate() {
	ctx, cancel := context.WithTimeout(context.Background(), rotateTimeout)
	defer cancel()

	if err := o.rotate(ctx); err != nil {
		log.Error().Err(err).Msg("Unable to rotate off-topic channel name")
	}
}

// rotate renames the off-topic channel after one of the least used names.
func (o *offTopic) rotate(ctx context.Context) error {
	names, err := o.store.ListOffTopicNames(ctx)
	if err != nil {
		return fmt.Errorf("list off-topic names: %w", err)
	}

	current, err := o.channels.ChannelName(ctx, o.cfg.ChannelID)
	if err != nil {
		return fmt.Errorf("get off-topic channel name: %w", err)
	}

	name, ok := chooseOffTopicName(names, strings.TrimPrefix(current, OffTopicPrefix), o.cfg.Float64)
	if !ok {
		return errNoOffTopicNames
	}

	if err = o.store.IncrementOffTopicNameUses(ctx, name); err != nil {
		return fmt.Errorf("increment off-topic name uses: %w", err)
	}

	if err = o.channels.RenameChannel(ctx, o.cfg.ChannelID, OffTopicPrefix+name); err != nil {
		return fmt.Errorf("rename off-topic channel: %w", err)
	}

	if _, err = o.channels.SendMessage(ctx, o.cfg.ChannelID, fmt.Sprintf("**New Off-Topic Name!**\n%s", name)); err != nil {
		log.Error().Err(err).Msg("Unable to send message")
	}

	log.Info().Str("name", name).Msg("Off-topic channel name changed")

	return nil
}

// chooseOffTopicName picks a name other than current. A use count is drawn
// first, with weight 1/(uses+1), then a name among those with that count.
func chooseOffTopicName(names []store.OffTopicName, current string, random func() float64) (string, bool) {
	byUses := make(map[int][]string)

	for _, n := range names {
		if n.Name == current {
			continue
		}

		byUses[n.Uses] = append(byUses[n.Uses], n.Name)
	}

	if len(byUses) == 0 {
		return "", false
	}

	uses := make([]int, 0, len(byUses))
	for u := range byUses {
		uses = append(uses, u)
	}

	sort.Ints(uses)

	var total float64
	for _, u := range uses {
		total += weight(u)
	}

	chosen := uses[len(uses)-1]

	r := random() * total
	for _, u := range uses {
		r -= weight(u)
		if r < 0 {
			chosen = u
			break
		}
	}

	candidates := byUses[chosen]
	sort.Strings(candidates)

	i := int(random() * float64(len(candidates)))
	if i >= len(candidates) {
		i = len(candidates) - 1
	}

	return candidates[i], true
}

func weight(uses int) float64 {
	return 1 / float64(uses+1)
}

// NormalizeOffTopicName turns raw into a valid channel name.
func NormalizeOffTopicName(raw string) (string, error) {
	name := strings.Join(strings.Fields(strings.ToLower(raw)), "-")

	if n := utf8.RuneCountInString(name); n < minOffTopicNameLength || n > maxOffTopicNameLength {
		return "", ErrOffTopicNameLength
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune("!?'`-", r) {
			return "", ErrOffTopicNameCharacters
		}
	}

	return offTopicLookAlikes.Replace(name), nil
}

// findSimilar returns the names close to name, keeping their order.
func findSimilar(names []string, name string) []string {
	var similar []string

	for _, n := range names {
		if strings.Contains(n, name) || strings.Contains(name, n) || ratio(n, name) > fuzzRatio {
			similar = append(similar, n)
		}
	}

	return similar
}

// ratio returns the similarity of a and b from 0 to 100.
func ratio(a, b string) int {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}

	return 100 * (total - levenshtein.ComputeDistance(a, b)) / total
}

func numbered(title string, lines []string) string {
	if len(lines) == 0 {
		return fmt.Sprintf("**%s**\n:x: 0 Matches found.", title)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "**%s**\n", title)

	for i, line := range lines {
		entry := fmt.Sprintf("%d. %s\n", i+1, line)
		if b.Len()+len(entry) > maxReplyLength {
			fmt.Fprintf(&b, "... and %d more", len(lines)-i)
			break
		}

		b.WriteString(entry)
	}

	return b.String()
}
