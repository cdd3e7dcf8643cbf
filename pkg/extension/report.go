package extension

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxDetailLength bounds the error detail shown to users.
const maxDetailLength = 300

// Kind is the kind of failure of an action.
type Kind int

// Failure kinds.
const (
	KindNone Kind = iota
	KindAlreadyLoaded
	KindNotLoaded
	KindInternal
)

// Result is the outcome of an action on one extension.
type Result struct {
	ID      string
	Action  Action
	Success bool
	Kind    Kind
	Detail  string
}

// Message renders the result for users.
func (r Result) Message() string {
	verb := r.Action.String()

	switch {
	case r.Success:
		return fmt.Sprintf(":thumbsup: Extension successfully %sed: `%s`.", verb, r.ID)
	case r.Kind == KindNotLoaded && r.Action == Reload:
		return fmt.Sprintf(":x: Extension `%s` is not loaded, so it was not %sed.", r.ID, verb)
	case r.Kind == KindNotLoaded:
		return fmt.Sprintf(":x: Extension `%s` is not loaded.", r.ID)
	case r.Kind == KindAlreadyLoaded:
		return fmt.Sprintf(":x: Extension `%s` is already loaded.", r.ID)
	default:
		return fmt.Sprintf(":x: Failed to %s extension `%s`:\n```\n%s```", verb, r.ID, truncate(r.Detail, maxDetailLength))
	}
}

// Report is the outcome of a batch of actions.
type Report struct {
	Action  Action
	Results []Result
}

// Total returns the number of extensions in the batch.
func (r Report) Total() int { return len(r.Results) }

// Succeeded returns the number of successful actions.
func (r Report) Succeeded() int {
	var n int

	for _, res := range r.Results {
		if res.Success {
			n++
		}
	}

	return n
}

// Failures returns the error detail of every failed extension.
func (r Report) Failures() map[string]string {
	failures := make(map[string]string)

	for _, res := range r.Results {
		if !res.Success {
			failures[res.ID] = res.Detail
		}
	}

	return failures
}

// String renders the report for users. A single result is rendered alone.
func (r Report) String() string {
	if len(r.Results) == 1 {
		return r.Results[0].Message()
	}

	emoji := ":thumbsup:"
	if r.Succeeded() != r.Total() {
		emoji = ":x:"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s %d / %d extensions %sed.", emoji, r.Succeeded(), r.Total(), r.Action)

	if r.Succeeded() == r.Total() {
		return b.String()
	}

	b.WriteString("\nFailures:```\n")

	for _, res := range r.Results {
		if res.Success {
			continue
		}

		fmt.Fprintf(&b, "%s\n    %s\n", res.ID, truncate(res.Detail, maxDetailLength))
	}

	b.WriteString("```")

	return b.String()
}

// RenderStatus renders the statuses grouped by category.
func RenderStatus(categories map[string][]Status) string {
	if len(categories) == 0 {
		return "There are no extensions installed."
	}

	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}

	sort.Strings(names)

	var b strings.Builder

	for i, name := range names {
		if i > 0 {
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "**%s**\n", titleCase(strings.ReplaceAll(name, "_", " ")))

		for _, status := range categories[name] {
			emoji := ":red_circle:"
			if status.Loaded {
				emoji = ":green_circle:"
			}

			fmt.Fprintf(&b, "%s  %s\n", emoji, status.Name)
		}
	}

	return b.String()
}

func titleCase(s string) string {
	words := strings.Fields(s)

	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}

	return strings.Join(words, " ")
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)

	return string(runes[:max-3]) + "..."
}
