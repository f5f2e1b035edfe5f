package telegram

import (
	"context"
	"strings"

	"team_status_bot/internal/app"
)

// textStep consumes free text. It reports handled=false to pass the text on.
type textStep func(ctx context.Context, a app.Actor, text string) (app.Outcome, bool, error)

// isCommand reports whether text is a slash command. Registered commands have
// their own handlers, so any command seen here is unknown.
func isCommand(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "/")
}

// routeText offers text to each step in order and stops at the first one that
// handles it. Commands never reach a step, so they are not saved as a status
// and do not change an active conversation.
func routeText(ctx context.Context, a app.Actor, text string, steps ...textStep) (app.Outcome, bool, error) {
	if isCommand(text) {
		return app.Outcome{}, false, nil
	}
	for _, step := range steps {
		out, handled, err := step(ctx, a, text)
		if handled {
			return out, true, err
		}
	}
	return app.Outcome{}, false, nil
}
