package engine

import (
	"fmt"
	"strings"
)

// AnonymousPlayer is used when a result is shared without a name
const AnonymousPlayer = "Anonymous"

// ShareMessage formats the text a player posts about a game. Only a won game
// reports time and moves; any other game gets the invitation-only text.
func ShareMessage(state *GameState, config *GameConfig, player, url string) string {
	player = strings.TrimSpace(player)
	if player == "" {
		player = AnonymousPlayer
	}

	if state.Status == Won {
		template := config.Messages.Share
		if template == "" {
			template = DefaultConfig().Messages.Share
		}
		return fmt.Sprintf(template, player, state.ElapsedSeconds, state.Turn, url)
	}

	return fmt.Sprintf("%s played Hare & Hounds Escape Game! Can you help the hare escape? Play now at %s", player, url)
}
