package clash

import (
	"context"
	"encoding/json"

	"github.com/dumptruck-ai/agents/tools"
)

// ClanDetailsRequest is the input of the get_clan_details tool.
type ClanDetailsRequest struct {
	ClanTag string `json:"clan_tag" jsonschema:"title=Clan Tag,description=The clan tag including the leading # (e.g. #2Y0J0PJ88)."`
}

// PlayerDetailsRequest is the input of the get_player_details tool.
type PlayerDetailsRequest struct {
	PlayerTag string `json:"player_tag" jsonschema:"title=Player Tag,description=The player tag including the leading # (e.g. #8QU8J9LP)."`
}

// Tools returns the Clash of Clans tool set backed by the given gateway.
func Tools(client *Client) []tools.ITool {
	return []tools.ITool{
		tools.NewFunc("get_clan_details",
			"Get details about a Clash of Clans clan by its tag, including members, war record, and league.",
			func(ctx context.Context, req *ClanDetailsRequest) (json.RawMessage, error) {
				return client.Get(ctx, "/clans/"+escapeTag(req.ClanTag))
			}),
		tools.NewFunc("get_player_details",
			"Get details about a Clash of Clans player by their tag, including trophies, town hall level, and troops.",
			func(ctx context.Context, req *PlayerDetailsRequest) (json.RawMessage, error) {
				return client.Get(ctx, "/players/"+escapeTag(req.PlayerTag))
			}),
	}
}
