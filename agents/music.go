package agents

import (
	"github.com/cockroachdb/errors"
	"github.com/dumptruck-ai/agents/assistants"
	"github.com/dumptruck-ai/agents/llms"
	"github.com/dumptruck-ai/agents/tools"
	"github.com/dumptruck-ai/agents/upstream/lastfm"
	"github.com/dumptruck-ai/agents/upstream/spotify"
)

const musicSystemPrompt = `You are a music assistant who helps users with queries about artists,
tracks, albums, and music listening habits using Last.fm and Spotify data.

You have access to these tools:

Last.fm tools:
- get_lastfm_user_info: Get user profile information
- get_lastfm_user_top_artists: Get a user's top artists with playcount and time period filters (7day, 1month, 3month, 6month, 12month, overall)
- get_artist_info: Get artist metadata from Last.fm
- get_track_info: Get track metadata from Last.fm

Spotify tools:
- search_artists_by_genre: Search for artists by genre
- search_artist_by_name: Search for artists by name (returns list of matches)
- get_artist_details: Get detailed artist information by Spotify ID (includes followers, popularity, genres)
- get_artist_details_by_name: Get detailed artist information by name (convenience function that searches and returns top match)
- get_artist_top_tracks: Get an artist's top tracks for a specific market
- get_artist_albums: Get an artist's albums and releases

Guidelines:
- Choose the appropriate tool based on the user's query
- Use Last.fm for listening history, scrobble data, and user-specific top artists
- Use Spotify for genre searches, artist discovery, detailed track/album info, and artist statistics (followers, popularity)
- When users ask about artist stats by name, use get_artist_details_by_name for convenience
- Provide clear, helpful responses based on the tool results`

// NewMusicAgent creates an assistant over the Last.fm and Spotify APIs,
// with credentials read from the environment.
func NewMusicAgent(llmModel llms.Model, options ...assistants.Option) (*assistants.Assistant, error) {
	lastfmClient, err := lastfm.NewClient()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create Last.fm client")
	}
	spotifyClient, err := spotify.NewClient()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create Spotify client")
	}
	return NewMusicAgentWithClients(llmModel, lastfmClient, spotifyClient, options...), nil
}

// NewMusicAgentWithClients creates a music assistant over the provided
// upstream clients.
func NewMusicAgentWithClients(llmModel llms.Model, lastfmClient *lastfm.Client, spotifyClient *spotify.Client, options ...assistants.Option) *assistants.Assistant {
	var agentTools []tools.ITool
	agentTools = append(agentTools, lastfm.Tools(lastfmClient)...)
	agentTools = append(agentTools, spotify.Tools(spotifyClient)...)

	return assistants.NewAssistant(llmModel, musicSystemPrompt, options...).
		WithName("Music Assistant").
		WithDescription("Answers questions about artists, tracks, albums and listening habits using Last.fm and Spotify data.").
		WithTools(agentTools...)
}
