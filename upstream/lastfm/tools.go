package lastfm

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/dumptruck-ai/agents/tools"
	"github.com/effective-security/x/values"
)

// UserInfoRequest is the input of the get_lastfm_user_info tool.
type UserInfoRequest struct {
	Username string `json:"username" jsonschema:"title=Username,description=The Last.fm username to look up."`
}

// ArtistInfoRequest is the input of the get_artist_info tool.
type ArtistInfoRequest struct {
	ArtistName string `json:"artist_name" jsonschema:"title=Artist Name,description=The name of the artist to look up."`
}

// TrackInfoRequest is the input of the get_track_info tool.
type TrackInfoRequest struct {
	ArtistName string `json:"artist_name" jsonschema:"title=Artist Name,description=Name of the track's artist."`
	TrackName  string `json:"track_name" jsonschema:"title=Track Name,description=Title of the track."`
}

// TopArtistsRequest is the input of the get_lastfm_user_top_artists tool.
// Limit values outside 1-50 are passed through and rejected upstream.
type TopArtistsRequest struct {
	Username string `json:"username" jsonschema:"title=Username,description=The Last.fm username to look up."`
	Period   string `json:"period,omitempty" jsonschema:"title=Period,description=Time period for top artists.,default=overall,enum=overall,enum=7day,enum=1month,enum=3month,enum=6month,enum=12month"`
	Limit    int    `json:"limit,omitempty" jsonschema:"title=Limit,description=Maximum number of artist results (1-50).,default=50"`
	Page     int    `json:"page,omitempty" jsonschema:"title=Page,description=Page number to fetch.,default=1"`
}

// Tools returns the Last.fm tool set backed by the given gateway.
func Tools(client *Client) []tools.ITool {
	return []tools.ITool{
		tools.NewFunc("get_lastfm_user_info",
			"Get public profile information for a Last.fm user.",
			func(ctx context.Context, req *UserInfoRequest) (json.RawMessage, error) {
				return client.Call(ctx, "user.getInfo", map[string]string{
					"user": req.Username,
				})
			}),
		tools.NewFunc("get_lastfm_user_top_artists",
			"Get the top artists listened to by a Last.fm user, with playcount and time period filters (7day, 1month, 3month, 6month, 12month, overall).",
			func(ctx context.Context, req *TopArtistsRequest) (json.RawMessage, error) {
				return client.Call(ctx, "user.getTopArtists", map[string]string{
					"user":   req.Username,
					"period": values.StringsCoalesce(req.Period, "overall"),
					"limit":  strconv.Itoa(values.NumbersCoalesce(req.Limit, 50)),
					"page":   strconv.Itoa(values.NumbersCoalesce(req.Page, 1)),
				})
			}),
		tools.NewFunc("get_artist_info",
			"Get artist metadata from Last.fm.",
			func(ctx context.Context, req *ArtistInfoRequest) (json.RawMessage, error) {
				return client.Call(ctx, "artist.getInfo", map[string]string{
					"artist": req.ArtistName,
				})
			}),
		tools.NewFunc("get_track_info",
			"Get track metadata from Last.fm.",
			func(ctx context.Context, req *TrackInfoRequest) (json.RawMessage, error) {
				return client.Call(ctx, "track.getInfo", map[string]string{
					"artist": req.ArtistName,
					"track":  req.TrackName,
				})
			}),
	}
}
