package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/dumptruck-ai/agents/llmutils"
	"github.com/dumptruck-ai/agents/tools"
	"github.com/dumptruck-ai/agents/upstream"
	"github.com/effective-security/x/values"
	"github.com/tidwall/gjson"
)

// GenreSearchRequest is the input of the search_artists_by_genre tool.
type GenreSearchRequest struct {
	Genre string `json:"genre" jsonschema:"title=Genre,description=Genre string to search for (e.g. rock or synthwave)."`
	Limit int    `json:"limit,omitempty" jsonschema:"title=Limit,description=Maximum number of artist results to request (1-50).,default=20"`
}

// NameSearchRequest is the input of the search_artist_by_name tool.
type NameSearchRequest struct {
	ArtistName string `json:"artist_name" jsonschema:"title=Artist Name,description=Name of the artist to search for (e.g. Metallica or Bon Jovi)."`
	Limit      int    `json:"limit,omitempty" jsonschema:"title=Limit,description=Maximum number of results to return (1-50).,default=10"`
}

// ArtistDetailsRequest is the input of the get_artist_details tool.
type ArtistDetailsRequest struct {
	ArtistID string `json:"artist_id" jsonschema:"title=Artist ID,description=The Spotify artist ID."`
}

// ArtistDetailsByNameRequest is the input of the get_artist_details_by_name
// tool.
type ArtistDetailsByNameRequest struct {
	ArtistName string `json:"artist_name" jsonschema:"title=Artist Name,description=Name of the artist (e.g. Metallica or Bon Jovi)."`
}

// TopTracksRequest is the input of the get_artist_top_tracks tool.
type TopTracksRequest struct {
	ArtistID string `json:"artist_id" jsonschema:"title=Artist ID,description=The Spotify artist ID."`
	Market   string `json:"market,omitempty" jsonschema:"title=Market,description=ISO 3166-1 alpha-2 country code used as the market context.,default=US"`
}

// AlbumsRequest is the input of the get_artist_albums tool.
type AlbumsRequest struct {
	ArtistID      string `json:"artist_id" jsonschema:"title=Artist ID,description=The Spotify artist ID."`
	Limit         int    `json:"limit,omitempty" jsonschema:"title=Limit,description=Maximum number of album items to request (1-50).,default=20"`
	IncludeGroups string `json:"include_groups,omitempty" jsonschema:"title=Include Groups,description=Comma-separated album group filters (album, single, appears_on, compilation).,default=album"`
}

// NotFoundResult is the sentinel returned by get_artist_details_by_name
// when the search matches nothing. It is a result, not an error: the agent
// answers from it instead of failing the turn.
type NotFoundResult struct {
	Found      bool   `json:"found"`
	ArtistName string `json:"artist_name"`
	Message    string `json:"message"`
}

// Tools returns the Spotify tool set backed by the given gateway.
func Tools(client *Client) []tools.ITool {
	return []tools.ITool{
		tools.NewFunc("search_artists_by_genre",
			"Search for Spotify artists associated with a given genre.",
			func(ctx context.Context, req *GenreSearchRequest) (json.RawMessage, error) {
				return client.Get(ctx, "/search", map[string]string{
					"q":     fmt.Sprintf("genre:%q", req.Genre),
					"type":  "artist",
					"limit": strconv.Itoa(values.NumbersCoalesce(req.Limit, 20)),
				})
			}),
		tools.NewFunc("search_artist_by_name",
			"Search for Spotify artists by name, returning a list of matches.",
			func(ctx context.Context, req *NameSearchRequest) (json.RawMessage, error) {
				return client.searchArtistByName(ctx, req.ArtistName, values.NumbersCoalesce(req.Limit, 10))
			}),
		tools.NewFunc("get_artist_details",
			"Get detailed information for a Spotify artist by ID, including followers, popularity, and genres.",
			func(ctx context.Context, req *ArtistDetailsRequest) (json.RawMessage, error) {
				return client.artistDetails(ctx, req.ArtistID)
			}),
		tools.NewFunc("get_artist_details_by_name",
			"Get detailed artist information by name: searches for the artist, selects the top match, and returns full details including followers, popularity, and genres.",
			func(ctx context.Context, req *ArtistDetailsByNameRequest) (json.RawMessage, error) {
				return client.artistDetailsByName(ctx, req.ArtistName)
			}),
		tools.NewFunc("get_artist_top_tracks",
			"Get an artist's top tracks from Spotify for a given market.",
			func(ctx context.Context, req *TopTracksRequest) (json.RawMessage, error) {
				return client.Get(ctx, "/artists/"+req.ArtistID+"/top-tracks", map[string]string{
					"market": values.StringsCoalesce(req.Market, "US"),
				})
			}),
		tools.NewFunc("get_artist_albums",
			"Get a list of albums or releases for a Spotify artist.",
			func(ctx context.Context, req *AlbumsRequest) (json.RawMessage, error) {
				return client.Get(ctx, "/artists/"+req.ArtistID+"/albums", map[string]string{
					"limit":          strconv.Itoa(values.NumbersCoalesce(req.Limit, 20)),
					"include_groups": values.StringsCoalesce(req.IncludeGroups, "album"),
				})
			}),
	}
}

func (c *Client) searchArtistByName(ctx context.Context, artistName string, limit int) (json.RawMessage, error) {
	return c.Get(ctx, "/search", map[string]string{
		"q":     artistName,
		"type":  "artist",
		"limit": strconv.Itoa(limit),
	})
}

func (c *Client) artistDetails(ctx context.Context, artistID string) (json.RawMessage, error) {
	return c.Get(ctx, "/artists/"+artistID, nil)
}

// findArtistID resolves an artist name to the top search match's id,
// returning ErrNotFound when the search matches nothing.
func (c *Client) findArtistID(ctx context.Context, artistName string) (string, error) {
	searchResults, err := c.searchArtistByName(ctx, artistName, 1)
	if err != nil {
		return "", err
	}

	artistID := gjson.GetBytes(searchResults, "artists.items.0.id").String()
	if artistID == "" {
		return "", errors.WithMessagef(upstream.ErrNotFound, "artist %q", artistName)
	}
	return artistID, nil
}

// artistDetailsByName composes a name search (limit=1) with a details
// fetch keyed on the top match's id. A miss is translated into the
// NotFound sentinel result without issuing a details call.
func (c *Client) artistDetailsByName(ctx context.Context, artistName string) (json.RawMessage, error) {
	artistID, err := c.findArtistID(ctx, artistName)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return json.RawMessage(llmutils.ToJSON(&NotFoundResult{
				ArtistName: artistName,
				Message:    "no Spotify artist matched the given name",
			})), nil
		}
		return nil, err
	}
	return c.artistDetails(ctx, artistID)
}
