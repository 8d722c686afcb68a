package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ivaohu/ivao-tracker/models"
	"github.com/rs/zerolog"
)

// ErrUnavailable means the feed could not be fetched this cycle: transport
// failure or a non-200 status. The tracker treats it as "skip this cycle",
// never as "everyone disconnected".
var ErrUnavailable = errors.New("whazzup feed unavailable")

// Client fetches whazzup snapshots over HTTP.
type Client struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

func NewClient(url string, log zerolog.Logger) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log.With().Str("component", "feed").Logger(),
	}
}

// Fetch retrieves one snapshot. Any failure is wrapped in ErrUnavailable.
func (c *Client) Fetch() (*models.Whazzup, error) {
	resp, err := c.client.Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status code %d", ErrUnavailable, resp.StatusCode)
	}

	var wz models.Whazzup
	if err := json.NewDecoder(resp.Body).Decode(&wz); err != nil {
		return nil, fmt.Errorf("%w: decoding body: %v", ErrUnavailable, err)
	}

	c.log.Debug().Int("atcs", len(wz.ATCs)).Int("pilots", len(wz.Pilots)).Msg("fetched whazzup feed")
	return &wz, nil
}
