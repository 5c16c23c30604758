// Package anki is a minimal client for the AnkiConnect add-on, which exposes
// Anki's note and deck operations over a local HTTP endpoint. Every call is a
// JSON POST of an action envelope; the response carries an optional result
// and an optional error string.
package anki

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Lindamust/csv-to-anki/internal/options"
	"github.com/go-resty/resty/v2"
)

// DefaultURL is the endpoint AnkiConnect listens on out of the box.
const DefaultURL = "http://localhost:8765"

// apiVersion is the AnkiConnect protocol version this client speaks.
const apiVersion = 6

// Client talks to one AnkiConnect endpoint. It is safe for concurrent use.
type Client struct {
	url  string
	rest *resty.Client
}

// Option configures a Client.
type Option = options.Option[*Client]

// WithURL points the client at a non-default AnkiConnect endpoint.
func WithURL(url string) Option {
	return options.New(func(c *Client) error {
		if url == "" {
			return fmt.Errorf("anki: endpoint URL must not be empty")
		}
		c.url = url

		return nil
	})
}

// WithTimeout bounds each request round trip.
func WithTimeout(d time.Duration) Option {
	return options.Setter(func(c *Client) {
		c.rest.SetTimeout(d)
	})
}

// WithHTTPClient substitutes the underlying HTTP transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return options.Setter(func(c *Client) {
		c.rest = resty.NewWithClient(hc)
	})
}

// NewClient creates a client for DefaultURL unless WithURL overrides it.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		url:  DefaultURL,
		rest: resty.New().SetTimeout(10 * time.Second),
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}
	c.rest.SetBaseURL(c.url)

	return c, nil
}

// URL returns the endpoint this client targets.
func (c *Client) URL() string {
	return c.url
}

type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type response[R any] struct {
	Result R       `json:"result"`
	Error  *string `json:"error"`
}

// invoke posts one action envelope and unwraps the result. AnkiConnect
// reports failures in-band with HTTP 200, so the envelope's error field is
// the authoritative signal.
func invoke[R any](ctx context.Context, c *Client, action string, params any) (R, error) {
	var out response[R]

	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request{Action: action, Version: apiVersion, Params: params}).
		SetResult(&out).
		Post("")
	if err != nil {
		var zero R
		return zero, fmt.Errorf("anki: %s: %w", action, err)
	}
	if resp.IsError() {
		var zero R
		return zero, fmt.Errorf("anki: %s: unexpected status %s", action, resp.Status())
	}
	if out.Error != nil {
		var zero R
		return zero, &APIError{Action: action, Message: *out.Error}
	}

	return out.Result, nil
}

// Version returns the AnkiConnect API version of the running add-on. It
// doubles as a connectivity probe.
func (c *Client) Version(ctx context.Context) (int, error) {
	return invoke[int](ctx, c, "version", nil)
}

// RequestPermission asks the add-on to whitelist this origin and returns the
// granted/denied verdict.
func (c *Client) RequestPermission(ctx context.Context) (string, error) {
	res, err := invoke[permissionResult](ctx, c, "requestPermission", nil)
	if err != nil {
		return "", err
	}

	return res.Permission, nil
}

type permissionResult struct {
	Permission string `json:"permission"`
}

// CreateDeck creates the named deck and returns its id. Creating a deck that
// already exists is not an error; Anki returns the existing deck's id.
func (c *Client) CreateDeck(ctx context.Context, name string) (int64, error) {
	return invoke[int64](ctx, c, "createDeck", createDeckParams{Deck: name})
}

type createDeckParams struct {
	Deck string `json:"deck"`
}

// DeckNames lists all deck names known to the running Anki instance.
func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	return invoke[[]string](ctx, c, "deckNames", nil)
}

// AddNote creates a single note and returns its id. A note Anki considers a
// duplicate fails with an error satisfying errors.Is(err, ErrDuplicate).
func (c *Client) AddNote(ctx context.Context, note Note) (int64, error) {
	return invoke[int64](ctx, c, "addNote", addNoteParams{Note: note})
}

type addNoteParams struct {
	Note Note `json:"note"`
}

// AddNotes creates notes in bulk. The returned slice is positional: entry i
// is the id of notes[i], or 0 where Anki refused the note (typically a
// duplicate). The length always equals len(notes) on success.
func (c *Client) AddNotes(ctx context.Context, notes []Note) ([]int64, error) {
	res, err := invoke[[]*int64](ctx, c, "addNotes", addNotesParams{Notes: notes})
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(notes))
	for i, id := range res {
		if i >= len(ids) {
			break
		}
		if id != nil {
			ids[i] = *id
		}
	}

	return ids, nil
}

type addNotesParams struct {
	Notes []Note `json:"notes"`
}
