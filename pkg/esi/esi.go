// Package esi resolves character and corporation names through the public
// ESI HTTP API. Results are cached for the life of the client.
package esi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/logging"
	"github.com/arthur-debert/wrench/pkg/types"
)

const (
	DefaultBaseURL   = "https://esi.evetech.net/latest"
	DefaultUserAgent = "wrench/1.0"
	DefaultTimeout   = 10 * time.Second

	portraitURLFormat = "https://images.evetech.net/characters/%d/portrait?size=64"
)

// Config holds the client settings
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Character is the public record of a character
type Character struct {
	CharacterID     int64    `json:"character_id"`
	Name            string   `json:"name"`
	CorporationID   int32    `json:"corporation_id"`
	CorporationName string   `json:"corporation_name,omitempty"`
	AllianceID      *int32   `json:"alliance_id,omitempty"`
	Birthday        string   `json:"birthday"`
	SecurityStatus  *float64 `json:"security_status,omitempty"`
}

// Corporation is the public record of a corporation
type Corporation struct {
	CorporationID int32  `json:"corporation_id"`
	Name          string `json:"name"`
	Ticker        string `json:"ticker"`
	MemberCount   int32  `json:"member_count"`
	AllianceID    *int32 `json:"alliance_id,omitempty"`
}

// Client is an ESI client with read-through caches
type Client struct {
	cfg    Config
	client *http.Client

	charMu sync.RWMutex
	chars  map[int64]Character

	corpMu sync.RWMutex
	corps  map[int32]Corporation
}

// NewClient returns a client; zero fields of cfg take the defaults
func NewClient(cfg Config) *Client {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		chars:  make(map[int64]Character),
		corps:  make(map[int32]Corporation),
	}
}

// GetCharacter returns the character with the given id. The corporation name
// is filled in when the corporation lookup succeeds.
func (c *Client) GetCharacter(ctx context.Context, id int64) (Character, error) {
	c.charMu.RLock()
	cached, ok := c.chars[id]
	c.charMu.RUnlock()
	if ok {
		return cached, nil
	}

	var ch Character
	if err := c.get(ctx, fmt.Sprintf("/characters/%d/", id), &ch); err != nil {
		return Character{}, err
	}
	ch.CharacterID = id

	if corp, err := c.GetCorporation(ctx, ch.CorporationID); err == nil {
		ch.CorporationName = corp.Name
	}

	c.charMu.Lock()
	c.chars[id] = ch
	c.charMu.Unlock()
	return ch, nil
}

// GetCorporation returns the corporation with the given id
func (c *Client) GetCorporation(ctx context.Context, id int32) (Corporation, error) {
	c.corpMu.RLock()
	cached, ok := c.corps[id]
	c.corpMu.RUnlock()
	if ok {
		return cached, nil
	}

	var corp Corporation
	if err := c.get(ctx, fmt.Sprintf("/corporations/%d/", id), &corp); err != nil {
		return Corporation{}, err
	}
	corp.CorporationID = id

	c.corpMu.Lock()
	c.corps[id] = corp
	c.corpMu.Unlock()
	return corp, nil
}

// LookupCharacter resolves the details shown next to a character settings entry
func (c *Client) LookupCharacter(ctx context.Context, id int64) (*types.CharacterDetails, error) {
	ch, err := c.GetCharacter(ctx, id)
	if err != nil {
		return nil, err
	}
	return &types.CharacterDetails{
		Name:        ch.Name,
		Corporation: ch.CorporationName,
		PortraitURL: PortraitURL(id),
	}, nil
}

// PortraitURL returns the 64px portrait image of a character
func PortraitURL(id int64) string {
	return fmt.Sprintf(portraitURLFormat, id)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	logger := logging.GetLogger("esi")
	url := c.cfg.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, errors.ErrESIRequest, "failed to create request for %s", url)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, errors.ErrESIRequest, "network error: %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Debug().Str("url", url).Int("status", resp.StatusCode).Str("body", strings.TrimSpace(string(body))).Msg("ESI request failed")
		return errors.Newf(errors.ErrESIRequest, "ESI returned status %d", resp.StatusCode).
			WithDetail("url", url).
			WithDetail("status", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, errors.ErrESIRequest, "failed to parse response from %s", url)
	}
	logger.Trace().Str("url", url).Msg("ESI request ok")
	return nil
}
