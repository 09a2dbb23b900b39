// Package slack is a minimal client for the two Slack Web API methods the
// dashboard consumes: conversations.history and users.info. Every call is a
// single attempt with a short timeout; callers treat failures as empty
// contributions.
package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://slack.com/api"

// Message is one entry from conversations.history. Handle is empty for
// messages without a user (e.g. some bot posts).
type Message struct {
	Handle  string
	Text    string
	TS      string // fractional seconds since epoch, e.g. "1718000000.123456"
	BotName string // bot_profile.name, if any
}

type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		token:   token,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// SetBaseURL points the client at a different API root. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

type historyResponse struct {
	OK       bool   `json:"ok"`
	Error    string `json:"error"`
	Messages []struct {
		User       string `json:"user"`
		Text       string `json:"text"`
		TS         string `json:"ts"`
		BotProfile *struct {
			Name string `json:"name"`
		} `json:"bot_profile"`
	} `json:"messages"`
}

// ConversationsHistory returns up to limit most recent messages in channelID,
// newest first as Slack delivers them.
func (c *Client) ConversationsHistory(ctx context.Context, channelID string, limit int) ([]Message, error) {
	q := url.Values{}
	q.Set("channel", channelID)
	q.Set("limit", strconv.Itoa(limit))

	var resp historyResponse
	if err := c.get(ctx, "conversations.history", q, &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, fmt.Errorf("slack: conversations.history: %s", resp.Error)
	}

	msgs := make([]Message, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		msg := Message{Handle: m.User, Text: m.Text, TS: m.TS}
		if m.BotProfile != nil {
			msg.BotName = m.BotProfile.Name
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

type userInfoResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	User  struct {
		RealName string `json:"real_name"`
		Profile  struct {
			DisplayName string `json:"display_name"`
		} `json:"profile"`
	} `json:"user"`
}

// LookupUser resolves a user handle via users.info. Satisfies
// identity.DirectoryClient.
func (c *Client) LookupUser(ctx context.Context, handle string) (displayName, realName string, err error) {
	q := url.Values{}
	q.Set("user", handle)

	var resp userInfoResponse
	if err := c.get(ctx, "users.info", q, &resp); err != nil {
		return "", "", err
	}
	if !resp.OK {
		return "", "", fmt.Errorf("slack: users.info: %s", resp.Error)
	}
	return resp.User.Profile.DisplayName, resp.User.RealName, nil
}

func (c *Client) get(ctx context.Context, method string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+method+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("slack: %s: unexpected status %d", method, res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
