// Package httpstore talks to the room store over its HTTP surface. It
// implements the command gateway's Store port for one caller.
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	http_common "github.com/humanbelnik/planpoker/core/internal/delivery/http/common"
	http_identity_middleware "github.com/humanbelnik/planpoker/core/internal/delivery/http/middleware/identity"
	"github.com/humanbelnik/planpoker/core/internal/model"
	"github.com/humanbelnik/planpoker/core/internal/service/guard"
	"github.com/humanbelnik/planpoker/core/internal/usecase/gateway"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

const apiPrefix = "/api/v1"

// Credentials identify the caller: an account JWT, or else an anonymous
// device token.
type Credentials struct {
	JWT   string
	Token string
}

func (c Credentials) Header() http.Header {
	h := http.Header{}
	if c.JWT != "" {
		h.Set("Authorization", "Bearer "+c.JWT)
	}
	if c.Token != "" {
		h.Set(http_identity_middleware.HeaderUserToken, c.Token)
	}
	return h
}

type Client struct {
	baseURL     string
	credentials Credentials
	httpClient  *http.Client
	logger      *slog.Logger
}

type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(baseURL string, credentials Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		credentials: credentials,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Credentials() Credentials {
	return c.credentials
}

// IssueSession opens an anonymous device session and adopts it for the
// following calls.
func (c *Client) IssueSession(ctx context.Context) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/sessions", nil, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("%w: no token in response", ErrUnexpectedStatus)
	}
	c.credentials.Token = out.Token
	return out.Token, nil
}

// RevokeSession closes the adopted device session.
func (c *Client) RevokeSession(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/sessions", nil, nil)
}

func (c *Client) CreateRoom(ctx context.Context, name string, groupID *string, voteOptions []string) (model.Room, error) {
	body := map[string]any{"name": name}
	if groupID != nil {
		body["group_id"] = *groupID
	}
	if voteOptions != nil {
		body["vote_options"] = voteOptions
	}
	var room model.Room
	err := c.do(ctx, http.MethodPost, "/rooms", body, &room)
	return room, err
}

func (c *Client) Snapshot(ctx context.Context, roomID string) (model.Snapshot, error) {
	var s model.Snapshot
	err := c.do(ctx, http.MethodGet, roomPath(roomID, ""), nil, &s)
	return s, err
}

func (c *Client) Join(ctx context.Context, roomID, name string, avatar *model.Avatar) (model.Participant, error) {
	body := map[string]any{"name": name}
	if avatar != nil {
		body["avatar"] = avatar
	}
	var p model.Participant
	err := c.do(ctx, http.MethodPost, roomPath(roomID, "/participants"), body, &p)
	return p, err
}

func (c *Client) SubmitVote(ctx context.Context, roomID string, vote string) error {
	return c.do(ctx, http.MethodPut, roomPath(roomID, "/me/vote"), map[string]string{"vote": vote}, nil)
}

func (c *Client) StartVoting(ctx context.Context, roomID string, topic *string) error {
	var body any
	if topic != nil {
		body = map[string]string{"topic": *topic}
	}
	return c.do(ctx, http.MethodPost, roomPath(roomID, "/voting/start"), body, nil)
}

func (c *Client) Reveal(ctx context.Context, roomID string) error {
	return c.do(ctx, http.MethodPost, roomPath(roomID, "/voting/reveal"), nil, nil)
}

func (c *Client) Reset(ctx context.Context, roomID string) error {
	return c.do(ctx, http.MethodPost, roomPath(roomID, "/voting/reset"), nil, nil)
}

func (c *Client) Leave(ctx context.Context, roomID string) error {
	return c.do(ctx, http.MethodDelete, roomPath(roomID, "/me"), nil, nil)
}

func (c *Client) UpdateName(ctx context.Context, roomID string, name string) error {
	return c.do(ctx, http.MethodPatch, roomPath(roomID, "/me/name"), map[string]string{"name": name}, nil)
}

func (c *Client) UpdateAvatar(ctx context.Context, roomID string, avatar model.Avatar) error {
	return c.do(ctx, http.MethodPatch, roomPath(roomID, "/me/avatar"), avatar, nil)
}

func (c *Client) ToggleShowVotes(ctx context.Context, roomID string) (bool, error) {
	var out struct {
		ShowVotes bool `json:"show_votes"`
	}
	err := c.do(ctx, http.MethodPost, roomPath(roomID, "/show-votes/toggle"), nil, &out)
	return out.ShowVotes, err
}

func (c *Client) UpdateSettings(ctx context.Context, roomID string, settings model.Settings) (model.Room, error) {
	var room model.Room
	err := c.do(ctx, http.MethodPatch, roomPath(roomID, "/settings"), settings, &room)
	return room, err
}

func (c *Client) Promote(ctx context.Context, roomID string, participantID string) error {
	return c.do(ctx, http.MethodPost, participantPath(roomID, participantID, "/promote"), nil, nil)
}

func (c *Client) Demote(ctx context.Context, roomID string, participantID string) error {
	return c.do(ctx, http.MethodPost, participantPath(roomID, participantID, "/demote"), nil, nil)
}

func (c *Client) Kick(ctx context.Context, roomID string, participantID string) error {
	return c.do(ctx, http.MethodDelete, participantPath(roomID, participantID, ""), nil, nil)
}

func roomPath(roomID, suffix string) string {
	return "/rooms/" + url.PathEscape(roomID) + suffix
}

func participantPath(roomID, participantID, suffix string) string {
	return roomPath(roomID, "/participants/"+url.PathEscape(participantID)+suffix)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, body)
	if err != nil {
		return err
	}
	for k, v := range c.credentials.Header() {
		req.Header[k] = v
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError rebuilds the typed error a failed request stands for: guard
// rejections by reason, everything else by status.
func decodeError(resp *http.Response) error {
	var body http_common.ErrorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)

	if gerr, ok := guard.FromReason(body.Reason, body.Target); ok {
		return gerr
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", gateway.ErrNotFound, body.Message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", gateway.ErrConflict, body.Message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", gateway.ErrValidation, body.Message)
	default:
		return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, body.Message)
	}
}
