package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/glamease/glamease/config"
)

// FallbackReply is returned when the model backend is disabled or
// unreachable so the chat widget always answers something useful.
const FallbackReply = "Sorry, I'm having trouble answering right now. " +
	"Please call us or use the contact form and we'll get back to you shortly."

const systemPrompt = `You are GlamEase's friendly salon assistant.
GlamEase provides doorstep beauty services: salon for women, kids grooming,
home spa and beauty products. Answer briefly and helpfully about services,
pricing and bookings. If a customer wants to book, point them to the booking
page. Never invent prices; suggest contacting the salon for exact quotes.`

// Client talks to a Gemini style generateContent endpoint.
type Client struct {
	cfg   config.AssistantConfig
	store *SessionStore
}

func NewClient(cfg config.AssistantConfig, store *SessionStore) *Client {
	return &Client{cfg: cfg, store: store}
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *generateContent  `json:"system_instruction,omitempty"`
	Contents          []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat answers one user message in the context of the sid session,
// recording both turns in the store. Backend failures degrade to
// FallbackReply with a nil error so the HTTP handler never surfaces
// model outages to the visitor.
func (c *Client) Chat(ctx context.Context, sid, userText string) (string, error) {
	history, err := c.store.History(sid)
	if err != nil {
		zap.L().Warn("chat history load failed", zap.String("session", sid), zap.Error(err))
		history = nil
	}

	reply, err := c.generate(ctx, history, userText)
	if err != nil {
		zap.L().Warn("assistant backend failed", zap.String("session", sid), zap.Error(err))
		reply = FallbackReply
	}

	now := time.Now()
	if err := c.store.Append(sid,
		Message{Role: "user", Content: userText, SentAt: now},
		Message{Role: "model", Content: reply, SentAt: now},
	); err != nil {
		zap.L().Warn("chat history save failed", zap.String("session", sid), zap.Error(err))
	}
	return reply, nil
}

// Reset clears the sid session history.
func (c *Client) Reset(sid string) error {
	return c.store.Clear(sid)
}

// History returns the stored turns for sid.
func (c *Client) History(sid string) ([]Message, error) {
	return c.store.History(sid)
}

func (c *Client) generate(ctx context.Context, history []Message, userText string) (string, error) {
	if !c.cfg.Enabled || c.cfg.ApiKey == "" {
		return "", errors.New("assistant backend disabled")
	}

	contents := make([]generateContent, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, generateContent{
			Role:  m.Role,
			Parts: []generatePart{{Text: m.Content}},
		})
	}
	contents = append(contents, generateContent{
		Role:  "user",
		Parts: []generatePart{{Text: userText}},
	})

	url := fmt.Sprintf("%s/%s:generateContent?key=%s",
		strings.TrimRight(c.cfg.Endpoint, "/"), c.cfg.Model, c.cfg.ApiKey)

	var resp generateResponse
	err := gout.POST(url).
		WithContext(ctx).
		SetTimeout(30 * time.Second).
		SetJSON(generateRequest{
			SystemInstruction: &generateContent{Parts: []generatePart{{Text: systemPrompt}}},
			Contents:          contents,
		}).
		BindJSON(&resp).
		Do()
	if err != nil {
		return "", errors.Wrap(err, "assistant request")
	}
	if resp.Error != nil {
		return "", errors.Errorf("assistant backend error: %s", resp.Error.Message)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("assistant returned no candidates")
	}
	return strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text), nil
}
