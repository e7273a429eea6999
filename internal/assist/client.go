// Package assist is a thin client for the storefront chat assistant. The
// completion logic lives upstream; this only relays messages, and in mock
// mode answers locally with a canned reply.
package assist

import (
	"fmt"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"

	"github.com/team2shop/storefront/config"
)

// Message is one turn of the chat exchange
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client relays chat requests to the configured endpoint.
type Client struct {
	cfg config.AssistConfig
}

func NewClient(cfg config.AssistConfig) *Client {
	return &Client{cfg: cfg}
}

// Chat returns the assistant reply for the conversation so far. Mock mode
// needs no network and is deterministic for a given input.
func (c *Client) Chat(messages []Message, productID string) (Message, error) {
	if c.cfg.Mock || c.cfg.Endpoint == "" {
		return c.mockReply(messages, productID), nil
	}

	timeout := time.Duration(c.cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	var reply Message
	req := gout.POST(c.cfg.Endpoint).
		SetJSON(gout.H{"messages": messages, "productId": productID}).
		SetTimeout(timeout).
		BindJSON(&reply)
	if c.cfg.ApiKey != "" {
		req = req.SetHeader(gout.H{"Authorization": "Bearer " + c.cfg.ApiKey})
	}
	if err := req.Do(); err != nil {
		return Message{}, errors.Wrap(err, "assist: chat request")
	}
	if reply.Role == "" {
		reply.Role = "assistant"
	}
	return reply, nil
}

func (c *Client) mockReply(messages []Message, productID string) Message {
	last := ""
	if len(messages) > 0 {
		last = messages[len(messages)-1].Content
	}
	ellipsis := ""
	if len(last) > 140 {
		last, ellipsis = last[:140], "..."
	}
	if productID == "" {
		productID = "n/a"
	}
	content := fmt.Sprintf(
		"Thanks for your message! (Mock Mode)\n\n"+
			"* Product ID: %s\n"+
			"* You asked: %q%s\n\n"+
			"Here are quick tips:\n- Shipping typically 3-5 days.\n- 30-day returns.\n- Need specs? Ask me!\n",
		productID, last, ellipsis,
	)
	return Message{Role: "assistant", Content: content}
}
