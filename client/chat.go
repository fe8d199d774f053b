package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListConversations returns the caller's message threads, most recently
// active first.
func (c *Client) ListConversations(ctx context.Context) ([]Conversation, error) {
	var conversations []Conversation
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        "/conversations",
		requireAuth: true,
		out:         &conversations,
	})
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// GetConversation fetches a single thread.
func (c *Client) GetConversation(ctx context.Context, id int64) (*Conversation, error) {
	var conversation Conversation
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        fmt.Sprintf("/conversations/%d", id),
		requireAuth: true,
		out:         &conversation,
	})
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// ListMessages returns a page of messages in a thread, newest first. The
// before cursor is a message ID; zero fetches the latest page.
func (c *Client) ListMessages(ctx context.Context, conversationID int64, before int64, limit int) ([]Message, error) {
	q := url.Values{}
	if before > 0 {
		q.Set("before", strconv.FormatInt(before, 10))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var messages []Message
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        fmt.Sprintf("/conversations/%d/messages", conversationID),
		query:       q,
		requireAuth: true,
		out:         &messages,
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage posts a message into a thread.
func (c *Client) SendMessage(ctx context.Context, conversationID int64, text string, mediaID *int64) (*Message, error) {
	body := map[string]any{"text": text}
	if mediaID != nil {
		body["media_id"] = *mediaID
	}

	var message Message
	err := c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/conversations/%d/messages", conversationID),
		body:        body,
		requireAuth: true,
		out:         &message,
	})
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// MarkConversationRead marks every message in a thread as read.
func (c *Client) MarkConversationRead(ctx context.Context, id int64) error {
	return c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/conversations/%d/read", id),
		requireAuth: true,
	})
}

// UpdateConversationStatus archives or reopens a thread.
func (c *Client) UpdateConversationStatus(ctx context.Context, id int64, status string) (*Conversation, error) {
	var conversation Conversation
	err := c.do(ctx, requestOptions{
		method:      http.MethodPatch,
		path:        fmt.Sprintf("/conversations/%d/status", id),
		body:        map[string]string{"status": status},
		requireAuth: true,
		out:         &conversation,
	})
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}
