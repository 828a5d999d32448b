package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/zhubert/snappy/internal/contacts"
	perrors "github.com/zhubert/snappy/internal/errors"
	"github.com/zhubert/snappy/internal/logger"
)

// unreadCount is one element of the unread-counts response.
type unreadCount struct {
	ID    string `json:"_id"`
	Count int    `json:"count"`
}

// markReadRequest is the mark-read request body.
type markReadRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// UnreadCounts fetches unread message counts per contact for userID.
// A response that is not a JSON array yields an empty map; contacts missing
// from the response have zero unread.
func (c *Client) UnreadCounts(ctx context.Context, userID string) (contacts.Counts, error) {
	const op = perrors.Op("api.UnreadCounts")
	endpoint := fmt.Sprintf("%s/api/messages/unread-counts/%s", c.host, url.PathEscape(userID))

	data, err := c.do(ctx, op, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	counts := contacts.Counts{}
	if !isJSONArray(data) {
		logger.WithComponent("api").Debug("unread counts response is not an array", "userID", userID)
		return counts, nil
	}

	var items []unreadCount
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, perrors.DecodeFailed(op, endpoint, err)
	}
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		counts[item.ID] = item.Count
	}
	return counts, nil
}

// MarkRead tells the service that messages from contact `from` to user `to`
// have been seen. The response body is ignored.
func (c *Client) MarkRead(ctx context.Context, from, to string) error {
	const op = perrors.Op("api.MarkRead")
	endpoint := c.host + "/api/messages/mark-read"

	_, err := c.do(ctx, op, http.MethodPost, endpoint, markReadRequest{From: from, To: to})
	return err
}
