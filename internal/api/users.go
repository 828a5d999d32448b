package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/zhubert/snappy/internal/contacts"
	perrors "github.com/zhubert/snappy/internal/errors"
)

// Contacts fetches the contact directory for userID: every other user the
// service knows about, in the service's order.
func (c *Client) Contacts(ctx context.Context, userID string) ([]contacts.Contact, error) {
	const op = perrors.Op("api.Contacts")
	endpoint := fmt.Sprintf("%s/api/auth/allusers/%s", c.host, url.PathEscape(userID))

	data, err := c.do(ctx, op, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if !isJSONArray(data) {
		return nil, perrors.DecodeFailed(op, endpoint, fmt.Errorf("expected a JSON array"))
	}

	var list []contacts.Contact
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, perrors.DecodeFailed(op, endpoint, err)
	}

	out := list[:0]
	for _, ct := range list {
		if ct.ID == "" {
			continue
		}
		out = append(out, ct)
	}
	return out, nil
}
