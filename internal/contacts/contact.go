package contacts

import (
	"hash/fnv"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Contact is a chat participant shown in the list.
type Contact struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	AvatarImage string `json:"avatarImage"` // base64-encoded image data
}

// CurrentUser is the logged-in identity read from persistent storage.
type CurrentUser struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	AvatarImage string `json:"avatarImage"`
}

// Counts maps a contact ID to its unread message count.
// A missing key means zero.
type Counts map[string]int

// Get returns the count for id, or 0 if there is none.
func (c Counts) Get(id string) int {
	return c[id]
}

// Clone returns an independent copy.
func (c Counts) Clone() Counts {
	out := make(Counts, len(c))
	for id, n := range c {
		out[id] = n
	}
	return out
}

// Total returns the sum of all counts.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Increases returns the IDs whose count in after is greater than in before,
// sorted for stable output.
func Increases(before, after Counts) []string {
	var ids []string
	for id, n := range after {
		if n > before.Get(id) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Version computes a content hash of a contact sequence. Two sequences with
// the same contacts in the same order have the same version regardless of
// slice identity.
func Version(contacts []Contact) uint64 {
	h := fnv.New64a()
	for _, c := range contacts {
		h.Write([]byte(c.ID))
		h.Write([]byte{0})
		h.Write([]byte(c.Username))
		h.Write([]byte{0})
		h.Write([]byte(c.AvatarImage))
		h.Write([]byte{1})
	}
	return h.Sum64()
}

// Filter returns the contacts whose username contains query, ignoring case.
// An empty query returns contacts unchanged.
func Filter(contacts []Contact, query string) []Contact {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return contacts
	}
	return lo.Filter(contacts, func(c Contact, _ int) bool {
		return strings.Contains(strings.ToLower(c.Username), query)
	})
}
