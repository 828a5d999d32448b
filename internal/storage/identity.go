package storage

import (
	"encoding/json"

	"github.com/zhubert/snappy/internal/contacts"
	perrors "github.com/zhubert/snappy/internal/errors"
)

// DefaultIdentityKey is the key the logged-in user is stored under unless
// configured otherwise.
const DefaultIdentityKey = "chat-app-current-user"

// Identities reads and writes the current user under a fixed key.
type Identities struct {
	store Store
	key   string
}

// NewIdentities binds an identity accessor to a store and key.
func NewIdentities(store Store, key string) *Identities {
	if key == "" {
		key = DefaultIdentityKey
	}
	return &Identities{store: store, key: key}
}

// Key returns the storage key in use.
func (i *Identities) Key() string {
	return i.key
}

// Load returns the stored current user. A missing identity is a NotFound
// error; a value that is not a JSON object is an Invalid error.
func (i *Identities) Load() (*contacts.CurrentUser, error) {
	data, err := i.store.Get(i.key)
	if err != nil {
		return nil, err
	}
	var user contacts.CurrentUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, perrors.IdentityCorrupt(i.key, err)
	}
	if user.ID == "" {
		return nil, perrors.E(perrors.OpLoadIdentity, perrors.KindInvalid, "stored identity has no _id")
	}
	return &user, nil
}

// Save stores user as JSON.
func (i *Identities) Save(user contacts.CurrentUser) error {
	if user.ID == "" {
		return perrors.E(perrors.Op("storage.SaveIdentity"), perrors.KindInvalid, "identity has no _id")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return perrors.E(perrors.Op("storage.SaveIdentity"), perrors.KindInvalid, err)
	}
	return i.store.Set(i.key, data)
}

// Clear removes the stored identity.
func (i *Identities) Clear() error {
	return i.store.Delete(i.key)
}
