package contacts

import "context"

// State is the lifecycle state of a List.
type State int

const (
	StateUninitialized State = iota // No refresh has been applied yet
	StateLoaded                     // A current user has been loaded
	StateClosed                     // Owner is gone, async results are dropped
)

// String returns a human-readable name for the state
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateLoaded:
		return "Loaded"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// RefreshResult is what a refresh produced. User is nil when storage holds no
// identity. Err is set when the user was loaded but the counts fetch failed.
type RefreshResult struct {
	Token  uint64
	User   *CurrentUser
	Counts Counts
	Err    error
}

// readMark records that the user cleared a contact's count.
type readMark struct {
	token   uint64 // latest refresh token issued when the contact was selected
	pending bool   // mark-read request has not completed yet
}

// List is the state model of the contact list view.
type List struct {
	contacts []Contact
	version  uint64

	user       *CurrentUser
	counts     Counts
	selectedID string
	state      State

	latestToken uint64
	readMarks   map[string]readMark

	ctx    context.Context
	cancel context.CancelFunc
}

// NewList creates an empty list. Its lifetime context is derived from parent
// and is cancelled by Close.
func NewList(parent context.Context) *List {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &List{
		contacts:  []Contact{},
		version:   Version(nil),
		counts:    Counts{},
		readMarks: make(map[string]readMark),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Context returns the list's lifetime context. Requests made on behalf of the
// list should use it so they are abandoned when the list closes.
func (l *List) Context() context.Context {
	return l.ctx
}

// State returns the current lifecycle state.
func (l *List) State() State {
	return l.state
}

// SetContacts replaces the contact sequence. A nil slice is treated as empty.
// It reports whether the content differs from the previous sequence, which is
// when the owner should refresh counts.
func (l *List) SetContacts(contacts []Contact) bool {
	if contacts == nil {
		contacts = []Contact{}
	}
	v := Version(contacts)
	changed := v != l.version
	l.contacts = contacts
	l.version = v
	return changed
}

// Contacts returns the current contact sequence.
func (l *List) Contacts() []Contact {
	return l.contacts
}

// BeginRefresh issues a new refresh token. Any result carrying an older token
// is dropped once this one is issued.
func (l *List) BeginRefresh() uint64 {
	l.latestToken++
	return l.latestToken
}

// LatestToken returns the most recently issued refresh token.
func (l *List) LatestToken() uint64 {
	return l.latestToken
}

// ApplyRefresh folds a refresh result into the list and reports whether any
// state changed. Results for a closed list, stale results, and results with
// no user are ignored. On a fetch error the user fields are still updated and
// the previous counts are kept.
func (l *List) ApplyRefresh(r RefreshResult) bool {
	if l.state == StateClosed || r.Token < l.latestToken || r.User == nil {
		return false
	}

	user := *r.User
	l.user = &user
	l.state = StateLoaded

	if r.Err != nil {
		return true
	}

	counts := make(Counts, len(r.Counts))
	for id, n := range r.Counts {
		if n < 0 {
			n = 0
		}
		counts[id] = n
	}

	for id, mark := range l.readMarks {
		if mark.pending || r.Token <= mark.token {
			counts[id] = 0
			continue
		}
		delete(l.readMarks, id)
	}

	l.counts = counts
	return true
}

// Select marks the contact with the given ID as selected and zeroes its
// unread count without waiting for the server. It returns the contact and
// false if the ID is not in the current sequence.
func (l *List) Select(id string) (Contact, bool) {
	if l.state == StateClosed {
		return Contact{}, false
	}
	idx := l.IndexOf(id)
	if idx < 0 {
		return Contact{}, false
	}

	l.selectedID = id
	l.counts[id] = 0
	l.readMarks[id] = readMark{token: l.latestToken, pending: true}
	return l.contacts[idx], true
}

// MarkReadDone records that the mark-read request for id finished, whatever
// its outcome. The local zero stays in place until a newer refresh lands.
func (l *List) MarkReadDone(id string) {
	if mark, ok := l.readMarks[id]; ok {
		mark.pending = false
		l.readMarks[id] = mark
	}
}

// SelectedID returns the selected contact's ID, or "" if none.
func (l *List) SelectedID() string {
	return l.selectedID
}

// SelectedIndex returns the position of the selected contact in the current
// sequence, or -1 if nothing is selected or the contact is gone.
func (l *List) SelectedIndex() int {
	if l.selectedID == "" {
		return -1
	}
	return l.IndexOf(l.selectedID)
}

// IsSelected reports whether id is the selected contact.
func (l *List) IsSelected(id string) bool {
	return id != "" && id == l.selectedID
}

// IndexOf returns the position of id in the current sequence, or -1.
func (l *List) IndexOf(id string) int {
	for i, c := range l.contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Unread returns the unread count for id.
func (l *List) Unread(id string) int {
	return l.counts.Get(id)
}

// HasBadge reports whether the contact should show an unread badge.
func (l *List) HasBadge(id string) bool {
	return l.Unread(id) > 0
}

// Counts returns a copy of the unread-count map.
func (l *List) Counts() Counts {
	return l.counts.Clone()
}

// User returns the loaded current user, or nil.
func (l *List) User() *CurrentUser {
	return l.user
}

// Ready reports whether there is anything to render: the current user's
// avatar must be known.
func (l *List) Ready() bool {
	return l.state != StateClosed && l.user != nil && l.user.AvatarImage != ""
}

// Close ends the list's lifetime. In-flight requests are cancelled and any
// result that arrives afterwards is dropped.
func (l *List) Close() {
	l.state = StateClosed
	l.cancel()
}
