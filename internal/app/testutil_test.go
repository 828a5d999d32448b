package app

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/snappy/internal/config"
	"github.com/zhubert/snappy/internal/contacts"
	perrors "github.com/zhubert/snappy/internal/errors"
	"github.com/zhubert/snappy/internal/keys"
	"github.com/zhubert/snappy/internal/ui"
)

var testUser = &contacts.CurrentUser{ID: "me", Username: "marvin", AvatarImage: "PHN2Zz4="}

func testContacts() []contacts.Contact {
	return []contacts.Contact{
		{ID: "a", Username: "alice"},
		{ID: "b", Username: "bob"},
		{ID: "c", Username: "carol"},
	}
}

type fakeIdentities struct {
	user *contacts.CurrentUser
	err  error
}

func (f *fakeIdentities) Load() (*contacts.CurrentUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.user == nil {
		return nil, perrors.StorageMiss("chat-app-current-user")
	}
	u := *f.user
	return &u, nil
}

type fakeService struct {
	mu             sync.Mutex
	counts         contacts.Counts
	directory      []contacts.Contact
	directoryErr   error
	countCalls     int
	directoryCalls int
	markReads      [][2]string
}

func (f *fakeService) UnreadCounts(ctx context.Context, userID string) (contacts.Counts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countCalls++
	return f.counts.Clone(), nil
}

func (f *fakeService) MarkRead(ctx context.Context, from, to string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markReads = append(f.markReads, [2]string{from, to})
	return nil
}

func (f *fakeService) Contacts(ctx context.Context, userID string) ([]contacts.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.directoryCalls++
	if f.directoryErr != nil {
		return nil, f.directoryErr
	}
	return append([]contacts.Contact(nil), f.directory...), nil
}

func (f *fakeService) setCounts(c contacts.Counts) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts = c
}

func (f *fakeService) calls() (counts, directory int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countCalls, f.directoryCalls
}

type notified struct {
	username string
	count    int
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notified
}

func (f *fakeNotifier) notify(username string, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, notified{username, count})
	return nil
}

func (f *fakeNotifier) all() []notified {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notified(nil), f.sent...)
}

// testConfig creates a config saved under a temp dir.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return config.New(filepath.Join(t.TempDir(), "config.json"))
}

// testModel creates a sized model backed by fakes. It does not run Init.
func testModel(t *testing.T, identities *fakeIdentities, service *fakeService) (*Model, *fakeNotifier) {
	t.Helper()
	t.Cleanup(func() { ui.SetTheme(ui.DefaultTheme) })

	n := &fakeNotifier{}
	m := New(context.Background(), testConfig(t), "test-version", identities, service)
	m.SetNotifyFunc(n.notify)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, n
}

// startedModel creates a model for testUser and runs Init to completion.
func startedModel(t *testing.T, counts contacts.Counts) (*Model, *fakeService, *fakeNotifier) {
	t.Helper()
	service := &fakeService{counts: counts, directory: testContacts()}
	m, n := testModel(t, &fakeIdentities{user: testUser}, service)
	drive(t, m, m.Init())
	return m, service, n
}

// runCmd executes cmd, giving up on commands that sleep such as tea.Tick.
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// drive runs cmd and feeds every resulting message back into the model until
// no commands remain.
func drive(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatal("commands did not settle")
		}
		next := queue[0]
		queue = queue[1:]

		switch msg := runCmd(next).(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
		default:
			_, c := m.Update(msg)
			queue = append(queue, c)
		}
	}
}

// press sends a key to the model and drives the resulting commands.
func press(t *testing.T, m *Model, key string) {
	t.Helper()
	_, cmd := m.Update(keyPress(key))
	drive(t, m, cmd)
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "tab", "esc", "ctrl+c", "up", "down"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlR:
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	default:
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}
