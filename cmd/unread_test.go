package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zhubert/snappy/internal/contacts"
)

type fakeUnreadService struct {
	counts       contacts.Counts
	countsErr    error
	directory    []contacts.Contact
	directoryErr error
}

func (f *fakeUnreadService) UnreadCounts(ctx context.Context, userID string) (contacts.Counts, error) {
	return f.counts, f.countsErr
}

func (f *fakeUnreadService) MarkRead(ctx context.Context, from, to string) error {
	return nil
}

func (f *fakeUnreadService) Contacts(ctx context.Context, userID string) ([]contacts.Contact, error) {
	return f.directory, f.directoryErr
}

var unreadUser = &contacts.CurrentUser{ID: "me", Username: "marvin"}

func TestUnreadRows(t *testing.T) {
	counts := contacts.Counts{"c": 2, "a": 2, "b": 7, "d": 0}
	directory := []contacts.Contact{{ID: "a", Username: "alice"}, {ID: "b", Username: "bob"}}

	rows := unreadRows(counts, directory)
	want := []unreadRow{
		{ID: "b", Username: "bob", Count: 7},
		{ID: "a", Username: "alice", Count: 2},
		{ID: "c", Username: "", Count: 2},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d: %+v", len(rows), len(want), rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestRunUnread(t *testing.T) {
	tests := []struct {
		name     string
		service  *fakeUnreadService
		wantErr  bool
		contains []string
	}{
		{
			name: "table",
			service: &fakeUnreadService{
				counts:    contacts.Counts{"a": 1, "b": 3},
				directory: []contacts.Contact{{ID: "a", Username: "alice"}, {ID: "b", Username: "bob"}},
			},
			contains: []string{"USERNAME", "bob", "alice", "4 unread in 2 conversations"},
		},
		{
			name:     "nothing unread",
			service:  &fakeUnreadService{counts: contacts.Counts{}},
			contains: []string{"No unread messages."},
		},
		{
			name: "directory failure still prints ids",
			service: &fakeUnreadService{
				counts:       contacts.Counts{"a": 1},
				directoryErr: errors.New("boom"),
			},
			contains: []string{"a", "1 unread in 1 conversation"},
		},
		{
			name:    "counts failure",
			service: &fakeUnreadService{countsErr: errors.New("boom")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runUnread(context.Background(), unreadUser, tt.service, &out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("runUnread() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output %q missing %q", out.String(), want)
				}
			}
		})
	}
}

func TestRunUnread_SortedOutput(t *testing.T) {
	service := &fakeUnreadService{counts: contacts.Counts{"xid": 1, "yid": 9, "zid": 4}}
	var out bytes.Buffer
	if err := runUnread(context.Background(), unreadUser, service, &out); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	y, z, x := strings.Index(got, "yid"), strings.Index(got, "zid"), strings.Index(got, "xid")
	if y < 0 || z < 0 || x < 0 {
		t.Fatalf("missing rows in %q", got)
	}
	if !(y < z && z < x) {
		t.Errorf("rows should be sorted by count descending:\n%s", got)
	}
}
