package notification

import (
	"errors"
	"testing"
)

// mockNotification records calls to the notification function
type mockNotification struct {
	calls []struct {
		title   string
		message string
		icon    any
	}
	err error
}

func (m *mockNotification) notify(title, message string, icon any) error {
	m.calls = append(m.calls, struct {
		title   string
		message string
		icon    any
	}{title, message, icon})
	return m.err
}

func TestSend(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		message     string
		mockErr     error
		expectError bool
	}{
		{
			name:        "successful notification",
			title:       "Test Title",
			message:     "Test Message",
			mockErr:     nil,
			expectError: false,
		},
		{
			name:        "notification error",
			title:       "Test Title",
			message:     "Test Message",
			mockErr:     errors.New("notification failed"),
			expectError: true,
		},
		{
			name:        "empty title",
			title:       "",
			message:     "Message with empty title",
			mockErr:     nil,
			expectError: false,
		},
		{
			name:        "empty message",
			title:       "Title",
			message:     "",
			mockErr:     nil,
			expectError: false,
		},
		{
			name:        "unicode content",
			title:       "通知",
			message:     "🎉 Notification with emoji",
			mockErr:     nil,
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{err: tt.mockErr}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			err := Send(tt.title, tt.message)

			if tt.expectError && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}

			call := mock.calls[0]
			if call.title != tt.title {
				t.Errorf("title = %q, want %q", call.title, tt.title)
			}
			if call.message != tt.message {
				t.Errorf("message = %q, want %q", call.message, tt.message)
			}
			if call.icon != "" {
				t.Errorf("icon = %v, want platform default", call.icon)
			}
		})
	}
}

func TestUnreadArrived(t *testing.T) {
	tests := []struct {
		name            string
		username        string
		count           int
		expectedMessage string
		mockErr         error
		expectError     bool
	}{
		{
			name:            "single message",
			username:        "alice",
			count:           1,
			expectedMessage: "1 new message from alice",
		},
		{
			name:            "several messages",
			username:        "bob",
			count:           4,
			expectedMessage: "4 new messages from bob",
		},
		{
			name:            "notification failure",
			username:        "carol",
			count:           2,
			expectedMessage: "2 new messages from carol",
			mockErr:         errors.New("notification system unavailable"),
			expectError:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{err: tt.mockErr}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			err := UnreadArrived(tt.username, tt.count)

			if tt.expectError && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}

			call := mock.calls[0]
			if call.title != AppName {
				t.Errorf("title = %q, want %q", call.title, AppName)
			}
			if call.message != tt.expectedMessage {
				t.Errorf("message = %q, want %q", call.message, tt.expectedMessage)
			}
		})
	}
}

func TestResetNotifier(t *testing.T) {
	mock := &mockNotification{}
	SetNotifier(mock.notify)
	ResetNotifier()

	notifierMu.RLock()
	defer notifierMu.RUnlock()
	if notifier == nil {
		t.Fatal("ResetNotifier() left no notifier installed")
	}
}
