// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"
	"github.com/zhubert/snappy/internal/logger"
)

// AppName is the title used for every notification.
const AppName = "snappy"

// Notifier matches beeep.Notify.
type Notifier func(title, message string, icon any) error

var (
	notifierMu sync.RWMutex
	notifier   Notifier = beeep.Notify
)

// SetNotifier replaces the function used to deliver notifications.
func SetNotifier(n Notifier) {
	notifierMu.Lock()
	defer notifierMu.Unlock()
	notifier = n
}

// ResetNotifier restores delivery through beeep.
func ResetNotifier() {
	SetNotifier(beeep.Notify)
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending notification", "title", title, "message", message)

	notifierMu.RLock()
	n := notifier
	notifierMu.RUnlock()

	// Empty icon lets beeep pick the platform default
	err := n(title, message, "")
	if err != nil {
		log.Warn("failed to send notification", "error", err)
	}
	return err
}

// UnreadArrived announces new unread messages from a contact.
func UnreadArrived(username string, count int) error {
	if count == 1 {
		return Send(AppName, fmt.Sprintf("1 new message from %s", username))
	}
	return Send(AppName, fmt.Sprintf("%d new messages from %s", count, username))
}
