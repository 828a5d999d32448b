package ui

import (
	"context"
	"log/slog"
	"maps"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/zhubert/snappy/internal/contacts"
	perrors "github.com/zhubert/snappy/internal/errors"
	"github.com/zhubert/snappy/internal/keys"
	"github.com/zhubert/snappy/internal/logger"
)

// spinnerFrames is the shimmering spinner shown next to the brand while a
// refresh is in flight
var spinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// spinnerHoldTimes defines how long each frame should be held (in ticks)
var spinnerHoldTimes = []int{3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 3}

// markerWidth is the cursor marker ("> ") plus the avatar cell and the space after it
const markerWidth = 4

// ContactListTickMsg is sent to advance the spinner animation
type ContactListTickMsg time.Time

// ContactListTick returns a command that sends a tick message after a delay
func ContactListTick() tea.Cmd {
	return tea.Tick(SpinnerInterval, func(t time.Time) tea.Msg {
		return ContactListTickMsg(t)
	})
}

// IdentityLoader reads the logged-in user from persistent storage.
type IdentityLoader interface {
	Load() (*contacts.CurrentUser, error)
}

// MessageService is the part of the remote message service the list uses.
type MessageService interface {
	UnreadCounts(ctx context.Context, userID string) (contacts.Counts, error)
	MarkRead(ctx context.Context, from, to string) error
}

// ChangeChatFunc is called with the full contact when the user picks one.
type ChangeChatFunc func(contacts.Contact)

// unreadCountsMsg carries the outcome of a refresh back to Update.
type unreadCountsMsg struct {
	result contacts.RefreshResult
}

// markReadMsg carries the outcome of a mark-read request back to Update.
type markReadMsg struct {
	contactID string
	err       error
}

// CountsUpdatedMsg is emitted when a refresh changed the unread counts.
// Initial is set for the first refresh after mount.
type CountsUpdatedMsg struct {
	Before  contacts.Counts
	After   contacts.Counts
	Initial bool
}

// Increases returns the IDs of contacts whose count went up.
func (m CountsUpdatedMsg) Increases() []string {
	return contacts.Increases(m.Before, m.After)
}

// ContactList is the left panel listing contacts with unread badges.
type ContactList struct {
	list       *contacts.List
	identities IdentityLoader
	messages   MessageService
	changeChat ChangeChatFunc

	visible      []contacts.Contact // contacts matching the filter, in display order
	cursor       int                // keyboard highlight within visible
	scrollOffset int
	width        int
	height       int
	focused      bool

	refreshing      bool // a refresh with the latest token is in flight
	identityMissing bool // the latest refresh found no stored identity
	ticking         bool // a spinner tick is scheduled
	spinnerFrame    int
	spinnerTick     int
	tick            func() tea.Cmd

	filterMode  bool
	filterInput textinput.Model
}

// NewContactList creates a contact list whose requests live as long as parent
// or until Close.
func NewContactList(parent context.Context, identities IdentityLoader, messages MessageService, changeChat ChangeChatFunc) *ContactList {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = FilterCharLimit

	return &ContactList{
		list:        contacts.NewList(parent),
		identities:  identities,
		messages:    messages,
		changeChat:  changeChat,
		visible:     []contacts.Contact{},
		tick:        ContactListTick,
		filterInput: ti,
	}
}

// List returns the underlying state model.
func (c *ContactList) List() *contacts.List {
	return c.list
}

// SetSize sets the panel dimensions
func (c *ContactList) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// Width returns the panel width
func (c *ContactList) Width() int {
	return c.width
}

// SetFocused sets the focus state
func (c *ContactList) SetFocused(focused bool) {
	c.focused = focused
}

// IsFocused returns the focus state
func (c *ContactList) IsFocused() bool {
	return c.focused
}

// Init refreshes counts once on mount.
func (c *ContactList) Init() tea.Cmd {
	return c.Refresh()
}

// SetContacts replaces the contact sequence and returns a refresh command
// when its content changed.
func (c *ContactList) SetContacts(cs []contacts.Contact) tea.Cmd {
	changed := c.list.SetContacts(cs)
	c.applyFilter()
	if !changed {
		return nil
	}
	return c.Refresh()
}

// Refresh starts a new unread-count fetch. Results of earlier fetches that
// are still in flight will be dropped.
func (c *ContactList) Refresh() tea.Cmd {
	if c.list.State() == contacts.StateClosed {
		return nil
	}
	token := c.list.BeginRefresh()
	c.refreshing = true
	fetch := fetchCounts(c.list.Context(), token, c.identities, c.messages)

	if c.ticking {
		return fetch
	}
	tick := c.tick()
	if tick == nil {
		return fetch
	}
	c.ticking = true
	return tea.Batch(fetch, tick)
}

// fetchCounts loads the identity and requests its unread counts. It runs off
// the Update goroutine and must not touch list state.
func fetchCounts(ctx context.Context, token uint64, identities IdentityLoader, messages MessageService) tea.Cmd {
	return func() tea.Msg {
		user, err := identities.Load()
		if err != nil {
			logIdentityError(logger.WithComponent("contacts"), err)
			return unreadCountsMsg{result: contacts.RefreshResult{Token: token}}
		}
		counts, err := messages.UnreadCounts(ctx, user.ID)
		return unreadCountsMsg{result: contacts.RefreshResult{
			Token:  token,
			User:   user,
			Counts: counts,
			Err:    err,
		}}
	}
}

// markRead tells the service that the conversation with contact was read.
func markRead(ctx context.Context, contact contacts.Contact, identities IdentityLoader, messages MessageService) tea.Cmd {
	return func() tea.Msg {
		user, err := identities.Load()
		if err != nil {
			return markReadMsg{contactID: contact.ID, err: err}
		}
		return markReadMsg{contactID: contact.ID, err: messages.MarkRead(ctx, contact.ID, user.ID)}
	}
}

func logIdentityError(log *slog.Logger, err error) {
	if perrors.Is(err, perrors.KindNotFound) {
		log.Debug("no identity stored")
		return
	}
	log.Warn("stored identity unreadable", "error", err)
}

// SelectIndex selects the visible contact at i: it becomes the selected
// contact, the parent is told to switch chats, and its count is zeroed
// before the mark-read request is sent. Nothing happens while the list
// is not drawn.
func (c *ContactList) SelectIndex(i int) tea.Cmd {
	if !c.list.Ready() || i < 0 || i >= len(c.visible) {
		return nil
	}
	contact, ok := c.list.Select(c.visible[i].ID)
	if !ok {
		return nil
	}
	c.cursor = i

	logger.WithComponent("contacts").Debug("contact selected", "id", contact.ID, "username", contact.Username)
	if c.changeChat != nil {
		c.changeChat(contact)
	}
	return markRead(c.list.Context(), contact, c.identities, c.messages)
}

// applyCounts folds a refresh result into the list.
func (c *ContactList) applyCounts(r contacts.RefreshResult) tea.Cmd {
	log := logger.WithComponent("contacts")

	if r.Token < c.list.LatestToken() {
		log.Debug("dropping stale unread counts", "token", r.Token, "latest", c.list.LatestToken())
		return nil
	}
	c.refreshing = false
	if c.list.State() == contacts.StateClosed {
		return nil
	}

	c.identityMissing = r.User == nil
	initial := c.list.State() == contacts.StateUninitialized
	before := c.list.Counts()
	if !c.list.ApplyRefresh(r) {
		return nil
	}
	if r.Err != nil {
		log.Warn("failed to fetch unread counts, keeping previous counts", "error", r.Err)
		return nil
	}

	after := c.list.Counts()
	log.Debug("unread counts updated", "token", r.Token, "total", after.Total())
	if maps.Equal(before, after) {
		return nil
	}
	return func() tea.Msg {
		return CountsUpdatedMsg{Before: before, After: after, Initial: initial}
	}
}

// Update handles messages
func (c *ContactList) Update(msg tea.Msg) (*ContactList, tea.Cmd) {
	switch msg := msg.(type) {
	case unreadCountsMsg:
		return c, c.applyCounts(msg.result)

	case markReadMsg:
		c.list.MarkReadDone(msg.contactID)
		if msg.err != nil {
			log := logger.WithComponent("contacts")
			if perrors.Is(msg.err, perrors.KindNotFound) {
				log.Debug("skipping mark-read, no identity stored", "contact", msg.contactID)
			} else {
				log.Warn("failed to mark conversation read", "contact", msg.contactID, "error", msg.err)
			}
		}
		return c, nil

	case ContactListTickMsg:
		if !c.refreshing {
			c.ticking = false
			c.spinnerFrame = 0
			c.spinnerTick = 0
			return c, nil
		}
		// Advance the spinner with easing (some frames hold longer)
		c.spinnerTick++
		if c.spinnerTick >= spinnerHoldTimes[c.spinnerFrame%len(spinnerHoldTimes)] {
			c.spinnerTick = 0
			c.spinnerFrame = (c.spinnerFrame + 1) % len(spinnerFrames)
		}
		return c, c.tick()

	case tea.MouseClickMsg:
		if msg.Button != tea.MouseLeft {
			return c, nil
		}
		if row := c.RowAt(msg.Y); row >= 0 {
			return c, c.SelectIndex(row)
		}
		return c, nil

	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			c.moveCursor(-1)
		case tea.MouseWheelDown:
			c.moveCursor(1)
		}
		return c, nil

	case tea.KeyPressMsg:
		if !c.focused {
			return c, nil
		}
		if c.filterMode {
			return c.updateFilter(msg)
		}

		switch msg.String() {
		case keys.Up, "k":
			c.moveCursor(-1)
		case keys.Down, "j":
			c.moveCursor(1)
		case keys.Home, "g":
			c.cursor = 0
		case keys.End, "G":
			c.cursor = len(c.visible) - 1
			c.clampCursor()
		case keys.PgUp:
			c.moveCursor(-max(c.listHeight(), 1))
		case keys.PgDown:
			c.moveCursor(max(c.listHeight(), 1))
		case keys.Enter:
			return c, c.SelectIndex(c.cursor)
		case "/":
			return c, c.EnterFilterMode()
		case "r":
			return c, c.Refresh()
		case keys.Escape:
			c.ClearFilter()
		}
	}

	return c, nil
}

// updateFilter handles keys while the filter input has focus.
func (c *ContactList) updateFilter(msg tea.KeyPressMsg) (*ContactList, tea.Cmd) {
	switch msg.String() {
	case keys.Escape:
		c.ClearFilter()
		return c, nil
	case keys.Enter:
		// Leave filter mode but keep the filter applied
		c.filterMode = false
		c.filterInput.Blur()
		return c, nil
	case keys.Up, keys.CtrlP:
		c.moveCursor(-1)
		return c, nil
	case keys.Down, keys.CtrlN:
		c.moveCursor(1)
		return c, nil
	}

	var cmd tea.Cmd
	c.filterInput, cmd = c.filterInput.Update(msg)
	c.applyFilter()
	return c, cmd
}

// EnterFilterMode focuses the filter input
func (c *ContactList) EnterFilterMode() tea.Cmd {
	c.filterMode = true
	return c.filterInput.Focus()
}

// ClearFilter leaves filter mode and shows every contact again
func (c *ContactList) ClearFilter() {
	c.filterMode = false
	c.filterInput.Blur()
	c.filterInput.SetValue("")
	c.applyFilter()
}

// IsFilterMode returns whether the filter input has focus
func (c *ContactList) IsFilterMode() bool {
	return c.filterMode
}

// FilterQuery returns the current filter text
func (c *ContactList) FilterQuery() string {
	return c.filterInput.Value()
}

// SetFilter applies a filter query directly
func (c *ContactList) SetFilter(query string) {
	c.filterInput.SetValue(query)
	c.applyFilter()
}

// applyFilter recomputes the visible contacts, keeping the cursor on the same
// contact when it is still visible.
func (c *ContactList) applyFilter() {
	var cursorID string
	if c.cursor >= 0 && c.cursor < len(c.visible) {
		cursorID = c.visible[c.cursor].ID
	}

	c.visible = contacts.Filter(c.list.Contacts(), c.filterInput.Value())
	c.cursor = 0
	for i, ct := range c.visible {
		if ct.ID == cursorID {
			c.cursor = i
			break
		}
	}
	c.scrollOffset = 0
}

// Visible returns the contacts currently shown, in display order
func (c *ContactList) Visible() []contacts.Contact {
	return c.visible
}

// Cursor returns the keyboard highlight position within Visible
func (c *ContactList) Cursor() int {
	return c.cursor
}

// IsRefreshing reports whether the latest refresh has not returned yet
func (c *ContactList) IsRefreshing() bool {
	return c.refreshing
}

// IdentityMissing reports whether the latest refresh found no stored identity
func (c *ContactList) IdentityMissing() bool {
	return c.identityMissing
}

// Close unmounts the list. In-flight requests are cancelled and their
// results dropped.
func (c *ContactList) Close() {
	c.list.Close()
	c.refreshing = false
}

func (c *ContactList) moveCursor(delta int) {
	c.cursor += delta
	c.clampCursor()
}

func (c *ContactList) clampCursor() {
	if c.cursor >= len(c.visible) {
		c.cursor = len(c.visible) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

// showFilterLine reports whether a line is reserved for the filter
func (c *ContactList) showFilterLine() bool {
	return c.filterMode || c.filterInput.Value() != ""
}

// listHeight is the number of contact rows that fit in the panel
func (c *ContactList) listHeight() int {
	h := GetViewContext().InnerHeight(c.height) - BrandHeight - CurrentUserHeight
	if c.showFilterLine() {
		h--
	}
	return max(h, 0)
}

// RowAt maps a y coordinate relative to the panel's top edge to an index in
// Visible, or -1 if no contact is drawn there.
func (c *ContactList) RowAt(y int) int {
	if !c.list.Ready() {
		return -1
	}
	top := 1 + BrandHeight // top border, brand, separator
	if c.showFilterLine() {
		top++
	}
	row := y - top
	if row < 0 || row >= c.listHeight() {
		return -1
	}
	idx := row + c.scrollOffset
	if idx >= len(c.visible) {
		return -1
	}
	return idx
}

// ensureCursorVisible adjusts the scroll offset so the cursor row is drawn
func (c *ContactList) ensureCursorVisible(height int) {
	if c.cursor < c.scrollOffset {
		c.scrollOffset = c.cursor
	} else if c.cursor >= c.scrollOffset+height {
		c.scrollOffset = c.cursor - height + 1
	}
	maxScroll := max(len(c.visible)-height, 0)
	if c.scrollOffset > maxScroll {
		c.scrollOffset = maxScroll
	}
	if c.scrollOffset < 0 {
		c.scrollOffset = 0
	}
}

// View renders the contact list. Nothing is drawn inside the panel until the
// current user's avatar is known.
func (c *ContactList) View() string {
	vctx := GetViewContext()

	style := PanelStyle
	if c.focused {
		style = PanelFocusedStyle
	}

	if !c.list.Ready() {
		return style.Width(c.width).Height(c.height).Render("")
	}

	innerWidth := vctx.InnerWidth(c.width)
	separator := SeparatorStyle.Render(strings.Repeat("─", innerWidth))

	lines := []string{c.renderBrand(innerWidth), separator}
	if c.showFilterLine() {
		lines = append(lines, c.renderFilter(innerWidth))
	}
	lines = append(lines, c.renderRows(innerWidth)...)
	lines = append(lines, separator, c.renderCurrentUser(innerWidth))

	return style.Width(c.width).Height(c.height).Render(strings.Join(lines, "\n"))
}

func (c *ContactList) renderBrand(width int) string {
	brand := BrandLogoStyle.Render("✦") + " " + BrandStyle.Render("snappy")
	if c.refreshing {
		brand += " " + SpinnerStyle.Render(spinnerFrames[c.spinnerFrame%len(spinnerFrames)])
	}
	return ansi.Truncate(brand, width, "")
}

func (c *ContactList) renderFilter(width int) string {
	if c.filterMode {
		c.filterInput.SetWidth(max(width-3, 1)) // Leave room for "/ "
		return FilterPromptStyle.Render("/") + " " + c.filterInput.View()
	}
	return EmptyStyle.Render(runewidth.Truncate("/ "+c.filterInput.Value(), width, "…"))
}

// renderRows returns exactly listHeight lines
func (c *ContactList) renderRows(width int) []string {
	height := c.listHeight()
	rows := make([]string, 0, height)

	if len(c.visible) == 0 {
		msg := "No contacts."
		if c.filterInput.Value() != "" {
			msg = "No matches."
		}
		rows = append(rows, EmptyStyle.Render(msg))
	} else {
		c.ensureCursorVisible(height)
		end := min(c.scrollOffset+height, len(c.visible))
		for i := c.scrollOffset; i < end; i++ {
			rows = append(rows, c.renderContact(i, width))
		}
	}

	for len(rows) < height {
		rows = append(rows, "")
	}
	return rows[:height]
}

// renderContact renders one row: cursor marker, avatar, name, badge
func (c *ContactList) renderContact(i, width int) string {
	contact := c.visible[i]
	contentWidth := max(width-ItemPaddingWidth, 0)

	marker := "  "
	if i == c.cursor && c.focused {
		marker = ContactCursorStyle.Render("> ")
	}

	var badge string
	if c.list.HasBadge(contact.ID) {
		badge = BadgeStyle.Render(strconv.Itoa(c.list.Unread(contact.ID)))
	}
	badgeWidth := ansi.StringWidth(badge)

	nameWidth := contentWidth - markerWidth - badgeWidth
	if badge != "" {
		nameWidth-- // gap before the badge
	}
	name := truncateName(contact.Username, nameWidth)
	gap := max(contentWidth-markerWidth-runewidth.StringWidth(name)-badgeWidth, 0)

	line := marker + RenderAvatar(contact.AvatarImage, contact.Username) + " " +
		name + strings.Repeat(" ", gap) + badge

	itemStyle := ContactItemStyle
	if c.list.IsSelected(contact.ID) {
		itemStyle = ContactSelectedStyle
	}
	return itemStyle.Width(width).Render(ansi.Truncate(line, contentWidth, ""))
}

func (c *ContactList) renderCurrentUser(width int) string {
	user := c.list.User()
	contentWidth := max(width-ItemPaddingWidth, 0)
	name := truncateName(user.Username, contentWidth-2)
	line := RenderAvatar(user.AvatarImage, user.Username) + " " + name
	return CurrentUserStyle.Width(width).Render(ansi.Truncate(line, contentWidth, ""))
}

// truncateName fits a username into width terminal cells
func truncateName(name string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(name, width, "…")
}
