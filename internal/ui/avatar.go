package ui

import (
	"encoding/base64"
	"hash/fnv"
	"image/color"
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/lipgloss/v2"
)

// avatarPalette is indexed by a hash of the decoded avatar bytes, so the same
// image always gets the same color.
var avatarPalette = []string{
	"#F87171", "#FB923C", "#FACC15", "#4ADE80",
	"#2DD4BF", "#60A5FA", "#A78BFA", "#F472B6",
}

// DecodeAvatar decodes avatar image data. It accepts raw base64 (padded or
// not) as well as a data URL such as "data:image/svg+xml;base64,...".
func DecodeAvatar(data string) ([]byte, error) {
	data = strings.TrimSpace(data)
	if strings.HasPrefix(data, "data:") {
		if i := strings.Index(data, ";base64,"); i >= 0 {
			data = data[i+len(";base64,"):]
		}
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(data)
	}
	return raw, err
}

// AvatarColor returns the color derived from decoded avatar bytes.
func AvatarColor(raw []byte) color.Color {
	h := fnv.New32a()
	h.Write(raw)
	return lipgloss.Color(avatarPalette[h.Sum32()%uint32(len(avatarPalette))])
}

// avatarInitial returns the upper-cased first letter of a username, or "?".
func avatarInitial(username string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(username))
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// RenderAvatar renders a one-cell avatar: the user's initial on a color
// derived from the image. Undecodable or empty images get a plain initial.
func RenderAvatar(avatar, username string) string {
	initial := avatarInitial(username)
	raw, err := DecodeAvatar(avatar)
	if err != nil || len(raw) == 0 {
		return AvatarPlaceholderStyle.Render(initial)
	}
	return lipgloss.NewStyle().
		Foreground(ColorTextInverse).
		Background(AvatarColor(raw)).
		Bold(true).
		Render(initial)
}
