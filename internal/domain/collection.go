// Package domain holds the entity types shared by the resource client and
// the panel controller, plus the pure helpers derived from them.
package domain

import (
	"strings"
	"time"
)

// UntitledCollection is the display title for a document collection whose
// file list has not been populated yet.
const UntitledCollection = "Untitled Collection"

// DocumentCollection is a set of ingested files treated as one retrievable
// unit. Instances are never mutated client-side; the panel re-fetches the
// whole list after any change.
type DocumentCollection struct {
	CollectionID  string    `json:"collection_id"`
	FileNames     []string  `json:"file_names"`
	DocumentCount int       `json:"document_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ChatCollection is one imported chat transcript.
type ChatCollection struct {
	CollectionID string   `json:"collection_id"`
	FileName     string   `json:"file_name"`
	MessageCount int      `json:"message_count"`
	Platform     Platform `json:"platform"`
}

// Platform identifies the source a chat transcript was exported from.
type Platform string

const (
	PlatformWhatsApp Platform = "whatsapp"
	PlatformTeams    Platform = "teams"
	PlatformSlack    Platform = "slack"

	// DefaultPlatform is assumed when the user does not pick one.
	DefaultPlatform = PlatformWhatsApp
)

// Platforms lists the supported chat platforms in display order.
func Platforms() []Platform {
	return []Platform{PlatformWhatsApp, PlatformTeams, PlatformSlack}
}

// ParsePlatform validates a user-supplied platform name. An empty string
// resolves to DefaultPlatform.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultPlatform, true
	case PlatformWhatsApp:
		return PlatformWhatsApp, true
	case PlatformTeams:
		return PlatformTeams, true
	case PlatformSlack:
		return PlatformSlack, true
	}
	return "", false
}

// CollectionTitle derives a display title from a document collection: the
// first file name with a trailing ".pdf" stripped (any case) and word
// separators replaced by spaces. Collections without files get the fixed
// placeholder title.
func CollectionTitle(c DocumentCollection) string {
	if len(c.FileNames) == 0 {
		return UntitledCollection
	}
	title := c.FileNames[0]
	if len(title) >= 4 && strings.EqualFold(title[len(title)-4:], ".pdf") {
		title = title[:len(title)-4]
	}
	title = strings.ReplaceAll(title, "_", " ")
	title = strings.ReplaceAll(title, "-", " ")
	return title
}
