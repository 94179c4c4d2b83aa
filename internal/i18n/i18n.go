// Package i18n localizes the user-visible strings emitted by the panel
// (notifications and CLI errors). Locale catalogs are embedded so the binary
// stays self-contained.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	gi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	mu        sync.RWMutex
	localizer *gi18n.Localizer
)

// Init builds a localizer for the requested language and installs it as the
// package default used by T. An empty lang falls back to English.
func Init(lang string) (*gi18n.Localizer, error) {
	bundle := gi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read embedded locales: %w", err)
	}
	for _, entry := range entries {
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+entry.Name()); err != nil {
			return nil, fmt.Errorf("load locale %s: %w", entry.Name(), err)
		}
	}

	if lang == "" {
		lang = language.English.String()
	}
	loc := gi18n.NewLocalizer(bundle, lang)

	mu.Lock()
	localizer = loc
	mu.Unlock()

	return loc, nil
}

// T returns the localized message for the given ID. When no localizer has
// been initialized, or the ID is unknown, the ID itself is returned so
// callers always get a printable string.
func T(messageID string) string {
	mu.RLock()
	loc := localizer
	mu.RUnlock()

	if loc == nil {
		var err error
		if loc, err = Init(""); err != nil {
			return messageID
		}
	}

	msg, err := loc.Localize(&gi18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}
