package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-easter/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves translation keys for one language.
// A nil *Translator is usable and returns keys untranslated.
type Translator struct {
	// Lang is the catalog actually selected, e.g. "fr" for a request of "fr-CA".
	Lang string

	localizer *i18n.Localizer
}

// LoadBundle reads every embedded active.<lang>.json catalog.
// It returns the bundle and the languages found.
func LoadBundle() (*i18n.Bundle, []string, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	var detectedLangs []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}
	return bundle, detectedLangs, nil
}

// New returns a Translator for the closest supported language to tag.
// An empty tag selects config.DefaultLanguage; a malformed tag is an error.
func New(tag string) (*Translator, error) {
	if tag == "" {
		tag = config.DefaultLanguage
	}
	requested, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", config.ErrLangTag, tag, err)
	}

	bundle, langs, err := LoadBundle()
	if err != nil {
		return nil, err
	}

	lang := Match(requested, langs)
	return &Translator{
		Lang:      lang,
		localizer: i18n.NewLocalizer(bundle, lang),
	}, nil
}

// Match picks the best of the available catalogs for the requested tag,
// falling back to config.DefaultLanguage.
func Match(requested language.Tag, available []string) string {
	if len(available) == 0 {
		return config.DefaultLanguage
	}
	tags := []language.Tag{language.Make(config.DefaultLanguage)}
	for _, l := range available {
		if l != config.DefaultLanguage {
			tags = append(tags, language.Make(l))
		}
	}
	_, idx, conf := language.NewMatcher(tags).Match(requested)
	if conf == language.No {
		return config.DefaultLanguage
	}
	base, _ := tags[idx].Base()
	return base.String()
}

// Msg translates key, filling template placeholders from data.
// The key itself is returned when no translation exists.
func (t *Translator) Msg(key string, data map[string]any) string {
	if t == nil || t.localizer == nil {
		return key
	}
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// DateLayout is the Go time layout used for dates in reports.
func (t *Translator) DateLayout() string {
	layout := t.Msg(config.TKeyFormatDate, nil)
	if layout == config.TKeyFormatDate {
		return config.DateFormatDefault
	}
	return layout
}
