package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type localeContextKey struct{}

var (
	// SupportedLocales drive number formatting; the first entry is the fallback.
	SupportedLocales = []language.Tag{
		language.English,
		language.German,
		language.Dutch,
		language.French,
		language.Indonesian,
	}
	localeMatcher = language.NewMatcher(SupportedLocales)
)

// Locale resolves the display locale from X-Locale, then Accept-Language.
func Locale(defaultLocale string) func(http.Handler) http.Handler {
	fallback := matchLocale(defaultLocale)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := fallback
			if v := strings.TrimSpace(r.Header.Get("X-Locale")); v != "" {
				tag = matchLocale(v)
			} else if v := r.Header.Get("Accept-Language"); v != "" {
				if tags, _, err := language.ParseAcceptLanguage(v); err == nil && len(tags) > 0 {
					tag = matchTags(tags, fallback)
				}
			}
			ctx := context.WithValue(r.Context(), localeContextKey{}, tag)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func matchLocale(raw string) language.Tag {
	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		return SupportedLocales[0]
	}
	return matchTags([]language.Tag{tag}, SupportedLocales[0])
}

func matchTags(tags []language.Tag, fallback language.Tag) language.Tag {
	_, idx, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return SupportedLocales[idx]
}

func LocaleFromContext(ctx context.Context) language.Tag {
	if v, ok := ctx.Value(localeContextKey{}).(language.Tag); ok {
		return v
	}
	return SupportedLocales[0]
}
