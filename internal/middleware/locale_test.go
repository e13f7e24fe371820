package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestLocale(t *testing.T) {
	tests := []struct {
		name           string
		xLocale        string
		acceptLanguage string
		fallback       string
		want           language.Tag
	}{
		{name: "default", fallback: "en", want: language.English},
		{name: "configured fallback", fallback: "nl", want: language.Dutch},
		{name: "x-locale wins", xLocale: "de_DE", acceptLanguage: "fr", fallback: "en", want: language.German},
		{name: "accept-language regional", acceptLanguage: "fr-CA,fr;q=0.9,en;q=0.5", fallback: "en", want: language.French},
		{name: "accept-language quality order", acceptLanguage: "ja;q=0.4,id;q=0.8", fallback: "en", want: language.Indonesian},
		{name: "unsupported falls back", acceptLanguage: "ja", fallback: "de", want: language.German},
		{name: "garbage x-locale", xLocale: "%%%", fallback: "de", want: language.English},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got language.Tag
			handler := Locale(tc.fallback)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = LocaleFromContext(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/v1/leaderboard", nil)
			if tc.xLocale != "" {
				req.Header.Set("X-Locale", tc.xLocale)
			}
			if tc.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tc.acceptLanguage)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)
			if got != tc.want {
				t.Fatalf("locale = %s, want %s", got, tc.want)
			}
		})
	}
}
