package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignAndVerifyServiceToken(t *testing.T) {
	claims := NewServiceClaims("stripe-bridge", "payments", time.Now().Add(time.Hour))
	token, err := SignServiceToken("test-secret", claims)
	if err != nil {
		t.Fatalf("SignServiceToken() unexpected error: %v", err)
	}
	parsed, err := VerifyServiceToken("test-secret", token, time.Now())
	if err != nil {
		t.Fatalf("VerifyServiceToken() unexpected error: %v", err)
	}
	if parsed.Subject != "stripe-bridge" || parsed.Issuer != "payments" {
		t.Fatalf("VerifyServiceToken() returned %+v", parsed)
	}
	if !parsed.ExpiresAt.Equal(claims.ExpiresAt.Time) {
		t.Fatalf("ExpiresAt = %v, want %v", parsed.ExpiresAt, claims.ExpiresAt)
	}
}

func TestVerifyServiceTokenRejects(t *testing.T) {
	now := time.Now()
	valid := NewServiceClaims("bridge", "payments", now.Add(time.Hour))

	signed := func(secret string, c ServiceClaims) string {
		token, err := SignServiceToken(secret, c)
		if err != nil {
			t.Fatalf("SignServiceToken() error: %v", err)
		}
		return token
	}
	expired := NewServiceClaims("bridge", "payments", now.Add(-time.Minute))
	otherAudience := valid
	otherAudience.Audience = jwt.ClaimStrings{"fastcountdown-admin"}
	noExpiry := valid
	noExpiry.ExpiresAt = nil
	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, valid).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	tests := map[string]string{
		"wrong secret":   signed("secret-a", valid),
		"expired":        signed("secret", expired),
		"wrong audience": signed("secret", otherAudience),
		"no expiry":      signed("secret", noExpiry),
		"alg none":       noneAlg,
		"malformed":      "not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := VerifyServiceToken("secret", token, now); err == nil {
				t.Fatalf("VerifyServiceToken() expected error")
			}
		})
	}
}

func TestAuthService(t *testing.T) {
	token, err := SignServiceToken("secret", NewServiceClaims("bridge", "payments", time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("SignServiceToken() error: %v", err)
	}
	var seen string
	handler := AuthService("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ServiceFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "basic scheme", header: "Basic " + token, want: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer abc.def.ghi", want: http.StatusUnauthorized},
		{name: "valid", header: "bearer " + token, want: http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/donations/confirmed", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d", rr.Code, tc.want)
			}
		})
	}
	if seen != "bridge" {
		t.Fatalf("ServiceFromContext() = %q, want bridge", seen)
	}
}
