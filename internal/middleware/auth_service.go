package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ConfirmAudience is the audience every donation confirmation token must carry.
const ConfirmAudience = "fastcountdown-confirm"

// ServiceClaims identify the payment collaborator calling the confirm endpoint.
type ServiceClaims struct {
	jwt.RegisteredClaims
}

// NewServiceClaims builds confirm-endpoint claims for subject that expire at expiresAt.
func NewServiceClaims(subject, issuer string, expiresAt time.Time) ServiceClaims {
	return ServiceClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    issuer,
		Audience:  jwt.ClaimStrings{ConfirmAudience},
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}}
}

type serviceKey string

const (
	serviceNameKey serviceKey = "service"
)

func SignServiceToken(secret string, claims ServiceClaims) (string, error) {
	if secret == "" {
		return "", errors.New("empty secret")
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyServiceToken checks the HS256 signature, a mandatory expiry and the
// confirm audience.
func VerifyServiceToken(secret, token string, now time.Time) (*ServiceClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(ConfirmAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	var claims ServiceClaims
	_, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	return &claims, nil
}

// AuthService admits requests bearing a token signed with secret.
func AuthService(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization", http.StatusUnauthorized)
				return
			}
			claims, err := VerifyServiceToken(secret, strings.TrimSpace(parts[1]), time.Now())
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), serviceNameKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ServiceFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(serviceNameKey).(string); ok {
		return v
	}
	return ""
}
