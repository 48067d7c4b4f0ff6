package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	redis "github.com/redis/go-redis/v9"
)

// RedisClient is an optional shared Redis client used as a token denylist so
// logout can revoke a captured token before its natural expiry. It is nil when
// REDIS_ADDR is not configured; tokens are then purely stateless.
var RedisClient *redis.Client

func init() {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return
	}
	opts := &redis.Options{Addr: addr}
	if p := os.Getenv("REDIS_PASS"); p != "" {
		opts.Password = p
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		var dbn int
		_, _ = fmt.Sscanf(dbStr, "%d", &dbn)
		opts.DB = dbn
	}
	rc := redis.NewClient(opts)
	if err := rc.Ping(context.Background()).Err(); err != nil {
		fmt.Printf("warning: redis ping failed: %v\n", err)
		// don't fail startup for redis issues; logout degrades to cookie clearing
		return
	}
	RedisClient = rc
}

type contextKey string

const UserIDKey = contextKey("userID")
const RequestIDKey = contextKey("requestID")

var ErrInvalidToken = errors.New("invalid token")

// TokenTTL returns the session token lifetime. Defaults to 7 days,
// configurable via JWT_EXPIRE_DAYS.
func TokenTTL() time.Duration {
	if s := os.Getenv("JWT_EXPIRE_DAYS"); s != "" {
		if d, err := strconv.Atoi(s); err == nil && d > 0 {
			return time.Duration(d) * 24 * time.Hour
		}
	}
	return 7 * 24 * time.Hour
}

// GenerateToken issues a signed session token carrying only the user id plus
// registered claims. The same lifetime is mirrored in the token cookie.
func GenerateToken(userID uint) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	now := time.Now()
	jti, err := generateJTI(32)
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": now.Add(TokenTTL()).Unix(),
		"iat": now.Unix(),
		"jti": jti,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and verifies a session token, returning the user id
// and the token's jti. Malformed, badly signed, expired and revoked tokens
// all fail with ErrInvalidToken; callers surface them uniformly as 401.
func ValidateToken(tokenStr string) (uint, string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return 0, "", errors.New("JWT_SECRET is not set")
	}
	token, err := jwt.ParseWithClaims(tokenStr, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Require exact HS256 algorithm to avoid algorithm confusion.
		if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidToken
	}

	var userID uint
	switch v := claims["id"].(type) {
	case float64:
		userID = uint(v)
	case int:
		userID = uint(v)
	case string:
		var n uint64
		_, _ = fmt.Sscanf(v, "%d", &n)
		userID = uint(n)
	}
	if userID == 0 {
		return 0, "", ErrInvalidToken
	}

	jti, _ := claims["jti"].(string)
	if jti != "" && RedisClient != nil {
		res, err := RedisClient.Get(context.Background(), "jwt:denylist:"+jti).Result()
		if err == nil && res == "1" {
			return 0, "", ErrInvalidToken
		}
		// ignore redis errors (do not fail auth due to redis outage)
	}

	return userID, jti, nil
}

// RevokeJTI denylists a token id until its remaining lifetime elapses. It is
// a no-op without a configured Redis client.
func RevokeJTI(jti string, ttl time.Duration) error {
	if jti == "" {
		return errors.New("empty jti")
	}
	if RedisClient == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return RedisClient.Set(context.Background(), "jwt:denylist:"+jti, "1", ttl).Err()
}

// TokenFromRequest extracts the session token from the Authorization header
// or, failing that, the token cookie.
func TokenFromRequest(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	if c, err := r.Cookie("token"); err == nil {
		return c.Value
	}
	return ""
}

// SetTokenCookie mirrors the session token in an httpOnly cookie with a
// max-age matching the token lifetime.
func SetTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL().Seconds()),
		HttpOnly: true,
		Secure:   strings.ToLower(os.Getenv("ENV")) == "production",
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearTokenCookie expires the token cookie immediately. The token itself is
// not invalidated unless Redis revocation is configured.
func ClearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   strings.ToLower(os.Getenv("ENV")) == "production",
		SameSite: http.SameSiteStrictMode,
	})
}

// GetUserID returns the authenticated user id placed in the request context
// by the auth middleware.
func GetUserID(r *http.Request) (uint, bool) {
	v := r.Context().Value(UserIDKey)
	id, ok := v.(uint)
	return id, ok
}

// generateJTI creates a URL-safe random identifier used as JWT ID
func generateJTI(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	const hex = "0123456789abcdef"
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = hex[int(b[i])%len(hex)]
	}
	return string(out), nil
}
