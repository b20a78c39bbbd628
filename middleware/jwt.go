package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service"
	log "github.com/sirupsen/logrus"
)

var errNoToken = errors.New("no session token")

// sessionToken reads the session from the jwt_session cookie or, for clients
// without cookies, the Authorization header
func sessionToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(KeyJwtSessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errNoToken
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", errors.New("invalid authorization header format")
	}
	return strings.TrimPrefix(header, bearerPrefix), nil
}

func parseClaims(tokenString string, secret []byte) (service.UserCredentialClaims, error) {
	var claims service.UserCredentialClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return service.UserCredentialClaims{}, err
	}
	if !token.Valid {
		return service.UserCredentialClaims{}, errors.New("token is not valid")
	}
	return claims, nil
}

func respondUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"code":  "unauthorized",
		"error": msg,
	})
}

// JWTMiddleware rejects requests without a valid session and stores the
// session claims in the request context
func JWTMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := sessionToken(r)
			if err != nil {
				respondUnauthorized(w, "sign in to continue")
				return
			}
			claims, err := parseClaims(tokenString, secret)
			if err != nil {
				log.Debugf("rejected session token, %v", err)
				respondUnauthorized(w, "session expired or invalid, sign in again")
				return
			}
			next.ServeHTTP(w, r.WithContext(service.WithClaims(r.Context(), claims)))
		})
	}
}

// OptionalJWTMiddleware attaches claims when a valid session is present and
// lets anonymous requests through. A present but invalid token is rejected.
func OptionalJWTMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := sessionToken(r)
			if errors.Is(err, errNoToken) {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				respondUnauthorized(w, err.Error())
				return
			}
			claims, err := parseClaims(tokenString, secret)
			if err != nil {
				log.Debugf("rejected session token, %v", err)
				respondUnauthorized(w, "session expired or invalid, sign in again")
				return
			}
			next.ServeHTTP(w, r.WithContext(service.WithClaims(r.Context(), claims)))
		})
	}
}
