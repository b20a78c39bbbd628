package service

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	log "github.com/sirupsen/logrus"
)

type contextKey string

const (
	KeyJWTSecret                    = "JWT_SECRET"
	KeyCtxUserCredClaims contextKey = "UserCredClaims"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// UserCredentialClaims is what the identity provider signs into the session token.
type UserCredentialClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

func InitializeServices() {
	validateOnce.Do(func() {
		validate = initValidator() // used for validating struct fields
	})
}

func initValidator() *validator.Validate {
	log.Info("initializing validator")
	validate := validator.New(validator.WithRequiredStructEnabled())

	// This makes error.Field() return "first_name" instead of "FirstName"
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

func GetClaimsFromContext(
	ctx context.Context,
) (claims UserCredentialClaims, err error) {
	claimsValue := ctx.Value(KeyCtxUserCredClaims)
	claims, ok := claimsValue.(UserCredentialClaims)
	if !ok {
		err = fmt.Errorf(
			"%w, unable to parse claims to service.UserCredentialClaims, type of claims found is %T",
			cfspeed_errors.ErrUnAuthorized,
			claimsValue,
		)
	}
	return
}

// WithClaims is used by the session middleware and by tests
func WithClaims(ctx context.Context, claims UserCredentialClaims) context.Context {
	return context.WithValue(ctx, KeyCtxUserCredClaims, claims)
}
