package user_service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/database"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/cf_service"
	"github.com/sirupsen/logrus"
)

const (
	fromUserService = "user-service"

	extensionTokenSecretBytes = 32
	extensionTokenSeparator   = "."
)

var errMsgs = map[string]map[string]string{
	cfspeed_errors.CodeUniqueConstraint: {
		"users_cf_handle_key": "handle already linked to another account",
		"users_email_key":     "email already belongs to another account",
	},
}

// UserStore is satisfied by *database.Queries
type UserStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (database.User, error)
	GetUserByCfHandle(ctx context.Context, handle string) (database.User, error)
	UpsertUser(ctx context.Context, arg database.UpsertUserParams) (database.User, error)
	UpdateUserCfHandle(ctx context.Context, arg database.UpdateUserCfHandleParams) (database.User, error)
	RelinkCfHandle(ctx context.Context, arg database.RelinkUserCfHandleParams) (database.User, error)
	UpdateUserExtensionToken(ctx context.Context, arg database.UpdateUserExtensionTokenParams) error
	CountUsers(ctx context.Context) (int64, error)
}

// HandleVerifier is satisfied by *cf_service.CfService
type HandleVerifier interface {
	GetUserInfo(ctx context.Context, handle string) (cf_service.UserInfo, error)
}

type UserService struct {
	DB    UserStore
	Judge HandleVerifier

	// bcrypt cost of extension tokens, bcrypt.DefaultCost when zero
	TokenCost int

	logger *logrus.Entry
}

type User struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	CfHandle   *string    `json:"cf_handle"`
	CfRating   *int       `json:"cf_rating"`
	LastCfSync *time.Time `json:"last_cf_sync"`
	CreatedAt  time.Time  `json:"created_at"`
}

type LinkHandleRequest struct {
	Handle string `json:"handle" validate:"required,min=3,max=24"`
}

type ExtensionToken struct {
	Token string `json:"token"`
}
