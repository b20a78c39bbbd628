package user_service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/database"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service"
	"golang.org/x/crypto/bcrypt"
)

// IssueExtensionToken creates a new token for the browser extension of the
// caller. Only its hash is stored, a previous token stops working.
func (u *UserService) IssueExtensionToken(ctx context.Context) (ExtensionToken, error) {
	dbUser, err := u.EnsureUser(ctx)
	if err != nil {
		return ExtensionToken{}, err
	}

	secret, err := service.GenerateSecureToken(extensionTokenSecretBytes)
	if err != nil {
		return ExtensionToken{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), u.TokenCost)
	if err != nil {
		err = fmt.Errorf("%w, cannot hash extension token, %w", cfspeed_errors.ErrInternal, err)
		u.logger.Error(err)
		return ExtensionToken{}, err
	}

	if err := u.DB.UpdateUserExtensionToken(ctx, database.UpdateUserExtensionTokenParams{
		ID:                 dbUser.ID,
		ExtensionTokenHash: pgtype.Text{String: string(hash), Valid: true},
	}); err != nil {
		return ExtensionToken{}, cfspeed_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot store extension token of %v", dbUser.ID),
		)
	}

	u.logger.Infof("issued extension token for %v", dbUser.ID)
	return ExtensionToken{
		Token: dbUser.ID.String() + extensionTokenSeparator + secret,
	}, nil
}

// AuthenticateExtensionToken resolves a token issued by IssueExtensionToken
// to its user
func (u *UserService) AuthenticateExtensionToken(ctx context.Context, token string) (database.User, error) {
	unauthorized := fmt.Errorf("%w, invalid extension token", cfspeed_errors.ErrUnAuthorized)

	rawID, secret, ok := strings.Cut(token, extensionTokenSeparator)
	if !ok || secret == "" {
		return database.User{}, unauthorized
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return database.User{}, unauthorized
	}

	dbUser, err := u.DB.GetUserByID(ctx, userID)
	if err != nil {
		err = cfspeed_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot fetch owner %v of extension token", userID),
		)
		if errors.Is(err, cfspeed_errors.ErrNotFound) {
			return database.User{}, unauthorized
		}
		return database.User{}, err
	}
	if !dbUser.ExtensionTokenHash.Valid {
		return database.User{}, unauthorized
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(dbUser.ExtensionTokenHash.String),
		[]byte(secret),
	); err != nil {
		u.logger.Warnf("extension token mismatch for %v", userID)
		return database.User{}, unauthorized
	}
	return dbUser, nil
}
