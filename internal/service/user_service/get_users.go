package user_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/database"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service"
)

func toUser(dbUser database.User) User {
	user := User{
		ID:        dbUser.ID,
		Email:     dbUser.Email,
		CreatedAt: dbUser.CreatedAt.Time,
	}
	if dbUser.CfHandle.Valid {
		handle := dbUser.CfHandle.String
		user.CfHandle = &handle
	}
	if dbUser.CfRating.Valid {
		rating := int(dbUser.CfRating.Int32)
		user.CfRating = &rating
	}
	if dbUser.LastCfSync.Valid {
		at := dbUser.LastCfSync.Time
		user.LastCfSync = &at
	}
	return user
}

func (u *UserService) EnsureUser(ctx context.Context) (database.User, error) {
	claims, err := service.GetClaimsFromContext(ctx)
	if err != nil {
		return database.User{}, err
	}

	dbUser, err := u.DB.GetUserByID(ctx, claims.UserID)
	if err == nil {
		return dbUser, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return database.User{}, cfspeed_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot fetch user with id %v from db", claims.UserID),
		)
	}

	dbUser, err = u.DB.UpsertUser(ctx, database.UpsertUserParams{
		ID:    claims.UserID,
		Email: claims.Email,
	})
	if err != nil {
		return database.User{}, cfspeed_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot create user %v", claims.UserID),
		)
	}
	u.logger.Infof("created user %v", dbUser.ID)
	return dbUser, nil
}

// CurrentUser is EnsureUser for routes that also serve anonymous callers. It
// returns nil without error when the request carries no session.
func (u *UserService) CurrentUser(ctx context.Context) (*database.User, error) {
	if _, err := service.GetClaimsFromContext(ctx); err != nil {
		return nil, nil
	}
	dbUser, err := u.EnsureUser(ctx)
	if err != nil {
		return nil, err
	}
	return &dbUser, nil
}

func (u *UserService) GetMe(ctx context.Context) (User, error) {
	dbUser, err := u.EnsureUser(ctx)
	if err != nil {
		return User{}, err
	}
	return toUser(dbUser), nil
}

func (u *UserService) CountUsers(ctx context.Context) (int64, error) {
	count, err := u.DB.CountUsers(ctx)
	if err != nil {
		return 0, cfspeed_errors.HandleDBErrors(err, nil, "cannot count users")
	}
	return count, nil
}
