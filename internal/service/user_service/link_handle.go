package user_service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/database"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service"
)

// LinkHandle verifies handle with codeforces and attaches it, in its
// canonical case, to the caller. Switching to another handle drops the solved
// problems synced for the previous one.
func (u *UserService) LinkHandle(ctx context.Context, req LinkHandleRequest) (User, error) {
	if err := service.ValidateInput(req); err != nil {
		return User{}, err
	}
	dbUser, err := u.EnsureUser(ctx)
	if err != nil {
		return User{}, err
	}

	info, err := u.Judge.GetUserInfo(ctx, req.Handle)
	if err != nil {
		// a FAILED answer from user.info means the handle does not exist
		if errors.Is(err, cfspeed_errors.ErrInvalidRequest) {
			return User{}, fmt.Errorf("%w, codeforces handle %s not found", cfspeed_errors.ErrNotFound, req.Handle)
		}
		return User{}, err
	}

	owner, err := u.DB.GetUserByCfHandle(ctx, info.Handle)
	switch {
	case err == nil && owner.ID != dbUser.ID:
		err = fmt.Errorf("%w, handle already linked to another account", cfspeed_errors.ErrEntityAlreadyExist)
		u.logger.Warnf("%v tried to link %s owned by %v", dbUser.ID, info.Handle, owner.ID)
		return User{}, err
	case err != nil && !errors.Is(err, pgx.ErrNoRows):
		return User{}, cfspeed_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot look up owner of handle %s", info.Handle),
		)
	}

	rating := pgtype.Int4{}
	if info.Rating != nil {
		rating = pgtype.Int4{Int32: int32(*info.Rating), Valid: true}
	}
	handle := pgtype.Text{String: info.Handle, Valid: true}

	var updated database.User
	if dbUser.CfHandle.Valid && strings.EqualFold(dbUser.CfHandle.String, info.Handle) {
		// same account, refresh the canonical case and rating only
		updated, err = u.DB.UpdateUserCfHandle(ctx, database.UpdateUserCfHandleParams{
			ID:       dbUser.ID,
			CfHandle: handle,
			CfRating: rating,
		})
	} else {
		updated, err = u.DB.RelinkCfHandle(ctx, database.RelinkUserCfHandleParams{
			ID:       dbUser.ID,
			CfHandle: handle,
			CfRating: rating,
		})
	}
	if err != nil {
		return User{}, cfspeed_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot link handle %s to %v", info.Handle, dbUser.ID),
		)
	}

	u.logger.Infof("linked codeforces handle %s to %v", info.Handle, dbUser.ID)
	return toUser(updated), nil
}
