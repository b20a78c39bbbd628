package cf_service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
)

// GetUserInfo verifies that handle exists and returns it in its canonical case
func (s *CfService) GetUserInfo(ctx context.Context, handle string) (UserInfo, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" || strings.ContainsAny(handle, ";,") {
		return UserInfo{}, fmt.Errorf("%w, invalid handle %q", cfspeed_errors.ErrInvalidRequest, handle)
	}

	params := url.Values{}
	params.Add("handles", handle)

	var users []UserInfo
	if err := s.call(ctx, "user.info", params, &users); err != nil {
		return UserInfo{}, err
	}
	if len(users) == 0 {
		err := fmt.Errorf("%w, codeforces has no user %s", cfspeed_errors.ErrNotFound, handle)
		s.logger.Warn(err)
		return UserInfo{}, err
	}
	return users[0], nil
}
