package user_service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/sirupsen/logrus"
)

func (u *UserService) Start() {
	if u.DB == nil {
		panic("user service expects non-nil database")
	}
	if u.Judge == nil {
		panic("user service expects non-nil handle verifier")
	}
	if u.TokenCost == 0 {
		u.TokenCost = bcrypt.DefaultCost
	}
	u.logger = logrus.WithFields(logrus.Fields{
		"from": fromUserService,
	})
}
