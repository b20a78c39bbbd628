package solved_service

import (
	"time"

	"github.com/sirupsen/logrus"
)

func (s *SolvedService) Start() {
	if s.DB == nil {
		panic("solved service expects non-nil database")
	}
	if s.Judge == nil {
		panic("solved service expects non-nil judge")
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.logger = logrus.WithFields(logrus.Fields{
		"from": fromSolvedService,
	})
}
