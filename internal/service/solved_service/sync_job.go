package solved_service

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func (j *SyncJob) Start() error {
	if j.Service == nil {
		panic("sync job expects non-nil solved service")
	}
	if j.Schedule == "" {
		j.Schedule = DefaultSyncSchedule
	}
	j.logger = logrus.WithFields(logrus.Fields{
		"from": fromSyncJob,
	})

	j.cron = cron.New()
	if _, err := j.cron.AddFunc(j.Schedule, func() {
		j.RunOnce(context.Background())
	}); err != nil {
		j.logger.Errorf("invalid sync schedule %q, %v", j.Schedule, err)
		return err
	}
	j.cron.Start()
	j.logger.Infof("solved sync scheduled %s", j.Schedule)
	return nil
}

// Stop waits for a running sync to finish
func (j *SyncJob) Stop() {
	if j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
	j.logger.Info("solved sync stopped")
}

// RunOnce syncs every user with a linked handle, least recently synced first.
// A failing user does not stop the run. It returns the number of users synced.
func (j *SyncJob) RunOnce(ctx context.Context) int {
	logger := j.logger
	if logger == nil {
		logger = logrus.WithField("from", fromSyncJob)
	}

	users, err := j.Service.DB.ListUsersWithCfHandle(ctx)
	if err != nil {
		logger.Errorf("cannot list users to sync, %v", err)
		return 0
	}

	synced := 0
	for _, user := range users {
		if ctx.Err() != nil {
			logger.Warnf("sync run cancelled after %d users", synced)
			break
		}
		userCtx, cancel := context.WithTimeout(ctx, syncUserTimeout)
		_, err := j.Service.SyncUser(userCtx, user.ID)
		cancel()
		if err != nil {
			logger.Warnf("sync of %v failed, %v", user.ID, err)
			continue
		}
		synced++
	}
	logger.Infof("sync run finished, %d of %d users synced", synced, len(users))
	return synced
}
