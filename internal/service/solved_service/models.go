package solved_service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/database"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/catalog_service"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/cf_service"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	fromSolvedService = "solved-service"
	fromSyncJob       = "solved-sync-job"

	DefaultSyncSchedule = "@every 6h"
	syncUserTimeout     = 2 * time.Minute
)

// SolvedStore is the part of the database the resolver needs. It is
// satisfied by *database.Queries.
type SolvedStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (database.User, error)
	GetSolvedProblemIDs(ctx context.Context, userID uuid.UUID) ([]string, error)
	InsertSolvedProblem(ctx context.Context, arg database.InsertSolvedProblemParams) (int64, error)
	BulkInsertSolvedProblems(ctx context.Context, arg database.BulkInsertSolvedProblemsParams) (int64, error)
	UpdateUserLastCfSync(ctx context.Context, arg database.UpdateUserLastCfSyncParams) error
	ListUsersWithCfHandle(ctx context.Context) ([]database.User, error)
}

// SubmissionSource is the judge side of the resolver, satisfied by *cf_service.CfService
type SubmissionSource interface {
	GetUserStatus(ctx context.Context, handle string, from, count int) ([]cf_service.Submission, error)
	CheckProblemSolved(ctx context.Context, handle string, problemID catalog_service.ProblemID) (cf_service.SolveCheck, error)
}

type SolvedService struct {
	DB    SolvedStore
	Judge SubmissionSource

	now    func() time.Time
	logger *logrus.Entry
}

// SolvedStatus splits problem ids by the caller's history. An id is never in
// both sets.
type SolvedStatus struct {
	Solved    catalog_service.SolvedSet
	Attempted catalog_service.SolvedSet
}

func emptyStatus() SolvedStatus {
	return SolvedStatus{
		Solved:    catalog_service.NewSolvedSet(),
		Attempted: catalog_service.NewSolvedSet(),
	}
}

type SyncResult struct {
	SyncedCount int       `json:"synced_count"`
	Inserted    int64     `json:"inserted"`
	Timestamp   time.Time `json:"timestamp"`
}

type RecordVerdictRequest struct {
	ProblemID string `json:"problem_id" validate:"required,max=16"`
	Verdict   string `json:"verdict" validate:"required,max=64"`
}

type RecordVerdictResult struct {
	ProblemID string `json:"problem_id"`
	Verdict   string `json:"verdict"`
	// the judge agrees the problem is solved
	Confirmed bool `json:"confirmed"`
	Recorded  bool `json:"recorded"`
}

// SyncJob periodically refreshes the persisted solved sets of every user with
// a linked handle
type SyncJob struct {
	Service  *SolvedService
	Schedule string

	cron   *cron.Cron
	logger *logrus.Entry
}
