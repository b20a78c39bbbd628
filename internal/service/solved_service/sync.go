package solved_service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/database"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/metrics"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/catalog_service"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/cf_service"
)

// acceptedProblems keeps the first accepted submission of every problem, in
// the order the judge returned them
func acceptedProblems(submissions []cf_service.Submission) ([]string, []pgtype.Timestamptz) {
	seen := make(map[catalog_service.ProblemID]struct{})
	ids := make([]string, 0)
	solvedAts := make([]pgtype.Timestamptz, 0)

	for _, sub := range submissions {
		if !sub.Accepted() || sub.Problem.ContestID <= 0 {
			continue
		}
		id := catalog_service.MakeProblemID(sub.Problem.ContestID, sub.Problem.Index)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, string(id))
		solvedAts = append(solvedAts, pgtype.Timestamptz{Time: sub.CreatedAt(), Valid: true})
	}
	return ids, solvedAts
}

// SyncUser copies every accepted problem of the user's linked handle into the
// persisted solved set and stamps the sync time. Existing rows keep their
// original solved_at.
func (s *SolvedService) SyncUser(ctx context.Context, userID uuid.UUID) (SyncResult, error) {
	user, err := s.DB.GetUserByID(ctx, userID)
	if err != nil {
		return SyncResult{}, cfspeed_errors.HandleDBErrors(
			err,
			nil,
			fmt.Sprintf("cannot get user %v for sync", userID),
		)
	}
	if !user.CfHandle.Valid || user.CfHandle.String == "" {
		return SyncResult{}, fmt.Errorf("%w, no codeforces handle linked", cfspeed_errors.ErrInvalidRequest)
	}

	submissions, err := s.Judge.GetUserStatus(ctx, user.CfHandle.String, 0, 0)
	if err != nil {
		metrics.SolvedSyncs.WithLabelValues("upstream_error").Inc()
		return SyncResult{}, err
	}

	ids, solvedAts := acceptedProblems(submissions)
	inserted, err := s.DB.BulkInsertSolvedProblems(ctx, database.BulkInsertSolvedProblemsParams{
		UserID:     userID,
		ProblemIds: ids,
		SolvedAts:  solvedAts,
	})
	if err != nil {
		metrics.SolvedSyncs.WithLabelValues("db_error").Inc()
		return SyncResult{}, cfspeed_errors.HandleDBErrors(
			err,
			nil,
			fmt.Sprintf("cannot store solved problems of %v", userID),
		)
	}

	now := s.now().UTC()
	if err := s.DB.UpdateUserLastCfSync(ctx, database.UpdateUserLastCfSyncParams{
		ID:         userID,
		LastCfSync: pgtype.Timestamptz{Time: now, Valid: true},
	}); err != nil {
		metrics.SolvedSyncs.WithLabelValues("db_error").Inc()
		return SyncResult{}, cfspeed_errors.HandleDBErrors(
			err,
			nil,
			fmt.Sprintf("cannot stamp last sync of %v", userID),
		)
	}

	metrics.SolvedSyncs.WithLabelValues("ok").Inc()
	s.logger.Infof(
		"synced %d solved problems of %s (%d new)",
		len(ids),
		user.CfHandle.String,
		inserted,
	)
	return SyncResult{
		SyncedCount: len(ids),
		Inserted:    inserted,
		Timestamp:   now,
	}, nil
}

// RecordVerdict records a verdict reported for a single submission. Only an
// accepted verdict that the judge confirms among the latest submissions of
// the user's handle changes the solved set.
func (s *SolvedService) RecordVerdict(
	ctx context.Context,
	userID uuid.UUID,
	req RecordVerdictRequest,
) (RecordVerdictResult, error) {
	if err := service.ValidateInput(req); err != nil {
		return RecordVerdictResult{}, err
	}
	id := catalog_service.ProblemID(req.ProblemID)
	if _, _, ok := catalog_service.ParseProblemID(id); !ok {
		return RecordVerdictResult{}, fmt.Errorf(
			"%w, %q is not a problem id",
			cfspeed_errors.ErrInvalidInput,
			req.ProblemID,
		)
	}

	result := RecordVerdictResult{ProblemID: req.ProblemID, Verdict: req.Verdict}
	if req.Verdict != cf_service.VerdictOK {
		s.logger.Debugf("verdict %s on %s by %v acknowledged", req.Verdict, id, userID)
		return result, nil
	}

	user, err := s.DB.GetUserByID(ctx, userID)
	if err != nil {
		return RecordVerdictResult{}, cfspeed_errors.HandleDBErrors(
			err,
			nil,
			fmt.Sprintf("cannot get user %v to record a verdict", userID),
		)
	}
	if !user.CfHandle.Valid || user.CfHandle.String == "" {
		return RecordVerdictResult{}, fmt.Errorf(
			"%w, link a codeforces handle before reporting verdicts",
			cfspeed_errors.ErrInvalidRequest,
		)
	}

	check, err := s.Judge.CheckProblemSolved(ctx, user.CfHandle.String, id)
	if err != nil {
		return RecordVerdictResult{}, err
	}
	if !check.Solved {
		s.logger.Warnf(
			"%v reported %s on %s, judge has %q",
			userID,
			req.Verdict,
			id,
			check.Verdict,
		)
		return result, nil
	}
	result.Confirmed = true

	solvedAt := s.now().UTC()
	if check.Time != nil {
		solvedAt = *check.Time
	}
	inserted, err := s.DB.InsertSolvedProblem(ctx, database.InsertSolvedProblemParams{
		UserID:    userID,
		ProblemID: req.ProblemID,
		SolvedAt:  pgtype.Timestamptz{Time: solvedAt, Valid: true},
	})
	if err != nil {
		return RecordVerdictResult{}, cfspeed_errors.HandleDBErrors(
			err,
			map[string]map[string]string{
				cfspeed_errors.CodeForeignKeyConstraint: {
					"solved_problems_user_id_fkey": "user does not exist",
				},
			},
			fmt.Sprintf("cannot record %s as solved by %v", id, userID),
		)
	}
	result.Recorded = inserted > 0
	return result, nil
}
