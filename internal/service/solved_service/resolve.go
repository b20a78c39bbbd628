package solved_service

import (
	"context"

	"github.com/google/uuid"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/database"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/catalog_service"
)

// GetSolvedFromCache reads the persisted solved set of a user. On a store
// error the returned set is empty and usable.
func (s *SolvedService) GetSolvedFromCache(
	ctx context.Context,
	userID uuid.UUID,
) (catalog_service.SolvedSet, error) {
	ids, err := s.DB.GetSolvedProblemIDs(ctx, userID)
	if err != nil {
		err = cfspeed_errors.HandleDBErrors(
			err,
			nil,
			"cannot read solved problems of user "+userID.String(),
		)
		return catalog_service.NewSolvedSet(), err
	}

	solved := make(catalog_service.SolvedSet, len(ids))
	for _, id := range ids {
		solved.Add(catalog_service.ProblemID(id))
	}
	return solved, nil
}

// FetchSolvedWithStatus rebuilds solved and attempted sets from the full
// judge history of handle. Judge failures are logged and yield empty sets.
func (s *SolvedService) FetchSolvedWithStatus(ctx context.Context, handle string) SolvedStatus {
	status := emptyStatus()

	submissions, err := s.Judge.GetUserStatus(ctx, handle, 0, 0)
	if err != nil {
		s.logger.Warnf("cannot fetch submissions of %s, continuing with empty sets, %v", handle, err)
		return status
	}

	for _, sub := range submissions {
		if sub.Problem.ContestID <= 0 {
			continue
		}
		id := catalog_service.MakeProblemID(sub.Problem.ContestID, sub.Problem.Index)
		if sub.Accepted() {
			status.Solved.Add(id)
		} else {
			status.Attempted.Add(id)
		}
	}
	for id := range status.Solved {
		delete(status.Attempted, id)
	}
	return status
}

// ResolveForUser picks the cheapest source that knows the user's history:
// the persisted set once a sync happened, the judge for a linked handle that
// was never synced, nothing otherwise. A nil user is anonymous.
func (s *SolvedService) ResolveForUser(ctx context.Context, user *database.User) SolvedStatus {
	if user == nil {
		return emptyStatus()
	}

	if user.LastCfSync.Valid {
		solved, err := s.GetSolvedFromCache(ctx, user.ID)
		if err != nil {
			s.logger.Warnf("falling back to an empty solved set for %v, %v", user.ID, err)
		}
		return SolvedStatus{
			Solved:    solved,
			Attempted: catalog_service.NewSolvedSet(),
		}
	}

	if user.CfHandle.Valid && user.CfHandle.String != "" {
		return s.FetchSolvedWithStatus(ctx, user.CfHandle.String)
	}

	return emptyStatus()
}
