package cf_service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/catalog_service"
)

// GetUserStatus returns submissions of handle, newest first. from is 1 based,
// count <= 0 asks for the full history.
func (s *CfService) GetUserStatus(
	ctx context.Context,
	handle string,
	from, count int,
) ([]Submission, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, fmt.Errorf("%w, handle must not be empty", cfspeed_errors.ErrInvalidRequest)
	}

	params := url.Values{}
	params.Add("handle", handle)
	if from > 0 {
		params.Add("from", strconv.Itoa(from))
	}
	if count > 0 {
		params.Add("count", strconv.Itoa(count))
	}

	var submissions []Submission
	if err := s.call(ctx, "user.status", params, &submissions); err != nil {
		return nil, err
	}
	s.logger.Debugf("fetched %d submissions of %s", len(submissions), handle)
	return submissions, nil
}

// CheckProblemSolved looks for problemID among the latest submissions of
// handle. The newest matching submission decides the outcome.
func (s *CfService) CheckProblemSolved(
	ctx context.Context,
	handle string,
	problemID catalog_service.ProblemID,
) (SolveCheck, error) {
	submissions, err := s.GetUserStatus(ctx, handle, 1, recentSubmissionWindow)
	if err != nil {
		return SolveCheck{}, err
	}

	for _, sub := range submissions {
		if catalog_service.MakeProblemID(sub.Problem.ContestID, sub.Problem.Index) != problemID {
			continue
		}
		at := sub.CreatedAt()
		return SolveCheck{
			Solved:  sub.Accepted(),
			Verdict: sub.Verdict,
			Time:    &at,
		}, nil
	}
	return SolveCheck{}, nil
}
