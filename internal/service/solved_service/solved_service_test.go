package solved_service

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/database"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/catalog_service"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/cf_service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logrus.SetLevel(logrus.WarnLevel)
	service.InitializeServices()
	os.Exit(m.Run())
}

type solvedRow struct {
	problemID string
	solvedAt  time.Time
}

// fakeStore mirrors the primary key and on-conflict behaviour of solved_problems
type fakeStore struct {
	sync.Mutex
	users   map[uuid.UUID]database.User
	solved  map[uuid.UUID][]solvedRow
	readErr error
}

func newFakeStore(users ...database.User) *fakeStore {
	f := &fakeStore{
		users:  make(map[uuid.UUID]database.User),
		solved: make(map[uuid.UUID][]solvedRow),
	}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeStore) GetUserByID(ctx context.Context, id uuid.UUID) (database.User, error) {
	f.Lock()
	defer f.Unlock()
	u, ok := f.users[id]
	if !ok {
		return database.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeStore) GetSolvedProblemIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	f.Lock()
	defer f.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	var ids []string
	for _, row := range f.solved[userID] {
		ids = append(ids, row.problemID)
	}
	return ids, nil
}

func (f *fakeStore) insert(userID uuid.UUID, problemID string, at time.Time) int64 {
	for _, row := range f.solved[userID] {
		if row.problemID == problemID {
			return 0
		}
	}
	f.solved[userID] = append(f.solved[userID], solvedRow{problemID, at})
	return 1
}

func (f *fakeStore) InsertSolvedProblem(ctx context.Context, arg database.InsertSolvedProblemParams) (int64, error) {
	f.Lock()
	defer f.Unlock()
	return f.insert(arg.UserID, arg.ProblemID, arg.SolvedAt.Time), nil
}

func (f *fakeStore) BulkInsertSolvedProblems(ctx context.Context, arg database.BulkInsertSolvedProblemsParams) (int64, error) {
	f.Lock()
	defer f.Unlock()
	var n int64
	for i, id := range arg.ProblemIds {
		n += f.insert(arg.UserID, id, arg.SolvedAts[i].Time)
	}
	return n, nil
}

func (f *fakeStore) UpdateUserLastCfSync(ctx context.Context, arg database.UpdateUserLastCfSyncParams) error {
	f.Lock()
	defer f.Unlock()
	u, ok := f.users[arg.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	u.LastCfSync = arg.LastCfSync
	f.users[arg.ID] = u
	return nil
}

func (f *fakeStore) ListUsersWithCfHandle(ctx context.Context) ([]database.User, error) {
	f.Lock()
	defer f.Unlock()
	var users []database.User
	for _, u := range f.users {
		if u.CfHandle.Valid {
			users = append(users, u)
		}
	}
	return users, nil
}

type fakeJudge struct {
	submissions map[string][]cf_service.Submission
	err         error
	calls       int
}

func (j *fakeJudge) GetUserStatus(ctx context.Context, handle string, from, count int) ([]cf_service.Submission, error) {
	j.calls++
	if j.err != nil {
		return nil, j.err
	}
	return j.submissions[handle], nil
}

// CheckProblemSolved lets the newest matching submission decide, like the client
func (j *fakeJudge) CheckProblemSolved(
	ctx context.Context,
	handle string,
	problemID catalog_service.ProblemID,
) (cf_service.SolveCheck, error) {
	submissions, err := j.GetUserStatus(ctx, handle, 1, 20)
	if err != nil {
		return cf_service.SolveCheck{}, err
	}
	for _, submission := range submissions {
		if catalog_service.MakeProblemID(submission.Problem.ContestID, submission.Problem.Index) != problemID {
			continue
		}
		at := submission.CreatedAt()
		return cf_service.SolveCheck{Solved: submission.Accepted(), Verdict: submission.Verdict, Time: &at}, nil
	}
	return cf_service.SolveCheck{}, nil
}

func sub(contestID int, index, verdict string, at int64) cf_service.Submission {
	return cf_service.Submission{
		ContestID:           contestID,
		CreationTimeSeconds: at,
		Problem:             cf_service.Problem{ContestID: contestID, Index: index},
		Verdict:             verdict,
	}
}

// newest first, like the judge
var touristHistory = []cf_service.Submission{
	sub(1900, "A", "OK", 400),
	sub(1850, "B1", "WRONG_ANSWER", 300),
	sub(1900, "A", "WRONG_ANSWER", 200),
	sub(1873, "C", "OK", 150),
	sub(0, "A", "OK", 120),
	sub(1900, "A", "OK", 100),
}

func newUser(handle string, synced bool) database.User {
	u := database.User{ID: uuid.New(), Email: handle + "@example.com"}
	if handle != "" {
		u.CfHandle = pgtype.Text{String: handle, Valid: true}
	}
	if synced {
		u.LastCfSync = pgtype.Timestamptz{Time: time.Now(), Valid: true}
	}
	return u
}

func newTestSolvedService(store *fakeStore, judge *fakeJudge) *SolvedService {
	s := &SolvedService{DB: store, Judge: judge}
	s.Start()
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestFetchSolvedWithStatus(t *testing.T) {
	judge := &fakeJudge{submissions: map[string][]cf_service.Submission{"tourist": touristHistory}}
	s := newTestSolvedService(newFakeStore(), judge)

	status := s.FetchSolvedWithStatus(context.Background(), "tourist")
	assert.Equal(t, catalog_service.NewSolvedSet("1900A", "1873C"), status.Solved)
	assert.Equal(t, catalog_service.NewSolvedSet("1850B1"), status.Attempted)
}

func TestFetchSolvedWithStatusSwallowsJudgeErrors(t *testing.T) {
	judge := &fakeJudge{err: cfspeed_errors.ErrUpstreamUnavailable}
	s := newTestSolvedService(newFakeStore(), judge)

	status := s.FetchSolvedWithStatus(context.Background(), "tourist")
	assert.Equal(t, 0, status.Solved.Len())
	assert.Equal(t, 0, status.Attempted.Len())
}

func TestResolveForUser(t *testing.T) {
	synced := newUser("tourist", true)
	unsynced := newUser("tourist", false)
	unlinked := newUser("", false)
	store := newFakeStore(synced, unsynced, unlinked)
	store.solved[synced.ID] = []solvedRow{{problemID: "1811A"}}
	judge := &fakeJudge{submissions: map[string][]cf_service.Submission{"tourist": touristHistory}}
	s := newTestSolvedService(store, judge)
	ctx := context.Background()

	status := s.ResolveForUser(ctx, &synced)
	assert.Equal(t, catalog_service.NewSolvedSet("1811A"), status.Solved)
	assert.Equal(t, 0, judge.calls)

	status = s.ResolveForUser(ctx, &unsynced)
	assert.True(t, status.Solved.Has("1900A"))
	assert.Equal(t, 1, judge.calls)

	status = s.ResolveForUser(ctx, &unlinked)
	assert.Equal(t, 0, status.Solved.Len())

	status = s.ResolveForUser(ctx, nil)
	assert.Equal(t, 0, status.Solved.Len())
	assert.Equal(t, 1, judge.calls)
}

func TestGetSolvedFromCacheDegrades(t *testing.T) {
	u := newUser("tourist", true)
	store := newFakeStore(u)
	store.readErr = errors.New("connection reset")
	s := newTestSolvedService(store, &fakeJudge{})

	solved, err := s.GetSolvedFromCache(context.Background(), u.ID)
	assert.ErrorIs(t, err, cfspeed_errors.ErrInternal)
	require.NotNil(t, solved)
	assert.Equal(t, 0, solved.Len())

	status := s.ResolveForUser(context.Background(), &u)
	assert.Equal(t, 0, status.Solved.Len())
}

func TestSyncUser(t *testing.T) {
	u := newUser("tourist", false)
	store := newFakeStore(u)
	store.solved[u.ID] = []solvedRow{{problemID: "1873C", solvedAt: time.Unix(5, 0)}}
	judge := &fakeJudge{submissions: map[string][]cf_service.Submission{"tourist": touristHistory}}
	s := newTestSolvedService(store, judge)

	result, err := s.SyncUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SyncedCount)
	assert.Equal(t, int64(1), result.Inserted)

	rows := store.solved[u.ID]
	require.Len(t, rows, 2)
	// first seen in response order
	assert.Equal(t, "1900A", rows[1].problemID)
	assert.Equal(t, int64(400), rows[1].solvedAt.Unix())
	// existing rows keep their timestamp
	assert.Equal(t, int64(5), rows[0].solvedAt.Unix())

	assert.True(t, store.users[u.ID].LastCfSync.Valid)
	assert.Equal(t, result.Timestamp, store.users[u.ID].LastCfSync.Time)

	again, err := s.SyncUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), again.Inserted)
}

func TestSyncUserErrors(t *testing.T) {
	unlinked := newUser("", false)
	linked := newUser("tourist", false)
	store := newFakeStore(unlinked, linked)
	judge := &fakeJudge{err: cfspeed_errors.ErrUpstreamUnavailable}
	s := newTestSolvedService(store, judge)

	_, err := s.SyncUser(context.Background(), unlinked.ID)
	assert.ErrorIs(t, err, cfspeed_errors.ErrInvalidRequest)

	_, err = s.SyncUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, cfspeed_errors.ErrNotFound)

	_, err = s.SyncUser(context.Background(), linked.ID)
	assert.ErrorIs(t, err, cfspeed_errors.ErrUpstreamUnavailable)
	assert.False(t, store.users[linked.ID].LastCfSync.Valid)
}

func TestRecordVerdict(t *testing.T) {
	u := newUser("tourist", true)
	store := newFakeStore(u)
	s := newTestSolvedService(store, &fakeJudge{submissions: map[string][]cf_service.Submission{
		"tourist": touristHistory,
	}})
	ctx := context.Background()

	res, err := s.RecordVerdict(ctx, u.ID, RecordVerdictRequest{ProblemID: "1900A", Verdict: "WRONG_ANSWER"})
	require.NoError(t, err)
	assert.False(t, res.Recorded)
	assert.Empty(t, store.solved[u.ID])

	res, err = s.RecordVerdict(ctx, u.ID, RecordVerdictRequest{ProblemID: "1900A", Verdict: "OK"})
	require.NoError(t, err)
	assert.True(t, res.Confirmed)
	assert.True(t, res.Recorded)
	require.Len(t, store.solved[u.ID], 1)
	// solved_at comes from the judge, not the report
	assert.Equal(t, time.Unix(400, 0).UTC(), store.solved[u.ID][0].solvedAt)

	res, err = s.RecordVerdict(ctx, u.ID, RecordVerdictRequest{ProblemID: "1900A", Verdict: "OK"})
	require.NoError(t, err)
	assert.False(t, res.Recorded)
	assert.Len(t, store.solved[u.ID], 1)

	_, err = s.RecordVerdict(ctx, u.ID, RecordVerdictRequest{ProblemID: "not-a-problem", Verdict: "OK"})
	assert.ErrorIs(t, err, cfspeed_errors.ErrInvalidInput)

	_, err = s.RecordVerdict(ctx, u.ID, RecordVerdictRequest{ProblemID: "1900A"})
	assert.ErrorIs(t, err, cfspeed_errors.ErrInvalidInput)
}

func TestRecordVerdictNeedsJudgeConfirmation(t *testing.T) {
	u := newUser("tourist", true)
	store := newFakeStore(u)
	judge := &fakeJudge{submissions: map[string][]cf_service.Submission{
		"tourist": touristHistory,
	}}
	s := newTestSolvedService(store, judge)
	ctx := context.Background()

	// latest submission on 1850B1 is a wrong answer
	res, err := s.RecordVerdict(ctx, u.ID, RecordVerdictRequest{ProblemID: "1850B1", Verdict: "OK"})
	require.NoError(t, err)
	assert.False(t, res.Confirmed)
	assert.False(t, res.Recorded)

	// never submitted
	res, err = s.RecordVerdict(ctx, u.ID, RecordVerdictRequest{ProblemID: "1999F", Verdict: "OK"})
	require.NoError(t, err)
	assert.False(t, res.Confirmed)
	assert.Empty(t, store.solved[u.ID])

	judge.err = cfspeed_errors.ErrUpstreamUnavailable
	_, err = s.RecordVerdict(ctx, u.ID, RecordVerdictRequest{ProblemID: "1900A", Verdict: "OK"})
	assert.ErrorIs(t, err, cfspeed_errors.ErrUpstreamUnavailable)
	assert.Empty(t, store.solved[u.ID])

	unlinked := newUser("", false)
	store.users[unlinked.ID] = unlinked
	_, err = s.RecordVerdict(ctx, unlinked.ID, RecordVerdictRequest{ProblemID: "1900A", Verdict: "OK"})
	assert.ErrorIs(t, err, cfspeed_errors.ErrInvalidRequest)
}

func TestSyncJobRunOnce(t *testing.T) {
	a := newUser("tourist", false)
	b := newUser("petr", false)
	c := newUser("", false)
	store := newFakeStore(a, b, c)
	judge := &fakeJudge{submissions: map[string][]cf_service.Submission{
		"tourist": touristHistory,
		"petr":    {sub(1811, "A", "OK", 10)},
	}}
	job := &SyncJob{Service: newTestSolvedService(store, judge)}

	assert.Equal(t, 2, job.RunOnce(context.Background()))
	assert.Len(t, store.solved[a.ID], 2)
	assert.Len(t, store.solved[b.ID], 1)
	assert.Empty(t, store.solved[c.ID])
}

func TestSyncJobRejectsBadSchedule(t *testing.T) {
	job := &SyncJob{
		Service:  newTestSolvedService(newFakeStore(), &fakeJudge{}),
		Schedule: "every now and then",
	}
	assert.Error(t, job.Start())

	job.Schedule = "@every 1h"
	require.NoError(t, job.Start())
	job.Stop()
}
