package api

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/database"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/catalog_service"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/cf_service"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/solved_service"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/user_service"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	logrus.SetLevel(logrus.ErrorLevel)
	service.InitializeServices()
	os.Exit(m.Run())
}

// fakeDB stands in for *database.Queries and *pgxpool.Pool
type fakeDB struct {
	sync.Mutex
	users   map[uuid.UUID]database.User
	solved  map[uuid.UUID][]string
	pingErr error
}

func (f *fakeDB) Ping(ctx context.Context) error {
	return f.pingErr
}

func (f *fakeDB) GetUserByID(ctx context.Context, id uuid.UUID) (database.User, error) {
	f.Lock()
	defer f.Unlock()
	u, ok := f.users[id]
	if !ok {
		return database.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeDB) GetUserByCfHandle(ctx context.Context, handle string) (database.User, error) {
	f.Lock()
	defer f.Unlock()
	for _, u := range f.users {
		if u.CfHandle.Valid && strings.EqualFold(u.CfHandle.String, handle) {
			return u, nil
		}
	}
	return database.User{}, pgx.ErrNoRows
}

func (f *fakeDB) UpsertUser(ctx context.Context, arg database.UpsertUserParams) (database.User, error) {
	f.Lock()
	defer f.Unlock()
	u := f.users[arg.ID]
	u.ID, u.Email = arg.ID, arg.Email
	f.users[arg.ID] = u
	return u, nil
}

func (f *fakeDB) UpdateUserCfHandle(ctx context.Context, arg database.UpdateUserCfHandleParams) (database.User, error) {
	f.Lock()
	defer f.Unlock()
	u := f.users[arg.ID]
	u.CfHandle, u.CfRating = arg.CfHandle, arg.CfRating
	f.users[arg.ID] = u
	return u, nil
}

func (f *fakeDB) RelinkCfHandle(ctx context.Context, arg database.RelinkUserCfHandleParams) (database.User, error) {
	f.Lock()
	defer f.Unlock()
	u := f.users[arg.ID]
	u.CfHandle, u.CfRating = arg.CfHandle, arg.CfRating
	u.LastCfSync = pgtype.Timestamptz{}
	delete(f.solved, arg.ID)
	f.users[arg.ID] = u
	return u, nil
}

func (f *fakeDB) UpdateUserExtensionToken(ctx context.Context, arg database.UpdateUserExtensionTokenParams) error {
	f.Lock()
	defer f.Unlock()
	u := f.users[arg.ID]
	u.ExtensionTokenHash = arg.ExtensionTokenHash
	f.users[arg.ID] = u
	return nil
}

func (f *fakeDB) UpdateUserLastCfSync(ctx context.Context, arg database.UpdateUserLastCfSyncParams) error {
	f.Lock()
	defer f.Unlock()
	u := f.users[arg.ID]
	u.LastCfSync = arg.LastCfSync
	f.users[arg.ID] = u
	return nil
}

func (f *fakeDB) CountUsers(ctx context.Context) (int64, error) {
	f.Lock()
	defer f.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeDB) ListUsersWithCfHandle(ctx context.Context) ([]database.User, error) {
	return nil, nil
}

func (f *fakeDB) GetSolvedProblemIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	f.Lock()
	defer f.Unlock()
	return slices.Clone(f.solved[userID]), nil
}

func (f *fakeDB) insertSolved(userID uuid.UUID, id string) int64 {
	if slices.Contains(f.solved[userID], id) {
		return 0
	}
	f.solved[userID] = append(f.solved[userID], id)
	return 1
}

func (f *fakeDB) InsertSolvedProblem(ctx context.Context, arg database.InsertSolvedProblemParams) (int64, error) {
	f.Lock()
	defer f.Unlock()
	return f.insertSolved(arg.UserID, arg.ProblemID), nil
}

func (f *fakeDB) BulkInsertSolvedProblems(ctx context.Context, arg database.BulkInsertSolvedProblemsParams) (int64, error) {
	f.Lock()
	defer f.Unlock()
	var n int64
	for _, id := range arg.ProblemIds {
		n += f.insertSolved(arg.UserID, id)
	}
	return n, nil
}

type fakeJudge struct {
	users       map[string]cf_service.UserInfo
	submissions map[string][]cf_service.Submission
	err         error
}

func (j *fakeJudge) GetUserStatus(ctx context.Context, handle string, from, count int) ([]cf_service.Submission, error) {
	if j.err != nil {
		return nil, j.err
	}
	return j.submissions[handle], nil
}

func (j *fakeJudge) GetUserInfo(ctx context.Context, handle string) (cf_service.UserInfo, error) {
	if j.err != nil {
		return cf_service.UserInfo{}, j.err
	}
	info, ok := j.users[strings.ToLower(handle)]
	if !ok {
		return cf_service.UserInfo{}, errors.Join(cfspeed_errors.ErrInvalidRequest, errors.New("handle not found"))
	}
	return info, nil
}

func (j *fakeJudge) CheckProblemSolved(
	ctx context.Context,
	handle string,
	problemID catalog_service.ProblemID,
) (cf_service.SolveCheck, error) {
	if j.err != nil {
		return cf_service.SolveCheck{}, j.err
	}
	for _, submission := range j.submissions[handle] {
		if catalog_service.MakeProblemID(submission.Problem.ContestID, submission.Problem.Index) != problemID {
			continue
		}
		at := submission.CreatedAt()
		return cf_service.SolveCheck{Solved: submission.Accepted(), Verdict: submission.Verdict, Time: &at}, nil
	}
	return cf_service.SolveCheck{}, nil
}

const testCatalog = `{
	"elite": {"percentile_target": "p5", "tiers": {
		"tier1": {"problems": [
			{"contest_id": 1, "index": "A", "name": "Alpha", "rating": 800, "tags": ["greedy"], "times": {"p5": 120}},
			{"contest_id": 2, "index": "B", "name": "Beta", "rating": 900, "tags": ["math"], "times": {"p5": 180}}
		]},
		"tier2": {"problems": [
			{"contest_id": 3, "index": "C", "name": "Gamma", "tags": ["dp"], "times": {"p5": 300}}
		]}
	}}
}`

const testEliteStage = `{"percentile_target": "p5", "tiers": {
	"tier1": {"problems": [
		{"contest_id": 1, "index": "A", "name": "Alpha", "rating": 800, "tags": ["greedy"], "times": {"p5": 120}}
	]},
	"tier2": {"problems": []}
}}`

type testEnv struct {
	api   *Api
	db    *fakeDB
	judge *fakeJudge
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "categories"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "categories.json"), []byte(testCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "categories", "elite.json"), []byte(testEliteStage), 0o644); err != nil {
		t.Fatal(err)
	}

	db := &fakeDB{
		users:  make(map[uuid.UUID]database.User),
		solved: make(map[uuid.UUID][]string),
	}
	judge := &fakeJudge{
		users: map[string]cf_service.UserInfo{"tourist": {Handle: "tourist"}},
		submissions: map[string][]cf_service.Submission{
			"tourist": {{
				CreationTimeSeconds: 100,
				Problem:             cf_service.Problem{ContestID: 1, Index: "A"},
				Verdict:             "OK",
			}},
		},
	}

	catalog := &catalog_service.CatalogService{DatasetRoots: []string{root}}
	catalog.Start()
	solved := &solved_service.SolvedService{DB: db, Judge: judge}
	solved.Start()
	users := &user_service.UserService{DB: db, Judge: judge, TokenCost: bcrypt.MinCost}
	users.Start()

	return &testEnv{
		api: &Api{
			DB:                   db,
			CatalogServiceConfig: catalog,
			SolvedServiceConfig:  solved,
			UserServiceConfig:    users,
		},
		db:    db,
		judge: judge,
	}
}
