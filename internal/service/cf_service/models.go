package cf_service

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"
	"github.com/sirupsen/logrus"
)

const (
	fromCfService = "cf-service"

	DefaultBaseURL     = "https://codeforces.com/api"
	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 3
	defaultRetryDelay  = 500 * time.Millisecond

	statusOK     = "OK"
	statusFailed = "FAILED"

	VerdictOK = "OK"

	// number of recent submissions inspected by CheckProblemSolved
	recentSubmissionWindow = 20
)

type CfService struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
	HTTPClient  *http.Client

	baseURL *url.URL
	breaker circuitbreaker.CircuitBreaker[*cfResponse]
	retrier retry.Retry[*cfResponse]
	logger  *logrus.Entry
}

// cfResponse is the envelope every codeforces api method answers with
type cfResponse struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}

type Problem struct {
	ContestID int      `json:"contestId"`
	Index     string   `json:"index"`
	Name      string   `json:"name"`
	Rating    *int     `json:"rating,omitempty"`
	Tags      []string `json:"tags"`
}

type Submission struct {
	ID                  int64   `json:"id"`
	ContestID           int     `json:"contestId"`
	CreationTimeSeconds int64   `json:"creationTimeSeconds"`
	Problem             Problem `json:"problem"`
	Verdict             string  `json:"verdict"`
}

func (s Submission) CreatedAt() time.Time {
	return time.Unix(s.CreationTimeSeconds, 0).UTC()
}

func (s Submission) Accepted() bool {
	return s.Verdict == VerdictOK
}

type UserInfo struct {
	Handle    string `json:"handle"`
	Rating    *int   `json:"rating,omitempty"`
	MaxRating *int   `json:"maxRating,omitempty"`
	Rank      string `json:"rank,omitempty"`
}

type SolveCheck struct {
	Solved  bool       `json:"solved"`
	Verdict string     `json:"verdict,omitempty"`
	Time    *time.Time `json:"time,omitempty"`
}
