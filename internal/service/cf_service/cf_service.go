package cf_service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/metrics"
	"github.com/sirupsen/logrus"
)

// statusError is a non 2xx answer that did not carry a codeforces envelope
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("codeforces answered with status %d", e.code)
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= http.StatusInternalServerError
	}
	// transport errors and timeouts
	return !errors.Is(err, cfspeed_errors.ErrHttpResponse) && !errors.Is(err, cfspeed_errors.ErrInternal)
}

func (s *CfService) Start() {
	s.logger = logrus.WithFields(logrus.Fields{
		"from": fromCfService,
	})

	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	baseURL, err := url.Parse(strings.TrimSuffix(s.BaseURL, "/"))
	if err != nil {
		panic(fmt.Sprintf("invalid codeforces base url %q, %v", s.BaseURL, err))
	}
	s.baseURL = baseURL

	if s.Timeout <= 0 {
		s.Timeout = defaultTimeout
	}
	if s.MaxAttempts <= 0 {
		s.MaxAttempts = defaultMaxAttempts
	}
	if s.RetryDelay <= 0 {
		s.RetryDelay = defaultRetryDelay
	}
	if s.HTTPClient == nil {
		s.HTTPClient = http.DefaultClient
	}

	s.breaker = circuitbreaker.New[*cfResponse](circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    30 * s.Timeout,
		Timeout:     6 * s.Timeout,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(from, to circuitbreaker.State) {
			s.logger.Warnf("codeforces circuit breaker moved from %s to %s", from.String(), to.String())
		},
	})
	s.retrier = retry.New[*cfResponse](retry.Config{
		MaxAttempts:   s.MaxAttempts,
		InitialDelay:  s.RetryDelay,
		MaxDelay:      10 * s.RetryDelay,
		Multiplier:    2.0,
		BackoffPolicy: retry.BackoffExponential,
		Jitter:        true,
		IsRetryable:   isRetryable,
	})

	s.logger.Infof("codeforces client started with base url %s", s.baseURL)
}

// get performs one http round trip. A FAILED envelope is not an error here,
// it is a valid answer about a bad request and must not trip the breaker.
func (s *CfService) get(ctx context.Context, endpoint string) (*cfResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w, failed to create http request with ctx: %w", cfspeed_errors.ErrInternal, err)
	}

	res, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("no response from %v, %w", endpoint, cfspeed_errors.WrapIPCError(err))
	}
	defer res.Body.Close()
	s.logger.Debugf("received %d from %v", res.StatusCode, endpoint)

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read response of %v, %w", endpoint, cfspeed_errors.WrapIPCError(err))
	}

	var resJson cfResponse
	if err := json.Unmarshal(body, &resJson); err != nil || resJson.Status == "" {
		if res.StatusCode != http.StatusOK {
			return nil, &statusError{code: res.StatusCode}
		}
		return nil, fmt.Errorf("%w, cannot decode response of %v, %v", cfspeed_errors.ErrHttpResponse, endpoint, err)
	}
	if res.StatusCode >= http.StatusInternalServerError || res.StatusCode == http.StatusTooManyRequests {
		return nil, &statusError{code: res.StatusCode}
	}
	return &resJson, nil
}

// call queries one api method and decodes its result into out
func (s *CfService) call(ctx context.Context, method string, params url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	endpoint := *s.baseURL
	endpoint.Path += "/" + method
	endpoint.RawQuery = params.Encode()

	resJson, err := s.breaker.Execute(ctx, func(ctx context.Context) (*cfResponse, error) {
		return s.retrier.Do(ctx, func(ctx context.Context) (*cfResponse, error) {
			return s.get(ctx, endpoint.String())
		})
	})
	if err != nil {
		metrics.JudgeRequests.WithLabelValues(method, "unavailable").Inc()
		err = fmt.Errorf("%w, %s failed, %w", cfspeed_errors.ErrUpstreamUnavailable, method, err)
		s.logger.Error(err)
		return err
	}

	if resJson.Status == statusFailed {
		metrics.JudgeRequests.WithLabelValues(method, "failed").Inc()
		err = fmt.Errorf("%w, %s returned FAILED status, %s", cfspeed_errors.ErrInvalidRequest, method, resJson.Comment)
		s.logger.Warn(err)
		return err
	} else if resJson.Status != statusOK {
		metrics.JudgeRequests.WithLabelValues(method, "unavailable").Inc()
		err = fmt.Errorf("%w, %s response status is %q", cfspeed_errors.ErrUpstreamUnavailable, method, resJson.Status)
		s.logger.Error(err)
		return err
	}

	if err := json.Unmarshal(resJson.Result, out); err != nil {
		metrics.JudgeRequests.WithLabelValues(method, "malformed").Inc()
		err = fmt.Errorf("%w, cannot decode %s result to %T, %w", cfspeed_errors.ErrUpstreamUnavailable, method, out, err)
		s.logger.Error(err)
		return err
	}

	metrics.JudgeRequests.WithLabelValues(method, "ok").Inc()
	return nil
}
