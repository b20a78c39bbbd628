package cfspeed_errors

import (
	"database/sql"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

const (
	CodeUniqueConstraint     = "23505"
	CodeForeignKeyConstraint = "23503"
)

var (
	ErrInternal            = errors.New("internal service error. please try again later")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnAuthorized        = errors.New("user not allowed to perform this action")
	ErrNotFound            = errors.New("entity not found")
	ErrEntityAlreadyExist  = errors.New("entity with given key already exist")
	ErrHttpResponse        = errors.New("error occurred with http response")
	ErrDatasetUnavailable  = errors.New("problem dataset is unavailable")
	ErrStageNotFound       = errors.New("requested stage or tier does not exist")
	ErrNoCandidates        = errors.New("no problems left to solve in this tier")
	ErrUpstreamUnavailable = errors.New("codeforces is unavailable right now. please try again later")
)

func HandleDBErrors(
	err error,
	errMsgs map[string]map[string]string,
	contextMessage string,
) error {
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		log.Error(fmt.Sprintf("%s, %v", contextMessage, ErrNotFound))
		return fmt.Errorf("%w, %s", ErrNotFound, contextMessage)
	}

	// assume its an internal error first
	wrapped := fmt.Errorf(
		"%w, %s, %w",
		ErrInternal,
		contextMessage,
		err,
	)

	// check if its a pg error
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		log.Error(wrapped)
		return wrapped
	}

	if errMsgs == nil {
		log.Warnf("got null errMsgs")
		log.Error(wrapped)
		return wrapped
	}

	switch pgErr.Code {
	case CodeForeignKeyConstraint:
		msgForeignKey, ok := errMsgs[CodeForeignKeyConstraint]
		if !ok {
			log.Warnf("no msg map found for foreign key constraint.")
			return fmt.Errorf("%w, %s", ErrInvalidRequest, pgErr.Detail)
		}
		return HandleForeignKeyError(pgErr, msgForeignKey)
	case CodeUniqueConstraint:
		msgUniqueConstraint, ok := errMsgs[CodeUniqueConstraint]
		if !ok {
			log.Warnf("no msg map found for unique key constraint.")
			return fmt.Errorf("%w, %s", ErrEntityAlreadyExist, pgErr.Detail)
		}
		return HandleUniqueKeyError(pgErr, msgUniqueConstraint)
	}

	// unknown error
	log.Error(wrapped)
	return wrapped
}

func HandleForeignKeyError(pgErr *pgconn.PgError, msgForeignKey map[string]string) error {
	msg, ok := msgForeignKey[pgErr.ConstraintName]
	if !ok {
		log.Warnf("unknown foreign key violation, %s", pgErr.ConstraintName)
		msg = pgErr.Detail
	}
	err := fmt.Errorf("%w, %s", ErrInvalidRequest, msg)
	log.Error(err)
	return err
}

func HandleUniqueKeyError(pgErr *pgconn.PgError, msgUniqueConstraint map[string]string) error {
	msg, ok := msgUniqueConstraint[pgErr.ConstraintName]
	if !ok {
		log.Warnf("unknown unique key violation, %s", pgErr.ConstraintName)
		msg = pgErr.Detail
	}
	err := fmt.Errorf("%w, %s", ErrEntityAlreadyExist, msg)
	log.Error(err)
	return err
}

// WrapIPCError describes a failed call that leaves the process (judge api,
// db socket). The result wraps ErrUpstreamUnavailable and err itself, so
// context cancellation stays detectable.
func WrapIPCError(err error) error {
	var opError *net.OpError
	if errors.As(err, &opError) {
		return fmt.Errorf(
			"%w, %q operation failed, network: %s, dest: %v, %w",
			ErrUpstreamUnavailable,
			opError.Op,
			opError.Net,
			opError.Addr,
			err,
		)
	}

	// unknown error
	return fmt.Errorf("%w, %w", ErrUpstreamUnavailable, err)
}
