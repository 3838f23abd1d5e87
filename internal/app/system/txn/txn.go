// Package txn runs multi-document Mongo operations inside a transaction,
// falling back to plain sequential execution when the server does not
// support transactions (standalone servers without a replica set).
//
// The fallback keeps local development and small deployments working;
// callers that need all-or-nothing semantics on a standalone server must
// order their writes so a partial failure is detectable and retryable.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn within a Mongo transaction on db's client. The context
// passed to fn carries the session; all collection operations inside fn
// must use it for the writes to be transactional.
//
// If the server rejects transactions (IsNotSupported), fn is re-run once
// without a transaction.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			log.Debug("mongo transactions unavailable, running without transaction", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		log.Debug("mongo transactions unavailable, running without transaction", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// Transaction-related server error codes that indicate the deployment
// cannot run transactions at all (as opposed to a transient failure).
const (
	codeIllegalOperation      = 20
	codeCommandNotSupported   = 51
	codeOperationNotSupported = 263
)

// IsNotSupported reports whether err means the server cannot run
// transactions (standalone mongod, no replica set, old server). It checks
// known command error codes first, then falls back to keyword matching on
// the message since drivers and vendors word this differently.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case codeIllegalOperation, codeCommandNotSupported, codeOperationNotSupported:
			return true
		}
	}

	s := strings.ToLower(err.Error())
	hasTxn := strings.Contains(s, "transaction")
	hasSession := strings.Contains(s, "session")
	if hasTxn && hasSession {
		return true
	}
	if hasTxn || hasSession {
		return strings.Contains(s, "replica set") ||
			strings.Contains(s, "not supported") ||
			strings.Contains(s, "illegal operation")
	}
	return false
}
