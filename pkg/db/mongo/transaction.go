// Package mongo provides the session-transaction helper shared by the
// reservation and coupon repositories.
package mongo

import (
	"context"
	"fmt"

	apperrors "slotbook/pkg/errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// TransactionFunc runs inside one session; every repository call made with
// the SessionContext joins the same transaction.
type TransactionFunc func(ctx mongo.SessionContext) error

type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

type txManager struct {
	client *mongo.Client
}

func NewTransactionManager(client *mongo.Client) TransactionManager {
	return &txManager{client: client}
}

// ExecuteTransaction runs fn atomically, letting the driver retry transient
// commit conflicts. Domain rejections raised inside fn, such as a
// reservation conflict or an exhausted coupon, come back as the AppError fn
// returned so handlers keep their status codes; anything else is wrapped as
// a transaction failure.
func (m *txManager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	})
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return fmt.Errorf("transaction failed: %w", err)
}
