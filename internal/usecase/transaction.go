package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Transaction runs operations in order. When one fails, the compensations of
// the operations that already ran are executed in reverse.
type Transaction struct {
	operations    []Operation
	compensations []Compensation
	log           *logrus.Entry
}

type Operation struct {
	Name string
	Fn   func(context.Context) error
}

type Compensation struct {
	Name string
	Fn   func(context.Context) error
}

func NewTransaction(log *logrus.Entry) *Transaction {
	return &Transaction{
		operations:    []Operation{},
		compensations: []Compensation{},
		log:           log,
	}
}

// AddStep registers an operation and its compensation together. compensate
// may be nil for steps that need no undo.
func (t *Transaction) AddStep(name string, fn, compensate func(context.Context) error) {
	if compensate == nil {
		compensate = func(context.Context) error { return nil }
	}
	t.operations = append(t.operations, Operation{name, fn})
	t.compensations = append(t.compensations, Compensation{name, compensate})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, op := range t.operations {
		if err := op.Fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", op.Name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAtIndex int) {
	for i := failedAtIndex - 1; i >= 0; i-- {
		comp := t.compensations[i]
		if err := comp.Fn(ctx); err != nil {
			t.log.WithError(err).WithField("compensation", comp.Name).
				Error("compensation failed, records may be inconsistent")
		}
	}
}
