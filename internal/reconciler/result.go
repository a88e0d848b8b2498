package reconciler

import (
	"errors"
	"fmt"
)

// Op names the kind of call that failed during a commit
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Failure is one failed call of a commit
type Failure struct {
	Op           Op
	DataSourceID int64
	Err          error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s assignment for data source %d: %v", f.Op, f.DataSourceID, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// CommitResult summarizes what a commit applied
type CommitResult struct {
	AgentID  int64
	Created  []int64
	Updated  []int64
	Removed  []int64
	Failures []Failure
	// Lost lists data sources whose assignment was deleted but not recreated
	Lost []int64
}

func (r *CommitResult) fail(op Op, id int64, err error) {
	r.Failures = append(r.Failures, Failure{Op: op, DataSourceID: id, Err: err})
}

// Changed reports whether at least one call succeeded
func (r *CommitResult) Changed() bool {
	return len(r.Created)+len(r.Updated)+len(r.Removed) > 0
}

// Err joins every failure, nil when all calls succeeded
func (r *CommitResult) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}
