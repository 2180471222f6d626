package selector

import (
	"context"
	"time"
)

// Op names the kind of query a selector ran.
type Op string

const (
	OpList    Op = "list"
	OpResolve Op = "resolve"
	OpResult  Op = "result"
)

// QueryEvent describes one executed query.
type QueryEvent struct {
	Table    string
	Op       Op
	SQL      string
	Args     []any
	Rows     int
	Duration time.Duration
	Err      error
}

// QueryHook is called after every query, successful or not.
type QueryHook func(ctx context.Context, ev QueryEvent)
