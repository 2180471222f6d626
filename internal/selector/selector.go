// Package selector binds list views to SQL tables and cascades selections
// from a parent list into its linked child list and result sink.
package selector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	// ErrInvalidIdentifier is returned when a table or column name is not a
	// plain SQL identifier.
	ErrInvalidIdentifier = errors.New("selector: invalid identifier")
	// ErrRowNotFound is returned when the selected display value has no
	// backing row.
	ErrRowNotFound = errors.New("selector: selected row not found")
	// ErrLinkCycle is returned when a link would make a selector its own
	// descendant.
	ErrLinkCycle = errors.New("selector: link would form a cycle")
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Querier runs a SELECT. *sql.DB, *sql.Conn and *sql.Tx all satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// ListView is the selectable list a Selector renders into.
type ListView interface {
	SetItems(items []string)
	Clear()
	// Selected reports the display value of the current selection.
	Selected() (string, bool)
}

// Sink displays the record of the current selection.
type Sink interface {
	SetText(text string)
}

// Selector is a list view bound to one display field of one table.
type Selector struct {
	db    Querier
	view  ListView
	hook  QueryHook
	table string
	field string
	idCol string
	sort  []string

	sqlSelect string
	sqlSort   string

	// set when this selector is the child of another
	linkField string
	filter    sql.NullInt64

	child        *Selector
	sink         Sink
	resultFields []string
}

// Option configures a Selector.
type Option func(*Selector)

// WithSort orders the listing by fields instead of the display field.
func WithSort(fields ...string) Option {
	return func(s *Selector) { s.sort = append([]string(nil), fields...) }
}

// WithQueryHook observes every query the selector runs.
func WithQueryHook(h QueryHook) Option {
	return func(s *Selector) { s.hook = h }
}

// WithIDColumn overrides the surrogate key column, "_id" by default.
func WithIDColumn(name string) Option {
	return func(s *Selector) { s.idCol = name }
}

// New returns a selector listing field from table into view.
func New(db Querier, view ListView, table, field string, opts ...Option) (*Selector, error) {
	s := &Selector{
		db:    db,
		view:  view,
		table: table,
		field: field,
		idCol: "_id",
	}
	for _, opt := range opts {
		opt(s)
	}
	idents := append([]string{table, field, s.idCol}, s.sort...)
	if err := checkIdents(idents...); err != nil {
		return nil, err
	}

	s.sqlSelect = fmt.Sprintf("SELECT %s, %s FROM %s", s.field, s.idCol, s.table)
	if len(s.sort) > 0 {
		s.sqlSort = "ORDER BY " + strings.Join(s.sort, ",")
	} else {
		s.sqlSort = "ORDER BY " + s.field
	}
	return s, nil
}

func (s *Selector) Table() string { return s.table }

func (s *Selector) Field() string { return s.field }

// Filter is the parent key the current listing was restricted to.
func (s *Selector) Filter() sql.NullInt64 { return s.filter }

// LinkField is the foreign key column set by the parent's Link call.
func (s *Selector) LinkField() string { return s.linkField }

func (s *Selector) Child() *Selector { return s.child }

// Clear empties the visible list. Stored rows are untouched.
func (s *Selector) Clear() {
	s.view.Clear()
}

// Link makes child the downstream selector of s. foreignKey is the column of
// the child's table holding the parent's row id. A second call replaces the
// previous link. child must not be s or one of its ancestors.
func (s *Selector) Link(child *Selector, foreignKey string) error {
	if err := checkIdents(foreignKey); err != nil {
		return err
	}
	for d := child; d != nil; d = d.child {
		if d == s {
			return fmt.Errorf("%w: %s.%s", ErrLinkCycle, child.table, foreignKey)
		}
	}
	s.child = child
	child.linkField = foreignKey
	return nil
}

// LinkResult attaches sink to display fields of the selected row. With no
// fields every column is shown.
func (s *Selector) LinkResult(sink Sink, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{"*"}
	}
	for _, f := range fields {
		if f == "*" {
			continue
		}
		if err := checkIdents(f); err != nil {
			return err
		}
	}
	s.sink = sink
	s.resultFields = append([]string(nil), fields...)
	return nil
}

// ReQuery reloads the list. A valid filter restricts it to rows whose link
// field equals the filter; that only applies once s has been linked as a
// child. Every downstream list and sink is cleared afterwards.
func (s *Selector) ReQuery(ctx context.Context, filter sql.NullInt64) error {
	var (
		query string
		args  []any
	)
	if filter.Valid && s.linkField != "" {
		query = fmt.Sprintf("%s WHERE %s=? %s", s.sqlSelect, s.linkField, s.sqlSort)
		args = []any{filter.Int64}
	} else {
		query = s.sqlSelect + " " + s.sqlSort
	}

	var items []string
	err := s.query(ctx, OpList, query, args, func(rows *sql.Rows) error {
		var (
			display sql.NullString
			id      int64
		)
		if err := rows.Scan(&display, &id); err != nil {
			return err
		}
		items = append(items, display.String)
		return nil
	})
	if err != nil {
		return fmt.Errorf("list %s.%s: %w", s.table, s.field, err)
	}

	s.filter = filter
	s.view.SetItems(items)
	if s.child != nil {
		s.child.reset()
	}
	if s.sink != nil {
		s.sink.SetText("")
	}
	return nil
}

// reset clears s and everything below it.
func (s *Selector) reset() {
	s.view.Clear()
	if s.sink != nil {
		s.sink.SetText("")
	}
	if s.child != nil {
		s.child.reset()
	}
}

// OnSelectionChanged handles a selection event from the view: it resolves
// the selected row, re-queries the child with that row's id and fills the
// result sink. Without a selection it does nothing.
func (s *Selector) OnSelectionChanged(ctx context.Context) error {
	value, ok := s.view.Selected()
	if !ok {
		return nil
	}

	where, args := s.selectedPredicate(value)
	id, err := s.resolveID(ctx, where, args)
	if err != nil {
		return err
	}

	if s.child != nil {
		if err := s.child.ReQuery(ctx, sql.NullInt64{Int64: id, Valid: true}); err != nil {
			return err
		}
	}

	if s.sink != nil {
		rec, err := s.record(ctx, where, args)
		if err != nil {
			return err
		}
		s.sink.SetText(rec.String())
	}
	return nil
}

// selectedPredicate matches the display value, narrowed to the active parent
// filter so equal titles under different parents stay apart.
func (s *Selector) selectedPredicate(value string) (string, []any) {
	if s.filter.Valid && s.linkField != "" {
		return fmt.Sprintf("WHERE %s=? AND %s=?", s.field, s.linkField), []any{value, s.filter.Int64}
	}
	return fmt.Sprintf("WHERE %s=?", s.field), []any{value}
}

// resolveID returns the id of the first row matching where. Duplicate
// display values are not an error; the first row in result order wins.
func (s *Selector) resolveID(ctx context.Context, where string, args []any) (int64, error) {
	var (
		id    int64
		found bool
	)
	query := s.sqlSelect + " " + where
	err := s.query(ctx, OpResolve, query, args, func(rows *sql.Rows) error {
		if found {
			return nil
		}
		var display sql.NullString
		if err := rows.Scan(&display, &id); err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("resolve %s.%s: %w", s.table, s.field, err)
	}
	if !found {
		return 0, fmt.Errorf("resolve %s.%s=%v: %w", s.table, s.field, args[0], ErrRowNotFound)
	}
	return id, nil
}

func (s *Selector) record(ctx context.Context, where string, args []any) (Record, error) {
	var (
		rec   Record
		found bool
	)
	query := fmt.Sprintf("SELECT %s FROM %s %s", strings.Join(s.resultFields, ","), s.table, where)
	err := s.query(ctx, OpResult, query, args, func(rows *sql.Rows) error {
		if found {
			return nil
		}
		r, err := scanRecord(rows)
		if err != nil {
			return err
		}
		rec, found = r, true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("result %s: %w", s.table, err)
	}
	if !found {
		return nil, fmt.Errorf("result %s.%s=%v: %w", s.table, s.field, args[0], ErrRowNotFound)
	}
	return rec, nil
}

// query runs q, calls scan for each row and reports the execution to the hook.
func (s *Selector) query(ctx context.Context, op Op, q string, args []any, scan func(*sql.Rows) error) (err error) {
	start := time.Now()
	n := 0
	defer func() {
		if s.hook == nil {
			return
		}
		s.hook(ctx, QueryEvent{
			Table:    s.table,
			Op:       op,
			SQL:      q,
			Args:     args,
			Rows:     n,
			Duration: time.Since(start),
			Err:      err,
		})
	}()

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err = scan(rows); err != nil {
			return err
		}
		n++
	}
	return rows.Err()
}

func checkIdents(names ...string) error {
	for _, n := range names {
		if !identPattern.MatchString(n) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, n)
		}
	}
	return nil
}
