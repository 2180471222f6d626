package app

import (
	"context"
	"database/sql"

	"github.com/jask/paintingdb/internal/config"
	"github.com/jask/paintingdb/internal/selector"
)

// Views are the display surfaces the chain renders into.
type Views struct {
	Parent selector.ListView
	Child  selector.ListView
	Result selector.Sink
}

// Chain is the configured parent and child selector pair.
type Chain struct {
	Parent *selector.Selector
	Child  *selector.Selector
}

// BuildChain constructs both selectors from c.Config.Browser, links them and
// runs the initial unfiltered query on the parent.
func BuildChain(ctx context.Context, c *Context, views Views) (Chain, error) {
	b := c.Config.Browser
	hook := selector.WithQueryHook(c.QueryHook())

	parent, err := selector.New(c.DB, views.Parent, b.Parent.Table, b.Parent.Field, listOptions(b.Parent, hook)...)
	if err != nil {
		return Chain{}, err
	}
	child, err := selector.New(c.DB, views.Child, b.Child.Table, b.Child.Field, listOptions(b.Child, hook)...)
	if err != nil {
		return Chain{}, err
	}

	if err := parent.Link(child, b.Child.LinkField); err != nil {
		return Chain{}, err
	}
	if views.Result != nil {
		if err := child.LinkResult(views.Result, b.Result.Fields...); err != nil {
			return Chain{}, err
		}
	}

	if err := parent.ReQuery(ctx, sql.NullInt64{}); err != nil {
		return Chain{}, err
	}
	return Chain{Parent: parent, Child: child}, nil
}

func listOptions(l config.ListConfig, hook selector.Option) []selector.Option {
	opts := []selector.Option{hook}
	if len(l.Sort) > 0 {
		opts = append(opts, selector.WithSort(l.Sort...))
	}
	if l.IDColumn != "" {
		opts = append(opts, selector.WithIDColumn(l.IDColumn))
	}
	return opts
}
