package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/paintingdb/internal/config"
)

type list struct {
	items []string
	sel   int
}

func (l *list) SetItems(items []string) { l.items, l.sel = items, -1 }

func (l *list) Clear() { l.items, l.sel = nil, -1 }

func (l *list) Selected() (string, bool) {
	if l.sel < 0 || l.sel >= len(l.items) {
		return "", false
	}
	return l.items[l.sel], true
}

type label struct{ text string }

func (l *label) SetText(s string) { l.text = s }

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(dir, "data", "painting.db"), Seed: true},
		Log:      config.LogConfig{Level: "debug", File: filepath.Join(dir, "logs", "paintingdb.log")},
		Browser: config.BrowserConfig{
			Parent: config.ListConfig{Title: "Painters", Table: "painters", Field: "name"},
			Child:  config.ListConfig{Title: "Paintings", Table: "paintings", Field: "title", Sort: []string{"title"}, LinkField: "painter_id"},
			Result: config.ResultConfig{Title: "Painting", Fields: []string{"title", "year"}},
		},
	}
}

func TestOpenBuildAndBrowse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := testConfig(t)

	ac, err := Open(ctx, cfg)
	require.NoError(t, err)

	parent, child, result := &list{sel: -1}, &list{sel: -1}, &label{}
	chain, err := BuildChain(ctx, ac, Views{Parent: parent, Child: child, Result: result})
	require.NoError(t, err)
	require.Len(t, parent.items, 13)
	require.Same(t, chain.Child, chain.Parent.Child())
	require.Equal(t, "painter_id", chain.Child.LinkField())

	for i, v := range parent.items {
		if v == "Claude Monet" {
			parent.sel = i
		}
	}
	require.NoError(t, chain.Parent.OnSelectionChanged(ctx))
	require.Equal(t, []string{"Wisteria"}, child.items)
	child.sel = 0
	require.NoError(t, chain.Child.OnSelectionChanged(ctx))
	require.Equal(t, `("Wisteria", 1925)`, result.text)

	require.NoError(t, ac.Close())

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	log := string(data)
	require.Contains(t, log, `"component":"selector"`)
	require.Contains(t, log, `"op":"result"`)
	require.Equal(t, 1, strings.Count(log, "database ready"))
}

func TestOpenWithoutSeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Database.Seed = false
	cfg.Log.File = ""

	ac, err := Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ac.Close() })

	parent := &list{sel: -1}
	_, err = BuildChain(ctx, ac, Views{Parent: parent, Child: &list{sel: -1}})
	require.NoError(t, err)
	require.Empty(t, parent.items)
}

func TestBuildChainRejectsBadIdentifiers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Log.File = ""
	ac, err := Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ac.Close() })

	ac.Config.Browser.Child.LinkField = "painter_id OR 1=1"
	_, err = BuildChain(ctx, ac, Views{Parent: &list{sel: -1}, Child: &list{sel: -1}})
	require.Error(t, err)
}

func TestQueryHookLogsFailures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Browser.Parent.Field = "nickname"

	ac, err := Open(ctx, cfg)
	require.NoError(t, err)
	_, err = BuildChain(ctx, ac, Views{Parent: &list{sel: -1}, Child: &list{sel: -1}})
	require.ErrorContains(t, err, "nickname")
	require.NoError(t, ac.Close())

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	require.True(t, bytes.Contains(data, []byte(`"level":"error"`)))
}

func TestBuildChainUsesConfiguredIDColumn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Log.File = ""
	ac, err := Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ac.Close() })

	ac.Config.Browser.Parent.IDColumn = "painter_key"
	_, err = BuildChain(ctx, ac, Views{Parent: &list{sel: -1}, Child: &list{sel: -1}})
	require.ErrorContains(t, err, "painter_key")

	ac.Config.Browser.Parent.IDColumn = "_id"
	parent := &list{sel: -1}
	_, err = BuildChain(ctx, ac, Views{Parent: parent, Child: &list{sel: -1}})
	require.NoError(t, err)
	require.Len(t, parent.items, 13)
}
