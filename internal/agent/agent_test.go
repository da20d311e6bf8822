package agent

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	config "github.com/mwantia/goweight/internal/config/server"
	"github.com/mwantia/goweight/pkg/db/models"
	"github.com/mwantia/goweight/pkg/log"
	"github.com/stretchr/testify/require"
)

func setupTestAgent(t *testing.T, buf *bytes.Buffer) (*GoWeightAgent, string) {
	dir := t.TempDir()

	cfg := config.GetServerDefault()
	cfg.Database.SQLite.Path = filepath.Join(dir, "test.db")
	for i := range cfg.Imports {
		cfg.Imports[i].File = filepath.Join(dir, filepath.Base(cfg.Imports[i].File))
	}
	require.NoError(t, cfg.Validate())

	agent := NewAgentWithLogger(&cfg, log.NewLoggerServiceWithWriter("test", cfg.Log, buf))
	require.NoError(t, agent.Setup(context.Background()))
	t.Cleanup(func() {
		require.NoError(t, agent.Cleanup(context.Background()))
	})

	db := agent.Store().DB()
	items := []models.Item{{Slug: "sword"}, {Slug: "shield"}}
	require.NoError(t, db.Create(&items).Error)
	variants := []models.Variant{
		{ItemID: items[0].ID, Slug: "sword-rusty"},
		{ItemID: items[1].ID, Slug: "shield-oak"},
	}
	require.NoError(t, db.Create(&variants).Error)

	return agent, dir
}

func itemWeights(t *testing.T, agent *GoWeightAgent) map[string]int {
	var items []models.Item
	require.NoError(t, agent.Store().DB().Find(&items).Error)

	weights := make(map[string]int, len(items))
	for _, item := range items {
		weights[item.Slug] = item.Weight
	}
	return weights
}

func write(t *testing.T, path, content string) {
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRunImportsForcesDependents(t *testing.T) {
	var buf bytes.Buffer
	agent, dir := setupTestAgent(t, &buf)
	ctx := context.Background()

	itemsFile := filepath.Join(dir, "item_weights.yaml")
	variantsFile := filepath.Join(dir, "variant_weights.yaml")
	write(t, itemsFile, "- slug: sword\n  weight: 10\n- slug: shield\n  weight: 20\n")
	write(t, variantsFile, "- slug: sword-rusty\n  weight: 3\n")

	results, err := agent.RunImports(ctx, nil, false)
	require.NoError(t, err)
	require.Equal(t, map[string]bool{"items": true, "variants": true}, results)
	require.Equal(t, map[string]int{"sword": 3, "shield": 0}, itemWeights(t, agent))

	results, err = agent.RunImports(ctx, nil, false)
	require.NoError(t, err)
	require.Equal(t, map[string]bool{"items": false, "variants": false}, results)

	// the items file overwrites parent weights, so the variants import must follow
	write(t, itemsFile, "- slug: sword\n  weight: 11\n")
	results, err = agent.RunImports(ctx, nil, false)
	require.NoError(t, err)
	require.True(t, results["items"])
	require.True(t, results["variants"], "a forced import reports an update")
	require.Equal(t, map[string]int{"sword": 3, "shield": 0}, itemWeights(t, agent))
}

func TestRunImportsSelectsByName(t *testing.T) {
	var buf bytes.Buffer
	agent, dir := setupTestAgent(t, &buf)
	ctx := context.Background()

	write(t, filepath.Join(dir, "item_weights.yaml"), "- slug: shield\n  weight: 20\n")

	results, err := agent.RunImports(ctx, []string{"items"}, false)
	require.NoError(t, err)
	require.Equal(t, map[string]bool{"items": true}, results)
	require.Equal(t, 20, itemWeights(t, agent)["shield"])

	_, err = agent.RunImports(ctx, []string{"unknown"}, false)
	require.Error(t, err)
}

func TestRunImportsStopsOnValidationError(t *testing.T) {
	var buf bytes.Buffer
	agent, dir := setupTestAgent(t, &buf)

	write(t, filepath.Join(dir, "item_weights.yaml"), "- slug: sword\n  weight: -5\n")
	write(t, filepath.Join(dir, "variant_weights.yaml"), "[]\n")

	results, err := agent.RunImports(context.Background(), nil, false)
	require.Error(t, err)
	require.NotContains(t, results, "variants")
}

func TestRunImportsUsesRegisteredLogger(t *testing.T) {
	var buf bytes.Buffer
	agent, dir := setupTestAgent(t, &buf)

	write(t, filepath.Join(dir, "item_weights.yaml"), "[]\n")

	_, err := agent.RunImports(context.Background(), []string{"items"}, false)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "[test/importer] Importing weights for items... DONE")

	logger, err := agent.resolveLogger(context.Background(), "store")
	require.NoError(t, err)
	logger.Info("resolved")
	require.Contains(t, buf.String(), "[test/store] resolved")
}

func TestRunImportsWarnsWithoutImports(t *testing.T) {
	var buf bytes.Buffer
	agent, _ := setupTestAgent(t, &buf)
	agent.cfg.Imports = nil

	results, err := agent.RunImports(context.Background(), nil, false)
	require.NoError(t, err)
	require.Empty(t, results)
	require.Contains(t, buf.String(), "No imports configured")
}

func TestNewTarget(t *testing.T) {
	target, err := NewTarget(config.ImportServerConfig{
		Name:  "tags",
		File:  "tags.yaml",
		Table: "items",
	})
	require.NoError(t, err)
	require.Equal(t, "tags", target.ContentType)
	require.Equal(t, "slug_weights", target.Schema.Name())

	_, err = NewTarget(config.ImportServerConfig{Name: "tags", File: "tags.yaml", Table: "items", Schema: "csv"})
	require.Error(t, err)
}
