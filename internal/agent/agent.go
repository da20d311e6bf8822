package agent

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mwantia/fabric/pkg/container"
	config "github.com/mwantia/goweight/internal/config/server"
	"github.com/mwantia/goweight/pkg/db/store"
	"github.com/mwantia/goweight/pkg/importer"
	"github.com/mwantia/goweight/pkg/log"
)

type GoWeightAgent struct {
	mutex sync.Mutex

	cfg   *config.BaseServerConfig
	sc    *container.ServiceContainer
	log   log.LoggerService
	store store.MetadataStore
}

func NewAgent(cfg *config.BaseServerConfig) *GoWeightAgent {
	return NewAgentWithLogger(cfg, log.NewLoggerService(cfg.Log.Name, cfg.Log))
}

func NewAgentWithLogger(cfg *config.BaseServerConfig, logger log.LoggerService) *GoWeightAgent {
	return &GoWeightAgent{
		cfg: cfg,
		sc:  container.NewServiceContainer(),
		log: logger,
	}
}

// Setup registers the shared services, connects the store and applies
// pending migrations.
func (gwa *GoWeightAgent) Setup(ctx context.Context) error {
	gwa.mutex.Lock()
	defer gwa.mutex.Unlock()

	errs := container.Errors{}

	gwa.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.LoggerServiceImpl](gwa.sc,
		container.With[log.LoggerService](),
		container.WithInstance(gwa.log)))

	if err := errs.Errors(); err != nil {
		return err
	}

	s, err := store.NewMetadataStore(gwa.cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to create metadata store: %w", err)
	}

	if err := s.Connect(ctx); err != nil {
		s.Close()
		return fmt.Errorf("failed to connect metadata store: %w", err)
	}

	gwa.log.Debug("Running pending migrations...")
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return fmt.Errorf("failed to migrate metadata store: %w", err)
	}

	gwa.store = s
	return nil
}

// Store returns the connected store; nil before Setup.
func (gwa *GoWeightAgent) Store() store.MetadataStore {
	return gwa.store
}

// RunImports runs the configured imports in declaration order, limited to
// names when given. An import is forced when one of its dependencies
// reported an update earlier in the same batch. The returned map holds the
// updated flag of every import that ran.
func (gwa *GoWeightAgent) RunImports(ctx context.Context, names []string, force bool) (map[string]bool, error) {
	gwa.mutex.Lock()
	defer gwa.mutex.Unlock()

	if gwa.store == nil {
		return nil, fmt.Errorf("agent is not set up")
	}

	if len(gwa.cfg.Imports) == 0 {
		gwa.log.Warn("No imports configured; add an 'imports' section to the config file (see 'goweight config generate')")
		return map[string]bool{}, nil
	}

	selected, err := gwa.selectImports(names)
	if err != nil {
		return nil, err
	}

	logger, err := gwa.resolveLogger(ctx, "importer")
	if err != nil {
		return nil, err
	}
	results := make(map[string]bool, len(selected))

	for _, imp := range selected {
		target, err := NewTarget(imp)
		if err != nil {
			return results, err
		}

		conditions := make([]bool, 0, len(imp.DependsOn))
		for _, dep := range imp.DependsOn {
			conditions = append(conditions, results[dep])
		}

		updated, err := importer.Run(ctx, gwa.store.DB(), logger, target, force, conditions...)
		if err != nil {
			return results, fmt.Errorf("import '%s' failed: %w", imp.Name, err)
		}
		results[imp.Name] = updated
	}

	return results, nil
}

// resolveLogger returns a named logger from the registered LoggerService.
func (gwa *GoWeightAgent) resolveLogger(ctx context.Context, name string) (log.LoggerService, error) {
	ok, resolved := gwa.sc.ResolveByType(ctx, reflect.TypeOf((*log.LoggerService)(nil)).Elem())
	if !ok {
		return nil, fmt.Errorf("failed to resolve LoggerService: no logger service registered")
	}

	logger, ok := resolved.(log.LoggerService)
	if !ok {
		return nil, fmt.Errorf("resolved service is not a LoggerService")
	}

	return logger.Named(name), nil
}

func (gwa *GoWeightAgent) selectImports(names []string) ([]config.ImportServerConfig, error) {
	if len(names) == 0 {
		return gwa.cfg.Imports, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	var selected []config.ImportServerConfig
	for _, imp := range gwa.cfg.Imports {
		if wanted[imp.Name] {
			selected = append(selected, imp)
			delete(wanted, imp.Name)
		}
	}

	if len(wanted) > 0 {
		missing := make([]string, 0, len(wanted))
		for name := range wanted {
			missing = append(missing, name)
		}
		sort.Strings(missing)
		return nil, fmt.Errorf("unknown imports: %s", strings.Join(missing, ", "))
	}
	return selected, nil
}

// Cleanup releases the registered services and closes the store.
func (gwa *GoWeightAgent) Cleanup(ctx context.Context) error {
	timeout, err := time.ParseDuration(gwa.cfg.ShutdownTimeout)
	if err != nil {
		// Set default of 60 seconds if error
		timeout = 60 * time.Second
	}

	shutdown, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := gwa.sc.Cleanup(shutdown); err != nil {
		return fmt.Errorf("failed to complete service container cleanup: %w", err)
	}

	if c, ok := gwa.log.(interface{ Cleanup(context.Context) error }); ok {
		if err := c.Cleanup(shutdown); err != nil {
			return fmt.Errorf("failed to close log writer: %w", err)
		}
	}

	if gwa.store != nil {
		if err := gwa.store.Close(); err != nil {
			return fmt.Errorf("failed to close metadata store: %w", err)
		}
		gwa.store = nil
	}

	return nil
}

// NewTarget converts an import configuration into an importer target.
func NewTarget(imp config.ImportServerConfig) (importer.Target, error) {
	schema, err := importer.SchemaByName(imp.Schema)
	if err != nil {
		return importer.Target{}, fmt.Errorf("import '%s': %w", imp.Name, err)
	}

	contentType := imp.ContentType
	if contentType == "" {
		contentType = imp.Name
	}

	target := importer.Target{
		Name:        imp.Name,
		File:        imp.File,
		ContentType: contentType,
		Schema:      schema,
		Table:       imp.Table,
		ParentTable: imp.ParentTable,
		ParentKey:   imp.ParentKey,
	}
	return target, target.Validate()
}
