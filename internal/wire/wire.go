// Package wire provides dependency injection for the plumbops application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"
	"time"

	"github.com/example/plumbops/internal/adapters/httpapi"
	"github.com/example/plumbops/internal/adapters/memory"
	"github.com/example/plumbops/internal/adapters/sqlite"
	"github.com/example/plumbops/internal/app"
	"github.com/example/plumbops/internal/config"
	"github.com/example/plumbops/internal/ports/primary"
	"github.com/example/plumbops/internal/session"
)

var (
	cfg              *config.Config
	sessions         *session.Manager
	workOrderService primary.WorkOrderService
	documentService  primary.DocumentService
	itemService      primary.ItemService
	directoryService primary.DirectoryService
	authService      primary.AuthService
	once             sync.Once
)

// Config returns the loaded application configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Sessions returns the singleton session manager.
func Sessions() *session.Manager {
	once.Do(initServices)
	return sessions
}

// SearchQuiet returns the configured debounce quiet period for
// type-ahead lookups.
func SearchQuiet() time.Duration {
	once.Do(initServices)
	return time.Duration(cfg.SearchQuietMs) * time.Millisecond
}

// WorkOrderService returns the singleton WorkOrderService instance.
func WorkOrderService() primary.WorkOrderService {
	once.Do(initServices)
	return workOrderService
}

// DocumentService returns the singleton DocumentService instance.
func DocumentService() primary.DocumentService {
	once.Do(initServices)
	return documentService
}

// ItemService returns the singleton ItemService instance.
func ItemService() primary.ItemService {
	once.Do(initServices)
	return itemService
}

// DirectoryService returns the singleton DirectoryService instance.
func DirectoryService() primary.DirectoryService {
	once.Do(initServices)
	return directoryService
}

// AuthService returns the singleton AuthService instance.
func AuthService() primary.AuthService {
	once.Do(initServices)
	return authService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	dir, err := config.Dir()
	if err != nil {
		log.Fatalf("failed to locate config directory: %v", err)
	}
	cfg, err = config.Load(dir)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Durable session store so a login survives process restarts.
	dbPath, err := sqlite.DefaultPath()
	if err != nil {
		log.Fatalf("failed to locate session database: %v", err)
	}
	store, err := sqlite.NewSessionStore(dbPath)
	if err != nil {
		log.Fatalf("failed to open session database: %v", err)
	}
	sessions, err = session.NewManager(store)
	if err != nil {
		log.Fatalf("failed to restore session: %v", err)
	}

	// Cached reads are scoped to an identity: drop them whenever the
	// session changes so a new login never sees stale data.
	cache := memory.NewCache()
	sessions.Subscribe(func(session.Session) {
		cache.Reset()
	})

	// HTTP gateway adapters (secondary ports) sharing one client.
	client := httpapi.NewClient(cfg.APIBaseURL, sessions)
	workOrderGateway := httpapi.NewWorkOrderGateway(client)
	documentGateway := httpapi.NewDocumentGateway(client)
	itemGateway := httpapi.NewItemGateway(client)
	directoryGateway := httpapi.NewDirectoryGateway(client)
	authGateway := httpapi.NewAuthGateway(client)

	// Create services (primary ports implementation)
	workOrderService = app.NewWorkOrderService(workOrderGateway, cache)
	documentService = app.NewDocumentService(documentGateway, cache)
	itemService = app.NewItemService(itemGateway, cache)
	directoryService = app.NewDirectoryService(directoryGateway)
	authService = app.NewAuthService(authGateway, sessions)
}
