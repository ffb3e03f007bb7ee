package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dom/deadlock-hub/internal/api"
	"github.com/dom/deadlock-hub/internal/cache"
	"github.com/dom/deadlock-hub/internal/catalog"
	"github.com/dom/deadlock-hub/internal/config"
	"github.com/dom/deadlock-hub/internal/leaderboard"
	"github.com/dom/deadlock-hub/internal/repository"
	repoPostgres "github.com/dom/deadlock-hub/internal/repository/postgres"
	"github.com/dom/deadlock-hub/internal/service"
	"github.com/dom/deadlock-hub/internal/web"
	"github.com/dom/deadlock-hub/internal/websocket"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestSeed fixes the random leaderboard fields in test servers.
const TestSeed = 42

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a connection.
// Skipped under -short.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres test in short mode")
	}

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_deadlock_hub"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := repoPostgres.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"posts",
		"threads",
		"user_sessions",
		"users",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing. External APIs
// point at an unroutable address until a test overrides them.
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0", // Random port
		Environment:        "test",
		PublicURL:          "http://localhost:3000",
		JWTSecret:          "test-jwt-secret-key-for-testing-only",
		JWTExpirationHours: 1,
		SteamAPIBaseURL:    "http://127.0.0.1:1",
		SteamOpenIDURL:     "http://127.0.0.1:1/openid/login",
		EnrichmentTimeout:  500 * time.Millisecond,
		StatsAPIBaseURL:    "http://127.0.0.1:1",
		StatsCacheTTL:      time.Minute,
		AssetBaseURL:       "https://assets.test/images",
		CORSAllowedOrigins: []string{"http://localhost:*"},
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Hub      *websocket.Hub
	Config   *config.Config
}

type serverOptions struct {
	withoutDB bool
	configure []func(*config.Config)
}

type ServerOption func(*serverOptions)

// WithoutDatabase skips the postgres container. Routes that touch a
// repository must not be called.
func WithoutDatabase() ServerOption {
	return func(o *serverOptions) { o.withoutDB = true }
}

// WithConfig adjusts TestConfig before the server is wired.
func WithConfig(fn func(*config.Config)) ServerOption {
	return func(o *serverOptions) { o.configure = append(o.configure, fn) }
}

// NewTestServer creates a complete test server with all dependencies
func NewTestServer(t *testing.T, opts ...ServerOption) *TestServer {
	t.Helper()

	var o serverOptions
	for _, opt := range opts {
		opt(&o)
	}

	cfg := TestConfig()
	for _, fn := range o.configure {
		fn(cfg)
	}

	var (
		testDB *TestDB
		db     *gorm.DB
		repos  = &repository.Repositories{}
	)
	if !o.withoutDB {
		testDB = NewTestDB(t)
		db = testDB.DB
		repos = repoPostgres.NewRepositories(db)
	}

	cat, err := catalog.New(cfg.AssetBaseURL)
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	cacheClient := cache.New("")
	services := service.NewServices(repos, cfg, cat, cacheClient, hub, leaderboard.WithSeed(TestSeed))

	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}

	router := api.NewRouter(services, hub, renderer, db, cacheClient, cfg)
	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Hub:      hub,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
		hub.Stop()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// URL returns the full URL for a path outside /api/v1
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}

// WebSocketURL returns the WebSocket URL, authenticated when token is set
func (ts *TestServer) WebSocketURL(token string) string {
	wsURL := "ws" + ts.Server.URL[4:] // Replace "http" with "ws"
	if token == "" {
		return wsURL + "/api/v1/ws"
	}
	return fmt.Sprintf("%s/api/v1/ws?token=%s", wsURL, token)
}
