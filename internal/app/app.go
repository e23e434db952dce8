package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/instportal/internal/auth"
	"github.com/hitoshi/instportal/internal/config"
	"github.com/hitoshi/instportal/internal/database"
	"github.com/hitoshi/instportal/internal/handler"
	"github.com/hitoshi/instportal/internal/institution"
	"github.com/hitoshi/instportal/internal/logger"
	"github.com/hitoshi/instportal/internal/metrics"
	"github.com/hitoshi/instportal/internal/middleware"
	"github.com/hitoshi/instportal/internal/repository"
	"github.com/hitoshi/instportal/internal/security"
	"github.com/hitoshi/instportal/internal/session"
	"github.com/hitoshi/instportal/internal/view"
	"golang.org/x/time/rate"
)

// Init initializes the application: JSON structured logging first, so the
// config loader can already log, then the Config from the environment.
// Log output goes to the given writer.
func Init(w io.Writer) (*config.Config, error) {
	logger.SetupDefault(w)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run is the application entrypoint. It parses the subcommand from the
// arguments and starts the corresponding mode. Pass os.Args[1:] as args.
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck skips full initialization; it only needs the port.
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("base_url", cfg.BaseURL),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	case CommandInspect:
		return runInspect(w, cfg)
	default:
		return runServe(cfg)
	}
}

// runServe starts the web portal. It runs pending migrations, opens the
// database, wires every dependency and serves HTTP until SIGINT or SIGTERM
// triggers a graceful shutdown.
func runServe(cfg *config.Config) error {
	// 1. Migrations, then the connection
	if err := database.RunMigrations(cfg.DatabasePath); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database ready", slog.String("path", cfg.DatabasePath))

	// 2. Repositories
	userRepo := repository.NewSQLiteUserRepo(db)
	instRepo := repository.NewSQLiteInstitutionRepo(db)

	// 3. Domain services
	authService := auth.NewService(auth.AuthorityCredentials(cfg.AuthorityUsers), userRepo)
	instService := institution.NewService(userRepo, instRepo, security.NewFormSanitizer())

	// 4. Views and sessions
	renderer, err := view.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionMaxAge, cfg.CookieSecure)

	// 5. Observability
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 6. Router
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiterCfg.WriteRate = rate.Limit(float64(cfg.RateLimitWrite) / 60.0)
	rateLimiterCfg.WriteBurst = cfg.RateLimitWrite
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	router := handler.NewRouter(&handler.RouterDeps{
		Sessions: sessions,
		Renderer: renderer,
		Logger:   slog.Default(),

		AuthService:         authService,
		RegistrationService: instService,
		InstitutionService:  instService,

		HealthChecker: db,

		Metrics:     collector,
		Gatherer:    registry,
		RateLimiter: rateLimiter,
	})

	// 7. HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// runMigrate applies every pending database migration in order.
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations", slog.String("path", cfg.DatabasePath))

	if err := database.RunMigrations(cfg.DatabasePath); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck sends a request to the /health endpoint of a server on
// localhost and reports the result through the exit code.
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// runInspect prints the table list and the registered accounts to w.
// A read-only look at the database file for operators.
func runInspect(w io.Writer, cfg *config.Config) error {
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	fmt.Fprintln(w, "tables:")
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan table name: %w", err)
		}
		fmt.Fprintf(w, "  %s\n", name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}

	users, err := db.QueryContext(ctx,
		`SELECT u.id, u.name, u.email, u.role, COALESCE(i.institution_name, '')
		 FROM users u
		 LEFT JOIN institutions i ON i.user_id = u.id
		 ORDER BY u.id`)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	defer users.Close()

	fmt.Fprintln(w, "users:")
	count := 0
	for users.Next() {
		var (
			id                int64
			name, email, role string
			instName          string
		)
		if err := users.Scan(&id, &name, &email, &role, &instName); err != nil {
			return fmt.Errorf("failed to scan user: %w", err)
		}
		fmt.Fprintf(w, "  %d  %s  %s  %s  %s\n", id, name, email, role, instName)
		count++
	}
	if err := users.Err(); err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	fmt.Fprintf(w, "%d user(s)\n", count)

	return nil
}
