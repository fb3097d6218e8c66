package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careervisualizer/backend/internal/auth"
	"github.com/careervisualizer/backend/internal/config"
	"github.com/careervisualizer/backend/internal/gcloud"
	"github.com/careervisualizer/backend/internal/health"
	"github.com/careervisualizer/backend/internal/models"
	"github.com/careervisualizer/backend/internal/record"
	"github.com/careervisualizer/backend/internal/router"
	"github.com/careervisualizer/backend/internal/store"
	"github.com/careervisualizer/backend/internal/transcribe"
	"github.com/careervisualizer/backend/pkg/logger"
)

const startupTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	l := logger.New(cfg.Env)
	ctx := context.Background()
	status := health.NewStatus()

	degrade := func(component string, err error) {
		if cfg.StrictStartup {
			l.Fatal().Err(err).Str("component", component).Msg("startup failed")
		}
		l.Error().Err(err).Str("component", component).Msg("startup failed, continuing degraded")
		status.Set(component, err)
	}

	// ── Google session ───────────────────────────────────────
	sess, err := gcloud.Open(ctx, cfg.CredsFile)
	if err != nil {
		degrade("google", err)
	} else {
		l.Info().Str("creds", cfg.CredsFile).Msg("connected to Google APIs")
	}
	defer sess.Close()

	// ── PostgreSQL (optional) ────────────────────────────────
	var pgStore *store.PostgresStore
	if cfg.PostgresDSN != "" {
		pool, err := openPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			degrade("postgres", err)
		} else {
			defer pool.Close()
			pgStore = store.NewPostgresStore(pool)
		}
	}

	// ── MongoDB (optional) ───────────────────────────────────
	var mongoStore *store.MongoStore
	if cfg.MongoURI != "" {
		client, err := openMongo(ctx, cfg.MongoURI)
		if err != nil {
			degrade("mongo", err)
		} else {
			defer client.Disconnect(context.Background())
			mongoStore = store.NewMongoStore(client.Database(cfg.MongoDB))
		}
	}

	// ── Users ────────────────────────────────────────────────
	users, err := loadUsers(ctx, cfg, pgStore)
	if err != nil {
		l.Fatal().Err(err).Str("source", cfg.UsersSource).Msg("load users")
	}
	l.Info().Int("count", users.Len()).Str("source", cfg.UsersSource).Msg("user table loaded")

	// ── Redis login throttle (optional) ──────────────────────
	var throttle auth.Throttle
	if cfg.RedisAddr != "" && cfg.LoginMaxFailures > 0 {
		rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			degrade("redis", err)
		} else {
			defer rdb.Close()
			throttle = auth.NewRedisThrottle(rdb, cfg.LoginMaxFailures, cfg.LoginLockoutWindow)
		}
	}

	// ── Row store ────────────────────────────────────────────
	var rows record.RowStore
	switch cfg.RecordBackend {
	case "sheets":
		if sess != nil {
			sheetsStore := store.NewSheetsStore(sess.Sheets, cfg.SheetID, cfg.SheetTab)
			vctx, cancel := context.WithTimeout(ctx, startupTimeout)
			err := sheetsStore.VerifyTab(vctx)
			cancel()
			if err != nil {
				degrade("sheets", err)
			} else {
				rows = sheetsStore
				l.Info().Str("sheet", cfg.SheetID).Str("tab", cfg.SheetTab).Msg("found sheet tab")
			}
		}
	case "postgres":
		if pgStore != nil {
			rows = pgStore
		} else {
			degrade("record_store", errors.New("RECORD_BACKEND=postgres but postgres is unavailable"))
		}
	case "mongo":
		if mongoStore != nil {
			rows = mongoStore
		} else {
			degrade("record_store", errors.New("RECORD_BACKEND=mongo but mongo is unavailable"))
		}
	default:
		l.Fatal().Str("backend", cfg.RecordBackend).Msg("unknown RECORD_BACKEND")
	}

	// ── Speech recognizer ────────────────────────────────────
	var recognizer transcribe.Recognizer
	if sess != nil {
		recognizer = transcribe.NewSpeechRecognizer(sess.Speech, cfg.SpeechLanguage, cfg.SpeechModel)
	}

	// ── Router ───────────────────────────────────────────────
	handler := router.New(router.Deps{
		Log:                l,
		AllowedOrigins:     cfg.AllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Auth:               auth.NewHandler(users, throttle, l),
		Record:             record.NewHandler(rows, l),
		Transcribe:         transcribe.NewHandler(recognizer, l),
		Health:             status,
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go func() {
		l.Info().Str("addr", srv.Addr).Msg("backend listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info().Msg("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		l.Error().Err(err).Msg("shutdown")
	}
}

func openPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := store.NewPostgresStore(pool).Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func openMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

func loadUsers(ctx context.Context, cfg *config.Config, pg *store.PostgresStore) (*auth.UserTable, error) {
	var (
		list []models.User
		err  error
	)
	switch cfg.UsersSource {
	case "file":
		list, err = auth.LoadUsersFile(cfg.UsersFile)
	case "postgres":
		if pg == nil {
			return nil, errors.New("USERS_SOURCE=postgres but postgres is unavailable")
		}
		lctx, cancel := context.WithTimeout(ctx, startupTimeout)
		defer cancel()
		list, err = pg.LoadUsers(lctx)
	default:
		return nil, errors.New("unknown USERS_SOURCE " + cfg.UsersSource)
	}
	if err != nil {
		return nil, err
	}
	return auth.NewUserTable(list)
}
