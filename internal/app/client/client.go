package client

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/exp/slog"

	"studentkeeper/internal/app/client/config"
	"studentkeeper/internal/app/client/viewmodel"
	"studentkeeper/internal/domain/student"
	"studentkeeper/internal/infrastructure/storage"
	"studentkeeper/internal/infrastructure/storage/file"
	"studentkeeper/internal/infrastructure/storage/memory"
	"studentkeeper/internal/infrastructure/storage/postgres"
	"studentkeeper/internal/infrastructure/storage/redis"
	"studentkeeper/internal/infrastructure/storage/sealed"
	"studentkeeper/internal/infrastructure/storage/sqlite"
)

// ErrNoApp возвращается, когда в контексте команды нет приложения
var ErrNoApp = errors.New("приложение не инициализировано")

type App struct {
	config  *config.Config
	log     *slog.Logger
	storage storage.Storage
	store   *student.Store
}

// New открывает хранилище из конфигурации и собирает поверх него хранилище студентов
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	kv, err := OpenStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return NewWithStorage(cfg, kv, log), nil
}

// NewWithStorage собирает приложение поверх уже открытого хранилища
func NewWithStorage(cfg *config.Config, kv storage.Storage, log *slog.Logger) *App {
	store := student.NewStore(kv, log,
		student.WithKey(cfg.CollectionKey),
		student.WithClearScope(cfg.Scope()),
	)

	log.Debug("Клиент инициализирован",
		"driver", cfg.StorageDriver,
		"namespace", cfg.Namespace,
		"key", cfg.CollectionKey,
		"clear_scope", cfg.ClearScope,
		"encrypted", cfg.Encrypted(),
	)

	return &App{
		config:  cfg,
		log:     log,
		storage: kv,
		store:   store,
	}
}

// OpenStorage открывает бэкенд, выбранный в STORAGE_DRIVER, и при заданной
// парольной фразе оборачивает его шифрованием
func OpenStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	var (
		kv  storage.Storage
		err error
	)

	switch cfg.StorageDriver {
	case config.DriverMemory:
		kv = memory.New()
	case config.DriverFile:
		kv, err = file.New(filepath.Join(cfg.DataPath, cfg.Namespace))
	case config.DriverSQLite:
		kv, err = sqlite.Open(ctx, cfg.SQLitePath, cfg.Namespace, log)
	case config.DriverRedis:
		kv, err = redis.New(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.Namespace, log)
	case config.DriverPostgres:
		kv, err = postgres.New(ctx, cfg.PostgresDSN, cfg.Namespace, log)
	default:
		return nil, fmt.Errorf("неизвестный драйвер хранилища: %q", cfg.StorageDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия хранилища %s: %w", cfg.StorageDriver, err)
	}

	if !cfg.Encrypted() {
		return kv, nil
	}

	sealedKV, err := sealed.New(kv, cfg.Passphrase)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("ошибка инициализации шифрования: %w", err)
	}
	return sealedKV, nil
}

func (a *App) Config() *config.Config {
	return a.config
}

// Store возвращает хранилище студентов
func (a *App) Store() *student.Store {
	return a.store
}

// AddStudent создаёт модель формы добавления студента
func (a *App) AddStudent(n viewmodel.Notifier) *viewmodel.AddStudent {
	return viewmodel.NewAddStudent(a.store, n, a.log)
}

// StudentList создаёт модель списка студентов
func (a *App) StudentList(n viewmodel.Notifier) *viewmodel.StudentList {
	return viewmodel.NewStudentList(a.store, n, a.log)
}

// Close закрывает хранилище
func (a *App) Close() error {
	if err := a.storage.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия хранилища: %w", err)
	}
	return nil
}

type appKey struct{}

// WithApp кладёт приложение в контекст команды
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

// FromContext достаёт приложение из контекста команды
func FromContext(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		return nil, ErrNoApp
	}
	return app, nil
}
