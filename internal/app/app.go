package app

import (
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/bwmarrin/snowflake"
	"github.com/robfig/cron/v3"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/team2shop/storefront/config"
	"github.com/team2shop/storefront/internal/assist"
	"github.com/team2shop/storefront/internal/auth"
	"github.com/team2shop/storefront/internal/cart"
	"github.com/team2shop/storefront/internal/catalog"
	"github.com/team2shop/storefront/internal/notify"
	"github.com/team2shop/storefront/internal/reviews"
	"github.com/team2shop/storefront/pkg/metrics"
)

// Application wires the storefront engines together.
type Application struct {
	appConfig *config.AppConfig
	boltDB    *bolt.DB
	notifier  *notify.Notifier
	catalog   *catalog.Store
	reviews   *reviews.Store
	carts     *cart.Store
	authSvc   *auth.Service
	assistCli *assist.Client
	sched     *cron.Cron
}

// Ensure Application implements all provider interfaces
var _ AppContext = (*Application)(nil)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig { return a.appConfig }
func (a *Application) Catalog() *catalog.Store   { return a.catalog }
func (a *Application) Reviews() *reviews.Store   { return a.reviews }
func (a *Application) Carts() *cart.Store        { return a.carts }
func (a *Application) Auth() *auth.Service       { return a.authSvc }
func (a *Application) Assist() *assist.Client    { return a.assistCli }
func (a *Application) Scheduler() *cron.Cron     { return a.sched }

// Init prepares logging, storage and every engine. It must run once
// before the web server starts.
func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger(cfg)
	cfg.InitDirs()

	if err := metrics.InitMetrics(cfg.System.Workdir); err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}

	db, err := bolt.Open(filepath.Join(cfg.System.Workdir, "data", "storefront.db"), 0o600,
		&bolt.Options{Timeout: time.Second})
	if err != nil {
		return err
	}
	a.boltDB = db

	a.notifier, err = notify.New(16)
	if err != nil {
		return err
	}

	backend, err := catalog.NewBoltBackend(db)
	if err != nil {
		return err
	}
	a.catalog = catalog.NewStore(backend, catalog.SeedProducts(), a.notifier)

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}
	a.reviews = reviews.NewStore(reviews.NewSynthesizer(), node)

	a.carts, err = cart.NewStore(db)
	if err != nil {
		return err
	}

	a.authSvc = auth.NewService(cfg)
	a.assistCli = assist.NewClient(cfg.Assist)

	a.sched = cron.New()
	a.initJob()
	a.sched.Start()

	zap.S().Infof("storefront initialized, workdir: %s", cfg.System.Workdir)
	return nil
}

// initLogger configures the global zap logger, optionally teeing to a
// rotated file.
func (a *Application) initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// Release tears the application down. The catalog document is purged on
// the way out so the next session starts from the seed, the same way the
// browser storefront drops its store on unload.
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.catalog != nil {
		a.catalog.Reset()
	}
	if a.notifier != nil {
		a.notifier.Release()
	}
	metrics.Close()
	if a.boltDB != nil {
		if err := a.boltDB.Close(); err != nil {
			zap.L().Warn("bolt close failed", zap.Error(err))
		}
	}
	_ = zap.L().Sync()
}
