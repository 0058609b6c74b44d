package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	_ "github.com/jhoicas/Brewlog-api/docs"
	"github.com/jhoicas/Brewlog-api/internal/application/auth"
	"github.com/jhoicas/Brewlog-api/internal/application/cache"
	"github.com/jhoicas/Brewlog-api/internal/application/controller"
	"github.com/jhoicas/Brewlog-api/internal/application/ports"
	"github.com/jhoicas/Brewlog-api/internal/application/session"
	"github.com/jhoicas/Brewlog-api/internal/application/usecase"
	"github.com/jhoicas/Brewlog-api/internal/application/validation"
	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
	infraai "github.com/jhoicas/Brewlog-api/internal/infrastructure/ai"
	"github.com/jhoicas/Brewlog-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Brewlog-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Brewlog-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Brewlog-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Brewlog-api/internal/interfaces/http"
	"github.com/jhoicas/Brewlog-api/migrations"
	"github.com/jhoicas/Brewlog-api/pkg/config"
	"github.com/jhoicas/Brewlog-api/pkg/logger"
)

// repos repositorios de la aplicación, sobre PostgreSQL o en memoria.
type repos struct {
	users      repository.UserRepository
	beans      repository.BeanRepository
	roastDates repository.RoastDateRepository
	roasteries repository.RoasteryRepository
	grinders   repository.GrinderRepository
	brewers    repository.BrewerRepository
	brews      repository.BrewRepository
	tx         ports.BeanTxRunner
}

func postgresRepos(pool *pgxpool.Pool) repos {
	return repos{
		users:      postgres.NewUserRepository(pool),
		beans:      postgres.NewBeanRepository(pool),
		roastDates: postgres.NewRoastDateRepository(pool),
		roasteries: postgres.NewRoasteryRepository(pool),
		grinders:   postgres.NewGrinderRepository(pool),
		brewers:    postgres.NewBrewerRepository(pool),
		brews:      postgres.NewBrewRepository(pool),
		tx:         postgres.NewTxRunner(pool),
	}
}

func memoryRepos() repos {
	st := memory.NewStore()
	return repos{
		users:      st.Users(),
		beans:      st.Beans(),
		roastDates: st.RoastDates(),
		roasteries: st.Roasteries(),
		grinders:   st.Grinders(),
		brewers:    st.Brewers(),
		brews:      st.Brews(),
		tx:         memory.NewTxRunner(st),
	}
}

// @title                       Brewlog API
// @version                     1.0
// @description                 Registro de cafés, equipo y extracciones con sugerencias de un LLM.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:    cfg.App.Env,
		Level:  cfg.App.LogLevel,
		Levels: cfg.App.LogLevels,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var r repos
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			n, err := postgres.Migrate(ctx, pool, migrations.FS, log.Component("migrate"))
			if err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Int("applied", n).Msg("migraciones aplicadas")
		}
		r = postgresRepos(pool)
	} else {
		log.Warn().Msg("DB_HOST/DATABASE_URL vacío: repositorios en memoria, los datos no persisten")
		r = memoryRepos()
	}

	var files ports.AttachmentStore
	if cfg.Storage.Enabled() {
		s3Store, err := storage.NewS3Store(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente S3")
		}
		files = s3Store
	} else {
		log.Warn().Msg("S3_BUCKET vacío: adjuntos en memoria")
		files = storage.NewMemoryStore(cfg.Storage.UploadMaxBytes)
	}

	analyzer, err := infraai.NewAnalyzer(cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("proveedor de IA")
	}
	if analyzer == nil {
		log.Warn().Str("provider", cfg.AI.Provider).Msg("sin API key: análisis de brews deshabilitado")
	}

	retry := usecase.RetryPolicy{MaxElapsed: cfg.Retry.MaxElapsed()}
	ucLog := log.Component("usecase")

	beanUC := usecase.NewBeanUseCase(r.beans, r.roasteries, r.tx, retry)
	roastDateUC := usecase.NewRoastDateUseCase(r.beans, r.roastDates, retry)
	roasteryUC := usecase.NewRoasteryUseCase(r.roasteries, files, retry, ucLog)
	grinderUC := usecase.NewGrinderUseCase(r.grinders, retry)
	brewerUC := usecase.NewBrewerUseCase(r.brewers, files, retry, ucLog)
	userUC := usecase.NewUserUseCase(r.users, files, retry, ucLog)
	analysisUC := usecase.NewAnalysisUseCase(analyzer, cfg.AI.Timeout(), cfg.AI.RequestsPerMinute)
	brewUC := usecase.NewBrewUseCase(usecase.BrewRepos{
		Brews:    r.brews,
		Beans:    r.beans,
		Grinders: r.grinders,
		Brewers:  r.brewers,
	}, analysisUC, infrapdf.NewBrewCardGenerator(), files, retry, ucLog)

	notifier := session.NewNotifier()
	denylist := auth.NewDenylist()
	authUC := auth.NewAuthUseCase(r.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, notifier, denylist)

	queryClient := cache.New(cache.Config{
		StaleTime: cfg.Cache.StaleTime(),
		GCTime:    cfg.Cache.GCTime(),
	}, cache.WithLogger(log.Component("cache")))
	go queryClient.Run(ctx)
	go pruneDenylist(ctx, denylist, log)

	v := validation.New()
	core := controller.NewCore(queryClient, v, notifier, log.Component("controller"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Storage.UploadMaxBytes)*2 + 64*1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Brewlog API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		Denylist:   denylist,
		Validator:  v,
		Core:       core,
		Beans:      controller.NewBeanController(core, beanUC, roastDateUC),
		Roasteries: controller.NewRoasteryController(core, roasteryUC),
		Grinders:   controller.NewGrinderController(core, grinderUC),
		Brewers:    controller.NewBrewerController(core, brewerUC),
		Brews:      controller.NewBrewController(core, brewUC, beanUC, grinderUC, brewerUC),
		Profile:    controller.NewProfileController(core, userUC),
		JWTSecret:  cfg.JWT.Secret,
		Logger:     log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	queryClient.Wait()

	log.Info().Msg("aplicación detenida")
}

// pruneDenylist limpia cada 10 minutos los tokens revocados ya expirados.
func pruneDenylist(ctx context.Context, d *auth.Denylist, log *logger.Logger) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := d.Prune(); n > 0 {
				log.Debug().Int("pruned", n).Msg("denylist: tokens expirados eliminados")
			}
		}
	}
}
