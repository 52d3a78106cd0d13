package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "pet-care-scheduler/internal/adapters/storage/memory"
	pg "pet-care-scheduler/internal/adapters/storage/postgres"
	"pet-care-scheduler/internal/domain/events"
	"pet-care-scheduler/internal/domain/logs"
	"pet-care-scheduler/internal/domain/pets"
	"pet-care-scheduler/internal/domain/templates"
	"pet-care-scheduler/internal/middleware"
	"pet-care-scheduler/internal/platform/logger"
	"pet-care-scheduler/internal/platform/metrics"
	"pet-care-scheduler/internal/ports/auth"

	_ "pet-care-scheduler/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev, header X-Debug-User-ID)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger

	// Metrics lo crea main una sola vez; los tests pasan nil (los counters
	// de promauto no pueden registrarse dos veces en el mismo proceso).
	Metrics *metrics.Metrics
}

// NewRouter arma el árbol de rutas completo y devuelve también el
// materializador para que main lo comparta con el sweeper.
func NewRouter(opts Options) (http.Handler, *events.Materializer) {
	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		petRepo      pets.Repository
		templateRepo templates.Repository
		eventRepo    events.Repository
		logRepo      logs.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Error("no se pudo abrir postgres, cayendo a in-memory", map[string]any{"err": err.Error()})
			}
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		templateRepo = pg.NewTemplatesRepo(db)
		eventRepo = pg.NewEventsRepo(db)
		logRepo = pg.NewLogsRepo(db)
	} else {
		petRepo = mem.NewPetRepo()
		templateRepo = mem.NewTemplateRepo()
		eventRepo = mem.NewEventRepo()
		logRepo = mem.NewLogRepo()
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	templatesSvc := templates.NewService(templateRepo)
	eventsSvc := events.NewService(eventRepo)
	logsSvc := logs.NewService(logRepo)

	mat := events.NewMaterializer(eventRepo, templatesSvc, log, opts.Metrics)

	// Rutas por módulo; todo lo que toca datos exige identidad.
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth)

		pets.RegisterRoutes(pr, petsSvc)
		templates.RegisterRoutes(pr, templatesSvc, petsSvc)
		events.RegisterRoutes(pr, eventsSvc, mat, petsSvc, opts.Metrics)
		logs.RegisterRoutes(pr, logsSvc, petsSvc)
	})

	return r, mat
}
