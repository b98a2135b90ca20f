package wire

import (
	"net/http"

	"pool-booking/internal/adaptor"
	"pool-booking/internal/data/repository"
	"pool-booking/internal/notify"
	"pool-booking/internal/usecase"
	"pool-booking/pkg/middleware"
	"pool-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes services, handlers and routes
func Wiring(repo *repository.Repository, config *utils.Config, notifier *notify.Dispatcher, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, notifier, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireUser(r, handler.User, repo, config, logger)
	wireSlot(r, handler.Slot, repo, config, logger)
	wireBooking(r, handler.Booking, handler.Stats, repo, config, logger)
	wireHoliday(r, handler.Holiday, repo, config, logger)
	wireMaintenance(r, handler.Maintenance, repo, config, logger)
	wireNotice(r, handler.Notice, repo, config, logger)
	wireCoachAllocation(r, handler.CoachAllocation, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
