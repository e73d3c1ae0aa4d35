package gym

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	_ "github.com/magabrotheeeer/gym-membership/docs" // описание API для /docs
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/auth/verify"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/catalog/classes"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/catalog/memberships"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/health"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/payment/paymentcreate"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/payment/paymentlist"
	"github.com/magabrotheeeer/gym-membership/internal/http/middlewarectx"
)

// AuthService регистрация, вход и проверка токенов.
type AuthService interface {
	register.Service
	login.Service
	middlewarectx.TokenVerifier
}

// CatalogService чтение справочников.
type CatalogService interface {
	memberships.Service
	classes.Service
}

// PaymentService покупка и история абонементов.
type PaymentService interface {
	paymentcreate.Service
	paymentlist.Service
}

// Services зависимости обработчиков.
type Services struct {
	Auth    AuthService
	Catalog CatalogService
	Payment PaymentService
	Store   health.Pinger
}

// RouteOptions настройки маршрутизации.
type RouteOptions struct {
	// AuthLimiter ограничивает /register и /login; nil отключает ограничение.
	AuthLimiter *rate.Limiter
	// StaticDir каталог лендинга для GET /; пустая строка отключает раздачу.
	StaticDir string
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services, opts RouteOptions) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.Metrics,
	)

	// Открытые конечные точки
	r.Group(func(r chi.Router) {
		if opts.AuthLimiter != nil {
			r.Use(middlewarectx.RateLimitMiddleware(opts.AuthLimiter, logger))
		}
		r.Post("/register", register.New(logger, svc.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, svc.Auth).ServeHTTP)
	})

	r.Get("/membresias", memberships.New(logger, svc.Catalog).ServeHTTP)
	r.Get("/clases", classes.New(logger, svc.Catalog).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))
		r.Get("/verify-token", verify.New(logger).ServeHTTP)
		r.Get("/mis-pagos", paymentlist.New(logger, svc.Payment).ServeHTTP)
		r.Post("/mis-pagos", paymentcreate.New(logger, svc.Payment).ServeHTTP)
	})

	r.Get("/health", health.New(logger, svc.Store).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)

	if opts.StaticDir != "" {
		r.Get("/*", http.FileServer(http.Dir(opts.StaticDir)).ServeHTTP)
	}
}

// withCORS оборачивает роутер; пустой список origin разрешает все.
func withCORS(h http.Handler, allowedOrigins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(h)
}
