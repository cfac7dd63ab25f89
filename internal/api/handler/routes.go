package handler

import (
	"net/http"

	"github.com/vfg2006/mmm-engine-api/infrastructure/repository"
	"github.com/vfg2006/mmm-engine-api/internal/api/handler/router"
	"github.com/vfg2006/mmm-engine-api/internal/usecases/attributing"
	"github.com/vfg2006/mmm-engine-api/internal/usecases/authenticating"
	"github.com/vfg2006/mmm-engine-api/internal/usecases/optimizing"
	"github.com/vfg2006/mmm-engine-api/internal/usecases/reporting"
	"github.com/vfg2006/mmm-engine-api/internal/usecases/saturating"
	"github.com/vfg2006/mmm-engine-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Attribution(service attributing.Attributor, resultRepo repository.AttributionResultRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/attribution",
			Method:      http.MethodGet,
			Handler:     GetAttribution(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/attribution/comparison",
			Method:      http.MethodGet,
			Handler:     GetAttributionComparison(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/attribution/snapshots",
			Method:      http.MethodGet,
			Handler:     GetAttributionSnapshots(resultRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrAnalyst()},
		},
	}
}

func Saturation(service saturating.Estimator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/saturation",
			Method:      http.MethodGet,
			Handler:     GetSaturationAnalysis(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Optimization(service optimizing.Optimizer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/optimization/budget",
			Method:      http.MethodPost,
			Handler:     PostBudgetOptimization(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrAnalyst()},
		},
	}
}

func Metrics(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/metrics/overview",
			Method:      http.MethodGet,
			Handler:     GetMetricsOverview(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/metrics/channels/:channel",
			Method:      http.MethodGet,
			Handler:     GetChannelPerformance(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
