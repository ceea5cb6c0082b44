package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/haythbl004/uni-console/api/swagger"
	"github.com/haythbl004/uni-console/internal/handler"
	"github.com/haythbl004/uni-console/internal/middleware"
	"github.com/haythbl004/uni-console/internal/service"
	"github.com/haythbl004/uni-console/internal/session"
	"github.com/haythbl004/uni-console/internal/upstream"
	"github.com/haythbl004/uni-console/pkg/cache"
	"github.com/haythbl004/uni-console/pkg/config"
	"github.com/haythbl004/uni-console/pkg/logger"
	corsmiddleware "github.com/haythbl004/uni-console/pkg/middleware/cors"
	reqidmiddleware "github.com/haythbl004/uni-console/pkg/middleware/requestid"
)

// @title University Console Gateway
// @version 1.0.0
// @description Admin console backend for the university scheduling and payroll API
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect redis", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	validate := validator.New()
	metrics := service.NewMetricsService()

	upstreamClient := upstream.New(cfg.Upstream, logr, metrics.ObserveUpstreamRequest)

	store := session.NewRedisStore(redisClient, cfg.Session.TTL)
	tokens := session.NewTokenManager(cfg.Session.Secret, cfg.Session.TTL)
	cookie := middleware.CookieOptions{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure}

	authSvc := service.NewAuthService(upstreamClient, store, tokens, validate, logr, metrics)
	navSvc := service.NewNavigationService(store, upstreamClient, logr)
	planningSvc := service.NewPlanningService(upstreamClient, authSvc, validate, logr, metrics)
	teacherSvc := service.NewTeacherService(upstreamClient, authSvc, store, validate, logr, cfg.Console)
	gradeSvc := service.NewGradeService(upstreamClient, authSvc, store, validate, logr, cfg.Console)
	specialitySvc := service.NewSpecialityService(upstreamClient, authSvc, store, validate, logr, cfg.Console)
	promotionSvc := service.NewPromotionService(upstreamClient, authSvc, store, validate, logr, cfg.Console)
	holidaySvc := service.NewHolidayService(upstreamClient, authSvc, store, validate, logr, cfg.Console)
	coefficientSvc := service.NewCoefficientService(upstreamClient, authSvc, store, validate, logr, cfg.Console)
	absenceSvc := service.NewAbsenceService(upstreamClient, authSvc, store, validate, logr, cfg.Console)
	scheduleSvc := service.NewScheduleService(upstreamClient, authSvc, store, validate, logr, cfg.Console)
	reportSvc := service.NewReportService(upstreamClient, authSvc, validate, logr)

	authHandler := handler.NewAuthHandler(authSvc, cookie, int(cfg.Session.TTL.Seconds()))
	navHandler := handler.NewNavigationHandler(navSvc)
	planningHandler := handler.NewPlanningHandler(planningSvc)
	teacherHandler := handler.NewTeacherHandler(teacherSvc)
	gradeHandler := handler.NewGradeHandler(gradeSvc)
	specialityHandler := handler.NewSpecialityHandler(specialitySvc)
	promotionHandler := handler.NewPromotionHandler(promotionSvc)
	holidayHandler := handler.NewHolidayHandler(holidaySvc)
	coefficientHandler := handler.NewCoefficientHandler(coefficientSvc)
	absenceHandler := handler.NewAbsenceHandler(absenceSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)

	if cfg.Metrics.Enabled {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	guard := middleware.NewInFlightGuard()
	mutation := func(resource string) []gin.HandlerFunc {
		return []gin.HandlerFunc{guard.Handler(), middleware.Audit(logr, "mutation", resource)}
	}
	with := func(extra []gin.HandlerFunc, final gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, extra...), final)
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.Auth(tokens, store, cookie))
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)

	admin := authed.Group("")
	admin.Use(middleware.RequireAdmin())

	admin.GET("/teachers", teacherHandler.List)
	admin.GET("/teachers/options", teacherHandler.Options)
	admin.POST("/teachers", with(mutation("teacher"), teacherHandler.Create)...)
	admin.PUT("/teachers/:id", with(mutation("teacher"), teacherHandler.Update)...)
	admin.DELETE("/teachers/:id", with(mutation("teacher"), teacherHandler.Delete)...)

	admin.GET("/grades", gradeHandler.List)
	admin.POST("/grades", with(mutation("grade"), gradeHandler.Create)...)
	admin.PUT("/grades/:id", with(mutation("grade"), gradeHandler.Update)...)
	admin.DELETE("/grades/:id", with(mutation("grade"), gradeHandler.Delete)...)

	admin.GET("/specialities", specialityHandler.List)
	admin.POST("/specialities", with(mutation("speciality"), specialityHandler.Create)...)
	admin.PUT("/specialities/:id", with(mutation("speciality"), specialityHandler.Update)...)
	admin.DELETE("/specialities/:id", with(mutation("speciality"), specialityHandler.Delete)...)

	admin.GET("/promotions", promotionHandler.List)
	admin.GET("/promotions/options", promotionHandler.Options)
	admin.POST("/promotions", with(mutation("promotion"), promotionHandler.Create)...)
	admin.PUT("/promotions/:id", with(mutation("promotion"), promotionHandler.Update)...)
	admin.DELETE("/promotions/:id", with(mutation("promotion"), promotionHandler.Delete)...)

	admin.GET("/holidays", holidayHandler.List)
	admin.POST("/holidays", with(mutation("holiday"), holidayHandler.Create)...)
	admin.PUT("/holidays/:id", with(mutation("holiday"), holidayHandler.Update)...)
	admin.DELETE("/holidays/:id", with(mutation("holiday"), holidayHandler.Delete)...)

	admin.GET("/coefficients", coefficientHandler.List)
	admin.PUT("/coefficients/:type", with(mutation("coefficient"), coefficientHandler.Update)...)
	admin.DELETE("/coefficients/:type", with(mutation("coefficient"), coefficientHandler.Delete)...)

	admin.GET("/absences", absenceHandler.List)
	admin.GET("/absences/options", absenceHandler.Options)
	admin.POST("/absences", with(mutation("absence"), absenceHandler.Create)...)
	admin.PUT("/absences/:id", with(mutation("absence"), absenceHandler.Update)...)
	admin.DELETE("/absences/:id", with(mutation("absence"), absenceHandler.Delete)...)

	admin.GET("/schedules", scheduleHandler.List)
	admin.GET("/schedules/options", scheduleHandler.Options)
	admin.POST("/schedules", with(mutation("schedule"), scheduleHandler.Create)...)
	admin.PUT("/schedules/:id", with(mutation("schedule"), scheduleHandler.Update)...)
	admin.DELETE("/schedules/:id", with(mutation("schedule"), scheduleHandler.Delete)...)

	admin.GET("/schedules/:id/sessions", scheduleHandler.Sessions)
	admin.POST("/schedules/:id/sessions", with(mutation("session"), scheduleHandler.CreateSession)...)
	admin.PUT("/schedules/:id/sessions/:sessionId", with(mutation("session"), scheduleHandler.UpdateSession)...)
	admin.PATCH("/schedules/:id/sessions/:sessionId/close", with(mutation("session"), scheduleHandler.CloseSession)...)
	admin.DELETE("/schedules/:id/sessions/:sessionId", with(mutation("session"), scheduleHandler.DeleteSession)...)

	admin.GET("/navigation", navHandler.State)
	admin.POST("/navigation/transition", navHandler.Transition)
	admin.POST("/navigation/jump", navHandler.Jump)

	admin.GET("/planning/:sessionId", planningHandler.Grid)
	admin.POST("/planning/:sessionId/seances", with(mutation("seance"), planningHandler.AddSeance)...)
	admin.PUT("/planning/:sessionId/seances/:seanceId", with(mutation("seance"), planningHandler.EditSeance)...)
	admin.DELETE("/planning/:sessionId/seances/:seanceId", with(mutation("seance"), planningHandler.RemoveSeance)...)
	admin.POST("/planning/absences", with(mutation("absence"), planningHandler.RecordAbsence)...)

	if cfg.Reports.Enabled {
		admin.GET("/reports/overtime", reportHandler.Overtime)
		admin.GET("/reports/overtime/card", reportHandler.OvertimeCard)
		admin.GET("/reports/overtime/csv", reportHandler.OvertimeCSV)
		admin.GET("/reports/salary/:mode", reportHandler.SalaryForm)
	}

	admin.GET("/status", metricsHandler.Status)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("console gateway starting", "addr", addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
