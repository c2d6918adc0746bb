package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/exam-seating-api/api/swagger"
	"github.com/noah-isme/exam-seating-api/internal/handler"
	"github.com/noah-isme/exam-seating-api/internal/middleware"
	"github.com/noah-isme/exam-seating-api/internal/models"
	"github.com/noah-isme/exam-seating-api/internal/repository"
	"github.com/noah-isme/exam-seating-api/internal/service"
	"github.com/noah-isme/exam-seating-api/pkg/cache"
	"github.com/noah-isme/exam-seating-api/pkg/config"
	"github.com/noah-isme/exam-seating-api/pkg/database"
	"github.com/noah-isme/exam-seating-api/pkg/logger"
	"github.com/noah-isme/exam-seating-api/pkg/mail"
	corsmiddleware "github.com/noah-isme/exam-seating-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/exam-seating-api/pkg/middleware/requestid"
)

// @title Exam Seating API
// @version 0.1.0
// @description Examination seating, invigilation and attendance administration
// @BasePath /api
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, availability cache disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	examRepo := repository.NewExamRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	seatRepo := repository.NewSeatAllocationRepository(db)
	dutyRepo := repository.NewFacultyAllocationRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close()

	var mailer mail.Mailer
	if cfg.Mail.Enabled && cfg.Mail.SendgridKey != "" {
		mailer = mail.NewSendgridMailer(cfg.Mail, logr)
	} else {
		mailer = mail.NewLogMailer(logr)
	}

	metricsSvc := service.NewMetricsService()
	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	roomSvc := service.NewRoomService(roomRepo, validate, logr)
	examSvc := service.NewExamService(examRepo, validate, logr)
	facultySvc := service.NewFacultyService(facultyRepo, validate, logr)
	seatSvc := service.NewSeatAllocationService(seatRepo, studentRepo, roomRepo, examRepo, cacheRepo, cfg.Availability.CacheTTL, validate, logr)
	dutySvc := service.NewFacultyAllocationService(dutyRepo, seatRepo, facultyRepo, cfg.Allocation, nil, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, dutyRepo, validate, logr)
	exportSvc := service.NewExportService(seatRepo, dutyRepo, examRepo, logr)
	notificationSvc := service.NewNotificationService(seatRepo, dutyRepo, attendanceRepo, mailer, logr)

	studentHandler := handler.NewStudentHandler(studentSvc)
	roomHandler := handler.NewRoomHandler(roomSvc)
	examHandler := handler.NewExamHandler(examSvc)
	facultyHandler := handler.NewFacultyHandler(facultySvc)
	seatHandler := handler.NewSeatAllocationHandler(seatSvc, exportSvc, metricsSvc)
	dutyHandler := handler.NewFacultyAllocationHandler(dutySvc, exportSvc, metricsSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, metricsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	anyStaff := middleware.RequireRoles(models.RoleAdmin, models.RoleInvigilator)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(cfg.JWT.Secret))

	students := api.Group("/students")
	{
		students.GET("", anyStaff, studentHandler.List)
		students.GET("/:id", anyStaff, studentHandler.Get)
		students.POST("", adminOnly, studentHandler.Create)
		students.POST("/import", adminOnly, studentHandler.Import)
		students.PUT("/:id", adminOnly, studentHandler.Update)
		students.DELETE("/:id", adminOnly, studentHandler.Delete)
	}

	rooms := api.Group("/rooms")
	{
		rooms.GET("", anyStaff, roomHandler.List)
		rooms.GET("/:id", anyStaff, roomHandler.Get)
		rooms.POST("", adminOnly, roomHandler.Create)
		rooms.POST("/bulk", adminOnly, roomHandler.BulkCreate)
		rooms.PUT("/:id", adminOnly, roomHandler.Update)
		rooms.DELETE("/:id", adminOnly, roomHandler.Delete)
	}

	exams := api.Group("/exams")
	{
		exams.GET("", anyStaff, examHandler.List)
		exams.GET("/:id", anyStaff, examHandler.Get)
		exams.POST("", adminOnly, examHandler.Create)
		exams.POST("/bulk", adminOnly, examHandler.BulkCreate)
		exams.PUT("/:id", adminOnly, examHandler.Update)
		exams.DELETE("/:id", adminOnly, examHandler.Delete)
	}

	faculty := api.Group("/faculty")
	{
		faculty.GET("", anyStaff, facultyHandler.List)
		faculty.GET("/:id", anyStaff, facultyHandler.Get)
		faculty.POST("", adminOnly, facultyHandler.Create)
		faculty.PUT("/:id", adminOnly, facultyHandler.Update)
		faculty.DELETE("/:id", adminOnly, facultyHandler.Delete)
	}

	allocations := api.Group("/allocations")
	{
		allocations.GET("/availability", anyStaff, seatHandler.Availability)

		allocations.GET("/seats", anyStaff, seatHandler.List)
		allocations.POST("/seats", adminOnly, seatHandler.Allocate)
		allocations.DELETE("/seats/:examId", adminOnly, seatHandler.Clear)
		allocations.GET("/seats/:examId/export/xlsx", anyStaff, seatHandler.ExportWorkbook)
		allocations.GET("/seats/:examId/export/csv", anyStaff, seatHandler.ExportCSV)
		allocations.GET("/seats/:examId/export/pdf", anyStaff, seatHandler.ExportPDF)

		allocations.GET("/faculty", anyStaff, dutyHandler.List)
		allocations.POST("/faculty", adminOnly, dutyHandler.Allocate)
		allocations.DELETE("/faculty", adminOnly, dutyHandler.Clear)
		allocations.POST("/faculty/duties", adminOnly, dutyHandler.AssignDuty)
		allocations.PUT("/faculty/duties/:id", adminOnly, dutyHandler.UpdateDuty)
		allocations.DELETE("/faculty/duties/:id", adminOnly, dutyHandler.RemoveDuty)
		allocations.GET("/faculty/export/csv", anyStaff, dutyHandler.DutyRoster)
	}

	attendance := api.Group("/attendance")
	{
		attendance.GET("", anyStaff, attendanceHandler.List)
		attendance.GET("/summary", anyStaff, attendanceHandler.Summary)
		attendance.GET("/invigilator/:facultyId", anyStaff, attendanceHandler.Sheet)
		attendance.GET("/report/:facultyId", anyStaff, attendanceHandler.Report)
		attendance.POST("/mark", anyStaff, attendanceHandler.Mark)
		attendance.POST("/malpractice", anyStaff, attendanceHandler.ReportMalpractice)
	}

	notifications := api.Group("/notifications")
	{
		notifications.POST("/students/:examId", adminOnly, notificationHandler.NotifyStudents)
		notifications.POST("/faculty", adminOnly, notificationHandler.NotifyFaculty)
		notifications.POST("/absentees", adminOnly, notificationHandler.NotifyAbsentees)
		notifications.POST("/malpractice", adminOnly, notificationHandler.NotifyMalpractice)
		notifications.POST("/counts", adminOnly, notificationHandler.NotifyCounts)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}
