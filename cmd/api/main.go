package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kintai-labs/kintai-backend-go/internal/config"
	appHTTP "github.com/kintai-labs/kintai-backend-go/internal/handler/http"
	"github.com/kintai-labs/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-labs/kintai-backend-go/internal/pkg/jwt"
	"github.com/kintai-labs/kintai-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kintai-labs/kintai-backend-go/internal/service/attendance"
	authService "github.com/kintai-labs/kintai-backend-go/internal/service/auth"
	employeeService "github.com/kintai-labs/kintai-backend-go/internal/service/employee"
	leaveService "github.com/kintai-labs/kintai-backend-go/internal/service/leave"
	reportService "github.com/kintai-labs/kintai-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveGrantRepo := postgresql.NewLeaveGrantRepository(db)
	leaveUsageRepo := postgresql.NewLeaveUsageRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	calculator := attendanceService.NewCalculator(cfg.Attendance)

	authSvc := authService.NewService(userRepo, jwtService)
	employeeSvc := employeeService.NewService(employeeRepo)
	attendanceSvc := attendanceService.NewService(db, attendanceRepo, employeeRepo, calculator)
	leaveSvc := leaveService.NewService(employeeRepo, leaveGrantRepo, leaveUsageRepo, attendanceRepo)
	reportSvc := reportService.NewService()

	authHandler := appHTTP.NewAuthHandler(authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	reportHandler := appHTTP.NewReportHandler(attendanceSvc, leaveSvc, employeeSvc, reportSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		employeeHandler,
		attendanceHandler,
		leaveHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
