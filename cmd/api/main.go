package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/staffclock/attendance-backend-go/internal/config"
	appHTTP "github.com/staffclock/attendance-backend-go/internal/handler/http"
	"github.com/staffclock/attendance-backend-go/internal/pkg/clock"
	"github.com/staffclock/attendance-backend-go/internal/pkg/database"
	"github.com/staffclock/attendance-backend-go/internal/pkg/jwt"
	"github.com/staffclock/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffclock/attendance-backend-go/internal/service/attendance"
	authService "github.com/staffclock/attendance-backend-go/internal/service/auth"
	dashboardService "github.com/staffclock/attendance-backend-go/internal/service/dashboard"
	leaveService "github.com/staffclock/attendance-backend-go/internal/service/leave"
	userService "github.com/staffclock/attendance-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	transactor := postgresql.NewTransactor(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	systemClock := clock.System()

	// Validated by config.Load.
	expectedCheckIn, _ := time.Parse("15:04:05", cfg.Attendance.ExpectedCheckIn)

	authSvc := authService.NewAuthService(userRepo, refreshTokenRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(transactor, attendanceRepo, systemClock, expectedCheckIn)
	leaveSvc := leaveService.NewLeaveService(transactor, leaveRequestRepo, userRepo, systemClock)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, userRepo, attendanceRepo, systemClock)
	userSvc := userService.NewUserService(userRepo)

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, authSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		User:       appHTTP.NewUserHandler(userSvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
