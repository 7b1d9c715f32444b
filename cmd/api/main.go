package main

import (
	"fmt"
	"net/http"

	"github.com/heakbomb/storeworks-backend-go/internal/config"
	appHTTP "github.com/heakbomb/storeworks-backend-go/internal/handler/http"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/database"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/jwt"
	"github.com/heakbomb/storeworks-backend-go/internal/repository/postgresql"
	"github.com/heakbomb/storeworks-backend-go/internal/service/aggregate"
	attendanceService "github.com/heakbomb/storeworks-backend-go/internal/service/attendance"
	payrollService "github.com/heakbomb/storeworks-backend-go/internal/service/payroll"
	shiftService "github.com/heakbomb/storeworks-backend-go/internal/service/shift"
	wageService "github.com/heakbomb/storeworks-backend-go/internal/service/wage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	txManager := postgresql.NewTxManager(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	wageRepo := postgresql.NewWageRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	aggregator := aggregate.NewAggregator(attendanceRepo, shiftRepo)
	shiftSvc := shiftService.NewShiftService(txManager, shiftRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(txManager, attendanceRepo, shiftRepo, employeeRepo)
	wageSvc := wageService.NewWageService(txManager, wageRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(
		txManager,
		payrollRepo,
		employeeRepo,
		wageRepo,
		aggregator,
		cfg.App.UpstreamTimeout,
	)

	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	wageHandler := appHTTP.NewWageHandler(wageSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		shiftHandler,
		attendanceHandler,
		wageHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
