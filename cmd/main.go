package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/mansionmuse/backend/internal/app"
	"github.com/mansionmuse/backend/internal/config"
	"github.com/mansionmuse/backend/internal/constants"
	"github.com/mansionmuse/backend/internal/controllers"
	"github.com/mansionmuse/backend/internal/middleware"
	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/repositories"
	"github.com/mansionmuse/backend/internal/routes"
	"github.com/mansionmuse/backend/internal/services"
	"github.com/mansionmuse/backend/internal/utils"
)

// corsOptions covers every method the router registers, PATCH included for
// the tenant payment-status override.
func corsOptions(cfg *config.Config) cors.Options {
	allowedOrigins := []string{"*"}
	if cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = []string{"https://app.mansionmuse.app"}
	}
	return cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: cfg.LDFlag_CORSHighSecurity,
	}
}

func main() {
	utils.InitLogger("mansionmuse-backend")

	cfg := config.LoadConfig("mansionmuse-backend")

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatalf("Failed to initialize app: %v", err)
	}
	defer application.Close()

	// Repositories
	ownerRepo := repositories.NewOwnerRepository(application.DB)
	planRepo := repositories.NewPlanRepository(application.DB)
	propertyRepo := repositories.NewPropertyRepository(application.DB)
	roomRepo := repositories.NewRoomRepository(application.DB)
	tenantRepo := repositories.NewTenantRepository(application.DB)
	staffRepo := repositories.NewStaffRepository(application.DB)
	paymentRepo := repositories.NewPaymentRepository(application.DB)
	expenseRepo := repositories.NewExpenseRepository(application.DB)
	mealRepo := repositories.NewMealRepository(application.DB)
	menuRepo := repositories.NewMenuRepository(application.DB)
	complaintRepo := repositories.NewComplaintRepository(application.DB)
	noticeRepo := repositories.NewNoticeRepository(application.DB)
	txnRepo := repositories.NewTransactionRepository(application.DB)

	if cfg.LDFlag_SeedDefaultData {
		if err := app.SeedDefaultData(context.Background(), ownerRepo, planRepo); err != nil {
			utils.Logger.Fatalf("Failed to seed default data: %v", err)
		}
	}

	// Services
	emailService := services.NewEmailService(cfg)
	financeService := services.NewFinanceService(ownerRepo, tenantRepo, staffRepo, paymentRepo, expenseRepo, emailService)
	tenantService := services.NewTenantService(tenantRepo, roomRepo, propertyRepo, paymentRepo, financeService, emailService)
	authService := services.NewAuthService(cfg, ownerRepo, emailService)
	planService := services.NewPlanService(planRepo, ownerRepo)
	planGate := middleware.NewPlanGate(planService)
	billingService := services.NewBillingService(cfg, planRepo, ownerRepo, txnRepo, planGate, emailService)
	propertyService := services.NewPropertyService(propertyRepo, ownerRepo, planRepo, roomRepo, tenantRepo)
	roomService := services.NewRoomService(roomRepo, propertyRepo)
	staffService := services.NewStaffService(staffRepo)
	mealService := services.NewMealService(mealRepo, menuRepo, tenantRepo, propertyRepo, emailService)
	complaintService := services.NewComplaintService(complaintRepo)
	noticeService := services.NewNoticeService(noticeRepo)

	// Controllers
	healthController := controllers.NewHealthController(application)
	authController := controllers.NewAuthController(authService)
	propertyController := controllers.NewPropertyController(propertyService)
	roomController := controllers.NewRoomController(roomService)
	tenantController := controllers.NewTenantController(tenantService)
	staffController := controllers.NewStaffController(staffService)
	financeController := controllers.NewFinanceController(financeService)
	mealController := controllers.NewMealController(mealService)
	complaintController := controllers.NewComplaintController(complaintService)
	noticeController := controllers.NewNoticeController(noticeService)
	billingController := controllers.NewBillingController(planService, billingService)

	router := mux.NewRouter()

	// Public routes
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.AuthRegister, authController.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthLogin, authController.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.Plans, billingController.ListPlansHandler).Methods(http.MethodGet)

	// Authenticated routes
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.AuthMe, authController.MeHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AuthMe, authController.UpdateProfileHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.AuthChangePassword, authController.ChangePasswordHandler).Methods(http.MethodPost)

	properties := secured.NewRoute().Subrouter()
	properties.Use(planGate.Require(constants.ModuleProperties))
	properties.HandleFunc(routes.Properties, propertyController.CreateHandler).Methods(http.MethodPost)
	properties.HandleFunc(routes.Properties, propertyController.ListHandler).Methods(http.MethodGet)
	properties.HandleFunc(routes.PropertyStats, propertyController.StatsHandler).Methods(http.MethodGet)
	properties.HandleFunc(routes.PropertyByID, propertyController.GetHandler).Methods(http.MethodGet)
	properties.HandleFunc(routes.PropertyByID, propertyController.UpdateHandler).Methods(http.MethodPut)
	properties.HandleFunc(routes.PropertyByID, propertyController.DeleteHandler).Methods(http.MethodDelete)

	rooms := secured.NewRoute().Subrouter()
	rooms.Use(planGate.Require(constants.ModuleRooms))
	rooms.HandleFunc(routes.Rooms, roomController.CreateHandler).Methods(http.MethodPost)
	rooms.HandleFunc(routes.Rooms, roomController.ListHandler).Methods(http.MethodGet)
	rooms.HandleFunc(routes.RoomByID, roomController.GetHandler).Methods(http.MethodGet)
	rooms.HandleFunc(routes.RoomByID, roomController.UpdateHandler).Methods(http.MethodPut)
	rooms.HandleFunc(routes.RoomByID, roomController.DeleteHandler).Methods(http.MethodDelete)

	tenants := secured.NewRoute().Subrouter()
	tenants.Use(planGate.Require(constants.ModuleTenants))
	tenants.HandleFunc(routes.Tenants, tenantController.CreateHandler).Methods(http.MethodPost)
	tenants.HandleFunc(routes.Tenants, tenantController.ListHandler).Methods(http.MethodGet)
	tenants.HandleFunc(routes.TenantByID, tenantController.GetHandler).Methods(http.MethodGet)
	tenants.HandleFunc(routes.TenantByID, tenantController.UpdateHandler).Methods(http.MethodPut)
	tenants.HandleFunc(routes.TenantPaymentStatus, tenantController.OverridePaymentStatusHandler).Methods(http.MethodPatch)
	tenants.HandleFunc(routes.TenantByID, tenantController.DeleteHandler).Methods(http.MethodDelete)

	staff := secured.NewRoute().Subrouter()
	staff.Use(planGate.Require(constants.ModuleStaff))
	staff.HandleFunc(routes.Staff, staffController.CreateHandler).Methods(http.MethodPost)
	staff.HandleFunc(routes.Staff, staffController.ListHandler).Methods(http.MethodGet)
	staff.HandleFunc(routes.StaffByID, staffController.GetHandler).Methods(http.MethodGet)
	staff.HandleFunc(routes.StaffByID, staffController.UpdateHandler).Methods(http.MethodPut)
	staff.HandleFunc(routes.StaffByID, staffController.DeleteHandler).Methods(http.MethodDelete)

	finance := secured.NewRoute().Subrouter()
	finance.Use(planGate.Require(constants.ModuleFinance))
	finance.HandleFunc(routes.FinanceRecords, financeController.CreateRecordHandler).Methods(http.MethodPost)
	finance.HandleFunc(routes.FinanceRecords, financeController.ListRecordsHandler).Methods(http.MethodGet)
	finance.HandleFunc(routes.FinanceRecordByID, financeController.UpdateRecordHandler).Methods(http.MethodPut)
	finance.HandleFunc(routes.FinanceRecordByID, financeController.DeleteRecordHandler).Methods(http.MethodDelete)
	finance.HandleFunc(routes.FinanceStats, financeController.StatsHandler).Methods(http.MethodGet)
	finance.HandleFunc(routes.FinanceGenerateRent, financeController.GenerateRentHandler).Methods(http.MethodPost)
	finance.HandleFunc(routes.FinanceGenerateSalary, financeController.GenerateSalaryHandler).Methods(http.MethodPost)
	finance.HandleFunc(routes.FinanceReconcileTenant, financeController.ReconcileTenantHandler).Methods(http.MethodPost)

	meals := secured.NewRoute().Subrouter()
	meals.Use(planGate.Require(constants.ModuleMeals))
	meals.HandleFunc(routes.Meals, mealController.CreateHandler).Methods(http.MethodPost)
	meals.HandleFunc(routes.Meals, mealController.ListHandler).Methods(http.MethodGet)
	meals.HandleFunc(routes.MealStats, mealController.StatsHandler).Methods(http.MethodGet)
	meals.HandleFunc(routes.MealByID, mealController.GetHandler).Methods(http.MethodGet)
	meals.HandleFunc(routes.MealByID, mealController.UpdateHandler).Methods(http.MethodPut)
	meals.HandleFunc(routes.MealByID, mealController.DeleteHandler).Methods(http.MethodDelete)
	meals.HandleFunc(routes.Menu, mealController.GetMenuHandler).Methods(http.MethodGet)
	meals.HandleFunc(routes.Menu, mealController.UpsertMenuHandler).Methods(http.MethodPost)

	complaints := secured.NewRoute().Subrouter()
	complaints.Use(planGate.Require(constants.ModuleComplaints))
	complaints.HandleFunc(routes.Complaints, complaintController.CreateHandler).Methods(http.MethodPost)
	complaints.HandleFunc(routes.Complaints, complaintController.ListHandler).Methods(http.MethodGet)
	complaints.HandleFunc(routes.ComplaintByID, complaintController.UpdateHandler).Methods(http.MethodPut)
	complaints.HandleFunc(routes.ComplaintByID, complaintController.DeleteHandler).Methods(http.MethodDelete)

	notices := secured.NewRoute().Subrouter()
	notices.Use(planGate.Require(constants.ModuleNotices))
	notices.HandleFunc(routes.Notices, noticeController.CreateHandler).Methods(http.MethodPost)
	notices.HandleFunc(routes.Notices, noticeController.ListHandler).Methods(http.MethodGet)
	notices.HandleFunc(routes.NoticeByID, noticeController.UpdateHandler).Methods(http.MethodPut)
	notices.HandleFunc(routes.NoticeByID, noticeController.DeleteHandler).Methods(http.MethodDelete)

	billing := secured.NewRoute().Subrouter()
	billing.HandleFunc(routes.BillingOrders, billingController.CreateOrderHandler).Methods(http.MethodPost)
	billing.HandleFunc(routes.BillingVerify, billingController.VerifyPaymentHandler).Methods(http.MethodPost)
	billing.HandleFunc(routes.BillingTransactions, billingController.ListTransactionsHandler).Methods(http.MethodGet)

	admin := secured.NewRoute().Subrouter()
	admin.Use(middleware.RequireRole(string(models.RoleAdmin)))
	admin.HandleFunc(routes.AdminPlans, billingController.CreatePlanHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminPlanByID, billingController.UpdatePlanHandler).Methods(http.MethodPut)
	admin.HandleFunc(routes.AdminPlanByID, billingController.DeletePlanHandler).Methods(http.MethodDelete)

	// Monthly record generation
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(cfg.RentCronSpec, func() {
		financeService.GenerateRentForAllOwners(context.Background(), time.Now().UTC())
	}); err != nil {
		utils.Logger.Fatalf("Failed to schedule rent generation: %v", err)
	}
	if _, err := c.AddFunc(cfg.SalaryCronSpec, func() {
		financeService.GenerateSalaryForAllOwners(context.Background(), time.Now().UTC())
	}); err != nil {
		utils.Logger.Fatalf("Failed to schedule salary generation: %v", err)
	}
	c.Start()
	defer c.Stop()

	co := cors.New(corsOptions(cfg))

	utils.Logger.Infof("%s listening on port %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatalf("Server stopped: %v", err)
	}
}
