package httpserver

import (
	"net/http"
	"time"

	"mess-manager-go/internal/config"
	"mess-manager-go/internal/metrics"
	"mess-manager-go/internal/transport/httpserver/handler"
	authmw "mess-manager-go/internal/transport/httpserver/middleware"
	"mess-manager-go/pkg/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, members authmw.MemberSaver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))
	r.Use(authmw.Metrics)

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		auth := authmw.NewJWTAuth(cfg.Auth, members, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Post("/messes", handlers.CreateMess)
			r.Post("/messes/join", handlers.JoinMess)
			r.Post("/messes/leave", handlers.LeaveMess)
			r.Get("/messes/me", handlers.GetMessMe)
			r.Get("/messes/me/members", handlers.ListMessMembers)
			r.Delete("/messes/me/members/{member_id}", handlers.RemoveMessMember)
			r.Post("/messes/me/members/{member_id}/promote", handlers.PromoteMessMember)
			r.Post("/messes/me/members/{member_id}/demote", handlers.DemoteMessMember)

			r.Post("/meals", handlers.SubmitMeals)
			r.Get("/meals", handlers.MealsForDate)
			r.Get("/meals/summary", handlers.MealsSummary)
			r.Get("/meals/statistics", handlers.MealsStatistics)

			r.Post("/deposits", handlers.AddDeposits)

			r.Get("/reports/period", handlers.PeriodReport)

			r.Post("/integrity/verify", handlers.IntegrityVerify)
			r.Post("/integrity/fix", handlers.IntegrityFix)

			r.Post("/settlement/run", handlers.RunSettlement)

			r.Post("/bills", handlers.CreateBill)
			r.Get("/bills", handlers.ListBills)
			r.Get("/bills/summary", handlers.BillsSummary)
			r.Get("/bills/{id}", handlers.GetBill)
			r.Patch("/bills/{id}/amount", handlers.UpdateBillAmount)
			r.Post("/bills/{id}/payments/{member_id}", handlers.ToggleBillPayment)
			r.Delete("/bills/{id}", handlers.DeleteBill)

			r.Get("/notifications", handlers.ListNotifications)
			r.Post("/notifications/{id}/read", handlers.MarkNotificationRead)
			r.Post("/notifications/read-all", handlers.MarkAllNotificationsRead)
		})
	})

	return r
}
