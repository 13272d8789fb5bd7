package httpapi

import (
	"net/http"
	"time"

	"brightsteps/backend/internal/http/handlers"
	"brightsteps/backend/internal/store"
)

type API struct {
	Store         *store.Store
	CORSAllowList []string
}

func (a API) Router() http.Handler {
	mux := http.NewServeMux()
	session := &sessionToken{}

	mux.HandleFunc("GET /healthz", handlers.Health)

	authHandler := handlers.AuthHandler{Store: a.Store, Sessions: session}
	loginLimiter := newLoginRateLimiter(30, time.Minute)
	mux.Handle("POST /api/v1/auth/login", withLoginRateLimit(http.HandlerFunc(authHandler.Login), loginLimiter))

	// Applications come in from the public landing site.
	applicationsHandler := handlers.ApplicationsHandler{Store: a.Store}
	mux.HandleFunc("POST /api/v1/applications/staff", applicationsHandler.SubmitStaff)
	mux.HandleFunc("POST /api/v1/applications/students", applicationsHandler.SubmitStudent)

	protected := RequireSession(a.Store, session)

	mux.Handle("POST /api/v1/auth/logout", protected(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("POST /api/v1/auth/password", protected(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("GET /api/v1/me", protected(http.HandlerFunc(handlers.Me)))

	studentsHandler := handlers.StudentsHandler{Store: a.Store}
	mux.Handle("GET /api/v1/students", protected(http.HandlerFunc(studentsHandler.List)))
	mux.Handle("POST /api/v1/students", protected(http.HandlerFunc(studentsHandler.Register)))
	mux.Handle("POST /api/v1/students/{id}/health", protected(http.HandlerFunc(studentsHandler.AddHealthEntry)))

	staffHandler := handlers.StaffHandler{Store: a.Store}
	mux.Handle("GET /api/v1/staff", protected(http.HandlerFunc(staffHandler.List)))
	mux.Handle("POST /api/v1/staff", protected(http.HandlerFunc(staffHandler.Register)))

	sessionLogsHandler := handlers.SessionLogsHandler{Store: a.Store}
	mux.Handle("GET /api/v1/session-logs", protected(http.HandlerFunc(sessionLogsHandler.List)))
	mux.Handle("POST /api/v1/session-logs", protected(http.HandlerFunc(sessionLogsHandler.Create)))

	milestonesHandler := handlers.MilestonesHandler{Store: a.Store}
	mux.Handle("GET /api/v1/milestones/records", protected(http.HandlerFunc(milestonesHandler.ListRecords)))
	mux.Handle("POST /api/v1/milestones/records", protected(http.HandlerFunc(milestonesHandler.CreateRecord)))
	mux.Handle("GET /api/v1/milestones/templates", protected(http.HandlerFunc(milestonesHandler.ListTemplates)))
	mux.Handle("POST /api/v1/milestones/templates", protected(http.HandlerFunc(milestonesHandler.SaveTemplate)))
	mux.Handle("DELETE /api/v1/milestones/templates/{id}", protected(http.HandlerFunc(milestonesHandler.DeleteTemplate)))

	shopHandler := handlers.ShopHandler{Store: a.Store}
	mux.Handle("GET /api/v1/shop/items", protected(http.HandlerFunc(shopHandler.List)))
	mux.Handle("POST /api/v1/shop/items", protected(http.HandlerFunc(shopHandler.Save)))
	mux.Handle("DELETE /api/v1/shop/items/{id}", protected(http.HandlerFunc(shopHandler.Delete)))

	cartHandler := handlers.CartHandler{Store: a.Store}
	mux.Handle("GET /api/v1/cart", protected(http.HandlerFunc(cartHandler.Get)))
	mux.Handle("POST /api/v1/cart/items", protected(http.HandlerFunc(cartHandler.Add)))
	mux.Handle("POST /api/v1/cart/items/{cartId}/quantity", protected(http.HandlerFunc(cartHandler.UpdateQuantity)))
	mux.Handle("DELETE /api/v1/cart/items/{cartId}", protected(http.HandlerFunc(cartHandler.Remove)))

	ordersHandler := handlers.OrdersHandler{Store: a.Store}
	mux.Handle("GET /api/v1/orders", protected(http.HandlerFunc(ordersHandler.List)))
	mux.Handle("POST /api/v1/orders", protected(http.HandlerFunc(ordersHandler.Place)))
	mux.Handle("POST /api/v1/orders/{id}/status", protected(http.HandlerFunc(ordersHandler.UpdateStatus)))

	noticesHandler := handlers.NoticesHandler{Store: a.Store}
	mux.Handle("GET /api/v1/notices", protected(http.HandlerFunc(noticesHandler.List)))
	mux.Handle("POST /api/v1/notices", protected(http.HandlerFunc(noticesHandler.Create)))
	mux.Handle("POST /api/v1/notices/{id}/replies", protected(http.HandlerFunc(noticesHandler.Reply)))
	mux.Handle("POST /api/v1/notices/{id}/views", protected(http.HandlerFunc(noticesHandler.MarkViewed)))

	paymentsHandler := handlers.PaymentsHandler{Store: a.Store}
	mux.Handle("GET /api/v1/payments", protected(http.HandlerFunc(paymentsHandler.List)))
	mux.Handle("POST /api/v1/payments", protected(http.HandlerFunc(paymentsHandler.Record)))

	settingsHandler := handlers.SettingsHandler{Store: a.Store}
	mux.Handle("GET /api/v1/settings", protected(http.HandlerFunc(settingsHandler.Get)))
	mux.Handle("PUT /api/v1/settings", protected(http.HandlerFunc(settingsHandler.Update)))

	systemLogsHandler := handlers.SystemLogsHandler{Store: a.Store}
	mux.Handle("GET /api/v1/system-logs", protected(http.HandlerFunc(systemLogsHandler.List)))

	mux.Handle("GET /api/v1/applications/staff", protected(http.HandlerFunc(applicationsHandler.ListStaff)))
	mux.Handle("GET /api/v1/applications/students", protected(http.HandlerFunc(applicationsHandler.ListStudents)))
	mux.Handle("POST /api/v1/applications/staff/{id}/status", protected(http.HandlerFunc(applicationsHandler.UpdateStaffStatus)))
	mux.Handle("POST /api/v1/applications/students/{id}/status", protected(http.HandlerFunc(applicationsHandler.UpdateStudentStatus)))

	parentsHandler := handlers.ParentsHandler{Store: a.Store}
	mux.Handle("GET /api/v1/parents/me/overview", protected(http.HandlerFunc(parentsHandler.Overview)))

	referenceHandler := handlers.ReferenceHandler{Store: a.Store}
	mux.Handle("GET /api/v1/reference", protected(http.HandlerFunc(referenceHandler.Get)))

	notificationsHandler := handlers.NotificationsHandler{Store: a.Store}
	mux.Handle("GET /api/v1/notifications", protected(http.HandlerFunc(notificationsHandler.List)))

	return withCORS(mux, a.CORSAllowList)
}
