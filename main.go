// @title           Task Management API
// @version         1.0
// @description     Task-management backend with JWT auth, task sharing and analytics
// @BasePath        /api

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Vikramop/task-mangement-app/config"
	"github.com/Vikramop/task-mangement-app/db"
	_ "github.com/Vikramop/task-mangement-app/docs"
	"github.com/Vikramop/task-mangement-app/handlers"
	"github.com/Vikramop/task-mangement-app/middlewares"
	"github.com/Vikramop/task-mangement-app/services"
	"github.com/Vikramop/task-mangement-app/store"
	"github.com/Vikramop/task-mangement-app/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Unable to connect to DB: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	database := client.Database(cfg.DBName)
	userStore := store.NewUserStore(database)
	taskStore := store.NewTaskStore(database)
	if err := userStore.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Unable to prepare indexes: %v", err)
	}

	var notifier services.Notifier
	if cfg.SMTPHost != "" {
		notifier = utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailFrom, cfg.EmailPassword)
	}

	authService := services.NewAuthService(userStore, cfg.JWTSecret)
	taskService := services.NewTaskService(taskStore, userStore, cfg.FrontendBaseURL, notifier)

	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)

	requireAuth := func(h http.HandlerFunc) http.HandlerFunc {
		return middlewares.RequireAuth(authService, h)
	}

	r := mux.NewRouter()
	r.Use(middlewares.RequestID)

	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")
	auth.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	auth.HandleFunc("/update", requireAuth(authHandler.Update)).Methods("PUT")
	auth.HandleFunc("/user", requireAuth(authHandler.GetUser)).Methods("GET")

	task := r.PathPrefix("/api/task").Subrouter()
	task.HandleFunc("/sort", requireAuth(taskHandler.Sort)).Methods("GET")
	task.HandleFunc("/analytics", requireAuth(taskHandler.Analytics)).Methods("GET")
	task.HandleFunc("/add", requireAuth(taskHandler.AddAssignee)).Methods("POST")
	task.HandleFunc("/share/{taskId}", taskHandler.Share).Methods("POST")
	task.HandleFunc("", requireAuth(taskHandler.Create)).Methods("POST")
	task.HandleFunc("", requireAuth(taskHandler.List)).Methods("GET")
	task.HandleFunc("/{taskId}", taskHandler.GetByID).Methods("GET")
	task.HandleFunc("/{taskId}", requireAuth(taskHandler.Edit)).Methods("PUT")
	task.HandleFunc("/{taskId}", requireAuth(taskHandler.Delete)).Methods("DELETE")

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Anything unmatched belongs to the frontend.
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, cfg.FrontendBaseURL+req.URL.Path, http.StatusTemporaryRedirect)
	})

	handler := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{"*"}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)
	handler = gorillahandlers.LoggingHandler(os.Stdout, handler)

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
