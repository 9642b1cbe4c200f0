package main

import (
	"context"
	"errors"
	"html/template"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nrednav/cuid2"
	"github.com/sbochoun/folio/internal/boot"
	"github.com/sbochoun/folio/internal/contentstore"
	"github.com/sbochoun/folio/internal/handlers"
	"github.com/sbochoun/folio/internal/mailer"
	"github.com/sbochoun/folio/internal/service/auth"
	"github.com/sbochoun/folio/internal/service/content"
	"github.com/sbochoun/folio/internal/service/site"
	"github.com/sbochoun/folio/internal/service/upload"
)

type Template struct {
	templates *template.Template
	watcher   *fsnotify.Watcher
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

func (t *Template) Watch() {
	var err error

	t.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("watcher: %+v", err)
	}

	go func() {
		for {
			select {
			case event, ok := <-t.watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) {
					log.Infof("modified template: %s", event.Name)
					t.templates = template.Must(template.ParseGlob("ui/views/*.html"))
				}
			case err, ok := <-t.watcher.Errors:
				if !ok {
					return
				}
				log.Errorf("watcher: %+v", err)
			}
		}
	}()

	err = t.watcher.Add("./ui/views")
	if err != nil {
		log.Fatalf("watcher: %+v", err)
	}
}

func (t *Template) Close() {
	if t.watcher != nil {
		t.watcher.Close()
	}
}

func NewTemplate() (*Template, error) {
	t := &Template{
		templates: template.Must(template.ParseGlob("ui/views/*.html")),
	}
	return t, nil
}

func main() {
	config, err := boot.Load()
	if err != nil {
		log.Fatalf("boot: %+v", err)
	}

	store, err := contentstore.Open(&config)
	if err != nil {
		log.Fatalf("content store: %+v", err)
	}
	defer store.Close()

	uploadService, err := upload.New(config.UploadDirectory, "/static/assets/img/portfolio")
	if err != nil {
		log.Fatalf("upload service: %+v", err)
	}

	mailService := mailer.New(&config)
	siteService := site.New(store)
	adminService := content.New(store, mailService)
	authService := auth.New(config.AdminPIN, auth.NewTracker())

	server := echo.New()
	server.Use(middleware.BodyLimit("10M"))
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	server.Use(echoprometheus.NewMiddleware("folio"))
	server.Use(middleware.Recover())
	server.Use(session.Middleware(sessions.NewCookieStore([]byte(config.SessionSecret))))

	server.Logger.SetLevel(log.INFO)

	server.Static("/static", "ui/static")

	t, _ := NewTemplate()
	defer t.Close()
	if config.IsDevelopment() {
		t.Watch()
	}
	server.Renderer = t

	// public pages
	server.GET("/", handlers.Page(siteService, "home"))
	server.GET("/about", handlers.Page(siteService, "about"))
	server.GET("/resume", handlers.Page(siteService, "resume"))
	server.GET("/portfolio", handlers.Portfolio(siteService))
	server.GET("/services", handlers.Page(siteService, "services"))
	server.GET("/contact", handlers.Page(siteService, "contact"))
	server.POST("/contact", handlers.SubmitContact(siteService))
	server.POST("/api/contact", handlers.SubmitContact(siteService))

	// legacy bookmarks
	server.GET("/home", handlers.RedirectHome())
	server.GET("/index", handlers.RedirectHome())
	server.GET("/index.html", handlers.RedirectHome())

	// ops and SEO
	server.GET("/health", handlers.Health(config.Env))
	server.GET("/sitemap.xml", handlers.Sitemap())
	server.GET("/robots.txt", handlers.Robots())

	// admin
	admin := server.Group("/admin")
	admin.GET("/login", handlers.LoginForm())
	admin.POST("/login", handlers.Login(authService))

	protected := admin.Group("", handlers.RequireAuth())
	protected.GET("", handlers.Dashboard(adminService))
	protected.GET("/dashboard", handlers.Dashboard(adminService))
	protected.POST("/logout", handlers.Logout())

	protected.GET("/projects", handlers.AdminProjects(adminService))
	protected.GET("/projects/add", handlers.AddProjectForm())
	protected.GET("/projects/edit/:id", handlers.EditProjectForm(adminService))
	protected.POST("/projects/save/:id", handlers.SaveProject(adminService))
	protected.DELETE("/projects/delete/:id", handlers.DeleteProject(adminService))
	protected.POST("/projects/bulk-delete", handlers.BulkDeleteProjects(adminService))

	protected.GET("/contacts", handlers.AdminContacts(adminService))
	protected.POST("/contacts/reply/:id", handlers.ReplyContact(adminService))
	protected.PATCH("/contacts/status/:id", handlers.UpdateContactStatus(adminService))
	protected.DELETE("/contacts/delete/:id", handlers.DeleteContact(adminService))
	protected.POST("/contacts/bulk-delete", handlers.BulkDeleteContacts(adminService))

	protected.POST("/upload/single", handlers.UploadSingle(uploadService))
	protected.POST("/upload/multiple", handlers.UploadMultiple(uploadService))
	protected.GET("/files", handlers.ListFiles(uploadService))
	protected.DELETE("/files/:filename", handlers.DeleteFile(uploadService))

	server.RouteNotFound("/*", handlers.NotFound(siteService))

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(config.MetricsAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	go func() {
		if err := server.Start(config.Addr); err != nil && err != http.ErrServerClosed {
			server.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		server.Logger.Fatal(err)
	}
}
