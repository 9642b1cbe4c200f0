package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/sbochoun/folio/internal/model"
	"github.com/sbochoun/folio/internal/service/auth"
	"github.com/sbochoun/folio/internal/service/content"
)

type AuthService interface {
	Login(address, submittedPin string) auth.LoginResult
}

type AdminService interface {
	ListProjects() ([]model.Project, error)
	GetProject(id string) (*model.Project, error)
	UpsertProject(id string, input content.ProjectInput) (*model.Project, error)
	DeleteProject(id string) error
	BulkDeleteProjects(ids []string) (int64, error)

	ListContacts() ([]model.Contact, error)
	Reply(id, replyText string) (*model.Contact, error)
	SetContactStatus(id string, status model.ContactStatus) error
	DeleteContact(id string) error
	BulkDeleteContacts(ids []string) (int64, error)

	Dashboard() (*content.DashboardStats, []model.Project, []model.Contact, error)
}

// RequireAuth admits only authenticated sessions. API-shaped requests get a
// structured error, page requests a redirect to the login form.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if SessionFor(c).Authenticated() {
				return next(c)
			}
			if isAPIRequest(c) {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success":  false,
					"error":    "Unauthorized. Please login again.",
					"redirect": "/admin/login",
				})
			}
			return c.Redirect(http.StatusFound, "/admin/login")
		}
	}
}

func isAPIRequest(c echo.Context) bool {
	if strings.Contains(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return true
	}
	return c.Request().Header.Get("X-Requested-With") == "XMLHttpRequest"
}

func LoginForm() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "admin-login.html", loginData{})
	}
}

type loginData struct {
	Error string
}

func Login(authService AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		result := authService.Login(c.RealIP(), c.FormValue("pin"))

		switch result.Status {
		case auth.LoginSuccess:
			if err := SessionFor(c).SetAuthenticated(); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}
			return c.Redirect(http.StatusFound, "/admin")
		case auth.LoginLocked:
			minutes := int(result.RetryAfter.Round(time.Minute) / time.Minute)
			if minutes < 1 {
				minutes = 1
			}
			return c.Render(http.StatusTooManyRequests, "admin-login.html", loginData{
				Error: fmt.Sprintf("Too many failed attempts. Try again in %d minutes.", minutes),
			})
		case auth.LoginInvalidFormat:
			return c.Render(http.StatusBadRequest, "admin-login.html", loginData{
				Error: "PIN is required.",
			})
		case auth.LoginInvalidLength:
			return c.Render(http.StatusBadRequest, "admin-login.html", loginData{
				Error: "PIN must be between 3 and 10 digits.",
			})
		default:
			return c.Render(http.StatusUnauthorized, "admin-login.html", loginData{
				Error: fmt.Sprintf("Invalid PIN. %d attempts remaining.", result.AttemptsRemaining),
			})
		}
	}
}

func Logout() echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := SessionFor(c).Destroy(); err != nil {
			log.Errorf("destroying session: %+v", err)
		}
		return c.Redirect(http.StatusFound, "/admin/login")
	}
}

func Dashboard(adminService AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, recentProjects, recentContacts, err := adminService.Dashboard()
		if err != nil {
			return fmt.Errorf("loading dashboard: %w", err)
		}
		return c.Render(http.StatusOK, "admin-dashboard.html", echo.Map{
			"Stats":          stats,
			"RecentProjects": recentProjects,
			"RecentContacts": recentContacts,
		})
	}
}

func AdminProjects(adminService AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		projects, err := adminService.ListProjects()
		if err != nil {
			return fmt.Errorf("listing projects: %w", err)
		}
		return c.Render(http.StatusOK, "admin-projects.html", echo.Map{"Projects": projects})
	}
}

func AddProjectForm() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "admin-project-form.html", echo.Map{
			"Action": "add",
		})
	}
}

func EditProjectForm(adminService AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		project, err := adminService.GetProject(c.Param("id"))
		if err != nil {
			if errors.Is(err, model.ErrProjectNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "Project not found")
			}
			return fmt.Errorf("loading project: %w", err)
		}
		return c.Render(http.StatusOK, "admin-project-form.html", echo.Map{
			"Action":  "edit",
			"Project": project,
		})
	}
}

func SaveProject(adminService AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params, err := c.FormParams()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
		}

		order, _ := strconv.Atoi(params.Get("order"))
		input := content.ProjectInput{
			Title:         params.Get("title"),
			Description:   params.Get("description"),
			MainImage:     params["mainImage"],
			GalleryImages: params["galleryImages"],
			Frameworks:    params["frameworks"],
			Languages:     params["languages"],
			ProjectType:   params.Get("projectType"),
			Github:        params.Get("github"),
			LiveDemo:      params.Get("liveDemo"),
			Status:        params.Get("status"),
			Order:         order,
		}

		project, err := adminService.UpsertProject(c.Param("id"), input)
		if err != nil {
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				return c.Render(http.StatusBadRequest, "admin-project-form.html", echo.Map{
					"Action": "edit",
					"Error":  verr.Error(),
				})
			}
			if errors.Is(err, model.ErrProjectNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "Project not found")
			}
			return fmt.Errorf("saving project: %w", err)
		}

		c.Logger().Infof("saved project %s", project.ID)
		return c.Redirect(http.StatusFound, "/admin/projects")
	}
}

func DeleteProject(adminService AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := adminService.DeleteProject(c.Param("id")); err != nil {
			if errors.Is(err, model.ErrProjectNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Project not found"})
			}
			return fmt.Errorf("deleting project: %w", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Project deleted successfully"})
	}
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

func BulkDeleteProjects(adminService AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := bulkDeleteRequest{}
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
		}
		deleted, err := adminService.BulkDeleteProjects(req.IDs)
		if err != nil {
			return fmt.Errorf("bulk deleting projects: %w", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "deletedCount": deleted})
	}
}

func AdminContacts(adminService AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		contacts, err := adminService.ListContacts()
		if err != nil {
			return fmt.Errorf("listing contacts: %w", err)
		}
		return c.Render(http.StatusOK, "admin-contacts.html", echo.Map{"Contacts": contacts})
	}
}

type replyRequest struct {
	Reply string `json:"reply" form:"reply"`
}

func ReplyContact(adminService AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := replyRequest{}
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
		}

		if _, err := adminService.Reply(c.Param("id"), req.Reply); err != nil {
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": verr.Error()})
			}
			if errors.Is(err, model.ErrContactNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Contact not found"})
			}
			return fmt.Errorf("replying to contact: %w", err)
		}

		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Reply saved and email sent successfully"})
	}
}

type statusRequest struct {
	Status string `json:"status" form:"status"`
}

func UpdateContactStatus(adminService AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := statusRequest{}
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
		}

		err := adminService.SetContactStatus(c.Param("id"), model.ContactStatus(req.Status))
		if err != nil {
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": verr.Error()})
			}
			if errors.Is(err, model.ErrContactNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Contact not found"})
			}
			return fmt.Errorf("updating contact status: %w", err)
		}

		return c.JSON(http.StatusOK, echo.Map{"success": true})
	}
}

func DeleteContact(adminService AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := adminService.DeleteContact(c.Param("id")); err != nil {
			if errors.Is(err, model.ErrContactNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Contact not found"})
			}
			return fmt.Errorf("deleting contact: %w", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Contact deleted successfully"})
	}
}

func BulkDeleteContacts(adminService AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := bulkDeleteRequest{}
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
		}
		deleted, err := adminService.BulkDeleteContacts(req.IDs)
		if err != nil {
			return fmt.Errorf("bulk deleting contacts: %w", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "deletedCount": deleted})
	}
}
