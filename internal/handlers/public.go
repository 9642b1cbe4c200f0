package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/sbochoun/folio/internal/model"
)

type SiteService interface {
	PageMeta(name string) model.PageMeta
	PublishedProjects() ([]model.Project, error)
	SubmitContact(submission model.ContactSubmission) (*model.Contact, error)
}

var startedAt = time.Now()

type pageData struct {
	Meta     model.PageMeta
	Projects []model.Project
	Env      string
}

// Page renders a static-content page; the template name follows the page
// name.
func Page(siteService SiteService, name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, name+".html", pageData{Meta: siteService.PageMeta(name)})
	}
}

// Portfolio renders the public project listing. A store failure degrades to
// an empty listing rather than an error page.
func Portfolio(siteService SiteService) echo.HandlerFunc {
	return func(c echo.Context) error {
		projects, err := siteService.PublishedProjects()
		if err != nil {
			log.Errorf("listing published projects: %+v", err)
			projects = nil
		}
		return c.Render(http.StatusOK, "portfolio.html", pageData{
			Meta:     siteService.PageMeta("portfolio"),
			Projects: projects,
		})
	}
}

func SubmitContact(siteService SiteService) echo.HandlerFunc {
	return func(c echo.Context) error {
		submission := model.ContactSubmission{}
		if err := c.Bind(&submission); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"message": "invalid request body",
			})
		}

		if _, err := siteService.SubmitContact(submission); err != nil {
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"success": false,
					"message": verr.Error(),
				})
			}
			log.Errorf("submitting contact: %+v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"success": false,
				"message": "something went wrong, please try again",
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Your message has been sent. I will get back to you as soon as possible!",
		})
	}
}

func NotFound(siteService SiteService) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusNotFound, "404.html", pageData{Meta: siteService.PageMeta("404")})
	}
}

func Health(env string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":      "OK",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"uptime":      time.Since(startedAt).Seconds(),
			"environment": env,
		})
	}
}

var sitemapPaths = []struct {
	path       string
	changeFreq string
	priority   string
}{
	{"/", "weekly", "1.0"},
	{"/about", "monthly", "0.8"},
	{"/resume", "monthly", "0.8"},
	{"/portfolio", "weekly", "0.9"},
	{"/services", "monthly", "0.7"},
	{"/contact", "monthly", "0.6"},
}

func Sitemap() echo.HandlerFunc {
	return func(c echo.Context) error {
		baseURL := c.Scheme() + "://" + c.Request().Host
		now := time.Now().UTC().Format(time.RFC3339)

		body := `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
		body += `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n"
		for _, p := range sitemapPaths {
			body += fmt.Sprintf("\t<url>\n\t\t<loc>%s%s</loc>\n\t\t<lastmod>%s</lastmod>\n\t\t<changefreq>%s</changefreq>\n\t\t<priority>%s</priority>\n\t</url>\n",
				baseURL, p.path, now, p.changeFreq, p.priority)
		}
		body += `</urlset>`

		return c.Blob(http.StatusOK, "text/xml", []byte(body))
	}
}

func Robots() echo.HandlerFunc {
	return func(c echo.Context) error {
		baseURL := c.Scheme() + "://" + c.Request().Host
		body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /api/\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml", baseURL)
		return c.String(http.StatusOK, body)
	}
}

// RedirectHome handles legacy bookmarked paths.
func RedirectHome() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/")
	}
}
