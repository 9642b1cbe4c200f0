package handlers

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	sessionName     = "folio_admin"
	sessionKeyAdmin = "isAdmin"
	sessionMaxAge   = 24 * 60 * 60
)

// AdminSession wraps the cookie session so the admin auth flag has a single
// owner instead of being poked at from every handler.
type AdminSession struct {
	c echo.Context
}

func SessionFor(c echo.Context) *AdminSession {
	return &AdminSession{c}
}

func (s *AdminSession) Authenticated() bool {
	sess, err := session.Get(sessionName, s.c)
	if err != nil {
		return false
	}
	authenticated, _ := sess.Values[sessionKeyAdmin].(bool)
	return authenticated
}

func (s *AdminSession) SetAuthenticated() error {
	sess, err := session.Get(sessionName, s.c)
	if err != nil {
		return err
	}
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
	}
	sess.Values[sessionKeyAdmin] = true
	return sess.Save(s.c.Request(), s.c.Response())
}

func (s *AdminSession) Destroy() error {
	sess, err := session.Get(sessionName, s.c)
	if err != nil {
		return err
	}
	delete(sess.Values, sessionKeyAdmin)
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	}
	return sess.Save(s.c.Request(), s.c.Response())
}
