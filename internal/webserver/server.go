// Package webserver owns the echo instance and the route registration
// helpers used by the shop and admin API packages.
package webserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"

	"github.com/team2shop/storefront/internal/app"
	"github.com/team2shop/storefront/internal/auth"
)

const (
	sessionName = "storefront"

	// AdminClaimsKey is the context key for verified admin JWT claims
	AdminClaimsKey = "admin_claims"
)

// WebServer wraps echo with the /api and /api/admin route groups.
type WebServer struct {
	root   *echo.Echo
	appCtx app.AppContext
	api    *echo.Group
	admin  *echo.Group
}

var server *WebServer

// Init builds the web server. Must run before any route registration.
func Init(appCtx app.AppContext) *WebServer {
	cfg := appCtx.Config()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.System.Debug

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(cfg.Session.Secret))))

	api := e.Group("/api")
	admin := api.Group("/admin")
	admin.Use(echojwt.WithConfig(echojwt.Config{
		ContextKey: AdminClaimsKey,
		ParseTokenFunc: func(c echo.Context, tokenstr string) (interface{}, error) {
			return appCtx.Auth().ParseToken(tokenstr)
		},
	}))
	admin.Use(requireAdmin)

	server = &WebServer{root: e, appCtx: appCtx, api: api, admin: admin}
	return server
}

// requireAdmin gates the admin group on the role claim.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(AdminClaimsKey).(*auth.Claims)
		if !ok || claims.Role != auth.RoleAdmin {
			return Fail(c, http.StatusForbidden, "FORBIDDEN", "Admin role required", nil)
		}
		return next(c)
	}
}

// App exposes the application context to route packages.
func App() app.AppContext {
	return server.appCtx
}

// Echo exposes the underlying instance (tests).
func (s *WebServer) Echo() *echo.Echo { return s.root }

func ApiGET(path string, h echo.HandlerFunc)    { server.api.GET(path, h) }
func ApiPOST(path string, h echo.HandlerFunc)   { server.api.POST(path, h) }
func ApiPUT(path string, h echo.HandlerFunc)    { server.api.PUT(path, h) }
func ApiDELETE(path string, h echo.HandlerFunc) { server.api.DELETE(path, h) }

func AdminGET(path string, h echo.HandlerFunc)    { server.admin.GET(path, h) }
func AdminPOST(path string, h echo.HandlerFunc)   { server.admin.POST(path, h) }
func AdminPUT(path string, h echo.HandlerFunc)    { server.admin.PUT(path, h) }
func AdminDELETE(path string, h echo.HandlerFunc) { server.admin.DELETE(path, h) }

// SessionScope returns the cart scope for the current visitor: the
// logged-in email, or a random guest id minted on first use.
func SessionScope(c echo.Context) string {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return ""
	}
	if uid, ok := sess.Values["uid"].(string); ok && uid != "" {
		return uid
	}
	if gid, ok := sess.Values["guest_id"].(string); ok && gid != "" {
		return gid
	}
	gid := "guest-" + random.String(16)
	sess.Values["guest_id"] = gid
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		zap.L().Debug("session save failed", zap.Error(err))
	}
	return gid
}

// SessionRole returns the role stored at login, empty for anonymous.
func SessionRole(c echo.Context) string {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return ""
	}
	role, _ := sess.Values["role"].(string)
	return role
}

// SetSessionIdentity stores the logged-in identity on the session.
func SetSessionIdentity(c echo.Context, email, role string) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return
	}
	sess.Values["uid"] = email
	sess.Values["role"] = role
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		zap.L().Debug("session save failed", zap.Error(err))
	}
}

// ClearSessionIdentity drops the identity, keeping the guest id.
func ClearSessionIdentity(c echo.Context) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return
	}
	delete(sess.Values, "uid")
	delete(sess.Values, "role")
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		zap.L().Debug("session save failed", zap.Error(err))
	}
}

// Start blocks serving HTTP until Shutdown.
func (s *WebServer) Start() error {
	cfg := s.appCtx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("web server listening on %s", addr)
	err := s.root.Start(addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}
