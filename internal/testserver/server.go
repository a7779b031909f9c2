// Package testserver is an in-memory fake of the marketplace REST backend,
// served with echo. Package tests run it behind httptest.NewServer and
// inspect the recorded requests.
package testserver

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	AdminEmail    = "admin@rent.example"
	AdminPassword = "correct horse"
)

// Recorded is one request as seen by the fake backend.
type Recorded struct {
	Method    string
	Route     string
	Path      string
	Query     string
	Body      []byte
	Auth      string
	RequestID string
}

type failure struct {
	status  int
	message string
}

type Server struct {
	mu sync.Mutex

	Users      []models.User
	Properties []models.Property
	Landlords  []models.Landlord
	Reports    []models.Report

	Secret   []byte
	Password string
	Now      func() time.Time

	requests []Recorded
	failures map[string][]failure
	e        *echo.Echo
}

// New returns a server with an empty dataset and the default admin account.
func New() *Server {
	s := &Server{
		Secret:   []byte("test-secret"),
		Password: AdminPassword,
		Now:      time.Now,
		failures: map[string][]failure{},
	}
	s.e = echo.New()
	s.e.HideBanner = true
	s.e.HidePort = true
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.e
}

// FailNext makes the next call to method+route (echo pattern without the
// /api prefix, e.g. "DELETE /users/:id") answer with status and message.
func (s *Server) FailNext(method, route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + route
	s.failures[key] = append(s.failures[key], failure{status: status, message: message})
}

// Requests returns a copy of everything recorded so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// Count returns how many requests hit method+route.
func (s *Server) Count(method, route string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Route == route {
			n++
		}
	}
	return n
}

// IssueToken signs an HS256 admin token valid for ttl.
func (s *Server) IssueToken(ttl time.Duration) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin",
		"role": "admin",
		"exp":  s.Now().Add(ttl).Unix(),
	})
	signed, err := tok.SignedString(s.Secret)
	if err != nil {
		panic(err)
	}
	return signed
}

func (s *Server) routes() {
	api := s.e.Group("/api", s.record, s.injectFailures)

	api.POST("/auth/admin/login", s.login)

	auth := api.Group("", s.jwtAuth)
	auth.POST("/auth/admin/change-password", s.changePassword)
	auth.GET("/admin/total-users", s.totalUsers)
	auth.GET("/admin/total-properties", s.totalProperties)
	auth.GET("/admin/user-barangay-stats", s.barangayStats)

	auth.GET("/users", s.listUsers)
	auth.GET("/users/landlords-for-verification", s.listLandlords)
	auth.POST("/users/verify-landlord-id", s.verifyLandlord)
	auth.DELETE("/users/landlord-verification/:landlordId/doc/:docId", s.deleteDocument)
	auth.PUT("/users/:id/ban", s.banUser)
	auth.PUT("/users/:id/unban", s.unbanUser)
	auth.DELETE("/users/:id", s.deleteUser)

	auth.GET("/properties", s.listProperties)
	auth.PUT("/properties/:id/status", s.setPropertyStatus)
	auth.DELETE("/properties/:id", s.deleteProperty)

	auth.GET("/reports", s.listReports)
	auth.GET("/reports/:id", s.getReport)
	auth.POST("/reports/:id/notes", s.addNote)
	auth.PATCH("/reports/:id/status", s.setReportStatus)
	auth.PATCH("/reports/:id/resolve", s.resolveReport)
	auth.DELETE("/reports/:id", s.deleteReport)
}

func routeKey(c echo.Context) string {
	return strings.TrimPrefix(c.Path(), "/api")
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		var body []byte
		if req.Body != nil {
			body, _ = io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewReader(body))
		}
		s.mu.Lock()
		s.requests = append(s.requests, Recorded{
			Method:    req.Method,
			Route:     routeKey(c),
			Path:      req.URL.Path,
			Query:     req.URL.RawQuery,
			Body:      body,
			Auth:      req.Header.Get("Authorization"),
			RequestID: req.Header.Get("X-Request-ID"),
		})
		s.mu.Unlock()
		return next(c)
	}
}

func (s *Server) injectFailures(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Request().Method + " " + routeKey(c)
		s.mu.Lock()
		queue := s.failures[key]
		var f *failure
		if len(queue) > 0 {
			f = &queue[0]
			s.failures[key] = queue[1:]
		}
		s.mu.Unlock()
		if f != nil {
			return c.JSON(f.status, echo.Map{"message": f.message})
		}
		return next(c)
	}
}

// jwtAuth validates the bearer token the same way the real backend does.
func (s *Server) jwtAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing bearer token"})
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, echo.ErrUnauthorized
			}
			return s.Secret, nil
		}, jwt.WithTimeFunc(s.Now))
		if err != nil || !tok.Valid {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok || claims["role"] != "admin" {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "admin role required"})
		}
		return next(c)
	}
}
