package testserver

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/labstack/echo/v4"
)

func notFound(c echo.Context, what string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"message": what + " not found"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
}

func (s *Server) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	s.mu.Lock()
	ok := req.Email == AdminEmail && req.Password == s.Password
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid email or password"})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": s.IssueToken(time.Hour)})
}

func (s *Server) changePassword(c echo.Context) error {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.CurrentPassword != s.Password {
		return badRequest(c, "current password is incorrect")
	}
	s.Password = req.NewPassword
	return c.JSON(http.StatusOK, echo.Map{"message": "password changed"})
}

func (s *Server) totalUsers(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, echo.Map{"total": len(s.Users)})
}

func (s *Server) totalProperties(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, echo.Map{"total": len(s.Properties)})
}

func (s *Server) barangayStats(c echo.Context) error {
	s.mu.Lock()
	counts := map[string]int{}
	for _, u := range s.Users {
		if u.Barangay != "" {
			counts[u.Barangay]++
		}
	}
	s.mu.Unlock()

	stats := make([]models.BarangayStat, 0, len(counts))
	for b, n := range counts {
		stats = append(stats, models.BarangayStat{Barangay: b, Users: n})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Barangay < stats[j].Barangay })
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) listUsers(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, append([]models.User{}, s.Users...))
}

func (s *Server) setUserStatus(c echo.Context, status models.UserStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Users {
		if s.Users[i].ID == c.Param("id") {
			s.Users[i].Status = status
			return c.JSON(http.StatusOK, s.Users[i])
		}
	}
	return notFound(c, "user")
}

func (s *Server) banUser(c echo.Context) error   { return s.setUserStatus(c, models.UserStatusBanned) }
func (s *Server) unbanUser(c echo.Context) error { return s.setUserStatus(c, models.UserStatusActive) }

func (s *Server) deleteUser(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Users {
		if s.Users[i].ID == c.Param("id") {
			s.Users = append(s.Users[:i], s.Users[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return notFound(c, "user")
}

func (s *Server) listProperties(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, append([]models.Property{}, s.Properties...))
}

func (s *Server) setPropertyStatus(c echo.Context) error {
	var req struct {
		Status models.PropertyStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil || !req.Status.Valid() {
		return badRequest(c, "invalid status")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Properties {
		if s.Properties[i].ID == c.Param("id") {
			s.Properties[i].Status = req.Status
			return c.JSON(http.StatusOK, s.Properties[i])
		}
	}
	return notFound(c, "property")
}

func (s *Server) deleteProperty(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Properties {
		if s.Properties[i].ID == c.Param("id") {
			s.Properties = append(s.Properties[:i], s.Properties[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return notFound(c, "property")
}

func (s *Server) listLandlords(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := make([]models.Landlord, 0, len(s.Landlords))
	for _, l := range s.Landlords {
		if !l.Verified {
			pending = append(pending, l)
		}
	}
	return c.JSON(http.StatusOK, pending)
}

// verifyLandlord applies the approval set as a whole, like the real backend:
// documents missing from the set keep their status.
func (s *Server) verifyLandlord(c echo.Context) error {
	var req models.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Landlords {
		l := &s.Landlords[i]
		if l.ID != req.LandlordID {
			continue
		}
		for _, a := range req.Approvals {
			for j := range l.Documents {
				if l.Documents[j].ID == a.DocumentID {
					l.Documents[j].Status = a.Status
					l.Documents[j].RejectionReason = a.Reason
				}
			}
		}
		for _, d := range l.Documents {
			if d.Status == models.DocumentAccepted {
				l.Verified = true
			}
		}
		return c.JSON(http.StatusOK, models.VerifyResponse{
			LandlordVerified: l.Verified,
			Documents:        append([]models.VerificationDocument(nil), l.Documents...),
		})
	}
	return notFound(c, "landlord")
}

func (s *Server) deleteDocument(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Landlords {
		l := &s.Landlords[i]
		if l.ID != c.Param("landlordId") {
			continue
		}
		for j := range l.Documents {
			if l.Documents[j].ID == c.Param("docId") {
				l.Documents = append(l.Documents[:j], l.Documents[j+1:]...)
				return c.NoContent(http.StatusNoContent)
			}
		}
		return notFound(c, "document")
	}
	return notFound(c, "landlord")
}

func (s *Server) listReports(c echo.Context) error {
	status := c.QueryParam("status")
	typ := c.QueryParam("type")
	category := c.QueryParam("category")
	search := strings.ToLower(c.QueryParam("search"))
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	s.mu.Lock()
	matched := make([]models.Report, 0, len(s.Reports))
	for _, r := range s.Reports {
		if status != "" && string(r.Status) != status {
			continue
		}
		if typ != "" && string(r.Type) != typ {
			continue
		}
		if category != "" && r.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(r.Description), search) {
			continue
		}
		matched = append(matched, r)
	}
	s.mu.Unlock()

	total := len(matched)
	totalPages := (total + limit - 1) / limit
	from := (page - 1) * limit
	if from > total {
		from = total
	}
	to := from + limit
	if to > total {
		to = total
	}
	return c.JSON(http.StatusOK, models.ReportPage{
		Reports:    matched[from:to],
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	})
}

// withReport runs fn on the report named by :id under the lock.
func (s *Server) withReport(c echo.Context, fn func(r *models.Report) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Reports {
		if s.Reports[i].ID == c.Param("id") {
			return fn(&s.Reports[i])
		}
	}
	return notFound(c, "report")
}

func (s *Server) getReport(c echo.Context) error {
	return s.withReport(c, func(r *models.Report) error {
		return c.JSON(http.StatusOK, r)
	})
}

func (s *Server) addNote(c echo.Context) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		return badRequest(c, "note text is required")
	}
	return s.withReport(c, func(r *models.Report) error {
		r.AdminNotes = append(r.AdminNotes, models.Note{Text: req.Text, CreatedAt: s.Now()})
		r.UpdatedAt = s.Now()
		return c.JSON(http.StatusOK, r)
	})
}

func (s *Server) setReportStatus(c echo.Context) error {
	var req struct {
		Status models.ReportStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	return s.withReport(c, func(r *models.Report) error {
		r.Status = req.Status
		r.UpdatedAt = s.Now()
		return c.JSON(http.StatusOK, r)
	})
}

func (s *Server) resolveReport(c echo.Context) error {
	var req struct {
		Action  models.ResolutionAction `json:"action"`
		Details string                  `json:"details"`
	}
	if err := c.Bind(&req); err != nil || !req.Action.Valid() {
		return badRequest(c, "invalid resolution action")
	}
	return s.withReport(c, func(r *models.Report) error {
		r.Status = models.ReportResolved
		r.Resolution = &models.Resolution{Action: req.Action, Details: req.Details, ResolvedAt: s.Now()}
		r.UpdatedAt = s.Now()
		return c.JSON(http.StatusOK, r)
	})
}

func (s *Server) deleteReport(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Reports {
		if s.Reports[i].ID == c.Param("id") {
			s.Reports = append(s.Reports[:i], s.Reports[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return notFound(c, "report")
}
