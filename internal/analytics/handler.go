package analytics

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	httperr "github.com/tally-lab/project-tally/internal/core/errors"
	"github.com/tally-lab/project-tally/internal/dataset"
)

// RegisterRoutes registers all analytics API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api")
	api.GET("/states", s.HandleStates)
	api.GET("/date-range", s.HandleDateRange)
	api.GET("/dashboard", s.HandleDashboard)
	api.GET("/customers", s.HandleCustomers)
	api.GET("/analytics", s.HandleAnalytics)
	api.GET("/trends", s.HandleTrends)
}

// HandleStates handles GET /api/states
func (s *Service) HandleStates(c *gin.Context) {
	states, err := s.States()
	if err != nil {
		writeError(c, err, "Failed to list states")
		return
	}
	c.JSON(http.StatusOK, httperr.OK(states))
}

// HandleDateRange handles GET /api/date-range?state=
func (s *Service) HandleDateRange(c *gin.Context) {
	var query struct {
		State string `form:"state" binding:"required"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		resp := httperr.Fail(httperr.HttpInvalidQueryError, "state is required")
		resp.Details = err.Error()
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	rng, err := s.DateRange(query.State)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, httperr.Fail(httperr.HttpNotFoundError, "No data found for state "+query.State))
		return
	}
	if err != nil {
		writeError(c, err, "Failed to compute date range")
		return
	}
	c.JSON(http.StatusOK, httperr.OK(rng))
}

// HandleDashboard handles GET /api/dashboard?state=&fromDate=&toDate=&customerId=
func (s *Service) HandleDashboard(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}
	dash, err := s.Dashboard(q)
	if err != nil {
		writeError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, httperr.OK(dash))
}

// HandleCustomers handles GET /api/customers
func (s *Service) HandleCustomers(c *gin.Context) {
	customers, err := s.Customers()
	if err != nil {
		writeError(c, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, httperr.OK(customers))
}

// HandleAnalytics handles GET /api/analytics?state=&fromDate=&toDate=&customerId=
func (s *Service) HandleAnalytics(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}
	report, err := s.Analytics(q)
	if err != nil {
		writeError(c, err, "Failed to build analytics")
		return
	}
	c.JSON(http.StatusOK, httperr.OK(report))
}

// HandleTrends handles GET /api/trends?state=&fromDate=&toDate=&customerId=&period=
func (s *Service) HandleTrends(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}
	series, err := s.Trends(q)
	if err != nil {
		writeError(c, err, "Failed to build trends")
		return
	}
	c.JSON(http.StatusOK, httperr.OK(series))
}

func bindQuery(c *gin.Context) (Query, bool) {
	var q Query
	if err := c.ShouldBindQuery(&q); err != nil {
		resp := httperr.Fail(httperr.HttpInvalidQueryError, "Invalid query parameters")
		resp.Details = err.Error()
		c.JSON(http.StatusBadRequest, resp)
		return Query{}, false
	}
	return q, true
}

// writeError maps a service error to a single generic failure. Only a dataset
// that has not been loaded yet gets its own status.
func writeError(c *gin.Context, err error, message string) {
	if errors.Is(err, dataset.ErrNotLoaded) {
		c.JSON(http.StatusServiceUnavailable, httperr.Fail(httperr.HttpUnavailableError, "Dataset is not loaded"))
		return
	}
	slog.Error(message, "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, httperr.Fail(httperr.HttpInternalError, message))
}
