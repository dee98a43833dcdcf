package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/invoiceboard/internal/invoice/format"
)

func (s *Server) GetCardSummary(c *gin.Context) {
	summary, err := s.dashboardSvc.FetchCardSummary(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

func (s *Server) ListRevenue(c *gin.Context) {
	rows, err := s.dashboardSvc.FetchRevenue(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (s *Server) currencyOptions() format.Options {
	return format.OptionsFrom(s.display.Get())
}
