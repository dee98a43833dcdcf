package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/invoiceboard/internal/invoice/domain"
	"github.com/smallbiznis/invoiceboard/internal/invoice/format"
	"github.com/smallbiznis/invoiceboard/pkg/db/pagination"
)

type invoiceRow struct {
	ID              string               `json:"id"`
	CustomerID      string               `json:"customer_id"`
	Name            string               `json:"name"`
	Email           string               `json:"email"`
	ImageURL        string               `json:"image_url"`
	Amount          int64                `json:"amount"`
	FormattedAmount string               `json:"formatted_amount"`
	Date            string               `json:"date"`
	Status          invoicedomain.Status `json:"status"`
}

type invoicePage struct {
	Data []invoiceRow `json:"data"`
	pagination.PageInfo
}

func (s *Server) ListInvoices(c *gin.Context) {
	q, err := bindInvoiceListQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	totalPages, err := s.invoiceQuery.FetchInvoicesPages(ctx, q.Query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	page := pagination.ClampPage(q.Page, totalPages)
	items, err := s.invoiceQuery.FetchFilteredInvoices(ctx, q.Query, page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	opts := s.currencyOptions()
	rows := make([]invoiceRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, invoiceRow{
			ID:              item.ID,
			CustomerID:      item.CustomerID,
			Name:            item.Name,
			Email:           item.Email,
			ImageURL:        item.ImageURL,
			Amount:          item.Amount,
			FormattedAmount: format.Currency(item.Amount, opts),
			Date:            item.DateString(),
			Status:          item.Status,
		})
	}

	c.JSON(http.StatusOK, invoicePage{
		Data: rows,
		PageInfo: pagination.PageInfo{
			Page:       page,
			TotalPages: totalPages,
		},
	})
}

func (s *Server) ListLatestInvoices(c *gin.Context) {
	items, err := s.invoiceQuery.FetchLatestInvoices(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	item, err := s.invoiceQuery.FetchInvoiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var form invoicedomain.InvoiceFormInput
	if err := c.ShouldBind(&form); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	res, err := s.invoiceMutation.CreateInvoice(c.Request.Context(), form)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": res})
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var form invoicedomain.InvoiceFormInput
	if err := c.ShouldBind(&form); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	res, err := s.invoiceMutation.UpdateInvoice(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": res})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	res, err := s.invoiceMutation.DeleteInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": res})
}
