package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/invoiceboard/pkg/db/pagination"
)

type invoiceListQuery struct {
	pagination.Pagination
	Query string `form:"query"`
}

func bindInvoiceListQuery(c *gin.Context) (invoiceListQuery, error) {
	var q invoiceListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return invoiceListQuery{}, newRequestError("page", "page must be a whole number")
	}
	q.Query = strings.TrimSpace(q.Query)
	return q, nil
}
