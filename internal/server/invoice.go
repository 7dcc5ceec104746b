package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
)

type createInvoiceRequest struct {
	CustomerID     string                        `json:"customer_id"`
	BillingMonth   int                           `json:"billing_month"`
	BillingYear    int                           `json:"billing_year"`
	InvoiceDate    string                        `json:"invoice_date"`
	PurchaseNumber string                        `json:"purchase_number"`
	Extra          float64                       `json:"extra"`
	LineItems      []invoicedomain.LineItemInput `json:"line_items"`
}

type updateInvoiceRequest struct {
	InvoiceDate    *string  `json:"invoice_date,omitempty"`
	PurchaseNumber *string  `json:"purchase_number,omitempty"`
	Extra          *float64 `json:"extra,omitempty"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	detail, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateRequest{
		CustomerID:     strings.TrimSpace(req.CustomerID),
		BillingMonth:   req.BillingMonth,
		BillingYear:    req.BillingYear,
		InvoiceDate:    strings.TrimSpace(req.InvoiceDate),
		PurchaseNumber: strings.TrimSpace(req.PurchaseNumber),
		Extra:          req.Extra,
		LineItems:      req.LineItems,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, detail)
}

func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		Status     string `form:"status"`
		CustomerID string `form:"customer_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invoices, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListOptions{
		Status:     invoicedomain.InvoiceStatus(strings.TrimSpace(query.Status)),
		CustomerID: strings.TrimSpace(query.CustomerID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, invoices)
}

func (s *Server) GetInvoice(c *gin.Context) {
	detail, err := s.invoiceSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, detail)
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var req updateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	inv, err := s.invoiceSvc.Update(c.Request.Context(), c.Param("id"), invoicedomain.UpdateRequest{
		InvoiceDate:    req.InvoiceDate,
		PurchaseNumber: req.PurchaseNumber,
		Extra:          req.Extra,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, inv)
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondNoContent(c)
}

type transitionStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) TransitionInvoiceStatus(c *gin.Context) {
	var req transitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.invoiceSvc.TransitionStatus(
		c.Request.Context(),
		c.Param("id"),
		invoicedomain.InvoiceStatus(strings.TrimSpace(req.Status)),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, result)
}
