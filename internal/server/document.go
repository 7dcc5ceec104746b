package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RenderInvoicePDF regenerates the invoice document and records its storage
// path on the invoice.
func (s *Server) RenderInvoicePDF(c *gin.Context) {
	inv, _, err := s.invoiceSvc.RenderPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, inv)
}

// DownloadInvoicePDF streams the document itself, rendering on demand.
func (s *Server) DownloadInvoicePDF(c *gin.Context) {
	inv, data, err := s.invoiceSvc.RenderPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "factuur-"+inv.InvoiceNumber+".pdf"))
	c.Data(http.StatusOK, "application/pdf", data)
}

type sendInvoiceRequest struct {
	Message string `json:"message"`
}

func (s *Server) SendInvoice(c *gin.Context) {
	var req sendInvoiceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	inv, err := s.invoiceSvc.Send(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, inv)
}
