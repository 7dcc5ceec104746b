package server

import (
	"github.com/gin-gonic/gin"

	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
)

func (s *Server) CreateLineItem(c *gin.Context) {
	var in invoicedomain.LineItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.invoiceSvc.CreateLineItem(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, item)
}

func (s *Server) ListLineItems(c *gin.Context) {
	items, err := s.invoiceSvc.ListLineItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, items)
}

func (s *Server) GetLineItem(c *gin.Context) {
	item, err := s.invoiceSvc.GetLineItem(c.Request.Context(), c.Param("id"), c.Param("lineItemID"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, item)
}

func (s *Server) UpdateLineItem(c *gin.Context) {
	var in invoicedomain.LineItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.invoiceSvc.UpdateLineItem(c.Request.Context(), c.Param("id"), c.Param("lineItemID"), in)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, item)
}

func (s *Server) DeleteLineItem(c *gin.Context) {
	if err := s.invoiceSvc.DeleteLineItem(c.Request.Context(), c.Param("id"), c.Param("lineItemID")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondNoContent(c)
}
