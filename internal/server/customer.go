package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	customerdomain "github.com/fatouralabs/fatoura/internal/customer/domain"
)

type createCustomerRequest struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	Email             string   `json:"email"`
	ContractNumber    string   `json:"contract_number"`
	Rule              string   `json:"rule"`
	DefaultHourlyRate *float64 `json:"hourly_rate"`
	Currency          string   `json:"currency"`
}

func (s *Server) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	cust, err := s.customerSvc.Create(c.Request.Context(), customerdomain.CreateRequest{
		ID:                strings.TrimSpace(req.ID),
		Name:              strings.TrimSpace(req.Name),
		Address:           strings.TrimSpace(req.Address),
		Email:             strings.TrimSpace(req.Email),
		ContractNumber:    strings.TrimSpace(req.ContractNumber),
		Rule:              customerdomain.CompensationRule(strings.TrimSpace(req.Rule)),
		DefaultHourlyRate: req.DefaultHourlyRate,
		Currency:          strings.TrimSpace(req.Currency),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, cust)
}

func (s *Server) ListCustomers(c *gin.Context) {
	customers, err := s.customerSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, customers)
}

func (s *Server) GetCustomer(c *gin.Context) {
	cust, err := s.customerSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, cust)
}
