package restapi

import (
	"errors"
	"html/template"
	"net/http"

	"solana_portfolio/internal/app/port"
	"solana_portfolio/internal/domain/entity"
	"solana_portfolio/internal/infrastructure/configloader"
	"solana_portfolio/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

const pageTemplateName = "index.html"

// APIPortfolioResponse is the envelope returned by the JSON endpoint.
type APIPortfolioResponse struct {
	Data          *entity.PortfolioChart `json:"data,omitempty"`
	Errors        []string               `json:"errors,omitempty"`
	Warnings      []entity.Warning       `json:"warnings,omitempty"`
	StatusMessage string                 `json:"status_message"`
}

// portfolioForm is the HTML form payload.
type portfolioForm struct {
	Addresses       string `form:"addresses"`
	RPCAPIKey       string `form:"rpc_api_key"`
	PriceAPIKey     string `form:"price_api_key"`
	IncludeUnstaked bool   `form:"include_unstaked"`
	IncludeStaked   bool   `form:"include_staked"`
}

// pageData feeds the HTML template.
type pageData struct {
	Form     portfolioForm
	Errors   []string
	Message  string
	Chart    *entity.PortfolioChart
	SpecJSON template.JS
}

// PortfolioHandler handles HTTP requests for portfolio breakdowns.
type PortfolioHandler struct {
	portfolioService port.PortfolioService
	networkProvider  port.NetworkDefinitionProvider
	cfg              *configloader.Config
	logger           port.Logger
}

// NewPortfolioHandler creates a new instance of PortfolioHandler.
func NewPortfolioHandler(
	ps port.PortfolioService,
	np port.NetworkDefinitionProvider,
	cfg *configloader.Config,
	l port.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: ps,
		networkProvider:  np,
		cfg:              cfg,
		logger:           l,
	}
}

// withDefaultCredentials fills keys the caller left blank from configuration.
func (h *PortfolioHandler) withDefaultCredentials(sub entity.Submission) entity.Submission {
	if sub.Credentials.RPCAPIKey == "" {
		sub.Credentials.RPCAPIKey = h.cfg.Helius.APIKey
	}
	if sub.Credentials.PriceAPIKey == "" {
		sub.Credentials.PriceAPIKey = h.cfg.CoinMarketCap.APIKey
	}
	return sub
}

// ShowFormHandler renders the empty submission form.
func (h *PortfolioHandler) ShowFormHandler(c *gin.Context) {
	c.HTML(http.StatusOK, pageTemplateName, pageData{})
}

// SubmitFormHandler runs one submission from the HTML form.
func (h *PortfolioHandler) SubmitFormHandler(c *gin.Context) {
	var form portfolioForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, pageTemplateName, pageData{Errors: []string{err.Error()}})
		return
	}

	sub := h.withDefaultCredentials(entity.Submission{
		Addresses:       utils.SplitAddresses(form.Addresses),
		IncludeUnstaked: form.IncludeUnstaked,
		IncludeStaked:   form.IncludeStaked,
		Credentials:     entity.Credentials{RPCAPIKey: form.RPCAPIKey, PriceAPIKey: form.PriceAPIKey},
	})

	// Keys are never echoed back into the page.
	data := pageData{Form: portfolioForm{
		Addresses:       form.Addresses,
		IncludeUnstaked: form.IncludeUnstaked,
		IncludeStaked:   form.IncludeStaked,
	}}

	chart, err := h.portfolioService.RenderForAddresses(c.Request.Context(), sub)
	if err != nil {
		status, msgs := h.classifyError(err)
		data.Errors = msgs
		c.HTML(status, pageTemplateName, data)
		return
	}

	data.Chart = chart
	if chart.Empty() {
		data.Message = chart.EmptyMessage()
	} else {
		data.SpecJSON = template.JS(chart.Spec)
	}
	c.HTML(http.StatusOK, pageTemplateName, data)
}

// RenderPortfolioHandler is the JSON equivalent of the form.
func (h *PortfolioHandler) RenderPortfolioHandler(c *gin.Context) {
	var sub entity.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, APIPortfolioResponse{
			Errors:        []string{err.Error()},
			StatusMessage: "Malformed request body.",
		})
		return
	}
	sub = h.withDefaultCredentials(sub)

	chart, err := h.portfolioService.RenderForAddresses(c.Request.Context(), sub)
	if err != nil {
		status, msgs := h.classifyError(err)
		resp := APIPortfolioResponse{Errors: msgs}
		switch status {
		case http.StatusBadRequest:
			resp.StatusMessage = "Submission rejected."
		case http.StatusBadGateway:
			resp.StatusMessage = "Failed to fetch portfolio data from upstream providers."
		default:
			resp.StatusMessage = "Internal error."
		}
		c.JSON(status, resp)
		return
	}

	resp := APIPortfolioResponse{Data: chart, Warnings: chart.Warnings}
	if chart.Empty() {
		resp.StatusMessage = chart.EmptyMessage()
	} else if len(chart.Warnings) > 0 {
		resp.StatusMessage = "Portfolio rendered. Some listings were truncated."
	} else {
		resp.StatusMessage = "Portfolio rendered successfully."
	}
	c.JSON(http.StatusOK, resp)
}

// ClustersHandler lists the known clusters and marks the configured one.
func (h *PortfolioHandler) ClustersHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"active":   h.cfg.Solana.Cluster,
		"clusters": h.networkProvider.GetAllNetworkDefinitions(),
	})
}

// HealthHandler reports liveness.
func (h *PortfolioHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// classifyError maps a service error onto an HTTP status and user-facing messages.
func (h *PortfolioHandler) classifyError(err error) (int, []string) {
	var verrs entity.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest, []string(verrs)
	}
	if errors.Is(err, entity.ErrFetchFailure) {
		h.logger.Warn("Upstream fetch failed", "error", err)
		return http.StatusBadGateway, []string{err.Error()}
	}
	h.logger.Error("Portfolio rendering failed", "error", err)
	return http.StatusInternalServerError, []string{err.Error()}
}
