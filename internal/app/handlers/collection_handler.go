package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"collections-service/internal/pkg/consts"
	"collections-service/internal/pkg/models"
	"collections-service/internal/service/interfaces"
)

type CollectionHandler struct {
	activationService interfaces.ActivationServiceInterface
	projectionService interfaces.ProjectionServiceInterface
	updateService     interfaces.UpdateServiceInterface
	bankVerifier      interfaces.BankVerifierInterface
}

func NewCollectionHandler(
	activationService interfaces.ActivationServiceInterface,
	projectionService interfaces.ProjectionServiceInterface,
	updateService interfaces.UpdateServiceInterface,
	bankVerifier interfaces.BankVerifierInterface,
) *CollectionHandler {
	return &CollectionHandler{
		activationService: activationService,
		projectionService: projectionService,
		updateService:     updateService,
		bankVerifier:      bankVerifier,
	}
}

// CreateActiveLead is the disbursal hand-off. A gate rejection is a valid
// business outcome, so it answers 200 with success=false.
func (h *CollectionHandler) CreateActiveLead(c *gin.Context) {
	var body models.ActivateLeadRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accepted, err := h.activationService.ActivateLead(c.Request.Context(), body.PAN, body.LoanNo, body.LeadNo)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": accepted})
}

func (h *CollectionHandler) ActiveLeads(c *gin.Context) {
	if !h.requireCollectionExecutive(c) {
		return
	}

	rows, total, err := h.projectionService.ActiveLeads(c.Request.Context())
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalActiveLeads": total,
		"activeLeads":      rows,
	})
}

func (h *CollectionHandler) GetActiveLead(c *gin.Context) {
	detail, err := h.projectionService.ActiveLeadDetail(c.Request.Context(), c.Param("loanNo"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *CollectionHandler) UpdateActiveLead(c *gin.Context) {
	if !h.requireCollectionExecutive(c) {
		return
	}

	var body models.UpdateLeadRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.updateService.UpdateSubRecord(c.Request.Context(), c.Param("loanNo"), body)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func (h *CollectionHandler) ClosedLeads(c *gin.Context) {
	rows, total, err := h.projectionService.ClosedLeads(c.Request.Context())
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalClosedLeads": total,
		"closedLeads":      rows,
	})
}

func (h *CollectionHandler) VerifyBank(c *gin.Context) {
	if !h.requireCollectionExecutive(c) {
		return
	}

	var body models.VerifyBankRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.bankVerifier.VerifyBankAccount(c.Request.Context(), body.AccountNumber, body.IFSC)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CollectionHandler) requireCollectionExecutive(c *gin.Context) bool {
	if c.GetString(consts.ActiveRoleContextKey) != consts.RoleCollectionExecutive {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return false
	}
	return true
}

func statusFromError(err error) int {
	var conflict *models.ConflictError
	var notFound *models.NotFoundError
	var validation *models.ValidationError
	var upstream *models.UpstreamError

	switch {
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
