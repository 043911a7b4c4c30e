package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pothen/internal/service"
)

// DeclarationHandler handles declaration endpoints.
type DeclarationHandler struct {
	declService service.DeclarationService
}

// NewDeclarationHandler creates a new DeclarationHandler.
func NewDeclarationHandler(declService service.DeclarationService) *DeclarationHandler {
	return &DeclarationHandler{declService: declService}
}

// List handles GET /api/v1/declarations
// Declarations are ordered by total income, highest first.
func (h *DeclarationHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	decls, total, err := h.declService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, decls, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/declarations/:id
func (h *DeclarationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid declaration ID")
		return
	}

	detail, err := h.declService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
