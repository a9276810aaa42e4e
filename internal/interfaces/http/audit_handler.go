package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/steelfabpro/inventory-service/internal/application/dto"
	"github.com/steelfabpro/inventory-service/internal/application/inventory"
	"github.com/steelfabpro/inventory-service/internal/domain"
	"github.com/steelfabpro/inventory-service/internal/domain/entity"
)

// AuditHandler maneja las peticiones HTTP de la bitácora (protegido).
type AuditHandler struct {
	uc *inventory.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *inventory.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// ListByMaterial godoc
// @Summary      Bitácora del material
// @Description  Registros de auditoría en orden cronológico, paginados.
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del material"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.AuditListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/audit [get]
func (h *AuditHandler) ListByMaterial(c *fiber.Ctx) error {
	materialID := c.Params("id")
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.uc.ListByMaterial(c.Context(), materialID, page.Limit, page.Offset)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.AuditRecordResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, *toAuditResponse(rec))
	}
	return c.JSON(dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Annotate godoc
// @Summary      Anotación manual en la bitácora
// @Tags         audit
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del material"
// @Param        body  body  dto.AnnotateRequest  true  "Nota"
// @Success      201   {object}  dto.AuditRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/audit [post]
func (h *AuditHandler) Annotate(c *fiber.Ctx) error {
	actorID := GetUserID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	materialID := c.Params("id")
	var in dto.AnnotateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.uc.Annotate(c.Context(), materialID, in.Note, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "note es requerido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toAuditResponse(rec))
}

func toAuditResponse(rec *entity.AuditRecord) *dto.AuditRecordResponse {
	if rec == nil {
		return nil
	}
	return &dto.AuditRecordResponse{
		ID:         rec.ID,
		MaterialID: rec.MaterialID,
		ChangeType: rec.ChangeType,
		Quantity:   rec.Quantity,
		UserID:     rec.UserID,
		Timestamp:  rec.Timestamp,
		Note:       rec.Note,
	}
}
