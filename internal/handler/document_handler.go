package handler

import (
	"net/http"

	"invoicedesk/internal/calc"
	"invoicedesk/internal/middleware"
	"invoicedesk/internal/service"
	"invoicedesk/pkg/response"

	"github.com/gin-gonic/gin"
)

// patchPtr lets the handler allocate the kind's patch type for binding.
type patchPtr[T, P any] interface {
	*P
	service.Patch[T]
}

// PreviewRequest is a draft document plus an optional single-cell edit.
type PreviewRequest[T any] struct {
	Document T          `json:"document"`
	Edit     *calc.Edit `json:"edit,omitempty"`
}

// DocumentHandler serves the store contract for one document kind under /api/<kind>.
type DocumentHandler[T any] struct {
	svc      service.DocumentService[T]
	newPatch func() service.Patch[T]
}

// NewDocumentHandler binds svc to HTTP; P is the kind's partial-update type.
func NewDocumentHandler[T, P any, PP patchPtr[T, P]](svc service.DocumentService[T]) *DocumentHandler[T] {
	return &DocumentHandler[T]{
		svc:      svc,
		newPatch: func() service.Patch[T] { return PP(new(P)) },
	}
}

func (h *DocumentHandler[T]) RegisterRoutes(router *gin.RouterGroup) {
	docs := router.Group("/api/" + h.svc.Kind().Name)
	{
		docs.POST("", h.Create)
		docs.GET("", h.List)
		docs.GET("/next-number", h.NextNumber)
		docs.POST("/preview", h.Preview)
		docs.GET("/:id", h.GetByID)
		docs.PATCH("/:id", h.Update)
		docs.DELETE("/:id", h.Remove)
	}
}

// Create stores a new document owned by the caller
// @Summary      Create document
// @Description  Stores a document of the given kind for the signed-in user. Totals are recomputed server-side.
// @Tags         documents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        kind     path      string  true  "invoices, proforma-invoices, local-bills, local-chalans or local-proformas"
// @Param        payload  body      object  true  "Document"
// @Success      201      {object}  response.Response{data=response.ID}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/{kind} [post]
func (h *DocumentHandler[T]) Create(c *gin.Context) {
	doc := new(T)
	if err := c.ShouldBindJSON(doc); err != nil {
		badRequest(c, err)
		return
	}

	id, err := h.svc.Create(c.Request.Context(), middleware.SessionFrom(c), doc)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, response.ID{ID: id.String()}))
}

// List returns the caller's documents newest first; anonymous callers get an empty list
// @Summary      List documents
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        kind  path      string  true  "Document kind"
// @Success      200   {object}  response.Response{data=[]object}
// @Router       /api/{kind} [get]
func (h *DocumentHandler[T]) List(c *gin.Context) {
	docs, err := h.svc.List(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, docs))
}

// GetByID returns one document; records owned by another user read as not found
// @Summary      Get document
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        kind  path      string  true  "Document kind"
// @Param        id    path      string  true  "Document ID"
// @Success      200   {object}  response.Response{data=object}
// @Failure      401   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /api/{kind}/{id} [get]
func (h *DocumentHandler[T]) GetByID(c *gin.Context) {
	id, ok := pathID(c, h.svc.Kind().Label)
	if !ok {
		return
	}

	doc, err := h.svc.GetByID(c.Request.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}

// Update applies a partial update; omitted fields keep their stored values
// @Summary      Update document
// @Tags         documents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        kind     path      string  true  "Document kind"
// @Param        id       path      string  true  "Document ID"
// @Param        payload  body      object  true  "Fields to change"
// @Success      200      {object}  response.Response{data=object}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/{kind}/{id} [patch]
func (h *DocumentHandler[T]) Update(c *gin.Context) {
	id, ok := pathID(c, h.svc.Kind().Label)
	if !ok {
		return
	}
	patch := h.newPatch()
	if err := c.ShouldBindJSON(patch); err != nil {
		badRequest(c, err)
		return
	}

	doc, err := h.svc.Update(c.Request.Context(), middleware.SessionFrom(c), id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}

// Remove deletes a document the caller owns
// @Summary      Delete document
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        kind  path      string  true  "Document kind"
// @Param        id    path      string  true  "Document ID"
// @Success      200   {object}  response.Response{data=response.ID}
// @Failure      404   {object}  response.Response
// @Router       /api/{kind}/{id} [delete]
func (h *DocumentHandler[T]) Remove(c *gin.Context) {
	id, ok := pathID(c, h.svc.Kind().Label)
	if !ok {
		return
	}

	removed, err := h.svc.Remove(c.Request.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.ID{ID: removed.String()}))
}

// NextNumber suggests the next document number for today
// @Summary      Next document number
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        kind  path      string  true  "Document kind"
// @Success      200   {object}  response.Response{data=object}
// @Failure      401   {object}  response.Response
// @Router       /api/{kind}/next-number [get]
func (h *DocumentHandler[T]) NextNumber(c *gin.Context) {
	number, err := h.svc.NextNumber(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"invoiceNumber": number}))
}

// Preview runs the totals engine on a draft, optionally after one cell edit, without saving
// @Summary      Preview totals
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        kind     path      string  true  "Document kind"
// @Param        payload  body      object  true  "{document, edit}"
// @Success      200      {object}  response.Response{data=object}
// @Failure      400      {object}  response.Response
// @Router       /api/{kind}/preview [post]
func (h *DocumentHandler[T]) Preview(c *gin.Context) {
	var req PreviewRequest[T]
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	doc, err := h.svc.Preview(&req.Document, req.Edit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}
