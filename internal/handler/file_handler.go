package handler

import (
	"net/http"

	"invoicedesk/internal/middleware"
	"invoicedesk/internal/service"
	"invoicedesk/pkg/response"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	fileService service.FileService
}

func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

func (h *FileHandler) RegisterRoutes(router *gin.RouterGroup) {
	files := router.Group("/api/files")
	{
		files.POST("/upload-url", h.GenerateUploadURL)
		files.POST("", h.SaveFileMetadata)
		files.GET("", h.ListUserFiles)
		files.DELETE("/:id", h.DeleteFile)
	}
}

// GenerateUploadURL returns a single-use URL the client PUTs the file body to
// @Summary      Generate upload URL
// @Tags         files
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Failure      401  {object}  response.Response
// @Router       /api/files/upload-url [post]
func (h *FileHandler) GenerateUploadURL(c *gin.Context) {
	url, err := h.fileService.GenerateUploadURL(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"uploadUrl": url}))
}

// SaveFileMetadata records an uploaded logo, signature or seal
// @Summary      Save file metadata
// @Tags         files
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.SaveFileRequest  true  "File metadata"
// @Success      201      {object}  response.Response{data=response.ID}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/files [post]
func (h *FileHandler) SaveFileMetadata(c *gin.Context) {
	var req service.SaveFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, err := h.fileService.SaveFileMetadata(c.Request.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, response.ID{ID: id.String()}))
}

// ListUserFiles lists the caller's files newest first with resolved URLs
// @Summary      List files
// @Tags         files
// @Security     BearerAuth
// @Produce      json
// @Param        category  query     string  false  "logo, signature or seal"
// @Success      200       {object}  response.Response{data=[]service.FileResponse}
// @Failure      400       {object}  response.Response
// @Router       /api/files [get]
func (h *FileHandler) ListUserFiles(c *gin.Context) {
	files, err := h.fileService.ListUserFiles(c.Request.Context(), middleware.SessionFrom(c), c.Query("category"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, files))
}

// DeleteFile removes the file record; the stored blob is left in place
// @Summary      Delete file
// @Tags         files
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "File ID"
// @Success      200  {object}  response.Response{data=response.ID}
// @Failure      404  {object}  response.Response
// @Router       /api/files/{id} [delete]
func (h *FileHandler) DeleteFile(c *gin.Context) {
	id, ok := pathID(c, "File")
	if !ok {
		return
	}

	removed, err := h.fileService.DeleteFile(c.Request.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.ID{ID: removed.String()}))
}
