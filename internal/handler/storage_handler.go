package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"invoicedesk/internal/storage"
	"invoicedesk/pkg/response"

	"github.com/gin-gonic/gin"
)

// BlobStore accepts uploads through signed tokens and serves stored objects.
type BlobStore interface {
	Put(ctx context.Context, token, contentType string, body io.Reader) (string, error)
	Open(ctx context.Context, storageID string) (*storage.Object, error)
}

type StorageHandler struct {
	store BlobStore
}

func NewStorageHandler(store BlobStore) *StorageHandler {
	return &StorageHandler{store: store}
}

// RegisterRoutes mounts the blob endpoints. The upload token is the credential, so no session is required.
func (h *StorageHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/storage")
	{
		group.PUT("/upload/:token", h.Upload)
		group.POST("/upload/:token", h.Upload)
		group.GET("/objects/:storageId", h.Download)
	}
}

// Upload stores the request body under the storage id reserved by the token
// @Summary      Upload file body
// @Tags         files
// @Accept       octet-stream
// @Produce      json
// @Param        token  path      string  true  "Upload token"
// @Success      201    {object}  response.Response{data=object}
// @Failure      403    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Failure      413    {object}  response.Response
// @Router       /api/storage/upload/{token} [put]
func (h *StorageHandler) Upload(c *gin.Context) {
	storageID, err := h.store.Put(c.Request.Context(), c.Param("token"), c.ContentType(), c.Request.Body)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidUploadURL):
			c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))
		case errors.Is(err, storage.ErrAlreadyUploaded):
			c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
		case errors.Is(err, storage.ErrTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, response.Error(http.StatusRequestEntityTooLarge, err.Error()))
		default:
			fail(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, gin.H{"storageId": storageID}))
}

// Download streams a stored object
// @Summary      Download file
// @Tags         files
// @Param        storageId  path  string  true  "Storage ID"
// @Success      200
// @Failure      404  {object}  response.Response
// @Router       /api/storage/objects/{storageId} [get]
func (h *StorageHandler) Download(c *gin.Context) {
	obj, err := h.store.Open(c.Request.Context(), c.Param("storageId"))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		fail(c, err)
		return
	}
	defer obj.Body.Close()

	c.Header("Content-Type", obj.ContentType)
	c.Header("Cache-Control", "private, max-age=31536000, immutable")
	http.ServeContent(c.Writer, c.Request, "", obj.ModTime, obj.Body)
}
