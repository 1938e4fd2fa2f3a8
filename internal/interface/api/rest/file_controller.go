package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pdf-collab-api/internal/application/ports"
	"pdf-collab-api/internal/application/services"
	"pdf-collab-api/internal/infrastructure/jwt"
	fileDTO "pdf-collab-api/internal/interface/api/rest/dto/file"
	"pdf-collab-api/internal/interface/api/rest/middleware"
	"pdf-collab-api/internal/interface/api/rest/validator"
)

// 10MB
const maxSize = int64(10 << 20)

type FileController struct {
	fileService ports.FileService
	logger      *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		logger:      logger,
	}

	authed := r.Group("", middleware.AuthMiddleware(jwtService))
	authed.POST(RouteFileUpload, fc.UploadHandler)
	authed.GET(RouteMyFiles, fc.MyFilesHandler)
	authed.GET(RouteFileSearch, fc.SearchHandler)
	authed.GET(RouteSharedWithMe, fc.SharedWithMeHandler)
	authed.POST(RouteFileShare, fc.ShareHandler)
	authed.GET(RouteFileDownload, fc.DownloadHandler)

	return fc
}

// callerUUID resolves the user id the auth middleware stored.
func (fc *FileController) callerUUID(c *gin.Context) (uuid.UUID, bool) {
	ok, id := validator.IsUUID(c.GetString(middleware.CtxUserID))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return id, false
	}
	return id, true
}

func (fc *FileController) UploadHandler(c *gin.Context) {
	caller, ok := fc.callerUUID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}
	if fh.Size <= 0 || fh.Size > maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "file too large or empty"})
		return
	}

	f, err := fc.fileService.UploadFile(c.Request.Context(), caller, fh)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedMediaType) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Only PDF files are allowed!"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"message": "Internal server error"},
		)
		fc.logger.Error("UploadFile() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File uploaded successfully",
		"file":    fileDTO.ToResponseFile(*f),
	})
}

func (fc *FileController) MyFilesHandler(c *gin.Context) {
	caller, ok := fc.callerUUID(c)
	if !ok {
		return
	}

	files, err := fc.fileService.FindOwnedFiles(c.Request.Context(), caller)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"message": "failed to get files"},
		)
		fc.logger.Error("FindOwnedFiles() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, fileDTO.ResponseData{
		Data: fileDTO.ToResponseFiles(files),
	})
}

func (fc *FileController) SearchHandler(c *gin.Context) {
	caller, ok := fc.callerUUID(c)
	if !ok {
		return
	}

	files, err := fc.fileService.SearchOwnedFiles(c.Request.Context(), caller, c.Query("q"))
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"message": "failed to search files"},
		)
		fc.logger.Error("SearchOwnedFiles() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, fileDTO.ResponseData{
		Data: fileDTO.ToResponseFiles(files),
	})
}

func (fc *FileController) SharedWithMeHandler(c *gin.Context) {
	caller, ok := fc.callerUUID(c)
	if !ok {
		return
	}

	files, err := fc.fileService.FindSharedWithMe(c.Request.Context(), caller)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"message": "failed to get files"},
		)
		fc.logger.Error("FindSharedWithMe() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, fileDTO.ResponseData{
		Data: fileDTO.ToResponseFiles(files),
	})
}

func (fc *FileController) ShareHandler(c *gin.Context) {
	caller, ok := fc.callerUUID(c)
	if !ok {
		return
	}

	ok, fileUUID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid file ID"})
		return
	}

	var req fileDTO.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	ok, target := validator.IsUUID(req.SharedWithUserID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "shared_with_user_id must be a valid UUID"})
		return
	}

	f, err := fc.fileService.ShareFile(c.Request.Context(), caller, fileUUID, target)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "File not found"})
		case errors.Is(err, services.ErrNotFileOwner):
			c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to share this file"})
		case errors.Is(err, services.ErrShareWithOwner):
			c.JSON(http.StatusBadRequest, gin.H{"message": "cannot share a file with its owner"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			fc.logger.Error("ShareFile() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File shared successfully",
		"file":    fileDTO.ToResponseFile(*f),
	})
}

func (fc *FileController) DownloadHandler(c *gin.Context) {
	caller, ok := fc.callerUUID(c)
	if !ok {
		return
	}

	ok, fileUUID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid file ID"})
		return
	}

	url, err := fc.fileService.DownloadURL(c.Request.Context(), caller, fileUUID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "File not found"})
		case errors.Is(err, services.ErrNoFileAccess):
			c.JSON(http.StatusForbidden, gin.H{"message": "No access to this file"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			fc.logger.Error("DownloadURL() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"download_url": url})
}
