// server/internal/api/handlers/upload.go
package handlers

import (
	"fmt"
	"net/http"

	"gestor-frete-api-server/internal/models"
	"gestor-frete-api-server/internal/s3"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// receiveUpload reads the multipart "file" field and pushes it to S3.
// On failure the HTTP response has already been written.
func receiveUpload(c *gin.Context, uploader *s3.Uploader, keyPrefix string) (*models.MediaPointer, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo não enviado"})
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return nil, err
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	pointerID := uuid.New().String()
	objectKey := fmt.Sprintf("%s/%s-%s", keyPrefix, pointerID[:8], fileHeader.Filename)

	url, err := uploader.UploadFile(c.Request.Context(), file, objectKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file", "details": err.Error()})
		return nil, err
	}

	return &models.MediaPointer{
		ID:       pointerID,
		URL:      url,
		FileName: fileHeader.Filename,
		FileType: contentType,
	}, nil
}
