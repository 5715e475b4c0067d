package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/servihub/reports-api/config"
	"github.com/servihub/reports-api/utils"
)

// UploadController hands out presigned PUT URLs so reporters can attach
// evidence files without the file bytes passing through this service.
type UploadController struct {
	StorageClient *s3.Client
	StorageConfig *config.StorageConfig
}

type EvidenceUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type EvidenceUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

func NewUploadController() *UploadController {
	storageConfig := config.GetStorageConfig()

	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(storageConfig.Endpoint()),
		Credentials: credentials.NewStaticCredentialsProvider(
			storageConfig.AccessKeyID,
			storageConfig.SecretAccessKey,
			"",
		),
		Region: storageConfig.Region,
	})

	return &UploadController{
		StorageClient: client,
		StorageConfig: storageConfig,
	}
}

// GetEvidenceUploadURL validates the requested file and returns a presigned
// upload URL scoped to the caller's identity.
func (uc *UploadController) GetEvidenceUploadURL(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req EvidenceUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isValidEvidenceType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid evidence file type"})
		return
	}
	if req.FileSize > maxEvidenceSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds limit"})
		return
	}

	key := uc.generateEvidenceKey(user.UserID, req.FileName)

	uploadURL, err := uc.createPresignedURL(c.Request.Context(), key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, EvidenceUploadResponse{
		UploadURL: uploadURL,
		FileURL:   fmt.Sprintf("%s/%s", uc.StorageConfig.PublicURL, key),
		Key:       key,
		ExpiresIn: 3600,
	})
}

const maxEvidenceSize = 10 * 1024 * 1024 // 10MB

func isValidEvidenceType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/webp", "application/pdf":
		return true
	}
	return false
}

func (uc *UploadController) generateEvidenceKey(userID int64, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("reports/evidence/%d/%d_%s%s", userID, time.Now().Unix(), uuid.New().String(), ext)
}

func (uc *UploadController) createPresignedURL(ctx context.Context, key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(uc.StorageConfig.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.StorageClient)
	req, err := presigner.PresignPutObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
