package services

import (
	"fmt"
	"mime/multipart"

	"github.com/shubhshah23/emesa-digital/utils"
)

// ArtifactService handles design-artifact operations: STEP files and draft
// design drawings attached to orders. The engine stores the returned keys as
// opaque references and never inspects artifact contents.
type ArtifactService interface {
	// UploadArtifact validates and uploads a design file, returns the storage key
	UploadArtifact(fileHeader *multipart.FileHeader) (string, error)

	// GetArtifactURL generates a URL for downloading an uploaded artifact
	GetArtifactURL(artifactKey string) (string, error)

	// DeleteArtifact removes an artifact from storage
	DeleteArtifact(artifactKey string) error
}

// S3ArtifactService implements ArtifactService using AWS S3 for storage
type S3ArtifactService struct {
	s3Service S3Interface
}

var artifactServiceInstance ArtifactService

// InitArtifactService initializes the artifact service with S3 backend
func InitArtifactService(s3Service S3Interface) ArtifactService {
	artifactServiceInstance = &S3ArtifactService{
		s3Service: s3Service,
	}
	return artifactServiceInstance
}

// GetArtifactService returns the initialized artifact service instance
func GetArtifactService() ArtifactService {
	return artifactServiceInstance
}

// SetArtifactService sets the artifact service instance (primarily for testing)
func SetArtifactService(service ArtifactService) {
	artifactServiceInstance = service
}

// UploadArtifact validates and uploads a design file to S3
func (s *S3ArtifactService) UploadArtifact(fileHeader *multipart.FileHeader) (string, error) {
	// Validate the artifact file
	if err := utils.ValidateArtifactFile(fileHeader); err != nil {
		return "", err
	}

	// Upload to S3
	s3Key, err := s.s3Service.UploadFile(fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to upload artifact: %w", err)
	}

	return s3Key, nil
}

// GetArtifactURL generates a presigned URL for downloading an artifact
func (s *S3ArtifactService) GetArtifactURL(artifactKey string) (string, error) {
	if artifactKey == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(artifactKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate artifact URL: %w", err)
	}

	return url, nil
}

// DeleteArtifact deletes an artifact from S3
func (s *S3ArtifactService) DeleteArtifact(artifactKey string) error {
	if artifactKey == "" {
		return nil
	}

	if err := s.s3Service.DeleteFile(artifactKey); err != nil {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}

	return nil
}
