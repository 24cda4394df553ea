package services

import (
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/shubhshah23/emesa-digital/utils"
)

// MockArtifactService is a mock implementation of ArtifactService for testing
type MockArtifactService struct {
	uploadedArtifacts map[string][]byte // map of artifact key to file content
	mu                sync.RWMutex
}

// NewMockArtifactService creates a new mock artifact service
func NewMockArtifactService() *MockArtifactService {
	return &MockArtifactService{
		uploadedArtifacts: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global artifact service instance for testing
func (m *MockArtifactService) SetAsMockForTesting() {
	SetArtifactService(m)
}

// UploadArtifact simulates uploading a design file
func (m *MockArtifactService) UploadArtifact(fileHeader *multipart.FileHeader) (string, error) {
	// Validate the artifact file
	if err := utils.ValidateArtifactFile(fileHeader); err != nil {
		return "", err
	}

	// Open and read the file
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Read file content
	content := make([]byte, fileHeader.Size)
	_, err = file.Read(content)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	// Generate mock artifact key
	artifactKey := fmt.Sprintf("artifacts/mock_%s", fileHeader.Filename)

	// Store in mock storage
	m.mu.Lock()
	m.uploadedArtifacts[artifactKey] = content
	m.mu.Unlock()

	return artifactKey, nil
}

// GetArtifactURL simulates generating a URL for an artifact
func (m *MockArtifactService) GetArtifactURL(artifactKey string) (string, error) {
	if artifactKey == "" {
		return "", nil
	}

	// Check if artifact exists in mock storage
	m.mu.RLock()
	_, exists := m.uploadedArtifacts[artifactKey]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("artifact not found in mock storage: %s", artifactKey)
	}

	// Return a mock URL
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", artifactKey), nil
}

// DeleteArtifact simulates deleting an artifact
func (m *MockArtifactService) DeleteArtifact(artifactKey string) error {
	if artifactKey == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedArtifacts, artifactKey)
	m.mu.Unlock()

	return nil
}

// GetUploadedArtifacts returns all uploaded artifacts (for testing assertions)
func (m *MockArtifactService) GetUploadedArtifacts() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent race conditions
	artifacts := make(map[string][]byte, len(m.uploadedArtifacts))
	for k, v := range m.uploadedArtifacts {
		artifacts[k] = v
	}
	return artifacts
}

// ArtifactExists checks if an artifact exists in mock storage
func (m *MockArtifactService) ArtifactExists(artifactKey string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedArtifacts[artifactKey]
	return exists
}

// Clear removes all artifacts from mock storage
func (m *MockArtifactService) Clear() {
	m.mu.Lock()
	m.uploadedArtifacts = make(map[string][]byte)
	m.mu.Unlock()
}
