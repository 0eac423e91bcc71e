package services

import (
	"context"

	"github.com/collin-smith/CdkApp/internal/models"
)

// ObjectReportService lists a container and reports on the listing
type ObjectReportService interface {
	// GenerateReport never fails: listing errors are recorded in the report
	// log and the objects gathered before the error are kept.
	GenerateReport(ctx context.Context, region, bucket string) *ObjectReport
}

// UserService reads and writes user records in the per-environment table
type UserService interface {
	SaveUser(ctx context.Context, environment string, req *SaveUserRequest) (*models.User, error)
	FindUser(ctx context.Context, environment, email string) (*UserLookup, error)
}

// SaveUserRequest is the body accepted by the write handler
type SaveUserRequest struct {
	Email     string `json:"email" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// FindUserRequest is the body accepted by the read handler
type FindUserRequest struct {
	Email string `json:"email" validate:"required"`
}

// ObjectReport is the result of one listing
type ObjectReport struct {
	Objects    []models.ObjectMetadata
	TotalBytes int64
	Log        string
	Err        error // listing error, already recorded in Log
}

// UserLookup is the result of a point lookup. Found is false with a nil
// error when the table holds no record for the email.
type UserLookup struct {
	User  *models.User
	Found bool
	Log   string
}
