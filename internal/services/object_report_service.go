package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/collin-smith/CdkApp/internal/adapters/storage"
	"github.com/collin-smith/CdkApp/internal/models"
)

// objectReportService implements the ObjectReportService interface
type objectReportService struct {
	lister storage.ObjectLister
	logger *logrus.Logger
}

// NewObjectReportService creates a new object report service instance
func NewObjectReportService(lister storage.ObjectLister, logger *logrus.Logger) ObjectReportService {
	if logger == nil {
		logger = logrus.New()
	}
	return &objectReportService{
		lister: lister,
		logger: logger,
	}
}

// GenerateReport lists bucket once and stamps every object with region
func (s *objectReportService) GenerateReport(ctx context.Context, region, bucket string) *ObjectReport {
	var log strings.Builder
	fmt.Fprintf(&log, "ObjectReportService ReportLog region=%s bucketName=%s ", region, bucket)

	objects, err := s.lister.ListObjects(ctx, bucket)

	report := &ObjectReport{
		Objects: make([]models.ObjectMetadata, 0, len(objects)),
	}
	for _, obj := range objects {
		obj.Region = region
		report.Objects = append(report.Objects, obj)
		report.TotalBytes += obj.SizeBytes
	}

	fmt.Fprintf(&log, "listed %d objects totalling %s", len(report.Objects), humanize.Bytes(uint64(report.TotalBytes)))

	if err != nil {
		report.Err = err
		fmt.Fprintf(&log, " ObjectReportService.ListObjects Exception:%v", err)
		s.logger.WithFields(logrus.Fields{
			"bucket":  bucket,
			"region":  region,
			"partial": len(report.Objects),
		}).WithError(err).Warn("Object listing failed")
	}

	report.Log = log.String()
	return report
}
