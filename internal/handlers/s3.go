package handlers

import (
	"context"

	"github.com/collin-smith/CdkApp/internal/models"
	"github.com/collin-smith/CdkApp/internal/services"
	"github.com/collin-smith/CdkApp/pkg/lambda"
)

// S3Handler lists the configured bucket
type S3Handler struct {
	base
	reports services.ObjectReportService
}

// NewS3Handler creates a new object listing handler
func NewS3Handler(reports services.ObjectReportService, opts Options) *S3Handler {
	return &S3Handler{
		base:    newBase("s3", "S3LambdaHandler", opts),
		reports: reports,
	}
}

// Handle implements lambda.Handler. The listing runs before the envelope is
// decoded and a listing error never flips success: the objects gathered
// before the error are returned and the error only appears in the trace.
// A bad envelope still fails the call.
// @Summary List the bucket
// @Description List the configured bucket in one call; a listing error is reported in the trace, not in success
// @Tags s3
// @Accept json
// @Produce plain
// @Param body body object true "Any JSON value"
// @Success 200 {object} responseBody
// @Router /s3 [post]
func (h *S3Handler) Handle(ctx context.Context, raw []byte) *lambda.Response {
	return h.invoke(ctx, raw, func(ctx context.Context, inv *invocation) {
		inv.objects = []models.ObjectMetadata{}

		region, bucket := h.settings.Region, h.settings.Bucket
		inv.tracef("S3Lambda CDK Lambda call at %s", h.timestamp())
		inv.tracef("Region:%s", region)
		inv.tracef("S3 Bucket location:%s", bucket)

		report := h.reports.GenerateReport(ctx, region, bucket)
		inv.objects = report.Objects
		h.metrics.AddListedObjects(len(report.Objects))

		inv.tracef("# Files in the bucket=%d", len(report.Objects))
		inv.tracef("**S3 Report Log= %s", report.Log)

		inv.envelope()
	})
}
