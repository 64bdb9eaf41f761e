package applicationsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/filex"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/Abraxas-365/hireflow/recruitment/application"
)

type loggingService struct {
	next    application.Service
	adapter string
}

// WithLogging logs every call to next with its duration and outcome
func WithLogging(next application.Service, adapter string) application.Service {
	return &loggingService{next: next, adapter: adapter}
}

func (s *loggingService) log(op string, start time.Time, err error) {
	elapsed := time.Since(start)
	if err != nil {
		logx.Warnf("[%s] %s failed after %s: %v", s.adapter, op, elapsed, err)
		return
	}
	logx.Debugf("[%s] %s ok in %s", s.adapter, op, elapsed)
}

func (s *loggingService) SubmitApplication(ctx context.Context, req application.CreateApplicationRequest) (app *application.Application, err error) {
	defer func(start time.Time) { s.log("SubmitApplication", start, err) }(time.Now())
	return s.next.SubmitApplication(ctx, req)
}

func (s *loggingService) GetApplications(ctx context.Context, filters application.Filters, page, pageSize int) (res *application.ListResponse, err error) {
	defer func(start time.Time) { s.log("GetApplications", start, err) }(time.Now())
	return s.next.GetApplications(ctx, filters, page, pageSize)
}

func (s *loggingService) GetApplicationByID(ctx context.Context, id kernel.ApplicationID) (app *application.AdminApplication, err error) {
	defer func(start time.Time) { s.log("GetApplicationByID", start, err) }(time.Now())
	return s.next.GetApplicationByID(ctx, id)
}

func (s *loggingService) UpdateApplicationStatus(ctx context.Context, id kernel.ApplicationID, req application.UpdateStatusRequest) (app *application.AdminApplication, err error) {
	defer func(start time.Time) { s.log("UpdateApplicationStatus", start, err) }(time.Now())
	return s.next.UpdateApplicationStatus(ctx, id, req)
}

func (s *loggingService) DeleteApplication(ctx context.Context, id kernel.ApplicationID) (err error) {
	defer func(start time.Time) { s.log("DeleteApplication", start, err) }(time.Now())
	return s.next.DeleteApplication(ctx, id)
}

func (s *loggingService) DownloadResume(ctx context.Context, id kernel.ApplicationID) (blob *application.Blob, err error) {
	defer func(start time.Time) { s.log("DownloadResume", start, err) }(time.Now())
	return s.next.DownloadResume(ctx, id)
}

func (s *loggingService) ExportApplications(ctx context.Context, filters application.Filters) (blob *application.Blob, err error) {
	defer func(start time.Time) { s.log("ExportApplications", start, err) }(time.Now())
	return s.next.ExportApplications(ctx, filters)
}

func (s *loggingService) GetJobPositions(ctx context.Context) (positions []string, err error) {
	defer func(start time.Time) { s.log("GetJobPositions", start, err) }(time.Now())
	return s.next.GetJobPositions(ctx)
}

func (s *loggingService) UploadFile(ctx context.Context, file *filex.File) (res *application.FileUploadResponse, err error) {
	defer func(start time.Time) { s.log("UploadFile", start, err) }(time.Now())
	return s.next.UploadFile(ctx, file)
}
