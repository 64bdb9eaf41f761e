package applicationsrv

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/hireflow/internal/config"
	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/Abraxas-365/hireflow/pkg/filex"
	"github.com/Abraxas-365/hireflow/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/application"
	"github.com/Abraxas-365/hireflow/recruitment/application/applicationinfra"
)

var testNow = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*ApplicationService, *fsxlocal.LocalFileSystem) {
	t.Helper()
	fs, err := fsxlocal.NewLocalFileSystem(t.TempDir())
	if err != nil {
		t.Fatalf("local fs: %v", err)
	}
	svc := NewApplicationService(
		applicationinfra.NewMemoryApplicationRepository(),
		application.StaticCatalog(application.DefaultJobPositions()),
		fs,
	)
	svc.now = func() time.Time { return testNow }
	svc.pageCount = func(data []byte) (int, error) {
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			return 0, errors.New("not a pdf")
		}
		return 1, nil
	}
	return svc, fs
}

func submitReq(file *filex.File) application.CreateApplicationRequest {
	return application.CreateApplicationRequest{
		FullName:    "Grace Hopper",
		Email:       "grace@example.com",
		JobPosition: "Backend Developer",
		Resume:      file,
	}
}

func TestSubmitStoresResume(t *testing.T) {
	ctx := context.Background()
	svc, fs := newTestService(t)

	app, err := svc.SubmitApplication(ctx, submitReq(filex.New("grace.pdf", filex.MimePDF, []byte("%PDF-1.7 grace"))))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if app.Status != application.StatusNew || app.ResumeFileURL != ResumeDownloadURL(app.ID) || !app.SubmittedAt.Equal(testNow) {
		t.Fatalf("unexpected application %+v", app)
	}

	ok, err := fs.Exists(ctx, "resumes/"+app.ID.String()+"/grace.pdf")
	if err != nil || !ok {
		t.Fatalf("resume not stored: %v %v", ok, err)
	}

	blob, err := svc.DownloadResume(ctx, app.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if string(blob.Data) != "%PDF-1.7 grace" || blob.ContentType != filex.MimePDF || blob.FileName != "grace.pdf" {
		t.Fatalf("unexpected resume blob %+v", blob)
	}
}

func TestSubmitRejectsBadResumes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	cases := []struct {
		file *filex.File
		code errx.Code
	}{
		{nil, application.CodeValidationFailed},
		{&filex.File{Name: "big.pdf", Size: filex.MaxFileSize + 1, ContentType: filex.MimePDF}, application.CodeFileSizeTooLarge},
		{filex.New("photo.png", "image/png", []byte("png")), application.CodeInvalidFileType},
		{filex.New("fake.pdf", filex.MimePDF, []byte("hello")), application.CodeUnreadableResume},
		{filex.New("..", filex.MimeDOC, []byte("doc")), application.CodeInvalidRequest},
	}
	for _, tc := range cases {
		if _, err := svc.SubmitApplication(ctx, submitReq(tc.file)); !errx.IsCode(err, tc.code) {
			t.Fatalf("expected %s, got %v", tc.code, err)
		}
	}

	res, _ := svc.GetApplications(ctx, application.Filters{}, 1, 10)
	if res.TotalCount != 0 {
		t.Fatalf("rejected submissions must not be stored, got %d", res.TotalCount)
	}
}

func TestStatusDeleteAndExport(t *testing.T) {
	ctx := context.Background()
	svc, fs := newTestService(t)

	app, err := svc.SubmitApplication(ctx, submitReq(filex.New("grace.docx", filex.MimeDOCX, []byte("docx"))))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	updated, err := svc.UpdateApplicationStatus(ctx, app.ID, application.UpdateStatusRequest{Status: application.StatusReviewed, Notes: "ok"})
	if err != nil || updated.Status != application.StatusReviewed || updated.Notes != "ok" {
		t.Fatalf("update: %+v %v", updated, err)
	}
	if _, err := svc.UpdateApplicationStatus(ctx, app.ID, application.UpdateStatusRequest{Status: "hired"}); !errx.IsCode(err, application.CodeInvalidStatus) {
		t.Fatalf("unknown status must be rejected, got %v", err)
	}

	blob, err := svc.ExportApplications(ctx, application.Filters{Status: application.StatusReviewed})
	if err != nil || !strings.Contains(string(blob.Data), `"Grace Hopper","grace@example.com"`) {
		t.Fatalf("export: %+v %v", blob, err)
	}
	blob, _ = svc.ExportApplications(ctx, application.Filters{Status: application.StatusRejected})
	if strings.Count(string(blob.Data), "\n") != 0 {
		t.Fatalf("filtered export must contain only the header, got %q", blob.Data)
	}

	if err := svc.DeleteApplication(ctx, app.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := fs.Exists(ctx, "resumes/"+app.ID.String()+"/grace.docx"); ok {
		t.Fatalf("resume must be removed with the application")
	}
	if _, err := svc.GetApplicationByID(ctx, app.ID); !application.IsNotFound(err) {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
	if err := svc.DeleteApplication(ctx, app.ID); !application.IsNotFound(err) {
		t.Fatalf("expected NotFound on second delete, got %v", err)
	}
}

func TestUploadRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	res, err := svc.UploadFile(ctx, filex.New("cover.doc", filex.MimeDOC, []byte("letter")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if res.FileName != "cover.doc" || !strings.HasPrefix(res.FileURL.String(), "/files/uploads/") {
		t.Fatalf("unexpected upload response %+v", res)
	}

	parts := strings.Split(strings.TrimPrefix(res.FileURL.String(), "/files/uploads/"), "/")
	blob, err := svc.OpenUpload(ctx, kernel.NewUploadID(parts[0]), parts[1])
	if err != nil || string(blob.Data) != "letter" {
		t.Fatalf("open upload: %+v %v", blob, err)
	}

	if _, err := svc.OpenUpload(ctx, kernel.NewUploadID(parts[0]), "../secret"); !errx.IsCode(err, application.CodeInvalidRequest) {
		t.Fatalf("traversal must be rejected, got %v", err)
	}
}

func TestNewSelectsAdapter(t *testing.T) {
	if _, err := New(config.Client{}); err == nil {
		t.Fatalf("http mode without a base url must fail")
	}

	svc, err := New(config.Client{UseMockData: true})
	if err != nil {
		t.Fatalf("mock mode: %v", err)
	}
	res, err := svc.GetApplications(context.Background(), application.Filters{Search: "alice"}, 1, 10)
	if err != nil || res.TotalCount != 1 {
		t.Fatalf("mock adapter not selected: %+v %v", res, err)
	}

	if _, err := svc.GetApplicationByID(context.Background(), "nope"); !application.IsNotFound(err) {
		t.Fatalf("logging decorator must pass errors through, got %v", err)
	}
}
