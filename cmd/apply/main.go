package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/Abraxas-365/hireflow/internal/config"
	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/Abraxas-365/hireflow/pkg/filex"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/Abraxas-365/hireflow/recruitment/application"
	"github.com/Abraxas-365/hireflow/recruitment/application/applicationform"
	"github.com/Abraxas-365/hireflow/recruitment/application/applicationsrv"
)

const usage = `usage: apply <command> [flags]

commands:
  submit     fill the application form and submit it
  list       list applications (admin)
  get        show one application (admin)
  status     change the status of an application (admin)
  delete     delete an application (admin)
  download   save the resume of an application (admin)
  export     save the applications as CSV (admin)
  positions  list the open job positions
`

type command func(ctx context.Context, svc application.Service, args []string) error

var commands = map[string]command{
	"submit":    submit,
	"list":      list,
	"get":       get,
	"status":    status,
	"delete":    remove,
	"download":  download,
	"export":    export,
	"positions": positions,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	cfg := config.Load()
	logx.SetLevel(logx.ParseLevel(cfg.LogLevel))

	svc, err := applicationsrv.New(cfg.Client)
	if err != nil {
		logx.Fatalf("Invalid client configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, svc, os.Args[2:]); err != nil {
		printError(err)
		stop()
		os.Exit(1)
	}
}

func submit(ctx context.Context, svc application.Service, args []string) error {
	form := applicationform.NewForm()

	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	fs.StringVar(&form.FullName, "name", "", "full name")
	fs.StringVar(&form.Email, "email", "", "email address")
	fs.StringVar(&form.PhoneNumber, "phone", "", "phone number")
	fs.StringVar(&form.LinkedinProfile, "linkedin", "", "LinkedIn profile URL")
	fs.StringVar(&form.PortfolioWebsite, "website", "", "portfolio website URL")
	fs.StringVar(&form.JobPosition, "position", "", "job position")
	fs.StringVar(&form.AdditionalNotes, "notes", "", "additional notes")
	resume := fs.String("resume", "", "path to the resume (PDF, DOC or DOCX)")
	_ = fs.Parse(args)

	if *resume != "" {
		file, err := filex.Open(*resume)
		if err != nil {
			return application.ErrInvalidRequest().WithDetail("resumeFile", err.Error())
		}
		state := form.SelectFile(file)
		fmt.Fprintf(os.Stderr, "resume: %s (%s, %s)\n", state.Name, state.Extension, state.DisplaySize)
		if !state.Valid() {
			fmt.Fprintf(os.Stderr, "resume rejected: %s\n", state.ErrorMessage)
		}
	}

	app, err := form.Submit(ctx, svc)
	if err != nil {
		return err
	}
	return printJSON(app)
}

func filterFlags(fs *flag.FlagSet) func() (application.Filters, error) {
	status := fs.String("status", "", "new, reviewed, shortlisted or rejected")
	position := fs.String("position", "", "exact job position")
	search := fs.String("search", "", "search name, email and position")
	from := fs.String("from", "", "submitted on or after (YYYY-MM-DD)")
	to := fs.String("to", "", "submitted on or before (YYYY-MM-DD)")

	return func() (application.Filters, error) {
		values := map[string]string{
			"status":      *status,
			"jobPosition": *position,
			"search":      *search,
			"dateFrom":    *from,
			"dateTo":      *to,
		}
		return application.ParseFilters(func(key string) string { return values[key] })
	}
}

func list(ctx context.Context, svc application.Service, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	filters := filterFlags(fs)
	page := fs.Int("page", kernel.DefaultPage, "page number")
	pageSize := fs.Int("page-size", kernel.DefaultPageSize, "page size")
	_ = fs.Parse(args)

	f, err := filters()
	if err != nil {
		return err
	}
	res, err := svc.GetApplications(ctx, f, *page, *pageSize)
	if err != nil {
		return err
	}
	return printJSON(res)
}

// idArg reads the application id as the first positional argument
func idArg(fs *flag.FlagSet, args []string) (kernel.ApplicationID, error) {
	_ = fs.Parse(args)
	if fs.NArg() < 1 {
		return "", application.ErrInvalidRequest().WithDetail("id", "missing")
	}
	return kernel.NewApplicationID(fs.Arg(0)), nil
}

func get(ctx context.Context, svc application.Service, args []string) error {
	id, err := idArg(flag.NewFlagSet("get", flag.ExitOnError), args)
	if err != nil {
		return err
	}
	app, err := svc.GetApplicationByID(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(app)
}

func status(ctx context.Context, svc application.Service, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	to := fs.String("to", "", "new status")
	notes := fs.String("notes", "", "review notes")
	reviewer := fs.String("reviewer", "", "reviewer name")

	// flags come before the id
	id, err := idArg(fs, args)
	if err != nil {
		return err
	}
	next, err := application.ParseStatus(*to)
	if err != nil {
		return err
	}

	app, err := svc.UpdateApplicationStatus(ctx, id, application.UpdateStatusRequest{
		Status:     next,
		Notes:      *notes,
		ReviewedBy: *reviewer,
	})
	if err != nil {
		return err
	}
	return printJSON(app)
}

func remove(ctx context.Context, svc application.Service, args []string) error {
	id, err := idArg(flag.NewFlagSet("delete", flag.ExitOnError), args)
	if err != nil {
		return err
	}
	if err := svc.DeleteApplication(ctx, id); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", id)
	return nil
}

func download(ctx context.Context, svc application.Service, args []string) error {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	dir := fs.String("dir", ".", "output directory")
	id, err := idArg(fs, args)
	if err != nil {
		return err
	}

	blob, err := svc.DownloadResume(ctx, id)
	if err != nil {
		return err
	}
	return saveBlob(filepath.Join(*dir, resumeFileName(id, blob.FileName)), blob)
}

// resumeFileName keeps the base of the served name, falling back to <id>.pdf
func resumeFileName(id kernel.ApplicationID, served string) string {
	name := filepath.Base(served)
	if served == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return id.String() + ".pdf"
	}
	return name
}

func export(ctx context.Context, svc application.Service, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	filters := filterFlags(fs)
	out := fs.String("out", application.CSVFileName, "output file")
	_ = fs.Parse(args)

	f, err := filters()
	if err != nil {
		return err
	}
	blob, err := svc.ExportApplications(ctx, f)
	if err != nil {
		return err
	}
	return saveBlob(*out, blob)
}

func positions(ctx context.Context, svc application.Service, args []string) error {
	list, err := svc.GetJobPositions(ctx)
	if err != nil {
		return err
	}
	for _, p := range list {
		fmt.Println(p)
	}
	return nil
}

func saveBlob(name string, blob *application.Blob) error {
	if err := os.WriteFile(name, blob.Data, 0o644); err != nil {
		return err
	}
	fmt.Printf("saved %s (%s, %s)\n", name, blob.ContentType, filex.FormatByteSize(int64(len(blob.Data))))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printError(err error) {
	e, ok := errx.As(err)
	if !ok {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}

	fmt.Fprintf(os.Stderr, "error: %s (%s)\n", e.Message, e.Code)
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(os.Stderr, "  %s: %v\n", k, e.Details[k])
	}
}
