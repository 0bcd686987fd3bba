// Command rostercal builds a personal calendar from roster files without the
// HTTP server.
//
//	rostercal -assistant asistan.xlsx [-staff uzman.csv] -name "Tahir" [-format ics|xlsx|json] [-out file]
//
// Exit status is 0 on success, 1 on errors and 2 when the name is not in the roster.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"roster-calendar/config"
	"roster-calendar/internal/dto"
	"roster-calendar/internal/model"
	"roster-calendar/internal/service"
	applogger "roster-calendar/pkg/logger"
)

const (
	exitOK       = 0
	exitError    = 1
	exitNotFound = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	assistant string
	staff     string
	name      string
	out       string
	format    string
	config    string
	verbose   bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("rostercal", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.assistant, "assistant", "", "assistant roster (.xlsx, .xls or .csv), required")
	fs.StringVar(&o.staff, "staff", "", "staff roster (.xlsx, .xls or .csv)")
	fs.StringVar(&o.name, "name", "", "name to look up, required")
	fs.StringVar(&o.out, "out", "", `output file, "-" for stdout (default: <Name>_Program.<format>)`)
	fs.StringVar(&o.format, "format", "ics", "output format: ics, xlsx or json")
	fs.StringVar(&o.config, "config", "", "config file")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch o.format {
	case "ics", "xlsx", "json":
	default:
		return nil, fmt.Errorf("unknown format %q", o.format)
	}
	if o.assistant == "" || o.name == "" {
		fs.Usage()
		return nil, errors.New("-assistant and -name are required")
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "rostercal:", err)
		return exitError
	}

	cfg, err := config.Load(o.config)
	if err != nil {
		fmt.Fprintln(stderr, "rostercal:", err)
		return exitError
	}
	cfg.Log.Format = "console"
	cfg.Log.Level = "warn"
	if o.verbose {
		cfg.Log.Level = "debug"
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintln(stderr, "rostercal:", err)
		return exitError
	}
	defer logger.Sync()

	req, closeFiles, err := openRequest(o)
	if err != nil {
		fmt.Fprintln(stderr, "rostercal:", err)
		return exitError
	}
	defer closeFiles()

	svc := service.NewService(cfg, logger).Calendar

	var (
		buf      *bytes.Buffer
		filename string
		found    = true
	)
	switch o.format {
	case "ics":
		buf, filename, err = svc.ExportICS(ctx, req)
	case "xlsx":
		buf, filename, err = svc.ExportXLSX(ctx, req)
	case "json":
		var res *service.CalendarResult
		if res, err = svc.Build(ctx, req); err == nil {
			found = res.Found
			buf, err = encodeJSON(res)
			filename = service.CalendarFilename(res.Owner, cfg.Calendar.FilenameSuffix, ".json")
			printSummary(stderr, res.Owner, res.Stats)
		}
	}
	if errors.Is(err, service.ErrCalendarNoDuties) {
		fmt.Fprintf(stderr, "rostercal: %q was not found in the roster\n", o.name)
		return exitNotFound
	}
	if err != nil {
		logger.Debug("build failed", zap.Error(err))
		fmt.Fprintln(stderr, "rostercal:", err)
		return exitError
	}

	dest := o.out
	if dest == "" {
		dest = filename
	}
	if err := writeOutput(dest, buf.Bytes(), stdout); err != nil {
		fmt.Fprintln(stderr, "rostercal:", err)
		return exitError
	}
	if dest != "-" {
		fmt.Fprintf(stderr, "written %s\n", dest)
	}
	if !found {
		return exitNotFound
	}
	return exitOK
}

func openRequest(o *options) (service.CalendarRequest, func(), error) {
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	open := func(path string) (*service.RosterUpload, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
		return &service.RosterUpload{Filename: filepath.Base(path), Content: f}, nil
	}

	req := service.CalendarRequest{Name: o.name}
	var err error
	if req.Assistant, err = open(o.assistant); err != nil {
		closeAll()
		return req, nil, err
	}
	if o.staff != "" {
		if req.Staff, err = open(o.staff); err != nil {
			closeAll()
			return req, nil, err
		}
	}
	return req, closeAll, nil
}

func encodeJSON(res *service.CalendarResult) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto.NewCalendarPreviewResponse(res.Owner, res.Found, res.Entries, res.Stats)); err != nil {
		return nil, err
	}
	return buf, nil
}

func printSummary(w io.Writer, owner string, stats model.Statistics) {
	fmt.Fprintf(w, "%s: %d entries\n", owner, stats.Total())
	for _, k := range model.DutyKinds {
		fmt.Fprintf(w, "  %-14s %d\n", k.Label(), stats.Get(k))
	}
}

func writeOutput(dest string, body []byte, stdout io.Writer) error {
	if dest == "-" {
		_, err := stdout.Write(body)
		return err
	}
	return os.WriteFile(dest, body, 0o644)
}
