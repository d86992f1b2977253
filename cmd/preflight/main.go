// Command preflight checks an image and a parameter set against the upload
// page rules before anything is sent to the server.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
	"github.com/kirillkom/planetary-dem/internal/observability/logging"
)

type answers struct {
	Scale     string
	Smoothing string
	Elevation string
}

func main() {
	var (
		path      = flag.String("file", "", "image to check")
		scale     = flag.String("scale", "", "scale factor; prompts when empty")
		smoothing = flag.String("smoothing", "", "smoothing 1, 3 or 5; prompts when empty")
		elevation = flag.String("elevation", "", "maximum elevation in meters; prompts when empty")
		logLevel  = flag.String("log-level", "warn", "log level")
	)
	flag.Parse()
	slog.SetDefault(logging.NewJSONLogger("preflight", *logLevel))

	sel, err := inspectFile(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	a := answers{Scale: *scale, Smoothing: *smoothing, Elevation: *elevation}
	if err := ask(&a); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := report(os.Stdout, sel, a); err != nil {
		os.Exit(1)
	}
}

// inspectFile builds the selection a browser would report for path. An
// undetectable type is reported empty, as browsers do.
func inspectFile(path string) (domain.FileSelection, error) {
	if path == "" {
		return domain.FileSelection{}, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return domain.FileSelection{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return domain.FileSelection{}, fmt.Errorf("%s is a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.FileSelection{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return domain.FileSelection{}, fmt.Errorf("read %s: %w", path, err)
	}

	return domain.FileSelection{
		Name:      filepath.Base(path),
		SizeBytes: info.Size(),
		MimeType:  detectMimeType(filepath.Ext(path), head[:n]),
	}, nil
}

func detectMimeType(ext string, head []byte) string {
	if byExt := mime.TypeByExtension(ext); byExt != "" {
		mediaType, _, err := mime.ParseMediaType(byExt)
		if err == nil {
			return mediaType
		}
	}
	if len(head) == 0 {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(http.DetectContentType(head))
	if err != nil || mediaType == "application/octet-stream" {
		return ""
	}
	return mediaType
}

func ask(a *answers) error {
	var qs []*survey.Question
	if a.Scale == "" {
		qs = append(qs, &survey.Question{
			Name: "scale",
			Prompt: &survey.Input{
				Message: "Scale factor (0.1 - 10.0):",
				Default: strconv.FormatFloat(domain.DefaultScaleFactor, 'f', 1, 64),
				Help:    "Elevation scaling multiplier",
			},
		})
	}
	if a.Smoothing == "" {
		qs = append(qs, &survey.Question{
			Name: "smoothing",
			Prompt: &survey.Select{
				Message: "Smoothing:",
				Options: []string{"1", "3", "5"},
				Default: strconv.Itoa(int(domain.DefaultSmoothing)),
				Description: func(value string, _ int) string {
					return domain.SmoothingBand(value).Name
				},
			},
		})
	}
	if a.Elevation == "" {
		qs = append(qs, &survey.Question{
			Name: "elevation",
			Prompt: &survey.Input{
				Message: "Maximum elevation in meters (10 - 10000):",
				Default: strconv.FormatFloat(domain.DefaultElevationRange, 'f', -1, 64),
				Help:    "Maximum elevation value",
			},
		})
	}
	if len(qs) == 0 {
		return nil
	}

	var resp struct {
		Scale     string `survey:"scale"`
		Smoothing string `survey:"smoothing"`
		Elevation string `survey:"elevation"`
	}
	if err := survey.Ask(qs, &resp); err != nil {
		return err
	}
	if resp.Scale != "" {
		a.Scale = resp.Scale
	}
	if resp.Smoothing != "" {
		a.Smoothing = resp.Smoothing
	}
	if resp.Elevation != "" {
		a.Elevation = resp.Elevation
	}
	return nil
}

// report prints what the page would show and returns the error that would
// block the submission.
func report(w io.Writer, sel domain.FileSelection, a answers) error {
	var blocking error
	switch {
	case sel.Name == "":
		blocking = &domain.ValidationError{Kind: domain.ErrNoFileSelected, Field: domain.FieldFile, Message: domain.MsgNoFileSelected}
	default:
		if err := domain.ValidateFile(sel); err != nil {
			blocking = err
			fmt.Fprintf(w, "File: rejected: %s\n", err)
		} else {
			fmt.Fprintln(w, domain.NewFilePreview(sel).Text())
		}
	}

	fmt.Fprintln(w, domain.ScaleBand(a.Scale).Text())
	fmt.Fprintln(w, domain.SmoothingBand(a.Smoothing).Text())
	fmt.Fprintln(w, domain.ElevationBand(a.Elevation).Text())

	if blocking == nil {
		if _, err := domain.ValidateParameters(domain.RawParameters{
			ScaleFactor:    a.Scale,
			Smoothing:      a.Smoothing,
			ElevationRange: a.Elevation,
		}); err != nil {
			blocking = err
		}
	}

	if blocking != nil {
		fmt.Fprintf(w, "Blocked: %s\n", blocking)
		return blocking
	}
	fmt.Fprintln(w, "Ready to submit.")
	return nil
}
