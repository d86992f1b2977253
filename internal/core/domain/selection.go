package domain

// FileSelection is the file currently picked or dropped on the page.
type FileSelection struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	MimeType  string `json:"mime_type"`
}

// UIState is the upload form's presentation state.
type UIState int

const (
	StateIdle UIState = iota
	StateFilePreviewed
	StateSubmitting
)

func (s UIState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFilePreviewed:
		return "file_previewed"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// FilePreview is the content of the single preview block shown for an
// accepted selection.
type FilePreview struct {
	Name     string
	Size     string
	MimeType string
}

func NewFilePreview(sel FileSelection) FilePreview {
	mimeType := sel.MimeType
	if mimeType == "" {
		mimeType = "Unknown"
	}
	return FilePreview{
		Name:     sel.Name,
		Size:     FormatSize(sel.SizeBytes),
		MimeType: mimeType,
	}
}

// Text renders the preview line the way the page shows it.
func (p FilePreview) Text() string {
	return "Selected: " + p.Name + " (" + p.Size + ", " + p.MimeType + ")"
}
