package output

import (
	"bytes"
	"io"
	"os"

	"github.com/panbanda/f90lens/internal/output"
)

// Format represents output format.
type Format = output.Format

// Supported formats (re-exported for convenience).
const (
	FormatText     = output.FormatText
	FormatJSON     = output.FormatJSON
	FormatYAML     = output.FormatYAML
	FormatMarkdown = output.FormatMarkdown
	FormatTOON     = output.FormatTOON
)

// Service handles output formatting.
type Service struct {
	format    Format
	formatSet bool
	writer    io.Writer
	colored   bool
	filePath  string
	file      *os.File
}

// Option configures a Service.
type Option func(*Service)

// WithFormat sets the output format. When a file is also set, its extension must
// agree with the format.
func WithFormat(f Format) Option {
	return func(s *Service) {
		s.format = f
		s.formatSet = f != ""
	}
}

// WithWriter sets the output writer.
func WithWriter(w io.Writer) Option {
	return func(s *Service) {
		s.writer = w
	}
}

// WithColor enables or disables colored output.
func WithColor(enabled bool) Option {
	return func(s *Service) {
		s.colored = enabled
	}
}

// WithFile sets output to a file. Without WithFormat the format follows the file
// extension.
func WithFile(path string) Option {
	return func(s *Service) {
		s.filePath = path
	}
}

// New creates a new output service.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		format:  FormatText,
		writer:  os.Stdout,
		colored: true,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.filePath != "" {
		name := ""
		if s.formatSet {
			name = string(s.format)
		}
		format, err := output.ResolveFormat(name, s.filePath)
		if err != nil {
			return nil, err
		}
		s.format = format

		f, err := os.Create(s.filePath)
		if err != nil {
			return nil, err
		}
		s.file = f
		s.writer = f
		s.colored = false // No colors when writing to file
	}

	return s, nil
}

// Close closes the output service and any open files.
func (s *Service) Close() error {
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}

// Format returns the current format.
func (s *Service) Format() Format {
	return s.format
}

// Writer returns the current writer.
func (s *Service) Writer() io.Writer {
	return s.writer
}

// Colored returns whether output should be colored.
func (s *Service) Colored() bool {
	return s.colored
}

// Formatter returns a formatter bound to the service's writer.
func (s *Service) Formatter() *output.Formatter {
	return output.NewWriterFormatter(s.format, s.writer, s.colored)
}

// FormatData renders data in the service's format without colour and returns it.
func (s *Service) FormatData(data any) (string, error) {
	var buf bytes.Buffer
	if err := output.NewWriterFormatter(s.format, &buf, false).Output(data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Output writes data to the writer in the service's format.
func (s *Service) Output(data any) error {
	return s.Formatter().Output(data)
}

// NewTable creates a new table for output.
func NewTable(title string, headers []string, rows [][]string, summary []string, rawData any) *output.Table {
	return output.NewTable(title, headers, rows, summary, rawData)
}

// ParseFormat parses a format string into a Format.
func ParseFormat(s string) (Format, error) {
	return output.ParseFormat(s)
}
