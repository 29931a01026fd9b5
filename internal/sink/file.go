package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"quickcap/internal/logging"
	"quickcap/internal/model"
	"quickcap/internal/store"
)

const (
	dateLayout  = "2006-01-02"
	stampLayout = "0601021504"

	backlinkDescLen = 10
)

var (
	ErrEmptyPath   = errors.New("path cannot be empty")
	ErrInvalidMode = errors.New("invalid save mode")
)

// FileSink writes daily and standalone markdown notes. It is safe for concurrent
// use; appends are serialised so overlapping saves cannot drop an entry.
type FileSink struct {
	// mu covers each read-modify-write of a note file.
	mu  sync.Mutex
	now func() time.Time
	log logging.Logger
}

func NewFileSink(log logging.Logger) *FileSink {
	if log == nil {
		log = logging.Nop()
	}
	return &FileSink{now: time.Now, log: log}
}

// WithClock overrides the time used for file names and headings.
func (s *FileSink) WithClock(now func() time.Time) *FileSink {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *FileSink) Deliver(ctx context.Context, req Request) error {
	r, ok := req.(*FileRequest)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedRequest, req)
	}
	return s.Save(ctx, *r)
}

func (s *FileSink) Save(ctx context.Context, req FileRequest) error {
	_, err := s.SaveNote(ctx, req)
	return err
}

// SaveNote writes req and returns the path of the note it created or appended to.
func (s *FileSink) SaveNote(ctx context.Context, req FileRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if req.Path == "" {
		return "", ErrEmptyPath
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	date := now.Format(dateLayout)
	stamp := now.Format(stampLayout)

	switch req.Mode {
	case model.ModeDaily:
		p := filepath.Join(req.Path, date+".md")
		if err := appendDaily(p, date, fmt.Sprintf("\n## %s\n%s\n", stamp, req.Thought)); err != nil {
			return "", fmt.Errorf("write daily note: %w", err)
		}
		s.log.Debug("daily note appended", logging.String("file", p))
		return p, nil

	case model.ModeStandalone:
		p := filepath.Join(req.Path, stamp+".md")
		if req.DailyPath != "" {
			dp := filepath.Join(req.DailyPath, date+".md")
			link := fmt.Sprintf("\n## %s\n[[%s|%s]]\n", stamp, stamp, BacklinkDescription(req.Thought))
			if err := appendDaily(dp, date, link); err != nil {
				return "", fmt.Errorf("write daily backlink: %w", err)
			}
		} else {
			s.log.Debug("no daily path, backlink skipped", logging.String("file", p))
		}
		if err := appendFile(p, fmt.Sprintf("# %s\n%s\n", stamp, req.Thought)); err != nil {
			return "", fmt.Errorf("write standalone note: %w", err)
		}
		s.log.Debug("standalone note written", logging.String("file", p))
		return p, nil

	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, req.Mode)
	}
}

// BacklinkDescription is the first line of thought reduced to letters, digits and
// whitespace, at most ten characters.
func BacklinkDescription(thought string) string {
	first, _, _ := strings.Cut(thought, "\n")
	first = strings.TrimSuffix(first, "\r")
	var b strings.Builder
	n := 0
	for _, r := range first {
		if n == backlinkDescLen {
			break
		}
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
			n++
		}
	}
	return b.String()
}

// appendDaily appends entry to the daily note at path, starting a new file with the
// "# <date>" heading.
func appendDaily(path, date, entry string) error {
	content, existed, err := readExisting(path)
	if err != nil {
		return err
	}
	if !existed && !strings.Contains(content, "# "+date) {
		content = "# " + date + "\n\n" + content
	}
	return writeFile(path, content+entry)
}

func appendFile(path, entry string) error {
	content, _, err := readExisting(path)
	if err != nil {
		return err
	}
	return writeFile(path, content+entry)
}

func readExisting(path string) (string, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", true, err
	}
	return string(b), true, nil
}

func writeFile(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return store.AtomicWriteFile(dir, "."+filepath.Base(path)+".*.tmp", path, []byte(content), 0o644)
}
