// Package corpus reads batches of documents for keyword extraction.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/keyrank/pkg/keyrank/internalerr"
)

// maxLine bounds a single JSONL record
const maxLine = 4 << 20

// Doc is one JSONL record
type Doc struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Label names the document in reports: URL, then ID, then title
func (d Doc) Label() string {
	switch {
	case d.URL != "":
		return d.URL
	case d.ID != "":
		return d.ID
	}
	return d.Title
}

// LoadFile loads documents from a JSONL file
func LoadFile(path string, logger *zap.Logger) ([]Doc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	docs, err := Load(f, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

// Load reads one JSON document per line. Malformed and empty-text lines are
// skipped with a warning; a stream with no usable documents is an error.
func Load(r io.Reader, logger *zap.Logger) ([]Doc, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var docs []Doc
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for line := 1; sc.Scan(); line++ {
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}

		var d Doc
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			logger.Warn("skipping malformed line", zap.Int("line", line), zap.Error(err))
			continue
		}
		if strings.TrimSpace(d.Text) == "" {
			logger.Warn("skipping document without text", zap.Int("line", line), zap.String("doc", d.Label()))
			continue
		}
		if d.Label() == "" {
			d.ID = fmt.Sprintf("line-%d", line)
		}
		docs = append(docs, d)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no valid documents: %w", internalerr.ErrInvalidInput)
	}
	return docs, nil
}
