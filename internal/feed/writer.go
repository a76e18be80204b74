package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"catalogfeed/scraper/internal/domain"

	"github.com/google/renameio/v2"
	log "github.com/sirupsen/logrus"
)

// Writer persists a finished feed.
type Writer interface {
	Write(items []domain.Item) error
}

type csvWriter struct {
	path      string
	columns   []string
	delimiter rune
}

// NewCSVWriter returns a Writer producing a CSV file with exactly the given
// columns. The destination is replaced atomically, so a failed run leaves a
// previous feed untouched.
func NewCSVWriter(path string, columns []string, delimiter rune) Writer {
	return &csvWriter{
		path:      path,
		columns:   append([]string(nil), columns...),
		delimiter: delimiter,
	}
}

func (w *csvWriter) Write(items []domain.Item) error {
	if dir := filepath.Dir(w.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	pending, err := renameio.NewPendingFile(w.path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending feed file: %w", err)
	}
	defer pending.Cleanup()

	if err := Encode(pending, w.columns, items, w.delimiter); err != nil {
		return err
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", w.path, err)
	}

	log.Infof("💾 Wrote %d items to %s", len(items), w.path)
	return nil
}

// Encode writes the header row followed by one row per item. Every row has
// len(columns) cells; columns an item does not populate are empty.
func Encode(out io.Writer, columns []string, items []domain.Item, delimiter rune) error {
	writer := csv.NewWriter(out)
	if delimiter != 0 {
		writer.Comma = delimiter
	}

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(columns))
	for _, item := range items {
		for i, column := range columns {
			row[i] = item.Field(column)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write item %s: %w", item.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush feed: %w", err)
	}
	return nil
}
