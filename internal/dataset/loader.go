package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Options controls how a source file is read
type Options struct {
	Delimiter rune   // overrides the delimiter implied by the extension
	Sheet     string // workbook sheet; first sheet when empty
}

// Load reads an observation table from path. The source format is chosen
// by extension: .csv, .tsv/.tab, .xlsx, or a .db/.sqlite/.sqlite3 snapshot.
// Every failure wraps ErrDataLoad.
func Load(ctx context.Context, path string, opts Options) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return nil, loadErr(path, 0, "", errors.New("no data path configured"))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, loadErr(path, 0, "", err)
	}
	if info.IsDir() {
		return nil, loadErr(path, 0, "", errors.New("path is a directory"))
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return loadDelimited(path, delimiterOr(opts.Delimiter, ','))
	case ".tsv", ".tab":
		return loadDelimited(path, delimiterOr(opts.Delimiter, '\t'))
	case ".xlsx", ".xlsm":
		return loadWorkbook(path, opts.Sheet)
	case ".db", ".sqlite", ".sqlite3":
		return loadSnapshot(ctx, path)
	default:
		return nil, loadErr(path, 0, "", fmt.Errorf("unsupported file type %q", ext))
	}
}

func delimiterOr(d, fallback rune) rune {
	if d != 0 {
		return d
	}
	return fallback
}
