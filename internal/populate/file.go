package populate

import (
	"context"
	"fmt"
	"io"
	"io/fs"
)

// LineLoader is Units or Ingredients.
type LineLoader func(ctx context.Context, r io.Reader, rep *Report) error

// File opens name in fsys and feeds it to load.
func (l *Loader) File(ctx context.Context, fsys fs.FS, name string, load LineLoader, rep *Report) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("input file not recognized: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := load(ctx, f, rep); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
