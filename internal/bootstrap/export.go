package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"vibecode_spa/internal/router"
	"vibecode_spa/web"
)

// Export prerenders every literal route into outDir as <path>/index.html
// and copies the static assets next to them. It returns the written page
// files relative to outDir.
func (a *App) Export(ctx context.Context, outDir string) ([]string, error) {
	var written []string

	for _, r := range a.table.Routes() {
		if !router.IsLiteral(r.Pattern) {
			a.logger.Debug("skipping non-literal route", "pattern", r.Pattern)
			continue
		}

		var buf bytes.Buffer
		if _, err := a.RenderPath(ctx, &buf, r.Pattern); err != nil {
			return written, err
		}

		rel := filepath.Join(filepath.FromSlash(strings.Trim(r.Pattern, "/")), "index.html")
		if err := writeFile(filepath.Join(outDir, rel), buf.Bytes()); err != nil {
			return written, err
		}
		written = append(written, rel)
	}

	if err := copyStatic(outDir); err != nil {
		return written, err
	}

	a.logger.Info("static export complete", "dir", outDir, "pages", len(written))
	return written, nil
}

func copyStatic(outDir string) error {
	return fs.WalkDir(web.Static, "static", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := web.Static.ReadFile(p)
		if err != nil {
			return err
		}
		return writeFile(filepath.Join(outDir, filepath.FromSlash(p)), data)
	})
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
