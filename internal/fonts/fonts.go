package fonts

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// Exts are the font file extensions ScanDir picks up.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate font directories relative to the working directory
// (repo root when run via go run ./cmd/solarsystem, or from cmd/solarsystem itself).
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns paths of all font files under dir relative to dir, with forward slashes.
// A missing dir yields no entries and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range Exts {
			if ext == e {
				rel, err := filepath.Rel(dir, path)
				if err != nil {
					return err
				}
				out = append(out, filepath.ToSlash(rel))
				return nil
			}
		}
		return nil
	})
	return out, err
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// FindFont searches BaseDirs for a font whose relative path contains search (fuzzy: case,
// spaces, dashes and underscores ignored). When several match, one containing "bold" wins,
// since labels are drawn bold.
func FindFont(search string) (fullPath string, err error) {
	norm := normalizeForMatch(search)
	if norm == "" {
		return "", os.ErrNotExist
	}
	var candidates []string
	for _, base := range BaseDirs() {
		list, walkErr := ScanDir(base)
		if walkErr != nil || len(list) == 0 {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				candidates = append(candidates, base+"/"+rel)
			}
		}
	}
	if len(candidates) == 0 {
		return "", os.ErrNotExist
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), "bold") {
			return c, nil
		}
	}
	return candidates[0], nil
}

// Face opens a face of the given pixel size. name is a file path, a family name resolved
// with FindFont, or empty for the built-in Go Bold.
func Face(name string, size float64) (font.Face, error) {
	data := gobold.TTF
	if name != "" {
		path := name
		if _, err := os.Stat(path); err != nil {
			if path, err = FindFont(name); err != nil {
				return nil, err
			}
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
