// Package prompts loads and formats the prompt templates the solver sends to
// the model.
//
// Templates are plain text files with {name} placeholders. A template
// directory maps filename stems to template content; the solver requires at
// least "system" and "user_turn". Built-in defaults ship embedded so the
// harness runs without any template directory.
package prompts

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

//go:embed templates/*.txt
var defaultTemplates embed.FS

// Required lists the template names every solver session needs.
var Required = []string{"system", "user_turn"}

// placeholderPattern matches {name} placeholders. Only identifier-shaped
// names count; stray braces pass through untouched.
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Defaults returns the embedded default templates.
func Defaults() map[string]string {
	templates, err := loadFS(defaultTemplates, "templates")
	if err != nil {
		// Embedded files are fixed at build time; failure here is a broken build.
		panic(fmt.Sprintf("prompts: embedded templates unreadable: %v", err))
	}
	return templates
}

// LoadDir loads every *.txt file in dir, keyed by filename stem.
func LoadDir(dir string) (map[string]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("template directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template path %q is not a directory", dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("listing templates in %q: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no template files found in %q", dir)
	}

	templates := make(map[string]string, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading template %q: %w", path, err)
		}
		name := strings.TrimSuffix(filepath.Base(path), ".txt")
		templates[name] = string(content)
	}
	return templates, nil
}

// Format substitutes vars into a template's {name} placeholders. A
// placeholder with no binding is an error; unused vars are fine.
func Format(template string, vars map[string]string) (string, error) {
	var missing string
	formatted := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := vars[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return match
		}
		return value
	})
	if missing != "" {
		return "", fmt.Errorf("missing required template variable: %s", missing)
	}
	return formatted, nil
}

// Validate reports which of the required variable names a template never
// references. An empty result means the template is usable.
func Validate(template string, required []string) []string {
	present := make(map[string]bool)
	for _, match := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		present[match[1]] = true
	}

	var missing []string
	for _, name := range required {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// CheckRequired verifies the template set covers every required name.
func CheckRequired(templates map[string]string) error {
	var missing []string
	for _, name := range Required {
		if _, ok := templates[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required templates: %s", strings.Join(missing, ", "))
	}
	return nil
}

func loadFS(fsys embed.FS, dir string) (map[string]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	templates := make(map[string]string, len(entries))
	for _, entry := range entries {
		content, err := fsys.ReadFile(dir + "/" + entry.Name())
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(entry.Name(), ".txt")
		templates[name] = string(content)
	}
	return templates, nil
}
