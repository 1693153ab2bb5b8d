// Package output stores and presents layout results.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"tflow/config"
	"tflow/flow"
	"tflow/page"
)

const (
	ManifestName        = "manifest.yaml"
	FragmentExt         = ".html"
	DefaultNameTemplate = `{{ printf "%03d" .Index }}-{{ .Name }}`
)

// Values holds variables available for file name template expansion.
type Values struct {
	Context string
	Source  string
	Index   int
	Total   int
	Name    string
	Clone   bool
}

// Options control how fragments are written.
type Options struct {
	NameTemplate  string
	Transliterate bool
	Overwrite     bool
	Manifest      bool
}

// Run describes finished layout to be written.
type Run struct {
	Source  string
	Charset string
	Oracle  string
	Marker  string
	Result  *flow.Result[*page.Box]
}

// Entry is a single container in manifest.
type Entry struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Clone  bool    `yaml:"clone,omitempty"`
}

// Manifest describes written fragments.
type Manifest struct {
	RunID        string    `yaml:"run_id"`
	Created      time.Time `yaml:"created"`
	Source       string    `yaml:"source"`
	Charset      string    `yaml:"charset,omitempty"`
	Oracle       string    `yaml:"oracle"`
	Marker       string    `yaml:"marker,omitempty"`
	Containers   []Entry   `yaml:"containers"`
	Leftover     string    `yaml:"leftover,omitempty"`
	Clones       int       `yaml:"clones"`
	Measurements int       `yaml:"measurements"`
}

// Writer writes content of every laid out container into its own file.
type Writer struct {
	dir  string
	opts Options
	tmpl *template.Template
	log  *zap.Logger
}

// NewWriter prepares writer for destination directory.
func NewWriter(dir string, opts Options, log *zap.Logger) (*Writer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(opts.NameTemplate) == 0 {
		opts.NameTemplate = DefaultNameTemplate
	}
	tmpl, err := template.New("name_template").Funcs(sprig.FuncMap()).Parse(opts.NameTemplate)
	if err != nil {
		return nil, fmt.Errorf("unable to parse file name template: %w", err)
	}
	return &Writer{dir: dir, opts: opts, tmpl: tmpl, log: log.Named("output")}, nil
}

// FileName returns cleaned fragment file name for the values.
func (w *Writer) FileName(v Values) (string, error) {
	buf := new(bytes.Buffer)
	if err := w.tmpl.Execute(buf, v); err != nil {
		return "", fmt.Errorf("unable to expand file name template: %w", err)
	}
	name := strings.TrimSpace(buf.String())
	if w.opts.Transliterate {
		name = slug.Make(name)
	}
	return config.CleanFileName(name) + FragmentExt, nil
}

// Write stores fragments and, when requested, manifest. Returned manifest is
// filled in either case.
func (w *Writer) Write(run Run) (*Manifest, error) {
	res := run.Result
	if res == nil {
		return nil, errors.New("nothing to write")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("unable to generate run ID: %w", err)
	}
	m := &Manifest{
		RunID:        id.String(),
		Created:      time.Now().UTC().Truncate(time.Second),
		Source:       run.Source,
		Charset:      run.Charset,
		Oracle:       run.Oracle,
		Marker:       run.Marker,
		Leftover:     res.Leftover,
		Clones:       res.Clones,
		Measurements: res.Measurements,
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}

	source := strings.TrimSuffix(filepath.Base(run.Source), filepath.Ext(run.Source))
	seen := make(map[string]string, len(res.Containers))
	for i, b := range res.Containers {
		file, err := w.FileName(Values{
			Context: "name_template",
			Source:  source,
			Index:   i + 1,
			Total:   len(res.Containers),
			Name:    b.Name,
			Clone:   b.Generated(),
		})
		if err != nil {
			return nil, err
		}
		if other, ok := seen[file]; ok {
			return nil, fmt.Errorf("containers %q and %q map to the same file %q", other, b.Name, file)
		}
		seen[file] = b.Name

		if err := w.writeFile(file, []byte(res.Fragments[i])); err != nil {
			return nil, err
		}
		m.Containers = append(m.Containers, Entry{Name: b.Name, File: file, Width: b.Width, Height: b.Height, Clone: b.Generated()})
	}

	if w.opts.Manifest {
		data, err := yaml.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("unable to marshal manifest: %w", err)
		}
		if err := w.writeFile(ManifestName, data); err != nil {
			return nil, err
		}
	}

	w.log.Debug("Fragments written", zap.String("dir", w.dir), zap.Int("files", len(m.Containers)), zap.String("run_id", m.RunID))
	return m, nil
}

func (w *Writer) writeFile(name string, data []byte) (err error) {
	path := filepath.Join(w.dir, name)
	if _, err := os.Stat(path); err == nil {
		if !w.opts.Overwrite {
			return fmt.Errorf("output file already exists: %s", path)
		}
		w.log.Warn("Overwriting existing file", zap.String("file", path))
	} else if !os.IsNotExist(err) {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	_, err = f.Write(data)
	return err
}

// Fragment is content of a single container read back.
type Fragment struct {
	Name    string
	File    string
	Content string
}

// ReadFragments reads fragments from directory. When manifest is present it
// defines the order, otherwise fragment files are taken in natural order of
// their names.
func ReadFragments(dir string) ([]Fragment, *Manifest, error) {
	var m *Manifest
	if data, err := os.ReadFile(filepath.Join(dir, ManifestName)); err == nil {
		m = &Manifest{}
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, nil, fmt.Errorf("unable to read manifest: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, nil, err
	}

	var entries []Entry
	if m != nil {
		entries = m.Containers
	} else {
		files, err := filepath.Glob(filepath.Join(dir, "*"+FragmentExt))
		if err != nil {
			return nil, nil, err
		}
		names := make([]string, 0, len(files))
		for _, f := range files {
			names = append(names, filepath.Base(f))
		}
		sort.Sort(natural.StringSlice(names))
		for _, n := range names {
			entries = append(entries, Entry{Name: strings.TrimSuffix(n, FragmentExt), File: n})
		}
	}

	fragments := make([]Fragment, 0, len(entries))
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.File))
		if err != nil {
			return nil, nil, fmt.Errorf("unable to read fragment of %q: %w", e.Name, err)
		}
		fragments = append(fragments, Fragment{Name: e.Name, File: e.File, Content: string(data)})
	}
	return fragments, m, nil
}
