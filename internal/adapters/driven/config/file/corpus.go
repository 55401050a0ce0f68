package file

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/semdex/internal/core/domain"
)

// CorpusFileName is the default topic file inside the semdex directory.
const CorpusFileName = "corpus.yaml"

// corpusHeader is written above a generated topic file.
const corpusHeader = `# semdex corpus topics.
#
# searches: each query is sent to the Wikipedia search endpoint and the top
#           count results are fetched. The query becomes the category.
# pages:    exact page titles. A disambiguation page falls back to its
#           first listed option.
`

// CorpusFile reads and writes corpus topic lists as YAML.
type CorpusFile struct {
	path string
}

// NewCorpusFile returns a CorpusFile at path. If path is empty, defaults to
// ~/.semdex/corpus.yaml. No I/O happens until Load or Write.
func NewCorpusFile(path string) (*CorpusFile, error) {
	if path == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, CorpusFileName)
	}
	return &CorpusFile{path: path}, nil
}

// Path returns the topic file path.
func (f *CorpusFile) Path() string {
	return f.path
}

// Exists reports whether the topic file is present.
func (f *CorpusFile) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Load parses and validates the topic file. Unknown keys are rejected so a
// misspelt section does not silently produce an empty corpus.
func (f *CorpusFile) Load() (domain.Corpus, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Corpus{}, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, f.path)
		}
		return domain.Corpus{}, fmt.Errorf("reading corpus: %w", err)
	}
	return ParseCorpus(bytes.NewReader(data))
}

// ParseCorpus decodes a YAML topic list from r.
func ParseCorpus(r io.Reader) (domain.Corpus, error) {
	var corpus domain.Corpus
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&corpus); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Corpus{}, fmt.Errorf("%w: corpus file is empty", domain.ErrInvalidInput)
		}
		return domain.Corpus{}, fmt.Errorf("%w: parsing corpus: %w", domain.ErrInvalidInput, err)
	}
	if err := corpus.Validate(); err != nil {
		return domain.Corpus{}, err
	}
	return corpus, nil
}

// Write stores corpus at the file path, creating parent directories.
// An existing file is only replaced when overwrite is set.
func (f *CorpusFile) Write(corpus domain.Corpus, overwrite bool) error {
	if err := corpus.Validate(); err != nil {
		return err
	}
	if !overwrite && f.Exists() {
		return fmt.Errorf("corpus file %s already exists", f.path)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("creating corpus directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(corpusHeader)
	if err := EncodeCorpus(&buf, corpus); err != nil {
		return err
	}
	return os.WriteFile(f.path, buf.Bytes(), 0600)
}

// EncodeCorpus writes corpus to w as YAML.
func EncodeCorpus(w io.Writer, corpus domain.Corpus) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(corpus); err != nil {
		return fmt.Errorf("encoding corpus: %w", err)
	}
	return enc.Close()
}
