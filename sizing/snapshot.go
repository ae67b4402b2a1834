package sizing

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/crytic/solinspect/utils"
	"github.com/pkg/errors"
)

// StoredSourceSize describes the stored sizes of a single contributor.
type StoredSourceSize struct {
	CodeSize int `json:"codeSize"`
	InitSize int `json:"initSize"`
}

// StoredCodeMapping describes the stored sizes of a single contract.
type StoredCodeMapping struct {
	CodeSize int                         `json:"codeSize"`
	InitSize int                         `json:"initSize"`
	Sources  map[string]StoredSourceSize `json:"sources"`
}

// StoredCodeMappings maps contract unique names to the sizes recorded by a previous run.
type StoredCodeMappings map[string]StoredCodeMapping

// NewStoredCodeMappings converts the results of a run into their stored form. Contracts without any contributors are
// skipped.
func NewStoredCodeMappings(mappings []*ContractCodeMapping) StoredCodeMappings {
	stored := make(StoredCodeMappings, len(mappings))
	for _, m := range mappings {
		if len(m.Sources) == 0 {
			continue
		}
		sources := make(map[string]StoredSourceSize, len(m.Sources))
		for _, s := range m.Sources {
			sources[s.Name] = StoredSourceSize{CodeSize: s.CodeSize, InitSize: s.InitSize}
		}
		stored[m.UniqueName] = StoredCodeMapping{
			CodeSize: m.CodeSize,
			InitSize: m.InitSize,
			Sources:  sources,
		}
	}
	return stored
}

// PreviousCodeSize returns the stored code size of a contract, or false if the contract was not stored.
func (s StoredCodeMappings) PreviousCodeSize(uniqueName string) (int, bool) {
	m, ok := s[uniqueName]
	return m.CodeSize, ok
}

// PreviousSourceCodeSize returns the stored code size of a contributor of a contract, or false if it was not stored.
func (s StoredCodeMappings) PreviousSourceCodeSize(uniqueName string, sourceName string) (int, bool) {
	m, ok := s[uniqueName]
	if !ok {
		return 0, false
	}
	source, ok := m.Sources[sourceName]
	return source.CodeSize, ok
}

// SnapshotStore persists the results of a run so the next run can report size differences.
type SnapshotStore interface {
	// Load returns the stored results. A store which was never saved returns an empty mapping.
	Load() (StoredCodeMappings, error)

	// Save replaces the stored results with the given ones.
	Save(mappings []*ContractCodeMapping) error
}

// JSONSnapshotStore stores results as a single JSON document.
type JSONSnapshotStore struct {
	// Path is the path of the JSON document.
	Path string
}

// NewJSONSnapshotStore returns a JSONSnapshotStore for the given path.
func NewJSONSnapshotStore(path string) *JSONSnapshotStore {
	return &JSONSnapshotStore{Path: path}
}

// Load reads the stored results. A missing document yields an empty mapping.
func (s *JSONSnapshotStore) Load() (StoredCodeMappings, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return StoredCodeMappings{}, nil
		}
		return nil, errors.WithStack(err)
	}

	var stored StoredCodeMappings
	if err = json.Unmarshal(b, &stored); err != nil {
		return nil, errors.Wrapf(err, "could not parse size snapshot %s", s.Path)
	}
	if stored == nil {
		stored = StoredCodeMappings{}
	}
	return stored, nil
}

// Save overwrites the document with the given results.
func (s *JSONSnapshotStore) Save(mappings []*ContractCodeMapping) error {
	b, err := json.Marshal(NewStoredCodeMappings(mappings))
	if err != nil {
		return errors.WithStack(err)
	}
	if err = utils.MakeDirectory(filepath.Dir(s.Path)); err != nil {
		return err
	}
	return errors.WithStack(os.WriteFile(s.Path, b, 0644))
}

// Supported snapshot formats.
const (
	SnapshotFormatJSON = "json"
	SnapshotFormatBolt = "bolt"
)

// NewSnapshotStore creates the SnapshotStore for the given format.
func NewSnapshotStore(format string, path string) (SnapshotStore, error) {
	switch format {
	case SnapshotFormatJSON, "":
		return NewJSONSnapshotStore(path), nil
	case SnapshotFormatBolt:
		return NewBoltSnapshotStore(path), nil
	default:
		return nil, errors.Errorf("unsupported snapshot format '%s'", format)
	}
}
