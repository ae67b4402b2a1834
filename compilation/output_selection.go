package compilation

import (
	"github.com/pkg/errors"
)

// SizesOutputSelections lists the per-contract compiler outputs required to attribute bytecode to source files.
var SizesOutputSelections = []string{
	"evm.bytecode.object",
	"evm.bytecode.sourceMap",
	"evm.bytecode.generatedSources",
	"evm.deployedBytecode.object",
	"evm.deployedBytecode.sourceMap",
	"evm.deployedBytecode.generatedSources",
}

// StorageLayoutOutputSelections lists the per-contract compiler outputs required to extract storage layouts. The
// storage layout report additionally needs the per-file AST to resolve declaring source files.
var StorageLayoutOutputSelections = []string{
	"storageLayout",
}

// AddOutputSelections ensures that settings.outputSelection["*"][section] contains every provided selection, creating
// any missing levels along the way. Existing selections are kept in order and new ones are appended, so repeated
// calls do not modify the settings further.
func AddOutputSelections(settings map[string]any, section string, selections []string) error {
	outputSelection, err := childObject(settings, "outputSelection")
	if err != nil {
		return err
	}
	fileSelection, err := childObject(outputSelection, "*")
	if err != nil {
		return err
	}

	var sectionSelection []any
	switch existing := fileSelection[section].(type) {
	case nil:
	case []any:
		sectionSelection = existing
	case []string:
		for _, s := range existing {
			sectionSelection = append(sectionSelection, s)
		}
	default:
		return errors.Errorf("outputSelection[\"*\"][%q] is not a list", section)
	}

	for _, selection := range selections {
		if !containsSelection(sectionSelection, selection) {
			sectionSelection = append(sectionSelection, selection)
		}
	}
	if sectionSelection == nil {
		sectionSelection = []any{}
	}
	fileSelection[section] = sectionSelection
	return nil
}

// ConfigureCompilerSettings adds the given selections for every contract of every file. If ast is set, the per-file
// "ast" output is selected as well.
func ConfigureCompilerSettings(settings map[string]any, selections []string, ast bool) error {
	if err := AddOutputSelections(settings, "*", selections); err != nil {
		return err
	}
	if ast {
		return AddOutputSelections(settings, "", []string{"ast"})
	}
	return nil
}

// ConfigureStandardJSONInput patches the settings of a compiler standard JSON input document so its output carries
// everything both reports need.
func ConfigureStandardJSONInput(input map[string]any) error {
	settings, err := childObject(input, "settings")
	if err != nil {
		return err
	}
	if err = ConfigureCompilerSettings(settings, SizesOutputSelections, false); err != nil {
		return err
	}
	return ConfigureCompilerSettings(settings, StorageLayoutOutputSelections, true)
}

// childObject returns parent[key] as a JSON object, creating it if it is absent.
func childObject(parent map[string]any, key string) (map[string]any, error) {
	switch child := parent[key].(type) {
	case nil:
		created := make(map[string]any)
		parent[key] = created
		return created, nil
	case map[string]any:
		return child, nil
	default:
		return nil, errors.Errorf("%q is not an object", key)
	}
}

// containsSelection checks whether a selection list already contains the given selection.
func containsSelection(selections []any, selection string) bool {
	for _, s := range selections {
		if s == selection {
			return true
		}
	}
	return false
}
