package layout

import (
	"github.com/crytic/solinspect/compilation/types"
	"github.com/crytic/solinspect/contracts"
	"github.com/crytic/solinspect/logging"
	"github.com/crytic/solinspect/utils"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// StorageVariable describes a state variable's location in storage.
type StorageVariable struct {
	// Name is the variable name.
	Name string

	// Slot is the storage slot as a decimal string.
	Slot string

	// Offset is the byte offset of the variable within its slot.
	Offset int

	// Type is the compiler's type identifier, e.g. "t_uint256".
	Type string

	// SourceFile is the file declaring the variable. It is only resolved on request and may be empty.
	SourceFile string
}

// ContractStorageLayout describes the storage layout of a contract.
type ContractStorageLayout struct {
	// UniqueName is the "Name:path/to/File.sol" form which identifies the contract.
	UniqueName string

	// PrintName is the contract name, or UniqueName if the name is not unique within the project.
	PrintName string

	// StateVariables lists the state variables in the order the compiler laid them out.
	StateVariables []StorageVariable
}

// ExtractContractLayouts reads the storage layout of every given contract from the build-info documents it belongs
// to. If sourceFiles is set, each variable is annotated with its declaring file, which requires the AST output. If a
// contract is missing from the compiler output of a document it belongs to, or was compiled without storage layout
// output, no result is returned and the error is types.ErrBuildInconsistency.
func ExtractContractLayouts(documents []types.BuildInfoDocument, descriptions []contracts.ContractDescription, sourceFiles bool) ([]*ContractStorageLayout, error) {
	logger := logging.GlobalLogger.NewSubLogger(logging.SERVICE_KEY, logging.ANALYSIS_SERVICE)

	var layouts []*ContractStorageLayout
	for _, document := range documents {
		var astMapping map[int]string
		if sourceFiles {
			astMapping = types.CreateAstToFileMapping(document.Info)
		}

		for _, description := range descriptions {
			if !description.BelongsTo(document.FileName()) {
				continue
			}

			output, ok := document.Info.Contract(description.SourceName, description.ContractName)
			if !ok {
				logger.Debug("Contract ", description.FullyQualifiedName(), " is missing from build info ", document.Path)
				return nil, errors.WithStack(types.ErrBuildInconsistency)
			}
			if output.StorageLayout == nil {
				return nil, errors.Wrapf(types.ErrBuildInconsistency, "%s was compiled without storage layout output", description.FullyQualifiedName())
			}

			layout := &ContractStorageLayout{
				UniqueName:     description.UniqueName(),
				PrintName:      description.PrintName(),
				StateVariables: make([]StorageVariable, 0, len(output.StorageLayout.Storage)),
			}
			for _, entry := range output.StorageLayout.Storage {
				if _, err := uint256.FromDecimal(entry.Slot); err != nil {
					return nil, errors.Wrapf(err, "invalid slot %q of %s.%s", entry.Slot, description.ContractName, entry.Label)
				}
				layout.StateVariables = append(layout.StateVariables, StorageVariable{
					Name:       entry.Label,
					Slot:       entry.Slot,
					Offset:     entry.Offset,
					Type:       entry.Type,
					SourceFile: astMapping[entry.AstID],
				})
			}
			layouts = append(layouts, layout)
		}
	}
	return layouts, nil
}

// IsInheritedStorageLayout indicates whether the child layout starts with the parent layout: the child has at least as
// many variables and the parent's variables match the child's leading variables by name, slot, offset and type.
func IsInheritedStorageLayout(parent *ContractStorageLayout, child *ContractStorageLayout) bool {
	if len(child.StateVariables) < len(parent.StateVariables) {
		return false
	}
	for i, p := range parent.StateVariables {
		c := child.StateVariables[i]
		if p.Name != c.Name || p.Slot != c.Slot || p.Offset != c.Offset || p.Type != c.Type {
			return false
		}
	}
	return true
}

// SlotsUsed returns one past the highest slot any variable of the layout starts in, or zero for a layout without
// variables. Variables spanning several slots are counted by their first slot only.
func SlotsUsed(layout *ContractStorageLayout) (*uint256.Int, error) {
	used := uint256.NewInt(0)
	for _, v := range layout.StateVariables {
		slot, err := uint256.FromDecimal(v.Slot)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid slot %q of %s", v.Slot, v.Name)
		}
		next, overflow := new(uint256.Int).AddOverflow(slot, uint256.NewInt(1))
		if overflow {
			return nil, errors.Errorf("slot %s of %s is the last storage slot", v.Slot, v.Name)
		}
		if next.Gt(used) {
			used = next
		}
	}
	return used, nil
}

// FindLayoutParents maps the unique name of each layout which extends another layout of the list to the longest
// layout it extends. Only non-empty parents which declare fewer variables than the child are considered.
func FindLayoutParents(layouts []*ContractStorageLayout) map[string]*ContractStorageLayout {
	candidates := utils.SliceWhere(layouts, func(l *ContractStorageLayout) bool { return len(l.StateVariables) > 0 })
	parents := make(map[string]*ContractStorageLayout)
	for _, child := range layouts {
		var best *ContractStorageLayout
		for _, parent := range candidates {
			if len(parent.StateVariables) >= len(child.StateVariables) {
				continue
			}
			if best != nil && len(best.StateVariables) >= len(parent.StateVariables) {
				continue
			}
			if IsInheritedStorageLayout(parent, child) {
				best = parent
			}
		}
		if best != nil {
			parents[child.UniqueName] = best
		}
	}
	return parents
}
