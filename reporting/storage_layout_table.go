package reporting

import (
	"strconv"

	"github.com/crytic/solinspect/layout"
	"golang.org/x/exp/slices"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Column names of the storage layout tables.
const (
	VariableColumn  = "variable"
	SlotColumn      = "slot"
	OffsetColumn    = "offset"
	TypeColumn      = "type"
	VariablesColumn = "variables"
	SlotsColumn     = "slots"
	ExtendsColumn   = "extends"
)

// SortStorageLayouts sorts the layouts in place by print name.
func SortStorageLayouts(layouts []*layout.ContractStorageLayout) {
	collator := collate.New(language.English)
	slices.SortStableFunc(layouts, func(a, b *layout.ContractStorageLayout) int {
		return collator.CompareString(a.PrintName, b.PrintName)
	})
}

// StorageLayoutTable tabulates one row per state variable. If sourceFiles is set, a column with the declaring file of
// each variable is added.
func StorageLayoutTable(layouts []*layout.ContractStorageLayout, sourceFiles bool) *Table {
	columns := []Column{
		{Name: ContractColumn, Alignment: AlignLeft},
		{Name: VariableColumn, Alignment: AlignLeft},
		{Name: SlotColumn, Alignment: AlignRight},
		{Name: OffsetColumn, Alignment: AlignRight},
		{Name: TypeColumn, Alignment: AlignLeft},
	}
	if sourceFiles {
		columns = append(columns, Column{Name: SourceColumn, Alignment: AlignLeft})
	}
	table := NewTable(columns...)

	for _, contract := range layouts {
		for _, v := range contract.StateVariables {
			row := map[string]string{
				ContractColumn: contract.PrintName,
				VariableColumn: v.Name,
				SlotColumn:     v.Slot,
				OffsetColumn:   strconv.Itoa(v.Offset),
				TypeColumn:     v.Type,
			}
			if sourceFiles {
				row[SourceColumn] = v.SourceFile
			}
			table.AddRow(row)
		}
	}
	return table
}

// StorageLayoutSummaryTable tabulates one row per contract with its variable count, the number of slots its variables
// start in and the longest other layout it extends.
func StorageLayoutSummaryTable(layouts []*layout.ContractStorageLayout) (*Table, error) {
	table := NewTable(
		Column{Name: ContractColumn, Alignment: AlignLeft},
		Column{Name: VariablesColumn, Alignment: AlignRight},
		Column{Name: SlotsColumn, Alignment: AlignRight},
		Column{Name: ExtendsColumn, Alignment: AlignLeft},
	)

	parents := layout.FindLayoutParents(layouts)
	for _, contract := range layouts {
		slots, err := layout.SlotsUsed(contract)
		if err != nil {
			return nil, err
		}
		row := map[string]string{
			ContractColumn:  contract.PrintName,
			VariablesColumn: FormatSize(len(contract.StateVariables)),
			SlotsColumn:     slots.Dec(),
		}
		if parent, ok := parents[contract.UniqueName]; ok {
			row[ExtendsColumn] = parent.PrintName
		}
		table.AddRow(row)
	}
	return table, nil
}
