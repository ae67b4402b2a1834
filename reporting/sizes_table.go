package reporting

import (
	"strings"

	"github.com/crytic/solinspect/logging/colors"
	"github.com/crytic/solinspect/sizing"
	"golang.org/x/exp/slices"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Column names of the sizes table.
const (
	ContractColumn        = "contract"
	SourceColumn          = "source"
	CodePercentageColumn  = "code%"
	CodeColumn            = "code"
	CodeDeltaColumn       = "±code"
	InitColumn            = "init"
	CompilerVersionColumn = "solc"
)

// totalLabel labels the total row of a contract in verbose mode.
const totalLabel = "=== Total ==="

// SizesTableOptions describes how contract sizes are tabulated.
type SizesTableOptions struct {
	// MinSize skips contracts whose code and init sizes add up to less than this size.
	MinSize int

	// MaxContractSize is the size above which code sizes are highlighted. Zero disables highlighting.
	MaxContractSize int

	// Verbose adds a row per source contribution, followed by a total row per contract.
	Verbose bool

	// Previous holds the sizes of a previous run. If non-nil, a delta column is added.
	Previous sizing.StoredCodeMappings

	// OnlyModified skips contracts without any size difference to Previous.
	OnlyModified bool

	// ShowMetadata adds a column with the compiler version and bytecode hash kind recorded in the contract metadata.
	ShowMetadata bool
}

// SortCodeMappings sorts the mappings in place, by print name if alnum is set, otherwise ascending by code size with
// equal sizes ordered by print name.
func SortCodeMappings(mappings []*sizing.ContractCodeMapping, alnum bool) {
	collator := collate.New(language.English)
	slices.SortStableFunc(mappings, func(a, b *sizing.ContractCodeMapping) int {
		if !alnum && a.CodeSize != b.CodeSize {
			return a.CodeSize - b.CodeSize
		}
		return collator.CompareString(a.PrintName, b.PrintName)
	})
}

// SizesTable tabulates contract sizes in the order given.
func SizesTable(mappings []*sizing.ContractCodeMapping, options SizesTableOptions) *Table {
	columns := []Column{{Name: ContractColumn, Alignment: AlignLeft}}
	if options.Verbose {
		columns = append(columns, Column{Name: SourceColumn, Alignment: AlignLeft}, Column{Name: CodePercentageColumn, Alignment: AlignRight})
	}
	columns = append(columns, Column{Name: CodeColumn, Alignment: AlignRight})
	showDiff := options.Previous != nil
	if showDiff {
		columns = append(columns, Column{Name: CodeDeltaColumn, Alignment: AlignRight})
	}
	columns = append(columns, Column{Name: InitColumn, Alignment: AlignRight})
	if options.ShowMetadata {
		columns = append(columns, Column{Name: CompilerVersionColumn, Alignment: AlignLeft})
	}
	table := NewTable(columns...)
	onlyDiff := showDiff && options.OnlyModified

	for _, c := range mappings {
		if options.MinSize > c.CodeSize+c.InitSize {
			continue
		}

		// Sizes missing from the previous run count as zero.
		hasDelta := false
		addDelta := func(row map[string]string, code int, previous int) map[string]string {
			if !showDiff {
				return row
			}
			if delta, ok := FormatDelta(code, previous); ok {
				row[CodeDeltaColumn] = delta
				hasDelta = true
			}
			return row
		}

		var rows []map[string]string
		if options.Verbose {
			for _, source := range c.Sources {
				name := source.Name
				if strings.HasPrefix(name, "#") {
					name = colors.Muted(name)
				}
				row := map[string]string{
					ContractColumn:       c.PrintName,
					SourceColumn:         name,
					CodePercentageColumn: FormatPercentage(source.CodeSize, c.CodeSize),
					CodeColumn:           FormatSize(source.CodeSize),
					InitColumn:           FormatSize(source.InitSize),
				}
				previous, _ := options.Previous.PreviousSourceCodeSize(c.UniqueName, source.Name)
				rows = append(rows, addDelta(row, source.CodeSize, previous))
			}
		}

		row := map[string]string{
			ContractColumn: c.PrintName,
			CodeColumn:     ColorSize(c.CodeSize, options.MaxContractSize),
			InitColumn:     FormatSize(c.InitSize),
		}
		if options.Verbose {
			if len(c.Sources) > 0 {
				row[SourceColumn] = colors.Bold(totalLabel)
			}
			row[CodeColumn] = colors.Bold(row[CodeColumn])
			row[InitColumn] = colors.Bold(row[InitColumn])
		}
		if options.ShowMetadata {
			row[CompilerVersionColumn] = compilerVersionCell(c)
		}
		previous, _ := options.Previous.PreviousCodeSize(c.UniqueName)
		rows = append(rows, addDelta(row, c.CodeSize, previous))

		if !onlyDiff || hasDelta {
			if options.Verbose && table.Len() > 0 {
				table.AddRow(nil)
			}
			table.AddRows(rows)
		}
	}
	return table
}

// compilerVersionCell describes the compiler version and bytecode hash kind of a contract.
func compilerVersionCell(c *sizing.ContractCodeMapping) string {
	var parts []string
	if c.CompilerVersion != nil {
		parts = append(parts, c.CompilerVersion.String())
	}
	if kind := c.BytecodeHashKind(); kind != "" {
		parts = append(parts, kind)
	}
	return strings.Join(parts, " ")
}
