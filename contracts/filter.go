package contracts

// ContractFilter decides whether a contract, given its declared name and fully qualified name, is selected. A nil
// ContractFilter selects every contract.
type ContractFilter func(contractName string, fullyQualifiedName string) bool

// NewContractFilter creates a filter from include and exclude lists. Entries match either the declared contract name
// or the fully qualified name exactly. When both lists are provided, an included contract is selected even if it is
// also excluded. Returns nil if both lists are empty.
func NewContractFilter(includes []string, excludes []string) ContractFilter {
	included := toSet(includes)
	excluded := toSet(excludes)

	switch {
	case len(included) > 0 && len(excluded) > 0:
		return func(contractName string, fullyQualifiedName string) bool {
			return matches(included, contractName, fullyQualifiedName) || !matches(excluded, contractName, fullyQualifiedName)
		}
	case len(included) > 0:
		return func(contractName string, fullyQualifiedName string) bool {
			return matches(included, contractName, fullyQualifiedName)
		}
	case len(excluded) > 0:
		return func(contractName string, fullyQualifiedName string) bool {
			return !matches(excluded, contractName, fullyQualifiedName)
		}
	default:
		return nil
	}
}

// Accepts applies the filter. A nil filter accepts everything.
func (f ContractFilter) Accepts(contractName string, fullyQualifiedName string) bool {
	return f == nil || f(contractName, fullyQualifiedName)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func matches(set map[string]struct{}, contractName string, fullyQualifiedName string) bool {
	if _, ok := set[contractName]; ok {
		return true
	}
	_, ok := set[fullyQualifiedName]
	return ok
}
