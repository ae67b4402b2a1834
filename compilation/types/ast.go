package types

// ASTNode is a generic node of a compiler-emitted abstract syntax tree. Only the fields needed to relate node ids to
// source files are modeled; children are reached through Nodes, which source units and contract definitions carry.
type ASTNode struct {
	// ID is the node id, unique within a compilation unit.
	ID int `json:"id"`

	// NodeType describes the kind of node, e.g. "SourceUnit", "ContractDefinition" or "VariableDeclaration".
	NodeType string `json:"nodeType"`

	// Name is the declared name of the node, if it has one.
	Name string `json:"name,omitempty"`

	// Src is the node's source range, "start:length:sourceId".
	Src string `json:"src,omitempty"`

	// Nodes lists the child nodes, if any.
	Nodes []ASTNode `json:"nodes,omitempty"`
}

// Visit calls fn for the node and then recursively for each of its children, depth first.
func (n *ASTNode) Visit(fn func(node *ASTNode)) {
	fn(n)
	for i := range n.Nodes {
		n.Nodes[i].Visit(fn)
	}
}

// CreateAstToFileMapping walks the AST of every source in the build info and returns a mapping of AST node id to the
// name of the source file that declares the node. Sources without an AST contribute nothing.
func CreateAstToFileMapping(info *BuildInfo) map[int]string {
	mapping := make(map[int]string)
	for fileName, source := range info.Output.Sources {
		if source.AST == nil {
			continue
		}
		source.AST.Visit(func(node *ASTNode) {
			mapping[node.ID] = fileName
		})
	}
	return mapping
}
