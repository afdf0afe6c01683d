package yang

import "fmt"

// Kind identifies the statement keyword of a Node.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindModule
	KindSubmodule
	KindContainer
	KindList
	KindLeaf
	KindLeafList
	KindChoice
	KindCase
	KindRPC
	KindAction
	KindInput
	KindOutput
	KindAnydata
	KindAnyxml
	KindType
	KindTypedef
	KindEnum
	KindPattern
	KindDescription
	KindDefault
	KindWhen
)

var kindKeywords = [...]string{
	KindUnknown:     "unknown",
	KindModule:      "module",
	KindSubmodule:   "submodule",
	KindContainer:   "container",
	KindList:        "list",
	KindLeaf:        "leaf",
	KindLeafList:    "leaf-list",
	KindChoice:      "choice",
	KindCase:        "case",
	KindRPC:         "rpc",
	KindAction:      "action",
	KindInput:       "input",
	KindOutput:      "output",
	KindAnydata:     "anydata",
	KindAnyxml:      "anyxml",
	KindType:        "type",
	KindTypedef:     "typedef",
	KindEnum:        "enum",
	KindPattern:     "pattern",
	KindDescription: "description",
	KindDefault:     "default",
	KindWhen:        "when",
}

// String returns the YANG keyword for the kind.
func (k Kind) String() string {
	if int(k) < len(kindKeywords) {
		return kindKeywords[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a YANG keyword to its Kind. It returns false for keywords
// that have no representation in a resolved tree.
func ParseKind(keyword string) (Kind, bool) {
	for k, kw := range kindKeywords {
		if Kind(k) != KindUnknown && kw == keyword {
			return Kind(k), true
		}
	}
	return KindUnknown, false
}

// IsOperation reports whether the kind is an rpc or an action.
func (k Kind) IsOperation() bool {
	return k == KindRPC || k == KindAction
}

// IsModule reports whether the kind is a module or submodule root.
func (k Kind) IsModule() bool {
	return k == KindModule || k == KindSubmodule
}

// IsDataDef reports whether the kind defines a node of the data tree.
func (k Kind) IsDataDef() bool {
	switch k {
	case KindContainer, KindList, KindLeaf, KindLeafList,
		KindChoice, KindCase, KindAnydata, KindAnyxml:
		return true
	}
	return false
}

// IsTransparent reports whether the kind exists only in the schema tree and
// never appears in the data encoding (choice and case).
func (k Kind) IsTransparent() bool {
	return k == KindChoice || k == KindCase
}

// Config is the tri-state config-applicability flag of a data node.
type Config uint8

const (
	// ConfigUnset means the flag does not apply (operations, statements).
	ConfigUnset Config = iota
	ConfigTrue
	ConfigFalse
)

func (c Config) String() string {
	switch c {
	case ConfigTrue:
		return "true"
	case ConfigFalse:
		return "false"
	default:
		return "unset"
	}
}
