package parser

import "testing"

func TestNodeNames(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		typ     string
		subtype string
	}{
		{"scope start", Node{Type: TypeScopeStart, Subtype: Subtype(ScopeThenNot)}, "ScopeStart", "ThenNot"},
		{"scope end", Node{Type: TypeScopeEnd, Subtype: Subtype(ScopeTest)}, "ScopeEnd", "Test"},
		{"module", Node{Type: TypeModule, Subtype: Subtype(ModuleOutput)}, "Module", "Output"},
		{"literal", Node{Type: TypeLiteral, Subtype: Subtype(LiteralString)}, "Literal", "String"},
		{"expression", Node{Type: TypeExpression, Subtype: Subtype(ExpressionDivide)}, "Expression", "Divide"},
		{"identification", Node{Type: TypeIdentification, Subtype: 0b10110}, "Identification", "ExclamationMark Initialization Label"},
		{"invalid identification", Node{Type: TypeIdentification}, "Identification", "Invalid"},
		{"qualifier", Node{Type: TypeQualifier}, "Qualifier", ""},
		{"modifier", Node{IsChild: true, Type: Type(ChildModifier), Subtype: Subtype(ModifierArrayBound)}, "Modifier", "ArrayBound"},
		{"lock", Node{IsChild: true, Type: Type(ChildLock), Subtype: Subtype(LockReturnScopeEnd)}, "Lock", "ReturnScopeEnd"},
		{"unknown child", Node{IsChild: true, Type: Type(7)}, "Unknown", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.TypeName(); got != tt.typ {
				t.Errorf("TypeName() = %q, want %q", got, tt.typ)
			}
			if got := tt.node.SubtypeName(); got != tt.subtype {
				t.Errorf("SubtypeName() = %q, want %q", got, tt.subtype)
			}
		})
	}
}

func TestUnknownEnumNames(t *testing.T) {
	tests := []struct {
		name string
		got  string
	}{
		{"Type", Type(99).String()},
		{"ScopeKind", ScopeKind(99).String()},
		{"ModifierKind", ModifierKind(99).String()},
		{"LockKind", LockKind(0).String()},
		{"Outcome", Outcome(5).String()},
	}

	for _, tt := range tests {
		if tt.got != "Unknown" {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, "Unknown")
		}
	}
}

func TestChildTypeOfTopLevelNode(t *testing.T) {
	n := Node{Type: TypeModule}
	if got := n.ChildType(); got != ChildNo {
		t.Errorf("ChildType() = %v, want No", got)
	}
}
