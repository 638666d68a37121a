package parser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dhamidi/scopec/lang/lexer"
)

func TestIdentificationRoundTrip(t *testing.T) {
	for _, cmd := range []Command{CommandHash, CommandAt, CommandExclamationMark} {
		for _, decl := range []DeclarationKind{Declaration, Initialization} {
			for _, scoped := range []ScopedKind{ScopedNo, ScopedLabel, ScopedLabelParameterized} {
				id := Identification{Command: cmd, Declaration: decl, Scoped: scoped}
				t.Run(id.String(), func(t *testing.T) {
					s, err := id.Encode()
					if err != nil {
						t.Fatalf("Encode() error: %v", err)
					}

					gotCmd, err := DecodeCommand(s)
					if err != nil || gotCmd != cmd {
						t.Errorf("DecodeCommand = %v, %v, want %v", gotCmd, err, cmd)
					}
					if got := DecodeDeclaration(s); got != decl {
						t.Errorf("DecodeDeclaration = %v, want %v", got, decl)
					}
					gotScoped, err := DecodeScoped(s)
					if err != nil || gotScoped != scoped {
						t.Errorf("DecodeScoped = %v, %v, want %v", gotScoped, err, scoped)
					}

					got, err := DecodeIdentification(s)
					if err != nil {
						t.Fatalf("DecodeIdentification error: %v", err)
					}
					if got != id {
						t.Errorf("got %v, want %v", got, id)
					}
				})
			}
		}
	}
}

func TestIdentificationBitLayout(t *testing.T) {
	tests := []struct {
		id   Identification
		want Subtype
	}{
		{Identification{CommandHash, Declaration, ScopedNo}, 0b01000},
		{Identification{CommandAt, Declaration, ScopedNo}, 0b01001},
		{Identification{CommandExclamationMark, Initialization, ScopedLabel}, 0b10110},
		{Identification{CommandAt, Initialization, ScopedLabelParameterized}, 0b11101},
	}

	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			got, err := tt.id.Encode()
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Encode() = %#b, want %#b", got, tt.want)
			}
		})
	}
}

func TestDecodeIdentificationRejects(t *testing.T) {
	tests := []struct {
		subtype Subtype
		want    error
	}{
		{0, ErrInvalidScoped},
		{0b00100, ErrInvalidScoped},
		{0b01011, ErrInvalidCommand},
		{0b101000, ErrInvalidIdentification},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%#b", tt.subtype), func(t *testing.T) {
			_, err := DecodeIdentification(tt.subtype)
			if !errors.Is(err, tt.want) {
				t.Errorf("DecodeIdentification(%#b) = %v, want %v", tt.subtype, err, tt.want)
			}
		})
	}
}

func TestEncodeRejectsInvalidFields(t *testing.T) {
	tests := []struct {
		id   Identification
		want error
	}{
		{Identification{CommandHash, Declaration, ScopedInvalid}, ErrInvalidScoped},
		{Identification{Command(3), Declaration, ScopedNo}, ErrInvalidCommand},
		{Identification{CommandAt, DeclarationKind(2), ScopedNo}, ErrInvalidDeclaration},
		{Identification{CommandAt, Declaration, ScopedKind(4)}, ErrInvalidScoped},
	}

	for _, tt := range tests {
		if _, err := tt.id.Encode(); !errors.Is(err, tt.want) {
			t.Errorf("Encode(%+v) = %v, want %v", tt.id, err, tt.want)
		}
	}
}

func TestLiteralKindsMatchTokenSubtypes(t *testing.T) {
	tests := []struct {
		kind    LiteralKind
		subtype lexer.Subtype
	}{
		{LiteralNumber, lexer.SubtypeLiteralNumber},
		{LiteralCharacter, lexer.SubtypeLiteralCharacter},
		{LiteralString, lexer.SubtypeLiteralString},
	}

	for _, tt := range tests {
		if uint64(tt.kind) != uint64(tt.subtype) {
			t.Errorf("%v = %d, token subtype %v = %d", tt.kind, tt.kind, tt.subtype, tt.subtype)
		}
	}
}
