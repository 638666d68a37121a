package parser

import "fmt"

// Identification subtypes pack three fields:
//
//	bits 0-1  command
//	bit  2    declaration kind
//	bits 3-4  scoped kind, starting at 1 so a zero subtype is never valid
const (
	commandMask      = 0b11
	declarationShift = 2
	declarationMask  = 0b1 << declarationShift
	scopedShift      = 3
	scopedMask       = 0b11 << scopedShift
	identifierMask   = commandMask | declarationMask | scopedMask
)

type Command uint64

const (
	CommandHash            Command = 0b00
	CommandAt              Command = 0b01
	CommandExclamationMark Command = 0b10
)

var commandNames = map[Command]string{
	CommandHash:            "Hash",
	CommandAt:              "At",
	CommandExclamationMark: "ExclamationMark",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "Unknown"
}

type DeclarationKind uint64

const (
	Declaration DeclarationKind = iota
	Initialization
)

var declarationKindNames = map[DeclarationKind]string{
	Declaration:    "Declaration",
	Initialization: "Initialization",
}

func (k DeclarationKind) String() string {
	if name, ok := declarationKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type ScopedKind uint64

const (
	ScopedInvalid ScopedKind = iota
	ScopedNo
	ScopedLabel
	ScopedLabelParameterized
)

var scopedKindNames = map[ScopedKind]string{
	ScopedInvalid:            "Invalid",
	ScopedNo:                 "No",
	ScopedLabel:              "Label",
	ScopedLabelParameterized: "LabelParameterized",
}

func (k ScopedKind) String() string {
	if name, ok := scopedKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Identification struct {
	Command     Command
	Declaration DeclarationKind
	Scoped      ScopedKind
}

func (id Identification) String() string {
	return fmt.Sprintf("%s %s %s", id.Command, id.Declaration, id.Scoped)
}

func (id Identification) Validate() error {
	if id.Command > CommandExclamationMark {
		return fmt.Errorf("%w: %d", ErrInvalidCommand, id.Command)
	}
	if id.Declaration > Initialization {
		return fmt.Errorf("%w: %d", ErrInvalidDeclaration, id.Declaration)
	}
	if id.Scoped == ScopedInvalid || id.Scoped > ScopedLabelParameterized {
		return fmt.Errorf("%w: %d", ErrInvalidScoped, id.Scoped)
	}
	return nil
}

func (id Identification) Encode() (Subtype, error) {
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return Subtype(id.Command) |
		Subtype(id.Declaration)<<declarationShift |
		Subtype(id.Scoped)<<scopedShift, nil
}

func DecodeCommand(s Subtype) (Command, error) {
	c := Command(s & commandMask)
	if c > CommandExclamationMark {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCommand, c)
	}
	return c, nil
}

func DecodeDeclaration(s Subtype) DeclarationKind {
	return DeclarationKind(s&declarationMask) >> declarationShift
}

func DecodeScoped(s Subtype) (ScopedKind, error) {
	k := ScopedKind(s&scopedMask) >> scopedShift
	if k == ScopedInvalid {
		return 0, ErrInvalidScoped
	}
	return k, nil
}

// DecodeIdentification splits s into its three fields, rejecting the
// reserved command value, a zero scoped kind and any stray high bits.
func DecodeIdentification(s Subtype) (Identification, error) {
	if s&^identifierMask != 0 {
		return Identification{}, fmt.Errorf("%w: stray bits in %#x", ErrInvalidIdentification, uint64(s))
	}
	cmd, err := DecodeCommand(s)
	if err != nil {
		return Identification{}, err
	}
	scoped, err := DecodeScoped(s)
	if err != nil {
		return Identification{}, err
	}
	return Identification{
		Command:     cmd,
		Declaration: DecodeDeclaration(s),
		Scoped:      scoped,
	}, nil
}
