package lexer

// Kind is the token type.
type Kind int

const (
	If Kind = iota
	Then
	Else
	While
	Do
	Input
	Assign
	Write
	Begin
	End
	LPar
	RPar
	Id
	Num
	Add
	Sub
	Mul
	Div
	Semicolon

	kindCount
)

var kindNames = [kindCount]string{
	"If", "Then", "Else", "While", "Do", "Input", "Assign", "Write", "Begin", "End",
	"LPar", "RPar", "Id", "Num", "Add", "Sub", "Mul", "Div", "Semicolon",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Kind(?)"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// Kinds returns all defined kinds in declaration order.
func Kinds() []Kind {
	res := make([]Kind, kindCount)
	for i := range res {
		res[i] = Kind(i)
	}
	return res
}
