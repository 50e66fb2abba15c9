package evaluator

import (
	"fmt"
	"strconv"

	"github.com/funvibe/tessera/internal/typesystem"
)

// Integer
type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType             { return INTEGER_OBJ }
func (i *Integer) Inspect() string              { return strconv.FormatInt(i.Value, 10) }
func (i *Integer) RuntimeType() typesystem.Type { return typesystem.Int }
func (i *Integer) Clone() (Object, error)       { return &Integer{Value: i.Value}, nil }

// UInteger
type UInteger struct {
	Value uint64
}

func (u *UInteger) Type() ObjectType             { return UINTEGER_OBJ }
func (u *UInteger) Inspect() string              { return strconv.FormatUint(u.Value, 10) + "u" }
func (u *UInteger) RuntimeType() typesystem.Type { return typesystem.UInt }
func (u *UInteger) Clone() (Object, error)       { return &UInteger{Value: u.Value}, nil }

// Float
type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType             { return FLOAT_OBJ }
func (f *Float) Inspect() string              { return fmt.Sprintf("%g", f.Value) }
func (f *Float) RuntimeType() typesystem.Type { return typesystem.Float }
func (f *Float) Clone() (Object, error)       { return &Float{Value: f.Value}, nil }

// Char represents a character.
type Char struct {
	Value rune
}

func (c *Char) Type() ObjectType             { return CHAR_OBJ }
func (c *Char) Inspect() string              { return fmt.Sprintf("'%c'", c.Value) }
func (c *Char) RuntimeType() typesystem.Type { return typesystem.Char }
func (c *Char) Clone() (Object, error)       { return &Char{Value: c.Value}, nil }

// Byte
type Byte struct {
	Value byte
}

func (b *Byte) Type() ObjectType             { return BYTE_OBJ }
func (b *Byte) Inspect() string              { return fmt.Sprintf("0x%02x", b.Value) }
func (b *Byte) RuntimeType() typesystem.Type { return typesystem.Byte }
func (b *Byte) Clone() (Object, error)       { return &Byte{Value: b.Value}, nil }

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType             { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string              { return strconv.FormatBool(b.Value) }
func (b *Boolean) RuntimeType() typesystem.Type { return typesystem.Bool }
func (b *Boolean) Clone() (Object, error)       { return &Boolean{Value: b.Value}, nil }

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

// NativeBool returns the shared TRUE or FALSE object.
func NativeBool(v bool) *Boolean {
	if v {
		return TRUE
	}
	return FALSE
}
