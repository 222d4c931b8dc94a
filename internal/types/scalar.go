package types

import "strconv"

// Int is CEL's signed 64-bit integer value.
type Int int64

func (Int) Kind() Kind          { return KindInt }
func (v Int) String() string    { return strconv.FormatInt(int64(v), 10) }
func (Int) CELType() *TypeValue { return NewType(KindInt) }

// Uint is CEL's unsigned 64-bit integer value.
type Uint uint64

func (Uint) Kind() Kind          { return KindUint }
func (v Uint) String() string    { return strconv.FormatUint(uint64(v), 10) }
func (Uint) CELType() *TypeValue { return NewType(KindUint) }

// Double is CEL's IEEE-754 binary64 value.
type Double float64

func (Double) Kind() Kind       { return KindDouble }
func (v Double) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (Double) CELType() *TypeValue { return NewType(KindDouble) }

// Bool is CEL's boolean value.
type Bool bool

func (Bool) Kind() Kind       { return KindBool }
func (v Bool) String() string { return strconv.FormatBool(bool(v)) }
func (Bool) CELType() *TypeValue { return NewType(KindBool) }

// Null is CEL's single null value.
type Null struct{}

func (Null) Kind() Kind          { return KindNull }
func (Null) String() string      { return "null" }
func (Null) CELType() *TypeValue { return NewType(KindNull) }

// NullValue is the singleton Null instance, analogous to the teacher's
// NilValue singleton in internal/interp/runtime/primitives.go.
var NullValue = Null{}
