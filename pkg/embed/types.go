package tessera

import (
	"github.com/funvibe/tessera/internal/config"
	"github.com/funvibe/tessera/internal/evaluator"
	"github.com/funvibe/tessera/internal/typesystem"
)

// Value aliases
type Object = evaluator.Object
type Integer = evaluator.Integer
type UInteger = evaluator.UInteger
type Float = evaluator.Float
type Char = evaluator.Char
type Byte = evaluator.Byte
type Boolean = evaluator.Boolean
type List = evaluator.List
type Tuple = evaluator.Tuple
type Function = evaluator.Function
type Param = evaluator.Param
type Body = evaluator.Body
type NativeBody = evaluator.NativeBody
type Algebraic = evaluator.Algebraic
type Alias = evaluator.Alias
type Reference = evaluator.Reference
type Promise = evaluator.Promise

// Runtime aliases
type Interpreter = evaluator.Interpreter
type Scope = evaluator.Scope
type Variable = evaluator.Variable
type Tier = evaluator.Tier
type BodyEvaluator = evaluator.BodyEvaluator
type BodyEvaluatorFunc = evaluator.BodyEvaluatorFunc
type Resolver = evaluator.Resolver
type TypeclassMethod = evaluator.TypeclassMethod
type InstanceMethod = evaluator.InstanceMethod
type Option = evaluator.Option
type RuntimeError = evaluator.RuntimeError
type Config = config.Config

// Type aliases
type Type = typesystem.Type
type TSingle = typesystem.TSingle
type TTuple = typesystem.TTuple
type TFunc = typesystem.TFunc
type TApp = typesystem.TApp
type TRef = typesystem.TRef
type TAlias = typesystem.TAlias
type TUnit = typesystem.TUnit

const (
	ThreadLocal     = evaluator.ThreadLocal
	SharedImmutable = evaluator.SharedImmutable
	SharedMutable   = evaluator.SharedMutable
)

var (
	ErrTypeMismatch            = evaluator.ErrTypeMismatch
	ErrUnboundName             = evaluator.ErrUnboundName
	ErrImmutableAssignment     = evaluator.ErrImmutableAssignment
	ErrUnknownTypeclass        = evaluator.ErrUnknownTypeclass
	ErrInvalidCall             = evaluator.ErrInvalidCall
	ErrReferenceInThreadedCall = evaluator.ErrReferenceInThreadedCall
	ErrPoisonedLock            = evaluator.ErrPoisonedLock
	ErrNonDuplicable           = evaluator.ErrNonDuplicable
	ErrInvalidReference        = evaluator.ErrInvalidReference
	ErrInvalidInstance         = evaluator.ErrInvalidInstance
	ErrPoisonedPromise         = evaluator.ErrPoisonedPromise
)

// Option constructors
var (
	WithEvaluator = evaluator.WithEvaluator
	WithLogger    = evaluator.WithLogger
	WithResolvers = evaluator.WithResolvers
)

// Helpers for building values and types

func Single(name string) TSingle { return typesystem.Single(name) }
func ListOf(elem Type) TApp      { return typesystem.ListOf(elem) }
func Equal(a, b Type) bool       { return typesystem.Equal(a, b) }

func String(s string) *List                         { return evaluator.StringToList(s) }
func ListToString(l *List) string                   { return evaluator.ListToString(l) }
func NewList(elements []Object) *List               { return evaluator.NewList(elements) }
func NewReference(v Object) *Reference              { return evaluator.NewReference(v) }
func NewRecord(fields map[string]Object) *Algebraic { return evaluator.NewRecord(fields) }
func Unit() *Tuple                                  { return evaluator.UnitValue() }
