package js_ast

import (
	"github.com/lucab/oxc/internal/logger"
)

// Every node covers the half-open byte range [Loc.Start, EndLoc.Start) of
// the source it was parsed from. EndLoc is the first byte after the last
// token the node consumed, so slicing the source with a node's range
// reproduces exactly the text of that node. Template element ranges are the
// one deliberate exception: they exclude the "`", "${" and "}" delimiters.

type L int

const (
	LLowest L = iota
	LComma
	LSpread
	LYield
	LAssign
	LConditional
	LNullishCoalescing
	LLogicalOr
	LLogicalAnd
	LBitwiseOr
	LBitwiseXor
	LBitwiseAnd
	LEquals
	LCompare
	LShift
	LAdd
	LMultiply
	LExponentiation
	LPrefix
	LPostfix
	LNew
	LCall
	LMember
)

type OpCode int

func (op OpCode) IsPrefix() bool {
	return op < UnOpPostDec
}

func (op OpCode) UnaryAssignTarget() AssignTarget {
	if op >= UnOpPreDec && op <= UnOpPostInc {
		return AssignTargetUpdate
	}
	return AssignTargetNone
}

func (op OpCode) IsLeftAssociative() bool {
	return op >= BinOpAdd && op < BinOpComma && op != BinOpPow
}

func (op OpCode) IsRightAssociative() bool {
	return op >= BinOpAssign || op == BinOpPow
}

func (op OpCode) BinaryAssignTarget() AssignTarget {
	if op == BinOpAssign {
		return AssignTargetReplace
	}
	if op > BinOpAssign {
		return AssignTargetUpdate
	}
	return AssignTargetNone
}

type AssignTarget uint8

const (
	AssignTargetNone    AssignTarget = iota
	AssignTargetReplace              // "a = b"
	AssignTargetUpdate               // "a += b"
)

// If you add a new token, remember to add it to "OpTable" too
const (
	// Prefix
	UnOpPos OpCode = iota
	UnOpNeg
	UnOpCmpl
	UnOpNot
	UnOpVoid
	UnOpTypeof
	UnOpDelete

	// Prefix update
	UnOpPreDec
	UnOpPreInc

	// Postfix update
	UnOpPostDec
	UnOpPostInc

	// Left-associative
	BinOpAdd
	BinOpSub
	BinOpMul
	BinOpDiv
	BinOpRem
	BinOpPow
	BinOpLt
	BinOpLe
	BinOpGt
	BinOpGe
	BinOpIn
	BinOpInstanceof
	BinOpShl
	BinOpShr
	BinOpUShr
	BinOpLooseEq
	BinOpLooseNe
	BinOpStrictEq
	BinOpStrictNe
	BinOpNullishCoalescing
	BinOpLogicalOr
	BinOpLogicalAnd
	BinOpBitwiseOr
	BinOpBitwiseAnd
	BinOpBitwiseXor

	// Non-associative
	BinOpComma

	// Right-associative
	BinOpAssign
	BinOpAddAssign
	BinOpSubAssign
	BinOpMulAssign
	BinOpDivAssign
	BinOpRemAssign
	BinOpPowAssign
	BinOpShlAssign
	BinOpShrAssign
	BinOpUShrAssign
	BinOpBitwiseOrAssign
	BinOpBitwiseAndAssign
	BinOpBitwiseXorAssign
	BinOpNullishCoalescingAssign
	BinOpLogicalOrAssign
	BinOpLogicalAndAssign
)

type OpTableEntry struct {
	Text      string
	Level     L
	IsKeyword bool
}

var OpTable = []OpTableEntry{
	// Prefix
	{"+", LPrefix, false},
	{"-", LPrefix, false},
	{"~", LPrefix, false},
	{"!", LPrefix, false},
	{"void", LPrefix, true},
	{"typeof", LPrefix, true},
	{"delete", LPrefix, true},

	// Prefix update
	{"--", LPrefix, false},
	{"++", LPrefix, false},

	// Postfix update
	{"--", LPostfix, false},
	{"++", LPostfix, false},

	// Left-associative
	{"+", LAdd, false},
	{"-", LAdd, false},
	{"*", LMultiply, false},
	{"/", LMultiply, false},
	{"%", LMultiply, false},
	{"**", LExponentiation, false}, // Right-associative
	{"<", LCompare, false},
	{"<=", LCompare, false},
	{">", LCompare, false},
	{">=", LCompare, false},
	{"in", LCompare, true},
	{"instanceof", LCompare, true},
	{"<<", LShift, false},
	{">>", LShift, false},
	{">>>", LShift, false},
	{"==", LEquals, false},
	{"!=", LEquals, false},
	{"===", LEquals, false},
	{"!==", LEquals, false},
	{"??", LNullishCoalescing, false},
	{"||", LLogicalOr, false},
	{"&&", LLogicalAnd, false},
	{"|", LBitwiseOr, false},
	{"&", LBitwiseAnd, false},
	{"^", LBitwiseXor, false},

	// Non-associative
	{",", LComma, false},

	// Right-associative
	{"=", LAssign, false},
	{"+=", LAssign, false},
	{"-=", LAssign, false},
	{"*=", LAssign, false},
	{"/=", LAssign, false},
	{"%=", LAssign, false},
	{"**=", LAssign, false},
	{"<<=", LAssign, false},
	{">>=", LAssign, false},
	{">>>=", LAssign, false},
	{"|=", LAssign, false},
	{"&=", LAssign, false},
	{"^=", LAssign, false},
	{"??=", LAssign, false},
	{"||=", LAssign, false},
	{"&&=", LAssign, false},
}

type LocName struct {
	Loc  logger.Loc
	Name string
}

type PropertyKind int

const (
	PropertyNormal PropertyKind = iota
	PropertyGet
	PropertySet
	PropertySpread
)

type Property struct {
	Kind       PropertyKind
	IsComputed bool
	IsMethod   bool

	// The lack of a "Key" means this property is a spread
	Key Expr

	// This is omitted for shorthand properties
	ValueOrNil Expr

	// This is used when parsing a pattern that uses default values:
	//
	//   [a = 1] = [];
	//   ({a = 1} = {});
	//
	// It's also used for class fields, which are not parsed here.
	InitializerOrNil Expr

	WasShorthand bool
}

type PropertyBinding struct {
	IsComputed        bool
	IsSpread          bool
	Key               Expr
	Value             Binding
	DefaultValueOrNil Expr
}

type Arg struct {
	Binding      Binding
	DefaultOrNil Expr

	// "fn(a: number)" in TypeScript mode. Len == 0 when absent.
	TSTypeRange logger.Range
}

type Fn struct {
	Name        *LocName
	Args        []Arg
	Body        FnBody
	HasRestArg  bool
	IsAsync     bool
	IsGenerator bool
}

type FnBody struct {
	Loc   logger.Loc
	Stmts []Stmt
}

type ArrayBinding struct {
	Binding           Binding
	DefaultValueOrNil Expr
}

type Binding struct {
	Loc    logger.Loc
	EndLoc logger.Loc
	Data   B
}

func (b Binding) Range() logger.Range {
	return logger.Range{Loc: b.Loc, Len: b.EndLoc.Start - b.Loc.Start}
}

// This interface is never called. Its purpose is to encode a variant type in
// Go's type system.
type B interface{ isBinding() }

func (*BMissing) isBinding()    {}
func (*BIdentifier) isBinding() {}
func (*BArray) isBinding()      {}
func (*BObject) isBinding()     {}

type BMissing struct{}

type BIdentifier struct{ Name string }

type BArray struct {
	Items     []ArrayBinding
	HasSpread bool
}

type BObject struct{ Properties []PropertyBinding }

type Expr struct {
	Loc    logger.Loc
	EndLoc logger.Loc
	Data   E
}

func (e Expr) Range() logger.Range {
	return logger.Range{Loc: e.Loc, Len: e.EndLoc.Start - e.Loc.Start}
}

// This interface is never called. Its purpose is to encode a variant type in
// Go's type system.
type E interface{ isExpr() }

func (*EArray) isExpr()             {}
func (*EUnary) isExpr()             {}
func (*EBinary) isExpr()            {}
func (*EBoolean) isExpr()           {}
func (*ESuper) isExpr()             {}
func (*ENull) isExpr()              {}
func (*EThis) isExpr()              {}
func (*ENewTarget) isExpr()         {}
func (*EImportMeta) isExpr()        {}
func (*ENew) isExpr()               {}
func (*ECall) isExpr()              {}
func (*EDot) isExpr()               {}
func (*EIndex) isExpr()             {}
func (*EChain) isExpr()             {}
func (*EArrow) isExpr()             {}
func (*EFunction) isExpr()          {}
func (*EIdentifier) isExpr()        {}
func (*EPrivateIdentifier) isExpr() {}
func (*EMissing) isExpr()           {}
func (*ENumber) isExpr()            {}
func (*EBigInt) isExpr()            {}
func (*EObject) isExpr()            {}
func (*ESpread) isExpr()            {}
func (*EString) isExpr()            {}
func (*ETemplate) isExpr()          {}
func (*ERegExp) isExpr()            {}
func (*EIf) isExpr()                {}
func (*EImportCall) isExpr()        {}
func (*EParen) isExpr()             {}
func (*EAwait) isExpr()             {}
func (*EYield) isExpr()             {}
func (*ETSNonNull) isExpr()         {}
func (*ETSAs) isExpr()              {}
func (*ETSSatisfies) isExpr()       {}
func (*ETSInstantiation) isExpr()   {}

var BMissingShared = &BMissing{}
var EMissingShared = &EMissing{}
var ENullShared = &ENull{}
var ESuperShared = &ESuper{}
var EThisShared = &EThis{}
var ENewTargetShared = &ENewTarget{}
var EImportMetaShared = &EImportMeta{}

type EArray struct {
	Items []Expr

	// Non-zero when a comma follows a spread element. That's valid in an
	// array literal but not in a destructuring pattern, so the cover
	// grammar resolver needs to know where it was.
	CommaAfterSpread logger.Loc

	// "([a]) = b" is not a valid assignment pattern
	IsParenthesized bool
}

type EUnary struct {
	Op    OpCode
	Value Expr
}

type EBinary struct {
	Op    OpCode
	Left  Expr
	Right Expr
}

type EBoolean struct{ Value bool }

type ESuper struct{}

type ENull struct{}

type EThis struct{}

type ENewTarget struct{}

type EImportMeta struct{}

type ENew struct {
	Target Expr
	Args   []Expr
}

type OptionalChain uint8

const (
	// "a.b"
	OptionalChainNone OptionalChain = iota

	// "a?.b"
	OptionalChainStart

	// "a?.b.c" => ".c" is OptionalChainContinue
	OptionalChainContinue
)

type ECall struct {
	Target        Expr
	Args          []Expr
	OptionalChain OptionalChain
}

type EDot struct {
	Target        Expr
	Name          string
	NameLoc       logger.Loc
	OptionalChain OptionalChain
}

type EIndex struct {
	Target        Expr
	Index         Expr
	OptionalChain OptionalChain
}

// A member/call chain that used "?." at least once is wrapped in exactly one
// of these at the point where the chain ends. The wrapper's range equals the
// range of the wrapped expression.
type EChain struct{ Value Expr }

type EArrow struct {
	Args       []Arg
	Body       FnBody
	HasRestArg bool
	IsAsync    bool
	PreferExpr bool // Use shorthand if true and "Body" is a single return statement
}

type EFunction struct{ Fn Fn }

type EIdentifier struct{ Name string }

type EPrivateIdentifier struct{ Name string }

// This is an internal-only value used to represent array holes
type EMissing struct{}

type NumberBase uint8

const (
	NumberBaseDecimal NumberBase = iota
	NumberBaseBinary
	NumberBaseOctal
	NumberBaseHex
	NumberBaseFloat
)

type ENumber struct {
	Value float64

	// Decimal with or without an exponent still counts as decimal when the
	// value has no fractional part. Separators never affect the value.
	Base NumberBase
}

// The value is the literal's digits with separators stripped and without the
// trailing "n". The node's range still covers the suffix.
type EBigInt struct{ Value string }

type EObject struct {
	Properties       []Property
	CommaAfterSpread logger.Loc
	IsParenthesized  bool
}

type ESpread struct{ Value Expr }

type EString struct{ Value []uint16 }

type TemplatePart struct {
	Value Expr

	// Content between "}" and the next "${" or "`", delimiters excluded
	TailRange logger.Range

	// Nil when the part contains an invalid escape sequence, which is only
	// allowed when the template is tagged
	TailCooked []uint16

	// "\r" and "\r\n" are normalized to "\n"
	TailRaw string
}

type ETemplate struct {
	TagOrNil   Expr
	HeadRange  logger.Range
	HeadCooked []uint16
	HeadRaw    string
	Parts      []TemplatePart
}

// The raw "/pattern/flags" text
type ERegExp struct{ Value string }

type EIf struct {
	Test Expr
	Yes  Expr
	No   Expr
}

type EImportCall struct {
	Expr         Expr
	OptionsOrNil Expr
}

// Only produced when parenthesized expressions are preserved
type EParen struct{ Value Expr }

type EAwait struct{ Value Expr }

type EYield struct {
	ValueOrNil Expr
	IsStar     bool
}

// "a!" in TypeScript mode
type ETSNonNull struct{ Value Expr }

// "a as T" in TypeScript mode. The type is skipped, not modeled.
type ETSAs struct {
	Value     Expr
	TypeRange logger.Range
}

// "a satisfies T" in TypeScript mode
type ETSSatisfies struct {
	Value     Expr
	TypeRange logger.Range
}

// "f<T>" in TypeScript mode when not absorbed by a call or template tag
type ETSInstantiation struct {
	Value         Expr
	TypeArgsRange logger.Range
}

type Stmt struct {
	Loc    logger.Loc
	EndLoc logger.Loc
	Data   S
}

func (s Stmt) Range() logger.Range {
	return logger.Range{Loc: s.Loc, Len: s.EndLoc.Start - s.Loc.Start}
}

// This interface is never called. Its purpose is to encode a variant type in
// Go's type system.
type S interface{ isStmt() }

func (*SBlock) isStmt()     {}
func (*SDebugger) isStmt()  {}
func (*SDirective) isStmt() {}
func (*SEmpty) isStmt()     {}
func (*SExpr) isStmt()      {}
func (*SIf) isStmt()        {}
func (*SFor) isStmt()       {}
func (*SForIn) isStmt()     {}
func (*SForOf) isStmt()     {}
func (*SLocal) isStmt()     {}
func (*SReturn) isStmt()    {}
func (*SWhile) isStmt()     {}

type SBlock struct{ Stmts []Stmt }

type SDebugger struct{}

// A string literal expression statement in the directive prologue. Only
// statements made from actual string literals qualify, not templates.
type SDirective struct{ Value []uint16 }

type SEmpty struct{}

type SExpr struct{ Value Expr }

type SIf struct {
	Test    Expr
	Yes     Stmt
	NoOrNil Stmt
}

type SFor struct {
	InitOrNil   Stmt // May be a SLocal or an SExpr
	TestOrNil   Expr
	UpdateOrNil Expr
	Body        Stmt
}

type SForIn struct {
	Init  Stmt // May be a SLocal or an SExpr
	Value Expr
	Body  Stmt
}

type SForOf struct {
	Init    Stmt // May be a SLocal or an SExpr
	Value   Expr
	Body    Stmt
	IsAwait bool
}

type LocalKind uint8

const (
	LocalVar LocalKind = iota
	LocalLet
	LocalConst
	LocalUsing
	LocalAwaitUsing
)

func (kind LocalKind) String() string {
	switch kind {
	case LocalVar:
		return "var"
	case LocalLet:
		return "let"
	case LocalConst:
		return "const"
	case LocalUsing:
		return "using"
	default:
		return "await using"
	}
}

func (kind LocalKind) IsUsing() bool {
	return kind == LocalUsing || kind == LocalAwaitUsing
}

type Decl struct {
	Binding Binding

	// "let x!: number" in TypeScript mode. Len == 0 when absent.
	DefiniteRange logger.Range

	// "let x: number" in TypeScript mode. Len == 0 when absent.
	TSTypeRange logger.Range

	ValueOrNil Expr
}

type SLocal struct {
	Decls []Decl
	Kind  LocalKind

	// The "declare" modifier in TypeScript mode
	IsTSDeclare bool
}

type SReturn struct{ ValueOrNil Expr }

type SWhile struct {
	Test Expr
	Body Stmt
}

type AST struct {
	Stmts []Stmt

	// A hashbang comment at the very start of the file, without the "#!"
	Hashbang string

	ApproximateLineCount int32
}

func Assign(a Expr, b Expr) Expr {
	return Expr{Loc: a.Loc, EndLoc: b.EndLoc, Data: &EBinary{Op: BinOpAssign, Left: a, Right: b}}
}

func JoinWithComma(a Expr, b Expr) Expr {
	if a.Data == nil {
		return b
	}
	if b.Data == nil {
		return a
	}
	return Expr{Loc: a.Loc, EndLoc: b.EndLoc, Data: &EBinary{Op: BinOpComma, Left: a, Right: b}}
}

func JoinAllWithComma(all []Expr) (result Expr) {
	for _, value := range all {
		result = JoinWithComma(result, value)
	}
	return
}

// IsOptionalChain returns whether the expression is a member or call link
// that can legally continue an optional chain.
func IsOptionalChain(value Expr) bool {
	switch e := value.Data.(type) {
	case *EDot:
		return e.OptionalChain != OptionalChainNone
	case *EIndex:
		return e.OptionalChain != OptionalChainNone
	case *ECall:
		return e.OptionalChain != OptionalChainNone
	}
	return false
}
