package js_parser

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucab/oxc/internal/js_ast"
	"github.com/lucab/oxc/internal/js_lexer"
	"github.com/lucab/oxc/internal/logger"
)

type Options struct {
	// Parse TypeScript type annotations instead of treating them as errors
	TS bool

	// Represent parentheses explicitly in the AST instead of discarding them
	PreserveParens bool

	// Treat the whole file as an ambient TypeScript declaration file
	AmbientContext bool
}

// Expressions are parsed by recursive descent, so input nesting is bounded to
// keep pathological files from overflowing the call stack
const maxNestingDepth = 5000

type parser struct {
	options Options
	log     logger.Log
	source  logger.Source
	lexer   js_lexer.Lexer
	allowIn bool

	fnOrArrowDataParse fnOrArrowDataParse

	// This helps us pass the "?" in "(a?)" to the binding pattern resolver
	// instead of treating it as the start of a conditional expression
	latestArrowArgLoc logger.Loc

	// A TypeScript "as" cast may not be followed by certain tokens. Instead of
	// checking at every call site, the location of the offending token is
	// recorded here and every suffix loop stops when it reaches it.
	forbidSuffixAfterAsLoc logger.Loc

	// The only suffix that can follow an arrow function body in an expression
	// statement is a comma
	afterArrowBodyLoc logger.Loc

	latestReturnHadSemicolon bool
	exprDepth                int
}

type awaitOrYield uint8

const (
	// The keyword is usable as an identifier
	allowIdent awaitOrYield = iota

	// The keyword begins an expression
	allowExpr

	// The keyword is neither an identifier nor an expression
	forbidAll
)

// This is function-specific parsing state. It is saved and restored on the
// call stack around code that parses nested functions and arrow expressions.
type fnOrArrowDataParse struct {
	arrowArgErrors     *deferredArrowArgErrors
	await              awaitOrYield
	yield              awaitOrYield
	isReturnDisallowed bool

	// "super.foo" is allowed in methods, and arrow bodies inherit it
	allowSuperProperty bool
}

// Due to ES6 destructuring patterns, there are many cases where it's
// impossible to distinguish between an array or object literal and a
// destructuring assignment until we hit the "=" operator later on.
// This object defers errors about being in one state or the other
// until we discover which state we're in.
type deferredErrors struct {
	// These are errors for expressions
	invalidExprDefaultValue  logger.Range
	invalidExprAfterQuestion logger.Range
}

func (from *deferredErrors) mergeInto(to *deferredErrors) {
	if from.invalidExprDefaultValue.Len > 0 {
		to.invalidExprDefaultValue = from.invalidExprDefaultValue
	}
	if from.invalidExprAfterQuestion.Len > 0 {
		to.invalidExprAfterQuestion = from.invalidExprAfterQuestion
	}
}

func (p *parser) logExprErrors(errors *deferredErrors) {
	if errors.invalidExprDefaultValue.Len > 0 {
		p.log.AddRangeError(&p.source, errors.invalidExprDefaultValue, "Unexpected \"=\"")
	}

	if errors.invalidExprAfterQuestion.Len > 0 {
		r := errors.invalidExprAfterQuestion
		p.log.AddRangeError(&p.source, r, fmt.Sprintf("Unexpected %q", p.source.Contents[r.Loc.Start:r.Loc.Start+r.Len]))
	}
}

// The "await" and "yield" expressions are never allowed in argument lists but
// may or may not be allowed otherwise depending on the details of the
// enclosing function or module. This needs to be handled when parsing an
// arrow function argument list because we don't know if these expressions
// are not allowed until we reach the "=>" token (or discover the absence of
// one).
//
// Specifically, for await:
//
//	// This is ok
//	async function foo() { (x = await y) }
//
//	// This is an error
//	async function foo() { (x = await y) => {} }
//
// And for yield:
//
//	// This is ok
//	function* foo() { (x = yield y) }
//
//	// This is an error
//	function* foo() { (x = yield y) => {} }
type deferredArrowArgErrors struct {
	invalidExprAwait logger.Range
	invalidExprYield logger.Range
}

func (p *parser) logArrowArgErrors(errors *deferredArrowArgErrors) {
	if errors.invalidExprAwait.Len > 0 {
		p.log.AddRangeError(&p.source, errors.invalidExprAwait, "Cannot use an \"await\" expression here")
	}

	if errors.invalidExprYield.Len > 0 {
		p.log.AddRangeError(&p.source, errors.invalidExprYield, "Cannot use a \"yield\" expression here")
	}
}

type lexicalDecl uint8

const (
	lexicalDeclForbid lexicalDecl = iota
	lexicalDeclAllowAll
)

type parseStmtOpts struct {
	lexicalDecl         lexicalDecl
	isTypeScriptDeclare bool
	isForLoopInit       bool
	isForAwaitLoopInit  bool
}

type propertyOpts struct {
	asyncRange  logger.Range
	isAsync     bool
	isGenerator bool
}

type parenExprOpts struct {
	asyncRange logger.Range

	// "(a, b)" is a parenthesized expression, "async (a, b)" is a call
	isAsync bool

	// Type parameters were already skipped, so this must be an arrow function
	forceArrowFn bool
}

type invalidLog struct {
	invalidTokens []logger.Range
}

type exprFlag uint8

const (
	exprFlagForLoopInit exprFlag = 1 << iota
	exprFlagForAwaitLoopInit
)

func newParser(log logger.Log, source logger.Source, lexer js_lexer.Lexer, options Options) *parser {
	return &parser{
		options: options,
		log:     log,
		source:  source,
		lexer:   lexer,
		allowIn: true,

		afterArrowBodyLoc: logger.Loc{Start: -1},
	}
}

// The location just past the last token the lexer consumed. Nodes record this
// as their end location right after their final token is parsed.
func (p *parser) endLoc() logger.Loc {
	return logger.Loc{Start: p.lexer.PrevTokenEnd}
}

func (p *parser) keyNameForError(key js_ast.Expr) string {
	switch k := key.Data.(type) {
	case *js_ast.EString:
		return fmt.Sprintf("%q", js_lexer.UTF16ToString(k.Value))
	case *js_ast.EPrivateIdentifier:
		return fmt.Sprintf("%q", k.Name)
	}
	return "property"
}

func (p *parser) markExprAsParenthesized(value js_ast.Expr) {
	switch e := value.Data.(type) {
	case *js_ast.EArray:
		e.IsParenthesized = true
	case *js_ast.EObject:
		e.IsParenthesized = true
	}
}

// The numeric base is recorded so the printer can reproduce the literal in
// its original notation
func numberBaseForRaw(raw string, value float64) js_ast.NumberBase {
	if len(raw) > 1 && raw[0] == '0' {
		switch raw[1] {
		case 'b', 'B':
			return js_ast.NumberBaseBinary
		case 'o', 'O':
			return js_ast.NumberBaseOctal
		case 'x', 'X':
			return js_ast.NumberBaseHex
		}

		// Legacy octal literals like "0755" contain only octal digits
		isLegacyOctal := true
		for i := 1; i < len(raw); i++ {
			if c := raw[i]; c < '0' || c > '7' {
				isLegacyOctal = false
				break
			}
		}
		if isLegacyOctal {
			return js_ast.NumberBaseOctal
		}
	}

	if strings.ContainsAny(raw, "eE") {
		if value == math.Trunc(value) {
			return js_ast.NumberBaseDecimal
		}
		return js_ast.NumberBaseFloat
	}

	if strings.ContainsRune(raw, '.') {
		return js_ast.NumberBaseFloat
	}

	return js_ast.NumberBaseDecimal
}

// "await" and "yield" are contextual keywords. When one of them appears where
// an identifier is valid but the token after it on the same line can only
// start an operand, the source almost certainly meant the operator form, so
// the parser recovers with an error and parses the operand anyway.
func (p *parser) tokenStartsOperand() bool {
	switch p.lexer.Token {
	case js_lexer.TIdentifier, js_lexer.TFalse, js_lexer.TTrue, js_lexer.TNull, js_lexer.TThis,
		js_lexer.TStringLiteral, js_lexer.TNumericLiteral, js_lexer.TBigIntegerLiteral,
		js_lexer.TNew, js_lexer.TTypeof, js_lexer.TVoid, js_lexer.TDelete,
		js_lexer.TExclamation, js_lexer.TTilde, js_lexer.TFunction:
		return true
	}
	return false
}

// Whether the current token can extend an optional chain that has started
// earlier in the same member expression
func (p *parser) tokenCanContinueChain() bool {
	switch p.lexer.Token {
	case js_lexer.TDot, js_lexer.TQuestionDot, js_lexer.TOpenBracket, js_lexer.TOpenParen:
		return true

	case js_lexer.TExclamation:
		// A TypeScript non-null assertion does not end the chain: "a?.b!.c"
		return p.options.TS && !p.lexer.HasNewlineBefore

	case js_lexer.TLessThan:
		// Type arguments do not end the chain: "a?.b<T>()"
		return p.options.TS
	}
	return false
}

func (p *parser) willNeedBindingPattern() bool {
	switch p.lexer.Token {
	case js_lexer.TEquals:
		// "[a] = b;"
		return true

	case js_lexer.TIn:
		// "for ([a] in b) {}"
		return !p.allowIn

	case js_lexer.TIdentifier:
		// "for ([a] of b) {}"
		return !p.allowIn && p.lexer.IsContextualKeyword("of")

	default:
		return false
	}
}

// Check that the left side of an assignment or update operator is a valid
// assignment target. The error points at the smallest invalid subexpression
// so the caret lands on the part that is actually wrong.
func (p *parser) validateAssignTarget(expr js_ast.Expr, target js_ast.AssignTarget) {
	switch e := expr.Data.(type) {
	case *js_ast.EIdentifier:
		return

	case *js_ast.EDot:
		if e.OptionalChain == js_ast.OptionalChainNone {
			return
		}

	case *js_ast.EIndex:
		if e.OptionalChain == js_ast.OptionalChainNone {
			return
		}

	case *js_ast.EParen:
		p.validateAssignTarget(e.Value, target)
		return

	case *js_ast.EArray:
		// "[a, b] = c" is a destructuring assignment, "([a, b]) = c" is not
		if target == js_ast.AssignTargetReplace && !e.IsParenthesized {
			if e.CommaAfterSpread.Start != 0 {
				p.log.AddRangeError(&p.source, logger.Range{Loc: e.CommaAfterSpread, Len: 1}, "Unexpected \",\" after rest pattern")
			}
			for _, item := range e.Items {
				switch i := item.Data.(type) {
				case *js_ast.EMissing:

				case *js_ast.ESpread:
					p.validateAssignTarget(i.Value, target)

				case *js_ast.EBinary:
					if i.Op == js_ast.BinOpAssign {
						p.validateAssignTarget(i.Left, target)
					} else {
						p.log.AddRangeError(&p.source, item.Range(), "Invalid assignment target")
					}

				default:
					p.validateAssignTarget(item, target)
				}
			}
			return
		}

	case *js_ast.EObject:
		if target == js_ast.AssignTargetReplace && !e.IsParenthesized {
			if e.CommaAfterSpread.Start != 0 {
				p.log.AddRangeError(&p.source, logger.Range{Loc: e.CommaAfterSpread, Len: 1}, "Unexpected \",\" after rest pattern")
			}
			for _, property := range e.Properties {
				if property.IsMethod || property.Kind == js_ast.PropertyGet || property.Kind == js_ast.PropertySet {
					r := js_lexer.RangeOfIdentifier(p.source, property.Key.Loc)
					p.log.AddRangeError(&p.source, r, "Invalid assignment target")
					continue
				}
				if property.Kind == js_ast.PropertySpread {
					p.validateAssignTarget(property.ValueOrNil, target)
					continue
				}
				value := property.ValueOrNil
				if binary, ok := value.Data.(*js_ast.EBinary); ok && binary.Op == js_ast.BinOpAssign {
					value = binary.Left
				}
				p.validateAssignTarget(value, target)
			}
			return
		}
	}

	p.log.AddRangeError(&p.source, expr.Range(), "Invalid assignment target")
}

func (p *parser) parseStringLiteral() js_ast.Expr {
	loc := p.lexer.Loc()
	value := p.lexer.StringLiteral
	p.lexer.Next()
	return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.EString{Value: value}}
}

func (p *parser) parseProperty(kind js_ast.PropertyKind, opts propertyOpts, errors *deferredErrors) js_ast.Property {
	var key js_ast.Expr
	isComputed := false

	switch p.lexer.Token {
	case js_lexer.TNumericLiteral:
		keyLoc := p.lexer.Loc()
		value := p.lexer.Number
		base := numberBaseForRaw(p.lexer.Raw(), value)
		p.lexer.Next()
		key = js_ast.Expr{Loc: keyLoc, EndLoc: p.endLoc(), Data: &js_ast.ENumber{Value: value, Base: base}}

	case js_lexer.TStringLiteral:
		key = p.parseStringLiteral()

	case js_lexer.TBigIntegerLiteral:
		keyLoc := p.lexer.Loc()
		value := p.lexer.Identifier
		p.lexer.Next()
		key = js_ast.Expr{Loc: keyLoc, EndLoc: p.endLoc(), Data: &js_ast.EBigInt{Value: value}}

	case js_lexer.TPrivateIdentifier:
		// Private names are only valid inside class bodies
		p.lexer.Expected(js_lexer.TIdentifier)

	case js_lexer.TOpenBracket:
		isComputed = true
		p.lexer.Next()
		expr := p.parseExpr(js_ast.LComma)
		p.lexer.Expect(js_lexer.TCloseBracket)
		key = expr

	case js_lexer.TAsterisk:
		if kind != js_ast.PropertyNormal || opts.isGenerator {
			p.lexer.Unexpected()
		}
		p.lexer.Next()
		opts.isGenerator = true
		return p.parseProperty(js_ast.PropertyNormal, opts, errors)

	default:
		name := p.lexer.Identifier
		raw := p.lexer.Raw()
		nameRange := p.lexer.Range()
		if !p.lexer.IsIdentifierOrKeyword() {
			p.lexer.Expect(js_lexer.TIdentifier)
		}
		p.lexer.Next()

		// Support contextual keywords
		if kind == js_ast.PropertyNormal && !opts.isGenerator {
			// Does the following token look like a key?
			couldBeModifierKeyword := p.lexer.IsIdentifierOrKeyword()
			if !couldBeModifierKeyword {
				switch p.lexer.Token {
				case js_lexer.TOpenBracket, js_lexer.TNumericLiteral, js_lexer.TStringLiteral,
					js_lexer.TAsterisk, js_lexer.TPrivateIdentifier:
					couldBeModifierKeyword = true
				}
			}

			// If so, check for a modifier keyword
			if couldBeModifierKeyword {
				switch name {
				case "get":
					if !opts.isAsync && raw == name {
						return p.parseProperty(js_ast.PropertyGet, opts, nil)
					}

				case "set":
					if !opts.isAsync && raw == name {
						return p.parseProperty(js_ast.PropertySet, opts, nil)
					}

				case "async":
					if !opts.isAsync && raw == name && !p.lexer.HasNewlineBefore {
						opts.isAsync = true
						opts.asyncRange = nameRange
						return p.parseProperty(kind, opts, nil)
					}
				}
			}
		}

		key = js_ast.Expr{Loc: nameRange.Loc, EndLoc: logger.Loc{Start: nameRange.End()}, Data: &js_ast.EString{Value: js_lexer.StringToUTF16(name)}}

		// Parse a shorthand property
		if kind == js_ast.PropertyNormal && p.lexer.Token != js_lexer.TColon &&
			p.lexer.Token != js_lexer.TOpenParen && p.lexer.Token != js_lexer.TLessThan &&
			!opts.isGenerator && !opts.isAsync && js_lexer.Keywords[name] == js_lexer.T(0) {
			if (p.fnOrArrowDataParse.await != allowIdent && name == "await") ||
				(p.fnOrArrowDataParse.yield != allowIdent && name == "yield") {
				p.log.AddRangeError(&p.source, nameRange, fmt.Sprintf("Cannot use %q as an identifier here", name))
			}
			value := js_ast.Expr{Loc: key.Loc, EndLoc: key.EndLoc, Data: &js_ast.EIdentifier{Name: name}}

			// Destructuring patterns have an optional default value
			var initializerOrNil js_ast.Expr
			if errors != nil && p.lexer.Token == js_lexer.TEquals {
				errors.invalidExprDefaultValue = p.lexer.Range()
				p.lexer.Next()
				initializerOrNil = p.parseExpr(js_ast.LComma)
			}

			return js_ast.Property{
				Kind:             kind,
				Key:              key,
				ValueOrNil:       value,
				InitializerOrNil: initializerOrNil,
				WasShorthand:     true,
			}
		}
	}

	// "{ foo<T>(): T {} }"
	if p.options.TS {
		p.skipTypeScriptTypeParameters()
	}

	// Parse a method expression
	if p.lexer.Token == js_lexer.TOpenParen || kind != js_ast.PropertyNormal || opts.isAsync || opts.isGenerator {
		loc := p.lexer.Loc()

		await := allowIdent
		yield := allowIdent
		if opts.isAsync {
			await = allowExpr
		}
		if opts.isGenerator {
			yield = allowExpr
		}

		fn := p.parseFn(nil, fnOrArrowDataParse{
			await: await,
			yield: yield,

			allowSuperProperty: true,
		})

		value := js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.EFunction{Fn: fn}}

		// Enforce argument rules for accessors
		switch kind {
		case js_ast.PropertyGet:
			if len(fn.Args) > 0 {
				r := js_lexer.RangeOfIdentifier(p.source, fn.Args[0].Binding.Loc)
				p.log.AddRangeError(&p.source, r, fmt.Sprintf("Getter %s must have zero arguments", p.keyNameForError(key)))
			}

		case js_ast.PropertySet:
			if len(fn.Args) != 1 {
				r := js_lexer.RangeOfIdentifier(p.source, key.Loc)
				if len(fn.Args) > 1 {
					r = js_lexer.RangeOfIdentifier(p.source, fn.Args[1].Binding.Loc)
				}
				p.log.AddRangeError(&p.source, r, fmt.Sprintf("Setter %s must have exactly one argument", p.keyNameForError(key)))
			}
		}

		return js_ast.Property{
			Kind:       kind,
			IsComputed: isComputed,
			IsMethod:   true,
			Key:        key,
			ValueOrNil: value,
		}
	}

	// Parse an object key/value pair
	p.lexer.Expect(js_lexer.TColon)
	value := p.parseExprOrBindings(js_ast.LComma, errors)
	return js_ast.Property{
		Kind:       kind,
		IsComputed: isComputed,
		Key:        key,
		ValueOrNil: value,
	}
}

func (p *parser) parsePropertyBinding() js_ast.PropertyBinding {
	var key js_ast.Expr
	isComputed := false

	switch p.lexer.Token {
	case js_lexer.TDotDotDot:
		p.lexer.Next()
		valueLoc := p.lexer.Loc()
		name := p.lexer.Identifier
		p.lexer.Expect(js_lexer.TIdentifier)
		return js_ast.PropertyBinding{
			IsSpread: true,
			Value:    js_ast.Binding{Loc: valueLoc, EndLoc: p.endLoc(), Data: &js_ast.BIdentifier{Name: name}},
		}

	case js_lexer.TNumericLiteral:
		keyLoc := p.lexer.Loc()
		value := p.lexer.Number
		base := numberBaseForRaw(p.lexer.Raw(), value)
		p.lexer.Next()
		key = js_ast.Expr{Loc: keyLoc, EndLoc: p.endLoc(), Data: &js_ast.ENumber{Value: value, Base: base}}

	case js_lexer.TStringLiteral:
		key = p.parseStringLiteral()

	case js_lexer.TBigIntegerLiteral:
		keyLoc := p.lexer.Loc()
		value := p.lexer.Identifier
		p.lexer.Next()
		key = js_ast.Expr{Loc: keyLoc, EndLoc: p.endLoc(), Data: &js_ast.EBigInt{Value: value}}

	case js_lexer.TOpenBracket:
		isComputed = true
		p.lexer.Next()
		key = p.parseExpr(js_ast.LComma)
		p.lexer.Expect(js_lexer.TCloseBracket)

	default:
		name := p.lexer.Identifier
		nameRange := p.lexer.Range()
		if !p.lexer.IsIdentifierOrKeyword() {
			p.lexer.Expect(js_lexer.TIdentifier)
		}
		p.lexer.Next()
		key = js_ast.Expr{Loc: nameRange.Loc, EndLoc: logger.Loc{Start: nameRange.End()}, Data: &js_ast.EString{Value: js_lexer.StringToUTF16(name)}}

		if p.lexer.Token != js_lexer.TColon && p.lexer.Token != js_lexer.TOpenParen {
			value := js_ast.Binding{Loc: nameRange.Loc, EndLoc: logger.Loc{Start: nameRange.End()}, Data: &js_ast.BIdentifier{Name: name}}

			var defaultValueOrNil js_ast.Expr
			if p.lexer.Token == js_lexer.TEquals {
				p.lexer.Next()
				defaultValueOrNil = p.parseExpr(js_ast.LComma)
			}

			return js_ast.PropertyBinding{
				Key:               key,
				Value:             value,
				DefaultValueOrNil: defaultValueOrNil,
			}
		}
	}

	p.lexer.Expect(js_lexer.TColon)
	value := p.parseBinding()

	var defaultValueOrNil js_ast.Expr
	if p.lexer.Token == js_lexer.TEquals {
		p.lexer.Next()
		defaultValueOrNil = p.parseExpr(js_ast.LComma)
	}

	return js_ast.PropertyBinding{
		IsComputed:        isComputed,
		Key:               key,
		Value:             value,
		DefaultValueOrNil: defaultValueOrNil,
	}
}

func (p *parser) parseArrowBody(args []js_ast.Arg, data fnOrArrowDataParse) *js_ast.EArrow {
	arrowLoc := p.lexer.Loc()

	// Newlines are not allowed before "=>"
	if p.lexer.HasNewlineBefore {
		p.log.AddRangeError(&p.source, p.lexer.Range(), "Unexpected newline before \"=>\"")
		panic(js_lexer.LexerPanic{})
	}

	p.lexer.Expect(js_lexer.TEqualsGreaterThan)

	// The ability to use "super" is inherited by arrow functions
	data.allowSuperProperty = p.fnOrArrowDataParse.allowSuperProperty

	if p.lexer.Token == js_lexer.TOpenBrace {
		body := p.parseFnBody(data)
		p.afterArrowBodyLoc = p.lexer.Loc()
		return &js_ast.EArrow{Args: args, Body: body}
	}

	oldFnOrArrowData := p.fnOrArrowDataParse
	p.fnOrArrowDataParse = data
	expr := p.parseExpr(js_ast.LComma)
	p.fnOrArrowDataParse = oldFnOrArrowData
	return &js_ast.EArrow{
		Args:       args,
		PreferExpr: true,
		Body: js_ast.FnBody{Loc: arrowLoc, Stmts: []js_ast.Stmt{
			{Loc: expr.Loc, EndLoc: expr.EndLoc, Data: &js_ast.SReturn{ValueOrNil: expr}},
		}},
	}
}

func (p *parser) checkForArrowAfterTheCurrentToken() bool {
	oldLexer := p.lexer
	p.lexer.IsLogDisabled = true

	// Implement backtracking by restoring the lexer's memory to its original state
	defer func() {
		r := recover()
		if _, isLexerPanic := r.(js_lexer.LexerPanic); isLexerPanic {
			p.lexer = oldLexer
		} else if r != nil {
			panic(r)
		}
	}()

	p.lexer.Next()
	isArrowAfterThisToken := p.lexer.Token == js_lexer.TEqualsGreaterThan

	p.lexer = oldLexer
	return isArrowAfterThisToken
}

// This assumes the caller has already parsed the "async" keyword
func (p *parser) parseAsyncPrefixExpr(asyncRange logger.Range, level js_ast.L, flags exprFlag) js_ast.Expr {
	// "async function() {}"
	if !p.lexer.HasNewlineBefore && p.lexer.Token == js_lexer.TFunction {
		return p.parseFnExpr(asyncRange.Loc, true /* isAsync */)
	}

	// Check the precedence level to avoid parsing an arrow function in
	// "new async () => {}". This also avoids parsing "new async()" as
	// "new (async())()".
	if !p.lexer.HasNewlineBefore && level < js_ast.LMember {
		switch p.lexer.Token {
		// "async => {}"
		case js_lexer.TEqualsGreaterThan:
			if level <= js_ast.LAssign {
				arg := js_ast.Arg{Binding: js_ast.Binding{
					Loc:    asyncRange.Loc,
					EndLoc: logger.Loc{Start: asyncRange.End()},
					Data:   &js_ast.BIdentifier{Name: "async"},
				}}
				arrow := p.parseArrowBody([]js_ast.Arg{arg}, fnOrArrowDataParse{})
				return js_ast.Expr{Loc: asyncRange.Loc, EndLoc: p.endLoc(), Data: arrow}
			}

		// "async x => {}"
		case js_lexer.TIdentifier:
			if level <= js_ast.LAssign {
				// See https://github.com/tc39/ecma262/issues/2034 for details
				isArrowFn := true
				if (flags&exprFlagForLoopInit) != 0 && p.lexer.Identifier == "of" {
					// "for (async of" is only an arrow function if the next token is "=>"
					isArrowFn = p.checkForArrowAfterTheCurrentToken()

					// Do not allow "for (async of []) ;" but do allow "for await (async of []) ;"
					if !isArrowFn && (flags&exprFlagForAwaitLoopInit) == 0 && p.lexer.Raw() == "of" {
						r := logger.Range{Loc: asyncRange.Loc, Len: p.lexer.Range().End() - asyncRange.Loc.Start}
						p.log.AddRangeError(&p.source, r, "For loop initializers cannot start with \"async of\"")
						panic(js_lexer.LexerPanic{})
					}
				}

				if isArrowFn {
					argLoc := p.lexer.Loc()
					argName := p.lexer.Identifier
					p.lexer.Next()
					arg := js_ast.Arg{Binding: js_ast.Binding{
						Loc:    argLoc,
						EndLoc: p.endLoc(),
						Data:   &js_ast.BIdentifier{Name: argName},
					}}

					arrow := p.parseArrowBody([]js_ast.Arg{arg}, fnOrArrowDataParse{await: allowExpr})
					arrow.IsAsync = true
					return js_ast.Expr{Loc: asyncRange.Loc, EndLoc: p.endLoc(), Data: arrow}
				}
			}

		// "async()"
		// "async () => {}"
		case js_lexer.TOpenParen:
			p.lexer.Next()
			return p.parseParenExpr(asyncRange.Loc, level, parenExprOpts{isAsync: true, asyncRange: asyncRange})

		// "async<T>()"
		// "async <T>() => {}"
		case js_lexer.TLessThan:
			if p.options.TS && p.trySkipTypeScriptTypeParametersThenOpenParenWithBacktracking() {
				p.lexer.Next()
				return p.parseParenExpr(asyncRange.Loc, level, parenExprOpts{isAsync: true, asyncRange: asyncRange})
			}
		}
	}

	// "async"
	// "async + 1"
	return js_ast.Expr{Loc: asyncRange.Loc, EndLoc: logger.Loc{Start: asyncRange.End()}, Data: &js_ast.EIdentifier{Name: "async"}}
}

func (p *parser) parseFnExpr(loc logger.Loc, isAsync bool) js_ast.Expr {
	p.lexer.Next()
	isGenerator := p.lexer.Token == js_lexer.TAsterisk
	if isGenerator {
		p.lexer.Next()
	}
	var name *js_ast.LocName

	// The name is optional
	if p.lexer.Token == js_lexer.TIdentifier {
		name = &js_ast.LocName{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
		p.lexer.Next()
	}

	// Even anonymous functions can have TypeScript type parameters
	if p.options.TS {
		p.skipTypeScriptTypeParameters()
	}

	await := allowIdent
	yield := allowIdent
	if isAsync {
		await = allowExpr
	}
	if isGenerator {
		yield = allowExpr
	}

	fn := p.parseFn(name, fnOrArrowDataParse{
		await: await,
		yield: yield,
	})
	p.validateFunctionName(fn)
	return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.EFunction{Fn: fn}}
}

func (p *parser) validateFunctionName(fn js_ast.Fn) {
	// The name cannot be the same as a function-specific contextual keyword
	if fn.Name != nil {
		if fn.IsAsync && fn.Name.Name == "await" {
			p.log.AddRangeError(&p.source, js_lexer.RangeOfIdentifier(p.source, fn.Name.Loc),
				"An async function cannot be named \"await\"")
		} else if fn.IsGenerator && fn.Name.Name == "yield" {
			p.log.AddRangeError(&p.source, js_lexer.RangeOfIdentifier(p.source, fn.Name.Loc),
				"A generator function expression cannot be named \"yield\"")
		}
	}
}

// This assumes that the open parenthesis has already been parsed by the caller
func (p *parser) parseParenExpr(loc logger.Loc, level js_ast.L, opts parenExprOpts) js_ast.Expr {
	items := []js_ast.Expr{}
	errors := deferredErrors{}
	arrowArgErrors := deferredArrowArgErrors{}
	spreadRange := logger.Range{}
	typeColonRange := logger.Range{}
	commaAfterSpread := logger.Loc{}

	// Allow "in" inside parentheses
	oldAllowIn := p.allowIn
	p.allowIn = true

	// Forbid "await" and "yield", but only for arrow functions
	oldFnOrArrowData := p.fnOrArrowDataParse
	p.fnOrArrowDataParse.arrowArgErrors = &arrowArgErrors

	// Scan over the comma-separated arguments or expressions
	for p.lexer.Token != js_lexer.TCloseParen {
		itemLoc := p.lexer.Loc()
		isSpread := p.lexer.Token == js_lexer.TDotDotDot

		if isSpread {
			spreadRange = p.lexer.Range()
			p.lexer.Next()
		}

		// We don't know yet whether these are arguments or expressions, so parse
		// a superset of the expression syntax. Errors about things that are valid
		// in one but not in the other are deferred.
		p.latestArrowArgLoc = p.lexer.Loc()
		item := p.parseExprOrBindings(js_ast.LComma, &errors)

		if isSpread {
			item = js_ast.Expr{Loc: itemLoc, EndLoc: item.EndLoc, Data: &js_ast.ESpread{Value: item}}
		}

		// Skip over types
		if p.options.TS && p.lexer.Token == js_lexer.TColon {
			typeColonRange = p.lexer.Range()
			p.lexer.Next()
			p.skipTypeScriptType(js_ast.LLowest)
		}

		// There may be a "=" after the type (but not after an "as" cast)
		if p.options.TS && p.lexer.Token == js_lexer.TEquals && p.lexer.Loc() != p.forbidSuffixAfterAsLoc {
			p.lexer.Next()
			item = js_ast.Assign(item, p.parseExpr(js_ast.LComma))
		}

		items = append(items, item)
		if p.lexer.Token != js_lexer.TComma {
			break
		}

		// Spread arguments must come last. If there's a spread argument followed
		// by a comma, throw an error if we use these expressions as bindings.
		if isSpread {
			commaAfterSpread = p.lexer.Loc()
		}

		// Eat the comma token
		p.lexer.Next()
	}

	// The parenthetical construct must end with a close parenthesis
	p.lexer.Expect(js_lexer.TCloseParen)

	// Restore "in" operator status before we parse the arrow function body
	p.allowIn = oldAllowIn

	// Also restore "await" and "yield" expression errors
	p.fnOrArrowDataParse = oldFnOrArrowData

	// Are these arguments to an arrow function?
	if p.lexer.Token == js_lexer.TEqualsGreaterThan || opts.forceArrowFn || (p.options.TS && p.lexer.Token == js_lexer.TColon) {
		// Arrow functions are not allowed inside certain expressions
		if level > js_ast.LAssign {
			p.lexer.Unexpected()
		}

		var invalidLog invalidLog
		args := []js_ast.Arg{}

		// First, try converting the expressions to bindings
		for _, item := range items {
			isSpread := false
			if spread, ok := item.Data.(*js_ast.ESpread); ok {
				item = spread.Value
				isSpread = true
			}
			binding, initializerOrNil, log := p.convertExprToBindingAndInitializer(item, invalidLog, isSpread)
			invalidLog = log
			args = append(args, js_ast.Arg{Binding: binding, DefaultOrNil: initializerOrNil})
		}

		// Avoid parsing TypeScript code like "a ? (1 + 2) : (3 + 4)" as an arrow
		// function. The ":" after the ")" may be a return type annotation, so we
		// attempt to convert the expressions to bindings first before deciding
		// whether this is an arrow function, and only pick an arrow function if
		// there were no conversion errors.
		if p.lexer.Token == js_lexer.TEqualsGreaterThan || (len(invalidLog.invalidTokens) == 0 &&
			p.trySkipTypeScriptArrowReturnTypeWithBacktracking()) || opts.forceArrowFn {
			if commaAfterSpread.Start != 0 {
				p.log.AddRangeError(&p.source, logger.Range{Loc: commaAfterSpread, Len: 1}, "Unexpected \",\" after rest pattern")
			}
			p.logArrowArgErrors(&arrowArgErrors)

			// Now that we've decided we're an arrow function, report binding
			// pattern conversion errors
			if len(invalidLog.invalidTokens) > 0 {
				for _, r := range invalidLog.invalidTokens {
					p.log.AddRangeError(&p.source, r, "Invalid binding pattern")
				}
				panic(js_lexer.LexerPanic{})
			}

			await := allowIdent
			if opts.isAsync {
				await = allowExpr
			}

			arrow := p.parseArrowBody(args, fnOrArrowDataParse{await: await})
			arrow.IsAsync = opts.isAsync
			arrow.HasRestArg = spreadRange.Len > 0
			return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: arrow}
		}
	}

	// If this isn't an arrow function, then types aren't allowed
	if typeColonRange.Len > 0 {
		p.log.AddRangeError(&p.source, typeColonRange, "Unexpected \":\"")
		panic(js_lexer.LexerPanic{})
	}

	// Are these arguments for a call to a function named "async"?
	if opts.isAsync {
		p.logExprErrors(&errors)
		async := js_ast.Expr{
			Loc:    loc,
			EndLoc: logger.Loc{Start: opts.asyncRange.End()},
			Data:   &js_ast.EIdentifier{Name: "async"},
		}
		return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.ECall{
			Target: async,
			Args:   items,
		}}
	}

	// Is this a chain of expressions and comma operators?
	if len(items) > 0 {
		p.logExprErrors(&errors)
		if spreadRange.Len > 0 {
			p.log.AddRangeError(&p.source, spreadRange, "Unexpected \"...\"")
			panic(js_lexer.LexerPanic{})
		}
		value := js_ast.JoinAllWithComma(items)
		p.markExprAsParenthesized(value)
		if p.options.PreserveParens {
			value = js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.EParen{Value: value}}
		}
		return value
	}

	// Indicate that we expected an arrow function
	p.lexer.Expected(js_lexer.TEqualsGreaterThan)
	return js_ast.Expr{}
}

func (p *parser) convertExprToBindingAndInitializer(
	expr js_ast.Expr, invalidLog invalidLog, isSpread bool,
) (js_ast.Binding, js_ast.Expr, invalidLog) {
	var initializerOrNil js_ast.Expr
	if assign, ok := expr.Data.(*js_ast.EBinary); ok && assign.Op == js_ast.BinOpAssign {
		initializerOrNil = assign.Right
		expr = assign.Left
	}
	binding, invalidLog := p.convertExprToBinding(expr, invalidLog)
	if initializerOrNil.Data != nil && isSpread {
		equalsRange := p.source.RangeOfOperatorBefore(initializerOrNil.Loc, "=")
		p.log.AddRangeError(&p.source, equalsRange, "A rest argument cannot have a default initializer")
	}
	return binding, initializerOrNil, invalidLog
}

// Note: do not write to "p.log" in this function. Any errors due to conversion
// from expression to binding should be written to "invalidLog" instead. That
// way we can potentially keep this as an expression if it turns out it's not
// needed as a binding after all.
func (p *parser) convertExprToBinding(expr js_ast.Expr, invalidLog invalidLog) (js_ast.Binding, invalidLog) {
	switch e := expr.Data.(type) {
	case *js_ast.EMissing:
		return js_ast.Binding{Loc: expr.Loc, EndLoc: expr.EndLoc, Data: js_ast.BMissingShared}, invalidLog

	case *js_ast.EIdentifier:
		return js_ast.Binding{Loc: expr.Loc, EndLoc: expr.EndLoc, Data: &js_ast.BIdentifier{Name: e.Name}}, invalidLog

	case *js_ast.EArray:
		if e.CommaAfterSpread.Start != 0 {
			invalidLog.invalidTokens = append(invalidLog.invalidTokens, logger.Range{Loc: e.CommaAfterSpread, Len: 1})
		}
		if e.IsParenthesized {
			invalidLog.invalidTokens = append(invalidLog.invalidTokens, p.source.RangeOfOperatorBefore(expr.Loc, "("))
		}
		items := []js_ast.ArrayBinding{}
		isSpread := false
		for _, item := range e.Items {
			if i, ok := item.Data.(*js_ast.ESpread); ok {
				isSpread = true
				item = i.Value
			}
			binding, initializerOrNil, log := p.convertExprToBindingAndInitializer(item, invalidLog, isSpread)
			invalidLog = log
			items = append(items, js_ast.ArrayBinding{Binding: binding, DefaultValueOrNil: initializerOrNil})
		}
		return js_ast.Binding{Loc: expr.Loc, EndLoc: expr.EndLoc, Data: &js_ast.BArray{
			Items:     items,
			HasSpread: isSpread,
		}}, invalidLog

	case *js_ast.EObject:
		if e.CommaAfterSpread.Start != 0 {
			invalidLog.invalidTokens = append(invalidLog.invalidTokens, logger.Range{Loc: e.CommaAfterSpread, Len: 1})
		}
		if e.IsParenthesized {
			invalidLog.invalidTokens = append(invalidLog.invalidTokens, p.source.RangeOfOperatorBefore(expr.Loc, "("))
		}
		properties := []js_ast.PropertyBinding{}
		for _, item := range e.Properties {
			if item.IsMethod || item.Kind == js_ast.PropertyGet || item.Kind == js_ast.PropertySet {
				invalidLog.invalidTokens = append(invalidLog.invalidTokens, js_lexer.RangeOfIdentifier(p.source, item.Key.Loc))
				continue
			}
			binding, initializerOrNil, log := p.convertExprToBindingAndInitializer(item.ValueOrNil, invalidLog, false)
			invalidLog = log
			if initializerOrNil.Data == nil {
				initializerOrNil = item.InitializerOrNil
			}
			properties = append(properties, js_ast.PropertyBinding{
				IsSpread:          item.Kind == js_ast.PropertySpread,
				IsComputed:        item.IsComputed,
				Key:               item.Key,
				Value:             binding,
				DefaultValueOrNil: initializerOrNil,
			})
		}
		return js_ast.Binding{Loc: expr.Loc, EndLoc: expr.EndLoc, Data: &js_ast.BObject{
			Properties: properties,
		}}, invalidLog

	default:
		invalidLog.invalidTokens = append(invalidLog.invalidTokens, expr.Range())
		return js_ast.Binding{}, invalidLog
	}
}

func (p *parser) parseExpr(level js_ast.L) js_ast.Expr {
	return p.parseExprCommon(level, nil, 0)
}

func (p *parser) parseExprWithFlags(level js_ast.L, flags exprFlag) js_ast.Expr {
	return p.parseExprCommon(level, nil, flags)
}

func (p *parser) parseExprOrBindings(level js_ast.L, errors *deferredErrors) js_ast.Expr {
	return p.parseExprCommon(level, errors, 0)
}

func (p *parser) parseExprCommon(level js_ast.L, errors *deferredErrors, flags exprFlag) js_ast.Expr {
	p.exprDepth++
	if p.exprDepth > maxNestingDepth {
		p.log.AddRangeError(&p.source, p.lexer.Range(), "This expression is nested too deeply")
		panic(js_lexer.LexerPanic{})
	}
	expr := p.parsePrefix(level, errors, flags)
	expr = p.parseSuffix(expr, level, errors, flags)
	p.exprDepth--
	return expr
}

func (p *parser) parseYieldExpr(loc logger.Loc) js_ast.Expr {
	// Parse a yield-from expression, which yields from an iterator
	isStar := p.lexer.Token == js_lexer.TAsterisk
	if isStar {
		if p.lexer.HasNewlineBefore {
			p.lexer.Unexpected()
		}
		p.lexer.Next()
	}

	var valueOrNil js_ast.Expr

	// The yield expression only has a value in certain cases
	switch p.lexer.Token {
	case js_lexer.TCloseBrace, js_lexer.TCloseBracket, js_lexer.TCloseParen,
		js_lexer.TColon, js_lexer.TComma, js_lexer.TSemicolon:

	default:
		if isStar || !p.lexer.HasNewlineBefore {
			valueOrNil = p.parseExpr(js_ast.LYield)
		}
	}

	return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.EYield{
		ValueOrNil: valueOrNil,
		IsStar:     isStar,
	}}
}

func (p *parser) parsePrefix(level js_ast.L, errors *deferredErrors, flags exprFlag) js_ast.Expr {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TSuper:
		superRange := p.lexer.Range()
		p.lexer.Next()

		switch p.lexer.Token {
		case js_lexer.TDot, js_lexer.TOpenBracket:
			if p.fnOrArrowDataParse.allowSuperProperty {
				return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: js_ast.ESuperShared}
			}
		}

		p.log.AddRangeError(&p.source, superRange, "Unexpected \"super\"")
		return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: js_ast.ESuperShared}

	case js_lexer.TOpenParen:
		p.lexer.Next()

		// Arrow functions aren't allowed in the middle of expressions
		if level > js_ast.LAssign {
			// Allow "in" inside parentheses
			oldAllowIn := p.allowIn
			p.allowIn = true

			value := p.parseExpr(js_ast.LLowest)
			p.markExprAsParenthesized(value)
			p.lexer.Expect(js_lexer.TCloseParen)

			p.allowIn = oldAllowIn
			if p.options.PreserveParens {
				value = js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.EParen{Value: value}}
			}
			return value
		}

		return p.parseParenExpr(loc, level, parenExprOpts{})

	case js_lexer.TFalse:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.EBoolean{Value: false}}

	case js_lexer.TTrue:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.EBoolean{Value: true}}

	case js_lexer.TNull:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: js_ast.ENullShared}

	case js_lexer.TThis:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: js_ast.EThisShared}

	case js_lexer.TPrivateIdentifier:
		if !p.allowIn || level >= js_ast.LCompare {
			p.lexer.Unexpected()
		}

		name := p.lexer.Identifier
		p.lexer.Next()

		// Check for "#foo in bar" right away
		if p.lexer.Token != js_lexer.TIn {
			p.lexer.Expected(js_lexer.TIn)
		}

		return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.EPrivateIdentifier{Name: name}}

	case js_lexer.TIdentifier:
		name := p.lexer.Identifier
		nameRange := p.lexer.Range()
		raw := p.lexer.Raw()
		p.lexer.Next()

		// Handle "await" and "yield" expressions
		switch name {
		case "async":
			if raw == "async" {
				return p.parseAsyncPrefixExpr(nameRange, level, flags)
			}

		case "await":
			switch p.fnOrArrowDataParse.await {
			case forbidAll:
				p.log.AddRangeError(&p.source, nameRange, "The keyword \"await\" cannot be used here")

			case allowExpr:
				if raw != "await" {
					p.log.AddRangeError(&p.source, nameRange, "The keyword \"await\" cannot be escaped")
				} else {
					if p.fnOrArrowDataParse.arrowArgErrors != nil {
						p.fnOrArrowDataParse.arrowArgErrors.invalidExprAwait = nameRange
					}
					value := p.parseExpr(js_ast.LPrefix)
					if p.lexer.Token == js_lexer.TAsteriskAsterisk {
						p.lexer.Unexpected()
					}
					return js_ast.Expr{Loc: loc, EndLoc: value.EndLoc, Data: &js_ast.EAwait{Value: value}}
				}

			case allowIdent:
				// Try to gracefully recover if "await" is used as an operator in a
				// context where it's only valid as an identifier
				if !p.lexer.HasNewlineBefore && !p.lexer.IsContextualKeyword("of") && p.tokenStartsOperand() {
					p.log.AddRangeError(&p.source, nameRange, "Cannot use \"await\" outside an async function")
					value := p.parseExpr(js_ast.LPrefix)
					return js_ast.Expr{Loc: loc, EndLoc: value.EndLoc, Data: &js_ast.EAwait{Value: value}}
				}
			}

		case "yield":
			switch p.fnOrArrowDataParse.yield {
			case forbidAll:
				p.log.AddRangeError(&p.source, nameRange, "The keyword \"yield\" cannot be used here")

			case allowExpr:
				if raw != "yield" {
					p.log.AddRangeError(&p.source, nameRange, "The keyword \"yield\" cannot be escaped")
				} else {
					if level > js_ast.LAssign {
						p.log.AddRangeError(&p.source, nameRange, "Cannot use a \"yield\" expression here without parentheses")
					}
					if p.fnOrArrowDataParse.arrowArgErrors != nil {
						p.fnOrArrowDataParse.arrowArgErrors.invalidExprYield = nameRange
					}
					return p.parseYieldExpr(loc)
				}

			case allowIdent:
				if !p.lexer.HasNewlineBefore && p.tokenStartsOperand() {
					p.log.AddRangeError(&p.source, nameRange, "Cannot use \"yield\" outside a generator function")
					return p.parseYieldExpr(loc)
				}
			}
		}

		// Handle the start of an arrow expression
		if p.lexer.Token == js_lexer.TEqualsGreaterThan && level <= js_ast.LAssign {
			arg := js_ast.Arg{Binding: js_ast.Binding{
				Loc:    loc,
				EndLoc: logger.Loc{Start: nameRange.End()},
				Data:   &js_ast.BIdentifier{Name: name},
			}}
			arrow := p.parseArrowBody([]js_ast.Arg{arg}, fnOrArrowDataParse{})
			return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: arrow}
		}

		return js_ast.Expr{Loc: loc, EndLoc: logger.Loc{Start: nameRange.End()}, Data: &js_ast.EIdentifier{Name: name}}

	case js_lexer.TStringLiteral:
		return p.parseStringLiteral()

	case js_lexer.TNoSubstitutionTemplateLiteral:
		headRange := p.lexer.TemplateContentsRange()
		headCooked := p.lexer.StringLiteral
		if headCooked == nil {
			p.log.AddRangeError(&p.source, p.lexer.BadEscapeRange, "Bad escape sequence in template literal")
		}
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.ETemplate{
			HeadRange:  headRange,
			HeadCooked: headCooked,
		}}

	case js_lexer.TTemplateHead:
		headRange := p.lexer.TemplateContentsRange()
		headCooked := p.lexer.StringLiteral
		if headCooked == nil {
			p.log.AddRangeError(&p.source, p.lexer.BadEscapeRange, "Bad escape sequence in template literal")
		}
		parts := p.parseTemplateParts(false /* includeRaw */)
		return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.ETemplate{
			HeadRange:  headRange,
			HeadCooked: headCooked,
			Parts:      parts,
		}}

	case js_lexer.TNumericLiteral:
		value := p.lexer.Number
		base := numberBaseForRaw(p.lexer.Raw(), value)
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.ENumber{Value: value, Base: base}}

	case js_lexer.TBigIntegerLiteral:
		value := p.lexer.Identifier
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.EBigInt{Value: value}}

	case js_lexer.TSlash, js_lexer.TSlashEquals:
		p.lexer.ScanRegExp()
		value := p.lexer.Raw()
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.ERegExp{Value: value}}

	case js_lexer.TVoid:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		if p.lexer.Token == js_lexer.TAsteriskAsterisk {
			p.lexer.Unexpected()
		}
		return js_ast.Expr{Loc: loc, EndLoc: value.EndLoc, Data: &js_ast.EUnary{Op: js_ast.UnOpVoid, Value: value}}

	case js_lexer.TTypeof:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		if p.lexer.Token == js_lexer.TAsteriskAsterisk {
			p.lexer.Unexpected()
		}
		return js_ast.Expr{Loc: loc, EndLoc: value.EndLoc, Data: &js_ast.EUnary{Op: js_ast.UnOpTypeof, Value: value}}

	case js_lexer.TDelete:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		if p.lexer.Token == js_lexer.TAsteriskAsterisk {
			p.lexer.Unexpected()
		}
		if index, ok := value.Data.(*js_ast.EIndex); ok {
			if private, ok := index.Index.Data.(*js_ast.EPrivateIdentifier); ok {
				name := private.Name
				r := logger.Range{Loc: index.Index.Loc, Len: int32(len(name))}
				p.log.AddRangeError(&p.source, r, fmt.Sprintf("Deleting the private name %q is forbidden", name))
			}
		}
		return js_ast.Expr{Loc: loc, EndLoc: value.EndLoc, Data: &js_ast.EUnary{Op: js_ast.UnOpDelete, Value: value}}

	case js_lexer.TPlus:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		if p.lexer.Token == js_lexer.TAsteriskAsterisk {
			p.lexer.Unexpected()
		}
		return js_ast.Expr{Loc: loc, EndLoc: value.EndLoc, Data: &js_ast.EUnary{Op: js_ast.UnOpPos, Value: value}}

	case js_lexer.TMinus:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		if p.lexer.Token == js_lexer.TAsteriskAsterisk {
			p.lexer.Unexpected()
		}
		return js_ast.Expr{Loc: loc, EndLoc: value.EndLoc, Data: &js_ast.EUnary{Op: js_ast.UnOpNeg, Value: value}}

	case js_lexer.TTilde:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		if p.lexer.Token == js_lexer.TAsteriskAsterisk {
			p.lexer.Unexpected()
		}
		return js_ast.Expr{Loc: loc, EndLoc: value.EndLoc, Data: &js_ast.EUnary{Op: js_ast.UnOpCmpl, Value: value}}

	case js_lexer.TExclamation:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		if p.lexer.Token == js_lexer.TAsteriskAsterisk {
			p.lexer.Unexpected()
		}
		return js_ast.Expr{Loc: loc, EndLoc: value.EndLoc, Data: &js_ast.EUnary{Op: js_ast.UnOpNot, Value: value}}

	case js_lexer.TMinusMinus:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		p.validateAssignTarget(value, js_ast.AssignTargetUpdate)
		return js_ast.Expr{Loc: loc, EndLoc: value.EndLoc, Data: &js_ast.EUnary{Op: js_ast.UnOpPreDec, Value: value}}

	case js_lexer.TPlusPlus:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		p.validateAssignTarget(value, js_ast.AssignTargetUpdate)
		return js_ast.Expr{Loc: loc, EndLoc: value.EndLoc, Data: &js_ast.EUnary{Op: js_ast.UnOpPreInc, Value: value}}

	case js_lexer.TFunction:
		return p.parseFnExpr(loc, false /* isAsync */)

	case js_lexer.TNew:
		p.lexer.Next()

		// Special-case the "new.target" expression here
		if p.lexer.Token == js_lexer.TDot {
			p.lexer.Next()
			if p.lexer.Token != js_lexer.TIdentifier || p.lexer.Raw() != "target" {
				p.lexer.Unexpected()
			}
			p.lexer.Next()
			return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: js_ast.ENewTargetShared}
		}

		target := p.parseExprWithFlags(js_ast.LMember, flags)
		endLoc := target.EndLoc

		// Type arguments are erased: "new Foo<number>()" is just "new Foo()"
		if inst, ok := target.Data.(*js_ast.ETSInstantiation); ok {
			target = inst.Value
		}

		if js_ast.IsOptionalChain(target) {
			p.log.AddRangeError(&p.source, target.Range(), "Cannot use an optional chain in a \"new\" expression")
		}

		// The call parentheses are optional: "new Date"
		var args []js_ast.Expr
		if p.lexer.Token == js_lexer.TOpenParen {
			args = p.parseCallArgs()
			endLoc = p.endLoc()
		}

		return js_ast.Expr{Loc: loc, EndLoc: endLoc, Data: &js_ast.ENew{Target: target, Args: args}}

	case js_lexer.TOpenBracket:
		p.lexer.Next()
		items := []js_ast.Expr{}
		selfErrors := deferredErrors{}
		commaAfterSpread := logger.Loc{}

		// Allow "in" inside arrays
		oldAllowIn := p.allowIn
		p.allowIn = true

		for p.lexer.Token != js_lexer.TCloseBracket {
			switch p.lexer.Token {
			case js_lexer.TComma:
				// An elided element
				items = append(items, js_ast.Expr{Loc: p.lexer.Loc(), EndLoc: p.lexer.Loc(), Data: js_ast.EMissingShared})

			case js_lexer.TDotDotDot:
				dotsLoc := p.lexer.Loc()
				p.lexer.Next()
				item := p.parseExprOrBindings(js_ast.LComma, &selfErrors)
				items = append(items, js_ast.Expr{Loc: dotsLoc, EndLoc: item.EndLoc, Data: &js_ast.ESpread{Value: item}})

				// Commas are not allowed here when destructuring
				if p.lexer.Token == js_lexer.TComma {
					commaAfterSpread = p.lexer.Loc()
				}

			default:
				item := p.parseExprOrBindings(js_ast.LComma, &selfErrors)
				items = append(items, item)
			}

			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
		}

		p.lexer.Expect(js_lexer.TCloseBracket)
		p.allowIn = oldAllowIn

		if p.willNeedBindingPattern() {
			// Is this a binding pattern?
		} else if errors == nil {
			// Is this an expression?
			p.logExprErrors(&selfErrors)
		} else {
			// In this case, we can't distinguish between the two yet
			selfErrors.mergeInto(errors)
		}

		return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.EArray{
			Items:            items,
			CommaAfterSpread: commaAfterSpread,
		}}

	case js_lexer.TOpenBrace:
		p.lexer.Next()
		properties := []js_ast.Property{}
		selfErrors := deferredErrors{}
		commaAfterSpread := logger.Loc{}

		// Allow "in" inside object literals
		oldAllowIn := p.allowIn
		p.allowIn = true

		for p.lexer.Token != js_lexer.TCloseBrace {
			if p.lexer.Token == js_lexer.TDotDotDot {
				p.lexer.Next()
				value := p.parseExpr(js_ast.LComma)
				properties = append(properties, js_ast.Property{
					Kind:       js_ast.PropertySpread,
					ValueOrNil: value,
				})

				// Commas are not allowed here when destructuring
				if p.lexer.Token == js_lexer.TComma {
					commaAfterSpread = p.lexer.Loc()
				}
			} else {
				property := p.parseProperty(js_ast.PropertyNormal, propertyOpts{}, &selfErrors)
				properties = append(properties, property)
			}

			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
		}

		p.lexer.Expect(js_lexer.TCloseBrace)
		p.allowIn = oldAllowIn

		if p.willNeedBindingPattern() {
			// Is this a binding pattern?
		} else if errors == nil {
			// Is this an expression?
			p.logExprErrors(&selfErrors)
		} else {
			// In this case, we can't distinguish between the two yet
			selfErrors.mergeInto(errors)
		}

		return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.EObject{
			Properties:       properties,
			CommaAfterSpread: commaAfterSpread,
		}}

	case js_lexer.TLessThan:
		// This is a very complicated and highly ambiguous area of TypeScript
		// syntax. Many similar-looking things are overloaded.
		//
		// A type cast:
		//   <A>(x)
		//   <[]>(x)
		//   <A[]>(x)
		//
		// An arrow function with type parameters:
		//   <A>(x) => {}
		//   <A, B>(x) => {}
		//   <A = B>(x) => {}
		//   <A extends B>(x) => {}
		if p.options.TS {
			// "<T>(x)"
			// "<T>(x) => {}"
			if p.trySkipTypeScriptTypeParametersThenOpenParenWithBacktracking() {
				p.lexer.Expect(js_lexer.TOpenParen)
				return p.parseParenExpr(loc, level, parenExprOpts{forceArrowFn: true})
			}

			// "<T>x"
			p.lexer.Next()
			p.skipTypeScriptType(js_ast.LLowest)
			p.lexer.ExpectGreaterThan()
			return p.parsePrefix(level, errors, flags)
		}

		p.lexer.Unexpected()
		return js_ast.Expr{}

	case js_lexer.TImport:
		p.lexer.Next()
		return p.parseImportExpr(loc, level)

	default:
		p.lexer.Unexpected()
		return js_ast.Expr{}
	}
}

func (p *parser) parseImportExpr(loc logger.Loc, level js_ast.L) js_ast.Expr {
	// Parse an "import.meta" expression
	if p.lexer.Token == js_lexer.TDot {
		p.lexer.Next()
		if p.lexer.IsContextualKeyword("meta") {
			p.lexer.Next()
			return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: js_ast.EImportMetaShared}
		}
		p.lexer.ExpectedString("\"meta\"")
	}

	if level > js_ast.LCall {
		r := js_lexer.RangeOfIdentifier(p.source, loc)
		p.log.AddRangeError(&p.source, r, "Cannot use an \"import\" expression here without parentheses")
	}

	// Allow "in" inside call arguments
	oldAllowIn := p.allowIn
	p.allowIn = true

	p.lexer.Expect(js_lexer.TOpenParen)

	value := p.parseExpr(js_ast.LComma)
	var optionsOrNil js_ast.Expr

	if p.lexer.Token == js_lexer.TComma {
		// "import('./foo.json', )"
		p.lexer.Next()

		if p.lexer.Token != js_lexer.TCloseParen {
			// "import('./foo.json', { with: { type: 'json' } })"
			optionsOrNil = p.parseExpr(js_ast.LComma)

			if p.lexer.Token == js_lexer.TComma {
				// "import('./foo.json', { with: { type: 'json' } }, )"
				p.lexer.Next()
			}
		}
	}

	p.lexer.Expect(js_lexer.TCloseParen)

	p.allowIn = oldAllowIn
	return js_ast.Expr{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.EImportCall{
		Expr:         value,
		OptionsOrNil: optionsOrNil,
	}}
}

func (p *parser) parseSuffix(left js_ast.Expr, level js_ast.L, errors *deferredErrors, flags exprFlag) js_ast.Expr {
	optionalChain := js_ast.OptionalChainNone

	for {
		// The only suffix that can follow an arrow function body is a comma
		if p.lexer.Loc() == p.afterArrowBodyLoc {
			for {
				switch p.lexer.Token {
				case js_lexer.TComma:
					if level >= js_ast.LComma {
						return left
					}
					p.lexer.Next()
					right := p.parseExpr(js_ast.LComma)
					left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{
						Op:    js_ast.BinOpComma,
						Left:  left,
						Right: right,
					}}

				default:
					return left
				}
			}
		}

		// Stop now if this token is forbidden to follow a TypeScript "as" cast
		if p.lexer.Loc() == p.forbidSuffixAfterAsLoc {
			return left
		}

		// Reset the optional chain flag by default. That way we won't accidentally
		// treat "c.d" as OptionalChainContinue in "a?.b + c.d" (note that "a?.b"
		// is OptionalChainStart and "c.d" is OptionalChainNone)
		oldOptionalChain := optionalChain
		optionalChain = js_ast.OptionalChainNone

		// An optional chain ends just before the first token that cannot extend it
		if oldOptionalChain != js_ast.OptionalChainNone && !p.tokenCanContinueChain() {
			switch p.lexer.Token {
			case js_lexer.TNoSubstitutionTemplateLiteral, js_lexer.TTemplateHead:
				p.log.AddRangeError(&p.source, p.lexer.Range(), "Template literals cannot have an optional chain as a tag")
			}
			left = js_ast.Expr{Loc: left.Loc, EndLoc: left.EndLoc, Data: &js_ast.EChain{Value: left}}
			oldOptionalChain = js_ast.OptionalChainNone
		}

		switch p.lexer.Token {
		case js_lexer.TDot:
			p.lexer.Next()

			if p.lexer.Token == js_lexer.TPrivateIdentifier {
				// "a.#b"
				// "a?.b.#c"
				if _, ok := left.Data.(*js_ast.ESuper); ok {
					p.lexer.Expected(js_lexer.TIdentifier)
				}
				name := p.lexer.Identifier
				nameLoc := p.lexer.Loc()
				p.lexer.Next()
				left = js_ast.Expr{Loc: left.Loc, EndLoc: p.endLoc(), Data: &js_ast.EIndex{
					Target:        left,
					Index:         js_ast.Expr{Loc: nameLoc, EndLoc: p.endLoc(), Data: &js_ast.EPrivateIdentifier{Name: name}},
					OptionalChain: oldOptionalChain,
				}}
			} else {
				// "a.b"
				// "a?.b.c"
				if !p.lexer.IsIdentifierOrKeyword() {
					p.lexer.Expect(js_lexer.TIdentifier)
				}
				name := p.lexer.Identifier
				nameLoc := p.lexer.Loc()
				p.lexer.Next()
				left = js_ast.Expr{Loc: left.Loc, EndLoc: p.endLoc(), Data: &js_ast.EDot{
					Target:        left,
					Name:          name,
					NameLoc:       nameLoc,
					OptionalChain: oldOptionalChain,
				}}
			}

			optionalChain = oldOptionalChain

		case js_lexer.TQuestionDot:
			questionDotRange := p.lexer.Range()
			p.lexer.Next()

			switch p.lexer.Token {
			case js_lexer.TOpenBracket:
				// "a?.[b]"
				p.lexer.Next()

				// Allow "in" inside the brackets
				oldAllowIn := p.allowIn
				p.allowIn = true

				index := p.parseExpr(js_ast.LLowest)

				p.allowIn = oldAllowIn

				p.lexer.Expect(js_lexer.TCloseBracket)
				left = js_ast.Expr{Loc: left.Loc, EndLoc: p.endLoc(), Data: &js_ast.EIndex{
					Target:        left,
					Index:         index,
					OptionalChain: js_ast.OptionalChainStart,
				}}

			case js_lexer.TOpenParen:
				// "a?.()"
				if level >= js_ast.LCall {
					p.log.AddRangeError(&p.source, questionDotRange, "Cannot use an optional chain in a \"new\" expression")
					return left
				}
				args := p.parseCallArgs()
				left = js_ast.Expr{Loc: left.Loc, EndLoc: p.endLoc(), Data: &js_ast.ECall{
					Target:        left,
					Args:          args,
					OptionalChain: js_ast.OptionalChainStart,
				}}

			case js_lexer.TLessThan:
				// "a?.<T>()"
				if !p.options.TS {
					p.lexer.Expected(js_lexer.TIdentifier)
				}
				p.skipTypeScriptTypeArguments()
				if p.lexer.Token != js_lexer.TOpenParen {
					p.lexer.Expected(js_lexer.TOpenParen)
				}
				if level >= js_ast.LCall {
					p.log.AddRangeError(&p.source, questionDotRange, "Cannot use an optional chain in a \"new\" expression")
					return left
				}
				args := p.parseCallArgs()
				left = js_ast.Expr{Loc: left.Loc, EndLoc: p.endLoc(), Data: &js_ast.ECall{
					Target:        left,
					Args:          args,
					OptionalChain: js_ast.OptionalChainStart,
				}}

			default:
				if p.lexer.Token == js_lexer.TPrivateIdentifier {
					// "a?.#b"
					name := p.lexer.Identifier
					nameLoc := p.lexer.Loc()
					p.lexer.Next()
					left = js_ast.Expr{Loc: left.Loc, EndLoc: p.endLoc(), Data: &js_ast.EIndex{
						Target:        left,
						Index:         js_ast.Expr{Loc: nameLoc, EndLoc: p.endLoc(), Data: &js_ast.EPrivateIdentifier{Name: name}},
						OptionalChain: js_ast.OptionalChainStart,
					}}
				} else {
					// "a?.b"
					if !p.lexer.IsIdentifierOrKeyword() {
						p.lexer.Expect(js_lexer.TIdentifier)
					}
					name := p.lexer.Identifier
					nameLoc := p.lexer.Loc()
					p.lexer.Next()
					left = js_ast.Expr{Loc: left.Loc, EndLoc: p.endLoc(), Data: &js_ast.EDot{
						Target:        left,
						Name:          name,
						NameLoc:       nameLoc,
						OptionalChain: js_ast.OptionalChainStart,
					}}
				}
			}

			optionalChain = js_ast.OptionalChainContinue

		case js_lexer.TNoSubstitutionTemplateLiteral:
			// "a`b`"
			headRange := p.lexer.TemplateContentsRange()
			headCooked := p.lexer.StringLiteral
			headRaw := p.lexer.RawTemplateContents()
			if inst, ok := left.Data.(*js_ast.ETSInstantiation); ok {
				left = inst.Value
			}
			p.lexer.Next()
			left = js_ast.Expr{Loc: left.Loc, EndLoc: p.endLoc(), Data: &js_ast.ETemplate{
				TagOrNil:   left,
				HeadRange:  headRange,
				HeadCooked: headCooked,
				HeadRaw:    headRaw,
			}}

		case js_lexer.TTemplateHead:
			// "a`b${c}`"
			headRange := p.lexer.TemplateContentsRange()
			headCooked := p.lexer.StringLiteral
			headRaw := p.lexer.RawTemplateContents()
			if inst, ok := left.Data.(*js_ast.ETSInstantiation); ok {
				left = inst.Value
			}
			parts := p.parseTemplateParts(true /* includeRaw */)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: p.endLoc(), Data: &js_ast.ETemplate{
				TagOrNil:   left,
				HeadRange:  headRange,
				HeadCooked: headCooked,
				HeadRaw:    headRaw,
				Parts:      parts,
			}}

		case js_lexer.TOpenBracket:
			p.lexer.Next()

			// Allow "in" inside the brackets
			oldAllowIn := p.allowIn
			p.allowIn = true

			index := p.parseExpr(js_ast.LLowest)

			p.allowIn = oldAllowIn

			p.lexer.Expect(js_lexer.TCloseBracket)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: p.endLoc(), Data: &js_ast.EIndex{
				Target:        left,
				Index:         index,
				OptionalChain: oldOptionalChain,
			}}
			optionalChain = oldOptionalChain

		case js_lexer.TOpenParen:
			if level >= js_ast.LCall {
				return left
			}
			if inst, ok := left.Data.(*js_ast.ETSInstantiation); ok {
				left = inst.Value
			}
			args := p.parseCallArgs()
			left = js_ast.Expr{Loc: left.Loc, EndLoc: p.endLoc(), Data: &js_ast.ECall{
				Target:        left,
				Args:          args,
				OptionalChain: oldOptionalChain,
			}}
			optionalChain = oldOptionalChain

		case js_lexer.TQuestion:
			if level >= js_ast.LConditional {
				return left
			}
			p.lexer.Next()

			// Stop now if we're parsing one of these:
			// "(a?) => {}"
			// "(a?: b) => {}"
			// "(a?, b?) => {}"
			if p.options.TS && left.Loc == p.latestArrowArgLoc && (p.lexer.Token == js_lexer.TColon ||
				p.lexer.Token == js_lexer.TCloseParen || p.lexer.Token == js_lexer.TComma) {
				if errors == nil {
					p.lexer.Unexpected()
				}
				errors.invalidExprAfterQuestion = p.lexer.Range()
				return left
			}

			// Allow "in" in between "?" and ":"
			oldAllowIn := p.allowIn
			p.allowIn = true

			yes := p.parseExpr(js_ast.LComma)

			p.allowIn = oldAllowIn

			p.lexer.Expect(js_lexer.TColon)
			no := p.parseExpr(js_ast.LComma)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: no.EndLoc, Data: &js_ast.EIf{Test: left, Yes: yes, No: no}}

		case js_lexer.TExclamation:
			// Skip over TypeScript non-null assertions
			if p.lexer.HasNewlineBefore {
				return left
			}
			if !p.options.TS {
				p.lexer.Unexpected()
			}
			p.lexer.Next()
			left = js_ast.Expr{Loc: left.Loc, EndLoc: p.endLoc(), Data: &js_ast.ETSNonNull{Value: left}}
			optionalChain = oldOptionalChain

		case js_lexer.TMinusMinus:
			if p.lexer.HasNewlineBefore || level >= js_ast.LPostfix {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetUpdate)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: p.endLoc(), Data: &js_ast.EUnary{Op: js_ast.UnOpPostDec, Value: left}}

		case js_lexer.TPlusPlus:
			if p.lexer.HasNewlineBefore || level >= js_ast.LPostfix {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetUpdate)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: p.endLoc(), Data: &js_ast.EUnary{Op: js_ast.UnOpPostInc, Value: left}}

		case js_lexer.TComma:
			if level >= js_ast.LComma {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LComma)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{
				Op:    js_ast.BinOpComma,
				Left:  left,
				Right: right,
			}}

		case js_lexer.TPlus:
			if level >= js_ast.LAdd {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LAdd)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpAdd, Left: left, Right: right}}

		case js_lexer.TPlusEquals:
			if level >= js_ast.LAssign {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetUpdate)
			right := p.parseExpr(js_ast.LAssign - 1)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpAddAssign, Left: left, Right: right}}

		case js_lexer.TMinus:
			if level >= js_ast.LAdd {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LAdd)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpSub, Left: left, Right: right}}

		case js_lexer.TMinusEquals:
			if level >= js_ast.LAssign {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetUpdate)
			right := p.parseExpr(js_ast.LAssign - 1)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpSubAssign, Left: left, Right: right}}

		case js_lexer.TAsterisk:
			if level >= js_ast.LMultiply {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LMultiply)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpMul, Left: left, Right: right}}

		case js_lexer.TAsteriskAsterisk:
			if level >= js_ast.LExponentiation {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LExponentiation - 1)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpPow, Left: left, Right: right}}

		case js_lexer.TAsteriskAsteriskEquals:
			if level >= js_ast.LAssign {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetUpdate)
			right := p.parseExpr(js_ast.LAssign - 1)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpPowAssign, Left: left, Right: right}}

		case js_lexer.TAsteriskEquals:
			if level >= js_ast.LAssign {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetUpdate)
			right := p.parseExpr(js_ast.LAssign - 1)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpMulAssign, Left: left, Right: right}}

		case js_lexer.TPercent:
			if level >= js_ast.LMultiply {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LMultiply)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpRem, Left: left, Right: right}}

		case js_lexer.TPercentEquals:
			if level >= js_ast.LAssign {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetUpdate)
			right := p.parseExpr(js_ast.LAssign - 1)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpRemAssign, Left: left, Right: right}}

		case js_lexer.TSlash:
			if level >= js_ast.LMultiply {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LMultiply)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpDiv, Left: left, Right: right}}

		case js_lexer.TSlashEquals:
			if level >= js_ast.LAssign {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetUpdate)
			right := p.parseExpr(js_ast.LAssign - 1)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpDivAssign, Left: left, Right: right}}

		case js_lexer.TEqualsEquals:
			if level >= js_ast.LEquals {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LEquals)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpLooseEq, Left: left, Right: right}}

		case js_lexer.TExclamationEquals:
			if level >= js_ast.LEquals {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LEquals)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpLooseNe, Left: left, Right: right}}

		case js_lexer.TEqualsEqualsEquals:
			if level >= js_ast.LEquals {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LEquals)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpStrictEq, Left: left, Right: right}}

		case js_lexer.TExclamationEqualsEquals:
			if level >= js_ast.LEquals {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LEquals)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpStrictNe, Left: left, Right: right}}

		case js_lexer.TLessThan:
			// TypeScript allows type arguments to be specified with angle brackets
			// inside an expression. Example: "foo<number>(1)"
			if p.options.TS {
				lessThanLoc := p.lexer.Loc()
				if p.trySkipTypeScriptTypeArgumentsWithBacktracking() {
					left = js_ast.Expr{Loc: left.Loc, EndLoc: p.endLoc(), Data: &js_ast.ETSInstantiation{
						Value:         left,
						TypeArgsRange: logger.Range{Loc: lessThanLoc, Len: p.lexer.PrevTokenEnd - lessThanLoc.Start},
					}}
					optionalChain = oldOptionalChain
					continue
				}
			}

			if oldOptionalChain != js_ast.OptionalChainNone {
				// The chain ended here after all: "a?.b < c"
				left = js_ast.Expr{Loc: left.Loc, EndLoc: left.EndLoc, Data: &js_ast.EChain{Value: left}}
			}
			if level >= js_ast.LCompare {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LCompare)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpLt, Left: left, Right: right}}

		case js_lexer.TLessThanEquals:
			if level >= js_ast.LCompare {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LCompare)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpLe, Left: left, Right: right}}

		case js_lexer.TGreaterThan:
			if level >= js_ast.LCompare {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LCompare)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpGt, Left: left, Right: right}}

		case js_lexer.TGreaterThanEquals:
			if level >= js_ast.LCompare {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LCompare)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpGe, Left: left, Right: right}}

		case js_lexer.TLessThanLessThan:
			if level >= js_ast.LShift {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LShift)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpShl, Left: left, Right: right}}

		case js_lexer.TLessThanLessThanEquals:
			if level >= js_ast.LAssign {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetUpdate)
			right := p.parseExpr(js_ast.LAssign - 1)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpShlAssign, Left: left, Right: right}}

		case js_lexer.TGreaterThanGreaterThan:
			if level >= js_ast.LShift {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LShift)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpShr, Left: left, Right: right}}

		case js_lexer.TGreaterThanGreaterThanEquals:
			if level >= js_ast.LAssign {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetUpdate)
			right := p.parseExpr(js_ast.LAssign - 1)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpShrAssign, Left: left, Right: right}}

		case js_lexer.TGreaterThanGreaterThanGreaterThan:
			if level >= js_ast.LShift {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LShift)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpUShr, Left: left, Right: right}}

		case js_lexer.TGreaterThanGreaterThanGreaterThanEquals:
			if level >= js_ast.LAssign {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetUpdate)
			right := p.parseExpr(js_ast.LAssign - 1)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpUShrAssign, Left: left, Right: right}}

		case js_lexer.TQuestionQuestion:
			if level >= js_ast.LNullishCoalescing {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LNullishCoalescing)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpNullishCoalescing, Left: left, Right: right}}

			// Prevent "&&" and "||" from being used with "??" from the left
			if p.lexer.Token == js_lexer.TBarBar || p.lexer.Token == js_lexer.TAmpersandAmpersand {
				p.lexer.Unexpected()
			}

		case js_lexer.TQuestionQuestionEquals:
			if level >= js_ast.LAssign {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetUpdate)
			right := p.parseExpr(js_ast.LAssign - 1)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpNullishCoalescingAssign, Left: left, Right: right}}

		case js_lexer.TBarBar:
			if level >= js_ast.LLogicalOr {
				return left
			}

			// Prevent "||" inside "??" from the right
			if level == js_ast.LNullishCoalescing {
				p.lexer.Unexpected()
			}

			p.lexer.Next()
			right := p.parseExpr(js_ast.LLogicalOr)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpLogicalOr, Left: left, Right: right}}

			if level < js_ast.LNullishCoalescing {
				left = p.parseSuffix(left, js_ast.LNullishCoalescing+1, nil, flags)

				// Prevent "??" inside "||" from the left
				if p.lexer.Token == js_lexer.TQuestionQuestion {
					p.lexer.Unexpected()
				}
			}

		case js_lexer.TBarBarEquals:
			if level >= js_ast.LAssign {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetUpdate)
			right := p.parseExpr(js_ast.LAssign - 1)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpLogicalOrAssign, Left: left, Right: right}}

		case js_lexer.TAmpersandAmpersand:
			if level >= js_ast.LLogicalAnd {
				return left
			}

			// Prevent "&&" inside "??" from the right
			if level == js_ast.LNullishCoalescing {
				p.lexer.Unexpected()
			}

			p.lexer.Next()
			right := p.parseExpr(js_ast.LLogicalAnd)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpLogicalAnd, Left: left, Right: right}}

			if level < js_ast.LNullishCoalescing {
				left = p.parseSuffix(left, js_ast.LNullishCoalescing+1, nil, flags)

				// Prevent "??" inside "&&" from the left
				if p.lexer.Token == js_lexer.TQuestionQuestion {
					p.lexer.Unexpected()
				}
			}

		case js_lexer.TAmpersandAmpersandEquals:
			if level >= js_ast.LAssign {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetUpdate)
			right := p.parseExpr(js_ast.LAssign - 1)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpLogicalAndAssign, Left: left, Right: right}}

		case js_lexer.TBar:
			if level >= js_ast.LBitwiseOr {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LBitwiseOr)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpBitwiseOr, Left: left, Right: right}}

		case js_lexer.TBarEquals:
			if level >= js_ast.LAssign {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetUpdate)
			right := p.parseExpr(js_ast.LAssign - 1)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpBitwiseOrAssign, Left: left, Right: right}}

		case js_lexer.TAmpersand:
			if level >= js_ast.LBitwiseAnd {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LBitwiseAnd)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpBitwiseAnd, Left: left, Right: right}}

		case js_lexer.TAmpersandEquals:
			if level >= js_ast.LAssign {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetUpdate)
			right := p.parseExpr(js_ast.LAssign - 1)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpBitwiseAndAssign, Left: left, Right: right}}

		case js_lexer.TCaret:
			if level >= js_ast.LBitwiseXor {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LBitwiseXor)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpBitwiseXor, Left: left, Right: right}}

		case js_lexer.TCaretEquals:
			if level >= js_ast.LAssign {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetUpdate)
			right := p.parseExpr(js_ast.LAssign - 1)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpBitwiseXorAssign, Left: left, Right: right}}

		case js_lexer.TEquals:
			if level >= js_ast.LAssign {
				return left
			}
			p.lexer.Next()
			p.validateAssignTarget(left, js_ast.AssignTargetReplace)
			left = js_ast.Assign(left, p.parseExpr(js_ast.LAssign-1))

		case js_lexer.TIn:
			if level >= js_ast.LCompare || !p.allowIn {
				return left
			}

			// Warn about "!a in b" instead of "!(a in b)"
			if e, ok := left.Data.(*js_ast.EUnary); ok && e.Op == js_ast.UnOpNot {
				p.log.AddRangeWarning(&p.source, left.Range(),
					"Suspicious use of the \"!\" operator inside the \"in\" operator")
			}

			p.lexer.Next()
			right := p.parseExpr(js_ast.LCompare)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpIn, Left: left, Right: right}}

		case js_lexer.TInstanceof:
			if level >= js_ast.LCompare {
				return left
			}

			// Warn about "!a instanceof b" instead of "!(a instanceof b)"
			if e, ok := left.Data.(*js_ast.EUnary); ok && e.Op == js_ast.UnOpNot {
				p.log.AddRangeWarning(&p.source, left.Range(),
					"Suspicious use of the \"!\" operator inside the \"instanceof\" operator")
			}

			p.lexer.Next()
			right := p.parseExpr(js_ast.LCompare)
			left = js_ast.Expr{Loc: left.Loc, EndLoc: right.EndLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpInstanceof, Left: left, Right: right}}

		default:
			// Handle the TypeScript "as" and "satisfies" operators
			if p.options.TS && level < js_ast.LCompare && !p.lexer.HasNewlineBefore &&
				(p.lexer.IsContextualKeyword("as") || p.lexer.IsContextualKeyword("satisfies")) {
				isSatisfies := p.lexer.Raw() == "satisfies"
				p.lexer.Next()
				typeStart := p.lexer.Loc()
				p.skipTypeScriptType(js_ast.LLowest)
				typeRange := logger.Range{Loc: typeStart, Len: p.lexer.PrevTokenEnd - typeStart.Start}
				if isSatisfies {
					left = js_ast.Expr{Loc: left.Loc, EndLoc: p.endLoc(), Data: &js_ast.ETSSatisfies{Value: left, TypeRange: typeRange}}
				} else {
					left = js_ast.Expr{Loc: left.Loc, EndLoc: p.endLoc(), Data: &js_ast.ETSAs{Value: left, TypeRange: typeRange}}
				}

				// These tokens are not allowed to follow a cast expression. This
				// forces the parser to error when they are used after a cast.
				switch p.lexer.Token {
				case js_lexer.TPlusPlus, js_lexer.TMinusMinus, js_lexer.TNoSubstitutionTemplateLiteral,
					js_lexer.TTemplateHead, js_lexer.TOpenParen, js_lexer.TOpenBracket, js_lexer.TQuestionDot:
					p.forbidSuffixAfterAsLoc = p.lexer.Loc()
					return left
				}
				if p.lexer.Token.IsAssign() {
					p.forbidSuffixAfterAsLoc = p.lexer.Loc()
					return left
				}
				continue
			}

			return left
		}
	}
}

func (p *parser) parseCallArgs() []js_ast.Expr {
	// Allow "in" inside call arguments
	oldAllowIn := p.allowIn
	p.allowIn = true

	args := []js_ast.Expr{}
	p.lexer.Expect(js_lexer.TOpenParen)

	for p.lexer.Token != js_lexer.TCloseParen {
		loc := p.lexer.Loc()
		isSpread := p.lexer.Token == js_lexer.TDotDotDot
		if isSpread {
			p.lexer.Next()
		}
		arg := p.parseExpr(js_ast.LComma)
		if isSpread {
			arg = js_ast.Expr{Loc: loc, EndLoc: arg.EndLoc, Data: &js_ast.ESpread{Value: arg}}
		}
		args = append(args, arg)
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TCloseParen)
	p.allowIn = oldAllowIn
	return args
}

// The raw text is only preserved for tagged template literals, since the
// cooked value can be undefined there while untagged literals require every
// escape sequence to be valid
func (p *parser) parseTemplateParts(includeRaw bool) []js_ast.TemplatePart {
	var parts []js_ast.TemplatePart

	// Allow "in" inside template literals
	oldAllowIn := p.allowIn
	p.allowIn = true

	for {
		p.lexer.Next()
		value := p.parseExpr(js_ast.LLowest)
		p.lexer.RescanCloseBraceAsTemplateToken()
		tailRange := p.lexer.TemplateContentsRange()
		tailCooked := p.lexer.StringLiteral
		if includeRaw {
			parts = append(parts, js_ast.TemplatePart{
				Value:      value,
				TailRange:  tailRange,
				TailCooked: tailCooked,
				TailRaw:    p.lexer.RawTemplateContents(),
			})
		} else {
			if tailCooked == nil {
				p.log.AddRangeError(&p.source, p.lexer.BadEscapeRange, "Bad escape sequence in template literal")
			}
			parts = append(parts, js_ast.TemplatePart{
				Value:      value,
				TailRange:  tailRange,
				TailCooked: tailCooked,
			})
		}
		if p.lexer.Token == js_lexer.TTemplateTail {
			p.lexer.Next()
			break
		}
	}

	p.allowIn = oldAllowIn

	return parts
}

// A statement that begins with "let", "using", or "await using" is a
// declaration only if the tokens after the keyword can continue one.
// Otherwise the keyword was just an identifier and this is an expression
// statement. This is the one place where the statement and expression
// grammars overlap, so the decision is made here for both the statement
// parser and the for-loop initializer parser.
func (p *parser) parseExprOrLetOrUsingStmt(opts parseStmtOpts) (js_ast.Expr, js_ast.Stmt, []js_ast.Decl) {
	if p.lexer.Token != js_lexer.TIdentifier {
		return p.parseExprCommonWithStmtFlags(opts), js_ast.Stmt{}, nil
	}

	keywordRange := p.lexer.Range()
	raw := p.lexer.Raw()

	if raw == "let" {
		p.lexer.Next()

		switch p.lexer.Token {
		case js_lexer.TIdentifier, js_lexer.TOpenBracket, js_lexer.TOpenBrace:
			// In a single-statement context only "let [" continues as a
			// declaration; anything else means "let" was an identifier
			if opts.lexicalDecl == lexicalDeclAllowAll || p.lexer.Token == js_lexer.TOpenBracket {
				if opts.lexicalDecl != lexicalDeclAllowAll {
					p.forbidLexicalDecl(keywordRange.Loc)
				}

				// It's a "let" declaration
				decls := p.parseDecls(js_ast.LocalLet, opts)
				if !opts.isForLoopInit && !opts.isTypeScriptDeclare {
					p.requirePatternInitializers(decls)
				}
				return js_ast.Expr{}, js_ast.Stmt{Loc: keywordRange.Loc, EndLoc: p.endLoc(), Data: &js_ast.SLocal{
					Kind:        js_ast.LocalLet,
					Decls:       decls,
					IsTSDeclare: opts.isTypeScriptDeclare,
				}}, decls
			}
		}

		// "let" is just an identifier here
		expr := js_ast.Expr{Loc: keywordRange.Loc, EndLoc: logger.Loc{Start: keywordRange.End()}, Data: &js_ast.EIdentifier{Name: "let"}}
		return p.parseSuffix(expr, js_ast.LLowest, nil, 0), js_ast.Stmt{}, nil
	}

	if raw == "using" && opts.lexicalDecl == lexicalDeclAllowAll {
		p.lexer.Next()

		// In a for-of head "using" may still be the loop variable: "for (using of x)"
		if p.lexer.Token == js_lexer.TIdentifier && !p.lexer.HasNewlineBefore &&
			(!opts.isForLoopInit || p.lexer.Raw() != "of") {
			// It's a "using" declaration
			if p.lexer.Raw() == "await" && p.fnOrArrowDataParse.await == allowIdent {
				// parseBinding already rejects "await" in async contexts
				p.log.AddRangeError(&p.source, p.lexer.Range(), "Cannot use \"await\" as an identifier here")
			}
			decls := p.parseDecls(js_ast.LocalUsing, opts)
			if !opts.isForLoopInit {
				p.requireInitializers(js_ast.LocalUsing, decls)
			}
			p.forbidUsingPatterns(decls)
			return js_ast.Expr{}, js_ast.Stmt{Loc: keywordRange.Loc, EndLoc: p.endLoc(), Data: &js_ast.SLocal{
				Kind:        js_ast.LocalUsing,
				Decls:       decls,
				IsTSDeclare: opts.isTypeScriptDeclare,
			}}, decls
		}

		// "using" is just an identifier here
		expr := js_ast.Expr{Loc: keywordRange.Loc, EndLoc: logger.Loc{Start: keywordRange.End()}, Data: &js_ast.EIdentifier{Name: "using"}}
		return p.parseSuffix(expr, js_ast.LLowest, nil, 0), js_ast.Stmt{}, nil
	}

	if raw == "await" && p.fnOrArrowDataParse.await == allowExpr && opts.lexicalDecl == lexicalDeclAllowAll {
		p.lexer.Next()

		if p.lexer.IsContextualKeyword("using") && !p.lexer.HasNewlineBefore {
			usingRange := p.lexer.Range()
			p.lexer.Next()

			if p.lexer.Token == js_lexer.TIdentifier && !p.lexer.HasNewlineBefore &&
				(!opts.isForLoopInit || p.lexer.Raw() != "of") {
				// It's an "await using" declaration
				decls := p.parseDecls(js_ast.LocalAwaitUsing, opts)
				if !opts.isForLoopInit {
					p.requireInitializers(js_ast.LocalAwaitUsing, decls)
				}
				p.forbidUsingPatterns(decls)
				return js_ast.Expr{}, js_ast.Stmt{Loc: keywordRange.Loc, EndLoc: p.endLoc(), Data: &js_ast.SLocal{
					Kind:        js_ast.LocalAwaitUsing,
					Decls:       decls,
					IsTSDeclare: opts.isTypeScriptDeclare,
				}}, decls
			}

			// "await using" is just an await expression here
			value := js_ast.Expr{Loc: usingRange.Loc, EndLoc: logger.Loc{Start: usingRange.End()}, Data: &js_ast.EIdentifier{Name: "using"}}
			value = p.parseSuffix(value, js_ast.LPrefix, nil, 0)
			if p.lexer.Token == js_lexer.TAsteriskAsterisk {
				p.lexer.Unexpected()
			}
			expr := js_ast.Expr{Loc: keywordRange.Loc, EndLoc: value.EndLoc, Data: &js_ast.EAwait{Value: value}}
			return p.parseSuffix(expr, js_ast.LLowest, nil, 0), js_ast.Stmt{}, nil
		}

		// A plain "await" expression
		value := p.parseExpr(js_ast.LPrefix)
		if p.lexer.Token == js_lexer.TAsteriskAsterisk {
			p.lexer.Unexpected()
		}
		expr := js_ast.Expr{Loc: keywordRange.Loc, EndLoc: value.EndLoc, Data: &js_ast.EAwait{Value: value}}
		return p.parseSuffix(expr, js_ast.LLowest, nil, 0), js_ast.Stmt{}, nil
	}

	return p.parseExprCommonWithStmtFlags(opts), js_ast.Stmt{}, nil
}

func (p *parser) parseExprCommonWithStmtFlags(opts parseStmtOpts) js_ast.Expr {
	var flags exprFlag
	if opts.isForLoopInit {
		flags |= exprFlagForLoopInit
	}
	if opts.isForAwaitLoopInit {
		flags |= exprFlagForAwaitLoopInit
	}
	return p.parseExprCommon(js_ast.LLowest, nil, flags)
}

func (p *parser) parseDecls(kind js_ast.LocalKind, opts parseStmtOpts) []js_ast.Decl {
	decls := []js_ast.Decl{}

	for {
		// Forbid "let let" and "const let" but not "var let"
		if kind != js_ast.LocalVar && p.lexer.IsContextualKeyword("let") {
			p.log.AddRangeError(&p.source, p.lexer.Range(), "Cannot use \"let\" as an identifier here")
		}

		var valueOrNil js_ast.Expr
		local := p.parseBinding()

		var definiteRange logger.Range
		var tsTypeRange logger.Range

		// Skip over types
		if p.options.TS {
			// "let foo!: number" (the assertion is only valid on a plain
			// identifier binding)
			_, isIdentifierBinding := local.Data.(*js_ast.BIdentifier)
			isDefiniteAssignmentAssertion := isIdentifierBinding &&
				p.lexer.Token == js_lexer.TExclamation && !p.lexer.HasNewlineBefore
			if isDefiniteAssignmentAssertion {
				definiteRange = p.lexer.Range()
				p.lexer.Next()
			}

			// "let foo: number"
			if isDefiniteAssignmentAssertion || p.lexer.Token == js_lexer.TColon {
				p.lexer.Expect(js_lexer.TColon)
				typeStart := p.lexer.Loc()
				p.skipTypeScriptType(js_ast.LLowest)
				tsTypeRange = logger.Range{Loc: typeStart, Len: p.lexer.PrevTokenEnd - typeStart.Start}
			}
		}

		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			valueOrNil = p.parseExpr(js_ast.LComma)
		}

		decls = append(decls, js_ast.Decl{
			Binding:       local,
			DefiniteRange: definiteRange,
			TSTypeRange:   tsTypeRange,
			ValueOrNil:    valueOrNil,
		})

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	return decls
}

func (p *parser) requireInitializers(kind js_ast.LocalKind, decls []js_ast.Decl) {
	for _, d := range decls {
		if d.ValueOrNil.Data == nil {
			if kind.IsUsing() {
				r := js_lexer.RangeOfIdentifier(p.source, d.Binding.Loc)
				p.log.AddRangeError(&p.source, r, "using declarations must be initialized")
				continue
			}
			if id, ok := d.Binding.Data.(*js_ast.BIdentifier); ok {
				r := js_lexer.RangeOfIdentifier(p.source, d.Binding.Loc)
				p.log.AddRangeError(&p.source, r, fmt.Sprintf("The constant %q must be initialized", id.Name))
			} else {
				p.log.AddRangeError(&p.source, d.Binding.Range(), "This constant must be initialized")
			}
		}
	}
}

// A destructuring declaration always needs a value to destructure, even
// when the declaration kind would otherwise tolerate a missing initializer
func (p *parser) requirePatternInitializers(decls []js_ast.Decl) {
	for _, d := range decls {
		if d.ValueOrNil.Data == nil {
			if _, ok := d.Binding.Data.(*js_ast.BIdentifier); !ok {
				p.log.AddRangeError(&p.source, d.Binding.Range(), "This variable must be initialized")
			}
		}
	}
}

func (p *parser) forbidInitializers(decls []js_ast.Decl, loopType string, isVar bool) {
	for _, d := range decls {
		if d.ValueOrNil.Data != nil {
			if _, ok := d.Binding.Data.(*js_ast.BIdentifier); ok && isVar {
				// This is a weird special case. Initializers are allowed in "var"
				// statements with identifier bindings.
				continue
			}
			p.log.AddRangeError(&p.source, d.ValueOrNil.Range(),
				fmt.Sprintf("for-%s loop variables cannot have an initializer", loopType))
		}
	}
	if len(decls) > 1 {
		p.log.AddRangeError(&p.source, decls[1].Binding.Range(),
			fmt.Sprintf("for-%s loops must have a single declaration", loopType))
	}
}

func (p *parser) forbidUsingPatterns(decls []js_ast.Decl) {
	for _, d := range decls {
		if _, ok := d.Binding.Data.(*js_ast.BIdentifier); !ok {
			p.log.AddRangeError(&p.source, d.Binding.Range(), "using declarations cannot use a destructuring pattern")
		}
	}
}

func (p *parser) parseBinding() js_ast.Binding {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TIdentifier:
		name := p.lexer.Identifier
		if (p.fnOrArrowDataParse.await != allowIdent && name == "await") ||
			(p.fnOrArrowDataParse.yield != allowIdent && name == "yield") {
			p.log.AddRangeError(&p.source, p.lexer.Range(), fmt.Sprintf("Cannot use %q as an identifier here", name))
		}
		p.lexer.Next()
		return js_ast.Binding{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.BIdentifier{Name: name}}

	case js_lexer.TOpenBracket:
		p.lexer.Next()
		items := []js_ast.ArrayBinding{}
		hasSpread := false

		// "in" expressions are allowed
		oldAllowIn := p.allowIn
		p.allowIn = true

		for p.lexer.Token != js_lexer.TCloseBracket {
			if p.lexer.Token == js_lexer.TComma {
				binding := js_ast.Binding{Loc: p.lexer.Loc(), EndLoc: p.lexer.Loc(), Data: js_ast.BMissingShared}
				items = append(items, js_ast.ArrayBinding{Binding: binding})
			} else {
				if p.lexer.Token == js_lexer.TDotDotDot {
					p.lexer.Next()
					hasSpread = true
				}

				binding := p.parseBinding()

				var defaultValueOrNil js_ast.Expr
				if !hasSpread && p.lexer.Token == js_lexer.TEquals {
					p.lexer.Next()
					defaultValueOrNil = p.parseExpr(js_ast.LComma)
				}

				items = append(items, js_ast.ArrayBinding{Binding: binding, DefaultValueOrNil: defaultValueOrNil})

				// Commas after spread elements are not allowed
				if hasSpread && p.lexer.Token == js_lexer.TComma {
					p.log.AddRangeError(&p.source, p.lexer.Range(), "Unexpected \",\" after rest pattern")
					panic(js_lexer.LexerPanic{})
				}
			}

			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
		}

		p.allowIn = oldAllowIn

		p.lexer.Expect(js_lexer.TCloseBracket)
		return js_ast.Binding{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.BArray{
			Items:     items,
			HasSpread: hasSpread,
		}}

	case js_lexer.TOpenBrace:
		p.lexer.Next()
		properties := []js_ast.PropertyBinding{}

		// "in" expressions are allowed
		oldAllowIn := p.allowIn
		p.allowIn = true

		for p.lexer.Token != js_lexer.TCloseBrace {
			property := p.parsePropertyBinding()
			properties = append(properties, property)

			// Commas after spread elements are not allowed
			if property.IsSpread && p.lexer.Token == js_lexer.TComma {
				p.log.AddRangeError(&p.source, p.lexer.Range(), "Unexpected \",\" after rest pattern")
				panic(js_lexer.LexerPanic{})
			}

			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
		}

		p.allowIn = oldAllowIn

		p.lexer.Expect(js_lexer.TCloseBrace)
		return js_ast.Binding{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.BObject{
			Properties: properties,
		}}
	}

	p.lexer.Expect(js_lexer.TIdentifier)
	return js_ast.Binding{}
}

func (p *parser) parseFn(name *js_ast.LocName, data fnOrArrowDataParse) js_ast.Fn {
	var fn js_ast.Fn
	fn.Name = name
	fn.IsAsync = data.await == allowExpr
	fn.IsGenerator = data.yield == allowExpr
	p.lexer.Expect(js_lexer.TOpenParen)

	// Await and yield are not allowed in function arguments
	oldFnOrArrowData := p.fnOrArrowDataParse
	if data.await == allowExpr {
		p.fnOrArrowDataParse.await = forbidAll
	} else {
		p.fnOrArrowDataParse.await = allowIdent
	}
	if data.yield == allowExpr {
		p.fnOrArrowDataParse.yield = forbidAll
	} else {
		p.fnOrArrowDataParse.yield = allowIdent
	}

	// If "super" is allowed in the body, it's allowed in the arguments
	p.fnOrArrowDataParse.allowSuperProperty = data.allowSuperProperty

	for p.lexer.Token != js_lexer.TCloseParen {
		// Skip over "this" type annotations
		if p.options.TS && p.lexer.Token == js_lexer.TThis {
			p.lexer.Next()
			if p.lexer.Token == js_lexer.TColon {
				p.lexer.Next()
				p.skipTypeScriptType(js_ast.LLowest)
			}
			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
			continue
		}

		if !fn.HasRestArg && p.lexer.Token == js_lexer.TDotDotDot {
			p.lexer.Next()
			fn.HasRestArg = true
		}

		arg := p.parseBinding()

		var tsTypeRange logger.Range
		if p.options.TS {
			// "function foo(a?) {}"
			if p.lexer.Token == js_lexer.TQuestion {
				p.lexer.Next()
			}

			// "function foo(a: any) {}"
			if p.lexer.Token == js_lexer.TColon {
				p.lexer.Next()
				typeStart := p.lexer.Loc()
				p.skipTypeScriptType(js_ast.LLowest)
				tsTypeRange = logger.Range{Loc: typeStart, Len: p.lexer.PrevTokenEnd - typeStart.Start}
			}
		}

		var defaultValueOrNil js_ast.Expr
		if !fn.HasRestArg && p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			defaultValueOrNil = p.parseExpr(js_ast.LComma)
		}

		fn.Args = append(fn.Args, js_ast.Arg{
			Binding:      arg,
			DefaultOrNil: defaultValueOrNil,
			TSTypeRange:  tsTypeRange,
		})

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		if fn.HasRestArg {
			// A comma after a rest argument is not allowed
			p.lexer.Expect(js_lexer.TCloseParen)
			break
		}
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TCloseParen)
	p.fnOrArrowDataParse = oldFnOrArrowData

	// "function foo(): any {}"
	if p.options.TS && p.lexer.Token == js_lexer.TColon {
		p.lexer.Next()
		p.skipTypeScriptReturnType()
	}

	fn.Body = p.parseFnBody(data)
	return fn
}

func (p *parser) parseFnBody(data fnOrArrowDataParse) js_ast.FnBody {
	oldFnOrArrowData := p.fnOrArrowDataParse
	oldAllowIn := p.allowIn
	p.fnOrArrowDataParse = data
	p.allowIn = true

	loc := p.lexer.Loc()
	p.lexer.Expect(js_lexer.TOpenBrace)
	stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace, parseStmtOpts{})
	p.lexer.Next()

	p.allowIn = oldAllowIn
	p.fnOrArrowDataParse = oldFnOrArrowData
	return js_ast.FnBody{Loc: loc, Stmts: stmts}
}

func (p *parser) forbidLexicalDecl(loc logger.Loc) {
	r := js_lexer.RangeOfIdentifier(p.source, loc)
	p.log.AddRangeError(&p.source, r, "Cannot use a declaration in a single-statement context")
}

func (p *parser) parseStmt(opts parseStmtOpts) js_ast.Stmt {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TSemicolon:
		p.lexer.Next()
		return js_ast.Stmt{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.SEmpty{}}

	case js_lexer.TVar:
		p.lexer.Next()
		decls := p.parseDecls(js_ast.LocalVar, opts)
		p.lexer.ExpectOrInsertSemicolon()
		if !opts.isTypeScriptDeclare {
			p.requirePatternInitializers(decls)
		}
		return js_ast.Stmt{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.SLocal{
			Kind:        js_ast.LocalVar,
			Decls:       decls,
			IsTSDeclare: opts.isTypeScriptDeclare,
		}}

	case js_lexer.TConst:
		if opts.lexicalDecl != lexicalDeclAllowAll {
			p.forbidLexicalDecl(loc)
		}
		p.lexer.Next()

		decls := p.parseDecls(js_ast.LocalConst, opts)
		p.lexer.ExpectOrInsertSemicolon()
		if !opts.isTypeScriptDeclare {
			p.requireInitializers(js_ast.LocalConst, decls)
		}
		return js_ast.Stmt{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.SLocal{
			Kind:        js_ast.LocalConst,
			Decls:       decls,
			IsTSDeclare: opts.isTypeScriptDeclare,
		}}

	case js_lexer.TIf:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		yes := p.parseStmt(parseStmtOpts{})
		var noOrNil js_ast.Stmt
		if p.lexer.Token == js_lexer.TElse {
			p.lexer.Next()
			noOrNil = p.parseStmt(parseStmtOpts{})
		}
		return js_ast.Stmt{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.SIf{Test: test, Yes: yes, NoOrNil: noOrNil}}

	case js_lexer.TWhile:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt(parseStmtOpts{})
		return js_ast.Stmt{Loc: loc, EndLoc: body.EndLoc, Data: &js_ast.SWhile{Test: test, Body: body}}

	case js_lexer.TFor:
		p.lexer.Next()

		// "for await (let x of y) {}"
		isForAwait := p.lexer.IsContextualKeyword("await")
		if isForAwait {
			awaitRange := p.lexer.Range()
			if p.fnOrArrowDataParse.await != allowExpr {
				p.log.AddRangeError(&p.source, awaitRange, "Cannot use \"await\" outside an async function")
				isForAwait = false
			}
			p.lexer.Next()
		}

		p.lexer.Expect(js_lexer.TOpenParen)

		var initOrNil js_ast.Stmt
		var testOrNil js_ast.Expr
		var updateOrNil js_ast.Expr

		// "in" expressions aren't allowed here
		p.allowIn = false

		var badLetRange logger.Range
		if p.lexer.IsContextualKeyword("let") {
			badLetRange = p.lexer.Range()
		}
		decls := []js_ast.Decl{}
		initLoc := p.lexer.Loc()
		isVar := false
		switch p.lexer.Token {
		case js_lexer.TVar:
			isVar = true
			p.lexer.Next()
			decls = p.parseDecls(js_ast.LocalVar, parseStmtOpts{})
			initOrNil = js_ast.Stmt{Loc: initLoc, EndLoc: p.endLoc(), Data: &js_ast.SLocal{Kind: js_ast.LocalVar, Decls: decls}}

		case js_lexer.TConst:
			p.lexer.Next()
			decls = p.parseDecls(js_ast.LocalConst, parseStmtOpts{})
			initOrNil = js_ast.Stmt{Loc: initLoc, EndLoc: p.endLoc(), Data: &js_ast.SLocal{Kind: js_ast.LocalConst, Decls: decls}}

		// "for (;)"
		case js_lexer.TSemicolon:

		default:
			var expr js_ast.Expr
			var stmt js_ast.Stmt
			expr, stmt, decls = p.parseExprOrLetOrUsingStmt(parseStmtOpts{
				lexicalDecl:        lexicalDeclAllowAll,
				isForLoopInit:      true,
				isForAwaitLoopInit: isForAwait,
			})
			if stmt.Data != nil {
				badLetRange = logger.Range{}
				initOrNil = stmt
			} else {
				initOrNil = js_ast.Stmt{Loc: initLoc, EndLoc: expr.EndLoc, Data: &js_ast.SExpr{Value: expr}}
			}
		}

		// "in" expressions are allowed again
		p.allowIn = true

		// Detect for-of loops
		if p.lexer.IsContextualKeyword("of") || isForAwait {
			if badLetRange.Len > 0 {
				p.log.AddRangeError(&p.source, badLetRange, "\"let\" must be wrapped in parentheses to be used as an expression here")
			}
			if isForAwait && !p.lexer.IsContextualKeyword("of") {
				if initOrNil.Data != nil {
					p.lexer.ExpectedString("\"of\"")
				} else {
					p.lexer.Unexpected()
				}
			}
			p.forbidInitializers(decls, "of", false)
			p.lexer.Next()
			value := p.parseExpr(js_ast.LComma)
			p.lexer.Expect(js_lexer.TCloseParen)
			body := p.parseStmt(parseStmtOpts{})
			return js_ast.Stmt{Loc: loc, EndLoc: body.EndLoc, Data: &js_ast.SForOf{
				IsAwait: isForAwait,
				Init:    initOrNil,
				Value:   value,
				Body:    body,
			}}
		}

		// Detect for-in loops
		if p.lexer.Token == js_lexer.TIn {
			if local, ok := initOrNil.Data.(*js_ast.SLocal); ok && local.Kind.IsUsing() {
				r := js_lexer.RangeOfIdentifier(p.source, initOrNil.Loc)
				p.log.AddRangeError(&p.source, r, "using declarations are not allowed in for-in loops")
			}
			p.forbidInitializers(decls, "in", isVar)
			p.lexer.Next()
			value := p.parseExpr(js_ast.LLowest)
			p.lexer.Expect(js_lexer.TCloseParen)
			body := p.parseStmt(parseStmtOpts{})
			return js_ast.Stmt{Loc: loc, EndLoc: body.EndLoc, Data: &js_ast.SForIn{
				Init:  initOrNil,
				Value: value,
				Body:  body,
			}}
		}

		// Only require initializers for declarations that need them in a
		// normal for loop
		if local, ok := initOrNil.Data.(*js_ast.SLocal); ok && (local.Kind == js_ast.LocalConst || local.Kind.IsUsing()) {
			p.requireInitializers(local.Kind, decls)
		}

		p.lexer.Expect(js_lexer.TSemicolon)

		if p.lexer.Token != js_lexer.TSemicolon {
			testOrNil = p.parseExpr(js_ast.LLowest)
		}

		p.lexer.Expect(js_lexer.TSemicolon)

		if p.lexer.Token != js_lexer.TCloseParen {
			updateOrNil = p.parseExpr(js_ast.LLowest)
		}

		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt(parseStmtOpts{})
		return js_ast.Stmt{Loc: loc, EndLoc: body.EndLoc, Data: &js_ast.SFor{
			InitOrNil:   initOrNil,
			TestOrNil:   testOrNil,
			UpdateOrNil: updateOrNil,
			Body:        body,
		}}

	case js_lexer.TReturn:
		if p.fnOrArrowDataParse.isReturnDisallowed {
			p.log.AddRangeError(&p.source, p.lexer.Range(), "A return statement cannot be used here")
		}
		p.lexer.Next()
		var value js_ast.Expr
		if p.lexer.Token != js_lexer.TSemicolon &&
			!p.lexer.HasNewlineBefore &&
			p.lexer.Token != js_lexer.TCloseBrace &&
			p.lexer.Token != js_lexer.TEndOfFile {
			value = p.parseExpr(js_ast.LLowest)
		}
		p.latestReturnHadSemicolon = p.lexer.Token == js_lexer.TSemicolon
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.SReturn{ValueOrNil: value}}

	case js_lexer.TDebugger:
		p.lexer.Next()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.SDebugger{}}

	case js_lexer.TOpenBrace:
		p.lexer.Next()
		stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace, parseStmtOpts{})
		p.lexer.Next()
		return js_ast.Stmt{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.SBlock{Stmts: stmts}}

	default:
		isIdentifier := p.lexer.Token == js_lexer.TIdentifier
		name := p.lexer.Identifier

		// Parse either an async expression or a normal expression
		var expr js_ast.Expr
		if isIdentifier && p.lexer.Raw() == "async" {
			asyncRange := p.lexer.Range()
			p.lexer.Next()
			expr = p.parseSuffix(p.parseAsyncPrefixExpr(asyncRange, js_ast.LLowest, 0), js_ast.LLowest, nil, 0)
		} else {
			var stmt js_ast.Stmt
			expr, stmt, _ = p.parseExprOrLetOrUsingStmt(opts)
			if stmt.Data != nil {
				p.lexer.ExpectOrInsertSemicolon()
				stmt.EndLoc = p.endLoc()
				return stmt
			}
		}

		// A "declare" modifier marks the next statement as an ambient declaration
		if isIdentifier && p.options.TS && name == "declare" {
			if _, ok := expr.Data.(*js_ast.EIdentifier); ok {
				// "declare const x: number"
				opts.lexicalDecl = lexicalDeclAllowAll
				opts.isTypeScriptDeclare = true
				return p.parseStmt(opts)
			}
		}

		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, EndLoc: p.endLoc(), Data: &js_ast.SExpr{Value: expr}}
	}
}

func (p *parser) parseStmtsUpTo(end js_lexer.T, opts parseStmtOpts) []js_ast.Stmt {
	stmts := []js_ast.Stmt{}
	returnWithoutSemicolonStart := int32(-1)
	opts.lexicalDecl = lexicalDeclAllowAll
	isDirectivePrologue := true

	for {
		if p.lexer.Token == end {
			break
		}

		stmt := p.parseStmt(opts)

		// A string literal at the start of a statement list is a directive
		if isDirectivePrologue {
			isDirectivePrologue = false
			if expr, ok := stmt.Data.(*js_ast.SExpr); ok {
				if str, ok := expr.Value.Data.(*js_ast.EString); ok {
					stmt.Data = &js_ast.SDirective{Value: str.Value}
					isDirectivePrologue = true
				}
			}
		}

		stmts = append(stmts, stmt)

		// Warn about ASI and return statements
		if s, ok := stmt.Data.(*js_ast.SReturn); ok && s.ValueOrNil.Data == nil && !p.latestReturnHadSemicolon {
			returnWithoutSemicolonStart = stmt.Loc.Start
		} else {
			if returnWithoutSemicolonStart != -1 {
				if _, ok := stmt.Data.(*js_ast.SExpr); ok {
					p.log.AddWarning(&p.source, logger.Loc{Start: returnWithoutSemicolonStart + 6},
						"The following expression is not returned because of an automatically-inserted semicolon")
				}
			}
			returnWithoutSemicolonStart = -1
		}
	}

	return stmts
}

func Parse(log logger.Log, source logger.Source, options Options) (result js_ast.AST, ok bool) {
	ok = true
	defer func() {
		r := recover()
		if _, isLexerPanic := r.(js_lexer.LexerPanic); isLexerPanic {
			ok = false
		} else if r != nil {
			panic(r)
		}
	}()

	p := newParser(log, source, js_lexer.NewLexer(log, source), options)

	// Consume a leading hashbang comment
	hashbang := ""
	if p.lexer.Token == js_lexer.THashbang {
		hashbang = strings.TrimPrefix(p.lexer.Identifier, "#!")
		p.lexer.Next()
	}

	// Allow top-level await
	p.fnOrArrowDataParse.await = allowExpr

	// A "return" statement is only valid inside a function body
	p.fnOrArrowDataParse.isReturnDisallowed = true

	stmts := p.parseStmtsUpTo(js_lexer.TEndOfFile, parseStmtOpts{
		isTypeScriptDeclare: options.TS && options.AmbientContext,
	})

	result = js_ast.AST{
		Stmts:                stmts,
		Hashbang:             hashbang,
		ApproximateLineCount: int32(p.lexer.ApproximateNewlineCount) + 1,
	}
	return
}
