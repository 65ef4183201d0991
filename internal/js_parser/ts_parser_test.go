package js_parser

import (
	"testing"

	"github.com/lucab/oxc/internal/js_ast"
	"github.com/lucab/oxc/internal/logger"
	"github.com/lucab/oxc/internal/test"
)

func expectPrintedTS(t *testing.T, contents string, expected string) {
	t.Helper()
	expectPrintedCommon(t, contents, expected, Options{TS: true})
}

func expectParseErrorTS(t *testing.T, contents string, expected string) {
	t.Helper()
	expectParseErrorCommon(t, contents, expected, Options{TS: true})
}

func TestTSTypes(t *testing.T) {
	expectPrintedTS(t, "let x: number = 1", "let x = 1;\n")
	expectPrintedTS(t, "let x: number | string = 1", "let x = 1;\n")
	expectPrintedTS(t, "let x: number & string = 1", "let x = 1;\n")
	expectPrintedTS(t, "let x: A.B.C = y", "let x = y;\n")
	expectPrintedTS(t, "let x: A<B, C> = y", "let x = y;\n")
	expectPrintedTS(t, "let x: A[] = y", "let x = y;\n")
	expectPrintedTS(t, "let x: [number, string?] = y", "let x = y;\n")
	expectPrintedTS(t, "let x: [first: number, second: string] = y", "let x = y;\n")
	expectPrintedTS(t, "let x: {a: number, b?: string} = y", "let x = y;\n")
	expectPrintedTS(t, "let x: {[key: string]: number} = y", "let x = y;\n")
	expectPrintedTS(t, "let x: (a: number) => void = y", "let x = y;\n")
	expectPrintedTS(t, "let x: (number | string)[] = y", "let x = y;\n")
	expectPrintedTS(t, "let x: typeof y = z", "let x = z;\n")
	expectPrintedTS(t, "let x: typeof y.z = w", "let x = w;\n")
	expectPrintedTS(t, "let x: keyof T = y", "let x = y;\n")
	expectPrintedTS(t, "let x: readonly number[] = y", "let x = y;\n")
	expectPrintedTS(t, "let x: unique symbol = y", "let x = y;\n")
	expectPrintedTS(t, "let x: 'a' | 'b' = y", "let x = y;\n")
	expectPrintedTS(t, "let x: -123 = y", "let x = y;\n")
	expectPrintedTS(t, "let x: `a${B}c` = y", "let x = y;\n")
	expectPrintedTS(t, "let x: A extends B ? C : D = y", "let x = y;\n")
	expectPrintedTS(t, "let x: abstract new () => void = y", "let x = y;\n")
	expectPrintedTS(t, "let x: new <T>() => A<T> = y", "let x = y;\n")
	expectPrintedTS(t, "let x: import('fs') = y", "let x = y;\n")
	expectPrintedTS(t, "for (let x: number = 0; ; ) ;", "for (let x = 0; ; )\n  ;\n")
}

func TestTSDecls(t *testing.T) {
	expectPrintedTS(t, "let x!: number", "let x;\n")
	expectPrintedTS(t, "let x!: number, y!: string", "let x, y;\n")
	expectParseErrorTS(t, "let x! = 1", "<stdin>: error: Expected \":\" but found \"=\"\n")

	// The definite assignment assertion requires an identifier binding
	expectParseErrorTS(t, "let [a]!: T = b",
		"<stdin>: error: This variable must be initialized\n<stdin>: error: Expected \";\" but found \"!\"\n")
	expectParseErrorTS(t, "let {a}!: T = b",
		"<stdin>: error: This variable must be initialized\n<stdin>: error: Expected \";\" but found \"!\"\n")

	expectPrintedTS(t, "let {a}: T = b", "let { a } = b;\n")
	expectPrintedTS(t, "let [a, b]: T = c", "let [a, b] = c;\n")
	expectPrintedTS(t, "using x: T = y", "using x = y;\n")

	// Ambient declarations are erased entirely
	expectPrintedTS(t, "declare let x", "")
	expectPrintedTS(t, "declare const x", "")
	expectPrintedTS(t, "declare const x: number", "")
	expectPrintedTS(t, "declare var x, y", "")
	expectPrintedTS(t, "declare let x; let y", "let y;\n")
	expectParseErrorTS(t, "const x", "<stdin>: error: The constant \"x\" must be initialized\n")
	expectPrintedCommon(t, "const x", "", Options{TS: true, AmbientContext: true})
	expectPrintedCommon(t, "let x; var y", "", Options{TS: true, AmbientContext: true})
}

func TestTSAs(t *testing.T) {
	expectPrintedTS(t, "x as number", "x;\n")
	expectPrintedTS(t, "x as number as string", "x;\n")
	expectPrintedTS(t, "x as const", "x;\n")
	expectPrintedTS(t, "(x as number) + y", "x + y;\n")
	expectPrintedTS(t, "x = y as number", "x = y;\n")
	expectPrintedTS(t, "x * y as number", "x * y;\n")

	// "as" must be on the same line as the expression
	expectPrintedTS(t, "x\nas\ny", "x;\nas;\ny;\n")

	// Certain tokens may not follow a cast
	expectParseErrorTS(t, "x as number = y", "<stdin>: error: Expected \";\" but found \"=\"\n")
	expectParseErrorTS(t, "x as number(y)", "<stdin>: error: Expected \";\" but found \"(\"\n")
	expectParseErrorTS(t, "x as number++", "<stdin>: error: Expected \";\" but found \"++\"\n")

	// Brackets after a cast are an indexed access type, not an index expression
	expectPrintedTS(t, "x as T[number]", "x;\n")

	expectPrintedTS(t, "x satisfies number", "x;\n")
	expectPrintedTS(t, "x satisfies number satisfies string", "x;\n")

	// Outside of TypeScript "as" is just an identifier
	expectParseError(t, "x as y", "<stdin>: error: Expected \";\" but found \"as\"\n")
}

func TestTSInstantiation(t *testing.T) {
	expectPrintedTS(t, "f<number>", "f;\n")
	expectPrintedTS(t, "f<number>;", "f;\n")
	expectPrintedTS(t, "f<number>(x)", "f(x);\n")
	expectPrintedTS(t, "f<number, string>(x, y)", "f(x, y);\n")
	expectPrintedTS(t, "f<number>.g", "f.g;\n")
	expectPrintedTS(t, "f<A<B>>(x)", "f(x);\n")
	expectPrintedTS(t, "tag<T>`x`", "tag`x`;\n")
	expectPrintedTS(t, "a?.b<T>()", "a?.b();\n")

	expectPrintedTS(t, "new Foo<number>()", "new Foo();\n")
	expectPrintedTS(t, "new Foo<number>", "new Foo();\n")

	// These are comparisons, not type arguments
	expectPrintedTS(t, "a < b", "a < b;\n")
	expectPrintedTS(t, "a < b > c", "a < b > c;\n")
	expectPrintedTS(t, "a < b >> c", "a < b >> c;\n")
	expectPrintedTS(t, "a < b, c > d", "a < b, c > d;\n")

	// A "?." chain still gets its wrapper when the "<" that follows turns
	// out to be a comparison instead of type arguments
	t.Run("!a?.b < c", func(t *testing.T) {
		log := logger.NewDeferLog()
		source := test.SourceForTest("!a?.b < c")
		tree, ok := Parse(log, source, Options{TS: true})
		if !ok {
			t.Fatal("Parse error")
		}
		lt := tree.Stmts[0].Data.(*js_ast.SExpr).Value.Data.(*js_ast.EBinary)
		not := lt.Left.Data.(*js_ast.EUnary)
		chain, ok := not.Value.Data.(*js_ast.EChain)
		if !ok {
			t.Fatalf("Expected an EChain wrapper, got %T", not.Value.Data)
		}
		if _, ok := chain.Value.Data.(*js_ast.EChain); ok {
			t.Fatal("The chain was wrapped twice")
		}
	})
}

func TestTSNonNull(t *testing.T) {
	expectPrintedTS(t, "a!", "a;\n")
	expectPrintedTS(t, "a!.b", "a.b;\n")
	expectPrintedTS(t, "a!.b!.c", "a.b.c;\n")
	expectPrintedTS(t, "a!(b)", "a(b);\n")
	expectPrintedTS(t, "a!![b]", "a[b];\n")
	expectPrintedTS(t, "a?.b!", "a?.b;\n")

	// Outside of TypeScript a postfix "!" is a syntax error
	expectParseError(t, "a!", "<stdin>: error: Unexpected \"!\"\n")
	expectParseError(t, "a!.b", "<stdin>: error: Unexpected \"!\"\n")
}

func TestTSArrow(t *testing.T) {
	expectPrintedTS(t, "x = (a: number) => a", "x = (a) => a;\n")
	expectPrintedTS(t, "x = (a: number, b: string) => a", "x = (a, b) => a;\n")
	expectPrintedTS(t, "x = (a?: number) => a", "x = (a) => a;\n")
	expectPrintedTS(t, "x = (a: number = 1) => a", "x = (a = 1) => a;\n")
	expectPrintedTS(t, "x = (a): number => a", "x = (a) => a;\n")
	expectPrintedTS(t, "x = (): void => {}", "x = () => {\n};\n")
	expectPrintedTS(t, "x = ({a}: T) => a", "x = ({ a }) => a;\n")

	// Generic arrow functions
	expectPrintedTS(t, "x = <T>(a: T) => a", "x = (a) => a;\n")
	expectPrintedTS(t, "x = <T,>(a) => a", "x = (a) => a;\n")
	expectPrintedTS(t, "x = <T extends B>(a) => a", "x = (a) => a;\n")
	expectPrintedTS(t, "async <T>(x) => x", "async (x) => x;\n")

	// A return type annotation must not turn a conditional into an arrow
	expectPrintedTS(t, "a ? (1 + 2) : (3 + 4)", "a ? 1 + 2 : 3 + 4;\n")

	// Types are only allowed on arrow function arguments
	expectParseErrorTS(t, "(a: number)", "<stdin>: error: Unexpected \":\"\n")
}

func TestTSCast(t *testing.T) {
	expectPrintedTS(t, "x = <number>y", "x = y;\n")
	expectPrintedTS(t, "x = <number[]>y", "x = y;\n")
	expectPrintedTS(t, "x = <[number, string]>y", "x = y;\n")
	expectPrintedTS(t, "x = <A<B>>y", "x = y;\n")
	expectPrintedTS(t, "x = <number>y + z", "x = y + z;\n")

	expectParseError(t, "x = <T>y", "<stdin>: error: Unexpected \"<\"\n")
}

func TestTSFunction(t *testing.T) {
	expectPrintedTS(t, "x = function(a: number): string { return a }",
		"x = function(a) {\n  return a;\n};\n")
	expectPrintedTS(t, "x = function f<T>(a: T) {}", "x = function f(a) {\n};\n")
	expectPrintedTS(t, "x = function*<T>(a: T) {}", "x = function* (a) {\n};\n")
	expectPrintedTS(t, "x = function(a?, b?: number) {}", "x = function(a, b) {\n};\n")
	expectPrintedTS(t, "x = function(a: number = 1) {}", "x = function(a = 1) {\n};\n")

	// A "this" parameter is erased along with its type
	expectPrintedTS(t, "x = function(this: T) {}", "x = function() {\n};\n")
	expectPrintedTS(t, "x = function(this: T, a) {}", "x = function(a) {\n};\n")
}
