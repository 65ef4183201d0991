package js_printer

import (
	"testing"

	"github.com/lucab/oxc/internal/js_parser"
	"github.com/lucab/oxc/internal/logger"
	"github.com/lucab/oxc/internal/test"
)

func expectPrintedCommon(t *testing.T, name string, contents string, expected string, options Options) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		tree, ok := js_parser.Parse(log, test.SourceForTest(contents), js_parser.Options{})
		msgs := log.Done()
		text := ""
		for _, msg := range msgs {
			text += msg.String(logger.StderrOptions{}, logger.TerminalInfo{})
		}
		test.AssertEqualWithDiff(t, text, "")
		if !ok {
			t.Fatal("Parse error")
		}
		js := Print(tree, options).JS
		test.AssertEqualWithDiff(t, string(js), expected)
	})
}

func expectPrinted(t *testing.T, contents string, expected string) {
	t.Helper()
	expectPrintedCommon(t, contents, contents, expected, Options{})
}

func expectPrintedMinify(t *testing.T, contents string, expected string) {
	t.Helper()
	expectPrintedCommon(t, contents+" [minified]", contents, expected, Options{
		MinifyWhitespace: true,
	})
}

func TestNumber(t *testing.T) {
	expectPrinted(t, "x = 0.5", "x = 0.5;\n")
	expectPrinted(t, "x = 0.001", "x = 1e-3;\n")
	expectPrinted(t, "x = 1000", "x = 1e3;\n")
	expectPrinted(t, "x = 123.456", "x = 123.456;\n")
	expectPrinted(t, "x = (-123).toString()", "x = (-123).toString();\n")

	expectPrintedMinify(t, "x = 0.5", "x=.5")
	expectPrintedMinify(t, "x = 0.001", "x=.001")
	expectPrintedMinify(t, "x = 1000", "x=1e3")
	expectPrintedMinify(t, "x = 123.456", "x=123.456")
	expectPrintedMinify(t, "x = 0xFF", "x=0xff")
}

func TestWhitespace(t *testing.T) {
	expectPrinted(t, "- -x", "- -x;\n")
	expectPrinted(t, "+ -x", "+-x;\n")
	expectPrinted(t, "- +x", "-+x;\n")
	expectPrinted(t, "+ +x", "+ +x;\n")
	expectPrinted(t, "- --x", "- --x;\n")
	expectPrinted(t, "+ ++x", "+ ++x;\n")
	expectPrinted(t, "a-- > b", "a-- > b;\n")

	expectPrintedMinify(t, "- -x", "- -x")
	expectPrintedMinify(t, "+ -x", "+-x")
	expectPrintedMinify(t, "a + +b", "a+ +b")
	expectPrintedMinify(t, "a + -b", "a+-b")
	expectPrintedMinify(t, "a - -b", "a- -b")
	expectPrintedMinify(t, "a-- > b", "a-- >b")

	expectPrintedMinify(t, "typeof a", "typeof a")
	expectPrintedMinify(t, "void 0", "void 0")
	expectPrintedMinify(t, "delete a.b", "delete a.b")
	expectPrintedMinify(t, "a in b", "a in b")
	expectPrintedMinify(t, "a instanceof b", "a instanceof b")
}

func TestSemicolon(t *testing.T) {
	expectPrintedMinify(t, "let x = 1; let y = 2", "let x=1;let y=2")
	expectPrintedMinify(t, "a; b; c", "a;b;c")
	expectPrintedMinify(t, "; ; ;", ";;;")
	expectPrintedMinify(t, "debugger", "debugger")
	expectPrintedMinify(t, "debugger; x", "debugger;x")
	expectPrintedMinify(t, "{ a; b }", "{a;b}")
	expectPrintedMinify(t, "'use strict'; x", "\"use strict\";x")
}

func TestObject(t *testing.T) {
	expectPrinted(t, "x = {a: 1, b: 2}", "x = { a: 1, b: 2 };\n")

	expectPrintedMinify(t, "x = {a: 1, b: 2}", "x={a:1,b:2}")
	expectPrintedMinify(t, "x = {[a]: b}", "x={[a]:b}")
	expectPrintedMinify(t, "x = {get a() {}, set b(c) {}}", "x={get a(){},set b(c){}}")
	expectPrintedMinify(t, "x = {get 'a b'() {}}", "x={get\"a b\"(){}}")
	expectPrintedMinify(t, "({a = 1} = b)", "({a=1}=b)")
	expectPrintedMinify(t, "({a: {b}} = c)", "({a:{b}}=c)")
}

func TestFunction(t *testing.T) {
	expectPrintedMinify(t, "x = function() { return 1 }", "x=function(){return 1}")
	expectPrintedMinify(t, "x = function() { return [] }", "x=function(){return[]}")
	expectPrintedMinify(t, "x = function foo() {}", "x=function foo(){}")
	expectPrintedMinify(t, "x = function* () {}", "x=function*(){}")
	expectPrintedMinify(t, "x = async function() {}", "x=async function(){}")
}

func TestArrow(t *testing.T) {
	expectPrintedMinify(t, "x = y => z", "x=y=>z")
	expectPrintedMinify(t, "x = () => {}", "x=()=>{}")
	expectPrintedMinify(t, "x = (a, b) => z", "x=(a,b)=>z")

	// Parentheses stay when removing them would change the parameter list
	expectPrintedMinify(t, "x = (a = 1) => z", "x=(a=1)=>z")
	expectPrintedMinify(t, "x = ([a]) => b", "x=([a])=>b")
	expectPrintedMinify(t, "x = ({a}) => b", "x=({a})=>b")
	expectPrintedMinify(t, "x = (...a) => b", "x=(...a)=>b")

	expectPrintedMinify(t, "x = async y => z", "x=async y=>z")
	expectPrintedMinify(t, "x = async () => z", "x=async()=>z")
}

func TestConditional(t *testing.T) {
	expectPrintedMinify(t, "x = a ? b : c", "x=a?b:c")

	// "?." before a digit is not an optional chain, so this is safe
	expectPrintedMinify(t, "x = a ? 0.5 : b", "x=a?.5:b")
}

func TestIf(t *testing.T) {
	expectPrintedMinify(t, "if (a) b", "if(a)b")
	expectPrintedMinify(t, "if (a) b; else c", "if(a)b;else c")
	expectPrintedMinify(t, "if (a) {}", "if(a){}")
	expectPrintedMinify(t, "if (a) {} else {}", "if(a){}else{}")
	expectPrintedMinify(t, "if (a) b; else if (c) d; else e", "if(a)b;else if(c)d;else e")
}

func TestLoops(t *testing.T) {
	expectPrintedMinify(t, "while (a) ;", "while(a);")
	expectPrintedMinify(t, "while (a) b", "while(a)b")
	expectPrintedMinify(t, "for (;;) ;", "for(;;);")
	expectPrintedMinify(t, "for (a; b; c) d", "for(a;b;c)d")
	expectPrintedMinify(t, "for (x of y) ;", "for(x of y);")
	expectPrintedMinify(t, "for (let x of y) ;", "for(let x of y);")
	expectPrintedMinify(t, "for (x in y) ;", "for(x in y);")
	expectPrintedMinify(t, "for await (x of y) ;", "for await(x of y);")
}

func TestTemplate(t *testing.T) {
	expectPrintedMinify(t, "x = `a${b}c`", "x=`a${b}c`")
	expectPrintedMinify(t, "x = tag`a${b}c`", "x=tag`a${b}c`")
}

func TestHashbang(t *testing.T) {
	expectPrintedMinify(t, "#!/usr/bin/env node\nlet x = 1", "#!/usr/bin/env node\nlet x=1")
}

func TestIndent(t *testing.T) {
	expectPrinted(t, "{ { a; } }", "{\n  {\n    a;\n  }\n}\n")

	expectPrintedCommon(t, "if (a) { b } [indent]", "if (a) { b }",
		"  if (a) {\n    b;\n  }\n", Options{Indent: 1})
	expectPrintedCommon(t, "let x = 1 [indent]", "let x = 1",
		"    let x = 1;\n", Options{Indent: 2})
}
