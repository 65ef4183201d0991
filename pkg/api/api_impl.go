package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lucab/oxc/internal/js_ast"
	"github.com/lucab/oxc/internal/js_parser"
	"github.com/lucab/oxc/internal/js_printer"
	"github.com/lucab/oxc/internal/logger"
)

func messagesOfKind(kind logger.MsgKind, msgs []logger.Msg) []Message {
	var filtered []Message
	for _, msg := range msgs {
		if msg.Kind == kind {
			var location *Location

			if msg.Location != nil {
				location = &Location{
					File:     msg.Location.File,
					Line:     msg.Location.Line,
					Column:   msg.Location.Column,
					Length:   msg.Location.Length,
					LineText: msg.Location.LineText,
				}
			}

			filtered = append(filtered, Message{
				Text:     msg.Text,
				Location: location,
			})
		}
	}
	return filtered
}

////////////////////////////////////////////////////////////////////////////////
// Parse API

func parseImpl(input string, options ParseOptions) ParseResult {
	log := logger.NewDeferLog()

	prettyPath := options.Sourcefile
	if prettyPath == "" {
		prettyPath = "<stdin>"
	}
	source := logger.Source{
		KeyPath:        logger.Path{Text: prettyPath, Namespace: "file"},
		PrettyPath:     prettyPath,
		IdentifierName: "input",
		Contents:       input,
	}

	tree, ok := js_parser.Parse(log, source, js_parser.Options{
		TS:             options.TS,
		PreserveParens: options.PreserveParens,
		AmbientContext: options.AmbientContext,
	})

	msgs := log.Done()
	result := ParseResult{
		Errors:   messagesOfKind(logger.Error, msgs),
		Warnings: messagesOfKind(logger.Warning, msgs),
	}

	if ok && len(result.Errors) == 0 {
		if options.Format == FormatJSON {
			result.JS = astJSON(tree)
		} else {
			result.JS = js_printer.Print(tree, js_printer.Options{
				MinifyWhitespace: options.MinifyWhitespace,
			}).JS
		}
	}
	return result
}

////////////////////////////////////////////////////////////////////////////////
// FormatMessages API

func formatMessagesImpl(msgs []Message, options FormatMessagesOptions) []string {
	kind := logger.Error
	if options.Kind == WarningMessage {
		kind = logger.Warning
	}

	stderrOptions := logger.StderrOptions{IncludeSource: true}
	terminalInfo := logger.TerminalInfo{
		UseColorEscapes: options.Color,
		Width:           options.TerminalWidth,
	}

	formatted := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		var location *logger.MsgLocation

		if msg.Location != nil {
			location = &logger.MsgLocation{
				File:     msg.Location.File,
				Line:     msg.Location.Line,
				Column:   msg.Location.Column,
				Length:   msg.Location.Length,
				LineText: msg.Location.LineText,
			}
		}

		formatted = append(formatted, logger.Msg{
			Kind:     kind,
			Text:     msg.Text,
			Location: location,
		}.String(stderrOptions, terminalInfo))
	}
	return formatted
}

////////////////////////////////////////////////////////////////////////////////
// JSON outline

type astNode struct {
	Kind     string    `json:"kind"`
	Start    int32     `json:"start"`
	End      int32     `json:"end"`
	Children []astNode `json:"children,omitempty"`
}

func astJSON(tree js_ast.AST) []byte {
	nodes := make([]astNode, 0, len(tree.Stmts))
	for _, stmt := range tree.Stmts {
		nodes = append(nodes, stmtNode(stmt))
	}

	js, err := json.MarshalIndent(nodes, "", "  ")
	if err != nil {
		panic(err)
	}
	return append(js, '\n')
}

func nodeKind(data interface{}) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", data), "*js_ast.")
}

func stmtNode(stmt js_ast.Stmt) astNode {
	node := astNode{
		Kind:  nodeKind(stmt.Data),
		Start: stmt.Loc.Start,
		End:   stmt.EndLoc.Start,
	}

	switch s := stmt.Data.(type) {
	case *js_ast.SBlock:
		for _, child := range s.Stmts {
			node.Children = append(node.Children, stmtNode(child))
		}

	case *js_ast.SExpr:
		node.Children = append(node.Children, exprNode(s.Value))

	case *js_ast.SIf:
		node.Children = append(node.Children, exprNode(s.Test), stmtNode(s.Yes))
		if s.NoOrNil.Data != nil {
			node.Children = append(node.Children, stmtNode(s.NoOrNil))
		}

	case *js_ast.SFor:
		if s.InitOrNil.Data != nil {
			node.Children = append(node.Children, stmtNode(s.InitOrNil))
		}
		if s.TestOrNil.Data != nil {
			node.Children = append(node.Children, exprNode(s.TestOrNil))
		}
		if s.UpdateOrNil.Data != nil {
			node.Children = append(node.Children, exprNode(s.UpdateOrNil))
		}
		node.Children = append(node.Children, stmtNode(s.Body))

	case *js_ast.SForIn:
		node.Children = append(node.Children, stmtNode(s.Init), exprNode(s.Value), stmtNode(s.Body))

	case *js_ast.SForOf:
		node.Children = append(node.Children, stmtNode(s.Init), exprNode(s.Value), stmtNode(s.Body))

	case *js_ast.SLocal:
		for _, decl := range s.Decls {
			node.Children = append(node.Children, bindingNode(decl.Binding))
			if decl.ValueOrNil.Data != nil {
				node.Children = append(node.Children, exprNode(decl.ValueOrNil))
			}
		}

	case *js_ast.SReturn:
		if s.ValueOrNil.Data != nil {
			node.Children = append(node.Children, exprNode(s.ValueOrNil))
		}

	case *js_ast.SWhile:
		node.Children = append(node.Children, exprNode(s.Test), stmtNode(s.Body))
	}

	return node
}

func exprNode(expr js_ast.Expr) astNode {
	node := astNode{
		Kind:  nodeKind(expr.Data),
		Start: expr.Loc.Start,
		End:   expr.EndLoc.Start,
	}

	switch e := expr.Data.(type) {
	case *js_ast.EArray:
		for _, item := range e.Items {
			node.Children = append(node.Children, exprNode(item))
		}

	case *js_ast.EUnary:
		node.Children = append(node.Children, exprNode(e.Value))

	case *js_ast.EBinary:
		node.Children = append(node.Children, exprNode(e.Left), exprNode(e.Right))

	case *js_ast.ENew:
		node.Children = append(node.Children, exprNode(e.Target))
		for _, arg := range e.Args {
			node.Children = append(node.Children, exprNode(arg))
		}

	case *js_ast.ECall:
		node.Children = append(node.Children, exprNode(e.Target))
		for _, arg := range e.Args {
			node.Children = append(node.Children, exprNode(arg))
		}

	case *js_ast.EDot:
		node.Children = append(node.Children, exprNode(e.Target))

	case *js_ast.EIndex:
		node.Children = append(node.Children, exprNode(e.Target), exprNode(e.Index))

	case *js_ast.EChain:
		node.Children = append(node.Children, exprNode(e.Value))

	case *js_ast.EArrow:
		node.Children = argNodes(node.Children, e.Args)
		for _, stmt := range e.Body.Stmts {
			node.Children = append(node.Children, stmtNode(stmt))
		}

	case *js_ast.EFunction:
		node.Children = argNodes(node.Children, e.Fn.Args)
		for _, stmt := range e.Fn.Body.Stmts {
			node.Children = append(node.Children, stmtNode(stmt))
		}

	case *js_ast.EObject:
		for _, property := range e.Properties {
			if property.Key.Data != nil {
				node.Children = append(node.Children, exprNode(property.Key))
			}
			if property.ValueOrNil.Data != nil {
				node.Children = append(node.Children, exprNode(property.ValueOrNil))
			}
			if property.InitializerOrNil.Data != nil {
				node.Children = append(node.Children, exprNode(property.InitializerOrNil))
			}
		}

	case *js_ast.ESpread:
		node.Children = append(node.Children, exprNode(e.Value))

	case *js_ast.ETemplate:
		if e.TagOrNil.Data != nil {
			node.Children = append(node.Children, exprNode(e.TagOrNil))
		}
		for _, part := range e.Parts {
			node.Children = append(node.Children, exprNode(part.Value))
		}

	case *js_ast.EIf:
		node.Children = append(node.Children, exprNode(e.Test), exprNode(e.Yes), exprNode(e.No))

	case *js_ast.EImportCall:
		node.Children = append(node.Children, exprNode(e.Expr))
		if e.OptionsOrNil.Data != nil {
			node.Children = append(node.Children, exprNode(e.OptionsOrNil))
		}

	case *js_ast.EParen:
		node.Children = append(node.Children, exprNode(e.Value))

	case *js_ast.EAwait:
		node.Children = append(node.Children, exprNode(e.Value))

	case *js_ast.EYield:
		if e.ValueOrNil.Data != nil {
			node.Children = append(node.Children, exprNode(e.ValueOrNil))
		}

	case *js_ast.ETSNonNull:
		node.Children = append(node.Children, exprNode(e.Value))

	case *js_ast.ETSAs:
		node.Children = append(node.Children, exprNode(e.Value))

	case *js_ast.ETSSatisfies:
		node.Children = append(node.Children, exprNode(e.Value))

	case *js_ast.ETSInstantiation:
		node.Children = append(node.Children, exprNode(e.Value))
	}

	return node
}

func argNodes(children []astNode, args []js_ast.Arg) []astNode {
	for _, arg := range args {
		children = append(children, bindingNode(arg.Binding))
		if arg.DefaultOrNil.Data != nil {
			children = append(children, exprNode(arg.DefaultOrNil))
		}
	}
	return children
}

func bindingNode(binding js_ast.Binding) astNode {
	node := astNode{
		Kind:  nodeKind(binding.Data),
		Start: binding.Loc.Start,
		End:   binding.EndLoc.Start,
	}

	switch b := binding.Data.(type) {
	case *js_ast.BArray:
		for _, item := range b.Items {
			node.Children = append(node.Children, bindingNode(item.Binding))
			if item.DefaultValueOrNil.Data != nil {
				node.Children = append(node.Children, exprNode(item.DefaultValueOrNil))
			}
		}

	case *js_ast.BObject:
		for _, property := range b.Properties {
			if property.Key.Data != nil {
				node.Children = append(node.Children, exprNode(property.Key))
			}
			node.Children = append(node.Children, bindingNode(property.Value))
			if property.DefaultValueOrNil.Data != nil {
				node.Children = append(node.Children, exprNode(property.DefaultValueOrNil))
			}
		}
	}

	return node
}
