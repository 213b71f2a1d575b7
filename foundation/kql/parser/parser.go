// File: parser.go
// Title: KQL Recursive-Descent Parser
// Description: Consumes the token sequence with a single cursor and builds
//              one ast.Command per statement. The first structural problem
//              aborts the parse with a coded error.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-04
// Modified: 2026-10-04
//
// Change History:
// - 2026-10-04 v0.1.0: Initial parser implementation

package parser

import (
	"strconv"
	"strings"

	kverror "github.com/msto63/keplerkv/foundation/core/error"
	kvlog "github.com/msto63/keplerkv/foundation/core/log"
	"github.com/msto63/keplerkv/foundation/kql/ast"
	"github.com/msto63/keplerkv/foundation/kql/registry"
)

// Options configures the parser
type Options struct {
	Logger         *kvlog.Logger
	Registry       *registry.Registry
	MaxInputLength int // bytes; zero means DefaultMaxInputLength
}

// DefaultMaxInputLength bounds a single ParseInput call
const DefaultMaxInputLength = 64 * 1024

// Parser is a recursive-descent parser for the query language
type Parser struct {
	tokens   []Token
	pos      int
	logger   *kvlog.Logger
	registry *registry.Registry
	options  Options
}

// New creates a parser
func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = kvlog.GetDefault()
	}
	if opts.Registry == nil {
		opts.Registry = registry.Default()
	}
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	return &Parser{
		logger:   opts.Logger.WithField("component", "kql-parser"),
		registry: opts.Registry,
		options:  opts,
	}
}

// ParseInput tokenizes and parses input
func (p *Parser) ParseInput(input string) ([]*ast.Command, error) {
	if len(input) > p.options.MaxInputLength {
		return nil, kverror.Newf("query exceeds %d bytes", p.options.MaxInputLength).
			WithCode(kverror.CodeInputTooLong).
			WithDetail("length", len(input))
	}
	return p.Parse(Tokenize(input))
}

// Parse builds the commands of every statement in tokens. Empty statements
// are skipped; a query with no statements yields no commands.
func (p *Parser) Parse(tokens []Token) ([]*ast.Command, error) {
	p.tokens = tokens
	p.pos = 0

	p.logger.Trace("parsing tokens", kvlog.Fields{"count": len(tokens)})
	if p.logger.IsLevelEnabled(kvlog.LevelTrace) {
		for _, tok := range tokens {
			p.logger.Trace("token", kvlog.Fields{"type": tok.Type.String(), "value": tok.Value, "column": tok.Column})
		}
	}

	var commands []*ast.Command
	for {
		for !p.atEOF() && p.current().Type == TokenEnd {
			p.advance()
		}
		if p.atEOF() {
			break
		}

		cmd, err := p.parseCommand()
		if err != nil {
			p.logger.Debug("parse failed", kvlog.Fields{
				"error":    err.Error(),
				"position": p.current().Position,
			})
			return nil, err
		}
		commands = append(commands, cmd)

		p.logger.Debug("statement parsed", kvlog.Fields{
			"command": cmd.Kind.String(),
			"args":    cmd.NumArgs(),
			"options": len(cmd.Options),
		})
	}
	return commands, nil
}

// parseCommand parses one statement starting at the cursor and leaves the
// cursor on its END token
func (p *Parser) parseCommand() (*ast.Command, error) {
	tok := p.current()
	if tok.Type != TokenCommand {
		return nil, invalidCommand(tok)
	}
	kind, ok := p.registry.Lookup(tok.Value)
	if !ok {
		return nil, invalidCommand(tok)
	}

	cmd := &ast.Command{
		Kind: kind,
		Name: tok.Value,
		Pos:  ast.Position{Line: tok.Line, Column: tok.Column, Offset: tok.Position},
	}
	p.advance()

	for !p.atEOF() && p.current().Type != TokenEnd {
		tok := p.current()
		switch tok.Type {
		case TokenDelimiter:
			p.advance()
		case TokenCommand:
			return nil, parseError(kverror.CodeNestedCommand, "nested commands not supported (yet?)", tok)
		case TokenUnknown, TokenListEnd:
			return nil, unknownToken(tok)
		case TokenOption:
			cmd.Options = append(cmd.Options, normalizeOption(tok.Value))
			p.advance()
		default:
			value, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			cmd.Args = append(cmd.Args, value)
		}
	}
	return cmd, nil
}

// parseValue parses the value at the cursor and moves past it
func (p *Parser) parseValue() (ast.Value, error) {
	tok := p.current()
	switch tok.Type {
	case TokenNumber:
		p.advance()
		if strings.Contains(tok.Value, ".") {
			f, err := strconv.ParseFloat(tok.Value, 32)
			if err != nil {
				return ast.Value{}, parseError(kverror.CodeWrongFloatFormat, "incorrect float format", tok)
			}
			return ast.Float(float32(f)), nil
		}
		i, err := strconv.ParseInt(tok.Value, 10, 32)
		if err != nil {
			return ast.Value{}, parseError(kverror.CodeWrongIntFormat, "incorrect integer format", tok)
		}
		return ast.Int(int32(i)), nil
	case TokenIdentifier:
		p.advance()
		return ast.Identifier(tok.Value), nil
	case TokenString:
		p.advance()
		return ast.String(unquote(tok.Value)), nil
	case TokenListStart:
		p.advance()
		return p.parseList(tok)
	default:
		return ast.Value{}, unknownToken(tok)
	}
}

// parseList parses list elements up to the closing bracket. Lists may nest
// but never contain commands.
func (p *Parser) parseList(open Token) (ast.Value, error) {
	items := []ast.Value{}
	for {
		if p.atEOF() || p.current().Type == TokenEnd {
			return ast.Value{}, parseError(kverror.CodeUnterminatedList, "unterminated list, expected ']'", open)
		}

		tok := p.current()
		switch tok.Type {
		case TokenListEnd:
			p.advance()
			return ast.NewList(items...), nil
		case TokenDelimiter:
			p.advance()
		case TokenCommand:
			return ast.Value{}, parseError(kverror.CodeCommandInList, "commands not supported within lists", tok)
		case TokenUnknown, TokenOption:
			return ast.Value{}, unknownToken(tok)
		default:
			value, err := p.parseValue()
			if err != nil {
				return ast.Value{}, err
			}
			items = append(items, value)
		}
	}
}

func (p *Parser) current() Token {
	if p.atEOF() {
		if n := len(p.tokens); n > 0 {
			last := p.tokens[n-1]
			return endToken(last.Position+len(last.Value), last.Line, last.Column+len(last.Value))
		}
		return endToken(0, 1, 1)
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	if !p.atEOF() {
		p.pos++
	}
}

func (p *Parser) atEOF() bool {
	return p.pos >= len(p.tokens)
}

// unquote strips the matching quotes a STRING token carries
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// normalizeOption turns -Y or --Yes into "y" or "yes"
func normalizeOption(raw string) string {
	return strings.ToLower(strings.TrimLeft(raw, "-"))
}
