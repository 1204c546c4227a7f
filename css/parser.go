// Package css reads stylesheets into book styles and writes book styles back
// as CSS for export.
package css

import (
	"bytes"
	"maps"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// MediaQuery represents a parsed @media query condition.
type MediaQuery struct {
	Raw     string // Original media query string
	Type    string // Media type (e.g., "print", "screen")
	Negated bool   // true if "not" modifier was used on main type
	// Features are conditions after "and", they are not evaluated.
	Features []string
}

// Print reports whether query selects paged print media. Only media type is
// evaluated.
func (mq MediaQuery) Print() bool {
	var matches bool
	switch mq.Type {
	case "", "all", "print":
		matches = true
	}
	if mq.Negated {
		return !matches
	}
	return matches
}

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			atRule := strings.ToLower(string(data))
			switch atRule {
			case "@media":
				mq := p.parseMediaQuery(parser.Values())
				rules := p.parseMediaBlockRules(parser, sheet)
				if mq.Print() {
					sheet.Rules = append(sheet.Rules, rules...)
				}
				p.log.Debug("Parsed @media block", zap.String("query", mq.Raw), zap.Bool("print", mq.Print()), zap.Int("rules", len(rules)))
			case "@font-face":
				if ff := p.parseFontFace(parser); ff.Family != "" {
					sheet.FontFaces = append(sheet.FontFaces, ff)
				}
			default:
				p.skipAtRuleBlock(parser)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.AtRuleGrammar:
			// @import and @charset carry nothing a book style could use
			sheet.Warnings = append(sheet.Warnings, "ignored at-rule: "+string(data))

		case css.BeginRulesetGrammar:
			sheet.Rules = append(sheet.Rules, p.parseRuleset(parser, data, sheet)...)
		}
	}
}

// parseRuleset reads declarations of a ruleset which has just begun and
// creates rule for every simple selector of the group.
func (p *Parser) parseRuleset(parser *css.Parser, data []byte, sheet *Stylesheet) []Rule {
	selectors := p.parseSelectors(data, parser.Values())
	props := p.parseDeclarations(parser)

	var rules []Rule
	for _, s := range selectors {
		sel := p.parseSelector(s, sheet)
		if !sel.IsSimple() {
			continue
		}
		rules = append(rules, Rule{Selector: sel, Properties: maps.Clone(props)})
	}
	return rules
}

// parseSelectors extracts selector strings from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	// Split by comma for grouped selectors
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) map[string]Value {
	props := make(map[string]Value)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return props

		case css.DeclarationGrammar:
			values := parser.Values()
			if len(values) > 0 {
				props[strings.ToLower(string(data))] = p.parsePropertyValue(values)
			}
		}
	}
}

// parsePropertyValue converts CSS tokens to a Value.
func (p *Parser) parsePropertyValue(tokens []css.Token) Value {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	raw := strings.TrimSpace(strings.Join(parts, ""))
	val := Value{Raw: raw}

	// "!important" is irrelevant here
	if i := strings.Index(raw, "!"); i >= 0 {
		raw = strings.TrimSpace(raw[:i])
		val.Raw = raw
		for len(tokens) > 0 && tokens[len(tokens)-1].TokenType != css.DelimToken {
			tokens = tokens[:len(tokens)-1]
		}
		if len(tokens) > 0 {
			tokens = tokens[:len(tokens)-1]
		}
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].TokenType == css.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}

	if len(tokens) == 1 {
		t := tokens[0]
		switch t.TokenType {
		case css.DimensionToken:
			val.Value, val.Unit = parseDimension(string(t.Data))
		case css.PercentageToken:
			val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
			val.Unit = "%"
		case css.NumberToken:
			val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
		case css.IdentToken:
			val.Keyword = strings.ToLower(string(t.Data))
		case css.StringToken:
			val.Keyword = unquote(string(t.Data))
		case css.HashToken:
			val.Keyword = string(t.Data)
		default:
			val.Keyword = raw
		}
		return val
	}

	// functions (rgb(), url()) and multi-value properties
	val.Keyword = raw
	return val
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}
	if numEnd == 0 {
		return 0, ""
	}
	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	return num, strings.ToLower(s[numEnd:])
}

// parseSelector parses a single selector string into a Selector. Anything
// but element, class and element.class is reported and skipped.
func (p *Parser) parseSelector(selStr string, sheet *Stylesheet) Selector {
	selStr = strings.TrimSpace(selStr)
	sel := Selector{Raw: selStr}

	if strings.ContainsAny(selStr, "+~>[:# \t\n*") || strings.Count(selStr, ".") > 1 {
		sheet.Warnings = append(sheet.Warnings, "unsupported selector: "+selStr)
		p.log.Debug("Skipping selector", zap.String("selector", selStr))
		return sel
	}
	if element, class, found := strings.Cut(selStr, "."); found {
		sel.Element = strings.ToLower(element)
		sel.Class = class
	} else {
		sel.Element = strings.ToLower(selStr)
	}
	return sel
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseFontFace parses an @font-face block.
func (p *Parser) parseFontFace(parser *css.Parser) FontFace {
	ff := FontFace{}

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return ff

		case css.DeclarationGrammar:
			values := parser.Values()
			if len(values) == 0 {
				continue
			}
			var parts []string
			for _, v := range values {
				if v.TokenType != css.WhitespaceToken {
					parts = append(parts, string(v.Data))
				}
			}
			val := strings.Join(parts, " ")

			switch strings.ToLower(string(data)) {
			case "font-family":
				ff.Family = unquote(val)
			case "src":
				ff.Src = val
			case "font-style":
				ff.Style = val
			case "font-weight":
				ff.Weight = val
			}
		}
	}
}

// parseMediaQuery parses a media query from CSS tokens: [not|only] type
// [and feature]...
func (p *Parser) parseMediaQuery(tokens []css.Token) MediaQuery {
	mq := MediaQuery{}

	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	mq.Raw = strings.TrimSpace(strings.Join(parts, ""))

	var idents []string
	for _, t := range tokens {
		if t.TokenType == css.IdentToken {
			idents = append(idents, strings.ToLower(string(t.Data)))
		}
	}

	i := 0
	if i < len(idents) && (idents[i] == "not" || idents[i] == "only") {
		mq.Negated = idents[i] == "not"
		i++
	}
	if i < len(idents) && idents[i] != "and" {
		mq.Type = idents[i]
		i++
	}
	for ; i < len(idents); i++ {
		if idents[i] != "and" {
			mq.Features = append(mq.Features, idents[i])
		}
	}
	return mq
}

// parseMediaBlockRules parses rules inside an @media block.
func (p *Parser) parseMediaBlockRules(parser *css.Parser, sheet *Stylesheet) []Rule {
	var rules []Rule

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules

		case css.BeginRulesetGrammar:
			rules = append(rules, p.parseRuleset(parser, data, sheet)...)

		case css.BeginAtRuleGrammar:
			p.skipAtRuleBlock(parser)
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
