package commit

import (
	"regexp"
	"strings"
)

// headerPattern matches a Conventional Commit header. The breaking marker
// is accepted right after the type keyword (`feat!(api): x`) and right
// before the colon (`feat(api)!: x`).
var headerPattern = regexp.MustCompile(
	`^(feat|fix|chore|docs|refactor|test|style|perf|ci|build|revert)(!)?(?:\(([^)]+)\))?(!)?: (.+)$`,
)

// breakingFooterPrefixes mark a breaking change in the message body.
var breakingFooterPrefixes = []string{"BREAKING CHANGE:", "BREAKING-CHANGE:"}

// keywordTypes maps header keywords to their Type.
var keywordTypes = func() map[string]Type {
	m := make(map[string]Type)
	for _, t := range AllTypes() {
		if t.Keyword() {
			m[t.String()] = t
		}
	}
	return m
}()

// Options controls optional parsing rules.
type Options struct {
	// BreakingFooter promotes a conventional commit to TypeBreaking when its
	// body carries a `BREAKING CHANGE:` footer line.
	BreakingFooter bool
}

// Parser parses commit messages with a fixed set of options.
// The zero value parses headers only.
type Parser struct {
	opts Options
}

// NewParser creates a parser with the given options.
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Parse parses a single message using header-only rules.
func Parse(message, id string) Parsed {
	var p Parser
	return p.Parse(message, id)
}

// ParseAll parses raws in order using header-only rules.
func ParseAll(raws []Raw) []Parsed {
	var p Parser
	return p.ParseAll(raws)
}

// Parse converts a commit message into a Parsed record. It never fails.
func (p *Parser) Parse(message, id string) Parsed {
	header, body := splitMessage(message)

	parsed := Parsed{
		ID:          id,
		Type:        TypeOther,
		Description: header,
		Body:        body,
	}

	m := headerPattern.FindStringSubmatch(header)
	if m == nil {
		return parsed
	}

	parsed.Type = keywordTypes[m[1]]
	if m[3] != "" {
		scope := m[3]
		parsed.Scope = &scope
	}
	parsed.Description = m[5]

	if m[2] != "" || m[4] != "" {
		parsed.Type = TypeBreaking
	} else if p.opts.BreakingFooter && hasBreakingFooter(body) {
		parsed.Type = TypeBreaking
	}

	return parsed
}

// ParseAll parses raws in order.
func (p *Parser) ParseAll(raws []Raw) []Parsed {
	parsed := make([]Parsed, 0, len(raws))
	for _, r := range raws {
		parsed = append(parsed, p.Parse(r.Message, r.ID))
	}
	return parsed
}

// splitMessage returns the header line and the trimmed body, nil when the
// body is empty after trimming.
func splitMessage(message string) (string, *string) {
	message = strings.TrimSpace(message)
	header, rest, _ := strings.Cut(message, "\n")
	header = strings.TrimRight(header, " \t\r")

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return header, nil
	}
	return header, &rest
}

func hasBreakingFooter(body *string) bool {
	if body == nil {
		return false
	}
	for _, line := range strings.Split(*body, "\n") {
		for _, prefix := range breakingFooterPrefixes {
			if strings.HasPrefix(line, prefix) {
				return true
			}
		}
	}
	return false
}
