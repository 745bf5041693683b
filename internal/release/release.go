// Package release wires the history collector, commit parser, version
// calculator, changelog renderer and tag writer into one release flow.
//
// The version is computed before anything is written and the changelog
// is written before the tag is created, so a missing or malformed tag
// never leaves partial output behind.
package release

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/ariel-frischer/semrel/internal/changelog"
	"github.com/ariel-frischer/semrel/internal/commit"
	"github.com/ariel-frischer/semrel/internal/git"
	"github.com/ariel-frischer/semrel/internal/versioning"
)

// VersionPlaceholder is replaced by the new version in tag messages.
const VersionPlaceholder = "{{version}}"

// History supplies the latest tag and the commits made after it, oldest first.
type History interface {
	CommitsSinceLatestTag(ctx context.Context) (string, []commit.Raw, error)
}

// TagWriter creates a tag at HEAD.
type TagWriter interface {
	CreateTag(ctx context.Context, name string, opts git.TagOptions) (*plumbing.Reference, error)
}

var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for release operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Options controls a release run.
type Options struct {
	Parser  commit.Options
	Exclude []commit.Type // types left out of the changelog

	// ChangelogPath is the Markdown file to update. Empty skips the write.
	ChangelogPath string

	// ChangelogOut receives the rendered block instead of ChangelogPath
	// when set.
	ChangelogOut io.Writer

	// Version overrides the computed next version in the changelog and tag.
	Version string

	DryRun bool
	NoTag  bool

	// Annotate creates an annotated tag with TagMessage, in which
	// VersionPlaceholder is expanded.
	Annotate    bool
	TagMessage  string
	TaggerName  string
	TaggerEmail string
}

// Plan is the outcome of collecting and analysing the history.
type Plan struct {
	CurrentTag string
	Next       string
	Bump       versioning.Bump
	Raw        []commit.Raw
	Commits    []commit.Parsed
	Release    *changelog.Release
}

// HasChanges reports whether any commit was found since CurrentTag.
func (p *Plan) HasChanges() bool {
	return len(p.Commits) > 0
}

// Result describes what Run did.
type Result struct {
	*Plan
	ChangelogWritten bool
	ChangelogPrinted bool
	Tagged           bool
}

// Pipeline runs releases against a history and a tag writer.
type Pipeline struct {
	history History
	tags    TagWriter
	opts    Options
}

// New creates a Pipeline. tags may be nil when Options.NoTag or
// Options.DryRun is set.
func New(history History, tags TagWriter, opts Options) *Pipeline {
	return &Pipeline{history: history, tags: tags, opts: opts}
}

// Plan collects the commits since the latest tag, parses them and
// computes the next version and the changelog release. Nothing is written.
func (p *Pipeline) Plan(ctx context.Context) (*Plan, error) {
	current, raws, err := p.history.CommitsSinceLatestTag(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting history: %w", err)
	}
	logDebug("[release] %d commits since %s", len(raws), current)

	parsed := commit.NewParser(p.opts.Parser).ParseAll(raws)

	next, err := versioning.Next(parsed, current)
	if err != nil {
		return nil, err
	}
	if p.opts.Version != "" {
		logDebug("[release] version override %s (computed %s)", p.opts.Version, next)
		next = p.opts.Version
	}

	plan := &Plan{
		CurrentTag: current,
		Next:       next,
		Bump:       versioning.BumpFor(parsed),
		Raw:        raws,
		Commits:    parsed,
		Release:    changelog.Group(next, parsed, p.opts.Exclude...),
	}
	logDebug("[release] %s -> %s (%s bump)", current, next, plan.Bump)
	return plan, nil
}

// Run plans the release and, unless DryRun is set, writes the changelog
// and creates the tag. A history without new commits writes nothing.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	plan, err := p.Plan(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{Plan: plan}
	if p.opts.DryRun || !plan.HasChanges() {
		logDebug("[release] nothing written (dry run: %v, changes: %v)", p.opts.DryRun, plan.HasChanges())
		return result, nil
	}

	switch {
	case p.opts.ChangelogOut != nil:
		if err := changelog.Render(p.opts.ChangelogOut, plan.Release); err != nil {
			return result, fmt.Errorf("printing changelog: %w", err)
		}
		result.ChangelogPrinted = true
	case p.opts.ChangelogPath != "":
		if err := changelog.WriteFile(p.opts.ChangelogPath, plan.Release); err != nil {
			return result, fmt.Errorf("writing changelog: %w", err)
		}
		result.ChangelogWritten = true
		logDebug("[release] wrote %s", p.opts.ChangelogPath)
	}

	if p.opts.NoTag {
		return result, nil
	}
	if p.tags == nil {
		return result, fmt.Errorf("creating tag %s: no tag writer configured", plan.Next)
	}

	if _, err := p.tags.CreateTag(ctx, plan.Next, p.tagOptions(plan.Next)); err != nil {
		return result, err
	}
	result.Tagged = true
	return result, nil
}

func (p *Pipeline) tagOptions(version string) git.TagOptions {
	opts := git.TagOptions{
		TaggerName:  p.opts.TaggerName,
		TaggerEmail: p.opts.TaggerEmail,
	}
	if p.opts.Annotate {
		opts.Message = ExpandMessage(p.opts.TagMessage, version)
		if opts.Message == "" {
			opts.Message = version
		}
	}
	return opts
}

// ExpandMessage replaces VersionPlaceholder in template with version.
func ExpandMessage(template, version string) string {
	return strings.ReplaceAll(template, VersionPlaceholder, version)
}
