package index

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"pault.ag/go/debian/control"
	"pault.ag/go/debian/dependency"

	"github.com/git-pkgs/aptcache/internal/core"
)

// Stanza is one control paragraph and its location in the index file.
type Stanza struct {
	Offset int
	Size   int
	Para   *control.Paragraph
}

// Field returns the trimmed value of a field, or "".
func (s Stanza) Field(name string) string {
	if s.Para == nil {
		return ""
	}
	return strings.TrimSpace(s.Para.Values[name])
}

// EachStanza calls fn for every stanza of data in order. Stanzas that are
// not valid control paragraphs, and stanzas for which fn returns an error,
// are collected as skipped. Only a cancelled ctx ends the walk early.
func EachStanza(ctx context.Context, data []byte, fn func(Stanza) error) ([]*ParseError, error) {
	var skipped []*ParseError
	for off, size := range splitStanzas(data) {
		if err := ctx.Err(); err != nil {
			return skipped, err
		}
		para, err := parseParagraph(data[off : off+size])
		if err != nil {
			skipped = append(skipped, &ParseError{Offset: off, Err: err})
			continue
		}
		if err := fn(Stanza{Offset: off, Size: size, Para: para}); err != nil {
			skipped = append(skipped, &ParseError{Offset: off, Err: err})
		}
	}
	return skipped, nil
}

// splitStanzas yields the offset and size of every stanza. Stanzas are
// separated by lines that are empty or hold only whitespace; the separator
// is not part of either stanza.
func splitStanzas(data []byte) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		start := -1
		pos := 0
		for pos < len(data) {
			end := bytes.IndexByte(data[pos:], '\n')
			next := len(data)
			if end >= 0 {
				next = pos + end + 1
			}
			blank := len(bytes.TrimSpace(data[pos:next])) == 0
			switch {
			case blank && start >= 0:
				if !yield(start, pos-start) {
					return
				}
				start = -1
			case !blank && start < 0:
				start = pos
			}
			pos = next
		}
		if start >= 0 {
			yield(start, len(data)-start)
		}
	}
}

func parseParagraph(stanza []byte) (*control.Paragraph, error) {
	reader, err := control.NewParagraphReader(bytes.NewReader(stanza), nil)
	if err != nil {
		return nil, err
	}
	para, err := reader.Next()
	if err == io.EOF || (err == nil && para == nil) {
		return nil, errors.New("empty stanza")
	}
	if err != nil {
		return nil, err
	}
	return para, nil
}

// AddBinary adds the binary package version described by s to b, recording
// s's location in file. A version already added from another file gains a
// version-file but keeps its first set of fields and dependencies.
func AddBinary(b *core.Builder, file core.FileID, s Stanza) (core.VersionID, error) {
	name := s.Field("Package")
	if name == "" {
		return 0, fmt.Errorf("%w: Package", ErrMissingField)
	}
	ver := s.Field("Version")
	if ver == "" {
		return 0, fmt.Errorf("%w: Version", ErrMissingField)
	}

	// Parse relationships before touching the builder so that a bad
	// stanza leaves nothing behind.
	var deps []core.DependencySpec
	for _, kind := range core.DependencyKinds {
		raw := s.Field(kind)
		if raw == "" {
			continue
		}
		specs, err := ParseRelations(kind, raw)
		if err != nil {
			return 0, fmt.Errorf("%s of %s: %w", kind, name, err)
		}
		deps = append(deps, specs...)
	}

	srcName, srcVer := ParseSource(s.Field("Source"))
	arch := s.Field("Architecture")
	pkg := b.Package(name, arch)
	id, created := b.AddVersion(pkg, core.VersionSpec{
		Version:       ver,
		Arch:          arch,
		Section:       s.Field("Section"),
		SourcePackage: srcName,
		SourceVersion: srcVer,
		PriorityType:  s.Field("Priority"),
		MultiArch:     s.Field("Multi-Arch"),
	})
	if created {
		for _, d := range deps {
			b.AddDependency(id, d)
		}
	}
	b.AddVersionFile(id, file, s.Offset, s.Size)
	return id, nil
}

// ParseRelations parses a relationship field such as Depends into edges.
// Alternatives of one or-group are flagged on every edge but the last. An
// architecture qualifier such as libc6:i386 targets that architecture;
// :any and :native keep the depending package's.
func ParseRelations(kind, raw string) ([]core.DependencySpec, error) {
	dep, err := dependency.Parse(raw)
	if err != nil {
		return nil, err
	}
	var specs []core.DependencySpec
	for _, rel := range dep.Relations {
		for i, poss := range rel.Possibilities {
			spec := core.DependencySpec{
				TargetName: poss.Name,
				DepType:    kind,
				Or:         i < len(rel.Possibilities)-1,
			}
			if poss.Arch != nil {
				spec.TargetArch = qualifierArch(poss.Arch.String())
			}
			if poss.Version != nil {
				spec.CompType = poss.Version.Operator
				spec.TargetVersion = poss.Version.Number
			}
			specs = append(specs, spec)
		}
	}
	return specs, nil
}

func qualifierArch(arch string) string {
	switch arch {
	case "", "any", "native", "all":
		return ""
	}
	return arch
}

// ParseSource splits a Source field, "glibc" or "glibc (2.36-9)", into name
// and version. Missing parts are "".
func ParseSource(field string) (name, version string) {
	name, rest, ok := strings.Cut(strings.TrimSpace(field), " ")
	if !ok {
		return name, ""
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimPrefix(rest, "(")
	rest = strings.TrimSuffix(rest, ")")
	return name, strings.TrimSpace(rest)
}
