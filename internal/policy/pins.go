package policy

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"pault.ag/go/debian/control"

	"github.com/git-pkgs/aptcache/internal/core"
)

// NoPins is a PinStore without any configuration.
type NoPins struct{}

func (NoPins) TrustFor(core.PackageFile) (core.Priority, bool) { return 0, false }

func (NoPins) PinFor(string, string, core.PackageFile) (core.Priority, bool) { return 0, false }

// PinKey selects the versions a static pin applies to. An empty Version
// matches every version of the package.
type PinKey struct {
	Name    string
	Version string
}

// StaticPins is a PinStore backed by maps.
type StaticPins struct {
	// Trust is keyed by PackageFile.FileName.
	Trust map[string]core.Priority
	Pins  map[PinKey]core.Priority
}

func (s StaticPins) TrustFor(file core.PackageFile) (core.Priority, bool) {
	prio, ok := s.Trust[file.FileName()]
	return prio, ok
}

func (s StaticPins) PinFor(name, version string, _ core.PackageFile) (core.Priority, bool) {
	if prio, ok := s.Pins[PinKey{name, version}]; ok {
		return prio, true
	}
	prio, ok := s.Pins[PinKey{Name: name}]
	return prio, ok
}

// Chain consults stores in order; the first one with an answer wins.
type Chain []PinStore

func (c Chain) TrustFor(file core.PackageFile) (core.Priority, bool) {
	for _, s := range c {
		if prio, ok := s.TrustFor(file); ok {
			return prio, true
		}
	}
	return 0, false
}

func (c Chain) PinFor(name, version string, file core.PackageFile) (core.Priority, bool) {
	for _, s := range c {
		if prio, ok := s.PinFor(name, version, file); ok {
			return prio, true
		}
	}
	return 0, false
}

// ErrInvalidPreference is returned for preference stanzas that cannot be
// understood.
var ErrInvalidPreference = errors.New("invalid preference")

// PreferenceError wraps ErrInvalidPreference with the offending stanza.
type PreferenceError struct {
	File   string
	Stanza int // 1-based
	Reason string
}

func (e *PreferenceError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: stanza %d: %s", e.File, e.Stanza, e.Reason)
	}
	return fmt.Sprintf("stanza %d: %s", e.Stanza, e.Reason)
}

func (e *PreferenceError) Unwrap() error {
	return ErrInvalidPreference
}

// Pin kinds.
const (
	PinVersion = "version"
	PinRelease = "release"
	PinOrigin  = "origin"
)

// Preference is one stanza of an apt preferences file.
type Preference struct {
	Packages    []string // globs, /regexps/, or "*"
	Kind        string   // PinVersion, PinRelease or PinOrigin
	Value       string   // the pin's argument as written
	Priority    core.Priority
	Explanation string

	release map[string]string
	regexps []*regexp.Regexp
}

// general reports whether the preference applies to all packages. General
// release and origin pins set the trust of whole files.
func (p *Preference) general() bool {
	return len(p.Packages) == 1 && p.Packages[0] == "*"
}

func (p *Preference) matchesPackage(name string) bool {
	for i, pat := range p.Packages {
		if pat == "*" {
			return true
		}
		if i < len(p.regexps) && p.regexps[i] != nil {
			if p.regexps[i].MatchString(name) {
				return true
			}
			continue
		}
		if ok, _ := path.Match(pat, name); ok {
			return true
		}
	}
	return false
}

func (p *Preference) matchesFile(version string, file core.PackageFile) bool {
	switch p.Kind {
	case PinVersion:
		ok, _ := path.Match(p.Value, version)
		return ok
	case PinOrigin:
		if file.IsStatus() {
			return false
		}
		return file.Site() == p.Value
	case PinRelease:
		if file.IsStatus() {
			return false
		}
		for key, want := range p.release {
			var got string
			switch key {
			case "a":
				got = file.Archive()
			case "n":
				got = file.Codename()
			case "c":
				got = file.Component()
			case "o":
				got = file.Origin()
			case "l":
				got = file.Label()
			case "v":
				got = file.Version()
			case "b":
				got = file.Architecture()
			}
			if ok, _ := path.Match(want, got); !ok {
				return false
			}
		}
		return true
	}
	return false
}

// Preferences is a PinStore read from apt preferences files. Specific pins
// are matched first, in file order; general ("Package: *") release and
// origin pins then set the trust of whole files, also in file order.
type Preferences struct {
	entries []Preference
}

// Entries returns the parsed stanzas in file order.
func (p *Preferences) Entries() []Preference {
	return slices.Clone(p.entries)
}

func (p *Preferences) TrustFor(file core.PackageFile) (core.Priority, bool) {
	for i := range p.entries {
		e := &p.entries[i]
		if e.general() && e.Kind != PinVersion && e.matchesFile("", file) {
			return e.Priority, true
		}
	}
	return 0, false
}

func (p *Preferences) PinFor(name, version string, file core.PackageFile) (core.Priority, bool) {
	for i := range p.entries {
		e := &p.entries[i]
		if e.general() && e.Kind != PinVersion {
			continue
		}
		if e.matchesPackage(name) && e.matchesFile(version, file) {
			return e.Priority, true
		}
	}
	return 0, false
}

// ParsePreferences reads apt preferences stanzas from r.
func ParsePreferences(r io.Reader) (*Preferences, error) {
	prefs := &Preferences{}
	if err := prefs.parse("", r); err != nil {
		return nil, err
	}
	return prefs, nil
}

// LoadPreferences reads preferences files in order. A directory stands for
// its files in lexical order, as with /etc/apt/preferences.d: only files
// without an extension or ending in ".pref" are read.
func LoadPreferences(paths ...string) (*Preferences, error) {
	prefs := &Preferences{}
	for _, p := range paths {
		files, err := expandPreferencePath(p)
		if err != nil {
			return nil, err
		}
		for _, name := range files {
			f, err := os.Open(name)
			if err != nil {
				return nil, fmt.Errorf("opening preferences: %w", err)
			}
			err = prefs.parse(name, f)
			f.Close()
			if err != nil {
				return nil, err
			}
		}
	}
	return prefs, nil
}

func expandPreferencePath(p string) ([]string, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	if !info.IsDir() {
		return []string{p}, nil
	}
	entries, err := os.ReadDir(p)
	if err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == "" || ext == ".pref" {
			files = append(files, filepath.Join(p, e.Name()))
		}
	}
	slices.Sort(files)
	return files, nil
}

func (p *Preferences) parse(name string, r io.Reader) error {
	data, err := stripComments(r)
	if err != nil {
		return fmt.Errorf("reading preferences: %w", err)
	}
	reader, err := control.NewParagraphReader(bytes.NewReader(data), nil)
	if err != nil {
		return fmt.Errorf("reading preferences: %w", err)
	}
	for n := 1; ; n++ {
		para, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading preferences: %w", err)
		}
		pref, err := newPreference(para)
		if err != nil {
			return &PreferenceError{File: name, Stanza: n, Reason: err.Error()}
		}
		p.entries = append(p.entries, pref)
	}
}

// stripComments drops "#" comment lines, which control paragraphs do not
// allow.
func stripComments(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), sc.Err()
}

func newPreference(para *control.Paragraph) (Preference, error) {
	pkgs := strings.Fields(para.Values["Package"])
	if len(pkgs) == 0 {
		return Preference{}, errors.New("missing Package field")
	}
	pin := strings.TrimSpace(para.Values["Pin"])
	if pin == "" {
		return Preference{}, errors.New("missing Pin field")
	}
	rawPrio := strings.TrimSpace(para.Values["Pin-Priority"])
	if rawPrio == "" {
		return Preference{}, errors.New("missing Pin-Priority field")
	}
	prio, err := strconv.ParseInt(rawPrio, 10, 16)
	if err != nil {
		return Preference{}, fmt.Errorf("Pin-Priority %q: %w", rawPrio, err)
	}

	pref := Preference{
		Packages:    pkgs,
		Priority:    core.Priority(prio),
		Explanation: strings.TrimSpace(para.Values["Explanation"]),
		regexps:     make([]*regexp.Regexp, len(pkgs)),
	}
	for i, pat := range pkgs {
		if len(pat) > 2 && strings.HasPrefix(pat, "/") && strings.HasSuffix(pat, "/") {
			re, err := regexp.Compile(pat[1 : len(pat)-1])
			if err != nil {
				return Preference{}, fmt.Errorf("package pattern %s: %w", pat, err)
			}
			pref.regexps[i] = re
		}
	}

	kind, value, _ := strings.Cut(pin, " ")
	pref.Kind = kind
	pref.Value = strings.TrimSpace(value)
	switch kind {
	case PinVersion, PinOrigin:
		pref.Value = strings.Trim(pref.Value, `"`)
		if kind == PinVersion && pref.Value == "" {
			return Preference{}, errors.New("version pin without a version")
		}
	case PinRelease:
		rel, err := parseRelease(pref.Value)
		if err != nil {
			return Preference{}, err
		}
		pref.release = rel
	default:
		return Preference{}, fmt.Errorf("unknown pin type %q", kind)
	}
	return pref, nil
}

// parseRelease splits "a=stable, n=bookworm" into its keys. A bare value is
// the release version, as in "release 12".
func parseRelease(s string) (map[string]string, error) {
	rel := make(map[string]string)
	if s == "" {
		return rel, nil
	}
	if !strings.Contains(s, "=") {
		rel["v"] = s
		return rel, nil
	}
	for _, part := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, fmt.Errorf("release pin term %q: want key=value", part)
		}
		switch key {
		case "a", "n", "c", "o", "l", "v", "b":
			rel[key] = strings.Trim(value, `"`)
		default:
			return nil, fmt.Errorf("unknown release pin key %q", key)
		}
	}
	return rel, nil
}
