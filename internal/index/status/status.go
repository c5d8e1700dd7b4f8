// Package status reads the dpkg status file, the record of what is
// installed.
package status

import (
	"context"
	"fmt"
	"strings"

	"github.com/git-pkgs/aptcache/internal/core"
	"github.com/git-pkgs/aptcache/internal/index"
)

const indexType = core.IndexTypeStatus

func init() {
	index.Register(indexType, func() index.Format {
		return New()
	})
}

type Format struct{}

func New() *Format {
	return &Format{}
}

func (f *Format) IndexType() string {
	return indexType
}

// State is the third word of a Status field, e.g. "installed".
type State string

const (
	NotInstalled    State = "not-installed"
	ConfigFiles     State = "config-files"
	HalfInstalled   State = "half-installed"
	Unpacked        State = "unpacked"
	HalfConfigured  State = "half-configured"
	TriggersAwaited State = "triggers-awaited"
	TriggersPending State = "triggers-pending"
	Installed       State = "installed"
)

// ParseStatus splits a Status field, "install ok installed", into its three
// words.
func ParseStatus(field string) (want, flag string, state State, err error) {
	words := strings.Fields(field)
	if len(words) != 3 {
		return "", "", "", fmt.Errorf("malformed Status %q", field)
	}
	return words[0], words[1], State(words[2]), nil
}

// Present reports whether the package's files are on disk in this state,
// which makes its version the current one.
func (s State) Present() bool {
	switch s {
	case NotInstalled, ConfigFiles, "":
		return false
	}
	return true
}

// Parse adds the packages dpkg knows about. Packages whose files are on
// disk become the current version of their package; packages with only
// configuration files left are recorded but not current, and not-installed
// entries are ignored.
func (f *Format) Parse(ctx context.Context, b *core.Builder, file core.FileID, data []byte) (index.Result, error) {
	var res index.Result
	skipped, err := index.EachStanza(ctx, data, func(s index.Stanza) error {
		_, _, state, err := ParseStatus(s.Field("Status"))
		if err != nil {
			return err
		}
		if state == NotInstalled {
			return nil
		}
		id, err := index.AddBinary(b, file, s)
		if err != nil {
			return err
		}
		if state.Present() {
			b.SetCurrent(id)
		}
		res.Versions++
		return nil
	})
	res.Skipped = skipped
	return res, err
}
