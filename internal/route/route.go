// Package route decides which channel a log record belongs to and formats
// it for display. Handler is a log/slog handler that hands every decision,
// routed or dropped, to a Sink in the order records were logged.
package route

import (
	"fmt"
	"log/slog"
	"strings"
)

// Undefined is the channel for records that carry no routing information.
const Undefined = "undefined"

// SplitBy selects the record property that names the channel.
type SplitBy int

const (
	// SplitByAttr uses the value of the attribute named by Options.Key.
	SplitByAttr SplitBy = iota
	// SplitByAttrPrefix uses that value up to the first Options.Separator.
	SplitByAttrPrefix
	// SplitByGroup uses the outermost group opened with WithGroup.
	SplitByGroup
)

func (s SplitBy) String() string {
	switch s {
	case SplitByAttr:
		return "attr"
	case SplitByAttrPrefix:
		return "attr_prefix"
	case SplitByGroup:
		return "group"
	default:
		return fmt.Sprintf("SplitBy(%d)", int(s))
	}
}

// ParseSplitBy maps a config string to a SplitBy.
func ParseSplitBy(s string) (SplitBy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "attr":
		return SplitByAttr, nil
	case "attr_prefix", "prefix":
		return SplitByAttrPrefix, nil
	case "group":
		return SplitByGroup, nil
	default:
		return 0, fmt.Errorf("unknown split_by %q", s)
	}
}

type filterMode int

const (
	filterNone filterMode = iota
	filterAllow
	filterDeny
)

// Filter restricts which channels receive records. The zero Filter permits
// everything.
type Filter struct {
	mode  filterMode
	names map[string]struct{}
}

// Allow permits only the named channels.
func Allow(names ...string) Filter {
	return Filter{mode: filterAllow, names: nameSet(names)}
}

// Deny permits every channel except the named ones.
func Deny(names ...string) Filter {
	return Filter{mode: filterDeny, names: nameSet(names)}
}

// Permits reports whether records for channel name should be shown.
func (f Filter) Permits(name string) bool {
	_, listed := f.names[name]
	switch f.mode {
	case filterAllow:
		return listed
	case filterDeny:
		return !listed
	default:
		return true
	}
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Options configures a Handler.
type Options struct {
	SplitBy   SplitBy
	Key       string
	Separator string
	Filter    Filter
	// Level is the minimum level handled. Nil means slog.LevelDebug.
	Level slog.Leveler
	// Color keeps ANSI color in formatted records.
	Color bool
}

// DefaultOptions splits by the "component" attribute.
func DefaultOptions() Options {
	return Options{
		SplitBy:   SplitByAttr,
		Key:       "component",
		Separator: ".",
		Level:     slog.LevelDebug,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Key == "" {
		o.Key = def.Key
	}
	if o.Separator == "" {
		o.Separator = def.Separator
	}
	if o.Level == nil {
		o.Level = def.Level
	}
	return o
}

// channelName reduces a routing value according to the split mode.
func (o Options) channelName(value string) string {
	if o.SplitBy == SplitByAttrPrefix {
		if head, _, found := strings.Cut(value, o.Separator); found {
			value = head
		}
	}
	if value == "" {
		return Undefined
	}
	return value
}
