package domain

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/valyala/fastjson"
)

// PageSize is the number of records the search service returns per full page
const PageSize = 50

// Filter keys recognised by the search service
const (
	FilterLevel            = "level"
	FilterMessage          = "message"
	FilterResourceID       = "resourceId"
	FilterTimestamp        = "timestamp"
	FilterTraceID          = "traceId"
	FilterSpanID           = "spanId"
	FilterCommit           = "commit"
	FilterParentResourceID = "parentResourceId"
)

// FilterKeys lists the filter keys in form order
var FilterKeys = []string{
	FilterLevel,
	FilterMessage,
	FilterResourceID,
	FilterTimestamp,
	FilterTraceID,
	FilterSpanID,
	FilterCommit,
	FilterParentResourceID,
}

// FilterLabels maps filter keys to their form labels
var FilterLabels = map[string]string{
	FilterLevel:            "Level",
	FilterMessage:          "Message",
	FilterResourceID:       "Resource ID",
	FilterTimestamp:        "Timestamp",
	FilterTraceID:          "Trace ID",
	FilterSpanID:           "Span ID",
	FilterCommit:           "Commit",
	FilterParentResourceID: "Parent Resource ID",
}

// IsFilterKey reports whether name is one of the recognised filter keys
func IsFilterKey(name string) bool {
	_, ok := FilterLabels[name]
	return ok
}

// Filters maps filter keys to their values. Empty values mean "no constraint".
type Filters map[string]string

// NewFilters returns a filter set with every recognised key present and empty
func NewFilters() Filters {
	f := make(Filters, len(FilterKeys))
	for _, k := range FilterKeys {
		f[k] = ""
	}
	return f
}

// Clone returns an independent copy
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Empty reports whether every filter value is empty
func (f Filters) Empty() bool {
	for _, v := range f {
		if v != "" {
			return false
		}
	}
	return true
}

// Active returns the non-empty filters
func (f Filters) Active() map[string]string {
	out := make(map[string]string)
	for k, v := range f {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Identity is the pair (term, filters) that defines which results belong together
type Identity struct {
	Term    string
	Filters Filters
}

// NewIdentity snapshots a term and filter set
func NewIdentity(term string, filters Filters) Identity {
	return Identity{Term: term, Filters: filters.Clone()}
}

// Empty reports whether the identity carries no constraint at all
func (id Identity) Empty() bool {
	return strings.TrimSpace(id.Term) == "" && id.Filters.Empty()
}

// Equal compares two identities. Missing keys compare equal to empty values.
func (id Identity) Equal(other Identity) bool {
	if id.Term != other.Term {
		return false
	}
	for k, v := range id.Filters {
		if other.Filters[k] != v {
			return false
		}
	}
	for k, v := range other.Filters {
		if id.Filters[k] != v {
			return false
		}
	}
	return true
}

// String renders the identity for logs, filters in key order
func (id Identity) String() string {
	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(quote(id.Term))
	keys := make([]string, 0, len(id.Filters))
	for k, v := range id.Filters {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(quote(id.Filters[k]))
	}
	return b.String()
}

func quote(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

// Record is one opaque search result. The schema belongs to the server; the
// client keeps the raw JSON and only peeks at a few fields for display.
type Record json.RawMessage

// MarshalJSON emits the record as-is
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON keeps a copy of the raw bytes
func (r *Record) UnmarshalJSON(data []byte) error {
	*r = append((*r)[0:0], data...)
	return nil
}

// String returns the raw JSON text
func (r Record) String() string {
	return string(r)
}

// Field returns a top-level string field, or "" when absent or not a string
func (r Record) Field(name string) string {
	v, err := fastjson.ParseBytes(r)
	if err != nil {
		return ""
	}
	return string(v.GetStringBytes(name))
}

// Level returns the record's log level, if it has one
func (r Record) Level() string {
	return r.Field(FilterLevel)
}

// FetchRequest is one page request for a query identity
type FetchRequest struct {
	Seq      uint64
	Identity Identity
	Page     int
}

// FetchResponse carries the records of one page
type FetchResponse struct {
	Records []Record
}
