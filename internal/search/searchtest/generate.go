package searchtest

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

var (
	levels    = []string{"debug", "info", "info", "info", "warn", "error"}
	resources = []string{"server-1234", "server-5678", "db-primary", "db-replica", "cache-01", "gateway"}
	templates = []string{
		"Failed to connect to DB",
		"connection refused by %s",
		"request timeout after %dms",
		"user %d logged in",
		"cache miss for key session:%d",
		"disk usage at %d%%",
		"retrying job %d",
		"panic recovered in handler %s",
		"health check ok",
		"slow query took %dms",
	}
)

// Generate returns n deterministic entries, one second apart, ending at base
func Generate(n int, seed int64, base time.Time) []LogEntry {
	rng := rand.New(rand.NewSource(seed))
	out := make([]LogEntry, 0, n)
	for i := 0; i < n; i++ {
		trace, _ := uuid.NewRandomFromReader(rng)
		resource := resources[rng.Intn(len(resources))]
		out = append(out, LogEntry{
			Level:      levels[rng.Intn(len(levels))],
			Message:    message(rng, resource),
			ResourceID: resource,
			Timestamp:  base.Add(-time.Duration(n-i) * time.Second).UTC().Truncate(time.Second),
			TraceID:    "trace-" + trace.String()[:8],
			SpanID:     fmt.Sprintf("span-%03d", rng.Intn(1000)),
			Commit:     fmt.Sprintf("%07x", rng.Intn(1<<28)),
			Metadata: Metadata{
				ParentResourceID: fmt.Sprintf("server-%04d", rng.Intn(10000)),
			},
		})
	}
	return out
}

func message(rng *rand.Rand, resource string) string {
	tpl := templates[rng.Intn(len(templates))]
	switch tpl {
	case "connection refused by %s", "panic recovered in handler %s":
		return fmt.Sprintf(tpl, resource)
	case "Failed to connect to DB", "health check ok":
		return tpl
	default:
		return fmt.Sprintf(tpl, rng.Intn(5000))
	}
}
