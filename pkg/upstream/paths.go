package upstream

import (
	"fmt"
	"net/url"
)

// path formats a backend path escaping every identifier segment.
func path(format string, ids ...string) string {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}
