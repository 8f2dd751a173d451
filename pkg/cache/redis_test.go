package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "rag:q:user-1:students:page=1", Key("q", "user-1", "students", "page=1"))
	assert.Equal(t, "rag:prefs", Key("prefs"))
}
