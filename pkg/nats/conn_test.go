package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "baristabox.knowledge_changed", Subject("KNOWLEDGE_CHANGED"))
	assert.Equal(t, "baristabox.ping", Subject("ping"))
}
