package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStep(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, "Processing tweet", 2)

	for range 5 {
		p.Step()
	}
	p.Done()

	assert.Equal(t, "Processing tweet: 0\nProcessing tweet: 2\nProcessing tweet: 4\n", buf.String())
	assert.Equal(t, 5, p.Count())
}

func TestNew_Defaults(t *testing.T) {
	p := New(nil, "x", 0)
	assert.Equal(t, DefaultEvery, p.every)
	assert.False(t, p.isTTY)

	// Discarded output must not panic.
	p.Step()
	p.Done()
}
