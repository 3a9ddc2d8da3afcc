package progressbar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	var out bytes.Buffer
	p := NewProgressBar(&out, 10, 4, time.Hour)

	p.Increment()
	p.Increment()
	bar := p.String()
	assert.True(t, strings.HasPrefix(bar, "|"+strings.Repeat("█", 5)+
		strings.Repeat(" ", 5)+"|"))
	assert.Contains(t, bar, "50.00%")

	// Progress saturates at the maximum
	for i := 0; i < 10; i++ {
		p.Increment()
	}
	assert.Contains(t, p.String(), "100.00%")
}

func TestCloseFlushes(t *testing.T) {
	var out bytes.Buffer
	p := NewProgressBar(&out, 4, 2, time.Hour)

	p.Display()
	p.Increment()
	p.SetLabel("score 500")
	p.Increment()
	p.Close()

	assert.Contains(t, out.String(), "100.00%")
	assert.Contains(t, out.String(), "score 500")
	assert.Panics(t, p.Close)
}
