package stamp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	at := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "Jane Doe - 1/2/2026, 3:04:05 PM", Format("Jane Doe", at))
}

func TestFormatMorning(t *testing.T) {
	at := time.Date(2026, 11, 30, 9, 5, 0, 0, time.UTC)

	assert.Equal(t, "bob - 11/30/2026, 9:05:00 AM", Format("bob", at))
}
