package nats

import (
	"testing"
	"time"

	"medstory-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	evt := events.NewUploadCompleted("u1", "u1/1", "blood", "1", time.Now())
	assert.Equal(t, "events.UPLOAD_COMPLETED", Subject(evt))
}
