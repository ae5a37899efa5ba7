package docs

import (
	"strings"
	"testing"
)

func TestTopicsAndGet(t *testing.T) {
	topics := Topics()
	if len(topics) == 0 {
		t.Fatalf("no embedded topics")
	}
	for _, topic := range topics {
		body, ok := Get(topic)
		if !ok {
			t.Fatalf("listed topic %q not readable", topic)
		}
		if !strings.HasPrefix(strings.TrimSpace(body), "#") {
			t.Fatalf("topic %q does not start with a heading", topic)
		}
	}
	if _, ok := Get("no-such-topic"); ok {
		t.Fatalf("unknown topic found")
	}
}
