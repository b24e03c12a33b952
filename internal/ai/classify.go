// Retry-with-backoff around the non-deterministic classifier.
// The model is asked for a boolean or a 1-10 integer but replies in free
// text; each attempt is parsed and inconclusive replies are retried with a
// growing sleep until the retry budget runs out.

package ai

import (
	"context"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// backoffStep scales the sleep between attempts: attempt i sleeps i*backoffStep.
const backoffStep = 5 * time.Second

var nonDigits = regexp.MustCompile(`\D`)

// Classifier converges Complete calls to a structured answer.
type Classifier struct {
	client  Client
	retries int
	sleep   func(time.Duration) // swapped out in tests
}

func NewClassifier(client Client, retries int) *Classifier {
	return &Classifier{
		client:  client,
		retries: retries,
		sleep:   time.Sleep,
	}
}

// Bool asks for a true/false answer. ok is false when the prompt is blank or
// no attempt produced a parseable reply.
func (c *Classifier) Bool(ctx context.Context, prompt string) (value bool, ok bool) {
	return classify(ctx, c, prompt, parseBool)
}

// Score asks for an integer in [1,10]. ok is false when the prompt is blank
// or the retries are exhausted without a bounded integer.
func (c *Classifier) Score(ctx context.Context, prompt string) (int, bool) {
	return classify(ctx, c, prompt, parseScore)
}

func classify[T any](ctx context.Context, c *Classifier, prompt string, parse func(string) (T, bool)) (T, bool) {
	var zero T

	// a blank prompt can never classify, don't bother the service
	if strings.TrimSpace(prompt) == "" {
		return zero, false
	}

	for i := 0; i < c.retries; i++ {
		c.sleep(time.Duration(i) * backoffStep)

		reply, err := c.client.Complete(ctx, prompt)
		if err != nil {
			// service errors are inconclusive, not fatal
			log.Printf("⚠️ classifier attempt %d/%d failed: %v", i+1, c.retries, err)
			continue
		}

		if value, ok := parse(reply); ok {
			return value, true
		}
		log.Printf("🔁 classifier attempt %d/%d inconclusive, retrying", i+1, c.retries)
	}

	return zero, false
}

func parseBool(reply string) (bool, bool) {
	lower := strings.ToLower(reply)
	if strings.Contains(lower, "true") {
		return true, true
	}
	if strings.Contains(lower, "false") {
		return false, true
	}
	return false, false
}

func parseScore(reply string) (int, bool) {
	digits := nonDigits.ReplaceAllString(reply, "")
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > 10 {
		return 0, false
	}
	return n, true
}
