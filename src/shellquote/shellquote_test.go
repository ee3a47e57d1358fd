package shellquote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteEmptyString(t *testing.T) {
	assert.Equal(t, "''", Quote(""))
}

func TestQuotePlainString(t *testing.T) {
	assert.Equal(t, "hello", Quote("hello"))
}

func TestQuoteEscapesEmbeddedSingleQuote(t *testing.T) {
	assert.Equal(t, `'it'\''s'`, Quote("it's"))
}

func TestQuoteJoin(t *testing.T) {
	assert.Equal(t, "/bin/echo hi", QuoteJoin("/bin/echo", "hi"))
}
