package events

import "fmt"

const (
	WriterStdout = "stdout"
	WriterNats   = "nats"
	WriterNone   = "none"
)

// NewWriter builds the writer named by kind.
func NewWriter(kind, natsURL string) (Writer, error) {
	switch kind {
	case WriterStdout, "":
		return &StdoutWriter{}, nil
	case WriterNats:
		return NewNatsWriter(natsURL)
	case WriterNone:
		return NoopWriter{}, nil
	default:
		return nil, fmt.Errorf("unknown events writer %q", kind)
	}
}
