package generate

import (
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/ssestream"
)

// documentEndTag marks a complete document, after which any further model
// output is discarded.
const documentEndTag = "</html>"

// fragmentStream is a server-driven sequence of text fragments. The SDK
// stream satisfies it through chunkStream; tests provide their own.
type fragmentStream interface {
	Next() bool
	Current() string
	Err() error
	Close() error
}

type chunkStream struct {
	stream *ssestream.Stream[openai.ChatCompletionChunk]
}

func (c *chunkStream) Next() bool { return c.stream.Next() }

func (c *chunkStream) Current() string {
	chunk := c.stream.Current()
	if len(chunk.Choices) == 0 {
		return ""
	}
	return chunk.Choices[0].Delta.Content
}

func (c *chunkStream) Err() error   { return c.stream.Err() }
func (c *chunkStream) Close() error { return c.stream.Close() }

// Relay forwards every fragment through emit the moment it arrives, keeping
// only enough state to detect the closing document tag. Consumption ends the
// instant the accumulated output contains the tag, regardless of whether the
// upstream keeps generating. Returns whether any fragment reached the caller.
func Relay(stream fragmentStream, emit func(fragment string) error) (bool, error) {
	defer func() { _ = stream.Close() }()

	var buf strings.Builder
	sent := false
	for stream.Next() {
		fragment := stream.Current()
		if fragment == "" {
			continue
		}
		buf.WriteString(fragment)
		if err := emit(fragment); err != nil {
			return sent, err
		}
		sent = true
		if strings.Contains(buf.String(), documentEndTag) {
			return true, nil
		}
	}
	return sent, stream.Err()
}
