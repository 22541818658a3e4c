package llm

import (
	"fmt"
	"threadsum/internal/model"
	"threadsum/internal/thread"
)

const threadSummaryPrompt = "Your job is to summarize social media threads into a %s context which includes the original post topic, the direction of conversation, and the major user participation toward any particular direction.\n\nPlease summarize this thread in a %s form:\n```%s```"

func LengthTarget(length model.SummaryLength) string {
	switch length {
	case model.LengthMedium:
		return "medium (200 word)"
	case model.LengthLong:
		return "long (300 word)"
	default:
		return "short (100 word)"
	}
}

// ThreadSummaryPrompt embeds the transcript, one chain per line, in the
// summarization instruction for the requested length.
func ThreadSummaryPrompt(chains []string, length model.SummaryLength) string {
	target := LengthTarget(length)
	return fmt.Sprintf(threadSummaryPrompt, target, target, thread.Transcript(chains))
}
