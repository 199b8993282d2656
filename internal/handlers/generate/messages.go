package generate

import "github.com/openai/openai-go/v3"

// systemPrompt constrains output to one self-contained document. The early
// stop in Relay depends on the model closing the document properly.
const systemPrompt = "ONLY USE HTML, CSS AND JAVASCRIPT. " +
	"If you want to use an icon, make sure to import the icon library first. " +
	"Try to create the best UI possible using only HTML, CSS and JAVASCRIPT. " +
	"Keep every style and every script inside the document itself. " +
	"ALWAYS RESPOND WITH A SINGLE SELF-CONTAINED HTML FILE."

// BuildMessages assembles the chat transcript for one generation. Order is
// load-bearing: system, then the prior instruction as a user turn, then the
// current document as an assistant turn, then the new prompt. It encodes what
// was asked before vs what exists now vs what is asked now.
func BuildMessages(req GenerationRequest) []openai.ChatCompletionMessageParamUnion {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
	}
	if req.PreviousPrompt != "" {
		messages = append(messages, openai.UserMessage(req.PreviousPrompt))
	}
	if req.HTML != "" {
		messages = append(messages, openai.AssistantMessage(req.HTML))
	}
	return append(messages, openai.UserMessage(req.Prompt))
}
