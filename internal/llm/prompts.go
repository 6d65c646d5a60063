package llm

// System instructions for the three classifier contracts. The service
// is prompted to answer with a bare payload; post-processing in
// classifier.go still defends against chatty responses.

const normalizePrompt = "You clean up short expense messages. " +
	"Correct typos and expand abbreviations, change nothing else. " +
	"Reply with only the corrected text on a single line, no quotes, no explanation."

const categoryPrompt = "You label expenses. " +
	"Reply with exactly one lowercase word naming the specific item or service purchased. " +
	"Prefer the specific over the generic: cappuccino over drink, uber over transport. " +
	"No punctuation, no explanation, just the single word."

const dateRangePrompt = "You resolve time references in expense queries. " +
	"Today is %s. " +
	"Map the time reference in the message to an inclusive calendar range and reply with " +
	"exactly two ISO dates separated by a comma: YYYY-MM-DD,YYYY-MM-DD. " +
	"If the message names no time reference, use 1970-01-01 as the start and today as the end. " +
	"Reply with only the pair, nothing else."
