package domain

type InsightMode string

const (
	ModeDemo InsightMode = "demo" // Fixed template, no AI credential
	ModeAI   InsightMode = "ai"   // Text produced by the generator
)

// Unknown is the value of any request field the client did not send.
const Unknown = "Unknown"

// InsightRequest is the normalized body of an insights request.
// Every field is free-form text; see the HTTP adapter for how non-string
// JSON values are turned into text.
type InsightRequest struct {
	WeeklyMoods     string
	ScreenTime      string
	UnlockCount     string
	MostUsedApp     string
	MoodDescription string
	Profession      string
	Gender          string
	Age             string
}

// NewInsightRequest returns a request where every field is Unknown. Decoders
// overwrite only the fields the client actually sent, so an explicit empty
// string survives as "".
func NewInsightRequest() InsightRequest {
	return InsightRequest{
		WeeklyMoods:     Unknown,
		ScreenTime:      Unknown,
		UnlockCount:     Unknown,
		MostUsedApp:     Unknown,
		MoodDescription: Unknown,
		Profession:      Unknown,
		Gender:          Unknown,
		Age:             Unknown,
	}
}

// Insights is the markdown text returned to the caller, whatever the mode.
type Insights struct {
	Text string
	Mode InsightMode
}
