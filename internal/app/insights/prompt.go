package insights

import (
	"fmt"

	"github.com/PabloGalante/wellbeing-insights/internal/domain"
)

const insightsPrompt = `
As a mental health advisor, analyze the following data and provide 4-5 personalized mental health suggestions, explaining the rationale behind each suggestion:

User Profile:
- Age: %s
- Gender: %s
- Profession: %s

Weekly Mood Data: %s

Digital Well-being Metrics:
- Daily Screen Time: %s
- Daily Phone Unlock Count: %s
- Most Used App: %s

User's Description of Their Mood: %q

Based on this data, please provide:
1. A brief analysis of potential mental health impacts
2. 4-5 specific, actionable suggestions to improve mental wellbeing
3. For each suggestion, explain why it might help this particular user

Format each suggestion with a clear title and detailed explanation.
`

// BuildPrompt renders the single prompt sent to the generator.
func BuildPrompt(req domain.InsightRequest) string {
	return fmt.Sprintf(insightsPrompt,
		req.Age,
		req.Gender,
		req.Profession,
		req.WeeklyMoods,
		req.ScreenTime,
		req.UnlockCount,
		req.MostUsedApp,
		req.MoodDescription,
	)
}
