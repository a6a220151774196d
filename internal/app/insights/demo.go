package insights

import (
	"fmt"

	"github.com/PabloGalante/wellbeing-insights/internal/domain"
)

const demoTemplate = `
# Mental Health Insights

Based on your data, here are some personalized insights:

## Recognize Screen Time Patterns

Your daily screen time of %[1]s suggests potential digital overload. 
Consider setting app time limits and taking regular breaks from your devices.

## Practice Mindfulness Techniques

Your mood patterns and unlock frequency indicate stress. Try deep breathing exercises 
or meditation for 5 minutes when you feel overwhelmed.

## Establish Healthy Phone Boundaries

With %[2]s phone unlocks daily, you might benefit from designating phone-free zones 
or times, particularly during meals and before bedtime.

## Seek Balance in Digital Life

Your most used app is %[3]s. Consider if this aligns with your priorities 
and values. Try diversifying your activities and interests.
`

// DemoInsights renders the fixed response used when no generator is configured.
func DemoInsights(req domain.InsightRequest) string {
	return fmt.Sprintf(demoTemplate, req.ScreenTime, req.UnlockCount, req.MostUsedApp)
}
