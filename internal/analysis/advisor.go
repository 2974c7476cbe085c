package analysis

import (
	"context"
	"fmt"
	"time"

	"brewja/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
)

// Advisor produces free-text technical commentary from read-only snapshots.
// It is non-authoritative: it never mutates state and never surfaces an
// error, callers always get displayable text.
type Advisor struct {
	llm llms.LLM
	log *logrus.Logger
}

// NewAdvisor creates an advisor backed by the given model. A nil model
// disables analysis; calls then return a fixed notice.
func NewAdvisor(llm llms.LLM, log *logrus.Logger) *Advisor {
	if log == nil {
		log = logrus.New()
	}
	return &Advisor{llm: llm, log: log}
}

// AnalyzeFermentation reviews a fermentation batch like a consultant would:
// estimated ABV, attenuation, and whether temperature and gravity look
// healthy for the style.
func (a *Advisor) AnalyzeFermentation(ctx context.Context, tank models.Tank) string {
	if a.llm == nil {
		return "AI analysis is not configured."
	}

	days := 0.0
	if brewed, err := time.Parse(time.RFC3339, tank.BrewDate); err == nil {
		days = time.Since(brewed).Hours() / 24
	}

	prompt := fmt.Sprintf(`Act as a Chemical Engineering Consultant for a brewery. Analyze the following fermentation batch data:

Recipe: %s
Original Gravity (OG): %.3f
Current Gravity (SG): %.3f
Target Gravity (FG): %.3f
Temperature: %.1f°C
pH: %.1f
Day of Fermentation: Approx %.0f days

Please provide:
1. Estimated Alcohol By Volume (ABV) currently.
2. Attenuation percentage.
3. A brief technical assessment of the fermentation health (temperature vs gravity).
4. Any corrective actions if parameters seem off for this style.

Keep the response concise and technical.`,
		tank.RecipeName, tank.OriginalGravity, tank.CurrentGravity, tank.TargetGravity,
		tank.Temperature, tank.PH, days)

	response, err := llms.GenerateFromSinglePrompt(ctx, a.llm, prompt)
	if err != nil {
		a.log.Warnf("fermentation analysis failed: %v", err)
		return "Error connecting to AI Analysis service."
	}
	if response == "" {
		return "Analysis could not be generated."
	}
	return response
}

// SuggestRecipe proposes a seasonal brew that makes good use of the current
// stockroom.
func (a *Advisor) SuggestRecipe(ctx context.Context, inventorySummary string) string {
	if a.llm == nil {
		return "AI analysis is not configured."
	}

	prompt := fmt.Sprintf("Given the following available inventory summary: %s. Suggest a creative seasonal brew recipe that optimizes stock usage.", inventorySummary)

	response, err := llms.GenerateFromSinglePrompt(ctx, a.llm, prompt)
	if err != nil {
		a.log.Warnf("recipe suggestion failed: %v", err)
		return "Error generating suggestion."
	}
	if response == "" {
		return "No suggestion generated."
	}
	return response
}
