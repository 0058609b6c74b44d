// Package ai implementa ports.BrewAnalyzer sobre las APIs REST de OpenAI, Anthropic y Gemini.
package ai

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/Brewlog-api/internal/application/ports"
	"github.com/jhoicas/Brewlog-api/internal/domain/brewing"
)

// systemPrompt rol del modelo y formato de las cuatro secciones de la respuesta.
const systemPrompt = `You are a coffee expert. Analyze the brew data and provide suggestions in the following format:

1. Extraction Analysis:
   - Brief analysis of the ratio and time
2. Grind Adjustment:
   - Specific suggestion about grind size
3. Process Improvement:
   - One specific technique improvement
4. Next Steps:
   - Clear, actionable next step`

const (
	maxOutputTokens = 500
	temperature     = 0.7
	maxResponseBody = 64 * 1024
)

// userPrompt describe el brew; los campos vacíos se envían como "Unknown".
func userPrompt(in ports.BrewAnalysisInput) string {
	roastDate := "Unknown"
	if in.RoastDate != nil {
		roastDate = in.RoastDate.Format("2006-01-02")
	}
	notes := in.Notes
	if strings.TrimSpace(notes) == "" {
		notes = "No notes provided"
	}

	var b strings.Builder
	b.WriteString("Please analyze this coffee brew:\n")
	fmt.Fprintf(&b, "Coffee: %s (%s, %s, %s roast)\n", orUnknown(in.BeanName), orUnknown(in.Country), orUnknown(in.Region), orUnknown(in.RoastType))
	fmt.Fprintf(&b, "Roast Date: %s\n", roastDate)
	fmt.Fprintf(&b, "Grinder: %s at %s\n", orUnknown(in.GrinderName), orUnknown(in.GrindSize))
	fmt.Fprintf(&b, "Brewer: %s\n", orUnknown(in.BrewerName))
	fmt.Fprintf(&b, "Dose: %sg\n", grams(in.DoseGrams))
	fmt.Fprintf(&b, "Yield: %sg\n", grams(in.YieldGrams))
	fmt.Fprintf(&b, "Ratio: %s\n", brewing.FormatRatio(in.Ratio()))
	fmt.Fprintf(&b, "Time: %ds\n", in.BrewTimeSeconds)
	fmt.Fprintf(&b, "Notes: %s", notes)
	return b.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

func grams(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
