package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/skyward-analytics/flightpulse/internal/metrics"
)

// flightDistributionPlaceholder is the literal the narrative model must
// leave intact; it marks where the hourly chart goes.
const flightDistributionPlaceholder = "{INSERTFLIGHTDISTRIBUTION}"

// chartMarkdown references the chart artifact relative to the report.
const chartMarkdown = "![Flight Distribution](flight_distribution.png)"

// ChatCompleter produces one completion from a system and user message.
type ChatCompleter interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAICompleter calls the OpenAI chat completions API.
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAICompleter builds a completer for apiKey. baseURL overrides
// the API host for compatible providers and model falls back to GPT-4o
// when empty.
func NewOpenAICompleter(apiKey, baseURL, model string) *OpenAICompleter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAICompleter{client: openai.NewClientWithConfig(cfg), model: model}
}

// Complete sends one chat completion request and returns the first
// choice.
func (c *OpenAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateNarrative asks completer for the report body, appending the
// metrics JSON to the user prompt, and swaps the chart placeholder for
// a Markdown image reference.
func GenerateNarrative(ctx context.Context, completer ChatCompleter, prompts Prompts, metricsJSON []byte) (string, error) {
	user := prompts.User + "\n\n" + string(metricsJSON)
	body, err := completer.Complete(ctx, prompts.System, user)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(body, flightDistributionPlaceholder, chartMarkdown), nil
}

// FallbackNarrative renders a deterministic Markdown report from doc. It
// stands in for the model when narrative generation is disabled.
func FallbackNarrative(doc Document) string {
	var b strings.Builder

	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "%s handled %d arrivals and %d departures.\n\n",
		doc.Airport, doc.General.Arrivals.Total, doc.General.Departures.Total)
	b.WriteString("| Metric | Arrivals | Departures |\n")
	b.WriteString("| --- | --- | --- |\n")
	fmt.Fprintf(&b, "| Completed | %d | %d |\n",
		doc.General.Arrivals.Completed, doc.General.Departures.Completed)
	fmt.Fprintf(&b, "| Cancelled | %d | %d |\n",
		doc.General.Arrivals.Cancelled, doc.General.Departures.Cancelled)
	fmt.Fprintf(&b, "| Diverted | %d | %d |\n\n",
		doc.General.Arrivals.Diverted, doc.General.Departures.Diverted)

	b.WriteString("## Traffic by Hour\n\n")
	b.WriteString(chartMarkdown + "\n\n")
	if peaks := peakHours(doc.General.FlightsPerHourWithPeaks); len(peaks) > 0 {
		fmt.Fprintf(&b, "Peak traffic hours: %s.\n\n", strings.Join(peaks, ", "))
	} else {
		b.WriteString("No hour stood out as a traffic peak.\n\n")
	}

	b.WriteString("## Delays\n\n")
	b.WriteString("| Metric | Arrivals | Departures |\n")
	b.WriteString("| --- | --- | --- |\n")
	fmt.Fprintf(&b, "| Average delay (min) | %.2f | %.2f |\n",
		doc.General.ArrivalDelays.AvgDelayMin, doc.General.DepartureDelays.AvgDelayMin)
	fmt.Fprintf(&b, "| Median delay (min) | %.2f | %.2f |\n",
		doc.General.ArrivalDelays.MedianDelayMin, doc.General.DepartureDelays.MedianDelayMin)
	fmt.Fprintf(&b, "| Delayed over 15 min | %.2f%% | %.2f%% |\n\n",
		doc.General.ArrivalDelays.DelayPercentage15Min, doc.General.DepartureDelays.DelayPercentage15Min)

	b.WriteString("## Destinations\n\n")
	fmt.Fprintf(&b, "The network covered %d destinations.\n\n", doc.Destination.TotalDestinations)
	if len(doc.Destination.Top10Destinations) > 0 {
		b.WriteString("| Airport | City | Flights |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, dest := range doc.Destination.Top10Destinations {
			fmt.Fprintf(&b, "| %s | %s | %d |\n", dest.AirportICAO, dest.City, dest.NumFlights)
		}
		b.WriteString("\n")
	}
	if r := doc.Destination.ShortestRoute; r != nil && r.RouteDistanceMiles != nil {
		fmt.Fprintf(&b, "Shortest route: %s at %.2f miles. ", r.AirportICAO, *r.RouteDistanceMiles)
	}
	if r := doc.Destination.LongestRoute; r != nil && r.RouteDistanceMiles != nil {
		fmt.Fprintf(&b, "Longest route: %s at %.2f miles.", r.AirportICAO, *r.RouteDistanceMiles)
	}
	b.WriteString("\n")

	return b.String()
}

func peakHours(slots []metrics.PeakSlot) []string {
	var hours []string
	for _, slot := range slots {
		if slot.ArrivalsPeak || slot.DeparturesPeak {
			hours = append(hours, slot.HourHHMM)
		}
	}
	return hours
}
