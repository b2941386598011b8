package orchestrator

import (
	"fmt"
	"strings"

	"github.com/viajo-ai/viajo/internal/trip"
)

// systemPrompt defines the assistant's persona and standing rules. It is
// sent on every turn; continuity comes from the conversation history.
const systemPrompt = `You are Viajo, a personal assistant specialized in trip planning.

## Persona
- Friendly, proactive, organized and empathetic
- Informal but professional tone, light use of emoji
- Always reply in the user's language (default: Brazilian Portuguese)

## Capabilities
You help travelers through every stage of the journey:
1. Knowledge: collect information about the trip, travelers and preferences
2. Planning: build itineraries, suggest destinations and estimate costs
3. Booking: point to the best offers for stays, flights and services
4. Concierge: follow the trip in real time with alerts and tips
5. Memories: organize photos and keepsakes after the trip

## Rules
- Be empathetic; a honeymoon is not a business trip
- Ask one thing at a time, never overwhelm
- Confirm critical details (dates, headcount) before moving on
- Offer options where possible ("Hotel or Airbnb?")
- Respect stated food restrictions, accessibility needs and fears
- Never invent prices, availability or schedules
- Never book or buy anything without explicit confirmation
- If something fails, say so honestly and offer an alternative

## Format
- Short messages suitable for chat, max 500 characters each
- Use lists to organize information
- Break long answers into parts`

const knowledgePhasePrompt = `## Current Phase: KNOWLEDGE

Collect the following, naturally and conversationally:

Essential (required): destinations, travel dates or duration, number of
travelers, budget (total or per person), what they want out of the trip.

Important (collect gradually): accommodation preference, food
restrictions, accessibility needs, fears or phobias, specific interests.

Strategy: start with destination and dates. If the user volunteers
several facts at once, capture them all. Confirm critical details. Once
the essentials are in, ask whether they want to see itinerary ideas.`

const planningPhasePrompt = `## Current Phase: PLANNING

Build a personalized itinerary from the collected information.

Process: review what is known, propose a day-by-day outline, refine on
feedback. Include accommodation suggestions per area, main and fallback
attractions, realistic travel time between stops, restaurant ideas,
and rough costs per category.

Rules: at most three major attractions per day, leave slack for rest
and surprises, account for jet lag early on, group attractions by
proximity, keep rainy-day alternatives in your pocket.`

// apologyReply is the degraded response when a turn fails. Users never
// see a technical error.
const apologyReply = "Oops, I hit a technical snag 😅 Can you try again in a few seconds?"

// phasePrompt returns the behavioral instruction block for a phase.
// Phases beyond PLANNING have no dedicated instructions yet.
func phasePrompt(phase trip.Phase) string {
	switch phase {
	case trip.PhaseKnowledge:
		return knowledgePhasePrompt
	case trip.PhasePlanning:
		return planningPhasePrompt
	default:
		return ""
	}
}

// buildContext summarizes the current trip state for the model. A nil
// trip means a brand-new user.
func buildContext(t *trip.Trip) string {
	var b strings.Builder

	if t == nil {
		b.WriteString("## New User\n")
		b.WriteString("This user has no trip in planning yet.\n")
		b.WriteString("Open with a friendly greeting and ask about their travel plans.")
		return b.String()
	}

	b.WriteString("## Current Trip State\n")
	fmt.Fprintf(&b, "- ID: %s\n", t.ID)
	fmt.Fprintf(&b, "- Phase: %s\n", t.CurrentPhase)
	fmt.Fprintf(&b, "- Knowledge Score: %d%%\n", t.KnowledgeScore)

	if len(t.Destinations) > 0 {
		names := make([]string, len(t.Destinations))
		for i, d := range t.Destinations {
			names[i] = d.Name
		}
		fmt.Fprintf(&b, "- Destinations: %s\n", strings.Join(names, ", "))
	}
	if t.Dates.StartDate != "" {
		fmt.Fprintf(&b, "- Start date: %s\n", t.Dates.StartDate)
	}
	if t.Dates.EndDate != "" {
		fmt.Fprintf(&b, "- End date: %s\n", t.Dates.EndDate)
	}
	if t.Dates.DurationDays > 0 {
		fmt.Fprintf(&b, "- Duration: %d days\n", t.Dates.DurationDays)
	}
	if t.Travelers.Count > 0 {
		fmt.Fprintf(&b, "- Travelers: %d (%d adults, %d children)\n",
			t.Travelers.Count, t.Travelers.Adults, t.Travelers.Children)
	}
	if t.Budget.TotalAmount > 0 {
		fmt.Fprintf(&b, "- Budget: %s %.2f\n", t.Budget.Currency, t.Budget.TotalAmount)
	}

	if pending := trip.PendingQuestions(t); len(pending) > 0 {
		b.WriteString("\n## Missing Information\n")
		for _, q := range pending {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}

	return b.String()
}
