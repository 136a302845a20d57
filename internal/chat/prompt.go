package chat

import (
	"fmt"
	"strings"
)

// implausibleSessionMinutes flags likely data-entry mistakes in the prompt.
// Durations are not validated upstream, so the model is told not to trust
// sessions over this length instead of celebrating a 14-hour run.
const implausibleSessionMinutes = 180

// Screen names sent by the frontend with each chat request.
const (
	ScreenTrackExercise = "trackExercise"
	ScreenStatistics    = "statistics"
	ScreenJournal       = "journal"
	ScreenGeneral       = "general"
)

// FormatDuration renders minutes as "H hr M min", omitting hours when zero.
func FormatDuration(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%d hr %d min", hours, mins)
	}
	return fmt.Sprintf("%d min", mins)
}

// BuildSystemPrompt renders the fitness context into the FitCoach system
// prompt for the given screen.
func BuildSystemPrompt(screen string, fc *FitnessContext) string {
	var sb strings.Builder

	sb.WriteString("You are FitCoach, a friendly and motivating AI fitness assistant for the MLA Fitness App.\n\n")

	fmt.Fprintf(&sb, "PROGRESS FOR %s:\n", strings.ToUpper(fc.PeriodName))
	fmt.Fprintf(&sb, "- Total workout time: %s\n", FormatDuration(fc.WindowMinutes))
	fmt.Fprintf(&sb, "- Total activities logged: %d\n\n", fc.TotalActivities)

	fmt.Fprintf(&sb, "BREAKDOWN FOR %s (total duration by activity type):\n", strings.ToUpper(fc.PeriodName))
	sb.WriteString(breakdownSection(fc))
	sb.WriteString("\n")

	sb.WriteString("MOST RECENT ACTIVITIES (individual sessions, newest first):\n")
	sb.WriteString(recentActivitiesSection(fc))
	sb.WriteString("\n")

	sb.WriteString(`IMPORTANT DATA NOTES:
- The breakdown shows TOTAL time per activity type (sum of all sessions)
- "Most recent activities" shows INDIVIDUAL workout sessions
- When asked about the "most recent" or "latest" activity, refer to the TOP item in the recent activities list
- The top recent activity is the NEWEST, the last one is the OLDEST
- Sessions marked as unusually long are probably data-entry errors, do not treat them as real achievements

YOUR RESPONSE STYLE - CRITICAL:
- MAXIMUM 1-2 SHORT SENTENCES (like texting a friend)
- Give ONE specific actionable tip, never multiple suggestions
- Use numbers from their data
- Be enthusiastic but brief
- Max 1 emoji per message
`)

	switch screen {
	case ScreenTrackExercise:
		sb.WriteString("\nSCREEN: Track Exercise page\nHelp users log their workouts effectively and suggest what they should do next based on their recent activities.\n")
	case ScreenStatistics:
		sb.WriteString("\nSCREEN: Statistics dashboard\nHelp users interpret their charts and understand their progress for the period above.\n")
	case ScreenJournal:
		sb.WriteString("\nSCREEN: Journal page\nHelp users review their workout history and plan future workouts.\n")
	}

	return sb.String()
}

func breakdownSection(fc *FitnessContext) string {
	if len(fc.WindowBreakdown) == 0 {
		return "No activities in this period yet.\n"
	}

	var sb strings.Builder
	for _, tt := range fc.WindowBreakdown {
		fmt.Fprintf(&sb, "- %s: %s (%d sessions)\n",
			tt.ExerciseType, FormatDuration(tt.TotalDuration), tt.SessionCount)
	}
	return sb.String()
}

func recentActivitiesSection(fc *FitnessContext) string {
	if len(fc.RecentActivities) == 0 {
		return "No recent activities logged yet.\n"
	}

	var sb strings.Builder
	sb.WriteString("NEWEST -> OLDEST:\n")
	for i, a := range fc.RecentActivities {
		fmt.Fprintf(&sb, "%d. %s: %s on %s", i+1, a.Type, FormatDuration(a.Duration), a.Date)
		if a.Duration > implausibleSessionMinutes {
			sb.WriteString(" (unusually long - likely a data-entry error)")
		}
		sb.WriteString("\n")
	}

	if hidden := fc.TotalActivities - len(fc.RecentActivities); hidden > 0 {
		fmt.Fprintf(&sb, "...and %d more\n", hidden)
	}

	return sb.String()
}
