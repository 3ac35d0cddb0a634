package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"greenpath/internal/actions"
	"greenpath/internal/model"
	"greenpath/internal/util"
)

type activity struct {
	when   time.Time
	kind   string
	title  string
	status string
	label  string
}

// overview is the data behind the Overview tab.
type overview struct {
	name         string
	points       int
	rank         int
	badges       []string
	reports      int
	upcoming     int
	donations    int
	joinedEvents int
	nextPickup   *model.WasteReport
	nextEvents   []model.Event
	openHelp     int
	recent       []activity
}

type overviewInput struct {
	reports   []model.WasteReport
	donations []model.Donation
	events    []model.Event
	issues    []model.Issue
	help      []model.HelpRequest
	board     []model.LeaderboardEntry
}

const (
	overviewEvents   = 3
	overviewActivity = 5
)

func summarize(p model.Profile, now time.Time, in overviewInput) overview {
	o := overview{name: p.FullName, points: p.SocialPoints}
	for _, e := range in.board {
		if e.UserID == p.UserID {
			o.points = e.SocialPoints
			o.rank = e.Rank
			o.badges = e.Badges
			if o.name == "" {
				o.name = e.FullName
			}
		}
	}

	for i, r := range in.reports {
		if r.UserID != p.UserID {
			continue
		}
		o.reports++
		o.recent = append(o.recent, activity{r.CreatedAt, "Pickup", r.Title, string(r.Status), model.Label(r.Status)})
		if !r.Status.Upcoming() {
			continue
		}
		o.upcoming++
		if o.nextPickup == nil || earlierDay(r.ScheduledDate, o.nextPickup.ScheduledDate) {
			o.nextPickup = &in.reports[i]
		}
	}
	for _, d := range in.donations {
		if d.UserID != p.UserID {
			continue
		}
		o.donations++
		title := actions.LabelOf(actions.DonationTypes, d.ItemName)
		o.recent = append(o.recent, activity{d.CreatedAt, "Donation", title, string(d.Status), model.Label(d.Status)})
	}
	for _, i := range in.issues {
		if i.UserID == p.UserID {
			o.recent = append(o.recent, activity{i.CreatedAt, "Issue", i.Title, string(i.Status), model.Label(i.Status)})
		}
	}
	for _, h := range in.help {
		if h.Status == model.HelpOpen {
			o.openHelp++
		}
	}

	today := util.StartOfDay(now)
	for _, e := range in.events {
		if e.Joined(p.UserID) {
			o.joinedEvents++
		}
		if e.Status == model.EventUpcoming && !e.Date.Before(today) {
			o.nextEvents = append(o.nextEvents, e)
		}
	}
	sort.SliceStable(o.nextEvents, func(i, j int) bool { return o.nextEvents[i].Date.Before(o.nextEvents[j].Date) })
	if len(o.nextEvents) > overviewEvents {
		o.nextEvents = o.nextEvents[:overviewEvents]
	}

	sort.SliceStable(o.recent, func(i, j int) bool { return o.recent[i].when.After(o.recent[j].when) })
	if len(o.recent) > overviewActivity {
		o.recent = o.recent[:overviewActivity]
	}
	return o
}

// earlierDay orders YYYY-MM-DD strings with unscheduled days last.
func earlierDay(a, b string) bool {
	if a == "" {
		return false
	}
	return b == "" || a < b
}

func statCard(value, label string, width int) string {
	return StatCardStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Center,
			LabelStyle.Render(value),
			HelpDescStyle.Render(label),
		),
	)
}

func renderOverview(o overview, userID int64, now time.Time, width int) string {
	greeting := HeaderStyle.Render("Welcome back")
	if o.name != "" {
		greeting = HeaderStyle.Render("Welcome back, " + o.name)
	}
	standing := util.FormatPoints(o.points)
	if o.rank > 0 {
		standing += "  ·  " + util.FormatOrdinal(o.rank) + " on the leaderboard"
	}
	if len(o.badges) > 0 {
		standing += "  ·  " + lipgloss.NewStyle().Foreground(ColorYellow).Render(strings.Join(o.badges, ", "))
	}

	cardWidth := max((width-12)/4, 14)
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard(fmt.Sprint(o.reports), "Waste Reports", cardWidth),
		statCard(fmt.Sprint(o.upcoming), "Upcoming Pickups", cardWidth),
		statCard(fmt.Sprint(o.donations), "Donations", cardWidth),
		statCard(fmt.Sprint(o.joinedEvents), "Events Joined", cardWidth),
	)

	next := HelpDescStyle.Render("No upcoming pickups. Press p to schedule one.")
	if r := o.nextPickup; r != nil {
		next = renderField("Next pickup", strings.TrimSpace(util.FormatDate(r.ScheduledDate)+"  "+r.ScheduledTimeSlot)) +
			"  " + renderStatus(string(r.Status), model.Label(r.Status)) +
			"\n" + HelpDescStyle.Render(r.Title+" · "+r.Location)
	}

	var events []string
	for _, e := range o.nextEvents {
		line := fmt.Sprintf("%-10s %s", util.FormatDateHuman(e.Date, now), e.Title)
		if e.Joined(userID) {
			line += "  " + lipgloss.NewStyle().Foreground(ColorGreen).Render("✓ joined")
		} else if e.Full() {
			line += "  " + HelpDescStyle.Render("full")
		}
		events = append(events, NormalRowStyle.Render(line))
	}
	if len(events) == 0 {
		events = []string{HelpDescStyle.Render("No upcoming events found at the moment.")}
	}

	var recent []string
	for _, a := range o.recent {
		recent = append(recent, fmt.Sprintf("%-10s %-9s %s  %s",
			util.FormatDateHuman(a.when, now), a.kind, util.TruncateString(a.title, 32), renderStatus(a.status, a.label)))
	}
	if len(recent) == 0 {
		recent = []string{HelpDescStyle.Render("No activity found. Start by scheduling a pickup or reporting an issue.")}
	}

	help := fmt.Sprintf("%d open help request", o.openHelp)
	if o.openHelp != 1 {
		help += "s"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		greeting,
		StatusBarStyle.Render(standing),
		"",
		cards,
		"",
		next,
		"",
		LabelStyle.Render("Upcoming Events"),
		strings.Join(events, "\n"),
		"",
		LabelStyle.Render("Your Recent Activity"),
		strings.Join(recent, "\n"),
		"",
		HelpDescStyle.Render(help+" in your community · press 6 to view"),
	)
}
