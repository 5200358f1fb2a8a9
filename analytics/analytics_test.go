package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path, kind, slug string
	}{
		{"/", KindPage, "home"},
		{"", KindPage, "home"},
		{"/blog/", KindPage, "blog"},
		{"/conditions/", KindPage, "conditions"},
		{"/blog/mold-and-fatigue/", KindBlog, "mold-and-fatigue"},
		{"/conditions/mold-toxicity/", KindCondition, "mold-toxicity"},
		{"/care/functional-medicine", KindCare, "functional-medicine"},
		{"/labs/mold-panel/", KindLabs, "mold-panel"},
		{"/admin/", "", ""},
		{"/public/carehub.css", "", ""},
		{"/blog/a/b/", "", ""},
	}
	for _, tt := range tests {
		kind, slug := Classify(tt.path)
		assert.Equal(t, tt.kind, kind, "kind for %q", tt.path)
		assert.Equal(t, tt.slug, slug, "slug for %q", tt.path)
	}
}

func TestVisitorIDDependsOnSalt(t *testing.T) {
	a := VisitorID("salt-a", "203.0.113.1", "Mozilla/5.0")
	b := VisitorID("salt-b", "203.0.113.1", "Mozilla/5.0")
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, VisitorID("salt-a", "203.0.113.1", "Mozilla/5.0"))
}

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name, ua, browser, os, device string
	}{
		{"chrome windows", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36", "Chrome", "Windows", "Desktop"},
		{"firefox linux", "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0", "Firefox", "Linux", "Desktop"},
		{"safari iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1", "Safari", "iOS", "Mobile"},
		{"chrome android", "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Mobile Safari/537.36", "Chrome", "Android", "Mobile"},
		{"safari ipad", "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1", "Safari", "iOS", "Tablet"},
		{"edge mac", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36 Edg/120.0", "Edge", "macOS", "Desktop"},
		{"unknown", "something", "Other", "Other", "Desktop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			browser, os, device := ParseUserAgent(tt.ua)
			assert.Equal(t, tt.browser, browser)
			assert.Equal(t, tt.os, os)
			assert.Equal(t, tt.device, device)
		})
	}
}

func TestIsBot(t *testing.T) {
	bots := []string{
		"",
		"   ",
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"curl/8.4.0",
		"python-requests/2.31",
		"Go-http-client/1.1",
	}
	for _, ua := range bots {
		assert.True(t, IsBot(ua), "expected bot: %q", ua)
	}
	assert.False(t, IsBot("Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"))
}

func TestCleanReferrer(t *testing.T) {
	tests := []struct {
		ref, host, want string
	}{
		{"", "carehub.example", "Direct"},
		{"https://www.google.com/search?q=mold", "carehub.example", "Google"},
		{"https://www.bing.com/", "carehub.example", "Bing"},
		{"https://duckduckgo.com/?q=x", "carehub.example", "DuckDuckGo"},
		{"https://news.ycombinator.com/item?id=1", "carehub.example", "news.ycombinator.com"},
		{"https://www.reddit.com/r/health", "carehub.example", "reddit.com"},
		{"https://carehub.example/conditions/", "carehub.example", "Internal"},
		{"http://localhost:3000/blog/", "localhost:3000", "Internal"},
		{"android-app://com.example", "carehub.example", "Other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanReferrer(tt.ref, tt.host), "referrer %q", tt.ref)
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in   string
		want Period
	}{
		{"today", Period{Name: "today", Days: 1, Granularity: Hourly}},
		{"week", Period{Name: "week", Days: 7, Granularity: Daily}},
		{"month", Period{Name: "month", Days: 30, Granularity: Daily}},
		{"year", Period{Name: "year", Days: 365, Granularity: Monthly}},
		{"", Period{Name: "week", Days: 7, Granularity: Daily}},
		{"decade", Period{Name: "week", Days: 7, Granularity: Daily}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePeriod(tt.in), "period %q", tt.in)
	}
	for _, name := range PeriodNames {
		assert.Equal(t, name, ParsePeriod(name).Name)
	}
}

func TestPeriodRange(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	from, to := ParsePeriod("week").Range(now)
	assert.Equal(t, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), to)

	from, to = ParsePeriod("today").Range(now)
	assert.Equal(t, time.Date(2024, 3, 9, 16, 0, 0, 0, time.UTC), from)
	assert.Equal(t, now, to)
}

func TestFillHourlyData(t *testing.T) {
	from := time.Date(2024, 3, 9, 16, 0, 0, 0, time.UTC)
	got := fillHourlyData([]DailyView{{Date: "17:00", Views: 4}, {Date: "03:00", Views: 2}}, from)

	require.Len(t, got, 24)
	assert.Equal(t, DailyView{Date: "16:00", Views: 0}, got[0])
	assert.Equal(t, DailyView{Date: "17:00", Views: 4}, got[1])
	assert.Equal(t, DailyView{Date: "03:00", Views: 2}, got[11])
	assert.Equal(t, "15:00", got[23].Date)
}

func TestGranularityString(t *testing.T) {
	assert.Equal(t, "hourly", Hourly.String())
	assert.Equal(t, "daily", Daily.String())
	assert.Equal(t, "monthly", Monthly.String())
}
