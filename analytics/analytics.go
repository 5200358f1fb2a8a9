// Package analytics provides privacy-first page-view analytics for catalog
// pages.
//
// Views are recorded server-side by Middleware; no cookies or client scripts
// are involved. A visitor is a salted hash of IP address and User-Agent, bots
// and Do Not Track requests are skipped, and referrers are reduced to a
// source name or domain. Aggregates feed the admin dashboard and the home
// page's most read conditions.
package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Page kinds. They match the first path segment of the page they describe.
const (
	KindBlog      = "blog"
	KindCondition = "condition"
	KindCare      = "care"
	KindLabs      = "labs"
	KindPage      = "page" // home and listing pages
)

var sectionKinds = map[string]string{
	"blog":       KindBlog,
	"conditions": KindCondition,
	"care":       KindCare,
	"labs":       KindLabs,
}

// View is a single recorded page view.
type View struct {
	VisitorID string
	Kind      string
	Slug      string
	Path      string
	Browser   string
	OS        string
	Device    string
	Referrer  string
	Timestamp time.Time
}

// Stats holds aggregated analytics data.
type Stats struct {
	Period         string          `json:"period"`
	UniqueVisitors int             `json:"unique_visitors"`
	TotalViews     int             `json:"total_views"`
	TopPages       []PageStat      `json:"top_pages"`
	KindStats      []DimensionStat `json:"kinds"`
	BrowserStats   []DimensionStat `json:"browsers"`
	OSStats        []DimensionStat `json:"os"`
	DeviceStats    []DimensionStat `json:"devices"`
	ReferrerStats  []DimensionStat `json:"referrers"`
	Views          []DailyView     `json:"views"`
}

// PageStat is the view count of one page.
type PageStat struct {
	Kind  string `json:"kind"`
	Slug  string `json:"slug"`
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// DimensionStat represents a dimension breakdown (browser, OS, etc.).
type DimensionStat struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DailyView is the view count of one time bucket: an hour ("15:00"), a day
// ("2024-01-15") or a month ("2024-01") depending on the granularity.
type DailyView struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// Classify maps a request path onto a page kind and slug. Listing pages and
// the home page are KindPage with the section name ("home" for /) as slug.
// Paths outside the catalog return empty strings.
func Classify(path string) (kind, slug string) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return KindPage, "home"
	}
	parts := strings.Split(trimmed, "/")
	k, ok := sectionKinds[parts[0]]
	if !ok {
		return "", ""
	}
	switch len(parts) {
	case 1:
		return KindPage, parts[0]
	case 2:
		return k, parts[1]
	}
	return "", ""
}

// VisitorID creates a salted visitor ID from IP and User-Agent.
func VisitorID(salt, ip, userAgent string) string {
	h := sha256.New()
	h.Write([]byte(salt + ip + "|" + userAgent))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// ParseUserAgent extracts browser, OS, and device from User-Agent string.
func ParseUserAgent(ua string) (browser, os, device string) {
	ua = strings.ToLower(ua)

	// Detect browser (order matters: more specific patterns before generic ones)
	switch {
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	case strings.Contains(ua, "opera") || strings.Contains(ua, "opr"):
		browser = "Opera"
	case strings.Contains(ua, "edg"):
		browser = "Edge"
	case strings.Contains(ua, "chrome"):
		browser = "Chrome"
	case strings.Contains(ua, "safari"):
		browser = "Safari"
	default:
		browser = "Other"
	}

	// Android before Linux since Android UAs contain "linux"
	switch {
	case strings.Contains(ua, "windows"):
		os = "Windows"
	case strings.Contains(ua, "android"):
		os = "Android"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		os = "iOS"
	case strings.Contains(ua, "macintosh") || strings.Contains(ua, "mac os"):
		os = "macOS"
	case strings.Contains(ua, "linux"):
		os = "Linux"
	default:
		os = "Other"
	}

	// iPad UAs contain "mobile", so check tablet first
	switch {
	case strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad"):
		device = "Tablet"
	case strings.Contains(ua, "mobile"):
		device = "Mobile"
	default:
		device = "Desktop"
	}

	return
}

var botMarkers = []string{
	"bot", "crawler", "spider", "crawl", "slurp", "scrape",
	"googlebot", "bingbot", "yandex", "baidu", "duckduckbot",
	"facebookexternalhit", "twitterbot", "linkedinbot",
	"ahrefsbot", "semrushbot", "mj12bot", "dotbot",
	"curl", "wget", "python-requests", "go-http-client",
}

// IsBot checks if the User-Agent is likely a bot, crawler or script. An empty
// User-Agent counts as a bot.
func IsBot(ua string) bool {
	if strings.TrimSpace(ua) == "" {
		return true
	}
	ua = strings.ToLower(ua)
	for _, bot := range botMarkers {
		if strings.Contains(ua, bot) {
			return true
		}
	}
	return false
}

var referrerDomainRegex = regexp.MustCompile(`^https?://(?:www\.)?([^/:?#]+)`)

// CleanReferrer reduces a referrer URL to a source name or bare domain.
// Referrers from host itself count as "Internal".
func CleanReferrer(ref, host string) string {
	if ref == "" {
		return "Direct"
	}

	refLower := strings.ToLower(ref)
	switch {
	case strings.Contains(refLower, "google."):
		return "Google"
	case strings.Contains(refLower, "bing."):
		return "Bing"
	case strings.Contains(refLower, "duckduckgo."):
		return "DuckDuckGo"
	case strings.Contains(refLower, "yahoo."):
		return "Yahoo"
	}

	matches := referrerDomainRegex.FindStringSubmatch(refLower)
	if len(matches) < 2 {
		return "Other"
	}
	domain := matches[1]
	if h := strings.TrimPrefix(strings.ToLower(hostOnly(host)), "www."); h != "" && domain == h {
		return "Internal"
	}
	return domain
}

func hostOnly(hostport string) string {
	if i := strings.LastIndexByte(hostport, ':'); i >= 0 && !strings.Contains(hostport[i:], "]") {
		return hostport[:i]
	}
	return hostport
}

// Granularity is the bucket size of a views time series.
type Granularity int

const (
	Hourly Granularity = iota
	Daily
	Monthly
)

func (g Granularity) String() string {
	switch g {
	case Hourly:
		return "hourly"
	case Monthly:
		return "monthly"
	}
	return "daily"
}

// Period is a named reporting window.
type Period struct {
	Name        string
	Days        int
	Granularity Granularity
}

// PeriodNames lists the periods ParsePeriod accepts, shortest first.
var PeriodNames = []string{"today", "week", "month", "year"}

// ParsePeriod maps a period name onto its window. Unknown names select "week".
func ParsePeriod(name string) Period {
	switch name {
	case "today":
		return Period{Name: name, Days: 1, Granularity: Hourly}
	case "month":
		return Period{Name: name, Days: 30, Granularity: Daily}
	case "year":
		return Period{Name: name, Days: 365, Granularity: Monthly}
	}
	return Period{Name: "week", Days: 7, Granularity: Daily}
}

// Range returns the [from, to) window of the period ending at now. Hourly
// periods cover the last 24 hours; others cover whole UTC days.
func (p Period) Range(now time.Time) (from, to time.Time) {
	now = now.UTC()
	if p.Granularity == Hourly {
		return now.Truncate(time.Hour).Add(-23 * time.Hour), now
	}
	from = now.AddDate(0, 0, -p.Days).Truncate(24 * time.Hour)
	to = now.Add(24 * time.Hour).Truncate(24 * time.Hour)
	return from, to
}

// fillHourlyData ensures all 24 hourly slots are present, filling gaps with zero.
func fillHourlyData(sparse []DailyView, from time.Time) []DailyView {
	dataMap := make(map[string]int, len(sparse))
	for _, v := range sparse {
		dataMap[v.Date] = v.Views
	}

	result := make([]DailyView, 24)
	for i := 0; i < 24; i++ {
		hour := from.Add(time.Duration(i) * time.Hour)
		label := fmt.Sprintf("%02d:00", hour.Hour())
		result[i] = DailyView{Date: label, Views: dataMap[label]}
	}
	return result
}
